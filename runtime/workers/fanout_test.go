package workers

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hubbub/contract"
	"hubbub/domain/event"
	"hubbub/mocks"
	"hubbub/observability"
)

func TestEventFanout_Fanout(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRegistry := mocks.NewMockIRegistry(ctrl)
	mockSink := mocks.NewMockEventSink(ctrl)
	sessionSinks := []contract.EventSink{mockSink, mockSink}

	fanout := NewEventFanout(
		log, mockRegistry, nil,
		[]contract.EventSink{mockSink, mockSink},
		10*time.Second, observability.NewMonitoring())

	done := make(chan struct{})
	count := 0
	// Given two permanent sinks and two session sinks
	mockRegistry.EXPECT().SinksFor(gomock.Any(), gomock.Any()).Return(sessionSinks).Times(1)
	// Given every sink consumes the event
	mockSink.EXPECT().Consume(gomock.Any(), gomock.Any()).Do(
		func(ctx context.Context, evt event.DomainEvent) {
			count++
			if count == 4 {
				close(done)
			}
		}).Return(nil).
		Times(4)

	evt := event.SanitizedMessage{}

	// When an event is fanned out
	fanout.Fanout(evt)

	// Then all four deliveries happen
	select {
	case <-done:
	case <-time.After(1 * time.Second):
		req.Fail("Goroutine did not terminated at time")
	}
}

func TestEventFanout_SinkTimeout(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRegistry := mocks.NewMockIRegistry(ctrl)
	mockSink := mocks.NewMockEventSink(ctrl)

	sinkTimeout := 20 * time.Millisecond
	fanout := NewEventFanout(
		log, mockRegistry, nil, nil,
		sinkTimeout, observability.NewMonitoring())

	mockRegistry.EXPECT().SinksFor(gomock.Any(), gomock.Any()).
		Return([]contract.EventSink{mockSink}).Times(1)
	// Given a sink that stalls until its context expires
	mockSink.EXPECT().Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(
			func(ctx context.Context, evt event.DomainEvent) error {
				<-ctx.Done()     // Waiting for timeout to trigger cancellation
				return ctx.Err() // Sending back "context deadline exceeded"
			},
		).Times(1)

	evt := event.SanitizedMessage{}

	// When the event is fanned out
	fanout.Fanout(evt)

	// Then the pipeline stays unblocked
	// And waiting more than timeout to let goroutine finish
	time.Sleep(50 * time.Millisecond)
}

func TestEventFanout_Run_StopsOnContextDone(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRegistry := mocks.NewMockIRegistry(ctrl)

	events := make(chan event.DomainEvent)
	fanout := NewEventFanout(log, mockRegistry, events, nil,
		time.Second, observability.NewMonitoring())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- fanout.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		require.Fail(t, "Fanout did not stop on context cancellation")
	}
}
