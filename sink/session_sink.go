package sink

import (
	"context"

	"hubbub/domain/event"
)

// SessionSink is the outbound channel of one connected participant.
// The transport's writer goroutine drains Events and serializes frames
// onto the connection.
type SessionSink struct {
	Events chan event.DomainEvent
}

func NewSessionSink(bufferSize int) *SessionSink {
	return &SessionSink{Events: make(chan event.DomainEvent, bufferSize)}
}

// Consume is called by the fanout. A full channel drops the event
// rather than stalling the pipeline: a lagging client misses updates,
// it does not slow everyone else down.
func (s *SessionSink) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case s.Events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
