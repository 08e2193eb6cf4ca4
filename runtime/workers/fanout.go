package workers

import (
	"context"
	"log/slog"
	"time"

	"hubbub/contract"
	"hubbub/domain/event"
	"hubbub/observability"
)

// Ensure *EventFanout implements the contract.Worker interface at compile time.
var _ contract.Worker = (*EventFanout)(nil)

// EventFanout broadcasts domain events to in-process consumers: the
// permanent sinks (disk, timeline, search index) and the session sinks
// of the event's eligible recipients, resolved through the registry.
//
// It provides best-effort fan-out with no guarantees regarding
// delivery, ordering, durability, or retries. EventFanout is not a
// message broker. Recipient resolution happens before any send, so no
// lock is held while a slow consumer drains.
type EventFanout struct {
	log         *slog.Logger
	registry    contract.IRegistry
	events      chan event.DomainEvent
	sinks       []contract.EventSink
	sinkTimeout time.Duration
	monitoring  *observability.Monitoring
}

func NewEventFanout(log *slog.Logger, registry contract.IRegistry,
	events chan event.DomainEvent, sinks []contract.EventSink,
	sinkTimeout time.Duration, monitoring *observability.Monitoring) *EventFanout {
	return &EventFanout{
		log:         log,
		registry:    registry,
		events:      events,
		sinks:       sinks,
		sinkTimeout: sinkTimeout,
		monitoring:  monitoring,
	}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping fanout")
			return ctx.Err()
		case evt, ok := <-w.events:
			if !ok {
				return nil
			}
			w.Fanout(evt)
		}
	}
}

// Fanout delivers one event to every permanent sink plus the session
// sinks of the conversation's recipients, excluding the sender. Each
// delivery runs in its own goroutine under a timeout so one stuck
// consumer cannot stall the others.
func (w *EventFanout) Fanout(evt event.DomainEvent) {
	targets := make([]contract.EventSink, 0, len(w.sinks))
	targets = append(targets, w.sinks...)
	targets = append(targets, w.registry.SinksFor(evt.ConversationID(), evt.SenderID())...)

	w.monitoring.IncrFanned()

	for _, s := range targets {
		go func(sink contract.EventSink) {
			ctx, cancel := context.WithTimeout(context.Background(), w.sinkTimeout)
			defer cancel()

			if err := sink.Consume(ctx, evt); err != nil {
				w.log.Warn("Sink failed to consume event", "error", err)
			}
		}(s)
	}
}
