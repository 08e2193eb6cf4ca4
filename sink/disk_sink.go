// Package sink contains the event consumers fed by the fanout worker.
package sink

import (
	"context"
	"fmt"
	"log/slog"

	"hubbub/domain/event"
	"hubbub/repositories"
)

// DiskSink mirrors sanitized committed messages to the message
// repository. Other event kinds carry no durable state and are ignored.
type DiskSink struct {
	repository repositories.IMessageRepository
	log        *slog.Logger
}

func NewDiskSink(repository repositories.IMessageRepository, log *slog.Logger) DiskSink {
	return DiskSink{repository: repository, log: log}
}

func (d DiskSink) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.SanitizedMessage:
		return d.repository.StoreMessage(toDiskMessage(evt))
	default:
		d.log.Debug(fmt.Sprintf("Event not persisted : %T", evt))
		return nil
	}
}

func toDiskMessage(evt event.SanitizedMessage) repositories.DiskMessage {
	return repositories.DiskMessage{
		ID:           evt.ID,
		Conversation: int64(evt.Conversation),
		Author:       int64(evt.Sender),
		Nick:         evt.Nick,
		Content:      evt.Content,
		Language:     evt.Language,
		At:           evt.At,
	}
}
