package workers

import (
	"context"
	"log/slog"

	"github.com/abadojack/whatlanggo"

	"hubbub/domain/event"
	"hubbub/moderation"
)

// ModerationWorker sits between the raw event channel and the fanout.
// Committed messages get a censor pass and a detected language before
// anyone else sees them; every other event kind passes through
// untouched.
type ModerationWorker struct {
	moderator moderation.Moderator
	raw       chan event.DomainEvent
	events    chan event.DomainEvent
	log       *slog.Logger
}

func NewModerationWorker(moderator moderation.Moderator,
	raw, events chan event.DomainEvent, log *slog.Logger) *ModerationWorker {
	return &ModerationWorker{moderator: moderator, raw: raw, events: events, log: log}
}

func (w *ModerationWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping worker")
			return ctx.Err()
		case e, ok := <-w.raw:
			if !ok {
				w.log.Debug("Channel is closed")
				return nil
			}

			out := e
			if committed, isCommit := e.(event.MessageCommitted); isCommit {
				out = w.sanitize(committed)
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case w.events <- out:
			}
		}
	}
}

func (w *ModerationWorker) sanitize(evt event.MessageCommitted) event.SanitizedMessage {
	info := whatlanggo.Detect(evt.Content)
	sanitized, foundWords := w.moderator.Censor(evt.Content)

	if len(foundWords) > 0 {
		w.log.Warn("Censored words in committed message",
			"conversation", evt.Conversation,
			"sender", evt.Sender,
			"count", len(foundWords))
	}

	return event.SanitizedMessage{
		ID:            evt.ID,
		Conversation:  evt.Conversation,
		Sender:        evt.Sender,
		Nick:          evt.Nick,
		Content:       sanitized,
		Language:      info.Lang.Iso6391(),
		CensoredWords: foundWords,
		At:            evt.At,
	}
}
