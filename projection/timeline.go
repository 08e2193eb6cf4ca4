// Package projection builds local timelines from observed events.
// Handles ordering and per-conversation grouping.
// Does not emit events or interact with the transport directly.
package projection

import (
	"context"
	"sync"

	"hubbub/domain"
	"hubbub/domain/event"
)

// Timeline keeps an in-memory, per-conversation view of sanitized
// committed messages. It is registered as a permanent sink.
type Timeline struct {
	mu            sync.RWMutex
	conversations map[domain.ConversationID][]domain.Message
}

func NewTimeline() *Timeline {
	return &Timeline{
		conversations: make(map[domain.ConversationID][]domain.Message),
	}
}

func (t *Timeline) Consume(_ context.Context, e event.DomainEvent) error {
	evt, ok := e.(event.SanitizedMessage)
	if !ok {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.conversations[evt.Conversation] = append(t.conversations[evt.Conversation], fromEvent(evt))
	return nil
}

// Messages returns a copy of one conversation's timeline in commit
// order.
func (t *Timeline) Messages(id domain.ConversationID) []domain.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]domain.Message, len(t.conversations[id]))
	copy(out, t.conversations[id])
	return out
}

func fromEvent(evt event.SanitizedMessage) domain.Message {
	return domain.Message{
		ID:           evt.ID,
		Conversation: evt.Conversation,
		SenderID:     evt.Sender,
		Nick:         evt.Nick,
		Content:      evt.Content,
		CommittedAt:  evt.At,
	}
}
