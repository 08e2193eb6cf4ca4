package workers

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hubbub/domain/event"
	"hubbub/moderation"
)

func TestModerationWorker_SanitizesCommittedMessage(t *testing.T) {
	req := require.New(t)
	moderator, err := moderation.NewModerator([]string{"crap"}, '*')
	req.NoError(err)

	raw := make(chan event.DomainEvent, 1)
	events := make(chan event.DomainEvent, 1)
	worker := NewModerationWorker(moderator, raw, events, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go worker.Run(ctx)

	// Given a committed message containing a censored word
	raw <- event.MessageCommitted{
		Conversation: 10,
		Sender:       1,
		Nick:         "alice",
		Content:      "well this is crap honestly",
	}

	// Then the fanout sees the sanitized version
	select {
	case e := <-events:
		sanitized, ok := e.(event.SanitizedMessage)
		req.True(ok)
		req.Equal("well this is **** honestly", sanitized.Content)
		req.Equal([]string{"crap"}, sanitized.CensoredWords)
		req.Equal("alice", sanitized.Nick)
		req.NotEmpty(sanitized.Language)
	case <-time.After(time.Second):
		req.Fail("No sanitized event received")
	}
}

func TestModerationWorker_OtherEventsPassThrough(t *testing.T) {
	req := require.New(t)
	moderator, err := moderation.NewModerator([]string{"crap"}, '*')
	req.NoError(err)

	raw := make(chan event.DomainEvent, 1)
	events := make(chan event.DomainEvent, 1)
	worker := NewModerationWorker(moderator, raw, events, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go worker.Run(ctx)

	// Given a live buffer update, which is never moderated
	raw <- event.BufferReplaced{Conversation: 10, Sender: 1, Snapshot: "crap in progress"}

	select {
	case e := <-events:
		replaced, ok := e.(event.BufferReplaced)
		req.True(ok)
		req.Equal("crap in progress", replaced.Snapshot)
	case <-time.After(time.Second):
		req.Fail("Event was not forwarded")
	}
}
