package ws

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hubbub/domain/event"
)

func TestToFrame_KnownEvents(t *testing.T) {
	at := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)

	frame, ok := toFrame(event.BufferReplaced{Conversation: 10, Sender: 1, Snapshot: "hi", At: at})
	require.True(t, ok)
	require.Equal(t, "buffer", frame.Kind)
	require.Equal(t, "hi", frame.Buffer)

	frame, ok = toFrame(event.SanitizedMessage{Conversation: 10, Sender: 1, Nick: "alice", Content: "hello", Language: "en", At: at})
	require.True(t, ok)
	require.Equal(t, "message", frame.Kind)
	require.Equal(t, "alice", frame.Nick)
	require.Equal(t, "en", frame.Language)

	frame, ok = toFrame(event.CursorMoved{Conversation: 10, Sender: 1, Position: 4, At: at})
	require.True(t, ok)
	require.Equal(t, "cursor", frame.Kind)
	require.Equal(t, 4, frame.Position)

	frame, ok = toFrame(event.SnapshotTaken{Conversation: 10, Requester: 1, Buffer: "state", At: at})
	require.True(t, ok)
	require.Equal(t, "snapshot", frame.Kind)
	require.Equal(t, "state", frame.Buffer)
}

func TestToFrame_RawCommitNeverLeaves(t *testing.T) {
	// Only the sanitized form of a committed message is sent to clients.
	_, ok := toFrame(event.MessageCommitted{Conversation: 10, Sender: 1, Content: "unmoderated"})

	require.False(t, ok)
}
