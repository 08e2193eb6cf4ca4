package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDraft_Replace_AppendsAtEnd(t *testing.T) {
	d := &Draft{}

	d.Replace(Selection{Start: 0, End: 0}, "hello")
	d.Replace(Selection{Start: 5, End: 5}, " world")

	require.Equal(t, "hello world", d.String())
}

func TestDraft_Replace_DeletesSelectedRange(t *testing.T) {
	d := &Draft{}
	d.Replace(Selection{}, "Ohhhh MAN! X3")

	d.Replace(Selection{Start: 4, End: 8}, "")

	require.Equal(t, "OhhhN! X3", d.String())
}

func TestDraft_Replace_OverwritesMiddle(t *testing.T) {
	d := &Draft{}
	d.Replace(Selection{}, "hello world")

	d.Replace(Selection{Start: 6, End: 11}, "there")

	require.Equal(t, "hello there", d.String())
}

func TestDraft_Replace_RuneOffsetsSurviveMultibyte(t *testing.T) {
	d := &Draft{}
	d.Replace(Selection{}, "héllo")

	// Offsets count runes, so the accented rune is one position.
	d.Replace(Selection{Start: 1, End: 2}, "e")

	require.Equal(t, "hello", d.String())
	require.Equal(t, 5, d.Len())
}

func TestDraft_Replace_ClampsStaleSelection(t *testing.T) {
	d := &Draft{}
	d.Replace(Selection{}, "abc")

	// The client computed this range against a longer buffer.
	d.Replace(Selection{Start: 2, End: 50}, "!")

	require.Equal(t, "ab!", d.String())
}

func TestDraft_Solidify_ProducesMessageAndResets(t *testing.T) {
	d := &Draft{}
	d.Replace(Selection{}, "final text")
	at := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)

	msg := d.Solidify(7, 42, "alice", at)

	require.Equal(t, ConversationID(7), msg.Conversation)
	require.Equal(t, ParticipantID(42), msg.SenderID)
	require.Equal(t, "alice", msg.Nick)
	require.Equal(t, "final text", msg.Content)
	require.Equal(t, at, msg.CommittedAt)
	require.NotEqual(t, "00000000-0000-0000-0000-000000000000", msg.ID.String())

	// The draft restarts empty after a commit.
	require.Equal(t, "", d.String())
	require.Equal(t, 0, d.Len())
}
