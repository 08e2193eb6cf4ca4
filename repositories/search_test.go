package repositories

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"hubbub/domain/search"
)

func newTestIndex(t *testing.T) *SearchIndex {
	t.Helper()
	writer, err := bluge.OpenWriter(bluge.DefaultConfig(t.TempDir()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = writer.Close() })
	return NewSearchIndex(writer, slog.Default())
}

func indexedMessage(conversation int64, nick, content string) DiskMessage {
	return DiskMessage{
		ID:           uuid.New(),
		Conversation: conversation,
		Author:       1,
		Nick:         nick,
		Content:      content,
		At:           time.Now().UTC(),
	}
}

func TestSearchIndex_Search_MatchesContent(t *testing.T) {
	index := newTestIndex(t)
	require.NoError(t, index.Index(indexedMessage(10, "alice", "the invoice draft is ready")))
	require.NoError(t, index.Index(indexedMessage(10, "bob", "lunch at noon?")))

	hits, err := index.Search(context.Background(), search.NewQuery("invoice"))

	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, "alice", hits[0].Nick)
	require.Equal(t, "the invoice draft is ready", hits[0].Content)
}

func TestSearchIndex_Search_ConversationFilter(t *testing.T) {
	index := newTestIndex(t)
	require.NoError(t, index.Index(indexedMessage(10, "alice", "project update")))
	require.NoError(t, index.Index(indexedMessage(20, "bob", "project kickoff")))

	hits, err := index.Search(context.Background(), search.NewQuery("project --convo 20"))

	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, "bob", hits[0].Nick)
	require.Equal(t, "20", hits[0].Conversation)
}

func TestSearchIndex_Search_NoMatch(t *testing.T) {
	index := newTestIndex(t)
	require.NoError(t, index.Index(indexedMessage(10, "alice", "hello world")))

	hits, err := index.Search(context.Background(), search.NewQuery("absent"))

	require.NoError(t, err)
	require.Empty(t, hits)
}

func TestSearchIndex_Index_UpdateReplacesDocument(t *testing.T) {
	index := newTestIndex(t)
	message := indexedMessage(10, "alice", "original wording")
	require.NoError(t, index.Index(message))

	message.Content = "revised wording"
	require.NoError(t, index.Index(message))

	hits, err := index.Search(context.Background(), search.NewQuery("wording"))
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, "revised wording", hits[0].Content)
}
