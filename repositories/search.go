package repositories

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/blugelabs/bluge"

	"hubbub/domain/search"
)

// SearchIndex maintains a Bluge full-text index over solidified
// messages so the viewer can query the log by content.
type SearchIndex struct {
	writer *bluge.Writer
	log    *slog.Logger
}

func NewSearchIndex(writer *bluge.Writer, log *slog.Logger) *SearchIndex {
	return &SearchIndex{writer: writer, log: log}
}

// Index upserts one message document, keyed by its UUID.
func (s *SearchIndex) Index(message DiskMessage) error {
	doc := bluge.NewDocument(message.ID.String()).
		AddField(bluge.NewTextField("content", message.Content).StoreValue()).
		AddField(bluge.NewKeywordField("conversation", strconv.FormatInt(message.Conversation, 10)).StoreValue()).
		AddField(bluge.NewKeywordField("nick", message.Nick).StoreValue()).
		AddField(bluge.NewDateTimeField("at", message.At))

	return s.writer.Update(doc.ID(), doc)
}

// Hit is one search result, rebuilt from the stored fields.
type Hit struct {
	ID           string
	Conversation string
	Nick         string
	Content      string
}

// Search runs a match query over message content, optionally restricted
// to one conversation.
func (s *SearchIndex) Search(ctx context.Context, q *search.Query) ([]Hit, error) {
	reader, err := s.writer.Reader()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := reader.Close(); err != nil {
			s.log.Warn("Failed to close index reader", "error", err)
		}
	}()

	return runSearch(ctx, reader, q)
}

// SearchStored runs the same query against an index on disk without
// taking the writer lock. The viewer uses it while the engine owns the
// writer.
func SearchStored(ctx context.Context, cfg bluge.Config, q *search.Query) ([]Hit, error) {
	reader, err := bluge.OpenReader(cfg)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return runSearch(ctx, reader, q)
}

func runSearch(ctx context.Context, reader *bluge.Reader, q *search.Query) ([]Hit, error) {
	query := bluge.NewBooleanQuery().
		AddMust(bluge.NewMatchQuery(q.Terms).SetField("content"))
	if q.Conversation != "" {
		query.AddMust(bluge.NewTermQuery(q.Conversation).SetField("conversation"))
	}

	request := bluge.NewTopNSearch(q.Limit, query)
	iterator, err := reader.Search(ctx, request)
	if err != nil {
		return nil, err
	}

	var hits []Hit
	for {
		match, err := iterator.Next()
		if err != nil {
			return nil, err
		}
		if match == nil {
			break
		}

		var hit Hit
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "_id":
				hit.ID = string(value)
			case "conversation":
				hit.Conversation = string(value)
			case "nick":
				hit.Nick = string(value)
			case "content":
				hit.Content = string(value)
			}
			return true
		})
		if err != nil {
			return nil, err
		}
		hits = append(hits, hit)
	}
	return hits, nil
}
