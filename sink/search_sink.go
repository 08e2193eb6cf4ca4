package sink

import (
	"context"

	"hubbub/domain/event"
	"hubbub/repositories"
)

// SearchSink feeds sanitized committed messages into the full-text
// index.
type SearchSink struct {
	index *repositories.SearchIndex
}

func NewSearchSink(index *repositories.SearchIndex) SearchSink {
	return SearchSink{index: index}
}

func (s SearchSink) Consume(_ context.Context, e event.DomainEvent) error {
	if evt, ok := e.(event.SanitizedMessage); ok {
		return s.index.Index(toDiskMessage(evt))
	}
	return nil
}
