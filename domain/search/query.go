package search

import (
	"strconv"
	"strings"
)

// Query represents the structured parameters for a message-log search.
// It decouples the raw input from the index engine requirements.
type Query struct {
	RawInput     string // The original input
	Terms        string // The actual text to search in the index
	Conversation string // Target conversation, empty means all
	Limit        int    // Pagination: number of results
}

// NewQuery parses a raw string to extract command-line style arguments.
// Example: invoice draft --convo 12 --limit 5
func NewQuery(input string) *Query {
	query := &Query{
		RawInput: input,
		Limit:    10, // Default limit
	}

	parts := strings.Fields(input)
	var textTerms []string

	for i := 0; i < len(parts); i++ {
		part := parts[i]

		if strings.HasPrefix(part, "--") && i+1 < len(parts) {
			key := strings.TrimPrefix(part, "--")
			val := parts[i+1]

			switch key {
			case "convo":
				query.Conversation = val
			case "limit":
				if n, err := strconv.Atoi(val); err == nil && n > 0 {
					query.Limit = n
				}
			}
			i++ // Skip the value part in next iteration
			continue
		}

		textTerms = append(textTerms, part)
	}

	query.Terms = strings.Join(textTerms, " ")
	return query
}
