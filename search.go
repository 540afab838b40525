package webqa

import "context"

// Searcher finds web pages relevant to a query.
type Searcher interface {
	// Search returns up to limit result URLs in relevance order.
	Search(ctx context.Context, query string, limit int) ([]string, error)
}
