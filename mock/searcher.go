package mock

import (
	"context"

	"github.com/fwojciec/webqa"
)

var _ webqa.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of webqa.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, query string, limit int) ([]string, error)
}

func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]string, error) {
	return s.SearchFn(ctx, query, limit)
}
