package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webqa"
)

// Ensure LoggingSearcher implements webqa.Searcher.
var _ webqa.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with logging.
type LoggingSearcher struct {
	next   webqa.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next webqa.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search delegates to the wrapped searcher and logs the operation.
func (s *LoggingSearcher) Search(ctx context.Context, query string, limit int) (links []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search",
			"query", query,
			"limit", limit,
			"count", len(links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, limit)
}
