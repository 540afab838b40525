package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/webqa"
	"github.com/fwojciec/webqa/retry"
	"golang.org/x/sync/errgroup"
)

// ContentFetcher downloads pages and joins their text into a grounding context.
// A page that cannot be fetched or extracted is logged and skipped.
type ContentFetcher struct {
	Fetcher   webqa.Fetcher
	Extractor webqa.Extractor
	Logger    *slog.Logger

	// RetryDelays are the waits between attempts for a single URL.
	// Defaults to retry.DefaultDelays() (three attempts) if nil.
	RetryDelays []time.Duration

	// Concurrency bounds how many URLs are fetched at once.
	// Values below 2 fetch sequentially.
	Concurrency int
}

// FetchAll fetches every URL and returns the text of each successful page
// followed by a blank line, in input order. It never fails.
func (f *ContentFetcher) FetchAll(ctx context.Context, urls []string) string {
	texts := make([]string, len(urls))
	ok := make([]bool, len(urls))

	var g errgroup.Group
	g.SetLimit(max(1, f.Concurrency))
	for i, url := range urls {
		g.Go(func() error {
			texts[i], ok[i] = f.fetchOne(ctx, url)
			return nil
		})
	}
	_ = g.Wait()

	var sb strings.Builder
	for i := range urls {
		if !ok[i] {
			continue
		}
		sb.WriteString(texts[i])
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func (f *ContentFetcher) fetchOne(ctx context.Context, url string) (string, bool) {
	logger := loggerOrDiscard(f.Logger)

	delays := f.RetryDelays
	if delays == nil {
		delays = retry.DefaultDelays()
	}
	policy := retry.Policy{
		Delays: delays,
		Log: func(attempt int, err error) {
			logger.Debug("retrying page", "url", url, "attempt", attempt, "err", err)
		},
	}

	text, err := retry.Do(ctx, policy, func(ctx context.Context) (string, error) {
		html, err := f.Fetcher.Fetch(ctx, url)
		if err != nil {
			return "", err
		}
		return f.Extractor.Extract(html)
	})
	if err != nil {
		logger.Error("failed to retrieve page", "url", url, "err", err)
		return "", false
	}
	return text, true
}
