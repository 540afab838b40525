package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/webqa/goquery"
	webqahttp "github.com/fwojciec/webqa/http"
	"github.com/fwojciec/webqa/mock"
	"github.com/fwojciec/webqa/pipeline"
	"github.com/stretchr/testify/assert"
)

// noDelays allows three attempts without waiting.
var noDelays = []time.Duration{0, 0}

// passthrough returns the fetched markup unchanged.
var passthrough = &mock.Extractor{
	ExtractFn: func(html string) (string, error) { return html, nil },
}

func TestContentFetcher_FetchAll(t *testing.T) {
	t.Parallel()

	t.Run("returns empty string for no urls", func(t *testing.T) {
		t.Parallel()

		f := &pipeline.ContentFetcher{}

		assert.Equal(t, "", f.FetchAll(context.Background(), nil))
		assert.Equal(t, "", f.FetchAll(context.Background(), []string{}))
	})

	t.Run("joins pages with blank lines in input order", func(t *testing.T) {
		t.Parallel()

		f := &pipeline.ContentFetcher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					return "text of " + url, nil
				},
			},
			Extractor:   passthrough,
			RetryDelays: noDelays,
		}

		got := f.FetchAll(context.Background(), []string{"a", "b", "c"})

		assert.Equal(t, "text of a\n\ntext of b\n\ntext of c\n\n", got)
	})

	t.Run("skips a url that fails every attempt", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32
		var buf bytes.Buffer
		f := &pipeline.ContentFetcher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					if url == "bad" {
						attempts.Add(1)
						return "", errors.New("connection refused")
					}
					return "text of " + url, nil
				},
			},
			Extractor:   passthrough,
			Logger:      slog.New(slog.NewTextHandler(&buf, nil)),
			RetryDelays: noDelays,
		}

		got := f.FetchAll(context.Background(), []string{"a", "bad", "c"})

		assert.Equal(t, "text of a\n\ntext of c\n\n", got)
		assert.Equal(t, int32(3), attempts.Load())
		assert.Contains(t, buf.String(), "failed to retrieve page")
		assert.Contains(t, buf.String(), "url=bad")
	})

	t.Run("retries extraction failures", func(t *testing.T) {
		t.Parallel()

		var calls int
		f := &pipeline.ContentFetcher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) { return "<p>x</p>", nil },
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(html string) (string, error) {
					calls++
					if calls < 3 {
						return "", errors.New("parse error")
					}
					return "x", nil
				},
			},
			RetryDelays: noDelays,
		}

		got := f.FetchAll(context.Background(), []string{"a"})

		assert.Equal(t, "x\n\n", got)
		assert.Equal(t, 3, calls)
	})

	t.Run("keeps separator for page without text", func(t *testing.T) {
		t.Parallel()

		f := &pipeline.ContentFetcher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) { return "", nil },
			},
			Extractor:   passthrough,
			RetryDelays: noDelays,
		}

		got := f.FetchAll(context.Background(), []string{"a", "b"})

		assert.Equal(t, "\n\n\n\n", got)
	})

	t.Run("preserves order when fetching concurrently", func(t *testing.T) {
		t.Parallel()

		urls := []string{"a", "b", "c", "d", "e"}
		f := &pipeline.ContentFetcher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					// Earlier URLs finish later.
					time.Sleep(time.Duration(len(urls)-strings.Index("abcde", url)) * time.Millisecond)
					if url == "c" {
						return "", errors.New("timeout")
					}
					return url, nil
				},
			},
			Extractor:   passthrough,
			RetryDelays: noDelays,
			Concurrency: 5,
		}

		got := f.FetchAll(context.Background(), urls)

		assert.Equal(t, "a\n\nb\n\nd\n\ne\n\n", got)
	})

	t.Run("retries page whose first response outlives client timeout", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				select {
				case <-r.Context().Done():
				case <-time.After(300 * time.Millisecond):
				}
				return
			}
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<p>Paris</p>"))
		}))
		defer srv.Close()

		f := &pipeline.ContentFetcher{
			Fetcher:     webqahttp.NewFetcher(webqahttp.WithTimeout(100 * time.Millisecond)),
			Extractor:   goquery.NewExtractor(),
			RetryDelays: noDelays,
		}

		got := f.FetchAll(context.Background(), []string{srv.URL})

		assert.Equal(t, "Paris\n\n", got)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("keeps empty page without retrying", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Header().Set("Content-Type", "text/html")
		}))
		defer srv.Close()

		var buf bytes.Buffer
		f := &pipeline.ContentFetcher{
			Fetcher:     webqahttp.NewFetcher(),
			Extractor:   goquery.NewExtractor(),
			Logger:      slog.New(slog.NewTextHandler(&buf, nil)),
			RetryDelays: noDelays,
		}

		got := f.FetchAll(context.Background(), []string{srv.URL})

		assert.Equal(t, "\n\n", got)
		assert.Equal(t, int32(1), calls.Load())
		assert.NotContains(t, buf.String(), "failed to retrieve page")
	})
}
