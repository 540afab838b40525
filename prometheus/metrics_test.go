package prometheus_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/webqa"
	"github.com/fwojciec/webqa/mock"
	wqprom "github.com/fwojciec/webqa/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentedSearcher(t *testing.T) {
	t.Parallel()

	t.Run("counts successful and failed searches", func(t *testing.T) {
		t.Parallel()

		m := wqprom.NewMetrics()
		fail := false
		inner := &mock.Searcher{
			SearchFn: func(ctx context.Context, query string, limit int) ([]string, error) {
				if fail {
					return nil, webqa.Errorf(webqa.EUNAVAILABLE, "down")
				}
				return []string{"https://a.example"}, nil
			},
		}
		searcher := wqprom.NewInstrumentedSearcher(inner, m)

		_, err := searcher.Search(context.Background(), "q", 1)
		require.NoError(t, err)
		fail = true
		_, err = searcher.Search(context.Background(), "q", 1)
		require.Error(t, err)

		assert.InDelta(t, 1, testutil.ToFloat64(m.Calls.WithLabelValues(wqprom.OpSearch, wqprom.OutcomeOK)), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(m.Calls.WithLabelValues(wqprom.OpSearch, webqa.EUNAVAILABLE)), 0)
		assert.Equal(t, 1, testutil.CollectAndCount(m.Duration, "webqa_call_duration_seconds"))
	})
}

func TestInstrumentedFetcher(t *testing.T) {
	t.Parallel()

	t.Run("labels plain errors as internal", func(t *testing.T) {
		t.Parallel()

		m := wqprom.NewMetrics()
		closed := false
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("connection refused")
			},
			CloseFn: func() error {
				closed = true
				return nil
			},
		}
		fetcher := wqprom.NewInstrumentedFetcher(inner, m)

		_, err := fetcher.Fetch(context.Background(), "https://a.example")
		require.Error(t, err)
		require.NoError(t, fetcher.Close())

		assert.InDelta(t, 1, testutil.ToFloat64(m.Calls.WithLabelValues(wqprom.OpFetch, webqa.EINTERNAL)), 0)
		assert.True(t, closed)
	})
}

func TestInstrumentedChatClient(t *testing.T) {
	t.Parallel()

	t.Run("counts chats and delegates model", func(t *testing.T) {
		t.Parallel()

		m := wqprom.NewMetrics()
		inner := &mock.ChatClient{
			ChatFn: func(ctx context.Context, messages []webqa.Message) (string, error) {
				return "reply", nil
			},
			ModelFn: func() string { return "gpt-4o-mini" },
		}
		client := wqprom.NewInstrumentedChatClient(inner, m)

		reply, err := client.Chat(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "reply", reply)
		assert.Equal(t, "gpt-4o-mini", client.Model())
		assert.InDelta(t, 1, testutil.ToFloat64(m.Calls.WithLabelValues(wqprom.OpChat, wqprom.OutcomeOK)), 0)
	})
}

func TestInstrumentedQueryService(t *testing.T) {
	t.Parallel()

	t.Run("tracks in-flight requests", func(t *testing.T) {
		t.Parallel()

		m := wqprom.NewMetrics()
		var during float64
		inner := &mock.QueryService{
			ProcessFn: func(ctx context.Context, req *webqa.PredictionRequest) (*webqa.PredictionResponse, error) {
				during = testutil.ToFloat64(m.InFlight)
				return &webqa.PredictionResponse{ID: req.ID}, nil
			},
		}
		svc := wqprom.NewInstrumentedQueryService(inner, m)

		_, err := svc.Process(context.Background(), &webqa.PredictionRequest{ID: 1, Query: "q"})

		require.NoError(t, err)
		assert.InDelta(t, 1, during, 0)
		assert.InDelta(t, 0, testutil.ToFloat64(m.InFlight), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(m.Calls.WithLabelValues(wqprom.OpProcess, wqprom.OutcomeOK)), 0)
	})
}

func TestMetrics_Handler(t *testing.T) {
	t.Parallel()

	t.Run("exposes collected metrics", func(t *testing.T) {
		t.Parallel()

		m := wqprom.NewMetrics()
		m.Calls.WithLabelValues(wqprom.OpSearch, wqprom.OutcomeOK).Inc()

		rec := httptest.NewRecorder()
		m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		body, err := io.ReadAll(rec.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `webqa_calls_total{operation="search",outcome="ok"} 1`)
		assert.Contains(t, string(body), "go_goroutines")
	})
}
