// Package prometheus instruments webqa services with Prometheus metrics.
package prometheus

import (
	"context"
	"net/http"
	"time"

	"github.com/fwojciec/webqa"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Operation labels.
const (
	OpSearch  = "search"
	OpFetch   = "fetch"
	OpChat    = "chat"
	OpProcess = "process"
)

// Outcome label for calls that returned no error. Failed calls are labeled
// with their webqa error code.
const OutcomeOK = "ok"

// Metrics holds the collectors shared by the instrumented services.
type Metrics struct {
	registry *prometheus.Registry

	Calls    *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	InFlight prometheus.Gauge
}

// NewMetrics creates collectors on a fresh registry that also carries the
// Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Calls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webqa_calls_total",
				Help: "Total number of calls per operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		Duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webqa_call_duration_seconds",
				Help:    "Duration of calls in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 80, 120},
			},
			[]string{"operation"},
		),
		InFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "webqa_requests_in_flight",
				Help: "Number of prediction requests being processed",
			},
		),
	}
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observe(op string, begin time.Time, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = webqa.ErrorCode(err)
	}
	m.Calls.WithLabelValues(op, outcome).Inc()
	m.Duration.WithLabelValues(op).Observe(time.Since(begin).Seconds())
}

// Ensure InstrumentedSearcher implements webqa.Searcher.
var _ webqa.Searcher = (*InstrumentedSearcher)(nil)

// InstrumentedSearcher records search calls.
type InstrumentedSearcher struct {
	next    webqa.Searcher
	metrics *Metrics
}

// NewInstrumentedSearcher creates a new InstrumentedSearcher.
func NewInstrumentedSearcher(next webqa.Searcher, m *Metrics) *InstrumentedSearcher {
	return &InstrumentedSearcher{next: next, metrics: m}
}

func (s *InstrumentedSearcher) Search(ctx context.Context, query string, limit int) (links []string, err error) {
	defer func(begin time.Time) { s.metrics.observe(OpSearch, begin, err) }(time.Now())
	return s.next.Search(ctx, query, limit)
}

// Ensure InstrumentedFetcher implements webqa.Fetcher.
var _ webqa.Fetcher = (*InstrumentedFetcher)(nil)

// InstrumentedFetcher records page fetches. Each retry attempt counts as a
// separate call.
type InstrumentedFetcher struct {
	next    webqa.Fetcher
	metrics *Metrics
}

// NewInstrumentedFetcher creates a new InstrumentedFetcher.
func NewInstrumentedFetcher(next webqa.Fetcher, m *Metrics) *InstrumentedFetcher {
	return &InstrumentedFetcher{next: next, metrics: m}
}

func (f *InstrumentedFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) { f.metrics.observe(OpFetch, begin, err) }(time.Now())
	return f.next.Fetch(ctx, url)
}

func (f *InstrumentedFetcher) Close() error {
	return f.next.Close()
}

// Ensure InstrumentedChatClient implements webqa.ChatClient.
var _ webqa.ChatClient = (*InstrumentedChatClient)(nil)

// InstrumentedChatClient records LLM calls.
type InstrumentedChatClient struct {
	next    webqa.ChatClient
	metrics *Metrics
}

// NewInstrumentedChatClient creates a new InstrumentedChatClient.
func NewInstrumentedChatClient(next webqa.ChatClient, m *Metrics) *InstrumentedChatClient {
	return &InstrumentedChatClient{next: next, metrics: m}
}

func (c *InstrumentedChatClient) Chat(ctx context.Context, messages []webqa.Message) (reply string, err error) {
	defer func(begin time.Time) { c.metrics.observe(OpChat, begin, err) }(time.Now())
	return c.next.Chat(ctx, messages)
}

func (c *InstrumentedChatClient) Model() string {
	return c.next.Model()
}

// Ensure InstrumentedQueryService implements webqa.QueryService.
var _ webqa.QueryService = (*InstrumentedQueryService)(nil)

// InstrumentedQueryService records whole prediction requests.
type InstrumentedQueryService struct {
	next    webqa.QueryService
	metrics *Metrics
}

// NewInstrumentedQueryService creates a new InstrumentedQueryService.
func NewInstrumentedQueryService(next webqa.QueryService, m *Metrics) *InstrumentedQueryService {
	return &InstrumentedQueryService{next: next, metrics: m}
}

func (s *InstrumentedQueryService) Process(ctx context.Context, req *webqa.PredictionRequest) (resp *webqa.PredictionResponse, err error) {
	s.metrics.InFlight.Inc()
	defer s.metrics.InFlight.Dec()
	defer func(begin time.Time) { s.metrics.observe(OpProcess, begin, err) }(time.Now())
	return s.next.Process(ctx, req)
}
