package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/fwojciec/webqa"
	"github.com/fwojciec/webqa/duckduckgo"
	"github.com/fwojciec/webqa/gemini"
	"github.com/fwojciec/webqa/gofakeit"
	"github.com/fwojciec/webqa/gojsonschema"
	"github.com/fwojciec/webqa/google"
	"github.com/fwojciec/webqa/goquery"
	"github.com/fwojciec/webqa/htmltomarkdown"
	webqahttp "github.com/fwojciec/webqa/http"
	"github.com/fwojciec/webqa/openai"
	"github.com/fwojciec/webqa/pipeline"
	wqprom "github.com/fwojciec/webqa/prometheus"
	"github.com/fwojciec/webqa/readability"
	"github.com/fwojciec/webqa/rod"
	wqslog "github.com/fwojciec/webqa/slog"
	"github.com/fwojciec/webqa/trafilatura"
	"google.golang.org/genai"
)

// NewLogger returns a logger writing to w at the named level.
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// NewExtractor returns the extractor registered under name. Unknown names
// fall back to the plain text extractor.
func NewExtractor(name string) webqa.Extractor {
	switch name {
	case "trafilatura":
		return trafilatura.NewExtractor()
	case "readability":
		return readability.NewExtractor()
	case "markdown":
		return htmltomarkdown.NewExtractor()
	default:
		return goquery.NewExtractor()
	}
}

// NewFetcher returns the configured page fetcher wrapped with logging and
// metrics.
func NewFetcher(cfg *Config, logger *slog.Logger, metrics *wqprom.Metrics) (webqa.Fetcher, error) {
	agents := gofakeit.NewUserAgentSource()

	var fetcher webqa.Fetcher
	switch cfg.FetchBackend {
	case "rod":
		f, err := rod.NewFetcher(
			rod.WithFetchTimeout(cfg.FetchTimeout),
			rod.WithUserAgents(agents),
		)
		if err != nil {
			return nil, err
		}
		fetcher = f
	default:
		fetcher = webqahttp.NewFetcher(
			webqahttp.WithTimeout(cfg.FetchTimeout),
			webqahttp.WithUserAgents(agents),
		)
	}

	return wqprom.NewInstrumentedFetcher(wqslog.NewLoggingFetcher(fetcher, logger), metrics), nil
}

// NewSearcher returns the configured searcher wrapped with logging and
// metrics.
func NewSearcher(cfg *Config, logger *slog.Logger, metrics *wqprom.Metrics) webqa.Searcher {
	agents := gofakeit.NewUserAgentSource()

	var searcher webqa.Searcher
	switch cfg.Search {
	case "google":
		searcher = google.NewSearcher(
			google.WithTimeout(cfg.SearchTimeout),
			google.WithUserAgents(agents),
		)
	default:
		searcher = duckduckgo.NewSearcher(
			duckduckgo.WithTimeout(cfg.SearchTimeout),
			duckduckgo.WithUserAgents(agents),
		)
	}

	return wqprom.NewInstrumentedSearcher(wqslog.NewLoggingSearcher(searcher, logger), metrics)
}

// NewChatClient returns the configured LLM client wrapped with logging and
// metrics.
func NewChatClient(ctx context.Context, cfg *Config, logger *slog.Logger, metrics *wqprom.Metrics) (webqa.ChatClient, error) {
	var client webqa.ChatClient
	switch cfg.LLM {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}
		gc, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:     cfg.GeminiAPIKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: &http.Client{Timeout: cfg.LLMTimeout},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		var opts []gemini.Option
		if cfg.Model != "" {
			opts = append(opts, gemini.WithModel(cfg.Model))
		}
		client = gemini.NewClient(gc, opts...)
	default:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		opts := []openai.Option{openai.WithTimeout(cfg.LLMTimeout)}
		if cfg.Endpoint != "" {
			opts = append(opts, openai.WithBaseURL(cfg.Endpoint))
		}
		if cfg.Model != "" {
			opts = append(opts, openai.WithModel(cfg.Model))
		}
		client = openai.NewClient(cfg.APIKey, opts...)
	}

	return wqprom.NewInstrumentedChatClient(wqslog.NewLoggingChatClient(client, logger), metrics), nil
}

// NewService assembles the answering pipeline around fetcher and extractor.
func NewService(ctx context.Context, cfg *Config, fetcher webqa.Fetcher, extractor webqa.Extractor, logger *slog.Logger, metrics *wqprom.Metrics) (webqa.QueryService, error) {
	client, err := NewChatClient(ctx, cfg, logger, metrics)
	if err != nil {
		return nil, err
	}

	decoder, err := gojsonschema.NewAnswerDecoder()
	if err != nil {
		return nil, fmt.Errorf("failed to compile answer schema: %w", err)
	}

	instruction := cfg.SystemInstruction
	if instruction == "" {
		instruction = pipeline.DefaultSystemInstruction
	}

	svc := &pipeline.Service{
		Retriever: &pipeline.LinkRetriever{
			Searcher: NewSearcher(cfg, logger, metrics),
		},
		Fetcher: &pipeline.ContentFetcher{
			Fetcher:     fetcher,
			Extractor:   extractor,
			Logger:      logger,
			Concurrency: cfg.Concurrency,
		},
		Generator: &pipeline.Generator{
			Client:            client,
			Decoder:           decoder,
			Logger:            logger,
			SystemInstruction: instruction,
		},
		Logger:   logger,
		MaxLinks: cfg.MaxLinks,
	}

	return wqprom.NewInstrumentedQueryService(wqslog.NewLoggingQueryService(svc, logger), metrics), nil
}
