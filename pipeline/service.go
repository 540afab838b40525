package pipeline

import (
	"context"
	"log/slog"

	"github.com/fwojciec/webqa"
)

// DefaultMaxLinks is the number of search results used as sources.
// A single link keeps latency and token cost low.
const DefaultMaxLinks = 1

// Ensure Service implements webqa.QueryService at compile time.
var _ webqa.QueryService = (*Service)(nil)

// Service runs the answering pipeline for one request at a time.
// Service holds no per-request state and is safe for concurrent use.
type Service struct {
	Retriever *LinkRetriever
	Fetcher   *ContentFetcher
	Generator *Generator
	Logger    *slog.Logger

	// MaxLinks is the number of search results to ground on.
	// Defaults to DefaultMaxLinks if zero.
	MaxLinks int
}

// Process answers req. Search and generation failures are returned as
// EUNAVAILABLE; unreachable pages only thin out the grounding context.
func (s *Service) Process(ctx context.Context, req *webqa.PredictionRequest) (*webqa.PredictionResponse, error) {
	logger := loggerOrDiscard(s.Logger)

	q := webqa.ParseQuery(req.Query)
	logger.Debug("received query", "id", req.ID, "query", req.Query, "question", q.Question, "options", q.Options)

	links, err := s.Retriever.Retrieve(ctx, q.Question, s.maxLinks())
	if err != nil {
		return nil, webqa.Errorf(webqa.EUNAVAILABLE, "search: %v", err)
	}
	logger.Debug("obtained links", "id", req.ID, "links", links)

	content := s.Fetcher.FetchAll(ctx, links)
	prompt := webqa.BuildPrompt(q.Question, q.Options, content)

	answer, err := s.Generator.Generate(ctx, prompt)
	if err != nil {
		return nil, webqa.Errorf(webqa.EUNAVAILABLE, "generate answer: %v", err)
	}
	logger.Debug("generated answer", "id", req.ID, "answer", optionValue(answer.Answer), "reasoning", answer.Reasoning)

	resp := &webqa.PredictionResponse{
		ID:        req.ID,
		Reasoning: answer.Reasoning + Signature(s.Generator.Client.Model()),
		Sources:   append([]string{}, links...),
	}
	if q.HasOptions() {
		resp.Answer = answer.Answer
	}
	logger.Debug("finalized response", "id", resp.ID, "answer", optionValue(resp.Answer), "sources", resp.Sources)
	return resp, nil
}

func (s *Service) maxLinks() int {
	if s.MaxLinks <= 0 {
		return DefaultMaxLinks
	}
	return s.MaxLinks
}

// optionValue dereferences an option number for logging.
func optionValue(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}

// Signature returns the provenance line appended to every reasoning.
func Signature(model string) string {
	return "\n" + model
}
