package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webqa"
)

// Ensure LoggingQueryService implements webqa.QueryService.
var _ webqa.QueryService = (*LoggingQueryService)(nil)

// LoggingQueryService wraps a QueryService with logging.
type LoggingQueryService struct {
	next   webqa.QueryService
	logger *slog.Logger
}

// NewLoggingQueryService creates a new LoggingQueryService.
func NewLoggingQueryService(next webqa.QueryService, logger *slog.Logger) *LoggingQueryService {
	return &LoggingQueryService{next: next, logger: logger}
}

// Process delegates to the wrapped service and logs the operation.
func (s *LoggingQueryService) Process(ctx context.Context, req *webqa.PredictionRequest) (resp *webqa.PredictionResponse, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"id", req.ID,
			"duration", time.Since(begin),
		}
		if resp != nil {
			attrs = append(attrs, "sources", len(resp.Sources))
			if resp.Answer != nil {
				attrs = append(attrs, "answer", *resp.Answer)
			}
		}
		if err != nil {
			attrs = append(attrs, "err", err)
			s.logger.Error("process request", attrs...)
			return
		}
		s.logger.Info("process request", attrs...)
	}(time.Now())
	return s.next.Process(ctx, req)
}
