package mock

import (
	"context"

	"github.com/fwojciec/webqa"
)

var _ webqa.QueryService = (*QueryService)(nil)

// QueryService is a mock implementation of webqa.QueryService.
type QueryService struct {
	ProcessFn func(ctx context.Context, req *webqa.PredictionRequest) (*webqa.PredictionResponse, error)
}

func (s *QueryService) Process(ctx context.Context, req *webqa.PredictionRequest) (*webqa.PredictionResponse, error) {
	return s.ProcessFn(ctx, req)
}
