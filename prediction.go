package webqa

import "context"

// PredictionRequest is an inbound question. An empty Query is valid and
// yields an empty question with no options.
type PredictionRequest struct {
	ID    int    `json:"id"`
	Query string `json:"query"`
}

// PredictionResponse is the answer returned to the caller.
type PredictionResponse struct {
	ID        int      `json:"id"`
	Answer    *int     `json:"answer"`
	Reasoning string   `json:"reasoning"`
	Sources   []string `json:"sources"`
}

// QueryService answers prediction requests.
type QueryService interface {
	// Process runs the full answering pipeline for a single request.
	// Returns EUNAVAILABLE if search or the LLM cannot be reached.
	Process(ctx context.Context, req *PredictionRequest) (*PredictionResponse, error)
}
