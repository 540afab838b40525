package pipeline

import (
	"context"

	"github.com/fwojciec/webqa"
)

// LinkRetriever finds candidate source URLs for a question.
type LinkRetriever struct {
	Searcher webqa.Searcher
}

// Retrieve returns up to maxLinks URLs for question in the order the
// searcher ranked them. Any options block is stripped from question before
// searching. Search errors are returned unchanged.
func (r *LinkRetriever) Retrieve(ctx context.Context, question string, maxLinks int) ([]string, error) {
	if maxLinks < 1 {
		return nil, webqa.Errorf(webqa.EINVALID, "max links must be positive, got %d", maxLinks)
	}

	query := webqa.ParseQuery(question).Question
	links, err := r.Searcher.Search(ctx, query, maxLinks)
	if err != nil {
		return nil, err
	}
	if len(links) > maxLinks {
		links = links[:maxLinks]
	}
	return links, nil
}
