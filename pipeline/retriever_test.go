package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/webqa"
	"github.com/fwojciec/webqa/mock"
	"github.com/fwojciec/webqa/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkRetriever_Retrieve(t *testing.T) {
	t.Parallel()

	t.Run("returns links in searcher order", func(t *testing.T) {
		t.Parallel()

		var gotQuery string
		var gotLimit int
		r := &pipeline.LinkRetriever{Searcher: &mock.Searcher{
			SearchFn: func(_ context.Context, query string, limit int) ([]string, error) {
				gotQuery, gotLimit = query, limit
				return []string{"https://a.example", "https://b.example"}, nil
			},
		}}

		links, err := r.Retrieve(context.Background(), "What is the capital of France?", 3)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, links)
		assert.Equal(t, "What is the capital of France?", gotQuery)
		assert.Equal(t, 3, gotLimit)
	})

	t.Run("truncates to max links", func(t *testing.T) {
		t.Parallel()

		r := &pipeline.LinkRetriever{Searcher: &mock.Searcher{
			SearchFn: func(context.Context, string, int) ([]string, error) {
				return []string{"https://a.example", "https://b.example", "https://c.example"}, nil
			},
		}}

		links, err := r.Retrieve(context.Background(), "q", 1)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://a.example"}, links)
	})

	t.Run("searches bare question only", func(t *testing.T) {
		t.Parallel()

		var gotQuery string
		r := &pipeline.LinkRetriever{Searcher: &mock.Searcher{
			SearchFn: func(_ context.Context, query string, _ int) ([]string, error) {
				gotQuery = query
				return nil, nil
			},
		}}

		_, err := r.Retrieve(context.Background(), "Pick the capital\n1. London\n2. Paris", 1)

		require.NoError(t, err)
		assert.Equal(t, "Pick the capital", gotQuery)
	})

	t.Run("propagates search error", func(t *testing.T) {
		t.Parallel()

		searchErr := errors.New("search down")
		r := &pipeline.LinkRetriever{Searcher: &mock.Searcher{
			SearchFn: func(context.Context, string, int) ([]string, error) {
				return nil, searchErr
			},
		}}

		_, err := r.Retrieve(context.Background(), "q", 1)

		require.ErrorIs(t, err, searchErr)
	})

	t.Run("rejects non-positive max links", func(t *testing.T) {
		t.Parallel()

		r := &pipeline.LinkRetriever{}

		_, err := r.Retrieve(context.Background(), "q", 0)

		require.Error(t, err)
		assert.Equal(t, webqa.EINVALID, webqa.ErrorCode(err))
	})
}
