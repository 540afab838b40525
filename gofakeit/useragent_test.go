package gofakeit_test

import (
	"testing"

	"github.com/fwojciec/webqa/gofakeit"
	"github.com/stretchr/testify/assert"
)

func TestUserAgentSource_UserAgent(t *testing.T) {
	t.Parallel()

	t.Run("returns non-empty user agents", func(t *testing.T) {
		t.Parallel()

		src := gofakeit.NewUserAgentSource()

		for range 10 {
			assert.NotEmpty(t, src.UserAgent())
		}
	})

	t.Run("varies across calls", func(t *testing.T) {
		t.Parallel()

		src := gofakeit.NewUserAgentSource()

		seen := make(map[string]bool)
		for range 50 {
			seen[src.UserAgent()] = true
		}
		assert.Greater(t, len(seen), 1)
	})

	t.Run("is deterministic for a fixed seed", func(t *testing.T) {
		t.Parallel()

		a := gofakeit.NewUserAgentSourceWithSeed(42)
		b := gofakeit.NewUserAgentSourceWithSeed(42)

		for range 5 {
			assert.Equal(t, a.UserAgent(), b.UserAgent())
		}
	})
}
