package webqa_test

import (
	"testing"

	"github.com/fwojciec/webqa"
	"github.com/stretchr/testify/assert"
)

func TestStripCodeFence(t *testing.T) {
	t.Parallel()

	t.Run("removes json fences", func(t *testing.T) {
		t.Parallel()

		got := webqa.StripCodeFence("```json\n{\"answer\": 2}\n```")

		assert.Equal(t, "\n{\"answer\": 2}\n", got)
	})

	t.Run("removes bare fences", func(t *testing.T) {
		t.Parallel()

		got := webqa.StripCodeFence("```{\"answer\": null}```")

		assert.Equal(t, "{\"answer\": null}", got)
	})

	t.Run("leaves unfenced reply untouched", func(t *testing.T) {
		t.Parallel()

		got := webqa.StripCodeFence(`{"answer": 1, "reasoning": "x"}`)

		assert.Equal(t, `{"answer": 1, "reasoning": "x"}`, got)
	})
}
