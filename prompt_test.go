package webqa_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/webqa"
	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt_ContainsQuestion(t *testing.T) {
	t.Parallel()

	prompt := webqa.BuildPrompt("What is the capital of France?", "", "")

	assert.Contains(t, prompt, "What is the capital of France?")
}

func TestBuildPrompt_EmbedsOptionsVerbatim(t *testing.T) {
	t.Parallel()

	prompt := webqa.BuildPrompt("Pick one", " London\n2. Paris", "")

	assert.Contains(t, prompt, " London\n2. Paris")
}

func TestBuildPrompt_RequestsJSONSchema(t *testing.T) {
	t.Parallel()

	prompt := webqa.BuildPrompt("q", "", "")

	assert.Contains(t, prompt, `"answer"`)
	assert.Contains(t, prompt, `"reasoning"`)
	assert.Contains(t, prompt, `"sources"`)
	assert.Contains(t, prompt, "null")
}

func TestBuildPrompt_AppendsContextLast(t *testing.T) {
	t.Parallel()

	context := "Paris is the capital of France.\n\n"
	prompt := webqa.BuildPrompt("q", "", context)

	assert.True(t, strings.HasSuffix(prompt, context))
}
