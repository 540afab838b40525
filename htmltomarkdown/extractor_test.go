package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/webqa"
	"github.com/fwojciec/webqa/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements webqa.Extractor at compile time.
var _ webqa.Extractor = (*htmltomarkdown.Extractor)(nil)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("converts basic paragraph", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewExtractor().Extract(`<p>Hello, world!</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "Hello, world!")
	})

	t.Run("converts headings", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewExtractor().Extract(`<h1>Title</h1><h2>Subtitle</h2>`)

		require.NoError(t, err)
		assert.Contains(t, md, "# Title")
		assert.Contains(t, md, "## Subtitle")
	})

	t.Run("converts lists", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewExtractor().Extract(`<ul><li>London</li><li>Paris</li></ul>`)

		require.NoError(t, err)
		assert.Contains(t, md, "London")
		assert.Contains(t, md, "Paris")
	})

	t.Run("drops scripts", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewExtractor().Extract(`<html><body><script>var secret = 1;</script><p>Visible</p></body></html>`)

		require.NoError(t, err)
		assert.Contains(t, md, "Visible")
		assert.NotContains(t, md, "secret")
	})

	t.Run("keeps link text without target", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewExtractor().Extract(`<p>The capital is <a href="https://example.com/wiki/Paris?utm_source=x">Paris</a>.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "The capital is Paris.")
		assert.NotContains(t, md, "example.com")
		assert.NotContains(t, md, "](")
	})

	t.Run("drops images", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewExtractor().Extract(`<p>Campus<img src="data:image/png;base64,AAAA" alt="photo of campus"></p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "Campus")
		assert.NotContains(t, md, "base64")
		assert.NotContains(t, md, "![")
	})

	t.Run("keeps tables", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewExtractor().Extract(`<table><tr><th>City</th></tr><tr><td><a href="/p">Paris</a></td></tr></table>`)

		require.NoError(t, err)
		assert.Contains(t, md, "City")
		assert.Contains(t, md, "Paris")
		assert.NotContains(t, md, "/p)")
	})

	t.Run("returns empty text for blank input", func(t *testing.T) {
		t.Parallel()

		text, err := htmltomarkdown.NewExtractor().Extract("  ")

		require.NoError(t, err)
		assert.Empty(t, text)
	})
}
