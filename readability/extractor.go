// Package readability provides a webqa.Extractor built on Mozilla's
// Readability algorithm.
package readability

import (
	"strings"

	"github.com/fwojciec/webqa"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements webqa.Extractor at compile time.
var _ webqa.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract article text from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the article text.
func (e *Extractor) Extract(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", nil
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(article.TextContent)
	if title := strings.TrimSpace(article.Title); title != "" {
		text = title + "\n" + text
	}
	return text, nil
}
