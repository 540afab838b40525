// Package trafilatura provides a webqa.Extractor that keeps only the main
// content of a page, dropping navigation, footers and other boilerplate.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/webqa"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements webqa.Extractor at compile time.
var _ webqa.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content text from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the text of the main content.
// The page title, when known, is prepended as its own line.
func (e *Extractor) Extract(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", nil
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(result.ContentText)
	if title := strings.TrimSpace(result.Metadata.Title); title != "" && !strings.HasPrefix(text, title) {
		text = title + "\n" + text
	}
	return text, nil
}
