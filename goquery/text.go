// Package goquery provides a goquery-based implementation of webqa.Extractor
// that returns the visible text of a page.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webqa"
	"golang.org/x/net/html"
)

// Ensure Extractor implements webqa.Extractor at compile time.
var _ webqa.Extractor = (*Extractor)(nil)

// invisible lists elements whose text never renders.
const invisible = "script, style, noscript, template, iframe, svg"

// Extractor returns every visible text node of a page, trimmed, one per line.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns its visible text.
func (e *Extractor) Extract(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", webqa.Errorf(webqa.EINVALID, "failed to parse HTML: %v", err)
	}
	doc.Find(invisible).Remove()

	var lines []string
	for _, n := range doc.Nodes {
		lines = appendText(lines, n)
	}
	return strings.Join(lines, "\n"), nil
}

// appendText walks n depth-first and appends each non-blank text node.
func appendText(lines []string, n *html.Node) []string {
	if n.Type == html.TextNode {
		if s := strings.TrimSpace(n.Data); s != "" {
			lines = append(lines, s)
		}
		return lines
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		lines = appendText(lines, c)
	}
	return lines
}
