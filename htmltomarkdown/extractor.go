// Package htmltomarkdown provides a webqa.Extractor that renders a page as
// Markdown for the LLM prompt. Headings, lists and tables survive; link
// targets and images are dropped since they cost tokens without adding
// facts.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webqa"
)

// media lists elements with no textual content worth keeping.
const media = "img, picture, svg, video, audio, iframe, canvas"

// Ensure Extractor implements webqa.Extractor at compile time.
var _ webqa.Extractor = (*Extractor)(nil)

// Extractor wraps html-to-markdown to convert HTML to Markdown text.
type Extractor struct {
	conv *converter.Converter
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Extractor{conv: conv}
}

// Extract transforms HTML content into Markdown.
func (e *Extractor) Extract(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	html, err := stripLinks(html)
	if err != nil {
		return "", err
	}

	result, err := e.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result), nil
}

// stripLinks removes media elements and replaces each anchor with its
// children, so links render as plain text.
func stripLinks(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", webqa.Errorf(webqa.EINVALID, "failed to parse HTML: %v", err)
	}
	doc.Find(media).Remove()
	doc.Find("a").Each(func(_ int, a *goquery.Selection) {
		a.ReplaceWithSelection(a.Contents())
	})
	return doc.Html()
}
