package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webqa"
)

// LinkRewriter maps a resolved anchor URL to the URL it points at, or
// returns "" to drop the anchor. Search engines wrap results in redirect
// links, which a rewriter unwraps.
type LinkRewriter func(u *url.URL) string

// ExtractLinks returns the absolute http(s) targets of anchors matching
// selector, in document order and without duplicates. Relative hrefs are
// resolved against baseURL and fragments are stripped. A nil rewrite keeps
// every resolved URL.
func ExtractLinks(html, baseURL, selector string, rewrite LinkRewriter) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, webqa.Errorf(webqa.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, webqa.Errorf(webqa.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []string
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" || isNonHTTPLink(href) {
			return
		}

		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		resolved.Fragment = ""

		target := resolved.String()
		if rewrite != nil {
			target = rewrite(resolved)
		}
		if !isWebURL(target) || seen[target] {
			return
		}
		seen[target] = true
		links = append(links, target)
	})

	return links, nil
}

// isWebURL reports whether s is an absolute http or https URL with a host.
func isWebURL(s string) bool {
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
