// Package duckduckgo implements webqa.Searcher on top of the DuckDuckGo
// Lite HTML endpoint.
package duckduckgo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/webqa"
	"github.com/fwojciec/webqa/goquery"
	webqahttp "github.com/fwojciec/webqa/http"
)

// DefaultEndpoint is the DuckDuckGo Lite search form target.
const DefaultEndpoint = "https://lite.duckduckgo.com/lite/"

// DefaultTimeout bounds a single search request.
const DefaultTimeout = 15 * time.Second

const maxResultBytes = 2 * 1024 * 1024

// Ensure Searcher implements webqa.Searcher at compile time.
var _ webqa.Searcher = (*Searcher)(nil)

// Searcher queries DuckDuckGo and returns result URLs in ranking order.
// Searcher is safe for concurrent use.
type Searcher struct {
	client     *http.Client
	endpoint   string
	timeout    time.Duration
	userAgents webqa.UserAgentSource
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithEndpoint overrides the search endpoint.
func WithEndpoint(endpoint string) Option {
	return func(s *Searcher) {
		s.endpoint = endpoint
	}
}

// WithTimeout sets the timeout for a search request.
func WithTimeout(d time.Duration) Option {
	return func(s *Searcher) {
		s.timeout = d
	}
}

// WithUserAgents sets the source of User-Agent headers.
func WithUserAgents(src webqa.UserAgentSource) Option {
	return func(s *Searcher) {
		s.userAgents = src
	}
}

// NewSearcher creates a new DuckDuckGo Searcher.
func NewSearcher(opts ...Option) *Searcher {
	s := &Searcher{
		endpoint: DefaultEndpoint,
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.client = &http.Client{Timeout: s.timeout}
	return s
}

// Search submits query to DuckDuckGo and returns up to limit result URLs.
func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if limit < 1 {
		return nil, webqa.Errorf(webqa.EINVALID, "limit must be positive")
	}

	form := url.Values{"q": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", s.userAgent())

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// DuckDuckGo answers 202 with a challenge page when it suspects a bot.
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResultBytes))
	if err != nil {
		return nil, err
	}

	links, err := goquery.ExtractLinks(string(body), s.endpoint, "a.result-link", unwrapRedirect)
	if err != nil {
		return nil, err
	}
	if len(links) > limit {
		links = links[:limit]
	}
	return links, nil
}

func (s *Searcher) userAgent() string {
	if s.userAgents == nil {
		return webqahttp.DefaultUserAgent
	}
	return s.userAgents.UserAgent()
}

// unwrapRedirect returns the target of a DuckDuckGo "/l/?uddg=" redirect.
// Other links on a DuckDuckGo host are ads or navigation and are dropped.
func unwrapRedirect(u *url.URL) string {
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if strings.HasSuffix(u.Hostname(), "duckduckgo.com") {
		return ""
	}
	return u.String()
}
