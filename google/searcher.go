// Package google implements webqa.Searcher by reading Google's web results
// page.
package google

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/webqa"
	"github.com/fwojciec/webqa/goquery"
	webqahttp "github.com/fwojciec/webqa/http"
)

// DefaultEndpoint is the Google web search URL.
const DefaultEndpoint = "https://www.google.com/search"

// DefaultTimeout bounds a single search request.
const DefaultTimeout = 15 * time.Second

const maxResultBytes = 4 * 1024 * 1024

// Ensure Searcher implements webqa.Searcher at compile time.
var _ webqa.Searcher = (*Searcher)(nil)

// Searcher queries Google and returns organic result URLs in ranking order.
// Searcher is safe for concurrent use.
type Searcher struct {
	client     *http.Client
	endpoint   string
	language   string
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

// WithLanguage sets the interface language (hl parameter). Defaults to "en".
func WithLanguage(lang string) Option {
	return func(s *Searcher) {
		s.language = lang
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

// NewSearcher creates a new Google Searcher.
func NewSearcher(opts ...Option) *Searcher {
	s := &Searcher{
		endpoint: DefaultEndpoint,
		language: "en",
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.client = &http.Client{Timeout: s.timeout}
	return s
}

// Search fetches the results page for query and returns up to limit
// organic result URLs.
func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if limit < 1 {
		return nil, webqa.Errorf(webqa.EINVALID, "limit must be positive")
	}

	u, err := url.Parse(s.endpoint)
	if err != nil {
		return nil, webqa.Errorf(webqa.EINVALID, "invalid endpoint: %v", err)
	}
	params := url.Values{
		"q":    {query},
		"num":  {strconv.Itoa(limit + 2)},
		"hl":   {s.language},
		"safe": {"active"},
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	// Skips the EU consent interstitial.
	req.AddCookie(&http.Cookie{Name: "CONSENT", Value: "YES+"})

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResultBytes))
	if err != nil {
		return nil, err
	}

	links, err := goquery.ExtractLinks(string(body), u.String(), "a[href]", resultRewriter(u.Hostname()))
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

// resultRewriter keeps external links and the targets of "/url?q="
// redirects. Anything else on the engine's own host is navigation.
func resultRewriter(engineHost string) goquery.LinkRewriter {
	internal := func(host string) bool {
		return host == engineHost || isGoogleHost(host)
	}
	return func(u *url.URL) string {
		if !internal(u.Hostname()) {
			return u.String()
		}
		if u.Path != "/url" {
			return ""
		}
		q := u.Query()
		target := q.Get("q")
		if target == "" {
			target = q.Get("url")
		}
		t, err := url.Parse(target)
		if err != nil || internal(t.Hostname()) {
			return ""
		}
		return target
	}
}

func isGoogleHost(host string) bool {
	host = strings.TrimPrefix(host, "www.")
	return strings.HasPrefix(host, "google.") ||
		strings.HasSuffix(host, ".google.com") ||
		strings.HasSuffix(host, ".gstatic.com")
}
