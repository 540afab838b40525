package webqa

import "context"

// Fetcher retrieves raw HTML from URLs.
// Implementations present a randomized browser identity to the remote site.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its markup.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// UserAgentSource yields browser User-Agent strings for outbound requests.
type UserAgentSource interface {
	// UserAgent returns a User-Agent header value. Successive calls may differ.
	UserAgent() string
}
