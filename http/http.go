// Package http provides the net/http based pieces of webqa: a static page
// fetcher and the JSON API server.
package http

import "github.com/fwojciec/webqa"

// DefaultUserAgent is sent when no webqa.UserAgentSource is configured.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// staticUserAgent always returns DefaultUserAgent.
type staticUserAgent struct{}

func (staticUserAgent) UserAgent() string { return DefaultUserAgent }

var _ webqa.UserAgentSource = staticUserAgent{}
