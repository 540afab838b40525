// Package rod provides a webqa.Fetcher that renders pages in headless Chrome,
// for sources that only produce their text after JavaScript runs.
package rod

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/webqa"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxPages is the number of pages rendered before the browser is
// restarted. Chrome's memory baseline only grows in a long-running server.
const DefaultMaxPages = 75

// Ensure Fetcher implements webqa.Fetcher at compile time.
var _ webqa.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	timeout    time.Duration
	maxPages   int
	userAgents webqa.UserAgentSource

	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	pages    int
	active   sync.WaitGroup
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the timeout for a single page render.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxPages sets how many pages are rendered before the browser restarts.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// WithUserAgents sets the source of the User-Agent presented by each page.
// Chrome's own User-Agent is used if not specified.
func WithUserAgents(src webqa.UserAgentSource) Option {
	return func(f *Fetcher) {
		f.userAgents = src
	}
}

// NewFetcher launches a headless Chrome browser and returns a Fetcher.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	browser, l, err := launch()
	if err != nil {
		return nil, err
	}
	f.browser, f.launcher = browser, l
	return f, nil
}

// Fetch navigates to the URL, waits for the page to load, and returns the
// rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser, err := f.acquire()
	if err != nil {
		return "", err
	}
	defer f.active.Done()

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()
	page = page.Context(ctx)

	if f.userAgents != nil {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgents.UserAgent()}); err != nil {
			return "", err
		}
	}

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	return page.HTML()
}

// acquire returns the current browser, restarting it first once maxPages
// renders have been handed out. The caller must call f.active.Done.
func (f *Fetcher) acquire() (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browser == nil {
		return nil, fmt.Errorf("fetcher closed")
	}

	if f.maxPages > 0 && f.pages >= f.maxPages {
		// Let in-flight renders finish on the old browser before closing it.
		f.active.Wait()
		if browser, l, err := launch(); err == nil {
			_ = f.browser.Close()
			f.launcher.Kill()
			f.browser, f.launcher = browser, l
			f.pages = 0
		}
	}

	f.pages++
	f.active.Add(1)
	return f.browser, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browser == nil {
		return nil
	}
	err := f.browser.Close()
	f.launcher.Kill()
	f.browser, f.launcher = nil, nil
	return err
}

// launch starts a headless browser with flags that keep background tabs
// from being throttled.
func launch() (*rod.Browser, *launcher.Launcher, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return browser, l, nil
}
