// Package rod provides a headless Chrome implementation of waio.Fetcher
// for bots that render JavaScript.
package rod

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/waio"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page fetch.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements waio.Fetcher at compile time.
var _ waio.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	session *session
	timeout time.Duration
	closed  atomic.Bool
}

// Option configures a Fetcher.
type Option func(*fetcherConfig)

type fetcherConfig struct {
	timeout  time.Duration
	maxPages int64
}

// WithFetchTimeout sets the timeout for a single fetch.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *fetcherConfig) {
		c.timeout = d
	}
}

// WithBrowserRecycling sets how many pages are rendered before the browser
// is restarted. Defaults to DefaultMaxPages.
func WithBrowserRecycling(maxPages int64) Option {
	return func(c *fetcherConfig) {
		c.maxPages = maxPages
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	cfg := fetcherConfig{
		timeout:  DefaultFetchTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s, err := newSession(cfg.maxPages)
	if err != nil {
		return nil, err
	}

	return &Fetcher{session: s, timeout: cfg.timeout}, nil
}

// Fetch renders the page as the given bot. Navigation counts as network
// time; waiting for load and serializing the DOM count as parse time.
func (f *Fetcher) Fetch(ctx context.Context, url string, bot waio.BotConfig) (*waio.Page, error) {
	if f.closed.Load() {
		return nil, waio.Errorf(waio.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	browser, err := f.session.acquire()
	if err != nil {
		return nil, waio.Errorf(waio.EINVALID, "%v", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	defer page.Close()

	page = page.Context(ctx)

	sent := map[string]string{"User-Agent": bot.UserAgent}
	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: bot.UserAgent}); err != nil {
		return nil, err
	}

	var extra []string
	for k, v := range bot.Headers {
		// Chrome manages compression itself.
		if strings.EqualFold(k, "Accept-Encoding") {
			continue
		}
		extra = append(extra, k, v)
		sent[k] = v
	}
	if len(extra) > 0 {
		cleanup, err := page.SetExtraHeaders(extra)
		if err != nil {
			return nil, err
		}
		defer cleanup()
	}

	begin := time.Now()
	if err := page.Navigate(url); err != nil {
		return nil, err
	}
	network := time.Since(begin)

	begin = time.Now()
	if err := page.WaitLoad(); err != nil {
		return nil, err
	}
	html, err := page.HTML()
	if err != nil {
		return nil, err
	}
	parse := time.Since(begin)

	return &waio.Page{
		URL:         url,
		HTML:        html,
		NetworkTime: network,
		ParseTime:   parse,
		// Navigation errors cover failed loads; the document status is
		// not exposed without a network event listener.
		StatusCode:  http.StatusOK,
		Size:        len(html),
		HeadersSent: sent,
	}, nil
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.session.pid()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.session.close()
}
