// Package http provides an HTTP-based implementation of waio.Fetcher
// for bots that do not execute JavaScript.
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/waio"
	"golang.org/x/net/html"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements waio.Fetcher at compile time.
var _ waio.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages with the bot's user agent and headers.
// Unlike rod.Fetcher, this does not execute JavaScript.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the page at url as the given bot.
// Network time covers the request and reading the body; parse time covers
// building a DOM from it. Non-2xx responses are errors.
func (f *Fetcher) Fetch(ctx context.Context, url string, bot waio.BotConfig) (*waio.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, waio.Errorf(waio.EINVALID, "invalid URL %q: %v", url, err)
	}

	sent := make(map[string]string)
	for k, v := range bot.RequestHeaders() {
		// The transport negotiates and decodes compression itself.
		if strings.EqualFold(k, "Accept-Encoding") {
			continue
		}
		req.Header.Set(k, v)
		sent[k] = v
	}

	begin := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	network := time.Since(begin)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusNotFound {
			return nil, waio.Errorf(waio.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, url)
		}
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	begin = time.Now()
	if _, err := html.Parse(bytes.NewReader(body)); err != nil {
		return nil, waio.Errorf(waio.EINVALID, "failed to parse HTML: %v", err)
	}
	parse := time.Since(begin)

	return &waio.Page{
		URL:         url,
		HTML:        string(body),
		NetworkTime: network,
		ParseTime:   parse,
		StatusCode:  resp.StatusCode,
		Size:        len(body),
		HeadersSent: sent,
	}, nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
