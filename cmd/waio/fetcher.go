package main

import (
	"context"
	"errors"
	"sync"

	"github.com/fwojciec/waio"
	"github.com/fwojciec/waio/fs"
)

// Ensure BotFetcher implements waio.Fetcher at compile time.
var _ waio.Fetcher = (*BotFetcher)(nil)

// BotFetcher picks a fetch strategy per request: local files are read from
// disk, JavaScript-enabled bots use a headless browser started on first
// use, and every other bot uses plain HTTP.
type BotFetcher struct {
	static     waio.Fetcher
	local      waio.Fetcher
	newBrowser func() (waio.Fetcher, error)

	mu      sync.Mutex
	browser waio.Fetcher
}

// NewBotFetcher creates a BotFetcher.
func NewBotFetcher(static, local waio.Fetcher, newBrowser func() (waio.Fetcher, error)) *BotFetcher {
	return &BotFetcher{
		static:     static,
		local:      local,
		newBrowser: newBrowser,
	}
}

// Fetch retrieves the page with the fetcher matching the target and bot.
func (f *BotFetcher) Fetch(ctx context.Context, url string, bot waio.BotConfig) (*waio.Page, error) {
	switch {
	case fs.IsLocal(url):
		return f.local.Fetch(ctx, url, bot)
	case bot.Dynamic:
		browser, err := f.browserFetcher()
		if err != nil {
			return nil, err
		}
		return browser.Fetch(ctx, url, bot)
	default:
		return f.static.Fetch(ctx, url, bot)
	}
}

func (f *BotFetcher) browserFetcher() (waio.Fetcher, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browser != nil {
		return f.browser, nil
	}
	browser, err := f.newBrowser()
	if err != nil {
		return nil, err
	}
	f.browser = browser
	return browser, nil
}

// Close closes every fetcher that was started.
func (f *BotFetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var errs []error
	if f.browser != nil {
		errs = append(errs, f.browser.Close())
		f.browser = nil
	}
	errs = append(errs, f.static.Close(), f.local.Close())
	return errors.Join(errs...)
}
