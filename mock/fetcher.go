package mock

import (
	"context"

	"github.com/fwojciec/waio"
)

var _ waio.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of waio.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string, bot waio.BotConfig) (*waio.Page, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string, bot waio.BotConfig) (*waio.Page, error) {
	return f.FetchFn(ctx, url, bot)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ waio.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of waio.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
