package waio

import (
	"context"
	"time"
)

// Page is raw HTML together with the cost of getting it.
type Page struct {
	URL  string
	HTML string

	NetworkTime time.Duration
	ParseTime   time.Duration

	StatusCode  int
	Size        int
	HeadersSent map[string]string
}

// Fetcher retrieves pages the way a bot would.
type Fetcher interface {
	// Fetch retrieves the page using the bot's user agent and headers.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string, bot BotConfig) (*Page, error)

	// Close releases resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
