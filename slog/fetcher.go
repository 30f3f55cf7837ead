// Package slog provides logging decorators for waio services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/waio"
)

// Ensure LoggingFetcher implements waio.Fetcher.
var _ waio.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   waio.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next waio.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string, bot waio.BotConfig) (page *waio.Page, err error) {
	defer func(begin time.Time) {
		var size, status int
		if page != nil {
			size, status = page.Size, page.StatusCode
		}
		f.logger.Info("fetch",
			"url", url,
			"bot", string(bot.Bot),
			"bytes", size,
			"status", status,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url, bot)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
