package bench

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/waio"
)

// FetchFunc fetches one page.
type FetchFunc func(ctx context.Context) (*waio.Page, error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry calls fetch until it succeeds, once more than there are
// delays, sleeping delays[i] before retry i+1. Invalid requests and missing
// pages are not retried. The logger, if not nil, records every retry.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, delays []time.Duration, logger *slog.Logger) (*waio.Page, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		page, err := fetch(ctx)
		if err == nil {
			return page, nil
		}
		lastErr = err

		if !retryable(err) || attempt >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger.Warn("retrying fetch", "url", url, "attempt", attempt+2, "err", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}

func retryable(err error) bool {
	switch waio.ErrorCode(err) {
	case waio.EINVALID, waio.ENOTFOUND:
		return false
	}
	return true
}
