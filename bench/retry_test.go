package bench_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/waio"
	"github.com/fwojciec/waio/bench"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetry(t *testing.T) {
	t.Parallel()

	noDelays := []time.Duration{0, 0, 0}

	t.Run("returns page on first success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		page, err := bench.FetchWithRetry(context.Background(), "https://example.com", func(context.Context) (*waio.Page, error) {
			calls++
			return &waio.Page{HTML: "<p>ok</p>"}, nil
		}, noDelays, nil)

		require.NoError(t, err)
		assert.Equal(t, "<p>ok</p>", page.HTML)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		t.Parallel()

		calls := 0
		page, err := bench.FetchWithRetry(context.Background(), "https://example.com", func(context.Context) (*waio.Page, error) {
			calls++
			if calls < 3 {
				return nil, errors.New("connection reset")
			}
			return &waio.Page{HTML: "ok"}, nil
		}, noDelays, nil)

		require.NoError(t, err)
		assert.Equal(t, "ok", page.HTML)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after one attempt per delay plus one", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, err := bench.FetchWithRetry(context.Background(), "https://example.com", func(context.Context) (*waio.Page, error) {
			calls++
			return nil, errors.New("timeout")
		}, noDelays, nil)

		require.Error(t, err)
		assert.Equal(t, "timeout", err.Error())
		assert.Equal(t, 4, calls)
	})

	t.Run("does not retry missing pages", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, err := bench.FetchWithRetry(context.Background(), "https://example.com", func(context.Context) (*waio.Page, error) {
			calls++
			return nil, waio.Errorf(waio.ENOTFOUND, "page not found")
		}, noDelays, nil)

		assert.Equal(t, waio.ENOTFOUND, waio.ErrorCode(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("does not retry invalid requests", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, err := bench.FetchWithRetry(context.Background(), "::", func(context.Context) (*waio.Page, error) {
			calls++
			return nil, waio.Errorf(waio.EINVALID, "invalid URL")
		}, noDelays, nil)

		assert.Equal(t, waio.EINVALID, waio.ErrorCode(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("stops waiting when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		_, err := bench.FetchWithRetry(ctx, "https://example.com", func(context.Context) (*waio.Page, error) {
			calls++
			cancel()
			return nil, errors.New("boom")
		}, []time.Duration{time.Hour}, nil)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}
