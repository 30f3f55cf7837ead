// Package bench runs comparisons over batches of URLs. It coordinates
// fetching, both extractors, token counting and report storage.
package bench

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/waio"
	"github.com/fwojciec/waio/bloom"
	"golang.org/x/sync/errgroup"
)

// Dedup filter sizing.
const (
	dedupExpectedURLs      = 10000
	dedupFalsePositiveRate = 0.001
)

// defaultConcurrency is the number of URLs processed at once when the
// Runner does not set Concurrency.
const defaultConcurrency = 4

// Exporter writes finished comparisons somewhere outside the report
// history, such as a directory of JSON files.
type Exporter interface {
	Save(ctx context.Context, c *waio.Comparison) error
}

// Runner fetches pages and compares both extractors on each of them.
// Only Fetcher and Comparisons are required.
type Runner struct {
	Fetcher      waio.Fetcher
	Comparisons  waio.ComparisonService
	RateLimiter  waio.DomainLimiter
	TokenCounter waio.TokenCounter
	Reports      waio.ReportService
	Exporter     Exporter
	Logger       *slog.Logger

	Concurrency int
	RetryDelays []time.Duration
}

// Outcome is the result of benchmarking one URL.
type Outcome struct {
	URL        string
	Comparison *waio.Comparison
	Report     *waio.Report
	Err        error
}

// Summary holds the outcome of a batch run. Outcomes are in input order
// with duplicates left out.
type Summary struct {
	Outcomes   []Outcome
	Succeeded  int
	Failed     int
	Duplicates int
}

// AverageSpeedup returns the mean speedup of the successful comparisons.
func (s *Summary) AverageSpeedup() float64 {
	var total float64
	var n int
	for _, o := range s.Outcomes {
		if o.Err != nil || o.Comparison == nil {
			continue
		}
		total += o.Comparison.Speedup()
		n++
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// Run benchmarks a single URL with the given bot and mode.
func (r *Runner) Run(ctx context.Context, rawURL string, bot waio.BotConfig, mode waio.ComparisonMode) (*Outcome, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}

	if r.RateLimiter != nil {
		if err := r.RateLimiter.Wait(ctx, domain(rawURL)); err != nil {
			return nil, err
		}
	}

	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	page, err := FetchWithRetry(ctx, rawURL, func(ctx context.Context) (*waio.Page, error) {
		return r.Fetcher.Fetch(ctx, rawURL, bot)
	}, delays, r.Logger)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	comparison, err := r.Comparisons.Compare(page, bot.Bot, mode)
	if err != nil {
		return nil, fmt.Errorf("compare %s: %w", rawURL, err)
	}

	if r.TokenCounter != nil {
		r.countTokens(ctx, &comparison.Heuristic)
		r.countTokens(ctx, &comparison.Structured)
	}

	report := waio.NewReport(comparison)
	report.ContentHash = HashContent(page.HTML)

	if r.Reports != nil {
		if err := r.Reports.CreateReport(ctx, report); err != nil {
			return nil, fmt.Errorf("save report: %w", err)
		}
	}
	if r.Exporter != nil {
		if err := r.Exporter.Save(ctx, comparison); err != nil {
			return nil, fmt.Errorf("export comparison: %w", err)
		}
	}

	return &Outcome{
		URL:        rawURL,
		Comparison: comparison,
		Report:     report,
	}, nil
}

// countTokens fills in the token count of a run. Counting is best effort.
func (r *Runner) countTokens(ctx context.Context, run *waio.Run) {
	if run.Result == nil || run.Result.MainContent == "" {
		return
	}
	tokens, err := r.TokenCounter.CountTokens(ctx, run.Result.MainContent)
	if err != nil {
		if r.Logger != nil {
			r.Logger.Warn("token count failed", "err", err)
		}
		return
	}
	run.Tokens = tokens
}

// RunAll benchmarks every URL concurrently. A failing URL does not stop the
// batch; its error is kept in the outcome. Repeated URLs are skipped.
// The progress callback, if provided, receives events as the batch proceeds.
func (r *Runner) RunAll(ctx context.Context, urls []string, bot waio.BotConfig, mode waio.ComparisonMode, progress ProgressFunc) (*Summary, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}

	seen := bloom.NewFilter(dedupExpectedURLs, dedupFalsePositiveRate)
	var unique []string
	summary := &Summary{}
	for _, u := range urls {
		if seen.Seen(u) {
			summary.Duplicates++
			continue
		}
		unique = append(unique, u)
	}

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	total := len(unique)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	outcomes := make([]Outcome, total)
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, u := range unique {
		g.Go(func() error {
			outcome, err := r.Run(gctx, u, bot, mode)
			if err != nil {
				outcome = &Outcome{URL: u, Err: err}
			}
			outcomes[i] = *outcome

			n := int(completed.Add(1))
			if progress != nil {
				event := ProgressEvent{Type: ProgressCompleted, Completed: n, Total: total, URL: u}
				if err != nil {
					event.Type = ProgressFailed
					event.Error = err
				}
				progress(event)
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary.Outcomes = outcomes
	for _, o := range outcomes {
		if o.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return summary, nil
}

// HashContent returns the xxhash of the content as hex.
func HashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// domain returns the rate limiting key of a URL. Local files share one key.
func domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "local"
	}
	return u.Host
}
