package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/waio"
	"github.com/fwojciec/waio/bench"
	"github.com/fwojciec/waio/fs"
)

// outcomeOutput is the JSON form of one batch entry.
type outcomeOutput struct {
	URL        string            `json:"url"`
	Comparison *comparisonOutput `json:"comparison,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// summaryOutput is the JSON form of a batch run.
type summaryOutput struct {
	Bot            waio.Bot            `json:"bot"`
	Mode           waio.ComparisonMode `json:"mode"`
	Outcomes       []outcomeOutput     `json:"outcomes"`
	Succeeded      int                 `json:"succeeded"`
	Failed         int                 `json:"failed"`
	Duplicates     int                 `json:"duplicates"`
	AverageSpeedup float64             `json:"averageSpeedup"`
}

// Run executes the bench command.
func (c *BenchCmd) Run(deps *Dependencies) error {
	bot, mode, err := c.parse()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", waio.ErrorMessage(err))
		return err
	}

	urls := c.URLs
	if c.From != "" {
		fromFile, err := readURLs(c.From)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", waio.ErrorMessage(err))
			return err
		}
		urls = append(urls, fromFile...)
	}
	if len(urls) == 0 {
		err := waio.Errorf(waio.EINVALID, "no URLs given")
		fmt.Fprintf(deps.Stderr, "error: %s\n", waio.ErrorMessage(err))
		return err
	}

	extractors, err := deps.NewExtractors(c.Engine, c.WarmUp)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", waio.ErrorMessage(err))
		return err
	}

	runner := &bench.Runner{
		Fetcher:      deps.Fetcher,
		Comparisons:  extractors.Comparator,
		RateLimiter:  bench.NewDomainLimiter(c.Rate),
		TokenCounter: deps.TokenCounter,
		Logger:       deps.Logger,
		Concurrency:  c.Concurrency,
	}
	if c.Save {
		runner.Reports = deps.Reports
	}

	var store *fs.ComparisonStore
	if c.Out != "" {
		out := filepath.Clean(c.Out)
		store = fs.NewComparisonStore(filepath.Dir(out), filepath.Base(out))
		runner.Exporter = store
	}

	progress := func(event bench.ProgressEvent) {
		switch event.Type {
		case bench.ProgressStarted:
			fmt.Fprintf(deps.Stderr, "Benchmarking %d URLs as %s (%s)\n", event.Total, bot.Bot, mode.Label())
		case bench.ProgressCompleted:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] %s\n", event.Completed, event.Total, event.URL)
		case bench.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] %s: %s\n", event.Completed, event.Total, event.URL, waio.ErrorMessage(event.Error))
		}
	}

	summary, err := runner.RunAll(deps.Ctx, urls, bot, mode, progress)
	if err != nil {
		if store != nil {
			_ = store.Abort()
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", waio.ErrorMessage(err))
		return err
	}
	if store != nil {
		if err := store.Commit(); err != nil {
			fmt.Fprintf(deps.Stderr, "error: export comparisons: %v\n", err)
			return err
		}
	}

	if c.JSON {
		return writeJSON(deps.Stdout, newSummaryOutput(summary, bot.Bot, mode))
	}
	writeSummary(deps, summary)
	return nil
}

func newSummaryOutput(s *bench.Summary, bot waio.Bot, mode waio.ComparisonMode) summaryOutput {
	out := summaryOutput{
		Bot:            bot,
		Mode:           mode,
		Outcomes:       make([]outcomeOutput, 0, len(s.Outcomes)),
		Succeeded:      s.Succeeded,
		Failed:         s.Failed,
		Duplicates:     s.Duplicates,
		AverageSpeedup: s.AverageSpeedup(),
	}
	for _, o := range s.Outcomes {
		entry := outcomeOutput{URL: o.URL}
		if o.Err != nil {
			entry.Error = waio.ErrorMessage(o.Err)
		} else {
			c := newComparisonOutput(o.Comparison, o.Report)
			entry.Comparison = &c
		}
		out.Outcomes = append(out.Outcomes, entry)
	}
	return out
}

func writeSummary(deps *Dependencies, s *bench.Summary) {
	for _, o := range s.Outcomes {
		if o.Err != nil {
			fmt.Fprintf(deps.Stdout, "FAIL  %s  %s\n", o.URL, waio.ErrorMessage(o.Err))
			continue
		}
		c := o.Comparison
		var integrity float64
		if c.Structured.Result != nil {
			integrity = c.Structured.Result.IntegrityScore()
		}
		fmt.Fprintf(deps.Stdout, "OK    %s  speedup %.2fx  gain %.1f%%  integrity %.1f%%\n",
			o.URL, c.Speedup(), c.GainPercent(), integrity)
	}
	fmt.Fprintf(deps.Stdout, "\n%d succeeded, %d failed", s.Succeeded, s.Failed)
	if s.Duplicates > 0 {
		fmt.Fprintf(deps.Stdout, ", %d duplicates skipped", s.Duplicates)
	}
	fmt.Fprintf(deps.Stdout, ". Average speedup %.2fx\n", s.AverageSpeedup())
}

// readURLs reads one URL per line, skipping blank lines and # comments.
func readURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return urls, nil
}
