package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/waio"
	"github.com/fwojciec/waio/bench"
)

// comparisonOutput is the JSON form of a comparison.
type comparisonOutput struct {
	*waio.Comparison
	Speedup     float64 `json:"speedup"`
	GainPercent float64 `json:"gainPercent"`
	ReportID    string  `json:"reportId,omitempty"`
}

func newComparisonOutput(c *waio.Comparison, report *waio.Report) comparisonOutput {
	out := comparisonOutput{
		Comparison:  c,
		Speedup:     c.Speedup(),
		GainPercent: c.GainPercent(),
	}
	if report != nil {
		out.ReportID = report.ID
	}
	return out
}

// runOutput is the JSON form of a single extractor run.
type runOutput struct {
	URL       string              `json:"url"`
	Bot       waio.Bot            `json:"bot"`
	Mode      waio.ComparisonMode `json:"mode,omitempty"`
	Extractor string              `json:"extractor"`
	waio.Run
}

// parse resolves the bot and mode flags.
func (f *RunFlags) parse() (waio.BotConfig, waio.ComparisonMode, error) {
	bot, err := waio.ParseBot(f.Bot)
	if err != nil {
		return waio.BotConfig{}, "", err
	}
	mode, err := waio.ParseMode(f.Mode)
	if err != nil {
		return waio.BotConfig{}, "", err
	}
	return bot, mode, nil
}

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	bot, mode, err := c.parse()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", waio.ErrorMessage(err))
		return err
	}
	if c.Save && c.Only != "both" {
		err := waio.Errorf(waio.EINVALID, "--save needs both extractors")
		fmt.Fprintf(deps.Stderr, "error: %s\n", waio.ErrorMessage(err))
		return err
	}

	extractors, err := deps.NewExtractors(c.Engine, c.WarmUp)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", waio.ErrorMessage(err))
		return err
	}

	if c.Only != "both" {
		return c.runSingle(deps, extractors, bot, mode)
	}

	runner := &bench.Runner{
		Fetcher:      deps.Fetcher,
		Comparisons:  extractors.Comparator,
		TokenCounter: deps.TokenCounter,
		Logger:       deps.Logger,
	}
	if c.Save {
		runner.Reports = deps.Reports
	}

	outcome, err := runner.Run(deps.Ctx, c.URL, bot, mode)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", waio.ErrorMessage(err))
		return err
	}

	if c.JSON {
		return writeJSON(deps.Stdout, newComparisonOutput(outcome.Comparison, outcome.Report))
	}
	writeComparison(deps.Stdout, outcome.Comparison, bot)
	if c.Save {
		fmt.Fprintf(deps.Stdout, "Saved report %s\n", outcome.Report.ID)
	}
	return nil
}

// runSingle runs one extractor. The structured extractor runs without a
// baseline, so its time includes its own fallback pass.
func (c *ExtractCmd) runSingle(deps *Dependencies, extractors *Extractors, bot waio.BotConfig, mode waio.ComparisonMode) error {
	page, err := bench.FetchWithRetry(deps.Ctx, c.URL, func(ctx context.Context) (*waio.Page, error) {
		return deps.Fetcher.Fetch(ctx, c.URL, bot)
	}, bench.DefaultRetryDelays(), deps.Logger)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", waio.ErrorMessage(err))
		return err
	}

	var result *waio.ExtractionResult
	var cognitive time.Duration
	if c.Only == "heuristic" {
		result, cognitive, err = extractors.Heuristic.Extract(page.HTML)
		mode = ""
	} else {
		result, cognitive, err = extractors.Structured.Extract(page.HTML, waio.StructuredParams{
			Bot:  bot.Bot,
			Mode: mode,
		})
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", waio.ErrorMessage(err))
		return err
	}

	run := waio.Run{
		Metrics: waio.Metrics{
			NetworkTime:   page.NetworkTime,
			ParseTime:     page.ParseTime,
			CognitiveTime: cognitive,
			ResponseSize:  page.Size,
			StatusCode:    page.StatusCode,
			HeadersSent:   page.HeadersSent,
		},
		Result: result,
	}
	if deps.TokenCounter != nil && result.MainContent != "" {
		if tokens, err := deps.TokenCounter.CountTokens(deps.Ctx, result.MainContent); err == nil {
			run.Tokens = tokens
		}
	}

	if c.JSON {
		return writeJSON(deps.Stdout, runOutput{
			URL:       c.URL,
			Bot:       bot.Bot,
			Mode:      mode,
			Extractor: c.Only,
			Run:       run,
		})
	}

	fmt.Fprintf(deps.Stdout, "URL:   %s\n", c.URL)
	fmt.Fprintf(deps.Stdout, "Bot:   %s (%s)\n", bot.Bot, bot.Description())
	if mode != "" {
		fmt.Fprintf(deps.Stdout, "Mode:  %s\n", mode.Label())
	}
	fmt.Fprintf(deps.Stdout, "Fetch: status %d, %d bytes, network %s, parse %s\n",
		page.StatusCode, page.Size, formatDuration(page.NetworkTime), formatDuration(page.ParseTime))
	fmt.Fprintln(deps.Stdout)
	if c.Only == "heuristic" {
		fmt.Fprintln(deps.Stdout, "Heuristic")
	} else {
		fmt.Fprintln(deps.Stdout, "Structured")
	}
	writeRun(deps.Stdout, run)
	return nil
}
