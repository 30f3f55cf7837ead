package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/waio"
)

// Extractors bundles the extractors built for one engine.
type Extractors struct {
	Heuristic  waio.HeuristicExtractor
	Structured waio.StructuredExtractor
	Comparator waio.ComparisonService
}

// ExtractorFactory builds the extractors for a content engine.
type ExtractorFactory func(engine string, warmUp bool) (*Extractors, error)

// Dependencies holds all services and configuration for command execution.
// Fetcher, Reports and TokenCounter are nil unless the command needs them.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Fetcher       waio.Fetcher
	Reports       waio.ReportService
	TokenCounter  waio.TokenCounter
	NewExtractors ExtractorFactory
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB       string `name:"db" env:"WAIO_DB" help:"Report database path (default ~/.waio/waio.db)"`
	Profiles string `env:"WAIO_PROFILES" help:"YAML file replacing the built-in bot preference profiles"`
	Verbose  bool   `short:"v" help:"Log debug output to stderr"`

	Bots    BotsCmd    `cmd:"" help:"List supported bots"`
	Extract ExtractCmd `cmd:"" help:"Compare both extractors on one page"`
	Bench   BenchCmd   `cmd:"" help:"Compare both extractors on many pages"`
	History HistoryCmd `cmd:"" help:"List saved reports"`
}

// RunFlags are shared by the extract and bench commands.
type RunFlags struct {
	Bot     string        `short:"b" default:"GPTBot" help:"Bot to simulate (see 'waio bots')"`
	Mode    string        `short:"m" default:"theory" help:"Comparison mode: theory or consensus"`
	Engine  string        `short:"e" default:"trafilatura" enum:"trafilatura,readability" help:"Boilerplate removal engine"`
	Timeout time.Duration `default:"10s" help:"Per-page fetch timeout"`
	WarmUp  bool          `default:"true" negatable:"" help:"Run one discarded heuristic pass before measuring"`
	Tokens  bool          `help:"Count main content tokens"`
	Save    bool          `short:"s" help:"Save a report to the database"`
	JSON    bool          `help:"Print the full result as JSON"`
}

// BotsCmd is the "bots" subcommand.
type BotsCmd struct {
	JSON bool `help:"Print bots as JSON"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL  string `arg:"" help:"Page URL or local HTML file"`
	Only string `default:"both" enum:"both,heuristic,structured" help:"Run a single extractor: heuristic or structured"`

	RunFlags `embed:""`
}

// BenchCmd is the "bench" subcommand.
type BenchCmd struct {
	URLs        []string `arg:"" optional:"" name:"url" help:"Page URLs or local HTML files"`
	From        string   `short:"f" type:"existingfile" help:"Read URLs from a file, one per line"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent page limit"`
	Rate        float64  `default:"1" help:"Requests per second per domain (0 disables limiting)"`
	Out         string   `short:"o" help:"Export every comparison as JSON under this directory"`

	RunFlags `embed:""`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	URL   string `help:"Only reports for this URL"`
	Bot   string `short:"b" help:"Only reports for this bot"`
	Limit int    `short:"n" default:"20" help:"Maximum number of reports"`
	JSON  bool   `help:"Print reports as JSON"`
}

// runFlags returns the shared flags of the named command, or nil if the
// command has none.
func (c *CLI) runFlags(command string) *RunFlags {
	switch command {
	case "extract":
		return &c.Extract.RunFlags
	case "bench":
		return &c.Bench.RunFlags
	}
	return nil
}
