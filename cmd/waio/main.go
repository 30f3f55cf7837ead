package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/waio"
	"github.com/fwojciec/waio/extract"
	"github.com/fwojciec/waio/fs"
	"github.com/fwojciec/waio/gemini"
	"github.com/fwojciec/waio/goquery"
	"github.com/fwojciec/waio/htmlquery"
	waiohttp "github.com/fwojciec/waio/http"
	"github.com/fwojciec/waio/readability"
	"github.com/fwojciec/waio/rod"
	waioslog "github.com/fwojciec/waio/slog"
	"github.com/fwojciec/waio/sqlite"
	"github.com/fwojciec/waio/trafilatura"
	"github.com/fwojciec/waio/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by the report service. Opened on demand.
	DB *sqlite.DB

	// Fetcher used by extract and bench. Built on demand.
	Fetcher waio.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var firstErr error
	if m.Fetcher != nil {
		firstErr = m.Fetcher.Close()
	}
	if m.DB != nil {
		if err := m.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("waio"),
		kong.Description("Benchmark heuristic against structured-attribute extraction of web pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'waio --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	command := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	profiles := waio.DefaultProfileTable()
	if cli.Profiles != "" {
		profiles, err = yaml.LoadProfilesFile(cli.Profiles)
		if err != nil {
			return fmt.Errorf("failed to load profiles: %w", err)
		}
	}

	deps := &Dependencies{
		Ctx:           ctx,
		Stdout:        stdout,
		Stderr:        stderr,
		Logger:        logger,
		NewExtractors: newExtractorFactory(profiles, logger),
	}
	defer m.Close()

	flags := cli.runFlags(command)

	// Wire command-specific dependencies based on command
	if command == "history" || (flags != nil && flags.Save) {
		dbPath := cli.DB
		if dbPath == "" {
			dbPath = defaultDBPath()
		}
		m.DB = sqlite.NewDB(dbPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintln(stderr, "Hint: Set WAIO_DB to use a different database path")
			return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
		}
		deps.Reports = waioslog.NewLoggingReportService(sqlite.NewReportService(m.DB), logger)
	}

	if flags != nil {
		m.Fetcher = waioslog.NewLoggingFetcher(NewBotFetcher(
			waiohttp.NewFetcher(waiohttp.WithTimeout(flags.Timeout)),
			fs.NewFetcher(),
			func() (waio.Fetcher, error) {
				f, err := rod.NewFetcher(rod.WithFetchTimeout(flags.Timeout))
				if err != nil {
					fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for JavaScript-enabled bots")
					return nil, fmt.Errorf("failed to start browser: %w", err)
				}
				return f, nil
			},
		), logger)
		deps.Fetcher = m.Fetcher

		if flags.Tokens {
			counter, err := gemini.NewTokenCounter(gemini.DefaultModel)
			if err != nil {
				return fmt.Errorf("failed to create token counter: %w", err)
			}
			deps.TokenCounter = counter
		}
	}

	return kongCtx.Run(deps)
}

// newExtractorFactory returns a factory wiring the extractors of an engine
// to the shared marker scanner, metadata reader and profile table.
func newExtractorFactory(profiles *waio.ProfileTable, logger *slog.Logger) ExtractorFactory {
	return func(engine string, warmUp bool) (*Extractors, error) {
		var content waio.ContentExtractor
		switch engine {
		case "", "trafilatura":
			content = trafilatura.NewExtractor()
		case "readability":
			content = readability.NewExtractor()
		default:
			return nil, waio.Errorf(waio.EINVALID, "unknown engine %q, available: trafilatura, readability", engine)
		}
		if engine == "" {
			engine = "trafilatura"
		}
		content = waioslog.NewLoggingContentExtractor(content, engine, logger)

		scanner := htmlquery.NewScanner()
		heuristic := extract.NewHeuristic(content, goquery.NewMetadataReader(), scanner)

		structured := extract.NewStructured(scanner, heuristic)
		structured.Profiles = profiles
		structured.Logger = logger

		comparator := extract.NewComparator(heuristic, structured)
		comparator.WarmUp = warmUp

		return &Extractors{
			Heuristic:  heuristic,
			Structured: structured,
			Comparator: waioslog.NewLoggingComparisonService(comparator, logger),
		}, nil
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "waio.db"
	}
	dir := filepath.Join(home, ".waio")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "waio.db")
}
