package extract

import (
	"fmt"
	"time"

	"github.com/fwojciec/waio"
)

// Ensure Comparator implements waio.ComparisonService at compile time.
var _ waio.ComparisonService = (*Comparator)(nil)

// Comparator runs both extractors over the same page.
type Comparator struct {
	Heuristic  waio.HeuristicExtractor
	Structured waio.StructuredExtractor

	// WarmUp runs one discarded heuristic pass first so lazy
	// initialization does not count against the baseline.
	WarmUp bool
}

// NewComparator creates a Comparator.
func NewComparator(heuristic waio.HeuristicExtractor, structured waio.StructuredExtractor) *Comparator {
	return &Comparator{
		Heuristic:  heuristic,
		Structured: structured,
	}
}

// Compare runs the heuristic extractor, then the structured extractor with
// the heuristic cognitive time as its baseline.
func (c *Comparator) Compare(page *waio.Page, bot waio.Bot, mode waio.ComparisonMode) (*waio.Comparison, error) {
	if page == nil {
		return nil, waio.Errorf(waio.EINVALID, "page required")
	}
	if err := mode.Validate(); err != nil {
		return nil, err
	}

	if c.WarmUp {
		if _, _, err := c.Heuristic.Extract(page.HTML); err != nil {
			return nil, fmt.Errorf("warm up: %w", err)
		}
	}

	heuristic, baseline, err := c.Heuristic.Extract(page.HTML)
	if err != nil {
		return nil, fmt.Errorf("heuristic extraction: %w", err)
	}

	structured, simulated, err := c.Structured.Extract(page.HTML, waio.StructuredParams{
		Baseline: &baseline,
		Bot:      bot,
		Mode:     mode,
	})
	if err != nil {
		return nil, fmt.Errorf("structured extraction: %w", err)
	}

	return &waio.Comparison{
		URL:  page.URL,
		Bot:  bot,
		Mode: mode,
		Heuristic: waio.Run{
			Metrics: pageMetrics(page, baseline),
			Result:  heuristic,
		},
		Structured: waio.Run{
			Metrics: pageMetrics(page, simulated),
			Result:  structured,
		},
	}, nil
}

// pageMetrics copies the shared fetch timings next to a cognitive time.
func pageMetrics(page *waio.Page, cognitive time.Duration) waio.Metrics {
	headers := make(map[string]string, len(page.HeadersSent))
	for k, v := range page.HeadersSent {
		headers[k] = v
	}
	return waio.Metrics{
		NetworkTime:   page.NetworkTime,
		ParseTime:     page.ParseTime,
		CognitiveTime: cognitive,
		ResponseSize:  page.Size,
		StatusCode:    page.StatusCode,
		HeadersSent:   headers,
	}
}
