package extract

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/waio"
)

// diagnosticRunes bounds attribute values recorded in reasoning.
const diagnosticRunes = 100

// Ensure Structured implements waio.StructuredExtractor at compile time.
var _ waio.StructuredExtractor = (*Structured)(nil)

// Structured resolves fields from structured markers by weighted
// selection and simulates the cognitive time a bot spends on the page.
type Structured struct {
	Scanner  waio.MarkerScanner
	Fallback waio.HeuristicExtractor
	Profiles *waio.ProfileTable

	// Logger receives recovered scan failures. Nil disables logging.
	Logger *slog.Logger
}

// NewStructured creates a Structured extractor using the built-in
// profile table.
func NewStructured(scanner waio.MarkerScanner, fallback waio.HeuristicExtractor) *Structured {
	return &Structured{
		Scanner:  scanner,
		Fallback: fallback,
		Profiles: waio.DefaultProfileTable(),
	}
}

// Extract runs the timed scan, simulates cost against params.Baseline and
// backfills unresolved fields from the fallback extractor.
// Returns EINVALID for an unknown mode. Fallback errors are returned.
func (s *Structured) Extract(html string, params waio.StructuredParams) (*waio.ExtractionResult, time.Duration, error) {
	if err := params.Mode.Validate(); err != nil {
		return nil, 0, err
	}

	result := waio.NewExtractionResult()

	begin := time.Now()
	elements := s.scan(html)
	winners := waio.Select(elements)
	for _, f := range waio.CoreFields {
		if c, ok := winners[f]; ok {
			result.Set(f, c.Value, waio.ProvenanceStructured)
		}
	}
	scan := time.Since(begin)

	// Only data-ai-* attributes count as markers. A page annotated with
	// data-importance alone is scanned for scoring but reports false.
	found := waio.FoundAttributes(elements)
	result.MarkersDetected = len(found) > 0

	in := waio.CostInput{
		Scan:     scan,
		Baseline: params.Baseline,
		Resolved: result.StructuredCount(),
	}

	if params.Baseline == nil || in.Resolved < len(waio.CoreFields) {
		fallback, elapsed, err := s.Fallback.Extract(html)
		if err != nil {
			return nil, 0, fmt.Errorf("fallback extraction: %w", err)
		}
		for _, f := range result.Missing() {
			result.Set(f, fallback.Get(f), waio.ProvenanceHeuristic)
		}
		in.Fallback = elapsed
	}

	if params.Baseline != nil && in.Resolved > 0 {
		modifier, err := s.profiles().Modifier(params.Bot, params.Mode, found)
		if err != nil {
			return nil, 0, err
		}
		in.Modifier = modifier
	}

	simulated := waio.SimulateCost(in)

	s.explain(result, winners, elements)

	return result, simulated, nil
}

// scan returns the annotated elements of the page. Failures are treated as
// a page without markers.
func (s *Structured) scan(html string) []waio.AnnotatedElement {
	elements, err := s.Scanner.Scan(html)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warn("structured scan failed", "err", err)
		}
		return nil
	}
	return elements
}

func (s *Structured) profiles() *waio.ProfileTable {
	if s.Profiles == nil {
		return waio.DefaultProfileTable()
	}
	return s.Profiles
}

// explain records why each field was selected and every annotation seen.
// It never changes field values.
func (s *Structured) explain(result *waio.ExtractionResult, winners map[waio.Field]waio.Candidate, elements []waio.AnnotatedElement) {
	for _, f := range waio.CoreFields {
		if c, ok := winners[f]; ok {
			result.Reasoning[fmt.Sprintf("Selected %s via", f.Label())] = c.Explain()
		}
	}
	for _, e := range elements {
		for _, a := range e.Attrs {
			if !isAnnotation(a.Name) {
				continue
			}
			key := fmt.Sprintf("<%s> %s", e.Tag, a.Name)
			if _, ok := result.Reasoning[key]; ok {
				continue
			}
			result.Reasoning[key] = Truncate(a.Value, diagnosticRunes)
		}
	}
}

func isAnnotation(name string) bool {
	return name == waio.AttrImportance || strings.HasPrefix(name, waio.MarkerPrefix)
}
