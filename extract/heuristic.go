// Package extract implements the heuristic and structured extractors and
// the comparison of both over a fetched page.
package extract

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/waio"
)

// summaryRunes is the length of a summary derived from main content.
const summaryRunes = 200

// Ensure Heuristic implements waio.HeuristicExtractor at compile time.
var _ waio.HeuristicExtractor = (*Heuristic)(nil)

// Heuristic infers fields from unannotated markup the way a bot without
// structured markers has to.
type Heuristic struct {
	Content  waio.ContentExtractor
	Metadata waio.MetadataReader
	Scanner  waio.MarkerScanner
}

// NewHeuristic creates a Heuristic extractor.
func NewHeuristic(content waio.ContentExtractor, metadata waio.MetadataReader, scanner waio.MarkerScanner) *Heuristic {
	return &Heuristic{
		Content:  content,
		Metadata: metadata,
		Scanner:  scanner,
	}
}

// Extract resolves title, summary and main content and returns the time it
// took. Content extraction and marker detection failures leave their
// fields empty; a metadata parse failure is returned.
func (h *Heuristic) Extract(html string) (*waio.ExtractionResult, time.Duration, error) {
	begin := time.Now()
	result := waio.NewExtractionResult()

	// Content errors mean no main content.
	content, _ := h.Content.ExtractContent(html)
	result.Set(waio.FieldMainContent, content, waio.ProvenanceHeuristic)

	meta, err := h.Metadata.ReadMetadata(html)
	if err != nil {
		return nil, 0, fmt.Errorf("read metadata: %w", err)
	}
	result.Set(waio.FieldTitle, meta.Title, waio.ProvenanceHeuristic)

	summary := meta.Description
	if summary == "" {
		summary = Summarize(content)
	}
	result.Set(waio.FieldSummary, summary, waio.ProvenanceHeuristic)

	detected, err := h.Scanner.Detect(html)
	result.MarkersDetected = err == nil && detected

	return result, time.Since(begin), nil
}

// Summarize returns the first 200 runes of content, trimmed, followed by
// an ellipsis when content was longer.
func Summarize(content string) string {
	if utf8.RuneCountInString(content) <= summaryRunes {
		return strings.TrimSpace(content)
	}
	return strings.TrimSpace(Truncate(content, summaryRunes)) + "..."
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
