package waio

import (
	"strings"
	"time"
)

// Reserved attribute names for structured markers.
const (
	// MarkerPrefix is the prefix shared by all structured marker attributes.
	MarkerPrefix = "data-ai-"

	AttrTitle       = "data-ai-title"
	AttrSummary     = "data-ai-summary"
	AttrDescription = "data-ai-description"
	AttrContent     = "data-ai-content"
	AttrMain        = "data-ai-main"
	AttrArticle     = "data-ai-article"
	AttrEntityType  = "data-ai-entity-type"
	AttrIntent      = "data-ai-intent"

	// AttrImportance is not prefixed but still counts as an annotation.
	AttrImportance = "data-importance"

	// ImportanceCritical is the AttrImportance value that boosts selection.
	ImportanceCritical = "critical"
)

// Field identifies one of the semantic fields both extractors resolve.
type Field string

// Core fields.
const (
	FieldTitle       Field = "title"
	FieldSummary     Field = "summary"
	FieldMainContent Field = "main_content"
)

// CoreFields lists the core fields in reporting order.
var CoreFields = []Field{FieldTitle, FieldSummary, FieldMainContent}

// Label returns a human-readable name such as "Main Content".
func (f Field) Label() string {
	words := strings.Split(string(f), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Provenance records how a field value was resolved.
type Provenance string

// Provenance values.
const (
	ProvenanceStructured Provenance = "structured"
	ProvenanceHeuristic  Provenance = "heuristic"
)

// ExtractionResult holds the fields resolved by one extractor run.
type ExtractionResult struct {
	Title       string `json:"title,omitempty"`
	Summary     string `json:"summary,omitempty"`
	MainContent string `json:"mainContent,omitempty"`

	// MarkersDetected reports whether the page carries any data-ai-* attribute.
	MarkersDetected bool `json:"markersDetected"`

	// Provenance has an entry for a field iff the field value is non-empty.
	Provenance map[Field]Provenance `json:"provenance"`

	// Reasoning holds diagnostic explanations keyed by a human-readable label.
	Reasoning map[string]string `json:"reasoning,omitempty"`
}

// NewExtractionResult returns an empty result with initialized maps.
func NewExtractionResult() *ExtractionResult {
	return &ExtractionResult{
		Provenance: make(map[Field]Provenance),
		Reasoning:  make(map[string]string),
	}
}

// Get returns the value of a field.
func (r *ExtractionResult) Get(f Field) string {
	switch f {
	case FieldTitle:
		return r.Title
	case FieldSummary:
		return r.Summary
	case FieldMainContent:
		return r.MainContent
	}
	return ""
}

// Set stores a field value together with its provenance.
// Empty values are ignored so provenance never points at an empty field.
func (r *ExtractionResult) Set(f Field, value string, p Provenance) {
	if value == "" {
		return
	}
	switch f {
	case FieldTitle:
		r.Title = value
	case FieldSummary:
		r.Summary = value
	case FieldMainContent:
		r.MainContent = value
	default:
		return
	}
	if r.Provenance == nil {
		r.Provenance = make(map[Field]Provenance)
	}
	r.Provenance[f] = p
}

// Missing returns the core fields that have no value yet.
func (r *ExtractionResult) Missing() []Field {
	var missing []Field
	for _, f := range CoreFields {
		if r.Get(f) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// StructuredCount returns how many core fields were resolved from markers.
func (r *ExtractionResult) StructuredCount() int {
	n := 0
	for _, f := range CoreFields {
		if r.Provenance[f] == ProvenanceStructured {
			n++
		}
	}
	return n
}

// IntegrityScore returns the percentage of core fields resolved from markers.
func (r *ExtractionResult) IntegrityScore() float64 {
	return float64(r.StructuredCount()) / float64(len(CoreFields)) * 100
}

// Attr is a single element attribute.
type Attr struct {
	Name  string
	Value string
}

// AnnotatedElement is an element carrying at least one structured marker,
// flattened out of the document tree by a MarkerScanner.
type AnnotatedElement struct {
	Tag   string
	Attrs []Attr
	Text  string

	// InMain is true when the element sits inside a primary-content container.
	InMain bool

	// InCritical is true when the element or an ancestor is marked critical.
	InCritical bool
}

// Attr returns the value of the named attribute and whether it exists.
func (e *AnnotatedElement) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// MarkerScanner finds structured markers in HTML documents.
type MarkerScanner interface {
	// Detect reports whether any attribute carries the marker prefix.
	Detect(html string) (bool, error)

	// Scan returns every annotated element in document order.
	Scan(html string) ([]AnnotatedElement, error)
}

// ContentExtractor removes boilerplate and returns the main content as text.
type ContentExtractor interface {
	ExtractContent(html string) (string, error)
}

// Metadata holds page-level title and description found by a MetadataReader.
type Metadata struct {
	Title       string
	Description string
}

// MetadataReader reads title and description hints from HTML.
type MetadataReader interface {
	// ReadMetadata returns the best title and description the page
	// declares through meta tags, <title> and headings.
	ReadMetadata(html string) (*Metadata, error)
}

// HeuristicExtractor infers fields from unannotated markup.
type HeuristicExtractor interface {
	// Extract returns the result and the cognitive time spent.
	Extract(html string) (*ExtractionResult, time.Duration, error)
}

// StructuredParams configures a structured extraction.
type StructuredParams struct {
	// Baseline is the heuristic cognitive time to model savings against.
	// When nil the heuristic extractor runs and its own time is added.
	Baseline *time.Duration

	Bot  Bot
	Mode ComparisonMode
}

// StructuredExtractor resolves fields from structured markers and
// reports a simulated cognitive time.
type StructuredExtractor interface {
	Extract(html string, params StructuredParams) (*ExtractionResult, time.Duration, error)
}
