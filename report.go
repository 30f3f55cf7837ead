package waio

import (
	"context"
	"time"
)

// Report is the stored summary of a comparison.
type Report struct {
	ID          string         `json:"id"`
	URL         string         `json:"url"`
	Bot         Bot            `json:"bot"`
	Mode        ComparisonMode `json:"mode"`
	ContentHash string         `json:"contentHash"`

	NetworkTime         time.Duration `json:"networkTime"`
	ParseTime           time.Duration `json:"parseTime"`
	HeuristicCognitive  time.Duration `json:"heuristicCognitive"`
	StructuredCognitive time.Duration `json:"structuredCognitive"`

	Speedup         float64 `json:"speedup"`
	GainPercent     float64 `json:"gainPercent"`
	IntegrityScore  float64 `json:"integrityScore"`
	MarkersDetected bool    `json:"markersDetected"`

	CreatedAt time.Time `json:"createdAt"`
}

// NewReport summarizes a comparison.
func NewReport(c *Comparison) *Report {
	r := &Report{
		URL:                 c.URL,
		Bot:                 c.Bot,
		Mode:                c.Mode,
		NetworkTime:         c.Structured.Metrics.NetworkTime,
		ParseTime:           c.Structured.Metrics.ParseTime,
		HeuristicCognitive:  c.Heuristic.Metrics.CognitiveTime,
		StructuredCognitive: c.Structured.Metrics.CognitiveTime,
		Speedup:             c.Speedup(),
		GainPercent:         c.GainPercent(),
	}
	if c.Structured.Result != nil {
		r.IntegrityScore = c.Structured.Result.IntegrityScore()
		r.MarkersDetected = c.Structured.Result.MarkersDetected
	}
	return r
}

// Validate returns an error if the report contains invalid fields.
func (r *Report) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "report URL required")
	}
	if err := r.Mode.Validate(); err != nil {
		return err
	}
	return nil
}

// ReportService represents a service for managing benchmark reports.
type ReportService interface {
	// CreateReport stores a new report. ID and CreatedAt are assigned.
	CreateReport(ctx context.Context, report *Report) error

	// FindReportByID retrieves a report by ID.
	// Returns ENOTFOUND if the report does not exist.
	FindReportByID(ctx context.Context, id string) (*Report, error)

	// FindReports retrieves reports matching the filter, newest first.
	FindReports(ctx context.Context, filter ReportFilter) ([]*Report, error)
}

// ReportFilter represents a filter for FindReports.
type ReportFilter struct {
	URL *string `json:"url"`
	Bot *Bot    `json:"bot"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
