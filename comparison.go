package waio

import "time"

// Metrics holds the timings of one extractor run over a fetched page.
type Metrics struct {
	NetworkTime   time.Duration `json:"networkTime"`
	ParseTime     time.Duration `json:"parseTime"`
	CognitiveTime time.Duration `json:"cognitiveTime"`

	ResponseSize int               `json:"responseSize"`
	StatusCode   int               `json:"statusCode"`
	HeadersSent  map[string]string `json:"headersSent,omitempty"`
}

// Total returns the sum of network, parse and cognitive time.
func (m Metrics) Total() time.Duration {
	return m.NetworkTime + m.ParseTime + m.CognitiveTime
}

// Run is the outcome of one extractor over a page.
type Run struct {
	Metrics Metrics           `json:"metrics"`
	Result  *ExtractionResult `json:"result"`

	// Tokens is the token count of the main content, when counted.
	Tokens int `json:"tokens,omitempty"`
}

// Comparison puts a heuristic and a structured run over the same page
// side by side.
type Comparison struct {
	URL  string         `json:"url"`
	Bot  Bot            `json:"bot"`
	Mode ComparisonMode `json:"mode"`

	Heuristic  Run `json:"heuristic"`
	Structured Run `json:"structured"`
}

// Speedup returns how many times faster the structured run understood the
// page. Returns 0 when the structured cognitive time is zero.
func (c *Comparison) Speedup() float64 {
	if c.Structured.Metrics.CognitiveTime == 0 {
		return 0
	}
	return float64(c.Heuristic.Metrics.CognitiveTime) / float64(c.Structured.Metrics.CognitiveTime)
}

// GainPercent returns the cognitive time reduction in percent of the
// heuristic time. Returns 0 when the heuristic cognitive time is zero.
func (c *Comparison) GainPercent() float64 {
	h := c.Heuristic.Metrics.CognitiveTime
	if h == 0 {
		return 0
	}
	return float64(h-c.Structured.Metrics.CognitiveTime) / float64(h) * 100
}

// ComparisonService compares both extractors over a fetched page.
type ComparisonService interface {
	Compare(page *Page, bot Bot, mode ComparisonMode) (*Comparison, error)
}
