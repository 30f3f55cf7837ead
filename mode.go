package waio

import "strings"

// ComparisonMode selects the preference modifier formula used when
// simulating structured extraction cost.
type ComparisonMode string

// Comparison modes.
const (
	// ModeTheory assumes annotations are parsed faster than anything else
	// and that bots skip content they do not prefer.
	ModeTheory ComparisonMode = "theory"

	// ModeConsensus assumes annotations carry no parse advantage over
	// JSON-LD and that bot preferences are mild.
	ModeConsensus ComparisonMode = "consensus"
)

// DefaultMode is used when no mode is specified.
const DefaultMode = ModeTheory

// modeModifier holds the multipliers a mode applies.
type modeModifier struct {
	label     string
	base      float64
	preferred float64
}

var modeModifiers = map[ComparisonMode]modeModifier{
	ModeTheory:    {label: "WAIO Theory", base: 1.2, preferred: 1.4},
	ModeConsensus: {label: "Industry Consensus", base: 1.0, preferred: 1.1},
}

// Modes returns all comparison modes.
func Modes() []ComparisonMode {
	return []ComparisonMode{ModeTheory, ModeConsensus}
}

// Label returns the display name of the mode.
func (m ComparisonMode) Label() string {
	if mm, ok := modeModifiers[m]; ok {
		return mm.label
	}
	return string(m)
}

// Validate returns EINVALID if the mode is not a known mode.
func (m ComparisonMode) Validate() error {
	if _, ok := modeModifiers[m]; !ok {
		return Errorf(EINVALID, "invalid comparison mode %q", string(m))
	}
	return nil
}

// ParseMode resolves a mode from its name or display label.
// Unknown values are rejected rather than defaulted because the mode
// changes the cost model.
func ParseMode(s string) (ComparisonMode, error) {
	s = strings.TrimSpace(s)
	for m, mm := range modeModifiers {
		if strings.EqualFold(s, string(m)) || strings.EqualFold(s, mm.label) {
			return m, nil
		}
	}
	return "", Errorf(EINVALID, "invalid comparison mode %q, available: theory, consensus", s)
}
