package waio

import "time"

// Cost model constants.
const (
	// MinSimulatedTime is the lowest cognitive time the model reports.
	MinSimulatedTime = time.Millisecond

	// CognitiveFloor is the share of baseline effort left even when every
	// field is resolved from markers, the work of confirming the data.
	CognitiveFloor = 0.05

	// skipEfficiency is the share of a resolved field's effort that is saved.
	skipEfficiency = 0.95
)

// CostInput holds everything the cost model needs.
type CostInput struct {
	// Scan is the measured time of the structured scan.
	Scan time.Duration

	// Baseline is the heuristic cognitive time. Nil selects cold mode.
	Baseline *time.Duration

	// Fallback is the heuristic extractor's own elapsed time, added in
	// cold mode.
	Fallback time.Duration

	// Resolved is the number of core fields resolved from markers.
	Resolved int

	// Modifier is the preference modifier. Values below or equal to zero
	// are treated as 1.0.
	Modifier float64
}

// RemainingRatio returns the share of baseline effort still spent after
// resolving n of the core fields from markers.
func RemainingRatio(resolved int) float64 {
	skipped := float64(resolved) / float64(len(CoreFields))
	return max(CognitiveFloor, 1.0-skipped*skipEfficiency)
}

// SimulateCost returns the simulated cognitive time of a structured
// extraction. The result is never below MinSimulatedTime.
func SimulateCost(in CostInput) time.Duration {
	var simulated time.Duration
	switch {
	case in.Baseline == nil:
		simulated = in.Scan + in.Fallback
	case in.Resolved == 0:
		simulated = *in.Baseline
	default:
		modifier := in.Modifier
		if modifier <= 0 {
			modifier = 1.0
		}
		remaining := RemainingRatio(in.Resolved) / modifier
		simulated = time.Duration(float64(*in.Baseline)*remaining) + in.Scan
	}
	return max(MinSimulatedTime, simulated)
}
