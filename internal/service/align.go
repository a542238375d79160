package service

import "math"

const (
	MinStretchFactor = 0.5
	MaxStretchFactor = 2.0
	// StretchTolerance is the largest clip/window mismatch, in seconds, left
	// unstretched.
	StretchTolerance = 0.5
)

// StretchPlan describes how a synthesized clip is fitted to its window.
// Factor is an atempo ratio: values above 1 shorten the clip.
type StretchPlan struct {
	Factor  float64
	Apply   bool
	Clamped bool
}

// PlanStretch fits a clip of actual seconds into a target window.
func PlanStretch(actual, target float64) StretchPlan {
	if target <= 0 || actual <= 0 {
		return StretchPlan{Factor: 1}
	}
	if math.Abs(actual-target) <= StretchTolerance {
		return StretchPlan{Factor: 1}
	}

	raw := actual / target
	factor := math.Max(MinStretchFactor, math.Min(MaxStretchFactor, raw))
	return StretchPlan{
		Factor:  factor,
		Apply:   true,
		Clamped: factor != raw,
	}
}
