// Package cost turns edge attributes into search costs. A Scorer is a
// pure function of arc and mode: it keeps no state and may be shared by
// any number of concurrent searches.
package cost

import "github.com/wayfindr/indoornav/pkg/graph"

// Mode selects the accessibility weighting of a search.
type Mode string

const (
	// ModeStandard weighs edges by distance, with a moderate penalty on
	// stairs.
	ModeStandard Mode = "standard"
	// ModeStepFree applies accessibility multipliers and effectively
	// excludes stairs from the search.
	ModeStepFree Mode = "step-free"
)

func (m Mode) Valid() bool {
	return m == ModeStandard || m == ModeStepFree
}

// Params are the configured weighting constants.
type Params struct {
	// WalkingSpeed converts fixed time penalties into distance units,
	// in meters per second.
	WalkingSpeed float64 `yaml:"walking_speed"`
	// StairsPenalty is the multiplier applied to stairs in standard mode.
	StairsPenalty float64 `yaml:"stairs_penalty"`
	// StepFreeExclusion is the multiplier applied to stairs in step-free
	// mode. Large enough that stairs are only ever taken when no
	// step-free path exists at all.
	StepFreeExclusion float64 `yaml:"step_free_exclusion"`
}

// DefaultParams mirror the original deployment: 1.4 m/s average walking
// speed, stairs weighed half again in standard mode.
func DefaultParams() Params {
	return Params{
		WalkingSpeed:      1.4,
		StairsPenalty:     1.5,
		StepFreeExclusion: 1e6,
	}
}

type Scorer struct {
	params Params
}

func NewScorer(p Params) Scorer {
	if p.WalkingSpeed <= 0 {
		p.WalkingSpeed = DefaultParams().WalkingSpeed
	}
	if p.StairsPenalty < 1 {
		p.StairsPenalty = DefaultParams().StairsPenalty
	}
	if p.StepFreeExclusion < 1 {
		p.StepFreeExclusion = DefaultParams().StepFreeExclusion
	}
	return Scorer{params: p}
}

func (s Scorer) Params() Params {
	return s.params
}

// WalkingSpeed returns the configured walking speed in m/s.
func (s Scorer) WalkingSpeed() float64 {
	return s.params.WalkingSpeed
}

// ArcCost returns the non-negative cost of traversing an arc under the
// given mode, in distance units.
func (s Scorer) ArcCost(a graph.Arc, mode Mode) float64 {
	multiplier := 1.0
	switch {
	case a.Kind == graph.KindStairs && mode == ModeStepFree:
		multiplier = s.params.StepFreeExclusion
	case a.Kind == graph.KindStairs:
		multiplier = s.params.StairsPenalty
	case mode == ModeStepFree && a.Multiplier > 1:
		multiplier = a.Multiplier
	}

	cost := a.Distance * multiplier
	if a.Kind.FloorTransition() {
		cost += s.TimeToDistance(a.TimePenalty)
	}
	return cost
}

// TimeToDistance converts a time penalty in seconds into the cost unit
// used for distances.
func (s Scorer) TimeToDistance(seconds float64) float64 {
	return seconds * s.params.WalkingSpeed
}

// MinTransitionCost is the best-case cost of any floor transition: the
// configured transition distance with no multiplier and no wait. Used as
// the admissible per-floor step of the cross-floor heuristic.
func (s Scorer) MinTransitionCost(transitionDistance float64) float64 {
	return transitionDistance
}
