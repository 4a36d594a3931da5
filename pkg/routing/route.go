package routing

import (
	"github.com/wayfindr/indoornav/pkg/cost"
	"github.com/wayfindr/indoornav/pkg/graph"
)

// Outcome is the termination state of a route search.
type Outcome string

const (
	OutcomeSearching Outcome = "SEARCHING"
	OutcomeFound     Outcome = "FOUND"
	OutcomeExhausted Outcome = "EXHAUSTED"
	// OutcomeFallback marks a synthetic straight-line route produced
	// after both searches exhausted.
	OutcomeFallback Outcome = "FALLBACK_SYNTHESIZED"
)

// Leg is one traversed edge of a route.
type Leg struct {
	From        string               `json:"from"`
	To          string               `json:"to"`
	Kind        graph.TransitionKind `json:"kind"`
	Distance    float64              `json:"distance"`
	Cost        float64              `json:"cost"`
	TimePenalty float64              `json:"timePenalty,omitempty"`
}

// Route is the canonical result of a search: a pure value holding
// location identifiers only, never references into the graph. It is
// produced once per request and safe to copy and share; rebuilding the
// graph does not invalidate routes handed out earlier.
type Route struct {
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Mode        cost.Mode `json:"mode"`

	// Path lists the location identifiers from origin to destination
	// inclusive. Legs lists the edges between them; empty for a
	// synthetic fallback route, where no real geometry is known.
	Path []string `json:"path"`
	Legs []Leg    `json:"legs"`

	Distance float64 `json:"distance"` // meters
	Duration float64 `json:"duration"` // seconds
	Cost     float64 `json:"cost"`

	FloorChange bool `json:"floorChange"`
	// Fallback distinguishes a genuine graph path from a straight-line
	// approximation. The audio layer phrases the two differently.
	Fallback bool    `json:"fallback"`
	Outcome  Outcome `json:"outcome"`

	Checkpoints []string `json:"checkpoints"`
}
