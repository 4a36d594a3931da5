// Package guidance converts routes into ordered turn-by-turn
// instructions for the UI and audio collaborators.
package guidance

import (
	"fmt"
	"strings"

	"github.com/wayfindr/indoornav/pkg/cost"
	"github.com/wayfindr/indoornav/pkg/geometry"
	"github.com/wayfindr/indoornav/pkg/graph"
	"github.com/wayfindr/indoornav/pkg/registry"
	"github.com/wayfindr/indoornav/pkg/routing"
)

// Directives. Floor changes always get their own directive regardless of
// the transition kind; the kind rides along so audio can phrase it.
const (
	DirectiveProceed     = "proceed"
	DirectiveTurnLeft    = "turn left"
	DirectiveTurnRight   = "turn right"
	DirectiveChangeFloor = "change floor"
	DirectiveDirect      = "head directly"
	DirectiveArrive      = "arrive"
)

// turnThreshold is the angle in degrees below which a corridor joint
// counts as going straight.
const turnThreshold = 30.0

// Instruction is one turn-by-turn step.
type Instruction struct {
	Directive   string               `json:"directive"`
	Kind        graph.TransitionKind `json:"kind,omitempty"`
	Target      string               `json:"target"`
	Description string               `json:"description"`
	Text        string               `json:"text"`

	Distance           float64 `json:"distance"`           // meters to travel before the next directive
	CumulativeDistance float64 `json:"cumulativeDistance"` // meters from the start
	CumulativeTime     float64 `json:"cumulativeTime"`     // seconds from the start

	Note string `json:"note,omitempty"` // accessibility note, if any
}

// Generator derives instructions from routes. It resolves descriptions
// through the registry snapshot it was created with; create one per
// request from the engine's current registry.
type Generator struct {
	reg    *registry.Registry
	scorer cost.Scorer

	// TurnPenalty is the per-turn time estimate in seconds, matching the
	// engine's duration model.
	TurnPenalty float64
}

func NewGenerator(reg *registry.Registry, scorer cost.Scorer) *Generator {
	return &Generator{reg: reg, scorer: scorer, TurnPenalty: 2.0}
}

// Generate converts a route into ordered instructions. A synthetic
// fallback route yields a single degraded instruction, since no real
// path geometry is known.
func (g *Generator) Generate(rt routing.Route) ([]Instruction, error) {
	dest, err := g.reg.Lookup(rt.Destination)
	if err != nil {
		return nil, err
	}

	if rt.Fallback {
		text := fmt.Sprintf("Head directly toward %s; detailed guidance is unavailable for this destination.", describe(dest))
		return []Instruction{{
			Directive:          DirectiveDirect,
			Target:             dest.ID,
			Description:        dest.Description,
			Text:               text,
			Distance:           rt.Distance,
			CumulativeDistance: rt.Distance,
			CumulativeTime:     rt.Duration,
		}}, nil
	}

	var out []Instruction
	var cumDistance, cumTime float64
	var prev *registry.Location

	for i, leg := range rt.Legs {
		from, err := g.reg.Lookup(leg.From)
		if err != nil {
			return nil, err
		}
		to, err := g.reg.Lookup(leg.To)
		if err != nil {
			return nil, err
		}

		cumDistance += leg.Distance
		cumTime += leg.Distance / g.scorer.WalkingSpeed()

		var ins Instruction
		if leg.Kind.FloorTransition() {
			cumTime += leg.TimePenalty
			ins = Instruction{
				Directive:   DirectiveChangeFloor,
				Kind:        leg.Kind,
				Target:      to.ID,
				Description: to.Description,
				Text:        fmt.Sprintf("Take the %s to floor %d, toward %s.", transitionNoun(leg.Kind), to.Floor, describe(to)),
				Distance:    leg.Distance,
			}
		} else {
			directive := DirectiveProceed
			if prev != nil && prev.Floor == from.Floor {
				switch angle := geometry.TurnAngle(prev.Point(), from.Point(), to.Point()); {
				case angle > turnThreshold:
					directive = DirectiveTurnLeft
				case angle < -turnThreshold:
					directive = DirectiveTurnRight
				}
			}
			if i > 0 {
				cumTime += g.TurnPenalty
			}
			ins = Instruction{
				Directive:   directive,
				Kind:        leg.Kind,
				Target:      to.ID,
				Description: to.Description,
				Text:        corridorText(directive, leg.Distance, to),
				Distance:    leg.Distance,
				Note:        accessibilityNote(leg),
			}
		}
		ins.CumulativeDistance = cumDistance
		ins.CumulativeTime = cumTime
		out = append(out, ins)
		prev = &from
	}

	out = append(out, Instruction{
		Directive:          DirectiveArrive,
		Target:             dest.ID,
		Description:        dest.Description,
		Text:               fmt.Sprintf("You have arrived at %s.", describe(dest)),
		CumulativeDistance: cumDistance,
		CumulativeTime:     cumTime,
	})
	return out, nil
}

// Summary renders a human-readable description of a route and its
// instructions.
func (g *Generator) Summary(rt routing.Route, instructions []Instruction) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Route to %s\n", rt.Destination)
	fmt.Fprintf(&sb, "Total distance: %.1f meters\n", rt.Distance)
	fmt.Fprintf(&sb, "Estimated time: %.0f seconds\n", rt.Duration)
	if len(rt.Checkpoints) > 0 {
		fmt.Fprintf(&sb, "Checkpoints: %s\n", strings.Join(rt.Checkpoints, ", "))
	}
	if rt.Fallback {
		sb.WriteString("Guidance is approximate: no mapped path connects these locations.\n")
	}
	sb.WriteString("\n")
	for i, ins := range instructions {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, ins.Text)
		if ins.Note != "" {
			fmt.Fprintf(&sb, "   %s\n", ins.Note)
		}
	}
	return sb.String()
}

func corridorText(directive string, distance float64, to registry.Location) string {
	switch directive {
	case DirectiveTurnLeft, DirectiveTurnRight:
		return fmt.Sprintf("%s and continue %.1f meters to %s.", capitalize(directive), distance, describe(to))
	default:
		return fmt.Sprintf("Proceed %.1f meters to %s.", distance, describe(to))
	}
}

func accessibilityNote(leg routing.Leg) string {
	switch {
	case leg.Cost > leg.Distance*2:
		return "Note: this passage may have accessibility challenges."
	case leg.Cost > leg.Distance:
		return "Note: minor accessibility considerations on this passage."
	}
	return ""
}

func transitionNoun(kind graph.TransitionKind) string {
	switch kind {
	case graph.KindElevator:
		return "elevator"
	case graph.KindRamp:
		return "ramp"
	default:
		return "stairs"
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func describe(loc registry.Location) string {
	if loc.Description != "" {
		return loc.Description
	}
	return loc.ID
}
