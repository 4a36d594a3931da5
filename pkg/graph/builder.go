package graph

import (
	"sort"
	"strconv"

	"github.com/wayfindr/indoornav/pkg/registry"
)

// Adjacency declares that two locations are directly connected. The
// builder never infers corridors from coordinates: geometric proximity
// does not imply a walkable path, so every edge is declared explicitly.
type Adjacency struct {
	From string         `yaml:"from" json:"from"`
	To   string         `yaml:"to" json:"to"`
	Kind TransitionKind `yaml:"kind,omitempty" json:"kind,omitempty"` // default corridor

	// Multiplier is the accessibility penalty factor for narrow, badly
	// lit or otherwise less accessible passages. Values below 1 are
	// clamped to 1.
	Multiplier float64 `yaml:"multiplier,omitempty" json:"multiplier,omitempty"`

	// TimePenalty is the fixed wait/travel time of a floor transition in
	// seconds. ReverseTimePenalty, when set, makes the cost asymmetric
	// (elevator call time applies in one direction only).
	TimePenalty        float64  `yaml:"time_penalty,omitempty" json:"timePenalty,omitempty"`
	ReverseTimePenalty *float64 `yaml:"reverse_time_penalty,omitempty" json:"reverseTimePenalty,omitempty"`
}

// BuildOptions tunes distance assignment during the build.
type BuildOptions struct {
	// TransitionDistance is the fixed base distance assigned to every
	// floor-transition arc, since 2-D coordinates are not comparable
	// across floors.
	TransitionDistance float64
}

func DefaultBuildOptions() BuildOptions {
	return BuildOptions{TransitionDistance: 5.0}
}

// Build converts registry records plus adjacency data into an immutable
// navigation graph. It fails with a *TopologyError if an adjacency
// references an unknown identifier, a corridor spans two floors, or a
// floor transition stays on one floor.
func Build(reg *registry.Registry, adjacencies []Adjacency, opts BuildOptions) (*Graph, error) {
	locations := reg.All() // already ordered by identifier

	g := &Graph{
		nodes:       make([]Node, len(locations)),
		arcs:        make([][]Arc, len(locations)),
		index:       make(map[string]NodeId, len(locations)),
		floors:      make(map[int][]NodeId),
		transitions: make(map[int][]NodeId),
	}
	for i, loc := range locations {
		g.nodes[i] = Node{ID: loc.ID, Floor: loc.Floor}
		g.index[loc.ID] = i
		g.floors[loc.Floor] = append(g.floors[loc.Floor], i)
	}

	for _, adj := range adjacencies {
		kind := adj.Kind
		if kind == "" {
			kind = KindCorridor
		}
		if !kind.Valid() {
			return nil, &TopologyError{From: adj.From, To: adj.To, Reason: "unknown transition kind " + string(adj.Kind)}
		}

		from, err := reg.Lookup(adj.From)
		if err != nil {
			return nil, &TopologyError{From: adj.From, To: adj.To, Reason: "unknown location " + adj.From}
		}
		to, err := reg.Lookup(adj.To)
		if err != nil {
			return nil, &TopologyError{From: adj.From, To: adj.To, Reason: "unknown location " + adj.To}
		}
		if adj.From == adj.To {
			return nil, &TopologyError{From: adj.From, To: adj.To, Reason: "self loop"}
		}

		var distance float64
		if kind.FloorTransition() {
			if from.Floor == to.Floor {
				return nil, &TopologyError{From: adj.From, To: adj.To, Reason: string(kind) + " connects two nodes on floor " + itoa(from.Floor)}
			}
			distance = opts.TransitionDistance
		} else {
			if from.Floor != to.Floor {
				return nil, &TopologyError{From: adj.From, To: adj.To, Reason: "corridor spans floors " + itoa(from.Floor) + " and " + itoa(to.Floor)}
			}
			distance = from.Distance(to)
		}

		multiplier := adj.Multiplier
		if multiplier < 1 {
			multiplier = 1
		}
		reversePenalty := adj.TimePenalty
		if adj.ReverseTimePenalty != nil {
			reversePenalty = *adj.ReverseTimePenalty
		}

		fromID, toID := g.index[adj.From], g.index[adj.To]
		if err := g.addArc(fromID, Arc{To: toID, Distance: distance, Multiplier: multiplier, Kind: kind, TimePenalty: adj.TimePenalty}); err != nil {
			return nil, err
		}
		if err := g.addArc(toID, Arc{To: fromID, Distance: distance, Multiplier: multiplier, Kind: kind, TimePenalty: reversePenalty}); err != nil {
			return nil, err
		}
	}

	// deterministic arc order regardless of declaration order
	for i := range g.arcs {
		arcs := g.arcs[i]
		sort.Slice(arcs, func(a, b int) bool { return arcs[a].To < arcs[b].To })
	}
	for floor, ids := range g.floors {
		for _, id := range ids {
			if g.hasTransitionArc(id) {
				g.transitions[floor] = append(g.transitions[floor], id)
			}
		}
	}
	return g, nil
}

func (g *Graph) addArc(from NodeId, arc Arc) error {
	for _, existing := range g.arcs[from] {
		if existing.To == arc.To {
			return &TopologyError{From: g.nodes[from].ID, To: g.nodes[arc.To].ID, Reason: "duplicate adjacency"}
		}
	}
	g.arcs[from] = append(g.arcs[from], arc)
	g.arcCount++
	return nil
}

func (g *Graph) hasTransitionArc(id NodeId) bool {
	for _, a := range g.arcs[id] {
		if a.Kind.FloorTransition() {
			return true
		}
	}
	return false
}

func itoa(v int) string {
	return strconv.Itoa(v)
}
