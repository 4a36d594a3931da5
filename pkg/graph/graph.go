package graph

// NodeId indexes a node inside one built graph. Ids are assigned in
// identifier order, so the same map always yields the same numbering.
type NodeId = int

// TransitionKind classifies how an edge is traversed.
type TransitionKind string

const (
	KindCorridor TransitionKind = "corridor"
	KindStairs   TransitionKind = "stairs"
	KindElevator TransitionKind = "elevator"
	KindRamp     TransitionKind = "ramp"
)

// FloorTransition reports whether the kind joins two floors.
func (k TransitionKind) FloorTransition() bool {
	return k == KindStairs || k == KindElevator || k == KindRamp
}

func (k TransitionKind) Valid() bool {
	switch k {
	case KindCorridor, KindStairs, KindElevator, KindRamp:
		return true
	}
	return false
}

// Node carries only the location identifier and its floor. Coordinates
// and everything else stay in the registry; the graph never embeds them.
type Node struct {
	ID    string
	Floor int
}

// Arc is a directed edge. Corridors are stored as two symmetric arcs;
// floor transitions may carry different time penalties per direction
// (an elevator call is only waited for on entry).
type Arc struct {
	To          NodeId
	Distance    float64        // base physical distance in meters
	Multiplier  float64        // accessibility penalty multiplier, >= 1
	Kind        TransitionKind // corridor, stairs, elevator, ramp
	TimePenalty float64        // fixed wait/travel time in seconds, transitions only
}

func (a Arc) Destination() NodeId {
	return a.To
}

// Graph is the navigation graph of one building: per-floor sub-graphs
// joined by floor-transition arcs. It is immutable once built and safe
// to share between concurrent searches; rebuilding produces a new value.
type Graph struct {
	nodes       []Node
	arcs        [][]Arc
	index       map[string]NodeId
	floors      map[int][]NodeId
	transitions map[int][]NodeId // nodes with at least one floor-transition arc, per floor
	arcCount    int
}

func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

func (g *Graph) ArcCount() int {
	return g.arcCount
}

func (g *Graph) Node(id NodeId) Node {
	return g.nodes[id]
}

// ArcsFrom returns the outgoing arcs of a node, sorted by destination.
func (g *Graph) ArcsFrom(id NodeId) []Arc {
	return g.arcs[id]
}

// Resolve maps a location identifier to its node id.
func (g *Graph) Resolve(locationID string) (NodeId, bool) {
	id, ok := g.index[locationID]
	return id, ok
}

// FloorNodes returns the node ids on the given floor, ascending.
func (g *Graph) FloorNodes(floor int) []NodeId {
	return g.floors[floor]
}

// TransitionNodes returns the node ids on the given floor that have at
// least one floor-transition arc.
func (g *Graph) TransitionNodes(floor int) []NodeId {
	return g.transitions[floor]
}

// ArcBetween returns the arc from one node to another, if any.
func (g *Graph) ArcBetween(from, to NodeId) (Arc, bool) {
	for _, a := range g.arcs[from] {
		if a.To == to {
			return a, true
		}
	}
	return Arc{}, false
}
