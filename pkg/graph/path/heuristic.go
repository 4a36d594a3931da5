package path

import (
	"math"

	"github.com/wayfindr/indoornav/pkg/graph"
)

// floorHeuristic estimates the remaining cost to one fixed destination.
//
// On the destination's floor the estimate is the straight-line distance.
// On any other floor it is the straight-line distance to the nearest
// floor-transition node leading toward the destination's floor, plus a
// best-case transition cost, plus recursively the same estimate from the
// far side of that transition. Straight lines never exceed walked paths
// and the transition constant never exceeds a real transition cost, so
// the estimate stays admissible.
type floorHeuristic struct {
	g             *graph.Graph
	coords        CoordFunc
	destination   graph.NodeId
	destFloor     int
	minTransition float64

	incomplete bool // set when coordinate data was missing somewhere
}

// estimate returns the admissible remaining-cost estimate for node. It
// returns +Inf when no transition chain reaches the destination's floor
// and 0 when coordinates are unavailable (zero never overestimates).
func (h *floorHeuristic) estimate(node graph.NodeId) float64 {
	est := h.estimateFrom(node, map[int]bool{})
	if math.IsInf(est, 1) && h.incomplete {
		return 0
	}
	return est
}

func (h *floorHeuristic) estimateFrom(node graph.NodeId, visitedFloors map[int]bool) float64 {
	from, ok := h.coords(node)
	if !ok {
		h.incomplete = true
		return math.Inf(1)
	}

	floor := h.g.Node(node).Floor
	if floor == h.destFloor {
		to, ok := h.coords(h.destination)
		if !ok {
			h.incomplete = true
			return math.Inf(1)
		}
		return from.Distance(to)
	}

	visitedFloors[floor] = true
	defer delete(visitedFloors, floor)

	best := math.Inf(1)
	for _, transition := range h.g.TransitionNodes(floor) {
		tp, ok := h.coords(transition)
		if !ok {
			h.incomplete = true
			continue
		}
		approach := from.Distance(tp)
		for _, arc := range h.g.ArcsFrom(transition) {
			if !arc.Kind.FloorTransition() {
				continue
			}
			if visitedFloors[h.g.Node(arc.To).Floor] {
				continue
			}
			onward := h.estimateFrom(arc.To, visitedFloors)
			if cand := approach + h.minTransition + onward; cand < best {
				best = cand
			}
		}
	}
	return best
}
