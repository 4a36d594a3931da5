package path

import "github.com/wayfindr/indoornav/pkg/graph"

// searchItem is one frontier entry. Implements queue.Prioritizable.
type searchItem struct {
	nodeId      graph.NodeId // node id of this item in the graph
	tieId       string       // location identifier, final tie-break
	distance    float64      // accumulated cost from the origin
	heuristic   float64      // estimated remaining cost to the destination
	hops        int          // number of arcs traversed from the origin
	predecessor graph.NodeId // node id of the predecessor
	index       int          // position in the heap, -1 when popped
}

func newSearchItem(nodeId graph.NodeId, tieId string, distance, heuristic float64, hops int, predecessor graph.NodeId) *searchItem {
	return &searchItem{
		nodeId:      nodeId,
		tieId:       tieId,
		distance:    distance,
		heuristic:   heuristic,
		hops:        hops,
		predecessor: predecessor,
		index:       -1,
	}
}

func (item *searchItem) priority() float64 {
	return item.distance + item.heuristic
}

// Less orders the frontier by estimated total cost; among equal costs
// the shallower path wins, then the smaller location identifier, so the
// same inputs always produce the same route.
func (item *searchItem) Less(other *searchItem) bool {
	if p, q := item.priority(), other.priority(); p != q {
		return p < q
	}
	if item.hops != other.hops {
		return item.hops < other.hops
	}
	return item.tieId < other.tieId
}

func (item *searchItem) Index() int {
	return item.index
}

func (item *searchItem) SetIndex(index int) {
	item.index = index
}
