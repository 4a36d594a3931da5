package path

import (
	"math"

	"github.com/wayfindr/indoornav/pkg/cost"
	"github.com/wayfindr/indoornav/pkg/graph"
	"github.com/wayfindr/indoornav/pkg/queue"
)

// Search implements Dijkstra-based path finding over a navigation
// graph; with a heuristic attached it is an A* search. One Search holds
// the state of a single computation and is not safe for concurrent use;
// run one Search per request against the shared read-only graph.
type Search struct {
	g      *graph.Graph
	scorer cost.Scorer
	mode   cost.Mode

	heuristic *floorHeuristic // nil for plain Dijkstra

	items []*searchItem

	origin      graph.NodeId
	destination graph.NodeId

	pqPops       int
	relaxedEdges int
}

var _ Navigator = (*Search)(nil)

// NewDijkstra creates an uninformed shortest-path search. It explores
// strictly by accumulated cost and finds a path whenever one exists.
func NewDijkstra(g *graph.Graph, scorer cost.Scorer, mode cost.Mode) *Search {
	return &Search{g: g, scorer: scorer, mode: mode, origin: -1, destination: -1}
}

// NewAStar creates a heuristic search informed by straight-line
// distance. minTransition is the best-case cost of one floor transition,
// used by the cross-floor estimate.
func NewAStar(g *graph.Graph, scorer cost.Scorer, mode cost.Mode, coords CoordFunc, minTransition float64) *Search {
	s := NewDijkstra(g, scorer, mode)
	s.heuristic = &floorHeuristic{g: g, coords: coords, minTransition: minTransition}
	return s
}

// HeuristicIncomplete reports whether the last search hit missing
// coordinate data while evaluating the heuristic.
func (s *Search) HeuristicIncomplete() bool {
	return s.heuristic != nil && s.heuristic.incomplete
}

// ComputeShortestPath computes the cheapest path from origin to
// destination and returns its cost, or -1 when the frontier empties
// before the destination is reached.
func (s *Search) ComputeShortestPath(origin, destination graph.NodeId) float64 {
	s.origin = origin
	s.destination = destination
	s.items = make([]*searchItem, s.g.NodeCount())
	s.pqPops = 0
	s.relaxedEdges = 0

	if s.heuristic != nil {
		s.heuristic.destination = destination
		s.heuristic.destFloor = s.g.Node(destination).Floor
		s.heuristic.incomplete = false
	}

	originItem := newSearchItem(origin, s.g.Node(origin).ID, 0, s.estimate(origin), 0, -1)
	if math.IsInf(originItem.heuristic, 1) {
		// the heuristic already proves the destination's floor is out of
		// reach from here
		return -1
	}
	s.items[origin] = originItem

	pq := queue.NewMinHeap[*searchItem]()
	pq.Push(originItem)

	for pq.Len() > 0 {
		current := pq.Pop()
		s.pqPops++

		if current.nodeId == destination {
			return current.distance
		}

		for _, arc := range s.g.ArcsFrom(current.nodeId) {
			successor := arc.Destination()
			updated := current.distance + s.scorer.ArcCost(arc, s.mode)
			s.relaxedEdges++

			item := s.items[successor]
			if item == nil {
				h := s.estimate(successor)
				if math.IsInf(h, 1) {
					continue
				}
				item = newSearchItem(successor, s.g.Node(successor).ID, updated, h, current.hops+1, current.nodeId)
				s.items[successor] = item
				pq.Push(item)
				continue
			}
			if updated < item.distance {
				item.distance = updated
				item.hops = current.hops + 1
				item.predecessor = current.nodeId
				if item.Index() >= 0 {
					pq.Update(item)
				} else {
					// already settled once; reopen in case the heuristic
					// was not consistent across a floor boundary
					pq.Push(item)
				}
			}
		}
	}
	return -1
}

// GetPath returns the node ids of the last computation, origin and
// destination inclusive; an empty slice when no path was found.
func (s *Search) GetPath(origin, destination graph.NodeId) []graph.NodeId {
	if s.items == nil || s.items[destination] == nil {
		return []graph.NodeId{}
	}
	path := make([]graph.NodeId, 0)
	for nodeId := destination; nodeId != -1; nodeId = s.items[nodeId].predecessor {
		path = append(path, nodeId)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func (s *Search) GetPqPops() int {
	return s.pqPops
}

func (s *Search) GetRelaxedEdges() int {
	return s.relaxedEdges
}

func (s *Search) estimate(node graph.NodeId) float64 {
	if s.heuristic == nil {
		return 0
	}
	return s.heuristic.estimate(node)
}
