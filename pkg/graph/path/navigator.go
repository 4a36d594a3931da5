package path

import (
	"github.com/wayfindr/indoornav/pkg/geometry"
	"github.com/wayfindr/indoornav/pkg/graph"
)

// Navigator computes shortest paths over a navigation graph.
type Navigator interface {
	// ComputeShortestPath computes the cheapest path from origin to
	// destination and returns its cost. A non-existing path has cost -1.
	ComputeShortestPath(origin, destination graph.NodeId) float64
	// GetPath returns the node ids of a previous computation, origin and
	// destination inclusive. A non-existing path is an empty slice.
	GetPath(origin, destination graph.NodeId) []graph.NodeId
	// GetPqPops returns the number of priority queue pops of the last search.
	GetPqPops() int
	// GetRelaxedEdges returns the number of relaxed arcs of the last search.
	GetRelaxedEdges() int
}

// CoordFunc resolves a node to its floor-local coordinates. The second
// return is false when no coordinate data is available, in which case
// the heuristic contribution of that node degrades to zero.
type CoordFunc func(graph.NodeId) (geometry.Point, bool)
