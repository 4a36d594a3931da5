package routing

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/wayfindr/indoornav/internal/metrics"
	"github.com/wayfindr/indoornav/pkg/cost"
	"github.com/wayfindr/indoornav/pkg/geometry"
	"github.com/wayfindr/indoornav/pkg/graph"
	"github.com/wayfindr/indoornav/pkg/graph/path"
	"github.com/wayfindr/indoornav/pkg/registry"
)

// ErrUnknownLocation is returned when an endpoint identifier has no
// registry record. No search is attempted; upstream layers present this
// as "location not recognized".
var ErrUnknownLocation = errors.New("unknown location")

// Options tunes the engine beyond the scorer's weighting constants.
type Options struct {
	// TurnPenalty is added to the duration estimate per intermediate
	// route node, in seconds.
	TurnPenalty float64 `yaml:"turn_penalty"`
	// FloorChangePenalty is the fixed cross-floor penalty of a synthetic
	// fallback route, in seconds.
	FloorChangePenalty float64 `yaml:"floor_change_penalty"`
	// TransitionDistance is the fixed base distance of floor-transition
	// edges, in meters.
	TransitionDistance float64 `yaml:"transition_distance"`
	// CacheSize bounds the route cache. Zero disables caching.
	CacheSize int `yaml:"cache_size"`
}

// DefaultOptions mirror the original deployment constants.
func DefaultOptions() Options {
	return Options{
		TurnPenalty:        2.0,
		FloorChangePenalty: 30.0,
		TransitionDistance: 5.0,
		CacheSize:          1024,
	}
}

// snapshot is one immutable registry + graph pair. Searches operate on
// the snapshot they started with; a reload swaps in a new one.
type snapshot struct {
	reg        *registry.Registry
	graph      *graph.Graph
	generation uint64
}

type cacheKey struct {
	generation  uint64
	origin      string
	destination string
	mode        cost.Mode
}

// Engine is the route guidance facade: it validates endpoints, runs the
// heuristic search with its two fallback tiers, and always returns a
// usable Route. Safe for concurrent use; searches never lock.
type Engine struct {
	scorer cost.Scorer
	opts   Options
	log    *zap.Logger

	current    atomic.Pointer[snapshot]
	generation atomic.Uint64
	reloadMu   sync.Mutex

	cache *lru.Cache[cacheKey, Route]
}

// New builds an engine from a parsed building map.
func New(m *graph.MapFile, scorer cost.Scorer, opts Options, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{scorer: scorer, opts: opts, log: log}
	if opts.CacheSize > 0 {
		cache, err := lru.New[cacheKey, Route](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("route cache: %w", err)
		}
		e.cache = cache
	}
	if err := e.Reload(m); err != nil {
		return nil, err
	}
	return e, nil
}

// Open builds an engine from a building map file.
func Open(mapPath string, scorer cost.Scorer, opts Options, log *zap.Logger) (*Engine, error) {
	m, err := graph.ReadMapFile(mapPath)
	if err != nil {
		return nil, err
	}
	return New(m, scorer, opts, log)
}

// Reload rebuilds registry and graph from a fresh map and atomically
// swaps them in. In-flight searches keep the snapshot they started
// with. On failure the previous snapshot stays live and the build error
// is returned.
func (e *Engine) Reload(m *graph.MapFile) error {
	e.reloadMu.Lock()
	defer e.reloadMu.Unlock()

	reg, err := m.Registry()
	if err != nil {
		metrics.ReloadsTotal.WithLabelValues("error").Inc()
		return err
	}
	g, err := graph.Build(reg, m.Adjacencies, graph.BuildOptions{TransitionDistance: e.opts.TransitionDistance})
	if err != nil {
		metrics.ReloadsTotal.WithLabelValues("error").Inc()
		return err
	}

	snap := &snapshot{reg: reg, graph: g, generation: e.generation.Add(1)}
	e.current.Store(snap)
	if e.cache != nil {
		e.cache.Purge()
	}
	metrics.ReloadsTotal.WithLabelValues("ok").Inc()
	e.log.Info("navigation graph loaded",
		zap.Uint64("generation", snap.generation),
		zap.Int("locations", reg.Len()),
		zap.Int("arcs", g.ArcCount()),
		zap.Ints("floors", reg.Floors()))
	return nil
}

// ReloadFile rebuilds from the given map file path.
func (e *Engine) ReloadFile(mapPath string) error {
	m, err := graph.ReadMapFile(mapPath)
	if err != nil {
		return err
	}
	return e.Reload(m)
}

// Registry returns the currently visible location registry.
func (e *Engine) Registry() *registry.Registry {
	return e.current.Load().reg
}

// Graph returns the currently visible navigation graph.
func (e *Engine) Graph() *graph.Graph {
	return e.current.Load().graph
}

// Scorer returns the engine's route scorer.
func (e *Engine) Scorer() cost.Scorer {
	return e.scorer
}

// Options returns the engine's tuning options.
func (e *Engine) Options() Options {
	return e.opts
}

// Route computes a route between two location identifiers. The only
// failure is ErrUnknownLocation for an endpoint without a registry
// record; exhausted searches resolve internally into fallback routes.
func (e *Engine) Route(originID, destinationID string, mode cost.Mode) (Route, error) {
	snap := e.current.Load()

	origin, err := snap.reg.Lookup(originID)
	if err != nil {
		return Route{}, fmt.Errorf("%w: %s", ErrUnknownLocation, originID)
	}
	destination, err := snap.reg.Lookup(destinationID)
	if err != nil {
		return Route{}, fmt.Errorf("%w: %s", ErrUnknownLocation, destinationID)
	}
	if !mode.Valid() {
		mode = cost.ModeStandard
	}

	key := cacheKey{generation: snap.generation, origin: originID, destination: destinationID, mode: mode}
	if e.cache != nil {
		if rt, ok := e.cache.Get(key); ok {
			metrics.CacheHitsTotal.Inc()
			return rt, nil
		}
	}

	rt := e.search(snap, origin, destination, mode)
	metrics.SearchesTotal.WithLabelValues(string(mode), string(rt.Outcome)).Inc()
	if e.cache != nil {
		e.cache.Add(key, rt)
	}
	return rt, nil
}

func (e *Engine) search(snap *snapshot, origin, destination registry.Location, mode cost.Mode) Route {
	originNode, _ := snap.graph.Resolve(origin.ID)
	destNode, _ := snap.graph.Resolve(destination.ID)

	coords := func(id graph.NodeId) (geometry.Point, bool) {
		loc, err := snap.reg.Lookup(snap.graph.Node(id).ID)
		if err != nil {
			return geometry.Point{}, false
		}
		return loc.Point(), true
	}

	astar := path.NewAStar(snap.graph, e.scorer, mode, coords, e.scorer.MinTransitionCost(e.opts.TransitionDistance))
	if total := astar.ComputeShortestPath(originNode, destNode); total >= 0 {
		return e.assemble(snap, astar.GetPath(originNode, destNode), mode, total, OutcomeFound)
	}

	// Tier one: the informed search exhausted (or could not evaluate its
	// heuristic); retry strictly by accumulated cost.
	metrics.FallbacksTotal.WithLabelValues("dijkstra").Inc()
	e.log.Debug("heuristic search exhausted, retrying with dijkstra",
		zap.String("origin", origin.ID),
		zap.String("destination", destination.ID),
		zap.Bool("heuristic_incomplete", astar.HeuristicIncomplete()))

	dijkstra := path.NewDijkstra(snap.graph, e.scorer, mode)
	if total := dijkstra.ComputeShortestPath(originNode, destNode); total >= 0 {
		return e.assemble(snap, dijkstra.GetPath(originNode, destNode), mode, total, OutcomeFound)
	}

	// Tier two: no adjacency path exists at all; synthesize a degraded
	// straight-line route rather than failing.
	metrics.FallbacksTotal.WithLabelValues("synthetic").Inc()
	e.log.Warn("no graph path, synthesizing straight-line route",
		zap.String("origin", origin.ID),
		zap.String("destination", destination.ID))
	return e.synthesize(origin, destination, mode)
}

func (e *Engine) assemble(snap *snapshot, nodes []graph.NodeId, mode cost.Mode, total float64, outcome Outcome) Route {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = snap.graph.Node(n).ID
	}

	legs := make([]Leg, 0, len(nodes)-1)
	var distance, penaltySeconds float64
	floorChange := false
	for i := 0; i+1 < len(nodes); i++ {
		arc, ok := snap.graph.ArcBetween(nodes[i], nodes[i+1])
		if !ok {
			continue
		}
		leg := Leg{
			From:        ids[i],
			To:          ids[i+1],
			Kind:        arc.Kind,
			Distance:    arc.Distance,
			Cost:        e.scorer.ArcCost(arc, mode),
			TimePenalty: arc.TimePenalty,
		}
		legs = append(legs, leg)
		distance += arc.Distance
		penaltySeconds += arc.TimePenalty
		if arc.Kind.FloorTransition() {
			floorChange = true
		}
	}

	turns := len(legs) - 1
	if turns < 0 {
		turns = 0
	}
	duration := distance/e.scorer.WalkingSpeed() + penaltySeconds + float64(turns)*e.opts.TurnPenalty

	return Route{
		Origin:      ids[0],
		Destination: ids[len(ids)-1],
		Mode:        mode,
		Path:        ids,
		Legs:        legs,
		Distance:    distance,
		Duration:    duration,
		Cost:        total,
		FloorChange: floorChange,
		Fallback:    false,
		Outcome:     outcome,
		Checkpoints: checkpoints(ids),
	}
}

func (e *Engine) synthesize(origin, destination registry.Location, mode cost.Mode) Route {
	distance := origin.Distance(destination)
	duration := distance / e.scorer.WalkingSpeed()
	total := distance
	floorChange := origin.Floor != destination.Floor
	if floorChange {
		duration += e.opts.FloorChangePenalty
		total += e.scorer.TimeToDistance(e.opts.FloorChangePenalty)
	}

	ids := []string{origin.ID, destination.ID}
	return Route{
		Origin:      origin.ID,
		Destination: destination.ID,
		Mode:        mode,
		Path:        ids,
		Legs:        nil,
		Distance:    distance,
		Duration:    duration,
		Cost:        total,
		FloorChange: floorChange,
		Fallback:    true,
		Outcome:     OutcomeFallback,
		Checkpoints: ids,
	}
}

// checkpoints picks evenly spaced route nodes for progress verification,
// always ending at the destination.
func checkpoints(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	step := len(ids) / 3
	if step < 1 {
		step = 1
	}
	var out []string
	for i := 0; i < len(ids); i += step {
		out = append(out, ids[i])
	}
	if out[len(out)-1] != ids[len(ids)-1] {
		out = append(out, ids[len(ids)-1])
	}
	return out
}
