package routing

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfindr/indoornav/pkg/cost"
	"github.com/wayfindr/indoornav/pkg/graph"
	"github.com/wayfindr/indoornav/pkg/registry"
)

// testMap is the scenario from the design review: three locations in a
// row on the ground floor, an elevator up to D1, and one unconnected
// location.
func testMap() *graph.MapFile {
	return &graph.MapFile{
		Locations: []registry.Location{
			{ID: "A1", Floor: 0, X: 0, Y: 0, Description: "Entrance"},
			{ID: "B1", Floor: 0, X: 10, Y: 0, Description: "Corridor"},
			{ID: "C1", Floor: 0, X: 20, Y: 0, Description: "Lecture Room"},
			{ID: "D1", Floor: 1, X: 10, Y: 0, Description: "Office"},
			{ID: "ISLAND", Floor: 0, X: 99, Y: 99, Description: "Unmapped Store Room"},
		},
		Adjacencies: []graph.Adjacency{
			{From: "A1", To: "B1"},
			{From: "B1", To: "C1"},
			{From: "B1", To: "D1", Kind: graph.KindElevator, TimePenalty: 15},
		},
	}
}

func testEngine(t *testing.T) *Engine {
	t.Helper()
	scorer := cost.NewScorer(cost.Params{WalkingSpeed: 1.0, StairsPenalty: 1.5, StepFreeExclusion: 1e6})
	opts := Options{TurnPenalty: 2, FloorChangePenalty: 30, TransitionDistance: 0, CacheSize: 16}
	e, err := New(testMap(), scorer, opts, nil)
	require.NoError(t, err)
	return e
}

func TestRouteSameFloor(t *testing.T) {
	e := testEngine(t)

	rt, err := e.Route("A1", "C1", cost.ModeStandard)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "B1", "C1"}, rt.Path)
	assert.InDelta(t, 20.0, rt.Distance, 1e-9)
	assert.InDelta(t, 20.0, rt.Cost, 1e-9)
	assert.False(t, rt.FloorChange)
	assert.False(t, rt.Fallback)
	assert.Equal(t, OutcomeFound, rt.Outcome)
	require.Len(t, rt.Legs, 2)
	assert.Equal(t, graph.KindCorridor, rt.Legs[0].Kind)
	// 20 m at 1 m/s plus one turn penalty
	assert.InDelta(t, 22.0, rt.Duration, 1e-9)
}

func TestRouteFloorChange(t *testing.T) {
	e := testEngine(t)

	rt, err := e.Route("A1", "D1", cost.ModeStandard)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "B1", "D1"}, rt.Path)
	assert.True(t, rt.FloorChange)
	assert.False(t, rt.Fallback)
	// corridor 10 plus elevator wait 15 at 1 m/s
	assert.InDelta(t, 25.0, rt.Cost, 1e-9)
	require.Len(t, rt.Legs, 2)
	assert.Equal(t, graph.KindElevator, rt.Legs[1].Kind)
}

func TestRouteUnknownLocation(t *testing.T) {
	e := testEngine(t)

	_, err := e.Route("A1", "NOPE", cost.ModeStandard)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownLocation))

	_, err = e.Route("NOPE", "A1", cost.ModeStandard)
	assert.True(t, errors.Is(err, ErrUnknownLocation))
}

func TestRouteSyntheticFallback(t *testing.T) {
	e := testEngine(t)

	rt, err := e.Route("A1", "ISLAND", cost.ModeStandard)
	require.NoError(t, err)
	assert.True(t, rt.Fallback)
	assert.Equal(t, OutcomeFallback, rt.Outcome)
	assert.Equal(t, []string{"A1", "ISLAND"}, rt.Path)
	assert.Empty(t, rt.Legs)
	assert.False(t, rt.FloorChange)
	assert.Greater(t, rt.Distance, 0.0)
}

func TestRouteSyntheticFallbackAcrossFloors(t *testing.T) {
	m := testMap()
	m.Adjacencies = m.Adjacencies[:2] // drop the elevator, floors disconnect
	scorer := cost.NewScorer(cost.Params{WalkingSpeed: 1.0})
	e, err := New(m, scorer, Options{FloorChangePenalty: 30, CacheSize: 16}, nil)
	require.NoError(t, err)

	rt, err := e.Route("A1", "D1", cost.ModeStandard)
	require.NoError(t, err)
	assert.True(t, rt.Fallback)
	assert.True(t, rt.FloorChange)
	// straight line 10 m plus the fixed cross-floor penalty
	assert.InDelta(t, 10.0, rt.Distance, 1e-9)
	assert.InDelta(t, 10.0+30.0, rt.Duration, 1e-9)
}

func TestRouteIdempotent(t *testing.T) {
	e := testEngine(t)

	first, err := e.Route("A1", "D1", cost.ModeStandard)
	require.NoError(t, err)
	second, err := e.Route("A1", "D1", cost.ModeStandard)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// and with caching disabled, the search itself must be deterministic
	scorer := cost.NewScorer(cost.Params{WalkingSpeed: 1.0})
	uncached, err := New(testMap(), scorer, Options{TransitionDistance: 0}, nil)
	require.NoError(t, err)
	a, err := uncached.Route("A1", "C1", cost.ModeStandard)
	require.NoError(t, err)
	b, err := uncached.Route("A1", "C1", cost.ModeStandard)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRouteTrivial(t *testing.T) {
	e := testEngine(t)

	rt, err := e.Route("B1", "B1", cost.ModeStandard)
	require.NoError(t, err)
	assert.Equal(t, []string{"B1"}, rt.Path)
	assert.Empty(t, rt.Legs)
	assert.InDelta(t, 0, rt.Distance, 1e-9)
	assert.Equal(t, OutcomeFound, rt.Outcome)
}

func TestStepFreeRouteAvoidsStairs(t *testing.T) {
	m := &graph.MapFile{
		Locations: []registry.Location{
			{ID: "HALL", Floor: 0, X: 0, Y: 0},
			{ID: "STAIRS_G", Floor: 0, X: 5, Y: 0},
			{ID: "LIFT_G", Floor: 0, X: 0, Y: 50},
			{ID: "STAIRS_F", Floor: 1, X: 5, Y: 0},
			{ID: "LIFT_F", Floor: 1, X: 0, Y: 50},
			{ID: "GOAL", Floor: 1, X: 5, Y: 5},
		},
		Adjacencies: []graph.Adjacency{
			{From: "HALL", To: "STAIRS_G"},
			{From: "HALL", To: "LIFT_G"},
			{From: "STAIRS_G", To: "STAIRS_F", Kind: graph.KindStairs},
			{From: "LIFT_G", To: "LIFT_F", Kind: graph.KindElevator, TimePenalty: 30},
			{From: "STAIRS_F", To: "GOAL"},
			{From: "LIFT_F", To: "GOAL"},
		},
	}
	scorer := cost.NewScorer(cost.Params{WalkingSpeed: 1.0})
	e, err := New(m, scorer, DefaultOptions(), nil)
	require.NoError(t, err)

	standard, err := e.Route("HALL", "GOAL", cost.ModeStandard)
	require.NoError(t, err)
	assert.Contains(t, standard.Path, "STAIRS_G")

	stepFree, err := e.Route("HALL", "GOAL", cost.ModeStepFree)
	require.NoError(t, err)
	assert.NotContains(t, stepFree.Path, "STAIRS_G")
	assert.Contains(t, stepFree.Path, "LIFT_G")
	assert.False(t, stepFree.Fallback)
}

func TestReloadKeepsOldGraphOnFailure(t *testing.T) {
	e := testEngine(t)

	broken := testMap()
	broken.Adjacencies = append(broken.Adjacencies, graph.Adjacency{From: "A1", To: "GHOST"})
	err := e.Reload(broken)
	require.Error(t, err)
	assert.True(t, errors.Is(err, graph.ErrInvalidTopology))

	// previous snapshot still serves
	rt, err := e.Route("A1", "C1", cost.ModeStandard)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "B1", "C1"}, rt.Path)
}

func TestReloadSwapsAtomically(t *testing.T) {
	e := testEngine(t)

	updated := testMap()
	updated.Adjacencies = append(updated.Adjacencies, graph.Adjacency{From: "C1", To: "ISLAND"})
	require.NoError(t, e.Reload(updated))

	rt, err := e.Route("A1", "ISLAND", cost.ModeStandard)
	require.NoError(t, err)
	assert.False(t, rt.Fallback, "new adjacency must be visible after reload")
}

func TestConcurrentSearches(t *testing.T) {
	e := testEngine(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				rt, err := e.Route("A1", "D1", cost.ModeStandard)
				assert.NoError(t, err)
				assert.Equal(t, []string{"A1", "B1", "D1"}, rt.Path)
			}
		}()
	}
	wg.Wait()
}

// TestSampleBuildingMap keeps the shipped example map loadable and
// routable in both modes.
func TestSampleBuildingMap(t *testing.T) {
	scorer := cost.NewScorer(cost.DefaultParams())
	e, err := Open("../../data/building.yaml", scorer, DefaultOptions(), nil)
	require.NoError(t, err)

	standard, err := e.Route("MAIN_ENTRANCE", "N101", cost.ModeStandard)
	require.NoError(t, err)
	assert.False(t, standard.Fallback)
	assert.True(t, standard.FloorChange)

	stepFree, err := e.Route("MAIN_ENTRANCE", "N101", cost.ModeStepFree)
	require.NoError(t, err)
	assert.False(t, stepFree.Fallback)
	assert.Contains(t, stepFree.Path, "LIFT_G")
	for _, id := range stepFree.Path {
		assert.NotContains(t, id, "STAIRS")
	}
}

func TestCheckpointsEndAtDestination(t *testing.T) {
	ids := []string{"A", "B", "C", "D", "E", "F", "G"}
	cps := checkpoints(ids)
	assert.Equal(t, "A", cps[0])
	assert.Equal(t, "G", cps[len(cps)-1])

	assert.Equal(t, []string{"A"}, checkpoints([]string{"A"}))
	assert.Nil(t, checkpoints(nil))
}
