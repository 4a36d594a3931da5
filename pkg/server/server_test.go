package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfindr/indoornav/pkg/cost"
	"github.com/wayfindr/indoornav/pkg/routing"
)

const testMapYAML = `
building: FICT
locations:
  - {id: ENTRANCE, floor: 0, x: 0, y: 0, type: entrance, description: Main Entrance}
  - {id: JUNCTION, floor: 0, x: 10, y: 0, type: corridor}
  - {id: LAB, floor: 0, x: 10, y: 10, type: room, description: Physics Lab}
  - {id: LIFT_G, floor: 0, x: 20, y: 0, type: elevator}
  - {id: LIFT_F, floor: 1, x: 20, y: 0, type: elevator}
  - {id: OFFICE, floor: 1, x: 30, y: 0, type: room, description: Dean Office}
adjacencies:
  - {from: ENTRANCE, to: JUNCTION}
  - {from: JUNCTION, to: LAB}
  - {from: JUNCTION, to: LIFT_G}
  - {from: LIFT_G, to: LIFT_F, kind: elevator, time_penalty: 15}
  - {from: LIFT_F, to: OFFICE}
`

func testServer(t *testing.T) (*Server, string) {
	t.Helper()
	mapPath := filepath.Join(t.TempDir(), "building.yaml")
	require.NoError(t, os.WriteFile(mapPath, []byte(testMapYAML), 0o644))

	scorer := cost.NewScorer(cost.Params{WalkingSpeed: 1.0, StairsPenalty: 1.5, StepFreeExclusion: 1e6})
	engine, err := routing.Open(mapPath, scorer, routing.DefaultOptions(), nil)
	require.NoError(t, err)
	return NewServer(engine, mapPath, nil), mapPath
}

func postJSON(t *testing.T, s *Server, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestComputeRoute(t *testing.T) {
	s, _ := testServer(t)

	w := postJSON(t, s, "/routes", `{"origin":"ENTRANCE","destination":"OFFICE"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	var resp RouteResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, []string{"ENTRANCE", "JUNCTION", "LIFT_G", "LIFT_F", "OFFICE"}, resp.Route.Path)
	assert.True(t, resp.Route.FloorChange)
	assert.False(t, resp.Route.Fallback)
	assert.NotEmpty(t, resp.Instructions)
	assert.Contains(t, resp.Summary, "Dean Office")
}

func TestComputeRouteStepFree(t *testing.T) {
	s, _ := testServer(t)

	w := postJSON(t, s, "/routes", `{"origin":"ENTRANCE","destination":"LAB","accessibility":"step-free"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp RouteResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, cost.ModeStepFree, resp.Route.Mode)
}

func TestComputeRouteBadRequests(t *testing.T) {
	s, _ := testServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"origin":`},
		{"unknown field", `{"origin":"ENTRANCE","destination":"LAB","teleport":true}`},
		{"missing destination", `{"origin":"ENTRANCE"}`},
		{"unknown mode", `{"origin":"ENTRANCE","destination":"LAB","accessibility":"crawl"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(t, s, "/routes", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestComputeRouteUnknownLocation(t *testing.T) {
	s, _ := testServer(t)

	w := postJSON(t, s, "/routes", `{"origin":"ENTRANCE","destination":"NOPE"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "location not recognized", resp.Error)
	assert.Equal(t, "NOPE", resp.ID)

	w = postJSON(t, s, "/routes", `{"origin":"GHOST","destination":"LAB"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "GHOST", resp.ID)
}

func TestListLocations(t *testing.T) {
	s, _ := testServer(t)

	w := get(t, s, "/locations")
	require.Equal(t, http.StatusOK, w.Code)
	var resp LocationsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Len(t, resp.Locations, 6)

	w = get(t, s, "/locations?floor=1")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Len(t, resp.Locations, 2)

	w = get(t, s, "/locations?floor=ground")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchLocations(t *testing.T) {
	s, _ := testServer(t)

	w := get(t, s, "/locations/search?q=lab")
	require.Equal(t, http.StatusOK, w.Code)
	var resp LocationsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Locations, 1)
	assert.Equal(t, "LAB", resp.Locations[0].ID)

	w = get(t, s, "/locations/search?q=zzz")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"locations":[]`)

	w = get(t, s, "/locations/search")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNearbyLocations(t *testing.T) {
	s, _ := testServer(t)

	w := get(t, s, "/locations/JUNCTION/nearby?radius=15")
	require.Equal(t, http.StatusOK, w.Code)
	var resp LocationsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Len(t, resp.Locations, 3) // same floor only

	w = get(t, s, "/locations/JUNCTION/nearby?radius=15&type=room")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Locations, 1)
	assert.Equal(t, "LAB", resp.Locations[0].ID)

	w = get(t, s, "/locations/NOPE/nearby")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = get(t, s, "/locations/JUNCTION/nearby?radius=-1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListDestinations(t *testing.T) {
	s, _ := testServer(t)

	w := get(t, s, "/destinations")
	require.Equal(t, http.StatusOK, w.Code)
	var resp DestinationsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Len(t, resp.Destinations, 6)

	w = get(t, s, "/destinations?floor=1")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, []string{"LIFT_F", "OFFICE"}, resp.Destinations)
}

func TestGetLocation(t *testing.T) {
	s, _ := testServer(t)

	w := get(t, s, "/locations/LAB")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Physics Lab")

	w = get(t, s, "/locations/NOPE")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReload(t *testing.T) {
	s, _ := testServer(t)

	w := postJSON(t, s, "/reload", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp ReloadResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "reloaded", resp.Status)
	assert.Equal(t, 6, resp.Locations)
}

func TestReloadConflictKeepsServing(t *testing.T) {
	s, mapPath := testServer(t)

	broken := strings.Replace(testMapYAML, "to: LAB", "to: GHOST", 1)
	require.NoError(t, os.WriteFile(mapPath, []byte(broken), 0o644))

	w := postJSON(t, s, "/reload", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	// the previous graph keeps answering
	w = postJSON(t, s, "/routes", `{"origin":"ENTRANCE","destination":"LAB"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReloadUnreadableMap(t *testing.T) {
	s, mapPath := testServer(t)

	require.NoError(t, os.WriteFile(mapPath, []byte("locations: 42"), 0o644))
	w := postJSON(t, s, "/reload", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := testServer(t)

	w := get(t, s, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "indoornav_")
}
