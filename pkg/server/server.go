// Package server binds the route guidance engine to an HTTP API. The
// QR, UI and audio collaborators live behind this boundary.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/wayfindr/indoornav/pkg/cost"
	"github.com/wayfindr/indoornav/pkg/graph"
	"github.com/wayfindr/indoornav/pkg/guidance"
	"github.com/wayfindr/indoornav/pkg/registry"
	"github.com/wayfindr/indoornav/pkg/routing"
)

// Server exposes the engine over HTTP.
type Server struct {
	engine  *routing.Engine
	mapPath string
	log     *zap.Logger
	router  *mux.Router
}

func NewServer(engine *routing.Engine, mapPath string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{engine: engine, mapPath: mapPath, log: log}

	r := mux.NewRouter()
	r.Use(s.requestLogger)
	r.HandleFunc("/routes", s.ComputeRoute).Methods(http.MethodPost)
	r.HandleFunc("/locations", s.ListLocations).Methods(http.MethodGet)
	r.HandleFunc("/locations/search", s.SearchLocations).Methods(http.MethodGet)
	r.HandleFunc("/locations/{id}", s.GetLocation).Methods(http.MethodGet)
	r.HandleFunc("/locations/{id}/nearby", s.NearbyLocations).Methods(http.MethodGet)
	r.HandleFunc("/destinations", s.ListDestinations).Methods(http.MethodGet)
	r.HandleFunc("/reload", s.Reload).Methods(http.MethodPost)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	s.router = r
	return s
}

// Handler returns the HTTP handler for ListenAndServe.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ComputeRoute computes a route and its instructions.
func (s *Server) ComputeRoute(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields()
	if err := d.Decode(&req); err != nil {
		encodeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "malformed request: " + err.Error()})
		return
	}
	if req.Origin == "" || req.Destination == "" {
		encodeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "origin and destination are required"})
		return
	}

	mode := cost.Mode(req.Accessibility)
	if req.Accessibility == "" {
		mode = cost.ModeStandard
	}
	if !mode.Valid() {
		encodeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "unknown accessibility mode " + req.Accessibility})
		return
	}

	rt, err := s.engine.Route(req.Origin, req.Destination, mode)
	if err != nil {
		if errors.Is(err, routing.ErrUnknownLocation) {
			id := req.Origin
			if s.engine.Registry().Contains(id) {
				id = req.Destination
			}
			encodeJSON(w, http.StatusNotFound, ErrorResponse{Error: "location not recognized", ID: id})
			return
		}
		encodeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	gen := guidance.NewGenerator(s.engine.Registry(), s.engine.Scorer())
	gen.TurnPenalty = s.engine.Options().TurnPenalty
	instructions, err := gen.Generate(rt)
	if err != nil {
		encodeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	encodeJSON(w, http.StatusOK, RouteResponse{
		Route:        rt,
		Instructions: instructions,
		Summary:      gen.Summary(rt, instructions),
	})
}

// ListLocations lists all locations, optionally filtered by floor.
func (s *Server) ListLocations(w http.ResponseWriter, r *http.Request) {
	reg := s.engine.Registry()
	locations := reg.All()
	if f := r.URL.Query().Get("floor"); f != "" {
		floor, err := strconv.Atoi(f)
		if err != nil {
			encodeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid floor " + f})
			return
		}
		locations = reg.OnFloor(floor)
	}
	encodeJSON(w, http.StatusOK, LocationsResponse{Locations: locations})
}

// SearchLocations performs a case-insensitive substring search.
func (s *Server) SearchLocations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		encodeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "query parameter q is required"})
		return
	}
	results := s.engine.Registry().Search(q)
	if results == nil {
		results = []registry.Location{}
	}
	encodeJSON(w, http.StatusOK, LocationsResponse{Locations: results})
}

// GetLocation returns one location record.
func (s *Server) GetLocation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	loc, err := s.engine.Registry().Lookup(id)
	if err != nil {
		encodeJSON(w, http.StatusNotFound, ErrorResponse{Error: "location not recognized", ID: id})
		return
	}
	encodeJSON(w, http.StatusOK, loc)
}

// NearbyLocations returns the locations within radius of a known
// location, same floor only, closest first.
func (s *Server) NearbyLocations(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	radius := 50.0
	if v := r.URL.Query().Get("radius"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed <= 0 {
			encodeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid radius " + v})
			return
		}
		radius = parsed
	}

	results, err := s.engine.Registry().Nearby(id, radius, r.URL.Query().Get("type"))
	if err != nil {
		encodeJSON(w, http.StatusNotFound, ErrorResponse{Error: "location not recognized", ID: id})
		return
	}
	if results == nil {
		results = []registry.Location{}
	}
	encodeJSON(w, http.StatusOK, LocationsResponse{Locations: results})
}

// ListDestinations lists routable destination identifiers, optionally
// filtered by floor.
func (s *Server) ListDestinations(w http.ResponseWriter, r *http.Request) {
	floor := -1
	if f := r.URL.Query().Get("floor"); f != "" {
		parsed, err := strconv.Atoi(f)
		if err != nil {
			encodeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid floor " + f})
			return
		}
		floor = parsed
	}
	encodeJSON(w, http.StatusOK, DestinationsResponse{Destinations: s.engine.Registry().Destinations(floor)})
}

// Reload rebuilds the graph from the configured map file. On a topology
// failure the previous graph stays in service and a conflict is
// returned.
func (s *Server) Reload(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.ReloadFile(s.mapPath); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, graph.ErrInvalidTopology) {
			status = http.StatusConflict
		}
		encodeJSON(w, status, ErrorResponse{Error: err.Error()})
		return
	}
	encodeJSON(w, http.StatusOK, ReloadResponse{Status: "reloaded", Locations: s.engine.Registry().Len()})
}
