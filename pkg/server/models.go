package server

import (
	"encoding/json"
	"net/http"

	"github.com/wayfindr/indoornav/pkg/guidance"
	"github.com/wayfindr/indoornav/pkg/registry"
	"github.com/wayfindr/indoornav/pkg/routing"
)

// RouteRequest is the body of POST /routes. Origin is the resolved
// current-location identifier supplied by the QR collaborator;
// Destination is chosen by the user in the UI.
type RouteRequest struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	Accessibility string `json:"accessibility,omitempty"` // "standard" (default) or "step-free"
}

// RouteResponse carries both the machine-usable route and its phrased
// instructions; the audio layer needs the fallback flag inside Route to
// phrase approximate guidance differently.
type RouteResponse struct {
	Route        routing.Route          `json:"route"`
	Instructions []guidance.Instruction `json:"instructions"`
	Summary      string                 `json:"summary"`
}

type LocationsResponse struct {
	Locations []registry.Location `json:"locations"`
}

type DestinationsResponse struct {
	Destinations []string `json:"destinations"`
}

type ReloadResponse struct {
	Status    string `json:"status"`
	Locations int    `json:"locations"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	ID    string `json:"id,omitempty"`
}

func encodeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}
