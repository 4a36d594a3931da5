package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned when a location identifier has no record.
// Callers must treat this as a normal outcome (an unrecognized QR
// payload, a mistyped destination), not a crash condition.
var ErrNotFound = errors.New("location not found")

// Registry holds all known locations of a building. It is read-only
// after construction and safe for concurrent use.
type Registry struct {
	byID    map[string]int
	byFloor map[int][]int
	ordered []Location
}

// New builds a registry from the given records. Identifiers must be
// unique and non-empty.
func New(locations []Location) (*Registry, error) {
	r := &Registry{
		byID:    make(map[string]int, len(locations)),
		byFloor: make(map[int][]int),
		ordered: make([]Location, len(locations)),
	}
	copy(r.ordered, locations)
	// stable by identifier, so iteration order never depends on input order
	sort.Slice(r.ordered, func(i, j int) bool { return r.ordered[i].ID < r.ordered[j].ID })

	for i, loc := range r.ordered {
		if loc.ID == "" {
			return nil, fmt.Errorf("registry: location %d has empty identifier", i)
		}
		if loc.Floor < 0 {
			return nil, fmt.Errorf("registry: location %s has negative floor %d", loc.ID, loc.Floor)
		}
		if _, ok := r.byID[loc.ID]; ok {
			return nil, fmt.Errorf("registry: duplicate location identifier %s", loc.ID)
		}
		r.byID[loc.ID] = i
		r.byFloor[loc.Floor] = append(r.byFloor[loc.Floor], i)
	}
	return r, nil
}

// Lookup returns the location for the given identifier.
func (r *Registry) Lookup(id string) (Location, error) {
	i, ok := r.byID[id]
	if !ok {
		return Location{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r.ordered[i], nil
}

// Contains reports whether the identifier has a record.
func (r *Registry) Contains(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// All returns every location, ordered by identifier.
func (r *Registry) All() []Location {
	out := make([]Location, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// OnFloor returns every location on the given floor, ordered by identifier.
func (r *Registry) OnFloor(floor int) []Location {
	idxs := r.byFloor[floor]
	out := make([]Location, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, r.ordered[i])
	}
	return out
}

// Floors returns the floor indices present in the registry, ascending.
func (r *Registry) Floors() []int {
	floors := make([]int, 0, len(r.byFloor))
	for f := range r.byFloor {
		floors = append(floors, f)
	}
	sort.Ints(floors)
	return floors
}

// Search returns all locations whose identifier, description or type
// contains the query, case-insensitively. The result is a fresh slice,
// so repeated calls with the same query are independent.
func (r *Registry) Search(query string) []Location {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []Location
	for _, loc := range r.ordered {
		if strings.Contains(strings.ToLower(loc.ID), q) ||
			strings.Contains(strings.ToLower(loc.Description), q) ||
			strings.Contains(strings.ToLower(loc.Type), q) {
			out = append(out, loc)
		}
	}
	return out
}

// Destinations returns all identifiers, sorted. A floor filter may be
// supplied; a negative floor means all floors.
func (r *Registry) Destinations(floor int) []string {
	var out []string
	for _, loc := range r.ordered {
		if floor >= 0 && loc.Floor != floor {
			continue
		}
		out = append(out, loc.ID)
	}
	return out
}

// Nearby returns the locations on the same floor as id within radius,
// sorted by distance. A non-empty locType restricts the result to that
// location type.
func (r *Registry) Nearby(id string, radius float64, locType string) ([]Location, error) {
	origin, err := r.Lookup(id)
	if err != nil {
		return nil, err
	}
	var out []Location
	for _, loc := range r.OnFloor(origin.Floor) {
		if loc.ID == origin.ID {
			continue
		}
		if locType != "" && loc.Type != locType {
			continue
		}
		if origin.Distance(loc) <= radius {
			out = append(out, loc)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return origin.Distance(out[i]) < origin.Distance(out[j])
	})
	return out, nil
}

// Len returns the number of locations.
func (r *Registry) Len() int {
	return len(r.ordered)
}
