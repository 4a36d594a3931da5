package registry

import "github.com/wayfindr/indoornav/pkg/geometry"

// Location is a point of interest inside the building. Records are
// immutable after load; everything outside the registry refers to a
// location by its identifier only.
type Location struct {
	ID          string  `yaml:"id" json:"id"`
	Floor       int     `yaml:"floor" json:"floor"`
	X           float64 `yaml:"x" json:"x"`
	Y           float64 `yaml:"y" json:"y"`
	Type        string  `yaml:"type" json:"type"`
	Description string  `yaml:"description" json:"description"`

	// Accessibility attributes of the location itself, carried through
	// to the UI/audio collaborators.
	HasRamp        bool `yaml:"has_ramp,omitempty" json:"hasRamp,omitempty"`
	ElevatorAccess bool `yaml:"elevator_access,omitempty" json:"elevatorAccess,omitempty"`
}

func (l Location) Point() geometry.Point {
	return geometry.NewPoint(l.X, l.Y)
}

// Distance returns the straight-line distance to another location on the
// same floor. The result is meaningless across floors.
func (l Location) Distance(other Location) float64 {
	return l.Point().Distance(other.Point())
}
