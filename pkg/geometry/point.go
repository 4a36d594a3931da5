package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Point is a position in a floor-local planar frame, in meters.
// Coordinates are only comparable between points on the same floor.
type Point struct {
	X float64
	Y float64
}

func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Orb() orb.Point {
	return orb.Point{p.X, p.Y}
}

// Distance returns the Euclidean distance between p and other.
func (p Point) Distance(other Point) float64 {
	return planar.Distance(p.Orb(), other.Orb())
}

// Bearing returns the direction from p to other in radians,
// measured counter-clockwise from the positive x axis.
func (p Point) Bearing(other Point) float64 {
	return math.Atan2(other.Y-p.Y, other.X-p.X)
}

// TurnAngle returns the signed change of direction at cur when walking
// prev -> cur -> next, in degrees. Positive is a left turn, negative a
// right turn.
func TurnAngle(prev, cur, next Point) float64 {
	in := cur.Bearing(next) - prev.Bearing(cur)
	for in > math.Pi {
		in -= 2 * math.Pi
	}
	for in < -math.Pi {
		in += 2 * math.Pi
	}
	return in * 180 / math.Pi
}
