// Package world provides positions and point markers in world units.
package world

import (
	"fmt"
	"math"
)

// Coordinates is a point (or vector) in world units.
// All operations return new values and never modify the receiver.
type Coordinates struct {
	X int64
	Y int64
}

func New(x, y int64) Coordinates {
	return Coordinates{X: x, Y: y}
}

func (c Coordinates) Add(o Coordinates) Coordinates {
	return Coordinates{X: c.X + o.X, Y: c.Y + o.Y}
}

func (c Coordinates) Sub(o Coordinates) Coordinates {
	return Coordinates{X: c.X - o.X, Y: c.Y - o.Y}
}

// DistanceSq returns the squared euclidean distance to o.
// It is computed in float64, so coordinates far apart do not overflow.
func (c Coordinates) DistanceSq(o Coordinates) float64 {
	dx := float64(c.X) - float64(o.X)
	dy := float64(c.Y) - float64(o.Y)
	return dx*dx + dy*dy
}

func (c Coordinates) Distance(o Coordinates) float64 {
	return math.Sqrt(c.DistanceSq(o))
}

func (c Coordinates) String() string {
	return fmt.Sprintf("[%d, %d]", c.X, c.Y)
}
