package tile

import (
	"errors"
	"fmt"

	"github.com/google/hilbert"
)

var ErrOutsideCurve = errors.New("libfragments: tile outside hilbert curve")

// Curve maps tiles of a square window to their position along a Hilbert curve.
// The window starts at Origin and spans 1<<Order tiles in each direction.
type Curve struct {
	Origin ID
	Order  int
	h      *hilbert.Hilbert
}

// NewCurve returns the smallest curve covering the rectangle.
func NewCurve(r Rect) (*Curve, error) {
	side := max(r.Width(), r.Height(), 1)
	order := 0
	for int64(1)<<order < side {
		order++
	}
	h, err := hilbert.NewHilbert(1 << order)
	if err != nil {
		return nil, err
	}
	return &Curve{Origin: r.Min, Order: order, h: h}, nil
}

// Code returns the tile index along the curve.
func (c *Curve) Code(t ID) (int, error) {
	x, y := t.X-c.Origin.X, t.Y-c.Origin.Y
	side := int64(1) << c.Order
	if x < 0 || y < 0 || x >= side || y >= side {
		return 0, fmt.Errorf("%w: %v (origin %v, order %d)", ErrOutsideCurve, t, c.Origin, c.Order)
	}
	return c.h.MapInverse(int(x), int(y))
}

// Tile is the inverse of Code.
func (c *Curve) Tile(code int) (ID, error) {
	x, y, err := c.h.Map(code)
	if err != nil {
		return ID{}, err
	}
	return ID{X: c.Origin.X + int64(x), Y: c.Origin.Y + int64(y)}, nil
}
