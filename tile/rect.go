package tile

import (
	"iter"

	"github.com/eak1mov/go-libfragments/world"
)

// Rect is an inclusive rectangle of tiles.
type Rect struct {
	Min ID
	Max ID
}

// Covering returns the smallest Rect containing both world positions.
func Covering(a, b world.Coordinates, size Size) Rect {
	ta, tb := FromWorld(a, size), FromWorld(b, size)
	return Rect{
		Min: ID{X: min(ta.X, tb.X), Y: min(ta.Y, tb.Y)},
		Max: ID{X: max(ta.X, tb.X), Y: max(ta.Y, tb.Y)},
	}
}

func (r Rect) Empty() bool {
	return r.Max.X < r.Min.X || r.Max.Y < r.Min.Y
}

func (r Rect) Width() int64 {
	if r.Empty() {
		return 0
	}
	return r.Max.X - r.Min.X + 1
}

func (r Rect) Height() int64 {
	if r.Empty() {
		return 0
	}
	return r.Max.Y - r.Min.Y + 1
}

func (r Rect) Contains(t ID) bool {
	return t.X >= r.Min.X && t.X <= r.Max.X && t.Y >= r.Min.Y && t.Y <= r.Max.Y
}

// Grow returns the rectangle extended by n tiles on every side.
func (r Rect) Grow(n int64) Rect {
	return Rect{
		Min: ID{X: r.Min.X - n, Y: r.Min.Y - n},
		Max: ID{X: r.Max.X + n, Y: r.Max.Y + n},
	}
}

// Union returns the smallest rectangle containing r and t.
func (r Rect) Union(t ID) Rect {
	if r.Empty() {
		return Rect{Min: t, Max: t}
	}
	return Rect{
		Min: ID{X: min(r.Min.X, t.X), Y: min(r.Min.Y, t.Y)},
		Max: ID{X: max(r.Max.X, t.X), Y: max(r.Max.Y, t.Y)},
	}
}

// Tiles returns an iterator over all tiles of the rectangle in row-major order.
func (r Rect) Tiles() iter.Seq[ID] {
	return func(yield func(ID) bool) {
		for y := r.Min.Y; y <= r.Max.Y; y++ {
			for x := r.Min.X; x <= r.Max.X; x++ {
				if !yield(ID{X: x, Y: y}) {
					return
				}
			}
		}
	}
}
