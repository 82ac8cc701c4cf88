// Package tile provides tile coordinates of the fixed-size fragments the world is split into.
package tile

import (
	"fmt"

	"github.com/eak1mov/go-libfragments/world"
)

// Size is the edge length of a tile in world units. It must be positive.
type Size int64

// DefaultSize is the edge length of a map fragment.
const DefaultSize Size = 512

// ID represents tile coordinates: the world position divided by the tile size,
// rounded towards negative infinity.
type ID struct {
	X int64
	Y int64
}

// Direction names one of the four neighbours of a tile.
type Direction int

const (
	Left Direction = iota
	Right
	Above
	Below
)

// Directions lists every Direction in declaration order.
var Directions = [...]Direction{Left, Right, Above, Below}

func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Above:
		return Below
	default:
		return Above
	}
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Above:
		return "above"
	case Below:
		return "below"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

func floorDiv(v, size int64) int64 {
	q := v / size
	if v%size != 0 && v < 0 {
		q--
	}
	return q
}

// FromWorld returns the tile containing the given world position.
func FromWorld(c world.Coordinates, size Size) ID {
	return ID{X: floorDiv(c.X, int64(size)), Y: floorDiv(c.Y, int64(size))}
}

// Corner returns the world position of the tile's top-left corner (minimum x and y).
func (t ID) Corner(size Size) world.Coordinates {
	return world.New(t.X*int64(size), t.Y*int64(size))
}

// Contains reports whether the world position lies within the tile bounds.
func (t ID) Contains(c world.Coordinates, size Size) bool {
	return FromWorld(c, size) == t
}

// Neighbor returns the adjacent tile in the given direction. Y grows downwards.
func (t ID) Neighbor(d Direction) ID {
	switch d {
	case Left:
		return ID{X: t.X - 1, Y: t.Y}
	case Right:
		return ID{X: t.X + 1, Y: t.Y}
	case Above:
		return ID{X: t.X, Y: t.Y - 1}
	case Below:
		return ID{X: t.X, Y: t.Y + 1}
	}
	return t
}

func (t ID) String() string {
	return fmt.Sprintf("tile(%d, %d)", t.X, t.Y)
}
