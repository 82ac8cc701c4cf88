package graph

import (
	"github.com/eak1mov/go-libfragments/fragment"
	"github.com/eak1mov/go-libfragments/tile"
)

// Item is a traversal handle wrapping one resident fragment and its links
// to the resident fragments of neighbouring tiles.
type Item struct {
	fragment  *fragment.Fragment
	neighbors [len(tile.Directions)]*Item
	resident  bool
}

func (i *Item) Fragment() *fragment.Fragment { return i.fragment }
func (i *Item) Tile() tile.ID                { return i.fragment.Tile() }

// Neighbor returns the resident item of the adjacent tile or nil.
func (i *Item) Neighbor(d tile.Direction) *Item {
	return i.neighbors[d]
}

func (i *Item) Left() *Item  { return i.neighbors[tile.Left] }
func (i *Item) Right() *Item { return i.neighbors[tile.Right] }
func (i *Item) Above() *Item { return i.neighbors[tile.Above] }
func (i *Item) Below() *Item { return i.neighbors[tile.Below] }

// Resident reports whether the item is still part of its graph.
func (i *Item) Resident() bool {
	return i.resident
}

func (i *Item) link(d tile.Direction, other *Item) {
	i.neighbors[d] = other
	other.neighbors[d.Opposite()] = i
}

func (i *Item) unlink() {
	for d, other := range i.neighbors {
		if other != nil {
			other.neighbors[tile.Direction(d).Opposite()] = nil
			i.neighbors[d] = nil
		}
	}
}
