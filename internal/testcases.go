// Package internal provides fixtures shared by package tests.
package internal

import (
	"iter"
	"strconv"
	"testing"

	"github.com/eak1mov/go-libfragments/layer"
	"github.com/eak1mov/go-libfragments/tile"
	"github.com/eak1mov/go-libfragments/world"
)

// TestSize is a small tile size that keeps hand-written positions readable.
const TestSize tile.Size = 100

// Placed is an icon together with the layer it is stored under.
type Placed struct {
	LayerID int
	Icon    world.Icon
}

// Icon returns an unnamed icon of the layer at (x, y).
func Icon(layerID int, x, y int64) world.Icon {
	return world.NewIcon(world.New(x, y), layerID, "", "")
}

// Named returns a labelled icon of the layer at (x, y).
func Named(layerID int, name string, x, y int64) world.Icon {
	return world.NewIcon(world.New(x, y), layerID, name, "")
}

// Place groups icons by the tile of TestSize containing them, preserving input order.
func Place(icons ...world.Icon) iter.Seq2[tile.ID, []Placed] {
	return func(yield func(tile.ID, []Placed) bool) {
		var order []tile.ID
		byTile := map[tile.ID][]Placed{}
		for _, icon := range icons {
			id := tile.FromWorld(icon.Coordinates(), TestSize)
			if _, ok := byTile[id]; !ok {
				order = append(order, id)
			}
			byTile[id] = append(byTile[id], Placed{LayerID: icon.LayerID(), Icon: icon})
		}
		for _, id := range order {
			if !yield(id, byTile[id]) {
				return
			}
		}
	}
}

// Registry returns a registry with the given layer ids, all visible, named "layer-<id>".
func Registry(t *testing.T, ids ...int) *layer.Registry {
	t.Helper()

	specs := make([]layer.Spec, len(ids))
	for i, id := range ids {
		specs[i] = layer.Spec{ID: id, Name: "layer-" + strconv.Itoa(id), Visible: true}
	}
	r, err := layer.NewRegistry(specs...)
	if err != nil {
		t.Fatal(err)
	}
	return r
}
