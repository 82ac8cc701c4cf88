// Package fragment provides map fragments: fixed-size world tiles holding per-layer icons.
package fragment

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/eak1mov/go-libfragments/tile"
	"github.com/eak1mov/go-libfragments/world"
)

var ErrOutOfBounds = errors.New("libfragments: icon outside fragment")

// Fragment owns the icons of one tile, grouped by layer id.
// Layer ids are not validated: icons under an id unknown to the layer registry
// are stored and returned, but never become visible to queries.
//
// A Fragment is not safe for concurrent use.
type Fragment struct {
	id     tile.ID
	size   tile.Size
	icons  map[int][]world.Icon
	loaded bool
}

func New(id tile.ID, size tile.Size) *Fragment {
	f := &Fragment{}
	f.Init(id, size)
	return f
}

// Init assigns the fragment to a tile. The fragment must be empty (new or recycled).
func (f *Fragment) Init(id tile.ID, size tile.Size) {
	f.id = id
	f.size = size
	if f.icons == nil {
		f.icons = make(map[int][]world.Icon)
	}
}

func (f *Fragment) Tile() tile.ID   { return f.id }
func (f *Fragment) Size() tile.Size { return f.size }

// Corner returns the world position of the fragment's top-left corner.
func (f *Fragment) Corner() world.Coordinates {
	return f.id.Corner(f.size)
}

// WorldIcons returns the icons stored for the layer in insertion order.
// It returns an empty slice for unknown layers.
// The result must not be retained across Recycle.
func (f *Fragment) WorldIcons(layerID int) []world.Icon {
	return f.icons[layerID]
}

// AddWorldIcon appends the icon to the layer. Duplicates are kept.
func (f *Fragment) AddWorldIcon(layerID int, icon world.Icon) {
	f.icons[layerID] = append(f.icons[layerID], icon)
}

func (f *Fragment) AddWorldIcons(layerID int, icons ...world.Icon) {
	if len(icons) == 0 {
		return
	}
	f.icons[layerID] = append(f.icons[layerID], icons...)
}

// Layers returns an iterator over non-empty layers in ascending id order.
func (f *Fragment) Layers() iter.Seq2[int, []world.Icon] {
	return func(yield func(int, []world.Icon) bool) {
		for _, layerID := range slices.Sorted(maps.Keys(f.icons)) {
			icons := f.icons[layerID]
			if len(icons) == 0 {
				continue
			}
			if !yield(layerID, icons) {
				return
			}
		}
	}
}

func (f *Fragment) IconCount() int {
	count := 0
	for _, icons := range f.icons {
		count += len(icons)
	}
	return count
}

// IsLoaded reports whether population of the fragment has completed.
func (f *Fragment) IsLoaded() bool {
	return f.loaded
}

func (f *Fragment) MarkLoaded() {
	f.loaded = true
}

// Recycle drops every icon so the fragment can be reassigned to another tile.
// Slices previously returned by WorldIcons keep their contents but are no longer
// shared with the fragment.
func (f *Fragment) Recycle() {
	clear(f.icons)
	f.loaded = false
}

// Validate checks that every icon lies within the fragment's tile.
func (f *Fragment) Validate() error {
	for layerID, icons := range f.Layers() {
		for _, icon := range icons {
			if !f.id.Contains(icon.Coordinates(), f.size) {
				return fmt.Errorf("%w: %v in layer %d of %v", ErrOutOfBounds, icon, layerID, f.id)
			}
		}
	}
	return nil
}

func (f *Fragment) String() string {
	return fmt.Sprintf("fragment %v (%d icons)", f.id, f.IconCount())
}
