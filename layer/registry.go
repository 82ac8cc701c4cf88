package layer

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

var (
	ErrInvalidLayer   = errors.New("libfragments: invalid layer")
	ErrDuplicateLayer = errors.New("libfragments: duplicate layer")
)

// Layer ids of the default map layers.
const (
	SlimeChunks = iota
	Grid
	Village
	OceanMonument
	Stronghold
	Temple
	Spawn
	NetherFortress
	Player
)

// DefaultSpecs returns the layers of the map viewer.
func DefaultSpecs() []Spec {
	return []Spec{
		{ID: SlimeChunks, Name: "Slime Chunks", Visible: false},
		{ID: Grid, Name: "Grid", Visible: false},
		{ID: Village, Name: "Villages", Visible: true},
		{ID: OceanMonument, Name: "Ocean Monuments", Visible: true},
		{ID: Stronghold, Name: "Strongholds", Visible: true},
		{ID: Temple, Name: "Temples", Visible: true},
		{ID: Spawn, Name: "World Spawn", Visible: true},
		{ID: NetherFortress, Name: "Nether Fortresses", Visible: true},
		{ID: Player, Name: "Players", Visible: true},
	}
}

// Registry is the ordered set of layer declarations, created once at startup.
type Registry struct {
	declarations []*Declaration
	byID         map[int]*Declaration
}

func NewRegistry(specs ...Spec) (*Registry, error) {
	r := &Registry{
		declarations: make([]*Declaration, 0, len(specs)),
		byID:         make(map[int]*Declaration, len(specs)),
	}
	names := make(map[string]struct{}, len(specs))
	for _, spec := range specs {
		if spec.ID < 0 {
			return nil, fmt.Errorf("%w: negative id %d", ErrInvalidLayer, spec.ID)
		}
		if spec.Name == "" {
			return nil, fmt.Errorf("%w: empty name for id %d", ErrInvalidLayer, spec.ID)
		}
		if _, ok := r.byID[spec.ID]; ok {
			return nil, fmt.Errorf("%w: id %d", ErrDuplicateLayer, spec.ID)
		}
		if _, ok := names[spec.Name]; ok {
			return nil, fmt.Errorf("%w: name %q", ErrDuplicateLayer, spec.Name)
		}
		names[spec.Name] = struct{}{}

		d := newDeclaration(spec)
		r.declarations = append(r.declarations, d)
		r.byID[spec.ID] = d
	}
	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on error.
func MustNewRegistry(specs ...Spec) *Registry {
	r, err := NewRegistry(specs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Declarations returns the declarations in registration order.
// The slice is a copy, the declarations are shared.
func (r *Registry) Declarations() []*Declaration {
	return slices.Clone(r.declarations)
}

func (r *Registry) Len() int {
	return len(r.declarations)
}

func (r *Registry) Lookup(id int) (*Declaration, bool) {
	d, ok := r.byID[id]
	return d, ok
}

func (r *Registry) ByName(name string) (*Declaration, bool) {
	for _, d := range r.declarations {
		if d.name == name {
			return d, true
		}
	}
	return nil, false
}

func (r *Registry) IDs() []int {
	ids := make([]int, len(r.declarations))
	for i, d := range r.declarations {
		ids[i] = d.id
	}
	return ids
}

// Visible returns an iterator over the currently visible declarations.
// Visibility is read lazily, as each declaration is reached.
func (r *Registry) Visible() iter.Seq[*Declaration] {
	return func(yield func(*Declaration) bool) {
		for _, d := range r.declarations {
			if d.Visible() && !yield(d) {
				return
			}
		}
	}
}

// Reset restores default visibility of every layer.
func (r *Registry) Reset() {
	for _, d := range r.declarations {
		d.Reset()
	}
}
