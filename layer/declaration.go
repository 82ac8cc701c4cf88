// Package layer provides the registry of icon layers and their visibility flags.
package layer

import (
	"fmt"
	"sync/atomic"
)

// Spec describes a layer before it is registered.
type Spec struct {
	ID      int    `yaml:"id" toml:"id"`
	Name    string `yaml:"name" toml:"name"`
	Visible bool   `yaml:"visible" toml:"visible"`
}

// Declaration identifies a layer and carries its visibility flag.
// The flag is the only mutable state and may be toggled from any goroutine.
type Declaration struct {
	id             int
	name           string
	defaultVisible bool
	visible        atomic.Bool
}

func newDeclaration(spec Spec) *Declaration {
	d := &Declaration{
		id:             spec.ID,
		name:           spec.Name,
		defaultVisible: spec.Visible,
	}
	d.visible.Store(spec.Visible)
	return d
}

func (d *Declaration) ID() int              { return d.id }
func (d *Declaration) Name() string         { return d.name }
func (d *Declaration) DefaultVisible() bool { return d.defaultVisible }
func (d *Declaration) Visible() bool        { return d.visible.Load() }

func (d *Declaration) SetVisible(visible bool) {
	d.visible.Store(visible)
}

// Toggle flips visibility and returns the new value.
func (d *Declaration) Toggle() bool {
	for {
		old := d.visible.Load()
		if d.visible.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Reset restores the default visibility.
func (d *Declaration) Reset() {
	d.visible.Store(d.defaultVisible)
}

func (d *Declaration) String() string {
	return fmt.Sprintf("layer %d %q (visible=%v)", d.id, d.name, d.Visible())
}
