// Package finder answers nearest-icon queries over the resident fragments of a graph.
package finder

import (
	"fmt"
	"iter"
	"math"

	"github.com/eak1mov/go-libfragments/graph"
	"github.com/eak1mov/go-libfragments/layer"
	"github.com/eak1mov/go-libfragments/tile"
	"github.com/eak1mov/go-libfragments/world"
)

// ErrNoResult is raised when a result is read from a Finder that found nothing.
var ErrNoResult = fmt.Errorf("%w: no icon within range", graph.ErrInvariantViolation)

// Match is the result of a nearest-icon query.
type Match struct {
	Icon     world.Icon
	Tile     tile.ID
	Distance float64
}

// Closest returns the icon nearest to target among the icons of every item,
// restricted to declarations that are visible at the time they are reached,
// in the order given.
//
// The maximum distance is exclusive: an icon exactly maxDistance away is not
// matched, so a zero maxDistance never matches. When several icons are equally
// close, the first one in item, declaration, insertion order wins.
// The scan is linear in the number of visible icons.
func Closest(items iter.Seq[*graph.Item], decls []*layer.Declaration, target world.Coordinates, maxDistance float64) (Match, bool) {
	if !(maxDistance >= 0) {
		return Match{}, false
	}

	var (
		best     Match
		found    bool
		bestDist = maxDistance * maxDistance
	)
	for item := range items {
		f := item.Fragment()
		for _, d := range decls {
			if !d.Visible() {
				continue
			}
			for _, icon := range f.WorldIcons(d.ID()) {
				if dist := icon.Coordinates().DistanceSq(target); dist < bestDist {
					bestDist = dist
					best = Match{Icon: icon, Tile: f.Tile()}
					found = true
				}
			}
		}
	}
	if !found {
		return Match{}, false
	}
	best.Distance = math.Sqrt(bestDist)
	return best, true
}

// ClosestInGraph runs Closest over every resident fragment of the graph and every layer of the registry.
func ClosestInGraph(g *graph.Graph, r *layer.Registry, target world.Coordinates, maxDistance float64) (Match, bool) {
	return Closest(g.All(), r.Declarations(), target, maxDistance)
}

// Finder holds the outcome of a query run at construction.
type Finder struct {
	match Match
	found bool
}

func New(g *graph.Graph, decls []*layer.Declaration, target world.Coordinates, maxDistance float64) *Finder {
	match, found := Closest(g.All(), decls, target, maxDistance)
	return &Finder{match: match, found: found}
}

func (f *Finder) HasResult() bool {
	return f.found
}

// WorldIcon returns the nearest icon. It panics with ErrNoResult if HasResult is false.
func (f *Finder) WorldIcon() world.Icon {
	if !f.found {
		panic(ErrNoResult)
	}
	return f.match.Icon
}

// Distance returns the distance to the nearest icon. It panics with ErrNoResult if HasResult is false.
func (f *Finder) Distance() float64 {
	if !f.found {
		panic(ErrNoResult)
	}
	return f.match.Distance
}

func (f *Finder) Match() (Match, bool) {
	return f.match, f.found
}
