// Package graph provides the live set of resident fragments addressed by tile coordinates.
package graph

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/eak1mov/go-libfragments/fragment"
	"github.com/eak1mov/go-libfragments/tile"
	"go.uber.org/zap"
)

// ErrInvariantViolation reports a caller or lifecycle bug, e.g. inserting
// a fragment at a tile that is already resident.
var ErrInvariantViolation = errors.New("libfragments: invariant violation")

// Graph holds at most one fragment per tile and links fragments of adjacent tiles.
//
// Graph is not safe for concurrent use: it is owned by the goroutine handling
// the map view. Population from other goroutines goes through package generation.
type Graph struct {
	size   tile.Size
	pool   *fragment.Pool
	logger *zap.Logger

	items map[tile.ID]*Item
	order []*Item
}

type Option func(*Graph)

func WithLogger(logger *zap.Logger) Option {
	return func(g *Graph) { g.logger = logger }
}

// WithPool shares a fragment pool between graphs.
func WithPool(pool *fragment.Pool) Option {
	return func(g *Graph) { g.pool = pool }
}

func New(size tile.Size, opts ...Option) *Graph {
	g := &Graph{
		size:   size,
		pool:   fragment.NewPool(),
		logger: zap.NewNop(),
		items:  make(map[tile.ID]*Item),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Graph) Size() tile.Size { return g.size }
func (g *Graph) Len() int        { return len(g.order) }

// Pool returns the pool removed fragments are recycled into.
func (g *Graph) Pool() *fragment.Pool { return g.pool }

// Insert makes the tile resident with an empty fragment taken from the pool.
func (g *Graph) Insert(id tile.ID) (*Item, error) {
	if _, ok := g.items[id]; ok {
		return nil, fmt.Errorf("%w: %v is already resident", ErrInvariantViolation, id)
	}
	return g.insert(g.pool.Get(id, g.size)), nil
}

// MustInsert is like Insert but panics if the tile is already resident.
func (g *Graph) MustInsert(id tile.ID) *Item {
	item, err := g.Insert(id)
	if err != nil {
		panic(err)
	}
	return item
}

// InsertFragment makes an externally built fragment resident at its tile.
func (g *Graph) InsertFragment(f *fragment.Fragment) (*Item, error) {
	if f.Size() != g.size {
		return nil, fmt.Errorf("%w: %v has size %d, graph uses %d", ErrInvariantViolation, f.Tile(), f.Size(), g.size)
	}
	if _, ok := g.items[f.Tile()]; ok {
		return nil, fmt.Errorf("%w: %v is already resident", ErrInvariantViolation, f.Tile())
	}
	return g.insert(f), nil
}

func (g *Graph) insert(f *fragment.Fragment) *Item {
	id := f.Tile()
	item := &Item{fragment: f, resident: true}
	for _, d := range tile.Directions {
		if other, ok := g.items[id.Neighbor(d)]; ok {
			item.link(d, other)
		}
	}
	g.items[id] = item
	g.order = append(g.order, item)

	g.logger.Debug("fragment inserted", zap.Stringer("tile", id), zap.Int("resident", len(g.order)))
	return item
}

// Remove detaches the tile's fragment and recycles it into the pool.
// It reports whether the tile was resident.
func (g *Graph) Remove(id tile.ID) bool {
	item, ok := g.items[id]
	if !ok {
		return false
	}
	delete(g.items, id)
	g.order = slices.DeleteFunc(slices.Clone(g.order), func(i *Item) bool { return i == item })

	item.unlink()
	item.resident = false
	g.pool.Put(item.fragment)

	g.logger.Debug("fragment removed", zap.Stringer("tile", id), zap.Int("resident", len(g.order)))
	return true
}

// Clear removes every resident fragment.
func (g *Graph) Clear() {
	for _, item := range g.order {
		item.unlink()
		item.resident = false
		g.pool.Put(item.fragment)
	}
	clear(g.items)
	g.order = nil
}

// FragmentAt returns the fragment resident at the tile.
func (g *Graph) FragmentAt(id tile.ID) (*fragment.Fragment, bool) {
	item, ok := g.items[id]
	if !ok {
		return nil, false
	}
	return item.fragment, true
}

func (g *Graph) ItemAt(id tile.ID) (*Item, bool) {
	item, ok := g.items[id]
	return item, ok
}

// Bounds returns the smallest rectangle containing every resident tile.
func (g *Graph) Bounds() (tile.Rect, bool) {
	if len(g.order) == 0 {
		return tile.Rect{}, false
	}
	r := tile.Rect{Min: g.order[0].Tile(), Max: g.order[0].Tile()}
	for _, item := range g.order[1:] {
		r = r.Union(item.Tile())
	}
	return r, true
}

var errVisitCancelled = errors.New("visit cancelled")

// Visit calls the visitor for every resident item in insertion order.
// The set of items is fixed when Visit starts: items inserted by the visitor
// are not visited, items removed by the visitor are skipped.
func (g *Graph) Visit(visitor func(*Item) error) error {
	for _, item := range g.order {
		if !item.resident {
			continue
		}
		if err := visitor(item); err != nil {
			return err
		}
	}
	return nil
}

// All returns an iterator over every resident item in insertion order,
// with the snapshot semantics of Visit.
func (g *Graph) All() iter.Seq[*Item] {
	return func(yield func(*Item) bool) {
		err := g.Visit(func(item *Item) error {
			if !yield(item) {
				return errVisitCancelled
			}
			return nil
		})
		if err != nil && err != errVisitCancelled {
			panic(err)
		}
	}
}

// Spatial returns an iterator over every resident item ordered along a Hilbert
// curve covering the resident tiles, so consecutive items are close on the map.
func (g *Graph) Spatial() iter.Seq[*Item] {
	return func(yield func(*Item) bool) {
		bounds, ok := g.Bounds()
		if !ok {
			return
		}
		curve, err := tile.NewCurve(bounds)
		if err != nil {
			panic(err)
		}

		type coded struct {
			code int
			item *Item
		}
		items := make([]coded, 0, len(g.order))
		for _, item := range g.order {
			code, err := curve.Code(item.Tile())
			if err != nil {
				panic(err)
			}
			items = append(items, coded{code: code, item: item})
		}
		slices.SortFunc(items, func(a, b coded) int { return a.code - b.code })

		for _, c := range items {
			if !c.item.resident {
				continue
			}
			if !yield(c.item) {
				return
			}
		}
	}
}
