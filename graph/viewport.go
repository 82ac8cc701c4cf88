package graph

import (
	"github.com/eak1mov/go-libfragments/tile"
	"go.uber.org/zap"
)

// Adjust makes the graph cover exactly the view grown by margin tiles on every side:
// missing tiles are inserted and tiles outside are removed and recycled.
// Removed tiles are reported in insertion order, added tiles in row-major order.
func (g *Graph) Adjust(view tile.Rect, margin int64) (added, removed []tile.ID) {
	retained := view.Grow(margin)

	for _, item := range g.order {
		if id := item.Tile(); !retained.Contains(id) {
			removed = append(removed, id)
		}
	}
	for _, id := range removed {
		g.Remove(id)
	}

	for id := range retained.Tiles() {
		if _, ok := g.items[id]; ok {
			continue
		}
		g.insert(g.pool.Get(id, g.size))
		added = append(added, id)
	}

	if len(added) > 0 || len(removed) > 0 {
		g.logger.Debug("graph adjusted",
			zap.Int("added", len(added)),
			zap.Int("removed", len(removed)),
			zap.Int("resident", len(g.order)),
			zap.Int64("width", retained.Width()),
			zap.Int64("height", retained.Height()))
	}
	return added, removed
}
