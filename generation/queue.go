// Package generation hands icons produced by world-generation workers over to
// the goroutine that owns the fragment graph.
//
// Workers never touch fragments: they build a Batch per tile and publish it on
// a Queue. The owner of the graph drains the queue between queries, so a query
// never observes a partially applied batch.
package generation

import (
	"context"
	"maps"
	"slices"

	"github.com/eak1mov/go-libfragments/graph"
	"github.com/eak1mov/go-libfragments/tile"
	"github.com/eak1mov/go-libfragments/world"
	"go.uber.org/zap"
)

// Event is a single population event: one icon for one layer of one tile.
type Event struct {
	Tile    tile.ID
	LayerID int
	Icon    world.Icon
}

// Batch carries icons for one tile. It must not be modified after it is published.
type Batch struct {
	Tile  tile.ID
	Icons map[int][]world.Icon
	// Complete marks the last batch of a tile; the fragment is marked loaded when applied.
	Complete bool
}

func NewBatch(id tile.ID) Batch {
	return Batch{Tile: id, Icons: make(map[int][]world.Icon)}
}

func (b Batch) Add(layerID int, icons ...world.Icon) {
	b.Icons[layerID] = append(b.Icons[layerID], icons...)
}

// Stats summarizes one Drain call.
type Stats struct {
	Applied  int // batches applied to resident fragments
	Dropped  int // batches for tiles no longer resident or already loaded
	Icons    int // icons added
	Rejected int // icons outside their tile
}

// Queue is a bounded channel of batches. Publish and Send are safe for
// concurrent use; Drain must only be called by the goroutine owning the graph.
type Queue struct {
	batches chan Batch
	logger  *zap.Logger
}

func NewQueue(capacity int, logger *zap.Logger) *Queue {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Queue{
		batches: make(chan Batch, capacity),
		logger:  logger,
	}
}

// Publish enqueues the batch, blocking while the queue is full.
func (q *Queue) Publish(ctx context.Context, b Batch) error {
	select {
	case q.batches <- b:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Send enqueues a single icon as its own batch.
func (q *Queue) Send(ctx context.Context, e Event) error {
	b := NewBatch(e.Tile)
	b.Add(e.LayerID, e.Icon)
	return q.Publish(ctx, b)
}

// Len returns the number of batches waiting to be drained.
func (q *Queue) Len() int {
	return len(q.batches)
}

// Drain applies every pending batch to the graph without blocking.
func (q *Queue) Drain(g *graph.Graph) Stats {
	var stats Stats
	for {
		select {
		case b := <-q.batches:
			q.apply(g, b, &stats)
		default:
			if stats != (Stats{}) {
				q.logger.Debug("generation queue drained",
					zap.Int("applied", stats.Applied),
					zap.Int("dropped", stats.Dropped),
					zap.Int("icons", stats.Icons),
					zap.Int("rejected", stats.Rejected))
			}
			return stats
		}
	}
}

func (q *Queue) apply(g *graph.Graph, b Batch, stats *Stats) {
	f, ok := g.FragmentAt(b.Tile)
	if !ok || (b.Complete && f.IsLoaded()) {
		stats.Dropped++
		return
	}
	for _, layerID := range slices.Sorted(maps.Keys(b.Icons)) {
		for _, icon := range b.Icons[layerID] {
			if !b.Tile.Contains(icon.Coordinates(), g.Size()) {
				stats.Rejected++
				q.logger.Warn("icon outside its tile",
					zap.Stringer("tile", b.Tile),
					zap.Int("layer", layerID),
					zap.Stringer("icon", icon))
				continue
			}
			f.AddWorldIcon(layerID, icon)
			stats.Icons++
		}
	}
	if b.Complete {
		f.MarkLoaded()
	}
	stats.Applied++
}
