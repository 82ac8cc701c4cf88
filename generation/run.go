package generation

import (
	"context"
	"fmt"

	"github.com/eak1mov/go-libfragments/graph"
	"github.com/eak1mov/go-libfragments/tile"
	"golang.org/x/sync/errgroup"
)

// Generator produces the icons of one tile.
type Generator func(ctx context.Context, id tile.ID, size tile.Size) (Batch, error)

// Run generates the tiles on at most workers goroutines and publishes the
// results as complete batches. The first error cancels the remaining work.
//
// Run blocks until every tile is published, so it must not run on the goroutine
// that drains the queue unless the queue can hold every batch.
func Run(ctx context.Context, q *Queue, size tile.Size, tiles []tile.ID, workers int, gen Generator) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(workers, 1))
	for _, id := range tiles {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := gen(ctx, id, size)
			if err != nil {
				return fmt.Errorf("generate %v: %w", id, err)
			}
			b.Tile = id
			b.Complete = true
			return q.Publish(ctx, b)
		})
	}
	return eg.Wait()
}

// Unloaded returns the resident tiles whose population has not completed, in graph order.
func Unloaded(g *graph.Graph) []tile.ID {
	var ids []tile.ID
	for item := range g.All() {
		if !item.Fragment().IsLoaded() {
			ids = append(ids, item.Tile())
		}
	}
	return ids
}
