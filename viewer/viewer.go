// Package viewer keeps the fragment graph in step with a scrolling map view:
// it makes the visible tiles resident, schedules their generation and answers
// pick queries on behalf of the input handler.
package viewer

import (
	"context"
	"errors"
	"sync"

	"github.com/eak1mov/go-libfragments/config"
	"github.com/eak1mov/go-libfragments/finder"
	"github.com/eak1mov/go-libfragments/generation"
	"github.com/eak1mov/go-libfragments/graph"
	"github.com/eak1mov/go-libfragments/layer"
	"github.com/eak1mov/go-libfragments/tile"
	"github.com/eak1mov/go-libfragments/world"
	"go.uber.org/zap"
)

// Viewer is owned by the goroutine handling the map view. Only generation
// runs on other goroutines.
type Viewer struct {
	cfg    *config.Config
	graph  *graph.Graph
	layers *layer.Registry
	queue  *generation.Queue
	gen    generation.Generator
	logger *zap.Logger

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	errOnce   sync.Once
	err       error
	requested map[tile.ID]struct{}
}

func New(cfg *config.Config, gen generation.Generator, logger *zap.Logger) (*Viewer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	layers, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Viewer{
		cfg:       cfg,
		graph:     graph.New(cfg.FragmentSize(), graph.WithLogger(logger.Named("graph"))),
		layers:    layers,
		queue:     generation.NewQueue(cfg.Generation.QueueCapacity, logger.Named("generation")),
		gen:       gen,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
		requested: make(map[tile.ID]struct{}),
	}, nil
}

func (v *Viewer) Graph() *graph.Graph      { return v.graph }
func (v *Viewer) Layers() *layer.Registry { return v.layers }

// Show makes the tiles between the two world corners (plus the configured margin)
// resident and starts generation of the new ones in the background.
func (v *Viewer) Show(a, b world.Coordinates) {
	view := tile.Covering(a, b, v.graph.Size())
	_, removed := v.graph.Adjust(view, v.cfg.Map.ViewMargin)
	for _, id := range removed {
		delete(v.requested, id)
	}

	var pending []tile.ID
	for _, id := range generation.Unloaded(v.graph) {
		if _, ok := v.requested[id]; !ok {
			v.requested[id] = struct{}{}
			pending = append(pending, id)
		}
	}
	if len(pending) == 0 {
		return
	}

	v.logger.Debug("scheduling generation", zap.Int("tiles", len(pending)))
	v.wg.Add(1)
	go func() {
		defer v.wg.Done()
		err := generation.Run(v.ctx, v.queue, v.graph.Size(), pending, v.cfg.Generation.Workers, v.gen)
		if err != nil && !errors.Is(err, context.Canceled) {
			v.logger.Error("generation failed", zap.Error(err))
			v.errOnce.Do(func() { v.err = err })
		}
	}()
}

// Update applies generated icons to the graph. It never blocks.
func (v *Viewer) Update() generation.Stats {
	return v.queue.Drain(v.graph)
}

// Pick returns the visible icon nearest to the position within the configured pick radius.
func (v *Viewer) Pick(pos world.Coordinates) (finder.Match, bool) {
	return finder.ClosestInGraph(v.graph, v.layers, pos, v.cfg.Map.PickRadius)
}

// Wait blocks until all scheduled generation has been published.
// The queue must be large enough, or Update must run concurrently.
func (v *Viewer) Wait() error {
	v.wg.Wait()
	return v.err
}

// Close stops generation and returns the first generation error, if any.
func (v *Viewer) Close() error {
	v.cancel()
	return v.Wait()
}
