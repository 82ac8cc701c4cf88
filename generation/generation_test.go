package generation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/eak1mov/go-libfragments/finder"
	"github.com/eak1mov/go-libfragments/generation"
	"github.com/eak1mov/go-libfragments/graph"
	"github.com/eak1mov/go-libfragments/internal"
	"github.com/eak1mov/go-libfragments/tile"
	"github.com/eak1mov/go-libfragments/world"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// centerIcons places one icon of layer 1 in the middle of every tile.
func centerIcons(_ context.Context, id tile.ID, size tile.Size) (generation.Batch, error) {
	b := generation.NewBatch(id)
	b.Add(1, world.NewIcon(id.Corner(size).Add(world.New(int64(size)/2, int64(size)/2)), 1, "center", ""))
	return b, nil
}

func TestRunAndDrain(t *testing.T) {
	g := graph.New(internal.TestSize)
	g.Adjust(tile.Rect{Min: tile.ID{X: -1, Y: -1}, Max: tile.ID{X: 1, Y: 1}}, 0)
	pending := generation.Unloaded(g)
	require.Len(t, pending, 9)

	q := generation.NewQueue(len(pending), nil)
	require.NoError(t, generation.Run(context.Background(), q, g.Size(), pending, 3, centerIcons))
	require.Equal(t, 9, q.Len())

	// nothing is visible until the queue is drained
	_, ok := finder.ClosestInGraph(g, internal.Registry(t, 1), world.New(0, 0), 1000)
	require.False(t, ok)

	stats := q.Drain(g)
	require.Equal(t, generation.Stats{Applied: 9, Icons: 9}, stats)
	require.Zero(t, q.Len())
	require.Empty(t, generation.Unloaded(g))

	match, ok := finder.ClosestInGraph(g, internal.Registry(t, 1), world.New(40, 40), 1000)
	require.True(t, ok)
	require.Equal(t, tile.ID{X: 0, Y: 0}, match.Tile)
	require.Equal(t, world.New(50, 50), match.Icon.Coordinates())

	for item := range g.All() {
		require.NoError(t, item.Fragment().Validate())
	}
}

func TestDrainDropsNonResident(t *testing.T) {
	g := graph.New(internal.TestSize)
	g.MustInsert(tile.ID{X: 0, Y: 0})
	g.MustInsert(tile.ID{X: 1, Y: 0})

	q := generation.NewQueue(4, nil)
	ctx := context.Background()
	require.NoError(t, q.Send(ctx, generation.Event{Tile: tile.ID{X: 0, Y: 0}, LayerID: 2, Icon: internal.Icon(2, 5, 5)}))
	require.NoError(t, q.Send(ctx, generation.Event{Tile: tile.ID{X: 1, Y: 0}, LayerID: 2, Icon: internal.Icon(2, 105, 5)}))

	g.Remove(tile.ID{X: 1, Y: 0})
	g.MustInsert(tile.ID{X: 7, Y: 7})

	stats := q.Drain(g)
	require.Equal(t, generation.Stats{Applied: 1, Dropped: 1, Icons: 1}, stats)

	f, _ := g.FragmentAt(tile.ID{X: 7, Y: 7})
	require.Zero(t, f.IconCount())
	f, _ = g.FragmentAt(tile.ID{X: 0, Y: 0})
	require.Len(t, f.WorldIcons(2), 1)
	require.False(t, f.IsLoaded())
}

func TestDrainRejectsOutOfBounds(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	g := graph.New(internal.TestSize)
	g.MustInsert(tile.ID{X: 0, Y: 0})

	q := generation.NewQueue(1, zap.New(core))
	b := generation.NewBatch(tile.ID{X: 0, Y: 0})
	b.Add(1, internal.Icon(1, 10, 10), internal.Icon(1, 100, 10))
	b.Complete = true
	require.NoError(t, q.Publish(context.Background(), b))

	stats := q.Drain(g)
	require.Equal(t, generation.Stats{Applied: 1, Icons: 1, Rejected: 1}, stats)
	require.Equal(t, 1, logs.FilterMessage("icon outside its tile").Len())

	f, _ := g.FragmentAt(tile.ID{X: 0, Y: 0})
	require.True(t, f.IsLoaded())
	require.NoError(t, f.Validate())
}

func TestDrainDropsDuplicateComplete(t *testing.T) {
	g := graph.New(internal.TestSize)
	g.MustInsert(tile.ID{X: 0, Y: 0})

	q := generation.NewQueue(2, nil)
	tiles := []tile.ID{{X: 0, Y: 0}}
	require.NoError(t, generation.Run(context.Background(), q, g.Size(), tiles, 1, centerIcons))
	require.NoError(t, generation.Run(context.Background(), q, g.Size(), tiles, 1, centerIcons))

	stats := q.Drain(g)
	require.Equal(t, generation.Stats{Applied: 1, Dropped: 1, Icons: 1}, stats)
}

func TestDrainEmpty(t *testing.T) {
	q := generation.NewQueue(1, nil)
	require.Equal(t, generation.Stats{}, q.Drain(graph.New(internal.TestSize)))
}

func TestRunError(t *testing.T) {
	errBroken := errors.New("broken generator")
	gen := func(ctx context.Context, id tile.ID, size tile.Size) (generation.Batch, error) {
		if id.X == 2 {
			return generation.Batch{}, errBroken
		}
		return centerIcons(ctx, id, size)
	}

	tiles := []tile.ID{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	q := generation.NewQueue(len(tiles), nil)
	err := generation.Run(context.Background(), q, internal.TestSize, tiles, 1, gen)
	require.ErrorIs(t, err, errBroken)
	require.ErrorContains(t, err, "tile(2, 0)")
}

func TestPublishCancelled(t *testing.T) {
	q := generation.NewQueue(1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, q.Publish(ctx, generation.NewBatch(tile.ID{})))

	cancel()
	require.ErrorIs(t, q.Publish(ctx, generation.NewBatch(tile.ID{})), context.Canceled)

	err := generation.Run(ctx, q, internal.TestSize, []tile.ID{{X: 1, Y: 1}}, 2, centerIcons)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunConcurrentWithDrain(t *testing.T) {
	g := graph.New(internal.TestSize)
	g.Adjust(tile.Rect{Min: tile.ID{X: 0, Y: 0}, Max: tile.ID{X: 7, Y: 7}}, 0)
	pending := generation.Unloaded(g)

	q := generation.NewQueue(2, nil)
	done := make(chan error, 1)
	go func() {
		done <- generation.Run(context.Background(), q, g.Size(), pending, 4, centerIcons)
	}()

	var total generation.Stats
	for {
		select {
		case err := <-done:
			require.NoError(t, err)
			s := q.Drain(g)
			total.Applied += s.Applied
			total.Icons += s.Icons
			require.Equal(t, len(pending), total.Applied)
			require.Equal(t, len(pending), total.Icons)
			require.Empty(t, generation.Unloaded(g))
			return
		default:
			s := q.Drain(g)
			total.Applied += s.Applied
			total.Icons += s.Icons
		}
	}
}
