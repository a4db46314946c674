package precache

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/ttpr0/heat-transit/graph"
	"github.com/ttpr0/heat-transit/routing"
	"github.com/ttpr0/heat-transit/structs"
	. "github.com/ttpr0/heat-transit/util"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

type RouteCache = structs.RouteCache

// Called after every finished stop with the number of stops done so far.
type ProgressFunc func(done, total int)

type BuildOptions struct {
	// number of concurrent searches, runtime.NumCPU() if <= 0
	Workers int
	// log a progress line every LogEvery stops, never if <= 0
	LogEvery int
	Progress ProgressFunc
}

//*******************************************
// build cache
//*******************************************

// Runs one search from every stop towards destination and collects the
// resulting costs. Stops that can not reach the destination are omitted.
//
// Searches run without a cache so every entry is the exact cost found by the
// engine. Returns ctx.Err() if ctx is cancelled before all stops are done.
func Build(ctx context.Context, g *graph.TransitGraph, config routing.SearchConfig, destination routing.Position, options BuildOptions) (RouteCache, error) {
	workers := options.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	alg := routing.NewTransitAStar(g, config, destination, nil)

	stop_ids := g.StopIDs()
	total := stop_ids.Length()
	results := NewArray[Optional[structs.TimeCost]](total)

	var done atomic.Int64
	group, group_ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i, id := range stop_ids {
		if group_ctx.Err() != nil {
			break
		}
		i, id := i, id
		group.Go(func() error {
			if err := group_ctx.Err(); err != nil {
				return err
			}
			results[i] = alg.CalcShortestPathCost(routing.BusStop(id, routing.WALK))
			count := int(done.Add(1))
			if options.LogEvery > 0 && (count%options.LogEvery == 0 || count == total) {
				slog.Info(fmt.Sprintf("precache %d / %d", count, total))
			}
			if options.Progress != nil {
				options.Progress(count, total)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cache := make(RouteCache, total)
	for i, id := range stop_ids {
		if results[i].HasValue() {
			cache[id] = results[i].Value
		}
	}
	slog.Debug("precache built", "stops", total, "reachable", len(cache))
	return cache, nil
}

//*******************************************
// load cache
//*******************************************

// Reads the cache stored at path, building and storing it if the file is
// missing or can not be decoded.
func GetCache(ctx context.Context, path string, g *graph.TransitGraph, config routing.SearchConfig, destination routing.Position, options BuildOptions) (RouteCache, error) {
	cache, err := LoadOrBuild(path, func() (RouteCache, error) {
		return Build(ctx, g, config, destination, options)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build precache: %w", err)
	}
	return cache, nil
}
