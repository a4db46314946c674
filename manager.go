package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/ttpr0/heat-transit/graph"
	"github.com/ttpr0/heat-transit/parser"
	"github.com/ttpr0/heat-transit/precache"
	"github.com/ttpr0/heat-transit/routing"
	"github.com/ttpr0/heat-transit/structs"
	. "github.com/ttpr0/heat-transit/util"
	"golang.org/x/exp/slog"
)

// Loads the transit data of a config and answers searches towards its
// destination. Safe for concurrent use once created.
type TransitManager struct {
	config      Config
	graph       *graph.TransitGraph
	destination routing.Position
	cache       structs.RouteCache
	astar       *routing.TransitAStar
	metrics     *Collector
}

func NewTransitManager(ctx context.Context, config Config, metrics *Collector) (*TransitManager, error) {
	stops, connections, err := parser.GetTransitData(config.Data.Cache, config.Data.GTFS, config.Projection)
	if err != nil {
		return nil, fmt.Errorf("failed to load transit data: %w", err)
	}
	g := graph.BuildTransitGraph(stops, connections, config.Projection)
	slog.Info(fmt.Sprintf("loaded transit graph with %d stops and %d connections", g.StopCount(), g.ConnectionCount()))

	manager := &TransitManager{
		config:      config,
		graph:       g,
		destination: routing.GeoPoint(config.Destination.Lat, config.Destination.Lon),
		metrics:     metrics,
	}
	cache, err := precache.GetCache(ctx, manager.CachePath(), g, config.Search, manager.destination, precache.BuildOptions{
		Workers:  config.Render.Workers,
		LogEvery: 100,
		Progress: func(done, total int) {
			metrics.PrecacheStops.Inc()
		},
	})
	if err != nil {
		return nil, err
	}
	manager.cache = cache
	manager.astar = routing.NewTransitAStar(g, config.Search, manager.destination, cache)

	metrics.Stops.Set(float64(g.StopCount()))
	metrics.Connections.Set(float64(g.ConnectionCount()))
	metrics.CachedStops.Set(float64(len(cache)))
	return manager, nil
}

// Location of the precache file. The name carries the destination and a short
// digest of the search parameters, a cache built with other speeds or limits is
// never picked up.
func PrecachePath(config Config) string {
	search := config.Search
	params := fmt.Sprintf("%g|%g|%g|%g|%g|%g",
		search.WalkingSpeed, search.DrivingSpeed, search.BoardingWait, search.MaxWalkTime,
		config.Projection.OriginLat, config.Projection.OriginLon)
	digest := uuid.NewSHA1(uuid.NameSpaceOID, []byte(params)).String()[:8]
	name := fmt.Sprintf("precache_%.6f_%.6f_%s.json", config.Destination.Lat, config.Destination.Lon, digest)
	return filepath.Join(config.Data.Cache, name)
}

func (self *TransitManager) CachePath() string {
	return PrecachePath(self.config)
}

func (self *TransitManager) Graph() *graph.TransitGraph {
	return self.graph
}

func (self *TransitManager) Destination() routing.Position {
	return self.destination
}

func (self *TransitManager) GetCachedCost(stop structs.StopID) Optional[structs.TimeCost] {
	cost, ok := self.cache[stop]
	if !ok {
		return None[structs.TimeCost]()
	}
	return Some(cost)
}

func (self *TransitManager) CachedStops() int {
	return len(self.cache)
}

func (self *TransitManager) Search(start routing.Position) Optional[routing.Path] {
	t1 := time.Now()
	path := self.astar.CalcShortestPath(start)
	self.metrics.ObserveSearch(path.HasValue(), time.Since(t1).Seconds())
	return path
}

func (self *TransitManager) SearchCost(start routing.Position) Optional[structs.TimeCost] {
	path := self.Search(start)
	if !path.HasValue() {
		return None[structs.TimeCost]()
	}
	return Some(path.Value.Total())
}
