package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ttpr0/heat-transit/routing"
	"github.com/ttpr0/heat-transit/structs"
	"golang.org/x/exp/slog"
)

//**********************************************************
// router
//**********************************************************

func NewRouter(manager *TransitManager, metrics *Collector, options ServerOptions) http.Handler {
	app := chi.NewRouter()
	app.Use(middleware.RequestID)
	app.Use(middleware.Recoverer)
	if len(options.AllowedOrigins) > 0 {
		app.Use(cors.Handler(cors.Options{
			AllowedOrigins: options.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"*"},
		}))
	}

	MapGet(app, "/health", func(req struct{}) Result {
		return OK(HealthResponse{
			Status:      "ok",
			Stops:       manager.Graph().StopCount(),
			Connections: manager.Graph().ConnectionCount(),
			CachedStops: manager.CachedStops(),
		})
	})
	MapGet(app, "/v0/route", func(req RouteRequest) Result {
		return HandleRouteRequest(manager, req)
	})
	MapPost(app, "/v0/route", func(req BatchRouteRequest) Result {
		return HandleBatchRouteRequest(manager, req)
	})
	MapGet(app, "/v0/cache/{stop}", func(req CacheRequest) Result {
		return HandleCacheRequest(manager, req)
	})
	app.Handle("/metrics", metrics.Handler())
	return app
}

//**********************************************************
// handlers
//**********************************************************

func HandleRouteRequest(manager *TransitManager, req RouteRequest) Result {
	start, err := req.Position()
	if err != nil {
		return BadRequest(err.Error())
	}
	path := manager.Search(start)
	return OK(NewRouteResponse(path.Value, path.HasValue(), req.Steps))
}

const MAX_BATCH_SIZE = 1000

func HandleBatchRouteRequest(manager *TransitManager, req BatchRouteRequest) Result {
	if len(req.Locations) == 0 {
		return BadRequest("missing locations")
	}
	if len(req.Locations) > MAX_BATCH_SIZE {
		return BadRequest("too many locations")
	}
	resp := BatchRouteResponse{Results: make([]RouteResponse, len(req.Locations))}
	for i, loc := range req.Locations {
		path := manager.Search(routing.GeoPoint(loc[0], loc[1]))
		resp.Results[i] = NewRouteResponse(path.Value, path.HasValue(), false)
	}
	return OK(resp)
}

func HandleCacheRequest(manager *TransitManager, req CacheRequest) Result {
	id := structs.StopID(req.Stop)
	stop, ok := manager.Graph().GetStop(id)
	if !ok {
		return NotFound("stop not found")
	}
	cost := manager.GetCachedCost(id)
	if !cost.HasValue() {
		return NotFound("destination not reachable from stop")
	}
	return OK(CacheResponse{Stop: id, Name: stop.Name, Cost: cost.Value})
}

//**********************************************************
// serve
//**********************************************************

// Serves the api until ctx is cancelled.
func RunServer(ctx context.Context, manager *TransitManager, metrics *Collector, options ServerOptions) error {
	srv := &http.Server{
		Addr:              options.Address,
		Handler:           NewRouter(manager, metrics, options),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errs := make(chan error, 1)
	go func() {
		errs <- srv.ListenAndServe()
	}()
	slog.Info("listening on " + options.Address)

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}
	shutdown_ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown_ctx); err != nil {
		return err
	}
	if err := <-errs; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
