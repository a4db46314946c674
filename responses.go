package main

import (
	"github.com/ttpr0/heat-transit/routing"
	"github.com/ttpr0/heat-transit/structs"
)

type ErrorResponse struct {
	Request string `json:"request"`
	Error   any    `json:"error"`
}

func NewErrorResponse(request string, error any) ErrorResponse {
	return ErrorResponse{
		Request: request,
		Error:   error,
	}
}

type RouteResponse struct {
	Found bool              `json:"found"`
	Cost  *structs.TimeCost `json:"cost,omitempty"`
	Total *float64          `json:"total,omitempty"`
	Steps routing.Path      `json:"steps,omitempty"`
}

func NewRouteResponse(path routing.Path, found bool, steps bool) RouteResponse {
	if !found {
		return RouteResponse{Found: false}
	}
	cost := path.Total()
	total := cost.Total()
	resp := RouteResponse{
		Found: true,
		Cost:  &cost,
		Total: &total,
	}
	if steps {
		resp.Steps = path
	}
	return resp
}

type BatchRouteResponse struct {
	Results []RouteResponse `json:"results"`
}

type CacheResponse struct {
	Stop structs.StopID   `json:"stop"`
	Name string           `json:"name"`
	Cost structs.TimeCost `json:"cost"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	Stops       int    `json:"stops"`
	Connections int    `json:"connections"`
	CachedStops int    `json:"cached_stops"`
}
