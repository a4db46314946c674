package main

import (
	"errors"
	"math"

	"github.com/ttpr0/heat-transit/routing"
)

// Start of a route, either lat/lon or planar x/y in km.
type RouteRequest struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
	X   *float64 `json:"x"`
	Y   *float64 `json:"y"`
	// include the single steps of the path
	Steps bool `json:"steps"`
}

func (self RouteRequest) Position() (routing.Position, error) {
	has_geo := self.Lat != nil || self.Lon != nil
	has_planar := self.X != nil || self.Y != nil
	switch {
	case has_geo && has_planar:
		return routing.Position{}, errors.New("either lat/lon or x/y expected, not both")
	case has_geo:
		if self.Lat == nil || self.Lon == nil {
			return routing.Position{}, errors.New("lat and lon are both required")
		}
		if !isFinite(*self.Lat, *self.Lon) {
			return routing.Position{}, errors.New("lat and lon must be finite numbers")
		}
		return routing.GeoPoint(*self.Lat, *self.Lon), nil
	case has_planar:
		if self.X == nil || self.Y == nil {
			return routing.Position{}, errors.New("x and y are both required")
		}
		if !isFinite(*self.X, *self.Y) {
			return routing.Position{}, errors.New("x and y must be finite numbers")
		}
		return routing.PlanarPoint(*self.X, *self.Y), nil
	default:
		return routing.Position{}, errors.New("missing start location")
	}
}

func isFinite(values ...float64) bool {
	for _, value := range values {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return false
		}
	}
	return true
}

type BatchRouteRequest struct {
	// [lat, lon] pairs
	Locations [][2]float64 `json:"locations"`
}

type CacheRequest struct {
	Stop uint32 `path:"stop"`
}
