package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

//*******************************************
// coordinates
//*******************************************

// Geographic coordinate as [lon, lat] in degrees.
type Coord = orb.Point

func NewCoord(lat, lon float64) Coord {
	return orb.Point{lon, lat}
}

//*******************************************
// projection
//*******************************************

const EARTH_CIRCUMFERENCE_KM = 40_075.0

// Locally flat projection of lat/lon into km around an origin.
//
// Only usable at city scale, distortion grows with distance to the origin.
type Projection struct {
	OriginLat float64 `yaml:"origin-lat" json:"origin_lat"`
	OriginLon float64 `yaml:"origin-lon" json:"origin_lon"`
}

func NewProjection(origin_lat, origin_lon float64) Projection {
	return Projection{OriginLat: origin_lat, OriginLon: origin_lon}
}

func (self Projection) skew() float64 {
	return math.Cos(self.OriginLat * (math.Pi / 180))
}

// Projects a [lon, lat] coordinate into planar [x, y] km.
func (self Projection) Proj(point Coord) orb.Point {
	delta_lat := point.Lat() - self.OriginLat
	delta_lon := point.Lon() - self.OriginLon
	x := delta_lon * self.skew() * (EARTH_CIRCUMFERENCE_KM / 360)
	y := delta_lat * (EARTH_CIRCUMFERENCE_KM / 360)
	return orb.Point{x, y}
}

func (self Projection) ReProj(point orb.Point) Coord {
	lat := point.Y()/(EARTH_CIRCUMFERENCE_KM/360) + self.OriginLat
	lon := point.X()/(self.skew()*(EARTH_CIRCUMFERENCE_KM/360)) + self.OriginLon
	return NewCoord(lat, lon)
}

// Euclidean distance of two planar points in km.
func Distance(a, b orb.Point) float64 {
	return planar.Distance(a, b)
}
