package routing

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/ttpr0/heat-transit/geo"
	"github.com/ttpr0/heat-transit/graph"
	"github.com/ttpr0/heat-transit/structs"
)

//*******************************************
// enums
//*******************************************

// How a stop was reached. Kept for path output only, never part of identity.
type BoardingMode byte

const (
	WALK BoardingMode = 0
	BUS  BoardingMode = 1
)

func (self BoardingMode) String() string {
	switch self {
	case WALK:
		return "walk"
	case BUS:
		return "bus"
	default:
		return "unknown"
	}
}

type PositionType byte

const (
	BUS_STOP     PositionType = 0
	GEO_POINT    PositionType = 1
	PLANAR_POINT PositionType = 2
)

func (self PositionType) String() string {
	switch self {
	case BUS_STOP:
		return "bus_stop"
	case GEO_POINT:
		return "geo_point"
	case PLANAR_POINT:
		return "planar_point"
	default:
		return "unknown"
	}
}

//*******************************************
// position
//*******************************************

// Node of the search: a stop, a lat/lon point or a planar km point.
//
// Two bus stops with the same id are the same node whatever their boarding
// mode; use Key or Equal for identity, never ==.
type Position struct {
	typ  PositionType
	stop structs.StopID
	mode BoardingMode
	// lat/lon for GEO_POINT, x/y for PLANAR_POINT
	a float64
	b float64
}

func BusStop(stop structs.StopID, mode BoardingMode) Position {
	return Position{typ: BUS_STOP, stop: stop, mode: mode}
}

func GeoPoint(lat, lon float64) Position {
	return Position{typ: GEO_POINT, a: lat, b: lon}
}

func PlanarPoint(x, y float64) Position {
	return Position{typ: PLANAR_POINT, a: x, b: y}
}

func (self Position) Type() PositionType {
	return self.typ
}

func (self Position) IsStop() bool {
	return self.typ == BUS_STOP
}

// Only meaningful for BUS_STOP positions.
func (self Position) StopID() structs.StopID {
	return self.stop
}

// Only meaningful for BUS_STOP positions.
func (self Position) Mode() BoardingMode {
	return self.mode
}

func (self Position) WithMode(mode BoardingMode) Position {
	self.mode = mode
	return self
}

// Planar km location. Unknown stops resolve to the origin.
func (self Position) Loc(g *graph.TransitGraph) orb.Point {
	switch self.typ {
	case BUS_STOP:
		return g.GetStopGeom(self.stop)
	case GEO_POINT:
		return g.Projection().Proj(geo.NewCoord(self.a, self.b))
	default:
		return orb.Point{self.a, self.b}
	}
}

// Comparable identity of a position, usable as map key.
type PositionKey struct {
	typ  PositionType
	stop structs.StopID
	a    uint64
	b    uint64
}

func (self Position) Key() PositionKey {
	if self.typ == BUS_STOP {
		return PositionKey{typ: BUS_STOP, stop: self.stop}
	}
	return PositionKey{typ: self.typ, a: _FloatKey(self.a), b: _FloatKey(self.b)}
}

func (self Position) Equal(other Position) bool {
	return self.Key() == other.Key()
}

// Bit pattern of f with -0 folded into +0.
func _FloatKey(f float64) uint64 {
	if f == 0 {
		return 0
	}
	return math.Float64bits(f)
}

func (self Position) String() string {
	switch self.typ {
	case BUS_STOP:
		return fmt.Sprintf("BusStop(%d, %v)", self.stop, self.mode)
	case GEO_POINT:
		return fmt.Sprintf("GeoPoint(%f, %f)", self.a, self.b)
	default:
		return fmt.Sprintf("PlanarPoint(%f, %f)", self.a, self.b)
	}
}

type _PositionJSON struct {
	Type string          `json:"type"`
	Stop *structs.StopID `json:"stop,omitempty"`
	Mode string          `json:"mode,omitempty"`
	Lat  *float64        `json:"lat,omitempty"`
	Lon  *float64        `json:"lon,omitempty"`
	X    *float64        `json:"x,omitempty"`
	Y    *float64        `json:"y,omitempty"`
}

func (self Position) MarshalJSON() ([]byte, error) {
	out := _PositionJSON{Type: self.typ.String()}
	switch self.typ {
	case BUS_STOP:
		out.Stop = &self.stop
		out.Mode = self.mode.String()
	case GEO_POINT:
		out.Lat = &self.a
		out.Lon = &self.b
	default:
		out.X = &self.a
		out.Y = &self.b
	}
	return json.Marshal(out)
}
