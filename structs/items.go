package structs

import (
	"github.com/paulmach/orb"
)

//*******************************************
// transit structs
//*******************************************

type StopID uint32

type Stop struct {
	ID StopID `json:"stop_id"`
	// planar coordinates in km
	X    float64 `json:"stop_x"`
	Y    float64 `json:"stop_y"`
	Name string  `json:"name"`
}

func (self Stop) Loc() orb.Point {
	return orb.Point{self.X, self.Y}
}

type Stops map[StopID]Stop

// Fastest scheduled travel between two stops observed over all trips.
type Connection struct {
	// seconds
	Time   float64 `json:"time"`
	TripID uint32  `json:"trip_id"`
}

// Directional, keyed by origin stop then destination stop.
type ConnectionTable map[StopID]map[StopID]Connection

// Inserts the connection unless a faster one between the same stops is already present.
func (self ConnectionTable) AddIfFaster(from, to StopID, conn Connection) {
	row, ok := self[from]
	if !ok {
		row = make(map[StopID]Connection)
		self[from] = row
	}
	if curr, ok := row[to]; ok && curr.Time <= conn.Time {
		return
	}
	row[to] = conn
}

func (self ConnectionTable) Count() int {
	count := 0
	for _, row := range self {
		count += len(row)
	}
	return count
}

// Remaining cost from a stop to one fixed destination.
type RouteCache map[StopID]TimeCost
