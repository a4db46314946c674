package graph

import (
	"github.com/paulmach/orb"
	"github.com/ttpr0/heat-transit/geo"
	"github.com/ttpr0/heat-transit/structs"
	. "github.com/ttpr0/heat-transit/util"
	"golang.org/x/exp/slices"
)

//*******************************************
// transit-graph
//******************************************

// Read-only view over a stop set and its scheduled connections.
//
// Safe for concurrent use, nothing is mutated after construction.
type TransitGraph struct {
	stops       structs.Stops
	stop_ids    Array[structs.StopID]
	connections structs.ConnectionTable
	// per stop targets in ascending order
	adjacency  Dict[structs.StopID, Array[structs.StopID]]
	projection geo.Projection
}

// Stops are expected in planar coordinates of the given projection.
func BuildTransitGraph(stops structs.Stops, connections structs.ConnectionTable, projection geo.Projection) *TransitGraph {
	stop_ids := NewArray[structs.StopID](len(stops))
	i := 0
	for id := range stops {
		stop_ids[i] = id
		i += 1
	}
	// map order is random, keep stop iteration stable between runs
	slices.Sort(stop_ids)
	if connections == nil {
		connections = structs.ConnectionTable{}
	}
	adjacency := NewDict[structs.StopID, Array[structs.StopID]](len(connections))
	for from, row := range connections {
		targets := NewArray[structs.StopID](0)
		for to := range row {
			targets = append(targets, to)
		}
		slices.Sort(targets)
		adjacency[from] = targets
	}
	return &TransitGraph{
		stops:       stops,
		stop_ids:    stop_ids,
		connections: connections,
		adjacency:   adjacency,
		projection:  projection,
	}
}

func (self *TransitGraph) Projection() geo.Projection {
	return self.projection
}

func (self *TransitGraph) StopCount() int {
	return len(self.stop_ids)
}
func (self *TransitGraph) ConnectionCount() int {
	return self.connections.Count()
}
func (self *TransitGraph) HasStop(id structs.StopID) bool {
	_, ok := self.stops[id]
	return ok
}
func (self *TransitGraph) GetStop(id structs.StopID) (structs.Stop, bool) {
	stop, ok := self.stops[id]
	return stop, ok
}
func (self *TransitGraph) GetStopGeom(id structs.StopID) orb.Point {
	return self.stops[id].Loc()
}

// Stop ids in ascending order. Do not modify the returned array.
func (self *TransitGraph) StopIDs() Array[structs.StopID] {
	return self.stop_ids
}

// Calls the callback for every stop in ascending id order.
func (self *TransitGraph) ForStops(callback func(structs.Stop)) {
	for _, id := range self.stop_ids {
		callback(self.stops[id])
	}
}

// Calls the callback for every scheduled connection leaving the stop, in
// ascending order of the target stop.
func (self *TransitGraph) ForConnections(stop structs.StopID, callback func(structs.StopID, structs.Connection)) {
	row := self.connections[stop]
	for _, other := range self.adjacency[stop] {
		callback(other, row[other])
	}
}

func (self *TransitGraph) GetConnection(from, to structs.StopID) (structs.Connection, bool) {
	row, ok := self.connections[from]
	if !ok {
		return structs.Connection{}, false
	}
	conn, ok := row[to]
	return conn, ok
}

// Bounding box of all stops in planar km.
func (self *TransitGraph) Bound() orb.Bound {
	if len(self.stop_ids) == 0 {
		return orb.Bound{}
	}
	bound := self.GetStopGeom(self.stop_ids[0]).Bound()
	for _, id := range self.stop_ids[1:] {
		bound = bound.Extend(self.GetStopGeom(id))
	}
	return bound
}
