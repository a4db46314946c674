package routing

import (
	"github.com/paulmach/orb"
	"github.com/ttpr0/heat-transit/geo"
	"github.com/ttpr0/heat-transit/graph"
	"github.com/ttpr0/heat-transit/structs"
	. "github.com/ttpr0/heat-transit/util"
)

type Edge struct {
	To   Position
	Cost structs.TimeCost
}

func WalkingTime(from, to orb.Point, config SearchConfig) structs.TimeCost {
	return structs.OfWalking(geo.Distance(from, to) / config.WalkingSpeed)
}

// Returns all edges leaving cur, reached with accumulated cost.
func Neighbors(g *graph.TransitGraph, config SearchConfig, goal Position, cur Position, cost structs.TimeCost) List[Edge] {
	edges := NewList[Edge](g.StopCount() + 1)
	ForNeighbors(g, config, goal, goal.Loc(g), cur, cur.Loc(g), cost, func(to Position, edge_cost structs.TimeCost) {
		edges.Add(Edge{To: to, Cost: edge_cost})
	})
	return edges
}

// Calls the callback for every edge leaving cur.
//
// Walking edges longer than MaxWalkTime are dropped, and nothing is expanded
// once the accumulated walking time exceeds MaxWalkTime.
func ForNeighbors(g *graph.TransitGraph, config SearchConfig, goal Position, goal_loc orb.Point, cur Position, cur_loc orb.Point, cost structs.TimeCost, callback func(Position, structs.TimeCost)) {
	if cost.WalkTime > config.MaxWalkTime {
		return
	}

	// walk to the goal
	walk := WalkingTime(cur_loc, goal_loc, config)
	if walk.WalkTime <= config.MaxWalkTime {
		callback(goal, walk)
	}

	// walk to every stop
	cur_key := cur.Key()
	for _, id := range g.StopIDs() {
		other := BusStop(id, WALK)
		if other.Key() == cur_key {
			continue
		}
		walk := WalkingTime(cur_loc, g.GetStopGeom(id), config)
		if walk.WalkTime > config.MaxWalkTime {
			continue
		}
		callback(other, walk)
	}

	// ride every connection leaving the stop
	if !cur.IsStop() {
		return
	}
	wait := structs.OfWaiting(config.BoardingWait)
	g.ForConnections(cur.StopID(), func(other structs.StopID, conn structs.Connection) {
		callback(BusStop(other, BUS), structs.OfBus(conn.Time).Add(wait))
	})
}
