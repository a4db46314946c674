package routing

import (
	"github.com/paulmach/orb"
	"github.com/ttpr0/heat-transit/geo"
	"github.com/ttpr0/heat-transit/graph"
	"github.com/ttpr0/heat-transit/structs"
	. "github.com/ttpr0/heat-transit/util"
)

//*******************************************
// path
//*******************************************

type PathStep struct {
	Position Position `json:"position"`
	// cost of the edge leading to this step, zero for the first step
	Cost structs.TimeCost `json:"cost"`
}

type Path []PathStep

func (self Path) Total() structs.TimeCost {
	total := structs.TimeCost{}
	for _, step := range self {
		total = total.Add(step.Cost)
	}
	return total
}

//*******************************************
// transit a-star
//*******************************************

// One way of reaching a position. A position keeps every label that is not
// dominated on (total, walk time) by another of its labels.
type label_astar struct {
	pos  Position
	cost structs.TimeCost
	edge structs.TimeCost
	// index of the previous label, -1 for the start
	prev int
	dead bool
}

type pq_item struct {
	label int
	loc   orb.Point
}

// a is at least as good as b for every continuation. Unordered (NaN) costs
// count as dominated.
func dominates(a, b structs.TimeCost) bool {
	return !b.Less(a) && !(b.WalkTime < a.WalkTime)
}

// A* towards a fixed goal over walking edges and scheduled connections.
//
// A TransitAStar is immutable once created and can be shared between
// goroutines, every call to CalcShortestPath owns its own queue and flags.
type TransitAStar struct {
	graph    *graph.TransitGraph
	config   SearchConfig
	goal     Position
	goal_loc orb.Point
	cache    structs.RouteCache
}

// cache may be nil.
func NewTransitAStar(g *graph.TransitGraph, config SearchConfig, goal Position, cache structs.RouteCache) *TransitAStar {
	return &TransitAStar{
		graph:    g,
		config:   config,
		goal:     goal,
		goal_loc: goal.Loc(g),
		cache:    cache,
	}
}

func (self *TransitAStar) Goal() Position {
	return self.goal
}

// Estimated remaining cost from pos to the goal.
//
// Cached stops return their exact cost from a previous search. Everything else
// falls back to straight line driving time, which is not a strict lower bound
// when a scheduled connection is faster than driving.
func (self *TransitAStar) Heuristic(pos Position, loc orb.Point) structs.TimeCost {
	if pos.IsStop() {
		if cached, ok := self.cache[pos.StopID()]; ok {
			return cached
		}
	}
	return structs.TimeCost{BusTime: geo.Distance(loc, self.goal_loc) / self.config.DrivingSpeed}
}

// Computes the cheapest path from start to the goal. Returns None if the goal
// can not be reached.
func (self *TransitAStar) CalcShortestPath(start Position) Optional[Path] {
	labels := NewList[label_astar](64)
	flags := NewDict[PositionKey, List[int]](64)
	heap := NewPriorityQueue[pq_item, float64](64)

	goal_key := self.goal.Key()
	start_loc := start.Loc(self.graph)
	labels.Add(label_astar{pos: start, prev: -1})
	flags[start.Key()] = List[int]{0}
	heap.Enqueue(pq_item{0, start_loc}, self.Heuristic(start, start_loc).Total())

	for {
		curr, ok := heap.Dequeue()
		if !ok {
			return None[Path]()
		}
		curr_label := labels[curr.label]
		if curr_label.dead {
			// dominated after it was queued
			continue
		}
		if curr_label.pos.Key() == goal_key {
			return Some(self._BuildPath(labels, curr.label))
		}
		ForNeighbors(self.graph, self.config, self.goal, self.goal_loc, curr_label.pos, curr.loc, curr_label.cost, func(other Position, edge structs.TimeCost) {
			other_key := other.Key()
			new_cost := curr_label.cost.Add(edge)
			live := flags[other_key]
			for _, l := range live {
				if dominates(labels[l].cost, new_cost) {
					return
				}
			}
			kept := live[:0]
			for _, l := range live {
				if dominates(new_cost, labels[l].cost) {
					labels[l].dead = true
				} else {
					kept = append(kept, l)
				}
			}
			index := labels.Length()
			labels.Add(label_astar{
				pos:  other,
				cost: new_cost,
				edge: edge,
				prev: curr.label,
			})
			flags[other_key] = append(kept, index)
			other_loc := other.Loc(self.graph)
			heap.Enqueue(pq_item{index, other_loc}, new_cost.Add(self.Heuristic(other, other_loc)).Total())
		})
	}
}

// Total cost of the cheapest path from start to the goal.
func (self *TransitAStar) CalcShortestPathCost(start Position) Optional[structs.TimeCost] {
	path := self.CalcShortestPath(start)
	if !path.HasValue() {
		return None[structs.TimeCost]()
	}
	return Some(path.Value.Total())
}

func (self *TransitAStar) _BuildPath(labels List[label_astar], end int) Path {
	path := make(Path, 0, 8)
	for curr := end; curr >= 0; curr = labels[curr].prev {
		label := labels[curr]
		path = append(path, PathStep{Position: label.pos, Cost: label.edge})
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
