package structs

import (
	"fmt"
	"math"
)

//*******************************************
// time cost
//*******************************************

// Travel cost split by how the time was spent. Durations are in seconds.
//
// Only Total() takes part in ordering, Transfers is carried along for display.
type TimeCost struct {
	WalkTime  float64 `json:"walk_time"`
	BusTime   float64 `json:"bus_time"`
	WaitTime  float64 `json:"wait_time"`
	Transfers uint32  `json:"transfers"`
}

func WithAll(value float64) TimeCost {
	return TimeCost{
		WalkTime: value,
		BusTime:  value,
		WaitTime: value,
	}
}

func OfWalking(seconds float64) TimeCost {
	return TimeCost{WalkTime: seconds}
}

// A single boarding, counts as one transfer.
func OfBus(seconds float64) TimeCost {
	return TimeCost{BusTime: seconds, Transfers: 1}
}

func OfWaiting(seconds float64) TimeCost {
	return TimeCost{WaitTime: seconds}
}

// Only used as the start value of a min reduction.
func WorstTimeCost() TimeCost {
	return WithAll(math.Inf(1))
}

// Only used as the start value of a max reduction.
func BestTimeCost() TimeCost {
	return WithAll(math.Inf(-1))
}

func (self TimeCost) Total() float64 {
	return self.WalkTime + self.BusTime + self.WaitTime
}

func (self TimeCost) Add(other TimeCost) TimeCost {
	return TimeCost{
		WalkTime:  self.WalkTime + other.WalkTime,
		BusTime:   self.BusTime + other.BusTime,
		WaitTime:  self.WaitTime + other.WaitTime,
		Transfers: self.Transfers + other.Transfers,
	}
}

func (self TimeCost) IsZero() bool {
	return self.Total() == 0
}

// Compares by total. Unordered totals (NaN) compare as equal.
func (self TimeCost) Compare(other TimeCost) int {
	a := self.Total()
	b := other.Total()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (self TimeCost) Less(other TimeCost) bool {
	return self.Compare(other) < 0
}

// Field-wise minimum, used to find the per channel lower bound over many costs.
func (self TimeCost) Min(other TimeCost) TimeCost {
	return TimeCost{
		WalkTime:  math.Min(self.WalkTime, other.WalkTime),
		BusTime:   math.Min(self.BusTime, other.BusTime),
		WaitTime:  math.Min(self.WaitTime, other.WaitTime),
		Transfers: min(self.Transfers, other.Transfers),
	}
}

// Field-wise maximum.
func (self TimeCost) Max(other TimeCost) TimeCost {
	return TimeCost{
		WalkTime:  math.Max(self.WalkTime, other.WalkTime),
		BusTime:   math.Max(self.BusTime, other.BusTime),
		WaitTime:  math.Max(self.WaitTime, other.WaitTime),
		Transfers: max(self.Transfers, other.Transfers),
	}
}

func (self TimeCost) String() string {
	return fmt.Sprintf("%.0fs (walk %.0fs, bus %.0fs, wait %.0fs, %d transfers)",
		self.Total(), self.WalkTime, self.BusTime, self.WaitTime, self.Transfers)
}
