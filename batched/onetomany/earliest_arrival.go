package onetomany

import (
	"github.com/ttpr0/netex-routing/algorithm"
	"github.com/ttpr0/netex-routing/graph"
	"github.com/ttpr0/netex-routing/timetable"
	. "github.com/ttpr0/netex-routing/util"
)

// Computes earliest arrival clock times from a station. Distances of final
// vertices are arrival times in seconds since midnight.
func NewEarliestArrival(g *graph.ConnectionGraph, depart_after timetable.TimeOfDay, max_range int32) *EarliestArrival {
	return &EarliestArrival{
		g:            g,
		depart_after: depart_after,
		max_range:    max_range,
	}
}

type EarliestArrival struct {
	g            *graph.ConnectionGraph
	depart_after timetable.TimeOfDay
	max_range    int32
}

func (self *EarliestArrival) CreateSolver() ISolver {
	return self.CreateStationSolver()
}

func (self *EarliestArrival) CreateStationSolver() *EarliestArrivalSolver {
	return &EarliestArrivalSolver{
		RangeDijkstraSolver: RangeDijkstraSolver{
			g:          self.g,
			node_flags: NewFlags(int32(self.g.NodeCount()), algorithm.NewDistFlag()),
			max_range:  self.max_range,
		},
		g:            self.g,
		depart_after: self.depart_after,
	}
}

type EarliestArrivalSolver struct {
	RangeDijkstraSolver
	g            *graph.ConnectionGraph
	depart_after timetable.TimeOfDay
}

// Runs the search from all departures of station at or after the configured time.
func (self *EarliestArrivalSolver) CalcFromStation(station graph.StationHandle) error {
	return self.CalcDistanceFromStart(self.g.DepartureStarts(station, self.depart_after))
}

// Returns the arrival time at station, false if it can not be reached.
func (self *EarliestArrivalSolver) GetArrival(station graph.StationHandle) (timetable.TimeOfDay, bool) {
	dist := self.GetDistance(station.Final)
	if dist == algorithm.MAX_DIST {
		return 0, false
	}
	return timetable.TimeOfDay(dist), true
}
