package routing

import (
	"golang.org/x/exp/slices"

	"github.com/ttpr0/netex-routing/algorithm"
	"github.com/ttpr0/netex-routing/graph"
	"github.com/ttpr0/netex-routing/timetable"
	. "github.com/ttpr0/netex-routing/util"
)

type IShortestPath interface {
	CalcShortestPath() bool
	GetShortestPath() Path
}

// Computes the distance from source to every reachable vertex. With a target the
// search ends once the target is settled. Only settled vertices are returned.
func ShortestPaths(g graph.IGraph, source int32, target Optional[int32]) Dict[int32, int32] {
	starts := Array[Tuple[int32, int32]]{MakeTuple(source, int32(0))}
	return _RunDijkstra(g, starts, target)
}

// Computes earliest arrival clock times (seconds since midnight) at every vertex for
// departures from station at or after depart_after.
func EarliestArrivals(g *graph.ConnectionGraph, station graph.StationHandle, depart_after timetable.TimeOfDay) Dict[int32, int32] {
	starts := g.DepartureStarts(station, depart_after)
	return _RunDijkstra(g, starts, None[int32]())
}

func _RunDijkstra(g graph.IGraph, starts Array[Tuple[int32, int32]], target Optional[int32]) Dict[int32, int32] {
	flags := NewFlags(int32(g.NodeCount()), algorithm.NewDistFlag())
	if target.HasValue() {
		algorithm.CalcDijkstraToTarget(g, starts, flags, algorithm.MAX_DIST, target.Value)
	} else {
		algorithm.CalcRangeDijkstra(g, starts, flags, algorithm.MAX_DIST)
	}

	dists := NewDict[int32, int32](100)
	for i := int32(0); i < int32(g.NodeCount()); i++ {
		if !flags.IsTouched(i) {
			continue
		}
		flag := flags.Get(i)
		if flag.Visited {
			dists[i] = flag.Dist
		}
	}
	return dists
}

//*******************************************
// station results
//*******************************************

type StationArrival struct {
	Station int32
	Name    string
	// distance at the final vertex of the station
	Value int32
}

// Collects the distances of final vertices, ordered by value then name.
// The station given as exclude is skipped.
func StationArrivals(g *graph.ConnectionGraph, dists Dict[int32, int32], exclude Optional[int32]) List[StationArrival] {
	arrivals := NewList[StationArrival](dists.Length() / 4)
	for id, dist := range dists {
		info := g.StopByID(id)
		if !info.HasValue() || info.Value.Kind != graph.FINAL {
			continue
		}
		if exclude.HasValue() && exclude.Value == info.Value.Station {
			continue
		}
		arrivals.Add(StationArrival{
			Station: info.Value.Station,
			Name:    info.Value.Name,
			Value:   dist,
		})
	}
	slices.SortFunc(arrivals, func(a, b StationArrival) int {
		if a.Value != b.Value {
			return int(a.Value) - int(b.Value)
		}
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})
	return arrivals
}
