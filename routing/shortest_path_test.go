package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttpr0/netex-routing/graph"
	"github.com/ttpr0/netex-routing/timetable"
	. "github.com/ttpr0/netex-routing/util"
)

func hms(h, m int32) timetable.TimeOfDay {
	return timetable.TimeOfDay(h*3600 + m*60)
}

func _Stop(stop int32, arrival, departure timetable.TimeOfDay) timetable.Passing {
	p := timetable.Passing{Stop: stop}
	if arrival >= 0 {
		p.Arrival = Some(arrival)
	}
	if departure >= 0 {
		p.Departure = Some(departure)
	}
	return p
}

// Stations A, B, C, D, E.
//
//	j1: A 08:00 -> B 08:10
//	j2: B 08:15 -> C 08:40
//	j3: A 08:05 -> C 08:50 (direct but slower)
//	j4: C 09:00 -> D 09:20
//	E is never served.
func _TestGraph() *graph.ConnectionGraph {
	registry := timetable.NewStationRegistry(5)
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		registry.Add(name)
	}
	journeys := List[*timetable.Journey]{
		{Passings: List[timetable.Passing]{_Stop(0, -1, hms(8, 0)), _Stop(1, hms(8, 10), -1)}},
		{Passings: List[timetable.Passing]{_Stop(1, -1, hms(8, 15)), _Stop(2, hms(8, 40), -1)}},
		{Passings: List[timetable.Passing]{_Stop(0, -1, hms(8, 5)), _Stop(2, hms(8, 50), -1)}},
		{Passings: List[timetable.Passing]{_Stop(2, -1, hms(9, 0)), _Stop(3, hms(9, 20), -1)}},
	}
	return graph.BuildConnectionGraphFromJourneys(registry, func(yield func(*timetable.Journey) bool) {
		for _, j := range journeys {
			if !yield(j) {
				return
			}
		}
	})
}

func TestEarliestArrivalEqualsClockTime(t *testing.T) {
	g := _TestGraph()
	a := g.ResolveStation("A").Value
	c := g.ResolveStation("C").Value
	d := g.ResolveStation("D").Value

	dists := EarliestArrivals(g, a, 0)

	// A 08:00 -> B 08:10, transfer, B 08:15 -> C 08:40
	assert.Equal(t, int32(hms(8, 40)), dists[c.Final])
	assert.Equal(t, int32(hms(9, 20)), dists[d.Final])

	// leaving after 08:01 only the direct trip is left
	dists = EarliestArrivals(g, a, hms(8, 1))
	assert.Equal(t, int32(hms(8, 50)), dists[c.Final])
	assert.NotContains(t, dists, g.ResolveStation("B").Value.Final)
}

func TestShortestPathsFromInit(t *testing.T) {
	g := _TestGraph()
	a := g.ResolveStation("A").Value
	b := g.ResolveStation("B").Value
	c := g.ResolveStation("C").Value
	e := g.ResolveStation("E").Value

	dists := ShortestPaths(g, a.Init, None[int32]())

	// init edges are free, distances are travel durations
	assert.Equal(t, int32(0), dists[a.Init])
	assert.Equal(t, int32(600), dists[b.Final])
	assert.Equal(t, int32(2400), dists[c.Final])

	// unreachable vertices are absent
	assert.NotContains(t, dists, e.Init)
	assert.NotContains(t, dists, e.Final)
	for id, dist := range dists {
		assert.GreaterOrEqual(t, dist, int32(0), "vertex %v", id)
	}
}

func TestShortestPathsWithTarget(t *testing.T) {
	g := _TestGraph()
	a := g.ResolveStation("A").Value
	b := g.ResolveStation("B").Value
	d := g.ResolveStation("D").Value

	dists := ShortestPaths(g, a.Init, Some(b.Final))
	assert.Equal(t, int32(600), dists[b.Final])
	assert.NotContains(t, dists, d.Final)
}

func TestPointToPointAgree(t *testing.T) {
	g := _TestGraph()
	names := []string{"A", "B", "C", "D", "E"}

	for _, from := range names {
		for _, to := range names {
			s := g.ResolveStation(from).Value
			e := g.ResolveStation(to).Value
			all := ShortestPaths(g, s.Init, None[int32]())
			want, reachable := all[e.Final]

			solvers := map[string]IShortestPath{
				"dijkstra": NewDijkstra(g, s.Init, e.Final),
				"astar":    NewAStar(g, s.Init, e.Final, nil),
				"bidirect": NewBidirectDijkstra(g, s.Init, e.Final, 100000),
			}
			for name, solver := range solvers {
				found := solver.CalcShortestPath()
				require.Equal(t, reachable, found, "%v %v -> %v", name, from, to)
				if !found {
					continue
				}
				path := solver.GetShortestPath()
				assert.Equal(t, want, path.Length(), "%v %v -> %v", name, from, to)

				// the edges form a connected walk from start to end with the reported length
				vertices := path.GetVertices()
				assert.Equal(t, s.Init, vertices[0])
				assert.Equal(t, e.Final, vertices.Last())
				sum := int32(0)
				for _, edge := range path.GetEdges() {
					sum += g.GetEdge(edge).Weight
				}
				assert.Equal(t, want, sum, "%v %v -> %v", name, from, to)
			}
		}
	}
}

func TestBidirectMaxRange(t *testing.T) {
	g := _TestGraph()
	a := g.ResolveStation("A").Value
	d := g.ResolveStation("D").Value

	// A 08:05 -> D 09:20 takes 75 minutes, each side only searches 30
	solver := NewBidirectDijkstra(g, a.Init, d.Final, 1800)
	assert.False(t, solver.CalcShortestPath())

	solver = NewBidirectDijkstra(g, a.Init, d.Final, 3600)
	assert.True(t, solver.CalcShortestPath())
	assert.Equal(t, int32(4500), solver.GetShortestPath().Length())
}

func TestStationArrivals(t *testing.T) {
	g := _TestGraph()
	a := g.ResolveStation("A").Value

	arrivals := StationArrivals(g, EarliestArrivals(g, a, 0), Some(a.Station))
	names := NewList[string](3)
	for _, arrival := range arrivals {
		names.Add(arrival.Name)
	}
	assert.Equal(t, List[string]{"B", "C", "D"}, names)
	assert.Equal(t, int32(hms(8, 10)), arrivals[0].Value)
}
