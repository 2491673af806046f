package algorithm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ttpr0/netex-routing/graph"
	"github.com/ttpr0/netex-routing/timetable"
	. "github.com/ttpr0/netex-routing/util"
)

// A line A -> B -> C with departures at 08:00 and 09:00 from A.
func _TestGraph() *graph.ConnectionGraph {
	registry := timetable.NewStationRegistry(3)
	registry.Add("A")
	registry.Add("B")
	registry.Add("C")
	t := func(h, m int32) Optional[timetable.TimeOfDay] {
		return Some(timetable.TimeOfDay(h*3600 + m*60))
	}
	journeys := List[*timetable.Journey]{
		{Passings: List[timetable.Passing]{{Stop: 0, Departure: t(8, 0)}, {Stop: 1, Arrival: t(8, 10), Departure: t(8, 11)}, {Stop: 2, Arrival: t(8, 30)}}},
		{Passings: List[timetable.Passing]{{Stop: 0, Departure: t(9, 0)}, {Stop: 1, Arrival: t(9, 10), Departure: t(9, 11)}, {Stop: 2, Arrival: t(9, 30)}}},
	}
	return graph.BuildConnectionGraphFromJourneys(registry, func(yield func(*timetable.Journey) bool) {
		for _, j := range journeys {
			if !yield(j) {
				return
			}
		}
	})
}

func TestRangeDijkstra(t *testing.T) {
	g := _TestGraph()
	a := g.ResolveStation("A").Value
	c := g.ResolveStation("C").Value

	flags := NewFlags(int32(g.NodeCount()), NewDistFlag())
	CalcRangeDijkstra(g, Array[Tuple[int32, int32]]{MakeTuple(a.Init, int32(0))}, flags, MAX_DIST)

	// the fastest trip from A to C takes 30 minutes
	assert.Equal(t, int32(1800), flags.Get(c.Final).Dist)
	assert.True(t, flags.Get(c.Final).Visited)
	assert.Equal(t, int32(-1), flags.Get(a.Init).PrevEdge)
}

func TestRangeDijkstraMaxRange(t *testing.T) {
	g := _TestGraph()
	a := g.ResolveStation("A").Value
	b := g.ResolveStation("B").Value
	c := g.ResolveStation("C").Value

	flags := NewFlags(int32(g.NodeCount()), NewDistFlag())
	CalcRangeDijkstra(g, Array[Tuple[int32, int32]]{MakeTuple(a.Init, int32(0))}, flags, 900)

	assert.Equal(t, int32(600), flags.Get(b.Final).Dist)
	assert.Equal(t, MAX_DIST, flags.Get(c.Final).Dist)
}

func TestDijkstraToTarget(t *testing.T) {
	g := _TestGraph()
	a := g.ResolveStation("A").Value
	b := g.ResolveStation("B").Value

	flags := NewFlags(int32(g.NodeCount()), NewDistFlag())
	found := CalcDijkstraToTarget(g, Array[Tuple[int32, int32]]{MakeTuple(a.Init, int32(0))}, flags, MAX_DIST, b.Final)
	assert.True(t, found)
	assert.Equal(t, int32(600), flags.Get(b.Final).Dist)

	// an unreachable target
	flags.Reset()
	found = CalcDijkstraToTarget(g, Array[Tuple[int32, int32]]{MakeTuple(b.Final, int32(0))}, flags, MAX_DIST, a.Init)
	assert.False(t, found)
}

func TestMultipleStarts(t *testing.T) {
	g := _TestGraph()
	a := g.ResolveStation("A").Value
	c := g.ResolveStation("C").Value
	dep_8 := a.Final + 1
	dep_9 := a.Final + 2

	// start vertices carry their clock time
	flags := NewFlags(int32(g.NodeCount()), NewDistFlag())
	starts := Array[Tuple[int32, int32]]{MakeTuple(dep_9, int32(9*3600)), MakeTuple(dep_8, int32(8*3600))}
	CalcRangeDijkstra(g, starts, flags, MAX_DIST)

	assert.Equal(t, int32(8*3600+30*60), flags.Get(c.Final).Dist)
}
