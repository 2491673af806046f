package onetomany

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttpr0/netex-routing/algorithm"
	"github.com/ttpr0/netex-routing/graph"
	"github.com/ttpr0/netex-routing/timetable"
	. "github.com/ttpr0/netex-routing/util"
)

func hms(h, m int32) timetable.TimeOfDay {
	return timetable.TimeOfDay(h*3600 + m*60)
}

// A 08:00 -> B 08:10 -> C 08:30, and B 09:00 -> A 09:10.
func _TestGraph() *graph.ConnectionGraph {
	registry := timetable.NewStationRegistry(3)
	registry.Add("A")
	registry.Add("B")
	registry.Add("C")
	journeys := List[*timetable.Journey]{
		{Passings: List[timetable.Passing]{
			{Stop: 0, Departure: Some(hms(8, 0))},
			{Stop: 1, Arrival: Some(hms(8, 10)), Departure: Some(hms(8, 10))},
			{Stop: 2, Arrival: Some(hms(8, 30))},
		}},
		{Passings: List[timetable.Passing]{
			{Stop: 1, Departure: Some(hms(9, 0))},
			{Stop: 0, Arrival: Some(hms(9, 10))},
		}},
	}
	return graph.BuildConnectionGraphFromJourneys(registry, func(yield func(*timetable.Journey) bool) {
		for _, j := range journeys {
			if !yield(j) {
				return
			}
		}
	})
}

func TestRangeDijkstraSolverReuse(t *testing.T) {
	g := _TestGraph()
	a := g.ResolveStation("A").Value
	b := g.ResolveStation("B").Value
	c := g.ResolveStation("C").Value

	var factory IOneToMany = NewRangeDijkstra(g, 100000)
	solver := factory.CreateSolver()

	require.NoError(t, solver.CalcDistanceFromStart(Array[Tuple[int32, int32]]{MakeTuple(a.Init, int32(0))}))
	assert.Equal(t, int32(1800), solver.GetDistance(c.Final))

	// a second run must not see distances of the first one
	require.NoError(t, solver.CalcDistanceFromStart(Array[Tuple[int32, int32]]{MakeTuple(c.Init, int32(0))}))
	assert.Equal(t, int32(0), solver.GetDistance(c.Final))
	assert.Equal(t, algorithm.MAX_DIST, solver.GetDistance(b.Final))

	assert.ErrorIs(t, solver.CalcDistanceFromStart(nil), ErrNoStart)
}

func TestEarliestArrivalSolver(t *testing.T) {
	g := _TestGraph()
	a := g.ResolveStation("A").Value
	b := g.ResolveStation("B").Value
	c := g.ResolveStation("C").Value

	solver := NewEarliestArrival(g, hms(7, 0), 2*86400).CreateStationSolver()

	require.NoError(t, solver.CalcFromStation(a))
	arrival, ok := solver.GetArrival(c)
	assert.True(t, ok)
	assert.Equal(t, hms(8, 30), arrival)

	require.NoError(t, solver.CalcFromStation(b))
	arrival, ok = solver.GetArrival(a)
	assert.True(t, ok)
	assert.Equal(t, hms(9, 10), arrival)

	// C is a terminus, nothing leaves it
	require.NoError(t, solver.CalcFromStation(c))
	_, ok = solver.GetArrival(a)
	assert.False(t, ok)

	late := NewEarliestArrival(g, hms(23, 0), 2*86400).CreateSolver()
	assert.ErrorIs(t, late.(*EarliestArrivalSolver).CalcFromStation(a), ErrNoStart)
}
