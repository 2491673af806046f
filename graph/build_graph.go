package graph

import (
	"time"

	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"

	"github.com/ttpr0/netex-routing/timetable"
	. "github.com/ttpr0/netex-routing/util"
)

//*******************************************
// build connection graph
//*******************************************

// Builds the time-expanded graph of all journeys running on date.
func BuildConnectionGraph(feed *timetable.Feed, date time.Time) *ConnectionGraph {
	date = timetable.TruncateDate(date)
	g := BuildConnectionGraphFromJourneys(feed.Stations, feed.ValidJourneys(date))
	g.date = date
	return g
}

// Builds the graph from an already filtered sequence of journeys. Passings
// must reference stations of the registry.
func BuildConnectionGraphFromJourneys(stations *timetable.StationRegistry, journeys func(yield func(*timetable.Journey) bool)) *ConnectionGraph {
	valid := NewList[*timetable.Journey](1000)
	journeys(func(journey *timetable.Journey) bool {
		valid.Add(journey)
		return true
	})

	station_times := _CollectTimes(stations.Count(), valid)
	index := _NumberVertices(stations, station_times)
	vertex_count := index.VertexCount()

	builder := _NewEdgeBuilder(int(vertex_count))
	skipped := _AddTravelEdges(&builder, index, station_times, valid)
	_AddStationEdges(&builder, index, station_times)

	topology := _NewAdjacencyList(int(vertex_count))
	for id, edge := range builder.edges {
		topology.AddEdgeEntries(edge.NodeA, edge.NodeB, int32(id))
	}

	slog.Info("created connection graph", "journeys", valid.Length(), "vertices", vertex_count, "edges", builder.edges.Length())
	slog.Debug("skipped non-forward travel pairs", "count", skipped)

	return &ConnectionGraph{
		stations: stations,
		edges:    Array[Edge](builder.edges),
		topology: _AdjacencyListToArray(&topology),
		index:    index,
	}
}

// Collects the distinct arrival and departure times per station in ascending order.
func _CollectTimes(station_count int, journeys List[*timetable.Journey]) Array[List[timetable.TimeOfDay]] {
	station_times := NewArray[List[timetable.TimeOfDay]](station_count)
	for _, journey := range journeys {
		for _, passing := range journey.Passings {
			if passing.Arrival.HasValue() {
				station_times[passing.Stop].Add(passing.Arrival.Value)
			}
			if passing.Departure.HasValue() {
				station_times[passing.Stop].Add(passing.Departure.Value)
			}
		}
	}
	for i, times := range station_times {
		slices.Sort(times)
		station_times[i] = slices.Compact(times)
	}
	return station_times
}

// Assigns vertex ids in registry order: init, final, then one vertex per time.
func _NumberVertices(stations *timetable.StationRegistry, station_times Array[List[timetable.TimeOfDay]]) *StationIndex {
	firsts := NewArray[int32](station_times.Length())
	next_id := int32(0)
	for i, times := range station_times {
		firsts[i] = next_id
		next_id += 2 + int32(times.Length())
	}

	vertex_times := NewArray[timetable.TimeOfDay](int(next_id))
	for i, times := range station_times {
		copy(vertex_times[firsts[i]+2:], times)
	}
	return &StationIndex{
		stations:     stations,
		firsts:       firsts,
		vertex_times: vertex_times,
	}
}

func _TimeVertex(index *StationIndex, station_times Array[List[timetable.TimeOfDay]], station int32, t timetable.TimeOfDay) int32 {
	pos, found := slices.BinarySearch(station_times[station], t)
	if !found {
		panic("time not collected for station")
	}
	return index.firsts[station] + 2 + int32(pos)
}

// Adds an edge for every forward pair of consecutive passings. Returns the number of skipped pairs.
func _AddTravelEdges(builder *_EdgeBuilder, index *StationIndex, station_times Array[List[timetable.TimeOfDay]], journeys List[*timetable.Journey]) int {
	skipped := 0
	for _, journey := range journeys {
		for i := 0; i+1 < journey.Passings.Length(); i++ {
			from := journey.Passings[i]
			to := journey.Passings[i+1]
			if !from.Departure.HasValue() || !to.Arrival.HasValue() {
				continue
			}
			if to.Arrival.Value <= from.Departure.Value {
				skipped += 1
				continue
			}
			node_a := _TimeVertex(index, station_times, from.Stop, from.Departure.Value)
			node_b := _TimeVertex(index, station_times, to.Stop, to.Arrival.Value)
			builder.SetEdge(node_a, node_b, int32(to.Arrival.Value-from.Departure.Value))
		}
	}
	return skipped
}

// Adds the wait chain and the init/final fans of every station.
func _AddStationEdges(builder *_EdgeBuilder, index *StationIndex, station_times Array[List[timetable.TimeOfDay]]) {
	for i, times := range station_times {
		init_id := index.firsts[i]
		fin_id := init_id + 1
		for j, t := range times {
			node := init_id + 2 + int32(j)
			if j > 0 {
				builder.SetEdge(node-1, node, int32(t-times[j-1]))
			}
			builder.SetEdge(init_id, node, 0)
			builder.SetEdge(node, fin_id, 0)
		}
	}
}

//*******************************************
// edge builder
//*******************************************

// Collects edges, a repeated (source, target) pair overwrites the weight of the earlier edge.
type _EdgeBuilder struct {
	edges List[Edge]
	pairs Dict[Tuple[int32, int32], int32]
}

func _NewEdgeBuilder(vertex_count int) _EdgeBuilder {
	return _EdgeBuilder{
		edges: NewList[Edge](3 * vertex_count),
		pairs: NewDict[Tuple[int32, int32], int32](3 * vertex_count),
	}
}

func (self *_EdgeBuilder) SetEdge(node_a, node_b, weight int32) {
	key := MakeTuple(node_a, node_b)
	if id, ok := self.pairs[key]; ok {
		self.edges[id].Weight = weight
		return
	}
	self.pairs[key] = int32(self.edges.Length())
	self.edges.Add(Edge{NodeA: node_a, NodeB: node_b, Weight: weight})
}
