package graph

import (
	"time"

	"github.com/ttpr0/netex-routing/timetable"
	. "github.com/ttpr0/netex-routing/util"
)

//*******************************************
// graph interfaces
//******************************************

type IGraph interface {
	GetGraphExplorer() IGraphExplorer
	NodeCount() int
	EdgeCount() int
	IsNode(node int32) bool
	GetEdge(edge int32) Edge
}

// not thread safe, use only one instance per thread
type IGraphExplorer interface {
	// Iterates through the adjacency of a node calling the callback for every edge.
	//
	// direction tells the traversel direction (FORWARD means outgoing edges, BACKWARD ingoing edges)
	ForAdjacentEdges(node int32, dir Direction, typ Adjacency, callback func(EdgeRef))
	GetEdgeWeight(edge EdgeRef) int32
	GetOtherNode(edge EdgeRef, node int32) int32
}

//*******************************************
// connection graph
//******************************************

var _ IGraph = &ConnectionGraph{}

// Time-expanded graph of a single service date. Immutable once built.
type ConnectionGraph struct {
	date     time.Time
	stations *timetable.StationRegistry
	edges    Array[Edge]
	topology _AdjacencyArray
	index    *StationIndex
}

func (self *ConnectionGraph) GetGraphExplorer() IGraphExplorer {
	return &ConnectionGraphExplorer{
		graph:    self,
		accessor: self.topology.GetAccessor(),
	}
}
func (self *ConnectionGraph) NodeCount() int {
	return self.topology.node_refs.Length()
}
func (self *ConnectionGraph) EdgeCount() int {
	return self.edges.Length()
}
func (self *ConnectionGraph) IsNode(node int32) bool {
	return node >= 0 && node < int32(self.NodeCount())
}
func (self *ConnectionGraph) GetEdge(edge int32) Edge {
	return self.edges[edge]
}
func (self *ConnectionGraph) GetNodeDegree(node int32, dir Direction) int32 {
	return self.topology.GetDegree(node, dir)
}

// Returns the edge from node_a to node_b if present.
func (self *ConnectionGraph) FindEdge(node_a, node_b int32) Optional[Edge] {
	accessor := self.topology.GetAccessor()
	accessor.SetBaseNode(node_a, true)
	for accessor.Next() {
		if accessor.GetOtherID() == node_b {
			return Some(self.edges[accessor.GetEdgeID()])
		}
	}
	return None[Edge]()
}

func (self *ConnectionGraph) Date() time.Time {
	return self.date
}
func (self *ConnectionGraph) Stations() *timetable.StationRegistry {
	return self.stations
}
func (self *ConnectionGraph) GetIndex() *StationIndex {
	return self.index
}
func (self *ConnectionGraph) ResolveStation(name string) Optional[StationHandle] {
	return self.index.ResolveStation(name)
}
func (self *ConnectionGraph) StopByID(id int32) Optional[StopInfo] {
	return self.index.StopByID(id)
}
func (self *ConnectionGraph) TerminalByID(id int32) Optional[string] {
	return self.index.TerminalByID(id)
}

// Returns the time vertices of station at or after depart_after, each paired with its
// time of day. Used as start set to get clock times instead of durations.
func (self *ConnectionGraph) DepartureStarts(station StationHandle, depart_after timetable.TimeOfDay) Array[Tuple[int32, int32]] {
	_, end := self.index.GetStationBlock(station.Station)
	starts := NewList[Tuple[int32, int32]](int(end - station.Final))
	for id := station.Final + 1; id < end; id++ {
		t := self.index.vertex_times[id]
		if t < depart_after {
			continue
		}
		starts.Add(MakeTuple(id, int32(t)))
	}
	return Array[Tuple[int32, int32]](starts)
}

//*******************************************
// connection graph explorer
//******************************************

type ConnectionGraphExplorer struct {
	graph    *ConnectionGraph
	accessor _AdjArrayAccessor
}

func (self *ConnectionGraphExplorer) ForAdjacentEdges(node int32, direction Direction, typ Adjacency, callback func(EdgeRef)) {
	if typ == ADJACENT_ALL || typ == ADJACENT_EDGES {
		self.accessor.SetBaseNode(node, direction == FORWARD)
		for self.accessor.Next() {
			callback(EdgeRef{
				EdgeID:  self.accessor.GetEdgeID(),
				OtherID: self.accessor.GetOtherID(),
			})
		}
	} else {
		panic("Adjacency-type not implemented for this graph.")
	}
}
func (self *ConnectionGraphExplorer) GetEdgeWeight(edge EdgeRef) int32 {
	return self.graph.edges[edge.EdgeID].Weight
}
func (self *ConnectionGraphExplorer) GetOtherNode(edge EdgeRef, node int32) int32 {
	e := self.graph.edges[edge.EdgeID]
	if node == e.NodeA {
		return e.NodeB
	}
	if node == e.NodeB {
		return e.NodeA
	}
	return -1
}
