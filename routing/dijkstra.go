package routing

import (
	"github.com/ttpr0/netex-routing/algorithm"
	"github.com/ttpr0/netex-routing/graph"
	. "github.com/ttpr0/netex-routing/util"
)

type Dijkstra struct {
	graph    graph.IGraph
	start_id int32
	end_id   int32
	flags    Flags[algorithm.DistFlag]
	found    bool
}

func NewDijkstra(g graph.IGraph, start, end int32) *Dijkstra {
	return &Dijkstra{
		graph:    g,
		start_id: start,
		end_id:   end,
		flags:    NewFlags(int32(g.NodeCount()), algorithm.NewDistFlag()),
	}
}

func (self *Dijkstra) CalcShortestPath() bool {
	self.flags.Reset()
	starts := Array[Tuple[int32, int32]]{MakeTuple(self.start_id, int32(0))}
	self.found = algorithm.CalcDijkstraToTarget(self.graph, starts, self.flags, algorithm.MAX_DIST, self.end_id)
	return self.found
}

func (self *Dijkstra) GetShortestPath() Path {
	if !self.found {
		return NewPath(self.graph, self.start_id, nil, algorithm.MAX_DIST)
	}
	edges := _ForwardEdges(self.graph, &self.flags, self.start_id, self.end_id)
	return NewPath(self.graph, self.start_id, edges, self.flags.Get(self.end_id).Dist)
}
