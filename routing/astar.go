package routing

import (
	"github.com/ttpr0/netex-routing/algorithm"
	"github.com/ttpr0/netex-routing/graph"
	. "github.com/ttpr0/netex-routing/util"
)

// Lower bound of the remaining distance from a vertex to the target.
// Must never overestimate.
type Heuristic func(node int32) int32

func ZeroHeuristic(node int32) int32 {
	return 0
}

type AStar struct {
	graph     graph.IGraph
	start_id  int32
	end_id    int32
	heuristic Heuristic
	flags     Flags[algorithm.DistFlag]
	found     bool
}

// heuristic may be nil, in that case the search equals Dijkstra.
func NewAStar(g graph.IGraph, start, end int32, heuristic Heuristic) *AStar {
	if heuristic == nil {
		heuristic = ZeroHeuristic
	}
	return &AStar{
		graph:     g,
		start_id:  start,
		end_id:    end,
		heuristic: heuristic,
		flags:     NewFlags(int32(g.NodeCount()), algorithm.NewDistFlag()),
	}
}

func (self *AStar) CalcShortestPath() bool {
	self.flags.Reset()
	self.found = false

	heap := NewPriorityQueue[int32, int32](100)
	explorer := self.graph.GetGraphExplorer()

	start_flag := self.flags.Get(self.start_id)
	start_flag.Dist = 0
	heap.Enqueue(self.start_id, self.heuristic(self.start_id))

	for {
		curr_id, ok := heap.Dequeue()
		if !ok {
			return false
		}
		curr_flag := self.flags.Get(curr_id)
		if curr_flag.Visited {
			continue
		}
		curr_flag.Visited = true
		if curr_id == self.end_id {
			self.found = true
			return true
		}
		explorer.ForAdjacentEdges(curr_id, graph.FORWARD, graph.ADJACENT_ALL, func(ref graph.EdgeRef) {
			other_id := ref.OtherID
			other_flag := self.flags.Get(other_id)
			if other_flag.Visited {
				return
			}
			new_length := curr_flag.Dist + explorer.GetEdgeWeight(ref)
			if other_flag.Dist > new_length {
				other_flag.Dist = new_length
				other_flag.PrevEdge = ref.EdgeID
				heap.Enqueue(other_id, new_length+self.heuristic(other_id))
			}
		})
	}
}

func (self *AStar) GetShortestPath() Path {
	if !self.found {
		return NewPath(self.graph, self.start_id, nil, algorithm.MAX_DIST)
	}
	edges := _ForwardEdges(self.graph, &self.flags, self.start_id, self.end_id)
	return NewPath(self.graph, self.start_id, edges, self.flags.Get(self.end_id).Dist)
}
