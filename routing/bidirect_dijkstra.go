package routing

import (
	"github.com/ttpr0/netex-routing/algorithm"
	"github.com/ttpr0/netex-routing/graph"
	. "github.com/ttpr0/netex-routing/util"
)

// Searches forward from start and backward from end until the two frontiers
// can no longer improve the best meeting point. Each side stops at max_range.
type BidirectDijkstra struct {
	graph     graph.IGraph
	start_id  int32
	end_id    int32
	max_range int32
	fwd_flags Flags[algorithm.DistFlag]
	bwd_flags Flags[algorithm.DistFlag]
	mid_id    int32
	length    int32
}

func NewBidirectDijkstra(g graph.IGraph, start, end int32, max_range int32) *BidirectDijkstra {
	return &BidirectDijkstra{
		graph:     g,
		start_id:  start,
		end_id:    end,
		max_range: max_range,
		fwd_flags: NewFlags(int32(g.NodeCount()), algorithm.NewDistFlag()),
		bwd_flags: NewFlags(int32(g.NodeCount()), algorithm.NewDistFlag()),
		mid_id:    -1,
		length:    algorithm.MAX_DIST,
	}
}

func (self *BidirectDijkstra) CalcShortestPath() bool {
	self.fwd_flags.Reset()
	self.bwd_flags.Reset()
	self.mid_id = -1
	self.length = algorithm.MAX_DIST

	fwd_heap := NewPriorityQueue[int32, int32](100)
	bwd_heap := NewPriorityQueue[int32, int32](100)
	fwd_explorer := self.graph.GetGraphExplorer()
	bwd_explorer := self.graph.GetGraphExplorer()

	self.fwd_flags.Get(self.start_id).Dist = 0
	fwd_heap.Enqueue(self.start_id, 0)
	self.bwd_flags.Get(self.end_id).Dist = 0
	bwd_heap.Enqueue(self.end_id, 0)
	if self.start_id == self.end_id {
		self.mid_id = self.start_id
		self.length = 0
		return true
	}

	for {
		_, fwd_top, fwd_ok := fwd_heap.Peek()
		_, bwd_top, bwd_ok := bwd_heap.Peek()
		if !fwd_ok || !bwd_ok {
			break
		}
		if self.length != algorithm.MAX_DIST && fwd_top+bwd_top >= self.length {
			break
		}
		if fwd_top <= bwd_top {
			self._Step(&fwd_heap, fwd_explorer, self.fwd_flags, self.bwd_flags, graph.FORWARD)
		} else {
			self._Step(&bwd_heap, bwd_explorer, self.bwd_flags, self.fwd_flags, graph.BACKWARD)
		}
	}
	return self.mid_id != -1
}

func (self *BidirectDijkstra) _Step(heap *PriorityQueue[int32, int32], explorer graph.IGraphExplorer, flags, other_flags Flags[algorithm.DistFlag], dir graph.Direction) {
	curr_id, _ := heap.Dequeue()
	curr_flag := flags.Get(curr_id)
	if curr_flag.Visited {
		return
	}
	curr_flag.Visited = true
	explorer.ForAdjacentEdges(curr_id, dir, graph.ADJACENT_ALL, func(ref graph.EdgeRef) {
		other_id := ref.OtherID
		other_flag := flags.Get(other_id)
		if other_flag.Visited {
			return
		}
		new_length := curr_flag.Dist + explorer.GetEdgeWeight(ref)
		if new_length > self.max_range {
			return
		}
		if other_flag.Dist > new_length {
			other_flag.Dist = new_length
			other_flag.PrevEdge = ref.EdgeID
			heap.Enqueue(other_id, new_length)
		}
		if other_flags.IsTouched(other_id) {
			meeting := other_flags.Get(other_id).Dist
			if meeting != algorithm.MAX_DIST && other_flag.Dist+meeting < self.length {
				self.length = other_flag.Dist + meeting
				self.mid_id = other_id
			}
		}
	})
}

func (self *BidirectDijkstra) GetShortestPath() Path {
	if self.mid_id == -1 {
		return NewPath(self.graph, self.start_id, nil, algorithm.MAX_DIST)
	}
	edges := _ForwardEdges(self.graph, &self.fwd_flags, self.start_id, self.mid_id)
	edges = append(edges, _BackwardEdges(self.graph, &self.bwd_flags, self.mid_id, self.end_id)...)
	return NewPath(self.graph, self.start_id, edges, self.length)
}
