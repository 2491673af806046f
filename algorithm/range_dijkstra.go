package algorithm

import (
	"math"

	"github.com/ttpr0/netex-routing/graph"
	. "github.com/ttpr0/netex-routing/util"
)

// Distance of vertices not reached.
const MAX_DIST int32 = math.MaxInt32

type DistFlag struct {
	Dist int32
	// edge the vertex was reached by, -1 for start vertices
	PrevEdge int32
	Visited  bool
}

func NewDistFlag() DistFlag {
	return DistFlag{Dist: MAX_DIST, PrevEdge: -1}
}

type PQItem struct {
	item int32
	dist int32
}

// Computes distances from multiple (vertex, initial distance) starts up to max_range.
// node_flags must be reset by the caller.
func CalcRangeDijkstra(g graph.IGraph, starts Array[Tuple[int32, int32]], node_flags Flags[DistFlag], max_range int32) {
	_CalcDijkstra(g, starts, node_flags, max_range, -1)
}

// Same as CalcRangeDijkstra but stops once target is settled. Returns whether target was reached.
func CalcDijkstraToTarget(g graph.IGraph, starts Array[Tuple[int32, int32]], node_flags Flags[DistFlag], max_range int32, target int32) bool {
	return _CalcDijkstra(g, starts, node_flags, max_range, target)
}

func _CalcDijkstra(g graph.IGraph, starts Array[Tuple[int32, int32]], node_flags Flags[DistFlag], max_range int32, target int32) bool {
	heap := NewPriorityQueue[PQItem, int32](100)
	explorer := g.GetGraphExplorer()

	for _, item := range starts {
		start := item.A
		dist := item.B
		if dist > max_range {
			continue
		}
		start_flag := node_flags.Get(start)
		if start_flag.Dist <= dist {
			continue
		}
		start_flag.Dist = dist
		start_flag.PrevEdge = -1
		heap.Enqueue(PQItem{start, dist}, dist)
	}

	for {
		curr_item, ok := heap.Dequeue()
		if !ok {
			break
		}
		curr_id := curr_item.item
		curr_flag := node_flags.Get(curr_id)
		if curr_flag.Visited || curr_flag.Dist < curr_item.dist {
			continue
		}
		curr_flag.Visited = true
		if curr_id == target {
			return true
		}
		explorer.ForAdjacentEdges(curr_id, graph.FORWARD, graph.ADJACENT_EDGES, func(ref graph.EdgeRef) {
			other_id := ref.OtherID
			other_flag := node_flags.Get(other_id)
			if other_flag.Visited {
				return
			}
			new_length := curr_flag.Dist + explorer.GetEdgeWeight(ref)
			if new_length > max_range {
				return
			}
			if other_flag.Dist > new_length {
				other_flag.Dist = new_length
				other_flag.PrevEdge = ref.EdgeID
				heap.Enqueue(PQItem{other_id, new_length}, new_length)
			}
		})
	}
	return false
}
