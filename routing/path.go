package routing

import (
	"github.com/ttpr0/netex-routing/algorithm"
	"github.com/ttpr0/netex-routing/graph"
	. "github.com/ttpr0/netex-routing/util"
)

//*******************************************
// path
//*******************************************

type Path struct {
	graph  graph.IGraph
	start  int32
	edges  List[int32]
	length int32
}

func NewPath(g graph.IGraph, start int32, edges List[int32], length int32) Path {
	return Path{
		graph:  g,
		start:  start,
		edges:  edges,
		length: length,
	}
}

func (self Path) GetEdges() List[int32] {
	return self.edges
}

// Returns the vertices of the path including start and end.
func (self Path) GetVertices() List[int32] {
	vertices := NewList[int32](self.edges.Length() + 1)
	vertices.Add(self.start)
	for _, edge := range self.edges {
		vertices.Add(self.graph.GetEdge(edge).NodeB)
	}
	return vertices
}

func (self Path) Length() int32 {
	return self.length
}

// Follows the predecessor edges from end back to start.
func _ForwardEdges(g graph.IGraph, flags *Flags[algorithm.DistFlag], start, end int32) List[int32] {
	edges := NewList[int32](10)
	curr_id := end
	for curr_id != start {
		edge_id := flags.Get(curr_id).PrevEdge
		if edge_id == -1 {
			break
		}
		edges.Add(edge_id)
		curr_id = g.GetEdge(edge_id).NodeA
	}
	for i, j := 0, edges.Length()-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}
	return edges
}

// Follows the successor edges of a backward search from start to its root end.
func _BackwardEdges(g graph.IGraph, flags *Flags[algorithm.DistFlag], start, end int32) List[int32] {
	edges := NewList[int32](10)
	curr_id := start
	for curr_id != end {
		edge_id := flags.Get(curr_id).PrevEdge
		if edge_id == -1 {
			break
		}
		edges.Add(edge_id)
		curr_id = g.GetEdge(edge_id).NodeB
	}
	return edges
}
