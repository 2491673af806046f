package onetomany

import (
	"errors"

	"github.com/ttpr0/netex-routing/algorithm"
	"github.com/ttpr0/netex-routing/graph"
	. "github.com/ttpr0/netex-routing/util"
)

var ErrNoStart = errors.New("onetomany: no start nodes")

func NewRangeDijkstra(g graph.IGraph, max_range int32) *RangeDijkstra {
	return &RangeDijkstra{g: g, max_range: max_range}
}

type RangeDijkstra struct {
	g         graph.IGraph
	max_range int32
}

func (self *RangeDijkstra) CreateSolver() ISolver {
	node_flags := NewFlags(int32(self.g.NodeCount()), algorithm.NewDistFlag())
	return &RangeDijkstraSolver{
		g:          self.g,
		node_flags: node_flags,
		max_range:  self.max_range,
	}
}

type RangeDijkstraSolver struct {
	g          graph.IGraph
	node_flags Flags[algorithm.DistFlag]
	max_range  int32
}

// CalcDistanceFromStart implements ISolver.
func (self *RangeDijkstraSolver) CalcDistanceFromStart(starts Array[Tuple[int32, int32]]) error {
	self.node_flags.Reset()
	if starts.Length() == 0 {
		return ErrNoStart
	}
	algorithm.CalcRangeDijkstra(self.g, starts, self.node_flags, self.max_range)
	return nil
}

// GetDistance implements ISolver.
func (self *RangeDijkstraSolver) GetDistance(node int32) int32 {
	if !self.node_flags.IsTouched(node) {
		return algorithm.MAX_DIST
	}
	return self.node_flags.Get(node).Dist
}
