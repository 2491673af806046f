package onetomany

import (
	. "github.com/ttpr0/netex-routing/util"
)

type IOneToMany interface {
	CreateSolver() ISolver
}

// not thread safe, create one solver per goroutine
type ISolver interface {
	// Computes distances from start nodes to all other nodes.
	//
	// Multiple start nodes are specified as (node, initial distance) tuples, e.g. time vertices with their clock time.
	CalcDistanceFromStart(starts Array[Tuple[int32, int32]]) error

	// Returns the computed distance, algorithm.MAX_DIST if the node was not reached.
	GetDistance(node int32) int32
}
