package graph

//*******************************************
// enums
//*******************************************

type Direction byte

const (
	BACKWARD Direction = 0
	FORWARD  Direction = 1
)

type Adjacency byte

const (
	ADJACENT_EDGES Adjacency = 0
	ADJACENT_ALL   Adjacency = 2
)

// Kind of a vertex within its station block.
type VertexKind byte

const (
	INIT  VertexKind = 0
	FINAL VertexKind = 1
	TIME  VertexKind = 2
)

func (self VertexKind) String() string {
	switch self {
	case INIT:
		return "init"
	case FINAL:
		return "final"
	default:
		return "time"
	}
}
