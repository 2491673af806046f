package graph

import (
	"github.com/ttpr0/netex-routing/timetable"
)

//*******************************************
// graph structs
//*******************************************

type Edge struct {
	NodeA  int32
	NodeB  int32
	Weight int32
}

//*******************************************
// edgeref struct
//*******************************************

type EdgeRef struct {
	EdgeID  int32
	OtherID int32
}

//*******************************************
// lookup results
//*******************************************

// Entry points of a station.
type StationHandle struct {
	Station int32
	Name    string
	Init    int32
	Final   int32
}

// Owner and meaning of a vertex.
type StopInfo struct {
	Station int32
	Name    string
	Kind    VertexKind
	// only set for TIME vertices
	Time timetable.TimeOfDay
}
