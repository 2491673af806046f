package graph

import (
	"golang.org/x/exp/slices"

	"github.com/ttpr0/netex-routing/timetable"
	. "github.com/ttpr0/netex-routing/util"
)

//*******************************************
// station index
//*******************************************

// Maps vertices back to stations. Station i owns the vertices
// [firsts[i], firsts[i+1]), laid out as init, final, times ascending.
type StationIndex struct {
	stations     *timetable.StationRegistry
	firsts       Array[int32]
	vertex_times Array[timetable.TimeOfDay]
}

func (self *StationIndex) VertexCount() int32 {
	return int32(self.vertex_times.Length())
}

// Returns the first vertex and the end of the block owned by station.
func (self *StationIndex) GetStationBlock(station int32) (int32, int32) {
	start := self.firsts[station]
	if int(station)+1 < self.firsts.Length() {
		return start, self.firsts[station+1]
	}
	return start, self.VertexCount()
}

func (self *StationIndex) ResolveStation(name string) Optional[StationHandle] {
	station := self.stations.Get(name)
	if !station.HasValue() {
		return None[StationHandle]()
	}
	init_id := self.firsts[station.Value]
	return Some(StationHandle{
		Station: station.Value,
		Name:    name,
		Init:    init_id,
		Final:   init_id + 1,
	})
}

// Returns the station name if id is the final vertex of its station.
func (self *StationIndex) TerminalByID(id int32) Optional[string] {
	station := self._FloorStation(id)
	if station < 0 || id != self.firsts[station]+1 {
		return None[string]()
	}
	return Some(self.stations.GetName(station))
}

// Returns the station owning id and the kind of vertex.
func (self *StationIndex) StopByID(id int32) Optional[StopInfo] {
	station := self._FloorStation(id)
	if station < 0 {
		return None[StopInfo]()
	}
	return Some(self._Classify(station, id))
}

// Looks up the station with the smallest block start >= id and classifies id
// against it. Only block starts resolve, other ids belong to an earlier block.
func (self *StationIndex) StopByIDCeil(id int32) Optional[StopInfo] {
	if id < 0 || id >= self.VertexCount() {
		return None[StopInfo]()
	}
	station, _ := slices.BinarySearch(self.firsts, id)
	if station >= self.firsts.Length() {
		return None[StopInfo]()
	}
	start, end := self.GetStationBlock(int32(station))
	if id < start || id >= end {
		return None[StopInfo]()
	}
	return Some(self._Classify(int32(station), id))
}

func (self *StationIndex) _FloorStation(id int32) int32 {
	if id < 0 || id >= self.VertexCount() {
		return -1
	}
	station, found := slices.BinarySearch(self.firsts, id)
	if !found {
		station -= 1
	}
	return int32(station)
}

func (self *StationIndex) _Classify(station int32, id int32) StopInfo {
	info := StopInfo{
		Station: station,
		Name:    self.stations.GetName(station),
	}
	switch id - self.firsts[station] {
	case 0:
		info.Kind = INIT
	case 1:
		info.Kind = FINAL
	default:
		info.Kind = TIME
		info.Time = self.vertex_times[id]
	}
	return info
}
