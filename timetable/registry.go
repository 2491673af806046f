package timetable

import (
	. "github.com/ttpr0/netex-routing/util"
)

//*******************************************
// station registry
//*******************************************

// StationRegistry maps station names to dense indices in first-seen order.
type StationRegistry struct {
	names   List[string]
	indices Dict[string, int32]
}

func NewStationRegistry(capacity int) *StationRegistry {
	return &StationRegistry{
		names:   NewList[string](capacity),
		indices: NewDict[string, int32](capacity),
	}
}

// Adds the name if unseen. Returns its index and whether it was newly added.
func (self *StationRegistry) Add(name string) (int32, bool) {
	if idx, ok := self.indices[name]; ok {
		return idx, false
	}
	idx := int32(self.names.Length())
	self.names.Add(name)
	self.indices[name] = idx
	return idx, true
}

func (self *StationRegistry) Get(name string) Optional[int32] {
	if idx, ok := self.indices[name]; ok {
		return Some(idx)
	}
	return None[int32]()
}

func (self *StationRegistry) GetName(idx int32) string {
	return self.names[idx]
}

func (self *StationRegistry) Count() int {
	return self.names.Length()
}

func (self *StationRegistry) Names() List[string] {
	return self.names
}
