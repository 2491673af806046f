package graph

import (
	. "github.com/ttpr0/netex-routing/util"
)

//*******************************************
// adjacency list
//*******************************************

type _AdjEntry struct {
	EdgeID  int32
	OtherID int32
}

// Growable topology used while building.
type _AdjacencyList struct {
	fwd_entries Array[List[_AdjEntry]]
	bwd_entries Array[List[_AdjEntry]]
}

func _NewAdjacencyList(node_count int) _AdjacencyList {
	return _AdjacencyList{
		fwd_entries: NewArray[List[_AdjEntry]](node_count),
		bwd_entries: NewArray[List[_AdjEntry]](node_count),
	}
}

func (self *_AdjacencyList) AddEdgeEntries(node_a, node_b, edge_id int32) {
	self.fwd_entries[node_a].Add(_AdjEntry{EdgeID: edge_id, OtherID: node_b})
	self.bwd_entries[node_b].Add(_AdjEntry{EdgeID: edge_id, OtherID: node_a})
}

//*******************************************
// adjacency array
//*******************************************

type _NodeRef struct {
	EdgeRefStart    int32
	EdgeRefFWDCount int32
	EdgeRefBWDCount int32
}

// Compact topology, forward entries of a node are followed by its backward entries.
type _AdjacencyArray struct {
	node_refs Array[_NodeRef]
	edge_refs Array[_AdjEntry]
}

func _AdjacencyListToArray(dyn *_AdjacencyList) _AdjacencyArray {
	node_count := dyn.fwd_entries.Length()
	edge_ref_count := 0
	for i := 0; i < node_count; i++ {
		edge_ref_count += dyn.fwd_entries[i].Length() + dyn.bwd_entries[i].Length()
	}

	node_refs := NewArray[_NodeRef](node_count)
	edge_refs := NewArray[_AdjEntry](edge_ref_count)
	start := 0
	for i := 0; i < node_count; i++ {
		fwd := dyn.fwd_entries[i]
		bwd := dyn.bwd_entries[i]
		node_refs[i] = _NodeRef{
			EdgeRefStart:    int32(start),
			EdgeRefFWDCount: int32(fwd.Length()),
			EdgeRefBWDCount: int32(bwd.Length()),
		}
		start += copy(edge_refs[start:], fwd)
		start += copy(edge_refs[start:], bwd)
	}
	return _AdjacencyArray{
		node_refs: node_refs,
		edge_refs: edge_refs,
	}
}

func (self *_AdjacencyArray) GetDegree(node int32, dir Direction) int32 {
	ref := self.node_refs[node]
	if dir == FORWARD {
		return ref.EdgeRefFWDCount
	}
	return ref.EdgeRefBWDCount
}

func (self *_AdjacencyArray) GetAccessor() _AdjArrayAccessor {
	return _AdjArrayAccessor{
		topology: self,
	}
}

//*******************************************
// adjacency accessor
//*******************************************

// not thread safe, use one accessor per explorer
type _AdjArrayAccessor struct {
	topology *_AdjacencyArray
	offset   int32
	end      int32
	curr     _AdjEntry
}

func (self *_AdjArrayAccessor) SetBaseNode(node int32, forward bool) {
	ref := self.topology.node_refs[node]
	if forward {
		self.offset = ref.EdgeRefStart
		self.end = ref.EdgeRefStart + ref.EdgeRefFWDCount
	} else {
		self.offset = ref.EdgeRefStart + ref.EdgeRefFWDCount
		self.end = self.offset + ref.EdgeRefBWDCount
	}
}
func (self *_AdjArrayAccessor) Next() bool {
	if self.offset >= self.end {
		return false
	}
	self.curr = self.topology.edge_refs[self.offset]
	self.offset += 1
	return true
}
func (self *_AdjArrayAccessor) GetEdgeID() int32 {
	return self.curr.EdgeID
}
func (self *_AdjArrayAccessor) GetOtherID() int32 {
	return self.curr.OtherID
}
