package util

import (
	"golang.org/x/exp/constraints"
)

//*******************************************
// priority queue
//*******************************************

type _PQItem[T any, P constraints.Ordered] struct {
	item     T
	priority P
}

// Min-heap, smallest priority is dequeued first.
type PriorityQueue[T any, P constraints.Ordered] struct {
	items List[_PQItem[T, P]]
}

func NewPriorityQueue[T any, P constraints.Ordered](capacity int) PriorityQueue[T, P] {
	return PriorityQueue[T, P]{
		items: NewList[_PQItem[T, P]](capacity),
	}
}

func (self *PriorityQueue[T, P]) Enqueue(item T, priority P) {
	self.items.Add(_PQItem[T, P]{item: item, priority: priority})
	self._SiftUp(self.items.Length() - 1)
}

func (self *PriorityQueue[T, P]) Dequeue() (T, bool) {
	if self.items.Length() == 0 {
		var t T
		return t, false
	}
	top := self.items[0]
	last := self.items.Length() - 1
	self.items[0] = self.items[last]
	self.items = self.items[:last]
	if last > 0 {
		self._SiftDown(0)
	}
	return top.item, true
}

// Returns the smallest priority without removing it.
func (self *PriorityQueue[T, P]) Peek() (T, P, bool) {
	if self.items.Length() == 0 {
		var t T
		var p P
		return t, p, false
	}
	top := self.items[0]
	return top.item, top.priority, true
}

func (self *PriorityQueue[T, P]) Length() int {
	return self.items.Length()
}

func (self *PriorityQueue[T, P]) Clear() {
	self.items.Clear()
}

func (self *PriorityQueue[T, P]) _SiftUp(index int) {
	for index > 0 {
		parent := (index - 1) / 2
		if self.items[parent].priority <= self.items[index].priority {
			break
		}
		self.items[parent], self.items[index] = self.items[index], self.items[parent]
		index = parent
	}
}

func (self *PriorityQueue[T, P]) _SiftDown(index int) {
	count := self.items.Length()
	for {
		left := 2*index + 1
		if left >= count {
			break
		}
		smallest := left
		right := left + 1
		if right < count && self.items[right].priority < self.items[left].priority {
			smallest = right
		}
		if self.items[index].priority <= self.items[smallest].priority {
			break
		}
		self.items[index], self.items[smallest] = self.items[smallest], self.items[index]
		index = smallest
	}
}
