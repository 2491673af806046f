package util

//*******************************************
// list
//*******************************************

// List is a growable slice. Conversion to Array is free.
type List[T any] []T

func NewList[T any](capacity int) List[T] {
	return make([]T, 0, capacity)
}

func (self *List[T]) Add(value T) {
	*self = append(*self, value)
}
func (self List[T]) Get(index int) T {
	return self[index]
}
func (self List[T]) Set(index int, value T) {
	self[index] = value
}
func (self List[T]) Length() int {
	return len(self)
}
func (self List[T]) Last() T {
	return self[len(self)-1]
}
func (self *List[T]) Clear() {
	*self = (*self)[:0]
}

//*******************************************
// array
//*******************************************

// Array is a fixed size slice.
type Array[T any] []T

func NewArray[T any](size int) Array[T] {
	return make([]T, size)
}

func (self Array[T]) Get(index int) T {
	return self[index]
}
func (self Array[T]) Set(index int, value T) {
	self[index] = value
}
func (self Array[T]) Length() int {
	return len(self)
}
