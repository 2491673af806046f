package util

//*******************************************
// flags
//*******************************************

// Flags stores one value per id. Reset only touches ids handed out by Get since the last reset.
// Copies share their storage.
type Flags[T any] struct {
	flags    Array[T]
	_default T
	touched  Array[bool]
	changed  *List[int32]
}

func NewFlags[T any](count int32, _default T) Flags[T] {
	flags := NewArray[T](int(count))
	for i := 0; i < flags.Length(); i++ {
		flags[i] = _default
	}
	changed := NewList[int32](100)
	return Flags[T]{
		flags:    flags,
		_default: _default,
		touched:  NewArray[bool](int(count)),
		changed:  &changed,
	}
}

func (self *Flags[T]) Get(id int32) *T {
	if !self.touched[id] {
		self.touched[id] = true
		self.changed.Add(id)
	}
	return &self.flags[id]
}

// Returns whether the id was handed out by Get since the last reset.
func (self *Flags[T]) IsTouched(id int32) bool {
	return self.touched[id]
}

func (self *Flags[T]) Length() int {
	return self.flags.Length()
}

func (self *Flags[T]) Reset() {
	for _, id := range *self.changed {
		self.flags[id] = self._default
		self.touched[id] = false
	}
	self.changed.Clear()
}
