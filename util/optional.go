package util

//*******************************************
// optional
//*******************************************

type Optional[T any] struct {
	Value     T
	has_value bool
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{
		Value:     value,
		has_value: true,
	}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

func (self Optional[T]) HasValue() bool {
	return self.has_value
}

// Returns the value if present, otherwise the given default.
func (self Optional[T]) ValueOr(value T) T {
	if self.has_value {
		return self.Value
	}
	return value
}

//*******************************************
// tuples
//*******************************************

type Tuple[A any, B any] struct {
	A A
	B B
}

func MakeTuple[A any, B any](a A, b B) Tuple[A, B] {
	return Tuple[A, B]{A: a, B: b}
}

type Triple[A any, B any, C any] struct {
	A A
	B B
	C C
}

func MakeTriple[A any, B any, C any](a A, b B, c C) Triple[A, B, C] {
	return Triple[A, B, C]{A: a, B: b, C: c}
}
