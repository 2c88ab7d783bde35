package sequence

// number is the set of value types a cursor can expose.
type number interface {
	~float64 | ~int64 | ~uint64
}

// kernel is the recurrence of one sequence family. S is the state the
// cursor carries between moves and V the value exposed to callers.
//
// forward and backward receive the index the state currently sits on.
// backward is never called at index 0.
type kernel[V number, S any] interface {
	name() string
	origin() S
	forward(s S, index uint64) S
	backward(s S, index uint64) S
	value(s S) V
}

// jumper is implemented by kernels with a closed-form bulk move.
// jumpBackward is only called with offset <= index.
type jumper[S any] interface {
	jumpForward(s S, index, offset uint64) S
	jumpBackward(s S, index, offset uint64) S
}

// pairStepper is implemented by two-term recurrences that can advance two
// positions with one combined update.
type pairStepper[S any] interface {
	forwardTwice(s S, index uint64) S
}
