/*
Package sequence provides stateful, bidirectional cursors over infinite
numeric sequences.

Five families are available, all sharing one navigation contract:

  - [Arithmetic]: start, start+step, start+2*step, ...
  - [Geometric]: start, start*ratio, start*ratio², ...
  - [Fibonacci]: 0, 1, 1, 2, 3, 5, 8, ...
  - [Lucas]: 2, 1, 3, 4, 7, 11, 18, ...
  - [Catalan]: 1, 1, 2, 5, 14, 42, 132, ...

A cursor always sits on one index of its sequence. [Cursor.Next] and
[Cursor.Previous] move by one position, [Cursor.Forward] and [Cursor.Back]
move by an offset, and [Cursor.GoTo] seeks to an absolute index, choosing
between stepping backwards and replaying from index 0 depending on which
covers fewer steps. Moving below index 0 is clamped, never an error.

	fib := sequence.NewFibonacci(sequence.StartAt(10))
	fib.Current() // 55
	fib.Next()
	fib.Current() // 89
	fib.GoTo(3)
	fib.Current() // 2

# Equality

Two cursors of the same family are equal when they sit on the same index.
The values are not compared: the recurrences are deterministic, so equal
positions imply equal values.

# Numeric limits

Values use native fixed-width arithmetic. Fibonacci and Lucas values wrap
past int64 (Fibonacci beyond index 92), Catalan values are exact up to
index [MaxExactCatalanIndex] and wrap afterwards, and progressions follow
float64 rounding. Long chains of [Cursor.Next] on a progression accumulate
rounding drift; closed-form moves ([Cursor.Forward], [Cursor.Back],
[Cursor.GoTo], [Arithmetic.At], [Geometric.At]) do not.

# Concurrency

A cursor is owned by a single goroutine. Copying a cursor value (or calling
Clone) yields a fully independent cursor, so distinct goroutines can each
work on their own copy without coordination.

# Run-time selection

Callers that pick a family by name use the [Factory] returned by
[GlobalFactory] and the family-independent [Stepper] interface.
*/
package sequence
