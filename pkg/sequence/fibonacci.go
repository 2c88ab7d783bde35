package sequence

// pair holds a term of a two-term recurrence together with its successor.
type pair struct {
	current, next int64
}

// pairRecurrence implements x(i+2) = x(i+1) + x(i). The families built on it
// only differ in their seed pair.
type pairRecurrence struct{}

func (pairRecurrence) value(s pair) int64 { return s.current }

func (pairRecurrence) forward(s pair, _ uint64) pair {
	return pair{current: s.next, next: s.current + s.next}
}

func (pairRecurrence) backward(s pair, _ uint64) pair {
	return pair{current: s.next - s.current, next: s.current}
}

// forwardTwice advances two positions with one combined update. It is a
// constant-factor shortcut, not logarithmic doubling.
func (pairRecurrence) forwardTwice(s pair, _ uint64) pair {
	t1 := s.current + s.next
	t2 := s.next + t1
	return pair{current: t1, next: t2}
}

type fibonacciKernel struct{ pairRecurrence }

func (fibonacciKernel) name() string { return FamilyFibonacci }
func (fibonacciKernel) origin() pair { return pair{current: 0, next: 1} }

type lucasKernel struct{ pairRecurrence }

func (lucasKernel) name() string { return FamilyLucas }
func (lucasKernel) origin() pair { return pair{current: 2, next: 1} }

// MaxFibonacciInt64 is the largest index whose Fibonacci number fits in an
// int64. Later terms wrap around.
const MaxFibonacciInt64 = 92

// Fibonacci is a cursor over 0, 1, 1, 2, 3, 5, 8, ...
//
// Values are int64 and wrap silently past index MaxFibonacciInt64. Because
// two's-complement addition is invertible, Previous and Back still restore
// earlier values exactly after a wrap.
type Fibonacci struct {
	Cursor[int64, pair, fibonacciKernel]
}

// NewFibonacci creates a Fibonacci cursor on index 0, or on the index given
// with StartAt.
func NewFibonacci(opts ...Option) *Fibonacci {
	return &Fibonacci{Cursor: newCursor[int64, pair](fibonacciKernel{}, opts)}
}

// Equal reports whether both cursors sit on the same index.
func (f *Fibonacci) Equal(other *Fibonacci) bool {
	return other != nil && f.Cursor.Equal(&other.Cursor)
}

// Clone returns an independent copy of the cursor.
func (f *Fibonacci) Clone() *Fibonacci {
	cp := *f
	return &cp
}

// Lucas is a cursor over 2, 1, 3, 4, 7, 11, 18, ...
type Lucas struct {
	Cursor[int64, pair, lucasKernel]
}

// NewLucas creates a Lucas cursor on index 0, or on the index given with
// StartAt.
func NewLucas(opts ...Option) *Lucas {
	return &Lucas{Cursor: newCursor[int64, pair](lucasKernel{}, opts)}
}

// Equal reports whether both cursors sit on the same index.
func (l *Lucas) Equal(other *Lucas) bool {
	return other != nil && l.Cursor.Equal(&other.Cursor)
}

// Clone returns an independent copy of the cursor.
func (l *Lucas) Clone() *Lucas {
	cp := *l
	return &cp
}
