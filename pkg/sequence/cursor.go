package sequence

import (
	"fmt"
	"iter"
)

// Stepper is the family-independent view of a cursor. It is used by callers
// that select the sequence family at run time and only need to navigate and
// render the current term.
type Stepper interface {
	// Family returns the registry name of the sequence family.
	Family() string
	// Index returns the current 0-based position.
	Index() uint64
	// Next moves one position forward.
	Next()
	// Previous moves one position backward; it is a no-op at index 0.
	Previous()
	// Forward moves offset positions forward.
	Forward(offset uint64)
	// Back moves offset positions backward, stopping at index 0.
	Back(offset uint64)
	// Move moves forward for positive offsets and backward for negative ones.
	Move(offset int64)
	// GoTo seeks to an absolute index.
	GoTo(target uint64)
	// Reset returns to index 0.
	Reset()
	// Format renders the current value.
	Format() string
	// Float64 returns the current value converted to float64.
	Float64() float64
	// Exact reports whether the family uses integer arithmetic.
	Exact() bool
}

// Option configures a cursor at construction time.
type Option func(*options)

type options struct {
	index uint64
}

// StartAt positions a new cursor on the given index instead of 0.
// It is equivalent to constructing the cursor and calling GoTo(index).
func StartAt(index uint64) Option {
	return func(o *options) {
		o.index = index
	}
}

// Cursor is the navigation state machine shared by every sequence family.
// The family types embed it with their own kernel, so that the Go type
// system keeps cursors of different families apart.
//
// A Cursor is a plain value: assigning it copies its whole state.
type Cursor[V number, S any, K kernel[V, S]] struct {
	kernel K
	state  S
	index  uint64
}

func newCursor[V number, S any, K kernel[V, S]](k K, opts []Option) Cursor[V, S, K] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	c := Cursor[V, S, K]{kernel: k}
	c.Reset()
	c.GoTo(o.index)
	return c
}

// Family returns the registry name of the cursor's sequence family.
func (c *Cursor[V, S, K]) Family() string {
	return c.kernel.name()
}

// Current returns the value at the current index.
func (c *Cursor[V, S, K]) Current() V {
	return c.kernel.value(c.state)
}

// Index returns the current 0-based position.
func (c *Cursor[V, S, K]) Index() uint64 {
	return c.index
}

// Format renders the current value with fmt's default formatting.
func (c *Cursor[V, S, K]) Format() string {
	return fmt.Sprint(c.Current())
}

// Float64 returns the current value converted to float64. Integer values
// above 2^53 lose precision.
func (c *Cursor[V, S, K]) Float64() float64 {
	return float64(c.Current())
}

// Exact reports whether the family computes with integers. Exact families
// produce bit-identical values along every navigation path.
func (c *Cursor[V, S, K]) Exact() bool {
	var zero V
	_, isFloat := any(zero).(float64)
	return !isFloat
}

// Next advances one position. Overflow of the value type is not detected.
func (c *Cursor[V, S, K]) Next() {
	c.state = c.kernel.forward(c.state, c.index)
	c.index++
}

// Previous moves back one position. At index 0 it does nothing.
func (c *Cursor[V, S, K]) Previous() {
	switch c.index {
	case 0:
		return
	case 1:
		c.Reset()
		return
	}
	c.state = c.kernel.backward(c.state, c.index)
	c.index--
}

// Forward advances offset positions. Families with a closed form move in a
// single update; two-term recurrences advance two positions per update.
func (c *Cursor[V, S, K]) Forward(offset uint64) {
	if offset == 0 {
		return
	}
	if j, ok := any(c.kernel).(jumper[S]); ok {
		c.state = j.jumpForward(c.state, c.index, offset)
		c.index += offset
		return
	}
	if p, ok := any(c.kernel).(pairStepper[S]); ok {
		for ; offset >= 2; offset -= 2 {
			c.state = p.forwardTwice(c.state, c.index)
			c.index += 2
		}
	}
	for ; offset > 0; offset-- {
		c.Next()
	}
}

// Back moves offset positions backward. The offset is clamped to the
// current index, so the cursor never goes below 0. Landing on index 0
// restores the initial value exactly.
func (c *Cursor[V, S, K]) Back(offset uint64) {
	offset = min(offset, c.index)
	if offset == 0 {
		return
	}
	if offset == c.index {
		c.Reset()
		return
	}
	if j, ok := any(c.kernel).(jumper[S]); ok {
		c.state = j.jumpBackward(c.state, c.index, offset)
		c.index -= offset
		return
	}
	for ; offset > 0; offset-- {
		c.Previous()
	}
}

// Move calls Forward for positive offsets and Back for negative ones.
func (c *Cursor[V, S, K]) Move(offset int64) {
	if offset < 0 {
		// uint64(-offset) is also correct for math.MinInt64.
		c.Back(uint64(-offset))
		return
	}
	c.Forward(uint64(offset))
}

// Reset returns the cursor to index 0 and the family's initial value.
func (c *Cursor[V, S, K]) Reset() {
	c.state = c.kernel.origin()
	c.index = 0
}

// GoTo seeks to target. Moving backward by more than half of the current
// index is replaced by a reset followed by a forward replay, which covers
// fewer steps.
func (c *Cursor[V, S, K]) GoTo(target uint64) {
	if target == c.index {
		return
	}
	if target < c.index {
		steps := c.index - target
		if steps <= c.index/2 {
			c.Back(steps)
			return
		}
		c.Reset()
	}
	c.Forward(target - c.index)
}

// Equal reports whether both cursors sit on the same index. Values are not
// compared. A nil other is never equal.
func (c *Cursor[V, S, K]) Equal(other *Cursor[V, S, K]) bool {
	if other == nil {
		return false
	}
	return c.index == other.index
}

// Terms returns count consecutive terms starting at the current position.
// The terms are produced from a snapshot taken when Terms is called; the
// cursor itself does not move.
func (c *Cursor[V, S, K]) Terms(count int) iter.Seq2[uint64, V] {
	snapshot := *c
	return func(yield func(uint64, V) bool) {
		w := snapshot
		for i := 0; i < count; i++ {
			if !yield(w.index, w.Current()) {
				return
			}
			if i+1 < count {
				w.Next()
			}
		}
	}
}
