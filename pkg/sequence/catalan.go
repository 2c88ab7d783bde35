package sequence

import "math/bits"

// MaxExactCatalanIndex is the largest index whose Catalan number fits in a
// uint64. Up to this index every step is exact; beyond it values wrap and
// the backward step no longer inverts the forward step.
const MaxExactCatalanIndex = 36

// catalanKernel uses the ratio C(n+1)/C(n) = 2(2n+1)/(n+2). The numerator
// is always divisible by the denominator for true Catalan numbers.
type catalanKernel struct{}

func (catalanKernel) name() string          { return FamilyCatalan }
func (catalanKernel) origin() uint64        { return 1 }
func (catalanKernel) value(s uint64) uint64 { return s }

func (catalanKernel) forward(s, index uint64) uint64 {
	return mulDiv(s, 2*(2*index+1), index+2)
}

// backward receives index >= 1 and yields C(index-1).
func (catalanKernel) backward(s, index uint64) uint64 {
	return mulDiv(s, index+1, 2*(2*index-1))
}

// mulDiv returns x*y/d through a 128-bit product, so the result is exact
// whenever it fits in 64 bits. When it does not, it falls back to wrapping
// 64-bit arithmetic.
func mulDiv(x, y, d uint64) uint64 {
	hi, lo := bits.Mul64(x, y)
	if hi >= d {
		return x * y / d
	}
	q, _ := bits.Div64(hi, lo, d)
	return q
}

// Catalan is a cursor over 1, 1, 2, 5, 14, 42, 132, ...
type Catalan struct {
	Cursor[uint64, uint64, catalanKernel]
}

// NewCatalan creates a Catalan cursor on index 0, or on the index given with
// StartAt.
func NewCatalan(opts ...Option) *Catalan {
	return &Catalan{Cursor: newCursor[uint64, uint64](catalanKernel{}, opts)}
}

// Equal reports whether both cursors sit on the same index.
func (c *Catalan) Equal(other *Catalan) bool {
	return other != nil && c.Cursor.Equal(&other.Cursor)
}

// Clone returns an independent copy of the cursor.
func (c *Catalan) Clone() *Catalan {
	cp := *c
	return &cp
}
