package sequence

import (
	"fmt"
	"math"
)

// ─────────────────────────────────────────────────────────────────────────────
// Arithmetic progression
// ─────────────────────────────────────────────────────────────────────────────

type arithmeticKernel struct {
	start, step float64
}

func (k arithmeticKernel) name() string                         { return FamilyArithmetic }
func (k arithmeticKernel) origin() float64                      { return k.start }
func (k arithmeticKernel) value(s float64) float64              { return s }
func (k arithmeticKernel) forward(s float64, _ uint64) float64  { return s + k.step }
func (k arithmeticKernel) backward(s float64, _ uint64) float64 { return s - k.step }

func (k arithmeticKernel) scale(index uint64) float64 {
	return math.Max(math.Abs(k.start), math.Abs(k.step)*float64(index))
}

func (k arithmeticKernel) jumpForward(s float64, _, offset uint64) float64 {
	return s + k.step*float64(offset)
}

func (k arithmeticKernel) jumpBackward(s float64, _, offset uint64) float64 {
	return s - k.step*float64(offset)
}

// Arithmetic is a cursor over start, start+step, start+2*step, ...
type Arithmetic struct {
	Cursor[float64, float64, arithmeticKernel]
}

// NewArithmetic creates an arithmetic progression cursor.
//
// Parameters:
//   - start: The value at index 0.
//   - step: The common difference.
//   - opts: Optional settings such as StartAt.
//
// Returns:
//   - *Arithmetic: A cursor positioned on index 0, or on the StartAt index.
func NewArithmetic(start, step float64, opts ...Option) *Arithmetic {
	return &Arithmetic{Cursor: newCursor[float64, float64](arithmeticKernel{start: start, step: step}, opts)}
}

// Start returns the value at index 0.
func (a *Arithmetic) Start() float64 { return a.kernel.start }

// Step returns the common difference.
func (a *Arithmetic) Step() float64 { return a.kernel.step }

// At returns the value at index i without moving the cursor.
func (a *Arithmetic) At(i uint64) float64 {
	return a.kernel.start + a.kernel.step*float64(i)
}

// Equal reports whether both cursors sit on the same index.
func (a *Arithmetic) Equal(other *Arithmetic) bool {
	return other != nil && a.Cursor.Equal(&other.Cursor)
}

// Clone returns an independent copy of the cursor.
func (a *Arithmetic) Clone() *Arithmetic {
	cp := *a
	return &cp
}

// ─────────────────────────────────────────────────────────────────────────────
// Geometric progression
// ─────────────────────────────────────────────────────────────────────────────

type geometricKernel struct {
	start, ratio float64
}

func (k geometricKernel) name() string                         { return FamilyGeometric }
func (k geometricKernel) origin() float64                      { return k.start }
func (k geometricKernel) value(s float64) float64              { return s }
func (k geometricKernel) forward(s float64, _ uint64) float64  { return s * k.ratio }
func (k geometricKernel) backward(s float64, _ uint64) float64 { return s / k.ratio }

func (k geometricKernel) jumpForward(s float64, _, offset uint64) float64 {
	return s * math.Pow(k.ratio, float64(offset))
}

func (k geometricKernel) jumpBackward(s float64, _, offset uint64) float64 {
	return s / math.Pow(k.ratio, float64(offset))
}

// Geometric is a cursor over start, start*ratio, start*ratio², ...
type Geometric struct {
	Cursor[float64, float64, geometricKernel]
}

// NewGeometric creates a geometric progression cursor. A zero ratio has no
// inverse step and is rejected with ErrZeroRatio.
//
// Parameters:
//   - start: The value at index 0.
//   - ratio: The common ratio, which must be non-zero.
//   - opts: Optional settings such as StartAt.
//
// Returns:
//   - *Geometric: The new cursor, or nil on error.
//   - error: ErrZeroRatio (wrapped) if ratio is 0.
func NewGeometric(start, ratio float64, opts ...Option) (*Geometric, error) {
	if ratio == 0 {
		return nil, fmt.Errorf("geometric progression with start %g: %w", start, ErrZeroRatio)
	}
	return &Geometric{Cursor: newCursor[float64, float64](geometricKernel{start: start, ratio: ratio}, opts)}, nil
}

// Start returns the value at index 0.
func (g *Geometric) Start() float64 { return g.kernel.start }

// Ratio returns the common ratio.
func (g *Geometric) Ratio() float64 { return g.kernel.ratio }

// At returns the value at index i without moving the cursor.
func (g *Geometric) At(i uint64) float64 {
	return g.kernel.start * math.Pow(g.kernel.ratio, float64(i))
}

// Equal reports whether both cursors sit on the same index.
func (g *Geometric) Equal(other *Geometric) bool {
	return other != nil && g.Cursor.Equal(&other.Cursor)
}

// Clone returns an independent copy of the cursor.
func (g *Geometric) Clone() *Geometric {
	cp := *g
	return &cp
}
