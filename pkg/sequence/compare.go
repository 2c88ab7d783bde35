package sequence

import "math"

// Tolerance is the relative difference under which two float64 terms are
// treated as the same term in SameTerm.
const Tolerance = 1e-9

// scaler is implemented by kernels whose rounding error grows with the
// magnitude of the operands rather than with the result. scale returns
// that magnitude for a term reached at index.
type scaler interface {
	scale(index uint64) float64
}

// termScale returns the magnitude rounding error is measured against at
// the current index, or 0 when the family has no such floor.
func (c *Cursor[V, S, K]) termScale() float64 {
	if s, ok := any(c.kernel).(scaler); ok {
		return s.scale(c.index)
	}
	return 0
}

// SameTerm reports whether two cursors of the same family sit on the same
// index with the same value. Exact families must match bit for bit;
// progressions are compared within Tolerance, since incremental stepping
// and closed-form moves round differently. An arithmetic progression that
// crosses zero is measured against its start and step rather than the
// near-zero term itself.
func SameTerm(a, b Stepper) bool {
	if a.Family() != b.Family() || a.Index() != b.Index() {
		return false
	}
	if a.Exact() {
		return a.Format() == b.Format()
	}
	x, y := a.Float64(), b.Float64()
	if x == y {
		return true
	}
	diff := math.Abs(x - y)
	scale := math.Max(math.Abs(x), math.Abs(y))
	for _, s := range []Stepper{a, b} {
		if sc, ok := s.(interface{ termScale() float64 }); ok {
			scale = math.Max(scale, sc.termScale())
		}
	}
	return diff <= Tolerance*scale
}
