// Package pascal builds rows of Pascal's triangle and computes binomial
// coefficients, either by table lookup or multiplicatively.
//
// Entries are uint64. They are exact while C(n, k) fits in 64 bits (every
// entry of rows 0 to 67); larger entries wrap silently.
package pascal

import (
	"errors"
	"fmt"
	"math/bits"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrKGreaterThanN is returned when a binomial coefficient C(n, k) is
// requested with k > n.
var ErrKGreaterThanN = errors.New("k must not exceed n")

// DefaultRowCacheSize is the number of rows kept by the package-level table.
const DefaultRowCacheSize = 128

// Triangle returns the first rows rows of Pascal's triangle. Row i has i+1
// entries. A non-positive rows yields an empty triangle.
func Triangle(rows int) [][]uint64 {
	if rows <= 0 {
		return [][]uint64{}
	}
	t := make([][]uint64, rows)
	for i := range t {
		row := make([]uint64, i+1)
		row[0], row[i] = 1, 1
		for j := 1; j < i; j++ {
			row[j] = t[i-1][j-1] + t[i-1][j]
		}
		t[i] = row
	}
	return t
}

// Row returns row i of Pascal's triangle, built in place in a single
// slice of i+1 entries.
func Row(i uint64) []uint64 {
	row := make([]uint64, i+1)
	row[0] = 1
	extend(row, 1, i)
	return row
}

// extend advances row, which holds row from-1 in its first from entries,
// up to row to.
func extend(row []uint64, from, to uint64) {
	for r := from; r <= to; r++ {
		row[r] = 1
		for j := r - 1; j > 0; j-- {
			row[j] += row[j-1]
		}
	}
}

// Table memoises rows of Pascal's triangle in a bounded LRU cache, so
// repeated lookups in the same or neighbouring rows are cheap. It is safe
// for concurrent use.
type Table struct {
	mu   sync.Mutex
	rows *lru.Cache[uint64, []uint64]
}

// NewTable creates a Table that keeps at most size rows.
func NewTable(size int) (*Table, error) {
	rows, err := lru.New[uint64, []uint64](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create pascal row cache: %w", err)
	}
	return &Table{rows: rows}, nil
}

// Row returns row n. When row n-1 is cached, row n is derived from it in
// O(n); otherwise it is built from scratch. The returned slice is a copy
// the caller may modify.
func (t *Table) Row(n uint64) []uint64 {
	return append([]uint64(nil), t.row(n)...)
}

func (t *Table) row(n uint64) []uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if row, ok := t.rows.Get(n); ok {
		return row
	}
	var row []uint64
	if n > 0 {
		if prev, ok := t.rows.Get(n - 1); ok {
			row = make([]uint64, n+1)
			copy(row, prev)
			extend(row, n, n)
		}
	}
	if row == nil {
		row = Row(n)
	}
	t.rows.Add(n, row)
	return row
}

// Len returns the number of cached rows.
func (t *Table) Len() int {
	return t.rows.Len()
}

// Binomial returns C(n, k) read from row n of the table.
//
// Parameters:
//   - k: The number of chosen elements.
//   - n: The size of the set.
//
// Returns:
//   - uint64: The binomial coefficient.
//   - error: ErrKGreaterThanN (wrapped) if k > n.
func (t *Table) Binomial(k, n uint64) (uint64, error) {
	if k > n {
		return 0, fmt.Errorf("binomial C(%d, %d): %w", n, k, ErrKGreaterThanN)
	}
	k = min(k, n-k)
	return t.row(n)[k], nil
}

var (
	defaultTableOnce sync.Once
	defaultTable     *Table
)

func sharedTable() *Table {
	defaultTableOnce.Do(func() {
		t, err := NewTable(DefaultRowCacheSize)
		if err != nil {
			panic(err)
		}
		defaultTable = t
	})
	return defaultTable
}

// Binomial returns C(n, k) by Pascal's triangle lookup, using a shared
// package-level Table.
func Binomial(k, n uint64) (uint64, error) {
	return sharedTable().Binomial(k, n)
}

// BinomialIterative returns C(n, k) with the multiplicative formula
// C(n, i) = C(n, i-1) * (n-k+i) / i. Every intermediate quotient is exact;
// products are formed in 128 bits.
func BinomialIterative(k, n uint64) (uint64, error) {
	if k > n {
		return 0, fmt.Errorf("binomial C(%d, %d): %w", n, k, ErrKGreaterThanN)
	}
	k = min(k, n-k)
	result := uint64(1)
	for i := uint64(1); i <= k; i++ {
		result = mulDiv(result, n-k+i, i)
	}
	return result, nil
}

func mulDiv(x, y, d uint64) uint64 {
	hi, lo := bits.Mul64(x, y)
	if hi >= d {
		return x * y / d
	}
	q, _ := bits.Div64(hi, lo, d)
	return q
}
