// Package hanoi enumerates the moves that solve the Towers of Hanoi. Each
// solver writes one line per move to an explicit io.Writer and returns the
// number of moves it wrote.
//
// Move lines have the form:
//
//	move disk 1 from A to C
package hanoi

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrNilWriter is returned when no move sink is supplied.
	ErrNilWriter = errors.New("hanoi: move writer is nil")
	// ErrPegsNotDistinct is returned when two of the three pegs share a name.
	ErrPegsNotDistinct = errors.New("hanoi: pegs must be distinct")
)

// ClassicMoves returns 2^disks - 1, the move count of Classic and Iterative.
// It overflows for disks >= 64.
func ClassicMoves(disks uint) uint64 {
	return 1<<disks - 1
}

// RestrictedMoves returns 3^disks - 1, the move count of Restricted.
// It overflows for disks >= 41.
func RestrictedMoves(disks uint) uint64 {
	total := uint64(1)
	for range disks {
		total *= 3
	}
	return total - 1
}

// moveLog writes move lines and remembers the first write error.
type moveLog struct {
	w     io.Writer
	moves uint64
	err   error
}

func (l *moveLog) move(disk uint, from, to string) {
	if l.err != nil {
		return
	}
	if _, err := fmt.Fprintf(l.w, "move disk %d from %s to %s\n", disk, from, to); err != nil {
		l.err = fmt.Errorf("hanoi: writing move %d: %w", l.moves+1, err)
		return
	}
	l.moves++
}

func newMoveLog(w io.Writer, from, to, via string) (*moveLog, error) {
	if w == nil {
		return nil, ErrNilWriter
	}
	if from == to || from == via || to == via {
		return nil, fmt.Errorf("%w: %q, %q, %q", ErrPegsNotDistinct, from, to, via)
	}
	return &moveLog{w: w}, nil
}

// Classic moves disks disks from peg from to peg to, using via as the
// spare, with the recursive algorithm. Recursion depth equals disks.
//
// Parameters:
//   - w: The sink receiving one line per move.
//   - disks: The number of disks.
//   - from, to, via: The peg labels.
//
// Returns:
//   - uint64: The number of moves written.
//   - error: The first write error, or a validation error.
func Classic(w io.Writer, disks uint, from, to, via string) (uint64, error) {
	l, err := newMoveLog(w, from, to, via)
	if err != nil {
		return 0, err
	}
	classic(l, disks, from, to, via)
	return l.moves, l.err
}

func classic(l *moveLog, n uint, from, to, via string) {
	if n == 0 || l.err != nil {
		return
	}
	classic(l, n-1, from, via, to)
	l.move(n, from, to)
	classic(l, n-1, via, to, from)
}

// frame is a pending unit of work for Iterative: either a single move or
// a sub-tower to solve.
type frame struct {
	disks         uint
	from, to, via string
	single        bool
}

// Iterative produces the same moves as Classic using an explicit stack
// instead of recursion.
func Iterative(w io.Writer, disks uint, from, to, via string) (uint64, error) {
	l, err := newMoveLog(w, from, to, via)
	if err != nil {
		return 0, err
	}

	stack := []frame{{disks: disks, from: from, to: to, via: via}}
	for len(stack) > 0 && l.err == nil {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.single {
			l.move(f.disks, f.from, f.to)
			continue
		}
		if f.disks == 0 {
			continue
		}
		// Pushed in reverse execution order.
		stack = append(stack,
			frame{disks: f.disks - 1, from: f.via, to: f.to, via: f.from},
			frame{disks: f.disks, from: f.from, to: f.to, single: true},
			frame{disks: f.disks - 1, from: f.from, to: f.via, via: f.to},
		)
	}
	return l.moves, l.err
}

// Restricted moves the tower from peg from to peg to when disks may only
// travel between adjacent pegs, with via in the middle. No disk ever moves
// directly between from and to. It takes 3^disks - 1 moves.
func Restricted(w io.Writer, disks uint, from, to, via string) (uint64, error) {
	l, err := newMoveLog(w, from, to, via)
	if err != nil {
		return 0, err
	}
	restricted(l, disks, from, to, via)
	return l.moves, l.err
}

func restricted(l *moveLog, n uint, from, to, via string) {
	if n == 0 || l.err != nil {
		return
	}
	restricted(l, n-1, from, to, via)
	l.move(n, from, via)
	restricted(l, n-1, to, from, via)
	l.move(n, via, to)
	restricted(l, n-1, from, to, via)
}
