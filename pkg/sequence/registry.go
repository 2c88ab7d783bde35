package sequence

import (
	"fmt"
	"sort"
	"sync"
)

// Registry names of the built-in families.
const (
	FamilyArithmetic = "arithmetic"
	FamilyGeometric  = "geometric"
	FamilyFibonacci  = "fibonacci"
	FamilyLucas      = "lucas"
	FamilyCatalan    = "catalan"
)

// Params carries the construction parameters of every family. Each family
// reads only the fields it needs: Start and Step for arithmetic, Start and
// Ratio for geometric, and Index for all of them.
type Params struct {
	// Start is the value at index 0 of a progression.
	Start float64
	// Step is the common difference of an arithmetic progression.
	Step float64
	// Ratio is the common ratio of a geometric progression.
	Ratio float64
	// Index is the position the new cursor starts on.
	Index uint64
}

// Creator builds a cursor for one family from Params.
type Creator func(p Params) (Stepper, error)

// Factory maps family names to cursor constructors. It is safe for
// concurrent use; the cursors it creates are not.
type Factory struct {
	mu       sync.RWMutex
	creators map[string]Creator
}

// NewFactory creates a Factory with the five built-in families registered.
//
// Pre-registered families:
//   - "arithmetic": Arithmetic (Start, Step)
//   - "geometric": Geometric (Start, Ratio)
//   - "fibonacci": Fibonacci
//   - "lucas": Lucas
//   - "catalan": Catalan
//
// Returns:
//   - *Factory: A new factory with the built-in families registered.
func NewFactory() *Factory {
	f := &Factory{creators: make(map[string]Creator)}

	f.Register(FamilyArithmetic, func(p Params) (Stepper, error) {
		return NewArithmetic(p.Start, p.Step, StartAt(p.Index)), nil
	})
	f.Register(FamilyGeometric, func(p Params) (Stepper, error) {
		g, err := NewGeometric(p.Start, p.Ratio, StartAt(p.Index))
		if err != nil {
			return nil, err
		}
		return g, nil
	})
	f.Register(FamilyFibonacci, func(p Params) (Stepper, error) {
		return NewFibonacci(StartAt(p.Index)), nil
	})
	f.Register(FamilyLucas, func(p Params) (Stepper, error) {
		return NewLucas(StartAt(p.Index)), nil
	})
	f.Register(FamilyCatalan, func(p Params) (Stepper, error) {
		return NewCatalan(StartAt(p.Index)), nil
	})

	return f
}

// Register adds or replaces the constructor for name.
func (f *Factory) Register(name string, creator Creator) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creators[name] = creator
}

// Create builds a new cursor of the named family.
//
// Parameters:
//   - name: The family name.
//   - p: The construction parameters.
//
// Returns:
//   - Stepper: The new cursor.
//   - error: ErrUnknownFamily (wrapped) for an unregistered name, or the
//     constructor's own error.
func (f *Factory) Create(name string, p Params) (Stepper, error) {
	f.mu.RLock()
	creator, ok := f.creators[name]
	f.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFamily, name)
	}
	return creator(p)
}

// List returns the registered family names in alphabetical order.
func (f *Factory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is registered.
func (f *Factory) Has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.creators[name]
	return ok
}

var globalFactory = NewFactory()

// GlobalFactory returns the process-wide factory.
func GlobalFactory() *Factory {
	return globalFactory
}
