// Package air defines the constraint-folding surface an AIR is evaluated
// through. An AIR's Eval logic is written exactly once, generic over the
// value type T, and driven through three different Folder[T]
// instantiations: a Folder[Degree] that only tracks symbolic degree, a
// Folder[field.Elem] wired to report any nonzero constraint through a
// callback (the debug constraint check), and a Folder[field.Elem] wired to accumulate into an
// extension-field running sum via Horner's rule (the packed numeric
// folder the quotient kernel calls). This mirrors the teacher's own
// AIRConstraint callback style in protocols/air.go, generalized so a
// single constraint definition drives degree analysis, debug checking,
// and the packed numeric fold from one written-once Eval function.
package air

import (
	"github.com/tessera-stark/tessera/internal/algebra"
	"github.com/tessera-stark/tessera/internal/field"
)

// Folder carries one row's view of the trace plus the AIR's selector
// values, and accumulates every asserted constraint through onAssertZero -
// the one piece of behavior that differs between the three builder kinds.
type Folder[T any] struct {
	Ring         algebra.Ring[T]
	Local        []T
	Next         []T
	Public       []T
	IsFirstRow   T
	IsLastRow    T
	IsTransition T

	onAssertZero func(T)
}

// AssertZero asserts that c must be zero for the trace to satisfy the AIR.
// Each builder kind reacts differently: the degree builder folds c into a
// running maximum, the debug builder reports c through its onViolation
// callback if c is nonzero, and the
// numeric folder accumulates c into its running extension-field sum.
func (f *Folder[T]) AssertZero(c T) {
	f.onAssertZero(c)
}

// AIR is the contract a computation's constraint set must satisfy:
// Width reports the trace's column count, and the package-level Eval
// function for a concrete AIR type is written once and called with each of
// the three Folder instantiations in turn.
type AIR interface {
	Width() int
}

// NewDegreeFolder builds a Folder[Degree] seeded with degree-1 trace
// columns and degree-1 selectors, degree-0 public values. The returned
// closure reads the maximum degree over every constraint asserted during
// Eval - this is how the AIR's overall constraint degree is derived.
func NewDegreeFolder(width, numPublic int) (*Folder[Degree], func() int) {
	local := make([]Degree, width)
	next := make([]Degree, width)
	for i := range local {
		local[i] = Degree{D: 1}
		next[i] = Degree{D: 1}
	}
	public := make([]Degree, numPublic)

	maxDeg := 0
	f := &Folder[Degree]{
		Ring:         DegreeRing{},
		Local:        local,
		Next:         next,
		Public:       public,
		IsFirstRow:   Degree{D: 1},
		IsLastRow:    Degree{D: 1},
		IsTransition: Degree{D: 1},
	}
	f.onAssertZero = func(c Degree) {
		if c.D > maxDeg {
			maxDeg = c.D
		}
	}
	return f, func() int { return maxDeg }
}

// NewDebugFolder builds a Folder[field.Elem] over one concrete row of the
// raw trace, calling onViolation for every asserted constraint that
// evaluates to nonzero - the optional debug constraint check run before
// proving, so a broken trace fails fast with a precise row/constraint
// instead of silently producing an unsound proof.
func NewDebugFolder(
	local, next, public []field.Elem,
	isFirstRow, isLastRow, isTransition field.Elem,
	onViolation func(constraintIndex int, value field.Elem),
) *Folder[field.Elem] {
	idx := 0
	f := &Folder[field.Elem]{
		Ring:         algebra.BaseRing{},
		Local:        local,
		Next:         next,
		Public:       public,
		IsFirstRow:   isFirstRow,
		IsLastRow:    isLastRow,
		IsTransition: isTransition,
	}
	f.onAssertZero = func(c field.Elem) {
		if !field.IsZero(c) {
			onViolation(idx, c)
		}
		idx++
	}
	return f
}

// NewNumericFolder builds a Folder[field.Elem] over one row of the
// (possibly extended) trace that accumulates every asserted constraint into
// a running extension-field sum via Horner's rule: acc <- acc*alpha + c_k.
// The returned closure reads the final accumulator.
func NewNumericFolder(
	local, next, public []field.Elem,
	isFirstRow, isLastRow, isTransition field.Elem,
	alpha field.Ext,
) (*Folder[field.Elem], func() field.Ext) {
	acc := field.ExtZero
	f := &Folder[field.Elem]{
		Ring:         algebra.BaseRing{},
		Local:        local,
		Next:         next,
		Public:       public,
		IsFirstRow:   isFirstRow,
		IsLastRow:    isLastRow,
		IsTransition: isTransition,
	}
	f.onAssertZero = func(c field.Elem) {
		acc = field.ExtAdd(field.ExtMul(acc, alpha), field.FromBase(c))
	}
	return f, func() field.Ext { return acc }
}
