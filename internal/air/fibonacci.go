package air

// FibonacciAIR is a trivial AIR: column 0 is the Fibonacci sequence seeded
// by the two public values, column 1 holds the running next term. Grounded
// on the teacher's
// examples/03_add_numbers and examples/07_factorial style of a tiny,
// two-or-three-column arithmetic trace with a boundary+transition
// constraint pair.
//
// Row layout: col0 = a_i, col1 = a_{i+1}.
// Boundary (row 0):   col0 == public_values[0], col1 == public_values[1].
// Transition:         next.col0 == cur.col1, next.col1 == cur.col0+cur.col1.
type FibonacciAIR struct{}

// Width is the trace's column count.
func (FibonacciAIR) Width() int { return 2 }

// Eval is written exactly once and driven through three different
// Folder[T] instantiations (Degree, debug field.Elem, numeric field.Elem)
// by the three call sites in this package and in internal/quotient.
func Eval[T any](_ FibonacciAIR, f *Folder[T]) {
	ring := f.Ring

	boundary0 := ring.Sub(f.Local[0], f.Public[0])
	f.AssertZero(ring.Mul(f.IsFirstRow, boundary0))

	boundary1 := ring.Sub(f.Local[1], f.Public[1])
	f.AssertZero(ring.Mul(f.IsFirstRow, boundary1))

	transition0 := ring.Sub(f.Next[0], f.Local[1])
	f.AssertZero(ring.Mul(f.IsTransition, transition0))

	sum := ring.Add(f.Local[0], f.Local[1])
	transition1 := ring.Sub(f.Next[1], sum)
	f.AssertZero(ring.Mul(f.IsTransition, transition1))
}

// ConstraintDegree derives the AIR's overall constraint degree by
// evaluating it through a Folder[Degree] over symbolic, degree-1 trace
// variables.
func ConstraintDegree(a FibonacciAIR) int {
	folder, maxDegree := NewDegreeFolder(a.Width(), 2)
	Eval(a, folder)
	return maxDegree()
}
