package air

import (
	"fmt"

	"github.com/tessera-stark/tessera/internal/field"
	"github.com/tessera-stark/tessera/internal/matrix"
)

// ConstraintViolationError is raised by CheckConstraints when a constraint
// evaluates to nonzero on the raw trace, reported with enough detail (row,
// constraint index, value) to locate the offending cell.
type ConstraintViolationError struct {
	Row             int
	ConstraintIndex int
	Value           field.Elem
}

func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("air: constraint %d violated at row %d: value %s", e.ConstraintIndex, e.Row, e.Value)
}

// CheckConstraints evaluates the FibonacciAIR directly on the raw,
// un-extended trace, asserting every constraint is zero on every row
// (selectors already zero out boundary/transition contributions where they
// don't apply). This is an optional debug pass, skipped by default for
// performance; the orchestrator calls it only when asked.
func CheckConstraints(a FibonacciAIR, trace matrix.Matrix[field.Elem], publicValues []field.Elem) error {
	height := trace.Height()
	var violation *ConstraintViolationError

	for row := 0; row < height; row++ {
		local := trace.Row(row)
		next := trace.Row((row + 1) % height)

		isFirstRow := field.Zero
		if row == 0 {
			isFirstRow = field.One
		}
		isLastRow := field.Zero
		if row == height-1 {
			isLastRow = field.One
		}
		isTransition := field.Sub(field.One, isLastRow)

		folder := NewDebugFolder(local, next, publicValues, isFirstRow, isLastRow, isTransition,
			func(constraintIndex int, value field.Elem) {
				if violation == nil {
					violation = &ConstraintViolationError{Row: row, ConstraintIndex: constraintIndex, Value: value}
				}
			})
		Eval(a, folder)

		if violation != nil {
			return violation
		}
	}
	return nil
}
