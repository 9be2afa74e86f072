package mmcs

import (
	"bytes"
	"testing"

	"github.com/tessera-stark/tessera/internal/field"
	"github.com/tessera-stark/tessera/internal/matrix"
)

func rangeMatrix(height, width int) matrix.Matrix[field.Elem] {
	values := make([]field.Elem, height*width)
	for i := range values {
		values[i] = field.FromUint64(uint64(i + 1))
	}
	return matrix.FromRows(values, width)
}

func TestCommitSingleMatrixRootDeterministic(t *testing.T) {
	m := rangeMatrix(8, 2)
	c1, err := Commit([]Input[field.Elem]{BaseInput(m)})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	c2, err := Commit([]Input[field.Elem]{BaseInput(m)})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if c1.Root != c2.Root {
		t.Error("committing the same matrix twice produced different roots")
	}
}

func TestCommitDifferentMatricesDifferentRoots(t *testing.T) {
	a := rangeMatrix(8, 2)
	b := rangeMatrix(8, 2)
	b.Set(0, 0, field.Add(b.Get(0, 0), field.One))

	ca, _ := Commit([]Input[field.Elem]{BaseInput(a)})
	cb, _ := Commit([]Input[field.Elem]{BaseInput(b)})
	if ca.Root == cb.Root {
		t.Error("differing matrices committed to the same root")
	}
}

func TestOpenBatchReturnsMatchingRows(t *testing.T) {
	tall := rangeMatrix(8, 2)
	short := rangeMatrix(4, 1)

	c, err := Commit([]Input[field.Elem]{BaseInput(tall), BaseInput(short)})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	for _, index := range []int{0, 3, 7} {
		opening := c.OpenBatch(index)
		if len(opening.Rows) != 2 {
			t.Fatalf("index %d: expected 2 opened rows, got %d", index, len(opening.Rows))
		}
		wantTall := tall.Row(index % tall.Height())
		gotTall := opening.Rows[0]
		for i := range wantTall {
			if gotTall[i] != wantTall[i] {
				t.Fatalf("index %d: tall row mismatch at %d: got %v, expected %v", index, i, gotTall[i], wantTall[i])
			}
		}
		wantShort := short.Row(index % short.Height())
		gotShort := opening.Rows[1]
		for i := range wantShort {
			if gotShort[i] != wantShort[i] {
				t.Fatalf("index %d: short row mismatch at %d: got %v, expected %v", index, i, gotShort[i], wantShort[i])
			}
		}
		if len(opening.Siblings) != field.Log2Strict(tall.Height()) {
			t.Fatalf("index %d: expected %d siblings, got %d", index, field.Log2Strict(tall.Height()), len(opening.Siblings))
		}
	}
}

func TestCommitRejectsEmptyInput(t *testing.T) {
	if _, err := Commit([]Input[field.Elem]{}); err == nil {
		t.Error("Commit with no inputs should return an error")
	}
}

func TestCommitRejectsNonPowerOfTwoHeight(t *testing.T) {
	m := rangeMatrix(6, 1)
	if _, err := Commit([]Input[field.Elem]{BaseInput(m)}); err == nil {
		t.Error("Commit with a non-power-of-two-height matrix should return an error")
	}
}

func TestRowBytesBaseIsDeterministic(t *testing.T) {
	row := []field.Elem{field.FromUint64(1), field.FromUint64(2)}
	a := rowBytesBase(row)
	b := rowBytesBase(row)
	if !bytes.Equal(a, b) {
		t.Error("rowBytesBase is not deterministic for identical input")
	}
}
