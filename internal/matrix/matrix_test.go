package matrix

import "testing"

func TestReverseRowsIsInvolution(t *testing.T) {
	height := 16
	values := make([]int, height)
	for i := range values {
		values[i] = i
	}
	m := FromRows(values, 1)

	once := ReverseRows(m.Clone())
	twice := ReverseRows(once.Clone())

	if twice.BitRev != m.BitRev {
		t.Fatalf("BitRev flag not restored: got %v, expected %v", twice.BitRev, m.BitRev)
	}
	for r := 0; r < height; r++ {
		if twice.Get(r, 0) != m.Get(r, 0) {
			t.Fatalf("row %d: reverse(reverse(m)) = %d, expected %d", r, twice.Get(r, 0), m.Get(r, 0))
		}
	}
	if !once.BitRev {
		t.Error("single ReverseRows call should flip BitRev to true")
	}
}

func TestReverseBitsLen(t *testing.T) {
	tests := []struct {
		x, bits, expected uint64
	}{
		{0b001, 3, 0b100},
		{0b110, 3, 0b011},
		{0b0, 4, 0b0},
		{0b1, 1, 0b1},
	}
	for _, tt := range tests {
		if got := ReverseBitsLen(tt.x, int(tt.bits)); got != tt.expected {
			t.Errorf("ReverseBitsLen(%b, %d) = %b, expected %b", tt.x, tt.bits, got, tt.expected)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := FromRows([]int{1, 2, 3, 4}, 2)
	clone := m.Clone()
	clone.Set(0, 0, 999)
	if m.Get(0, 0) == 999 {
		t.Error("mutating a clone mutated the original")
	}
}

func TestHeightAndRow(t *testing.T) {
	m := FromRows([]int{1, 2, 3, 4, 5, 6}, 3)
	if m.Height() != 2 {
		t.Fatalf("Height() = %d, expected 2", m.Height())
	}
	row := m.Row(1)
	if row[0] != 4 || row[1] != 5 || row[2] != 6 {
		t.Fatalf("Row(1) = %v, expected [4 5 6]", row)
	}
}
