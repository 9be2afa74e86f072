package starkprover

import (
	"errors"
	"testing"

	"github.com/tessera-stark/tessera/internal/air"
	"github.com/tessera-stark/tessera/internal/field"
	"github.com/tessera-stark/tessera/internal/matrix"
)

func fibTrace(height int, a0, a1 field.Elem) matrix.Matrix[field.Elem] {
	m := matrix.New[field.Elem](height, 2, field.Zero)
	m.Set(0, 0, a0)
	m.Set(0, 1, a1)
	for row := 1; row < height; row++ {
		prevA, prevB := m.Get(row-1, 0), m.Get(row-1, 1)
		m.Set(row, 0, prevB)
		m.Set(row, 1, field.Add(prevA, prevB))
	}
	return m
}

func TestProveHappyPath(t *testing.T) {
	const height = 16
	public := []field.Elem{field.FromUint64(0), field.FromUint64(1)}
	trace := fibTrace(height, public[0], public[1])

	proof, err := Prove(DefaultConfig(), air.FibonacciAIR{}, trace, Claim{PublicValues: public})
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if proof == nil {
		t.Fatal("Prove returned a nil proof with no error")
	}
}

func TestProveReturnsProverErrorOnWidthMismatch(t *testing.T) {
	trace := matrix.New[field.Elem](8, 5, field.Zero)
	_, err := Prove(DefaultConfig(), air.FibonacciAIR{}, trace, Claim{PublicValues: []field.Elem{field.Zero, field.One}})
	if err == nil {
		t.Fatal("expected an error for a trace whose width does not match the AIR")
	}
	var perr *ProverError
	if !errors.As(err, &perr) {
		t.Fatalf("expected a *ProverError, got %T: %v", err, err)
	}
	if perr.Code != ErrPrecondition {
		t.Errorf("Code = %v, expected ErrPrecondition", perr.Code)
	}
}
