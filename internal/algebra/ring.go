// Package algebra defines the minimal arithmetic capability the generic
// numeric code (the NTT kernels and the AIR constraint folders) needs, so
// that a single generic implementation can be instantiated over both the
// base field and the extension field. The teacher repo duplicates its field
// arithmetic per concrete type instead (core.Field vs core.MersenneField);
// Go's generics let the *shared structural* code - the DFT butterfly
// network, the AIR's Eval function - be written once, while field.Elem and
// field.Ext themselves stay the teacher's separate-concrete-type style.
package algebra

import "github.com/tessera-stark/tessera/internal/field"

// Ring is the arithmetic surface a value type must provide to be usable by
// the generic code in internal/dft and internal/air (internal/fri reaches
// it only through the dft kernels).
type Ring[T any] interface {
	Add(a, b T) T
	Sub(a, b T) T
	Mul(a, b T) T
	Neg(a T) T
	Inv(a T) T
	Zero() T
	One() T
	FromUint64(v uint64) T
	// MulBase scales a value of T by a base-field scalar. Twiddle factors
	// and domain points are always base-field elements even when T is the
	// extension field, so the batched kernels need this cross-type
	// multiplication rather than a same-type Mul.
	MulBase(a T, scalar field.Elem) T
}

// BaseRing implements Ring[field.Elem].
type BaseRing struct{}

func (BaseRing) Add(a, b field.Elem) field.Elem { return field.Add(a, b) }
func (BaseRing) Sub(a, b field.Elem) field.Elem { return field.Sub(a, b) }
func (BaseRing) Mul(a, b field.Elem) field.Elem { return field.Mul(a, b) }
func (BaseRing) Neg(a field.Elem) field.Elem    { return field.Neg(a) }
func (BaseRing) Inv(a field.Elem) field.Elem    { return field.Inv(a) }
func (BaseRing) Zero() field.Elem               { return field.Zero }
func (BaseRing) One() field.Elem                { return field.One }
func (BaseRing) FromUint64(v uint64) field.Elem { return field.FromUint64(v) }
func (BaseRing) MulBase(a field.Elem, scalar field.Elem) field.Elem {
	return field.Mul(a, scalar)
}

// ExtRing implements Ring[field.Ext].
type ExtRing struct{}

func (ExtRing) Add(a, b field.Ext) field.Ext { return field.ExtAdd(a, b) }
func (ExtRing) Sub(a, b field.Ext) field.Ext { return field.ExtSub(a, b) }
func (ExtRing) Mul(a, b field.Ext) field.Ext { return field.ExtMul(a, b) }
func (ExtRing) Neg(a field.Ext) field.Ext    { return field.ExtNeg(a) }
func (ExtRing) Inv(a field.Ext) field.Ext    { return field.ExtInv(a) }
func (ExtRing) Zero() field.Ext              { return field.ExtZero }
func (ExtRing) One() field.Ext               { return field.ExtOne }
func (ExtRing) FromUint64(v uint64) field.Ext { return field.ExtFromUint64(v) }
func (ExtRing) MulBase(a field.Ext, scalar field.Elem) field.Ext {
	return field.ExtMulBase(a, scalar)
}
