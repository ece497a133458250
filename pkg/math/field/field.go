// Package field implements exact arithmetic in the prime field Z/pZ.
//
// The modulus is supplied by the caller. All arithmetic runs on saferith
// natural numbers sized to the modulus, so products never wrap around
// regardless of how wide p is.
package field

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/cronokirby/saferith"
)

// primalityRounds is the number of Miller-Rabin rounds used by New.
const primalityRounds = 32

var (
	// ErrNotPrime is returned when the supplied modulus is not an odd prime.
	ErrNotPrime = errors.New("field: modulus is not an odd prime")
	// ErrNonInvertible is returned when inverting zero.
	ErrNonInvertible = errors.New("field: element is not invertible")
	// ErrOutOfRange is returned when a value is not in [0, p).
	ErrOutOfRange = errors.New("field: value out of range")
)

// Field is the prime field of integers modulo p.
// A Field is immutable and safe for concurrent use. saferith comparisons
// rewrite the top limb of both operands, so every comparison here runs on
// clones and never on f.p, f.pNat or a caller's Element.
type Field struct {
	p        *saferith.Modulus
	pNat     *saferith.Nat
	pMinus2  *saferith.Nat
	byteLen  int
	bitLen   int
	primeBig *big.Int
}

// New returns the field of integers modulo p.
func New(p *big.Int) (*Field, error) {
	if p == nil || p.Sign() <= 0 {
		return nil, fmt.Errorf("%w: missing modulus", ErrNotPrime)
	}
	if p.Bit(0) == 0 || !p.ProbablyPrime(primalityRounds) {
		return nil, fmt.Errorf("%w: %s", ErrNotPrime, p.String())
	}

	bitLen := p.BitLen()
	exp := new(big.Int).Sub(p, big.NewInt(2))
	pNat := new(saferith.Nat).SetBig(p, bitLen)

	return &Field{
		p:        saferith.ModulusFromNat(pNat.Clone()),
		pNat:     pNat,
		pMinus2:  new(saferith.Nat).SetBig(exp, bitLen),
		byteLen:  (bitLen + 7) / 8,
		bitLen:   bitLen,
		primeBig: new(big.Int).Set(p),
	}, nil
}

// MustNew is like New but panics on an invalid modulus.
// It is intended for package level presets and tests.
func MustNew(p *big.Int) *Field {
	f, err := New(p)
	if err != nil {
		panic(err)
	}
	return f
}

// Prime returns a copy of the modulus.
func (f *Field) Prime() *big.Int {
	return new(big.Int).Set(f.primeBig)
}

// BitLen is the bit length of the modulus.
func (f *Field) BitLen() int { return f.bitLen }

// ByteLen is the fixed width, in bytes, of an encoded element.
func (f *Field) ByteLen() int { return f.byteLen }

// Equal reports whether both fields share the same modulus.
func (f *Field) Equal(other *Field) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.primeBig.Cmp(other.primeBig) == 0
}

// Contains reports whether e is a valid element of this field.
func (f *Field) Contains(e Element) bool {
	if e.nat == nil {
		return false
	}
	_, _, lt := e.nat.Clone().Cmp(f.pNat.Clone())
	return lt == 1
}

func (f *Field) String() string {
	return fmt.Sprintf("GF(p), p = %s (%d bits)", f.primeBig.String(), f.bitLen)
}

// Zero returns the additive identity.
func (f *Field) Zero() Element {
	return f.wrap(new(saferith.Nat).SetUint64(0))
}

// One returns the multiplicative identity.
func (f *Field) One() Element {
	return f.wrap(new(saferith.Nat).SetUint64(1))
}

// FromUint64 returns v mod p.
func (f *Field) FromUint64(v uint64) Element {
	return f.wrap(new(saferith.Nat).SetUint64(v))
}

// FromBig returns v as a field element. Values outside [0, p) are rejected
// rather than reduced, so callers cannot silently lose information.
func (f *Field) FromBig(v *big.Int) (Element, error) {
	if v == nil || v.Sign() < 0 || v.Cmp(f.primeBig) >= 0 {
		return Element{}, fmt.Errorf("%w: value must be in [0, p)", ErrOutOfRange)
	}
	return f.wrap(new(saferith.Nat).SetBig(v, f.bitLen)), nil
}

// FromBytes interprets b as a big-endian unsigned integer in [0, p).
func (f *Field) FromBytes(b []byte) (Element, error) {
	return f.FromBig(new(big.Int).SetBytes(b))
}

// Bytes encodes e as a big-endian integer of exactly ByteLen bytes.
func (f *Field) Bytes(e Element) []byte {
	out := make([]byte, f.byteLen)
	if e.nat == nil {
		return out
	}
	return e.nat.Big().FillBytes(out)
}

// Add returns a + b mod p.
func (f *Field) Add(a, b Element) Element {
	return Element{nat: new(saferith.Nat).ModAdd(a.nat, b.nat, f.p)}
}

// Sub returns a - b mod p.
func (f *Field) Sub(a, b Element) Element {
	return Element{nat: new(saferith.Nat).ModSub(a.nat, b.nat, f.p)}
}

// Mul returns a * b mod p.
func (f *Field) Mul(a, b Element) Element {
	return Element{nat: new(saferith.Nat).ModMul(a.nat, b.nat, f.p)}
}

// Neg returns -a mod p.
func (f *Field) Neg(a Element) Element {
	return Element{nat: new(saferith.Nat).ModNeg(a.nat, f.p)}
}

// Inverse returns a^-1 mod p, computed as a^(p-2) by Fermat's little theorem.
func (f *Field) Inverse(a Element) (Element, error) {
	if a.IsZero() {
		return Element{}, ErrNonInvertible
	}
	return Element{nat: new(saferith.Nat).Exp(a.nat, f.pMinus2, f.p)}, nil
}

// Div returns a / b mod p.
func (f *Field) Div(a, b Element) (Element, error) {
	inv, err := f.Inverse(b)
	if err != nil {
		return Element{}, err
	}
	return f.Mul(a, inv), nil
}

// Copy returns e backed by fresh storage.
func (f *Field) Copy(e Element) Element {
	if e.nat == nil {
		return Element{}
	}
	return f.wrap(e.nat)
}

// Zeroize overwrites the limbs backing e with zero, in place.
// Any Element sharing storage with e observes the change.
func (f *Field) Zeroize(e Element) {
	if e.nat != nil {
		e.nat.ModSub(e.nat, e.nat, f.p)
	}
}

func (f *Field) wrap(n *saferith.Nat) Element {
	return Element{nat: new(saferith.Nat).Mod(n, f.p)}
}
