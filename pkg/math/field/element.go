package field

import (
	"math/big"

	"github.com/cronokirby/saferith"
)

// Element is an integer reduced modulo the prime of the Field that created it.
// Elements are immutable; every operation returns a fresh value.
// The zero value is not a valid element.
type Element struct {
	nat *saferith.Nat
}

// IsZero reports whether e is the additive identity.
// An uninitialised Element is treated as zero.
func (e Element) IsZero() bool {
	return e.nat == nil || e.nat.EqZero() == 1
}

// Equal reports whether e and other hold the same value.
func (e Element) Equal(other Element) bool {
	if e.nat == nil || other.nat == nil {
		return e.nat == nil && other.nat == nil
	}
	return e.nat.Clone().Eq(other.nat.Clone()) == 1
}

// Big returns e as a big.Int.
func (e Element) Big() *big.Int {
	if e.nat == nil {
		return new(big.Int)
	}
	return e.nat.Big()
}

// Uint64 returns the low 64 bits of e.
func (e Element) Uint64() uint64 {
	return e.Big().Uint64()
}

// String returns e in base 10.
func (e Element) String() string {
	return e.Big().String()
}
