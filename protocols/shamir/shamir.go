// Package shamir implements (K, N) threshold secret sharing over a prime field.
//
// A secret s < p becomes the constant term of a random polynomial f of
// degree K-1. Share i is the point (x_i, f(x_i)) for a nonzero x_i. Any K
// shares determine f and therefore s = f(0); any K-1 shares are consistent
// with every possible secret and reveal nothing about it.
//
// The prime p is a public parameter chosen by the caller. It must exceed
// both the secret and N.
package shamir

import (
	"fmt"
	"math/big"

	"github.com/luxfi/sss/pkg/math/field"
	"github.com/luxfi/sss/pkg/math/sample"
	"github.com/luxfi/sss/pkg/share"
)

// Split shares secret into n shares over GF(p), any k of which recover it.
// Coefficients are drawn from src, or from crypto/rand when src is nil.
func Split(secret *big.Int, n, k int, p *big.Int, src sample.Source) (*field.Field, share.Set, error) {
	f, err := field.New(p)
	if err != nil {
		return nil, nil, fmt.Errorf("shamir: %w", err)
	}
	shares, err := NewDealer(f, src).Split(Config{Secret: secret, Shares: n, Threshold: k})
	if err != nil {
		return nil, nil, err
	}
	return f, shares, nil
}
