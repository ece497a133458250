package shamir

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/luxfi/sss/pkg/math/field"
	"github.com/luxfi/sss/pkg/math/polynomial"
	"github.com/luxfi/sss/pkg/share"
)

// Recover reconstructs the secret from at least threshold shares by Lagrange
// interpolation at x = 0. Every share in the set takes part, so any valid
// superset of a threshold subset yields the same value.
func Recover(f *field.Field, threshold int, shares share.Set) (field.Element, error) {
	if err := validateSet(f, threshold, shares); err != nil {
		return field.Element{}, err
	}

	secret, err := polynomial.Interpolate(f, shares.Xs(), shares.Ys())
	if errors.Is(err, field.ErrNonInvertible) {
		return field.Element{}, fmt.Errorf("%w: %v", ErrDuplicateShareX, err)
	}
	if err != nil {
		return field.Element{}, fmt.Errorf("shamir: interpolate: %w", err)
	}
	return secret, nil
}

// RecoverBig is Recover returning the secret as a big.Int.
func RecoverBig(f *field.Field, threshold int, shares share.Set) (*big.Int, error) {
	secret, err := Recover(f, threshold, shares)
	if err != nil {
		return nil, err
	}
	return secret.Big(), nil
}
