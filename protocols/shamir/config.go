package shamir

import (
	"fmt"
	"math/big"

	"github.com/luxfi/sss/pkg/math/field"
	"github.com/luxfi/sss/pkg/share"
)

// Config describes one split: the secret, how many shares to produce, and
// how many are needed to recover it.
type Config struct {
	// Secret is the value to share. It must be below the field prime.
	Secret *big.Int

	// Shares is N, the number of shares produced.
	Shares int

	// Threshold is K, the minimum number of shares needed for recovery.
	Threshold int
}

// Validate checks the configuration against f and returns the secret as a
// field element.
func (c *Config) Validate(f *field.Field) (field.Element, error) {
	if c.Threshold < 1 {
		return field.Element{}, fmt.Errorf("%w: threshold %d is below 1", ErrInvalidThreshold, c.Threshold)
	}
	if c.Shares < 1 {
		return field.Element{}, fmt.Errorf("%w: %d shares", ErrInvalidShareCount, c.Shares)
	}
	if big.NewInt(int64(c.Shares)).Cmp(f.Prime()) >= 0 {
		return field.Element{}, fmt.Errorf("%w: %d shares do not fit below p", ErrInvalidShareCount, c.Shares)
	}
	if c.Threshold > c.Shares {
		return field.Element{}, fmt.Errorf("%w: threshold %d exceeds share count %d", ErrInvalidThreshold, c.Threshold, c.Shares)
	}
	if c.Secret == nil {
		return field.Element{}, fmt.Errorf("%w: missing secret", ErrSecretOutOfRange)
	}
	secret, err := f.FromBig(c.Secret)
	if err != nil {
		return field.Element{}, fmt.Errorf("%w: %v", ErrSecretOutOfRange, err)
	}
	return secret, nil
}

// validateSet applies the recovery policy to shares before any arithmetic runs.
func validateSet(f *field.Field, threshold int, shares share.Set) error {
	if threshold < 1 {
		return fmt.Errorf("%w: threshold %d is below 1", ErrInvalidThreshold, threshold)
	}
	if len(shares) == 0 {
		return ErrNoShares
	}
	for i, s := range shares {
		if err := s.Validate(f); err != nil {
			return fmt.Errorf("%w: share %d: %v", ErrInvalidShare, i, err)
		}
	}
	if i, j, ok := shares.Duplicate(); ok {
		return fmt.Errorf("%w: shares %d and %d both have x = %s", ErrDuplicateShareX, i, j, shares[i].X)
	}
	if len(shares) < threshold {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientShares, len(shares), threshold)
	}
	return nil
}
