// Package share defines Shamir shares and their encodings.
package share

import (
	"errors"
	"fmt"

	"github.com/luxfi/sss/pkg/math/field"
)

var (
	// ErrLength is returned when an encoded share has the wrong size.
	ErrLength = errors.New("share: invalid encoded length")
	// ErrZeroX is returned for a share at x = 0, which would expose the secret.
	ErrZeroX = errors.New("share: x coordinate must be nonzero")
)

// Share is one evaluation (X, f(X)) of the sharing polynomial.
type Share struct {
	X field.Element
	Y field.Element
}

// Validate checks that both coordinates belong to f and that X is nonzero.
func (s Share) Validate(f *field.Field) error {
	if !f.Contains(s.X) {
		return fmt.Errorf("share: x coordinate: %w", field.ErrOutOfRange)
	}
	if !f.Contains(s.Y) {
		return fmt.Errorf("share: y coordinate: %w", field.ErrOutOfRange)
	}
	if s.X.IsZero() {
		return ErrZeroX
	}
	return nil
}

// Equal reports whether both coordinates match.
func (s Share) Equal(other Share) bool {
	return s.X.Equal(other.X) && s.Y.Equal(other.Y)
}

// String prints only the x coordinate; y is secret material.
func (s Share) String() string {
	return fmt.Sprintf("share(x=%s)", s.X)
}

// EncodedLen is the size of a binary encoded share in f.
func EncodedLen(f *field.Field) int {
	return 2 * f.ByteLen()
}

// Encode returns X then Y, each as a fixed-width big-endian integer of
// f.ByteLen() bytes.
func Encode(f *field.Field, s Share) []byte {
	out := make([]byte, 0, EncodedLen(f))
	out = append(out, f.Bytes(s.X)...)
	return append(out, f.Bytes(s.Y)...)
}

// Decode parses the output of Encode.
func Decode(f *field.Field, b []byte) (Share, error) {
	if len(b) != EncodedLen(f) {
		return Share{}, fmt.Errorf("%w: want %d bytes, got %d", ErrLength, EncodedLen(f), len(b))
	}
	n := f.ByteLen()
	x, err := f.FromBytes(b[:n])
	if err != nil {
		return Share{}, fmt.Errorf("share: x coordinate: %w", err)
	}
	y, err := f.FromBytes(b[n:])
	if err != nil {
		return Share{}, fmt.Errorf("share: y coordinate: %w", err)
	}
	s := Share{X: x, Y: y}
	if err := s.Validate(f); err != nil {
		return Share{}, err
	}
	return s, nil
}
