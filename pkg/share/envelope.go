package share

import (
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/fxamacker/cbor/v2"
	"github.com/luxfi/sss/pkg/math/field"
	"github.com/zeebo/blake3"
)

// EnvelopeVersion is the only envelope layout understood by Open.
const EnvelopeVersion = 1

var (
	// ErrChecksum is returned when an envelope was corrupted.
	ErrChecksum = errors.New("share: envelope checksum mismatch")
	// ErrVersion is returned for an unknown envelope version.
	ErrVersion = errors.New("share: unsupported envelope version")
	// ErrPrimeMismatch is returned when shares from different fields are mixed.
	ErrPrimeMismatch = errors.New("share: prime mismatch")
)

// envelope is the CBOR layout of a sealed share.
type envelope struct {
	Version   uint8  `cbor:"1,keyasint"`
	Prime     []byte `cbor:"2,keyasint"`
	Threshold uint32 `cbor:"3,keyasint"`
	Share     []byte `cbor:"4,keyasint"`
	Sum       []byte `cbor:"5,keyasint"`
}

// Sealed is a share together with the public parameters needed to use it.
type Sealed struct {
	Field     *field.Field
	Threshold int
	Share     Share
}

// Seal encodes s with its modulus, the threshold, and a blake3 checksum.
func Seal(f *field.Field, threshold int, s Share) ([]byte, error) {
	if threshold < 1 || int64(threshold) > math.MaxUint32 {
		return nil, fmt.Errorf("share: threshold %d out of range", threshold)
	}
	if err := s.Validate(f); err != nil {
		return nil, err
	}
	env := envelope{
		Version:   EnvelopeVersion,
		Prime:     f.Prime().Bytes(),
		Threshold: uint32(threshold),
		Share:     Encode(f, s),
	}
	env.Sum = env.checksum()
	return cbor.Marshal(env)
}

// Open decodes and verifies a sealed share.
func Open(data []byte) (*Sealed, error) {
	var env envelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("share: decode envelope: %w", err)
	}
	if env.Version != EnvelopeVersion {
		return nil, fmt.Errorf("%w: %d", ErrVersion, env.Version)
	}
	if subtle.ConstantTimeCompare(env.Sum, env.checksum()) != 1 {
		return nil, ErrChecksum
	}
	if env.Threshold < 1 {
		return nil, fmt.Errorf("share: threshold %d out of range", env.Threshold)
	}

	f, err := field.New(new(big.Int).SetBytes(env.Prime))
	if err != nil {
		return nil, fmt.Errorf("share: envelope prime: %w", err)
	}
	s, err := Decode(f, env.Share)
	if err != nil {
		return nil, err
	}
	return &Sealed{Field: f, Threshold: int(env.Threshold), Share: s}, nil
}

// OpenAll opens every envelope and checks they agree on field and threshold.
func OpenAll(data [][]byte) (*field.Field, int, Set, error) {
	if len(data) == 0 {
		return nil, 0, nil, errors.New("share: no envelopes")
	}
	var (
		f         *field.Field
		threshold int
		set       = make(Set, 0, len(data))
	)
	for i, d := range data {
		sealed, err := Open(d)
		if err != nil {
			return nil, 0, nil, fmt.Errorf("share: envelope %d: %w", i, err)
		}
		if f == nil {
			f, threshold = sealed.Field, sealed.Threshold
		} else if !f.Equal(sealed.Field) {
			return nil, 0, nil, fmt.Errorf("%w: envelope %d", ErrPrimeMismatch, i)
		} else if threshold != sealed.Threshold {
			return nil, 0, nil, fmt.Errorf("share: envelope %d: threshold %d, expected %d", i, sealed.Threshold, threshold)
		}
		set = append(set, sealed.Share)
	}
	return f, threshold, set, nil
}

func (e *envelope) checksum() []byte {
	h := blake3.New()
	var hdr [1 + 4 + 4]byte
	hdr[0] = e.Version
	binary.BigEndian.PutUint32(hdr[1:5], e.Threshold)
	binary.BigEndian.PutUint32(hdr[5:9], uint32(len(e.Prime)))
	_, _ = h.Write(hdr[:])
	_, _ = h.Write(e.Prime)
	_, _ = h.Write(e.Share)
	return h.Sum(nil)
}
