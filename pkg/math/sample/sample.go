// Package sample draws uniformly distributed field elements.
package sample

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/luxfi/sss/pkg/math/field"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/chacha20"
)

// maxIterations bounds rejection sampling. Each attempt succeeds with
// probability above 1/2, so hitting the bound means the reader is broken.
const maxIterations = 256

// ErrMaxIterations is returned when rejection sampling fails to produce an element.
var ErrMaxIterations = errors.New("sample: reached max iterations")

// deterministicContext separates seeded streams from any other blake3 use.
const deterministicContext = "luxfi/sss 2024-05-01 deterministic sample source"

// Source supplies field elements drawn uniformly from [0, p).
// Implementations must be cryptographically secure for production use.
type Source interface {
	Element(f *field.Field) (field.Element, error)
}

type readerSource struct {
	r io.Reader
}

// FromReader returns a Source drawing bytes from r.
func FromReader(r io.Reader) Source {
	return &readerSource{r: r}
}

// Secure returns a Source backed by crypto/rand.
func Secure() Source {
	return FromReader(rand.Reader)
}

// Element samples by rejection: read ByteLen bytes, clear the bits above
// BitLen, and retry until the candidate is below p.
func (s *readerSource) Element(f *field.Field) (field.Element, error) {
	buf := make([]byte, f.ByteLen())
	mask := byte(0xff)
	if extra := 8*f.ByteLen() - f.BitLen(); extra > 0 {
		mask >>= uint(extra)
	}
	defer clear(buf)

	for i := 0; i < maxIterations; i++ {
		if _, err := io.ReadFull(s.r, buf); err != nil {
			return field.Element{}, fmt.Errorf("sample: read randomness: %w", err)
		}
		buf[0] &= mask
		e, err := f.FromBytes(buf)
		if err == nil {
			return e, nil
		}
	}
	return field.Element{}, ErrMaxIterations
}

// Deterministic returns a Source whose output is fully determined by seed.
// The stream is chacha20 keyed with blake3.DeriveKey(seed), which is a
// secure generator only while the seed stays secret and is never reused.
func Deterministic(seed []byte) Source {
	var key [chacha20.KeySize]byte
	blake3.DeriveKey(deterministicContext, seed, key[:])
	nonce := make([]byte, chacha20.NonceSize)
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		// Only reachable with a wrong key or nonce size.
		panic(err)
	}
	clear(key[:])
	return FromReader(&keystream{c: c})
}

type keystream struct {
	c *chacha20.Cipher
}

func (k *keystream) Read(p []byte) (int, error) {
	clear(p)
	k.c.XORKeyStream(p, p)
	return len(p), nil
}

// Scalars draws n elements from src in order. On failure the elements
// already drawn are zeroized before the error is returned.
func Scalars(src Source, f *field.Field, n int) ([]field.Element, error) {
	out := make([]field.Element, n)
	for i := range out {
		e, err := src.Element(f)
		if err != nil {
			for _, drawn := range out[:i] {
				f.Zeroize(drawn)
			}
			return nil, fmt.Errorf("sample: element %d: %w", i, err)
		}
		out[i] = e
	}
	return out, nil
}
