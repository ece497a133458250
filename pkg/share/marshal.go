package share

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/luxfi/sss/pkg/math/field"
)

// Bundle is a set of shares with the public scheme parameters, as stored in
// a JSON file by the CLI.
type Bundle struct {
	Field     *field.Field
	Threshold int
	Shares    Set
}

type bundleJSON struct {
	Prime     string       `json:"prime"`
	Threshold int          `json:"threshold"`
	Shares    []*shareJSON `json:"shares"`
}

type shareJSON struct {
	X string `json:"x"` // Base64 encoded
	Y string `json:"y"` // Base64 encoded
}

// MarshalJSON implements json.Marshaler
func (b *Bundle) MarshalJSON() ([]byte, error) {
	if b.Field == nil {
		return nil, fmt.Errorf("share: bundle has no field")
	}
	shares := make([]*shareJSON, len(b.Shares))
	for i, s := range b.Shares {
		if err := s.Validate(b.Field); err != nil {
			return nil, fmt.Errorf("share: bundle share %d: %w", i, err)
		}
		shares[i] = &shareJSON{
			X: base64.StdEncoding.EncodeToString(b.Field.Bytes(s.X)),
			Y: base64.StdEncoding.EncodeToString(b.Field.Bytes(s.Y)),
		}
	}

	out := &bundleJSON{
		Prime:     b.Field.Prime().String(),
		Threshold: b.Threshold,
		Shares:    shares,
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler
func (b *Bundle) UnmarshalJSON(data []byte) error {
	var out bundleJSON
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}

	p, ok := new(big.Int).SetString(out.Prime, 10)
	if !ok {
		return fmt.Errorf("share: bundle: malformed prime %q", out.Prime)
	}
	f, err := field.New(p)
	if err != nil {
		return fmt.Errorf("share: bundle: %w", err)
	}

	shares := make(Set, len(out.Shares))
	for i, s := range out.Shares {
		if s == nil {
			return fmt.Errorf("share: bundle: missing share %d", i)
		}
		xBytes, err := base64.StdEncoding.DecodeString(s.X)
		if err != nil {
			return fmt.Errorf("share: bundle: failed to decode x of share %d: %w", i, err)
		}
		yBytes, err := base64.StdEncoding.DecodeString(s.Y)
		if err != nil {
			return fmt.Errorf("share: bundle: failed to decode y of share %d: %w", i, err)
		}
		if len(xBytes) != f.ByteLen() || len(yBytes) != f.ByteLen() {
			return fmt.Errorf("share: bundle: share %d: %w", i, ErrLength)
		}
		sh, err := Decode(f, append(xBytes, yBytes...))
		if err != nil {
			return fmt.Errorf("share: bundle: share %d: %w", i, err)
		}
		shares[i] = sh
	}

	b.Field = f
	b.Threshold = out.Threshold
	b.Shares = shares
	return nil
}
