package field

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Preset is a named, well-known prime modulus.
type Preset struct {
	Name        string
	Description string
	prime       func() *big.Int
}

// Prime returns a fresh copy of the preset modulus.
func (p Preset) Prime() *big.Int { return p.prime() }

// Field returns the field for the preset modulus.
func (p Preset) Field() *Field { return MustNew(p.prime()) }

func mersenne(exp uint) func() *big.Int {
	return func() *big.Int {
		m := new(big.Int).Lsh(big.NewInt(1), exp)
		return m.Sub(m, big.NewInt(1))
	}
}

var presets = map[string]Preset{
	"mersenne61": {
		Name:        "mersenne61",
		Description: "2^61 - 1, development only",
		prime:       mersenne(61),
	},
	"mersenne89": {
		Name:        "mersenne89",
		Description: "2^89 - 1",
		prime:       mersenne(89),
	},
	"mersenne107": {
		Name:        "mersenne107",
		Description: "2^107 - 1",
		prime:       mersenne(107),
	},
	"mersenne127": {
		Name:        "mersenne127",
		Description: "2^127 - 1",
		prime:       mersenne(127),
	},
	"mersenne521": {
		Name:        "mersenne521",
		Description: "2^521 - 1",
		prime:       mersenne(521),
	},
	"secp256k1-n": {
		Name:        "secp256k1-n",
		Description: "order of the secp256k1 group",
		prime:       func() *big.Int { return new(big.Int).Set(secp256k1.S256().Params().N) },
	},
	"secp256k1-p": {
		Name:        "secp256k1-p",
		Description: "secp256k1 base field prime, 2^256 - 2^32 - 977",
		prime:       func() *big.Int { return new(big.Int).Set(secp256k1.S256().Params().P) },
	},
}

// Presets returns every known preset sorted by name.
func Presets() []Preset {
	out := make([]Preset, 0, len(presets))
	for _, p := range presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// LookupPreset returns the preset with the given name.
func LookupPreset(name string) (Preset, bool) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// ParsePrime resolves s to a modulus. s is either a preset name, a decimal
// literal, or a hexadecimal literal prefixed with 0x.
func ParsePrime(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("field: empty prime")
	}
	if p, ok := LookupPreset(s); ok {
		return p.Prime(), nil
	}
	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("field: unknown preset or malformed prime %q", s)
	}
	return v, nil
}
