package shamir_test

import (
	"math/big"
	"math/rand"
	"testing/quick"

	"github.com/luxfi/sss/pkg/math/field"
	"github.com/luxfi/sss/pkg/math/sample"
	"github.com/luxfi/sss/pkg/share"
	"github.com/luxfi/sss/protocols/shamir"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// pick returns size shares of set chosen by a seeded shuffle.
func pick(set share.Set, size int, seed int64) share.Set {
	out := append(share.Set(nil), set...)
	rand.New(rand.NewSource(seed)).Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out[:size]
}

var _ = Describe("Shamir Property-Based Tests", func() {
	var f *field.Field

	BeforeEach(func() {
		preset, ok := field.LookupPreset("mersenne61")
		Expect(ok).To(BeTrue())
		f = preset.Field()
	})

	reduce := func(raw uint64) *big.Int {
		return new(big.Int).Mod(new(big.Int).SetUint64(raw), f.Prime())
	}

	It("should recover any secret from any threshold subset", func() {
		property := func(raw uint64, nRaw, kRaw uint8, seed int64) bool {
			n := int(nRaw%20) + 1    // n in [1, 20]
			k := int(kRaw%uint8(n)) + 1 // k in [1, n]
			secret := reduce(raw)

			shares, err := shamir.NewDealer(f, nil).Split(shamir.Config{Secret: secret, Shares: n, Threshold: k})
			if err != nil {
				return false
			}
			got, err := shamir.RecoverBig(f, k, pick(shares, k, seed))
			return err == nil && got.Cmp(secret) == 0
		}

		Expect(quick.Check(property, &quick.Config{MaxCount: 100})).To(Succeed())
	})

	It("should give the same value for every superset of a threshold subset", func() {
		property := func(raw uint64, nRaw, kRaw, extraRaw uint8, seed int64) bool {
			n := int(nRaw%15) + 2
			k := int(kRaw%uint8(n)) + 1
			size := k + int(extraRaw%uint8(n-k+1)) // size in [k, n]
			secret := reduce(raw)

			shares, err := shamir.NewDealer(f, nil).Split(shamir.Config{Secret: secret, Shares: n, Threshold: k})
			if err != nil {
				return false
			}
			small, err := shamir.RecoverBig(f, k, pick(shares, k, seed))
			if err != nil {
				return false
			}
			large, err := shamir.RecoverBig(f, k, pick(shares, size, seed+1))
			return err == nil && small.Cmp(large) == 0
		}

		Expect(quick.Check(property, &quick.Config{MaxCount: 50})).To(Succeed())
	})

	It("should refuse fewer than threshold shares", func() {
		property := func(nRaw, kRaw uint8, seed int64) bool {
			n := int(nRaw%15) + 2
			k := int(kRaw%uint8(n-1)) + 2 // k in [2, n]

			shares, err := shamir.NewDealer(f, nil).Split(shamir.Config{Secret: big.NewInt(1), Shares: n, Threshold: k})
			if err != nil {
				return false
			}
			_, err = shamir.Recover(f, k, pick(shares, k-1, seed))
			return err != nil
		}

		Expect(quick.Check(property, &quick.Config{MaxCount: 50})).To(Succeed())
	})

	It("should produce identical shares from identical seeds", func() {
		property := func(raw uint64, seed []byte) bool {
			cfg := shamir.Config{Secret: reduce(raw), Shares: 4, Threshold: 3}
			a, err := shamir.NewDealer(f, sample.Deterministic(seed)).Split(cfg)
			if err != nil {
				return false
			}
			b, err := shamir.NewDealer(f, sample.Deterministic(seed)).Split(cfg)
			if err != nil {
				return false
			}
			for i := range a {
				if !a[i].Equal(b[i]) {
					return false
				}
			}
			return true
		}

		Expect(quick.Check(property, &quick.Config{MaxCount: 20})).To(Succeed())
	})

	It("should keep every share inside the field", func() {
		property := func(raw uint64, nRaw uint8) bool {
			n := int(nRaw%30) + 1
			shares, err := shamir.NewDealer(f, nil).Split(shamir.Config{Secret: reduce(raw), Shares: n, Threshold: (n + 1) / 2})
			if err != nil {
				return false
			}
			for _, s := range shares {
				if s.Validate(f) != nil {
					return false
				}
			}
			return true
		}

		Expect(quick.Check(property, &quick.Config{MaxCount: 50})).To(Succeed())
	})
})
