package shamir_test

import (
	"fmt"
	"math/big"

	"github.com/luxfi/sss/pkg/math/field"
	"github.com/luxfi/sss/pkg/math/polynomial"
	"github.com/luxfi/sss/pkg/share"
	"github.com/luxfi/sss/protocols/shamir"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// subsets returns every k-element subset of set, preserving order.
func subsets(set share.Set, k int) []share.Set {
	var out []share.Set
	var walk func(start int, acc share.Set)
	walk = func(start int, acc share.Set) {
		if len(acc) == k {
			out = append(out, append(share.Set(nil), acc...))
			return
		}
		for i := start; i < len(set); i++ {
			walk(i+1, append(acc, set[i]))
		}
	}
	walk(0, nil)
	return out
}

var _ = Describe("Shamir Secret Sharing", func() {
	var (
		f      *field.Field
		dealer *shamir.Dealer
	)

	BeforeEach(func() {
		preset, ok := field.LookupPreset("mersenne127")
		Expect(ok).To(BeTrue())
		f = preset.Field()
		dealer = shamir.NewDealer(f, nil)
	})

	Describe("Functional Correctness", func() {
		Context("concrete 4-of-6 scenario", func() {
			var shares share.Set

			BeforeEach(func() {
				var err error
				shares, err = dealer.Split(shamir.Config{Secret: big.NewInt(123456789), Shares: 6, Threshold: 4})
				Expect(err).NotTo(HaveOccurred())
				Expect(shares).To(HaveLen(6))
			})

			It("should recover the secret from shares {1,2,3,4} and {2,3,5,6}", func() {
				for _, idx := range [][]int{{0, 1, 2, 3}, {1, 2, 4, 5}} {
					subset := share.Set{shares[idx[0]], shares[idx[1]], shares[idx[2]], shares[idx[3]]}
					secret, err := shamir.Recover(f, 4, subset)
					Expect(err).NotTo(HaveOccurred())
					Expect(secret.Uint64()).To(Equal(uint64(123456789)))
				}
			})

			It("should recover the secret from every 4-subset", func() {
				all := subsets(shares, 4)
				Expect(all).To(HaveLen(15))
				for _, subset := range all {
					secret, err := shamir.Recover(f, 4, subset)
					Expect(err).NotTo(HaveOccurred())
					Expect(secret.Uint64()).To(Equal(uint64(123456789)))
				}
			})

			It("should recover the secret from every 5-subset and the full set", func() {
				for _, subset := range subsets(shares, 5) {
					secret, err := shamir.Recover(f, 4, subset)
					Expect(err).NotTo(HaveOccurred())
					Expect(secret.Uint64()).To(Equal(uint64(123456789)))
				}
				secret, err := shamir.Recover(f, 4, shares)
				Expect(err).NotTo(HaveOccurred())
				Expect(secret.Uint64()).To(Equal(uint64(123456789)))
			})

			It("should reject every 3-subset", func() {
				for _, subset := range subsets(shares, 3) {
					_, err := shamir.Recover(f, 4, subset)
					Expect(err).To(MatchError(shamir.ErrInsufficientShares))
				}
			})

			It("should not yield the secret when interpolating 3 shares directly", func() {
				for _, subset := range subsets(shares, 3) {
					guess, err := polynomial.Interpolate(f, subset.Xs(), subset.Ys())
					Expect(err).NotTo(HaveOccurred())
					Expect(guess.Uint64()).NotTo(Equal(uint64(123456789)))
				}
			})

			It("should not depend on share order", func() {
				reversed := share.Set{shares[5], shares[3], shares[1], shares[0]}
				secret, err := shamir.Recover(f, 4, reversed)
				Expect(err).NotTo(HaveOccurred())
				Expect(secret.Uint64()).To(Equal(uint64(123456789)))
			})
		})

		It("should work with edge case group sizes", func() {
			edgeCases := []struct {
				name      string
				n         int
				threshold int
			}{
				{"T=1", 3, 1},
				{"T=N", 5, 5},
				{"T=ceil(N/2)", 7, 4},
				{"Minimum 1-of-1", 1, 1},
				{"Minimum 2-of-2", 2, 2},
			}

			for _, tc := range edgeCases {
				By(fmt.Sprintf("Testing %s (%d-of-%d)", tc.name, tc.threshold, tc.n))
				secret := big.NewInt(int64(1000 + tc.n))
				shares, err := dealer.Split(shamir.Config{Secret: secret, Shares: tc.n, Threshold: tc.threshold})
				Expect(err).NotTo(HaveOccurred())

				got, err := shamir.Recover(f, tc.threshold, shares[tc.n-tc.threshold:])
				Expect(err).NotTo(HaveOccurred())
				Expect(got.Big().Cmp(secret)).To(BeZero())
			}
		})

		It("should share secrets close to the prime", func() {
			secret := new(big.Int).Sub(f.Prime(), big.NewInt(1))
			shares, err := dealer.Split(shamir.Config{Secret: secret, Shares: 9, Threshold: 5})
			Expect(err).NotTo(HaveOccurred())

			got, err := shamir.Recover(f, 5, shares[2:7])
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Big().Cmp(secret)).To(BeZero())
		})
	})

	Describe("Secrecy Below Threshold", func() {
		It("should change the interpolated value when fresh coefficients are drawn", func() {
			cfg := shamir.Config{Secret: big.NewInt(55), Shares: 5, Threshold: 3}
			seen := map[string]bool{}
			for i := 0; i < 8; i++ {
				shares, err := dealer.Split(cfg)
				Expect(err).NotTo(HaveOccurred())

				guess, err := polynomial.Interpolate(f, shares[:2].Xs(), shares[:2].Ys())
				Expect(err).NotTo(HaveOccurred())
				Expect(guess.Uint64()).NotTo(Equal(uint64(55)))
				seen[guess.String()] = true
			}
			Expect(seen).To(HaveLen(8))
		})

		It("should produce different shares for the same secret", func() {
			cfg := shamir.Config{Secret: big.NewInt(55), Shares: 3, Threshold: 2}
			a, err := dealer.Split(cfg)
			Expect(err).NotTo(HaveOccurred())
			b, err := dealer.Split(cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(a[0].Y.Equal(b[0].Y)).To(BeFalse())
		})
	})

	Describe("Malformed Share Sets", func() {
		var shares share.Set

		BeforeEach(func() {
			var err error
			shares, err = dealer.Split(shamir.Config{Secret: big.NewInt(77), Shares: 5, Threshold: 3})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should reject duplicate x coordinates with different y", func() {
			forged := share.Share{X: shares[0].X, Y: f.Add(shares[0].Y, f.One())}
			_, err := shamir.Recover(f, 3, share.Set{shares[0], shares[1], forged})
			Expect(err).To(MatchError(shamir.ErrDuplicateShareX))
		})

		It("should reject an exact duplicate even with enough distinct shares", func() {
			_, err := shamir.Recover(f, 3, share.Set{shares[0], shares[1], shares[2], shares[2]})
			Expect(err).To(MatchError(shamir.ErrDuplicateShareX))
		})

		It("should reject an empty set", func() {
			_, err := shamir.Recover(f, 3, nil)
			Expect(err).To(MatchError(shamir.ErrNoShares))
		})

		It("should reject a share at x = 0", func() {
			bad := share.Share{X: f.Zero(), Y: shares[0].Y}
			_, err := shamir.Recover(f, 3, share.Set{bad, shares[1], shares[2]})
			Expect(err).To(MatchError(shamir.ErrInvalidShare))
		})

		It("should reject a threshold below 1", func() {
			_, err := shamir.Recover(f, 0, shares)
			Expect(err).To(MatchError(shamir.ErrInvalidThreshold))
		})

		It("should reject shares from another field", func() {
			other := field.MustNew(big.NewInt(65537))
			foreign := share.Share{X: other.FromUint64(9), Y: other.FromUint64(9)}
			small := field.MustNew(big.NewInt(7))
			_, err := shamir.Recover(small, 1, share.Set{foreign})
			Expect(err).To(MatchError(shamir.ErrInvalidShare))
		})
	})

	Describe("Boundary Rejection", func() {
		It("should reject K > N", func() {
			_, err := dealer.Split(shamir.Config{Secret: big.NewInt(1), Shares: 3, Threshold: 4})
			Expect(err).To(MatchError(shamir.ErrInvalidThreshold))
		})

		It("should reject K = 0", func() {
			_, err := dealer.Split(shamir.Config{Secret: big.NewInt(1), Shares: 3, Threshold: 0})
			Expect(err).To(MatchError(shamir.ErrInvalidThreshold))
		})

		It("should reject N >= p", func() {
			small := shamir.NewDealer(field.MustNew(big.NewInt(7)), nil)
			_, err := small.Split(shamir.Config{Secret: big.NewInt(1), Shares: 7, Threshold: 2})
			Expect(err).To(MatchError(shamir.ErrInvalidShareCount))
		})

		It("should reject secret >= p", func() {
			_, err := dealer.Split(shamir.Config{Secret: f.Prime(), Shares: 3, Threshold: 2})
			Expect(err).To(MatchError(shamir.ErrSecretOutOfRange))
		})
	})
})
