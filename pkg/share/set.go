package share

import (
	"sort"

	"github.com/luxfi/sss/pkg/math/field"
)

// Set is a collection of shares offered for recovery.
type Set []Share

// Xs returns the x coordinates in order.
func (s Set) Xs() []field.Element {
	out := make([]field.Element, len(s))
	for i, sh := range s {
		out[i] = sh.X
	}
	return out
}

// Ys returns the y coordinates in order.
func (s Set) Ys() []field.Element {
	out := make([]field.Element, len(s))
	for i, sh := range s {
		out[i] = sh.Y
	}
	return out
}

// Duplicate returns the indices of the first two shares with equal x
// coordinates, or ok = false when all x coordinates are distinct.
func (s Set) Duplicate() (i, j int, ok bool) {
	seen := make(map[string]int, len(s))
	for idx, sh := range s {
		key := sh.X.String()
		if prev, found := seen[key]; found {
			return prev, idx, true
		}
		seen[key] = idx
	}
	return 0, 0, false
}

// Sorted returns a copy of s ordered by x coordinate.
func (s Set) Sorted() Set {
	out := make(Set, len(s))
	copy(out, s)
	sort.Slice(out, func(i, j int) bool {
		return out[i].X.Big().Cmp(out[j].X.Big()) < 0
	})
	return out
}
