package shamir

import (
	"fmt"
	"runtime"

	"github.com/luxfi/sss/pkg/math/field"
	"github.com/luxfi/sss/pkg/math/polynomial"
	"github.com/luxfi/sss/pkg/math/sample"
	"github.com/luxfi/sss/pkg/share"
	"golang.org/x/sync/errgroup"
)

// parallelThreshold is the share count below which evaluation stays on the
// calling goroutine.
const parallelThreshold = 64

// Dealer splits secrets over a fixed field.
// A Dealer holds no per-split state and is safe for concurrent use as long
// as its Source is.
type Dealer struct {
	field   *field.Field
	source  sample.Source
	workers int
}

// Option configures a Dealer.
type Option func(*Dealer)

// WithWorkers bounds the number of goroutines evaluating shares.
// Values below 1 select runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(d *Dealer) {
		d.workers = n
	}
}

// NewDealer returns a Dealer over f drawing coefficients from src.
// A nil src selects sample.Secure().
func NewDealer(f *field.Field, src sample.Source, opts ...Option) *Dealer {
	if src == nil {
		src = sample.Secure()
	}
	d := &Dealer{field: f, source: src}
	for _, opt := range opts {
		opt(d)
	}
	if d.workers < 1 {
		d.workers = runtime.GOMAXPROCS(0)
	}
	return d
}

// Field returns the dealer's field.
func (d *Dealer) Field() *field.Field {
	return d.field
}

// Split produces cfg.Shares shares at x = 1..N, any cfg.Threshold of which
// recover cfg.Secret.
func (d *Dealer) Split(cfg Config) (share.Set, error) {
	secret, err := cfg.Validate(d.field)
	if err != nil {
		return nil, err
	}
	defer d.field.Zeroize(secret)
	xs := make([]field.Element, cfg.Shares)
	for i := range xs {
		xs[i] = d.field.FromUint64(uint64(i + 1))
	}
	return d.split(secret, cfg.Threshold, xs)
}

// SplitAt is like Split but evaluates at caller chosen x coordinates, which
// must be distinct and nonzero. cfg.Shares must equal len(xs).
func (d *Dealer) SplitAt(cfg Config, xs []field.Element) (share.Set, error) {
	if cfg.Shares != len(xs) {
		return nil, fmt.Errorf("%w: config wants %d shares, got %d x coordinates", ErrInvalidShareCount, cfg.Shares, len(xs))
	}
	secret, err := cfg.Validate(d.field)
	if err != nil {
		return nil, err
	}
	defer d.field.Zeroize(secret)
	points := make(share.Set, len(xs))
	for i, x := range xs {
		if !d.field.Contains(x) || x.IsZero() {
			return nil, fmt.Errorf("%w: x coordinate %d must be a nonzero field element", ErrInvalidShare, i)
		}
		points[i].X = d.field.Copy(x)
	}
	if i, j, ok := points.Duplicate(); ok {
		return nil, fmt.Errorf("%w: x coordinates %d and %d", ErrDuplicateShareX, i, j)
	}
	return d.split(secret, cfg.Threshold, points.Xs())
}

func (d *Dealer) split(secret field.Element, threshold int, xs []field.Element) (share.Set, error) {
	poly, err := polynomial.NewPolynomial(d.field, threshold-1, secret, d.source)
	if err != nil {
		return nil, fmt.Errorf("shamir: build polynomial: %w", err)
	}
	defer poly.Zeroize()

	shares := make(share.Set, len(xs))
	if len(xs) < parallelThreshold || d.workers == 1 {
		for i, x := range xs {
			shares[i] = share.Share{X: x, Y: poly.Evaluate(x)}
		}
		return shares, nil
	}

	// Each goroutine writes a disjoint range of shares and only reads poly.
	var g errgroup.Group
	g.SetLimit(d.workers)
	chunk := (len(xs) + d.workers - 1) / d.workers
	for start := 0; start < len(xs); start += chunk {
		end := min(start+chunk, len(xs))
		g.Go(func() error {
			for i := start; i < end; i++ {
				shares[i] = share.Share{X: xs[i], Y: poly.Evaluate(xs[i])}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return shares, nil
}
