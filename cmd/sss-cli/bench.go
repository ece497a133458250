package main

import (
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/luxfi/sss/pkg/math/field"
	"github.com/luxfi/sss/pkg/math/sample"
	"github.com/luxfi/sss/pkg/share"
	"github.com/luxfi/sss/protocols/shamir"
	"github.com/spf13/cobra"
)

var benchCases = []struct {
	name      string
	n         int
	threshold int
}{
	{"3-of-5", 5, 3},
	{"5-of-9", 9, 5},
	{"7-of-11", 11, 7},
	{"16-of-32", 32, 16},
	{"128-of-256", 256, 128},
}

func newBenchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run performance benchmarks",
		Long:  `Time split and recover for several group sizes over the configured prime`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBenchmark(cmd, a)
		},
	}
	cmd.Flags().Int("iterations", 10, "Number of benchmark iterations")
	cmd.Flags().String("operation", "all", "Operation to benchmark: split, recover, all")
	cmd.Flags().Int("max-shares", 0, "Skip cases with more shares than this (0 = no limit)")
	return cmd
}

func runBenchmark(cmd *cobra.Command, a *app) error {
	iterations, _ := cmd.Flags().GetInt("iterations")
	operation, _ := cmd.Flags().GetString("operation")
	maxShares, _ := cmd.Flags().GetInt("max-shares")
	if iterations < 1 {
		return fmt.Errorf("iterations must be positive")
	}

	f, err := a.cfg.Field()
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Running %s benchmarks over %s (%d bits)...\n", operation, a.cfg.Prime, f.BitLen())
	fmt.Fprintf(w, "Iterations: %d\n", iterations)

	b := &bench{w: w, f: f, dealer: shamir.NewDealer(f, sample.Secure(), shamir.WithWorkers(a.cfg.Workers)), iterations: iterations, maxShares: maxShares}
	switch operation {
	case "split":
		return b.split()
	case "recover":
		return b.recover()
	case "all":
		if err := b.split(); err != nil {
			return err
		}
		return b.recover()
	default:
		return fmt.Errorf("unknown operation: %s", operation)
	}
}

type bench struct {
	w          io.Writer
	f          *field.Field
	dealer     *shamir.Dealer
	iterations int
	maxShares  int
}

func (b *bench) secret() *big.Int {
	return new(big.Int).Rsh(b.f.Prime(), 1)
}

func (b *bench) split() error {
	fmt.Fprintf(b.w, "\n=== Split Benchmark ===\n")
	for _, tc := range benchCases {
		if b.maxShares > 0 && tc.n > b.maxShares {
			continue
		}
		fmt.Fprintf(b.w, "\nTesting %s:\n", tc.name)
		cfg := shamir.Config{Secret: b.secret(), Shares: tc.n, Threshold: tc.threshold}
		t, err := measure(b.iterations, func() error {
			_, err := b.dealer.Split(cfg)
			return err
		})
		if err != nil {
			return fmt.Errorf("split failed: %w", err)
		}
		t.print(b.w, b.iterations)
	}
	return nil
}

func (b *bench) recover() error {
	fmt.Fprintf(b.w, "\n=== Recover Benchmark ===\n")
	for _, tc := range benchCases {
		if b.maxShares > 0 && tc.n > b.maxShares {
			continue
		}
		fmt.Fprintf(b.w, "\nTesting %s:\n", tc.name)
		shares, err := b.dealer.Split(shamir.Config{Secret: b.secret(), Shares: tc.n, Threshold: tc.threshold})
		if err != nil {
			return fmt.Errorf("setup failed: %w", err)
		}
		subset := share.Set(shares[tc.n-tc.threshold:])
		t, err := measure(b.iterations, func() error {
			_, err := shamir.Recover(b.f, tc.threshold, subset)
			return err
		})
		if err != nil {
			return fmt.Errorf("recover failed: %w", err)
		}
		t.print(b.w, b.iterations)
	}
	return nil
}

type timing struct {
	total, min, max time.Duration
}

func measure(iterations int, fn func() error) (timing, error) {
	t := timing{min: time.Hour}
	for i := 0; i < iterations; i++ {
		start := time.Now()
		if err := fn(); err != nil {
			return timing{}, err
		}
		elapsed := time.Since(start)
		t.total += elapsed
		t.min = min(t.min, elapsed)
		t.max = max(t.max, elapsed)
	}
	return t, nil
}

func (t timing) print(w io.Writer, iterations int) {
	fmt.Fprintf(w, "  Average: %v\n", t.total/time.Duration(iterations))
	fmt.Fprintf(w, "  Min:     %v\n", t.min)
	fmt.Fprintf(w, "  Max:     %v\n", t.max)
	fmt.Fprintf(w, "  Total:   %v\n", t.total)
}
