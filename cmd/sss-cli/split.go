package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/luxfi/sss/pkg/math/sample"
	"github.com/luxfi/sss/protocols/shamir"
	"github.com/spf13/cobra"
)

type splitOptions struct {
	secret       string
	secretFile   string
	secretFormat string
	shares       int
	threshold    int
	seed         string
	outputFile   string
}

func newSplitCmd(a *app) *cobra.Command {
	opts := &splitOptions{}
	cmd := &cobra.Command{
		Use:   "split [secret shares threshold]",
		Short: "Split a secret into shares",
		Long: `Split a secret into N shares, any K of which recover it.
The secret, share count and threshold may be given positionally or by flag.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 3 {
				return fmt.Errorf("expected <secret> <shares> <threshold> or flags, got %d arguments", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(cmd, a, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.secret, "secret", "s", "", "Secret to split")
	cmd.Flags().StringVar(&opts.secretFile, "secret-file", "", "File containing the secret (one trailing newline is ignored)")
	cmd.Flags().StringVarP(&opts.secretFormat, "secret-format", "f", formatText, "Secret format: text, hex, decimal")
	cmd.Flags().IntVarP(&opts.shares, "shares", "n", 0, "Number of shares N")
	cmd.Flags().IntVarP(&opts.threshold, "threshold", "k", 0, "Shares needed to recover K")
	cmd.Flags().StringVar(&opts.seed, "seed", "", "Derive coefficients from a seed (reproducible, testing only)")
	cmd.Flags().StringVarP(&opts.outputFile, "output", "o", "", "Output file for shares")
	cmd.MarkFlagsMutuallyExclusive("secret", "secret-file")
	return cmd
}

func runSplit(cmd *cobra.Command, a *app, opts *splitOptions, args []string) error {
	raw, n, k, err := opts.resolve(cmd, a, args)
	if err != nil {
		return err
	}
	secret, err := parseSecret(raw, opts.secretFormat)
	if err != nil {
		return err
	}

	f, err := a.cfg.Field()
	if err != nil {
		return err
	}

	src := sample.Secure()
	if opts.seed != "" {
		a.log.Warn("coefficients derived from seed; shares are reproducible")
		src = sample.Deterministic([]byte(opts.seed))
	}
	dealer := shamir.NewDealer(f, src, shamir.WithWorkers(a.cfg.Workers))

	start := time.Now()
	shares, err := dealer.Split(shamir.Config{Secret: secret, Shares: n, Threshold: k})
	if err != nil {
		return err
	}
	a.log.Timed("split", start, "shares", n, "threshold", k)

	var buf bytes.Buffer
	if err := writeShares(&buf, a.cfg.Encoding, f, k, shares); err != nil {
		return err
	}
	if err := writeOutput(cmd.OutOrStdout(), opts.outputFile, buf.Bytes()); err != nil {
		return err
	}
	a.log.Info("split complete", "shares", n, "threshold", k, "bits", f.BitLen(), "encoding", a.cfg.Encoding)
	return nil
}

// resolve picks the secret, N and K from positional arguments or from flags
// over the configuration file. Positional arguments cannot be mixed with the
// secret, shares or threshold flags.
func (o *splitOptions) resolve(cmd *cobra.Command, a *app, args []string) (secret string, n, k int, err error) {
	if len(args) == 3 {
		for _, name := range []string{"secret", "secret-file", "shares", "threshold"} {
			if cmd.Flags().Changed(name) {
				return "", 0, 0, fmt.Errorf("give <secret> <shares> <threshold> or --%s, not both", name)
			}
		}
	}

	n, k = a.cfg.Shares, a.cfg.Threshold
	if o.shares != 0 {
		n = o.shares
	}
	if o.threshold != 0 {
		k = o.threshold
	}

	switch {
	case len(args) == 3:
		secret = args[0]
		if n, err = strconv.Atoi(args[1]); err != nil {
			return "", 0, 0, fmt.Errorf("invalid share count %q: %w", args[1], err)
		}
		if k, err = strconv.Atoi(args[2]); err != nil {
			return "", 0, 0, fmt.Errorf("invalid threshold %q: %w", args[2], err)
		}
	case o.secretFile != "":
		data, err := os.ReadFile(o.secretFile)
		if err != nil {
			return "", 0, 0, fmt.Errorf("failed to read secret file: %w", err)
		}
		secret = trimLineEnd(string(data))
	case o.secret != "":
		secret = o.secret
	default:
		return "", 0, 0, fmt.Errorf("no secret given")
	}
	return secret, n, k, nil
}

// trimLineEnd drops one trailing "\n" or "\r\n", the file's line terminator.
func trimLineEnd(s string) string {
	if trimmed, ok := strings.CutSuffix(s, "\r\n"); ok {
		return trimmed
	}
	return strings.TrimSuffix(s, "\n")
}

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
