package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/luxfi/sss/protocols/shamir"
	"github.com/spf13/cobra"
)

type recoverOptions struct {
	inputFile    string
	threshold    int
	secretFormat string
	outputFile   string
}

func newRecoverCmd(a *app) *cobra.Command {
	opts := &recoverOptions{}
	cmd := &cobra.Command{
		Use:   "recover [share...]",
		Short: "Recover a secret from shares",
		Long: `Recover a secret from at least K shares given as arguments or read from
a file ("-" reads standard input). Envelope and JSON shares carry their own
prime and threshold; hex shares use --prime and --threshold.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecover(cmd, a, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.inputFile, "input", "i", "", "File containing shares")
	cmd.Flags().IntVarP(&opts.threshold, "threshold", "k", 0, "Threshold K, required for hex shares")
	cmd.Flags().StringVarP(&opts.secretFormat, "secret-format", "f", formatText, "Output format: text, hex, decimal")
	cmd.Flags().StringVarP(&opts.outputFile, "output", "o", "", "Output file for the secret")
	return cmd
}

func runRecover(cmd *cobra.Command, a *app, opts *recoverOptions, args []string) error {
	data, err := opts.input(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	f, err := a.cfg.Field()
	if err != nil {
		return err
	}
	in, err := readShares(data, a.cfg.Encoding, f)
	if err != nil {
		return err
	}

	threshold := in.threshold
	if threshold == 0 {
		threshold = opts.threshold
	}
	if threshold == 0 {
		threshold = a.cfg.Threshold
	}
	if threshold == 0 {
		return fmt.Errorf("%w: %s shares carry no threshold, pass --threshold or set it in the config",
			shamir.ErrInvalidThreshold, a.cfg.Encoding)
	}

	start := time.Now()
	secret, err := shamir.RecoverBig(in.field, threshold, in.shares)
	if err != nil {
		return err
	}
	a.log.Timed("recover", start, "shares", len(in.shares), "threshold", threshold)

	out, err := formatSecret(secret, opts.secretFormat)
	if err != nil {
		return err
	}
	if opts.outputFile == "" {
		out += "\n"
	}
	if err := writeOutput(cmd.OutOrStdout(), opts.outputFile, []byte(out)); err != nil {
		return err
	}
	a.log.Info("recover complete", "shares", len(in.shares), "bits", in.field.BitLen())
	return nil
}

// input gathers raw share text from arguments or the input file.
func (o *recoverOptions) input(stdin io.Reader, args []string) ([]byte, error) {
	switch {
	case len(args) > 0 && o.inputFile != "":
		return nil, fmt.Errorf("give shares as arguments or --input, not both")
	case len(args) > 0:
		return []byte(strings.Join(args, "\n")), nil
	case o.inputFile == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read shares: %w", err)
		}
		return data, nil
	case o.inputFile != "":
		data, err := os.ReadFile(o.inputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read shares: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("no shares given")
	}
}
