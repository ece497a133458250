package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/luxfi/sss/internal/config"
	"github.com/luxfi/sss/internal/logging"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

// app carries global flag values and the resolved configuration shared by
// every subcommand.
type app struct {
	// Global flags
	configPath string
	prime      string
	encoding   string
	workers    int
	verbose    bool

	cfg *config.Config
	log *logging.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: logging.Discard()}

	rootCmd := &cobra.Command{
		Use:   "sss-cli",
		Short: "Shamir secret sharing over prime fields",
		Long: `Split a secret into N shares so that any K of them recover it and
fewer than K reveal nothing. Arithmetic runs in GF(p) for a configurable prime.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVarP(&a.prime, "prime", "p", "", "Prime preset name or literal (default mersenne127)")
	rootCmd.PersistentFlags().StringVarP(&a.encoding, "encoding", "e", "", "Share encoding: hex, envelope, json (default hex)")
	rootCmd.PersistentFlags().IntVar(&a.workers, "workers", 0, "Goroutines evaluating shares (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(
		newSplitCmd(a),
		newRecoverCmd(a),
		newInfoCmd(a),
		newBenchCmd(a),
	)
	return rootCmd
}

// setup resolves the configuration: defaults, then the file, then SSS_*
// environment variables, then flags.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	} else {
		config.ApplyEnvOverrides(cfg)
	}

	flags := cmd.Flags()
	if flags.Changed("prime") {
		cfg.Prime = a.prime
	}
	if flags.Changed("encoding") {
		cfg.Encoding = a.encoding
	}
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if flags.Changed("verbose") {
		cfg.Verbose = a.verbose
	}
	cfg.Encoding = strings.ToLower(cfg.Encoding)
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logging.NewLogger(cmd.ErrOrStderr(), cfg.Verbose).With("cmd", cmd.Name())
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
