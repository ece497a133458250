package main

import (
	"fmt"

	"github.com/luxfi/sss/pkg/math/field"
	"github.com/luxfi/sss/pkg/share"
	"github.com/spf13/cobra"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display field presets and encodings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, a)
		},
	}
}

func runInfo(cmd *cobra.Command, a *app) error {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Shamir Secret Sharing CLI v%s\n\n", version)

	fmt.Fprintf(w, "Prime Presets:\n")
	for _, p := range field.Presets() {
		f := p.Field()
		fmt.Fprintf(w, "  - %-12s %4d bits, %3d-byte shares: %s\n", p.Name, f.BitLen(), share.EncodedLen(f), p.Description)
	}
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "Share Encodings:\n")
	fmt.Fprintf(w, "  - hex: x || y as fixed-width hex, one share per line\n")
	fmt.Fprintf(w, "  - envelope: CBOR with prime, threshold and blake3 checksum, hex per line\n")
	fmt.Fprintf(w, "  - json: one document with prime, threshold and base64 coordinates\n\n")

	fmt.Fprintf(w, "Secret Formats:\n")
	fmt.Fprintf(w, "  - %s, %s, %s\n", formatText, formatHex, formatDecimal)

	if a.cfg.Verbose {
		f, err := a.cfg.Field()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\nCurrent Prime: %s (%d bits)\n", a.cfg.Prime, f.BitLen())
		fmt.Fprintf(w, "Current Encoding: %s\n", a.cfg.Encoding)
		fmt.Fprintf(w, "Workers: %d\n", a.cfg.Workers)
	}
	return nil
}
