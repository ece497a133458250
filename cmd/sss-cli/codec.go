package main

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/luxfi/sss/internal/config"
	"github.com/luxfi/sss/pkg/math/field"
	"github.com/luxfi/sss/pkg/share"
)

// Secret formats. Text secrets are read as a big-endian integer of their
// UTF-8 bytes.
const (
	formatText    = "text"
	formatHex     = "hex"
	formatDecimal = "decimal"
)

func parseSecret(s, format string) (*big.Int, error) {
	switch strings.ToLower(format) {
	case formatText:
		return new(big.Int).SetBytes([]byte(s)), nil
	case formatHex:
		raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
		if err != nil {
			return nil, fmt.Errorf("invalid hex secret: %w", err)
		}
		return new(big.Int).SetBytes(raw), nil
	case formatDecimal:
		v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
		if !ok {
			return nil, fmt.Errorf("invalid decimal secret")
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unknown secret format: %s", format)
	}
}

// formatSecret renders v in format. Leading zero bytes of a text secret are
// not preserved.
func formatSecret(v *big.Int, format string) (string, error) {
	switch strings.ToLower(format) {
	case formatText:
		return string(v.Bytes()), nil
	case formatHex:
		raw := v.Bytes()
		if len(raw) == 0 {
			raw = []byte{0}
		}
		return hex.EncodeToString(raw), nil
	case formatDecimal:
		return v.String(), nil
	default:
		return "", fmt.Errorf("unknown secret format: %s", format)
	}
}

// writeShares encodes shares ordered by x, one per line or as a single JSON
// bundle.
func writeShares(w io.Writer, encoding string, f *field.Field, threshold int, shares share.Set) error {
	shares = shares.Sorted()
	switch encoding {
	case config.EncodingHex:
		for _, s := range shares {
			if _, err := fmt.Fprintln(w, hex.EncodeToString(share.Encode(f, s))); err != nil {
				return err
			}
		}
	case config.EncodingEnvelope:
		for _, s := range shares {
			sealed, err := share.Seal(f, threshold, s)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(w, hex.EncodeToString(sealed)); err != nil {
				return err
			}
		}
	case config.EncodingJSON:
		data, err := json.MarshalIndent(&share.Bundle{Field: f, Threshold: threshold, Shares: shares}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal shares: %w", err)
		}
		if _, err := fmt.Fprintln(w, string(data)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown encoding: %s", encoding)
	}
	return nil
}

// shareInput is a decoded set of shares with whatever parameters the
// encoding carried. Threshold is zero when the encoding has none.
type shareInput struct {
	field     *field.Field
	threshold int
	shares    share.Set
}

// readShares decodes shares in encoding. Hex shares carry no parameters and
// are decoded in f.
func readShares(data []byte, encoding string, f *field.Field) (*shareInput, error) {
	if encoding == config.EncodingJSON {
		var b share.Bundle
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("failed to parse share bundle: %w", err)
		}
		return &shareInput{field: b.Field, threshold: b.Threshold, shares: b.Shares}, nil
	}

	lines, err := shareLines(data)
	if err != nil {
		return nil, err
	}
	switch encoding {
	case config.EncodingHex:
		in := &shareInput{field: f}
		for i, raw := range lines {
			s, err := share.Decode(f, raw)
			if err != nil {
				return nil, fmt.Errorf("share %d: %w", i+1, err)
			}
			in.shares = append(in.shares, s)
		}
		return in, nil
	case config.EncodingEnvelope:
		gf, threshold, shares, err := share.OpenAll(lines)
		if err != nil {
			return nil, err
		}
		return &shareInput{field: gf, threshold: threshold, shares: shares}, nil
	default:
		return nil, fmt.Errorf("unknown encoding: %s", encoding)
	}
}

// shareLines hex-decodes every non-empty line that is not a # comment.
func shareLines(data []byte) ([][]byte, error) {
	var out [][]byte
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		raw, err := hex.DecodeString(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid hex: %w", n, err)
		}
		out = append(out, raw)
	}
	return out, scanner.Err()
}
