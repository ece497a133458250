// Package config loads defaults for the sss command line tool.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/luxfi/sss/pkg/math/field"
	"gopkg.in/yaml.v3"
)

// Share encodings understood by the CLI.
const (
	EncodingHex      = "hex"
	EncodingEnvelope = "envelope"
	EncodingJSON     = "json"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config holds CLI defaults. Flags override every field.
type Config struct {
	// Prime is a preset name or a decimal or 0x-prefixed hex literal.
	Prime     string `yaml:"prime"`
	Shares    int    `yaml:"shares"`
	Threshold int    `yaml:"threshold"`
	Encoding  string `yaml:"encoding"`
	Workers   int    `yaml:"workers"`
	Verbose   bool   `yaml:"verbose"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Prime:    "mersenne127",
		Encoding: EncodingHex,
	}
}

// Load reads configuration from a YAML file on top of Default and applies
// environment variable overrides.
func Load(path string) (*Config, error) {
	// #nosec G304 - path is supplied by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	ApplyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default without validating.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides applies SSS_* environment variables to cfg. Load calls it
// on top of the file; callers without a file apply it to Default.
func ApplyEnvOverrides(cfg *Config) {
	if prime := os.Getenv("SSS_PRIME"); prime != "" {
		cfg.Prime = prime
	}
	if encoding := os.Getenv("SSS_ENCODING"); encoding != "" {
		cfg.Encoding = encoding
	}
	if workers := os.Getenv("SSS_WORKERS"); workers != "" {
		n, err := strconv.Atoi(workers)
		if err != nil {
			log.Printf("Warning: invalid SSS_WORKERS value %q, using %d: %v", workers, cfg.Workers, err)
		} else {
			cfg.Workers = n
		}
	}
	if verbose := os.Getenv("SSS_VERBOSE"); verbose != "" {
		v, err := strconv.ParseBool(verbose)
		if err != nil {
			log.Printf("Warning: invalid SSS_VERBOSE value %q: %v", verbose, err)
		} else {
			cfg.Verbose = v
		}
	}
}

// Validate checks the shape of the configuration. Shares and threshold may
// be left at zero to be supplied on the command line.
func (c *Config) Validate() error {
	if _, err := c.Field(); err != nil {
		return err
	}
	if c.Shares < 0 {
		return fmt.Errorf("%w: negative share count %d", ErrInvalid, c.Shares)
	}
	if c.Threshold < 0 {
		return fmt.Errorf("%w: negative threshold %d", ErrInvalid, c.Threshold)
	}
	if c.Shares > 0 && c.Threshold > c.Shares {
		return fmt.Errorf("%w: threshold %d exceeds share count %d", ErrInvalid, c.Threshold, c.Shares)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: negative worker count %d", ErrInvalid, c.Workers)
	}
	switch strings.ToLower(c.Encoding) {
	case EncodingHex, EncodingEnvelope, EncodingJSON:
	default:
		return fmt.Errorf("%w: unknown encoding %q", ErrInvalid, c.Encoding)
	}
	return nil
}

// Field resolves Prime to a field.
func (c *Config) Field() (*field.Field, error) {
	p, err := field.ParsePrime(c.Prime)
	if err != nil {
		return nil, fmt.Errorf("%w: prime: %v", ErrInvalid, err)
	}
	f, err := field.New(p)
	if err != nil {
		return nil, fmt.Errorf("%w: prime: %v", ErrInvalid, err)
	}
	return f, nil
}
