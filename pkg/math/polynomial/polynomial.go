// Package polynomial implements univariate polynomials over a prime field.
package polynomial

import (
	"errors"
	"fmt"

	"github.com/luxfi/sss/pkg/math/field"
	"github.com/luxfi/sss/pkg/math/sample"
)

// ErrDegree is returned for a negative degree.
var ErrDegree = errors.New("polynomial: degree must be non-negative")

// Polynomial is f(X) = a_0 + a_1 X + ... + a_t X^t over a prime field.
// It must not be modified once shares have been evaluated from it.
type Polynomial struct {
	field        *field.Field
	coefficients []field.Element
}

// NewPolynomial returns a random polynomial of the given degree whose
// constant term is constant. The remaining coefficients are drawn from src.
func NewPolynomial(f *field.Field, degree int, constant field.Element, src sample.Source) (*Polynomial, error) {
	if degree < 0 {
		return nil, ErrDegree
	}
	if !f.Contains(constant) {
		return nil, fmt.Errorf("polynomial: constant term: %w", field.ErrOutOfRange)
	}

	random, err := sample.Scalars(src, f, degree)
	if err != nil {
		return nil, fmt.Errorf("polynomial: coefficients: %w", err)
	}
	coefficients := make([]field.Element, 0, degree+1)
	coefficients = append(coefficients, f.Copy(constant))
	coefficients = append(coefficients, random...)

	return &Polynomial{field: f, coefficients: coefficients}, nil
}

// FromCoefficients builds a polynomial from explicit coefficients, lowest degree first.
func FromCoefficients(f *field.Field, coefficients []field.Element) (*Polynomial, error) {
	if len(coefficients) == 0 {
		return nil, ErrDegree
	}
	out := make([]field.Element, len(coefficients))
	for i, c := range coefficients {
		if !f.Contains(c) {
			return nil, fmt.Errorf("polynomial: coefficient %d: %w", i, field.ErrOutOfRange)
		}
		out[i] = f.Copy(c)
	}
	return &Polynomial{field: f, coefficients: out}, nil
}

// Evaluate returns f(x) using Horner's method.
func (p *Polynomial) Evaluate(x field.Element) field.Element {
	result := p.field.Zero()
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		result = p.field.Add(p.field.Mul(result, x), p.coefficients[i])
	}
	return result
}

// Constant returns a_0.
func (p *Polynomial) Constant() field.Element {
	return p.coefficients[0]
}

// Degree returns t.
func (p *Polynomial) Degree() int {
	return len(p.coefficients) - 1
}

// Zeroize overwrites every coefficient, including the constant term.
// The polynomial is unusable afterwards.
func (p *Polynomial) Zeroize() {
	for _, c := range p.coefficients {
		p.field.Zeroize(c)
	}
	p.coefficients = p.coefficients[:1]
}
