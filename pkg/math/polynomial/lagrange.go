package polynomial

import (
	"errors"
	"fmt"

	"github.com/luxfi/sss/pkg/math/field"
)

// ErrNoPoints is returned when interpolating an empty point set.
var ErrNoPoints = errors.New("polynomial: no points to interpolate")

// Lagrange returns the Lagrange basis values at 0 for the given x coordinates:
//
//	l_i(0) = Π_{j≠i} x_j / (x_j - x_i)
//
// Any repeated coordinate makes a denominator zero and yields field.ErrNonInvertible.
func Lagrange(f *field.Field, xs []field.Element) ([]field.Element, error) {
	if len(xs) == 0 {
		return nil, ErrNoPoints
	}

	// Accumulate numerator and denominator separately so only one inversion
	// is needed per basis value.
	coefficients := make([]field.Element, len(xs))
	for i, xi := range xs {
		num, den := f.One(), f.One()
		for j, xj := range xs {
			if i == j {
				continue
			}
			num = f.Mul(num, xj)
			den = f.Mul(den, f.Sub(xj, xi))
		}
		l, err := f.Div(num, den)
		if err != nil {
			return nil, fmt.Errorf("polynomial: lagrange basis %d: %w", i, err)
		}
		coefficients[i] = l
	}
	return coefficients, nil
}

// Interpolate returns g(0) for the unique polynomial g of degree < len(xs)
// passing through (xs[i], ys[i]). No threshold policy is applied.
func Interpolate(f *field.Field, xs, ys []field.Element) (field.Element, error) {
	if len(xs) != len(ys) {
		return field.Element{}, fmt.Errorf("polynomial: %d x coordinates but %d y coordinates", len(xs), len(ys))
	}
	basis, err := Lagrange(f, xs)
	if err != nil {
		return field.Element{}, err
	}

	sum := f.Zero()
	for i, l := range basis {
		sum = f.Add(sum, f.Mul(ys[i], l))
	}
	return sum, nil
}
