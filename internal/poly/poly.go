// Package poly implements dense polynomials over GF(2^8).
//
// A Polynomial is immutable once built: the splitter constructs one per
// secret byte with random non-constant coefficients, and tests (or the
// optional explicit-coefficient recovery path) build one directly from a
// set of points via Lagrange interpolation. Incremental recovery does not
// use this package at all — see internal/lagrange for that.
package poly

import (
	"crypto/rand"
	"fmt"

	"github.com/lcrostarosa/airgapper-sss/internal/field"
)

// Polynomial is an ordered sequence of coefficients c0..cd, low degree
// first. Value at x is sum(c_i * x^i).
type Polynomial struct {
	coefficients []field.Elem
}

// New wraps a coefficient slice as a Polynomial. The slice is copied so the
// caller may reuse or mutate its original.
func New(coefficients []field.Elem) Polynomial {
	c := make([]field.Elem, len(coefficients))
	copy(c, coefficients)
	return Polynomial{coefficients: c}
}

// Random builds a polynomial of the given degree whose constant term is
// intercept and whose remaining degree coefficients are drawn from a
// cryptographically secure random source. degree must be >= 0; degree 0
// yields the constant polynomial P(x) = intercept.
func Random(intercept field.Elem, degree int) (Polynomial, error) {
	if degree < 0 {
		return Polynomial{}, fmt.Errorf("poly: degree must be non-negative, got %d", degree)
	}
	coeffs := make([]field.Elem, degree+1)
	coeffs[0] = intercept
	if degree > 0 {
		if _, err := rand.Read(coeffs[1:]); err != nil {
			return Polynomial{}, fmt.Errorf("poly: failed to generate random coefficients: %w", err)
		}
	}
	return Polynomial{coefficients: coeffs}, nil
}

// Degree returns the polynomial's degree.
func (p Polynomial) Degree() int {
	return len(p.coefficients) - 1
}

// Coefficients returns a copy of the polynomial's coefficients, c0 first.
func (p Polynomial) Coefficients() []field.Elem {
	c := make([]field.Elem, len(p.coefficients))
	copy(c, p.coefficients)
	return c
}

// Evaluate computes P(x) using Horner's method, walking the coefficients
// from highest degree down to the constant term.
func (p Polynomial) Evaluate(x field.Elem) field.Elem {
	if len(p.coefficients) == 0 {
		return field.Zero
	}
	if x == 0 {
		return p.coefficients[0]
	}
	degree := len(p.coefficients) - 1
	value := p.coefficients[degree]
	for i := degree - 1; i >= 0; i-- {
		value = field.Add(field.Mul(value, x), p.coefficients[i])
	}
	return value
}

// Point is a single (x, y) sample of a polynomial.
type Point struct {
	X, Y field.Elem
}

// FromPoints reconstructs the unique polynomial of degree < len(points)
// passing through all the given points, using the standard (non-barycentric)
// Lagrange expansion. This is used by tests and by the optional explicit
// "Lagrange coefficient" recovery path; the incremental recovery flow uses
// internal/lagrange's barycentric interpolator instead, which never
// materializes the coefficients.
func FromPoints(points []Point) (Polynomial, error) {
	n := len(points)
	if n == 0 {
		return Polynomial{}, fmt.Errorf("poly: cannot interpolate from zero points")
	}

	seen := make(map[field.Elem]struct{}, n)
	for _, p := range points {
		if p.X == 0 {
			return Polynomial{}, fmt.Errorf("poly: invalid point with x = 0")
		}
		if _, dup := seen[p.X]; dup {
			return Polynomial{}, fmt.Errorf("poly: duplicate x coordinate %d", p.X)
		}
		seen[p.X] = struct{}{}
	}

	result := make([]field.Elem, n)

	for _, pt := range points {
		// termCoeffs accumulates the coefficients of y_i * L_i(x), the i-th
		// Lagrange basis polynomial scaled by its sample value, built up
		// incrementally as a product of (x - x_j) monomials.
		termCoeffs := make([]field.Elem, n)
		termCoeffs[0] = pt.Y

		denom := field.One
		for _, other := range points {
			if other.X == pt.X {
				continue
			}
			denom = field.Mul(denom, field.Add(pt.X, other.X))

			// Multiply the running polynomial (in termCoeffs) by (x - other.X),
			// which in GF(2^8) is (x + other.X) since subtraction is XOR.
			var carry field.Elem
			for i := range termCoeffs {
				next := field.Add(field.Mul(termCoeffs[i], other.X), carry)
				carry = termCoeffs[i]
				termCoeffs[i] = next
			}
		}

		invDenom := field.Inv(denom)
		for i := range result {
			result[i] = field.Add(result[i], field.Mul(termCoeffs[i], invDenom))
		}
	}

	return Polynomial{coefficients: result}, nil
}
