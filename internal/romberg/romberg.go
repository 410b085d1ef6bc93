// Package romberg provides tolerance-driven adaptive integration via
// trapezoid refinement with Richardson extrapolation. It is the workhorse
// behind redshift-distribution normalization, lensing window integrals, and
// kernel projection integrals, where the caller supplies a per-use tolerance
// rather than a fixed quadrature order.
package romberg

import (
	"errors"
	"math"
)

// Errors returned by the integrator.
var (
	ErrNoConvergence   = errors.New("romberg: integral did not converge within the refinement budget")
	ErrInvalidInterval = errors.New("romberg: integration bounds are not finite")
)

const (
	// maxDivisions bounds the trapezoid refinement depth. The finest level
	// evaluates the integrand at 2^maxDivisions + 1 points.
	maxDivisions = 16

	// minDivisions forces a few refinement levels before accepting
	// convergence, so an oscillatory integrand cannot terminate on a
	// coincidental early agreement.
	minDivisions = 4
)

// Integrate computes the integral of f over [a, b] to the requested
// tolerance. Convergence is declared when successive diagonal Richardson
// estimates agree to within tol in absolute terms, or relative terms for
// results larger than unity. A reversed interval integrates with negated
// sign; a degenerate interval integrates to zero.
func Integrate(f func(float64) float64, a, b, tol float64) (float64, error) {
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return 0, ErrInvalidInterval
	}

	if a == b {
		return 0, nil
	}

	if a > b {
		v, err := Integrate(f, b, a, tol)
		return -v, err
	}

	if tol <= 0 {
		tol = 1e-10
	}

	h := b - a
	prev := []float64{0.5 * h * (f(a) + f(b))}

	for i := 1; i <= maxDivisions; i++ {
		h *= 0.5

		// Trapezoid refinement: only the midpoints new to this level.
		sum := 0.0
		n := 1 << (i - 1)

		for k := range n {
			sum += f(a + float64(2*k+1)*h)
		}

		cur := make([]float64, i+1)
		cur[0] = 0.5*prev[0] + h*sum

		p4 := 1.0
		for j := 1; j <= i; j++ {
			p4 *= 4
			cur[j] = cur[j-1] + (cur[j-1]-prev[j-1])/(p4-1)
		}

		if i >= minDivisions {
			diff := math.Abs(cur[i] - prev[i-1])
			if diff <= tol*math.Max(1, math.Abs(cur[i])) {
				return cur[i], nil
			}
		}

		prev = cur
	}

	return 0, ErrNoConvergence
}

// Trapezoid integrates tabulated samples ys at strictly increasing abscissae
// xs using the composite trapezoid rule. It is used for one-shot
// normalization of tabulated data where adaptive refinement is impossible.
func Trapezoid(xs, ys []float64) float64 {
	total := 0.0
	for i := 1; i < len(xs) && i < len(ys); i++ {
		total += 0.5 * (ys[i] + ys[i-1]) * (xs[i] - xs[i-1])
	}

	return total
}
