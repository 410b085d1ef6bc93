// Package besselzero locates positive zeros of the Bessel functions J_n.
// The largest relevant zero bounds the oscillatory projection integral in
// the kernel package: beyond it the integrand has decayed enough to truncate.
package besselzero

import (
	"errors"
	"math"
)

// ErrNoConvergence is returned when Newton refinement of a zero stalls.
var ErrNoConvergence = errors.New("besselzero: zero refinement did not converge")

const (
	maxIter = 60
	tol     = 1e-13
)

// Zeros returns the first n positive zeros of J_order in increasing order.
// Each zero is seeded with the McMahon asymptotic expansion and polished by
// Newton iteration on J_order.
func Zeros(order, n int) ([]float64, error) {
	if n <= 0 {
		return nil, nil
	}

	zeros := make([]float64, n)

	for k := 1; k <= n; k++ {
		x, err := refine(order, mcmahon(order, k))
		if err != nil {
			return nil, err
		}

		zeros[k-1] = x
	}

	return zeros, nil
}

// Last returns the n-th positive zero of J_order.
func Last(order, n int) (float64, error) {
	zeros, err := Zeros(order, n)
	if err != nil {
		return 0, err
	}

	if len(zeros) == 0 {
		return 0, nil
	}

	return zeros[len(zeros)-1], nil
}

// mcmahon returns the McMahon expansion estimate of the k-th zero of
// J_order. Accuracy improves with k; for the low zeros of small orders the
// estimate lands well inside Newton's basin of attraction.
func mcmahon(order, k int) float64 {
	beta := (float64(k) + 0.5*float64(order) - 0.25) * math.Pi
	mu := 4 * float64(order) * float64(order)
	b8 := 8 * beta

	return beta - (mu-1)/b8 - 4*(mu-1)*(7*mu-31)/(3*b8*b8*b8)
}

// refine polishes an estimated zero of J_order with Newton iteration,
// using J_order'(x) = (J_{order-1}(x) - J_{order+1}(x)) / 2.
func refine(order int, x float64) (float64, error) {
	for range maxIter {
		fx := math.Jn(order, x)
		dfx := 0.5 * (math.Jn(order-1, x) - math.Jn(order+1, x))

		if dfx == 0 {
			break
		}

		step := fx / dfx
		x -= step

		if math.Abs(step) <= tol*math.Max(1, math.Abs(x)) {
			return x, nil
		}
	}

	return 0, ErrNoConvergence
}
