// Package testutil provides numeric assertion helpers shared by the
// integration and interpolation tests.
package testutil

import (
	"math"
	"testing"
)

// RequireNear fails t if got and want differ by more than eps in absolute
// terms.
func RequireNear(t *testing.T, got, want, eps float64) {
	t.Helper()

	if diff := math.Abs(got - want); diff > eps {
		t.Fatalf("got %v, want %v (diff %v > eps %v)", got, want, diff, eps)
	}
}

// RequireNearRel fails t if got and want differ by more than eps relative
// to the magnitude of want, with an absolute floor for small values.
func RequireNearRel(t *testing.T, got, want, eps float64) {
	t.Helper()

	scale := math.Max(1, math.Abs(want))
	if diff := math.Abs(got - want); diff > eps*scale {
		t.Fatalf("got %v, want %v (diff %v > eps %v at scale %v)", got, want, diff, eps, scale)
	}
}

// RequireSliceNear fails t if got and want differ in length or any element
// pair exceeds eps (absolute tolerance).
func RequireSliceNear(t *testing.T, got, want []float64, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		if diff := math.Abs(got[i] - want[i]); diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// Linspace returns n evenly spaced values across [lo, hi] inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}

	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)

	for i := range out {
		out[i] = lo + float64(i)*step
	}

	out[n-1] = hi

	return out
}
