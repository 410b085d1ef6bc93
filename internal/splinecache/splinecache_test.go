package splinecache

import (
	"errors"
	"math"
	"testing"
)

func TestBuildAndEvaluate(t *testing.T) {
	c := New(64)

	calls := 0
	err := c.Build(0, math.Pi, func(x float64) (float64, error) {
		calls++
		return math.Sin(x), nil
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if calls != 64 {
		t.Fatalf("build sampled %d times, want 64", calls)
	}

	if !c.Valid() {
		t.Fatal("cache invalid after successful build")
	}

	// Knots are reproduced exactly, midpoints to spline-fit error.
	xs, ys := c.Grid()
	for i := range xs {
		if diff := math.Abs(c.At(xs[i]) - ys[i]); diff > 1e-12 {
			t.Fatalf("knot %d: diff %v", i, diff)
		}
	}

	for _, x := range []float64{0.1, 1.0, 2.5, 3.0} {
		if diff := math.Abs(c.At(x) - math.Sin(x)); diff > 1e-4 {
			t.Fatalf("midpoint %v: diff %v", x, diff)
		}
	}
}

func TestBuildFailureLeavesInvalid(t *testing.T) {
	c := New(16)
	boom := errors.New("boom")

	err := c.Build(0, 1, func(x float64) (float64, error) {
		if x > 0.5 {
			return 0, boom
		}

		return x, nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want wrapped boom", err)
	}

	if c.Valid() {
		t.Fatal("cache valid after failed build")
	}

	// A later successful build recovers cleanly.
	if err := c.Build(0, 1, func(x float64) (float64, error) { return x, nil }); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	if !c.Valid() {
		t.Fatal("cache invalid after rebuild")
	}
}

func TestBuildInvalidRange(t *testing.T) {
	c := New(8)
	f := func(x float64) (float64, error) { return x, nil }

	for _, tc := range []struct{ lo, hi float64 }{
		{1, 1},
		{2, 1},
		{math.NaN(), 1},
		{0, math.Inf(1)},
	} {
		if err := c.Build(tc.lo, tc.hi, f); !errors.Is(err, ErrInvalidRange) {
			t.Fatalf("bounds (%v, %v): got %v", tc.lo, tc.hi, err)
		}
	}
}

func TestInvalidate(t *testing.T) {
	c := New(8)
	if err := c.Build(0, 1, func(x float64) (float64, error) { return x, nil }); err != nil {
		t.Fatalf("build: %v", err)
	}

	c.Invalidate()

	if c.Valid() {
		t.Fatal("cache valid after invalidate")
	}

	if v := c.At(0.5); v != 0 {
		t.Fatalf("invalid cache At: got %v want 0", v)
	}

	if _, _, err := c.Bounds(); !errors.Is(err, ErrNotBuilt) {
		t.Fatalf("invalid cache Bounds: got %v", err)
	}
}

func TestBuildSamples(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4}
	ys := []float64{0, 1, 4, 9, 16}

	c := New(4)
	if err := c.BuildSamples(xs, ys); err != nil {
		t.Fatalf("build samples: %v", err)
	}

	for i := range xs {
		if diff := math.Abs(c.At(xs[i]) - ys[i]); diff > 1e-12 {
			t.Fatalf("knot %d: diff %v", i, diff)
		}
	}

	if err := c.BuildSamples([]float64{0, 1, 1, 2}, []float64{0, 1, 2, 3}); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("non-increasing abscissae: got %v", err)
	}

	if err := c.BuildSamples([]float64{0, 1}, []float64{0, 1}); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("too few samples: got %v", err)
	}
}

func TestAtClampsToFittedRange(t *testing.T) {
	c := New(8)
	if err := c.Build(0, 1, func(x float64) (float64, error) { return x, nil }); err != nil {
		t.Fatalf("build: %v", err)
	}

	if diff := math.Abs(c.At(-5) - 0); diff > 1e-12 {
		t.Fatalf("below range: got %v", c.At(-5))
	}

	if diff := math.Abs(c.At(5) - 1); diff > 1e-12 {
		t.Fatalf("above range: got %v", c.At(5))
	}
}
