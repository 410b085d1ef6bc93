package dndz

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-limber/internal/romberg"
	"github.com/cwbudde/algo-limber/internal/testutil"
)

func TestGaussianNormalization(t *testing.T) {
	g, err := NewGaussian(0, 2, 0.5, 0.1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := g.Normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}

	got, err := romberg.Integrate(g.DensityAt, 0, 2, 1e-10)
	if err != nil {
		t.Fatalf("integrate: %v", err)
	}

	testutil.RequireNear(t, got, 1, 1e-6)
}

func TestGaussianMasking(t *testing.T) {
	g, err := NewGaussian(0.2, 1.0, 0.5, 0.3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := g.Normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}

	if v := g.DensityAt(0.1); v != 0 {
		t.Fatalf("below domain: got %v, want exactly 0", v)
	}

	if v := g.DensityAt(1.1); v != 0 {
		t.Fatalf("above domain: got %v, want exactly 0", v)
	}

	if v := g.DensityAt(0.5); v <= 0 {
		t.Fatalf("inside domain: got %v, want positive", v)
	}

	// Element-wise evaluation masks each entry independently.
	out := g.Density([]float64{0.1, 0.5, 1.1})
	if out[0] != 0 || out[2] != 0 || out[1] <= 0 {
		t.Fatalf("slice masking broken: %v", out)
	}

	testutil.RequireNear(t, out[1], g.DensityAt(0.5), 0)
}

func TestGaussianValidation(t *testing.T) {
	if _, err := NewGaussian(0, 2, 0.5, 0); !errors.Is(err, ErrInvalidScale) {
		t.Fatalf("zero sigma: got %v", err)
	}

	if _, err := NewGaussian(1, 1, 0.5, 0.1); !errors.Is(err, ErrInvalidDomain) {
		t.Fatalf("empty domain: got %v", err)
	}

	if _, err := NewGaussian(2, 1, 0.5, 0.1); !errors.Is(err, ErrInvalidDomain) {
		t.Fatalf("inverted domain: got %v", err)
	}
}

func TestGaussianZeroOverDomain(t *testing.T) {
	// A peak a hundred sigma outside the domain underflows to zero
	// everywhere the integrator looks.
	g, err := NewGaussian(0, 1, 100, 0.01)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := g.Normalize(); !errors.Is(err, ErrZeroNormalization) {
		t.Fatalf("got %v, want ErrZeroNormalization", err)
	}
}

func TestMagLim(t *testing.T) {
	p, err := NewMagLim(0, 2, 2, 0.3, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := p.Normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}

	got, err := romberg.Integrate(p.DensityAt, 0, 2, 1e-10)
	if err != nil {
		t.Fatalf("integrate: %v", err)
	}

	testutil.RequireNear(t, got, 1, 1e-6)

	if v := p.DensityAt(0); v != 0 {
		t.Fatalf("z = 0 with positive slope: got %v, want 0", v)
	}

	if _, err := NewMagLim(0, 2, 2, 0, 2); !errors.Is(err, ErrInvalidScale) {
		t.Fatalf("zero pivot: got %v", err)
	}
}

func TestChiGaussianDefaultCosmology(t *testing.T) {
	g, err := NewChiGaussian(100, 2000, 1000, 300, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The distance bounds map to a redshift domain, not a distance domain.
	zMin, zMax := g.ZRange()
	if zMin <= 0 || zMax >= 5 || zMin >= zMax {
		t.Fatalf("converted domain out of order: [%v, %v]", zMin, zMax)
	}

	if err := g.Normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}

	got, err := romberg.Integrate(g.DensityAt, zMin, zMax, 1e-9)
	if err != nil {
		t.Fatalf("integrate: %v", err)
	}

	testutil.RequireNear(t, got, 1, 1e-5)
}

func TestChiGaussianValidation(t *testing.T) {
	if _, err := NewChiGaussian(100, 2000, 1000, 0, nil); !errors.Is(err, ErrInvalidScale) {
		t.Fatalf("zero sigma: got %v", err)
	}

	if _, err := NewChiGaussian(2000, 100, 1000, 300, nil); !errors.Is(err, ErrInvalidDomain) {
		t.Fatalf("inverted bounds: got %v", err)
	}
}

func TestTabulated(t *testing.T) {
	zs := testutil.Linspace(0, 2, 21)
	ws := make([]float64, len(zs))

	for i, z := range zs {
		d := z - 1
		ws[i] = math.Exp(-d * d / 0.08)
	}

	p, err := NewTabulated(zs, ws)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := p.Normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}

	got, err := romberg.Integrate(p.DensityAt, 0, 2, 1e-9)
	if err != nil {
		t.Fatalf("integrate: %v", err)
	}

	testutil.RequireNear(t, got, 1, 1e-4)

	// The fitted shape peaks where the samples peak.
	if p.DensityAt(1.0) <= p.DensityAt(0.3) {
		t.Fatalf("peak not preserved: %v <= %v", p.DensityAt(1.0), p.DensityAt(0.3))
	}
}

func TestTabulatedValidation(t *testing.T) {
	if _, err := NewTabulated([]float64{0, 1}, []float64{1, 1}); !errors.Is(err, ErrTooFewPoints) {
		t.Fatalf("two samples: got %v", err)
	}

	if _, err := NewTabulated([]float64{0, 1, 1}, []float64{1, 1, 1}); !errors.Is(err, ErrNonIncreasing) {
		t.Fatalf("duplicate redshift: got %v", err)
	}

	if _, err := NewTabulated([]float64{0, 1, 2}, []float64{1, 1}); err == nil {
		t.Fatal("length mismatch accepted")
	}

	if _, err := NewTabulated([]float64{0, 1, 2}, []float64{0, 0, 0}); !errors.Is(err, ErrZeroNormalization) {
		t.Fatalf("all-zero weights: got %v", err)
	}
}
