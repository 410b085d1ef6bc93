package cosmo

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-limber/internal/testutil"
)

func TestNewValidation(t *testing.T) {
	for _, tc := range []struct {
		name       string
		zMin, zMax float64
		p          Params
		want       error
	}{
		{"negative z_min", -0.1, 1, DefaultParams(), ErrInvalidRedshiftRange},
		{"empty range", 1, 1, DefaultParams(), ErrInvalidRedshiftRange},
		{"inverted range", 2, 1, DefaultParams(), ErrInvalidRedshiftRange},
		{"nan bound", math.NaN(), 1, DefaultParams(), ErrInvalidRedshiftRange},
		{"zero matter density", 0, 1, Params{OmegaM0: 0, OmegaL0: 0.7}, ErrInvalidDensity},
		{"negative dark energy", 0, 1, Params{OmegaM0: 0.3, OmegaL0: -0.1}, ErrInvalidDensity},
	} {
		if _, err := NewWithParams(tc.zMin, tc.zMax, tc.p); !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestExpansionRate(t *testing.T) {
	m, err := New(0, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.RequireNear(t, m.E(0), 1, 1e-12)

	// Flat concordance at z = 1: sqrt(0.3*8 + 0.7).
	testutil.RequireNear(t, m.E(1), math.Sqrt(0.3*8+0.7), 1e-12)
}

func TestComovingDistanceEinsteinDeSitter(t *testing.T) {
	m, err := NewWithParams(0, 2, Params{OmegaM0: 1, OmegaL0: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// chi(z) = (2/H0) * (1 - 1/sqrt(1+z)) has a closed form in this model.
	for _, z := range []float64{0, 0.25, 0.5, 1, 1.5, 2} {
		got, err := m.ComovingDistance(z)
		if err != nil {
			t.Fatalf("z = %v: %v", z, err)
		}

		want := 2 * 2997.92458 * (1 - 1/math.Sqrt(1+z))
		testutil.RequireNearRel(t, got, want, 1e-5)
	}
}

func TestComovingDistanceMonotone(t *testing.T) {
	m, err := New(0, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prev := -1.0
	for _, z := range testutil.Linspace(0, 3, 50) {
		chi, err := m.ComovingDistance(z)
		if err != nil {
			t.Fatalf("z = %v: %v", z, err)
		}

		if chi <= prev {
			t.Fatalf("distance not increasing at z = %v: %v <= %v", z, chi, prev)
		}

		prev = chi
	}
}

func TestRedshiftRoundTrip(t *testing.T) {
	m, err := New(0, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, z := range []float64{0.1, 0.5, 1.0, 1.5, 1.9} {
		chi, err := m.ComovingDistance(z)
		if err != nil {
			t.Fatalf("z = %v: %v", z, err)
		}

		back, err := m.Redshift(chi)
		if err != nil {
			t.Fatalf("chi = %v: %v", chi, err)
		}

		testutil.RequireNear(t, back, z, 1e-4)
	}
}

func TestGrowthFactor(t *testing.T) {
	m, err := New(0, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d0, err := m.GrowthFactor(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.RequireNear(t, d0, 1, 1e-8)

	// Growth decreases toward higher redshift.
	d1, err := m.GrowthFactor(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d1 <= 0 || d1 >= d0 {
		t.Fatalf("D(1) = %v out of (0, 1)", d1)
	}
}

func TestGrowthFactorEinsteinDeSitter(t *testing.T) {
	m, err := NewWithParams(0, 2, Params{OmegaM0: 1, OmegaL0: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// D(z) = 1/(1+z) in this model.
	for _, z := range []float64{0, 0.5, 1, 2} {
		got, err := m.GrowthFactor(z)
		if err != nil {
			t.Fatalf("z = %v: %v", z, err)
		}

		testutil.RequireNearRel(t, got, 1/(1+z), 1e-5)
	}
}

func TestOutOfRangeQueries(t *testing.T) {
	m, err := New(0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := m.ComovingDistance(1.5); !errors.Is(err, ErrRedshiftOutOfRange) {
		t.Fatalf("distance beyond range: got %v", err)
	}

	if _, err := m.GrowthFactor(-0.5); !errors.Is(err, ErrRedshiftOutOfRange) {
		t.Fatalf("growth below range: got %v", err)
	}

	chiMax, err := m.ComovingDistance(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := m.Redshift(2 * chiMax); !errors.Is(err, ErrDistanceOutOfRange) {
		t.Fatalf("redshift beyond range: got %v", err)
	}
}

func TestSetCosmologyInvalidates(t *testing.T) {
	m, err := New(0, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	before, err := m.ComovingDistance(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := m.SetCosmology(Params{OmegaM0: 1, OmegaL0: 0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after, err := m.ComovingDistance(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Higher matter density pulls distances in.
	if after >= before {
		t.Fatalf("distance did not shrink: %v >= %v", after, before)
	}

	if err := m.SetCosmology(Params{OmegaM0: 0, OmegaL0: 1}); !errors.Is(err, ErrInvalidDensity) {
		t.Fatalf("invalid reset: got %v", err)
	}
}

func TestSetCosmologyRange(t *testing.T) {
	m, err := New(0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := m.ComovingDistance(2); !errors.Is(err, ErrRedshiftOutOfRange) {
		t.Fatalf("beyond initial range: got %v", err)
	}

	if err := m.SetCosmologyRange(DefaultParams(), 0, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := m.ComovingDistance(2); err != nil {
		t.Fatalf("within widened range: got %v", err)
	}

	if err := m.SetCosmologyRange(DefaultParams(), 2, 1); !errors.Is(err, ErrInvalidRedshiftRange) {
		t.Fatalf("inverted range reset: got %v", err)
	}
}
