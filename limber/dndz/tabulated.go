package dndz

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/interp"

	"github.com/cwbudde/algo-limber/internal/romberg"
)

// Errors returned by tabulated-profile construction.
var (
	ErrNonIncreasing = errors.New("dndz: tabulated redshifts must be strictly increasing")
	ErrTooFewPoints  = errors.New("dndz: tabulated distribution needs at least three samples")
)

// Tabulated is a redshift distribution interpolated from measured data:
// parallel arrays of redshift and unnormalized weight. The weights are
// pre-scaled by their trapezoid integral and fitted with a shape-preserving
// Akima spline; the domain is [z[0], z[len-1]].
type Tabulated struct {
	base
	spline interp.AkimaSpline
}

// NewTabulated constructs a profile from tabulated (z, weight) samples.
func NewTabulated(z, weight []float64, opts ...Option) (*Tabulated, error) {
	if len(z) < 3 || len(weight) < 3 {
		return nil, ErrTooFewPoints
	}

	if len(z) != len(weight) {
		return nil, fmt.Errorf("dndz: tabulated arrays length mismatch: %d vs %d", len(z), len(weight))
	}

	for i := 1; i < len(z); i++ {
		if z[i] <= z[i-1] {
			return nil, ErrNonIncreasing
		}
	}

	area := romberg.Trapezoid(z, weight)
	if area <= minNorm {
		return nil, ErrZeroNormalization
	}

	scaled := make([]float64, len(weight))
	for i, w := range weight {
		scaled[i] = w / area
	}

	b, err := newBase(z[0], z[len(z)-1], opts)
	if err != nil {
		return nil, err
	}

	t := &Tabulated{base: b}
	if err := t.spline.Fit(z, scaled); err != nil {
		return nil, fmt.Errorf("dndz: tabulated spline: %w", err)
	}

	t.raw = t.spline.Predict

	return t, nil
}
