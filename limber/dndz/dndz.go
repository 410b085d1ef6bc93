package dndz

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-limber/internal/romberg"
)

// Errors returned by profile construction and normalization.
var (
	ErrInvalidDomain     = errors.New("dndz: z_min must be less than z_max")
	ErrInvalidScale      = errors.New("dndz: scale parameter must be positive")
	ErrZeroNormalization = errors.New("dndz: distribution integrates to zero over its domain")
)

// minNorm is the smallest integral of the raw shape still considered
// normalizable; anything below is a zero distribution.
const minNorm = 1e-16

// DefaultTolerance is the default relative tolerance for normalization.
const DefaultTolerance = 1.48e-8

// Profile is a redshift probability density. Implementations share the
// normalization and masking behaviour of this package and differ only in
// their raw, unnormalized shape.
type Profile interface {
	// ZRange returns the domain the density is defined over.
	ZRange() (zMin, zMax float64)

	// Normalize integrates the raw shape over the domain and stores its
	// reciprocal, so that the density integrates to one. It returns
	// ErrZeroNormalization for a shape that vanishes over the domain.
	Normalize() error

	// Density evaluates the normalized density element-wise. Entries
	// outside the domain are exactly zero.
	Density(z []float64) []float64

	// DensityAt evaluates the normalized density at a single redshift.
	DensityAt(z float64) float64
}

// Option configures profile construction.
type Option func(*config)

type config struct {
	tol float64
}

func defaultConfig() config {
	return config{tol: DefaultTolerance}
}

// WithTolerance sets the normalization integration tolerance.
func WithTolerance(tol float64) Option {
	return func(c *config) {
		if tol > 0 {
			c.tol = tol
		}
	}
}

// base carries the domain, the normalization constant, and the raw shape
// callback wired in by each concrete profile.
type base struct {
	zMin, zMax float64
	norm       float64
	tol        float64
	raw        func(z float64) float64
}

func newBase(zMin, zMax float64, opts []Option) (base, error) {
	if math.IsNaN(zMin) || math.IsNaN(zMax) || zMin >= zMax {
		return base{}, ErrInvalidDomain
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return base{
		zMin: zMin,
		zMax: zMax,
		norm: 1,
		tol:  cfg.tol,
	}, nil
}

// ZRange returns the domain the density is defined over.
func (b *base) ZRange() (zMin, zMax float64) {
	return b.zMin, b.zMax
}

// Normalize computes the normalization constant. Until it is called the
// density is evaluated with a constant of one.
func (b *base) Normalize() error {
	v, err := romberg.Integrate(b.raw, b.zMin, b.zMax, b.tol)
	if err != nil {
		return fmt.Errorf("dndz: normalization: %w", err)
	}

	if math.Abs(v) < minNorm {
		return ErrZeroNormalization
	}

	b.norm = 1 / v

	return nil
}

// DensityAt returns the normalized density at z, exactly zero outside the
// domain.
func (b *base) DensityAt(z float64) float64 {
	if z < b.zMin || z > b.zMax {
		return 0
	}

	return b.norm * b.raw(z)
}

// Density evaluates the normalized density element-wise.
func (b *base) Density(z []float64) []float64 {
	out := make([]float64, len(z))
	for i, v := range z {
		out[i] = b.DensityAt(v)
	}

	return out
}
