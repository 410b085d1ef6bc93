package window

import (
	"errors"
	"fmt"
	"io"
	"math"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-limber/cosmo"
	"github.com/cwbudde/algo-limber/internal/splinecache"
)

// Errors returned by window-function construction and cosmology resets.
var (
	ErrInvalidDomain   = errors.New("window: z_min must be non-negative and less than z_max")
	ErrRangeNotCovered = errors.New("window: cosmology range does not cover the window redshift range")
	ErrInvalidRedshift = errors.New("window: source redshift must be positive")
)

// Function is the capability a kernel integrates over. All implementations
// in this package evaluate as masked spline lookups over a lazily built
// sample cache.
type Function interface {
	// Evaluate returns the window function element-wise, exactly zero
	// outside [chi_min, chi_max]. The first call builds the spline cache.
	Evaluate(chi []float64) ([]float64, error)

	// EvaluateAt is the single-value form of Evaluate.
	EvaluateAt(chi float64) (float64, error)

	// ZRange returns the redshift domain.
	ZRange() (zMin, zMax float64)

	// ChiRange returns the comoving-distance domain derived from ZRange
	// under the current cosmology.
	ChiRange() (chiMin, chiMax float64)

	// Cosmology returns the shared adapter handle.
	Cosmology() *cosmo.MultiEpoch

	// SetCosmologyObject replaces the adapter handle, recomputes the
	// distance bounds, and invalidates the sample cache.
	SetCosmologyObject(m *cosmo.MultiEpoch) error

	// SetCosmology resets the parameters of the held adapter in place.
	// The mutation is visible to every holder of the same adapter.
	SetCosmology(p cosmo.Params) error

	// Write dumps the sampled grid as a two-column plain-text table.
	Write(w io.Writer) error
}

// base implements the sample-spline-mask cycle shared by every variant.
// Concrete types wire their raw profile into raw, and optionally an
// onCosmo hook re-deriving any cosmology-dependent constants on reset.
type base struct {
	zMin, zMax     float64
	chiMin, chiMax float64

	m      *cosmo.MultiEpoch
	cache  *splinecache.Cache
	tol    float64
	logger *zap.Logger

	raw     func(chi float64) (float64, error)
	onCosmo func() error
}

func newBase(zMin, zMax float64, m *cosmo.MultiEpoch, cfg config) (base, error) {
	if math.IsNaN(zMin) || math.IsNaN(zMax) || zMin < 0 || zMin >= zMax {
		return base{}, ErrInvalidDomain
	}

	if m == nil {
		var err error

		m, err = cosmo.New(zMin, zMax)
		if err != nil {
			return base{}, err
		}
	}

	b := base{
		zMin:   zMin,
		zMax:   zMax,
		cache:  splinecache.New(cfg.points),
		tol:    cfg.tol,
		logger: cfg.logger,
	}

	if err := b.attach(m); err != nil {
		return base{}, err
	}

	return b, nil
}

// attach adopts an adapter handle: it validates range coverage, re-derives
// the comoving-distance bounds, invalidates the cache, and reruns the
// variant hook.
func (b *base) attach(m *cosmo.MultiEpoch) error {
	czMin, czMax := m.ZRange()
	if czMin > b.zMin || czMax < b.zMax {
		b.logger.Warn("cosmology range does not cover window",
			zap.Float64("window_z_min", b.zMin),
			zap.Float64("window_z_max", b.zMax),
			zap.Float64("cosmo_z_min", czMin),
			zap.Float64("cosmo_z_max", czMax))

		return ErrRangeNotCovered
	}

	chiMin, err := m.ComovingDistance(b.zMin)
	if err != nil {
		return err
	}

	chiMax, err := m.ComovingDistance(b.zMax)
	if err != nil {
		return err
	}

	b.m = m
	b.chiMin = chiMin
	b.chiMax = chiMax
	b.cache.Invalidate()

	if b.onCosmo != nil {
		return b.onCosmo()
	}

	return nil
}

// ZRange returns the redshift domain.
func (b *base) ZRange() (zMin, zMax float64) {
	return b.zMin, b.zMax
}

// ChiRange returns the comoving-distance domain under the current
// cosmology.
func (b *base) ChiRange() (chiMin, chiMax float64) {
	return b.chiMin, b.chiMax
}

// Cosmology returns the shared adapter handle.
func (b *base) Cosmology() *cosmo.MultiEpoch {
	return b.m
}

// SetCosmologyObject replaces the adapter handle and invalidates the cache.
func (b *base) SetCosmologyObject(m *cosmo.MultiEpoch) error {
	if m == nil {
		return b.attach(b.m)
	}

	return b.attach(m)
}

// SetCosmology resets the held adapter's parameters in place and
// invalidates the cache. Every holder of the same adapter observes the new
// parameters.
func (b *base) SetCosmology(p cosmo.Params) error {
	if err := b.m.SetCosmology(p); err != nil {
		return err
	}

	return b.attach(b.m)
}

// build samples the raw profile across the grid and fits the spline. This
// is the only place the raw profile is invoked.
func (b *base) build() error {
	if err := b.cache.Build(b.chiMin, b.chiMax, b.raw); err != nil {
		return fmt.Errorf("window: %w", err)
	}

	return nil
}

// EvaluateAt returns the window function at chi, exactly zero outside
// [chi_min, chi_max].
func (b *base) EvaluateAt(chi float64) (float64, error) {
	if !b.cache.Valid() {
		if err := b.build(); err != nil {
			return 0, err
		}
	}

	if chi < b.chiMin || chi > b.chiMax {
		return 0, nil
	}

	return b.cache.At(chi), nil
}

// Evaluate returns the window function element-wise with independent
// masking per entry.
func (b *base) Evaluate(chi []float64) ([]float64, error) {
	if !b.cache.Valid() {
		if err := b.build(); err != nil {
			return nil, err
		}
	}

	out := make([]float64, len(chi))

	for i, c := range chi {
		if c < b.chiMin || c > b.chiMax {
			continue
		}

		out[i] = b.cache.At(c)
	}

	return out, nil
}

// Write dumps the sampled grid as two fixed-precision columns, building the
// cache first if needed.
func (b *base) Write(w io.Writer) error {
	if !b.cache.Valid() {
		if err := b.build(); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "#ttype1 = chi [Mpc/h]\n#ttype2 = window function value\n"); err != nil {
		return err
	}

	xs, ys := b.cache.Grid()
	for i := range xs {
		if _, err := fmt.Fprintf(w, "%1.10f %1.10f\n", xs[i], ys[i]); err != nil {
			return err
		}
	}

	return nil
}
