// Package splinecache provides the lazy, invalidatable sample-and-spline
// cache shared by window functions, kernels, and the cosmology tables. The
// cache holds a fixed grid, the raw values sampled at the grid, a fitted
// spline, and a validity flag. Invalidate is the single entry point every
// mutator calls; a failed build leaves the cache invalid so the next read
// retries cleanly.
package splinecache

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
)

// Errors returned by cache builds.
var (
	ErrInvalidRange = errors.New("splinecache: grid bounds must be finite with min < max")
	ErrNotBuilt     = errors.New("splinecache: cache has not been built")
)

// minPoints is the smallest grid the cubic fit accepts.
const minPoints = 4

// Cache is a lazily built spline over a fixed-size grid. The zero value is
// not usable; construct with New.
type Cache struct {
	xs     []float64
	ys     []float64
	spline interp.NaturalCubic
	valid  bool
}

// New returns a cache with an n-point grid. Grids below the cubic-fit
// minimum are widened to it.
func New(n int) *Cache {
	if n < minPoints {
		n = minPoints
	}

	return &Cache{
		xs: make([]float64, n),
		ys: make([]float64, n),
	}
}

// Valid reports whether the cache holds a usable spline.
func (c *Cache) Valid() bool {
	return c.valid
}

// Invalidate marks the cache stale. The next Build repopulates it.
func (c *Cache) Invalidate() {
	c.valid = false
}

// Build samples f at every grid point across [xmin, xmax] and fits the
// spline. On any failure the cache stays invalid and no partial results are
// retained as valid.
func (c *Cache) Build(xmin, xmax float64, f func(x float64) (float64, error)) error {
	c.valid = false

	if math.IsNaN(xmin) || math.IsNaN(xmax) || math.IsInf(xmin, 0) || math.IsInf(xmax, 0) || xmin >= xmax {
		return ErrInvalidRange
	}

	n := len(c.xs)
	step := (xmax - xmin) / float64(n-1)

	for i := range n {
		x := xmin + float64(i)*step
		if i == n-1 {
			x = xmax
		}

		y, err := f(x)
		if err != nil {
			return fmt.Errorf("splinecache: sample at %g: %w", x, err)
		}

		c.xs[i] = x
		c.ys[i] = y
	}

	if err := c.spline.Fit(c.xs, c.ys); err != nil {
		return fmt.Errorf("splinecache: fit: %w", err)
	}

	c.valid = true

	return nil
}

// BuildSamples fits the spline over caller-provided samples at strictly
// increasing abscissae, resizing the grid to match. It serves tables whose
// values accumulate (comoving distance) or invert (redshift lookup) and so
// cannot be sampled pointwise.
func (c *Cache) BuildSamples(xs, ys []float64) error {
	c.valid = false

	if len(xs) != len(ys) || len(xs) < minPoints {
		return ErrInvalidRange
	}

	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return ErrInvalidRange
		}
	}

	c.xs = append(c.xs[:0], xs...)
	c.ys = append(c.ys[:0], ys...)

	if err := c.spline.Fit(c.xs, c.ys); err != nil {
		return fmt.Errorf("splinecache: fit: %w", err)
	}

	c.valid = true

	return nil
}

// At evaluates the spline at x. Queries are clamped to the fitted range;
// domain masking to zero outside declared bounds is the caller's concern.
// At returns 0 if the cache is invalid.
func (c *Cache) At(x float64) float64 {
	if !c.valid {
		return 0
	}

	if x < c.xs[0] {
		x = c.xs[0]
	}

	if last := c.xs[len(c.xs)-1]; x > last {
		x = last
	}

	return c.spline.Predict(x)
}

// Bounds returns the fitted grid range. It returns ErrNotBuilt before the
// first successful build.
func (c *Cache) Bounds() (xmin, xmax float64, err error) {
	if !c.valid {
		return 0, 0, ErrNotBuilt
	}

	return c.xs[0], c.xs[len(c.xs)-1], nil
}

// Grid exposes the sampled grid and raw values for table dumps. The slices
// alias the cache's backing arrays and must not be modified.
func (c *Cache) Grid() (xs, ys []float64) {
	return c.xs, c.ys
}
