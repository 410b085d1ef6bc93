package kernel

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/integrate/quad"

	"github.com/cwbudde/algo-limber/cosmo"
	"github.com/cwbudde/algo-limber/internal/besselzero"
	"github.com/cwbudde/algo-limber/internal/romberg"
	"github.com/cwbudde/algo-limber/internal/splinecache"
	"github.com/cwbudde/algo-limber/limber/window"
)

// Errors returned by kernel construction and queries.
var (
	ErrInvalidKThetaRange = errors.New("kernel: ktheta_min must be positive and less than ktheta_max")
	ErrZeroNormalization  = errors.New("kernel: window function product integrates to zero")
)

// minNorm is the smallest window-product integral a weighted mean can be
// normalized by.
const minNorm = 1e-16

// Kernel is an angular correlation kernel over two window functions. Use
// New for the standard J_0 kernel and NewGalaxyGalaxyLensing for the spin-2
// J_2 variant.
type Kernel struct {
	lnKThetaMin float64
	lnKThetaMax float64

	wa, wb window.Function
	m      *cosmo.MultiEpoch

	zMin, zMax     float64
	chiMin, chiMax float64

	order       int
	besselLimit float64

	cache *splinecache.Cache
	norm  float64
	zBar  float64

	cfg config
}

// New constructs a standard (J_0) kernel over [kthetaMin, kthetaMax]. Both
// window functions are reparented onto the kernel's cosmology adapter; a
// nil adapter falls back to one covering the union of their redshift
// domains. The window-product normalization and peak redshift are computed
// eagerly, the kernel spline lazily on first query.
func New(kthetaMin, kthetaMax float64, wa, wb window.Function, m *cosmo.MultiEpoch, opts ...Option) (*Kernel, error) {
	return newKernel(0, kthetaMin, kthetaMax, wa, wb, m, opts)
}

// NewGalaxyGalaxyLensing constructs the spin-2 (J_2) kernel used for
// galaxy-galaxy lensing, where the measured quantity is the mass-profile
// contrast rather than the profile itself. It differs from the standard
// kernel only in the Bessel order and the truncation radius that follows
// from it.
func NewGalaxyGalaxyLensing(kthetaMin, kthetaMax float64, wa, wb window.Function, m *cosmo.MultiEpoch, opts ...Option) (*Kernel, error) {
	return newKernel(2, kthetaMin, kthetaMax, wa, wb, m, opts)
}

func newKernel(order int, kthetaMin, kthetaMax float64, wa, wb window.Function, m *cosmo.MultiEpoch, opts []Option) (*Kernel, error) {
	if !(kthetaMin > 0) || kthetaMin >= kthetaMax {
		return nil, ErrInvalidKThetaRange
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	limit, err := besselzero.Last(order, cfg.besselZeros)
	if err != nil {
		return nil, fmt.Errorf("kernel: truncation radius: %w", err)
	}

	k := &Kernel{
		lnKThetaMin: math.Log(kthetaMin),
		lnKThetaMax: math.Log(kthetaMax),
		wa:          wa,
		wb:          wb,
		order:       order,
		besselLimit: limit,
		cache:       splinecache.New(cfg.points),
		cfg:         cfg,
	}

	k.zMin, k.zMax = mergeRanges(wa.ZRange, wb.ZRange)

	if m == nil {
		m, err = cosmo.New(k.zMin, k.zMax, cosmo.WithLogger(cfg.logger))
		if err != nil {
			return nil, err
		}
	}

	k.m = m

	if err := k.rebuild(); err != nil {
		return nil, err
	}

	return k, nil
}

// mergeRanges returns the union of two (min, max) ranges.
func mergeRanges(a, b func() (float64, float64)) (float64, float64) {
	aMin, aMax := a()
	bMin, bMax := b()

	return math.Min(aMin, bMin), math.Max(aMax, bMax)
}

// rebuild re-pushes the shared adapter to both window functions, re-derives
// the merged domains, and recomputes the eager quantities. The kernel
// spline stays invalid until the next query.
func (k *Kernel) rebuild() error {
	if err := k.wa.SetCosmologyObject(k.m); err != nil {
		return err
	}

	if err := k.wb.SetCosmologyObject(k.m); err != nil {
		return err
	}

	k.zMin, k.zMax = mergeRanges(k.wa.ZRange, k.wb.ZRange)
	k.cache.Invalidate()

	// Prime both window splines so the integrand closures below cannot
	// encounter a failed lazy build mid-integration.
	if _, err := k.wa.EvaluateAt(0); err != nil {
		return err
	}

	if _, err := k.wb.EvaluateAt(0); err != nil {
		return err
	}

	k.chiMin, k.chiMax = mergeRanges(k.wa.ChiRange, k.wb.ChiRange)

	if err := k.computeNorm(); err != nil {
		return err
	}

	return k.findPeakRedshift()
}

// computeNorm integrates the bare window-function product over the merged
// comoving-distance domain. The result normalizes WeightedMean.
func (k *Kernel) computeNorm() error {
	v, err := romberg.Integrate(func(chi float64) float64 {
		a, _ := k.wa.EvaluateAt(chi)
		b, _ := k.wb.EvaluateAt(chi)

		return a * b
	}, k.chiMin, k.chiMax, k.cfg.tol)
	if err != nil {
		return fmt.Errorf("kernel: window product normalization: %w", err)
	}

	k.norm = v

	return nil
}

// findPeakRedshift scans the non-oscillatory integrand D^2 W_a W_b over a
// redshift grid and records the redshift of its maximum.
func (k *Kernel) findPeakRedshift() error {
	n := k.cfg.points
	if n < 2 {
		n = 2
	}

	zs := make([]float64, n)
	chis := make([]float64, n)
	d2 := make([]float64, n)

	step := (k.zMax - k.zMin) / float64(n-1)

	for i := range n {
		z := k.zMin + float64(i)*step
		if i == n-1 {
			z = k.zMax
		}

		chi, err := k.m.ComovingDistance(z)
		if err != nil {
			return err
		}

		d, err := k.m.GrowthFactor(z)
		if err != nil {
			return err
		}

		zs[i] = z
		chis[i] = chi
		d2[i] = d * d
	}

	product, err := k.wa.Evaluate(chis)
	if err != nil {
		return err
	}

	wb, err := k.wb.Evaluate(chis)
	if err != nil {
		return err
	}

	vecmath.MulBlockInPlace(product, wb)
	vecmath.MulBlockInPlace(product, d2)

	best := 0
	for i, v := range product {
		if v > product[best] {
			best = i
		}
	}

	k.zBar = zs[best]

	return nil
}

// bessel evaluates J_order.
func (k *Kernel) bessel(x float64) float64 {
	switch k.order {
	case 0:
		return math.J0(x)
	case 1:
		return math.J1(x)
	default:
		return math.Jn(k.order, x)
	}
}

// integrand is the raw kernel integrand at a fixed k*theta.
func (k *Kernel) integrand(chi, ktheta float64) float64 {
	z, err := k.m.Redshift(chi)
	if err != nil {
		return 0
	}

	d, err := k.m.GrowthFactor(z)
	if err != nil {
		return 0
	}

	a, _ := k.wa.EvaluateAt(chi)
	b, _ := k.wb.EvaluateAt(chi)

	return a * b * d * d * k.bessel(ktheta*chi)
}

// RawKernel integrates the kernel integrand for one value of ln(k*theta).
// The upper bound is truncated to the largest relevant Bessel zero divided
// by k*theta, exploiting the oscillatory decay of J_n at large argument.
func (k *Kernel) RawKernel(lnKTheta float64) (float64, error) {
	ktheta := math.Exp(lnKTheta)

	upper := k.besselLimit / ktheta
	if upper > k.chiMax {
		upper = k.chiMax
	}

	if upper <= k.chiMin {
		return 0, nil
	}

	f := func(chi float64) float64 { return k.integrand(chi, ktheta) }

	if k.cfg.forceQuad {
		return quad.Fixed(f, k.chiMin, upper, k.cfg.quadOrder, nil, 0), nil
	}

	v, err := romberg.Integrate(f, k.chiMin, upper, k.cfg.tol)
	if err != nil {
		return 0, fmt.Errorf("kernel: raw kernel at ln(ktheta)=%g: %w", lnKTheta, err)
	}

	return v, nil
}

// KernelAt returns the spline-cached kernel at one ln(k*theta), exactly
// zero outside the configured range. The first call builds the spline.
func (k *Kernel) KernelAt(lnKTheta float64) (float64, error) {
	if err := k.ensure(); err != nil {
		return 0, err
	}

	if lnKTheta < k.lnKThetaMin || lnKTheta > k.lnKThetaMax {
		return 0, nil
	}

	return k.cache.At(lnKTheta), nil
}

// Kernel evaluates the spline-cached kernel element-wise with independent
// masking per entry.
func (k *Kernel) Kernel(lnKTheta []float64) ([]float64, error) {
	if err := k.ensure(); err != nil {
		return nil, err
	}

	out := make([]float64, len(lnKTheta))

	for i, ln := range lnKTheta {
		if ln < k.lnKThetaMin || ln > k.lnKThetaMax {
			continue
		}

		out[i] = k.cache.At(ln)
	}

	return out, nil
}

func (k *Kernel) ensure() error {
	if k.cache.Valid() {
		return nil
	}

	return k.cache.Build(k.lnKThetaMin, k.lnKThetaMax, k.RawKernel)
}

// PeakRedshift returns z_bar, the redshift where the non-oscillatory
// integrand D^2 W_a W_b peaks: the effective redshift the kernel is most
// sensitive to.
func (k *Kernel) PeakRedshift() float64 {
	return k.zBar
}

// Normalization returns the window-product integral int(W_a * W_b) over the
// merged comoving-distance domain, recomputed on every cosmology reset.
func (k *Kernel) Normalization() float64 {
	return k.norm
}

// WeightedMean returns the kernel-weighted mean of a redshift-dependent
// quantity,
//
//	int(f(z(chi)) * W_a * W_b) / int(W_a * W_b)
//
// over the merged comoving-distance domain. f must be defined over the
// kernel's redshift range. The denominator is the cached normalization; a
// vanishing normalization returns ErrZeroNormalization.
func (k *Kernel) WeightedMean(f func(z float64) float64) (float64, error) {
	if math.Abs(k.norm) < minNorm {
		return 0, ErrZeroNormalization
	}

	v, err := romberg.Integrate(func(chi float64) float64 {
		z, err := k.m.Redshift(chi)
		if err != nil {
			return 0
		}

		a, _ := k.wa.EvaluateAt(chi)
		b, _ := k.wb.EvaluateAt(chi)

		return f(z) * a * b
	}, k.chiMin, k.chiMax, k.cfg.tol)
	if err != nil {
		return 0, fmt.Errorf("kernel: weighted mean: %w", err)
	}

	return v / k.norm, nil
}

// SetCosmology resets the shared adapter's parameters, propagates the reset
// to both window functions, and recomputes the merged domains, the
// window-product normalization, and the peak redshift. The kernel spline is
// invalidated and rebuilt on the next query.
func (k *Kernel) SetCosmology(p cosmo.Params) error {
	if err := k.m.SetCosmology(p); err != nil {
		return err
	}

	return k.rebuild()
}

// Cosmology returns the shared adapter handle.
func (k *Kernel) Cosmology() *cosmo.MultiEpoch {
	return k.m
}

// Order returns the Bessel order of the kernel.
func (k *Kernel) Order() int {
	return k.order
}

// ZRange returns the union of the window functions' redshift domains.
func (k *Kernel) ZRange() (zMin, zMax float64) {
	return k.zMin, k.zMax
}

// ChiRange returns the union of the window functions' comoving-distance
// domains.
func (k *Kernel) ChiRange() (chiMin, chiMax float64) {
	return k.chiMin, k.chiMax
}

// LnKThetaRange returns the configured ln(k*theta) domain.
func (k *Kernel) LnKThetaRange() (lnMin, lnMax float64) {
	return k.lnKThetaMin, k.lnKThetaMax
}

// Write dumps the sampled kernel as two fixed-precision columns of
// (k*theta, kernel value), building the spline first if needed.
func (k *Kernel) Write(w io.Writer) error {
	if err := k.ensure(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "#ttype1 = k*theta [h/Mpc*Radians]\n#ttype2 = kernel [(h/Mpc)^2]\n"); err != nil {
		return err
	}

	xs, ys := k.cache.Grid()
	for i := range xs {
		if _, err := fmt.Fprintf(w, "%1.10f %1.10f\n", math.Exp(xs[i]), ys[i]); err != nil {
			return err
		}
	}

	return nil
}
