package cosmo

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/integrate/quad"

	"github.com/cwbudde/algo-limber/internal/romberg"
	"github.com/cwbudde/algo-limber/internal/splinecache"
)

// hubbleH0 is the Hubble constant in h/Mpc with c = 1, so that comoving
// distances come out in Mpc/h.
const hubbleH0 = 1.0 / 2997.92458

// growthQuadOrder is the Gauss-Legendre order for the Heath growth integral.
const growthQuadOrder = 80

// rangeSlack absorbs floating-point jitter at the range boundaries before a
// query is rejected as out of range.
const rangeSlack = 1e-9

// MultiEpoch is a background-cosmology adapter valid over a fixed redshift
// range. Distance and growth tables are spline-cached lazily; SetCosmology
// invalidates them in place, which every holder of the adapter observes.
type MultiEpoch struct {
	zMin, zMax float64
	params     Params

	tol    float64
	points int
	logger *zap.Logger

	chi    *splinecache.Cache // chi(z) in Mpc/h
	zOfChi *splinecache.Cache // z(chi), the inverse table
	growth *splinecache.Cache // D(z), normalized to D(0) = 1

	chiMin, chiMax float64
}

// New returns an adapter covering [zMin, zMax].
func New(zMin, zMax float64, opts ...Option) (*MultiEpoch, error) {
	return NewWithParams(zMin, zMax, DefaultParams(), opts...)
}

// NewWithParams returns an adapter covering [zMin, zMax] for the given
// density parameters.
func NewWithParams(zMin, zMax float64, p Params, opts ...Option) (*MultiEpoch, error) {
	if math.IsNaN(zMin) || math.IsNaN(zMax) || zMin < 0 || zMin >= zMax {
		return nil, ErrInvalidRedshiftRange
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &MultiEpoch{
		zMin:   zMin,
		zMax:   zMax,
		params: p,
		tol:    cfg.tol,
		points: cfg.points,
		logger: cfg.logger,
		chi:    splinecache.New(cfg.points),
		zOfChi: splinecache.New(cfg.points),
		growth: splinecache.New(cfg.points),
	}, nil
}

// ZRange returns the redshift range the adapter covers.
func (m *MultiEpoch) ZRange() (zMin, zMax float64) {
	return m.zMin, m.zMax
}

// Parameters returns the current density parameters.
func (m *MultiEpoch) Parameters() Params {
	return m.params
}

// H0 returns the Hubble constant in h/Mpc (c = 1).
func (m *MultiEpoch) H0() float64 {
	return hubbleH0
}

// OmegaM0 returns the matter density parameter today.
func (m *MultiEpoch) OmegaM0() float64 {
	return m.params.OmegaM0
}

// E returns the dimensionless expansion rate H(z)/H0.
func (m *MultiEpoch) E(z float64) float64 {
	zp := 1 + z
	return math.Sqrt(m.params.OmegaM0*zp*zp*zp + m.params.OmegaK0()*zp*zp + m.params.OmegaL0)
}

// eOfScale is E expressed in the scale factor a = 1/(1+z).
func (m *MultiEpoch) eOfScale(a float64) float64 {
	return math.Sqrt(m.params.OmegaM0/(a*a*a) + m.params.OmegaK0()/(a*a) + m.params.OmegaL0)
}

// ComovingDistance returns chi(z) in Mpc/h. Redshifts outside the adapter
// range return ErrRedshiftOutOfRange.
func (m *MultiEpoch) ComovingDistance(z float64) (float64, error) {
	z, err := m.clampZ(z)
	if err != nil {
		return 0, err
	}

	if err := m.ensure(); err != nil {
		return 0, err
	}

	return m.chi.At(z), nil
}

// Redshift inverts chi(z). Distances outside the adapter's distance range
// return ErrDistanceOutOfRange.
func (m *MultiEpoch) Redshift(chi float64) (float64, error) {
	if err := m.ensure(); err != nil {
		return 0, err
	}

	slack := rangeSlack * math.Max(1, m.chiMax)
	if chi < m.chiMin-slack || chi > m.chiMax+slack {
		return 0, ErrDistanceOutOfRange
	}

	return m.zOfChi.At(chi), nil
}

// GrowthFactor returns the linear growth factor D(z), normalized to
// D(0) = 1.
func (m *MultiEpoch) GrowthFactor(z float64) (float64, error) {
	z, err := m.clampZ(z)
	if err != nil {
		return 0, err
	}

	if err := m.ensure(); err != nil {
		return 0, err
	}

	return m.growth.At(z), nil
}

// SetCosmology resets the density parameters in place and invalidates every
// cached table. The redshift range is unchanged.
func (m *MultiEpoch) SetCosmology(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}

	m.params = p
	m.invalidate()

	m.logger.Debug("cosmology reset",
		zap.Float64("omega_m0", p.OmegaM0),
		zap.Float64("omega_l0", p.OmegaL0))

	return nil
}

// SetCosmologyRange resets both the density parameters and the covered
// redshift range.
func (m *MultiEpoch) SetCosmologyRange(p Params, zMin, zMax float64) error {
	if math.IsNaN(zMin) || math.IsNaN(zMax) || zMin < 0 || zMin >= zMax {
		return ErrInvalidRedshiftRange
	}

	if err := p.Validate(); err != nil {
		return err
	}

	m.zMin = zMin
	m.zMax = zMax
	m.params = p
	m.invalidate()

	m.logger.Debug("cosmology reset",
		zap.Float64("omega_m0", p.OmegaM0),
		zap.Float64("omega_l0", p.OmegaL0),
		zap.Float64("z_min", zMin),
		zap.Float64("z_max", zMax))

	return nil
}

func (m *MultiEpoch) invalidate() {
	m.chi.Invalidate()
	m.zOfChi.Invalidate()
	m.growth.Invalidate()
}

func (m *MultiEpoch) clampZ(z float64) (float64, error) {
	slack := rangeSlack * math.Max(1, m.zMax)
	if z < m.zMin-slack || z > m.zMax+slack {
		return 0, ErrRedshiftOutOfRange
	}

	return math.Min(math.Max(z, m.zMin), m.zMax), nil
}

// ensure builds the distance, inverse-distance, and growth tables if any is
// stale. The comoving-distance table accumulates segment integrals of
// 1/E(z) so each grid point costs one short Romberg integral.
func (m *MultiEpoch) ensure() error {
	if m.chi.Valid() && m.zOfChi.Valid() && m.growth.Valid() {
		return nil
	}

	n := m.points
	if n < 4 {
		n = 4
	}

	zs := make([]float64, n)
	chis := make([]float64, n)
	ds := make([]float64, n)

	step := (m.zMax - m.zMin) / float64(n-1)
	invE := func(z float64) float64 { return 1 / m.E(z) }

	base := 0.0
	if m.zMin > 0 {
		v, err := romberg.Integrate(invE, 0, m.zMin, m.tol)
		if err != nil {
			return fmt.Errorf("cosmo: comoving distance to z_min: %w", err)
		}

		base = v
	}

	d0 := m.growthUnnormalized(0)

	for i := range n {
		z := m.zMin + float64(i)*step
		if i == n-1 {
			z = m.zMax
		}

		if i > 0 {
			seg, err := romberg.Integrate(invE, zs[i-1], z, m.tol)
			if err != nil {
				return fmt.Errorf("cosmo: comoving distance segment: %w", err)
			}

			base += seg
		}

		zs[i] = z
		chis[i] = base / hubbleH0
		ds[i] = m.growthUnnormalized(z) / d0
	}

	if err := m.chi.BuildSamples(zs, chis); err != nil {
		return err
	}

	if err := m.zOfChi.BuildSamples(chis, zs); err != nil {
		m.chi.Invalidate()
		return err
	}

	if err := m.growth.BuildSamples(zs, ds); err != nil {
		m.chi.Invalidate()
		m.zOfChi.Invalidate()

		return err
	}

	m.chiMin = chis[0]
	m.chiMax = chis[n-1]

	return nil
}

// growthUnnormalized evaluates the Heath integral
//
//	D(a) ~ E(z) * int(0, a, da' / (a'*E(a'))^3)
//
// without the D(0) normalization.
func (m *MultiEpoch) growthUnnormalized(z float64) float64 {
	a := 1 / (1 + z)

	integral := quad.Fixed(func(ap float64) float64 {
		ae := ap * m.eOfScale(ap)
		return 1 / (ae * ae * ae)
	}, 0, a, growthQuadOrder, nil, 0)

	return 2.5 * m.params.OmegaM0 * m.E(z) * integral
}
