package window

import (
	"fmt"

	"github.com/cwbudde/algo-limber/cosmo"
	"github.com/cwbudde/algo-limber/internal/romberg"
	"github.com/cwbudde/algo-limber/limber/dndz"
)

// Convergence is the weak-lensing convergence window of a background
// sample: the weighted fraction of the source distribution beyond each
// lens distance,
//
//	g(chi) = chi * int(chi, chi_max, dN/dz * dz/dchi' * (1 - chi/chi'))
//	W(chi) = 3/2 * omega_m * H0^2 * g(chi) / a
//
// Even when the source distribution only covers part of the line of sight,
// the lensing efficiency extends from z = 0 up to the distribution's upper
// edge, so the window domain is [0, z_max].
type Convergence struct {
	base
	dist    dndz.Profile
	gChiMin float64
}

// NewConvergence constructs a lensing convergence window for the source
// distribution dist. The profile is normalized as part of construction. A
// nil cosmology falls back to a default adapter covering [0, z_max].
func NewConvergence(dist dndz.Profile, m *cosmo.MultiEpoch, opts ...Option) (*Convergence, error) {
	if err := dist.Normalize(); err != nil {
		return nil, fmt.Errorf("window: convergence profile: %w", err)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	_, zMax := dist.ZRange()

	b, err := newBase(0, zMax, m, cfg)
	if err != nil {
		return nil, err
	}

	c := &Convergence{base: b, dist: dist}
	c.raw = c.rawWindowFunction
	c.onCosmo = c.updateSourceBound

	if err := c.updateSourceBound(); err != nil {
		return nil, err
	}

	return c, nil
}

// updateSourceBound re-derives the comoving distance of the source
// distribution's lower edge under the current cosmology. Below it the
// efficiency integral starts at the edge instead of the lens distance.
func (c *Convergence) updateSourceBound() error {
	zMin, _ := c.dist.ZRange()

	chi, err := c.m.ComovingDistance(zMin)
	if err != nil {
		return err
	}

	c.gChiMin = chi

	return nil
}

func (c *Convergence) rawWindowFunction(chi float64) (float64, error) {
	z, err := c.m.Redshift(chi)
	if err != nil {
		return 0, err
	}

	a := 1 / (1 + z)

	bound := chi
	if bound < c.gChiMin {
		bound = c.gChiMin
	}

	g, err := romberg.Integrate(func(cp float64) float64 {
		zp, err := c.m.Redshift(cp)
		if err != nil {
			return 0
		}

		// (cp-chi)/cp -> 1 as cp -> 0, reachable only when chi = 0.
		frac := 1.0
		if cp > 0 {
			frac = (cp - chi) / cp
		}

		return c.dist.DensityAt(zp) / c.m.E(zp) * frac
	}, bound, c.chiMax, c.tol)
	if err != nil {
		return 0, fmt.Errorf("window: lensing integral at chi=%g: %w", chi, err)
	}

	g *= c.m.H0() * c.m.H0() * chi

	return 1.5 * c.m.OmegaM0() * g / a, nil
}
