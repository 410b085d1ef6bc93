package dndz

import (
	"math"

	"github.com/cwbudde/algo-limber/cosmo"
)

// Gaussian is a Gaussian-shaped redshift distribution,
//
//	dN/dz ~ exp(-(z-z0)^2 / (2*sigma_z^2))
//
// truncated to [zMin, zMax].
type Gaussian struct {
	base
	z0     float64
	sigmaZ float64
}

// NewGaussian constructs a Gaussian profile centred on z0 with standard
// deviation sigmaZ.
func NewGaussian(zMin, zMax, z0, sigmaZ float64, opts ...Option) (*Gaussian, error) {
	if sigmaZ <= 0 {
		return nil, ErrInvalidScale
	}

	b, err := newBase(zMin, zMax, opts)
	if err != nil {
		return nil, err
	}

	g := &Gaussian{base: b, z0: z0, sigmaZ: sigmaZ}
	g.raw = g.shape

	return g, nil
}

func (g *Gaussian) shape(z float64) float64 {
	d := z - g.z0
	return math.Exp(-d * d / (2 * g.sigmaZ * g.sigmaZ))
}

// chiGaussianZMax is the redshift reach of the fallback cosmology used to
// map comoving-distance bounds to redshift.
const chiGaussianZMax = 5.0

// ChiGaussian is a Gaussian in comoving distance,
//
//	dN/dz ~ exp(-(chi(z)-chi0)^2 / (2*sigma_chi^2))
//
// with its bounds given in Mpc/h. The supplied cosmology must reach the
// redshifts equivalent to both distance bounds; construction fails with the
// cosmology's range error otherwise.
type ChiGaussian struct {
	base
	chi0     float64
	sigmaChi float64
	m        *cosmo.MultiEpoch
}

// NewChiGaussian constructs a comoving-distance Gaussian between chiMin and
// chiMax. A nil cosmology falls back to a default adapter covering
// z = 0..5.
func NewChiGaussian(chiMin, chiMax, chi0, sigmaChi float64, m *cosmo.MultiEpoch, opts ...Option) (*ChiGaussian, error) {
	if sigmaChi <= 0 {
		return nil, ErrInvalidScale
	}

	if chiMin >= chiMax {
		return nil, ErrInvalidDomain
	}

	if m == nil {
		var err error

		m, err = cosmo.New(0, chiGaussianZMax)
		if err != nil {
			return nil, err
		}
	}

	zMin, err := m.Redshift(chiMin)
	if err != nil {
		return nil, err
	}

	zMax, err := m.Redshift(chiMax)
	if err != nil {
		return nil, err
	}

	b, err := newBase(zMin, zMax, opts)
	if err != nil {
		return nil, err
	}

	g := &ChiGaussian{base: b, chi0: chi0, sigmaChi: sigmaChi, m: m}
	g.raw = g.shape

	return g, nil
}

func (g *ChiGaussian) shape(z float64) float64 {
	chi, err := g.m.ComovingDistance(z)
	if err != nil {
		return 0
	}

	d := chi - g.chi0

	return math.Exp(-d * d / (2 * g.sigmaChi * g.sigmaChi))
}
