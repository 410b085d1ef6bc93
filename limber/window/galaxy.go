package window

import (
	"fmt"

	"github.com/cwbudde/algo-limber/cosmo"
	"github.com/cwbudde/algo-limber/limber/dndz"
)

// Galaxy is the window function of a galaxy sample,
//
//	W(chi) = dN/dz * dz/dchi
//
// with dz/dchi = 1/E(z) in the adapter's convention, so the kernel scale
// carries an implicit factor of c/H0.
type Galaxy struct {
	base
	dist dndz.Profile
}

// NewGalaxy constructs a galaxy window function over the redshift domain of
// dist. The profile is normalized as part of construction. A nil cosmology
// falls back to a default adapter covering the profile's domain.
func NewGalaxy(dist dndz.Profile, m *cosmo.MultiEpoch, opts ...Option) (*Galaxy, error) {
	if err := dist.Normalize(); err != nil {
		return nil, fmt.Errorf("window: galaxy profile: %w", err)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	zMin, zMax := dist.ZRange()

	b, err := newBase(zMin, zMax, m, cfg)
	if err != nil {
		return nil, err
	}

	g := &Galaxy{base: b, dist: dist}
	g.raw = g.rawWindowFunction

	return g, nil
}

func (g *Galaxy) rawWindowFunction(chi float64) (float64, error) {
	z, err := g.m.Redshift(chi)
	if err != nil {
		return 0, err
	}

	return g.dist.DensityAt(z) / g.m.E(z), nil
}
