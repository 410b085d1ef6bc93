package window

import "github.com/cwbudde/algo-limber/cosmo"

// ConvergenceDelta is the lensing convergence window for a source plane at
// a single redshift, where the efficiency integral collapses to the closed
// form
//
//	g(chi) = (chi_s - chi) / chi_s  for chi <= chi_s, else 0
//	W(chi) = 3/2 * omega_m * H0^2 * chi * g(chi) / a_s
//
// with chi_s the comoving distance of the source plane.
type ConvergenceDelta struct {
	base
	zSource float64
}

// NewConvergenceDelta constructs a delta-function-source convergence window
// for a source plane at zSource. A nil cosmology falls back to a default
// adapter covering [0, zSource].
func NewConvergenceDelta(zSource float64, m *cosmo.MultiEpoch, opts ...Option) (*ConvergenceDelta, error) {
	if zSource <= 0 {
		return nil, ErrInvalidRedshift
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	b, err := newBase(0, zSource, m, cfg)
	if err != nil {
		return nil, err
	}

	d := &ConvergenceDelta{base: b, zSource: zSource}
	d.raw = d.rawWindowFunction

	return d, nil
}

func (d *ConvergenceDelta) rawWindowFunction(chi float64) (float64, error) {
	if chi > d.chiMax {
		return 0, nil
	}

	a := 1 / (1 + d.zSource)
	g := (d.chiMax - chi) / d.chiMax
	g *= d.m.H0() * d.m.H0() * chi

	return 1.5 * d.m.OmegaM0() * g / a, nil
}
