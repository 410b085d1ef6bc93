package window

import "github.com/cwbudde/algo-limber/cosmo"

// FlatConvergence approximates a lensing convergence window with the
// efficiency integral replaced by a fixed calibration distance, giving a
// weight that does not vary with comoving distance:
//
//	W = 3/2 * omega_m * H0^2 * chi_cal
//
// The calibration distance defaults to DefaultCalibration and is
// overridable with WithCalibration; it is cosmology-independent by
// construction.
type FlatConvergence struct {
	base
	calibration float64
}

// NewFlatConvergence constructs a flat convergence window over
// [zMin, zMax]. A nil cosmology falls back to a default adapter covering
// that range.
func NewFlatConvergence(zMin, zMax float64, m *cosmo.MultiEpoch, opts ...Option) (*FlatConvergence, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	b, err := newBase(zMin, zMax, m, cfg)
	if err != nil {
		return nil, err
	}

	f := &FlatConvergence{base: b, calibration: cfg.calibration}
	f.raw = f.rawWindowFunction

	return f, nil
}

func (f *FlatConvergence) rawWindowFunction(chi float64) (float64, error) {
	g := f.m.H0() * f.m.H0() * f.calibration
	return 1.5 * f.m.OmegaM0() * g, nil
}
