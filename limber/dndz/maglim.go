package dndz

import "math"

// MagLim is a magnitude-limited redshift distribution,
//
//	dN/dz ~ z^a * exp(-(z/z0)^b)
//
// the standard parametric form for flux-limited galaxy samples. For
// negative power-law slopes the domain should exclude z = 0 to avoid the
// zero-power singularity.
type MagLim struct {
	base
	a  float64
	z0 float64
	b  float64
}

// NewMagLim constructs a magnitude-limited profile with power-law slope a,
// pivot redshift z0, and exponential decay slope b.
func NewMagLim(zMin, zMax, a, z0, b float64, opts ...Option) (*MagLim, error) {
	if z0 <= 0 {
		return nil, ErrInvalidScale
	}

	bb, err := newBase(zMin, zMax, opts)
	if err != nil {
		return nil, err
	}

	p := &MagLim{base: bb, a: a, z0: z0, b: b}
	p.raw = p.shape

	return p, nil
}

func (p *MagLim) shape(z float64) float64 {
	return math.Pow(z, p.a) * math.Exp(-math.Pow(z/p.z0, p.b))
}
