package cosmo

import "errors"

// Errors returned by adapter construction and queries.
var (
	ErrInvalidRedshiftRange = errors.New("cosmo: z_min must be non-negative and less than z_max")
	ErrInvalidDensity       = errors.New("cosmo: matter density must be positive and dark energy density non-negative")
	ErrRedshiftOutOfRange   = errors.New("cosmo: redshift outside the adapter range")
	ErrDistanceOutOfRange   = errors.New("cosmo: comoving distance outside the adapter range")
)

// Params holds the density parameters of a wCDM cosmology with w = -1.
// Curvature is implied by the sum; a flat model has OmegaM0 + OmegaL0 = 1.
type Params struct {
	OmegaM0 float64 // matter density relative to critical, today
	OmegaL0 float64 // dark energy density relative to critical, today
}

// DefaultParams returns a flat concordance cosmology.
func DefaultParams() Params {
	return Params{OmegaM0: 0.3, OmegaL0: 0.7}
}

// OmegaK0 returns the implied curvature density.
func (p Params) OmegaK0() float64 {
	return 1 - p.OmegaM0 - p.OmegaL0
}

// Validate checks the density parameters.
func (p Params) Validate() error {
	if p.OmegaM0 <= 0 || p.OmegaL0 < 0 {
		return ErrInvalidDensity
	}

	return nil
}
