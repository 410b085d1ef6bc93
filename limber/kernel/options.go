package kernel

import "go.uber.org/zap"

// Defaults for the kernel precision knobs.
const (
	DefaultPoints      = 50
	DefaultTolerance   = 1.48e-6
	DefaultBesselZeros = 8
	DefaultQuadOrder   = 100
)

// Option configures kernel construction.
type Option func(*config)

type config struct {
	points      int
	tol         float64
	besselZeros int
	quadOrder   int
	forceQuad   bool
	logger      *zap.Logger
}

func defaultConfig() config {
	return config{
		points:      DefaultPoints,
		tol:         DefaultTolerance,
		besselZeros: DefaultBesselZeros,
		quadOrder:   DefaultQuadOrder,
		logger:      zap.NewNop(),
	}
}

// WithPoints sets the size of the ln(k*theta) sample grid.
func WithPoints(n int) Option {
	return func(c *config) {
		if n > 1 {
			c.points = n
		}
	}
}

// WithTolerance sets the tolerance for the kernel integrals.
func WithTolerance(tol float64) Option {
	return func(c *config) {
		if tol > 0 {
			c.tol = tol
		}
	}
}

// WithBesselZeros sets how many zero crossings of the Bessel function are
// considered relevant; the last one fixes the truncation radius of the
// oscillatory integral.
func WithBesselZeros(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.besselZeros = n
		}
	}
}

// WithQuadOrder sets the Gauss-Legendre order used in fixed-quadrature
// mode.
func WithQuadOrder(n int) Option {
	return func(c *config) {
		if n > 1 {
			c.quadOrder = n
		}
	}
}

// WithForceQuad selects fixed-order quadrature for the raw kernel integral
// instead of adaptive refinement. Adaptive integration of a strongly
// oscillatory integrand can be numerically noisy at large k*theta; this
// mode is the caller's explicit accuracy/speed trade-off, not an automatic
// fallback.
func WithForceQuad() Option {
	return func(c *config) {
		c.forceQuad = true
	}
}

// WithLogger sets the logger handed to internally constructed cosmology
// adapters. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
