package cosmo

import "go.uber.org/zap"

// Defaults for the adapter's precision knobs.
const (
	DefaultTolerance = 1.48e-8
	DefaultPoints    = 200
)

// Option configures a MultiEpoch.
type Option func(*config)

type config struct {
	tol    float64
	points int
	logger *zap.Logger
}

func defaultConfig() config {
	return config{
		tol:    DefaultTolerance,
		points: DefaultPoints,
		logger: zap.NewNop(),
	}
}

// WithTolerance sets the relative tolerance for the distance integrals.
func WithTolerance(tol float64) Option {
	return func(c *config) {
		if tol > 0 {
			c.tol = tol
		}
	}
}

// WithPoints sets the grid size of the cached distance and growth tables.
func WithPoints(n int) Option {
	return func(c *config) {
		if n > 1 {
			c.points = n
		}
	}
}

// WithLogger sets the logger used for lifecycle events. The default is a
// no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
