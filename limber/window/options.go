package window

import "go.uber.org/zap"

// Defaults for the window-function precision knobs.
const (
	DefaultPoints      = 100
	DefaultTolerance   = 1.48e-6
	DefaultCalibration = 1907.71 // Mpc/h, flat-convergence calibration distance
)

// Option configures window-function construction.
type Option func(*config)

type config struct {
	points      int
	tol         float64
	calibration float64
	logger      *zap.Logger
}

func defaultConfig() config {
	return config{
		points:      DefaultPoints,
		tol:         DefaultTolerance,
		calibration: DefaultCalibration,
		logger:      zap.NewNop(),
	}
}

// WithPoints sets the number of comoving-distance sample points.
func WithPoints(n int) Option {
	return func(c *config) {
		if n > 1 {
			c.points = n
		}
	}
}

// WithTolerance sets the tolerance for the nested window integrals.
func WithTolerance(tol float64) Option {
	return func(c *config) {
		if tol > 0 {
			c.tol = tol
		}
	}
}

// WithCalibration overrides the flat-convergence calibration distance in
// Mpc/h. Other variants ignore it.
func WithCalibration(chi float64) Option {
	return func(c *config) {
		if chi > 0 {
			c.calibration = chi
		}
	}
}

// WithLogger sets the logger used for range-coverage warnings. The default
// is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
