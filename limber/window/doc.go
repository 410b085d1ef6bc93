// Package window models the comoving-distance weighting profiles that enter
// an angular correlation kernel: how strongly a physical field contributes
// to an observable at each distance along the line of sight.
//
// Computing a window function properly can be expensive. The lensing
// convergence variant carries a nested line-of-sight integral, so every
// variant samples its raw profile over a fixed comoving-distance grid
// exactly once, fits a spline, and serves all later queries as pure spline
// lookups masked to zero outside [chi_min, chi_max]. The cache is built
// lazily on first evaluation and invalidated whenever the cosmology
// changes.
//
// A window function may be shared by several kernels. Resetting the
// cosmology through any holder is a broadcast mutation: every holder
// observes the new state on its next query, and kernels re-push the shared
// adapter to their window functions when they themselves are reset.
//
// Variants:
//   - Galaxy: W(chi) = dN/dz * dz/dchi for a galaxy sample.
//   - Convergence: the weak-lensing efficiency integral over the source
//     distribution.
//   - FlatConvergence: the lensing weight with the efficiency integral
//     replaced by a fixed calibration distance.
//   - ConvergenceDelta: the closed form for a single source plane.
package window
