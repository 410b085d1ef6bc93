// Package kernel computes angular correlation kernels for Limber's
// approximation: the line-of-sight integral of the product of two window
// functions, weighted by the squared growth factor and a Bessel term that
// carries the projected angular dependence,
//
//	K(k*theta) = int(chi_min, chi_max, D^2(chi) * W_a(chi) * W_b(chi) * J_n(k*theta*chi))
//
// with k in h/Mpc and theta in radians. The standard kernel uses J_0; the
// galaxy-galaxy lensing variant uses J_2.
//
// The oscillatory Bessel term decays at large argument, so the upper
// integration bound is truncated to the largest relevant zero of J_n
// divided by k*theta. Integration is adaptive by default; a fixed-order
// Gauss-Legendre mode (WithForceQuad) trades speed for stability when
// adaptive refinement turns noisy at large k*theta.
//
// Kernel queries are served from a spline over a fixed grid in ln(k*theta),
// built lazily from the raw integral and masked to zero outside the
// configured range. A kernel also reports the peak of its redshift
// sensitivity (the maximum of the non-oscillatory integrand) and
// kernel-weighted means of redshift-dependent quantities.
//
// A kernel shares its window functions and cosmology adapter with its
// caller. SetCosmology re-pushes the mutated adapter to both window
// functions and recomputes every derived quantity; resets of a shared
// window function from outside the kernel must likewise be followed by a
// kernel reset before the next query.
package kernel
