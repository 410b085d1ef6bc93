// Package dndz models normalized redshift probability densities, the
// dN/dz distributions that window functions project into comoving distance.
//
// A profile is constructed with fixed shape parameters, normalized once by
// adaptive quadrature over its domain, and thereafter evaluated as
// norm * shape(z), masked to exactly zero outside [z_min, z_max]. Evaluation
// is element-wise: slice queries return a same-length slice with
// out-of-domain entries zeroed independently.
//
// Four shapes are provided: a Gaussian in redshift, a Gaussian in comoving
// distance, a magnitude-limited power law z^a * exp(-(z/z0)^b), and a
// spline over tabulated data.
package dndz
