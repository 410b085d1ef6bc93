// Package cosmo provides the background-cosmology adapter consumed by the
// limber packages: comoving distance, its redshift inverse, the
// dimensionless expansion rate E(z), and the linear growth factor D(z) for a
// wCDM cosmology with w fixed at -1.
//
// Distances are in Mpc/h and the Hubble constant is expressed in h/Mpc with
// c = 1, so all results are independent of the value of h itself.
//
// A MultiEpoch covers a fixed redshift range and caches its distance and
// growth tables as splines, built lazily on first use. Resetting the
// cosmological parameters through SetCosmology mutates the adapter in place
// and invalidates every cached table; holders of a shared adapter observe
// the reset on their next query.
package cosmo
