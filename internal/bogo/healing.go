package bogo

import "math"

// HealingWavenumber returns the healing-length wavenumber k_ξ in mm⁻¹,
// rounded to the nearest integer. It marks the crossover between the
// phonon-like and free-particle regimes of the dispersion and is used
// as a display label only. Expects k0 > 0 and dn ≥ 0.
func HealingWavenumber(k0, dn float64) float64 {
	return math.Round(k0 * math.Sqrt(dn) * 1e-3)
}

// CrossoverWavenumber is the unrounded crossover scale k0·sqrt(Δn) in
// rad/m.
func CrossoverWavenumber(k0, dn float64) float64 {
	return k0 * math.Sqrt(dn)
}
