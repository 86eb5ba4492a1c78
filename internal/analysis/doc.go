// Package analysis derives physical quantities from evaluated
// dispersion data.
//
// The package characterizes where a field sits between the two
// dispersion regimes:
//
//   - [SoundSpeed]: slope of the phonon branch, sqrt(Δn)
//   - [GroupVelocity]: dΩ along a cut by central differences
//   - [PhononFraction]: share of grid points below the crossover K
//   - [Summarize]: everything above plus peak and interaction shift,
//     packaged for the interactive view and exports
//
// # Regime Crossover
//
// The crossover sits at K = k0·sqrt(Δn); below it excitations are
// phonon-like (Ω ≈ c_s·K), above it free-particle-like (Ω ≈ K²/2k0):
//
//	s := analysis.Summarize(rel, field)
//	if s.PhononFrac > 0.5 {
//	    // most of the grid responds collectively
//	}
package analysis
