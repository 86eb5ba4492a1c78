// Package physics provides the dispersion laws of the fluid-of-light
// model.
//
// Each relation implements [bogo.Relation], mapping a point on its two
// axes to the interacting Bogoliubov frequency and its free reference:
//
//   - [Spatial]: transverse (kx, ky) geometry, Ω = sqrt((K²/2k0)² + K²Δn)
//   - [SpatioTemporal]: (kx, Δω) geometry with a group-velocity
//     dispersion term; only |kx| enters
//   - [Condensate]: textbook BEC form in arbitrary units,
//     ω = sqrt(εK(εK + 2gn))
//
// All relations also implement [bogo.Configurable] for runtime
// parameter adjustment from the interactive view.
//
// # Units
//
// Spatial and spatio-temporal relations take wavevectors in rad/m and
// frequency shifts in MHz; returned frequencies are in 1/m. The
// condensate relation is unit-free.
package physics
