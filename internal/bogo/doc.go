// Package bogo provides core primitives for Bogoliubov dispersion
// evaluation in a fluid of light.
//
// The package defines the fundamental types shared by every layer:
//
//   - [Axis]: an evenly spaced sample sequence over one wavevector or
//     frequency axis
//   - [Relation]: a closed-form dispersion law Ω(a, b) with its free
//     (non-interacting) reference branch
//   - [Field]: both branches evaluated over a full 2D grid
//   - [Cut]: a 1D slice of the surface at a fixed axis value
//
// # Example
//
//	rel := physics.NewSpatial()
//	field, _ := eval.Grid(ctx, rel, kxAxis, kyAxis)
//	kxi := bogo.HealingWavenumber(rel.K0(), rel.Dn)
//
// # Thread Safety
//
// Relations are pure once their parameters are set: concurrent
// evaluations never interfere. Mutating parameters while an evaluation
// is in flight is not supported.
package bogo
