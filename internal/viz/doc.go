// Package viz provides the terminal workbench for Bogoliubov
// dispersion surfaces.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: the workbench, a rotating 3D dispersion surface with a
//     live cut trace and regime readouts
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//   - [SurfaceWireframe]: converts an evaluated field into 3D edges
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume rotation
//	M     - Cycle dispersion mode
//	C     - Cycle the cut axis
//	Tab   - Cycle tunable parameters
//	Up/Dn - Tune the selected parameter ±5%
//	H/L   - Move the cut along its axis
//	G     - Save an SVG snapshot of the canvas
//	T     - Cycle color themes
//	?     - Show help overlay
//
// # Snapshots
//
// The workbench saves canvas snapshots as SVG through a hook installed
// by the caller, so the package stays free of file-format concerns.
package viz
