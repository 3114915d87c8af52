// Package viz renders a running simulator in the terminal.
//
// The package implements the refresh-signal host using the Bubble Tea
// framework:
//
//   - [Model]: live view of one simulator; every [TickMsg] advances it by at
//     most one step and redraws from a snapshot
//   - [Picker]: preset menu that opens a [Model]
//   - [Canvas]: Braille-based dot canvas with per-cell colors
//   - [Recorder]: GIF capture of canvas frames
//   - Theme selection with 4 built-in color schemes, one palette entry per
//     visual id
//
// # Key Bindings
//
//	Space - Pause/Resume (stops and restarts the simulator)
//	R     - Respawn the body set with the next seed
//	F     - Toggle filled/outlined bodies
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// # Recording
//
// Recordings are saved to [RecordPath] when recording stops or the view
// quits.
package viz
