// Package viz hosts the cloth controller in a terminal.
//
// The [Model] is a Bubble Tea program: mouse and key messages are folded
// into level state, sampled once per 60 Hz tick into a sim.Input, and the
// resulting frame is drawn on a Braille [Canvas].
//
// # Controls
//
//	Left click     - add a point, or drag from a point to another to link them
//	Ctrl+click     - delete the point under the cursor (D toggles sticky delete)
//	Right click    - pin or unpin a point
//	Space          - switch between edit and simulate
//	Left drag      - while simulating, cut links under the cursor
//	R / C          - rebuild the preset / clear everything
//	E              - export the frame as SVG
//	T              - cycle themes
//	?              - help
//	Q              - quit
package viz
