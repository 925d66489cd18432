// Package ui implements the interactive jog console.
//
// The jog console is a full-screen terminal UI for driving a camera by
// hand: arrow keys pan and tilt, letter keys run the lens (zoom, focus,
// iris), digits recall presets, and +/- adjust the motion speed. Every
// keypress is translated into a single protocol frame and written to
// the camera link immediately; releasing a motion key is not detectable
// in a terminal, so motion continues until the stop key (space) sends
// the all-stop frame.
//
// Built on Bubble Tea with bubbles/key for bindings and bubbles/help
// for the footer. Rendering uses lipgloss; no direct escape sequences.
package ui
