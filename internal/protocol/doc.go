// Package protocol implements the Pelco D camera control protocol.
//
// This package handles construction, validation, encoding and decoding of
// the fixed 7-byte command frames used to drive Pelco D pan-tilt-zoom
// cameras over a serial line, plus parsing of the reply frames some
// devices send back.
//
// # Frame Format
//
// Every command is exactly seven bytes:
//
//	[0]  Sync      always 0xFF
//	[1]  Address   target device, 0-255
//	[2]  Command1  bitmask (sense, scan, camera power, iris, focus near)
//	[3]  Command2  bitmask (focus far, zoom, up/down/left/right)
//	[4]  Data1     pan speed, or extended-command parameter
//	[5]  Data2     tilt speed, preset id, or extended-command parameter
//	[6]  Checksum  sum of bytes 1-5 modulo 256
//
// # Usage Example - Building
//
//	msg, err := protocol.NewBuilder(10).
//	    CameraOn().
//	    FocusFar().
//	    Down().
//	    Tilt(tiltSpeed).
//	    Finalize()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// A Builder accumulates flags in any order and validates them once at
// Finalize time, so mutually exclusive combinations (up+down, camera
// on+off, extended command mixed with motion flags) are reported as a
// ConflictingCommand error no matter which setter ran first. A finalized
// builder is consumed and cannot be reused.
//
// # Usage Example - Sending
//
//	port := protocol.NewPort(serialConn)
//	if err := port.SendMessage(msg); err != nil {
//	    log.Fatal(err)
//	}
//
// Port works with any io.ReadWriter, so a real serial port, a TCP
// connection to a serial bridge, or an in-memory buffer in tests all
// behave identically.
//
// # Decoding
//
// Frames read from a device are decoded with Decode, which verifies the
// sync byte and checksum but deliberately does NOT re-check command-flag
// conflicts: a device may legitimately emit combinations the local
// builder refuses to construct. Encode-time strictness and decode-time
// permissiveness are asymmetric on purpose.
//
// # Extended Commands
//
// Preset, zone, pattern, screen and lens-adjustment operations repurpose
// the data bytes and are exposed as dedicated constructors (SetPreset,
// GoToPreset, SetZoneStart, WriteCharToScreen, ...). They produce
// complete Messages directly since their payloads do not compose with
// motion flags.
//
// # Error Handling
//
// All protocol violations are reported synchronously with typed errors
// (InvalidSpeed, ConflictingCommand, ChecksumMismatch, InvalidFraming,
// InvalidArgument); channel-level I/O errors pass through verbatim so
// callers can apply transport-specific recovery.
//
// # Thread Safety
//
// Encoding, decoding and validation are pure computation and safe for
// concurrent use. A Port owns its channel exclusively and must be
// serialized externally if shared between goroutines.
package protocol
