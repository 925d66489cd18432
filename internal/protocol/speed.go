package protocol

import "math"

// Speed byte encoding constants
const (
	SpeedMaxByte   = 0x3F // Top of the 6-bit continuous range per axis
	SpeedTurboByte = 0xFF // Reserved maximum-speed encoding (pan only)
)

// Axis identifies which data byte a speed value is destined for.
type Axis int

const (
	// AxisPan encodes into Data1. Supports turbo (0xFF).
	AxisPan Axis = iota
	// AxisTilt encodes into Data2. The protocol defines no turbo byte for
	// tilt, so turbo speeds are rejected on this axis.
	AxisTilt
)

// Speed is a pan or tilt speed: either a fraction of the continuous
// range [0.0, 1.0] or the distinguished turbo marker. The zero value is
// a valid speed of 0.0 (stopped).
type Speed struct {
	value float64
	turbo bool
}

// SpeedFromRange builds a continuous speed from a fraction in [0.0, 1.0].
// Out-of-range values and NaN are rejected rather than clamped, so a
// caller's mistake never silently becomes a different speed.
func SpeedFromRange(v float64) (Speed, error) {
	if math.IsNaN(v) || v < 0.0 || v > 1.0 {
		return Speed{}, newError(ErrKindInvalidSpeed, "speed fraction %v outside [0.0, 1.0]", v)
	}
	return Speed{value: v}, nil
}

// TurboSpeed returns the reserved maximum-speed value. Only the pan axis
// can encode it.
func TurboSpeed() Speed {
	return Speed{turbo: true}
}

// IsTurbo reports whether s is the turbo marker
func (s Speed) IsTurbo() bool {
	return s.turbo
}

// Byte encodes the speed for the given axis. Continuous speeds quantize
// to round(v * 0x3F). Turbo encodes as 0xFF on the pan axis and fails
// with an InvalidSpeed error on tilt.
func (s Speed) Byte(axis Axis) (byte, error) {
	if s.turbo {
		if axis != AxisPan {
			return 0, newError(ErrKindInvalidSpeed, "turbo speed is not representable on the tilt axis")
		}
		return SpeedTurboByte, nil
	}

	b := byte(math.Round(s.value * SpeedMaxByte))
	if b > SpeedMaxByte {
		b = SpeedMaxByte
	}
	return b, nil
}
