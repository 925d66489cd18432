package protocol

import (
	"math"
	"testing"
)

func TestSpeedFromRange(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{name: "zero", value: 0.0, wantErr: false},
		{name: "half", value: 0.5, wantErr: false},
		{name: "full", value: 1.0, wantErr: false},
		{name: "negative", value: -0.1, wantErr: true},
		{name: "above range", value: 1.1, wantErr: true},
		{name: "far above range", value: 100, wantErr: true},
		{name: "NaN", value: math.NaN(), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SpeedFromRange(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("SpeedFromRange(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if tt.wantErr && !IsInvalidSpeed(err) {
				t.Errorf("SpeedFromRange(%v) error = %v, want InvalidSpeed kind", tt.value, err)
			}
		})
	}
}

func TestSpeedByte(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		axis  Axis
		want  byte
	}{
		{name: "pan zero", value: 0.0, axis: AxisPan, want: 0x00},
		{name: "pan half", value: 0.5, axis: AxisPan, want: 0x20},
		{name: "pan 0.603", value: 0.603, axis: AxisPan, want: 0x26},
		{name: "pan full", value: 1.0, axis: AxisPan, want: 0x3F},
		{name: "tilt half", value: 0.5, axis: AxisTilt, want: 0x20},
		{name: "tilt full", value: 1.0, axis: AxisTilt, want: 0x3F},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := SpeedFromRange(tt.value)
			if err != nil {
				t.Fatalf("SpeedFromRange(%v) error = %v", tt.value, err)
			}
			got, err := s.Byte(tt.axis)
			if err != nil {
				t.Fatalf("Byte() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Byte() = 0x%02X, want 0x%02X", got, tt.want)
			}
		})
	}
}

func TestSpeedTurbo(t *testing.T) {
	s := TurboSpeed()
	if !s.IsTurbo() {
		t.Fatal("TurboSpeed().IsTurbo() = false")
	}

	got, err := s.Byte(AxisPan)
	if err != nil {
		t.Fatalf("Byte(AxisPan) error = %v", err)
	}
	if got != SpeedTurboByte {
		t.Errorf("Byte(AxisPan) = 0x%02X, want 0x%02X", got, SpeedTurboByte)
	}

	// The protocol has no turbo byte for tilt; encoding must fail rather
	// than silently substitute a different speed.
	if _, err := s.Byte(AxisTilt); !IsInvalidSpeed(err) {
		t.Errorf("Byte(AxisTilt) error = %v, want InvalidSpeed kind", err)
	}
}

func TestSpeedByteMonotonic(t *testing.T) {
	prev := byte(0)
	for i := 0; i <= 1000; i++ {
		v := float64(i) / 1000.0
		s, err := SpeedFromRange(v)
		if err != nil {
			t.Fatalf("SpeedFromRange(%v) error = %v", v, err)
		}
		b, err := s.Byte(AxisPan)
		if err != nil {
			t.Fatalf("Byte() error = %v", err)
		}
		if b < prev {
			t.Fatalf("encoding not monotonic: %v -> 0x%02X after 0x%02X", v, b, prev)
		}
		prev = b
	}
	if prev != SpeedMaxByte {
		t.Errorf("encoding of 1.0 = 0x%02X, want 0x%02X", prev, SpeedMaxByte)
	}
}
