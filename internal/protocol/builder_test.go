package protocol

import (
	"bytes"
	"testing"
)

func mustSpeed(t *testing.T, v float64) Speed {
	t.Helper()
	s, err := SpeedFromRange(v)
	if err != nil {
		t.Fatalf("SpeedFromRange(%v) error = %v", v, err)
	}
	return s
}

func TestBuilderFinalize(t *testing.T) {
	tests := []struct {
		name  string
		build func(t *testing.T) *Builder
		want  []byte
	}{
		{
			name:  "camera on",
			build: func(t *testing.T) *Builder { return NewBuilder(1).CameraOn() },
			want:  []byte{0xFF, 0x01, 0x88, 0x00, 0x00, 0x00, 0x89},
		},
		{
			name:  "camera off",
			build: func(t *testing.T) *Builder { return NewBuilder(1).CameraOff() },
			want:  []byte{0xFF, 0x01, 0x08, 0x00, 0x00, 0x00, 0x09},
		},
		{
			name: "left at half pan speed",
			build: func(t *testing.T) *Builder {
				return NewBuilder(2).Left().Pan(mustSpeed(t, 0.5))
			},
			want: []byte{0xFF, 0x02, 0x00, 0x04, 0x20, 0x00, 0x26},
		},
		{
			name:  "stop",
			build: func(t *testing.T) *Builder { return NewBuilder(2).Up().ZoomTele().Stop() },
			want:  []byte{0xFF, 0x02, 0x00, 0x00, 0x00, 0x00, 0x02},
		},
		{
			name: "worked example: camera on, focus far, down, tilt half",
			build: func(t *testing.T) *Builder {
				return NewBuilder(10).CameraOn().FocusFar().Down().Tilt(mustSpeed(t, 0.5))
			},
			want: []byte{0xFF, 0x0A, 0x88, 0x90, 0x00, 0x20, 0x42},
		},
		{
			name: "turbo pan",
			build: func(t *testing.T) *Builder {
				return NewBuilder(10).Right().Pan(TurboSpeed())
			},
			want: []byte{0xFF, 0x0A, 0x00, 0x02, 0xFF, 0x00, 0x0B},
		},
		{
			name:  "go to preset via builder",
			build: func(t *testing.T) *Builder { return NewBuilder(255).GoToPreset(255) },
			want:  []byte{0xFF, 0xFF, 0x00, 0x07, 0x00, 0xFF, 0x05},
		},
		{
			name:  "auto scan on",
			build: func(t *testing.T) *Builder { return NewBuilder(1).AutoScanOn() },
			want:  []byte{0xFF, 0x01, 0x90, 0x00, 0x00, 0x00, 0x91},
		},
		{
			name:  "iris and focus",
			build: func(t *testing.T) *Builder { return NewBuilder(3).IrisOpen().FocusNear() },
			want:  []byte{0xFF, 0x03, 0x03, 0x00, 0x00, 0x00, 0x06},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := tt.build(t).Finalize()
			if err != nil {
				t.Fatalf("Finalize() error = %v", err)
			}
			if !bytes.Equal(msg.Bytes(), tt.want) {
				t.Errorf("Finalize() = % X, want % X", msg.Bytes(), tt.want)
			}
		})
	}
}

func TestBuilderConflicts(t *testing.T) {
	tests := []struct {
		name  string
		build func(t *testing.T) *Builder
	}{
		{
			name:  "up then down",
			build: func(t *testing.T) *Builder { return NewBuilder(1).Up().Down() },
		},
		{
			name:  "down then up",
			build: func(t *testing.T) *Builder { return NewBuilder(1).Down().Up() },
		},
		{
			name:  "left and right",
			build: func(t *testing.T) *Builder { return NewBuilder(1).Left().Right() },
		},
		{
			name:  "camera on and off",
			build: func(t *testing.T) *Builder { return NewBuilder(1).CameraOn().CameraOff().CameraOn() },
		},
		{
			name:  "camera off then on",
			build: func(t *testing.T) *Builder { return NewBuilder(1).CameraOff().CameraOn() },
		},
		{
			name:  "auto scan and manual scan",
			build: func(t *testing.T) *Builder { return NewBuilder(1).AutoScanOn().AutoScanOff() },
		},
		{
			name:  "manual scan then auto scan",
			build: func(t *testing.T) *Builder { return NewBuilder(1).AutoScanOff().AutoScanOn() },
		},
		{
			name:  "zoom wide and tele",
			build: func(t *testing.T) *Builder { return NewBuilder(1).ZoomWide().ZoomTele() },
		},
		{
			name:  "focus near and far",
			build: func(t *testing.T) *Builder { return NewBuilder(1).FocusNear().FocusFar() },
		},
		{
			name:  "iris open and close",
			build: func(t *testing.T) *Builder { return NewBuilder(1).IrisOpen().IrisClose() },
		},
		{
			name:  "preset mixed with motion",
			build: func(t *testing.T) *Builder { return NewBuilder(1).GoToPreset(5).Up() },
		},
		{
			name: "motion mixed with preset, other order",
			build: func(t *testing.T) *Builder {
				return NewBuilder(1).Up().Tilt(mustSpeed(t, 0.3)).GoToPreset(5)
			},
		},
		{
			name:  "two extended commands",
			build: func(t *testing.T) *Builder { return NewBuilder(1).SetPreset(1).Flip180() },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build(t).Finalize()
			if !IsConflictingCommand(err) {
				t.Errorf("Finalize() error = %v, want ConflictingCommand kind", err)
			}
		})
	}
}

// Setter order never rescues a power or scan clash: once both intents
// were requested, finalize must refuse, in either order. Stop is the
// only way to start over.
func TestBuilderToggleConflictOrderIndependent(t *testing.T) {
	if _, err := NewBuilder(1).CameraOn().CameraOff().Finalize(); !IsConflictingCommand(err) {
		t.Errorf("CameraOn().CameraOff() error = %v, want ConflictingCommand kind", err)
	}
	if _, err := NewBuilder(1).AutoScanOff().AutoScanOn().Finalize(); !IsConflictingCommand(err) {
		t.Errorf("AutoScanOff().AutoScanOn() error = %v, want ConflictingCommand kind", err)
	}

	// Stop clears the clash along with everything else.
	msg, err := NewBuilder(1).CameraOn().CameraOff().Stop().CameraOn().Finalize()
	if err != nil {
		t.Fatalf("Finalize() after Stop() error = %v", err)
	}
	if msg.Command1() != Command1Sense|Command1CameraOnOff {
		t.Errorf("Command1() = 0x%02X, want 0x%02X", msg.Command1(), Command1Sense|Command1CameraOnOff)
	}
}

func TestBuilderTurboTiltRejected(t *testing.T) {
	_, err := NewBuilder(10).Down().Tilt(TurboSpeed()).Finalize()
	if !IsInvalidSpeed(err) {
		t.Errorf("Finalize() error = %v, want InvalidSpeed kind", err)
	}
}

func TestBuilderPresetZeroRejected(t *testing.T) {
	_, err := NewBuilder(12).SetPreset(0).Finalize()
	if !IsInvalidArgument(err) {
		t.Errorf("Finalize() error = %v, want InvalidArgument kind", err)
	}
}

func TestBuilderSingleUse(t *testing.T) {
	b := NewBuilder(1).CameraOn()
	if _, err := b.Finalize(); err != nil {
		t.Fatalf("first Finalize() error = %v", err)
	}
	if _, err := b.Finalize(); err == nil {
		t.Error("second Finalize() should fail on a consumed builder")
	}
}

// A failed finalize must not yield a partial message on retry either.
func TestBuilderFailedFinalizeProducesNothing(t *testing.T) {
	b := NewBuilder(1).Up().Down()
	msg, err := b.Finalize()
	if err == nil {
		t.Fatal("Finalize() should fail for up+down")
	}
	if msg != (Message{}) {
		t.Errorf("Finalize() returned partial message %v on error", msg)
	}
}
