package protocol

import (
	"bytes"
	"testing"
)

func TestChecksum(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want byte
	}{
		{name: "worked example", data: []byte{0x0A, 0x88, 0x90, 0x00, 0x40}, want: 0x62},
		{name: "worked example tilt half", data: []byte{0x0A, 0x88, 0x90, 0x00, 0x20}, want: 0x42},
		{name: "empty", data: nil, want: 0x00},
		{name: "wraps modulo 256", data: []byte{0xFF, 0xFF, 0x02}, want: 0x00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Checksum(tt.data); got != tt.want {
				t.Errorf("Checksum(%v) = 0x%02X, want 0x%02X", tt.data, got, tt.want)
			}
		})
	}
}

func TestNewMessage(t *testing.T) {
	msg := NewMessage(10,
		Command1Sense|Command1CameraOnOff,
		Command2FocusFar|Command2Down,
		0x00, 0x40)
	want := []byte{0xFF, 0x0A, 0x88, 0x90, 0x00, 0x40, 0x62}
	if !bytes.Equal(msg.Bytes(), want) {
		t.Errorf("Bytes() = % X, want % X", msg.Bytes(), want)
	}

	if msg.Address() != 10 {
		t.Errorf("Address() = %d, want 10", msg.Address())
	}
	if msg.Checksum() != 0x62 {
		t.Errorf("Checksum() = 0x%02X, want 0x62", msg.Checksum())
	}
}

func TestFromWords(t *testing.T) {
	msg := FromWords(23, [4]byte{200, 9, 145, 17})
	want := []byte{0xFF, 23, 200, 9, 145, 17, 138}
	if !bytes.Equal(msg.Bytes(), want) {
		t.Errorf("Bytes() = % X, want % X", msg.Bytes(), want)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		raw      []byte
		wantErr  bool
		errCheck func(error) bool
		errName  string
	}{
		{
			name: "valid frame",
			raw:  []byte{0xFF, 0x0A, 0x88, 0x90, 0x00, 0x20, 0x42},
		},
		{
			name:     "wrong sync byte",
			raw:      []byte{0xFE, 0x0A, 0x88, 0x90, 0x00, 0x20, 0x42},
			wantErr:  true,
			errCheck: IsInvalidFraming,
			errName:  "InvalidFraming",
		},
		{
			name:     "bad checksum",
			raw:      []byte{0xFF, 0x0A, 0x88, 0x90, 0x00, 0x20, 0x43},
			wantErr:  true,
			errCheck: IsChecksumMismatch,
			errName:  "ChecksumMismatch",
		},
		{
			name:     "too short",
			raw:      []byte{0xFF, 0x0A, 0x88},
			wantErr:  true,
			errCheck: IsInvalidFraming,
			errName:  "InvalidFraming",
		},
		{
			name:     "too long",
			raw:      []byte{0xFF, 0x0A, 0x88, 0x90, 0x00, 0x20, 0x42, 0x00},
			wantErr:  true,
			errCheck: IsInvalidFraming,
			errName:  "InvalidFraming",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := Decode(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !tt.errCheck(err) {
					t.Errorf("Decode() error = %v, want %s kind", err, tt.errName)
				}
				return
			}
			if !bytes.Equal(msg.Bytes(), tt.raw) {
				t.Errorf("Bytes() = % X, want % X", msg.Bytes(), tt.raw)
			}
		})
	}
}

// Decode accepts flag combinations the builder refuses: a device may
// legitimately send them.
func TestDecodePermissiveOnFlagConflicts(t *testing.T) {
	conflicting := NewMessage(1, 0, Command2Up|Command2Down, 0x20, 0x20)
	msg, err := Decode(conflicting.Bytes())
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil for conflicting-but-well-formed frame", err)
	}
	if msg.Command2() != Command2Up|Command2Down {
		t.Errorf("Command2() = 0x%02X, want 0x%02X", msg.Command2(), Command2Up|Command2Down)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	messages := []Message{
		NewMessage(0, 0, 0, 0, 0),
		NewMessage(1, Command1Sense|Command1CameraOnOff, 0, 0, 0),
		NewMessage(2, 0, Command2Left, 0x20, 0x00),
		NewMessage(255, 0xFF, 0xFF, 0xFF, 0xFF),
		Flip180(34),
		SetZoomSpeed(12, ZoomSpeedMedium),
	}

	for _, msg := range messages {
		decoded, err := Decode(msg.Bytes())
		if err != nil {
			t.Errorf("Decode(% X) error = %v", msg.Bytes(), err)
			continue
		}
		if decoded != msg {
			t.Errorf("round trip: got %v, want %v", decoded, msg)
		}
	}
}
