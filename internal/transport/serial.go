// Package transport opens the physical links a Pelco D unit sits
// behind. Today that means RS-422/RS-485 serial adapters; the protocol
// layer itself only needs an io.ReadWriter, so anything byte-oriented
// can be substituted (see the bridge package for a network relay).
package transport

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// DefaultReadTimeout bounds how long a response read blocks. Pelco D
// units answer within tens of milliseconds; anything slower means the
// unit did not hear us.
const DefaultReadTimeout = 300 * time.Millisecond

// SerialOptions configures a serial connection to a camera.
type SerialOptions struct {
	Device      string        // Device path, e.g. /dev/ttyUSB0 or COM3
	BaudRate    int           // Line speed, commonly 2400/4800/9600
	ReadTimeout time.Duration // Zero means DefaultReadTimeout
}

// OpenSerial opens the named serial device in the 8N1 framing Pelco D
// requires. The returned port satisfies io.ReadWriteCloser and can be
// handed directly to protocol.NewPort.
func OpenSerial(opts SerialOptions) (serial.Port, error) {
	if opts.Device == "" {
		return nil, fmt.Errorf("no serial device specified")
	}

	mode := &serial.Mode{
		BaudRate: opts.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(opts.Device, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial device %s: %w", opts.Device, err)
	}

	timeout := opts.ReadTimeout
	if timeout == 0 {
		timeout = DefaultReadTimeout
	}
	if err := port.SetReadTimeout(timeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to set read timeout on %s: %w", opts.Device, err)
	}

	return port, nil
}

// ListDevices enumerates the serial devices visible to the OS. Useful
// for the CLI's device picker when no --device flag is given.
func ListDevices() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate serial devices: %w", err)
	}
	return ports, nil
}
