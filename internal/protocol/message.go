package protocol

import "fmt"

// Frame constants
const (
	MessageSize = 7    // Every Pelco D command frame is exactly 7 bytes
	SyncByte    = 0xFF // First byte of every frame
)

// Command1 bit assignments
const (
	Command1Sense          = 0x80
	Command1AutoManualScan = 0x10
	Command1CameraOnOff    = 0x08
	Command1IrisClose      = 0x04
	Command1IrisOpen       = 0x02
	Command1FocusNear      = 0x01
)

// Command2 bit assignments
const (
	Command2FocusFar = 0x80
	Command2ZoomWide = 0x40
	Command2ZoomTele = 0x20
	Command2Down     = 0x10
	Command2Up       = 0x08
	Command2Left     = 0x04
	Command2Right    = 0x02
)

// Message is a finalized, immutable 7-byte command frame. Construct one
// with NewMessage, FromWords, Decode, the extended-command constructors,
// or Builder.Finalize; any change requires building a new Message.
type Message struct {
	raw [MessageSize]byte
}

// NewMessage builds a standard command frame from its four payload words.
// The sync byte and checksum are filled in automatically. Extended
// commands have dedicated constructors instead.
func NewMessage(address, cmd1, cmd2, data1, data2 byte) Message {
	var m Message
	m.raw = [MessageSize]byte{SyncByte, address, cmd1, cmd2, data1, data2, 0}
	m.raw[MessageSize-1] = Checksum(m.raw[1 : MessageSize-1])
	return m
}

// FromWords builds a frame from the raw command and data words, with the
// sync byte and checksum filled in. It is the escape hatch for command
// patterns this package has no constructor for.
func FromWords(address byte, words [4]byte) Message {
	return NewMessage(address, words[0], words[1], words[2], words[3])
}

// Decode validates raw bytes received from a device and returns the
// Message they encode. It fails with an InvalidFraming error if the
// input is not exactly 7 bytes starting with 0xFF, and with a
// ChecksumMismatch error if the final byte does not equal the modulo-256
// sum of bytes 1-5.
//
// Decode does not re-check command-flag conflicts: devices may send
// combinations the local Builder would refuse to construct.
func Decode(raw []byte) (Message, error) {
	if len(raw) != MessageSize {
		return Message{}, newError(ErrKindInvalidFraming, "frame is %d bytes, want %d", len(raw), MessageSize)
	}
	if raw[0] != SyncByte {
		return Message{}, newError(ErrKindInvalidFraming, "sync byte is 0x%02X, want 0x%02X", raw[0], SyncByte)
	}

	want := Checksum(raw[1 : MessageSize-1])
	if raw[MessageSize-1] != want {
		return Message{}, newError(ErrKindChecksumMismatch,
			"checksum byte is 0x%02X, computed 0x%02X", raw[MessageSize-1], want)
	}

	var m Message
	copy(m.raw[:], raw)
	return m, nil
}

// Bytes returns a copy of the 7-byte wire representation
func (m Message) Bytes() []byte {
	out := make([]byte, MessageSize)
	copy(out, m.raw[:])
	return out
}

// Address returns the target device address
func (m Message) Address() byte { return m.raw[1] }

// Command1 returns the first command bitmask byte
func (m Message) Command1() byte { return m.raw[2] }

// Command2 returns the second command bitmask byte
func (m Message) Command2() byte { return m.raw[3] }

// Data1 returns the first data byte (pan speed or extended parameter)
func (m Message) Data1() byte { return m.raw[4] }

// Data2 returns the second data byte (tilt speed or extended parameter)
func (m Message) Data2() byte { return m.raw[5] }

// Checksum returns the frame's checksum byte
func (m Message) Checksum() byte { return m.raw[6] }

// String returns a debug representation of the frame
func (m Message) String() string {
	return fmt.Sprintf("Message{addr=%d, cmd1=0x%02X, cmd2=0x%02X, data=0x%02X 0x%02X, cksum=0x%02X}",
		m.Address(), m.Command1(), m.Command2(), m.Data1(), m.Data2(), m.Checksum())
}

// Checksum computes the Pelco D additive checksum: the modulo-256 sum of
// the given bytes. For a full frame that is bytes 1 through 5.
func Checksum(data []byte) byte {
	var sum uint32
	for _, b := range data {
		sum += uint32(b)
	}
	return byte(sum & 0xFF)
}
