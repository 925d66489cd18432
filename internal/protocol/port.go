package protocol

import "io"

// Port pairs a duplex byte channel with framed Pelco D send and receive
// operations. It owns the channel exclusively, keeps no partial-frame
// state between calls, and never retries: retry policy depends on
// whether repeating a motion command is safe, which only the caller
// knows.
//
// Channel errors propagate verbatim so callers can apply their own
// recovery (reconnect, backoff). Blocking, cancellation and timeout
// semantics are entirely those of the underlying channel.
type Port struct {
	rw io.ReadWriter
}

// NewPort wraps a duplex channel: a serial port, a network connection,
// or an in-memory buffer in tests.
func NewPort(rw io.ReadWriter) *Port {
	return &Port{rw: rw}
}

// SendMessage writes the message's seven bytes to the channel in a
// single write.
func (p *Port) SendMessage(msg Message) error {
	_, err := p.rw.Write(msg.Bytes())
	return err
}

// ReceiveMessage reads exactly one 7-byte frame, blocking until it is
// complete, then decodes it. A channel that closes mid-frame surfaces
// the read error (io.ErrUnexpectedEOF for a short frame), never a
// checksum error.
func (p *Port) ReceiveMessage() (Message, error) {
	var buf [MessageSize]byte
	if _, err := io.ReadFull(p.rw, buf[:]); err != nil {
		return Message{}, err
	}
	return Decode(buf[:])
}

// ReceiveResponse reads exactly one response frame of the given kind.
// The caller chooses the kind because response formats are fixed per
// command and device, not self-describing on the wire.
func (p *Port) ReceiveResponse(kind ResponseKind) (Response, error) {
	buf := make([]byte, kind.Size())
	if _, err := io.ReadFull(p.rw, buf); err != nil {
		return Response{}, err
	}
	return ParseResponse(buf)
}
