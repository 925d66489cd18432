package protocol

// Response sizes in bytes, by kind
const (
	responseSizeNone     = 0
	responseSizeGeneral  = 4
	responseSizeExtended = 7
	responseSizeQuery    = 18
	responseSizeMax      = responseSizeQuery
)

// ResponseKind identifies the reply format a device uses. Which kind a
// given command elicits (if any) is device-specific.
type ResponseKind int

const (
	// ResponseNone is the absence of a reply (0 bytes)
	ResponseNone ResponseKind = iota
	// ResponseGeneral is the common 4-byte acknowledgment
	ResponseGeneral
	// ResponseExtended is a 7-byte data reply in command-frame format
	ResponseExtended
	// ResponseQuery is the 18-byte reply to the query command
	ResponseQuery
)

// Size returns the wire size of the response kind in bytes
func (k ResponseKind) Size() int {
	switch k {
	case ResponseGeneral:
		return responseSizeGeneral
	case ResponseExtended:
		return responseSizeExtended
	case ResponseQuery:
		return responseSizeQuery
	default:
		return responseSizeNone
	}
}

// Response is a reply frame received from a device.
type Response struct {
	kind ResponseKind
	data [responseSizeMax]byte
}

// ParseResponse classifies raw reply bytes by length: 0, 4, 7 or 18
// bytes. Any other length fails with an InvalidFraming error. The
// checksum is not verified here; use VerifyChecksum.
func ParseResponse(raw []byte) (Response, error) {
	var r Response
	switch len(raw) {
	case responseSizeNone:
		r.kind = ResponseNone
	case responseSizeGeneral:
		r.kind = ResponseGeneral
	case responseSizeExtended:
		r.kind = ResponseExtended
	case responseSizeQuery:
		r.kind = ResponseQuery
	default:
		return Response{}, newError(ErrKindInvalidFraming, "response is %d bytes, want 0, 4, 7 or 18", len(raw))
	}
	copy(r.data[:], raw)
	return r, nil
}

// Kind returns the response kind
func (r Response) Kind() ResponseKind {
	return r.kind
}

// Bytes returns a copy of the response payload
func (r Response) Bytes() []byte {
	out := make([]byte, r.kind.Size())
	copy(out, r.data[:r.kind.Size()])
	return out
}

// VerifyChecksum checks the response's integrity. cmdChecksum is the
// checksum byte of the command that caused this reply; general and query
// responses fold it into their own checksum, the other kinds ignore it.
func (r Response) VerifyChecksum(cmdChecksum byte) bool {
	switch r.kind {
	case ResponseNone:
		return true
	case ResponseGeneral:
		return Checksum([]byte{cmdChecksum, r.data[2]}) == r.data[3]
	case ResponseExtended:
		return Checksum(r.data[1:6]) == r.data[6]
	case ResponseQuery:
		sum := uint32(Checksum(r.data[1:17])) + uint32(cmdChecksum)
		return byte(sum&0xFF) == r.data[17]
	default:
		return false
	}
}
