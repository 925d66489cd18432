package protocol

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes protocol-level failures.
type ErrorKind int

const (
	// ErrKindInvalidSpeed indicates a speed value outside [0.0, 1.0], NaN,
	// or turbo requested on an axis that cannot encode it.
	ErrKindInvalidSpeed ErrorKind = iota
	// ErrKindConflictingCommand indicates mutually exclusive flags composed
	// on the same builder (e.g. up and down, camera on and off).
	ErrKindConflictingCommand
	// ErrKindChecksumMismatch indicates a decoded frame whose checksum byte
	// does not match the sum of its payload bytes.
	ErrKindChecksumMismatch
	// ErrKindInvalidFraming indicates a frame that does not start with the
	// 0xFF sync byte or is not exactly seven bytes long.
	ErrKindInvalidFraming
	// ErrKindInvalidArgument indicates an argument the protocol cannot
	// represent (preset id 0, non-ASCII screen character, reused builder).
	ErrKindInvalidArgument
)

// String returns a human-readable name for the error kind
func (k ErrorKind) String() string {
	switch k {
	case ErrKindInvalidSpeed:
		return "invalid speed"
	case ErrKindConflictingCommand:
		return "conflicting command"
	case ErrKindChecksumMismatch:
		return "checksum mismatch"
	case ErrKindInvalidFraming:
		return "invalid framing"
	case ErrKindInvalidArgument:
		return "invalid argument"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// Error is a protocol-level error with a machine-checkable kind.
// Channel I/O errors are never wrapped in Error; they propagate verbatim
// from the underlying reader or writer.
type Error struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func kindOf(err error) (ErrorKind, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return 0, false
}

// IsInvalidSpeed reports whether err is a protocol error of kind
// ErrKindInvalidSpeed.
func IsInvalidSpeed(err error) bool {
	k, ok := kindOf(err)
	return ok && k == ErrKindInvalidSpeed
}

// IsConflictingCommand reports whether err is a protocol error of kind
// ErrKindConflictingCommand.
func IsConflictingCommand(err error) bool {
	k, ok := kindOf(err)
	return ok && k == ErrKindConflictingCommand
}

// IsChecksumMismatch reports whether err is a protocol error of kind
// ErrKindChecksumMismatch.
func IsChecksumMismatch(err error) bool {
	k, ok := kindOf(err)
	return ok && k == ErrKindChecksumMismatch
}

// IsInvalidFraming reports whether err is a protocol error of kind
// ErrKindInvalidFraming.
func IsInvalidFraming(err error) bool {
	k, ok := kindOf(err)
	return ok && k == ErrKindInvalidFraming
}

// IsInvalidArgument reports whether err is a protocol error of kind
// ErrKindInvalidArgument.
func IsInvalidArgument(err error) bool {
	k, ok := kindOf(err)
	return ok && k == ErrKindInvalidArgument
}
