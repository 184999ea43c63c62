package runbits

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange is returned when a range has start > end.
	ErrInvalidRange = errors.New("invalid range")

	// ErrOverflow is returned when a position or run end falls outside the
	// addressable universe [0, MaxEnd).
	ErrOverflow = errors.New("position out of range")

	// ErrShortBuffer is returned when an output buffer cannot hold the encoding.
	ErrShortBuffer = errors.New("buffer too small")

	// ErrCorrupt is returned when decoding malformed input.
	ErrCorrupt = errors.New("corrupt bitset encoding")
)

// RangeError describes a rejected range argument.
//
// The sentinel (ErrInvalidRange or ErrOverflow) can be accessed via errors.Unwrap.
type RangeError struct {
	Op    string
	Start uint64
	End   uint64
	cause error
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s [%d, %d]: %v", e.Op, e.Start, e.End, e.cause)
}

func (e *RangeError) Unwrap() error { return e.cause }

// ShortBufferError reports how many bytes an encoding needed.
type ShortBufferError struct {
	Need int
	Have int
}

func (e *ShortBufferError) Error() string {
	return fmt.Sprintf("buffer too small: need %d bytes, have %d", e.Need, e.Have)
}

func (e *ShortBufferError) Unwrap() error { return ErrShortBuffer }

// CorruptError describes why an encoding was rejected.
type CorruptError struct {
	Offset int
	Reason string
	cause  error
}

func (e *CorruptError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("corrupt bitset encoding at offset %d: %s: %v", e.Offset, e.Reason, e.cause)
	}
	return fmt.Sprintf("corrupt bitset encoding at offset %d: %s", e.Offset, e.Reason)
}

// Unwrap exposes both ErrCorrupt and the underlying cause, if any.
func (e *CorruptError) Unwrap() []error {
	if e.cause != nil {
		return []error{ErrCorrupt, e.cause}
	}
	return []error{ErrCorrupt}
}

func corrupt(offset int, reason string) error {
	return &CorruptError{Offset: offset, Reason: reason}
}

func corruptWrap(offset int, reason string, err error) error {
	return &CorruptError{Offset: offset, Reason: reason, cause: err}
}
