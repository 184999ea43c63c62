// Package codec wraps the runbits binary layout in a self-describing frame.
//
// A frame carries a magic number, a format version, the payload compression
// and a CRC32C checksum of the stored payload:
//
//	offset size field
//	0      4    magic "RLB1"
//	4      1    version (1)
//	5      1    compression
//	6      2    reserved (0)
//	8      4    raw payload length (LE)
//	12     4    stored payload length (LE)
//	16     4    CRC32C of the stored payload (LE)
//	20     ...  payload
//
// Frame versions are a breaking-change boundary: a reader rejects versions it
// does not know instead of guessing.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/runbits"
	"github.com/hupe1980/runbits/internal/hash"
)

const (
	// Version is the frame format version written by Encode.
	Version = 1

	// HeaderSize is the length of the frame header.
	HeaderSize = 20
)

// Magic identifies a runbits frame.
var Magic = [4]byte{'R', 'L', 'B', '1'}

var (
	// ErrInvalidMagic is returned when data does not start with Magic.
	ErrInvalidMagic = errors.New("invalid frame magic")
	// ErrUnsupportedVersion is returned for unknown frame versions.
	ErrUnsupportedVersion = errors.New("unsupported frame version")
	// ErrUnknownCompression is returned for unknown compression ids or names.
	ErrUnknownCompression = errors.New("unknown compression")
	// ErrChecksumMismatch is returned when the payload checksum does not match.
	ErrChecksumMismatch = errors.New("frame checksum mismatch")
	// ErrTruncated is returned when the frame is shorter than its header claims.
	ErrTruncated = errors.New("frame truncated")
	// ErrTrailingData is returned when bytes follow the stored payload.
	ErrTrailingData = errors.New("trailing data after frame")
	// ErrTooLarge is returned when a bitset encoding exceeds the frame limit.
	ErrTooLarge = errors.New("payload exceeds frame limit")
)

// Header is the decoded frame header.
type Header struct {
	Version     uint8
	Compression Compression
	RawLen      uint32
	StoredLen   uint32
	Checksum    uint32
}

// Size returns the total frame length described by the header.
func (h Header) Size() int {
	return HeaderSize + int(h.StoredLen)
}

// Ratio returns stored/raw payload size.
func (h Header) Ratio() float64 {
	if h.RawLen == 0 {
		return 1
	}
	return float64(h.StoredLen) / float64(h.RawLen)
}

// IsFrame reports whether data starts with the frame magic.
func IsFrame(data []byte) bool {
	return len(data) >= len(Magic) && [4]byte(data[:4]) == Magic
}

// Encode frames the binary encoding of bs using compression c.
func Encode(bs *runbits.Bitset, c Compression) ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(c))
	}
	raw, err := bs.MarshalBinary()
	if err != nil {
		return nil, err
	}
	if uint64(len(raw)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(raw))
	}

	stored, used, err := compress(raw, c)
	if err != nil {
		return nil, err
	}

	out := make([]byte, HeaderSize+len(stored))
	copy(out, Magic[:])
	out[4] = Version
	out[5] = byte(used)
	binary.LittleEndian.PutUint32(out[8:], uint32(len(raw)))
	binary.LittleEndian.PutUint32(out[12:], uint32(len(stored)))
	binary.LittleEndian.PutUint32(out[16:], hash.CRC32C(stored))
	copy(out[HeaderSize:], stored)
	return out, nil
}

// Peek decodes the frame header without validating the payload.
func Peek(data []byte) (Header, error) {
	if !IsFrame(data) {
		return Header{}, ErrInvalidMagic
	}
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, have %d", ErrTruncated, HeaderSize, len(data))
	}
	h := Header{
		Version:     data[4],
		Compression: Compression(data[5]),
		RawLen:      binary.LittleEndian.Uint32(data[8:]),
		StoredLen:   binary.LittleEndian.Uint32(data[12:]),
		Checksum:    binary.LittleEndian.Uint32(data[16:]),
	}
	if h.Version != Version {
		return h, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	if !h.Compression.Valid() {
		return h, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(h.Compression))
	}
	return h, nil
}

// Decode decodes a frame produced by Encode. Data without the frame magic is
// decoded as a raw runbits encoding.
func Decode(data []byte) (*runbits.Bitset, error) {
	if !IsFrame(data) {
		return runbits.FromBytes(data)
	}
	raw, _, err := Unwrap(data)
	if err != nil {
		return nil, err
	}
	return runbits.FromBytes(raw)
}

// Unwrap validates a frame and returns its decompressed payload.
func Unwrap(data []byte) ([]byte, Header, error) {
	h, err := Peek(data)
	if err != nil {
		return nil, h, err
	}

	payload := data[HeaderSize:]
	switch {
	case uint64(len(payload)) < uint64(h.StoredLen):
		return nil, h, fmt.Errorf("%w: payload needs %d bytes, have %d", ErrTruncated, h.StoredLen, len(payload))
	case uint64(len(payload)) > uint64(h.StoredLen):
		return nil, h, fmt.Errorf("%w: %d bytes", ErrTrailingData, uint64(len(payload))-uint64(h.StoredLen))
	}
	if sum := hash.CRC32C(payload); sum != h.Checksum {
		return nil, h, fmt.Errorf("%w: got %08x, want %08x", ErrChecksumMismatch, sum, h.Checksum)
	}

	raw, err := decompress(payload, h.Compression, int(h.RawLen))
	if err != nil {
		return nil, h, err
	}
	return raw, h, nil
}
