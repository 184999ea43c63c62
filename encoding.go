package runbits

import (
	"encoding/binary"
	"errors"
	"io"
	"slices"

	"github.com/cespare/xxhash/v2"

	"github.com/hupe1980/runbits/internal/conv"
	"github.com/hupe1980/runbits/internal/interval"
)

const (
	headerSize  = 8 // uint64 word count
	wordSize    = 4 // uint32 start or length
	runSize     = 2 * wordSize
	trailerSize = 8 // uint64 total bits

	// readChunkRuns bounds the buffer used by ReadFrom.
	readChunkRuns = 4096
)

var (
	_ io.WriterTo   = (*Bitset)(nil)
	_ io.ReaderFrom = (*Bitset)(nil)
)

// BinarySize returns the length of the binary encoding of b.
func (b *Bitset) BinarySize() int {
	return headerSize + len(b.runs)*runSize + trailerSize
}

// ToBytes writes the binary encoding of b into out and returns the number of
// bytes written. It fails with a *ShortBufferError when out is too small.
//
// Layout (little-endian):
//
//	uint64        N = 2 * RunCount()
//	N x uint32    start, length pairs
//	uint64        TotalBits()
func (b *Bitset) ToBytes(out []byte) (int, error) {
	need := b.BinarySize()
	if len(out) < need {
		return 0, &ShortBufferError{Need: need, Have: len(out)}
	}
	binary.LittleEndian.PutUint64(out, uint64(2*len(b.runs)))
	off := headerSize
	for _, r := range b.runs {
		binary.LittleEndian.PutUint32(out[off:], r.Start)
		binary.LittleEndian.PutUint32(out[off+wordSize:], r.Length)
		off += runSize
	}
	binary.LittleEndian.PutUint64(out[off:], b.totalBits)
	return need, nil
}

// AppendBinary appends the binary encoding of b to dst.
func (b *Bitset) AppendBinary(dst []byte) ([]byte, error) {
	size := b.BinarySize()
	dst = slices.Grow(dst, size)
	n := len(dst)
	dst = dst[:n+size]
	if _, err := b.ToBytes(dst[n:]); err != nil {
		return dst[:n], err
	}
	return dst, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (b *Bitset) MarshalBinary() ([]byte, error) {
	return b.AppendBinary(nil)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (b *Bitset) UnmarshalBinary(data []byte) error {
	decoded, err := FromBytes(data)
	if err != nil {
		return err
	}
	*b = *decoded
	return nil
}

// FromBytes decodes a bitset from its binary encoding.
//
// Input without the TotalBits trailer is accepted; TotalBits is then the end
// of the last run. Empty runs are dropped and unsorted or overlapping runs
// are merged.
func FromBytes(in []byte) (*Bitset, error) {
	if len(in) < headerSize {
		return nil, corrupt(0, "header truncated")
	}
	words := binary.LittleEndian.Uint64(in)
	if words%2 != 0 {
		return nil, corrupt(0, "odd word count")
	}
	payload := in[headerSize:]
	if words > uint64(len(payload))/wordSize {
		return nil, corrupt(headerSize, "payload truncated")
	}
	count := int(words / 2)
	runs := make([]Run, count)
	for i := range runs {
		off := i * runSize
		runs[i] = Run{
			Start:  binary.LittleEndian.Uint32(payload[off:]),
			Length: binary.LittleEndian.Uint32(payload[off+wordSize:]),
		}
	}

	rest := payload[count*runSize:]
	trailerOff := headerSize + count*runSize
	switch len(rest) {
	case 0:
		return build(runs, 0, false, trailerOff)
	case trailerSize:
		return build(runs, binary.LittleEndian.Uint64(rest), true, trailerOff)
	default:
		return nil, corrupt(trailerOff, "unexpected trailing bytes")
	}
}

// build validates decoded runs and assembles the bitset.
func build(runs []Run, totalBits uint64, hasTrailer bool, trailerOff int) (*Bitset, error) {
	for i, r := range runs {
		if r.End() > MaxEnd {
			return nil, corrupt(headerSize+i*runSize, "run exceeds universe")
		}
	}
	runs = interval.Normalize(runs)

	var end uint64
	if n := len(runs); n > 0 {
		end = runs[n-1].End()
	}
	if !hasTrailer {
		return &Bitset{runs: runs, totalBits: end}, nil
	}
	if totalBits < end {
		return nil, corrupt(trailerOff, "total bits below last run")
	}
	if totalBits > MaxEnd {
		return nil, corrupt(trailerOff, "total bits exceed universe")
	}
	return &Bitset{runs: runs, totalBits: totalBits}, nil
}

// WriteTo implements io.WriterTo.
func (b *Bitset) WriteTo(w io.Writer) (int64, error) {
	data, err := b.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// ReadFrom implements io.ReaderFrom. It replaces the contents of b with one
// encoded bitset read from r. A stream that ends right after the runs is
// read as the legacy layout without trailer.
func (b *Bitset) ReadFrom(r io.Reader) (int64, error) {
	var (
		read int64
		word [8]byte
	)
	n, err := io.ReadFull(r, word[:headerSize])
	read += int64(n)
	if err != nil {
		return read, readError(0, "header truncated", err)
	}
	words := binary.LittleEndian.Uint64(word[:])
	if words%2 != 0 {
		return read, corrupt(0, "odd word count")
	}
	if words/2 > MaxEnd/2 {
		return read, corrupt(0, "run count exceeds universe")
	}
	count, err := conv.Uint64ToInt(words / 2)
	if err != nil {
		return read, corruptWrap(0, "run count", err)
	}

	runs := make([]Run, 0, min(count, readChunkRuns))
	buf := make([]byte, min(count, readChunkRuns)*runSize)
	for remaining := count; remaining > 0; {
		chunk := buf[:min(remaining, readChunkRuns)*runSize]
		n, err := io.ReadFull(r, chunk)
		read += int64(n)
		if err != nil {
			return read, readError(int(read), "payload truncated", err)
		}
		for off := 0; off < len(chunk); off += runSize {
			runs = append(runs, Run{
				Start:  binary.LittleEndian.Uint32(chunk[off:]),
				Length: binary.LittleEndian.Uint32(chunk[off+wordSize:]),
			})
		}
		remaining -= len(chunk) / runSize
	}

	trailerOff := int(read)
	n, err = io.ReadFull(r, word[:trailerSize])
	read += int64(n)

	var decoded *Bitset
	switch {
	case err == io.EOF:
		decoded, err = build(runs, 0, false, trailerOff)
	case err != nil:
		return read, readError(trailerOff, "trailer truncated", err)
	default:
		decoded, err = build(runs, binary.LittleEndian.Uint64(word[:]), true, trailerOff)
	}
	if err != nil {
		return read, err
	}
	*b = *decoded
	return read, nil
}

// readError classifies short reads as corruption and passes other reader
// failures through.
func readError(offset int, reason string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return corruptWrap(offset, reason, err)
	}
	return err
}

// Fingerprint returns an xxhash64 digest of the binary encoding. Bitsets
// with equal runs and TotalBits share a fingerprint.
func (b *Bitset) Fingerprint() uint64 {
	d := xxhash.New()
	_, _ = b.WriteTo(d)
	return d.Sum64()
}
