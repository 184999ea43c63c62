package codec

import (
	"bytes"
	"encoding/binary"
	"math"
	"runtime"
	"testing"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/minio/minlz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/runbits"
	"github.com/hupe1980/runbits/internal/hash"
	"github.com/hupe1980/runbits/testutil"
)

var allCompressions = []Compression{None, LZ4, Zstd, Snappy, MinLZ}

// regular returns a bitset whose encoding compresses well.
func regular(t testing.TB, runs int) *runbits.Bitset {
	t.Helper()
	b := runbits.New(runs)
	for i := range runs {
		require.NoError(t, b.AddRun(uint32(i*16), 4))
	}
	return b
}

func TestRoundTrip(t *testing.T) {
	rng := testutil.NewRNG(42)
	random, _ := rng.Bitset(1<<16, 256)

	inputs := map[string]*runbits.Bitset{
		"empty":   runbits.New(0),
		"regular": regular(t, 2000),
		"random":  random,
	}
	for name, b := range inputs {
		for _, c := range allCompressions {
			t.Run(name+"/"+c.String(), func(t *testing.T) {
				data, err := Encode(b, c)
				require.NoError(t, err)

				h, err := Peek(data)
				require.NoError(t, err)
				assert.Equal(t, uint8(Version), h.Version)
				assert.Equal(t, b.BinarySize(), int(h.RawLen))
				assert.Equal(t, len(data), h.Size())

				got, err := Decode(data)
				require.NoError(t, err)
				assert.True(t, got.EqualBits(b))
			})
		}
	}
}

func TestCompressionShrinksRegularData(t *testing.T) {
	b := regular(t, 4096)
	for _, c := range []Compression{LZ4, Zstd, Snappy, MinLZ} {
		t.Run(c.String(), func(t *testing.T) {
			data, err := Encode(b, c)
			require.NoError(t, err)

			h, err := Peek(data)
			require.NoError(t, err)
			assert.Equal(t, c, h.Compression)
			assert.Less(t, h.Ratio(), minRatio)
		})
	}
}

func TestIncompressibleFallsBackToNone(t *testing.T) {
	data := testutil.NewRNG(5).Bytes(4096)

	for _, c := range allCompressions {
		stored, used, err := compress(data, c)
		require.NoError(t, err)
		assert.Equal(t, None, used, c.String())
		assert.Equal(t, data, stored)
	}
}

func TestDecodeRawFallback(t *testing.T) {
	b := regular(t, 10)
	raw, err := b.MarshalBinary()
	require.NoError(t, err)

	got, err := Decode(raw)
	require.NoError(t, err)
	assert.True(t, got.EqualBits(b))

	_, err = Peek(raw)
	assert.ErrorIs(t, err, ErrInvalidMagic)
}

func TestDecodeErrors(t *testing.T) {
	b := regular(t, 500)
	valid, err := Encode(b, Zstd)
	require.NoError(t, err)

	mutate := func(f func(d []byte) []byte) []byte {
		d := bytes.Clone(valid)
		return f(d)
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short header", valid[:10], ErrTruncated},
		{"short payload", valid[:len(valid)-1], ErrTruncated},
		{"trailing", append(bytes.Clone(valid), 0), ErrTrailingData},
		{"version", mutate(func(d []byte) []byte { d[4] = 9; return d }), ErrUnsupportedVersion},
		{"compression", mutate(func(d []byte) []byte { d[5] = 42; return d }), ErrUnknownCompression},
		{"checksum", mutate(func(d []byte) []byte { d[HeaderSize+3] ^= 0xff; return d }), ErrChecksumMismatch},
		{"stored checksum", mutate(func(d []byte) []byte {
			binary.LittleEndian.PutUint32(d[16:], 0)
			return d
		}), ErrChecksumMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("corrupt payload behind valid checksum", func(t *testing.T) {
		// Frame a payload with an odd word count.
		payload := binary.LittleEndian.AppendUint64(nil, 3)
		payload = append(payload, make([]byte, 12)...)

		_, err := Decode(frameOf(None, len(payload), payload))
		assert.ErrorIs(t, err, runbits.ErrCorrupt)
	})
}

// frameOf builds a frame with a valid checksum around any payload and
// declared raw length.
func frameOf(c Compression, rawLen int, payload []byte) []byte {
	frame := make([]byte, HeaderSize, HeaderSize+len(payload))
	copy(frame, Magic[:])
	frame[4] = Version
	frame[5] = byte(c)
	binary.LittleEndian.PutUint32(frame[8:], uint32(rawLen))
	binary.LittleEndian.PutUint32(frame[12:], uint32(len(payload)))
	binary.LittleEndian.PutUint32(frame[16:], hash.CRC32C(payload))
	return append(frame, payload...)
}

// allocated returns the bytes allocated while running fn.
func allocated(fn func()) uint64 {
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	fn()
	runtime.ReadMemStats(&after)
	return after.TotalAlloc - before.TotalAlloc
}

func TestDecodeRejectsExpansionBeyondRawLen(t *testing.T) {
	const bombSize = 64 << 20
	zeros := make([]byte, bombSize)

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	require.NoError(t, err)
	zstdBomb := enc.EncodeAll(zeros, nil)
	require.NoError(t, enc.Close())

	minlzBomb, err := minlz.Encode(nil, zeros[:minlz.MaxBlockSize], minlz.LevelFastest)
	require.NoError(t, err)

	tests := []struct {
		name    string
		c       Compression
		payload []byte
	}{
		{"zstd", Zstd, zstdBomb},
		{"snappy", Snappy, snappy.Encode(nil, zeros)},
		{"minlz", MinLZ, minlzBomb},
	}
	// Warm the pooled zstd decoder so its setup is not counted.
	warm, err := Encode(regular(t, 2000), Zstd)
	require.NoError(t, err)
	_, err = Decode(warm)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := frameOf(tt.c, 16, tt.payload)

			var err error
			alloc := allocated(func() { _, err = Decode(frame) })
			require.Error(t, err)
			assert.Less(t, alloc, uint64(2<<20), "decoder expanded the payload")
		})
	}
}

func TestDecodeRejectsImplausibleRawLen(t *testing.T) {
	payload := snappy.Encode(nil, []byte("tiny"))
	frame := frameOf(Snappy, math.MaxUint32, payload)

	var err error
	alloc := allocated(func() { _, err = Decode(frame) })
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Less(t, alloc, uint64(2<<20))

	// Within the bound the declared block length still has to match.
	_, err = Decode(frameOf(Snappy, 8, payload))
	assert.ErrorContains(t, err, "block declares 4 bytes")
}

func TestParseCompression(t *testing.T) {
	for _, c := range allCompressions {
		got, err := ParseCompression(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	got, err := ParseCompression(" ZSTD ")
	require.NoError(t, err)
	assert.Equal(t, Zstd, got)

	_, err = ParseCompression("brotli")
	assert.ErrorIs(t, err, ErrUnknownCompression)

	var c Compression
	require.NoError(t, c.Set("lz4"))
	assert.Equal(t, LZ4, c)
	assert.Equal(t, "compression", c.Type())
	assert.Error(t, c.Set("nope"))
	assert.Equal(t, "compression(9)", Compression(9).String())

	_, err = Encode(runbits.New(0), Compression(9))
	assert.ErrorIs(t, err, ErrUnknownCompression)
}
