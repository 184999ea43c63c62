package codec

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/minio/minlz"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the algorithm applied to a frame payload.
type Compression uint8

const (
	// None stores the payload as is.
	None Compression = 0
	// LZ4 uses LZ4 block compression (fast, good for hot data).
	LZ4 Compression = 1
	// Zstd uses Zstandard (better ratio, good for cold data).
	Zstd Compression = 2
	// Snappy uses Snappy block compression.
	Snappy Compression = 3
	// MinLZ uses MinLZ block compression.
	MinLZ Compression = 4

	numCompressions = 5
)

// minRatio is the largest compressed/raw ratio worth keeping. Payloads that
// do not shrink below it are stored uncompressed.
const minRatio = 0.9

// maxExpansion bounds raw/stored for compressed payloads. Run lists are
// strictly increasing words and never approach it; frames claiming more are
// rejected before any buffer is allocated.
const maxExpansion = 1 << 12

var compressionNames = [numCompressions]string{"none", "lz4", "zstd", "snappy", "minlz"}

// String returns the stable name of the compression.
func (c Compression) String() string {
	if c < numCompressions {
		return compressionNames[c]
	}
	return fmt.Sprintf("compression(%d)", uint8(c))
}

// Valid reports whether c is a known compression.
func (c Compression) Valid() bool {
	return c < numCompressions
}

// Set implements pflag.Value.
func (c *Compression) Set(name string) error {
	parsed, err := ParseCompression(name)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Type implements pflag.Value.
func (c *Compression) Type() string {
	return "compression"
}

// ParseCompression returns the compression with the given name.
func ParseCompression(name string) (Compression, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range compressionNames {
		if n == name {
			return Compression(i), nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownCompression, name)
}

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	// Cap DecodeAll output at the destination capacity so a frame cannot
	// expand past its declared raw length.
	dec, _ := zstd.NewReader(nil, zstd.WithDecodeAllCapLimit(true))
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// compress returns the stored payload and the compression actually used.
// It falls back to None when c does not shrink data enough.
func compress(data []byte, c Compression) ([]byte, Compression, error) {
	if c == None || len(data) == 0 {
		return data, None, nil
	}

	var (
		compressed []byte
		err        error
	)
	switch c {
	case LZ4:
		compressed, err = compressLZ4(data)
	case Zstd:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		putZstdEncoder(enc)
	case Snappy:
		compressed = snappy.Encode(nil, data)
	case MinLZ:
		// MinLZ cannot encode blocks larger than MaxBlockSize but decodes
		// Snappy blocks, so large payloads are stored Snappy-encoded.
		if len(data) > minlz.MaxBlockSize {
			compressed = snappy.Encode(nil, data)
			break
		}
		compressed, err = minlz.Encode(nil, data, minlz.LevelBalanced)
	default:
		return nil, None, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(c))
	}
	if err != nil {
		return nil, None, fmt.Errorf("%s compress: %w", c, err)
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*minRatio {
		return data, None, nil
	}
	return compressed, c, nil
}

func compressLZ4(data []byte) ([]byte, error) {
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // Incompressible
	}
	return compressed[:n], nil
}

var errSizeMismatch = errors.New("decompressed size mismatch")

// checkDeclaredLen compares the length a Snappy or MinLZ block declares with
// rawLen. Both decoders allocate a fresh buffer for a larger block.
func checkDeclaredLen(stored []byte, c Compression, rawLen int) error {
	var (
		n   int
		err error
	)
	switch c {
	case Snappy:
		n, err = snappy.DecodedLen(stored)
	case MinLZ:
		n, err = minlz.DecodedLen(stored)
	default:
		return nil
	}
	if err != nil {
		return err
	}
	if n != rawLen {
		return fmt.Errorf("%w: block declares %d bytes, want %d", errSizeMismatch, n, rawLen)
	}
	return nil
}

// decompress expands a stored payload into exactly rawLen bytes.
func decompress(stored []byte, c Compression, rawLen int) ([]byte, error) {
	if c == None {
		if len(stored) != rawLen {
			return nil, errSizeMismatch
		}
		return stored, nil
	}

	if uint64(rawLen) > uint64(len(stored))*maxExpansion {
		return nil, fmt.Errorf("%s decompress: %w: raw length %d for %d stored bytes",
			c, ErrTooLarge, rawLen, len(stored))
	}
	if err := checkDeclaredLen(stored, c, rawLen); err != nil {
		return nil, fmt.Errorf("%s decompress: %w", c, err)
	}

	result := make([]byte, rawLen)
	var (
		out []byte
		err error
	)
	switch c {
	case LZ4:
		var n int
		n, err = lz4.UncompressBlock(stored, result)
		out = result[:max(n, 0)]
	case Zstd:
		dec := getZstdDecoder()
		out, err = dec.DecodeAll(stored, result[:0])
		putZstdDecoder(dec)
	case Snappy:
		out, err = snappy.Decode(result, stored)
	case MinLZ:
		out, err = minlz.Decode(result, stored)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(c))
	}
	if err != nil {
		return nil, fmt.Errorf("%s decompress: %w", c, err)
	}
	if len(out) != rawLen {
		return nil, fmt.Errorf("%s decompress: %w", c, errSizeMismatch)
	}
	return out, nil
}
