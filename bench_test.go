package runbits_test

import (
	"testing"

	"github.com/hupe1980/runbits"
	"github.com/hupe1980/runbits/testutil"
)

func BenchmarkSet(b *testing.B) {
	rng := testutil.NewRNG(1)
	bits := make([]uint32, 4096)
	for i := range bits {
		bits[i] = rng.Uint32n(1 << 20)
	}

	bs := runbits.New(0)
	i := 0
	for b.Loop() {
		bs.Set(bits[i%len(bits)])
		i++
	}
}

func BenchmarkTest(b *testing.B) {
	rng := testutil.NewRNG(1)
	bs, _ := rng.Bitset(1<<20, 2048)

	i := uint32(0)
	for b.Loop() {
		bs.Test(i % (1 << 20))
		i += 97
	}
}

func BenchmarkXor(b *testing.B) {
	rng := testutil.NewRNG(1)
	x, _ := rng.Bitset(1<<20, 2048)
	y, _ := rng.Bitset(1<<20, 2048)

	for b.Loop() {
		runbits.Xor(x, y)
	}
}

func BenchmarkMarshalBinary(b *testing.B) {
	rng := testutil.NewRNG(1)
	bs, _ := rng.Bitset(1<<20, 2048)
	buf := make([]byte, bs.BinarySize())

	b.ReportAllocs()
	for b.Loop() {
		if _, err := bs.ToBytes(buf); err != nil {
			b.Fatal(err)
		}
	}
}
