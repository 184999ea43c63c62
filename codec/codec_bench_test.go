package codec

import (
	"testing"

	"github.com/hupe1980/runbits/testutil"
)

func BenchmarkEncode(b *testing.B) {
	rng := testutil.NewRNG(1)
	bs, _ := rng.Bitset(1<<20, 4096)

	for _, c := range allCompressions {
		b.Run(c.String(), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(bs.BinarySize()))
			for b.Loop() {
				if _, err := Encode(bs, c); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDecode(b *testing.B) {
	rng := testutil.NewRNG(1)
	bs, _ := rng.Bitset(1<<20, 4096)

	for _, c := range allCompressions {
		data, err := Encode(bs, c)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(c.String(), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(bs.BinarySize()))
			for b.Loop() {
				if _, err := Decode(data); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
