package runbits

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"
)

// FromRoaring converts a roaring bitmap. TotalBits is the maximum value plus
// one. It fails with ErrOverflow if rb contains math.MaxUint32.
func FromRoaring(rb *roaring.Bitmap) (*Bitset, error) {
	b := &Bitset{}
	if rb == nil || rb.IsEmpty() {
		return b, nil
	}
	if rb.Contains(math.MaxUint32) {
		return nil, &RangeError{Op: "from roaring", Start: math.MaxUint32, End: math.MaxUint32, cause: ErrOverflow}
	}

	var start, prev uint32
	first := true
	it := rb.Iterator()
	for it.HasNext() {
		v := it.Next()
		switch {
		case first:
			start, prev, first = v, v, false
		case v == prev+1:
			prev = v
		default:
			b.runs = append(b.runs, Run{Start: start, Length: prev - start + 1})
			start, prev = v, v
		}
	}
	b.runs = append(b.runs, Run{Start: start, Length: prev - start + 1})
	b.totalBits = uint64(prev) + 1
	return b, nil
}

// ToRoaring converts b to a run-optimized roaring bitmap.
func (b *Bitset) ToRoaring() *roaring.Bitmap {
	rb := roaring.New()
	for _, r := range b.runs {
		rb.AddRange(uint64(r.Start), r.End())
	}
	rb.RunOptimize()
	return rb
}

// FromBitSet converts a dense bitset. TotalBits is the dense length.
func FromBitSet(bs *bitset.BitSet) (*Bitset, error) {
	b := &Bitset{}
	if bs == nil {
		return b, nil
	}
	length := bs.Len()
	if uint64(length) > MaxEnd {
		return nil, &RangeError{Op: "from bitset", Start: 0, End: uint64(length) - 1, cause: ErrOverflow}
	}
	for i, ok := bs.NextSet(0); ok; i, ok = bs.NextSet(i) {
		end, found := bs.NextClear(i)
		if !found || end > length {
			end = length
		}
		b.runs = append(b.runs, Run{Start: uint32(i), Length: uint32(end - i)})
		i = end
	}
	b.totalBits = uint64(length)
	return b, nil
}

// ToBitSet converts b to a dense bitset of length TotalBits.
func (b *Bitset) ToBitSet() *bitset.BitSet {
	bs := bitset.New(uint(b.totalBits))
	for _, r := range b.runs {
		bs.FlipRange(uint(r.Start), uint(r.End()))
	}
	return bs
}
