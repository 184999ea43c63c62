package runbits

import (
	"unsafe"

	"github.com/hupe1980/runbits/internal/interval"
)

// Run is a maximal span of set bits covering [Start, Start+Length).
type Run = interval.Run

// MaxEnd is the exclusive upper bound of the addressable universe.
// Bit position math.MaxUint32 is reserved: a run covering every 32-bit
// position would need a 33-bit length.
const MaxEnd = interval.MaxEnd

// initialCapacity is the first allocation of a growing run slice.
const initialCapacity = 16

// Bitset is a run-length encoded bitset.
//
// The zero value is an empty bitset ready to use.
type Bitset struct {
	runs      []Run
	totalBits uint64
}

// New returns an empty bitset with room for estimatedRuns runs.
func New(estimatedRuns int) *Bitset {
	b := &Bitset{}
	if estimatedRuns > 0 {
		b.runs = make([]Run, 0, estimatedRuns)
	}
	return b
}

// FromRuns builds a bitset from arbitrary runs. The runs are copied, sorted
// and merged. TotalBits is the larger of totalBits and the end of the last run.
func FromRuns(runs []Run, totalBits uint64) (*Bitset, error) {
	if totalBits > MaxEnd {
		return nil, &RangeError{Op: "from runs", Start: 0, End: totalBits - 1, cause: ErrOverflow}
	}
	for _, r := range runs {
		if r.End() > MaxEnd {
			return nil, &RangeError{Op: "from runs", Start: uint64(r.Start), End: r.End() - 1, cause: ErrOverflow}
		}
	}
	b := &Bitset{
		runs:      interval.Normalize(interval.Clone(runs)),
		totalBits: totalBits,
	}
	if n := len(b.runs); n > 0 {
		b.grow(b.runs[n-1].End())
	}
	return b, nil
}

// Clone returns a deep copy of b.
func (b *Bitset) Clone() *Bitset {
	if b == nil {
		return &Bitset{}
	}
	return &Bitset{
		runs:      interval.Clone(b.runs),
		totalBits: b.totalBits,
	}
}

// Reset removes all runs and sets TotalBits to zero, keeping the allocation.
func (b *Bitset) Reset() {
	b.runs = b.runs[:0]
	b.totalBits = 0
}

// ensureCapacity makes room for n more runs, starting at 16 and doubling.
func (b *Bitset) ensureCapacity(n int) {
	need := len(b.runs) + n
	if need <= cap(b.runs) {
		return
	}
	c := max(cap(b.runs), initialCapacity)
	for c < need {
		c *= 2
	}
	grown := make([]Run, len(b.runs), c)
	copy(grown, b.runs)
	b.runs = grown
}

func (b *Bitset) grow(end uint64) {
	if end > b.totalBits {
		b.totalBits = end
	}
}

// AddRun sets every bit in [start, start+length), merging with adjacent or
// overlapping runs. A zero length is a no-op.
func (b *Bitset) AddRun(start, length uint32) error {
	if length == 0 {
		return nil
	}
	end := uint64(start) + uint64(length)
	if end > MaxEnd {
		return &RangeError{Op: "add run", Start: uint64(start), End: end - 1, cause: ErrOverflow}
	}
	b.ensureCapacity(1)
	b.runs = interval.Add(b.runs, uint64(start), end)
	b.grow(end)
	return nil
}

// AddBit appends a single bit. A true value sets it; a false value only
// extends TotalBits to cover it.
func (b *Bitset) AddBit(bit uint32, value bool) {
	if value {
		b.Set(bit)
		return
	}
	if uint64(bit) < MaxEnd {
		b.grow(uint64(bit) + 1)
	}
}

// Test reports whether bit is set.
func (b *Bitset) Test(bit uint32) bool {
	if uint64(bit) >= b.totalBits {
		return false
	}
	return interval.Contains(b.runs, uint64(bit))
}

// Set sets bit and reports whether it was previously unset.
func (b *Bitset) Set(bit uint32) bool {
	pos := uint64(bit)
	if pos >= MaxEnd {
		return false
	}
	b.grow(pos + 1)
	if interval.Contains(b.runs, pos) {
		return false
	}
	b.ensureCapacity(1)
	b.runs = interval.Add(b.runs, pos, pos+1)
	return true
}

// Clear clears bit and reports whether it was previously set.
func (b *Bitset) Clear(bit uint32) bool {
	pos := uint64(bit)
	if pos >= MaxEnd {
		return false
	}
	b.grow(pos + 1)
	if !interval.Contains(b.runs, pos) {
		return false
	}
	// Clearing an interior bit splits its run.
	b.ensureCapacity(1)
	b.runs = interval.Remove(b.runs, pos, pos+1)
	return true
}

// Flip inverts bit and returns its new value.
func (b *Bitset) Flip(bit uint32) bool {
	if uint64(bit) >= MaxEnd {
		return false
	}
	if b.Test(bit) {
		b.Clear(bit)
		return false
	}
	b.Set(bit)
	return true
}

// SetRange sets or clears every bit in the inclusive range [start, end].
// TotalBits grows to end+1 either way.
func (b *Bitset) SetRange(start, end uint32, value bool) error {
	if start > end {
		return &RangeError{Op: "set range", Start: uint64(start), End: uint64(end), cause: ErrInvalidRange}
	}
	lo, hi := uint64(start), uint64(end)+1
	if hi > MaxEnd {
		return &RangeError{Op: "set range", Start: lo, End: uint64(end), cause: ErrOverflow}
	}
	b.ensureCapacity(2)
	if value {
		b.runs = interval.Add(b.runs, lo, hi)
	} else {
		b.runs = interval.Remove(b.runs, lo, hi)
	}
	b.grow(hi)
	return nil
}

// ClearRange clears every bit in the inclusive range [start, end].
func (b *Bitset) ClearRange(start, end uint32) error {
	return b.SetRange(start, end, false)
}

// IsEmpty reports whether no bit is set.
func (b *Bitset) IsEmpty() bool {
	return len(b.runs) == 0
}

// TotalBits returns the logical length of the bitset.
func (b *Bitset) TotalBits() uint64 {
	return b.totalBits
}

// RunCount returns the number of runs.
func (b *Bitset) RunCount() int {
	return len(b.runs)
}

// SizeInBytes returns the approximate in-memory footprint.
func (b *Bitset) SizeInBytes() int {
	return int(unsafe.Sizeof(*b)) + cap(b.runs)*int(unsafe.Sizeof(Run{}))
}
