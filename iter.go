package runbits

import (
	"iter"
	"strconv"
	"strings"
)

// Runs iterates over the runs in ascending order.
func (b *Bitset) Runs() iter.Seq[Run] {
	return func(yield func(Run) bool) {
		for _, r := range b.runs {
			if !yield(r) {
				return
			}
		}
	}
}

// Bits iterates over the set positions in ascending order.
func (b *Bitset) Bits() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for _, r := range b.runs {
			for pos := uint64(r.Start); pos < r.End(); pos++ {
				if !yield(uint32(pos)) {
					return
				}
			}
		}
	}
}

// AppendRuns appends the runs of b to dst.
func (b *Bitset) AppendRuns(dst []Run) []Run {
	return append(dst, b.runs...)
}

// String renders b as inclusive ranges followed by the logical length,
// for example {[10,20] [50,60]}/total=61.
func (b *Bitset) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, r := range b.runs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(r.String())
	}
	sb.WriteString("}/total=")
	sb.WriteString(strconv.FormatUint(b.totalBits, 10))
	return sb.String()
}
