package runbits

import "github.com/hupe1980/runbits/internal/interval"

// And returns the bits set in both a and b.
// The result's TotalBits is the larger of the two. Nil operands are empty.
func And(a, b *Bitset) *Bitset {
	return combine(a, b, interval.Intersect)
}

// Or returns the bits set in a or b.
func Or(a, b *Bitset) *Bitset {
	return combine(a, b, interval.Union)
}

// Xor returns the bits set in exactly one of a and b.
func Xor(a, b *Bitset) *Bitset {
	return combine(a, b, interval.SymmetricDifference)
}

// AndNot returns the bits set in a but not in b.
func AndNot(a, b *Bitset) *Bitset {
	return combine(a, b, interval.Difference)
}

// Not returns the complement of b within [0, b.TotalBits()).
func Not(b *Bitset) *Bitset {
	runs, total := b.view()
	return &Bitset{
		runs:      interval.Complement(runs, total),
		totalBits: total,
	}
}

func combine(a, b *Bitset, op func(x, y []Run) []Run) *Bitset {
	ar, at := a.view()
	br, bt := b.view()
	return &Bitset{
		runs:      op(ar, br),
		totalBits: max(at, bt),
	}
}

func (b *Bitset) view() ([]Run, uint64) {
	if b == nil {
		return nil, 0
	}
	return b.runs, b.totalBits
}

// Equals reports whether b and other hold the same run sequence.
// TotalBits is not compared.
func (b *Bitset) Equals(other *Bitset) bool {
	br, _ := b.view()
	or, _ := other.view()
	return interval.Equal(br, or)
}

// EqualBits reports whether b and other describe the same bit vector: the
// same set bits and the same TotalBits.
func (b *Bitset) EqualBits(other *Bitset) bool {
	_, bt := b.view()
	_, ot := other.view()
	return bt == ot && Xor(b, other).IsEmpty()
}
