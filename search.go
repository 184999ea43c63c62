package runbits

import "github.com/hupe1980/runbits/internal/interval"

// Count returns the number of bits with the given value below TotalBits.
func (b *Bitset) Count(value bool) uint64 {
	set := interval.Count(b.runs)
	if value {
		return set
	}
	return b.totalBits - set
}

// CountRange returns the number of bits with the given value in the inclusive
// range [start, end]. Positions at or past TotalBits count as unset. It
// returns 0 when start > end.
func (b *Bitset) CountRange(start, end uint32, value bool) uint64 {
	if start > end {
		return 0
	}
	lo, hi := uint64(start), uint64(end)+1
	set := interval.CountRange(b.runs, lo, hi)
	if value {
		return set
	}
	return (hi - lo) - set
}

// FindFirst returns the first position >= from holding value. Unset
// positions are only reported below TotalBits.
func (b *Bitset) FindFirst(value bool, from uint32) (uint32, bool) {
	var (
		pos uint64
		ok  bool
	)
	if value {
		pos, ok = interval.NextSet(b.runs, uint64(from))
	} else {
		pos, ok = interval.NextClear(b.runs, uint64(from), b.totalBits)
	}
	return uint32(pos), ok
}

// FindLast returns the highest position holding value. Unset positions are
// only reported below TotalBits.
func (b *Bitset) FindLast(value bool) (uint32, bool) {
	var (
		pos uint64
		ok  bool
	)
	if value {
		pos, ok = interval.LastSet(b.runs)
	} else {
		pos, ok = interval.LastClear(b.runs, b.totalBits)
	}
	return uint32(pos), ok
}

// Density returns the fraction of set bits within TotalBits.
func (b *Bitset) Density() float64 {
	if b.totalBits == 0 {
		return 0
	}
	return float64(b.Count(true)) / float64(b.totalBits)
}
