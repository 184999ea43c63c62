package interval

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
)

// MaxEnd is the largest exclusive end a run may have.
// A run covering [0, 1<<32) would need a 33-bit length, so the last bit
// position (math.MaxUint32) is outside the addressable universe.
const MaxEnd = math.MaxUint32

// Run is a maximal span of set bits covering [Start, Start+Length).
type Run struct {
	Start  uint32
	Length uint32
}

// New returns the run covering the half-open interval [lo, hi).
// The caller guarantees lo < hi <= MaxEnd.
func New(lo, hi uint64) Run {
	return Run{Start: uint32(lo), Length: uint32(hi - lo)}
}

// End returns the exclusive end of the run.
func (r Run) End() uint64 {
	return uint64(r.Start) + uint64(r.Length)
}

// Last returns the last bit covered by the run. Undefined for empty runs.
func (r Run) Last() uint32 {
	return r.Start + r.Length - 1
}

// Contains reports whether bit lies inside the run.
func (r Run) Contains(bit uint64) bool {
	return uint64(r.Start) <= bit && bit < r.End()
}

// String renders the run as an inclusive range.
func (r Run) String() string {
	if r.Length == 0 {
		return fmt.Sprintf("[%d,-]", r.Start)
	}
	return fmt.Sprintf("[%d,%d]", r.Start, r.Last())
}

// search returns the index of the first run whose end is past bit, i.e. the
// run that contains bit or the first run after it.
func search(runs []Run, bit uint64) int {
	return sort.Search(len(runs), func(i int) bool {
		return runs[i].End() > bit
	})
}

// Find returns the index of the run containing bit.
func Find(runs []Run, bit uint64) (int, bool) {
	i := search(runs, bit)
	if i < len(runs) && runs[i].Contains(bit) {
		return i, true
	}
	return i, false
}

// Contains reports whether any run covers bit.
func Contains(runs []Run, bit uint64) bool {
	_, ok := Find(runs, bit)
	return ok
}

// Add inserts [lo, hi) into runs and merges every run it overlaps or touches.
func Add(runs []Run, lo, hi uint64) []Run {
	if lo >= hi {
		return runs
	}
	// runs[i:j] are the runs that overlap or touch [lo, hi).
	i := sort.Search(len(runs), func(k int) bool {
		return runs[k].End() >= lo
	})
	j := sort.Search(len(runs), func(k int) bool {
		return uint64(runs[k].Start) > hi
	})
	if i < j {
		lo = min(lo, uint64(runs[i].Start))
		hi = max(hi, runs[j-1].End())
	}
	return slices.Replace(runs, i, j, New(lo, hi))
}

// Remove clears [lo, hi) from runs, shrinking, splitting or dropping the
// runs it intersects.
func Remove(runs []Run, lo, hi uint64) []Run {
	if lo >= hi {
		return runs
	}
	// runs[i:j] are the runs that intersect [lo, hi).
	i := search(runs, lo)
	j := sort.Search(len(runs), func(k int) bool {
		return uint64(runs[k].Start) >= hi
	})
	if i >= j {
		return runs
	}

	var keep [2]Run
	n := 0
	if first := runs[i]; uint64(first.Start) < lo {
		keep[n] = New(uint64(first.Start), lo)
		n++
	}
	if last := runs[j-1]; last.End() > hi {
		keep[n] = New(hi, last.End())
		n++
	}
	return slices.Replace(runs, i, j, keep[:n]...)
}

// Count returns the number of bits covered by runs.
func Count(runs []Run) uint64 {
	var total uint64
	for _, r := range runs {
		total += uint64(r.Length)
	}
	return total
}

// CountRange returns the number of covered bits inside [lo, hi).
func CountRange(runs []Run, lo, hi uint64) uint64 {
	if lo >= hi {
		return 0
	}
	var total uint64
	for i := search(runs, lo); i < len(runs); i++ {
		r := runs[i]
		if uint64(r.Start) >= hi {
			break
		}
		total += min(r.End(), hi) - max(uint64(r.Start), lo)
	}
	return total
}

// NextSet returns the first covered bit >= from.
func NextSet(runs []Run, from uint64) (uint64, bool) {
	i := search(runs, from)
	if i == len(runs) {
		return 0, false
	}
	return max(uint64(runs[i].Start), from), true
}

// NextClear returns the first uncovered bit >= from that is below limit.
func NextClear(runs []Run, from, limit uint64) (uint64, bool) {
	if from >= limit {
		return 0, false
	}
	candidate := from
	if i, ok := Find(runs, from); ok {
		// Runs never touch, so the bit right after a run is clear.
		candidate = runs[i].End()
	}
	if candidate >= limit {
		return 0, false
	}
	return candidate, true
}

// LastSet returns the highest covered bit.
func LastSet(runs []Run) (uint64, bool) {
	if len(runs) == 0 {
		return 0, false
	}
	return uint64(runs[len(runs)-1].Last()), true
}

// LastClear returns the highest uncovered bit below limit.
func LastClear(runs []Run, limit uint64) (uint64, bool) {
	if limit == 0 {
		return 0, false
	}
	candidate := limit - 1
	if i, ok := Find(runs, candidate); ok {
		if runs[i].Start == 0 {
			return 0, false
		}
		// The bit before a run is never covered by its predecessor.
		candidate = uint64(runs[i].Start) - 1
	}
	return candidate, true
}

// Normalize sorts runs, drops empty ones and merges overlapping or touching
// neighbours. It reuses the backing array of runs.
func Normalize(runs []Run) []Run {
	if Validate(runs) == nil {
		return runs
	}
	runs = slices.DeleteFunc(runs, func(r Run) bool { return r.Length == 0 })
	slices.SortFunc(runs, func(a, b Run) int {
		return cmp.Compare(a.Start, b.Start)
	})

	out := runs[:0]
	for _, r := range runs {
		if n := len(out); n > 0 && out[n-1].End() >= uint64(r.Start) {
			if r.End() > out[n-1].End() {
				out[n-1] = New(uint64(out[n-1].Start), r.End())
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// Errors reported by Validate.
var (
	ErrEmptyRun    = errors.New("empty run")
	ErrUnsorted    = errors.New("runs out of order")
	ErrOverlapping = errors.New("runs overlap or touch")
	ErrRunOverflow = errors.New("run end exceeds universe")
)

// Validate checks the run-list invariants.
func Validate(runs []Run) error {
	for i, r := range runs {
		if r.Length == 0 {
			return fmt.Errorf("run %d %v: %w", i, r, ErrEmptyRun)
		}
		if r.End() > MaxEnd {
			return fmt.Errorf("run %d %v: %w", i, r, ErrRunOverflow)
		}
		if i == 0 {
			continue
		}
		prev := runs[i-1]
		if r.Start < prev.Start {
			return fmt.Errorf("run %d %v after %v: %w", i, r, prev, ErrUnsorted)
		}
		if prev.End() >= uint64(r.Start) {
			return fmt.Errorf("run %d %v after %v: %w", i, r, prev, ErrOverlapping)
		}
	}
	return nil
}
