package interval

import "math"

const noBoundary = math.MaxUint64

// boundary returns the next edge of runs[i] given whether the sweep is
// currently inside it.
func boundary(runs []Run, i int, inside bool) uint64 {
	if i >= len(runs) {
		return noBoundary
	}
	if inside {
		return runs[i].End()
	}
	return uint64(runs[i].Start)
}

// combine sweeps the boundaries of a and b in order and emits the spans where
// keep(inA, inB) holds. Both inputs must be normalized; the output is.
func combine(a, b []Run, keep func(inA, inB bool) bool) []Run {
	out := make([]Run, 0, max(len(a), len(b)))

	var (
		i, j     int
		inA, inB bool
		open     bool
		openAt   uint64
	)
	for {
		na := boundary(a, i, inA)
		nb := boundary(b, j, inB)
		p := min(na, nb)
		if p == noBoundary {
			break
		}
		// Apply every edge at p before deciding so that a run ending where
		// another begins does not split the output.
		if na == p {
			inA = !inA
			if !inA {
				i++
			}
		}
		if nb == p {
			inB = !inB
			if !inB {
				j++
			}
		}

		switch want := keep(inA, inB); {
		case want && !open:
			open, openAt = true, p
		case !want && open:
			open = false
			out = appendSpan(out, openAt, p)
		}
	}
	return out
}

// appendSpan appends [lo, hi), merging with the previous run if they touch.
func appendSpan(out []Run, lo, hi uint64) []Run {
	if lo >= hi {
		return out
	}
	if n := len(out); n > 0 && out[n-1].End() >= lo {
		out[n-1] = New(uint64(out[n-1].Start), max(hi, out[n-1].End()))
		return out
	}
	return append(out, New(lo, hi))
}

// Union returns the runs covering bits set in a or b.
func Union(a, b []Run) []Run {
	switch {
	case len(a) == 0:
		return Clone(b)
	case len(b) == 0:
		return Clone(a)
	}
	return combine(a, b, func(x, y bool) bool { return x || y })
}

// Intersect returns the runs covering bits set in both a and b.
func Intersect(a, b []Run) []Run {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	return combine(a, b, func(x, y bool) bool { return x && y })
}

// Difference returns the runs covering bits set in a but not in b.
func Difference(a, b []Run) []Run {
	if len(a) == 0 {
		return nil
	}
	if len(b) == 0 {
		return Clone(a)
	}
	return combine(a, b, func(x, y bool) bool { return x && !y })
}

// SymmetricDifference returns the runs covering bits set in exactly one of a
// and b.
func SymmetricDifference(a, b []Run) []Run {
	switch {
	case len(a) == 0:
		return Clone(b)
	case len(b) == 0:
		return Clone(a)
	}
	return combine(a, b, func(x, y bool) bool { return x != y })
}

// Complement returns the gaps of runs within [0, limit).
func Complement(runs []Run, limit uint64) []Run {
	out := make([]Run, 0, len(runs)+1)
	var pos uint64
	for _, r := range runs {
		if pos >= limit {
			break
		}
		out = appendSpan(out, pos, min(uint64(r.Start), limit))
		pos = r.End()
	}
	return appendSpan(out, pos, limit)
}

// Clone returns a copy of runs with no spare capacity. It returns nil for an
// empty input.
func Clone(runs []Run) []Run {
	if len(runs) == 0 {
		return nil
	}
	out := make([]Run, len(runs))
	copy(out, runs)
	return out
}

// Equal reports whether a and b hold the same runs.
func Equal(a, b []Run) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
