// Package interval implements the run-list algebra behind runbits.Bitset.
//
// A run list is a slice of Run values that satisfies three invariants:
//
//   - every run has Length > 0
//   - runs are sorted ascending by Start
//   - consecutive runs neither overlap nor touch (a.End() < b.Start)
//
// Under these invariants the representation of a set of bits is unique.
// Membership is a binary search and the binary operators are linear
// merge-scans over the run boundaries.
//
// Functions that take a run list assume the invariants hold. Normalize
// restores them for arbitrary input (legacy encodings, user supplied runs).
// Mutating functions (Add, Remove) may reuse the backing array of their input;
// the combinators (Union, Intersect, ...) always return a fresh slice.
//
// Boundaries are handled as uint64 half-open intervals [lo, hi) so that
// Start+Length never wraps. No run may end past MaxEnd.
package interval
