// Package runbits provides a compressed, run-length encoded bitset for Go.
//
// A Bitset stores only the maximal runs of set bits as (start, length) pairs.
// Long contiguous spans cost eight bytes regardless of their width, which
// makes the representation a good fit for sparse or clustered data such as
// allocation maps, deleted-row masks and time-range coverage.
//
// # Quick Start
//
//	var b runbits.Bitset
//	_ = b.SetRange(10, 20, true)
//	b.Set(50)
//
//	b.Test(15)                 // true
//	b.Count(true)              // 12
//	b.FindFirst(true, 21)      // 50, true
//
//	data, _ := b.MarshalBinary()
//	c, _ := runbits.FromBytes(data)
//	c.Equals(&b)               // true
//
// # Invariants
//
// Runs are always kept sorted, non-overlapping and non-adjacent. Every
// mutator restores that shape before returning, so a given set of bits has
// exactly one representation. Equals compares that representation and ignores
// TotalBits. EqualBits also requires the same TotalBits, so two bitsets with
// the same set bits but different lengths are not EqualBits.
//
// TotalBits is the logical length. It grows whenever a mutation touches a
// position at or past it (including clears) and never shrinks.
//
// # Set Operations
//
// And, Or, Xor, AndNot and Not are linear merge-scans over the run lists and
// return fresh bitsets:
//
//	both := runbits.And(a, b)
//	either := runbits.Or(a, b)
//	gaps := runbits.Not(a)
//
// # Encoding
//
// The binary layout is a little-endian uint64 word count N (two words per
// run), N uint32 words, then a uint64 TotalBits trailer. Inputs without the
// trailer are still accepted. The codec package wraps this layout in a
// checksummed, optionally compressed frame, and the catalog package stores
// named bitsets in a blobstore.BlobStore (local disk, memory, S3 or MinIO).
//
// # Thread Safety
//
// A Bitset is not safe for concurrent mutation. Concurrent readers are safe.
package runbits
