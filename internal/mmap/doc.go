// Package mmap maps files read-only into memory.
//
// LocalStore opens every blob through a Mapping so decoding a bitset reads
// straight from the page cache:
//
//	m, err := mmap.Open("visits.rlb")
//	if err != nil { ... }
//	defer m.Close()
//	_ = m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// Unix platforms use mmap(2) and madvise(2). Windows uses
// CreateFileMapping/MapViewOfFile, and Advise is a no-op there.
//
// Close is idempotent. Slices returned by Bytes must not be used after Close.
package mmap
