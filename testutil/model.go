package testutil

import (
	"fmt"
	"maps"
	"slices"

	"github.com/hupe1980/runbits"
)

// Model is a map-backed reference bitset.
type Model struct {
	bits      map[uint32]bool
	totalBits uint64
}

// NewModel returns an empty model with the given logical length.
func NewModel(totalBits uint64) *Model {
	return &Model{bits: make(map[uint32]bool), totalBits: totalBits}
}

// FromBitset copies the set bits of b into a model.
func FromBitset(b *runbits.Bitset) *Model {
	m := NewModel(b.TotalBits())
	for bit := range b.Bits() {
		m.bits[bit] = true
	}
	return m
}

func (m *Model) grow(bit uint32) {
	m.totalBits = max(m.totalBits, uint64(bit)+1)
}

// Set assigns value to bit and grows the logical length.
func (m *Model) Set(bit uint32, value bool) {
	m.grow(bit)
	if value {
		m.bits[bit] = true
		return
	}
	delete(m.bits, bit)
}

// SetRange assigns value to the inclusive range [start, end].
func (m *Model) SetRange(start, end uint32, value bool) {
	for bit := uint64(start); bit <= uint64(end); bit++ {
		m.Set(uint32(bit), value)
	}
}

// Test reports whether bit is set.
func (m *Model) Test(bit uint32) bool {
	return m.bits[bit]
}

// Count returns the number of set bits.
func (m *Model) Count() uint64 {
	return uint64(len(m.bits))
}

// TotalBits returns the logical length.
func (m *Model) TotalBits() uint64 {
	return m.totalBits
}

// Sorted returns the set bits in ascending order.
func (m *Model) Sorted() []uint32 {
	return slices.Sorted(maps.Keys(m.bits))
}

// Runs returns the maximal runs of the model.
func (m *Model) Runs() []runbits.Run {
	var runs []runbits.Run
	for _, bit := range m.Sorted() {
		if n := len(runs); n > 0 && runs[n-1].End() == uint64(bit) {
			runs[n-1].Length++
			continue
		}
		runs = append(runs, runbits.Run{Start: bit, Length: 1})
	}
	return runs
}

// Check returns an error describing the first disagreement between b and m.
func (m *Model) Check(b *runbits.Bitset) error {
	if b.TotalBits() != m.totalBits {
		return fmt.Errorf("total bits: got %d, want %d", b.TotalBits(), m.totalBits)
	}
	if got, want := b.Count(true), m.Count(); got != want {
		return fmt.Errorf("count: got %d, want %d", got, want)
	}
	got := b.AppendRuns(nil)
	want := m.Runs()
	if len(got) != len(want) {
		return fmt.Errorf("runs: got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			return fmt.Errorf("run %d: got %v, want %v", i, got[i], want[i])
		}
	}
	return nil
}
