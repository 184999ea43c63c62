package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/runbits"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint32n returns a pseudo-random uint32 in [0,n).
func (r *RNG) Uint32n(n uint32) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return uint32(r.rand.Int63n(int64(n)))
}

// Bool returns a pseudo-random bool.
func (r *RNG) Bool() bool {
	return r.Intn(2) == 1
}

// Bytes returns n pseudo-random bytes.
func (r *RNG) Bytes(n int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	buf := make([]byte, n)
	_, _ = r.rand.Read(buf)
	return buf
}

// Op is a single mutation applied by Mutate.
type Op struct {
	Kind       OpKind
	Start, End uint32 // End is only used by range ops (inclusive)
	Value      bool
}

// OpKind selects a Bitset mutator.
type OpKind int

// Mutation kinds.
const (
	OpSet OpKind = iota
	OpClear
	OpFlip
	OpSetRange
	OpAddRun
	opKinds
)

// Ops returns n random mutations within [0, universe). Range ops span at
// most maxSpan bits.
func (r *RNG) Ops(n int, universe, maxSpan uint32) []Op {
	ops := make([]Op, n)
	for i := range ops {
		start := r.Uint32n(universe)
		span := r.Uint32n(min(maxSpan, universe-start))
		ops[i] = Op{
			Kind:  OpKind(r.Intn(int(opKinds))),
			Start: start,
			End:   start + span,
			Value: r.Bool(),
		}
	}
	return ops
}

// Apply applies op to both b and m.
func (op Op) Apply(b *runbits.Bitset, m *Model) {
	switch op.Kind {
	case OpSet:
		b.Set(op.Start)
		m.Set(op.Start, true)
	case OpClear:
		b.Clear(op.Start)
		m.Set(op.Start, false)
	case OpFlip:
		b.Flip(op.Start)
		m.Set(op.Start, !m.Test(op.Start))
	case OpSetRange:
		if err := b.SetRange(op.Start, op.End, op.Value); err != nil {
			panic(err)
		}
		m.SetRange(op.Start, op.End, op.Value)
	case OpAddRun:
		if err := b.AddRun(op.Start, op.End-op.Start+1); err != nil {
			panic(err)
		}
		m.SetRange(op.Start, op.End, true)
	}
}

// Bitset builds a random bitset with n mutations in [0, universe) and
// returns it together with its reference model.
func (r *RNG) Bitset(universe uint32, n int) (*runbits.Bitset, *Model) {
	b := runbits.New(0)
	m := NewModel(0)
	for _, op := range r.Ops(n, universe, max(universe/16, 1)) {
		op.Apply(b, m)
	}
	return b, m
}
