package interval

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runs(pairs ...uint32) []Run {
	out := make([]Run, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Run{Start: pairs[i], Length: pairs[i+1]})
	}
	return out
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name   string
		in     []Run
		lo, hi uint64
		want   []Run
	}{
		{"empty", nil, 5, 8, runs(5, 3)},
		{"before", runs(10, 5), 0, 3, runs(0, 3, 10, 5)},
		{"after", runs(10, 5), 20, 21, runs(10, 5, 20, 1)},
		{"touch left", runs(10, 5), 7, 10, runs(7, 8)},
		{"touch right", runs(10, 5), 15, 16, runs(10, 6)},
		{"inside", runs(10, 5), 11, 13, runs(10, 5)},
		{"bridge", runs(0, 2, 4, 2), 2, 4, runs(0, 6)},
		{"swallow many", runs(1, 1, 3, 1, 5, 1, 9, 1), 0, 7, runs(0, 7, 9, 1)},
		{"no-op", runs(1, 1), 4, 4, runs(1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Add(Clone(tt.in), tt.lo, tt.hi)
			assert.Equal(t, tt.want, got)
			require.NoError(t, Validate(got))
		})
	}
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name   string
		in     []Run
		lo, hi uint64
		want   []Run
	}{
		{"empty", nil, 0, 10, nil},
		{"miss", runs(10, 5), 0, 10, runs(10, 5)},
		{"exact", runs(10, 5), 10, 15, []Run{}},
		{"head", runs(10, 5), 10, 11, runs(11, 4)},
		{"tail", runs(10, 5), 14, 15, runs(10, 4)},
		{"split", runs(10, 5), 12, 13, runs(10, 2, 13, 2)},
		{"across", runs(0, 3, 5, 3, 10, 3), 2, 11, runs(0, 2, 11, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Remove(Clone(tt.in), tt.lo, tt.hi)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
			require.NoError(t, Validate(got))
		})
	}
}

func TestSetThenClearRestoresRuns(t *testing.T) {
	orig := runs(0, 5, 6, 4)
	got := Add(Clone(orig), 5, 6)
	assert.Equal(t, runs(0, 10), got)

	got = Remove(got, 5, 6)
	assert.Equal(t, orig, got)
}

func TestCountRange(t *testing.T) {
	rs := runs(10, 11, 50, 11) // [10,20] [50,60]

	assert.Equal(t, uint64(22), Count(rs))
	assert.Equal(t, uint64(22), CountRange(rs, 0, 100))
	assert.Equal(t, uint64(6), CountRange(rs, 15, 51))
	assert.Equal(t, uint64(0), CountRange(rs, 21, 50))
	assert.Equal(t, uint64(1), CountRange(rs, 60, 61))
	assert.Equal(t, uint64(0), CountRange(rs, 30, 30))
}

func TestSearch(t *testing.T) {
	rs := runs(10, 11, 50, 11)

	t.Run("NextSet", func(t *testing.T) {
		p, ok := NextSet(rs, 0)
		assert.True(t, ok)
		assert.Equal(t, uint64(10), p)

		p, ok = NextSet(rs, 15)
		assert.True(t, ok)
		assert.Equal(t, uint64(15), p)

		p, ok = NextSet(rs, 21)
		assert.True(t, ok)
		assert.Equal(t, uint64(50), p)

		_, ok = NextSet(rs, 61)
		assert.False(t, ok)
	})

	t.Run("NextClear", func(t *testing.T) {
		p, ok := NextClear(rs, 10, 61)
		assert.True(t, ok)
		assert.Equal(t, uint64(21), p)

		_, ok = NextClear(rs, 55, 61)
		assert.False(t, ok)

		p, ok = NextClear(rs, 55, 62)
		assert.True(t, ok)
		assert.Equal(t, uint64(61), p)
	})

	t.Run("LastClear", func(t *testing.T) {
		p, ok := LastClear(rs, 61)
		assert.True(t, ok)
		assert.Equal(t, uint64(49), p)

		_, ok = LastClear(runs(0, 4), 4)
		assert.False(t, ok)

		_, ok = LastClear(nil, 0)
		assert.False(t, ok)
	})

	t.Run("LastSet", func(t *testing.T) {
		p, ok := LastSet(rs)
		assert.True(t, ok)
		assert.Equal(t, uint64(60), p)
	})
}

func TestNormalize(t *testing.T) {
	in := runs(50, 5, 0, 0, 10, 5, 12, 10, 22, 1, 100, 1)
	got := Normalize(in)
	assert.Equal(t, runs(10, 13, 50, 5, 100, 1), got)
	require.NoError(t, Validate(got))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(nil))
	assert.ErrorIs(t, Validate(runs(1, 0)), ErrEmptyRun)
	assert.ErrorIs(t, Validate(runs(5, 1, 1, 1)), ErrUnsorted)
	assert.ErrorIs(t, Validate(runs(1, 2, 3, 1)), ErrOverlapping)
	assert.ErrorIs(t, Validate(runs(MaxEnd-1, 2)), ErrRunOverflow)
}

func TestCombinators(t *testing.T) {
	a := runs(0, 10, 20, 10)
	b := runs(5, 20)

	assert.Equal(t, runs(0, 30), Union(a, b))
	assert.Equal(t, runs(5, 5, 20, 5), Intersect(a, b))
	assert.Equal(t, runs(0, 5, 25, 5), Difference(a, b))
	assert.Equal(t, runs(0, 5, 10, 10, 25, 5), SymmetricDifference(a, b))
	assert.Equal(t, runs(10, 10, 30, 5), Complement(a, 35))
	assert.Equal(t, runs(10, 5), Complement(a, 15))

	t.Run("adjacent inputs merge", func(t *testing.T) {
		assert.Equal(t, runs(0, 10), SymmetricDifference(runs(0, 5), runs(5, 5)))
		assert.Equal(t, runs(0, 10), Union(runs(0, 5), runs(5, 5)))
	})

	t.Run("empty operands", func(t *testing.T) {
		assert.Equal(t, a, Union(nil, a))
		assert.Nil(t, Intersect(a, nil))
		assert.Nil(t, Difference(nil, a))
		assert.Equal(t, a, SymmetricDifference(a, nil))
		assert.Equal(t, runs(0, 7), Complement(nil, 7))
		assert.Empty(t, Complement(nil, 0))
	})
}

// model is a dense reference used to cross-check the run algebra.
type model []bool

func (m model) runs() []Run {
	var out []Run
	for i := 0; i < len(m); i++ {
		if !m[i] {
			continue
		}
		j := i
		for j < len(m) && m[j] {
			j++
		}
		out = append(out, New(uint64(i), uint64(j)))
		i = j
	}
	return out
}

func TestAgainstModel(t *testing.T) {
	const universe = 256
	rng := rand.New(rand.NewPCG(1, 2))

	random := func() (model, []Run) {
		m := make(model, universe)
		var rs []Run
		for range 12 {
			lo := rng.IntN(universe)
			hi := lo + rng.IntN(universe-lo) + 1
			hi = min(hi, lo+24)
			if rng.IntN(3) == 0 {
				rs = Remove(rs, uint64(lo), uint64(hi))
				for k := lo; k < hi; k++ {
					m[k] = false
				}
				continue
			}
			rs = Add(rs, uint64(lo), uint64(hi))
			for k := lo; k < hi; k++ {
				m[k] = true
			}
		}
		return m, rs
	}

	for range 200 {
		ma, a := random()
		mb, b := random()
		assertRuns(t, ma.runs(), a)

		or, and, andNot, xor, not := make(model, universe), make(model, universe), make(model, universe), make(model, universe), make(model, universe)
		for k := range universe {
			or[k] = ma[k] || mb[k]
			and[k] = ma[k] && mb[k]
			andNot[k] = ma[k] && !mb[k]
			xor[k] = ma[k] != mb[k]
			not[k] = !ma[k]
		}
		assertRuns(t, or.runs(), Union(a, b))
		assertRuns(t, and.runs(), Intersect(a, b))
		assertRuns(t, andNot.runs(), Difference(a, b))
		assertRuns(t, xor.runs(), SymmetricDifference(a, b))
		assertRuns(t, not.runs(), Complement(a, universe))
	}
}

func assertRuns(t *testing.T, want, got []Run) {
	t.Helper()
	require.NoError(t, Validate(got))
	if len(want) == 0 {
		require.Empty(t, got)
		return
	}
	require.Equal(t, want, got)
}
