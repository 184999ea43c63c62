package runbits_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/runbits"
	"github.com/hupe1980/runbits/testutil"
)

func TestRandomOpsMatchModel(t *testing.T) {
	rng := testutil.NewRNG(20240611)

	for round := range 50 {
		b := runbits.New(0)
		m := testutil.NewModel(0)
		for i, op := range rng.Ops(200, 2048, 96) {
			op.Apply(b, m)
			if err := m.Check(b); err != nil {
				t.Fatalf("round %d op %d (%+v): %v", round, i, op, err)
			}
		}
	}
}

func TestRandomSetOperations(t *testing.T) {
	rng := testutil.NewRNG(7)

	for range 40 {
		a, ma := rng.Bitset(1024, 48)
		b, mb := rng.Bitset(1024, 48)
		total := max(a.TotalBits(), b.TotalBits())

		check := func(name string, got *runbits.Bitset, keep func(x, y bool) bool) {
			want := testutil.NewModel(total)
			for bit := uint32(0); uint64(bit) < total; bit++ {
				if keep(ma.Test(bit), mb.Test(bit)) {
					want.Set(bit, true)
				}
			}
			require.NoError(t, want.Check(got), name)
		}
		check("and", runbits.And(a, b), func(x, y bool) bool { return x && y })
		check("or", runbits.Or(a, b), func(x, y bool) bool { return x || y })
		check("xor", runbits.Xor(a, b), func(x, y bool) bool { return x != y })
		check("andnot", runbits.AndNot(a, b), func(x, y bool) bool { return x && !y })

		require.True(t, runbits.Not(runbits.Not(a)).EqualBits(a))
		require.Equal(t, a.TotalBits(), a.Count(true)+a.Count(false))
	}
}

func TestRandomEncodingRoundTrip(t *testing.T) {
	rng := testutil.NewRNG(3)

	for range 30 {
		b, _ := rng.Bitset(1<<16, 128)

		data, err := b.MarshalBinary()
		require.NoError(t, err)

		got, err := runbits.FromBytes(data)
		require.NoError(t, err)
		require.True(t, got.Equals(b))
		require.Equal(t, b.TotalBits(), got.TotalBits())
		require.Equal(t, b.Fingerprint(), got.Fingerprint())
	}
}

func TestRandomSearchMatchesModel(t *testing.T) {
	rng := testutil.NewRNG(11)

	for range 20 {
		b, m := rng.Bitset(512, 32)
		total := uint32(b.TotalBits())

		for from := uint32(0); from <= total; from += 7 {
			wantSet, wantClear := -1, -1
			for bit := from; bit < total; bit++ {
				if wantSet < 0 && m.Test(bit) {
					wantSet = int(bit)
				}
				if wantClear < 0 && !m.Test(bit) {
					wantClear = int(bit)
				}
			}

			got, ok := b.FindFirst(true, from)
			require.Equal(t, wantSet >= 0, ok)
			if ok {
				require.Equal(t, uint32(wantSet), got)
			}
			got, ok = b.FindFirst(false, from)
			require.Equal(t, wantClear >= 0, ok)
			if ok {
				require.Equal(t, uint32(wantClear), got)
			}
		}
	}
}
