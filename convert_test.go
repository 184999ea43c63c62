package runbits

import (
	"math"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoaringInterop(t *testing.T) {
	b := mustRuns(t, 0, 0, 3, 10, 1, 70000, 200000)

	rb := b.ToRoaring()
	assert.Equal(t, b.Count(true), rb.GetCardinality())
	assert.True(t, rb.Contains(70000))
	assert.False(t, rb.Contains(3))

	got, err := FromRoaring(rb)
	require.NoError(t, err)
	assert.True(t, got.EqualBits(b))

	t.Run("empty", func(t *testing.T) {
		got, err := FromRoaring(roaring.New())
		require.NoError(t, err)
		assert.True(t, got.IsEmpty())

		got, err = FromRoaring(nil)
		require.NoError(t, err)
		assert.True(t, got.IsEmpty())
	})

	t.Run("reserved position", func(t *testing.T) {
		_, err := FromRoaring(roaring.BitmapOf(1, math.MaxUint32))
		assert.ErrorIs(t, err, ErrOverflow)
	})

	t.Run("singletons", func(t *testing.T) {
		got, err := FromRoaring(roaring.BitmapOf(9, 4, 5, 6))
		require.NoError(t, err)
		assert.Equal(t, "{[4,6] [9,9]}/total=10", got.String())
	})
}

func TestBitSetInterop(t *testing.T) {
	b := mustRuns(t, 200, 0, 3, 64, 70, 199, 1)

	dense := b.ToBitSet()
	assert.Equal(t, uint(200), dense.Len())
	assert.Equal(t, uint(b.Count(true)), dense.Count())

	got, err := FromBitSet(dense)
	require.NoError(t, err)
	assert.True(t, got.EqualBits(b))

	t.Run("trailing zeros keep length", func(t *testing.T) {
		dense := bitset.New(100)
		dense.Set(5).Set(6)

		got, err := FromBitSet(dense)
		require.NoError(t, err)
		assert.Equal(t, "{[5,6]}/total=100", got.String())
	})

	t.Run("nil", func(t *testing.T) {
		got, err := FromBitSet(nil)
		require.NoError(t, err)
		assert.True(t, got.IsEmpty())
	})
}
