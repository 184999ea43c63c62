// Package blobstoretest holds a behavioural test suite shared by every
// blobstore.BlobStore implementation.
package blobstoretest

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/runbits/blobstore"
)

// Run exercises Put, Open, ReadAt, List and Delete against a fresh store
// returned by newStore.
func Run(t *testing.T, newStore func(t *testing.T) blobstore.BlobStore) {
	t.Run("PutOpenRead", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		data := []byte("0123456789")

		require.NoError(t, s.Put(ctx, "digits.rlb", data))

		blob, err := s.Open(ctx, "digits.rlb")
		require.NoError(t, err)
		defer blob.Close()
		assert.Equal(t, int64(len(data)), blob.Size())

		buf := make([]byte, 4)
		n, err := blob.ReadAt(ctx, buf, 3)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
		assert.Equal(t, "3456", string(buf))

		n, err = blob.ReadAt(ctx, make([]byte, 5), 8)
		assert.Equal(t, 2, n)
		assert.True(t, errors.Is(err, io.EOF))

		n, err = blob.ReadAt(ctx, buf, 20)
		assert.Equal(t, 0, n)
		assert.True(t, errors.Is(err, io.EOF))

		all, err := blobstore.ReadAll(ctx, blob)
		require.NoError(t, err)
		assert.Equal(t, data, all)
	})

	t.Run("Overwrite", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Put(ctx, "a.rlb", []byte("first")))
		require.NoError(t, s.Put(ctx, "a.rlb", []byte("second version")))

		blob, err := s.Open(ctx, "a.rlb")
		require.NoError(t, err)
		defer blob.Close()
		all, err := blobstore.ReadAll(ctx, blob)
		require.NoError(t, err)
		assert.Equal(t, "second version", string(all))
	})

	t.Run("PutCopiesInput", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		data := []byte("abc")

		require.NoError(t, s.Put(ctx, "c.rlb", data))
		data[0] = 'x'

		blob, err := s.Open(ctx, "c.rlb")
		require.NoError(t, err)
		defer blob.Close()
		all, err := blobstore.ReadAll(ctx, blob)
		require.NoError(t, err)
		assert.Equal(t, "abc", string(all))
	})

	t.Run("EmptyBlob", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Put(ctx, "empty.rlb", nil))
		blob, err := s.Open(ctx, "empty.rlb")
		require.NoError(t, err)
		defer blob.Close()
		assert.Zero(t, blob.Size())
		all, err := blobstore.ReadAll(ctx, blob)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("NotFound", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Open(context.Background(), "missing.rlb")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("ListAndDelete", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		for _, name := range []string{"b.rlb", "a.rlb", "team/x.rlb", "team/y.rlb"} {
			require.NoError(t, s.Put(ctx, name, []byte(name)))
		}

		names, err := s.List(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"a.rlb", "b.rlb", "team/x.rlb", "team/y.rlb"}, names)

		names, err = s.List(ctx, "team/")
		require.NoError(t, err)
		assert.Equal(t, []string{"team/x.rlb", "team/y.rlb"}, names)

		require.NoError(t, s.Delete(ctx, "a.rlb"))
		require.NoError(t, s.Delete(ctx, "a.rlb"))

		names, err = s.List(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"b.rlb", "team/x.rlb", "team/y.rlb"}, names)

		_, err = s.Open(ctx, "a.rlb")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		s := newStore(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.ErrorIs(t, s.Put(ctx, "a.rlb", []byte("x")), context.Canceled)
		_, err := s.Open(ctx, "a.rlb")
		assert.ErrorIs(t, err, context.Canceled)
	})
}
