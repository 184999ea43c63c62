package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/runbits/internal/fs"
)

func TestLocalStore_FailedPutKeepsPrevious(t *testing.T) {
	faults := map[string]fs.Fault{
		"write":  {FailOnWrite: true},
		"sync":   {FailOnSync: true},
		"close":  {FailOnClose: true},
		"rename": {FailOnRename: true},
	}
	for name, fault := range faults {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			root := t.TempDir()
			ffs := fs.NewFaultyFS(nil)
			s := &LocalStore{root: root, fs: ffs}

			require.NoError(t, s.Put(ctx, "a.rlb", []byte("old")))

			ffs.AddRule(tempPrefix+"a.rlb", fault)
			err := s.Put(ctx, "a.rlb", []byte("new"))
			require.ErrorIs(t, err, fs.ErrInjected)

			data, err := os.ReadFile(filepath.Join(root, "a.rlb"))
			require.NoError(t, err)
			assert.Equal(t, "old", string(data))

			entries, err := os.ReadDir(root)
			require.NoError(t, err)
			assert.Len(t, entries, 1, "temp file must be removed")
		})
	}
}
