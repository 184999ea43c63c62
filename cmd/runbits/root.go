package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/runbits"
	"github.com/hupe1980/runbits/blobstore"
	"github.com/hupe1980/runbits/catalog"
	"github.com/hupe1980/runbits/codec"
)

var errNeedCatalog = errors.New("command requires --dir or --store")

// rootT holds the global flags and the state derived from them.
type rootT struct {
	logLevel    string
	logFormat   string
	dir         string
	store       string
	compression codec.Compression

	logger *catalog.Logger
	// cat is nil when arguments name local files.
	cat *catalog.Catalog
}

func newRootCmd() *cobra.Command {
	r := &rootT{compression: codec.Zstd}

	cmd := &cobra.Command{
		Use:   "runbits",
		Short: "run-length bitset tools",
		Long: `
Inspect, convert and combine stored run-length bitsets.

Arguments are file paths unless --dir or --store is given, in which case they
are bitset names resolved through a catalog.
`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: r.setup,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&r.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.StringVar(&r.logFormat, "log-format", "text", "log output format (text, json)")
	flags.StringVar(&r.dir, "dir", "", "resolve names in a local catalog directory")
	flags.StringVar(&r.store, "store", "", "resolve names in a catalog at `URL` (file://, mem://, s3://, minio://)")
	flags.Var(&r.compression, "compression", "frame compression for written bitsets (none, lz4, zstd, snappy, minlz)")

	cmd.AddCommand(
		newInspectCmd(r),
		newRunsCmd(r),
		newCreateCmd(r),
		newConvertCmd(r),
		newOpCmd(r),
		newNotCmd(r),
		newListCmd(r),
		newRemoveCmd(r),
	)
	return cmd
}

func (r *rootT) setup(cmd *cobra.Command, _ []string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(r.logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", r.logLevel, err)
	}
	switch r.logFormat {
	case "text":
		r.logger = catalog.NewTextLogger(cmd.ErrOrStderr(), level)
	case "json":
		r.logger = catalog.NewJSONLogger(cmd.ErrOrStderr(), level)
	default:
		return fmt.Errorf("invalid --log-format %q: want text or json", r.logFormat)
	}

	var (
		store blobstore.BlobStore
		desc  string
	)
	switch {
	case r.dir != "" && r.store != "":
		return errors.New("--dir and --store are mutually exclusive")
	case r.dir != "":
		store, desc = blobstore.NewLocalStore(r.dir), "file://"+r.dir
	case r.store != "":
		s, err := openStore(cmd.Context(), r.store)
		if err != nil {
			return err
		}
		store, desc = s, r.store
	default:
		return nil
	}

	r.cat = catalog.New(store,
		catalog.WithCompression(r.compression),
		catalog.WithLogger(r.logger.WithStore(desc)),
	)
	return nil
}

// readRaw returns the stored bytes of name without decoding them.
func (r *rootT) readRaw(ctx context.Context, name string) ([]byte, error) {
	if r.cat == nil {
		return os.ReadFile(name)
	}
	if err := catalog.ValidateName(name); err != nil {
		return nil, err
	}
	blob, err := r.cat.Store().Open(ctx, name+catalog.Suffix)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", name, err)
	}
	defer blob.Close()
	return blobstore.ReadAll(ctx, blob)
}

func (r *rootT) load(ctx context.Context, name string) (*runbits.Bitset, error) {
	if r.cat != nil {
		return r.cat.Load(ctx, name)
	}

	data, err := os.ReadFile(name)
	if err == nil {
		var bs *runbits.Bitset
		if bs, err = codec.Decode(data); err == nil {
			r.logger.LogLoad(ctx, name, len(data), false, nil)
			return bs, nil
		}
	}
	r.logger.LogLoad(ctx, name, 0, false, err)
	return nil, fmt.Errorf("load %s: %w", name, err)
}

func (r *rootT) save(ctx context.Context, name string, bs *runbits.Bitset) error {
	if r.cat != nil {
		return r.cat.Save(ctx, name, bs)
	}

	data, err := codec.Encode(bs, r.compression)
	if err == nil {
		err = os.WriteFile(name, data, 0o644)
	}
	r.logger.LogSave(ctx, name, len(data), r.compression, err)
	if err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

func (r *rootT) remove(ctx context.Context, name string) error {
	if r.cat != nil {
		return r.cat.Delete(ctx, name)
	}
	err := os.Remove(name)
	r.logger.LogDelete(ctx, name, err)
	return err
}
