package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/runbits"
)

var binaryOps = map[string]func(a, b *runbits.Bitset) *runbits.Bitset{
	"and":    runbits.And,
	"or":     runbits.Or,
	"xor":    runbits.Xor,
	"andnot": runbits.AndNot,
}

func opNames() string {
	names := make([]string, 0, len(binaryOps))
	for name := range binaryOps {
		names = append(names, name)
	}
	slices.Sort(names)
	return strings.Join(names, "|")
}

func newOpCmd(r *rootT) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("op %s <a> <b> <out>", opNames()),
		Short: "combine two bitsets and write the result",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			fn, ok := binaryOps[strings.ToLower(args[0])]
			if !ok {
				return fmt.Errorf("unknown op %q, want %s", args[0], opNames())
			}

			ctx := cmd.Context()
			a, err := r.load(ctx, args[1])
			if err != nil {
				return err
			}
			b, err := r.load(ctx, args[2])
			if err != nil {
				return err
			}
			return r.writeResult(cmd, args[3], fn(a, b))
		},
	}
}

func newNotCmd(r *rootT) *cobra.Command {
	return &cobra.Command{
		Use:   "not <in> <out>",
		Short: "complement a bitset within its logical length",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bs, err := r.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return r.writeResult(cmd, args[1], runbits.Not(bs))
		},
	}
}

func (r *rootT) writeResult(cmd *cobra.Command, name string, bs *runbits.Bitset) error {
	if err := r.save(cmd.Context(), name, bs); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d runs, %d of %d bits set\n",
		name, bs.RunCount(), bs.Count(true), bs.TotalBits())
	return nil
}
