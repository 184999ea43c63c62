package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/runbits"
)

func newCreateCmd(r *rootT) *cobra.Command {
	return &cobra.Command{
		Use:   "create <bitset> [<bit>|<start>-<end>...]",
		Short: "write a bitset holding the given bits and inclusive ranges",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bs := runbits.New(len(args) - 1)
			for _, arg := range args[1:] {
				start, end, err := parseRange(arg)
				if err != nil {
					return err
				}
				if err := bs.SetRange(start, end, true); err != nil {
					return fmt.Errorf("range %q: %w", arg, err)
				}
			}
			return r.save(cmd.Context(), args[0], bs)
		},
	}
}

// parseRange parses "N" or "START-END" (inclusive).
func parseRange(s string) (start, end uint32, err error) {
	lo, hi, isRange := strings.Cut(s, "-")
	start, err = parseBit(lo)
	if err != nil || !isRange {
		return start, start, err
	}
	if end, err = parseBit(hi); err != nil {
		return 0, 0, err
	}
	if start > end {
		return 0, 0, fmt.Errorf("invalid range %q: start after end", s)
	}
	return start, end, nil
}

func parseBit(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid bit %q: %w", s, err)
	}
	return uint32(v), nil
}
