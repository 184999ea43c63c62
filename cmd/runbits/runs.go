package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRunsCmd(r *rootT) *cobra.Command {
	return &cobra.Command{
		Use:   "runs <bitset>",
		Short: "print the runs of a bitset as inclusive ranges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bs, err := r.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for run := range bs.Runs() {
				fmt.Fprintln(out, run)
			}
			return nil
		},
	}
}
