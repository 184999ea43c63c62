package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newListCmd(r *rootT) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [prefix]",
		Short: "list the bitsets in a catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if r.cat == nil {
				return errNeedCatalog
			}
			names, err := r.cat.List(cmd.Context())
			if err != nil {
				return err
			}
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			out := cmd.OutOrStdout()
			for _, name := range names {
				if strings.HasPrefix(name, prefix) {
					fmt.Fprintln(out, name)
				}
			}
			return nil
		},
	}
}

func newRemoveCmd(r *rootT) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <bitsets>",
		Short: "delete stored bitsets",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				if err := r.remove(cmd.Context(), name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
