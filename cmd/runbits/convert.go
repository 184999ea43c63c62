package main

import (
	"github.com/spf13/cobra"
)

func newConvertCmd(r *rootT) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "re-encode a bitset with the selected --compression",
		Long: `
Decode a framed or raw bitset and write it as a frame compressed with
--compression. The logical length is preserved.
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bs, err := r.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return r.save(cmd.Context(), args[1], bs)
		},
	}
}
