// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ezrec/rvcm/script"
)

var scriptCmd = &cobra.Command{
	Use:   "script file.star",
	Short: "run a Starlark debug script.",
	Long: `Run a Starlark script against the control module. The script sees the
module address defines as predeclared integers, and builtins to control
the core, access registers and memory, and check expected values.
The command fails if any check made by the script failed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBoard(cmd, func(ctx context.Context, bd *board) (err error) {
			s := script.New(bd.Harness, cmd.OutOrStdout())

			_, err = s.Exec(ctx, args[0], nil)
			if err != nil {
				return
			}

			if len(s.Report.Results) == 0 {
				return
			}

			_, err = s.Report.WriteTo(cmd.OutOrStdout())
			if err == nil && !s.Report.OK() {
				err = ErrChecksFailed(s.Report.Failed())
			}
			return
		})
	},
}

func init() {
	rootCmd.AddCommand(scriptCmd)
}
