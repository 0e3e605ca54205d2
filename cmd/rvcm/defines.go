// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ezrec/rvcm/internal"
)

var definesCmd = &cobra.Command{
	Use:   "defines",
	Short: "list the control module address defines.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBoard(cmd, func(ctx context.Context, bd *board) error {
			out := cmd.OutOrStdout()
			for name, value := range internal.SortedDefines(bd.Module.Defines()) {
				fmt.Fprintf(out, "%s=%s\n", name, value)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(definesCmd)
}
