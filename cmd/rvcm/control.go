// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "halt the core.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBoard(cmd, func(ctx context.Context, bd *board) error {
			bd.Module.Control.Stop()
			return nil
		})
	},
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "let the core run from its program counter.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBoard(cmd, func(ctx context.Context, bd *board) error {
			bd.Module.Control.Start()
			return bd.Harness.Wait(ctx)
		})
	},
}

var stepCmd = &cobra.Command{
	Use:   "step [count]",
	Short: "single step the halted core.",
	Long: `Retire one instruction, or count instructions, on the halted core,
waiting the settle delay after each. Prints the program counter reached.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		count := uint64(1)
		if len(args) > 0 {
			count, err = strconv.ParseUint(args[0], 0, 32)
			if err != nil {
				return
			}
		}

		return withBoard(cmd, func(ctx context.Context, bd *board) (err error) {
			for range count {
				bd.Module.Control.Step()
				err = bd.Harness.Wait(ctx)
				if err != nil {
					return
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pc = 0x%08x\n", bd.Module.Control.PC())
			return
		})
	},
}

var pcCmd = &cobra.Command{
	Use:   "pc [value]",
	Short: "read or set the program counter.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var value uint32
		if len(args) > 0 {
			value, err = parseValue(args[0])
			if err != nil {
				return
			}
		}

		return withBoard(cmd, func(ctx context.Context, bd *board) error {
			if len(args) > 0 {
				bd.Module.Control.SetPC(value)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "0x%08x\n", bd.Module.Control.PC())
			return nil
		})
	},
}

func parseValue(text string) (value uint32, err error) {
	v, err := strconv.ParseUint(text, 0, 32)
	value = uint32(v)
	return
}

func init() {
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stepCmd)
	rootCmd.AddCommand(pcCmd)
}
