// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ezrec/rvcm/cm"
)

var regCmd = &cobra.Command{
	Use:   "reg register [value]",
	Short: "read or write one register.",
	Long: `Read or write one register of the halted core. Registers are named
x0..x31 or by ABI name (zero, ra, sp, t0, ...). Writes to x0 are dropped.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		reg, err := cm.ParseRegister(args[0])
		if err != nil {
			return
		}

		var value uint32
		if len(args) > 1 {
			value, err = parseValue(args[1])
			if err != nil {
				return
			}
		}

		return withBoard(cmd, func(ctx context.Context, bd *board) error {
			if len(args) > 1 {
				bd.Module.RegFile.Write(reg, value)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "0x%08x\n", bd.Module.RegFile.Read(reg))
			return nil
		})
	},
}

var regsCmd = &cobra.Command{
	Use:   "regs",
	Short: "dump the register file.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBoard(cmd, func(ctx context.Context, bd *board) error {
			out := cmd.OutOrStdout()
			for n, value := range bd.Module.RegFile.Dump() {
				reg := cm.Register(n)
				fmt.Fprintf(out, "%-3s %-4s 0x%08x\n", reg, reg.ABI(), value)
			}
			fmt.Fprintf(out, "pc       0x%08x\n", bd.Module.Control.PC())
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(regCmd)
	rootCmd.AddCommand(regsCmd)
}
