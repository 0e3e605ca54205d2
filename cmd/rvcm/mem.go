// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/ezrec/rvcm/cm"
	"github.com/ezrec/rvcm/harness"
)

var memCmd = &cobra.Command{
	Use:   "mem address [value]",
	Short: "read or write block memory words.",
	Long: `Read --count words of block memory starting at the byte offset
address, or write one word there. With --byte, read or write a single byte
lane of the containing word instead.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		addr, err := parseValue(args[0])
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

		count, err := cmd.Flags().GetUint("count")
		if err != nil {
			return
		}
		lane := getFlag(cmd, "byte")
		if lane && len(args) > 1 && value > math.MaxUint8 {
			return ErrByteValue(value)
		}

		return withBoard(cmd, func(ctx context.Context, bd *board) error {
			bram := bd.Module.Bram
			out := cmd.OutOrStdout()

			switch {
			case lane && len(args) > 1:
				word := bram.ReadWord(cm.WordAddress(addr))
				bram.WriteWord(cm.WordAddress(addr), cm.InsertByte(word, addr, uint8(value)))
			case lane:
				word := bram.ReadWord(cm.WordAddress(addr))
				fmt.Fprintf(out, "0x%04x: 0x%02x\n", addr, cm.ExtractByte(word, addr))
			case len(args) > 1:
				bram.WriteWord(addr, value)
			default:
				for n, word := range bram.ReadWords(addr, int(count)) {
					fmt.Fprintf(out, "0x%04x: 0x%08x\n", addr+uint32(n)*cm.WORD_SIZE, word)
				}
			}
			return nil
		})
	},
}

var loadCmd = &cobra.Command{
	Use:   "load program",
	Short: "halt the core and load a program into block memory.",
	Long: `Halt the core, set the program counter to --origin and write the
program there. Files ending in .bin are little-endian binaries, anything
else is read as one hex word per line with '#' comments. With --start the
core is started once loaded.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		program, err := harness.ReadProgram(args[0])
		if err != nil {
			return
		}

		origin, err := cmd.Flags().GetUint32("origin")
		if err != nil {
			return
		}

		return withBoard(cmd, func(ctx context.Context, bd *board) error {
			bd.Harness.Load(origin, program)
			if !getFlag(cmd, "start") {
				return nil
			}
			bd.Module.Control.Start()
			return bd.Harness.Wait(ctx)
		})
	},
}

func init() {
	memCmd.Flags().Uint("count", 1, "number of words to read")
	memCmd.Flags().Bool("byte", false, "access a single byte")
	rootCmd.AddCommand(memCmd)

	loadCmd.Flags().Uint32("origin", 0, "block memory offset and start address")
	loadCmd.Flags().Bool("start", false, "start the core after loading")
	rootCmd.AddCommand(loadCmd)
}
