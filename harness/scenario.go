// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package harness

import (
	"slices"
)

// Step is one single-stepped instruction and the checks that observe it.
type Step struct {
	Name   string
	Checks []Check
}

// Scenario is a program with its expected results.
type Scenario struct {
	Name    string
	Origin  uint32   // Block memory offset of the program, and the start PC.
	Program []uint32 // Instruction words.
	Steps   []Step   // Per-instruction checks, for StepScenario.
	Checks  []Check  // Final checks, for RunScenario.
}

// VERIFY_PROGRAM exercises addi, byte and word stores, then spins.
var VERIFY_PROGRAM = []uint32{
	0x0ab00293, // addi x5, x0, 171
	0x0cd00313, // addi x6, x0, 205
	0x0ef00393, // addi x7, x0, 239
	0x00500023, // sb x5, 0(x0)
	0x006000a3, // sb x6, 1(x0)
	0x005002a3, // sb x5, 5(x0)
	0x00700423, // sb x7, 8(x0)
	0x00702623, // sw x7, 12(x0)
	0x0000006f, // j 0
}

// Verify is the control module bring-up scenario.
func Verify() *Scenario {
	return &Scenario{
		Name:    "RISC-V Core Verification",
		Origin:  0,
		Program: slices.Clone(VERIFY_PROGRAM),
		Steps: []Step{
			{"addi x5, x0, 171", []Check{Reg(5, 171)}},
			{"addi x6, x0, 205", []Check{Reg(6, 205)}},
			{"addi x7, x0, 239", []Check{Reg(7, 239)}},
			{"sb x5, 0(x0)", []Check{Byte(0, 0xab)}},
			{"sb x6, 1(x0)", []Check{Byte(1, 0xcd)}},
			{"sb x5, 5(x0)", []Check{Byte(5, 0xab)}},
			{"sb x7, 8(x0)", []Check{Byte(8, 0xef)}},
			{"sw x7, 12(x0)", []Check{Word(12, 0x000000ef)}},
		},
		Checks: []Check{
			Reg(5, 171),
			Reg(6, 205),
			Reg(7, 239),
			Byte(0, 0xab),
			Byte(1, 0xcd),
			Byte(5, 0xab),
			Byte(8, 0xef),
			Word(12, 0x000000ef),
		},
	}
}
