// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package script runs Starlark debug scripts against a control module.
//
// Scripts see the module address defines (CM_CTRL_BASE, CM_ADDR_PC, ...)
// as predeclared integers, and these builtins:
//
//	stop()                   halt the core
//	start()                  let the core run
//	step(count=1)            single step, waiting the settle delay after each
//	settle()                 wait the settle delay
//	sleep(seconds)           wait
//	pc()                     read the program counter
//	set_pc(value)            write the program counter
//	reg(r)                   read a register, by index or name ("x5", "t0")
//	set_reg(r, value)        write a register
//	regs()                   list of all 32 registers
//	mem(addr)                read a block memory word
//	set_mem(addr, value)     write a block memory word
//	mem_byte(addr)           read a block memory byte
//	set_mem_byte(addr, v)    read-modify-write a block memory byte
//	load_program(words, origin=0)
//	                         halt, set the PC to origin and load words there
//	check_reg(r, want)       compare a register, True if it matches
//	check_byte(addr, want)   compare a block memory byte
//	check_word(addr, want)   compare a block memory word
//	report()                 (passed, failed) counts of the checks so far
package script
