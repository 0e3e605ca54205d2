// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cm

import (
	"fmt"
	"strconv"
	"strings"
)

// Register is an index into the register file, x0 to x31.
type Register uint8

// X0 is hard-wired to zero and is never written.
const X0 = Register(0)

var _abi_names = [REGISTER_COUNT]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

func (reg Register) String() string {
	return fmt.Sprintf("x%d", uint8(reg))
}

// ABI name of the register, or "" for an out of range index.
func (reg Register) ABI() string {
	if int(reg) >= len(_abi_names) {
		return ""
	}
	return _abi_names[reg]
}

// Valid reports whether the register exists in the register file.
func (reg Register) Valid() bool {
	return reg < REGISTER_COUNT
}

// ParseRegister accepts x0-x31, the ABI names (fp for s0) or a plain index.
func ParseRegister(name string) (reg Register, err error) {
	text := strings.ToLower(strings.TrimSpace(name))

	if text == "fp" {
		text = "s0"
	}
	for n, abi := range _abi_names {
		if text == abi {
			reg = Register(n)
			return
		}
	}

	text = strings.TrimPrefix(text, "x")
	index, perr := strconv.ParseUint(text, 10, 8)
	if perr != nil || index >= REGISTER_COUNT {
		err = ErrRegisterName(name)
		return
	}

	reg = Register(index)
	return
}
