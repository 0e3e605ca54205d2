// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package sim

import (
	"errors"

	"github.com/ezrec/rvcm/translate"
)

var f = translate.From

var (
	ErrEcall      = errors.New(f("ecall"))
	ErrEbreak     = errors.New(f("ebreak"))
	ErrMisaligned = errors.New(f("misaligned access"))
)

// ErrIllegal is an instruction the core does not implement.
type ErrIllegal uint32

func (err ErrIllegal) Error() string {
	return f("illegal instruction 0x%08x", uint32(err))
}

// ErrBounds is an access outside the block memory.
type ErrBounds uint32

func (err ErrBounds) Error() string {
	return f("address 0x%08x outside block memory", uint32(err))
}

// ErrTrap records where the core stopped on an error.
type ErrTrap struct {
	PC  uint32
	Err error
}

func (err *ErrTrap) Error() string {
	return f("trap at pc 0x%08x %v", err.PC, err.Err)
}

func (err *ErrTrap) Unwrap() error {
	return err.Err
}
