// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cm

import (
	"errors"

	"github.com/ezrec/rvcm/translate"
)

var f = translate.From

var (
	ErrRegisterInvalid = errors.New(f("register invalid"))
)

// ErrBaseOverlap is a control module base with decoded address bits set.
type ErrBaseOverlap uint32

func (err ErrBaseOverlap) Error() string {
	return f("control module base 0x%08x overlaps the low %d address bits", uint32(err), USED_ADDR_WIDTH)
}

// ErrRegisterName is a register name that could not be parsed.
type ErrRegisterName string

func (err ErrRegisterName) Error() string {
	return f("'%v' is not a register", string(err))
}

func (err ErrRegisterName) Unwrap() error {
	return ErrRegisterInvalid
}
