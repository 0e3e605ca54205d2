// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package script

import (
	"github.com/ezrec/rvcm/translate"
)

var f = translate.From

// ErrValue is a builtin argument that is not a 32-bit integer.
type ErrValue struct {
	Builtin string
	Value   string
}

func (err *ErrValue) Error() string {
	return f("%v: '%v' is not a 32-bit value", err.Builtin, err.Value)
}

// ErrRegister is a builtin argument that is not a register.
type ErrRegister struct {
	Builtin string
	Value   string
}

func (err *ErrRegister) Error() string {
	return f("%v: '%v' is not a register", err.Builtin, err.Value)
}
