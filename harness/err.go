// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package harness

import (
	"github.com/ezrec/rvcm/translate"
)

var f = translate.From

// ErrProgramLength is a binary program that is not a whole number of words.
type ErrProgramLength int

func (err ErrProgramLength) Error() string {
	return f("program length %d is not a multiple of 4 bytes", int(err))
}

// ErrProgramLine is a line of a hex program that is not a word.
type ErrProgramLine struct {
	Line int
	Text string
	Err  error
}

func (err *ErrProgramLine) Error() string {
	return f("line %d: '%v' is not a hex word", err.Line, err.Text)
}

func (err *ErrProgramLine) Unwrap() error {
	return err.Err
}
