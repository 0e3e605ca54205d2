// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"

	"github.com/ezrec/rvcm/translate"
)

// ErrChecksFailed is the number of failed checks of a verification run.
type ErrChecksFailed int

func (err ErrChecksFailed) Error() string {
	return translate.From("%d checks failed", int(err))
}

// ErrByteValue is a value written to a byte lane that does not fit in one.
type ErrByteValue uint32

func (err ErrByteValue) Error() string {
	return translate.From("value 0x%x does not fit in a byte", uint32(err))
}

var (
	ErrServeEndpoint = errors.New(translate.From("exactly one of --listen or --port is required"))
)
