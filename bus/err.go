// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package bus

import (
	"errors"

	"github.com/ezrec/rvcm/translate"
)

var f = translate.From

var (
	ErrUnsupported  = errors.New(f("physical memory mapping unsupported on this platform"))
	ErrRegionEmpty  = errors.New(f("region has zero size"))
	ErrBridgeClosed = errors.New(f("serial bridge closed"))
)

// ErrBridgeStatus is a non-zero status returned by the bridge server.
type ErrBridgeStatus uint8

func (err ErrBridgeStatus) Error() string {
	return f("serial bridge status 0x%02x", uint8(err))
}

// ErrBridgeOp is an unknown opcode received by the bridge server.
type ErrBridgeOp uint8

func (err ErrBridgeOp) Error() string {
	return f("serial bridge opcode 0x%02x unknown", uint8(err))
}

// ErrUnmapped is an access outside every mapped window.
type ErrUnmapped uint32

func (err ErrUnmapped) Error() string {
	return f("address 0x%08x is not mapped", uint32(err))
}
