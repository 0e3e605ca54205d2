// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package bus

import (
	"io"
)

// Bus performs synchronous 32-bit transactions at physical addresses.
type Bus interface {
	// Read32 reads the word at addr.
	Read32(addr uint32) (value uint32)
	// Write32 writes value to the word at addr.
	Write32(addr uint32, value uint32)
}

// Region is a window of the physical address space.
type Region struct {
	Base uint32
	Size uint32
}

// Contains reports whether addr falls into the region.
func (r Region) Contains(addr uint32) bool {
	return addr >= r.Base && addr-r.Base < r.Size
}

// Close closes the bus if the backend holds any resources.
func Close(b Bus) (err error) {
	if closer, ok := b.(io.Closer); ok {
		err = closer.Close()
	}
	return
}

// Err returns the latched transport error of the bus, if the backend has one.
func Err(b Bus) (err error) {
	if errer, ok := b.(interface{ Err() error }); ok {
		err = errer.Err()
	}
	return
}
