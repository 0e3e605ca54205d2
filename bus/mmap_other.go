// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

//go:build !linux

package bus

// DEV_MEM is the default physical memory device.
const DEV_MEM = "/dev/mem"

// Mmap is unavailable on this platform.
type Mmap struct{}

// OpenMmap always fails on this platform.
func OpenMmap(path string, regions ...Region) (mm *Mmap, err error) {
	err = ErrUnsupported
	return
}

func (mm *Mmap) Read32(addr uint32) uint32 { return 0 }

func (mm *Mmap) Write32(addr uint32, value uint32) {}

func (mm *Mmap) Close() error { return nil }
