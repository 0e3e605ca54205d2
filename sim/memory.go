// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package sim

import (
	"encoding/binary"
)

// Memory is the block memory as seen by the core: little-endian bytes
// starting at address zero.
type Memory []byte

// NewMemory creates a block memory of size bytes, rounded up to a word.
func NewMemory(size uint32) Memory {
	return make(Memory, (size+3)&^3)
}

func (mem Memory) check(addr uint32, size uint32) (err error) {
	if addr%size != 0 {
		err = ErrMisaligned
		return
	}
	if uint64(addr)+uint64(size) > uint64(len(mem)) {
		err = ErrBounds(addr)
	}
	return
}

// Load reads a 1, 2 or 4 byte value, zero extended.
func (mem Memory) Load(addr uint32, size uint32) (value uint32, err error) {
	err = mem.check(addr, size)
	if err != nil {
		return
	}

	switch size {
	case 1:
		value = uint32(mem[addr])
	case 2:
		value = uint32(binary.LittleEndian.Uint16(mem[addr:]))
	default:
		value = binary.LittleEndian.Uint32(mem[addr:])
	}
	return
}

// Store writes the low 1, 2 or 4 bytes of value.
func (mem Memory) Store(addr uint32, size uint32, value uint32) (err error) {
	err = mem.check(addr, size)
	if err != nil {
		return
	}

	switch size {
	case 1:
		mem[addr] = uint8(value)
	case 2:
		binary.LittleEndian.PutUint16(mem[addr:], uint16(value))
	default:
		binary.LittleEndian.PutUint32(mem[addr:], value)
	}
	return
}
