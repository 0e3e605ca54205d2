// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cm

import (
	"github.com/ezrec/rvcm/bus"
)

const (
	WORD_SIZE = 4                     // Bytes in a block memory word.
	WORD_MASK = uint32(WORD_SIZE - 1) // Byte lane bits of an address.
)

// Bram accesses the block memory holding the core's instructions and data.
//
// Addresses are byte offsets of words from the memory base. They are not
// checked against the memory size or alignment.
type Bram struct {
	bus bus.Bus
	enc Encoder
}

// NewBram creates a block memory port.
func NewBram(b bus.Bus, enc Encoder) *Bram {
	return &Bram{bus: b, enc: enc}
}

// WriteWord writes the word at addr.
func (bm *Bram) WriteWord(addr uint32, data uint32) {
	bm.bus.Write32(bm.enc.Address(COMP_BRAM, 0)+addr, data)
}

// ReadWord reads the word at addr.
func (bm *Bram) ReadWord(addr uint32) uint32 {
	return bm.bus.Read32(bm.enc.Address(COMP_BRAM, 0) + addr)
}

// WriteWords writes consecutive words starting at addr.
func (bm *Bram) WriteWords(addr uint32, data []uint32) {
	for n, word := range data {
		bm.WriteWord(addr+uint32(n)*WORD_SIZE, word)
	}
}

// ReadWords reads count consecutive words starting at addr.
func (bm *Bram) ReadWords(addr uint32, count int) (data []uint32) {
	data = make([]uint32, count)
	for n := range data {
		data[n] = bm.ReadWord(addr + uint32(n)*WORD_SIZE)
	}
	return
}

// WordAddress is the address of the word containing byteAddr.
func WordAddress(byteAddr uint32) uint32 {
	return byteAddr &^ WORD_MASK
}

// ByteLane is the position of byteAddr inside its word, 0 being the least
// significant byte.
func ByteLane(byteAddr uint32) uint {
	return uint(byteAddr & WORD_MASK)
}

// ExtractByte picks the byte at byteAddr out of its containing word.
func ExtractByte(word uint32, byteAddr uint32) uint8 {
	return uint8(word >> (8 * ByteLane(byteAddr)))
}

// InsertByte replaces the byte at byteAddr in its containing word.
func InsertByte(word uint32, byteAddr uint32, value uint8) uint32 {
	shift := 8 * ByteLane(byteAddr)
	return word&^(0xff<<shift) | uint32(value)<<shift
}
