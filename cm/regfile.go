// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cm

import (
	log "github.com/sirupsen/logrus"

	"github.com/ezrec/rvcm/bus"
)

// RegFile accesses the general purpose registers of the core.
// Register contents are only stable while the core is halted.
type RegFile struct {
	bus bus.Bus
	enc Encoder
}

// NewRegFile creates a register file port.
func NewRegFile(b bus.Bus, enc Encoder) *RegFile {
	return &RegFile{bus: b, enc: enc}
}

func (rf *RegFile) address(reg Register) uint32 {
	return rf.enc.Address(COMP_REGFILE, RegisterRequest(reg))
}

// Write sets a register. Writes to x0 are dropped.
func (rf *RegFile) Write(reg Register, value uint32) {
	if reg&REGISTER_MASK == X0 {
		log.Debugf("cm: %v is not writable, dropping 0x%08x", reg, value)
		return
	}

	rf.bus.Write32(rf.address(reg), value)
}

// Read gets a register.
func (rf *RegFile) Read(reg Register) uint32 {
	return rf.bus.Read32(rf.address(reg))
}

// Dump reads every register, x0 included.
func (rf *RegFile) Dump() (regs [REGISTER_COUNT]uint32) {
	for n := range regs {
		regs[n] = rf.Read(Register(n))
	}
	return
}
