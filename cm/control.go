// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cm

import (
	"github.com/ezrec/rvcm/bus"
)

// STROBE is written to the trigger registers. The write itself is the
// request; the value only has to be non-zero.
const STROBE = uint32(1)

// STATUS_RUNNING is set in the status register while the core runs.
// The status register is reserved by the hardware; this bit is only
// reported by the simulator.
const STATUS_RUNNING = uint32(1 << 0)

// Control drives the run state and program counter of the core.
//
// The core is either halted or running. Stop halts it from any state and
// keeps the registers and PC for inspection. Start releases a halted core.
// Step retires exactly one instruction of a halted core, and is undefined
// while running. The state after reset is unknown, so callers Stop before
// anything that needs a known starting point.
type Control struct {
	bus bus.Bus
	enc Encoder
}

// NewControl creates a control port.
func NewControl(b bus.Bus, enc Encoder) *Control {
	return &Control{bus: b, enc: enc}
}

// SetPC sets the program counter.
func (ctl *Control) SetPC(value uint32) {
	ctl.bus.Write32(ctl.enc.Address(COMP_PC, 0), value)
}

// PC reads the program counter.
func (ctl *Control) PC() uint32 {
	return ctl.bus.Read32(ctl.enc.Address(COMP_PC, 0))
}

// Step retires one instruction of a halted core.
func (ctl *Control) Step() {
	ctl.bus.Write32(ctl.enc.Address(COMP_STEP, 0), STROBE)
}

// Start releases the core into free running execution.
func (ctl *Control) Start() {
	ctl.bus.Write32(ctl.enc.Address(COMP_START, 0), STROBE)
}

// Stop halts the core.
func (ctl *Control) Stop() {
	ctl.bus.Write32(ctl.enc.Address(COMP_STOP, 0), STROBE)
}

// Status reads the reserved status register.
func (ctl *Control) Status() uint32 {
	return ctl.bus.Read32(ctl.enc.control(CTRL_REG_STATUS))
}

// Running reports the running bit of the status register.
func (ctl *Control) Running() bool {
	return ctl.Status()&STATUS_RUNNING != 0
}
