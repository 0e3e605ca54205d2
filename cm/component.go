// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cm

// Component is an addressable target of the control module.
type Component int

//go:generate go tool stringer -linecomment -type=Component
const (
	COMP_REGFILE = Component(0) // regfile
	COMP_PC      = Component(1) // pc
	COMP_BRAM    = Component(2) // bram
	COMP_STEP    = Component(3) // step
	COMP_START   = Component(4) // start
	COMP_STOP    = Component(5) // stop
)
