// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package cm implements host access to the control module of the RISC-V
// soft core.
//
// The control module is a single bus slave. The low 16 bits of an address
// select the target: the upper byte is the component selector and the
// lower byte the sub-address inside that component. Bits above the low 16
// belong to the interconnect, so the slave can be mapped anywhere.
//
//	hhhh 01rr: control register rr (status, start, stop, step, pc)
//	hhhh 02rr: register file slot rr/4 (x0 to x31)
//
// The block memory holding instructions and data is a separate slave with
// its own base address.
//
// None of the ports return errors. A request for an unknown component is
// redirected to the stop trigger, halting the core rather than writing to
// an arbitrary address.
package cm
