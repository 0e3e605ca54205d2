// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cm

import (
	"iter"
	"maps"
	"strings"

	"github.com/ezrec/rvcm/internal"
)

const (
	SUB_ADDR_WIDTH  = 8                              // Width of the sub-address field.
	SUB_SEL_WIDTH   = 8                              // Width of the component selector field.
	USED_ADDR_WIDTH = SUB_SEL_WIDTH + SUB_ADDR_WIDTH // Address bits decoded by the slave.
	USED_ADDR_MASK  = uint32(1)<<USED_ADDR_WIDTH - 1 // Mask of the decoded address bits.
	REGISTER_COUNT  = 32                             // Slots in the register file.
	REGISTER_MASK   = REGISTER_COUNT - 1             // Mask of a register index.
	REGISTER_SHIFT  = 2                              // Register slots are word aligned.
)

// Selector is the component selector field of an address.
type Selector uint8

const (
	SUB_SEL_CTRL    = Selector(0x01) // Control registers.
	SUB_SEL_REGFILE = Selector(0x02) // Register file.
)

// SubAddr is the sub-address field of an address.
type SubAddr uint8

const (
	CTRL_REG_STATUS = SubAddr(0x00) // Status (reserved).
	CTRL_REG_START  = SubAddr(0x04) // Start trigger.
	CTRL_REG_STOP   = SubAddr(0x08) // Stop trigger.
	CTRL_REG_STEP   = SubAddr(0x0c) // Single step trigger.
	CTRL_REG_PC     = SubAddr(0x10) // Program counter.
)

// Request is the decoded part of a control module address: the selector in
// the upper byte and the sub-address in the lower.
type Request uint16

// MakeRequest combines a selector and a sub-address.
// Both fields are a byte wide, so neither can overflow into the other.
func MakeRequest(sel Selector, sub SubAddr) Request {
	return Request(sel)<<SUB_ADDR_WIDTH | Request(sub)
}

// Selector of the request.
func (req Request) Selector() Selector {
	return Selector(req >> SUB_ADDR_WIDTH)
}

// SubAddr of the request.
func (req Request) SubAddr() SubAddr {
	return SubAddr(req)
}

// RegisterRequest is the register file sub-address of a register.
// Indices beyond x31 wrap rather than spilling into the selector.
func RegisterRequest(reg Register) SubAddr {
	return SubAddr((reg & REGISTER_MASK) << REGISTER_SHIFT)
}

// Encoder builds bus addresses for control module requests.
type Encoder struct {
	ctrlBase uint32
	bramBase uint32
}

// NewEncoder creates an encoder for a control module at ctrlBase and a
// block memory at bramBase. The control module base must leave the decoded
// address bits clear.
func NewEncoder(ctrlBase, bramBase uint32) (enc Encoder, err error) {
	if ctrlBase&USED_ADDR_MASK != 0 {
		err = ErrBaseOverlap(ctrlBase)
		return
	}

	enc = Encoder{ctrlBase: ctrlBase, bramBase: bramBase}
	return
}

// CtrlBase is the control module base address.
func (enc Encoder) CtrlBase() uint32 {
	return enc.ctrlBase
}

// BramBase is the block memory base address.
func (enc Encoder) BramBase() uint32 {
	return enc.bramBase
}

func (enc Encoder) request(req Request) uint32 {
	return enc.ctrlBase + uint32(req)
}

func (enc Encoder) control(sub SubAddr) uint32 {
	return enc.request(MakeRequest(SUB_SEL_CTRL, sub))
}

// Address computes the bus address of a request for a component.
//
// The sub-address only matters for COMP_REGFILE; the control components
// each have a fixed register, and COMP_BRAM resolves to the memory base.
// Unknown components resolve to the stop trigger, so a malformed request
// halts the core.
func (enc Encoder) Address(comp Component, sub SubAddr) (addr uint32) {
	switch comp {
	case COMP_REGFILE:
		addr = enc.request(MakeRequest(SUB_SEL_REGFILE, sub))
	case COMP_PC:
		addr = enc.control(CTRL_REG_PC)
	case COMP_BRAM:
		addr = enc.bramBase
	case COMP_STEP:
		addr = enc.control(CTRL_REG_STEP)
	case COMP_START:
		addr = enc.control(CTRL_REG_START)
	case COMP_STOP:
		addr = enc.control(CTRL_REG_STOP)
	default:
		addr = enc.control(CTRL_REG_STOP)
	}

	return
}

var _cm_defines = map[string]string{
	"CM_SUB_ADDR_WIDTH":  "8",
	"CM_SUB_SEL_WIDTH":   "8",
	"CM_USED_ADDR_WIDTH": "16",
	"CM_SUB_SEL_CTRL":    internal.Hex(uint32(SUB_SEL_CTRL)),
	"CM_SUB_SEL_REGFILE": internal.Hex(uint32(SUB_SEL_REGFILE)),
	"CM_CTRL_REG_STATUS": internal.Hex(uint32(CTRL_REG_STATUS)),
	"CM_CTRL_REG_START":  internal.Hex(uint32(CTRL_REG_START)),
	"CM_CTRL_REG_STOP":   internal.Hex(uint32(CTRL_REG_STOP)),
	"CM_CTRL_REG_STEP":   internal.Hex(uint32(CTRL_REG_STEP)),
	"CM_CTRL_REG_PC":     internal.Hex(uint32(CTRL_REG_PC)),
	"CM_REGISTER_COUNT":  "32",
	"CM_COMP_REGFILE":    "0",
	"CM_COMP_PC":         "1",
	"CM_COMP_BRAM":       "2",
	"CM_COMP_STEP":       "3",
	"CM_COMP_START":      "4",
	"CM_COMP_STOP":       "5",
}

// Defines returns the address layout constants and the resolved addresses
// of every component.
func (enc Encoder) Defines() iter.Seq2[string, string] {
	resolved := map[string]string{
		"CM_CTRL_BASE":   internal.Hex(enc.ctrlBase),
		"CM_BRAM_BASE":   internal.Hex(enc.bramBase),
		"CM_ADDR_STATUS": internal.Hex(enc.control(CTRL_REG_STATUS)),
	}
	for comp := COMP_REGFILE; comp <= COMP_STOP; comp++ {
		resolved["CM_ADDR_"+strings.ToUpper(comp.String())] = internal.Hex(enc.Address(comp, 0))
	}

	return internal.ConcatDefines(maps.All(_cm_defines), maps.All(resolved))
}

