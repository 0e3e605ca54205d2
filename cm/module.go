// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cm

import (
	"iter"

	"github.com/ezrec/rvcm/bus"
)

// Module groups the ports of one control module and its block memory on
// a single bus.
type Module struct {
	Encoder
	Bus     bus.Bus
	Control *Control
	RegFile *RegFile
	Bram    *Bram
}

// NewModule creates the ports for enc on b.
func NewModule(b bus.Bus, enc Encoder) (mod *Module) {
	mod = &Module{
		Encoder: enc,
		Bus:     b,
		Control: NewControl(b, enc),
		RegFile: NewRegFile(b, enc),
		Bram:    NewBram(b, enc),
	}
	return
}

// Defines for the module.
func (mod *Module) Defines() iter.Seq2[string, string] {
	return mod.Encoder.Defines()
}
