// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package sim

import (
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/ezrec/rvcm/bus"
	"github.com/ezrec/rvcm/cm"
)

const (
	STATUS_RUNNING = cm.STATUS_RUNNING // Core is executing.
	STATUS_TRAPPED = uint32(1 << 1)    // Core halted itself on a trap.

	BRAM_SIZE = 8192 // Default block memory size in bytes.
)

// Peripheral is the control module slave and block memory of one core.
type Peripheral struct {
	Verbose bool // If set, the core logs every retired instruction.

	enc cm.Encoder

	mu      sync.Mutex
	core    Core
	memory  Memory
	running bool
	trap    error
	done    chan struct{} // Closed when the run goroutine exits.
}

var _ bus.Bus = (*Peripheral)(nil)

// NewPeripheral creates a halted core with an empty block memory of
// bramSize bytes, decoded at the addresses of enc.
func NewPeripheral(enc cm.Encoder, bramSize uint32) (p *Peripheral) {
	p = &Peripheral{
		enc:    enc,
		memory: NewMemory(bramSize),
	}
	return
}

// Reset halts the core, clears its state and the block memory.
func (p *Peripheral) Reset() {
	p.halt()

	p.mu.Lock()
	defer p.mu.Unlock()

	p.core.Reset()
	p.trap = nil
	clear(p.memory)
}

// Close halts the core.
func (p *Peripheral) Close() error {
	p.halt()
	return nil
}

// Running reports whether the core is executing.
func (p *Peripheral) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Trap returns the error that halted the core, if any.
func (p *Peripheral) Trap() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.trap
}

// Retired is the number of instructions retired since reset.
func (p *Peripheral) Retired() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.core.Retired
}

// Wait blocks until the core halts, by a stop request or a trap.
func (p *Peripheral) Wait() {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Snapshot returns a copy of the core state.
func (p *Peripheral) Snapshot() (core Core) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.core
}

func (p *Peripheral) bramOffset(addr uint32) (offset uint32, ok bool) {
	offset = addr - p.enc.BramBase()
	ok = addr >= p.enc.BramBase() && offset < uint32(len(p.memory))
	return
}

func (p *Peripheral) ctrlRequest(addr uint32) (req cm.Request, ok bool) {
	ok = addr&^cm.USED_ADDR_MASK == p.enc.CtrlBase()
	req = cm.Request(addr & cm.USED_ADDR_MASK)
	return
}

func (p *Peripheral) Read32(addr uint32) (value uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if offset, ok := p.bramOffset(addr); ok {
		value, _ = p.memory.Load(cm.WordAddress(offset), 4)
		return
	}

	req, ok := p.ctrlRequest(addr)
	if !ok {
		log.Debugf("sim: read of unmapped 0x%08x", addr)
		return
	}

	switch req.Selector() {
	case cm.SUB_SEL_CTRL:
		switch req.SubAddr() {
		case cm.CTRL_REG_STATUS:
			if p.running {
				value |= STATUS_RUNNING
			}
			if p.trap != nil {
				value |= STATUS_TRAPPED
			}
		case cm.CTRL_REG_PC:
			value = p.core.PC
		}
	case cm.SUB_SEL_REGFILE:
		value = p.core.GetReg(uint32(req.SubAddr()) >> cm.REGISTER_SHIFT)
	}

	return
}

func (p *Peripheral) Write32(addr uint32, value uint32) {
	p.mu.Lock()
	wait := p.write32(addr, value)
	p.mu.Unlock()

	if wait != nil {
		<-wait
	}
}

// write32 handles a write with the lock held. A stop request returns the
// channel to wait on once the lock is released.
func (p *Peripheral) write32(addr uint32, value uint32) (wait chan struct{}) {
	if offset, ok := p.bramOffset(addr); ok {
		p.memory.Store(cm.WordAddress(offset), 4, value)
		return
	}

	req, ok := p.ctrlRequest(addr)
	if !ok {
		log.Debugf("sim: write of unmapped 0x%08x", addr)
		return
	}

	switch req.Selector() {
	case cm.SUB_SEL_CTRL:
		switch req.SubAddr() {
		case cm.CTRL_REG_START:
			p.start()
		case cm.CTRL_REG_STOP:
			wait = p.stop()
		case cm.CTRL_REG_STEP:
			p.step()
		case cm.CTRL_REG_PC:
			p.core.PC = value
		}
	case cm.SUB_SEL_REGFILE:
		p.core.SetReg(uint32(req.SubAddr())>>cm.REGISTER_SHIFT, value)
	}

	return
}

func (p *Peripheral) start() {
	if p.running {
		return
	}

	p.running = true
	p.trap = nil
	p.core.Verbose = p.Verbose
	p.done = make(chan struct{})
	go p.run(p.done)
}

func (p *Peripheral) stop() (wait chan struct{}) {
	if p.running {
		p.running = false
		wait = p.done
	}
	return
}

func (p *Peripheral) halt() {
	p.mu.Lock()
	wait := p.stop()
	p.mu.Unlock()

	if wait != nil {
		<-wait
	}
}

func (p *Peripheral) step() {
	if p.running {
		log.Debugf("sim: step ignored while running")
		return
	}

	p.core.Verbose = p.Verbose
	p.trap = nil
	if err := p.core.Step(p.memory); err != nil {
		p.trapped(err)
	}
}

func (p *Peripheral) trapped(err error) {
	p.trap = err
	var trap *ErrTrap
	if errors.As(err, &trap) {
		log.Warnf("sim: %v", trap)
	}
}

func (p *Peripheral) run(done chan struct{}) {
	defer close(done)

	for {
		p.mu.Lock()
		if !p.running || p.done != done {
			p.mu.Unlock()
			return
		}
		err := p.core.Step(p.memory)
		if err != nil {
			p.running = false
			p.trapped(err)
		}
		p.mu.Unlock()
	}
}
