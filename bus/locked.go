// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package bus

import (
	"sync"
)

// Locked serialises transactions on the wrapped bus.
// The control module provides no arbitration of its own; share a Locked
// bus between goroutines instead of the raw backend.
type Locked struct {
	mu  sync.Mutex
	bus Bus
}

var _ Bus = (*Locked)(nil)

// NewLocked wraps b.
func NewLocked(b Bus) *Locked {
	return &Locked{bus: b}
}

func (lk *Locked) Read32(addr uint32) uint32 {
	lk.mu.Lock()
	defer lk.mu.Unlock()
	return lk.bus.Read32(addr)
}

func (lk *Locked) Write32(addr uint32, value uint32) {
	lk.mu.Lock()
	defer lk.mu.Unlock()
	lk.bus.Write32(addr, value)
}

// Do runs fn with exclusive access to the wrapped bus, so a sequence of
// transactions is not interleaved with other users.
func (lk *Locked) Do(fn func(b Bus)) {
	lk.mu.Lock()
	defer lk.mu.Unlock()
	fn(lk.bus)
}

func (lk *Locked) Err() error {
	lk.mu.Lock()
	defer lk.mu.Unlock()
	return Err(lk.bus)
}

func (lk *Locked) Close() error {
	lk.mu.Lock()
	defer lk.mu.Unlock()
	return Close(lk.bus)
}
