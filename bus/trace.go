// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package bus

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// Trace logs every transaction of the wrapped bus at debug level.
type Trace struct {
	Bus
	Logger log.FieldLogger
}

var _ Bus = (*Trace)(nil)

// NewTrace wraps b. A nil logger uses the standard logrus logger.
func NewTrace(b Bus, logger log.FieldLogger) *Trace {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Trace{Bus: b, Logger: logger.WithField("bus", "trace")}
}

func (tr *Trace) Read32(addr uint32) (value uint32) {
	value = tr.Bus.Read32(addr)
	tr.Logger.Debugf("Read32(0x%08x) == 0x%08x", addr, value)
	return
}

func (tr *Trace) Write32(addr uint32, value uint32) {
	tr.Logger.Debugf("Write32(0x%08x, 0x%08x)", addr, value)
	tr.Bus.Write32(addr, value)
}

// Err passes through the wrapped bus' latched error.
func (tr *Trace) Err() error {
	return Err(tr.Bus)
}

// Close closes the wrapped bus.
func (tr *Trace) Close() error {
	return Close(tr.Bus)
}

var _ io.Closer = (*Trace)(nil)
