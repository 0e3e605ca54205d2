// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package config

import (
	"net"

	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"

	"github.com/ezrec/rvcm/bus"
	"github.com/ezrec/rvcm/sim"
)

// Regions of the physical address space used by the control module.
func (cfg *Config) Regions() []bus.Region {
	return []bus.Region{
		{Base: cfg.CtrlBase, Size: 1 << 16},
		{Base: cfg.BramBase, Size: cfg.BramSize},
	}
}

// Open the configured bus backend. Close it with bus.Close when done.
func (cfg *Config) Open() (b bus.Bus, err error) {
	enc, err := cfg.Encoder()
	if err != nil {
		return
	}

	switch cfg.Backend {
	case BACKEND_SIM:
		b = sim.NewPeripheral(enc, cfg.BramSize)
	case BACKEND_MMAP:
		var mm *bus.Mmap
		mm, err = bus.OpenMmap(cfg.Device, cfg.Regions()...)
		if err != nil {
			return
		}
		b = mm
	case BACKEND_SERIAL:
		var ser *bus.Serial
		ser, err = bus.OpenSerial(cfg.SerialPort, cfg.Baud)
		if err != nil {
			return
		}
		b = ser
	case BACKEND_TCP:
		var conn net.Conn
		conn, err = net.Dial("tcp", cfg.Address)
		if err != nil {
			err = errors.Annotatef(err, "%s", cfg.Address)
			return
		}
		b = bus.NewSerial(conn)
	default:
		err = ErrBackend(cfg.Backend)
		return
	}

	log.WithField("backend", cfg.Backend).Debugf("bus open")

	if cfg.Trace {
		b = bus.NewTrace(b, log.StandardLogger().WithField("backend", cfg.Backend))
	}

	return
}
