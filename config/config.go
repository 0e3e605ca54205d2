// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package config holds the board description: which bus backend reaches
// the control module, where the control module and block memory are
// mapped, and how long to let the core settle after starting it.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/juju/errors"
	"gopkg.in/yaml.v2"

	"github.com/ezrec/rvcm/cm"
)

// Bus backends.
const (
	BACKEND_SIM    = "sim"    // In-process simulated core.
	BACKEND_MMAP   = "mmap"   // Physical memory through Device.
	BACKEND_SERIAL = "serial" // Serial bridge on SerialPort.
	BACKEND_TCP    = "tcp"    // Serial bridge protocol over TCP to Address.
)

// Zynq design defaults.
const (
	DEFAULT_CTRL_BASE = 0x43c0_0000
	DEFAULT_BRAM_BASE = 0x4000_0000
	DEFAULT_BRAM_SIZE = 8192
	DEFAULT_BAUD      = 115200
	DEFAULT_SETTLE    = 5 * time.Millisecond
)

// Config describes how to reach one control module.
type Config struct {
	Backend    string        `yaml:"backend"`
	CtrlBase   uint32        `yaml:"ctrl_base"`
	BramBase   uint32        `yaml:"bram_base"`
	BramSize   uint32        `yaml:"bram_size"`
	Device     string        `yaml:"device"`
	SerialPort string        `yaml:"serial_port"`
	Baud       uint          `yaml:"baud"`
	Address    string        `yaml:"address"`
	Settle     time.Duration `yaml:"settle"`
	Trace      bool          `yaml:"trace"`
}

// Default configuration: the simulator at the Zynq design addresses.
func Default() Config {
	return Config{
		Backend:  BACKEND_SIM,
		CtrlBase: DEFAULT_CTRL_BASE,
		BramBase: DEFAULT_BRAM_BASE,
		BramSize: DEFAULT_BRAM_SIZE,
		Device:   "/dev/mem",
		Baud:     DEFAULT_BAUD,
		Settle:   DEFAULT_SETTLE,
	}
}

// Parse YAML over the defaults. The result is not validated, as command
// line settings may still complete it.
func Parse(data []byte) (cfg Config, err error) {
	cfg = Default()
	err = yaml.UnmarshalStrict(data, &cfg)
	if err != nil {
		err = errors.Annotate(err, "config")
	}
	return
}

// Load a YAML file over the defaults.
func Load(path string) (cfg Config, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		err = errors.Trace(err)
		return
	}

	cfg, err = Parse(data)
	if err != nil {
		err = errors.Annotatef(err, "%s", path)
	}
	return
}

// Validate checks the configuration is usable.
func (cfg *Config) Validate() (err error) {
	switch cfg.Backend {
	case BACKEND_SIM, BACKEND_MMAP:
	case BACKEND_SERIAL:
		if cfg.SerialPort == "" {
			return ErrSettingMissing("serial_port")
		}
	case BACKEND_TCP:
		if cfg.Address == "" {
			return ErrSettingMissing("address")
		}
	default:
		return ErrBackend(cfg.Backend)
	}

	if cfg.BramSize == 0 {
		return ErrSettingMissing("bram_size")
	}

	_, err = cfg.Encoder()
	return
}

// Encoder for the configured addresses.
func (cfg *Config) Encoder() (enc cm.Encoder, err error) {
	return cm.NewEncoder(cfg.CtrlBase, cfg.BramBase)
}

// Set a setting by its command line name.
func (cfg *Config) Set(name string, value string) (err error) {
	defer func() {
		if err != nil {
			err = &ErrSetting{Name: name, Value: value, Err: err}
		}
	}()

	switch name {
	case "backend":
		cfg.Backend = value
	case "ctrl-base":
		cfg.CtrlBase, err = parseUint32(value)
	case "bram-base":
		cfg.BramBase, err = parseUint32(value)
	case "bram-size":
		cfg.BramSize, err = parseUint32(value)
	case "device":
		cfg.Device = value
	case "serial-port":
		cfg.SerialPort = value
	case "baud":
		var baud uint64
		baud, err = strconv.ParseUint(value, 10, 32)
		cfg.Baud = uint(baud)
	case "address":
		cfg.Address = value
	case "settle":
		cfg.Settle, err = time.ParseDuration(value)
	case "trace":
		cfg.Trace, err = strconv.ParseBool(value)
	default:
		err = ErrSettingUnknown
	}

	return
}

func parseUint32(text string) (value uint32, err error) {
	v, err := strconv.ParseUint(text, 0, 32)
	value = uint32(v)
	return
}
