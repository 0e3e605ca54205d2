// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// ENV_PREFIX prefixes the environment variables backing unset flags.
const ENV_PREFIX = "RVCM_"

// envRejected annotates a flag whose environment value did not parse.
const envRejected = "rvcm_env_rejected"

// SETTINGS are the flag names understood by Config.Set.
var SETTINGS = []string{
	"backend",
	"ctrl-base",
	"bram-base",
	"bram-size",
	"device",
	"serial-port",
	"baud",
	"address",
	"settle",
	"trace",
}

// RegisterFlags adds the configuration flags to fs, with the defaults as
// their default values.
func RegisterFlags(fs *pflag.FlagSet) {
	def := Default()

	fs.String("config", "", "YAML board configuration file")
	fs.String("backend", def.Backend, "bus backend: sim, mmap, serial or tcp")
	fs.String("ctrl-base", fmt.Sprintf("0x%08x", def.CtrlBase), "control module base address")
	fs.String("bram-base", fmt.Sprintf("0x%08x", def.BramBase), "block memory base address")
	fs.String("bram-size", fmt.Sprintf("%d", def.BramSize), "block memory size in bytes")
	fs.String("device", def.Device, "physical memory device for the mmap backend")
	fs.String("serial-port", def.SerialPort, "serial port of the bridge")
	fs.Uint("baud", def.Baud, "serial bridge baud rate")
	fs.String("address", def.Address, "host:port of a TCP bridge")
	fs.Duration("settle", def.Settle, "delay after starting or stepping the core")
	fs.Bool("trace", def.Trace, "log every bus transaction")
}

// ApplyEnv sets every flag of fs not given on the command line from the
// environment variable named by prefix and the upper-cased flag name,
// with dashes turned into underscores.
func ApplyEnv(fs *pflag.FlagSet, prefix string) {
	nonset := make(map[string]*pflag.Flag)
	fs.VisitAll(func(fl *pflag.Flag) {
		nonset[fl.Name] = fl
	})
	fs.Visit(func(fl *pflag.Flag) {
		delete(nonset, fl.Name)
	})

	for name, fl := range nonset {
		env := EnvName(prefix, name)
		value := os.Getenv(env)
		if value == "" {
			continue
		}
		if _, rejected := fl.Annotations[envRejected]; rejected {
			continue
		}
		if err := fs.Set(name, value); err != nil {
			log.Warnf("%s='%s' ignored: %v", env, value, err)
			fs.SetAnnotation(name, envRejected, []string{value})
			continue
		}
		fl.Changed = true
	}
}

// EnvName of the environment variable for a flag.
func EnvName(prefix string, flagName string) string {
	return prefix + strings.ReplaceAll(strings.ToUpper(flagName), "-", "_")
}

// Resolve builds the configuration from the defaults, the --config file
// and every flag set on the command line or through the environment, in
// that order of precedence.
func Resolve(fs *pflag.FlagSet, prefix string) (cfg Config, err error) {
	ApplyEnv(fs, prefix)

	cfg = Default()
	if fl := fs.Lookup("config"); fl != nil && fl.Value.String() != "" {
		cfg, err = Load(fl.Value.String())
		if err != nil {
			return
		}
	}

	fs.Visit(func(fl *pflag.Flag) {
		if err != nil || fl.Name == "config" {
			return
		}
		if !slices.Contains(SETTINGS, fl.Name) {
			return
		}
		err = cfg.Set(fl.Name, fl.Value.String())
	})
	if err != nil {
		return
	}

	err = cfg.Validate()
	return
}
