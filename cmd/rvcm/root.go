// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezrec/rvcm/bus"
	"github.com/ezrec/rvcm/cm"
	"github.com/ezrec/rvcm/config"
	"github.com/ezrec/rvcm/harness"
)

var rootCmd = &cobra.Command{
	Use:           "rvcm",
	Short:         "Control module client for a RISC-V soft core.",
	Long:          "Halt, start, step, inspect and verify a RISC-V soft core through its memory mapped control module.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// The level flags have environment fallbacks too.
		config.ApplyEnv(cmd.Flags(), config.ENV_PREFIX)
		switch {
		case getFlag(cmd, "debug"):
			log.SetLevel(log.TraceLevel)
		case getFlag(cmd, "verbose"):
			log.SetLevel(log.DebugLevel)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if getFlag(cmd, "version") {
			version := "(unknown version)"
			if info, ok := debug.ReadBuildInfo(); ok {
				version = info.Main.Version
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rvcm %s\n", version)
			return nil
		}
		return cmd.Help()
	},
}

func init() {
	rootCmd.Flags().Bool("version", false, "report version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().Bool("debug", false, "log every bus transaction")
	config.RegisterFlags(rootCmd.PersistentFlags())
}

func getFlag(cmd *cobra.Command, name string) bool {
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		log.Fatal(err)
	}
	return value
}

// board is an opened control module.
type board struct {
	Config  config.Config
	Bus     bus.Bus
	Module  *cm.Module
	Harness *harness.Harness
}

// openBoard resolves the configuration of cmd and opens its bus.
func openBoard(cmd *cobra.Command) (bd *board, err error) {
	cfg, err := config.Resolve(cmd.Flags(), config.ENV_PREFIX)
	if err != nil {
		return
	}
	if getFlag(cmd, "debug") {
		cfg.Trace = true
	}
	if cfg.Trace && !log.IsLevelEnabled(log.DebugLevel) {
		// Transactions are traced at debug level.
		log.SetLevel(log.DebugLevel)
	}

	enc, err := cfg.Encoder()
	if err != nil {
		return
	}

	b, err := cfg.Open()
	if err != nil {
		return
	}

	mod := cm.NewModule(b, enc)
	bd = &board{
		Config:  cfg,
		Bus:     b,
		Module:  mod,
		Harness: harness.New(mod, cfg.Settle),
	}

	return
}

// Close reports any latched transport error, then closes the bus.
func (bd *board) Close() (err error) {
	err = bus.Err(bd.Bus)
	cerr := bus.Close(bd.Bus)
	if err == nil && cerr != nil {
		err = errors.Trace(cerr)
	}
	return
}

// withBoard runs fn on an opened board, cancelled by an interrupt.
func withBoard(cmd *cobra.Command, fn func(ctx context.Context, bd *board) error) (err error) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	bd, err := openBoard(cmd)
	if err != nil {
		return
	}
	defer func() {
		cerr := bd.Close()
		if err == nil {
			err = cerr
		}
	}()

	err = fn(ctx, bd)
	return
}

// Execute runs the root command, logging any error.
func Execute() (err error) {
	err = rootCmd.Execute()
	if err != nil {
		log.Error(err)
	}
	return
}
