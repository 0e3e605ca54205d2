package main

import (
	"bytes"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/rvcm/bus"
	"github.com/ezrec/rvcm/cm"
	"github.com/ezrec/rvcm/config"
	"github.com/ezrec/rvcm/sim"
)

func resetFlags(cmd *cobra.Command) {
	reset := func(fl *pflag.Flag) {
		fl.Value.Set(fl.DefValue)
		fl.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVerify(t *testing.T) {
	table := [](struct {
		name string
		args []string
	}){
		{"run", []string{"verify", "--settle=20ms"}},
		{"step", []string{"verify", "--step", "--settle=0s"}},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)
			out, err := run(t, entry.args...)
			require.NoError(t, err, out)
			assert.Contains(out, "[PASS] Reg x5 = 0x000000AB\n")
			assert.Contains(out, "[PASS] Mem[0x05] = 0xAB\n")
			assert.Contains(out, "[PASS] Mem[0x0C] = 0x000000EF\n")
			assert.True(strings.HasSuffix(out, "8 passed, 0 failed\n"), out)
		})
	}
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	out, err := run(t, "defines", "--ctrl-base=0x80000000")
	require.NoError(t, err)
	assert.Contains(out, "CM_ADDR_STOP=0x80000108\n")
	assert.Contains(out, "CM_BRAM_BASE=0x40000000\n")
	assert.Contains(out, "CM_CTRL_REG_PC=0x10\n")
}

func TestRegs(t *testing.T) {
	assert := assert.New(t)

	out, err := run(t, "regs")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(lines, cm.REGISTER_COUNT+1)
	assert.Equal("x0  zero 0x00000000", lines[0])
	assert.Equal("x5  t0   0x00000000", lines[5])
}

func TestArgs(t *testing.T) {
	table := [](struct {
		name string
		args []string
	}){
		{"reg-name", []string{"reg", "x99"}},
		{"reg-value", []string{"reg", "x1", "banana"}},
		{"pc-value", []string{"pc", "0x100000000"}},
		{"step-count", []string{"step", "-1"}},
		{"backend", []string{"pc", "--backend=jtag"}},
		{"serve-endpoint", []string{"serve"}},
		{"load-missing", []string{"load", "/nonexistent/program.hex"}},
		{"mem-byte-value", []string{"mem", "0", "0x100", "--byte"}},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			_, err := run(t, entry.args...)
			assert.Error(t, err)
		})
	}
}

func TestTraceLogging(t *testing.T) {
	table := [](struct {
		name  string
		args  []string
		env   map[string]string
		level log.Level
		trace bool
	}){
		{"default", []string{"pc"}, nil, log.InfoLevel, false},
		{"trace-flag", []string{"--trace", "pc"}, nil, log.DebugLevel, true},
		{"trace-env", []string{"pc"}, map[string]string{"RVCM_TRACE": "true"}, log.DebugLevel, true},
		{"verbose-env", []string{"pc"}, map[string]string{"RVCM_VERBOSE": "true"}, log.DebugLevel, false},
		{"debug-env", []string{"pc"}, map[string]string{"RVCM_DEBUG": "true"}, log.TraceLevel, true},
	}

	level := log.GetLevel()
	hook := test.NewGlobal()
	t.Cleanup(func() {
		log.SetLevel(level)
		log.StandardLogger().ReplaceHooks(make(log.LevelHooks))
	})

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)
			for key, value := range entry.env {
				t.Setenv(key, value)
			}
			log.SetLevel(log.InfoLevel)
			hook.Reset()

			_, err := run(t, entry.args...)
			require.NoError(t, err)

			assert.Equal(entry.level, log.GetLevel())

			traced := false
			for _, logged := range hook.AllEntries() {
				if logged.Message == "Read32(0x43c00110) == 0x00000000" {
					traced = true
					assert.Equal("trace", logged.Data["bus"])
				}
			}
			assert.Equal(entry.trace, traced)
		})
	}
}

func freeAddress(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func TestServeTCP(t *testing.T) {
	assert := assert.New(t)

	cfg := config.Default()
	enc, err := cfg.Encoder()
	require.NoError(t, err)
	p := sim.NewPeripheral(enc, cfg.BramSize)
	defer p.Close()

	addr := freeAddress(t)
	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() {
		served <- serveTCP(ctx, addr, bus.NewLocked(p))
	}()

	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", addr)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}, 5*time.Second, 10*time.Millisecond)

	tcp := []string{"--backend=tcp", "--address=" + addr}

	out, err := run(t, append(tcp, "verify", "--step", "--settle=0s")...)
	require.NoError(t, err, out)

	// The core state outlives each client invocation.
	out, err = run(t, append(tcp, "pc")...)
	require.NoError(t, err)
	assert.Equal("0x00000020\n", out)

	_, err = run(t, append(tcp, "reg", "t2", "0x1234")...)
	require.NoError(t, err)
	out, err = run(t, append(tcp, "reg", "x7")...)
	require.NoError(t, err)
	assert.Equal("0x00001234\n", out)

	out, err = run(t, append(tcp, "mem", "4", "--byte")...)
	require.NoError(t, err)
	assert.Equal("0x0004: 0x13\n", out)

	cancel()
	select {
	case err = <-served:
		assert.NoError(err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}
