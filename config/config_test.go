package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/rvcm/bus"
	"github.com/ezrec/rvcm/cm"
	"github.com/ezrec/rvcm/sim"
)

func TestDefault(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	assert.NoError(cfg.Validate())
	assert.Equal(BACKEND_SIM, cfg.Backend)
	assert.Equal(uint32(0x43c00000), cfg.CtrlBase)
	assert.Equal(uint32(0x40000000), cfg.BramBase)
	assert.Equal(uint32(8192), cfg.BramSize)
	assert.Equal(5*time.Millisecond, cfg.Settle)
}

func TestParse(t *testing.T) {
	assert := assert.New(t)

	text := `
backend: serial
ctrl_base: 0x80000000
bram_base: 0x90000000
bram_size: 4096
serial_port: /dev/ttyUSB1
baud: 9600
settle: 20ms
trace: true
`
	cfg, err := Parse([]byte(text))
	assert.NoError(err)
	assert.NoError(cfg.Validate())
	assert.Equal(Config{
		Backend:    BACKEND_SERIAL,
		CtrlBase:   0x80000000,
		BramBase:   0x90000000,
		BramSize:   4096,
		Device:     "/dev/mem",
		SerialPort: "/dev/ttyUSB1",
		Baud:       9600,
		Settle:     20 * time.Millisecond,
		Trace:      true,
	}, cfg)

	_, err = Parse([]byte("unknown_key: 1\n"))
	assert.Error(err)
}

func TestValidate(t *testing.T) {
	table := [](struct {
		name   string
		modify func(cfg *Config)
		err    error
	}){
		{"default", func(cfg *Config) {}, nil},
		{"mmap", func(cfg *Config) { cfg.Backend = BACKEND_MMAP }, nil},
		{"backend", func(cfg *Config) { cfg.Backend = "jtag" }, ErrBackend("jtag")},
		{"serial", func(cfg *Config) { cfg.Backend = BACKEND_SERIAL }, ErrSettingMissing("serial_port")},
		{"tcp", func(cfg *Config) { cfg.Backend = BACKEND_TCP }, ErrSettingMissing("address")},
		{"bram_size", func(cfg *Config) { cfg.BramSize = 0 }, ErrSettingMissing("bram_size")},
		{"overlap", func(cfg *Config) { cfg.CtrlBase = 0x43c01000 }, cm.ErrBaseOverlap(0x43c01000)},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)
			cfg := Default()
			entry.modify(&cfg)
			err := cfg.Validate()
			if entry.err == nil {
				assert.NoError(err)
			} else {
				assert.ErrorIs(err, entry.err)
			}
		})
	}
}

func TestSet(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	assert.NoError(cfg.Set("ctrl-base", "0x10000000"))
	assert.NoError(cfg.Set("bram-size", "1024"))
	assert.NoError(cfg.Set("settle", "1s"))
	assert.NoError(cfg.Set("trace", "true"))
	assert.NoError(cfg.Set("baud", "57600"))
	assert.Equal(uint32(0x10000000), cfg.CtrlBase)
	assert.Equal(uint32(1024), cfg.BramSize)
	assert.Equal(time.Second, cfg.Settle)
	assert.True(cfg.Trace)
	assert.Equal(uint(57600), cfg.Baud)

	err := cfg.Set("ctrl-base", "nope")
	assert.Error(err)
	var setting *ErrSetting
	assert.ErrorAs(err, &setting)
	assert.Equal("ctrl-base", setting.Name)

	assert.ErrorIs(cfg.Set("colour", "blue"), ErrSettingUnknown)
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: mmap\ndevice: /dev/uio0\n"), 0o644))

	cfg, err := Load(path)
	assert.NoError(err)
	assert.Equal(BACKEND_MMAP, cfg.Backend)
	assert.Equal("/dev/uio0", cfg.Device)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(err)
}

func TestResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: tcp\naddress: localhost:1\nbram_size: 2048\n"), 0o644))

	table := [](struct {
		name  string
		args  []string
		env   map[string]string
		check func(assert *assert.Assertions, cfg Config)
	}){
		{"defaults", nil, nil, func(assert *assert.Assertions, cfg Config) {
			assert.Equal(Default(), cfg)
		}},
		{"flags", []string{"--backend=mmap", "--bram-base=0x50000000"}, nil, func(assert *assert.Assertions, cfg Config) {
			assert.Equal(BACKEND_MMAP, cfg.Backend)
			assert.Equal(uint32(0x50000000), cfg.BramBase)
		}},
		{"file", []string{"--config", path}, nil, func(assert *assert.Assertions, cfg Config) {
			assert.Equal(BACKEND_TCP, cfg.Backend)
			assert.Equal(uint32(2048), cfg.BramSize)
		}},
		{"flag-over-file", []string{"--config", path, "--bram-size=512"}, nil, func(assert *assert.Assertions, cfg Config) {
			assert.Equal(BACKEND_TCP, cfg.Backend)
			assert.Equal(uint32(512), cfg.BramSize)
		}},
		{"env", nil, map[string]string{"RVCM_SETTLE": "25ms", "RVCM_CTRL_BASE": "0x43c10000"}, func(assert *assert.Assertions, cfg Config) {
			assert.Equal(25*time.Millisecond, cfg.Settle)
			assert.Equal(uint32(0x43c10000), cfg.CtrlBase)
		}},
		{"flag-over-env", []string{"--settle=1ms"}, map[string]string{"RVCM_SETTLE": "25ms"}, func(assert *assert.Assertions, cfg Config) {
			assert.Equal(time.Millisecond, cfg.Settle)
		}},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)
			for key, value := range entry.env {
				t.Setenv(key, value)
			}

			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			RegisterFlags(fs)
			require.NoError(t, fs.Parse(entry.args))

			cfg, err := Resolve(fs, ENV_PREFIX)
			require.NoError(t, err)
			entry.check(assert, cfg)
		})
	}
}

func TestApplyEnv_Invalid(t *testing.T) {
	assert := assert.New(t)

	hook := test.NewGlobal()
	t.Cleanup(func() {
		log.StandardLogger().ReplaceHooks(make(log.LevelHooks))
	})
	t.Setenv("RVCM_SETTLE", "abc")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(nil))

	ApplyEnv(fs, ENV_PREFIX)
	ApplyEnv(fs, ENV_PREFIX)

	assert.False(fs.Lookup("settle").Changed)
	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(log.WarnLevel, entry.Level)
	assert.Contains(entry.Message, "RVCM_SETTLE='abc'")

	cfg, err := Resolve(fs, ENV_PREFIX)
	assert.NoError(err)
	assert.Equal(DEFAULT_SETTLE, cfg.Settle)
}

func TestEnvName(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("RVCM_SERIAL_PORT", EnvName(ENV_PREFIX, "serial-port"))
	assert.Equal("RVCM_TRACE", EnvName(ENV_PREFIX, "trace"))
}

func TestOpen(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	cfg.Trace = true
	b, err := cfg.Open()
	require.NoError(t, err)
	defer bus.Close(b)

	trace, ok := b.(*bus.Trace)
	require.True(t, ok)
	_, ok = trace.Bus.(*sim.Peripheral)
	assert.True(ok)

	cfg.Backend = "jtag"
	_, err = cfg.Open()
	assert.ErrorIs(err, ErrBackend("jtag"))

	cfg = Default()
	cfg.Backend = BACKEND_TCP
	cfg.Address = "127.0.0.1:1"
	_, err = cfg.Open()
	assert.Error(err)
}

func TestRegions(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	assert.Equal([]bus.Region{
		{Base: 0x43c00000, Size: 0x10000},
		{Base: 0x40000000, Size: 8192},
	}, cfg.Regions())
}
