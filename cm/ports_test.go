package cm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/rvcm/bus"
)

func testModule(t *testing.T) (*Module, *bus.Memory) {
	t.Helper()
	mem := bus.NewMemory()
	return NewModule(mem, testEncoder(t)), mem
}

func TestRegFile_RoundTrip(t *testing.T) {
	assert := assert.New(t)
	mod, mem := testModule(t)

	for reg := Register(1); reg < REGISTER_COUNT; reg++ {
		mod.RegFile.Write(reg, 0x1000+uint32(reg))
	}
	for reg := Register(1); reg < REGISTER_COUNT; reg++ {
		assert.Equal(0x1000+uint32(reg), mod.RegFile.Read(reg), reg.String())
	}

	assert.Equal(uint32(0x1005), mem.Data[0x43c0_0214])
}

func TestRegFile_X0(t *testing.T) {
	assert := assert.New(t)
	mod, mem := testModule(t)

	for _, value := range []uint32{0, 1, 0xffffffff} {
		mod.RegFile.Write(X0, value)
		// x32 aliases x0 after masking.
		mod.RegFile.Write(Register(32), value)
	}

	assert.Empty(mem.Log)
	assert.Equal(uint32(0), mod.RegFile.Read(X0))
}

func TestRegFile_Dump(t *testing.T) {
	assert := assert.New(t)
	mod, mem := testModule(t)

	mod.RegFile.Write(5, 171)
	mem.Reset()

	regs := mod.RegFile.Dump()
	assert.Equal(uint32(171), regs[5])
	assert.Equal(uint32(0), regs[6])
	assert.Len(mem.Log, REGISTER_COUNT)
	assert.Equal(uint32(0x43c0_0200), mem.Log[0].Addr)
	assert.Equal(uint32(0x43c0_027c), mem.Log[31].Addr)
}

func TestControl_Transactions(t *testing.T) {
	assert := assert.New(t)
	mod, mem := testModule(t)

	mod.Control.Stop()
	mod.Control.SetPC(0x40)
	pc := mod.Control.PC()
	mod.Control.Start()
	mod.Control.Step()
	status := mod.Control.Status()

	assert.Equal(uint32(0x40), pc)
	assert.Equal(uint32(0), status)
	assert.False(mod.Control.Running())

	assert.Equal([]bus.Transaction{
		{Write: true, Addr: 0x43c0_0108, Value: STROBE},
		{Write: true, Addr: 0x43c0_0110, Value: 0x40},
		{Addr: 0x43c0_0110, Value: 0x40},
		{Write: true, Addr: 0x43c0_0104, Value: STROBE},
		{Write: true, Addr: 0x43c0_010c, Value: STROBE},
		{Addr: 0x43c0_0100, Value: 0},
		{Addr: 0x43c0_0100, Value: 0},
	}, mem.Log)
}

func TestControl_StrobeNonZero(t *testing.T) {
	assert.NotZero(t, STROBE)
}

func TestBram_Words(t *testing.T) {
	assert := assert.New(t)
	mod, mem := testModule(t)

	mod.Bram.WriteWord(12, 0x000000ef)
	assert.Equal(uint32(0x000000ef), mem.Data[0x4000_000c])
	assert.Equal(uint32(0x000000ef), mod.Bram.ReadWord(12))

	mod.Bram.WriteWords(0x20, []uint32{1, 2, 3})
	assert.Equal([]uint32{1, 2, 3}, mod.Bram.ReadWords(0x20, 3))
	assert.Equal(uint32(2), mem.Data[0x4000_0024])
	assert.Empty(mod.Bram.ReadWords(0, 0))
}

func TestByteLanes(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		byteAddr uint32
		word     uint32
		lane     uint
	}{
		{0, 0, 0},
		{1, 0, 1},
		{5, 4, 1},
		{8, 8, 0},
		{15, 12, 3},
	}
	for _, entry := range table {
		assert.Equal(entry.word, WordAddress(entry.byteAddr), entry.byteAddr)
		assert.Equal(entry.lane, ByteLane(entry.byteAddr), entry.byteAddr)
	}

	word := uint32(0x0000cdab)
	assert.Equal(uint8(0xab), ExtractByte(word, 0))
	assert.Equal(uint8(0xcd), ExtractByte(word, 1))
	assert.Equal(uint8(0x00), ExtractByte(word, 2))
	assert.Equal(uint8(0xab), ExtractByte(0x0000ab00, 5))

	assert.Equal(uint32(0x0000ab00), InsertByte(0, 5, 0xab))
	assert.Equal(uint32(0x12ff5678), InsertByte(0x12345678, 2, 0xff))
	assert.Equal(uint32(0xef345678), InsertByte(0x12345678, 3, 0xef))
}

func TestModule_Defines(t *testing.T) {
	mod, _ := testModule(t)

	count := 0
	for range mod.Defines() {
		count++
	}
	assert.Greater(t, count, 20)
}
