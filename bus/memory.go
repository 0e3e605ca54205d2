// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package bus

// Transaction is one recorded bus access.
type Transaction struct {
	Write bool
	Addr  uint32
	Value uint32
}

// Memory is a sparse word store. Unwritten words read as zero.
// Every transaction is appended to Log.
type Memory struct {
	Data map[uint32]uint32
	Log  []Transaction
}

var _ Bus = (*Memory)(nil)

// NewMemory creates an empty store.
func NewMemory() (mem *Memory) {
	mem = &Memory{
		Data: make(map[uint32]uint32),
	}
	return
}

func (mem *Memory) Read32(addr uint32) (value uint32) {
	value = mem.Data[addr]
	mem.Log = append(mem.Log, Transaction{Addr: addr, Value: value})
	return
}

func (mem *Memory) Write32(addr uint32, value uint32) {
	if mem.Data == nil {
		mem.Data = make(map[uint32]uint32)
	}
	mem.Data[addr] = value
	mem.Log = append(mem.Log, Transaction{Write: true, Addr: addr, Value: value})
}

// Reset clears the transaction log, keeping the data.
func (mem *Memory) Reset() {
	mem.Log = nil
}
