// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package sim

// RV32I major opcodes.
const (
	OP_LOAD     = 0x03
	OP_MISC_MEM = 0x0f
	OP_OP_IMM   = 0x13
	OP_AUIPC    = 0x17
	OP_STORE    = 0x23
	OP_OP       = 0x33
	OP_LUI      = 0x37
	OP_BRANCH   = 0x63
	OP_JALR     = 0x67
	OP_JAL      = 0x6f
	OP_SYSTEM   = 0x73
)

// Inst is one 32-bit instruction word.
type Inst uint32

func (inst Inst) opcode() uint32 { return uint32(inst) & 0x7f }
func (inst Inst) rd() uint32     { return (uint32(inst) >> 7) & 0x1f }
func (inst Inst) funct3() uint32 { return (uint32(inst) >> 12) & 0x7 }
func (inst Inst) rs1() uint32    { return (uint32(inst) >> 15) & 0x1f }
func (inst Inst) rs2() uint32    { return (uint32(inst) >> 20) & 0x1f }
func (inst Inst) funct7() uint32 { return uint32(inst) >> 25 }

func signExtend(value uint32, bits uint) uint32 {
	shift := 32 - bits
	return uint32(int32(value<<shift) >> shift)
}

func (inst Inst) immI() uint32 {
	return signExtend(uint32(inst)>>20, 12)
}

func (inst Inst) immS() uint32 {
	word := uint32(inst)
	return signExtend((word>>25)<<5|(word>>7)&0x1f, 12)
}

func (inst Inst) immB() uint32 {
	word := uint32(inst)
	imm := (word>>31)&1<<12 |
		(word>>7)&1<<11 |
		(word>>25)&0x3f<<5 |
		(word>>8)&0xf<<1
	return signExtend(imm, 13)
}

func (inst Inst) immU() uint32 {
	return uint32(inst) & 0xfffff000
}

func (inst Inst) immJ() uint32 {
	word := uint32(inst)
	imm := (word>>31)&1<<20 |
		(word>>12)&0xff<<12 |
		(word>>20)&1<<11 |
		(word>>21)&0x3ff<<1
	return signExtend(imm, 21)
}
