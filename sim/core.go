// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package sim

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Core is the architectural state of the simulated RV32I hart.
type Core struct {
	Verbose bool // If set, logs every retired instruction.

	Reg     [32]uint32 // x0 to x31. x0 always reads as zero.
	PC      uint32     // Address of the next instruction.
	Retired int        // Instructions retired since reset.
}

// Reset clears the registers, PC and counters.
func (core *Core) Reset() {
	clear(core.Reg[:])
	core.PC = 0
	core.Retired = 0
}

// SetReg writes a register; x0 is left alone.
func (core *Core) SetReg(index uint32, value uint32) {
	if index&0x1f != 0 {
		core.Reg[index&0x1f] = value
	}
}

// GetReg reads a register.
func (core *Core) GetReg(index uint32) uint32 {
	if index&0x1f == 0 {
		return 0
	}
	return core.Reg[index&0x1f]
}

// String returns the core state as a string.
func (core *Core) String() (text string) {
	text = fmt.Sprintf("   pc: %08X\n", core.PC)
	for n := 1; n < len(core.Reg); n++ {
		text += fmt.Sprintf("% 5s: %04X_%04X\n", fmt.Sprintf("x%d", n), core.Reg[n]>>16, core.Reg[n]&0xffff)
	}
	return
}

// Step fetches and retires one instruction from mem.
// On error the state is unchanged and the PC still points at the
// offending instruction.
func (core *Core) Step(mem Memory) (err error) {
	word, err := mem.Load(core.PC, 4)
	if err != nil {
		return &ErrTrap{PC: core.PC, Err: err}
	}

	inst := Inst(word)
	next := core.PC + 4

	if core.Verbose {
		log.Debugf("sim: pc=%08x inst=%08x", core.PC, word)
	}

	err = core.execute(mem, inst, &next)
	if err != nil {
		return &ErrTrap{PC: core.PC, Err: err}
	}

	core.PC = next
	core.Retired++
	return
}

func (core *Core) execute(mem Memory, inst Inst, next *uint32) (err error) {
	rs1 := core.GetReg(inst.rs1())
	rs2 := core.GetReg(inst.rs2())
	rd := inst.rd()

	switch inst.opcode() {
	case OP_LUI:
		core.SetReg(rd, inst.immU())
	case OP_AUIPC:
		core.SetReg(rd, core.PC+inst.immU())
	case OP_JAL:
		core.SetReg(rd, core.PC+4)
		*next = core.PC + inst.immJ()
	case OP_JALR:
		if inst.funct3() != 0 {
			return ErrIllegal(inst)
		}
		target := (rs1 + inst.immI()) &^ 1
		core.SetReg(rd, core.PC+4)
		*next = target
	case OP_BRANCH:
		var taken bool
		switch inst.funct3() {
		case 0x0: // beq
			taken = rs1 == rs2
		case 0x1: // bne
			taken = rs1 != rs2
		case 0x4: // blt
			taken = int32(rs1) < int32(rs2)
		case 0x5: // bge
			taken = int32(rs1) >= int32(rs2)
		case 0x6: // bltu
			taken = rs1 < rs2
		case 0x7: // bgeu
			taken = rs1 >= rs2
		default:
			return ErrIllegal(inst)
		}
		if taken {
			*next = core.PC + inst.immB()
		}
	case OP_LOAD:
		addr := rs1 + inst.immI()
		var value uint32
		switch inst.funct3() {
		case 0x0: // lb
			value, err = mem.Load(addr, 1)
			value = signExtend(value, 8)
		case 0x1: // lh
			value, err = mem.Load(addr, 2)
			value = signExtend(value, 16)
		case 0x2: // lw
			value, err = mem.Load(addr, 4)
		case 0x4: // lbu
			value, err = mem.Load(addr, 1)
		case 0x5: // lhu
			value, err = mem.Load(addr, 2)
		default:
			return ErrIllegal(inst)
		}
		if err != nil {
			return
		}
		core.SetReg(rd, value)
	case OP_STORE:
		addr := rs1 + inst.immS()
		switch inst.funct3() {
		case 0x0: // sb
			err = mem.Store(addr, 1, rs2)
		case 0x1: // sh
			err = mem.Store(addr, 2, rs2)
		case 0x2: // sw
			err = mem.Store(addr, 4, rs2)
		default:
			return ErrIllegal(inst)
		}
	case OP_OP_IMM:
		imm := inst.immI()
		shamt := imm & 0x1f
		var value uint32
		switch inst.funct3() {
		case 0x0: // addi
			value = rs1 + imm
		case 0x1: // slli
			if inst.funct7() != 0 {
				return ErrIllegal(inst)
			}
			value = rs1 << shamt
		case 0x2: // slti
			value = boolValue(int32(rs1) < int32(imm))
		case 0x3: // sltiu
			value = boolValue(rs1 < imm)
		case 0x4: // xori
			value = rs1 ^ imm
		case 0x5: // srli, srai
			switch inst.funct7() {
			case 0x00:
				value = rs1 >> shamt
			case 0x20:
				value = uint32(int32(rs1) >> shamt)
			default:
				return ErrIllegal(inst)
			}
		case 0x6: // ori
			value = rs1 | imm
		case 0x7: // andi
			value = rs1 & imm
		}
		core.SetReg(rd, value)
	case OP_OP:
		var value uint32
		switch inst.funct7()<<3 | inst.funct3() {
		case 0x00<<3 | 0x0: // add
			value = rs1 + rs2
		case 0x20<<3 | 0x0: // sub
			value = rs1 - rs2
		case 0x00<<3 | 0x1: // sll
			value = rs1 << (rs2 & 0x1f)
		case 0x00<<3 | 0x2: // slt
			value = boolValue(int32(rs1) < int32(rs2))
		case 0x00<<3 | 0x3: // sltu
			value = boolValue(rs1 < rs2)
		case 0x00<<3 | 0x4: // xor
			value = rs1 ^ rs2
		case 0x00<<3 | 0x5: // srl
			value = rs1 >> (rs2 & 0x1f)
		case 0x20<<3 | 0x5: // sra
			value = uint32(int32(rs1) >> (rs2 & 0x1f))
		case 0x00<<3 | 0x6: // or
			value = rs1 | rs2
		case 0x00<<3 | 0x7: // and
			value = rs1 & rs2
		default:
			return ErrIllegal(inst)
		}
		core.SetReg(rd, value)
	case OP_MISC_MEM:
		// fence: memory is already coherent.
	case OP_SYSTEM:
		switch uint32(inst) {
		case 0x00000073:
			return ErrEcall
		case 0x00100073:
			return ErrEbreak
		default:
			return ErrIllegal(inst)
		}
	default:
		return ErrIllegal(inst)
	}

	return
}

func boolValue(cond bool) uint32 {
	if cond {
		return 1
	}
	return 0
}
