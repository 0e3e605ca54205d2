package sim

// RV32I encoders for building test programs.

func encR(op, rd, f3, rs1, rs2, f7 uint32) uint32 {
	return f7<<25 | rs2<<20 | rs1<<15 | f3<<12 | rd<<7 | op
}

func encI(op, rd, f3, rs1 uint32, imm int32) uint32 {
	return (uint32(imm)&0xfff)<<20 | rs1<<15 | f3<<12 | rd<<7 | op
}

func encS(op, f3, rs1, rs2 uint32, imm int32) uint32 {
	u := uint32(imm) & 0xfff
	return (u>>5)<<25 | rs2<<20 | rs1<<15 | f3<<12 | (u&0x1f)<<7 | op
}

func encB(op, f3, rs1, rs2 uint32, imm int32) uint32 {
	u := uint32(imm)
	return (u>>12)&1<<31 | (u>>5)&0x3f<<25 | rs2<<20 | rs1<<15 |
		f3<<12 | (u>>1)&0xf<<8 | (u>>11)&1<<7 | op
}

func encU(op, rd, imm20 uint32) uint32 {
	return imm20<<12 | rd<<7 | op
}

func encJ(rd uint32, imm int32) uint32 {
	u := uint32(imm)
	return (u>>20)&1<<31 | (u>>1)&0x3ff<<21 | (u>>11)&1<<20 | (u>>12)&0xff<<12 | rd<<7 | OP_JAL
}

func addi(rd, rs1 uint32, imm int32) uint32 { return encI(OP_OP_IMM, rd, 0, rs1, imm) }
func sb(rs2, rs1 uint32, imm int32) uint32 { return encS(OP_STORE, 0, rs1, rs2, imm) }
func sw(rs2, rs1 uint32, imm int32) uint32 { return encS(OP_STORE, 2, rs1, rs2, imm) }

// verifyProgram is the control module bring-up program.
var verifyProgram = []uint32{
	0x0AB00293, // addi x5, x0, 171
	0x0CD00313, // addi x6, x0, 205
	0x0EF00393, // addi x7, x0, 239
	0x00500023, // sb x5, 0(x0)
	0x006000A3, // sb x6, 1(x0)
	0x005002A3, // sb x5, 5(x0)
	0x00700423, // sb x7, 8(x0)
	0x00702623, // sw x7, 12(x0)
	0x0000006F, // j 0
}
