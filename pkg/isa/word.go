package isa

// Field layout, MSB to LSB: opcode 31-26, rs 25-21, rt 20-16, rd 15-11,
// shamt 10-6, funct 5-0. I words reuse bits 15-0 as the immediate, J words
// reuse bits 25-0 as the target.
const (
	opcodeShift = 26
	rsShift     = 21
	rtShift     = 16
	rdShift     = 11
	shamtShift  = 6

	mask5      = 0x1f
	mask6      = 0x3f
	mask16     = 0xffff
	TargetMask = 0x03ffffff
)

func EncodeR(rs, rt, rd, shamt, funct uint8) uint32 {
	return uint32(OpSpecial)<<opcodeShift |
		uint32(rs&mask5)<<rsShift |
		uint32(rt&mask5)<<rtShift |
		uint32(rd&mask5)<<rdShift |
		uint32(shamt&mask5)<<shamtShift |
		uint32(funct&mask6)
}

func EncodeI(opcode, rs, rt uint8, imm uint16) uint32 {
	return uint32(opcode&mask6)<<opcodeShift |
		uint32(rs&mask5)<<rsShift |
		uint32(rt&mask5)<<rtShift |
		uint32(imm)
}

func EncodeJ(opcode uint8, target uint32) uint32 {
	return uint32(opcode&mask6)<<opcodeShift | target&TargetMask
}

// Fields is a word split along every field boundary. Which fields are
// meaningful depends on the format.
type Fields struct {
	Opcode uint8
	Rs     uint8
	Rt     uint8
	Rd     uint8
	Shamt  uint8
	Funct  uint8
	Imm    uint16
	Target uint32
}

func Split(word uint32) Fields {
	return Fields{
		Opcode: uint8(word>>opcodeShift) & mask6,
		Rs:     uint8(word>>rsShift) & mask5,
		Rt:     uint8(word>>rtShift) & mask5,
		Rd:     uint8(word>>rdShift) & mask5,
		Shamt:  uint8(word>>shamtShift) & mask5,
		Funct:  uint8(word) & mask6,
		Imm:    uint16(word & mask16),
		Target: word & TargetMask,
	}
}

// SignExtend widens a 16-bit immediate as the hardware does for arithmetic,
// memory and branch forms.
func SignExtend(imm uint16) uint32 {
	return uint32(int32(int16(imm)))
}
