// Package isa describes the 32-bit MIPS instruction words the assembler
// produces: register numbering, primary/secondary codes, field layout and the
// mnemonic table every other package dispatches through.
package isa

// Primary opcodes (bits 31-26).
const (
	OpSpecial uint8 = 0x00
	OpJ       uint8 = 0x02
	OpJAL     uint8 = 0x03
	OpBEQ     uint8 = 0x04
	OpBNE     uint8 = 0x05
	OpADDI    uint8 = 0x08
	OpADDIU   uint8 = 0x09
	OpSLTI    uint8 = 0x0a
	OpSLTIU   uint8 = 0x0b
	OpANDI    uint8 = 0x0c
	OpORI     uint8 = 0x0d
	OpXORI    uint8 = 0x0e
	OpLUI     uint8 = 0x0f
	OpLB      uint8 = 0x20
	OpLH      uint8 = 0x21
	OpLW      uint8 = 0x23
	OpLBU     uint8 = 0x24
	OpLHU     uint8 = 0x25
	OpSB      uint8 = 0x28
	OpSH      uint8 = 0x29
	OpSW      uint8 = 0x2b
	OpLL      uint8 = 0x30
	OpSC      uint8 = 0x38
)

// Function codes (bits 5-0) for OpSpecial words.
const (
	FnSLL  uint8 = 0x00
	FnSRL  uint8 = 0x02
	FnSRA  uint8 = 0x03
	FnJR   uint8 = 0x08
	FnADD  uint8 = 0x20
	FnADDU uint8 = 0x21
	FnSUB  uint8 = 0x22
	FnSUBU uint8 = 0x23
	FnAND  uint8 = 0x24
	FnOR   uint8 = 0x25
	FnXOR  uint8 = 0x26
	FnNOR  uint8 = 0x27
	FnSLT  uint8 = 0x2a
	FnSLTU uint8 = 0x2b
)

const (
	RegZero uint8 = 0
	RegAt   uint8 = 1
	RegSP   uint8 = 29
	RegRA   uint8 = 31
)

// NumRegisters is the size of the general purpose register file.
const NumRegisters = 32

// RegisterNames holds the conventional name of each register, without the
// leading '$'.
var RegisterNames = [NumRegisters]string{
	"zero", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra",
}

// RegisterToken renders register n the way it is written in source.
func RegisterToken(n uint8) string {
	if int(n) >= NumRegisters {
		return "$?"
	}
	return "$" + RegisterNames[n]
}
