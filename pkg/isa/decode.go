package isa

import (
	"errors"
	"fmt"
)

var ErrUnknownWord = errors.New("unknown instruction word")

// Decoded is a word matched back to its table entry.
type Decoded struct {
	Mnemonic string
	Entry    Entry
	Fields   Fields
}

func Decode(word uint32) (Decoded, error) {
	f := Split(word)

	var (
		name string
		ok   bool
	)
	if f.Opcode == OpSpecial {
		name, ok = byFunct[f.Funct]
	} else {
		name, ok = byOpcode[f.Opcode]
	}
	if !ok {
		return Decoded{}, fmt.Errorf("0x%08x: %w", word, ErrUnknownWord)
	}
	return Decoded{Mnemonic: name, Entry: table[name], Fields: f}, nil
}

// BranchTarget is the absolute address a branch at addr with offset field
// imm transfers to.
func BranchTarget(addr uint32, imm uint16) uint32 {
	return addr + 4 + SignExtend(imm)<<2
}

// JumpTarget is the absolute address a jump at addr with target field
// target transfers to.
func JumpTarget(addr uint32, target uint32) uint32 {
	return (addr+4)&0xf0000000 | (target&TargetMask)<<2
}

// Disassemble renders word, located at addr, as assembler source.
func Disassemble(word, addr uint32) (string, error) {
	d, err := Decode(word)
	if err != nil {
		return "", err
	}

	f := d.Fields
	reg := RegisterToken

	switch d.Entry.Format {
	case FormatR:
		if d.Entry.Arity == 1 {
			return fmt.Sprintf("%s %s", d.Mnemonic, reg(f.Rs)), nil
		}
		return fmt.Sprintf("%s %s, %s, %s", d.Mnemonic, reg(f.Rd), reg(f.Rs), reg(f.Rt)), nil
	case FormatShift:
		return fmt.Sprintf("%s %s, %s, %d", d.Mnemonic, reg(f.Rd), reg(f.Rt), f.Shamt), nil
	case FormatImm:
		if d.Entry.Signed {
			return fmt.Sprintf("%s %s, %s, %d", d.Mnemonic, reg(f.Rt), reg(f.Rs), int16(f.Imm)), nil
		}
		return fmt.Sprintf("%s %s, %s, 0x%x", d.Mnemonic, reg(f.Rt), reg(f.Rs), f.Imm), nil
	case FormatUpper:
		return fmt.Sprintf("%s %s, 0x%x", d.Mnemonic, reg(f.Rt), f.Imm), nil
	case FormatMem:
		return fmt.Sprintf("%s %s, %d(%s)", d.Mnemonic, reg(f.Rt), int16(f.Imm), reg(f.Rs)), nil
	case FormatBranch:
		return fmt.Sprintf("%s %s, %s, 0x%08x", d.Mnemonic, reg(f.Rs), reg(f.Rt), BranchTarget(addr, f.Imm)), nil
	case FormatJump:
		return fmt.Sprintf("%s 0x%08x", d.Mnemonic, JumpTarget(addr, f.Target)), nil
	}
	return "", fmt.Errorf("0x%08x: %w", word, ErrUnknownWord)
}
