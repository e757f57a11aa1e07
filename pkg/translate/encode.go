package translate

import (
	"math"

	"github.com/mipsasm/mipsasm/pkg/isa"
	"github.com/mipsasm/mipsasm/pkg/operand"
)

// regionMask selects the address bits a jump takes from addr+4.
const regionMask = 0xf0000000

func (t *Translator) registers(mnemonic string, tokens ...string) ([]uint8, error) {
	regs := make([]uint8, len(tokens))
	for i, tok := range tokens {
		r, err := t.parser.ParseRegister(tok)
		if err != nil {
			return nil, badOperand(mnemonic, tok, err)
		}
		regs[i] = r
	}
	return regs, nil
}

func (t *Translator) immediate(mnemonic, token string, bits uint, signed bool) (int64, error) {
	v, err := t.parser.ParseImmediate(token, bits, signed)
	if err != nil {
		return 0, badOperand(mnemonic, token, err)
	}
	return v, nil
}

// encodeR handles "rd, rs, rt" and the single-register "rs" form.
func (t *Translator) encodeR(e isa.Entry, inst Instruction) (uint32, error) {
	ops := inst.Operands
	if e.Arity == 1 {
		regs, err := t.registers(inst.Mnemonic, ops[0])
		if err != nil {
			return 0, err
		}
		return isa.EncodeR(regs[0], 0, 0, 0, e.Code), nil
	}

	regs, err := t.registers(inst.Mnemonic, ops[0], ops[1], ops[2])
	if err != nil {
		return 0, err
	}
	rd, rs, rt := regs[0], regs[1], regs[2]
	return isa.EncodeR(rs, rt, rd, 0, e.Code), nil
}

// encodeShift handles "rd, rt, shamt".
func (t *Translator) encodeShift(e isa.Entry, inst Instruction) (uint32, error) {
	ops := inst.Operands
	regs, err := t.registers(inst.Mnemonic, ops[0], ops[1])
	if err != nil {
		return 0, err
	}
	shamt, err := t.immediate(inst.Mnemonic, ops[2], 5, false)
	if err != nil {
		return 0, err
	}
	rd, rt := regs[0], regs[1]
	return isa.EncodeR(0, rt, rd, uint8(shamt), e.Code), nil
}

// encodeImm handles "rt, rs, imm".
func (t *Translator) encodeImm(e isa.Entry, inst Instruction) (uint32, error) {
	ops := inst.Operands
	regs, err := t.registers(inst.Mnemonic, ops[0], ops[1])
	if err != nil {
		return 0, err
	}
	imm, err := t.immediate(inst.Mnemonic, ops[2], 16, e.Signed)
	if err != nil {
		return 0, err
	}
	rt, rs := regs[0], regs[1]
	return isa.EncodeI(e.Code, rs, rt, uint16(imm)), nil
}

// encodeUpper handles "rt, imm".
func (t *Translator) encodeUpper(e isa.Entry, inst Instruction) (uint32, error) {
	ops := inst.Operands
	regs, err := t.registers(inst.Mnemonic, ops[0])
	if err != nil {
		return 0, err
	}
	imm, err := t.immediate(inst.Mnemonic, ops[1], 16, false)
	if err != nil {
		return 0, err
	}
	return isa.EncodeI(e.Code, 0, regs[0], uint16(imm)), nil
}

// encodeMem handles "rt, rs, offset". The driver writes "rt, offset(rs)" in
// that order.
func (t *Translator) encodeMem(e isa.Entry, inst Instruction) (uint32, error) {
	ops := inst.Operands
	regs, err := t.registers(inst.Mnemonic, ops[0], ops[1])
	if err != nil {
		return 0, err
	}
	off, err := t.immediate(inst.Mnemonic, ops[2], 16, true)
	if err != nil {
		return 0, err
	}
	rt, rs := regs[0], regs[1]
	return isa.EncodeI(e.Code, rs, rt, uint16(off)), nil
}

// encodeBranch handles "rs, rt, label". An unresolved label yields a zero
// offset and the label as the relocation symbol.
func (t *Translator) encodeBranch(e isa.Entry, inst Instruction, addr uint32, symbols SymbolTable) (uint32, string, error) {
	ops := inst.Operands
	regs, err := t.registers(inst.Mnemonic, ops[0], ops[1])
	if err != nil {
		return 0, "", err
	}
	label := ops[2]
	if !operand.IsLabel(label) {
		return 0, "", badOperand(inst.Mnemonic, label, errInvalidLabel)
	}
	rs, rt := regs[0], regs[1]

	target, ok := symbols.Lookup(label)
	if !ok {
		return isa.EncodeI(e.Code, rs, rt, 0), label, nil
	}
	if target%4 != 0 || addr%4 != 0 {
		return 0, "", badTarget(inst.Mnemonic, label, "at 0x%08x is not word aligned", target)
	}

	offset := (int64(target) - (int64(addr) + 4)) / 4
	if offset < math.MinInt16 || offset > math.MaxInt16 {
		return 0, "", badTarget(inst.Mnemonic, label, "is %d words away", offset)
	}
	return isa.EncodeI(e.Code, rs, rt, uint16(int16(offset))), "", nil
}

// encodeJump handles "label". An unresolved label yields a zero target field
// and the label as the relocation symbol.
//
// A resolved target must lie in the same 256 MiB region as addr+4, the only
// region the 26-bit field can reach.
func (t *Translator) encodeJump(e isa.Entry, inst Instruction, addr uint32, symbols SymbolTable) (uint32, string, error) {
	label := inst.Operands[0]
	if !operand.IsLabel(label) {
		return 0, "", badOperand(inst.Mnemonic, label, errInvalidLabel)
	}

	target, ok := symbols.Lookup(label)
	if !ok {
		return isa.EncodeJ(e.Code, 0), label, nil
	}
	if target%4 != 0 {
		return 0, "", badTarget(inst.Mnemonic, label, "at 0x%08x is not word aligned", target)
	}
	if target&regionMask != (addr+4)&regionMask {
		return 0, "", badTarget(inst.Mnemonic, label, "at 0x%08x is outside the region of 0x%08x", target, addr)
	}
	return isa.EncodeJ(e.Code, (target>>2)&isa.TargetMask), "", nil
}
