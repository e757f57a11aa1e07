package translate

import (
	"fmt"
	"math"
	"strconv"

	"github.com/mipsasm/mipsasm/pkg/isa"
)

var (
	regZero = isa.RegisterToken(isa.RegZero)
	// regAt is reserved for the assembler and is the only register an
	// expansion may write besides its destination.
	regAt = isa.RegisterToken(isa.RegAt)
)

type expandFunc func(t *Translator, ops []string) ([]Instruction, error)

var expanders = map[uint8]expandFunc{
	isa.PseudoLI:   (*Translator).expandLI,
	isa.PseudoBLT:  compareBranch("bne", false),
	isa.PseudoBGT:  compareBranch("bne", true),
	isa.PseudoBLE:  compareBranch("beq", true),
	isa.PseudoBGE:  compareBranch("beq", false),
	isa.PseudoMOVE: expandMove,
	isa.PseudoNOP:  expandNOP,
}

// Expand rewrites a pseudo-instruction as real instructions. Real and unknown
// mnemonics come back unchanged as a single instruction; they are checked by
// Translate. Only operand counts are validated here, except for the literal
// li needs to pick its expansion.
func (t *Translator) Expand(inst Instruction) ([]Instruction, error) {
	e, ok := isa.Lookup(inst.Mnemonic)
	if !ok || e.Format != isa.FormatPseudo {
		return []Instruction{NewInstruction(inst.Mnemonic, inst.Operands...)}, nil
	}
	if len(inst.Operands) != e.Arity {
		return nil, argCount(inst.Mnemonic, e.Arity, len(inst.Operands))
	}

	expand, ok := expanders[e.Code]
	if !ok {
		return nil, unsupported(inst.Mnemonic)
	}
	return expand(t, inst.Operands)
}

// Count is the number of words inst occupies after expansion.
func (t *Translator) Count(inst Instruction) (int, error) {
	out, err := t.Expand(inst)
	if err != nil {
		return 0, err
	}
	return len(out), nil
}

// expandLI loads a 32-bit constant into rd with addiu when it fits a signed
// halfword, else lui followed by ori when the low half is non-zero.
func (t *Translator) expandLI(ops []string) ([]Instruction, error) {
	rd, token := ops[0], ops[1]

	v, err := t.word(token)
	if err != nil {
		return nil, badOperand("li", token, err)
	}

	if v >= math.MinInt16 && v <= math.MaxInt16 {
		return []Instruction{
			NewInstruction("addiu", rd, regZero, strconv.FormatInt(int64(v), 10)),
		}, nil
	}

	w := uint32(v)
	upper, lower := w>>16, w&0xffff
	out := []Instruction{NewInstruction("lui", rd, hex(upper))}
	if lower != 0 {
		out = append(out, NewInstruction("ori", rd, rd, hex(lower)))
	}
	return out, nil
}

// word accepts either a signed or an unsigned 32-bit literal and returns its
// bit pattern read as signed.
func (t *Translator) word(token string) (int32, error) {
	if v, err := t.parser.ParseImmediate(token, 32, true); err == nil {
		return int32(v), nil
	}
	v, err := t.parser.ParseImmediate(token, 32, false)
	if err != nil {
		return 0, err
	}
	return int32(uint32(v)), nil
}

// compareBranch builds the slt/branch pair for a signed comparison. swap
// compares rt < rs instead of rs < rt.
func compareBranch(branch string, swap bool) expandFunc {
	return func(_ *Translator, ops []string) ([]Instruction, error) {
		rs, rt, label := ops[0], ops[1], ops[2]
		if swap {
			rs, rt = rt, rs
		}
		return []Instruction{
			NewInstruction("slt", regAt, rs, rt),
			NewInstruction(branch, regAt, regZero, label),
		}, nil
	}
}

func expandMove(_ *Translator, ops []string) ([]Instruction, error) {
	return []Instruction{NewInstruction("addu", ops[0], ops[1], regZero)}, nil
}

func expandNOP(_ *Translator, _ []string) ([]Instruction, error) {
	return []Instruction{NewInstruction("sll", regZero, regZero, "0")}, nil
}

func hex(v uint32) string {
	return fmt.Sprintf("0x%x", v)
}
