// Package translate turns instruction tuples into machine words.
//
// Pass one calls Expand once per source instruction to replace
// pseudo-instructions with real ones. Pass two calls Translate once per real
// instruction, in address order, with the symbol and relocation tables the
// caller owns. Neither call keeps state between invocations.
package translate

import (
	"fmt"
	"strings"

	"github.com/mipsasm/mipsasm/pkg/isa"
	"github.com/mipsasm/mipsasm/pkg/operand"
)

// Instruction is a mnemonic with its operand tokens in source order.
type Instruction struct {
	Mnemonic string
	Operands []string
}

// NewInstruction builds an Instruction that owns a copy of operands.
func NewInstruction(mnemonic string, operands ...string) Instruction {
	ops := make([]string, len(operands))
	copy(ops, operands)
	return Instruction{Mnemonic: mnemonic, Operands: ops}
}

func (i Instruction) String() string {
	if len(i.Operands) == 0 {
		return i.Mnemonic
	}
	return i.Mnemonic + " " + strings.Join(i.Operands, ", ")
}

type OperandParser interface {
	ParseRegister(token string) (uint8, error)
	ParseImmediate(token string, bits uint, signed bool) (int64, error)
}

// SymbolTable resolves labels. A false result means the label is defined
// elsewhere and must be relocated.
type SymbolTable interface {
	Lookup(name string) (uint32, bool)
}

type RelocationTable interface {
	Append(symbol string, addr uint32) error
}

// Emitter receives one finished word per successful Translate call.
type Emitter interface {
	Emit(word uint32) error
}

type Translator struct {
	parser OperandParser
}

// NewTranslator returns a Translator using p, or operand.Parser when p is
// nil.
func NewTranslator(p OperandParser) *Translator {
	if p == nil {
		p = operand.Parser{}
	}
	return &Translator{parser: p}
}

// Translate encodes inst, located at addr, and emits its word. An
// instruction that fails validation emits nothing and records no relocation.
func (t *Translator) Translate(out Emitter, inst Instruction, addr uint32, symbols SymbolTable, relocs RelocationTable) error {
	e, ok := isa.Lookup(inst.Mnemonic)
	if !ok || e.Format == isa.FormatPseudo {
		return unsupported(inst.Mnemonic)
	}
	if len(inst.Operands) != e.Arity {
		return argCount(inst.Mnemonic, e.Arity, len(inst.Operands))
	}

	var (
		word  uint32
		reloc string
		err   error
	)
	switch e.Format {
	case isa.FormatR:
		word, err = t.encodeR(e, inst)
	case isa.FormatShift:
		word, err = t.encodeShift(e, inst)
	case isa.FormatImm:
		word, err = t.encodeImm(e, inst)
	case isa.FormatUpper:
		word, err = t.encodeUpper(e, inst)
	case isa.FormatMem:
		word, err = t.encodeMem(e, inst)
	case isa.FormatBranch:
		word, reloc, err = t.encodeBranch(e, inst, addr, symbols)
	case isa.FormatJump:
		word, reloc, err = t.encodeJump(e, inst, addr, symbols)
	default:
		return unsupported(inst.Mnemonic)
	}
	if err != nil {
		return err
	}

	if reloc != "" {
		if err := relocs.Append(reloc, addr); err != nil {
			return fmt.Errorf("%s: relocate %q: %w", inst.Mnemonic, reloc, err)
		}
	}
	return out.Emit(word)
}
