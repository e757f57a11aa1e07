// Package asm drives the two assembler passes over MIPS source text.
//
// Pass one records labels and expands pseudo-instructions so every
// instruction has its final address. Pass two encodes the expanded
// instructions in address order against the finished symbol table.
package asm

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mipsasm/mipsasm/pkg/symtab"
	"github.com/mipsasm/mipsasm/pkg/translate"
)

// LineError is a failure tied to one source line. Mnemonic is empty for
// label and syntax errors. Err already names the mnemonic when there is one,
// so Error does not repeat it.
type LineError struct {
	Line     int
	Mnemonic string
	Err      error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

type Assembler struct {
	tr       *translate.Translator
	log      *slog.Logger
	textBase uint32

	symbols *symtab.Table
	relocs  *symtab.Table
}

type Option func(*Assembler)

func WithLogger(l *slog.Logger) Option {
	return func(a *Assembler) {
		a.log = l
	}
}

// WithTextBase sets the address of the first instruction. It must be word
// aligned.
func WithTextBase(base uint32) Option {
	return func(a *Assembler) {
		a.textBase = base
	}
}

// WithOperandParser replaces the default register and literal parser.
func WithOperandParser(p translate.OperandParser) Option {
	return func(a *Assembler) {
		a.tr = translate.NewTranslator(p)
	}
}

func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{
		tr:  translate.NewTranslator(nil),
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble runs both passes over code with the default options.
func Assemble(code string) (*Object, error) {
	return NewAssembler().Assemble(code)
}

// pending is an expanded instruction waiting for pass two.
type pending struct {
	lineNo int
	inst   translate.Instruction
}

// Assemble runs both passes. Every bad line is reported; pass two is skipped
// when pass one fails. The returned error joins one *LineError per failure.
func (a *Assembler) Assemble(code string) (*Object, error) {
	if a.textBase%4 != 0 {
		return nil, fmt.Errorf("text base 0x%08x: %w", a.textBase, symtab.ErrMisaligned)
	}
	a.symbols = symtab.NewSymbolTable()
	a.relocs = symtab.NewRelocationTable()

	lines := strings.Split(code, "\n")

	program, errs := a.pass1(lines)
	if len(errs) > 0 {
		a.log.Debug("pass one failed", "errors", len(errs))
		return nil, errors.Join(errs...)
	}
	a.log.Debug("pass one done", "instructions", len(program), "symbols", a.symbols.Len())

	obj, errs := a.pass2(program)
	if len(errs) > 0 {
		a.log.Debug("pass two failed", "errors", len(errs))
		return nil, errors.Join(errs...)
	}
	a.log.Debug("pass two done", "words", len(obj.Text), "relocations", len(obj.Relocations))
	return obj, nil
}

func (a *Assembler) fail(errs []error, lineNo int, mnemonic string, err error) []error {
	a.log.Error("rejected line",
		"line", lineNo,
		"mnemonic", mnemonic,
		"kind", translate.KindOf(err).String(),
		"err", err,
	)
	return append(errs, &LineError{Line: lineNo, Mnemonic: mnemonic, Err: err})
}

func (a *Assembler) pass1(lines []string) ([]pending, []error) {
	var (
		program []pending
		errs    []error
	)
	addr := a.textBase

	for i, raw := range lines {
		lineNo := i + 1
		p, err := parseLine(raw, lineNo)
		if err != nil {
			errs = a.fail(errs, lineNo, "", err)
			continue
		}

		for _, lbl := range p.labels {
			if err := a.symbols.Add(lbl, addr); err != nil {
				errs = a.fail(errs, lineNo, "", err)
			}
		}

		if p.mnemonic == "" {
			continue
		}

		expanded, err := a.tr.Expand(translate.NewInstruction(p.mnemonic, p.operands...))
		if err != nil {
			errs = a.fail(errs, lineNo, p.mnemonic, err)
			continue
		}
		for _, inst := range expanded {
			program = append(program, pending{lineNo: lineNo, inst: inst})
			addr += 4
		}
	}

	return program, errs
}

func (a *Assembler) pass2(program []pending) (*Object, []error) {
	var (
		text words
		errs []error
	)
	sourceMap := make(map[uint32]int, len(program))

	for i, p := range program {
		addr := a.textBase + uint32(i)*4
		if err := a.tr.Translate(&text, p.inst, addr, a.symbols, a.relocs); err != nil {
			errs = a.fail(errs, p.lineNo, p.inst.Mnemonic, err)
			continue
		}
		sourceMap[addr] = p.lineNo
	}

	return &Object{
		Base:        a.textBase,
		Text:        text,
		Symbols:     a.symbols.Symbols(),
		Relocations: a.relocs.Symbols(),
		SourceMap:   sourceMap,
	}, errs
}
