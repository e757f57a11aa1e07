package isa

import "sort"

// Format identifies the word layout an instruction is packed into.
type Format uint8

const (
	FormatInvalid Format = iota
	// FormatR is opcode 0 with rs, rt, rd and a function code.
	FormatR
	// FormatShift is an R word whose third operand is the shift amount.
	FormatShift
	// FormatImm is opcode, rs, rt and a 16-bit immediate (rt, rs, imm).
	FormatImm
	// FormatUpper is lui: opcode, rt and an unsigned 16-bit immediate.
	FormatUpper
	// FormatMem is a load/store. Operands are rt, rs, offset; source writes
	// them rt, offset(rs).
	FormatMem
	// FormatBranch is a PC-relative conditional branch (rs, rt, label).
	FormatBranch
	// FormatJump is opcode and a 26-bit word address.
	FormatJump
	// FormatPseudo has no encoding of its own and is expanded in pass one.
	FormatPseudo
)

var formatNames = [...]string{
	FormatInvalid: "invalid",
	FormatR:       "R",
	FormatShift:   "shift",
	FormatImm:     "I",
	FormatUpper:   "upper",
	FormatMem:     "memory",
	FormatBranch:  "branch",
	FormatJump:    "J",
	FormatPseudo:  "pseudo",
}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return "invalid"
}

// Pseudo-instruction codes carried in Entry.Code for FormatPseudo entries.
const (
	PseudoLI uint8 = iota + 1
	PseudoBLT
	PseudoBGT
	PseudoBLE
	PseudoBGE
	PseudoMOVE
	PseudoNOP
)

// Entry is the dispatch record for one mnemonic.
//
// Code is the function code for FormatR and FormatShift, the primary opcode
// for the other real formats, and a Pseudo* constant for FormatPseudo.
// Signed selects the immediate range for FormatImm.
type Entry struct {
	Format Format
	Code   uint8
	Arity  int
	Signed bool
}

// Opcode returns the value of bits 31-26 for a real instruction.
func (e Entry) Opcode() uint8 {
	switch e.Format {
	case FormatR, FormatShift:
		return OpSpecial
	default:
		return e.Code
	}
}

var table = map[string]Entry{
	"add":  {Format: FormatR, Code: FnADD, Arity: 3},
	"addu": {Format: FormatR, Code: FnADDU, Arity: 3},
	"and":  {Format: FormatR, Code: FnAND, Arity: 3},
	"nor":  {Format: FormatR, Code: FnNOR, Arity: 3},
	"or":   {Format: FormatR, Code: FnOR, Arity: 3},
	"slt":  {Format: FormatR, Code: FnSLT, Arity: 3},
	"sltu": {Format: FormatR, Code: FnSLTU, Arity: 3},
	"sub":  {Format: FormatR, Code: FnSUB, Arity: 3},
	"subu": {Format: FormatR, Code: FnSUBU, Arity: 3},
	"xor":  {Format: FormatR, Code: FnXOR, Arity: 3},
	"jr":   {Format: FormatR, Code: FnJR, Arity: 1},

	"sll": {Format: FormatShift, Code: FnSLL, Arity: 3},
	"srl": {Format: FormatShift, Code: FnSRL, Arity: 3},
	"sra": {Format: FormatShift, Code: FnSRA, Arity: 3},

	"addi":  {Format: FormatImm, Code: OpADDI, Arity: 3, Signed: true},
	"addiu": {Format: FormatImm, Code: OpADDIU, Arity: 3, Signed: true},
	"slti":  {Format: FormatImm, Code: OpSLTI, Arity: 3, Signed: true},
	"sltiu": {Format: FormatImm, Code: OpSLTIU, Arity: 3, Signed: true},
	"andi":  {Format: FormatImm, Code: OpANDI, Arity: 3},
	"ori":   {Format: FormatImm, Code: OpORI, Arity: 3},
	"xori":  {Format: FormatImm, Code: OpXORI, Arity: 3},

	"lui": {Format: FormatUpper, Code: OpLUI, Arity: 2},

	"lb":  {Format: FormatMem, Code: OpLB, Arity: 3, Signed: true},
	"lbu": {Format: FormatMem, Code: OpLBU, Arity: 3, Signed: true},
	"lh":  {Format: FormatMem, Code: OpLH, Arity: 3, Signed: true},
	"lhu": {Format: FormatMem, Code: OpLHU, Arity: 3, Signed: true},
	"ll":  {Format: FormatMem, Code: OpLL, Arity: 3, Signed: true},
	"lw":  {Format: FormatMem, Code: OpLW, Arity: 3, Signed: true},
	"sb":  {Format: FormatMem, Code: OpSB, Arity: 3, Signed: true},
	"sc":  {Format: FormatMem, Code: OpSC, Arity: 3, Signed: true},
	"sh":  {Format: FormatMem, Code: OpSH, Arity: 3, Signed: true},
	"sw":  {Format: FormatMem, Code: OpSW, Arity: 3, Signed: true},

	"beq": {Format: FormatBranch, Code: OpBEQ, Arity: 3},
	"bne": {Format: FormatBranch, Code: OpBNE, Arity: 3},

	"j":   {Format: FormatJump, Code: OpJ, Arity: 1},
	"jal": {Format: FormatJump, Code: OpJAL, Arity: 1},

	"li":   {Format: FormatPseudo, Code: PseudoLI, Arity: 2},
	"blt":  {Format: FormatPseudo, Code: PseudoBLT, Arity: 3},
	"bgt":  {Format: FormatPseudo, Code: PseudoBGT, Arity: 3},
	"ble":  {Format: FormatPseudo, Code: PseudoBLE, Arity: 3},
	"bge":  {Format: FormatPseudo, Code: PseudoBGE, Arity: 3},
	"move": {Format: FormatPseudo, Code: PseudoMOVE, Arity: 2},
	"nop":  {Format: FormatPseudo, Code: PseudoNOP, Arity: 0},
}

// Lookup returns the dispatch entry for mnemonic.
func Lookup(mnemonic string) (Entry, bool) {
	e, ok := table[mnemonic]
	return e, ok
}

// Mnemonics lists every mnemonic in the table, sorted. When pseudo is false
// only real instructions are returned.
func Mnemonics(pseudo bool) []string {
	out := make([]string, 0, len(table))
	for m, e := range table {
		if e.Format == FormatPseudo && !pseudo {
			continue
		}
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Reverse indexes used by the decoder, derived from table.
var (
	byOpcode = make(map[uint8]string)
	byFunct  = make(map[uint8]string)
)

func init() {
	for m, e := range table {
		switch e.Format {
		case FormatPseudo:
		case FormatR, FormatShift:
			byFunct[e.Code] = m
		default:
			byOpcode[e.Code] = m
		}
	}
}
