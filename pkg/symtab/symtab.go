// Package symtab holds the label and relocation tables the assembler driver
// owns across both passes.
package symtab

import (
	"errors"
	"fmt"
	"io"

	"github.com/mipsasm/mipsasm/pkg/operand"
)

var (
	ErrDuplicate   = errors.New("duplicate symbol")
	ErrMisaligned  = errors.New("address is not word aligned")
	ErrInvalidName = errors.New("invalid symbol name")
)

type Symbol struct {
	Name string
	Addr uint32
}

// Table is an insertion-ordered list of symbols. A unique table rejects a
// second definition of a name; a non-unique one keeps every entry, which is
// what relocation bookkeeping needs.
type Table struct {
	unique  bool
	entries []Symbol
	index   map[string]int
}

// NewSymbolTable returns a table that rejects duplicate names.
func NewSymbolTable() *Table {
	return &Table{unique: true, index: make(map[string]int)}
}

// NewRelocationTable returns a table that accepts repeated names.
func NewRelocationTable() *Table {
	return &Table{index: make(map[string]int)}
}

func (t *Table) Add(name string, addr uint32) error {
	if !operand.IsLabel(name) {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	if addr%4 != 0 {
		return fmt.Errorf("%q at 0x%08x: %w", name, addr, ErrMisaligned)
	}
	if _, exists := t.index[name]; exists && t.unique {
		return fmt.Errorf("%q: %w", name, ErrDuplicate)
	}

	if _, exists := t.index[name]; !exists {
		t.index[name] = len(t.entries)
	}
	t.entries = append(t.entries, Symbol{Name: name, Addr: addr})
	return nil
}

// Append records a reference to name at addr.
func (t *Table) Append(name string, addr uint32) error {
	return t.Add(name, addr)
}

// Lookup returns the address of the first definition of name.
func (t *Table) Lookup(name string) (uint32, bool) {
	i, ok := t.index[name]
	if !ok {
		return 0, false
	}
	return t.entries[i].Addr, true
}

func (t *Table) Len() int {
	return len(t.entries)
}

// Symbols returns a copy of the entries in insertion order.
func (t *Table) Symbols() []Symbol {
	out := make([]Symbol, len(t.entries))
	copy(out, t.entries)
	return out
}

// WriteTo writes one "addr\tname" line per entry.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	return Write(w, t.entries)
}

// Write writes one "addr\tname" line per symbol.
func Write(w io.Writer, syms []Symbol) (int64, error) {
	var total int64
	for _, s := range syms {
		n, err := fmt.Fprintf(w, "%d\t%s\n", s.Addr, s.Name)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
