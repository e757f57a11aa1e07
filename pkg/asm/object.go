package asm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mipsasm/mipsasm/pkg/symtab"
)

// Object is the result of a successful assembly.
type Object struct {
	Base        uint32
	Text        []uint32
	Symbols     []symtab.Symbol
	Relocations []symtab.Symbol
	// SourceMap maps each word address to the source line it came from.
	SourceMap map[uint32]int
}

// words collects emitted words in memory.
type words []uint32

func (w *words) Emit(word uint32) error {
	*w = append(*w, word)
	return nil
}

// HexEmitter writes each word as eight lowercase hex digits on its own line.
type HexEmitter struct {
	w io.Writer
}

func NewHexEmitter(w io.Writer) *HexEmitter {
	return &HexEmitter{w: w}
}

func (e *HexEmitter) Emit(word uint32) error {
	_, err := fmt.Fprintf(e.w, "%08x\n", word)
	return err
}

// WriteTo writes the object as three sections: .text with one hex word per
// line, then .symbol and .relocation with "addr\tname" lines.
func (o *Object) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	cw := &countingWriter{w: bw}

	fmt.Fprintln(cw, ".text")
	hex := NewHexEmitter(cw)
	for _, word := range o.Text {
		if err := hex.Emit(word); err != nil {
			return cw.n, err
		}
	}

	fmt.Fprint(cw, "\n.symbol\n")
	symtab.Write(cw, o.Symbols)
	fmt.Fprint(cw, "\n.relocation\n")
	symtab.Write(cw, o.Relocations)

	if cw.err != nil {
		return cw.n, cw.err
	}
	return cw.n, bw.Flush()
}

// countingWriter remembers the first write error so sections can be written
// without checking every call.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}

var ErrBadObject = errors.New("malformed object")

// ReadObject parses the format WriteTo produces. Lines before any section
// header are read as .text, so a bare list of hex words is accepted too.
// The text base is not part of the format and is left at zero.
func ReadObject(r io.Reader) (*Object, error) {
	obj := &Object{}
	section := ".text"

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ".") {
			section = line
			continue
		}

		switch section {
		case ".text":
			w, err := strconv.ParseUint(line, 16, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: word %q: %w", lineNo, line, ErrBadObject)
			}
			obj.Text = append(obj.Text, uint32(w))
		case ".symbol", ".relocation":
			addr, name, ok := strings.Cut(line, "\t")
			if !ok {
				return nil, fmt.Errorf("line %d: entry %q: %w", lineNo, line, ErrBadObject)
			}
			a, err := strconv.ParseUint(addr, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: address %q: %w", lineNo, addr, ErrBadObject)
			}
			sym := symtab.Symbol{Name: name, Addr: uint32(a)}
			if section == ".symbol" {
				obj.Symbols = append(obj.Symbols, sym)
			} else {
				obj.Relocations = append(obj.Relocations, sym)
			}
		default:
			return nil, fmt.Errorf("line %d: section %q: %w", lineNo, section, ErrBadObject)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return obj, nil
}
