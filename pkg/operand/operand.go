// Package operand turns operand tokens into register numbers and ranged
// integers.
package operand

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/mipsasm/mipsasm/pkg/isa"
)

var (
	ErrInvalidRegister = errors.New("invalid register")
	ErrInvalidNumber   = errors.New("invalid number")
	ErrOutOfRange      = errors.New("value out of range")
)

var registerNumbers = func() map[string]uint8 {
	m := make(map[string]uint8, isa.NumRegisters*2)
	for i, name := range isa.RegisterNames {
		m[name] = uint8(i)
		m[strconv.Itoa(i)] = uint8(i)
	}
	// $s8 is the other name of $fp.
	m["s8"] = 30
	return m
}()

// Parser is the default operand parser. The zero value is ready to use.
type Parser struct{}

// ParseRegister accepts "$name" or "$n" for n in 0..31.
func (Parser) ParseRegister(token string) (uint8, error) {
	name, ok := strings.CutPrefix(token, "$")
	if !ok {
		return 0, fmt.Errorf("%q: %w", token, ErrInvalidRegister)
	}
	n, ok := registerNumbers[name]
	if !ok {
		return 0, fmt.Errorf("%q: %w", token, ErrInvalidRegister)
	}
	return n, nil
}

// ParseImmediate parses a decimal, hex (0x), octal (leading 0) or binary
// (0b) literal and checks that it fits in bits, read as two's complement
// when signed is true.
func (Parser) ParseImmediate(token string, bits uint, signed bool) (int64, error) {
	if bits == 0 || bits > 32 {
		return 0, fmt.Errorf("unsupported width %d", bits)
	}
	if token == "" || strings.ContainsRune(token, '_') {
		return 0, fmt.Errorf("%q: %w", token, ErrInvalidNumber)
	}

	v, err := strconv.ParseInt(token, 0, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%q: %w", token, ErrOutOfRange)
		}
		return 0, fmt.Errorf("%q: %w", token, ErrInvalidNumber)
	}

	lo, hi := Bounds(bits, signed)
	if v < lo || v > hi {
		return 0, fmt.Errorf("%q not in [%d, %d]: %w", token, lo, hi, ErrOutOfRange)
	}
	return v, nil
}

// Bounds reports the inclusive range of a bits-wide field.
func Bounds(bits uint, signed bool) (lo, hi int64) {
	if signed {
		return -(1 << (bits - 1)), 1<<(bits-1) - 1
	}
	return 0, 1<<bits - 1
}

// IsLabel reports whether s can name a symbol: a letter or '_' followed by
// letters, digits or '_'.
func IsLabel(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return false
			}
			continue
		}

		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}

	return true
}
