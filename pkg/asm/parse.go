package asm

import (
	"fmt"
	"strings"

	"github.com/mipsasm/mipsasm/pkg/operand"
)

type parsedLine struct {
	lineNo   int
	labels   []string
	mnemonic string
	operands []string
}

func parseLine(raw string, lineNo int) (parsedLine, error) {
	p := parsedLine{lineNo: lineNo}

	line := strings.TrimSpace(stripComments(raw))
	if line == "" {
		return p, nil
	}

	for {
		colon := strings.IndexByte(line, ':')
		if colon < 0 {
			break
		}

		beforeColon := strings.TrimSpace(line[:colon])
		if beforeColon == "" {
			return p, fmt.Errorf("empty label")
		}

		if strings.ContainsAny(beforeColon, " \t") {
			break
		}

		if !operand.IsLabel(beforeColon) {
			return p, fmt.Errorf("invalid label '%s'", beforeColon)
		}

		p.labels = append(p.labels, beforeColon)
		line = strings.TrimSpace(line[colon+1:])
		if line == "" {
			return p, nil
		}
	}

	mnemonic, rest := line, ""
	if sp := strings.IndexAny(line, " \t"); sp >= 0 {
		mnemonic, rest = line[:sp], line[sp+1:]
	}

	p.mnemonic = strings.ToLower(mnemonic)
	p.operands = splitOperands(rest)

	return p, nil
}

func stripComments(line string) string {
	if cut := strings.IndexByte(line, '#'); cut >= 0 {
		return line[:cut]
	}
	return line
}

// splitOperands separates operands on commas and whitespace. A memory
// operand "offset(base)" becomes "base", "offset", with a missing offset
// read as 0.
func splitOperands(text string) []string {
	var ops []string
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		open := strings.IndexByte(part, '(')
		if open < 0 || !strings.HasSuffix(part, ")") {
			ops = append(ops, strings.Fields(part)...)
			continue
		}

		offset := strings.TrimSpace(part[:open])
		if offset == "" {
			offset = "0"
		}
		base := strings.TrimSpace(part[open+1 : len(part)-1])
		ops = append(ops, base, offset)
	}
	return ops
}
