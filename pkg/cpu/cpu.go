// Package cpu executes assembled words for the instructions the assembler
// supports. It has no delay slots, exceptions or coprocessors; it exists to
// check what a sequence of words computes.
package cpu

import (
	"errors"
	"fmt"

	"github.com/mipsasm/mipsasm/pkg/isa"
)

var (
	ErrUnaligned = errors.New("unaligned memory access")
	ErrOverflow  = errors.New("arithmetic overflow")
	ErrStepLimit = errors.New("step limit reached")
)

type CPU struct {
	Regs [isa.NumRegisters]uint32

	PC uint32

	// Base is the address of the first loaded word.
	Base uint32

	Halted bool

	text []uint32
	mem  map[uint32]byte

	// llAddr is the address reserved by the last ll; sc succeeds only while
	// the reservation is held.
	llAddr  uint32
	llValid bool
}

func NewCPU(base uint32) *CPU {
	return &CPU{
		Base: base,
		PC:   base,
		mem:  make(map[uint32]byte),
	}
}

// Load replaces the program with words placed from Base and resets PC.
func (c *CPU) Load(words []uint32) {
	c.text = append(c.text[:0], words...)
	c.PC = c.Base
	c.Halted = false
}

func (c *CPU) ReadByte(addr uint32) byte {
	return c.mem[addr]
}

func (c *CPU) WriteByte(addr uint32, val byte) {
	c.mem[addr] = val
}

// Read32 reads a little-endian word.
func (c *CPU) Read32(addr uint32) (uint32, error) {
	if addr%4 != 0 {
		return 0, fmt.Errorf("read 0x%08x: %w", addr, ErrUnaligned)
	}
	return uint32(c.mem[addr]) |
		uint32(c.mem[addr+1])<<8 |
		uint32(c.mem[addr+2])<<16 |
		uint32(c.mem[addr+3])<<24, nil
}

func (c *CPU) Write32(addr uint32, val uint32) error {
	if addr%4 != 0 {
		return fmt.Errorf("write 0x%08x: %w", addr, ErrUnaligned)
	}
	for i := uint32(0); i < 4; i++ {
		c.mem[addr+i] = byte(val >> (8 * i))
	}
	return nil
}

func (c *CPU) read16(addr uint32) (uint16, error) {
	if addr%2 != 0 {
		return 0, fmt.Errorf("read 0x%08x: %w", addr, ErrUnaligned)
	}
	return uint16(c.mem[addr]) | uint16(c.mem[addr+1])<<8, nil
}

func (c *CPU) write16(addr uint32, val uint16) error {
	if addr%2 != 0 {
		return fmt.Errorf("write 0x%08x: %w", addr, ErrUnaligned)
	}
	c.mem[addr] = byte(val)
	c.mem[addr+1] = byte(val >> 8)
	return nil
}

func (c *CPU) set(r uint8, v uint32) {
	if r != isa.RegZero {
		c.Regs[r] = v
	}
}

// fetch returns the word at PC. Leaving the loaded program halts the CPU.
func (c *CPU) fetch() (uint32, bool) {
	if c.PC < c.Base || (c.PC-c.Base)%4 != 0 {
		return 0, false
	}
	i := (c.PC - c.Base) / 4
	if i >= uint32(len(c.text)) {
		return 0, false
	}
	return c.text[i], true
}

// Step executes one instruction.
func (c *CPU) Step() error {
	if c.Halted {
		return nil
	}

	word, ok := c.fetch()
	if !ok {
		c.Halted = true
		return nil
	}

	d, err := isa.Decode(word)
	if err != nil {
		c.Halted = true
		return fmt.Errorf("pc 0x%08x: %w", c.PC, err)
	}

	pc := c.PC
	c.PC += 4
	if err := c.execute(d, pc); err != nil {
		c.Halted = true
		return fmt.Errorf("pc 0x%08x: %s: %w", pc, d.Mnemonic, err)
	}
	return nil
}

// Run steps until the CPU halts or maxSteps instructions have executed.
func (c *CPU) Run(maxSteps int) error {
	for i := 0; i < maxSteps; i++ {
		if c.Halted {
			return nil
		}
		if err := c.Step(); err != nil {
			return err
		}
	}
	if c.Halted {
		return nil
	}
	return ErrStepLimit
}

func (c *CPU) execute(d isa.Decoded, pc uint32) error {
	f := d.Fields
	rs, rt := c.Regs[f.Rs], c.Regs[f.Rt]
	simm := isa.SignExtend(f.Imm)
	zimm := uint32(f.Imm)

	switch d.Mnemonic {
	case "add":
		sum := int32(rs) + int32(rt)
		if (int32(rs) >= 0) == (int32(rt) >= 0) && (sum >= 0) != (int32(rs) >= 0) {
			return ErrOverflow
		}
		c.set(f.Rd, uint32(sum))
	case "addu":
		c.set(f.Rd, rs+rt)
	case "sub":
		diff := int32(rs) - int32(rt)
		if (int32(rs) >= 0) != (int32(rt) >= 0) && (diff >= 0) != (int32(rs) >= 0) {
			return ErrOverflow
		}
		c.set(f.Rd, uint32(diff))
	case "subu":
		c.set(f.Rd, rs-rt)
	case "and":
		c.set(f.Rd, rs&rt)
	case "or":
		c.set(f.Rd, rs|rt)
	case "xor":
		c.set(f.Rd, rs^rt)
	case "nor":
		c.set(f.Rd, ^(rs | rt))
	case "slt":
		c.set(f.Rd, boolWord(int32(rs) < int32(rt)))
	case "sltu":
		c.set(f.Rd, boolWord(rs < rt))
	case "jr":
		c.PC = rs

	case "sll":
		c.set(f.Rd, rt<<f.Shamt)
	case "srl":
		c.set(f.Rd, rt>>f.Shamt)
	case "sra":
		c.set(f.Rd, uint32(int32(rt)>>f.Shamt))

	case "addi":
		sum := int32(rs) + int32(simm)
		if (int32(rs) >= 0) == (int32(simm) >= 0) && (sum >= 0) != (int32(rs) >= 0) {
			return ErrOverflow
		}
		c.set(f.Rt, uint32(sum))
	case "addiu":
		c.set(f.Rt, rs+simm)
	case "slti":
		c.set(f.Rt, boolWord(int32(rs) < int32(simm)))
	case "sltiu":
		c.set(f.Rt, boolWord(rs < simm))
	case "andi":
		c.set(f.Rt, rs&zimm)
	case "ori":
		c.set(f.Rt, rs|zimm)
	case "xori":
		c.set(f.Rt, rs^zimm)
	case "lui":
		c.set(f.Rt, zimm<<16)

	case "lb":
		c.set(f.Rt, uint32(int32(int8(c.ReadByte(rs+simm)))))
	case "lbu":
		c.set(f.Rt, uint32(c.ReadByte(rs+simm)))
	case "lh", "lhu":
		v, err := c.read16(rs + simm)
		if err != nil {
			return err
		}
		if d.Mnemonic == "lh" {
			c.set(f.Rt, uint32(int32(int16(v))))
		} else {
			c.set(f.Rt, uint32(v))
		}
	case "lw", "ll":
		v, err := c.Read32(rs + simm)
		if err != nil {
			return err
		}
		c.set(f.Rt, v)
		if d.Mnemonic == "ll" {
			c.llAddr, c.llValid = rs+simm, true
		}
	case "sb":
		c.WriteByte(rs+simm, byte(rt))
		c.llValid = false
	case "sh":
		c.llValid = false
		return c.write16(rs+simm, uint16(rt))
	case "sw":
		c.llValid = false
		return c.Write32(rs+simm, rt)
	case "sc":
		addr := rs + simm
		if !c.llValid || c.llAddr != addr {
			c.set(f.Rt, 0)
			return nil
		}
		if err := c.Write32(addr, rt); err != nil {
			return err
		}
		c.llValid = false
		c.set(f.Rt, 1)

	case "beq":
		if rs == rt {
			c.PC = isa.BranchTarget(pc, f.Imm)
		}
	case "bne":
		if rs != rt {
			c.PC = isa.BranchTarget(pc, f.Imm)
		}
	case "j":
		c.PC = isa.JumpTarget(pc, f.Target)
	case "jal":
		c.set(isa.RegRA, pc+4)
		c.PC = isa.JumpTarget(pc, f.Target)

	default:
		return fmt.Errorf("%w: %s", isa.ErrUnknownWord, d.Mnemonic)
	}
	return nil
}

func boolWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
