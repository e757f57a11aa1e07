package isa_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mipsasm/mipsasm/pkg/isa"
)

var _ = Describe("Table", func() {
	It("should map every real mnemonic to exactly one word", func() {
		seen := make(map[uint16]string)
		for _, m := range isa.Mnemonics(false) {
			e, ok := isa.Lookup(m)
			Expect(ok).To(BeTrue())
			Expect(e.Format).NotTo(Equal(isa.FormatPseudo))

			key := uint16(e.Opcode())<<8 | uint16(e.Code)
			if e.Opcode() != isa.OpSpecial {
				key = uint16(e.Opcode()) << 8
			}
			Expect(seen).NotTo(HaveKey(key), m)
			seen[key] = m
		}
	})

	It("should list pseudo-instructions only when asked", func() {
		Expect(isa.Mnemonics(false)).NotTo(ContainElement("li"))
		Expect(isa.Mnemonics(true)).To(ContainElements("li", "blt", "add"))
	})

	It("should not know an unsupported mnemonic", func() {
		_, ok := isa.Lookup("foo")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Decoder", func() {
	// add $t0, $t1, $t2 -> 0x012a4020
	It("should decode add $t0, $t1, $t2", func() {
		d, err := isa.Decode(0x012a4020)

		Expect(err).NotTo(HaveOccurred())
		Expect(d.Mnemonic).To(Equal("add"))
		Expect(d.Entry.Format).To(Equal(isa.FormatR))
		Expect(d.Fields.Rd).To(Equal(uint8(8)))
		Expect(d.Fields.Rs).To(Equal(uint8(9)))
		Expect(d.Fields.Rt).To(Equal(uint8(10)))
	})

	// lui $t0, 0x1234 -> 0x3c081234
	It("should decode lui $t0, 0x1234", func() {
		d, err := isa.Decode(0x3c081234)

		Expect(err).NotTo(HaveOccurred())
		Expect(d.Mnemonic).To(Equal("lui"))
		Expect(d.Fields.Rt).To(Equal(uint8(8)))
		Expect(d.Fields.Imm).To(Equal(uint16(0x1234)))
	})

	It("should reject an opcode it does not know", func() {
		_, err := isa.Decode(0xfc000000)

		Expect(err).To(MatchError(isa.ErrUnknownWord))
	})

	It("should reject an unknown function code", func() {
		_, err := isa.Decode(0x0000003f)

		Expect(err).To(MatchError(isa.ErrUnknownWord))
	})
})

var _ = Describe("Disassemble", func() {
	DescribeTable("should render source text",
		func(word, addr uint32, want string) {
			got, err := isa.Disassemble(word, addr)

			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("add", uint32(0x012a4020), uint32(0), "add $t0, $t1, $t2"),
		Entry("jr", uint32(0x03e00008), uint32(0), "jr $ra"),
		Entry("sll", uint32(0x00094100), uint32(0), "sll $t0, $t1, 4"),
		Entry("nop", uint32(0x00000000), uint32(0), "sll $zero, $zero, 0"),
		Entry("addiu", uint32(0x2408000a), uint32(0), "addiu $t0, $zero, 10"),
		Entry("addi negative", uint32(0x23bdfff8), uint32(0), "addi $sp, $sp, -8"),
		Entry("ori", uint32(0x35085678), uint32(0), "ori $t0, $t0, 0x5678"),
		Entry("lui", uint32(0x3c081234), uint32(0), "lui $t0, 0x1234"),
		Entry("lw", uint32(0x8fa80004), uint32(0), "lw $t0, 4($sp)"),
		Entry("sw", uint32(0xafbffffc), uint32(0), "sw $ra, -4($sp)"),
		Entry("beq backward", uint32(0x1109fffd), uint32(8), "beq $t0, $t1, 0x00000000"),
		Entry("j", uint32(0x08100000), uint32(0), "j 0x00400000"),
	)
})

var _ = Describe("Fields", func() {
	It("should split what EncodeR packs", func() {
		f := isa.Split(isa.EncodeR(31, 30, 29, 28, 0x3f))

		Expect(f).To(Equal(isa.Fields{
			Opcode: 0, Rs: 31, Rt: 30, Rd: 29, Shamt: 28, Funct: 0x3f,
			Imm: uint16(29<<11 | 28<<6 | 0x3f), Target: 31<<21 | 30<<16 | 29<<11 | 28<<6 | 0x3f,
		}))
	})

	It("should keep the target inside 26 bits", func() {
		Expect(isa.EncodeJ(isa.OpJ, 0xffffffff)).To(Equal(uint32(0x0bffffff)))
	})

	It("should sign-extend immediates", func() {
		Expect(isa.SignExtend(0x8000)).To(Equal(uint32(0xffff8000)))
		Expect(isa.SignExtend(0x7fff)).To(Equal(uint32(0x00007fff)))
	})
})
