package translate_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mipsasm/mipsasm/pkg/translate"
)

func inst(mnemonic string, operands ...string) translate.Instruction {
	return translate.NewInstruction(mnemonic, operands...)
}

var _ = Describe("Expand", func() {
	var tr *translate.Translator

	BeforeEach(func() {
		tr = translate.NewTranslator(nil)
	})

	Describe("li", func() {
		It("should use a single addiu for a small constant", func() {
			out, err := tr.Expand(inst("li", "$t0", "10"))

			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal([]translate.Instruction{
				inst("addiu", "$t0", "$zero", "10"),
			}))
		})

		It("should use addiu for the ends of the halfword range", func() {
			out, err := tr.Expand(inst("li", "$t0", "-32768"))
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal([]translate.Instruction{
				inst("addiu", "$t0", "$zero", "-32768"),
			}))

			out, err = tr.Expand(inst("li", "$t0", "32767"))
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(HaveLen(1))
			Expect(out[0].Mnemonic).To(Equal("addiu"))
		})

		It("should split a wide constant into lui and ori", func() {
			out, err := tr.Expand(inst("li", "$t0", "0x12345678"))

			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal([]translate.Instruction{
				inst("lui", "$t0", "0x1234"),
				inst("ori", "$t0", "$t0", "0x5678"),
			}))
		})

		It("should drop the ori when the low half is zero", func() {
			out, err := tr.Expand(inst("li", "$t0", "0x12340000"))

			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal([]translate.Instruction{
				inst("lui", "$t0", "0x1234"),
			}))
		})

		It("should read an unsigned literal as its signed bit pattern", func() {
			out, err := tr.Expand(inst("li", "$s1", "0xffffffff"))

			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal([]translate.Instruction{
				inst("addiu", "$s1", "$zero", "-1"),
			}))
		})

		It("should accept the most negative 32-bit value", func() {
			out, err := tr.Expand(inst("li", "$a0", "-2147483648"))

			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal([]translate.Instruction{
				inst("lui", "$a0", "0x8000"),
			}))
		})

		It("should load values just past the halfword range with two instructions", func() {
			out, err := tr.Expand(inst("li", "$t1", "32768"))

			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal([]translate.Instruction{
				inst("lui", "$t1", "0x0"),
				inst("ori", "$t1", "$t1", "0x8000"),
			}))
		})

		It("should only ever write the destination register", func() {
			out, err := tr.Expand(inst("li", "$s3", "0xdeadbeef"))

			Expect(err).NotTo(HaveOccurred())
			for _, i := range out {
				Expect(i.Operands[0]).To(Equal("$s3"))
			}
		})

		DescribeTable("should reject literals wider than 32 bits",
			func(literal string) {
				out, err := tr.Expand(inst("li", "$t0", literal))

				Expect(out).To(BeEmpty())
				Expect(err).To(MatchError(translate.ErrOperand))
				Expect(translate.KindOf(err)).To(Equal(translate.KindSemantic))
			},
			Entry("just above 2^32-1", "4294967296"),
			Entry("just below -2^31", "-2147483649"),
			Entry("not a number", "ten"),
		)

		DescribeTable("should reject the wrong operand count",
			func(operands ...string) {
				out, err := tr.Expand(inst("li", operands...))

				Expect(out).To(BeEmpty())
				Expect(err).To(MatchError(translate.ErrArgCount))
				Expect(translate.KindOf(err)).To(Equal(translate.KindStructural))
			},
			Entry("one operand", "$t0"),
			Entry("three operands", "$t0", "1", "2"),
		)

		It("should not check register names", func() {
			out, err := tr.Expand(inst("li", "$bogus", "1"))

			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(HaveLen(1))
		})
	})

	Describe("blt", func() {
		It("should expand to slt and bne through $at", func() {
			out, err := tr.Expand(inst("blt", "$t0", "$t1", "LABEL"))

			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal([]translate.Instruction{
				inst("slt", "$at", "$t0", "$t1"),
				inst("bne", "$at", "$zero", "LABEL"),
			}))
		})

		It("should reject the wrong operand count", func() {
			out, err := tr.Expand(inst("blt", "$t0", "$t1"))

			Expect(out).To(BeEmpty())
			Expect(err).To(MatchError(translate.ErrArgCount))
		})

		It("should leave label validation to pass two", func() {
			out, err := tr.Expand(inst("blt", "$t0", "$t1", "9lives"))

			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(HaveLen(2))
		})
	})

	DescribeTable("other comparison branches",
		func(mnemonic string, want ...translate.Instruction) {
			out, err := tr.Expand(inst(mnemonic, "$a0", "$a1", "done"))

			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal(want))
		},
		Entry("bgt", "bgt",
			inst("slt", "$at", "$a1", "$a0"),
			inst("bne", "$at", "$zero", "done")),
		Entry("ble", "ble",
			inst("slt", "$at", "$a1", "$a0"),
			inst("beq", "$at", "$zero", "done")),
		Entry("bge", "bge",
			inst("slt", "$at", "$a0", "$a1"),
			inst("beq", "$at", "$zero", "done")),
	)

	It("should expand move and nop", func() {
		out, err := tr.Expand(inst("move", "$v0", "$a0"))
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal([]translate.Instruction{inst("addu", "$v0", "$a0", "$zero")}))

		out, err = tr.Expand(inst("nop"))
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal([]translate.Instruction{inst("sll", "$zero", "$zero", "0")}))
	})

	It("should pass real and unknown instructions through unchanged", func() {
		out, err := tr.Expand(inst("add", "$t0", "$t1", "$t2"))
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal([]translate.Instruction{inst("add", "$t0", "$t1", "$t2")}))

		out, err = tr.Expand(inst("foo", "x"))
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal([]translate.Instruction{inst("foo", "x")}))
	})

	It("should not alias the caller's operands", func() {
		ops := []string{"$t0", "$t1", "$t2"}
		in := translate.Instruction{Mnemonic: "add", Operands: ops}

		out, err := tr.Expand(in)
		Expect(err).NotTo(HaveOccurred())
		out[0].Operands[0] = "$s0"

		Expect(ops[0]).To(Equal("$t0"))
	})

	It("should be deterministic", func() {
		a, errA := tr.Expand(inst("li", "$t0", "0x7fff1234"))
		b, errB := tr.Expand(inst("li", "$t0", "0x7fff1234"))

		Expect(errA).NotTo(HaveOccurred())
		Expect(errB).NotTo(HaveOccurred())
		Expect(a).To(Equal(b))
	})

	It("should count expanded words", func() {
		n, err := tr.Count(inst("li", "$t0", "0x12345678"))
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(2))

		_, err = tr.Count(inst("blt", "$t0"))
		Expect(err).To(HaveOccurred())
	})
})
