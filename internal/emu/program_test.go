package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"stackcc/internal/emu"
)

var _ = Describe("Parse", func() {
	It("should skip directives, comments and blank lines", func() {
		program, err := emu.Parse(".intel_syntax noprefix\n.global main\nmain:\n  # note\n\n  push 1 # trailing\n  ret\n")
		Expect(err).NotTo(HaveOccurred())
		Expect(program.Insts).To(HaveLen(2))
		Expect(program.Insts[0].OpCode).To(Equal("push"))
		Expect(program.Insts[0].Operands).To(Equal([]string{"1"}))
		Expect(program.Insts[0].Line).To(Equal(6))
		Expect(program.Labels).To(HaveKeyWithValue("main", 0))
	})

	It("should split operands", func() {
		program, err := emu.Parse("  mov [rax], rdi\n")
		Expect(err).NotTo(HaveOccurred())
		Expect(program.Insts[0].Operands).To(Equal([]string{"[rax]", "rdi"}))
		Expect(program.Insts[0].String()).To(Equal("mov [rax], rdi"))
	})

	It("should point labels at the next instruction", func() {
		program, err := emu.Parse("  push 1\n.Lend1:\n.Lend2:\n  ret\n")
		Expect(err).NotTo(HaveOccurred())
		Expect(program.Labels).To(HaveKeyWithValue(".Lend1", 1))
		Expect(program.Labels).To(HaveKeyWithValue(".Lend2", 1))
	})

	It("should reject undefined and duplicate labels", func() {
		_, err := emu.Parse("  jmp .Lnowhere\n")
		Expect(err).To(MatchError(ContainSubstring("undefined label")))

		_, err = emu.Parse(".L1:\n.L1:\n  ret\n")
		Expect(err).To(MatchError(ContainSubstring("duplicate label")))
	})
})

var _ = Describe("Run", func() {
	It("should execute a listing end to end", func() {
		v, err := emu.Run(".intel_syntax noprefix\n.global main\nmain:\n  push rbp\n  mov rbp, rsp\n  sub rsp, 0\n  push 9\n  pop rax\n  mov rsp, rbp\n  pop rbp\n  ret\n", 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(int64(9)))
	})

	It("should honor an explicit step limit", func() {
		_, err := emu.Run("main:\n.Lbegin1:\n  jmp .Lbegin1\n", 10)
		Expect(err).To(MatchError(emu.ErrStepLimit))
	})
})
