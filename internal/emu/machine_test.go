package emu

import (
	"math"
	"strconv"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func listing(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

// wrap surrounds body with the header and frame setup the generator emits.
func wrap(body ...string) string {
	lines := []string{
		".intel_syntax noprefix",
		".global main",
		"main:",
		"  push rbp",
		"  mov rbp, rsp",
		"  sub rsp, 16",
	}
	lines = append(lines, body...)
	lines = append(lines, "  mov rsp, rbp", "  pop rbp", "  ret")
	return listing(lines...)
}

var _ = Describe("Machine", func() {
	var m *Machine

	BeforeEach(func() {
		m = NewMachine()
	})

	execute := func(src string) (int64, error) {
		program, err := Parse(src)
		Expect(err).NotTo(HaveOccurred())
		return m.Execute(program)
	}

	Context("Stack and moves", func() {
		It("should return rax at the final ret", func() {
			v, err := execute(wrap("  push 42", "  pop rax"))
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(int64(42)))
		})

		It("should store and load through a register address", func() {
			v, err := execute(wrap(
				"  mov rax, rbp",
				"  sub rax, 8",
				"  push rax",
				"  push 7",
				"  pop rdi",
				"  pop rax",
				"  mov [rax], rdi",
				"  mov rax, rbp",
				"  sub rax, 8",
				"  mov rax, [rax]",
			))
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(int64(7)))
		})

		It("should restore the stack pointer", func() {
			_, err := execute(wrap("  push 1", "  push 2", "  pop rax", "  pop rax"))
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Register("rsp")).To(Equal(stackTop))
		})

		It("should reject push immediates wider than 32 bits", func() {
			_, err := execute(wrap("  push 2147483648", "  pop rax"))
			Expect(err).To(MatchError(ErrImmediateRange))

			v, err := execute(wrap("  push -2147483648", "  pop rax"))
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(int64(math.MinInt32)))
		})

		It("should load a 64-bit immediate through mov", func() {
			v, err := execute(wrap("  mov rax, 9223372036854775807", "  push rax", "  pop rax"))
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(int64(math.MaxInt64)))
		})

		It("should reject arithmetic immediates wider than 32 bits", func() {
			_, err := execute(wrap("  mov rax, 1", "  add rax, 4294967296"))
			Expect(err).To(MatchError(ErrImmediateRange))
		})

		It("should read unwritten memory as zero", func() {
			v, err := execute(wrap("  mov rax, rbp", "  sub rax, 16", "  mov rax, [rax]"))
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(int64(0)))
		})
	})

	Context("Arithmetic", func() {
		binary := func(a, b int64, op ...string) (int64, error) {
			body := []string{
				"  mov rax, " + formatInt(a),
				"  push rax",
				"  mov rax, " + formatInt(b),
				"  push rax",
				"  pop rdi",
				"  pop rax",
			}
			body = append(body, op...)
			return execute(wrap(body...))
		}

		It("should add, subtract and multiply", func() {
			Expect(binary(2, 3, "  add rax, rdi")).To(Equal(int64(5)))
			Expect(binary(2, 3, "  sub rax, rdi")).To(Equal(int64(-1)))
			Expect(binary(-4, 3, "  imul rax, rdi")).To(Equal(int64(-12)))
		})

		It("should truncate division toward zero", func() {
			Expect(binary(7, 2, "  cqo", "  idiv rdi")).To(Equal(int64(3)))
			Expect(binary(-7, 2, "  cqo", "  idiv rdi")).To(Equal(int64(-3)))
			Expect(m.Register("rdx")).To(Equal(int64(-1)))
		})

		It("should fault on division by zero", func() {
			_, err := binary(1, 0, "  cqo", "  idiv rdi")
			Expect(err).To(MatchError(ErrDivideByZero))

			var runtimeErr *RuntimeError
			Expect(err).To(BeAssignableToTypeOf(runtimeErr))
			Expect(err.Error()).To(ContainSubstring("idiv rdi"))
		})

		It("should fault on the one overflowing quotient", func() {
			_, err := binary(math.MinInt64, -1, "  cqo", "  idiv rdi")
			Expect(err).To(MatchError(ErrDivideOverflow))
		})

		It("should wrap on overflow like the hardware", func() {
			Expect(binary(math.MaxInt64, 1, "  add rax, rdi")).To(Equal(int64(math.MinInt64)))
		})
	})

	Context("Comparisons", func() {
		compare := func(a, b int64, set string) int64 {
			v, err := execute(wrap(
				"  mov rax, "+formatInt(a),
				"  push rax",
				"  mov rax, "+formatInt(b),
				"  push rax",
				"  pop rdi",
				"  pop rax",
				"  cmp rax, rdi",
				"  "+set+" al",
				"  movzb rax, al",
			))
			Expect(err).NotTo(HaveOccurred())
			return v
		}

		It("should materialize 0 or 1", func() {
			Expect(compare(1, 1, "sete")).To(Equal(int64(1)))
			Expect(compare(1, 2, "sete")).To(Equal(int64(0)))
			Expect(compare(1, 2, "setne")).To(Equal(int64(1)))
			Expect(compare(1, 2, "setl")).To(Equal(int64(1)))
			Expect(compare(2, 2, "setl")).To(Equal(int64(0)))
			Expect(compare(2, 2, "setle")).To(Equal(int64(1)))
			Expect(compare(-1, 0, "setl")).To(Equal(int64(1)))
		})

		It("should clear the upper bytes with movzb", func() {
			v, err := execute(wrap(
				"  mov rax, 4096",
				"  cmp rax, 0",
				"  setne al",
				"  movzb rax, al",
			))
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(int64(1)))
		})
	})

	Context("Control flow", func() {
		It("should take je only when equal", func() {
			v, err := execute(wrap(
				"  push 0",
				"  pop rax",
				"  cmp rax, 0",
				"  je .Lelse1",
				"  push 1",
				"  pop rax",
				"  jmp .Lend1",
				".Lelse1:",
				"  push 2",
				"  pop rax",
				".Lend1:",
			))
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(int64(2)))
		})

		It("should stop an endless loop at the step limit", func() {
			m.MaxSteps = 100
			_, err := execute(wrap(".Lbegin1:", "  jmp .Lbegin1"))
			Expect(err).To(MatchError(ErrStepLimit))
			Expect(m.Steps()).To(Equal(100))
		})

		It("should reject unknown instructions", func() {
			_, err := execute(wrap("  nop"))
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring(`unknown instruction "nop"`))
		})

		It("should reject a ret that does not leave main", func() {
			_, err := execute(listing("main:", "  push 5", "  ret"))
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("return to unknown address 5"))
		})

		It("should report running off the end", func() {
			_, err := execute(listing("main:", "  push 1"))
			Expect(err).To(HaveOccurred())
		})
	})
})

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
