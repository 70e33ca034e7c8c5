package emu

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tliron/commonlog"
)

// DefaultMaxSteps bounds a run so that non-terminating programs fail instead
// of hanging the caller.
const DefaultMaxSteps = 1_000_000

const (
	stackTop    int64 = 0x7fff_0000
	haltAddress int64 = -1
)

var (
	ErrStepLimit      = errors.New("step limit exceeded")
	ErrDivideByZero   = errors.New("integer division by zero")
	ErrDivideOverflow = errors.New("integer division overflow")
	ErrImmediateRange = errors.New("immediate operand does not fit in 32 bits")
)

var log = commonlog.GetLogger("stackcc.emu")

// RuntimeError wraps a fault with the instruction that raised it.
type RuntimeError struct {
	Inst Inst
	Err  error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Inst.Line, e.Inst, e.Err)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// Machine executes the x86-64 subset emitted by the code generator: 64-bit
// push/pop, register and memory moves, integer arithmetic, compare-and-set
// and the two jumps. Memory is a sparse map of 8-byte words; unwritten words
// read as zero.
type Machine struct {
	MaxSteps int

	regs   map[string]int64
	memory map[int64]int64
	// cmp keeps the operands of the last cmp; the flags are derived lazily.
	cmpLeft, cmpRight int64

	pc     int
	steps  int
	halted bool
}

func NewMachine() *Machine {
	return &Machine{MaxSteps: DefaultMaxSteps}
}

// Run parses and executes listing, returning rax at the final ret of main.
func Run(listing string, maxSteps int) (int64, error) {
	program, err := Parse(listing)
	if err != nil {
		return 0, err
	}
	m := NewMachine()
	if maxSteps > 0 {
		m.MaxSteps = maxSteps
	}
	return m.Execute(program)
}

// Steps is the number of instructions executed by the last Execute.
func (m *Machine) Steps() int {
	return m.steps
}

// Register reads a 64-bit register after execution.
func (m *Machine) Register(name string) int64 {
	return m.regs[name]
}

// Load reads the word at addr.
func (m *Machine) Load(addr int64) int64 {
	return m.memory[addr]
}

func (m *Machine) reset() {
	m.regs = map[string]int64{
		"rax": 0, "rdi": 0, "rdx": 0, "rbp": 0, "rsp": stackTop,
	}
	m.memory = make(map[int64]int64)
	m.cmpLeft, m.cmpRight = 0, 0
	m.pc, m.steps, m.halted = 0, 0, false

	// The caller's return address; ret to it ends the run.
	m.push(haltAddress)
}

// Execute runs program from its first instruction until main returns.
func (m *Machine) Execute(program *Program) (int64, error) {
	m.reset()

	for !m.halted {
		if m.pc < 0 || m.pc >= len(program.Insts) {
			return 0, fmt.Errorf("control reached end of program without ret")
		}
		if m.steps >= m.MaxSteps {
			return 0, &RuntimeError{Inst: program.Insts[m.pc], Err: ErrStepLimit}
		}

		inst := program.Insts[m.pc]
		m.pc++
		m.steps++
		if err := m.runInst(inst, program); err != nil {
			return 0, &RuntimeError{Inst: inst, Err: err}
		}
	}

	log.Debugf("halted after %d steps, rax=%d", m.steps, m.regs["rax"])
	return m.regs["rax"], nil
}

func (m *Machine) runInst(inst Inst, program *Program) error {
	instFuncs := map[string]func([]string) error{
		"push":  m.runPush,
		"pop":   m.runPop,
		"mov":   m.runMov,
		"add":   m.arith(func(a, b int64) int64 { return a + b }),
		"sub":   m.arith(func(a, b int64) int64 { return a - b }),
		"imul":  m.arith(func(a, b int64) int64 { return a * b }),
		"cqo":   m.runCqo,
		"idiv":  m.runIdiv,
		"cmp":   m.runCmp,
		"sete":  m.setcc(func(a, b int64) bool { return a == b }),
		"setne": m.setcc(func(a, b int64) bool { return a != b }),
		"setl":  m.setcc(func(a, b int64) bool { return a < b }),
		"setle": m.setcc(func(a, b int64) bool { return a <= b }),
		"movzb": m.runMovzb,
		"jmp":   func(ops []string) error { return m.jump(ops, program, true) },
		"je":    func(ops []string) error { return m.jump(ops, program, m.cmpLeft == m.cmpRight) },
		"ret":   m.runRet,
	}

	instFunc, ok := instFuncs[inst.OpCode]
	if !ok {
		return fmt.Errorf("unknown instruction %q", inst.OpCode)
	}
	return instFunc(inst.Operands)
}

func expectOperands(ops []string, n int) error {
	if len(ops) != n {
		return fmt.Errorf("expected %d operands, got %d", n, len(ops))
	}
	return nil
}

func (m *Machine) push(v int64) {
	m.regs["rsp"] -= 8
	m.memory[m.regs["rsp"]] = v
}

func (m *Machine) pop() int64 {
	v := m.memory[m.regs["rsp"]]
	m.regs["rsp"] += 8
	return v
}

func isRegister(name string) bool {
	switch name {
	case "rax", "rdi", "rdx", "rbp", "rsp":
		return true
	}
	return false
}

// memoryOperand returns the register inside "[reg]".
func memoryOperand(operand string) (string, bool) {
	if !strings.HasPrefix(operand, "[") || !strings.HasSuffix(operand, "]") {
		return "", false
	}
	reg := strings.TrimSpace(operand[1 : len(operand)-1])
	return reg, isRegister(reg)
}

// readOperand evaluates a register, immediate or [reg] source.
func (m *Machine) readOperand(operand string) (int64, error) {
	if isRegister(operand) {
		return m.regs[operand], nil
	}
	if reg, ok := memoryOperand(operand); ok {
		return m.memory[m.regs[reg]], nil
	}
	v, err := strconv.ParseInt(operand, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid operand %q", operand)
	}
	return v, nil
}

// readImm32Operand reads a source operand of an instruction whose immediate
// form is sign-extended from 32 bits. Only mov accepts a full 64-bit
// immediate.
func (m *Machine) readImm32Operand(operand string) (int64, error) {
	v, err := m.readOperand(operand)
	if err != nil {
		return 0, err
	}
	if _, mem := memoryOperand(operand); isRegister(operand) || mem {
		return v, nil
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, ErrImmediateRange
	}
	return v, nil
}

func (m *Machine) writeRegister(operand string, v int64) error {
	if !isRegister(operand) {
		return fmt.Errorf("invalid destination %q", operand)
	}
	m.regs[operand] = v
	return nil
}

func (m *Machine) runPush(ops []string) error {
	if err := expectOperands(ops, 1); err != nil {
		return err
	}
	v, err := m.readImm32Operand(ops[0])
	if err != nil {
		return err
	}
	m.push(v)
	return nil
}

func (m *Machine) runPop(ops []string) error {
	if err := expectOperands(ops, 1); err != nil {
		return err
	}
	if !isRegister(ops[0]) {
		return fmt.Errorf("invalid destination %q", ops[0])
	}
	m.regs[ops[0]] = m.pop()
	return nil
}

func (m *Machine) runMov(ops []string) error {
	if err := expectOperands(ops, 2); err != nil {
		return err
	}
	v, err := m.readOperand(ops[1])
	if err != nil {
		return err
	}
	if reg, ok := memoryOperand(ops[0]); ok {
		m.memory[m.regs[reg]] = v
		return nil
	}
	return m.writeRegister(ops[0], v)
}

func (m *Machine) arith(op func(a, b int64) int64) func([]string) error {
	return func(ops []string) error {
		if err := expectOperands(ops, 2); err != nil {
			return err
		}
		b, err := m.readImm32Operand(ops[1])
		if err != nil {
			return err
		}
		a, err := m.readOperand(ops[0])
		if err != nil {
			return err
		}
		return m.writeRegister(ops[0], op(a, b))
	}
}

func (m *Machine) runCqo(ops []string) error {
	if err := expectOperands(ops, 0); err != nil {
		return err
	}
	m.regs["rdx"] = m.regs["rax"] >> 63
	return nil
}

// runIdiv divides rdx:rax by the operand. Only the sign-extended form left
// by cqo is supported, so rdx is not consulted beyond that.
func (m *Machine) runIdiv(ops []string) error {
	if err := expectOperands(ops, 1); err != nil {
		return err
	}
	divisor, err := m.readOperand(ops[0])
	if err != nil {
		return err
	}
	dividend := m.regs["rax"]
	switch {
	case divisor == 0:
		return ErrDivideByZero
	case dividend == math.MinInt64 && divisor == -1:
		return ErrDivideOverflow
	}
	m.regs["rax"] = dividend / divisor
	m.regs["rdx"] = dividend % divisor
	return nil
}

func (m *Machine) runCmp(ops []string) error {
	if err := expectOperands(ops, 2); err != nil {
		return err
	}
	a, err := m.readOperand(ops[0])
	if err != nil {
		return err
	}
	b, err := m.readOperand(ops[1])
	if err != nil {
		return err
	}
	m.cmpLeft, m.cmpRight = a, b
	return nil
}

// setcc writes the condition into al, leaving the upper bytes of rax alone.
func (m *Machine) setcc(cond func(a, b int64) bool) func([]string) error {
	return func(ops []string) error {
		if err := expectOperands(ops, 1); err != nil {
			return err
		}
		if ops[0] != "al" {
			return fmt.Errorf("invalid destination %q", ops[0])
		}
		var bit int64
		if cond(m.cmpLeft, m.cmpRight) {
			bit = 1
		}
		m.regs["rax"] = m.regs["rax"]&^0xff | bit
		return nil
	}
}

func (m *Machine) runMovzb(ops []string) error {
	if err := expectOperands(ops, 2); err != nil {
		return err
	}
	if ops[1] != "al" {
		return fmt.Errorf("invalid source %q", ops[1])
	}
	return m.writeRegister(ops[0], m.regs["rax"]&0xff)
}

func (m *Machine) jump(ops []string, program *Program, taken bool) error {
	if err := expectOperands(ops, 1); err != nil {
		return err
	}
	target, ok := program.Labels[ops[0]]
	if !ok {
		return fmt.Errorf("undefined label %q", ops[0])
	}
	if taken {
		m.pc = target
	}
	return nil
}

func (m *Machine) runRet(ops []string) error {
	if err := expectOperands(ops, 0); err != nil {
		return err
	}
	if addr := m.pop(); addr != haltAddress {
		return fmt.Errorf("return to unknown address %d", addr)
	}
	m.halted = true
	return nil
}
