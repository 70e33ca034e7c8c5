package emu

import (
	"fmt"
	"strings"
)

// Program is a parsed assembly listing. Directives and comments are dropped;
// labels resolve to the index of the instruction that follows them.
type Program struct {
	Insts  []Inst
	Labels map[string]int
}

type Inst struct {
	// OpCode is the lower-case mnemonic, e.g. "mov".
	OpCode   string
	Operands []string
	// Line is the 1-based line of the instruction in the listing.
	Line int
}

func (i Inst) String() string {
	if len(i.Operands) == 0 {
		return i.OpCode
	}
	return i.OpCode + " " + strings.Join(i.Operands, ", ")
}

// Parse reads an Intel-syntax listing as produced by the code generator.
func Parse(listing string) (*Program, error) {
	program := &Program{Labels: make(map[string]int)}

	for n, raw := range strings.Split(listing, "\n") {
		line := strings.TrimSpace(raw)
		if i := strings.Index(line, "#"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" {
			continue
		}

		if strings.HasSuffix(line, ":") {
			name := strings.TrimSuffix(line, ":")
			if _, dup := program.Labels[name]; dup {
				return nil, fmt.Errorf("line %d: duplicate label %q", n+1, name)
			}
			program.Labels[name] = len(program.Insts)
			continue
		}

		// Assembler directives such as .intel_syntax and .global.
		if strings.HasPrefix(line, ".") {
			continue
		}

		program.Insts = append(program.Insts, parseInst(line, n+1))
	}

	for _, inst := range program.Insts {
		if inst.OpCode == "jmp" || inst.OpCode == "je" {
			if len(inst.Operands) != 1 {
				return nil, fmt.Errorf("line %d: %s expects one operand", inst.Line, inst.OpCode)
			}
			if _, ok := program.Labels[inst.Operands[0]]; !ok {
				return nil, fmt.Errorf("line %d: undefined label %q", inst.Line, inst.Operands[0])
			}
		}
	}

	return program, nil
}

func parseInst(line string, lineNo int) Inst {
	opcode, rest, _ := strings.Cut(line, " ")
	inst := Inst{OpCode: strings.ToLower(opcode), Line: lineNo}

	rest = strings.TrimSpace(rest)
	if rest == "" {
		return inst
	}
	for _, operand := range strings.Split(rest, ",") {
		inst.Operands = append(inst.Operands, strings.TrimSpace(operand))
	}
	return inst
}
