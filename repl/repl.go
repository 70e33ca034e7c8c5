// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"stackcc/internal/compiler"
	"stackcc/internal/emu"
	"stackcc/internal/errors"
)

const PROMPT = ">> "

const (
	cmdAssembly = ":asm"
	cmdQuit     = ":quit"
)

// Start reads one program per line, compiles it, runs it in the emulator and
// prints the value it returns. ":asm" toggles printing the listing and
// ":quit" ends the session, as does end of input.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	showAssembly := false

	for {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case cmdQuit:
			return
		case cmdAssembly:
			showAssembly = !showAssembly
			fmt.Fprintf(out, "assembly listing %s\n", onOff(showAssembly))
			continue
		}

		eval(out, line, showAssembly)
	}
}

func eval(out io.Writer, line string, showAssembly bool) {
	reporter := errors.NewErrorReporter("<repl>", line)

	value, result, err := compiler.Execute(line, compiler.Options{MaxSteps: emu.DefaultMaxSteps})
	if result != nil {
		fmt.Fprint(out, reporter.FormatAll(result.Warnings))
		if showAssembly {
			fmt.Fprint(out, result.Assembly)
		}
	}

	if err != nil {
		if compilerErr, ok := err.(*errors.CompilerError); ok {
			fmt.Fprint(out, reporter.FormatError(compilerErr))
			return
		}
		fmt.Fprintf(out, "runtime error: %v\n", err)
		return
	}

	fmt.Fprintf(out, "=> %d\n", value)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
