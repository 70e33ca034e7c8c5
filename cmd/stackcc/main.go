// SPDX-License-Identifier: Apache-2.0
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/tebeka/atexit"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"stackcc/grammar"
	"stackcc/internal/compiler"
	"stackcc/internal/emu"
	"stackcc/internal/errors"
)

const usage = `Usage: stackcc [flags] <program>
       stackcc [flags] -f <file.c>

Compiles a program to x86-64 assembly (Intel syntax) on standard output.

Flags:
`

func main() {
	var (
		opts    compiler.Options
		file    string
		format  bool
		verbose int
	)

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.StringVar(&file, "f", "", "read the program from `file` (\"-\" for stdin)")
	flag.StringVar(&opts.Output, "o", "-", "write the listing to `path`")
	flag.BoolVar(&opts.DumpTokens, "tokens", false, "print the token stream to stderr")
	flag.BoolVar(&opts.DumpAST, "ast", false, "print the syntax tree to stderr")
	flag.BoolVar(&opts.EmitComments, "comments", false, "annotate the listing with one comment per statement")
	flag.BoolVar(&opts.Run, "run", false, "execute the listing and exit with its return value")
	flag.IntVar(&opts.MaxSteps, "max-steps", emu.DefaultMaxSteps, "instruction budget for -run")
	flag.BoolVar(&format, "fmt", false, "print the program in canonical layout instead of compiling it")
	flag.IntVar(&verbose, "v", 0, "log verbosity (0 = quiet)")
	flag.Parse()

	opts.Verbosity = verbose
	commonlog.Configure(opts.Verbosity, nil)

	name, source, err := readSource(file, flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		atexit.Exit(2)
	}

	reporter := errors.NewErrorReporter(name, source)

	if format {
		formatted, err := grammar.Format(source)
		if err != nil {
			fail(reporter, err)
		}
		fmt.Print(formatted)
		atexit.Exit(0)
	}

	startTime := time.Now()
	result, err := compiler.Compile(source, opts)
	if err != nil {
		fail(reporter, err)
	}

	fmt.Fprint(os.Stderr, reporter.FormatAll(result.Warnings))

	if opts.DumpTokens {
		for _, tok := range result.Tokens {
			fmt.Fprintf(os.Stderr, "%s\t%s\n", tok.Position, tok)
		}
	}
	if opts.DumpAST {
		fmt.Fprintln(os.Stderr, result.Program)
	}

	if !opts.Run || opts.Output != "-" {
		if err := writeListing(opts.Output, result.Assembly); err != nil {
			fmt.Fprintln(os.Stderr, err)
			atexit.Exit(1)
		}
	}

	if opts.Run {
		value, err := emu.Run(result.Assembly, opts.MaxSteps)
		if err != nil {
			color.Red("runtime error: %v", err)
			atexit.Exit(1)
		}
		fmt.Println(value)
		atexit.Exit(int(uint8(value)))
	}

	if verbose > 0 {
		color.Green("compiled %s in %s", name, time.Since(startTime))
	}
	atexit.Exit(0)
}

// readSource takes the program from -f when given, otherwise from the single
// positional argument.
func readSource(file string, args []string) (string, string, error) {
	switch {
	case file == "-":
		source, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return "<stdin>", string(source), nil
	case file != "":
		source, err := os.ReadFile(file)
		if err != nil {
			return "", "", fmt.Errorf("failed to read file: %w", err)
		}
		return file, string(source), nil
	case len(args) == 1:
		return "<arg>", args[0], nil
	}
	return "", "", fmt.Errorf("expected exactly one program, got %d arguments", len(args))
}

// writeListing writes through a buffered writer that is flushed even when a
// later stage exits early.
func writeListing(path, listing string) error {
	out := os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		out = f
	}

	w := bufio.NewWriter(out)
	atexit.Register(func() {
		w.Flush()
		if out != os.Stdout {
			out.Close()
		}
	})
	_, err := w.WriteString(listing)
	return err
}

func fail(reporter *errors.ErrorReporter, err error) {
	if compilerErr, ok := err.(*errors.CompilerError); ok {
		fmt.Fprint(os.Stderr, reporter.FormatError(compilerErr))
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
	color.Red("compilation failed")
	atexit.Exit(1)
}
