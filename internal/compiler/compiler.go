package compiler

import (
	"github.com/tliron/commonlog"

	"stackcc/internal/ast"
	"stackcc/internal/codegen"
	"stackcc/internal/emu"
	"stackcc/internal/errors"
	"stackcc/internal/parser"
	"stackcc/internal/semantic"
	"stackcc/token"
)

var log = commonlog.GetLogger("stackcc.compiler")

// Options configures one compilation. The zero value compiles quietly with
// plain output. Compile reads EmitComments and Execute reads MaxSteps; the
// remaining fields are driver settings that cmd/stackcc fills from its flags
// and acts on itself.
type Options struct {
	// EmitComments annotates the listing with one "#" line per statement.
	EmitComments bool
	// DumpTokens and DumpAST ask the driver to print intermediate stages.
	DumpTokens bool
	DumpAST    bool
	// Run executes the listing in the emulator after compiling.
	Run bool
	// MaxSteps bounds emulation; zero means emu.DefaultMaxSteps.
	MaxSteps int
	// Output is the listing path; empty or "-" means stdout.
	Output string
	// Verbosity is passed to commonlog.Configure by the drivers.
	Verbosity int
}

// Result carries every stage's output of a successful compilation.
type Result struct {
	Tokens   []token.Token
	Program  *ast.Program
	Warnings []*errors.CompilerError
	Assembly string
}

// Compile runs the whole pipeline. The returned error, if any, is the first
// fatal *errors.CompilerError; no partial result is returned with it.
func Compile(source string, opts Options) (*Result, error) {
	parsed, err := parser.Parse(source)
	if err != nil {
		log.Debugf("parse failed: %v", err)
		return nil, err
	}
	log.Debugf("parsed %d statements, %d locals", len(parsed.Program.Statements), parsed.Program.Locals)

	warnings := semantic.NewAnalyzer().Analyze(parsed.Program)

	var out codegen.TextEmitter
	gen := codegen.NewGenerator(&out)
	gen.EmitComments = opts.EmitComments
	if err := gen.Generate(parsed.Program); err != nil {
		log.Debugf("generation failed: %v", err)
		return nil, err
	}

	return &Result{
		Tokens:   parsed.Tokens,
		Program:  parsed.Program,
		Warnings: warnings,
		Assembly: out.String(),
	}, nil
}

// Execute compiles source and runs it in the emulator, returning the value
// main leaves in rax.
func Execute(source string, opts Options) (int64, *Result, error) {
	result, err := Compile(source, opts)
	if err != nil {
		return 0, nil, err
	}

	value, err := emu.Run(result.Assembly, opts.MaxSteps)
	if err != nil {
		return 0, result, err
	}
	return value, result, nil
}
