package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"stackcc/internal/errors"
)

const diagnosticSource = "stackcc"

// ConvertCompilerErrors transforms compiler diagnostics into LSP diagnostics.
// Positions become 0-based; a diagnostic without a known length spans one
// character so the editor still has something to underline.
func ConvertCompilerErrors(errs []*errors.CompilerError) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	for _, err := range errs {
		if err == nil {
			continue
		}
		diagnostics = append(diagnostics, convertCompilerError(err))
	}

	return diagnostics
}

// ConvertError reports a fatal compilation error. Errors that carry no
// position are pinned to the start of the document.
func ConvertError(err error) []protocol.Diagnostic {
	if compilerErr, ok := err.(*errors.CompilerError); ok {
		return []protocol.Diagnostic{convertCompilerError(compilerErr)}
	}

	return []protocol.Diagnostic{{
		Range:    protocol.Range{End: protocol.Position{Character: 1}},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString(diagnosticSource),
		Message:  err.Error(),
	}}
}

func convertCompilerError(err *errors.CompilerError) protocol.Diagnostic {
	length := err.Length
	if length <= 0 {
		length = 1
	}

	line := uint32(max(err.Position.Line-1, 0))
	start := uint32(max(err.Position.Column-1, 0))

	message := err.Message
	for _, suggestion := range err.Suggestions {
		message += "\n" + suggestion
	}

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: start},
			End:   protocol.Position{Line: line, Character: start + uint32(length)},
		},
		Severity: ptrSeverity(severityOf(err.Level)),
		Code:     &protocol.IntegerOrString{Value: err.Code},
		Source:   ptrString(diagnosticSource),
		Message:  message,
	}
}

func severityOf(level errors.ErrorLevel) protocol.DiagnosticSeverity {
	if level == errors.Warning {
		return protocol.DiagnosticSeverityWarning
	}
	return protocol.DiagnosticSeverityError
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
