package codegen

import "strings"

//go:generate mockgen -write_package_comment=false -source=emitter.go -package=$GOPACKAGE -destination=mock_emitter_test.go

// Emitter receives assembly one line at a time, without a trailing newline.
type Emitter interface {
	Emit(line string)
}

// TextEmitter collects lines into a newline-terminated listing.
type TextEmitter struct {
	buf strings.Builder
}

func (e *TextEmitter) Emit(line string) {
	e.buf.WriteString(line)
	e.buf.WriteByte('\n')
}

func (e *TextEmitter) String() string {
	return e.buf.String()
}
