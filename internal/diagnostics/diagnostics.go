// Package diagnostics renders compiler errors to stderr in the
// "<file>:<line>:<column>: <kind> error: <message>" form, matching the
// teacher's token.Token.String() span-rendering convention
// (SPEC_FULL section 2.1). No logging framework is used: this is a
// single-shot batch compiler with no background services, and the
// teacher itself never reaches for a logger in its lexer/parser/
// typesystem packages — see DESIGN.md for the standard-library
// justification.
package diagnostics

import (
	"fmt"
	"io"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/pfn/internal/token"
)

// Kind distinguishes the pipeline stage that raised a diagnostic.
type Kind string

const (
	Lexical  Kind = "lexical"
	Syntax   Kind = "syntax"
	Semantic Kind = "semantic"
	Codegen  Kind = "codegen"
)

// Diagnostic is a single reportable error, carrying the span it is
// anchored to (spec.md section 7's error taxonomy).
type Diagnostic struct {
	Kind    Kind
	Message string
	Span    token.Span
	File    string
}

const (
	colorRed    = "\x1b[31m"
	colorBold   = "\x1b[1m"
	colorReset  = "\x1b[0m"
)

// Render formats a Diagnostic as a single line, colourised only when
// w is a terminal.
func Render(w io.Writer, d Diagnostic) {
	file := d.File
	if file == "" {
		file = "<input>"
	}
	plain := fmt.Sprintf("%s:%d:%d: %s error: %s\n", file, d.Span.Line, d.Span.Column, d.Kind, d.Message)

	if f, ok := w.(interface{ Fd() uintptr }); ok && isatty.IsTerminal(f.Fd()) {
		fmt.Fprintf(w, "%s%s:%d:%d:%s %s%s%s error:%s %s\n",
			colorBold, file, d.Span.Line, d.Span.Column, colorReset,
			colorBold, colorRed, d.Kind, colorReset,
			d.Message)
		return
	}
	fmt.Fprint(w, plain)
}

// Error adapts a Diagnostic to the error interface for propagation
// through the compiler API (pkg/compiler).
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s error: %s", d.File, d.Span.Line, d.Span.Column, d.Kind, d.Message)
}
