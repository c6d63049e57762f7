package main

import (
	"os"

	"github.com/funvibe/pfn/internal/diagnostics"
	"github.com/funvibe/pfn/internal/lexer"
	"github.com/funvibe/pfn/internal/parser"
	"github.com/funvibe/pfn/internal/token"
	"github.com/funvibe/pfn/internal/typechecker"
)

// report renders a pipeline-stage error through internal/diagnostics
// so the CLI gets the same colourised, span-anchored output on a
// terminal as any other caller of that package, instead of each stage's
// own plain Error() string (which already embeds span/kind text but
// isn't colourised or uniformly "<file>:" prefixed).
func report(file string, err error) {
	d := diagnostics.Diagnostic{File: file, Message: err.Error()}

	switch e := err.(type) {
	case *lexer.Error:
		d.Kind = diagnostics.Lexical
		d.Span = e.Span
		d.Message = e.Message
	case *parser.Error:
		d.Kind = diagnostics.Syntax
		d.Span = e.Token.Span
		d.Message = e.Message
	case *typechecker.Error:
		d.Kind = diagnostics.Semantic
		d.Span = e.Span
		d.Message = e.Message
	default:
		d.Kind = diagnostics.Codegen
		d.Span = token.Span{}
	}

	diagnostics.Render(os.Stderr, d)
}
