// Package compiler is pfn's embeddable Core API (spec.md section 6):
// the six pipeline entry points a host program (the CLI in cmd/pfn, or
// any other Go program wanting to compile pfn source) calls instead of
// reaching into internal/lexer, internal/parser, internal/typechecker,
// and internal/codegen directly. It re-exports just enough of those
// packages' types for a caller to work with tokens, the AST, and
// checked-module results without importing internal/* itself, mirroring
// the thin re-export style of the teacher's pkg/ext.
package compiler

import (
	"fmt"

	"github.com/funvibe/pfn/internal/ast"
	"github.com/funvibe/pfn/internal/codegen"
	"github.com/funvibe/pfn/internal/lexer"
	"github.com/funvibe/pfn/internal/parser"
	"github.com/funvibe/pfn/internal/token"
	"github.com/funvibe/pfn/internal/typechecker"
)

// Re-exported types so callers need only import pkg/compiler.
type (
	Token        = token.Token
	Module       = ast.Module
	LexerError   = lexer.Error
	ModuleResult = typechecker.ModuleResult
)

// Tokenize lowers source text to a token stream (spec.md section 6:
// `tokenize(source) -> Result<list<Token>, LexerError>`). Go has no
// native Result type, so the lexer's own (value, *Error) pair stands
// in for it directly, same as internal/lexer.Tokenize itself returns.
func Tokenize(source string) ([]Token, *LexerError) {
	return lexer.Tokenize(source)
}

// Parse builds a Module AST from a token stream (spec.md section 6:
// `parse(tokens) -> Result<Module, ParseError>`).
func Parse(tokens []Token) (*Module, error) {
	return parser.Parse(tokens)
}

// CheckModule type-checks mod and returns the per-definition inferred
// types alongside it (spec.md section 6: `check_module(Module) ->
// Result<Module, TypeError>` — "the elaborated AST may carry inferred
// types as side-band annotations"). internal/typechecker keeps those
// annotations in a side table (ModuleResult) rather than mutating the
// AST in place, so mod itself is returned unchanged: the side-band is
// the ModuleResult, not a new tree.
func CheckModule(mod *Module) (*Module, *ModuleResult, error) {
	result, err := typechecker.NewChecker().CheckModule(mod)
	if err != nil {
		return nil, nil, err
	}
	return mod, result, nil
}

// GenerateModule lowers a module to host source text (spec.md section
// 6: `generate_module(Module) -> string`). It does not require
// CheckModule to have run first — generation only consults the AST —
// but spec.md's pipeline always runs it after a successful check.
func GenerateModule(mod *Module) (string, error) {
	return codegen.GenerateModule(mod)
}

// CompileSource runs the full pipeline — tokenize, parse, typecheck,
// generate — and returns the generated host source (spec.md section
// 6: `compile_source(source) -> string`, "(optionally typecheck)").
// Unlike GenerateModule on its own, CompileSource always typechecks: a
// program with a type error has nothing meaningful to generate code for.
func CompileSource(source string) (string, error) {
	tokens, lexErr := Tokenize(source)
	if lexErr != nil {
		return "", lexErr
	}

	mod, err := Parse(tokens)
	if err != nil {
		return "", err
	}

	mod, _, err = CheckModule(mod)
	if err != nil {
		return "", err
	}

	return GenerateModule(mod)
}

// TypecheckSource runs only the first three pipeline stages and
// reports whether the source is well-typed (spec.md section 6:
// `typecheck_source(source) -> (ok: bool, message: string)`). message
// is empty on success, and holds the lexer/parser/type error text on
// failure.
func TypecheckSource(source string) (ok bool, message string) {
	tokens, lexErr := Tokenize(source)
	if lexErr != nil {
		return false, lexErr.Error()
	}

	mod, err := Parse(tokens)
	if err != nil {
		return false, err.Error()
	}

	if _, _, err := CheckModule(mod); err != nil {
		return false, err.Error()
	}

	return true, ""
}

// CompileResult bundles every pipeline stage's output for callers
// (cmd/pfn's --dump-ast/--dump-types flags) that need more than
// CompileSource's final string — a single successful run through the
// whole pipeline, retained so the driver never re-lexes or re-parses
// to print a debug dump.
type CompileResult struct {
	Tokens  []Token
	Module  *Module
	Checked *ModuleResult
	Output  string
}

// Compile runs the full pipeline like CompileSource but keeps every
// intermediate stage's result instead of discarding them.
func Compile(source string) (*CompileResult, error) {
	tokens, lexErr := Tokenize(source)
	if lexErr != nil {
		return nil, lexErr
	}

	mod, err := Parse(tokens)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	mod, checked, err := CheckModule(mod)
	if err != nil {
		return nil, fmt.Errorf("type error: %w", err)
	}

	out, err := GenerateModule(mod)
	if err != nil {
		return nil, fmt.Errorf("codegen error: %w", err)
	}

	return &CompileResult{Tokens: tokens, Module: mod, Checked: checked, Output: out}, nil
}
