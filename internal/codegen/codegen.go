package codegen

import (
	"fmt"
	"strings"

	"github.com/funvibe/pfn/internal/ast"
)

// GenerateModule lowers a type-checked module to host source text per
// spec.md 4.5's emission contract, one line (or block) per declaration
// in source order, with the Option/Result/Ordering shim prelude first.
// Declaration order is preserved, matching the teacher's own
// one-pass-in-source-order code printer.
func GenerateModule(mod *ast.Module) (string, error) {
	var out strings.Builder
	out.WriteString(prelude)
	out.WriteString("\n")

	for _, decl := range mod.Declarations {
		switch d := decl.(type) {
		case *ast.ImportDecl:
			out.WriteString(emitImport(d))
			out.WriteString("\n")

		case *ast.TypeDecl:
			out.WriteString(emitTypeDecl(d))

		case *ast.DefDecl:
			out.WriteString(emitDefDecl(d))

		case *ast.ExportDecl:
			// Export is an ExportName/IsExported flag carried directly on
			// each DefDecl (spec.md section 4); a bare `export` block
			// doesn't add any host statement of its own.

		case *ast.InterfaceDecl, *ast.ImplDecl:
			// Interface methods are registered, type-checked against
			// their impls, and constraint-checked by internal/classes and
			// internal/typechecker (spec.md section 3's qualified types).
			// That stops at type checking, though: codegen does not yet
			// compile a method call to a dispatch on the chosen instance
			// (no dictionary-passing, no per-impl emission here). pfn's
			// host is dynamically typed, so spec.md section 9's dictionary
			// recommendation — written for a host "without dynamic
			// typing" — doesn't directly apply; a host-native dispatch
			// strategy (e.g. compiling impls to dunder methods on the
			// generated class) is the natural next step but isn't wired.

		case *ast.EffectDecl:
			// An effect declaration is a signature only; operations are
			// lowered where they're performed (emitExpr's PerformExpr case).

		case *ast.HandlerDecl:
			out.WriteString(emitHandlerDecl(d))

		case *ast.TypeAliasDecl, *ast.DirectiveDecl:
			// Erased at codegen: aliases are resolved during type
			// checking, directives only ever affect the compiler itself.
		}
	}

	return out.String(), nil
}

func emitImport(d *ast.ImportDecl) string {
	if !d.IsPython {
		return fmt.Sprintf("from %s import *", d.Module)
	}
	// d.Module carries the leading "py." passthrough marker the parser
	// recognizes (internal/parser/declarations.go); the host import
	// itself only wants what follows it.
	pyModule := strings.TrimPrefix(d.Module, "py.")
	if len(d.Exposing) > 0 {
		return fmt.Sprintf("from %s import %s", pyModule, strings.Join(d.Exposing, ", "))
	}
	line := "import " + pyModule
	if d.Alias != "" {
		line += " as " + d.Alias
	}
	return line
}

// emitDefDecl lowers a top-level definition the same way emitLetFunc
// lowers a local one (spec.md 4.5 scenario 4 names a module-scope
// `def fact n = ...` explicitly as "a recursive LetFunc at module
// scope"): a def whose own value calls its own name gets the
// knot-tying __cell; one that doesn't lowers as a direct binding.
func emitDefDecl(d *ast.DefDecl) string {
	names := make([]string, len(d.Params))
	for i, p := range d.Params {
		names[i] = p.Name
	}

	var value string
	switch {
	case len(names) == 0:
		value = emitExpr(newCtx(), d.Value)
	case referencesName(d.Value, d.Name):
		cellCtx := newCtx().with(d.Name, "__cell[0]")
		value = fmt.Sprintf("(lambda __cell: (__cell.__setitem__(0, %s) or __cell[0]))([None])",
			emitCurried(cellCtx, names, d.Value))
	default:
		value = emitCurried(newCtx(), names, d.Value)
	}

	internalName := renameIdent(d.Name)
	var b strings.Builder
	fmt.Fprintf(&b, "%s = %s\n", internalName, value)
	if d.IsExported {
		exportName := d.ExportName
		if exportName == "" {
			exportName = d.Name
		}
		fmt.Fprintf(&b, "%s = %s\n", renameIdent(exportName), internalName)
	}
	return b.String()
}

// emitTypeDecl emits one host class per constructor: a record type has
// exactly one (itself), a sum or GADT type has one per alternative.
// Zero-arg constructors are rebound to a singleton instance immediately
// after their class statement, the same shape the prelude uses for
// Option/Result/Ordering.
//
// pfn records are structurally typed: a `{f: v, ...}` literal is
// always the generic Record shim (RecordLit in expr.go), never an
// instance of a named TypeDecl class, since the AST carries no static
// type at the literal site for codegen to consult. The named record
// class below documents the declared shape and gives its fields named
// attributes (matching FieldAccess/RecordPattern's by-name access, the
// same convention the Record shim already follows) but is otherwise
// inert - nothing in this package constructs one.
func emitTypeDecl(d *ast.TypeDecl) string {
	var b strings.Builder

	if d.IsRecord {
		fields := make([]string, len(d.RecordFields))
		for i, f := range d.RecordFields {
			fields[i] = renameIdent(f.Name)
		}
		writeRecordClass(&b, renameIdent(d.Name), fields)
		return b.String()
	}

	if d.IsGADT {
		names := make([]string, len(d.GADTSigs))
		for i, sig := range d.GADTSigs {
			arity := countArgs(sig.Type)
			writeCtorClass(&b, renameIdent(sig.Name), indexedFields(arity))
			names[i] = renameIdent(sig.Name)
		}
		writeUnionAlias(&b, renameIdent(d.Name), names)
		return b.String()
	}

	names := make([]string, len(d.Constructors))
	for i, ctor := range d.Constructors {
		writeCtorClass(&b, renameIdent(ctor.Name), indexedFields(len(ctor.Fields)))
		names[i] = renameIdent(ctor.Name)
	}
	writeUnionAlias(&b, renameIdent(d.Name), names)
	return b.String()
}

// writeUnionAlias emits the `Name = Union[Ctor1, Ctor2, ...]` alias
// spec.md 4.5 names for a sum type, so the declared type name itself
// is usable as a host type annotation alongside its constructors.
func writeUnionAlias(b *strings.Builder, name string, ctorNames []string) {
	fmt.Fprintf(b, "%s = Union[%s]\n", name, strings.Join(ctorNames, ", "))
}

func indexedFields(n int) []string {
	fields := make([]string, n)
	for i := range fields {
		fields[i] = fmt.Sprintf("a%d", i)
	}
	return fields
}

// countArgs counts the Param layers of a GADT constructor's curried
// function-type signature; the result type itself contributes nothing.
func countArgs(t ast.TypeRef) int {
	n := 0
	for {
		fn, ok := t.(*ast.FunTypeRef)
		if !ok {
			return n
		}
		n++
		t = fn.Result
	}
}

func writeCtorClass(b *strings.Builder, name string, fields []string) {
	if len(fields) == 0 {
		fmt.Fprintf(b, "class %s:\n    pass\n%s = %s()\n", name, name, name)
		return
	}
	fmt.Fprintf(b, "class %s:\n    def __init__(self, %s):\n", name, strings.Join(fields, ", "))
	for i, f := range fields {
		fmt.Fprintf(b, "        self._field%d = %s\n", i, f)
	}
}

// writeRecordClass stores each field under its own name rather than a
// positional _field{i} slot, since record fields are accessed by name
// (FieldAccess, RecordPattern) and never positionally.
func writeRecordClass(b *strings.Builder, name string, fields []string) {
	if len(fields) == 0 {
		fmt.Fprintf(b, "class %s:\n    pass\n", name)
		return
	}
	fmt.Fprintf(b, "class %s:\n    def __init__(self, %s):\n", name, strings.Join(fields, ", "))
	for _, f := range fields {
		fmt.Fprintf(b, "        self.%s = %s\n", f, f)
	}
}

// emitHandlerDecl lowers a top-level named handler declaration to a
// dict literal of the same shape emitHandle builds inline for a
// `handle` expression, so both forms install through __with_handler
// identically.
func emitHandlerDecl(d *ast.HandlerDecl) string {
	clauses := make([]string, len(d.Clauses))
	for i, h := range d.Clauses {
		inner := newCtx()
		params := make([]string, len(h.Params))
		for j, p := range h.Params {
			params[j] = renameIdent(p)
			inner = inner.without(p)
		}
		clauses[i] = fmt.Sprintf("%q: lambda %s: %s", h.Operation, strings.Join(params, ", "), emitExpr(inner, h.Body))
	}
	return fmt.Sprintf("%s = {%s}\n", renameIdent(d.Name), strings.Join(clauses, ", "))
}
