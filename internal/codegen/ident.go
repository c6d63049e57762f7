// Package codegen lowers a type-checked pfn AST into host source text
// (spec.md section 4.5): a dynamically typed, expression-oriented
// target with curried closures, attribute-accessed records, and
// structural sum types compiled to one class per constructor.
//
// Grounded on the teacher's internal/prettyprinter/code_printer.go for
// the string-building idiom (buffered writer, one emit function per
// node kind) and on spec.md 4.5's emission contract directly, since no
// example repo compiles pfn-like source to a second host language; the
// closest structural analogue in the pack is the teacher's own
// AST-to-text pretty printer.
package codegen

import "github.com/funvibe/pfn/internal/config"

// renameIdent returns name unchanged unless it collides with a host
// reserved word, in which case it is wrapped `_name_` per spec.md 4.5's
// prescribed collision-avoidance rule.
func renameIdent(name string) string {
	if config.HostReservedWords[name] {
		return "_" + name + "_"
	}
	return name
}
