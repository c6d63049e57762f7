// Package ast defines the immutable syntax tree produced by the parser.
package ast

import "github.com/funvibe/pfn/internal/token"

// Node is implemented by every syntax tree node. GetSpan is used
// throughout the type checker and codegen to anchor diagnostics.
type Node interface {
	GetSpan() token.Span
}

// Statement marks a top-level declaration.
type Statement interface {
	Node
	declNode()
}

// Expression marks an expression node.
type Expression interface {
	Node
	exprNode()
}

// Pattern marks a pattern node.
type Pattern interface {
	Node
	patternNode()
}

// TypeRef is the surface syntax for a type annotation, as written by
// the programmer (before elaboration into a semantic types.Type).
type TypeRef interface {
	Node
	typeRefNode()
}

// Module is the root of a parsed compilation unit.
type Module struct {
	Name         string // empty if no `module Name` header
	Declarations []Statement
	Span         token.Span
}

func (m *Module) GetSpan() token.Span { return m.Span }

// ---- TypeRef variants ----

type SimpleTypeRef struct {
	Name string
	Args []TypeRef
	Span token.Span
}

type FunTypeRef struct {
	Param  TypeRef
	Result TypeRef
	Span   token.Span
}

type TupleTypeRef struct {
	Elements []TypeRef
	Span     token.Span
}

// TypeRecordField is one `name : Type` entry in a record type
// annotation (distinct from expressions.RecordField, which pairs a
// name with a value rather than a type).
type TypeRecordField struct {
	Name string
	Type TypeRef
}

type RecordTypeRef struct {
	Fields []TypeRecordField
	Span   token.Span
}

func (t *SimpleTypeRef) GetSpan() token.Span { return t.Span }
func (t *FunTypeRef) GetSpan() token.Span    { return t.Span }
func (t *TupleTypeRef) GetSpan() token.Span  { return t.Span }
func (t *RecordTypeRef) GetSpan() token.Span { return t.Span }

func (*SimpleTypeRef) typeRefNode() {}
func (*FunTypeRef) typeRefNode()    {}
func (*TupleTypeRef) typeRefNode()  {}
func (*RecordTypeRef) typeRefNode() {}
