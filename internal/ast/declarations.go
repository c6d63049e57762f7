package ast

import "github.com/funvibe/pfn/internal/token"

type Param struct {
	Name string
	Type TypeRef // nil if unannotated
}

// DefDecl is a top-level function or value binding. IsExported and
// ExportName are set by the `@py.export("alias")` decorator (SPEC_FULL
// section 4); bare `@py.export` leaves ExportName empty and reuses Name.
type DefDecl struct {
	Name       string
	Params     []Param
	ReturnType TypeRef // nil if unannotated
	Value      Expression
	IsExported bool
	ExportName string
	Span       token.Span
}

type ConstructorDef struct {
	Name   string
	Fields []TypeRef
}

// TypeDecl covers the record, sum, and GADT surface forms named in
// spec.md section 3.
type TypeDecl struct {
	Name         string
	Params       []string
	IsRecord     bool
	RecordFields []TypeRecordField
	Constructors []ConstructorDef
	IsGADT       bool
	GADTSigs     []GADTConstructorSig
	Span         token.Span
}

type GADTConstructorSig struct {
	Name string
	Type TypeRef
}

type TypeAliasDecl struct {
	Name   string
	Params []string
	Target TypeRef
	Span   token.Span
}

type ImportDecl struct {
	Module   string
	Alias    string
	Exposing []string // empty means import everything
	IsPython bool
	Span     token.Span
}

type ExportDecl struct {
	Names []string
	Span  token.Span
}

type InterfaceMethod struct {
	Name string
	Type TypeRef
}

type InterfaceDecl struct {
	Name         string
	Params       []string
	Methods      []InterfaceMethod
	Superclasses []string
	Span         token.Span
}

type ImplMethod struct {
	Name   string
	Params []string
	Value  Expression
}

type ImplDecl struct {
	ClassName string
	Type      TypeRef
	Methods   []ImplMethod
	Span      token.Span
}

type EffectOperation struct {
	Name string
	Type TypeRef
}

type EffectDecl struct {
	Name       string
	Operations []EffectOperation
	Span       token.Span
}

type HandlerDecl struct {
	Name     string
	Effect   string
	Clauses  []HandlerClause
	Span     token.Span
}

// DirectiveDecl is a leading `directive "name"` pragma (SPEC_FULL
// section 4). Known records whether the name is in the closed set
// config.KnownDirectives; no later stage reads the directive.
type DirectiveDecl struct {
	Name  string
	Known bool
	Span  token.Span
}

func (d *DefDecl) GetSpan() token.Span       { return d.Span }
func (d *TypeDecl) GetSpan() token.Span      { return d.Span }
func (d *TypeAliasDecl) GetSpan() token.Span { return d.Span }
func (d *ImportDecl) GetSpan() token.Span    { return d.Span }
func (d *ExportDecl) GetSpan() token.Span    { return d.Span }
func (d *InterfaceDecl) GetSpan() token.Span { return d.Span }
func (d *ImplDecl) GetSpan() token.Span      { return d.Span }
func (d *EffectDecl) GetSpan() token.Span    { return d.Span }
func (d *HandlerDecl) GetSpan() token.Span   { return d.Span }
func (d *DirectiveDecl) GetSpan() token.Span { return d.Span }

func (*DefDecl) declNode()       {}
func (*TypeDecl) declNode()      {}
func (*TypeAliasDecl) declNode() {}
func (*ImportDecl) declNode()    {}
func (*ExportDecl) declNode()    {}
func (*InterfaceDecl) declNode() {}
func (*ImplDecl) declNode()      {}
func (*EffectDecl) declNode()    {}
func (*HandlerDecl) declNode()   {}
func (*DirectiveDecl) declNode() {}
