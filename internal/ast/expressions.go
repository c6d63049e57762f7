package ast

import "github.com/funvibe/pfn/internal/token"

type IntLit struct {
	Value int64
	Span  token.Span
}

type FloatLit struct {
	Value float64
	Span  token.Span
}

type StringLit struct {
	Value string
	Span  token.Span
}

type CharLit struct {
	Value rune
	Span  token.Span
}

type BoolLit struct {
	Value bool
	Span  token.Span
}

type Var struct {
	Name string
	Span token.Span
}

type Lambda struct {
	Params []string
	Body   Expression
	Span   token.Span
}

// App is always binary after parsing: multi-argument application is
// normalised into a left-nested chain of single-argument Apps, per
// spec.md 4.2 rule 10.
type App struct {
	Func Expression
	Arg  Expression
	Span token.Span
}

type BinOp struct {
	Left  Expression
	Op    token.Kind
	Right Expression
	Span  token.Span
}

type UnaryOp struct {
	Op      token.Kind
	Operand Expression
	Span    token.Span
}

type If struct {
	Cond Expression
	Then Expression
	Else Expression
	Span token.Span
}

type Let struct {
	Name  string
	Value Expression
	Body  Expression
	Span  token.Span
}

type LetPattern struct {
	Pattern Pattern
	Value   Expression
	Body    Expression
	Span    token.Span
}

// LetFunc binds Name to a curried function over Params whose Value may
// refer back to Name recursively (spec.md 3's invariant on LetFunc).
type LetFunc struct {
	Name   string
	Params []string
	Value  Expression
	Body   Expression
	Span   token.Span
}

type MatchCase struct {
	Pattern Pattern
	Guard   Expression // nil if absent
	Body    Expression
}

type Match struct {
	Scrutinee Expression
	Cases     []MatchCase
	Span      token.Span
}

type DoBinding struct {
	Name  string // empty for a bare effectful statement
	Value Expression
}

type DoNotation struct {
	Bindings []DoBinding
	Body     Expression
	Span     token.Span
}

type ListLit struct {
	Elements []Expression
	Span     token.Span
}

type TupleLit struct {
	Elements []Expression
	Span     token.Span
}

type RecordField struct {
	Name  string
	Value Expression
}

type RecordLit struct {
	Fields []RecordField
	Span   token.Span
}

type RecordUpdate struct {
	Record Expression
	Fields []RecordField
	Span   token.Span
}

type FieldAccess struct {
	Record Expression
	Field  string
	Span   token.Span
}

type RecordUpdateField = RecordField

type IndexAccess struct {
	Collection Expression
	Index      Expression
	Span       token.Span
}

type Slice struct {
	Collection Expression
	Start      Expression // nil if absent
	End        Expression // nil if absent
	Span       token.Span
}

type HandleExpr struct {
	Body     Expression
	Handlers []HandlerClause
	Span     token.Span
}

type HandlerClause struct {
	Operation string
	Params    []string
	Body      Expression
}

type PerformExpr struct {
	Effect    string
	Operation string
	Args      []Expression
	Span      token.Span
}

func (e *IntLit) GetSpan() token.Span       { return e.Span }
func (e *FloatLit) GetSpan() token.Span     { return e.Span }
func (e *StringLit) GetSpan() token.Span    { return e.Span }
func (e *CharLit) GetSpan() token.Span      { return e.Span }
func (e *BoolLit) GetSpan() token.Span      { return e.Span }
func (e *Var) GetSpan() token.Span          { return e.Span }
func (e *Lambda) GetSpan() token.Span       { return e.Span }
func (e *App) GetSpan() token.Span          { return e.Span }
func (e *BinOp) GetSpan() token.Span        { return e.Span }
func (e *UnaryOp) GetSpan() token.Span      { return e.Span }
func (e *If) GetSpan() token.Span           { return e.Span }
func (e *Let) GetSpan() token.Span          { return e.Span }
func (e *LetPattern) GetSpan() token.Span   { return e.Span }
func (e *LetFunc) GetSpan() token.Span      { return e.Span }
func (e *Match) GetSpan() token.Span        { return e.Span }
func (e *DoNotation) GetSpan() token.Span   { return e.Span }
func (e *ListLit) GetSpan() token.Span      { return e.Span }
func (e *TupleLit) GetSpan() token.Span     { return e.Span }
func (e *RecordLit) GetSpan() token.Span    { return e.Span }
func (e *RecordUpdate) GetSpan() token.Span { return e.Span }
func (e *FieldAccess) GetSpan() token.Span  { return e.Span }
func (e *IndexAccess) GetSpan() token.Span  { return e.Span }
func (e *Slice) GetSpan() token.Span        { return e.Span }
func (e *HandleExpr) GetSpan() token.Span   { return e.Span }
func (e *PerformExpr) GetSpan() token.Span  { return e.Span }

func (*IntLit) exprNode()       {}
func (*FloatLit) exprNode()     {}
func (*StringLit) exprNode()    {}
func (*CharLit) exprNode()      {}
func (*BoolLit) exprNode()      {}
func (*Var) exprNode()          {}
func (*Lambda) exprNode()       {}
func (*App) exprNode()          {}
func (*BinOp) exprNode()        {}
func (*UnaryOp) exprNode()      {}
func (*If) exprNode()           {}
func (*Let) exprNode()          {}
func (*LetPattern) exprNode()   {}
func (*LetFunc) exprNode()      {}
func (*Match) exprNode()        {}
func (*DoNotation) exprNode()   {}
func (*ListLit) exprNode()      {}
func (*TupleLit) exprNode()     {}
func (*RecordLit) exprNode()    {}
func (*RecordUpdate) exprNode() {}
func (*FieldAccess) exprNode()  {}
func (*IndexAccess) exprNode()  {}
func (*Slice) exprNode()        {}
func (*HandleExpr) exprNode()   {}
func (*PerformExpr) exprNode()  {}
