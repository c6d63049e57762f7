package ast

import "github.com/funvibe/pfn/internal/token"

type IntPattern struct {
	Value int64
	Span  token.Span
}

type FloatPattern struct {
	Value float64
	Span  token.Span
}

type StringPattern struct {
	Value string
	Span  token.Span
}

type CharPattern struct {
	Value rune
	Span  token.Span
}

type BoolPattern struct {
	Value bool
	Span  token.Span
}

type VarPattern struct {
	Name string
	Span token.Span
}

type WildcardPattern struct {
	Span token.Span
}

type ConsPattern struct {
	Head Pattern
	Tail Pattern
	Span token.Span
}

// ListPattern is a fixed-length list pattern `[e, ...]`. Rest is
// non-nil when the pattern ends with a `...rest` catch-all (an
// extension beyond spec.md's literal grammar kept for symmetry with
// the generator's cons handling; parser never currently emits it).
type ListPattern struct {
	Elements []Pattern
	Rest     *VarPattern
	Span     token.Span
}

type TuplePattern struct {
	Elements []Pattern
	Span     token.Span
}

type RecordPatternField struct {
	Name    string
	Pattern Pattern
}

type RecordPattern struct {
	Fields []RecordPatternField
	Span   token.Span
}

type ConstructorPattern struct {
	Name string
	Args []Pattern
	Span token.Span
}

func (p *IntPattern) GetSpan() token.Span         { return p.Span }
func (p *FloatPattern) GetSpan() token.Span       { return p.Span }
func (p *StringPattern) GetSpan() token.Span      { return p.Span }
func (p *CharPattern) GetSpan() token.Span        { return p.Span }
func (p *BoolPattern) GetSpan() token.Span        { return p.Span }
func (p *VarPattern) GetSpan() token.Span         { return p.Span }
func (p *WildcardPattern) GetSpan() token.Span     { return p.Span }
func (p *ConsPattern) GetSpan() token.Span        { return p.Span }
func (p *ListPattern) GetSpan() token.Span        { return p.Span }
func (p *TuplePattern) GetSpan() token.Span       { return p.Span }
func (p *RecordPattern) GetSpan() token.Span      { return p.Span }
func (p *ConstructorPattern) GetSpan() token.Span { return p.Span }

func (*IntPattern) patternNode()         {}
func (*FloatPattern) patternNode()       {}
func (*StringPattern) patternNode()      {}
func (*CharPattern) patternNode()        {}
func (*BoolPattern) patternNode()        {}
func (*VarPattern) patternNode()         {}
func (*WildcardPattern) patternNode()    {}
func (*ConsPattern) patternNode()        {}
func (*ListPattern) patternNode()        {}
func (*TuplePattern) patternNode()       {}
func (*RecordPattern) patternNode()      {}
func (*ConstructorPattern) patternNode() {}
