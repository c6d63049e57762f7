// Package types implements pfn's semantic type algebra: primitives,
// type variables, function/list/tuple/record/constructor types,
// quantifiers, qualified (constrained) types, and row polymorphism.
//
// Grounded on the teacher's internal/typesystem/types.go Type
// interface and its Apply/FreeTypeVariables traversal, adapted to
// pfn's smaller, HM-plus-row-poly algebra from spec.md section 3.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Type is implemented by every member of pfn's semantic type algebra.
type Type interface {
	String() string
	Apply(s Subst) Type
	FreeVars() []string
}

// Prim covers Int, Float, String, Bool, Char, Unit.
type Prim struct {
	Name string
}

func (p *Prim) String() string          { return p.Name }
func (p *Prim) Apply(Subst) Type        { return p }
func (p *Prim) FreeVars() []string      { return nil }

var (
	Int    = &Prim{"Int"}
	Float  = &Prim{"Float"}
	String = &Prim{"String"}
	Bool   = &Prim{"Bool"}
	Char   = &Prim{"Char"}
	Unit   = &Prim{"Unit"}
)

// Var is a type variable, unified by name.
type Var struct {
	Name string
}

func (v *Var) String() string { return v.Name }
func (v *Var) Apply(s Subst) Type {
	if t, ok := s[v.Name]; ok {
		return t
	}
	return v
}
func (v *Var) FreeVars() []string { return []string{v.Name} }

// Fun is a curried function type, right-associative.
type Fun struct {
	Param  Type
	Result Type
}

func (f *Fun) String() string {
	paramStr := f.Param.String()
	if _, ok := f.Param.(*Fun); ok {
		paramStr = "(" + paramStr + ")"
	}
	return paramStr + " -> " + f.Result.String()
}
func (f *Fun) Apply(s Subst) Type {
	return &Fun{Param: f.Param.Apply(s), Result: f.Result.Apply(s)}
}
func (f *Fun) FreeVars() []string {
	return union(f.Param.FreeVars(), f.Result.FreeVars())
}

// List is pfn's built-in homogeneous list type.
type List struct {
	Elem Type
}

func (l *List) String() string     { return "List " + atomString(l.Elem) }
func (l *List) Apply(s Subst) Type { return &List{Elem: l.Elem.Apply(s)} }
func (l *List) FreeVars() []string { return l.Elem.FreeVars() }

// Tuple is a fixed-arity product type.
type Tuple struct {
	Elements []Type
}

func (t *Tuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (t *Tuple) Apply(s Subst) Type {
	out := make([]Type, len(t.Elements))
	for i, e := range t.Elements {
		out[i] = e.Apply(s)
	}
	return &Tuple{Elements: out}
}
func (t *Tuple) FreeVars() []string {
	var fv []string
	for _, e := range t.Elements {
		fv = union(fv, e.FreeVars())
	}
	return fv
}

// Record is a closed record type; RowPoly below is the open variant.
type Record struct {
	Fields map[string]Type
}

func (r *Record) String() string {
	names := sortedKeys(r.Fields)
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = n + ": " + r.Fields[n].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (r *Record) Apply(s Subst) Type {
	out := make(map[string]Type, len(r.Fields))
	for k, v := range r.Fields {
		out[k] = v.Apply(s)
	}
	return &Record{Fields: out}
}
func (r *Record) FreeVars() []string {
	var fv []string
	for _, n := range sortedKeys(r.Fields) {
		fv = union(fv, r.Fields[n].FreeVars())
	}
	return fv
}

// Con is a generic applied type constructor, e.g. `Option Int`,
// `Result String a`. Name alone (Args == nil) is a nullary constructor.
type Con struct {
	Name string
	Args []Type
}

func (c *Con) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = atomString(a)
	}
	return c.Name + " " + strings.Join(parts, " ")
}
func (c *Con) Apply(s Subst) Type {
	out := make([]Type, len(c.Args))
	for i, a := range c.Args {
		out[i] = a.Apply(s)
	}
	return &Con{Name: c.Name, Args: out}
}
func (c *Con) FreeVars() []string {
	var fv []string
	for _, a := range c.Args {
		fv = union(fv, a.FreeVars())
	}
	return fv
}

// Forall is explicit universal quantification, used for higher-rank
// checking (spec.md 4.4's skolemize).
type Forall struct {
	Vars  []string
	Inner Type
}

func (f *Forall) String() string {
	return "forall " + strings.Join(f.Vars, " ") + ". " + f.Inner.String()
}
func (f *Forall) Apply(s Subst) Type {
	inner := s.without(f.Vars)
	return &Forall{Vars: f.Vars, Inner: f.Inner.Apply(inner)}
}
func (f *Forall) FreeVars() []string {
	return subtract(f.Inner.FreeVars(), f.Vars)
}

// Exists is explicit existential quantification.
type Exists struct {
	Vars  []string
	Inner Type
}

func (e *Exists) String() string {
	return "exists " + strings.Join(e.Vars, " ") + ". " + e.Inner.String()
}
func (e *Exists) Apply(s Subst) Type {
	inner := s.without(e.Vars)
	return &Exists{Vars: e.Vars, Inner: e.Inner.Apply(inner)}
}
func (e *Exists) FreeVars() []string {
	return subtract(e.Inner.FreeVars(), e.Vars)
}

// Constraint is a single type-class constraint, `ClassName Type`.
type Constraint struct {
	ClassName string
	Type      Type
}

func (c Constraint) String() string { return c.ClassName + " " + atomString(c.Type) }
func (c Constraint) Apply(s Subst) Constraint {
	return Constraint{ClassName: c.ClassName, Type: c.Type.Apply(s)}
}

// Qualified is `(C1, ..., Cn) => tau`.
type Qualified struct {
	Constraints []Constraint
	Inner       Type
}

func (q *Qualified) String() string {
	if len(q.Constraints) == 0 {
		return q.Inner.String()
	}
	parts := make([]string, len(q.Constraints))
	for i, c := range q.Constraints {
		parts[i] = c.String()
	}
	return "(" + strings.Join(parts, ", ") + ") => " + q.Inner.String()
}
func (q *Qualified) Apply(s Subst) Type {
	cs := make([]Constraint, len(q.Constraints))
	for i, c := range q.Constraints {
		cs[i] = c.Apply(s)
	}
	return &Qualified{Constraints: cs, Inner: q.Inner.Apply(s)}
}
func (q *Qualified) FreeVars() []string {
	fv := q.Inner.FreeVars()
	for _, c := range q.Constraints {
		fv = union(fv, c.Type.FreeVars())
	}
	return fv
}

// RowPoly is a record row: a fixed label set plus an optional open
// row variable absorbing the rest (spec.md 4.3's row polymorphism).
type RowPoly struct {
	Fields map[string]Type
	Rest   string // empty means a closed row
}

func (r *RowPoly) String() string {
	names := sortedKeys(r.Fields)
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = n + ": " + r.Fields[n].String()
	}
	body := strings.Join(parts, ", ")
	if r.Rest != "" {
		if body != "" {
			body += " | " + r.Rest
		} else {
			body = r.Rest
		}
	}
	return "{" + body + "}"
}
func (r *RowPoly) Apply(s Subst) Type {
	out := make(map[string]Type, len(r.Fields))
	for k, v := range r.Fields {
		out[k] = v.Apply(s)
	}
	rest := r.Rest
	if rest != "" {
		if t, ok := s[rest]; ok {
			if rowVar, isVar := t.(*Var); isVar {
				rest = rowVar.Name
			} else if row, isRow := t.(*RowPoly); isRow {
				for k, v := range row.Fields {
					out[k] = v
				}
				rest = row.Rest
			}
		}
	}
	return &RowPoly{Fields: out, Rest: rest}
}
func (r *RowPoly) FreeVars() []string {
	var fv []string
	for _, n := range sortedKeys(r.Fields) {
		fv = union(fv, r.Fields[n].FreeVars())
	}
	if r.Rest != "" {
		fv = union(fv, []string{r.Rest})
	}
	return fv
}

func atomString(t Type) string {
	switch t.(type) {
	case *Fun, *Forall, *Exists, *Qualified:
		return "(" + t.String() + ")"
	}
	return t.String()
}

func union(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, x := range a {
		if !seen[x] {
			seen[x] = true
			out = append(out, x)
		}
	}
	for _, x := range b {
		if !seen[x] {
			seen[x] = true
			out = append(out, x)
		}
	}
	return out
}

func subtract(a, remove []string) []string {
	skip := make(map[string]bool, len(remove))
	for _, x := range remove {
		skip[x] = true
	}
	var out []string
	for _, x := range a {
		if !skip[x] {
			out = append(out, x)
		}
	}
	return out
}

func sortedKeys(m map[string]Type) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Scheme is a generalised, possibly constrained, type. Vars are kept
// lexicographically ordered per spec.md section 3's reproducibility
// invariant.
type Scheme struct {
	Vars        []string
	Type        Type
	Constraints []Constraint
}

func (s *Scheme) String() string {
	if len(s.Vars) == 0 && len(s.Constraints) == 0 {
		return s.Type.String()
	}
	var b strings.Builder
	if len(s.Vars) > 0 {
		fmt.Fprintf(&b, "forall %s. ", strings.Join(s.Vars, " "))
	}
	if len(s.Constraints) > 0 {
		parts := make([]string, len(s.Constraints))
		for i, c := range s.Constraints {
			parts[i] = c.String()
		}
		fmt.Fprintf(&b, "(%s) => ", strings.Join(parts, ", "))
	}
	b.WriteString(s.Type.String())
	return b.String()
}

// FreeVars returns the scheme's free variables: those of Type and its
// constraints, minus the bound Vars.
func (s *Scheme) FreeVars() []string {
	fv := s.Type.FreeVars()
	for _, c := range s.Constraints {
		fv = union(fv, c.Type.FreeVars())
	}
	return subtract(fv, s.Vars)
}
