package types

import "fmt"

// UnifyError reports a unification failure: mismatched types, an
// occurs-check violation, or a row-polymorphism mismatch.
type UnifyError struct {
	Message string
	Left    Type
	Right   Type
}

func (e *UnifyError) Error() string {
	if e.Left != nil && e.Right != nil {
		return fmt.Sprintf("%s: cannot unify %s with %s", e.Message, e.Left, e.Right)
	}
	return e.Message
}

// Unify computes the most general unifier of t and u, composed on top
// of current. Grounded on the teacher's typesystem/unify.go
// unifyInternal structure, simplified to pfn's strict-invariant
// algebra (no width subtyping, no union-member subtyping) per
// spec.md section 4.3.
func Unify(t, u Type, current Subst) (Subst, error) {
	t = t.Apply(current)
	u = u.Apply(current)
	s, err := unify1(t, u)
	if err != nil {
		return nil, err
	}
	return s.Compose(current), nil
}

func unify1(t, u Type) (Subst, error) {
	if tv, ok := t.(*Var); ok {
		return bindVar(tv.Name, u)
	}
	if uv, ok := u.(*Var); ok {
		return bindVar(uv.Name, t)
	}

	switch tt := t.(type) {
	case *Prim:
		if uu, ok := u.(*Prim); ok && uu.Name == tt.Name {
			return Subst{}, nil
		}
	case *Fun:
		if uu, ok := u.(*Fun); ok {
			s1, err := unify1(tt.Param, uu.Param)
			if err != nil {
				return nil, err
			}
			s2, err := unify1(tt.Result.Apply(s1), uu.Result.Apply(s1))
			if err != nil {
				return nil, err
			}
			return s2.Compose(s1), nil
		}
	case *List:
		if uu, ok := u.(*List); ok {
			return unify1(tt.Elem, uu.Elem)
		}
	case *Tuple:
		if uu, ok := u.(*Tuple); ok && len(tt.Elements) == len(uu.Elements) {
			return unifyAll(tt.Elements, uu.Elements)
		}
	case *Con:
		if uu, ok := u.(*Con); ok && tt.Name == uu.Name && len(tt.Args) == len(uu.Args) {
			return unifyAll(tt.Args, uu.Args)
		}
	case *Record:
		if uu, ok := u.(*Record); ok {
			return unifyRecord(tt, uu)
		}
	case *RowPoly:
		if uu, ok := u.(*RowPoly); ok {
			return unifyRow(tt, uu)
		}
	}
	return nil, &UnifyError{Message: "type mismatch", Left: t, Right: u}
}

func unifyAll(ts, us []Type) (Subst, error) {
	s := Subst{}
	for i := range ts {
		next, err := unify1(ts[i].Apply(s), us[i].Apply(s))
		if err != nil {
			return nil, err
		}
		s = next.Compose(s)
	}
	return s, nil
}

func unifyRecord(t, u *Record) (Subst, error) {
	if len(t.Fields) != len(u.Fields) {
		return nil, &UnifyError{Message: "record field count mismatch", Left: t, Right: u}
	}
	s := Subst{}
	for name, ft := range t.Fields {
		fu, ok := u.Fields[name]
		if !ok {
			return nil, &UnifyError{Message: fmt.Sprintf("missing field %q", name), Left: t, Right: u}
		}
		next, err := unify1(ft.Apply(s), fu.Apply(s))
		if err != nil {
			return nil, err
		}
		s = next.Compose(s)
	}
	return s, nil
}

// unifyRow matches common labels pairwise and absorbs the remainder
// into whichever side has an open rest variable, per spec.md 4.3.
func unifyRow(t, u *RowPoly) (Subst, error) {
	s := Subst{}
	onlyT := map[string]Type{}
	onlyU := map[string]Type{}
	for name, ft := range t.Fields {
		if fu, ok := u.Fields[name]; ok {
			next, err := unify1(ft.Apply(s), fu.Apply(s))
			if err != nil {
				return nil, err
			}
			s = next.Compose(s)
		} else {
			onlyT[name] = ft
		}
	}
	for name, fu := range u.Fields {
		if _, ok := t.Fields[name]; !ok {
			onlyU[name] = fu
		}
	}

	switch {
	case len(onlyT) == 0 && len(onlyU) == 0:
		if t.Rest == "" || u.Rest == "" {
			if t.Rest != u.Rest {
				return s, &UnifyError{Message: "row closedness mismatch", Left: t, Right: u}
			}
			return s, nil
		}
		return bindVar(u.Rest, &Var{Name: t.Rest})
	case len(onlyU) == 0 && t.Rest != "":
		rowU := &RowPoly{Fields: onlyT}
		next, err := bindVar(t.Rest, rowU)
		if err != nil {
			return nil, err
		}
		return next.Compose(s), nil
	case len(onlyT) == 0 && u.Rest != "":
		rowT := &RowPoly{Fields: onlyU}
		next, err := bindVar(u.Rest, rowT)
		if err != nil {
			return nil, err
		}
		return next.Compose(s), nil
	default:
		return nil, &UnifyError{Message: "row fields cannot be reconciled against a closed row", Left: t, Right: u}
	}
}

func bindVar(name string, t Type) (Subst, error) {
	if v, ok := t.(*Var); ok && v.Name == name {
		return Subst{}, nil
	}
	if occurs(name, t) {
		return nil, &UnifyError{Message: fmt.Sprintf("infinite type: %s occurs in %s", name, t), Left: &Var{Name: name}, Right: t}
	}
	return Subst{name: t}, nil
}

func occurs(name string, t Type) bool {
	for _, fv := range t.FreeVars() {
		if fv == name {
			return true
		}
	}
	return false
}
