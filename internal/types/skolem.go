package types

// Skolem is a unification-opaque constant introduced when checking an
// expected higher-rank (Forall) type, per spec.md 4.4's skolemize.
type Skolem struct {
	Name string
}

func (s *Skolem) String() string     { return "skolem:" + s.Name }
func (s *Skolem) Apply(Subst) Type   { return s }
func (s *Skolem) FreeVars() []string { return nil }

// Skolemize replaces every bound variable of a Forall with a fresh
// Skolem constant, returning the instantiated inner type.
func Skolemize(f *Forall, fresh *Fresh) Type {
	sub := make(Subst, len(f.Vars))
	for _, v := range f.Vars {
		sub[v] = &Skolem{Name: fresh.Next().Name}
	}
	return f.Inner.Apply(sub)
}

// EscapeCheck reports whether any skolem constant introduced by a
// Skolemize call still appears free in t, which would mean the
// skolem escaped its scope (spec.md 4.4).
func EscapeCheck(t Type, skolems []string) bool {
	skSet := make(map[string]bool, len(skolems))
	for _, s := range skolems {
		skSet[s] = true
	}
	return containsSkolem(t, skSet)
}

func containsSkolem(t Type, sk map[string]bool) bool {
	switch tt := t.(type) {
	case *Skolem:
		return sk[tt.Name]
	case *Fun:
		return containsSkolem(tt.Param, sk) || containsSkolem(tt.Result, sk)
	case *List:
		return containsSkolem(tt.Elem, sk)
	case *Tuple:
		for _, e := range tt.Elements {
			if containsSkolem(e, sk) {
				return true
			}
		}
	case *Con:
		for _, a := range tt.Args {
			if containsSkolem(a, sk) {
				return true
			}
		}
	case *Forall:
		return containsSkolem(tt.Inner, sk)
	case *Exists:
		return containsSkolem(tt.Inner, sk)
	case *Qualified:
		return containsSkolem(tt.Inner, sk)
	}
	return false
}
