package types

// Subst is a finite mapping from type-variable name to Type. Grounded
// on the teacher's typesystem substitution-map convention
// (internal/typesystem/types.go's Subst usage), generalised to pfn's
// smaller type algebra.
type Subst map[string]Type

// Compose returns `s compose other`: applying the result to a type is
// equivalent to applying other then s (spec.md section 3's composition
// order, new on top of current).
func (s Subst) Compose(other Subst) Subst {
	out := make(Subst, len(s)+len(other))
	for k, v := range other {
		out[k] = v.Apply(s)
	}
	for k, v := range s {
		if _, exists := out[k]; !exists {
			out[k] = v
		}
	}
	return out
}

// without returns a copy of s with the given names removed from its
// domain, used when applying through a Forall/Exists binder.
func (s Subst) without(vars []string) Subst {
	if len(vars) == 0 {
		return s
	}
	skip := make(map[string]bool, len(vars))
	for _, v := range vars {
		skip[v] = true
	}
	out := make(Subst, len(s))
	for k, v := range s {
		if !skip[k] {
			out[k] = v
		}
	}
	return out
}
