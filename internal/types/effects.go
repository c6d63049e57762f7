package types

import "sort"

// Atom is one member of an EffectSet: spec.md 4.4's IO, State tau,
// Throw epsilon, and Read, encoded as a kind tag plus an optional
// carried type (State/Throw only; IO and Read carry none).
type Atom struct {
	Kind string // "IO", "State", "Throw", "Read"
	Of   Type   // nil for IO and Read
}

func (a Atom) key() string {
	if a.Of == nil {
		return a.Kind
	}
	return a.Kind + " " + a.Of.String()
}

// EffectSet is spec.md 4.4's row of effect atoms an expression may
// perform. The empty set (nil) is the pure case. Union is commutative
// and idempotent, so EffectSet is kept as a plain slice deduplicated
// by atom identity rather than a dictionary keyed by name.
type EffectSet []Atom

// Pure is the empty effect set, spec.md 4.4's "∅".
func Pure() EffectSet { return nil }

// IO returns a singleton set carrying the IO atom.
func IO() EffectSet { return EffectSet{Atom{Kind: "IO"}} }

// Custom returns a singleton set for a user-declared effect's
// operation, named by the effect itself (spec.md section 4's `effect`
// declarations don't distinguish IO/State/Throw/Read atoms from
// user-defined ones; both are rows of named capabilities).
func Custom(effect string) EffectSet { return EffectSet{Atom{Kind: effect}} }

// UnionEffects merges sets, deduplicating by atom key so repeated
// unions of the same effect stay idempotent.
func UnionEffects(sets ...EffectSet) EffectSet {
	seen := map[string]Atom{}
	var order []string
	for _, s := range sets {
		for _, a := range s {
			k := a.key()
			if _, ok := seen[k]; !ok {
				order = append(order, k)
			}
			seen[k] = a
		}
	}
	sort.Strings(order)
	out := make(EffectSet, len(order))
	for i, k := range order {
		out[i] = seen[k]
	}
	return out
}

// Discharge removes every atom named by one of handled from the set,
// the effect-handler-stack discharge spec.md 4.4 describes: a `handle`
// block's clauses name the operations it satisfies, and anything left
// over still needs an enclosing handler (or remains IO at the
// program's edge).
func (e EffectSet) Discharge(handled ...string) EffectSet {
	if len(e) == 0 || len(handled) == 0 {
		return e
	}
	drop := map[string]bool{}
	for _, h := range handled {
		drop[h] = true
	}
	var out EffectSet
	for _, a := range e {
		if !drop[a.Kind] {
			out = append(out, a)
		}
	}
	return out
}

// IsPure reports whether the set carries no atoms.
func (e EffectSet) IsPure() bool { return len(e) == 0 }

// WrapIO wraps t in IO when the set carries the IO atom, per spec.md
// 4.4: "Effectful results are wrapped in IO tau when IO atoms are
// present."
func WrapIO(t Type, e EffectSet) Type {
	for _, a := range e {
		if a.Kind == "IO" {
			return &Con{Name: "IO", Args: []Type{t}}
		}
	}
	return t
}
