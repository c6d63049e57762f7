package types

import (
	"fmt"
	"sort"
)

// Env is a persistent, copy-on-extend mapping from identifier to
// Scheme (spec.md section 3's TypeEnv). Extending never mutates the
// receiver, matching the "environments are persistent" lifecycle rule.
type Env struct {
	bindings map[string]*Scheme
}

// NewEnv returns an empty environment.
func NewEnv() *Env {
	return &Env{bindings: map[string]*Scheme{}}
}

// Extend returns a new Env with name bound to scheme, leaving the
// receiver untouched.
func (e *Env) Extend(name string, scheme *Scheme) *Env {
	out := make(map[string]*Scheme, len(e.bindings)+1)
	for k, v := range e.bindings {
		out[k] = v
	}
	out[name] = scheme
	return &Env{bindings: out}
}

func (e *Env) Lookup(name string) (*Scheme, bool) {
	s, ok := e.bindings[name]
	return s, ok
}

// FreeVars returns the union of free variables across every binding,
// used by Generalize to decide what a let-binding may quantify over.
func (e *Env) FreeVars() []string {
	var fv []string
	for _, s := range e.bindings {
		fv = union(fv, s.FreeVars())
	}
	return fv
}

// Fresh is the mutable fresh type-variable counter threaded through a
// single type-checking run (spec.md 4.4). Never a package global, per
// spec.md section 9's "do not use process-global state" note, since
// multiple modules may be checked in one process.
type Fresh struct {
	counter int
}

func NewFresh() *Fresh { return &Fresh{} }

func (f *Fresh) Next() *Var {
	name := fmt.Sprintf("t%d", f.counter)
	f.counter++
	return &Var{Name: name}
}

// Generalize closes t over its free variables not shared with env,
// producing a Scheme with lexicographically ordered bound variables
// (spec.md section 3's Scheme.vars ordering invariant).
func Generalize(env *Env, t Type, constraints []Constraint) *Scheme {
	envFree := make(map[string]bool)
	for _, v := range env.FreeVars() {
		envFree[v] = true
	}
	var vars []string
	seen := map[string]bool{}
	for _, v := range t.FreeVars() {
		if !envFree[v] && !seen[v] {
			seen[v] = true
			vars = append(vars, v)
		}
	}
	for _, c := range constraints {
		for _, v := range c.Type.FreeVars() {
			if !envFree[v] && !seen[v] {
				seen[v] = true
				vars = append(vars, v)
			}
		}
	}
	sort.Strings(vars)
	return &Scheme{Vars: vars, Type: t, Constraints: constraints}
}

// Instantiate replaces a Scheme's bound variables with fresh type
// variables, returning the resulting type and the constraints
// specialised to those fresh variables.
func Instantiate(s *Scheme, fresh *Fresh) (Type, []Constraint) {
	if len(s.Vars) == 0 {
		return s.Type, s.Constraints
	}
	sub := make(Subst, len(s.Vars))
	for _, v := range s.Vars {
		sub[v] = fresh.Next()
	}
	cs := make([]Constraint, len(s.Constraints))
	for i, c := range s.Constraints {
		cs[i] = c.Apply(sub)
	}
	return s.Type.Apply(sub), cs
}
