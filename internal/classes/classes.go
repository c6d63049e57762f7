// Package classes implements pfn's type-class environment: class and
// instance registration, superclass closure, and constraint solving.
//
// Grounded directly on original_source/src/pfn/typechecker/classes.py
// (ClassInfo, InstanceInfo, ClassContext, create_default_context,
// _add_builtin_instances), translated into Go's idiom of explicit
// error returns over Python exceptions.
package classes

import (
	"fmt"
	"sort"

	"github.com/funvibe/pfn/internal/types"
)

// ClassInfo mirrors classes.py's ClassInfo dataclass.
type ClassInfo struct {
	Name         string
	Params       []string
	Methods      map[string]types.Type
	Superclasses []string
	Defaults     map[string]bool
}

// InstanceInfo mirrors classes.py's InstanceInfo dataclass. Methods is
// opaque to this package: a user impl (internal/typechecker's
// registerImpl) stores the checked *ast.Lambda/Expression body, while
// a built-in instance (addBuiltinInstances) stores the Python source
// snippet codegen would need to emit it, ported directly from
// classes.py's lambdas since pfn compiles straight to Python text and
// has no Go-side evaluator to run a closure against.
type InstanceInfo struct {
	ClassName   string
	Type        types.Type
	Methods     map[string]interface{}
	Constraints []types.Constraint
}

// Context is the class/instance environment threaded through type
// checking, equivalent to classes.py's ClassContext.
type Context struct {
	classes   map[string]*ClassInfo
	instances map[string]map[string]*InstanceInfo // class name -> type key -> instance
}

// NewContext returns an empty context with no classes registered.
func NewContext() *Context {
	return &Context{
		classes:   map[string]*ClassInfo{},
		instances: map[string]map[string]*InstanceInfo{},
	}
}

func (c *Context) AddClass(info *ClassInfo) {
	c.classes[info.Name] = info
}

func (c *Context) LookupClass(name string) (*ClassInfo, bool) {
	ci, ok := c.classes[name]
	return ci, ok
}

// typeKey builds a structural key distinguishing `List Int` from
// `List String`, mirroring classes.py's _type_key.
func typeKey(t types.Type) string {
	switch tt := t.(type) {
	case *types.Prim:
		return tt.Name
	case *types.Var:
		return "var:" + tt.Name
	case *types.Con:
		key := tt.Name
		for _, a := range tt.Args {
			key += " " + typeKey(a)
		}
		return key
	case *types.List:
		return "List " + typeKey(tt.Elem)
	case *types.Tuple:
		key := "("
		for i, e := range tt.Elements {
			if i > 0 {
				key += ", "
			}
			key += typeKey(e)
		}
		return key + ")"
	case *types.Fun:
		return typeKey(tt.Param) + " -> " + typeKey(tt.Result)
	default:
		return t.String()
	}
}

func (c *Context) AddInstance(inst *InstanceInfo) error {
	if _, ok := c.classes[inst.ClassName]; !ok {
		return fmt.Errorf("no such class %q", inst.ClassName)
	}
	if c.instances[inst.ClassName] == nil {
		c.instances[inst.ClassName] = map[string]*InstanceInfo{}
	}
	c.instances[inst.ClassName][typeKey(inst.Type)] = inst
	return nil
}

func (c *Context) LookupInstance(className string, t types.Type) (*InstanceInfo, bool) {
	byType, ok := c.instances[className]
	if !ok {
		return nil, false
	}
	inst, ok := byType[typeKey(t)]
	return inst, ok
}

// GetAllSuperclasses returns the transitive closure of className's
// superclasses, mirroring classes.py's get_all_superclasses recursion.
func (c *Context) GetAllSuperclasses(className string) []string {
	ci, ok := c.classes[className]
	if !ok {
		return nil
	}
	seen := map[string]bool{}
	var walk func(string)
	var out []string
	walk = func(name string) {
		info, ok := c.classes[name]
		if !ok {
			return
		}
		for _, sup := range info.Superclasses {
			if !seen[sup] {
				seen[sup] = true
				out = append(out, sup)
				walk(sup)
			}
		}
	}
	walk(ci.Name)
	return out
}

// CheckSuperclasses reports whether t has an instance for every
// superclass of className (classes.py's check_superclasses).
func (c *Context) CheckSuperclasses(className string, t types.Type) bool {
	for _, sup := range c.GetAllSuperclasses(className) {
		if _, ok := c.LookupInstance(sup, t); !ok {
			return false
		}
	}
	return true
}

func (c *Context) GetMethod(className string, t types.Type, method string) (interface{}, bool) {
	inst, ok := c.LookupInstance(className, t)
	if !ok {
		return nil, false
	}
	m, ok := inst.Methods[method]
	return m, ok
}

func (c *Context) GetMethodType(className, method string) (types.Type, bool) {
	ci, ok := c.classes[className]
	if !ok {
		return nil, false
	}
	ty, ok := ci.Methods[method]
	return ty, ok
}

// CheckConstraint reapplies s to the constraint's type and asks the
// context for a matching instance (classes.py's check_constraint).
func (c *Context) CheckConstraint(constraint types.Constraint, s types.Subst) bool {
	t := constraint.Type.Apply(s)
	if _, ok := c.LookupInstance(constraint.ClassName, t); ok {
		return c.CheckSuperclasses(constraint.ClassName, t)
	}
	return false
}

// SolveConstraints reports whether every constraint is satisfied under s.
func (c *Context) SolveConstraints(constraints []types.Constraint, s types.Subst) bool {
	for _, con := range constraints {
		if !c.CheckConstraint(con, s) {
			return false
		}
	}
	return true
}

// BuildDictionary returns the method table for a class/type pair. Its
// caller is the typechecker's impl check, which uses it to find methods
// an instance lacks; codegen does not consult it.
func (c *Context) BuildDictionary(className string, t types.Type) (map[string]interface{}, error) {
	inst, ok := c.LookupInstance(className, t)
	if !ok {
		return nil, fmt.Errorf("no instance of %s for %s", className, t)
	}
	dict := map[string]interface{}{}
	for k, v := range inst.Methods {
		dict[k] = v
	}
	return dict, nil
}

// UnsatisfiedConstraints returns, in deterministic order, every
// constraint in constraints not satisfiable under s — used to build a
// readable diagnostic.
func (c *Context) UnsatisfiedConstraints(constraints []types.Constraint, s types.Subst) []types.Constraint {
	var out []types.Constraint
	for _, con := range constraints {
		if !c.CheckConstraint(con, s) {
			out = append(out, con)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}

// NewDefaultContext builds the prelude class hierarchy named in
// spec.md section 4.3: Eq, Ord<Eq, Show, Read, Num, Fractional<Num,
// Functor, Applicative<Functor, Monad<Applicative, Foldable,
// Traversable<Functor+Foldable, Semigroup, Monoid<Semigroup — with
// the exact method signatures and superclass edges from
// create_default_context() in classes.py.
func NewDefaultContext() *Context {
	c := NewContext()
	a := &types.Var{Name: "a"}
	fn := func(p, r types.Type) types.Type { return &types.Fun{Param: p, Result: r} }

	c.AddClass(&ClassInfo{
		Name: "Eq", Params: []string{"a"},
		Methods: map[string]types.Type{
			"eq":  fn(a, fn(a, types.Bool)),
			"neq": fn(a, fn(a, types.Bool)),
		},
		Defaults: map[string]bool{"neq": true},
	})
	c.AddClass(&ClassInfo{
		Name: "Ord", Params: []string{"a"}, Superclasses: []string{"Eq"},
		Methods: map[string]types.Type{
			"compare": fn(a, fn(a, &types.Con{Name: "Ordering"})),
			"lt":      fn(a, fn(a, types.Bool)),
			"lte":     fn(a, fn(a, types.Bool)),
			"gt":      fn(a, fn(a, types.Bool)),
			"gte":     fn(a, fn(a, types.Bool)),
		},
		Defaults: map[string]bool{"lt": true, "lte": true, "gt": true, "gte": true},
	})
	c.AddClass(&ClassInfo{
		Name: "Show", Params: []string{"a"},
		Methods: map[string]types.Type{"show": fn(a, types.String)},
	})
	c.AddClass(&ClassInfo{
		Name: "Read", Params: []string{"a"},
		Methods: map[string]types.Type{"read": fn(types.String, a)},
	})
	c.AddClass(&ClassInfo{
		Name: "Num", Params: []string{"a"},
		Methods: map[string]types.Type{
			"add": fn(a, fn(a, a)),
			"sub": fn(a, fn(a, a)),
			"mul": fn(a, fn(a, a)),
			"neg": fn(a, a),
		},
	})
	c.AddClass(&ClassInfo{
		Name: "Fractional", Params: []string{"a"}, Superclasses: []string{"Num"},
		Methods: map[string]types.Type{"div": fn(a, fn(a, a))},
	})

	fVar := &types.Var{Name: "f"}
	c.AddClass(&ClassInfo{
		Name: "Functor", Params: []string{"f"},
		Methods: map[string]types.Type{
			"map": fn(fn(a, a), fn(fVar, fVar)),
		},
	})
	c.AddClass(&ClassInfo{
		Name: "Applicative", Params: []string{"f"}, Superclasses: []string{"Functor"},
		Methods: map[string]types.Type{
			"pure": fn(a, fVar),
			"ap":   fn(fVar, fn(fVar, fVar)),
		},
	})
	c.AddClass(&ClassInfo{
		Name: "Monad", Params: []string{"m"}, Superclasses: []string{"Applicative"},
		Methods: map[string]types.Type{
			"bind": fn(fVar, fn(fn(a, fVar), fVar)),
		},
	})
	b := &types.Var{Name: "b"}
	c.AddClass(&ClassInfo{
		Name: "Foldable", Params: []string{"t"},
		Methods: map[string]types.Type{
			"foldr": fn(fn(a, fn(b, b)), fn(b, fn(fVar, b))),
			"foldl": fn(fn(b, fn(a, b)), fn(b, fn(fVar, b))),
		},
	})
	c.AddClass(&ClassInfo{
		Name: "Traversable", Params: []string{"t"}, Superclasses: []string{"Functor", "Foldable"},
		Methods: map[string]types.Type{
			"traverse": fn(fn(a, fVar), fn(fVar, fVar)),
		},
	})
	c.AddClass(&ClassInfo{
		Name: "Semigroup", Params: []string{"a"},
		Methods: map[string]types.Type{"combine": fn(a, fn(a, a))},
	})
	c.AddClass(&ClassInfo{
		Name: "Monoid", Params: []string{"a"}, Superclasses: []string{"Semigroup"},
		Methods: map[string]types.Type{"empty": a},
	})

	addBuiltinInstances(c)
	return c
}

// eqMethods and showMethods are the Python lambda bodies classes.py
// registers for every primitive Eq/Show instance; Bool and Int/Float
// share them since Python's `==`/`str` already do the right thing.
func eqMethods() map[string]interface{} {
	return map[string]interface{}{
		"eq":  "lambda x, y: x == y",
		"neq": "lambda x, y: x != y",
	}
}

func showMethods(identity bool) map[string]interface{} {
	if identity {
		return map[string]interface{}{"show": "lambda x: x"}
	}
	return map[string]interface{}{"show": "lambda x: str(x)"}
}

// addBuiltinInstances mirrors classes.py's _add_builtin_instances:
// Eq/Show for Int/Float/Bool/String, Num for Int/Float, Fractional for Float,
// Semigroup/Monoid for String, with the actual lambda bodies ported
// (not left as empty placeholders) so GetMethod/BuildDictionary return
// something a future codegen pass could actually emit.
func addBuiltinInstances(c *Context) {
	prims := []types.Type{types.Int, types.Float, types.Bool, types.String}
	for _, t := range prims {
		_ = c.AddInstance(&InstanceInfo{ClassName: "Eq", Type: t, Methods: eqMethods()})
		_ = c.AddInstance(&InstanceInfo{ClassName: "Show", Type: t, Methods: showMethods(t == types.String)})
	}

	_ = c.AddInstance(&InstanceInfo{ClassName: "Num", Type: types.Int, Methods: map[string]interface{}{
		"add":  "lambda x, y: x + y",
		"sub":  "lambda x, y: x - y",
		"mul":  "lambda x, y: x * y",
		"neg":  "lambda x: -x",
		"zero": "0",
	}})
	_ = c.AddInstance(&InstanceInfo{ClassName: "Num", Type: types.Float, Methods: map[string]interface{}{
		"add":  "lambda x, y: x + y",
		"sub":  "lambda x, y: x - y",
		"mul":  "lambda x, y: x * y",
		"neg":  "lambda x: -x",
		"zero": "0.0",
	}})
	_ = c.AddInstance(&InstanceInfo{ClassName: "Fractional", Type: types.Float, Methods: map[string]interface{}{
		"div":   "lambda x, y: x / y",
		"recip": "lambda x: 1.0 / x",
		"one":   "1.0",
	}})
	_ = c.AddInstance(&InstanceInfo{ClassName: "Semigroup", Type: types.String, Methods: map[string]interface{}{
		"combine": "lambda x, y: x + y",
	}})
	_ = c.AddInstance(&InstanceInfo{ClassName: "Monoid", Type: types.String, Methods: map[string]interface{}{
		"empty": `""`,
	}})
}
