package typechecker

import (
	"github.com/funvibe/pfn/internal/ast"
	"github.com/funvibe/pfn/internal/classes"
	"github.com/funvibe/pfn/internal/config"
	"github.com/funvibe/pfn/internal/types"
)

// Checker holds the mutable state threaded through a single
// type-checking run: the fresh-variable counter, the class/instance
// context, the constructor and type-alias tables populated by
// registering a module's TypeDecls before inference begins, and the
// class constraints accumulated by *ast.Var lookups of a constrained
// scheme (spec.md section 3's qualified types, `(C1,...,Cn) => τ`).
type Checker struct {
	fresh       *types.Fresh
	Classes     *classes.Context
	ctors       map[string]*types.Scheme
	aliases     map[string]*ast.TypeAliasDecl
	constraints []types.Constraint
}

// NewChecker returns a Checker seeded with the default class hierarchy
// (internal/classes.NewDefaultContext) and the built-in Option/Result/
// Ordering constructors every pfn program can pattern-match on.
func NewChecker() *Checker {
	c := &Checker{
		fresh:   types.NewFresh(),
		Classes: classes.NewDefaultContext(),
		ctors:   map[string]*types.Scheme{},
		aliases: map[string]*ast.TypeAliasDecl{},
	}
	registerBuiltinConstructors(c)
	return c
}

func registerBuiltinConstructors(c *Checker) {
	a := &types.Var{Name: "a"}
	option := func(t types.Type) types.Type { return &types.Con{Name: config.OptionTypeName, Args: []types.Type{t}} }
	result := func(ok, errT types.Type) types.Type {
		return &types.Con{Name: config.ResultTypeName, Args: []types.Type{ok, errT}}
	}
	e := &types.Var{Name: "e"}

	c.ctors[config.SomeCtorName] = &types.Scheme{Vars: []string{"a"}, Type: &types.Fun{Param: a, Result: option(a)}}
	c.ctors[config.NoneCtorName] = &types.Scheme{Vars: []string{"a"}, Type: option(a)}
	c.ctors[config.OkCtorName] = &types.Scheme{Vars: []string{"a", "e"}, Type: &types.Fun{Param: a, Result: result(a, e)}}
	c.ctors[config.ErrorCtorName] = &types.Scheme{Vars: []string{"a", "e"}, Type: &types.Fun{Param: e, Result: result(a, e)}}

	ordering := &types.Con{Name: config.OrderingTypeName}
	c.ctors["LT"] = &types.Scheme{Type: ordering}
	c.ctors["EQ"] = &types.Scheme{Type: ordering}
	c.ctors["GT"] = &types.Scheme{Type: ordering}
}

// RegisterTypeDecl adds every constructor of decl to the constructor
// table with a curried function scheme `Field1 -> ... -> FieldN ->
// TypeName Params...` (nullary constructors get the bare result type).
func (c *Checker) RegisterTypeDecl(decl *ast.TypeDecl) error {
	if decl.IsRecord || decl.IsGADT {
		return c.registerSpecialTypeDecl(decl)
	}
	resultType := c.typeConOf(decl.Name, decl.Params)
	for _, ctor := range decl.Constructors {
		t := resultType
		for i := len(ctor.Fields) - 1; i >= 0; i-- {
			ft, err := c.ResolveTypeRef(ctor.Fields[i])
			if err != nil {
				return err
			}
			t = &types.Fun{Param: ft, Result: t}
		}
		c.ctors[ctor.Name] = &types.Scheme{Vars: append([]string(nil), decl.Params...), Type: t}
	}
	return nil
}

func (c *Checker) registerSpecialTypeDecl(decl *ast.TypeDecl) error {
	if decl.IsGADT {
		for _, sig := range decl.GADTSigs {
			t, err := c.ResolveTypeRef(sig.Type)
			if err != nil {
				return err
			}
			c.ctors[sig.Name] = &types.Scheme{Vars: append([]string(nil), decl.Params...), Type: t}
		}
		return nil
	}
	// Record declarations introduce a single constructor of the same
	// name taking each field positionally, plus the record type itself
	// for annotation purposes (handled by ResolveTypeRef via aliases).
	resultType := c.typeConOf(decl.Name, decl.Params)
	t := resultType
	for i := len(decl.RecordFields) - 1; i >= 0; i-- {
		ft, err := c.ResolveTypeRef(decl.RecordFields[i].Type)
		if err != nil {
			return err
		}
		t = &types.Fun{Param: ft, Result: t}
	}
	c.ctors[decl.Name] = &types.Scheme{Vars: append([]string(nil), decl.Params...), Type: t}
	return nil
}

func (c *Checker) typeConOf(name string, params []string) types.Type {
	if len(params) == 0 {
		return &types.Con{Name: name}
	}
	args := make([]types.Type, len(params))
	for i, p := range params {
		args[i] = &types.Var{Name: p}
	}
	return &types.Con{Name: name, Args: args}
}

// RegisterAlias records a type alias for later resolution by ResolveTypeRef.
func (c *Checker) RegisterAlias(decl *ast.TypeAliasDecl) {
	c.aliases[decl.Name] = decl
}

// ConstructorScheme looks up a registered constructor's function or
// value scheme. Built-in and user-declared constructors share one
// table, so a user constructor of the same name replaces the built-in.
func (c *Checker) ConstructorScheme(name string) (*types.Scheme, bool) {
	s, ok := c.ctors[name]
	return s, ok
}

// ResolveTypeRef elaborates surface syntax (ast.TypeRef) into a
// semantic types.Type, resolving registered aliases and well-known
// built-in names (List, Option, Result, Ordering, Bool, Unit, tuples,
// records) along the way.
func (c *Checker) ResolveTypeRef(ref ast.TypeRef) (types.Type, error) {
	switch r := ref.(type) {
	case *ast.SimpleTypeRef:
		return c.resolveSimple(r)
	case *ast.FunTypeRef:
		param, err := c.ResolveTypeRef(r.Param)
		if err != nil {
			return nil, err
		}
		result, err := c.ResolveTypeRef(r.Result)
		if err != nil {
			return nil, err
		}
		return &types.Fun{Param: param, Result: result}, nil
	case *ast.TupleTypeRef:
		elems := make([]types.Type, len(r.Elements))
		for i, e := range r.Elements {
			t, err := c.ResolveTypeRef(e)
			if err != nil {
				return nil, err
			}
			elems[i] = t
		}
		return &types.Tuple{Elements: elems}, nil
	case *ast.RecordTypeRef:
		fields := make(map[string]types.Type, len(r.Fields))
		for _, f := range r.Fields {
			t, err := c.ResolveTypeRef(f.Type)
			if err != nil {
				return nil, err
			}
			fields[f.Name] = t
		}
		return &types.Record{Fields: fields}, nil
	}
	return nil, &Error{Message: "unresolvable type reference", Span: ref.GetSpan()}
}

func (c *Checker) resolveSimple(r *ast.SimpleTypeRef) (types.Type, error) {
	switch r.Name {
	case "Int":
		return types.Int, nil
	case "Float":
		return types.Float, nil
	case "String":
		return types.String, nil
	case "Bool":
		return types.Bool, nil
	case "Char":
		return types.Char, nil
	case "Unit":
		return types.Unit, nil
	case "List":
		if len(r.Args) != 1 {
			return nil, &Error{Message: "List takes exactly one type argument", Span: r.Span}
		}
		elem, err := c.ResolveTypeRef(r.Args[0])
		if err != nil {
			return nil, err
		}
		return &types.List{Elem: elem}, nil
	}
	if alias, ok := c.aliases[r.Name]; ok {
		return c.ResolveTypeRef(alias.Target)
	}
	if len(r.Args) == 0 && isLowerTypeVar(r.Name) {
		return &types.Var{Name: r.Name}, nil
	}
	args := make([]types.Type, len(r.Args))
	for i, a := range r.Args {
		t, err := c.ResolveTypeRef(a)
		if err != nil {
			return nil, err
		}
		args[i] = t
	}
	return &types.Con{Name: r.Name, Args: args}, nil
}

// addConstraints records constraints picked up while instantiating a
// constrained scheme, to be resolved once the enclosing definition's
// type is fully known (takeConstraints).
func (c *Checker) addConstraints(cs []types.Constraint) {
	c.constraints = append(c.constraints, cs...)
}

// takeConstraints returns every constraint accumulated since the last
// call and resets the accumulator, so each top-level definition starts
// from a clean slate.
func (c *Checker) takeConstraints() []types.Constraint {
	cs := c.constraints
	c.constraints = nil
	return cs
}

func isLowerTypeVar(name string) bool {
	return len(name) > 0 && name[0] >= 'a' && name[0] <= 'z'
}
