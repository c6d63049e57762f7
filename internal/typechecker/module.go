package typechecker

import (
	"github.com/funvibe/pfn/internal/ast"
	"github.com/funvibe/pfn/internal/classes"
	"github.com/funvibe/pfn/internal/token"
	"github.com/funvibe/pfn/internal/types"
)

// ModuleResult carries the outcome of checking a whole module: the
// type of each top-level definition, in declaration order, for callers
// (the CLI's --dump-types, the codegen stage) that need them without
// re-running inference.
type ModuleResult struct {
	DefTypes map[string]types.Type
	Order    []string
}

// CheckModule registers every TypeDecl, alias, interface, and impl up
// front (so mutually referential top-level definitions can see each
// other's constructors and methods), then infers each DefDecl in turn,
// threading each one into the environment as a LetFunc (params present,
// self-referential, so it can recurse) or a Let (no params) per spec.md's
// module-scope convention of treating top-level defs as nested lets.
func (c *Checker) CheckModule(mod *ast.Module) (*ModuleResult, error) {
	env := types.NewEnv()

	for _, decl := range mod.Declarations {
		switch d := decl.(type) {
		case *ast.TypeAliasDecl:
			c.RegisterAlias(d)
		}
	}
	for _, decl := range mod.Declarations {
		switch d := decl.(type) {
		case *ast.TypeDecl:
			if err := c.RegisterTypeDecl(d); err != nil {
				return nil, err
			}
		}
	}
	for name, scheme := range c.ctors {
		env = env.Extend(name, scheme)
	}

	for _, decl := range mod.Declarations {
		switch d := decl.(type) {
		case *ast.InterfaceDecl:
			newEnv, err := c.registerInterface(d, env)
			if err != nil {
				return nil, err
			}
			env = newEnv
		}
	}
	for _, decl := range mod.Declarations {
		switch d := decl.(type) {
		case *ast.ImplDecl:
			if err := c.registerImpl(d, env); err != nil {
				return nil, err
			}
		}
	}

	result := &ModuleResult{DefTypes: map[string]types.Type{}}

	for _, decl := range mod.Declarations {
		def, ok := decl.(*ast.DefDecl)
		if !ok {
			continue
		}
		t, newEnv, err := c.checkDef(def, env)
		if err != nil {
			return nil, err
		}
		env = newEnv
		result.DefTypes[def.Name] = t
		result.Order = append(result.Order, def.Name)
	}

	return result, nil
}

// checkDef infers a top-level definition and extends env with its
// generalised scheme, returning both the inferred type and the new
// environment so later definitions can call earlier ones. A def with
// params is treated as a LetFunc (so it may recurse); a bare value def
// is treated as a Let, per spec.md's module-scope convention of
// reading top-level defs as nested lets.
func (c *Checker) checkDef(def *ast.DefDecl, env *types.Env) (types.Type, *types.Env, error) {
	var s types.Subst
	var t types.Type
	var err error

	if len(def.Params) > 0 {
		lf := &ast.LetFunc{
			Name:   def.Name,
			Params: paramNames(def.Params),
			Value:  def.Value,
			Body:   &ast.Var{Name: def.Name, Span: def.Span},
			Span:   def.Span,
		}
		s, t, err = c.infer(lf, env, types.Subst{})
	} else {
		s, t, err = c.inferLet(def.Name, def.Value, &ast.Var{Name: def.Name, Span: def.Span}, env, types.Subst{})
	}
	if err != nil {
		return nil, nil, err
	}
	t = t.Apply(s)

	if def.ReturnType != nil {
		want, rerr := c.ResolveTypeRef(def.ReturnType)
		if rerr != nil {
			return nil, nil, rerr
		}
		actual := peelParams(t, len(def.Params))
		if _, uerr := types.Unify(actual, want, s); uerr != nil {
			return nil, nil, &Error{Message: "declared return type does not match inferred type", Span: def.Span, Left: want, Right: actual}
		}
	}

	scheme, cerr := c.resolveConstraints(env, t, s, def.Span)
	if cerr != nil {
		return nil, nil, cerr
	}
	return t, env.Extend(def.Name, scheme), nil
}

// resolveConstraints partitions the constraints accumulated while
// checking a definition (spec.md section 3's qualified types) into
// those still mentioning a free type variable — deferred onto the
// generalised scheme, so a caller under a stricter instantiation can
// still be rejected — and those fully concrete, which must have a
// satisfying instance now (spec.md 4.7's "unsatisfied class
// constraint" semantic error).
func (c *Checker) resolveConstraints(env *types.Env, t types.Type, s types.Subst, span token.Span) (*types.Scheme, error) {
	cs := c.takeConstraints()
	var concrete, deferred []types.Constraint
	for _, con := range cs {
		con = con.Apply(s)
		if len(con.Type.FreeVars()) == 0 {
			concrete = append(concrete, con)
		} else {
			deferred = append(deferred, con)
		}
	}
	if !c.Classes.SolveConstraints(concrete, types.Subst{}) {
		bad := c.Classes.UnsatisfiedConstraints(concrete, types.Subst{})
		return nil, &Error{Message: "unsatisfied class constraint: " + bad[0].String(), Span: span}
	}
	return types.Generalize(env, t, deferred), nil
}

// peelParams strips n leading function arrows from t, returning
// whatever remains (the declared ReturnType is checked against this).
func peelParams(t types.Type, n int) types.Type {
	for i := 0; i < n; i++ {
		fn, ok := t.(*types.Fun)
		if !ok {
			return t
		}
		t = fn.Result
	}
	return t
}

func paramNames(params []ast.Param) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}

// registerInterface records decl's class in c.Classes (so impls and
// constraint checks can find it) and, per spec.md section 3's
// type-class environment, extends env so each method name becomes a
// callable, constrained variable: `eq : (Eq a) => a -> a -> Bool`.
// Without this extension a call like `eq x y` fails type-checking as
// an unbound variable, since method names otherwise exist only inside
// classes.Context, which infer.go's *ast.Var case never consults.
func (c *Checker) registerInterface(decl *ast.InterfaceDecl, env *types.Env) (*types.Env, error) {
	methods := make(map[string]types.Type, len(decl.Methods))
	for _, m := range decl.Methods {
		t, err := c.ResolveTypeRef(m.Type)
		if err != nil {
			return nil, err
		}
		methods[m.Name] = t
	}
	c.Classes.AddClass(&classes.ClassInfo{
		Name:         decl.Name,
		Params:       decl.Params,
		Methods:      methods,
		Superclasses: decl.Superclasses,
	})

	classParam := ""
	if len(decl.Params) > 0 {
		classParam = decl.Params[0]
	}
	for _, m := range decl.Methods {
		scheme := types.Generalize(types.NewEnv(), methods[m.Name], []types.Constraint{
			{ClassName: decl.Name, Type: &types.Var{Name: classParam}},
		})
		env = env.Extend(m.Name, scheme)
	}
	return env, nil
}

// registerImpl records decl's instance in c.Classes and type-checks
// every method body against the interface's declared signature, with
// the class's own type parameter substituted for decl.Type — so
// `impl Eq Foo where { def eq a b = 1 }` is rejected (Bool expected,
// got Int) rather than silently accepted (spec.md section 3).
func (c *Checker) registerImpl(decl *ast.ImplDecl, env *types.Env) error {
	implType, err := c.ResolveTypeRef(decl.Type)
	if err != nil {
		return err
	}
	classInfo, ok := c.Classes.LookupClass(decl.ClassName)
	if !ok {
		return &Error{Message: "no such class " + decl.ClassName, Span: decl.Span}
	}
	classParam := ""
	if len(classInfo.Params) > 0 {
		classParam = classInfo.Params[0]
	}
	subst := types.Subst{classParam: implType}

	methods := make(map[string]interface{}, len(decl.Methods))
	for _, m := range decl.Methods {
		body := m.Value
		if len(m.Params) > 0 {
			body = &ast.Lambda{Params: m.Params, Body: m.Value, Span: m.Value.GetSpan()}
		}
		methods[m.Name] = body

		bodySubst, got, err := c.infer(body, env, types.Subst{})
		if err != nil {
			return err
		}
		got = got.Apply(bodySubst)
		if _, cerr := c.resolveConstraints(types.NewEnv(), got, bodySubst, body.GetSpan()); cerr != nil {
			return cerr
		}

		want, ok := classInfo.Methods[m.Name]
		if !ok {
			continue // a helper the impl defines beyond the class's signatures
		}
		want = want.Apply(subst)
		if _, err := types.Unify(want, got, types.Subst{}); err != nil {
			return &Error{Message: "impl method " + m.Name + " does not match " + decl.ClassName + "'s declared signature", Span: body.GetSpan(), Left: want, Right: got}
		}
	}

	if err := c.Classes.AddInstance(&classes.InstanceInfo{
		ClassName: decl.ClassName,
		Type:      implType,
		Methods:   methods,
	}); err != nil {
		return &Error{Message: err.Error(), Span: decl.Span}
	}

	dict, err := c.Classes.BuildDictionary(decl.ClassName, implType)
	if err != nil {
		return &Error{Message: err.Error(), Span: decl.Span}
	}
	for name := range classInfo.Methods {
		if classInfo.Defaults[name] {
			continue // defaulted methods may be omitted from the impl
		}
		if _, ok := dict[name]; !ok {
			return &Error{Message: "impl " + decl.ClassName + " " + implType.String() + " is missing method " + name, Span: decl.Span}
		}
	}
	return nil
}
