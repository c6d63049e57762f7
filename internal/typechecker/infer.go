package typechecker

import (
	"github.com/funvibe/pfn/internal/ast"
	"github.com/funvibe/pfn/internal/types"
)

// Infer computes the principal type of expr under env, threading a
// substitution internally and applying it once at the end (spec.md
// 4.4's "bottom-up inference returning (subst, type) pairs").
func (c *Checker) Infer(expr ast.Expression, env *types.Env) (types.Type, error) {
	s, t, err := c.infer(expr, env, types.Subst{})
	if err != nil {
		return nil, err
	}
	return t.Apply(s), nil
}

func (c *Checker) infer(expr ast.Expression, env *types.Env, subst types.Subst) (types.Subst, types.Type, error) {
	switch e := expr.(type) {
	case *ast.IntLit:
		return subst, types.Int, nil
	case *ast.FloatLit:
		return subst, types.Float, nil
	case *ast.StringLit:
		return subst, types.String, nil
	case *ast.CharLit:
		return subst, types.Char, nil
	case *ast.BoolLit:
		return subst, types.Bool, nil

	case *ast.Var:
		scheme, ok := env.Lookup(e.Name)
		if !ok {
			return subst, nil, &Error{Message: "unbound variable " + e.Name, Span: e.Span}
		}
		t, cs := types.Instantiate(scheme, c.fresh)
		c.addConstraints(cs)
		return subst, t, nil

	case *ast.Lambda:
		newEnv := env
		paramTypes := make([]types.Type, len(e.Params))
		for i, name := range e.Params {
			tv := c.fresh.Next()
			paramTypes[i] = tv
			newEnv = newEnv.Extend(name, &types.Scheme{Type: tv})
		}
		s, bodyType, err := c.infer(e.Body, newEnv, subst)
		if err != nil {
			return subst, nil, err
		}
		result := bodyType
		for i := len(paramTypes) - 1; i >= 0; i-- {
			result = &types.Fun{Param: paramTypes[i].Apply(s), Result: result}
		}
		return s, result, nil

	case *ast.App:
		s, fnType, err := c.infer(e.Func, env, subst)
		if err != nil {
			return subst, nil, err
		}
		s, argType, err := c.infer(e.Arg, env, s)
		if err != nil {
			return subst, nil, err
		}
		resultVar := c.fresh.Next()
		s2, err := types.Unify(fnType.Apply(s), &types.Fun{Param: argType, Result: resultVar}, s)
		if err != nil {
			return subst, nil, &Error{Message: "cannot apply a value of this type as a function", Span: e.Span, Left: fnType.Apply(s), Right: argType}
		}
		return s2, resultVar.Apply(s2), nil

	case *ast.BinOp:
		return c.inferBinOp(e, env, subst)

	case *ast.UnaryOp:
		return c.inferUnaryOp(e, env, subst)

	case *ast.If:
		s, condType, err := c.infer(e.Cond, env, subst)
		if err != nil {
			return subst, nil, err
		}
		s, err = types.Unify(condType, types.Bool, s)
		if err != nil {
			return subst, nil, &Error{Message: "if condition must be Bool", Span: e.Cond.GetSpan(), Left: condType}
		}
		s, thenType, err := c.infer(e.Then, env, s)
		if err != nil {
			return subst, nil, err
		}
		s, elseType, err := c.infer(e.Else, env, s)
		if err != nil {
			return subst, nil, err
		}
		s, err = types.Unify(thenType, elseType, s)
		if err != nil {
			return subst, nil, &Error{Message: "if branches must agree on type", Span: e.Span, Left: thenType, Right: elseType}
		}
		return s, thenType.Apply(s), nil

	case *ast.Let:
		return c.inferLet(e.Name, e.Value, e.Body, env, subst)

	case *ast.LetFunc:
		return c.inferLetFunc(e, env, subst)

	case *ast.LetPattern:
		return c.inferLetPattern(e, env, subst)

	case *ast.Match:
		return c.inferMatch(e, env, subst)

	case *ast.DoNotation:
		return c.inferDo(e, env, subst)

	case *ast.ListLit:
		if len(e.Elements) == 0 {
			return subst, &types.List{Elem: c.fresh.Next()}, nil
		}
		s, elemType, err := c.infer(e.Elements[0], env, subst)
		if err != nil {
			return subst, nil, err
		}
		for _, el := range e.Elements[1:] {
			var t types.Type
			s, t, err = c.infer(el, env, s)
			if err != nil {
				return subst, nil, err
			}
			s, err = types.Unify(elemType, t, s)
			if err != nil {
				return subst, nil, &Error{Message: "list elements must share a type", Span: e.Span, Left: elemType, Right: t}
			}
			elemType = elemType.Apply(s)
		}
		return s, &types.List{Elem: elemType}, nil

	case *ast.TupleLit:
		s := subst
		elems := make([]types.Type, len(e.Elements))
		for i, el := range e.Elements {
			var t types.Type
			var err error
			s, t, err = c.infer(el, env, s)
			if err != nil {
				return subst, nil, err
			}
			elems[i] = t
		}
		return s, &types.Tuple{Elements: elems}, nil

	case *ast.RecordLit:
		s := subst
		fields := make(map[string]types.Type, len(e.Fields))
		for _, f := range e.Fields {
			var t types.Type
			var err error
			s, t, err = c.infer(f.Value, env, s)
			if err != nil {
				return subst, nil, err
			}
			fields[f.Name] = t
		}
		return s, &types.Record{Fields: fields}, nil

	case *ast.RecordUpdate:
		s, baseType, err := c.infer(e.Record, env, subst)
		if err != nil {
			return subst, nil, err
		}
		for _, f := range e.Fields {
			var t types.Type
			s, t, err = c.infer(f.Value, env, s)
			if err != nil {
				return subst, nil, err
			}
			if rec, ok := baseType.Apply(s).(*types.Record); ok {
				rec.Fields[f.Name] = t
			}
		}
		return s, baseType.Apply(s), nil

	case *ast.FieldAccess:
		// Record polymorphism via row types is not solved here; field
		// access returns a fresh variable (spec.md 4.4).
		s, _, err := c.infer(e.Record, env, subst)
		if err != nil {
			return subst, nil, err
		}
		return s, c.fresh.Next(), nil

	case *ast.IndexAccess:
		s, _, err := c.infer(e.Collection, env, subst)
		if err != nil {
			return subst, nil, err
		}
		var indexType types.Type
		s, indexType, err = c.infer(e.Index, env, s)
		if err != nil {
			return subst, nil, err
		}
		s, err = types.Unify(indexType, types.Int, s)
		if err != nil {
			return subst, nil, &Error{Message: "index must be Int", Span: e.Index.GetSpan(), Left: indexType}
		}
		return s, c.fresh.Next(), nil

	case *ast.Slice:
		s, collType, err := c.infer(e.Collection, env, subst)
		if err != nil {
			return subst, nil, err
		}
		if e.Start != nil {
			var t types.Type
			s, t, err = c.infer(e.Start, env, s)
			if err != nil {
				return subst, nil, err
			}
			if s, err = types.Unify(t, types.Int, s); err != nil {
				return subst, nil, &Error{Message: "slice bound must be Int", Span: e.Start.GetSpan()}
			}
		}
		if e.End != nil {
			var t types.Type
			s, t, err = c.infer(e.End, env, s)
			if err != nil {
				return subst, nil, err
			}
			if s, err = types.Unify(t, types.Int, s); err != nil {
				return subst, nil, &Error{Message: "slice bound must be Int", Span: e.End.GetSpan()}
			}
		}
		return s, collType.Apply(s), nil

	case *ast.PerformExpr:
		s := subst
		var err error
		for _, a := range e.Args {
			s, _, err = c.infer(a, env, s)
			if err != nil {
				return subst, nil, err
			}
		}
		return s, c.fresh.Next(), nil

	case *ast.HandleExpr:
		return c.infer(e.Body, env, subst)
	}

	return subst, nil, &Error{Message: "unsupported expression form", Span: expr.GetSpan()}
}

func (c *Checker) inferLet(name string, value, body ast.Expression, env *types.Env, subst types.Subst) (types.Subst, types.Type, error) {
	s, valueType, err := c.infer(value, env, subst)
	if err != nil {
		return subst, nil, err
	}
	var scheme *types.Scheme
	if isSyntacticValue(value) {
		scheme = types.Generalize(env, valueType.Apply(s), nil)
	} else {
		scheme = &types.Scheme{Type: valueType.Apply(s)}
	}
	newEnv := env.Extend(name, scheme)
	return c.infer(body, newEnv, s)
}

func (c *Checker) inferLetFunc(e *ast.LetFunc, env *types.Env, subst types.Subst) (types.Subst, types.Type, error) {
	selfVar := c.fresh.Next()
	recEnv := env.Extend(e.Name, &types.Scheme{Type: selfVar})

	paramTypes := make([]types.Type, len(e.Params))
	bodyEnv := recEnv
	for i, name := range e.Params {
		tv := c.fresh.Next()
		paramTypes[i] = tv
		bodyEnv = bodyEnv.Extend(name, &types.Scheme{Type: tv})
	}

	s, valueType, err := c.infer(e.Value, bodyEnv, subst)
	if err != nil {
		return subst, nil, err
	}
	funType := valueType
	for i := len(paramTypes) - 1; i >= 0; i-- {
		funType = &types.Fun{Param: paramTypes[i].Apply(s), Result: funType}
	}
	s, err = types.Unify(selfVar, funType, s)
	if err != nil {
		return subst, nil, &Error{Message: "recursive call does not match inferred function type", Span: e.Span, Left: selfVar, Right: funType}
	}

	scheme := types.Generalize(env, funType.Apply(s), nil)
	newEnv := env.Extend(e.Name, scheme)
	return c.infer(e.Body, newEnv, s)
}

func (c *Checker) inferLetPattern(e *ast.LetPattern, env *types.Env, subst types.Subst) (types.Subst, types.Type, error) {
	s, valueType, err := c.infer(e.Value, env, subst)
	if err != nil {
		return subst, nil, err
	}
	s, patEnv, patType, err := c.inferPattern(e.Pattern, env, s)
	if err != nil {
		return subst, nil, err
	}
	s, err = types.Unify(patType, valueType, s)
	if err != nil {
		return subst, nil, &Error{Message: "let pattern does not match value type", Span: e.Span, Left: patType, Right: valueType}
	}
	return c.infer(e.Body, patEnv, s)
}

func (c *Checker) inferDo(e *ast.DoNotation, env *types.Env, subst types.Subst) (types.Subst, types.Type, error) {
	s := subst
	curEnv := env
	for _, b := range e.Bindings {
		t, bt, err := c.infer(b.Value, curEnv, s)
		if err != nil {
			return subst, nil, err
		}
		s = t
		if b.Name != "" {
			curEnv = curEnv.Extend(b.Name, &types.Scheme{Type: bt})
		}
	}
	return c.infer(e.Body, curEnv, s)
}

// isSyntacticValue implements spec.md 4.4's value restriction: a let
// binding generalises only when its right-hand side is syntactically a
// value (lambda, literal, variable, or constructor application of values).
func isSyntacticValue(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.Lambda, *ast.IntLit, *ast.FloatLit, *ast.StringLit, *ast.CharLit, *ast.BoolLit, *ast.Var:
		return true
	case *ast.TupleLit:
		for _, el := range e.Elements {
			if !isSyntacticValue(el) {
				return false
			}
		}
		return true
	case *ast.ListLit:
		for _, el := range e.Elements {
			if !isSyntacticValue(el) {
				return false
			}
		}
		return true
	case *ast.App:
		return isConstructorApp(e)
	}
	return false
}

func isConstructorApp(app *ast.App) bool {
	cur := ast.Expression(app)
	for {
		a, ok := cur.(*ast.App)
		if !ok {
			break
		}
		if !isSyntacticValue(a.Arg) {
			return false
		}
		cur = a.Func
	}
	v, ok := cur.(*ast.Var)
	return ok && len(v.Name) > 0 && v.Name[0] >= 'A' && v.Name[0] <= 'Z'
}
