package typechecker

import (
	"github.com/funvibe/pfn/internal/ast"
	"github.com/funvibe/pfn/internal/types"
)

// inferPattern mirrors infer.py's _infer_pattern, extended for
// ConstructorPattern and RecordPattern which the Python original's
// pattern set lacks. It returns the environment extended with every
// variable the pattern binds alongside the pattern's type.
func (c *Checker) inferPattern(pat ast.Pattern, env *types.Env, subst types.Subst) (types.Subst, *types.Env, types.Type, error) {
	switch p := pat.(type) {
	case *ast.IntPattern:
		return subst, env, types.Int, nil
	case *ast.FloatPattern:
		return subst, env, types.Float, nil
	case *ast.StringPattern:
		return subst, env, types.String, nil
	case *ast.CharPattern:
		return subst, env, types.Char, nil
	case *ast.BoolPattern:
		return subst, env, types.Bool, nil

	case *ast.VarPattern:
		tv := c.fresh.Next()
		return subst, env.Extend(p.Name, &types.Scheme{Type: tv}), tv, nil

	case *ast.WildcardPattern:
		return subst, env, c.fresh.Next(), nil

	case *ast.ConsPattern:
		s, newEnv, headType, err := c.inferPattern(p.Head, env, subst)
		if err != nil {
			return subst, nil, nil, err
		}
		s, newEnv, tailType, err := c.inferPattern(p.Tail, newEnv, s)
		if err != nil {
			return subst, nil, nil, err
		}
		s, err = types.Unify(tailType, &types.List{Elem: headType}, s)
		if err != nil {
			return subst, nil, nil, &Error{Message: "cons pattern tail must be a list of the head's type", Span: p.Span, Left: tailType, Right: headType}
		}
		return s, newEnv, &types.List{Elem: headType.Apply(s)}, nil

	case *ast.ListPattern:
		if len(p.Elements) == 0 {
			return subst, env, &types.List{Elem: c.fresh.Next()}, nil
		}
		s, newEnv, elemType, err := c.inferPattern(p.Elements[0], env, subst)
		if err != nil {
			return subst, nil, nil, err
		}
		for _, el := range p.Elements[1:] {
			var t types.Type
			s, newEnv, t, err = c.inferPattern(el, newEnv, s)
			if err != nil {
				return subst, nil, nil, err
			}
			s, err = types.Unify(elemType, t, s)
			if err != nil {
				return subst, nil, nil, &Error{Message: "list pattern elements must share a type", Span: p.Span, Left: elemType, Right: t}
			}
			elemType = elemType.Apply(s)
		}
		if p.Rest != nil {
			newEnv = newEnv.Extend(p.Rest.Name, &types.Scheme{Type: &types.List{Elem: elemType}})
		}
		return s, newEnv, &types.List{Elem: elemType}, nil

	case *ast.TuplePattern:
		s := subst
		newEnv := env
		elems := make([]types.Type, len(p.Elements))
		for i, el := range p.Elements {
			var t types.Type
			var err error
			s, newEnv, t, err = c.inferPattern(el, newEnv, s)
			if err != nil {
				return subst, nil, nil, err
			}
			elems[i] = t
		}
		return s, newEnv, &types.Tuple{Elements: elems}, nil

	case *ast.RecordPattern:
		s := subst
		newEnv := env
		fields := make(map[string]types.Type, len(p.Fields))
		for _, f := range p.Fields {
			var t types.Type
			var err error
			s, newEnv, t, err = c.inferPattern(f.Pattern, newEnv, s)
			if err != nil {
				return subst, nil, nil, err
			}
			fields[f.Name] = t
		}
		return s, newEnv, &types.Record{Fields: fields}, nil

	case *ast.ConstructorPattern:
		scheme, ok := c.ConstructorScheme(p.Name)
		if !ok {
			return subst, nil, nil, &Error{Message: "unknown constructor " + p.Name, Span: p.Span}
		}
		ctorType, _ := types.Instantiate(scheme, c.fresh)
		s := subst
		newEnv := env
		var resultType types.Type = ctorType
		for _, arg := range p.Args {
			fn, ok := resultType.(*types.Fun)
			if !ok {
				return subst, nil, nil, &Error{Message: "constructor " + p.Name + " applied to too many arguments", Span: p.Span}
			}
			var argType types.Type
			var err error
			s, newEnv, argType, err = c.inferPattern(arg, newEnv, s)
			if err != nil {
				return subst, nil, nil, err
			}
			s, err = types.Unify(fn.Param, argType, s)
			if err != nil {
				return subst, nil, nil, &Error{Message: "constructor argument type mismatch", Span: p.Span, Left: fn.Param, Right: argType}
			}
			resultType = fn.Result
		}
		return s, newEnv, resultType.Apply(s), nil
	}

	return subst, nil, nil, &Error{Message: "unsupported pattern form", Span: pat.GetSpan()}
}
