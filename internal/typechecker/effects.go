package typechecker

import (
	"github.com/funvibe/pfn/internal/ast"
	"github.com/funvibe/pfn/internal/types"
)

// InferWithEffects computes spec.md 4.4's `infer_with_effects(expr) ->
// (Type, EffectSet)`: the ordinary principal type alongside the set of
// effect atoms expr may perform. Run as a second, independent
// traversal over the same AST rather than threaded through Infer's
// (subst, type) pipeline, matching the spec's framing of effect
// tracking as "an embarrassingly parallel annotation" over the HM
// core rather than part of its unification.
func (c *Checker) InferWithEffects(expr ast.Expression, env *types.Env) (types.Type, types.EffectSet, error) {
	t, err := c.Infer(expr, env)
	if err != nil {
		return nil, nil, err
	}
	eff := c.effectsOf(expr)
	return types.WrapIO(t, eff), eff, nil
}

// effectsOf walks expr collecting the union of every PerformExpr it
// contains, discharging the atoms a HandleExpr's clauses name. It
// never fails: an expression that doesn't type-check is caught by
// Infer first, so effectsOf only runs over an already-valid tree.
func (c *Checker) effectsOf(expr ast.Expression) types.EffectSet {
	switch e := expr.(type) {
	case *ast.PerformExpr:
		own := types.Custom(e.Effect)
		for _, a := range e.Args {
			own = types.UnionEffects(own, c.effectsOf(a))
		}
		return own

	case *ast.HandleExpr:
		body := c.effectsOf(e.Body)
		ops := make([]string, 0, len(e.Handlers))
		for _, h := range e.Handlers {
			ops = append(ops, h.Operation)
			body = types.UnionEffects(body, c.effectsOf(h.Body))
		}
		return body.Discharge(ops...)

	case *ast.Lambda:
		return c.effectsOf(e.Body)
	case *ast.App:
		return types.UnionEffects(c.effectsOf(e.Func), c.effectsOf(e.Arg))
	case *ast.BinOp:
		return types.UnionEffects(c.effectsOf(e.Left), c.effectsOf(e.Right))
	case *ast.UnaryOp:
		return c.effectsOf(e.Operand)
	case *ast.If:
		return types.UnionEffects(c.effectsOf(e.Cond), c.effectsOf(e.Then), c.effectsOf(e.Else))
	case *ast.Let:
		return types.UnionEffects(c.effectsOf(e.Value), c.effectsOf(e.Body))
	case *ast.LetPattern:
		return types.UnionEffects(c.effectsOf(e.Value), c.effectsOf(e.Body))
	case *ast.LetFunc:
		return types.UnionEffects(c.effectsOf(e.Value), c.effectsOf(e.Body))
	case *ast.Match:
		eff := c.effectsOf(e.Scrutinee)
		for _, cs := range e.Cases {
			if cs.Guard != nil {
				eff = types.UnionEffects(eff, c.effectsOf(cs.Guard))
			}
			eff = types.UnionEffects(eff, c.effectsOf(cs.Body))
		}
		return eff
	case *ast.DoNotation:
		eff := types.Pure()
		for _, b := range e.Bindings {
			eff = types.UnionEffects(eff, c.effectsOf(b.Value))
		}
		return types.UnionEffects(eff, c.effectsOf(e.Body))
	case *ast.ListLit:
		eff := types.Pure()
		for _, el := range e.Elements {
			eff = types.UnionEffects(eff, c.effectsOf(el))
		}
		return eff
	case *ast.TupleLit:
		eff := types.Pure()
		for _, el := range e.Elements {
			eff = types.UnionEffects(eff, c.effectsOf(el))
		}
		return eff
	case *ast.RecordLit:
		eff := types.Pure()
		for _, f := range e.Fields {
			eff = types.UnionEffects(eff, c.effectsOf(f.Value))
		}
		return eff
	case *ast.RecordUpdate:
		eff := c.effectsOf(e.Record)
		for _, f := range e.Fields {
			eff = types.UnionEffects(eff, c.effectsOf(f.Value))
		}
		return eff
	case *ast.FieldAccess:
		return c.effectsOf(e.Record)
	case *ast.IndexAccess:
		return types.UnionEffects(c.effectsOf(e.Collection), c.effectsOf(e.Index))
	case *ast.Slice:
		eff := c.effectsOf(e.Collection)
		if e.Start != nil {
			eff = types.UnionEffects(eff, c.effectsOf(e.Start))
		}
		if e.End != nil {
			eff = types.UnionEffects(eff, c.effectsOf(e.End))
		}
		return eff
	default:
		// Literals and Var carry no effects of their own.
		return types.Pure()
	}
}
