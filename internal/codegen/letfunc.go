package codegen

import (
	"fmt"

	"github.com/funvibe/pfn/internal/ast"
)

// emitLetFunc lowers a LetFunc per spec.md 4.5. A non-recursive LetFunc
// is just sugar for Let over a curried lambda chain. A recursive one
// ties the knot through a single-cell list, since the host has no
// letrec: __cell[0] is assigned the function after it's built, and
// every occurrence of the function's own name inside its body is
// replaced by a read through that cell.
func emitLetFunc(c *ctx, e *ast.LetFunc) string {
	if !referencesName(e.Value, e.Name) {
		value := emitCurried(c, e.Params, e.Value)
		body := emitExpr(c.without(e.Name), e.Body)
		return fmt.Sprintf("(lambda %s: %s)(%s)", renameIdent(e.Name), body, value)
	}

	cellCtx := c.with(e.Name, "__cell[0]")
	value := emitCurried(cellCtx, e.Params, e.Value)
	body := emitExpr(cellCtx, e.Body)
	return fmt.Sprintf("(lambda __cell: (__cell.__setitem__(0, %s) or %s))([None])", value, body)
}

// emitCurried builds the nested-lambda-chain host expression for a
// function of the given parameter names over body.
func emitCurried(c *ctx, params []string, body ast.Expression) string {
	inner := c
	for _, p := range params {
		inner = inner.without(p)
	}
	result := emitExpr(inner, body)
	for i := len(params) - 1; i >= 0; i-- {
		result = fmt.Sprintf("lambda %s: %s", renameIdent(params[i]), result)
	}
	return "(" + result + ")"
}

// referencesName reports whether expr contains a free occurrence of
// name, used to decide whether a LetFunc needs the knot-tying cell or
// can lower as an ordinary (non-recursive) let (spec.md 4.5).
func referencesName(expr ast.Expression, name string) bool {
	switch e := expr.(type) {
	case *ast.Var:
		return e.Name == name
	case *ast.Lambda:
		for _, p := range e.Params {
			if p == name {
				return false
			}
		}
		return referencesName(e.Body, name)
	case *ast.App:
		return referencesName(e.Func, name) || referencesName(e.Arg, name)
	case *ast.BinOp:
		return referencesName(e.Left, name) || referencesName(e.Right, name)
	case *ast.UnaryOp:
		return referencesName(e.Operand, name)
	case *ast.If:
		return referencesName(e.Cond, name) || referencesName(e.Then, name) || referencesName(e.Else, name)
	case *ast.Let:
		if referencesName(e.Value, name) {
			return true
		}
		if e.Name == name {
			return false
		}
		return referencesName(e.Body, name)
	case *ast.LetPattern:
		return referencesName(e.Value, name) || referencesName(e.Body, name)
	case *ast.LetFunc:
		if e.Name == name {
			return false
		}
		for _, p := range e.Params {
			if p == name {
				return referencesName(e.Body, name)
			}
		}
		return referencesName(e.Value, name) || referencesName(e.Body, name)
	case *ast.Match:
		if referencesName(e.Scrutinee, name) {
			return true
		}
		for _, c := range e.Cases {
			if c.Guard != nil && referencesName(c.Guard, name) {
				return true
			}
			if referencesName(c.Body, name) {
				return true
			}
		}
		return false
	case *ast.DoNotation:
		for _, b := range e.Bindings {
			if referencesName(b.Value, name) {
				return true
			}
		}
		return referencesName(e.Body, name)
	case *ast.ListLit:
		for _, el := range e.Elements {
			if referencesName(el, name) {
				return true
			}
		}
		return false
	case *ast.TupleLit:
		for _, el := range e.Elements {
			if referencesName(el, name) {
				return true
			}
		}
		return false
	case *ast.RecordLit:
		for _, f := range e.Fields {
			if referencesName(f.Value, name) {
				return true
			}
		}
		return false
	case *ast.RecordUpdate:
		if referencesName(e.Record, name) {
			return true
		}
		for _, f := range e.Fields {
			if referencesName(f.Value, name) {
				return true
			}
		}
		return false
	case *ast.FieldAccess:
		return referencesName(e.Record, name)
	case *ast.IndexAccess:
		return referencesName(e.Collection, name) || referencesName(e.Index, name)
	case *ast.Slice:
		if referencesName(e.Collection, name) {
			return true
		}
		if e.Start != nil && referencesName(e.Start, name) {
			return true
		}
		if e.End != nil && referencesName(e.End, name) {
			return true
		}
		return false
	case *ast.PerformExpr:
		for _, a := range e.Args {
			if referencesName(a, name) {
				return true
			}
		}
		return false
	case *ast.HandleExpr:
		return referencesName(e.Body, name)
	}
	return false
}
