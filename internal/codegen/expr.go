package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/pfn/internal/ast"
	"github.com/funvibe/pfn/internal/token"
)

// emitExpr lowers expr to host source text per spec.md 4.5's
// expression lowering table. c carries the LetFunc knot-tying
// substitution environment and the fresh-name counter.
func emitExpr(c *ctx, expr ast.Expression) string {
	switch e := expr.(type) {
	case *ast.IntLit:
		return strconv.FormatInt(e.Value, 10)
	case *ast.FloatLit:
		return formatFloat(e.Value)
	case *ast.StringLit:
		return strconv.Quote(e.Value)
	case *ast.CharLit:
		return strconv.Quote(string(e.Value))
	case *ast.BoolLit:
		if e.Value {
			return "True"
		}
		return "False"

	case *ast.Var:
		if repl, ok := c.lookup(e.Name); ok {
			return repl
		}
		return renameIdent(e.Name)

	case *ast.Lambda:
		inner := c
		for _, p := range e.Params {
			inner = inner.without(p)
		}
		body := emitExpr(inner, e.Body)
		for i := len(e.Params) - 1; i >= 0; i-- {
			body = fmt.Sprintf("lambda %s: %s", renameIdent(e.Params[i]), body)
		}
		return "(" + body + ")"

	case *ast.App:
		return fmt.Sprintf("%s(%s)", emitExpr(c, e.Func), emitExpr(c, e.Arg))

	case *ast.BinOp:
		return emitBinOp(c, e)

	case *ast.UnaryOp:
		switch e.Op {
		case token.MINUS:
			return "(-" + emitExpr(c, e.Operand) + ")"
		case token.BANG:
			return "(not " + emitExpr(c, e.Operand) + ")"
		}
		return emitExpr(c, e.Operand)

	case *ast.If:
		return fmt.Sprintf("(%s if %s else %s)", emitExpr(c, e.Then), emitExpr(c, e.Cond), emitExpr(c, e.Else))

	case *ast.Let:
		body := emitExpr(c.without(e.Name), e.Body)
		value := emitExpr(c, e.Value)
		return fmt.Sprintf("(lambda %s: %s)(%s)", renameIdent(e.Name), body, value)

	case *ast.LetPattern:
		scrutVar := c.freshName("__let_val")
		_, binds := compilePattern(e.Pattern, scrutVar) // a type-checked let-pattern is assumed irrefutable
		inner := c
		for _, b := range binds {
			inner = inner.without(b.Name)
		}
		body := applyBindings(binds, emitExpr(inner, e.Body))
		return fmt.Sprintf("(lambda %s: %s)(%s)", scrutVar, body, emitExpr(c, e.Value))

	case *ast.LetFunc:
		return emitLetFunc(c, e)

	case *ast.Match:
		return emitMatch(c, e)

	case *ast.DoNotation:
		return emitDo(c, e)

	case *ast.ListLit:
		parts := make([]string, len(e.Elements))
		for i, el := range e.Elements {
			parts[i] = emitExpr(c, el)
		}
		return "[" + strings.Join(parts, ", ") + "]"

	case *ast.TupleLit:
		if len(e.Elements) == 0 {
			return "None"
		}
		parts := make([]string, len(e.Elements))
		for i, el := range e.Elements {
			parts[i] = emitExpr(c, el)
		}
		if len(parts) == 1 {
			return "(" + parts[0] + ",)"
		}
		return "(" + strings.Join(parts, ", ") + ")"

	case *ast.RecordLit:
		return fmt.Sprintf("Record({%s})", emitFieldMap(c, e.Fields))

	case *ast.RecordUpdate:
		base := emitExpr(c, e.Record)
		return fmt.Sprintf("Record({**%s.__dict__, %s})", base, emitFieldMap(c, e.Fields))

	case *ast.FieldAccess:
		return fmt.Sprintf("%s.%s", emitExpr(c, e.Record), e.Field)

	case *ast.IndexAccess:
		return fmt.Sprintf("%s[%s]", emitExpr(c, e.Collection), emitExpr(c, e.Index))

	case *ast.Slice:
		start := ""
		if e.Start != nil {
			start = emitExpr(c, e.Start)
		}
		end := ""
		if e.End != nil {
			end = emitExpr(c, e.End)
		}
		return fmt.Sprintf("%s[%s:%s]", emitExpr(c, e.Collection), start, end)

	case *ast.PerformExpr:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = emitExpr(c, a)
		}
		all := append([]string{strconv.Quote(e.Effect), strconv.Quote(e.Operation)}, args...)
		return fmt.Sprintf("__effect_perform(%s)", strings.Join(all, ", "))

	case *ast.HandleExpr:
		return emitHandle(c, e)
	}
	return "None"
}

func emitFieldMap(c *ctx, fields []ast.RecordField) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s: %s", strconv.Quote(f.Name), emitExpr(c, f.Value))
	}
	return strings.Join(parts, ", ")
}

func emitBinOp(c *ctx, e *ast.BinOp) string {
	left := emitExpr(c, e.Left)
	right := emitExpr(c, e.Right)
	switch e.Op {
	case token.CONCAT:
		return fmt.Sprintf("(%s + %s)", left, right)
	case token.CONS:
		return fmt.Sprintf("([%s] + %s)", left, right)
	case token.AND:
		return fmt.Sprintf("(%s and %s)", left, right)
	case token.OR:
		return fmt.Sprintf("(%s or %s)", left, right)
	}
	return fmt.Sprintf("(%s %s %s)", left, string(e.Op), right)
}

func emitDo(c *ctx, e *ast.DoNotation) string {
	// valueCtx[i] is the substitution context in scope while emitting
	// binding i's Value: outer bindings' shadows apply, binding i's own
	// name does not (it isn't bound yet).
	valueCtx := make([]*ctx, len(e.Bindings))
	cur := c
	for i, b := range e.Bindings {
		valueCtx[i] = cur
		if b.Name != "" {
			cur = cur.without(b.Name)
		}
	}
	result := emitExpr(cur, e.Body)
	for i := len(e.Bindings) - 1; i >= 0; i-- {
		b := e.Bindings[i]
		param := "_"
		if b.Name != "" {
			param = renameIdent(b.Name)
		}
		value := emitExpr(valueCtx[i], b.Value)
		result = fmt.Sprintf("(lambda %s: %s)(%s)", param, result, value)
	}
	return result
}
