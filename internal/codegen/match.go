package codegen

import (
	"fmt"

	"github.com/funvibe/pfn/internal/ast"
)

// emitMatch lowers a Match into a chained ternary IIFE over a single
// evaluation of the scrutinee, per spec.md 4.5: each case contributes
// `(body if check else <rest>)`, with pattern bindings substituted into
// both the guard (if any) and the body. When internal/typechecker has
// checked the module first, the match is exhaustive and the final
// fallback is never reached; codegen does not require that check, so a
// value no case matches evaluates to the fallback, None.
func emitMatch(c *ctx, e *ast.Match) string {
	scrutVar := c.freshName("__match_val")

	chain := "None"
	for i := len(e.Cases) - 1; i >= 0; i-- {
		mc := e.Cases[i]
		check, binds := compilePattern(mc.Pattern, scrutVar)

		inner := c
		for _, b := range binds {
			inner = inner.without(b.Name)
		}

		cond := check
		if mc.Guard != nil {
			guard := applyBindings(binds, emitExpr(inner, mc.Guard))
			cond = andChecks(cond, guard)
		}
		body := applyBindings(binds, emitExpr(inner, mc.Body))

		chain = fmt.Sprintf("(%s if %s else %s)", body, cond, chain)
	}

	return fmt.Sprintf("(lambda %s: %s)(%s)", scrutVar, chain, emitExpr(c, e.Scrutinee))
}
