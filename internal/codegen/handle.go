package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/pfn/internal/ast"
)

// emitHandle lowers a handle/perform block to a call against the
// runtime's __with_handler shim: a dict mapping operation name to a
// handler lambda, and a zero-argument thunk for the handled body so
// __with_handler controls exactly when (and whether) it runs. perform
// itself lowers to __effect_perform in emitExpr; __with_handler installs
// the dict that __effect_perform consults for the duration of the thunk.
func emitHandle(c *ctx, e *ast.HandleExpr) string {
	clauses := make([]string, len(e.Handlers))
	for i, h := range e.Handlers {
		inner := c
		params := make([]string, len(h.Params))
		for j, p := range h.Params {
			params[j] = renameIdent(p)
			inner = inner.without(p)
		}
		lam := fmt.Sprintf("lambda %s: %s", strings.Join(params, ", "), emitExpr(inner, h.Body))
		clauses[i] = fmt.Sprintf("%s: %s", strconv.Quote(h.Operation), lam)
	}
	handlers := "{" + strings.Join(clauses, ", ") + "}"
	return fmt.Sprintf("__with_handler(%s, lambda: %s)", handlers, emitExpr(c, e.Body))
}
