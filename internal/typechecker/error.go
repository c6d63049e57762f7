// Package typechecker implements pfn's Hindley-Milner type checker:
// Algorithm W inference with let-generalization (under the value
// restriction), the LetFunc recursive-binding rule, match/pattern
// inference, and a minimal field/index access rule pending full row
// solving (spec.md section 4.4).
//
// Grounded on original_source/src/pfn/typechecker/infer.py's TypeChecker
// (same bottom-up (subst, type) threading, same per-node rules),
// restructured into Go's explicit-error, persistent-env idiom and
// wired onto the already-built internal/types unification engine
// rather than funxy's internal/typesystem (see DESIGN.md).
package typechecker

import (
	"fmt"

	"github.com/funvibe/pfn/internal/token"
	"github.com/funvibe/pfn/internal/types"
)

// Error is a type error: a message, the offending span, and, where
// applicable, the two competing types (spec.md 4.4's failure model).
type Error struct {
	Message string
	Span    token.Span
	Left    types.Type
	Right   types.Type
}

func (e *Error) Error() string {
	if e.Left != nil && e.Right != nil {
		return fmt.Sprintf("%s: type error: %s (%s vs %s)", e.Span, e.Message, e.Left, e.Right)
	}
	return fmt.Sprintf("%s: type error: %s", e.Span, e.Message)
}

func unifyErr(span token.Span, message string, left, right types.Type, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Message: message, Span: span, Left: left, Right: right}
}
