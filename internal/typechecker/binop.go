package typechecker

import (
	"github.com/funvibe/pfn/internal/ast"
	"github.com/funvibe/pfn/internal/token"
	"github.com/funvibe/pfn/internal/types"
)

// inferBinOp mirrors infer.py's per-operator BinOp rules: arithmetic and
// comparison accept Int or Float and unify both sides to whichever
// matched first, equality unifies both sides to a shared type,
// boolean operators demand Bool, ++ demands two lists of the same
// element type, and :: conses an element onto a list.
func (c *Checker) inferBinOp(e *ast.BinOp, env *types.Env, subst types.Subst) (types.Subst, types.Type, error) {
	s, leftType, err := c.infer(e.Left, env, subst)
	if err != nil {
		return subst, nil, err
	}
	s, rightType, err := c.infer(e.Right, env, s)
	if err != nil {
		return subst, nil, err
	}

	switch e.Op {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT:
		s2, numType, err := unifyNumeric(leftType, s)
		if err != nil {
			return subst, nil, &Error{Message: "expected Int or Float for operator " + string(e.Op), Span: e.Span, Left: leftType}
		}
		s2, err = types.Unify(rightType, numType, s2)
		if err != nil {
			return subst, nil, &Error{Message: "type mismatch in " + string(e.Op), Span: e.Span, Left: numType, Right: rightType}
		}
		return s2, numType.Apply(s2), nil

	case token.LT, token.LTE, token.GT, token.GTE:
		s2, numType, err := unifyNumeric(leftType, s)
		if err != nil {
			return subst, nil, &Error{Message: "expected Int or Float for operator " + string(e.Op), Span: e.Span, Left: leftType}
		}
		s2, err = types.Unify(rightType, numType, s2)
		if err != nil {
			return subst, nil, &Error{Message: "type mismatch in " + string(e.Op), Span: e.Span, Left: numType, Right: rightType}
		}
		return s2, types.Bool, nil

	case token.EQ, token.NOTEQ:
		s2, err := types.Unify(leftType, rightType, s)
		if err != nil {
			return subst, nil, &Error{Message: "type mismatch in " + string(e.Op), Span: e.Span, Left: leftType, Right: rightType}
		}
		return s2, types.Bool, nil

	case token.AND, token.OR:
		s2, err := types.Unify(leftType, types.Bool, s)
		if err != nil {
			return subst, nil, &Error{Message: "expected Bool for operator " + string(e.Op), Span: e.Span, Left: leftType}
		}
		s2, err = types.Unify(rightType, types.Bool, s2)
		if err != nil {
			return subst, nil, &Error{Message: "expected Bool for operator " + string(e.Op), Span: e.Span, Left: rightType}
		}
		return s2, types.Bool, nil

	case token.CONCAT:
		elem := c.fresh.Next()
		s2, err := types.Unify(leftType, &types.List{Elem: elem}, s)
		if err != nil {
			return subst, nil, &Error{Message: "expected List for operator ++", Span: e.Span, Left: leftType}
		}
		s2, err = types.Unify(rightType, &types.List{Elem: elem.Apply(s2)}, s2)
		if err != nil {
			return subst, nil, &Error{Message: "type mismatch in ++", Span: e.Span, Left: leftType, Right: rightType}
		}
		return s2, &types.List{Elem: elem.Apply(s2)}, nil

	case token.CONS:
		s2, err := types.Unify(rightType, &types.List{Elem: leftType}, s)
		if err != nil {
			return subst, nil, &Error{Message: "expected List for operator ::", Span: e.Span, Left: rightType}
		}
		return s2, &types.List{Elem: leftType.Apply(s2)}, nil
	}

	return subst, nil, &Error{Message: "unknown operator " + string(e.Op), Span: e.Span}
}

func (c *Checker) inferUnaryOp(e *ast.UnaryOp, env *types.Env, subst types.Subst) (types.Subst, types.Type, error) {
	s, operandType, err := c.infer(e.Operand, env, subst)
	if err != nil {
		return subst, nil, err
	}
	switch e.Op {
	case token.MINUS:
		s2, numType, err := unifyNumeric(operandType, s)
		if err != nil {
			return subst, nil, &Error{Message: "expected Int or Float for unary -", Span: e.Span, Left: operandType}
		}
		return s2, numType.Apply(s2), nil
	case token.BANG:
		s2, err := types.Unify(operandType, types.Bool, s)
		if err != nil {
			return subst, nil, &Error{Message: "expected Bool for unary !", Span: e.Span, Left: operandType}
		}
		return s2, types.Bool, nil
	}
	return subst, nil, &Error{Message: "unknown unary operator " + string(e.Op), Span: e.Span}
}

// unifyNumeric tries Int first, then Float, returning whichever unifies
// (spec.md 4.4 treats arithmetic as overloaded over these two primitives
// pending full numeric type-class dispatch).
func unifyNumeric(t types.Type, subst types.Subst) (types.Subst, types.Type, error) {
	if s, err := types.Unify(t, types.Int, subst); err == nil {
		return s, types.Int, nil
	}
	if s, err := types.Unify(t, types.Float, subst); err == nil {
		return s, types.Float, nil
	}
	return subst, nil, &Error{Message: "not numeric", Left: t}
}
