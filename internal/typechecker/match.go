package typechecker

import (
	"github.com/funvibe/pfn/internal/ast"
	"github.com/funvibe/pfn/internal/exhaustiveness"
	"github.com/funvibe/pfn/internal/types"
)

// inferMatch mirrors infer.py's Match rule: each case gets its own
// environment extended by its pattern's bindings, the pattern type
// unifies against the scrutinee, an optional guard must be Bool, and
// every case body must unify to one shared result type. Exhaustiveness
// is checked separately via internal/exhaustiveness so a non-exhaustive
// match is reported even when every case individually type-checks.
func (c *Checker) inferMatch(e *ast.Match, env *types.Env, subst types.Subst) (types.Subst, types.Type, error) {
	s, scrutineeType, err := c.infer(e.Scrutinee, env, subst)
	if err != nil {
		return subst, nil, err
	}

	var resultType types.Type
	patterns := make([]ast.Pattern, 0, len(e.Cases))

	for _, mc := range e.Cases {
		patterns = append(patterns, mc.Pattern)

		var caseEnv *types.Env
		var patType types.Type
		s, caseEnv, patType, err = c.inferPattern(mc.Pattern, env, s)
		if err != nil {
			return subst, nil, err
		}
		s, err = types.Unify(scrutineeType, patType, s)
		if err != nil {
			return subst, nil, &Error{Message: "pattern does not match scrutinee type", Span: mc.Pattern.GetSpan(), Left: scrutineeType, Right: patType}
		}

		if mc.Guard != nil {
			var guardType types.Type
			s, guardType, err = c.infer(mc.Guard, caseEnv, s)
			if err != nil {
				return subst, nil, err
			}
			s, err = types.Unify(guardType, types.Bool, s)
			if err != nil {
				return subst, nil, &Error{Message: "match guard must be Bool", Span: mc.Guard.GetSpan(), Left: guardType}
			}
		}

		var bodyType types.Type
		s, bodyType, err = c.infer(mc.Body, caseEnv, s)
		if err != nil {
			return subst, nil, err
		}

		if resultType == nil {
			resultType = bodyType
		} else {
			s, err = types.Unify(resultType, bodyType, s)
			if err != nil {
				return subst, nil, &Error{Message: "match cases must agree on type", Span: mc.Body.GetSpan(), Left: resultType, Right: bodyType}
			}
			resultType = resultType.Apply(s)
		}
	}

	result := exhaustiveness.CheckMatchExhaustiveness(patterns, scrutineeType.Apply(s))
	if !result.Exhaustive {
		return subst, nil, &Error{Message: "non-exhaustive match, missing: " + exhaustiveness.FormatMissingPatterns(result.MissingPatterns), Span: e.Span}
	}

	return s, resultType.Apply(s), nil
}
