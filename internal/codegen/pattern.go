package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/pfn/internal/ast"
)

// binding is one name a pattern introduces, together with the host
// expression (relative to the scrutinee) that produces its value.
type binding struct {
	Name string
	Path string
}

// compilePattern lowers a pattern against a scrutinee host expression
// into a (check, bindings) pair per spec.md 4.5's pattern compilation
// table: check is a boolean host expression, bindings an ordered list
// of name -> scrutinee-subterm path.
func compilePattern(pat ast.Pattern, scrutinee string) (string, []binding) {
	switch p := pat.(type) {
	case *ast.IntPattern:
		return fmt.Sprintf("%s == %d", scrutinee, p.Value), nil
	case *ast.FloatPattern:
		return fmt.Sprintf("%s == %s", scrutinee, formatFloat(p.Value)), nil
	case *ast.StringPattern:
		return fmt.Sprintf("%s == %s", scrutinee, strconv.Quote(p.Value)), nil
	case *ast.CharPattern:
		return fmt.Sprintf("%s == %s", scrutinee, strconv.Quote(string(p.Value))), nil
	case *ast.BoolPattern:
		if p.Value {
			return fmt.Sprintf("%s == True", scrutinee), nil
		}
		return fmt.Sprintf("%s == False", scrutinee), nil

	case *ast.VarPattern:
		return "True", []binding{{Name: p.Name, Path: scrutinee}}

	case *ast.WildcardPattern:
		return "True", nil

	case *ast.ListPattern:
		if p.Rest == nil {
			if len(p.Elements) == 0 {
				return fmt.Sprintf("%s == []", scrutinee), nil
			}
			check := fmt.Sprintf("isinstance(%s, list) and len(%s) == %d", scrutinee, scrutinee, len(p.Elements))
			var binds []binding
			for i, el := range p.Elements {
				c, b := compilePattern(el, fmt.Sprintf("%s[%d]", scrutinee, i))
				check = andChecks(check, c)
				binds = append(binds, b...)
			}
			return check, binds
		}
		check := fmt.Sprintf("isinstance(%s, list) and len(%s) >= %d", scrutinee, scrutinee, len(p.Elements))
		var binds []binding
		for i, el := range p.Elements {
			c, b := compilePattern(el, fmt.Sprintf("%s[%d]", scrutinee, i))
			check = andChecks(check, c)
			binds = append(binds, b...)
		}
		binds = append(binds, binding{Name: p.Rest.Name, Path: fmt.Sprintf("%s[%d:]", scrutinee, len(p.Elements))})
		return check, binds

	case *ast.ConsPattern:
		check := fmt.Sprintf("isinstance(%s, list) and len(%s) > 0", scrutinee, scrutinee)
		headCheck, headBinds := compilePattern(p.Head, fmt.Sprintf("%s[0]", scrutinee))
		tailCheck, tailBinds := compilePattern(p.Tail, fmt.Sprintf("%s[1:]", scrutinee))
		check = andChecks(check, headCheck)
		check = andChecks(check, tailCheck)
		return check, append(headBinds, tailBinds...)

	case *ast.TuplePattern:
		check := fmt.Sprintf("isinstance(%s, tuple) and len(%s) == %d", scrutinee, scrutinee, len(p.Elements))
		var binds []binding
		for i, el := range p.Elements {
			c, b := compilePattern(el, fmt.Sprintf("%s[%d]", scrutinee, i))
			check = andChecks(check, c)
			binds = append(binds, b...)
		}
		return check, binds

	case *ast.RecordPattern:
		check := "True"
		var binds []binding
		for _, f := range p.Fields {
			c, b := compilePattern(f.Pattern, fmt.Sprintf("%s.%s", scrutinee, f.Name))
			check = andChecks(check, c)
			binds = append(binds, b...)
		}
		return check, binds

	case *ast.ConstructorPattern:
		name := renameIdent(p.Name)
		if len(p.Args) == 0 {
			return fmt.Sprintf("%s is %s", scrutinee, name), nil
		}
		check := fmt.Sprintf("isinstance(%s, %s)", scrutinee, name)
		var binds []binding
		for i, arg := range p.Args {
			c, b := compilePattern(arg, fmt.Sprintf("%s._field%d", scrutinee, i))
			check = andChecks(check, c)
			binds = append(binds, b...)
		}
		return check, binds
	}
	return "True", nil
}

func andChecks(a, b string) string {
	if a == "True" {
		return b
	}
	if b == "True" {
		return a
	}
	return a + " and " + b
}

func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// applyBindings wraps body in a chain of immediately invoked lambdas,
// one per binding, beta-substituting each pattern-bound name for its
// scrutinee-subterm path (spec.md 4.5's capture-avoidance rule).
func applyBindings(binds []binding, body string) string {
	for i := len(binds) - 1; i >= 0; i-- {
		b := binds[i]
		body = fmt.Sprintf("(lambda %s: %s)(%s)", renameIdent(b.Name), body, b.Path)
	}
	return body
}
