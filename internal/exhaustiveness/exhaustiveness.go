// Package exhaustiveness checks match-case pattern lists for missing
// and redundant coverage.
//
// Grounded directly on
// original_source/src/pfn/typechecker/exhaustiveness.py: the Pattern
// variant set, pattern_covers, get_constructors_for_type, and
// check_exhaustiveness are ported with the same algorithm and the
// same built-in constructor names (Option: Some/None, Result:
// Ok/Error, Ordering: LT/EQ/GT).
package exhaustiveness

import (
	"fmt"
	"strings"

	"github.com/funvibe/pfn/internal/ast"
	"github.com/funvibe/pfn/internal/types"
)

// Pattern is the compact pattern form the checker reasons over,
// mirroring exhaustiveness.py's dataclass hierarchy.
type Pattern interface{ isPattern() }

type PWild struct{}
type PVar struct{ Name string }
type PCon struct {
	Name string
	Args []Pattern
}
type PInt struct{ Value int64 }
type PFloat struct{ Value float64 }
type PString struct{ Value string }
type PBool struct{ Value bool }
type PChar struct{ Value rune }
type PList struct{ Elements []Pattern }
type PCons struct {
	Head Pattern
	Tail Pattern
}
type PTuple struct{ Elements []Pattern }

func (PWild) isPattern()   {}
func (PVar) isPattern()    {}
func (PCon) isPattern()    {}
func (PInt) isPattern()    {}
func (PFloat) isPattern()  {}
func (PString) isPattern() {}
func (PBool) isPattern()   {}
func (PChar) isPattern()   {}
func (PList) isPattern()   {}
func (PCons) isPattern()   {}
func (PTuple) isPattern()  {}

// Convert lowers an ast.Pattern into the compact Pattern form,
// mirroring exhaustiveness.py's convert_pattern.
func Convert(p ast.Pattern) Pattern {
	switch pp := p.(type) {
	case *ast.IntPattern:
		return PInt{Value: pp.Value}
	case *ast.FloatPattern:
		return PFloat{Value: pp.Value}
	case *ast.StringPattern:
		return PString{Value: pp.Value}
	case *ast.CharPattern:
		return PChar{Value: pp.Value}
	case *ast.BoolPattern:
		return PBool{Value: pp.Value}
	case *ast.VarPattern:
		return PVar{Name: pp.Name}
	case *ast.WildcardPattern:
		return PWild{}
	case *ast.ListPattern:
		elems := make([]Pattern, len(pp.Elements))
		for i, e := range pp.Elements {
			elems[i] = Convert(e)
		}
		return PList{Elements: elems}
	case *ast.ConsPattern:
		return PCons{Head: Convert(pp.Head), Tail: Convert(pp.Tail)}
	case *ast.TuplePattern:
		elems := make([]Pattern, len(pp.Elements))
		for i, e := range pp.Elements {
			elems[i] = Convert(e)
		}
		return PTuple{Elements: elems}
	case *ast.ConstructorPattern:
		args := make([]Pattern, len(pp.Args))
		for i, a := range pp.Args {
			args[i] = Convert(a)
		}
		return PCon{Name: pp.Name, Args: args}
	}
	return PWild{}
}

// Result mirrors exhaustiveness.py's ExhaustivenessResult.
type Result struct {
	Exhaustive        bool
	MissingPatterns   []Pattern
	RedundantPatterns []int
}

func isWild(p Pattern) bool {
	switch p.(type) {
	case PWild, PVar:
		return true
	}
	return false
}

// PatternsOverlap mirrors exhaustiveness.py's patterns_overlap.
func PatternsOverlap(p1, p2 Pattern) bool {
	if isWild(p1) || isWild(p2) {
		return true
	}
	switch a := p1.(type) {
	case PInt:
		b, ok := p2.(PInt)
		return ok && a.Value == b.Value
	case PFloat:
		b, ok := p2.(PFloat)
		return ok && a.Value == b.Value
	case PString:
		b, ok := p2.(PString)
		return ok && a.Value == b.Value
	case PBool:
		b, ok := p2.(PBool)
		return ok && a.Value == b.Value
	case PChar:
		b, ok := p2.(PChar)
		return ok && a.Value == b.Value
	case PList:
		b, ok := p2.(PList)
		if !ok || len(a.Elements) != len(b.Elements) {
			return false
		}
		for i := range a.Elements {
			if !PatternsOverlap(a.Elements[i], b.Elements[i]) {
				return false
			}
		}
		return true
	case PCons:
		b, ok := p2.(PCons)
		return ok && PatternsOverlap(a.Head, b.Head) && PatternsOverlap(a.Tail, b.Tail)
	case PTuple:
		b, ok := p2.(PTuple)
		if !ok || len(a.Elements) != len(b.Elements) {
			return false
		}
		for i := range a.Elements {
			if !PatternsOverlap(a.Elements[i], b.Elements[i]) {
				return false
			}
		}
		return true
	case PCon:
		b, ok := p2.(PCon)
		if !ok || a.Name != b.Name || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !PatternsOverlap(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// PatternCovers mirrors exhaustiveness.py's pattern_covers.
func PatternCovers(p1, p2 Pattern) bool {
	if isWild(p1) {
		return true
	}
	if isWild(p2) {
		return false
	}
	switch a := p1.(type) {
	case PInt:
		b, ok := p2.(PInt)
		return ok && a.Value == b.Value
	case PFloat:
		b, ok := p2.(PFloat)
		return ok && a.Value == b.Value
	case PString:
		b, ok := p2.(PString)
		return ok && a.Value == b.Value
	case PBool:
		b, ok := p2.(PBool)
		return ok && a.Value == b.Value
	case PChar:
		b, ok := p2.(PChar)
		return ok && a.Value == b.Value
	case PList:
		b, ok := p2.(PList)
		if !ok || len(a.Elements) != len(b.Elements) {
			return false
		}
		for i := range a.Elements {
			if !PatternCovers(a.Elements[i], b.Elements[i]) {
				return false
			}
		}
		return true
	case PCons:
		b, ok := p2.(PCons)
		return ok && PatternCovers(a.Head, b.Head) && PatternCovers(a.Tail, b.Tail)
	case PTuple:
		b, ok := p2.(PTuple)
		if !ok || len(a.Elements) != len(b.Elements) {
			return false
		}
		for i := range a.Elements {
			if !PatternCovers(a.Elements[i], b.Elements[i]) {
				return false
			}
		}
		return true
	case PCon:
		b, ok := p2.(PCon)
		if !ok || a.Name != b.Name || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !PatternCovers(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// GetConstructorsForType mirrors exhaustiveness.py's
// get_constructors_for_type, preserving the original's exact naming:
// Result's constructors are Ok/Error, not Ok/Err.
func GetConstructorsForType(t types.Type) []string {
	if t == types.Bool {
		return []string{"True", "False"}
	}
	if con, ok := t.(*types.Con); ok {
		switch con.Name {
		case "Option":
			return []string{"Some", "None"}
		case "Result":
			return []string{"Ok", "Error"}
		case "Ordering":
			return []string{"LT", "EQ", "GT"}
		}
	}
	return nil
}

// GenerateMissingPatterns mirrors exhaustiveness.py's
// generate_missing_patterns.
func GenerateMissingPatterns(t types.Type, covered []Pattern) []Pattern {
	constructors := GetConstructorsForType(t)
	if len(constructors) == 0 {
		for _, p := range covered {
			if isWild(p) {
				return nil
			}
		}
		return []Pattern{PWild{}}
	}
	var missing []Pattern
	for _, con := range constructors {
		conPattern := PCon{Name: con}
		isCovered := false
		for _, p := range covered {
			if PatternCovers(p, conPattern) {
				isCovered = true
				break
			}
		}
		if !isCovered {
			missing = append(missing, conPattern)
		}
	}
	return missing
}

// CheckExhaustiveness mirrors exhaustiveness.py's check_exhaustiveness.
func CheckExhaustiveness(patterns []Pattern, scrutineeType types.Type) Result {
	if len(patterns) == 0 {
		return Result{Exhaustive: false, MissingPatterns: []Pattern{PWild{}}}
	}

	var covered []Pattern
	var redundant []int
	for i, p := range patterns {
		isRedundant := false
		for _, prev := range covered {
			if PatternCovers(prev, p) {
				isRedundant = true
				break
			}
		}
		if isRedundant {
			redundant = append(redundant, i)
		} else {
			covered = append(covered, p)
		}
	}

	hasNil, hasCons := false, false
	for _, p := range covered {
		switch pp := p.(type) {
		case PList:
			hasNil = hasNil || len(pp.Elements) == 0
		case PCons:
			hasCons = hasCons || (isWild(pp.Head) && isWild(pp.Tail))
		}
	}

	var missing []Pattern
	if hasNil && hasCons {
		// [] together with a catch-all `x :: xs` covers every list.
	} else if scrutineeType != nil {
		missing = GenerateMissingPatterns(scrutineeType, covered)
	} else {
		allWild := false
		for _, p := range covered {
			if isWild(p) {
				allWild = true
				break
			}
		}
		if !allWild {
			missing = []Pattern{PWild{}}
		}
	}

	return Result{
		Exhaustive:        len(missing) == 0,
		MissingPatterns:   missing,
		RedundantPatterns: redundant,
	}
}

// CheckMatchExhaustiveness converts cases then checks exhaustiveness,
// mirroring exhaustiveness.py's check_match_exhaustiveness.
func CheckMatchExhaustiveness(cases []ast.Pattern, scrutineeType types.Type) Result {
	patterns := make([]Pattern, len(cases))
	for i, c := range cases {
		patterns[i] = Convert(c)
	}
	return CheckExhaustiveness(patterns, scrutineeType)
}

// PatternToString mirrors exhaustiveness.py's pattern_to_string.
func PatternToString(p Pattern) string {
	switch pp := p.(type) {
	case PWild:
		return "_"
	case PVar:
		return pp.Name
	case PInt:
		return fmt.Sprintf("%d", pp.Value)
	case PFloat:
		return fmt.Sprintf("%g", pp.Value)
	case PString:
		return fmt.Sprintf("%q", pp.Value)
	case PBool:
		if pp.Value {
			return "True"
		}
		return "False"
	case PChar:
		return fmt.Sprintf("'%c'", pp.Value)
	case PList:
		parts := make([]string, len(pp.Elements))
		for i, e := range pp.Elements {
			parts[i] = PatternToString(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case PCons:
		return PatternToString(pp.Head) + " :: " + PatternToString(pp.Tail)
	case PTuple:
		parts := make([]string, len(pp.Elements))
		for i, e := range pp.Elements {
			parts[i] = PatternToString(e)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case PCon:
		if len(pp.Args) > 0 {
			parts := make([]string, len(pp.Args))
			for i, a := range pp.Args {
				parts[i] = PatternToString(a)
			}
			return pp.Name + " " + strings.Join(parts, " ")
		}
		return pp.Name
	}
	return "_"
}

// FormatMissingPatterns mirrors exhaustiveness.py's format_missing_patterns.
func FormatMissingPatterns(patterns []Pattern) string {
	if len(patterns) == 0 {
		return ""
	}
	if len(patterns) == 1 {
		return PatternToString(patterns[0])
	}
	parts := make([]string, len(patterns))
	for i, p := range patterns {
		parts[i] = PatternToString(p)
	}
	return strings.Join(parts, " | ")
}
