package token

import "fmt"

// Span locates a lexeme or AST node in the original source text.
// Offsets are byte offsets into the source; Line and Column mark the
// start position (1-based line, 1-based column). Spans are never
// mutated after construction.
type Span struct {
	Start  int
	End    int
	Line   int
	Column int
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// Merge returns the smallest span covering both s and other, assuming
// other begins no earlier than s in the source.
func (s Span) Merge(other Span) Span {
	end := s.End
	if other.End > end {
		end = other.End
	}
	return Span{Start: s.Start, End: end, Line: s.Line, Column: s.Column}
}
