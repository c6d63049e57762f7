package parser

import (
	"github.com/funvibe/pfn/internal/ast"
	"github.com/funvibe/pfn/internal/token"
)

// parsePattern parses a full pattern: `::` is right-associative and
// binds loosest (mirrors the CONS expression operator).
func (p *Parser) parsePattern() (ast.Pattern, error) {
	left, err := p.parsePatternAtom()
	if err != nil {
		return nil, err
	}
	if p.check(token.CONS) {
		p.advance()
		right, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		return &ast.ConsPattern{Head: left, Tail: right, Span: left.GetSpan().Merge(right.GetSpan())}, nil
	}
	return left, nil
}

func (p *Parser) parsePatternAtom() (ast.Pattern, error) {
	t := p.cur()
	switch t.Kind {
	case token.INT:
		p.advance()
		return &ast.IntPattern{Value: t.Value.Int, Span: t.Span}, nil
	case token.FLOAT:
		p.advance()
		return &ast.FloatPattern{Value: t.Value.Float, Span: t.Span}, nil
	case token.STRING:
		p.advance()
		return &ast.StringPattern{Value: t.Value.Str, Span: t.Span}, nil
	case token.CHAR:
		p.advance()
		return &ast.CharPattern{Value: t.Value.Char, Span: t.Span}, nil
	case token.MINUS:
		p.advance()
		num := p.cur()
		switch num.Kind {
		case token.INT:
			p.advance()
			return &ast.IntPattern{Value: -num.Value.Int, Span: t.Span.Merge(num.Span)}, nil
		case token.FLOAT:
			p.advance()
			return &ast.FloatPattern{Value: -num.Value.Float, Span: t.Span.Merge(num.Span)}, nil
		}
		return nil, &Error{Message: "expected a number after unary -", Token: p.cur()}
	case token.TRUE:
		p.advance()
		return &ast.BoolPattern{Value: true, Span: t.Span}, nil
	case token.FALSE:
		p.advance()
		return &ast.BoolPattern{Value: false, Span: t.Span}, nil
	case token.UNDERSCORE:
		p.advance()
		return &ast.WildcardPattern{Span: t.Span}, nil
	case token.IDENT:
		p.advance()
		return &ast.VarPattern{Name: t.Text, Span: t.Span}, nil
	case token.CONIDENT:
		p.advance()
		pat := &ast.ConstructorPattern{Name: t.Text, Span: t.Span}
		for p.canStartPatternAtom() {
			arg, err := p.parsePatternAtom()
			if err != nil {
				return nil, err
			}
			pat.Args = append(pat.Args, arg)
			pat.Span = pat.Span.Merge(arg.GetSpan())
		}
		return pat, nil
	case token.LBRACKET:
		p.advance()
		var elements []ast.Pattern
		for !p.check(token.RBRACKET) {
			el, err := p.parsePattern()
			if err != nil {
				return nil, err
			}
			elements = append(elements, el)
			if !p.match(token.COMMA) {
				break
			}
		}
		end, err := p.expect(token.RBRACKET, "to close list pattern")
		if err != nil {
			return nil, err
		}
		return &ast.ListPattern{Elements: elements, Span: t.Span.Merge(end.Span)}, nil
	case token.LBRACE:
		p.advance()
		var fields []ast.RecordPatternField
		for !p.check(token.RBRACE) {
			fname, ok := p.identLike()
			if !ok {
				return nil, &Error{Message: "expected field name", Token: p.cur()}
			}
			var fpat ast.Pattern
			if p.match(token.COLON) {
				fp, err := p.parsePattern()
				if err != nil {
					return nil, err
				}
				fpat = fp
			} else {
				fpat = &ast.VarPattern{Name: fname, Span: p.tokens[p.pos-1].Span}
			}
			fields = append(fields, ast.RecordPatternField{Name: fname, Pattern: fpat})
			if !p.match(token.COMMA) {
				break
			}
		}
		end, err := p.expect(token.RBRACE, "to close record pattern")
		if err != nil {
			return nil, err
		}
		return &ast.RecordPattern{Fields: fields, Span: t.Span.Merge(end.Span)}, nil
	case token.LPAREN:
		p.advance()
		if p.check(token.RPAREN) {
			end := p.advance()
			return &ast.TuplePattern{Elements: nil, Span: t.Span.Merge(end.Span)}, nil
		}
		first, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if p.check(token.COMMA) {
			elements := []ast.Pattern{first}
			for p.match(token.COMMA) {
				el, err := p.parsePattern()
				if err != nil {
					return nil, err
				}
				elements = append(elements, el)
			}
			end, err := p.expect(token.RPAREN, "to close tuple pattern")
			if err != nil {
				return nil, err
			}
			return &ast.TuplePattern{Elements: elements, Span: t.Span.Merge(end.Span)}, nil
		}
		if _, err := p.expect(token.RPAREN, "to close parenthesised pattern"); err != nil {
			return nil, err
		}
		return first, nil
	}
	return nil, &Error{Message: "expected a pattern", Token: t}
}

func (p *Parser) canStartPatternAtom() bool {
	switch p.cur().Kind {
	case token.INT, token.FLOAT, token.STRING, token.CHAR, token.TRUE, token.FALSE,
		token.UNDERSCORE, token.IDENT, token.CONIDENT, token.LBRACKET, token.LBRACE, token.LPAREN:
		return true
	}
	return false
}
