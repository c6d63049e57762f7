package parser

import (
	"github.com/funvibe/pfn/internal/ast"
	"github.com/funvibe/pfn/internal/token"
)

// parseTypeRef parses a full type expression: `->` is right-associative
// and binds loosest (spec.md section 3).
func (p *Parser) parseTypeRef() (ast.TypeRef, error) {
	left, err := p.parseTypeApp()
	if err != nil {
		return nil, err
	}
	if p.check(token.ARROW) {
		p.advance()
		right, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		return &ast.FunTypeRef{Param: left, Result: right, Span: left.GetSpan().Merge(right.GetSpan())}, nil
	}
	return left, nil
}

// parseTypeApp parses a type constructor applied to atomic type
// arguments, e.g. `List Int`, `Map String (List Int)`.
func (p *Parser) parseTypeApp() (ast.TypeRef, error) {
	head, err := p.parseTypeAtom()
	if err != nil {
		return nil, err
	}
	simple, ok := head.(*ast.SimpleTypeRef)
	if !ok {
		return head, nil
	}
	for p.canStartTypeAtom() {
		arg, err := p.parseTypeAtom()
		if err != nil {
			return nil, err
		}
		simple.Args = append(simple.Args, arg)
		simple.Span = simple.Span.Merge(arg.GetSpan())
	}
	return simple, nil
}

func (p *Parser) canStartTypeAtom() bool {
	switch p.cur().Kind {
	case token.CONIDENT, token.IDENT, token.LPAREN, token.LBRACE:
		return true
	}
	return false
}

func (p *Parser) parseTypeAtom() (ast.TypeRef, error) {
	t := p.cur()
	switch t.Kind {
	case token.CONIDENT:
		p.advance()
		return &ast.SimpleTypeRef{Name: t.Text, Span: t.Span}, nil
	case token.IDENT:
		p.advance()
		return &ast.SimpleTypeRef{Name: t.Text, Span: t.Span}, nil
	case token.LBRACE:
		fields, end, err := p.parseRecordFieldList()
		if err != nil {
			return nil, err
		}
		return &ast.RecordTypeRef{Fields: fields, Span: t.Span.Merge(end)}, nil
	case token.LPAREN:
		p.advance()
		if p.check(token.RPAREN) {
			end := p.advance()
			return &ast.SimpleTypeRef{Name: "Unit", Span: t.Span.Merge(end.Span)}, nil
		}
		first, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		if p.check(token.COMMA) {
			elements := []ast.TypeRef{first}
			for p.match(token.COMMA) {
				el, err := p.parseTypeRef()
				if err != nil {
					return nil, err
				}
				elements = append(elements, el)
			}
			end, err := p.expect(token.RPAREN, "to close tuple type")
			if err != nil {
				return nil, err
			}
			return &ast.TupleTypeRef{Elements: elements, Span: t.Span.Merge(end.Span)}, nil
		}
		end, err := p.expect(token.RPAREN, "to close parenthesised type")
		if err != nil {
			return nil, err
		}
		_ = end
		return first, nil
	}
	return nil, &Error{Message: "expected a type", Token: t}
}
