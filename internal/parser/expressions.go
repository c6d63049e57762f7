package parser

import (
	"github.com/funvibe/pfn/internal/ast"
	"github.com/funvibe/pfn/internal/token"
)

// parseExpr dispatches the keyword-led forms (let/if/match/do/handle)
// and otherwise falls through to the binary-operator precedence chain
// (spec.md section 4.2's ladder, loosest to tightest):
//
//	let/if/match/do/handle -> || -> && -> ==,!=,<,<=,>,>= ->
//	:: (right-assoc) -> ++ -> +,- -> *,/,% -> unary -,! ->
//	application (curried juxtaposition) -> .field / [index] -> atoms
func (p *Parser) parseExpr() (ast.Expression, error) {
	switch p.cur().Kind {
	case token.LET:
		return p.parseLet()
	case token.IF:
		return p.parseIf()
	case token.MATCH:
		return p.parseMatch()
	case token.DO:
		return p.parseDo()
	case token.HANDLE:
		return p.parseHandleExpr()
	}
	return p.parseOr()
}

func (p *Parser) parseLet() (ast.Expression, error) {
	start := p.cur().Span
	p.advance() // let

	if p.check(token.IDENT) {
		mark := p.save()
		nameTok := p.advance()

		if p.check(token.ASSIGN) {
			p.advance()
			value, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.IN, "after let binding"); err != nil {
				return nil, err
			}
			body, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			return &ast.Let{Name: nameTok.Text, Value: value, Body: body, Span: start.Merge(body.GetSpan())}, nil
		}

		var params []string
		for p.check(token.IDENT) || p.check(token.UNDERSCORE) {
			params = append(params, p.advance().Text)
		}
		if len(params) > 0 && p.check(token.ASSIGN) {
			p.advance()
			value, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.IN, "after let binding"); err != nil {
				return nil, err
			}
			body, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			return &ast.LetFunc{Name: nameTok.Text, Params: params, Value: value, Body: body, Span: start.Merge(body.GetSpan())}, nil
		}

		p.restore(mark)
	}

	pat, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN, "after let pattern"); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.IN, "after let binding"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.LetPattern{Pattern: pat, Value: value, Body: body, Span: start.Merge(body.GetSpan())}, nil
}

func (p *Parser) parseIf() (ast.Expression, error) {
	start := p.cur().Span
	p.advance() // if
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.THEN, "in if expression"); err != nil {
		return nil, err
	}
	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ELSE, "in if expression"); err != nil {
		return nil, err
	}
	els, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.If{Cond: cond, Then: then, Else: els, Span: start.Merge(els.GetSpan())}, nil
}

func (p *Parser) parseMatch() (ast.Expression, error) {
	start := p.cur().Span
	p.advance() // match
	scrutinee, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.WITH, "in match expression"); err != nil {
		return nil, err
	}
	p.match(token.PIPE) // optional leading |

	var cases []ast.MatchCase
	for {
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		var guard ast.Expression
		if p.check(token.IF) {
			p.advance()
			g, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			guard = g
		}
		if _, err := p.expect(token.FATARROW, "in match case"); err != nil {
			return nil, err
		}
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		cases = append(cases, ast.MatchCase{Pattern: pat, Guard: guard, Body: body})
		if !p.match(token.PIPE) {
			break
		}
	}
	end := cases[len(cases)-1].Body.GetSpan()
	return &ast.Match{Scrutinee: scrutinee, Cases: cases, Span: start.Merge(end)}, nil
}

// parseDo parses `do { [name <-] expr (',' [name <-] expr)* }`, where
// the final statement (one with no following statement) becomes Body.
func (p *Parser) parseDo() (ast.Expression, error) {
	start := p.cur().Span
	p.advance() // do
	if _, err := p.expect(token.LBRACE, "in do expression"); err != nil {
		return nil, err
	}

	var bindings []ast.DoBinding
	for {
		name := ""
		if p.check(token.IDENT) {
			mark := p.save()
			ident := p.advance().Text
			if p.check(token.LARROW) {
				p.advance()
				name = ident
			} else {
				p.restore(mark)
			}
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		p.match(token.COMMA)
		if p.check(token.RBRACE) {
			end := p.advance()
			if name != "" {
				bindings = append(bindings, ast.DoBinding{Name: name, Value: expr})
				return &ast.DoNotation{Bindings: bindings, Body: &ast.TupleLit{Span: end.Span}, Span: start.Merge(end.Span)}, nil
			}
			return &ast.DoNotation{Bindings: bindings, Body: expr, Span: start.Merge(end.Span)}, nil
		}
		bindings = append(bindings, ast.DoBinding{Name: name, Value: expr})
	}
}

func (p *Parser) parseHandleExpr() (ast.Expression, error) {
	start := p.cur().Span
	p.advance() // handle
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.WITH, "in handle expression"); err != nil {
		return nil, err
	}
	clauses, end, err := p.parseHandlerClauses()
	if err != nil {
		return nil, err
	}
	return &ast.HandleExpr{Body: body, Handlers: clauses, Span: start.Merge(end)}, nil
}

func (p *Parser) parseOr() (ast.Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.check(token.OR) {
		op := p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Left: left, Op: op.Kind, Right: right, Span: left.GetSpan().Merge(right.GetSpan())}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expression, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.check(token.AND) {
		op := p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Left: left, Op: op.Kind, Right: right, Span: left.GetSpan().Merge(right.GetSpan())}
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Expression, error) {
	left, err := p.parseCons()
	if err != nil {
		return nil, err
	}
	for p.check(token.EQ) || p.check(token.NOTEQ) || p.check(token.LT) ||
		p.check(token.LTE) || p.check(token.GT) || p.check(token.GTE) {
		op := p.advance()
		right, err := p.parseCons()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Left: left, Op: op.Kind, Right: right, Span: left.GetSpan().Merge(right.GetSpan())}
	}
	return left, nil
}

// parseCons is right-associative: `1 :: 2 :: xs` parses as `1 :: (2 :: xs)`.
func (p *Parser) parseCons() (ast.Expression, error) {
	left, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	if p.check(token.CONS) {
		p.advance()
		right, err := p.parseCons()
		if err != nil {
			return nil, err
		}
		return &ast.BinOp{Left: left, Op: token.CONS, Right: right, Span: left.GetSpan().Merge(right.GetSpan())}, nil
	}
	return left, nil
}

func (p *Parser) parseConcat() (ast.Expression, error) {
	left, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	for p.check(token.CONCAT) {
		op := p.advance()
		right, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Left: left, Op: op.Kind, Right: right, Span: left.GetSpan().Merge(right.GetSpan())}
	}
	return left, nil
}

func (p *Parser) parseAdd() (ast.Expression, error) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for p.check(token.PLUS) || p.check(token.MINUS) {
		op := p.advance()
		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Left: left, Op: op.Kind, Right: right, Span: left.GetSpan().Merge(right.GetSpan())}
	}
	return left, nil
}

func (p *Parser) parseMul() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.check(token.STAR) || p.check(token.SLASH) || p.check(token.PERCENT) {
		op := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Left: left, Op: op.Kind, Right: right, Span: left.GetSpan().Merge(right.GetSpan())}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	if p.check(token.MINUS) || p.check(token.BANG) {
		op := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: op.Kind, Operand: operand, Span: op.Span.Merge(operand.GetSpan())}, nil
	}
	return p.parseApp()
}

// parseApp parses curried juxtaposition application, normalising any
// multi-argument chain into left-nested binary Apps (spec.md 4.2 rule 10).
func (p *Parser) parseApp() (ast.Expression, error) {
	fn, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	for p.canStartAtom() {
		arg, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		fn = &ast.App{Func: fn, Arg: arg, Span: fn.GetSpan().Merge(arg.GetSpan())}
	}
	return fn, nil
}

func (p *Parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Kind {
		case token.DOT:
			p.advance()
			field, ok := p.identLike()
			if !ok {
				return nil, &Error{Message: "expected field name after .", Token: p.cur()}
			}
			expr = &ast.FieldAccess{Record: expr, Field: field, Span: expr.GetSpan().Merge(p.tokens[p.pos-1].Span)}
		case token.LBRACKET:
			p.advance()
			var startExpr, endExpr ast.Expression
			if !p.check(token.COLON) {
				se, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				startExpr = se
			}
			if p.check(token.COLON) {
				p.advance()
				if !p.check(token.RBRACKET) {
					ee, err := p.parseExpr()
					if err != nil {
						return nil, err
					}
					endExpr = ee
				}
				end, err := p.expect(token.RBRACKET, "to close slice")
				if err != nil {
					return nil, err
				}
				expr = &ast.Slice{Collection: expr, Start: startExpr, End: endExpr, Span: expr.GetSpan().Merge(end.Span)}
			} else {
				end, err := p.expect(token.RBRACKET, "to close index")
				if err != nil {
					return nil, err
				}
				expr = &ast.IndexAccess{Collection: expr, Index: startExpr, Span: expr.GetSpan().Merge(end.Span)}
			}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) canStartAtom() bool {
	switch p.cur().Kind {
	case token.INT, token.FLOAT, token.STRING, token.CHAR, token.TRUE, token.FALSE,
		token.IDENT, token.CONIDENT, token.LPAREN, token.LBRACKET, token.LBRACE,
		token.FN, token.BACKSLASH, token.PERFORM:
		return true
	}
	return false
}

func (p *Parser) parseAtom() (ast.Expression, error) {
	t := p.cur()
	switch t.Kind {
	case token.INT:
		p.advance()
		return &ast.IntLit{Value: t.Value.Int, Span: t.Span}, nil
	case token.FLOAT:
		p.advance()
		return &ast.FloatLit{Value: t.Value.Float, Span: t.Span}, nil
	case token.STRING:
		p.advance()
		return &ast.StringLit{Value: t.Value.Str, Span: t.Span}, nil
	case token.CHAR:
		p.advance()
		return &ast.CharLit{Value: t.Value.Char, Span: t.Span}, nil
	case token.TRUE:
		p.advance()
		return &ast.BoolLit{Value: true, Span: t.Span}, nil
	case token.FALSE:
		p.advance()
		return &ast.BoolLit{Value: false, Span: t.Span}, nil
	case token.IDENT, token.CONIDENT:
		p.advance()
		return &ast.Var{Name: t.Text, Span: t.Span}, nil
	case token.FN:
		p.advance()
		var params []string
		for p.check(token.IDENT) || p.check(token.UNDERSCORE) {
			params = append(params, p.advance().Text)
		}
		if _, err := p.expect(token.FATARROW, "in lambda"); err != nil {
			return nil, err
		}
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.Lambda{Params: params, Body: body, Span: t.Span.Merge(body.GetSpan())}, nil
	case token.BACKSLASH:
		p.advance()
		var params []string
		for p.check(token.IDENT) || p.check(token.UNDERSCORE) {
			params = append(params, p.advance().Text)
		}
		if _, err := p.expect(token.ARROW, "in lambda"); err != nil {
			return nil, err
		}
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.Lambda{Params: params, Body: body, Span: t.Span.Merge(body.GetSpan())}, nil
	case token.PERFORM:
		p.advance()
		effectName, ok := p.identLike()
		if !ok {
			return nil, &Error{Message: "expected effect name after perform", Token: p.cur()}
		}
		if _, err := p.expect(token.DOT, "in perform expression"); err != nil {
			return nil, err
		}
		opName, ok := p.identLike()
		if !ok {
			return nil, &Error{Message: "expected operation name", Token: p.cur()}
		}
		var args []ast.Expression
		end := p.tokens[p.pos-1].Span
		if p.check(token.LPAREN) {
			p.advance()
			for !p.check(token.RPAREN) {
				a, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, a)
				if !p.match(token.COMMA) {
					break
				}
			}
			closeTok, err := p.expect(token.RPAREN, "to close perform arguments")
			if err != nil {
				return nil, err
			}
			end = closeTok.Span
		}
		return &ast.PerformExpr{Effect: effectName, Operation: opName, Args: args, Span: t.Span.Merge(end)}, nil
	case token.LBRACKET:
		p.advance()
		var elements []ast.Expression
		for !p.check(token.RBRACKET) {
			el, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			elements = append(elements, el)
			if !p.match(token.COMMA) {
				break
			}
		}
		end, err := p.expect(token.RBRACKET, "to close list literal")
		if err != nil {
			return nil, err
		}
		return &ast.ListLit{Elements: elements, Span: t.Span.Merge(end.Span)}, nil
	case token.LBRACE:
		return p.parseRecordExpr(t.Span)
	case token.LPAREN:
		p.advance()
		if p.check(token.RPAREN) {
			end := p.advance()
			return &ast.TupleLit{Span: t.Span.Merge(end.Span)}, nil
		}
		first, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.check(token.COMMA) {
			elements := []ast.Expression{first}
			for p.match(token.COMMA) {
				el, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				elements = append(elements, el)
			}
			end, err := p.expect(token.RPAREN, "to close tuple")
			if err != nil {
				return nil, err
			}
			return &ast.TupleLit{Elements: elements, Span: t.Span.Merge(end.Span)}, nil
		}
		if _, err := p.expect(token.RPAREN, "to close parenthesised expression"); err != nil {
			return nil, err
		}
		return first, nil
	}
	return nil, &Error{Message: "expected an expression", Token: t}
}

// parseRecordExpr disambiguates a record literal `{ f: v, ... }` from a
// record update `{ expr | f: v, ... }` by speculatively parsing a
// leading expression and checking for `|`.
func (p *Parser) parseRecordExpr(start token.Span) (ast.Expression, error) {
	p.advance() // {
	if p.check(token.RBRACE) {
		end := p.advance()
		return &ast.RecordLit{Span: start.Merge(end.Span)}, nil
	}

	mark := p.save()
	if base, err := p.parseExpr(); err == nil && p.check(token.PIPE) {
		p.advance()
		fields, end, ferr := p.parseExprFieldList(token.RBRACE)
		if ferr != nil {
			return nil, ferr
		}
		return &ast.RecordUpdate{Record: base, Fields: fields, Span: start.Merge(end)}, nil
	}
	p.restore(mark)

	fields, end, err := p.parseExprFieldList(token.RBRACE)
	if err != nil {
		return nil, err
	}
	return &ast.RecordLit{Fields: fields, Span: start.Merge(end)}, nil
}

func (p *Parser) parseExprFieldList(closing token.Kind) ([]ast.RecordField, token.Span, error) {
	var fields []ast.RecordField
	for !p.check(closing) {
		name, ok := p.identLike()
		if !ok {
			return nil, token.Span{}, &Error{Message: "expected field name", Token: p.cur()}
		}
		if _, err := p.expect(token.COLON, "after field name"); err != nil {
			return nil, token.Span{}, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, token.Span{}, err
		}
		fields = append(fields, ast.RecordField{Name: name, Value: value})
		if !p.match(token.COMMA) {
			break
		}
	}
	end, err := p.expect(closing, "to close field list")
	if err != nil {
		return nil, token.Span{}, err
	}
	return fields, end.Span, nil
}
