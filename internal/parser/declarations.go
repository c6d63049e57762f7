package parser

import (
	"strings"

	"github.com/funvibe/pfn/internal/ast"
	"github.com/funvibe/pfn/internal/token"
)

// parseDef parses `name (param (':' type)?)* (':' type)? '=' expr`,
// assuming the leading `def` keyword has already been consumed.
func (p *Parser) parseDef(exportName string, isExported bool) (*ast.DefDecl, error) {
	start := p.cur().Span
	name, ok := p.identLike()
	if !ok {
		return nil, &Error{Message: "expected function name", Token: p.cur()}
	}

	var params []ast.Param
	for !p.check(token.ASSIGN) && !p.check(token.COLON) && !p.atEnd() {
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
	}

	var returnType ast.TypeRef
	if p.check(token.COLON) {
		p.advance()
		rt, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		returnType = rt
	}

	if _, err := p.expect(token.ASSIGN, "in function definition"); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &ast.DefDecl{
		Name: name, Params: params, ReturnType: returnType, Value: value,
		IsExported: isExported, ExportName: exportName,
		Span: start.Merge(value.GetSpan()),
	}, nil
}

func (p *Parser) parseParam() (ast.Param, error) {
	if p.check(token.LPAREN) {
		p.advance()
		name, ok := p.identLike()
		if !ok {
			return ast.Param{}, &Error{Message: "expected parameter name", Token: p.cur()}
		}
		var typ ast.TypeRef
		if p.check(token.COLON) {
			p.advance()
			t, err := p.parseTypeRef()
			if err != nil {
				return ast.Param{}, err
			}
			typ = t
		}
		if _, err := p.expect(token.RPAREN, "after parameter"); err != nil {
			return ast.Param{}, err
		}
		return ast.Param{Name: name, Type: typ}, nil
	}
	name, ok := p.identLike()
	if !ok {
		return ast.Param{}, &Error{Message: "expected parameter name", Token: p.cur()}
	}
	return ast.Param{Name: name}, nil
}

// parseTypeDecl parses `type Name params... = <record|sum|alias>`.
func (p *Parser) parseTypeDecl() (ast.Statement, error) {
	start := p.cur().Span
	p.advance() // type
	name, ok := p.identLike()
	if !ok {
		return nil, &Error{Message: "expected type name", Token: p.cur()}
	}
	var params []string
	for p.check(token.IDENT) {
		param, _ := p.identLike()
		params = append(params, param)
	}
	if _, err := p.expect(token.ASSIGN, "in type declaration"); err != nil {
		return nil, err
	}

	if p.check(token.LBRACE) {
		fields, end, err := p.parseRecordFieldList()
		if err != nil {
			return nil, err
		}
		return &ast.TypeDecl{
			Name: name, Params: params, IsRecord: true, RecordFields: fields,
			Span: start.Merge(end),
		}, nil
	}

	if p.check(token.PIPE) || p.check(token.CONIDENT) {
		var ctors []ast.ConstructorDef
		p.match(token.PIPE) // optional leading |
		for {
			ctorName, err := p.expect(token.CONIDENT, "constructor name")
			if err != nil {
				return nil, err
			}
			var fields []ast.TypeRef
			for p.canStartTypeAtom() {
				f, err := p.parseTypeAtom()
				if err != nil {
					return nil, err
				}
				fields = append(fields, f)
			}
			ctors = append(ctors, ast.ConstructorDef{Name: ctorName.Text, Fields: fields})
			if !p.match(token.PIPE) {
				break
			}
		}
		end := p.tokens[p.pos-1].Span
		return &ast.TypeDecl{Name: name, Params: params, Constructors: ctors, Span: start.Merge(end)}, nil
	}

	target, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}
	return &ast.TypeAliasDecl{Name: name, Params: params, Target: target, Span: start.Merge(target.GetSpan())}, nil
}

func (p *Parser) parseRecordFieldList() ([]ast.TypeRecordField, token.Span, error) {
	if _, err := p.expect(token.LBRACE, "to start record fields"); err != nil {
		return nil, token.Span{}, err
	}
	var fields []ast.TypeRecordField
	for !p.check(token.RBRACE) {
		fname, ok := p.identLike()
		if !ok {
			return nil, token.Span{}, &Error{Message: "expected field name", Token: p.cur()}
		}
		if _, err := p.expect(token.COLON, "after field name"); err != nil {
			return nil, token.Span{}, err
		}
		ftype, err := p.parseTypeRef()
		if err != nil {
			return nil, token.Span{}, err
		}
		fields = append(fields, ast.TypeRecordField{Name: fname, Type: ftype})
		if !p.match(token.COMMA) {
			break
		}
	}
	end, err := p.expect(token.RBRACE, "to close record fields")
	if err != nil {
		return nil, token.Span{}, err
	}
	return fields, end.Span, nil
}

// parseGADTDecl parses `gadt Name params where (Ctor ':' type)*`.
func (p *Parser) parseGADTDecl() (ast.Statement, error) {
	start := p.cur().Span
	p.advance() // gadt
	name, ok := p.identLike()
	if !ok {
		return nil, &Error{Message: "expected GADT name", Token: p.cur()}
	}
	var params []string
	for p.check(token.IDENT) {
		param, _ := p.identLike()
		params = append(params, param)
	}
	if _, err := p.expect(token.WHERE, "in GADT declaration"); err != nil {
		return nil, err
	}
	var sigs []ast.GADTConstructorSig
	for p.check(token.CONIDENT) {
		ctorTok := p.advance()
		if _, err := p.expect(token.COLON, "after GADT constructor name"); err != nil {
			return nil, err
		}
		typ, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		sigs = append(sigs, ast.GADTConstructorSig{Name: ctorTok.Text, Type: typ})
	}
	end := p.tokens[p.pos-1].Span
	return &ast.TypeDecl{Name: name, Params: params, IsGADT: true, GADTSigs: sigs, Span: start.Merge(end)}, nil
}

// parseImportDecl parses `import path(.part)* (as alias)?`. A module
// path with a leading `py.` segment is treated as Python-interop
// passthrough (SPEC_FULL section 4); this prefix convention is this
// implementation's own resolution of an otherwise-unspecified surface
// form, recorded in DESIGN.md.
func (p *Parser) parseImportDecl() (*ast.ImportDecl, error) {
	start := p.cur().Span
	p.advance() // import
	first, ok := p.identLike()
	if !ok {
		return nil, &Error{Message: "expected module path", Token: p.cur()}
	}
	parts := []string{first}
	for p.check(token.DOT) {
		p.advance()
		part, ok := p.identLike()
		if !ok {
			return nil, &Error{Message: "expected module path segment", Token: p.cur()}
		}
		parts = append(parts, part)
	}
	isPython := parts[0] == "py"
	modPath := strings.Join(parts, ".")

	alias := ""
	if p.check(token.AS) {
		p.advance()
		a, ok := p.identLike()
		if !ok {
			return nil, &Error{Message: "expected alias after as", Token: p.cur()}
		}
		alias = a
	}

	var exposing []string
	if p.check(token.LPAREN) {
		p.advance()
		for !p.check(token.RPAREN) {
			name, ok := p.identLike()
			if !ok {
				return nil, &Error{Message: "expected exposed name", Token: p.cur()}
			}
			exposing = append(exposing, name)
			if !p.match(token.COMMA) {
				break
			}
		}
		if _, err := p.expect(token.RPAREN, "to close exposing list"); err != nil {
			return nil, err
		}
	}

	end := p.tokens[p.pos-1].Span
	return &ast.ImportDecl{Module: modPath, Alias: alias, Exposing: exposing, IsPython: isPython, Span: start.Merge(end)}, nil
}

func (p *Parser) parseExportDecl() (*ast.ExportDecl, error) {
	start := p.cur().Span
	p.advance() // export
	var names []string
	for {
		name, ok := p.identLike()
		if !ok {
			return nil, &Error{Message: "expected exported name", Token: p.cur()}
		}
		names = append(names, name)
		if !p.match(token.COMMA) {
			break
		}
	}
	end := p.tokens[p.pos-1].Span
	return &ast.ExportDecl{Names: names, Span: start.Merge(end)}, nil
}

// parseInterfaceDecl parses `interface ['(' Super (',' Super)* ')' '=>'] Name params where { name ':' type }*`.
func (p *Parser) parseInterfaceDecl() (*ast.InterfaceDecl, error) {
	start := p.cur().Span
	p.advance() // interface

	var superclasses []string
	mark := p.save()
	if p.check(token.LPAREN) {
		p.advance()
		var supers []string
		ok := true
		for {
			s, isId := p.identLike()
			if !isId {
				ok = false
				break
			}
			supers = append(supers, s)
			if !p.match(token.COMMA) {
				break
			}
		}
		if ok && p.check(token.RPAREN) {
			p.advance()
			if p.check(token.FATARROW) {
				p.advance()
				superclasses = supers
			} else {
				p.restore(mark)
			}
		} else {
			p.restore(mark)
		}
	}

	name, ok := p.identLike()
	if !ok {
		return nil, &Error{Message: "expected interface name", Token: p.cur()}
	}
	var params []string
	for p.check(token.IDENT) {
		param, _ := p.identLike()
		params = append(params, param)
	}
	if _, err := p.expect(token.WHERE, "in interface declaration"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE, "to start interface body"); err != nil {
		return nil, err
	}
	var methods []ast.InterfaceMethod
	for !p.check(token.RBRACE) {
		mname, ok := p.identLike()
		if !ok {
			return nil, &Error{Message: "expected method name", Token: p.cur()}
		}
		if _, err := p.expect(token.COLON, "after method name"); err != nil {
			return nil, err
		}
		mtype, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		methods = append(methods, ast.InterfaceMethod{Name: mname, Type: mtype})
		p.match(token.COMMA)
	}
	end, err := p.expect(token.RBRACE, "to close interface body")
	if err != nil {
		return nil, err
	}
	return &ast.InterfaceDecl{Name: name, Params: params, Methods: methods, Superclasses: superclasses, Span: start.Merge(end.Span)}, nil
}

// parseImplDecl parses `impl ClassName TypeRef where { def name ... = expr ... }`.
func (p *Parser) parseImplDecl() (*ast.ImplDecl, error) {
	start := p.cur().Span
	p.advance() // impl
	className, ok := p.identLike()
	if !ok {
		return nil, &Error{Message: "expected class name", Token: p.cur()}
	}
	typeRef, err := p.parseTypeAtom()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.WHERE, "in impl declaration"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE, "to start impl body"); err != nil {
		return nil, err
	}
	var methods []ast.ImplMethod
	for !p.check(token.RBRACE) {
		if _, err := p.expect(token.DEF, "method definition"); err != nil {
			return nil, err
		}
		def, err := p.parseDef("", false)
		if err != nil {
			return nil, err
		}
		methods = append(methods, ast.ImplMethod{Name: def.Name, Params: paramNames(def.Params), Value: def.Value})
	}
	end, err := p.expect(token.RBRACE, "to close impl body")
	if err != nil {
		return nil, err
	}
	return &ast.ImplDecl{ClassName: className, Type: typeRef, Methods: methods, Span: start.Merge(end.Span)}, nil
}

func paramNames(params []ast.Param) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}

// parseEffectDecl parses `effect Name where { opName ':' type }*`.
func (p *Parser) parseEffectDecl() (*ast.EffectDecl, error) {
	start := p.cur().Span
	p.advance() // effect
	name, ok := p.identLike()
	if !ok {
		return nil, &Error{Message: "expected effect name", Token: p.cur()}
	}
	if _, err := p.expect(token.WHERE, "in effect declaration"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE, "to start effect body"); err != nil {
		return nil, err
	}
	var ops []ast.EffectOperation
	for !p.check(token.RBRACE) {
		opName, ok := p.identLike()
		if !ok {
			return nil, &Error{Message: "expected operation name", Token: p.cur()}
		}
		if _, err := p.expect(token.COLON, "after operation name"); err != nil {
			return nil, err
		}
		opType, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		ops = append(ops, ast.EffectOperation{Name: opName, Type: opType})
		p.match(token.COMMA)
	}
	end, err := p.expect(token.RBRACE, "to close effect body")
	if err != nil {
		return nil, err
	}
	return &ast.EffectDecl{Name: name, Operations: ops, Span: start.Merge(end.Span)}, nil
}

// parseHandlerDecl parses `handler Name as Effect where { opName params => body }*`.
func (p *Parser) parseHandlerDecl() (*ast.HandlerDecl, error) {
	start := p.cur().Span
	p.advance() // handler
	name, ok := p.identLike()
	if !ok {
		return nil, &Error{Message: "expected handler name", Token: p.cur()}
	}
	if _, err := p.expect(token.AS, "(reusing 'as' for 'for' in handler declarations)"); err != nil {
		return nil, err
	}
	effect, ok := p.identLike()
	if !ok {
		return nil, &Error{Message: "expected effect name", Token: p.cur()}
	}
	if _, err := p.expect(token.WHERE, "in handler declaration"); err != nil {
		return nil, err
	}
	clauses, end, err := p.parseHandlerClauses()
	if err != nil {
		return nil, err
	}
	return &ast.HandlerDecl{Name: name, Effect: effect, Clauses: clauses, Span: start.Merge(end)}, nil
}

func (p *Parser) parseHandlerClauses() ([]ast.HandlerClause, token.Span, error) {
	if _, err := p.expect(token.LBRACE, "to start handler body"); err != nil {
		return nil, token.Span{}, err
	}
	var clauses []ast.HandlerClause
	for !p.check(token.RBRACE) {
		opName, ok := p.identLike()
		if !ok {
			return nil, token.Span{}, &Error{Message: "expected operation name", Token: p.cur()}
		}
		var params []string
		for p.check(token.IDENT) {
			param, _ := p.identLike()
			params = append(params, param)
		}
		if _, err := p.expect(token.FATARROW, "after handler clause parameters"); err != nil {
			return nil, token.Span{}, err
		}
		body, err := p.parseExpr()
		if err != nil {
			return nil, token.Span{}, err
		}
		clauses = append(clauses, ast.HandlerClause{Operation: opName, Params: params, Body: body})
		p.match(token.COMMA)
	}
	end, err := p.expect(token.RBRACE, "to close handler body")
	if err != nil {
		return nil, token.Span{}, err
	}
	return clauses, end.Span, nil
}
