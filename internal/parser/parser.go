// Package parser implements pfn's recursive-descent, Pratt-style
// precedence-climbing parser: token stream to Module AST.
//
// Grounded on the teacher's internal/parser package shape (one parser
// struct threading a token slice and position, statements/expressions
// split across files by concern) and its processor.go top-level
// dispatch loop, adapted to pfn's grammar in spec.md section 4.2.
package parser

import (
	"fmt"

	"github.com/funvibe/pfn/internal/ast"
	"github.com/funvibe/pfn/internal/config"
	"github.com/funvibe/pfn/internal/token"
)

// Error is a syntax error: the offending token and a message, with no
// recovery (spec.md section 4.2's failure semantics).
type Error struct {
	Message string
	Token   token.Token
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: parse error: unexpected %s %q: %s", e.Token.Span, e.Token.Kind, e.Token.Text, e.Message)
}

type Parser struct {
	tokens []token.Token
	pos    int
}

func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses a full Module from tokens produced by the lexer.
func Parse(tokens []token.Token) (*ast.Module, error) {
	return New(tokens).ParseModule()
}

func (p *Parser) cur() token.Token  { return p.tokens[p.pos] }
func (p *Parser) atEnd() bool       { return p.cur().Kind == token.EOF }
func (p *Parser) advance() token.Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) check(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) expect(k token.Kind, context string) (token.Token, error) {
	if p.check(k) {
		return p.advance(), nil
	}
	return token.Token{}, &Error{Message: fmt.Sprintf("expected %s %s", k, context), Token: p.cur()}
}

// identLike accepts a plain or capitalised identifier, or one of the
// keywords the grammar permits back into identifier position (spec.md
// section 9's centralised "can-be-identifier-here" predicate,
// token.IsKeyword).
func (p *Parser) identLike() (string, bool) {
	t := p.cur()
	if t.Kind == token.IDENT || t.Kind == token.CONIDENT || token.IsKeyword(t.Kind) {
		p.advance()
		return t.Text, true
	}
	return "", false
}

func (p *Parser) save() int    { return p.pos }
func (p *Parser) restore(m int) { p.pos = m }

// ParseModule parses an optional leading directive list, an optional
// `module Name(.Part)*` header, then declarations until EOF.
func (p *Parser) ParseModule() (*ast.Module, error) {
	start := p.cur().Span
	mod := &ast.Module{}

	for p.check(token.IDENT) && p.cur().Text == "directive" {
		d, err := p.parseDirective()
		if err != nil {
			return nil, err
		}
		mod.Declarations = append(mod.Declarations, d)
	}

	if p.check(token.MODULE) {
		p.advance()
		name, ok := p.identLike()
		if !ok {
			return nil, &Error{Message: "expected module name", Token: p.cur()}
		}
		for p.check(token.DOT) {
			p.advance()
			part, ok := p.identLike()
			if !ok {
				return nil, &Error{Message: "expected module path segment", Token: p.cur()}
			}
			name += "." + part
		}
		mod.Name = name
	}

	for !p.atEnd() {
		decl, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		mod.Declarations = append(mod.Declarations, decl)
	}

	end := p.cur().Span
	mod.Span = start.Merge(end)
	return mod, nil
}

// parseDirective parses a leading `directive "name"` pragma. An
// unrecognised name is kept in the AST with Known false rather than
// rejected; no later stage reports it.
func (p *Parser) parseDirective() (*ast.DirectiveDecl, error) {
	start := p.cur().Span
	p.advance() // "directive"
	nameTok, err := p.expect(token.STRING, "after directive")
	if err != nil {
		return nil, err
	}
	d := &ast.DirectiveDecl{Name: nameTok.Value.Str, Span: start.Merge(nameTok.Span)}
	d.Known = config.KnownDirectives[d.Name]
	return d, nil
}

func (p *Parser) parseDeclaration() (ast.Statement, error) {
	switch p.cur().Kind {
	case token.AT:
		return p.parseExportedDef()
	case token.DEF:
		p.advance()
		return p.parseDef("", false)
	case token.TYPE:
		return p.parseTypeDecl()
	case token.GADT:
		return p.parseGADTDecl()
	case token.IMPORT:
		return p.parseImportDecl()
	case token.EXPORT:
		return p.parseExportDecl()
	case token.INTERFACE:
		return p.parseInterfaceDecl()
	case token.IMPL:
		return p.parseImplDecl()
	case token.EFFECT:
		return p.parseEffectDecl()
	case token.HANDLER:
		return p.parseHandlerDecl()
	}
	return nil, &Error{Message: "expected a top-level declaration", Token: p.cur()}
}

// parseExportedDef handles the `@py.export` / `@py.export("alias")`
// decorator form (SPEC_FULL section 4), then falls through to `def`.
func (p *Parser) parseExportedDef() (ast.Statement, error) {
	p.advance() // @
	if _, ok := p.identLike(); !ok {
		return nil, &Error{Message: "expected decorator name after @", Token: p.cur()}
	}
	for p.check(token.DOT) {
		p.advance()
		if _, ok := p.identLike(); !ok {
			return nil, &Error{Message: "expected decorator path segment", Token: p.cur()}
		}
	}
	exportName := ""
	if p.check(token.LPAREN) {
		p.advance()
		strTok, err := p.expect(token.STRING, "export alias")
		if err != nil {
			return nil, err
		}
		exportName = strTok.Value.Str
		if _, err := p.expect(token.RPAREN, "after export alias"); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.DEF, "after decorator"); err != nil {
		return nil, err
	}
	return p.parseDef(exportName, true)
}
