package parser

import (
	"fmt"

	"github.com/arcbound/jhdrc/internal/ast"
	"github.com/arcbound/jhdrc/internal/lexer"
)

// SyntaxError is the panic value raised by the first fatal parse error;
// Parse recovers it and turns it into a returned error.
type SyntaxError struct {
	Message string
	Pos     lexer.Position
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

func fail(pos lexer.Position, format string, args ...interface{}) {
	panic(&SyntaxError{Message: fmt.Sprintf(format, args...), Pos: pos})
}

// Parser consumes a lexer's token stream and builds a CompilationUnit.
type Parser struct {
	l   *lexer.Lexer
	cur lexer.Token
}

// New constructs a Parser positioned at the first token of src.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.cur = l.NextToken()
	return p
}

func (p *Parser) advance() lexer.Token {
	tok := p.cur
	p.cur = p.l.NextToken()
	return tok
}

func (p *Parser) peek() lexer.Token { return p.l.Peek(0) }

func (p *Parser) at(t lexer.TokenType) bool { return p.cur.Type == t }

func (p *Parser) atAny(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.cur.Type == t {
			return true
		}
	}
	return false
}

// expect consumes the current token if it matches t, otherwise fails with
// an ExpectedToken-shaped message naming what was expected.
func (p *Parser) expect(t lexer.TokenType, what string) lexer.Token {
	if p.cur.Type != t {
		fail(p.cur.Pos, "expected %s, found %q", what, p.cur.Literal)
	}
	return p.advance()
}

// expectIdent consumes and returns an identifier's text. Pseudo-keywords
// (record, sealed, permits, ...) lex as IDENT, so this also accepts them
// wherever a plain name is grammatically valid.
func (p *Parser) expectIdent() string {
	if p.cur.Type != lexer.IDENT {
		fail(p.cur.Pos, "expected identifier, found %q", p.cur.Literal)
	}
	tok := p.advance()
	return tok.Literal
}

// isPseudoKeyword reports whether the current IDENT token's text equals
// one of the contextual pseudo-keywords (§4.2): these lex as plain
// identifiers and are reinterpreted by grammatical position, so the
// parser must compare literal text, not token type.
func (p *Parser) isPseudoKeyword(text string) bool {
	return p.cur.Type == lexer.IDENT && p.cur.Literal == text
}

// Parse parses one compilation unit to completion, recovering a
// *SyntaxError panic into a returned error.
func Parse(l *lexer.Lexer) (cu *ast.CompilationUnit, err error) {
	p := New(l)
	defer func() {
		if r := recover(); r != nil {
			if se, ok := r.(*SyntaxError); ok {
				err = se
				return
			}
			panic(r)
		}
	}()
	return p.parseCompilationUnit(), nil
}

func (p *Parser) parseCompilationUnit() *ast.CompilationUnit {
	cu := &ast.CompilationUnit{Token: p.cur}

	annos := p.parseAnnotations()

	if p.isPseudoKeyword("open") || p.isPseudoKeyword("module") {
		cu.Module = p.parseModuleDecl(annos)
		return cu
	}

	if p.at(lexer.KW_PACKAGE) {
		cu.Package = p.parsePackageDecl(annos)
		annos = nil
	}

	for p.at(lexer.KW_IMPORT) {
		cu.Imports = append(cu.Imports, p.parseImportDecl())
	}

	for !p.at(lexer.EOF) {
		javadoc, _ := p.l.TakeJavadoc()
		if len(annos) == 0 {
			annos = p.parseAnnotations()
		}
		td := p.parseTypeDecl(p.parseModifiers(annos))
		td.Javadoc = javadoc
		cu.Types = append(cu.Types, td)
		annos = nil
	}

	return cu
}

func (p *Parser) parsePackageDecl(annos []*ast.AnnotationExpr) *ast.PackageDecl {
	tok := p.expect(lexer.KW_PACKAGE, "'package'")
	name := p.parseDottedName()
	p.expect(lexer.SEMI, "';'")
	return &ast.PackageDecl{Token: tok, Name: name, Annotations: annos}
}

func (p *Parser) parseImportDecl() *ast.ImportDecl {
	tok := p.expect(lexer.KW_IMPORT, "'import'")
	static := false
	if p.at(lexer.KW_STATIC) {
		static = true
		p.advance()
	}
	var parts []string
	parts = append(parts, p.expectIdent())
	onDemand := false
	for p.at(lexer.DOT) {
		p.advance()
		if p.at(lexer.STAR) {
			p.advance()
			onDemand = true
			break
		}
		parts = append(parts, p.expectIdent())
	}
	p.expect(lexer.SEMI, "';'")
	return &ast.ImportDecl{Token: tok, Qualifier: joinDots(parts), Static: static, OnDemand: onDemand}
}

func (p *Parser) parseDottedName() string {
	var parts []string
	parts = append(parts, p.expectIdent())
	for p.at(lexer.DOT) {
		p.advance()
		parts = append(parts, p.expectIdent())
	}
	return joinDots(parts)
}

func joinDots(parts []string) string {
	out := parts[0]
	for _, s := range parts[1:] {
		out += "." + s
	}
	return out
}
