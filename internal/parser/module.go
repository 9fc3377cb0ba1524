package parser

import (
	"github.com/arcbound/jhdrc/internal/ast"
	"github.com/arcbound/jhdrc/internal/lexer"
)

// parseModuleDecl parses a module-info.java-shaped compilation unit:
// `[open] module a.b.c { directives }`.
func (p *Parser) parseModuleDecl(annos []*ast.AnnotationExpr) *ast.ModuleDecl {
	tok := p.cur
	open := false
	if p.isPseudoKeyword("open") {
		open = true
		p.advance()
	}
	if !p.isPseudoKeyword("module") {
		fail(p.cur.Pos, "expected 'module', found %q", p.cur.Literal)
	}
	p.advance()

	md := &ast.ModuleDecl{Token: tok, Open: open, Annotations: annos, Name: p.parseDottedName()}
	p.expect(lexer.LBRACE, "'{'")
	for !p.at(lexer.RBRACE) {
		md.Directives = append(md.Directives, p.parseModuleDirective())
	}
	p.expect(lexer.RBRACE, "'}'")
	return md
}

func (p *Parser) parseModuleDirective() ast.ModuleDirective {
	switch {
	case p.isPseudoKeyword("requires"):
		return p.parseRequires()
	case p.isPseudoKeyword("exports"):
		return p.parseExports()
	case p.isPseudoKeyword("opens"):
		return p.parseOpens()
	case p.isPseudoKeyword("uses"):
		return p.parseUses()
	case p.isPseudoKeyword("provides"):
		return p.parseProvides()
	}
	fail(p.cur.Pos, "expected a module directive, found %q", p.cur.Literal)
	return nil
}

func (p *Parser) parseRequires() *ast.RequiresDirective {
	tok := p.advance()
	r := &ast.RequiresDirective{Token: tok}
	for {
		if p.isPseudoKeyword("transitive") {
			r.Transitive = true
			p.advance()
			continue
		}
		if p.at(lexer.KW_STATIC) {
			r.Static = true
			p.advance()
			continue
		}
		break
	}
	r.ModuleName = p.parseDottedName()
	p.expect(lexer.SEMI, "';'")
	return r
}

func (p *Parser) parseExports() *ast.ExportsDirective {
	tok := p.advance()
	e := &ast.ExportsDirective{Token: tok, Package: p.parseDottedName()}
	if p.isPseudoKeyword("to") {
		p.advance()
		e.To = append(e.To, p.parseDottedName())
		for p.at(lexer.COMMA) {
			p.advance()
			e.To = append(e.To, p.parseDottedName())
		}
	}
	p.expect(lexer.SEMI, "';'")
	return e
}

func (p *Parser) parseOpens() *ast.OpensDirective {
	tok := p.advance()
	o := &ast.OpensDirective{Token: tok, Package: p.parseDottedName()}
	if p.isPseudoKeyword("to") {
		p.advance()
		o.To = append(o.To, p.parseDottedName())
		for p.at(lexer.COMMA) {
			p.advance()
			o.To = append(o.To, p.parseDottedName())
		}
	}
	p.expect(lexer.SEMI, "';'")
	return o
}

func (p *Parser) parseUses() *ast.UsesDirective {
	tok := p.advance()
	u := &ast.UsesDirective{Token: tok, ServiceType: p.parseDottedName()}
	p.expect(lexer.SEMI, "';'")
	return u
}

func (p *Parser) parseProvides() *ast.ProvidesDirective {
	tok := p.advance()
	pr := &ast.ProvidesDirective{Token: tok, ServiceType: p.parseDottedName()}
	if !p.isPseudoKeyword("with") {
		fail(p.cur.Pos, "expected 'with', found %q", p.cur.Literal)
	}
	p.advance()
	pr.With = append(pr.With, p.parseDottedName())
	for p.at(lexer.COMMA) {
		p.advance()
		pr.With = append(pr.With, p.parseDottedName())
	}
	p.expect(lexer.SEMI, "';'")
	return pr
}
