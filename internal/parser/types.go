package parser

import (
	"github.com/arcbound/jhdrc/internal/ast"
	"github.com/arcbound/jhdrc/internal/lexer"
)

var primitiveKeywords = map[lexer.TokenType]string{
	lexer.KW_BOOLEAN: "boolean",
	lexer.KW_BYTE:    "byte",
	lexer.KW_SHORT:   "short",
	lexer.KW_INT:     "int",
	lexer.KW_LONG:    "long",
	lexer.KW_CHAR:    "char",
	lexer.KW_FLOAT:   "float",
	lexer.KW_DOUBLE:  "double",
	lexer.KW_VOID:    "void",
}

// parseTypeRef parses any type reference: primitive (with any number of
// trailing `[]`), class/interface reference (with generics and nested
// generics), or a type variable (syntactically identical to a class
// reference — disambiguated later by the binder's environment lookup).
func (p *Parser) parseTypeRef() ast.TypeRef {
	annos := p.parseAnnotations()

	var base ast.TypeRef
	if name, ok := primitiveKeywords[p.cur.Type]; ok {
		tok := p.advance()
		base = &ast.PrimitiveTypeRef{Token: tok, Name: name, Annotations: annos}
	} else {
		base = p.parseClassTypeRef(annos)
	}

	// Each `[]` pair is read left to right, but per JLS 9.7.4 the first
	// (leftmost) dimension's annotations land on the outermost array type
	// (the declared type itself) while each later dimension's annotations
	// land one level further in, toward the element type — the reverse of
	// encounter order. Collect every dimension's token+annotations first,
	// then fold them back-to-front so the last dimension read wraps base
	// first (becoming innermost) and the first dimension read wraps last
	// (becoming outermost).
	type dim struct {
		tok   lexer.Token
		annos []*ast.AnnotationExpr
	}
	var dims []dim
	for p.at(lexer.LBRACK) || p.at(lexer.AT) {
		dimAnnos := p.parseAnnotations()
		tok := p.expect(lexer.LBRACK, "'['")
		p.expect(lexer.RBRACK, "']'")
		dims = append(dims, dim{tok: tok, annos: dimAnnos})
	}
	for i := len(dims) - 1; i >= 0; i-- {
		base = &ast.ArrayTypeRef{Token: dims[i].tok, Element: base, Annotations: dims[i].annos}
	}
	return base
}

func (p *Parser) parseClassTypeRef(annos []*ast.AnnotationExpr) *ast.ClassTypeRef {
	tok := p.cur
	var segs []ast.ClassTypeRefSegment
	segs = append(segs, p.parseClassTypeRefSegment())
	for p.at(lexer.DOT) {
		// A '.' here could separate package/class qualifiers (no type args
		// yet) or step into a nested-generic segment (Outer<T>.Inner<U>);
		// both are represented the same way, as another chain segment.
		if p.peek().Type != lexer.IDENT {
			break
		}
		p.advance()
		segs = append(segs, p.parseClassTypeRefSegment())
	}
	return &ast.ClassTypeRef{Token: tok, Segments: segs, Annotations: annos}
}

func (p *Parser) parseClassTypeRefSegment() ast.ClassTypeRefSegment {
	annos := p.parseAnnotations()
	name := p.expectIdent()
	var args []ast.TypeRef
	if p.at(lexer.LT) {
		args = p.parseTypeArguments()
	}
	return ast.ClassTypeRefSegment{Name: name, TypeArgs: args, Annotations: annos}
}

// parseTypeArguments parses `< arg (, arg)* >`, closing via closeAngle so
// a `>>` or `>>>` produced by the lexer for nested generics is correctly
// split rather than swallowing the outer list's own closer.
func (p *Parser) parseTypeArguments() []ast.TypeRef {
	p.expect(lexer.LT, "'<'")
	var args []ast.TypeRef
	if p.atCloseAngle() {
		p.closeAngle()
		return args
	}
	args = append(args, p.parseTypeArgument())
	for p.at(lexer.COMMA) {
		p.advance()
		args = append(args, p.parseTypeArgument())
	}
	p.closeAngle()
	return args
}

func (p *Parser) parseTypeArgument() ast.TypeRef {
	if p.at(lexer.QUESTION) {
		tok := p.advance()
		annos := p.parseAnnotations()
		w := &ast.WildcardTypeRef{Token: tok, Annotations: annos}
		switch {
		case p.at(lexer.KW_EXTENDS):
			p.advance()
			w.Extends = p.parseTypeRef()
		case p.at(lexer.KW_SUPER):
			p.advance()
			w.Super = p.parseTypeRef()
		}
		return w
	}
	return p.parseTypeRef()
}

// atCloseAngle reports whether the current token could close a generic-
// argument list (possibly as a prefix of a longer '>'-composite token).
func (p *Parser) atCloseAngle() bool {
	return p.atAny(lexer.GT, lexer.GTGT, lexer.GTGTGT, lexer.GE, lexer.GTGTEQ, lexer.GTGTGTEQ)
}

// closeAngle consumes exactly one '>' worth of the current token,
// splitting any remainder back onto the lexer's lookahead so the next
// token reflects what's left (e.g. `>>` closing two nested lists in one
// scan becomes a lone GT here and a pushed-back GT for the caller).
func (p *Parser) closeAngle() {
	switch p.cur.Type {
	case lexer.GT:
		p.advance()
	case lexer.GTGT, lexer.GTGTGT, lexer.GE, lexer.GTGTEQ, lexer.GTGTGTEQ:
		tok := p.cur
		p.l.PushBack(tok)
		p.l.SplitGreaterGreater()
		p.cur = p.l.NextToken()
	default:
		fail(p.cur.Pos, "expected '>', found %q", p.cur.Literal)
	}
}

func (p *Parser) parseTypeParams() []ast.TypeParameter {
	if !p.at(lexer.LT) {
		return nil
	}
	p.advance()
	var params []ast.TypeParameter
	params = append(params, p.parseTypeParam())
	for p.at(lexer.COMMA) {
		p.advance()
		params = append(params, p.parseTypeParam())
	}
	p.closeAngle()
	return params
}

func (p *Parser) parseTypeParam() ast.TypeParameter {
	tok := p.cur
	name := p.expectIdent()
	tp := ast.TypeParameter{Token: tok, Name: name}
	if p.at(lexer.KW_EXTENDS) {
		p.advance()
		tp.Bounds = append(tp.Bounds, p.parseTypeRef())
		for p.at(lexer.AMP) {
			p.advance()
			tp.Bounds = append(tp.Bounds, p.parseTypeRef())
		}
	}
	return tp
}
