package parser

import (
	"github.com/arcbound/jhdrc/internal/ast"
	"github.com/arcbound/jhdrc/internal/lexer"
	"github.com/arcbound/jhdrc/internal/types"
)

var modifierFlags = map[lexer.TokenType]types.AccessFlags{
	lexer.KW_PUBLIC:       types.AccPublic,
	lexer.KW_PRIVATE:      types.AccPrivate,
	lexer.KW_PROTECTED:    types.AccProtected,
	lexer.KW_STATIC:       types.AccStatic,
	lexer.KW_FINAL:        types.AccFinal,
	lexer.KW_NATIVE:       types.AccNative,
	lexer.KW_SYNCHRONIZED: types.AccSuper,
	lexer.KW_TRANSIENT:    types.AccTransient,
	lexer.KW_VOLATILE:     types.AccVolatile,
	lexer.KW_STRICTFP:     types.AccStrict,
	lexer.KW_ABSTRACT:     types.AccAbstract,
}

// parseModifiers consumes a run of modifier keywords and annotations
// (interleaved in any order, as Java permits), stopping at the first
// token that is neither. `default` (interface method bodies) is consumed
// here without setting a flag; the sealed-hierarchy pseudo-keywords are
// handled by the caller. Neither corresponds to an AccessFlags bit.
func (p *Parser) parseModifiers(annos []*ast.AnnotationExpr) ast.Modifiers {
	mods := ast.Modifiers{Annotations: annos}
	for {
		if p.at(lexer.AT) && p.peek().Type != lexer.KW_INTERFACE {
			mods.Annotations = append(mods.Annotations, p.parseAnnotation())
			continue
		}
		if flag, ok := modifierFlags[p.cur.Type]; ok {
			mods.Flags = mods.Flags.With(flag)
			p.advance()
			continue
		}
		if p.at(lexer.KW_DEFAULT) {
			// interface default-method modifier: no AccessFlags bit exists
			// for it (a default method is identified by HasBody on an
			// interface method), so it's consumed and dropped here.
			p.advance()
			continue
		}
		return mods
	}
}

// parseTypeDecl parses a class, interface, @interface, enum, or record
// declaration, having already consumed its leading modifiers.
func (p *Parser) parseTypeDecl(mods ast.Modifiers) *ast.TypeDecl {
	sealed, nonSealed := p.consumeSealedModifiers()
	mods = p.mergeTrailingModifiers(mods)

	td := &ast.TypeDecl{Token: p.cur, Modifiers: mods, Sealed: sealed, NonSealed: nonSealed}

	switch {
	case p.at(lexer.AT) && p.peek().Type == lexer.KW_INTERFACE:
		p.advance() // '@'
		p.advance() // 'interface'
		td.Kind = types.KindAnnotation
		mods.Flags = mods.Flags.With(types.AccInterface).With(types.AccAnnotation).With(types.AccAbstract)
	case p.at(lexer.KW_INTERFACE):
		p.advance()
		td.Kind = types.KindInterface
		mods.Flags = mods.Flags.With(types.AccInterface).With(types.AccAbstract)
	case p.isPseudoKeyword("record"):
		p.advance()
		td.Kind = types.KindRecord
		mods.Flags = mods.Flags.With(types.AccFinal)
	case p.at(lexer.KW_ENUM):
		p.advance()
		td.Kind = types.KindEnum
		mods.Flags = mods.Flags.With(types.AccEnum)
	case p.at(lexer.KW_CLASS):
		p.advance()
		td.Kind = types.KindClass
	default:
		fail(p.cur.Pos, "expected a type declaration, found %q", p.cur.Literal)
	}
	td.Modifiers = mods
	td.Name = p.expectIdent()
	td.TypeParams = p.parseTypeParams()

	if td.Kind == types.KindRecord {
		td.RecordComponents = p.parseRecordHeader()
	}

	if p.at(lexer.KW_EXTENDS) {
		p.advance()
		if td.Kind == types.KindInterface || td.Kind == types.KindAnnotation {
			td.Implements = append(td.Implements, p.parseTypeRef())
			for p.at(lexer.COMMA) {
				p.advance()
				td.Implements = append(td.Implements, p.parseTypeRef())
			}
		} else {
			td.Extends = p.parseTypeRef()
		}
	}
	if p.at(lexer.KW_IMPLEMENTS) {
		if td.Kind == types.KindInterface || td.Kind == types.KindAnnotation {
			fail(p.cur.Pos, "an interface cannot use 'implements'")
		}
		p.advance()
		td.Implements = append(td.Implements, p.parseTypeRef())
		for p.at(lexer.COMMA) {
			p.advance()
			td.Implements = append(td.Implements, p.parseTypeRef())
		}
	}
	if p.isPseudoKeyword("permits") {
		p.advance()
		td.Permits = append(td.Permits, p.parseTypeRef())
		for p.at(lexer.COMMA) {
			p.advance()
			td.Permits = append(td.Permits, p.parseTypeRef())
		}
	}

	p.parseTypeBody(td)
	return td
}

// consumeSealedModifiers looks for the `sealed` and `non-sealed`
// contextual modifiers, which (per §4.2) lex as plain identifiers/tokens
// and must be reinterpreted by position: they appear among the other
// modifiers, immediately before the class/interface/record keyword.
func (p *Parser) consumeSealedModifiers() (sealed, nonSealed bool) {
	for {
		if p.isPseudoKeyword("sealed") {
			sealed = true
			p.advance()
			continue
		}
		if p.isPseudoKeyword("non") && p.peek().Type == lexer.MINUS {
			save := p.cur
			p.advance() // "non"
			p.advance() // '-'
			if !p.isPseudoKeyword("sealed") {
				fail(save.Pos, "expected 'non-sealed'")
			}
			p.advance()
			nonSealed = true
			continue
		}
		return
	}
}

// mergeTrailingModifiers re-runs the ordinary modifier scan after
// sealed-hierarchy pseudo-keywords, which themselves may be interleaved
// with ordinary modifiers and annotations.
func (p *Parser) mergeTrailingModifiers(mods ast.Modifiers) ast.Modifiers {
	extra := p.parseModifiers(nil)
	mods.Flags = mods.Flags.With(extra.Flags)
	mods.Annotations = append(mods.Annotations, extra.Annotations...)
	return mods
}

func (p *Parser) parseRecordHeader() []*ast.RecordComponent {
	p.expect(lexer.LPAREN, "'('")
	var comps []*ast.RecordComponent
	if p.at(lexer.RPAREN) {
		p.advance()
		return comps
	}
	comps = append(comps, p.parseRecordComponent())
	for p.at(lexer.COMMA) {
		p.advance()
		comps = append(comps, p.parseRecordComponent())
	}
	p.expect(lexer.RPAREN, "')'")
	return comps
}

func (p *Parser) parseRecordComponent() *ast.RecordComponent {
	tok := p.cur
	annos := p.parseAnnotations()
	typeRef := p.parseTypeRef()
	name := p.expectIdent()
	return &ast.RecordComponent{Token: tok, Type: typeRef, Name: name, Annotations: annos}
}

func (p *Parser) parseTypeBody(td *ast.TypeDecl) {
	p.expect(lexer.LBRACE, "'{'")

	if td.Kind == types.KindEnum {
		td.EnumConstants = p.parseEnumConstants()
	}

	for !p.at(lexer.RBRACE) {
		if p.at(lexer.SEMI) {
			p.advance()
			continue
		}
		javadoc, _ := p.l.TakeJavadoc()
		annos := p.parseAnnotations()
		mods := p.parseModifiers(annos)

		switch {
		case p.atAny(lexer.KW_CLASS, lexer.KW_INTERFACE, lexer.KW_ENUM) ||
			p.isPseudoKeyword("record") ||
			(p.at(lexer.AT) && p.peek().Type == lexer.KW_INTERFACE):
			nested := p.parseTypeDecl(mods)
			nested.Javadoc = javadoc
			td.NestedTypes = append(td.NestedTypes, nested)
		case p.at(lexer.LT) || p.isConstructorStart(td.Name) || p.startsMethodAfterType():
			m := p.parseMember(mods, td.Name)
			m.Javadoc = javadoc
			td.Methods = append(td.Methods, m)
		default:
			fields := p.parseFieldDecls(mods)
			if len(fields) > 0 {
				fields[0].Javadoc = javadoc
			}
			td.Fields = append(td.Fields, fields...)
		}
	}
	p.expect(lexer.RBRACE, "'}'")
}

func (p *Parser) isConstructorStart(typeName string) bool {
	return p.at(lexer.IDENT) && p.cur.Literal == typeName && p.peek().Type == lexer.LPAREN
}

// startsMethodAfterType looks past a type reference (without consuming
// anything) to see whether a name followed by '(' comes next, which
// distinguishes a method declaration from a field declaration — both
// start with `Modifiers TypeRef`.
func (p *Parser) startsMethodAfterType() bool {
	mark := p.snapshot()
	defer p.restore(mark)

	defer func() { recover() }() // a malformed lookahead just reports "not a method"
	if p.at(lexer.KW_VOID) {
		return true
	}
	p.parseTypeRef()
	if !p.at(lexer.IDENT) {
		return false
	}
	p.advance()
	return p.at(lexer.LPAREN)
}

func (p *Parser) parseMember(mods ast.Modifiers, typeName string) *ast.MethodDecl {
	tok := p.cur
	m := &ast.MethodDecl{Token: tok, Modifiers: mods}
	m.TypeParams = p.parseTypeParams()

	if p.isConstructorStart(typeName) {
		m.IsConstructor = true
		m.Name = p.expectIdent()
	} else {
		m.ReturnType = p.parseTypeRef()
		m.Name = p.expectIdent()
	}

	m.Params = p.parseParamList()
	if p.at(lexer.KW_THROWS) {
		p.advance()
		m.Throws = append(m.Throws, p.parseTypeRef())
		for p.at(lexer.COMMA) {
			p.advance()
			m.Throws = append(m.Throws, p.parseTypeRef())
		}
	}

	switch {
	case p.at(lexer.KW_DEFAULT):
		// annotation-type element default value: `Type name() default expr;`
		p.advance()
		m.AnnotationDefault = p.parseElementValue()
		p.expect(lexer.SEMI, "';'")
	case p.at(lexer.SEMI):
		p.advance()
	case p.at(lexer.LBRACE):
		m.HasBody = true
		p.skipBalancedBraces()
	default:
		fail(p.cur.Pos, "expected method body or ';', found %q", p.cur.Literal)
	}
	return m
}

func (p *Parser) parseParamList() []*ast.Param {
	p.expect(lexer.LPAREN, "'('")
	var params []*ast.Param
	if p.at(lexer.RPAREN) {
		p.advance()
		return params
	}
	params = append(params, p.parseParam())
	for p.at(lexer.COMMA) {
		p.advance()
		params = append(params, p.parseParam())
	}
	p.expect(lexer.RPAREN, "')'")
	return params
}

func (p *Parser) parseParam() *ast.Param {
	tok := p.cur
	annos := p.parseAnnotations()
	mods := p.parseModifiers(nil)
	typeRef := p.parseTypeRef()
	varargs := false
	if p.at(lexer.ELLIPSIS) {
		p.advance()
		varargs = true
	}
	name := p.expectIdent()
	// trailing C-style array brackets on the parameter name, e.g. `int x[]`
	for p.at(lexer.LBRACK) {
		p.advance()
		p.expect(lexer.RBRACK, "']'")
		typeRef = &ast.ArrayTypeRef{Token: tok, Element: typeRef}
	}
	return &ast.Param{Token: tok, Modifiers: mods, Type: typeRef, Name: name, Varargs: varargs, Annotations: annos}
}

// parseFieldDecls parses one (possibly multi-declarator) field
// declaration, e.g. `int a = 1, b[], c = 2;`, sharing Modifiers and a
// base TypeRef across every declarator, each with its own constant
// initializer (parsed directly, not split from raw token text, since the
// declarator loop already gives each variable its own comma-delimited
// parse).
func (p *Parser) parseFieldDecls(mods ast.Modifiers) []*ast.FieldDecl {
	tok := p.cur
	baseType := p.parseTypeRef()

	var fields []*ast.FieldDecl
	for {
		name := p.expectIdent()
		extraDims := 0
		for p.at(lexer.LBRACK) {
			p.advance()
			p.expect(lexer.RBRACK, "']'")
			extraDims++
		}
		fd := &ast.FieldDecl{Token: tok, Modifiers: mods, Type: baseType, Name: name, ExtraDims: extraDims}
		if p.at(lexer.ASSIGN) {
			p.advance()
			fd.Initializer = p.parseFieldInitializer()
		}
		fields = append(fields, fd)
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(lexer.SEMI, "';'")
	return fields
}

// parseFieldInitializer parses a field's initializer expression. Only
// the result matters when the field later turns out to be a compile-time
// constant (final + primitive/String + constant initializer); the binder
// decides that, not the parser.
func (p *Parser) parseFieldInitializer() ast.Expression {
	if p.at(lexer.LBRACE) {
		return p.parseArrayInit()
	}
	return p.parseExpression(precAssign)
}

func (p *Parser) parseEnumConstants() []*ast.EnumConstant {
	var consts []*ast.EnumConstant
	ordinal := 0
	for p.at(lexer.IDENT) || p.at(lexer.AT) {
		p.parseAnnotations() // enum-constant annotations: accepted, not retained separately
		tok := p.cur
		name := p.expectIdent()
		ec := &ast.EnumConstant{Token: tok, Name: name, Ordinal: ordinal}
		ordinal++
		if p.at(lexer.LPAREN) {
			p.advance()
			if !p.at(lexer.RPAREN) {
				ec.Args = append(ec.Args, p.parseExpression(precAssign))
				for p.at(lexer.COMMA) {
					p.advance()
					ec.Args = append(ec.Args, p.parseExpression(precAssign))
				}
			}
			p.expect(lexer.RPAREN, "')'")
		}
		if p.at(lexer.LBRACE) {
			ec.Body = &ast.TypeDecl{Token: p.cur, Kind: types.KindClass, Name: name}
			p.parseTypeBody(ec.Body)
		}
		consts = append(consts, ec)
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if p.at(lexer.SEMI) {
		p.advance()
	}
	return consts
}
