package parser

import (
	"strconv"
	"strings"

	"github.com/arcbound/jhdrc/internal/ast"
	"github.com/arcbound/jhdrc/internal/lexer"
)

// Precedence levels for the constant-expression sub-parser (§4.2: "an
// operator-precedence parser over the usual arithmetic/bitwise/logical/
// comparison/shift/ternary/assignment operators").
const (
	_ int = iota
	precLowest
	precAssign
	precTernary
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precUnary
)

var binaryPrecedence = map[lexer.TokenType]int{
	lexer.ASSIGN:   precAssign,
	lexer.PIPEPIPE: precOr,
	lexer.AMPAMP:   precAnd,
	lexer.PIPE:     precBitOr,
	lexer.CARET:    precBitXor,
	lexer.AMP:      precBitAnd,
	lexer.EQ:       precEquality,
	lexer.NE:       precEquality,
	lexer.LT:       precRelational,
	lexer.GT:       precRelational,
	lexer.LE:       precRelational,
	lexer.GE:       precRelational,
	lexer.KW_INSTANCEOF: precRelational,
	lexer.LTLT:     precShift,
	lexer.GTGT:     precShift,
	lexer.GTGTGT:   precShift,
	lexer.PLUS:     precAdditive,
	lexer.MINUS:    precAdditive,
	lexer.STAR:     precMultiplicative,
	lexer.SLASH:    precMultiplicative,
	lexer.PERCENT:  precMultiplicative,
}

// parseExpression parses a constant expression down to (and excluding)
// operators of precedence <= minPrec.
func (p *Parser) parseExpression(minPrec int) ast.Expression {
	left := p.parseUnary()

	for {
		if p.at(lexer.QUESTION) && precTernary > minPrec {
			left = p.parseTernary(left)
			continue
		}
		prec, ok := binaryPrecedence[p.cur.Type]
		if !ok || prec <= minPrec {
			break
		}
		left = p.parseBinary(left, prec)
	}
	return left
}

func (p *Parser) parseBinary(left ast.Expression, prec int) ast.Expression {
	tok := p.advance()
	right := p.parseExpression(prec)
	return &ast.BinaryExpr{Token: tok, Operator: tok.Literal, Left: left, Right: right}
}

func (p *Parser) parseTernary(cond ast.Expression) ast.Expression {
	tok := p.expect(lexer.QUESTION, "'?'")
	then := p.parseExpression(precAssign)
	p.expect(lexer.COLON, "':'")
	els := p.parseExpression(precTernary)
	return &ast.TernaryExpr{Token: tok, Condition: cond, Then: then, Else: els}
}

func (p *Parser) parseUnary() ast.Expression {
	switch p.cur.Type {
	case lexer.PLUS, lexer.MINUS, lexer.BANG, lexer.TILDE:
		tok := p.advance()
		operand := p.parseExpression(precUnary - 1)
		return &ast.UnaryExpr{Token: tok, Operator: tok.Literal, Operand: operand}
	case lexer.LPAREN:
		return p.parseParenOrCast()
	case lexer.AT:
		return p.parseAnnotation()
	case lexer.LBRACE:
		return p.parseArrayInit()
	}
	return p.parsePrimary()
}

// parseParenOrCast disambiguates `(Expr)` grouping from `(Type) expr`
// casting by attempting a type reference and checking what follows the
// closing paren: a cast is always immediately followed by something that
// cannot continue a parenthesized expression (another unary operand).
func (p *Parser) parseParenOrCast() ast.Expression {
	tok := p.expect(lexer.LPAREN, "'('")
	if looksLikeType(p.cur.Type) {
		typeRef := p.parseTypeRef()
		if p.at(lexer.RPAREN) {
			p.advance()
			if p.canStartUnary() {
				operand := p.parseExpression(precUnary - 1)
				return &ast.CastExpr{Token: tok, Type: typeRef, Operand: operand}
			}
		}
		// Not actually a cast (e.g. `(Foo)` used as a grouped name
		// reference) — reinterpret the parsed type as a qualified name.
		if ctr, ok := typeRef.(*ast.ClassTypeRef); ok && len(ctr.Segments) > 0 {
			return &ast.NameExpr{Token: tok, Parts: classTypeRefNameParts(ctr)}
		}
	}
	expr := p.parseExpression(precLowest)
	p.expect(lexer.RPAREN, "')'")
	return expr
}

func classTypeRefNameParts(c *ast.ClassTypeRef) []string {
	parts := make([]string, len(c.Segments))
	for i, s := range c.Segments {
		parts[i] = s.Name
	}
	return parts
}

func looksLikeType(t lexer.TokenType) bool {
	if _, ok := primitiveKeywords[t]; ok {
		return true
	}
	return t == lexer.IDENT
}

func (p *Parser) canStartUnary() bool {
	switch p.cur.Type {
	case lexer.IDENT, lexer.INT_LITERAL, lexer.LONG_LITERAL, lexer.FLOAT_LITERAL,
		lexer.DOUBLE_LITERAL, lexer.CHAR_LITERAL, lexer.STRING_LITERAL, lexer.TEXT_BLOCK_LITERAL,
		lexer.KW_TRUE, lexer.KW_FALSE, lexer.KW_NULL,
		lexer.LPAREN, lexer.PLUS, lexer.MINUS, lexer.BANG, lexer.TILDE, lexer.AT, lexer.LBRACE:
		return true
	}
	return false
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.cur
	switch tok.Type {
	case lexer.INT_LITERAL:
		p.advance()
		lit := &ast.IntLiteral{}
		lit.Token = tok
		return lit
	case lexer.LONG_LITERAL:
		p.advance()
		lit := &ast.LongLiteral{}
		lit.Token = tok
		return lit
	case lexer.FLOAT_LITERAL:
		p.advance()
		lit := &ast.FloatLiteral{}
		lit.Token = tok
		return lit
	case lexer.DOUBLE_LITERAL:
		p.advance()
		lit := &ast.DoubleLiteral{}
		lit.Token = tok
		return lit
	case lexer.CHAR_LITERAL:
		p.advance()
		lit := &ast.CharLiteral{Value: decodeCharLiteral(tok.Literal)}
		lit.Token = tok
		return lit
	case lexer.STRING_LITERAL:
		p.advance()
		lit := &ast.StringLiteral{Value: decodeStringLiteral(tok.Literal)}
		lit.Token = tok
		return lit
	case lexer.TEXT_BLOCK_LITERAL:
		p.advance()
		// Drop the delimiters and the opening line, strip the common indent of
		// the non-blank lines and the closing line, trim trailing spaces, then
		// resolve escapes.
		body := strings.TrimSuffix(strings.TrimPrefix(tok.Literal, `"""`), `"""`)
		lines := strings.Split(body[strings.IndexByte(body, '\n')+1:], "\n")
		indent := -1
		for i, ln := range lines {
			if n := len(ln) - len(strings.TrimLeft(ln, " \t")); (n < len(ln) || i == len(lines)-1) && (indent < 0 || n < indent) {
				indent = n
			}
		}
		for i, ln := range lines {
			lines[i] = strings.TrimRight(ln[min(indent, len(ln)):], " \t")
		}
		lit := &ast.TextBlockLiteral{Value: decodeEscapes(strings.Join(lines, "\n"))}
		lit.Token = tok
		return lit
	case lexer.KW_TRUE, lexer.KW_FALSE:
		p.advance()
		lit := &ast.BoolLiteral{Value: tok.Type == lexer.KW_TRUE}
		lit.Token = tok
		return lit
	case lexer.KW_NULL:
		p.advance()
		lit := &ast.NullLiteral{}
		lit.Token = tok
		return lit
	case lexer.IDENT:
		return p.parseNameOrClassLiteral()
	}
	if _, ok := primitiveKeywords[tok.Type]; ok {
		return p.parseClassLiteralFrom(p.parseTypeRef())
	}
	fail(tok.Pos, "unexpected token %q in expression", tok.Literal)
	return nil
}

// parseNameOrClassLiteral parses a (possibly dotted, possibly array-
// bracketed) name and, if followed by `.class`, wraps it as a
// ClassLiteralExpr instead of a plain NameExpr.
func (p *Parser) parseNameOrClassLiteral() ast.Expression {
	tok := p.cur
	var parts []string
	parts = append(parts, p.expectIdent())
	for p.at(lexer.DOT) && p.peek().Type == lexer.IDENT {
		p.advance()
		parts = append(parts, p.expectIdent())
	}
	if p.at(lexer.DOT) && p.peek().Type == lexer.KW_CLASS {
		p.advance()
		p.advance()
		classRef := &ast.ClassTypeRef{Token: tok, Segments: namePartsToSegments(parts)}
		return &ast.ClassLiteralExpr{Token: tok, Type: classRef}
	}
	if p.at(lexer.LBRACK) {
		classRef := &ast.ClassTypeRef{Token: tok, Segments: namePartsToSegments(parts)}
		return p.parseClassLiteralFrom(p.finishArrayTypeRef(classRef))
	}
	return &ast.NameExpr{Token: tok, Parts: parts}
}

func namePartsToSegments(parts []string) []ast.ClassTypeRefSegment {
	segs := make([]ast.ClassTypeRefSegment, len(parts))
	for i, s := range parts {
		segs[i] = ast.ClassTypeRefSegment{Name: s}
	}
	return segs
}

// finishArrayTypeRef wraps base in ArrayTypeRef for each trailing `[]`
// pair already known to be present (used by the `T[].class` path, where
// the base type has already been parsed as a name).
func (p *Parser) finishArrayTypeRef(base ast.TypeRef) ast.TypeRef {
	for p.at(lexer.LBRACK) {
		tok := p.advance()
		p.expect(lexer.RBRACK, "']'")
		base = &ast.ArrayTypeRef{Token: tok, Element: base}
	}
	return base
}

func (p *Parser) parseClassLiteralFrom(typeRef ast.TypeRef) ast.Expression {
	pos := typeRef.Pos()
	p.expect(lexer.DOT, "'.'")
	p.expect(lexer.KW_CLASS, "'class'")
	return &ast.ClassLiteralExpr{Token: lexer.Token{Type: lexer.KW_CLASS, Pos: pos}, Type: typeRef}
}

func (p *Parser) parseArrayInit() ast.Expression {
	tok := p.expect(lexer.LBRACE, "'{'")
	init := &ast.ArrayInitExpr{Token: tok}
	for !p.at(lexer.RBRACE) {
		init.Elements = append(init.Elements, p.parseExpression(precLowest))
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(lexer.RBRACE, "'}'")
	return init
}

// parseAnnotations parses zero or more `@Type(...)` declaration/type
// annotations in sequence. A `@` immediately followed by `interface` isn't
// a plain annotation use — it starts an annotation-type declaration (e.g.
// `@Repeatable(RS.class) @interface R {...}`) — so the run stops there and
// leaves it for the caller's declaration dispatch.
func (p *Parser) parseAnnotations() []*ast.AnnotationExpr {
	var out []*ast.AnnotationExpr
	for p.at(lexer.AT) && p.peek().Type != lexer.KW_INTERFACE {
		out = append(out, p.parseAnnotation())
	}
	return out
}

func (p *Parser) parseAnnotation() *ast.AnnotationExpr {
	tok := p.expect(lexer.AT, "'@'")
	typeTok := p.cur
	var segs []ast.ClassTypeRefSegment
	segs = append(segs, ast.ClassTypeRefSegment{Name: p.expectIdent()})
	for p.at(lexer.DOT) {
		p.advance()
		segs = append(segs, ast.ClassTypeRefSegment{Name: p.expectIdent()})
	}
	annoType := &ast.ClassTypeRef{Token: typeTok, Segments: segs}

	anno := &ast.AnnotationExpr{Token: tok, Type: annoType}
	if !p.at(lexer.LPAREN) {
		return anno
	}
	p.advance()
	if p.at(lexer.RPAREN) {
		p.advance()
		return anno
	}
	anno.Elements = p.parseAnnotationElements()
	p.expect(lexer.RPAREN, "')'")
	return anno
}

func (p *Parser) parseAnnotationElements() []ast.AnnotationElementExpr {
	first := p.parseAnnotationElement()
	elems := []ast.AnnotationElementExpr{first}
	for p.at(lexer.COMMA) {
		p.advance()
		elems = append(elems, p.parseAnnotationElement())
	}
	return elems
}

// parseAnnotationElement parses either `name = value` or, when no `=`
// follows a bare expression, the single-element shorthand `value`.
func (p *Parser) parseAnnotationElement() ast.AnnotationElementExpr {
	if p.at(lexer.IDENT) && p.peek().Type == lexer.ASSIGN {
		name := p.expectIdent()
		p.advance() // '='
		return ast.AnnotationElementExpr{Name: name, Value: p.parseElementValue()}
	}
	return ast.AnnotationElementExpr{Name: "value", Value: p.parseElementValue()}
}

func (p *Parser) parseElementValue() ast.Expression {
	if p.at(lexer.LBRACE) {
		return p.parseArrayInit()
	}
	return p.parseExpression(precAssign)
}

func decodeCharLiteral(raw string) rune {
	inner := raw
	if len(inner) >= 2 {
		inner = inner[1 : len(inner)-1]
	}
	s := decodeEscapes(inner)
	for _, r := range s {
		return r
	}
	return 0
}

func decodeStringLiteral(raw string) string {
	inner := raw
	if len(inner) >= 2 {
		inner = inner[1 : len(inner)-1]
	}
	return decodeEscapes(inner)
}

// decodeEscapes resolves the backslash escapes the lexer validated but
// left untouched in Token.Literal (which always preserves raw source
// text for diagnostics).
func decodeEscapes(s string) string {
	var out []rune
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '\\' || i+1 >= len(runes) {
			out = append(out, runes[i])
			continue
		}
		i++
		switch runes[i] {
		case 'b':
			out = append(out, '\b')
		case 't':
			out = append(out, '\t')
		case 'n':
			out = append(out, '\n')
		case 'f':
			out = append(out, '\f')
		case 'r':
			out = append(out, '\r')
		case 's':
			out = append(out, ' ')
		case '"':
			out = append(out, '"')
		case '\'':
			out = append(out, '\'')
		case '\\':
			out = append(out, '\\')
		default:
			j := i
			for j < len(runes) && j < i+3 && runes[j] >= '0' && runes[j] <= '7' {
				j++
			}
			if v, err := strconv.ParseInt(string(runes[i:j]), 8, 32); err == nil {
				out = append(out, rune(v))
				i = j - 1
			}
		}
	}
	return string(out)
}
