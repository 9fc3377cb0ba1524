package parser

import "github.com/arcbound/jhdrc/internal/lexer"

// parserState is a backtracking point: the lexer's position plus the
// parser's own current-token cursor.
type parserState struct {
	lexState lexer.State
	cur      lexer.Token
}

func (p *Parser) snapshot() parserState {
	return parserState{lexState: p.l.Save(), cur: p.cur}
}

func (p *Parser) restore(s parserState) {
	p.l.Restore(s.lexState)
	p.cur = s.cur
}

// skipBalancedBraces consumes a `{ ... }` block without building any
// structure from its contents, tracking nested braces so an inner `{`/`}`
// pair (from a nested block, anonymous class, or lambda body) doesn't
// prematurely end the skip. The current token must be the opening '{'.
func (p *Parser) skipBalancedBraces() {
	p.expect(lexer.LBRACE, "'{'")
	depth := 1
	for depth > 0 {
		switch p.cur.Type {
		case lexer.EOF:
			fail(p.cur.Pos, "unexpected end of file inside method body")
		case lexer.LBRACE:
			depth++
		case lexer.RBRACE:
			depth--
		}
		p.advance()
	}
}
