package lexer

import "testing"

// TestNextTokenKeywordsAndPunctuation tests a representative slice of
// keywords, identifiers, and punctuation in one pass, mirroring how a
// class header's modifiers and braces actually appear in source.
func TestNextTokenKeywordsAndPunctuation(t *testing.T) {
	input := `public final class Foo<T> extends Bar implements Baz {
	private int x;
}`

	want := []TokenType{
		KW_PUBLIC, KW_FINAL, KW_CLASS, IDENT, LT, IDENT, GT,
		KW_EXTENDS, IDENT, KW_IMPLEMENTS, IDENT, LBRACE,
		KW_PRIVATE, KW_INT, IDENT, SEMI,
		RBRACE, EOF,
	}

	l := New(input)
	for i, wantType := range want {
		tok := l.NextToken()
		if tok.Type != wantType {
			t.Fatalf("token %d: got type %d (%q), want %d", i, tok.Type, tok.Literal, wantType)
		}
	}
	if errs := l.Errors(); len(errs) != 0 {
		t.Errorf("unexpected lexer diagnostics: %v", errs)
	}
}

// TestNextTokenLiterals tests the numeric, character, and string literal
// token kinds, including long/float/double suffixes.
func TestNextTokenLiterals(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want TokenType
	}{
		{"int", "42", INT_LITERAL},
		{"long", "42L", LONG_LITERAL},
		{"float", "1.5f", FLOAT_LITERAL},
		{"double", "1.5", DOUBLE_LITERAL},
		{"char", "'a'", CHAR_LITERAL},
		{"string", `"hello"`, STRING_LITERAL},
		{"hex int", "0xFF", INT_LITERAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.in)
			tok := l.NextToken()
			if tok.Type != tt.want {
				t.Errorf("NextToken() type = %d, want %d (literal %q)", tok.Type, tt.want, tok.Literal)
			}
			if len(l.Errors()) != 0 {
				t.Errorf("unexpected diagnostics: %v", l.Errors())
			}
		})
	}
}

// TestNextTokenOperators tests multi-character operators are not split
// into their single-character prefixes.
func TestNextTokenOperators(t *testing.T) {
	tests := []struct {
		in   string
		want TokenType
	}{
		{"==", EQ}, {"!=", NE}, {"<=", LE}, {">=", GE},
		{"&&", AMPAMP}, {"||", PIPEPIPE}, {"++", PLUSPLUS}, {"--", MINUSMINUS},
		{"<<", LTLT}, {">>", GTGT}, {">>>", GTGTGT},
		{"+=", PLUSEQ}, {"-=", MINUSEQ}, {"->", ARROW}, {"::", COLONCOLON},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			l := New(tt.in)
			tok := l.NextToken()
			if tok.Type != tt.want {
				t.Errorf("NextToken(%q) type = %d, want %d", tt.in, tok.Type, tt.want)
			}
		})
	}
}

// TestPseudoKeywordsLexAsIdent confirms record/sealed/permits/yield and
// friends lex as plain identifiers, not keyword tokens, per §4.2.
func TestPseudoKeywordsLexAsIdent(t *testing.T) {
	for _, word := range []string{"record", "sealed", "permits", "yield", "module", "open", "transitive"} {
		t.Run(word, func(t *testing.T) {
			l := New(word)
			tok := l.NextToken()
			if tok.Type != IDENT {
				t.Errorf("NextToken(%q) type = %d, want IDENT", word, tok.Type)
			}
			if tok.Literal != word {
				t.Errorf("NextToken(%q) literal = %q, want %q", word, tok.Literal, word)
			}
		})
	}
}

// TestIllegalTokenReported confirms an unrecognized character lexes as
// ILLEGAL and is recorded as a diagnostic, not silently dropped.
func TestIllegalTokenReported(t *testing.T) {
	l := New("int x = `;")
	var sawIllegal bool
	for {
		tok := l.NextToken()
		if tok.Type == ILLEGAL {
			sawIllegal = true
		}
		if tok.Type == EOF {
			break
		}
	}
	if !sawIllegal {
		t.Fatal("expected an ILLEGAL token for the backtick")
	}
	if len(l.Errors()) == 0 {
		t.Error("expected at least one diagnostic for the illegal character")
	}
}

// TestPeekDoesNotConsume confirms Peek(n) looks ahead without advancing
// the stream NextToken itself draws from.
func TestPeekDoesNotConsume(t *testing.T) {
	l := New("a b c")
	first := l.Peek(0)
	second := l.Peek(1)
	if first.Literal != "a" || second.Literal != "b" {
		t.Fatalf("Peek(0)=%q Peek(1)=%q, want a, b", first.Literal, second.Literal)
	}
	// NextToken must still start from "a", unaffected by the peeks above.
	tok := l.NextToken()
	if tok.Literal != "a" {
		t.Fatalf("NextToken() = %q, want a", tok.Literal)
	}
}

func TestLookupIdentKeywordVsIdent(t *testing.T) {
	if LookupIdent("class") != KW_CLASS {
		t.Error(`LookupIdent("class") should be KW_CLASS`)
	}
	if LookupIdent("record") != IDENT {
		t.Error(`LookupIdent("record") should be IDENT (pseudo-keyword)`)
	}
	if LookupIdent("myVar") != IDENT {
		t.Error(`LookupIdent("myVar") should be IDENT`)
	}
}

func TestTokenIsKeyword(t *testing.T) {
	kw := NewToken(KW_PUBLIC, "public", Position{Line: 1, Column: 1})
	if !kw.IsKeyword() {
		t.Error("KW_PUBLIC token should report IsKeyword() == true")
	}
	id := NewToken(IDENT, "foo", Position{Line: 1, Column: 1})
	if id.IsKeyword() {
		t.Error("IDENT token should report IsKeyword() == false")
	}
}
