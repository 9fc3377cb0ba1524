package lexer

import (
	"strings"

	"github.com/arcbound/jhdrc/internal/errors"
)

// scanCharLiteral reads a 'x' literal, including the escape forms in
// §4.1: \b \t \n \f \r \s \" \' \\ and octal escapes \0 through \377.
func (l *Lexer) scanCharLiteral(pos Position) Token {
	start := l.position
	l.readChar() // opening '

	if l.ch == '\'' {
		l.addErr(errors.EmptyCharacterLiteral, "empty character literal", pos)
		l.readChar()
		return NewToken(CHAR_LITERAL, l.input[start:l.position], pos)
	}

	if l.ch == '\\' {
		l.readEscape(pos)
	} else if l.ch == '\n' || l.ch == 0 {
		l.addErr(errors.UnterminatedCharacterLiteral, "unterminated character literal", pos)
		return NewToken(CHAR_LITERAL, l.input[start:l.position], pos)
	} else {
		l.readChar()
	}

	if l.ch != '\'' {
		l.addErr(errors.UnterminatedCharacterLiteral, "unterminated character literal", pos)
		return NewToken(CHAR_LITERAL, l.input[start:l.position], pos)
	}
	l.readChar() // closing '
	return NewToken(CHAR_LITERAL, l.input[start:l.position], pos)
}

// readEscape consumes one backslash escape sequence starting at l.ch=='\\'.
func (l *Lexer) readEscape(pos Position) {
	l.readChar() // '\\'
	switch l.ch {
	case 'b', 't', 'n', 'f', 'r', 's', '"', '\'', '\\':
		l.readChar()
	case '0', '1', '2', '3', '4', '5', '6', '7':
		for i := 0; i < 3 && isOctalDigit(l.ch); i++ {
			l.readChar()
		}
	default:
		l.addErr(errors.InvalidLiteral, "invalid escape sequence", pos)
		l.readChar()
	}
}

func isOctalDigit(r rune) bool { return r >= '0' && r <= '7' }

// scanStringOrTextBlock reads either a single-line "..." string literal
// (§4.1: an embedded, unescaped newline is an UnterminatedString) or, when
// the opening quote is immediately followed by two more quotes, a """
// text block. Either way Token.Literal is the raw source text; the parser
// decodes it.
func (l *Lexer) scanStringOrTextBlock(pos Position) Token {
	if l.peekChar() == '"' && l.peekCharAt(2) == '"' {
		return l.scanTextBlock(pos)
	}

	start := l.position
	l.readChar() // opening "
	for {
		switch l.ch {
		case '"':
			l.readChar()
			return NewToken(STRING_LITERAL, l.input[start:l.position], pos)
		case '\n', 0:
			l.addErr(errors.UnterminatedString, "unterminated string literal", pos)
			return NewToken(STRING_LITERAL, l.input[start:l.position], pos)
		case '\\':
			l.readEscape(pos)
		default:
			l.readChar()
		}
	}
}

func (l *Lexer) scanTextBlock(pos Position) Token {
	start := l.position
	l.readChar() // "
	l.readChar() // "
	l.readChar() // "

	// A text block's opening line must end (possibly after whitespace) in a
	// newline; content starts on the following line.
	for l.ch == ' ' || l.ch == '\t' {
		l.readChar()
	}
	if l.ch == '\n' {
		l.line++
		l.column = 0
		l.readChar()
	}

	contentStart := l.position
	for {
		if l.ch == 0 {
			l.addErr(errors.UnterminatedString, "unterminated text block", pos)
			return NewToken(TEXT_BLOCK_LITERAL, l.input[start:l.position], pos)
		}
		if l.ch == '"' && l.peekChar() == '"' && l.peekCharAt(2) == '"' {
			raw := l.input[contentStart:l.position]
			l.readChar()
			l.readChar()
			l.readChar()
			text := l.input[start:l.position]
			_ = stripTextBlockIndent(raw)
			return NewToken(TEXT_BLOCK_LITERAL, text, pos)
		}
		if l.ch == '\n' {
			l.line++
			l.column = 0
		}
		l.readChar()
	}
}

// stripTextBlockIndent computes the de-indented content of a text block
// per the common-leading-whitespace rule: the minimum indentation among
// all non-blank lines of raw is removed from every line (a whitespace-only
// closing-delimiter line counts as blank here). scanTextBlock discards the
// result: Token.Literal always carries the untouched source text for
// diagnostics, and the parser derives the decoded string from it.
func stripTextBlockIndent(raw string) string {
	lines := strings.Split(raw, "\n")
	minIndent := -1
	for _, ln := range lines {
		trimmed := strings.TrimRight(ln, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(ln) - len(strings.TrimLeft(ln, " \t"))
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent < 0 {
		minIndent = 0
	}
	out := make([]string, len(lines))
	for i, ln := range lines {
		stripped := ln
		if len(stripped) >= minIndent {
			stripped = stripped[minIndent:]
		}
		out[i] = strings.TrimRight(stripped, " \t")
	}
	return strings.Join(out, "\n")
}
