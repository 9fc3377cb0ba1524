package lexer

import (
	"strconv"
	"strings"

	"github.com/arcbound/jhdrc/internal/errors"
)

// scanNumber reads an integer or floating-point literal per §4.1: hex
// (0x), binary (0b), octal (leading 0 then digit/underscore), or decimal,
// with '_' as a digit separator; suffixes l/L, f/F, d/D set the token
// kind; hexadecimal floating-point literals are not recognised (a hex
// literal ends at the first '.' or p/P);
// overflow in decimal int/long literals is reported as InvalidLiteral.
func (l *Lexer) scanNumber(pos Position) Token {
	start := l.position

	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		return l.scanRadixLiteral(pos, start, 16, isHexDigit)
	}
	if l.ch == '0' && (l.peekChar() == 'b' || l.peekChar() == 'B') {
		return l.scanRadixLiteral(pos, start, 2, func(r rune) bool { return r == '0' || r == '1' })
	}
	if l.ch == '0' && isOctalStart(l.peekChar()) {
		return l.scanOctalLiteral(pos, start)
	}
	return l.scanDecimalOrFloat(pos, start)
}

func isOctalStart(r rune) bool { return (r >= '0' && r <= '7') || r == '_' }

func (l *Lexer) scanRadixLiteral(pos Position, start int, radix int, digit func(rune) bool) Token {
	l.readChar() // 0
	l.readChar() // x/b
	digitsStart := l.position
	for digit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	if l.position == digitsStart {
		l.addErr(errors.InvalidLiteral, "radix literal requires at least one digit", pos)
	}
	return l.finishIntegerLiteral(pos, start, radix, digitsStart)
}

func (l *Lexer) scanOctalLiteral(pos Position, start int) Token {
	digitsStart := l.position
	for isOctalStart(l.ch) {
		l.readChar()
	}
	return l.finishIntegerLiteral(pos, start, 8, digitsStart)
}

// finishIntegerLiteral applies the L/l suffix and overflow check, then
// returns the literal token (raw source text preserved, including any
// radix prefix and underscores, in Literal; overflow already reported).
func (l *Lexer) finishIntegerLiteral(pos Position, start, radix, digitsStart int) Token {
	isLong := false
	if l.ch == 'l' || l.ch == 'L' {
		isLong = true
		l.readChar()
	}
	text := l.input[start:l.position]
	digits := strings.ReplaceAll(l.input[digitsStart:func() int {
		if isLong {
			return l.position - 1
		}
		return l.position
	}()], "_", "")

	bitSize := 32
	tt := INT_LITERAL
	if isLong {
		bitSize = 64
		tt = LONG_LITERAL
	}
	if digits != "" {
		if _, err := strconv.ParseUint(digits, radix, bitSize); err != nil {
			// Two's-complement min values (e.g. 0x80000000) are legal; only
			// report genuine overflow.
			if !isTwosComplementBoundary(digits, radix, bitSize) {
				l.addErr(errors.InvalidLiteral, "integer literal out of range: "+text, pos)
			}
		}
	}
	return NewToken(tt, text, pos)
}

func isTwosComplementBoundary(digits string, radix, bitSize int) bool {
	v, err := strconv.ParseUint(digits, radix, bitSize+1)
	if err != nil {
		return false
	}
	if bitSize == 32 {
		return v == 1<<31
	}
	return v == 1<<63
}

func (l *Lexer) scanDecimalOrFloat(pos Position, start int) Token {
	for isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}

	isFloat := false
	if l.ch == '.' && (isDigit(l.peekChar()) || !isJavaLetter(l.peekChar())) {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		isFloat = true
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
	}

	digitsText := l.input[start:l.position]

	switch l.ch {
	case 'f', 'F':
		l.readChar()
		return NewToken(FLOAT_LITERAL, l.input[start:l.position], pos)
	case 'd', 'D':
		l.readChar()
		return NewToken(DOUBLE_LITERAL, l.input[start:l.position], pos)
	case 'l', 'L':
		l.readChar()
		text := l.input[start:l.position]
		l.checkDecimalOverflow(digitsText, 64, pos, text)
		return NewToken(LONG_LITERAL, text, pos)
	}

	if isFloat {
		return NewToken(DOUBLE_LITERAL, digitsText, pos)
	}
	l.checkDecimalOverflow(digitsText, 32, pos, digitsText)
	return NewToken(INT_LITERAL, digitsText, pos)
}

func (l *Lexer) checkDecimalOverflow(digits string, bitSize int, pos Position, text string) {
	clean := strings.ReplaceAll(strings.TrimSuffix(strings.TrimSuffix(digits, "L"), "l"), "_", "")
	if clean == "" {
		return
	}
	if _, err := strconv.ParseInt(clean, 10, bitSize); err != nil {
		if !(bitSize == 32 && clean == "2147483648") && !(bitSize == 64 && clean == "9223372036854775808") {
			l.addErr(errors.InvalidLiteral, "integer literal out of range: "+text, pos)
		}
	}
}
