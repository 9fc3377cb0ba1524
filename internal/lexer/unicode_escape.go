package lexer

import "strings"

// PreprocessUnicodeEscapes replaces \uXXXX sequences with their decoded
// UTF-8 bytes before tokenization, as §4.1 requires. An escape is only
// recognized after an *odd* number of backslashes (an even run means the
// backslashes themselves are escaped and \u is literal). Multiple leading
// 'u' characters are permitted ("\uuu0041"), matching the classic rule
// that \u can be repeated any number of times.
//
// Positions are not mapped back to the raw text: each replaced \uXXXX run
// collapses to a single rune in the output, and the lexer counts columns
// and offsets in the output. A diagnostic after an escape on the same
// line therefore reports a smaller column than the raw source has, and
// every offset after an escape is smaller too. Positions before the first
// escape are unaffected.
func PreprocessUnicodeEscapes(src string) string {
	if !strings.Contains(src, `\u`) {
		return src
	}

	var out strings.Builder
	out.Grow(len(src))

	runes := []rune(src)
	backslashRun := 0
	i := 0
	for i < len(runes) {
		r := runes[i]
		if r == '\\' {
			backslashRun++
			out.WriteRune(r)
			i++
			continue
		}

		if r == 'u' && backslashRun%2 == 1 {
			// Consume the backslash we already wrote for this escape, and
			// collapse any immediately preceding ones that are not part of
			// this escape (they stay literal).
			j := i
			for j < len(runes) && runes[j] == 'u' {
				j++
			}
			if j+4 <= len(runes) && isHex4(runes[j:j+4]) {
				// Remove the single backslash that introduced this escape.
				s := out.String()
				out.Reset()
				out.WriteString(s[:len(s)-1])

				val := hex4Value(runes[j : j+4])
				out.WriteRune(rune(val))
				i = j + 4
				backslashRun = 0
				continue
			}
		}

		backslashRun = 0
		out.WriteRune(r)
		i++
	}
	return out.String()
}

func isHex4(rs []rune) bool {
	for _, r := range rs {
		if !isHexRune(r) {
			return false
		}
	}
	return true
}

func isHexRune(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func hex4Value(rs []rune) int {
	v := 0
	for _, r := range rs {
		v <<= 4
		switch {
		case r >= '0' && r <= '9':
			v |= int(r - '0')
		case r >= 'a' && r <= 'f':
			v |= int(r-'a') + 10
		case r >= 'A' && r <= 'F':
			v |= int(r-'A') + 10
		}
	}
	return v
}
