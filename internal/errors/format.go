package errors

import (
	"fmt"
	"strings"
)

// Format renders a single diagnostic the way javac-family tools do: a
// "file:line:column: severity: message" header followed by the offending
// source line and a caret under the column. src may be empty (e.g. when
// formatting a classpath-derived diagnostic with no text source), in
// which case only the header line is produced.
func Format(d Diagnostic, src string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d:%d: %s: %s\n", d.File, d.Pos.Line, d.Pos.Column, d.Severity, d.Message)
	if src == "" {
		return b.String()
	}
	lines := strings.Split(src, "\n")
	if d.Pos.Line < 1 || d.Pos.Line > len(lines) {
		return b.String()
	}
	line := lines[d.Pos.Line-1]
	b.WriteString(line)
	b.WriteByte('\n')
	col := d.Pos.Column
	if col < 1 {
		col = 1
	}
	b.WriteString(strings.Repeat(" ", col-1))
	b.WriteByte('^')
	b.WriteByte('\n')
	return b.String()
}

// FormatAll renders every diagnostic in l, sorted, separated by blank
// lines. sources maps a diagnostic's File to its full text; a missing
// entry degrades gracefully to the header-only form.
func FormatAll(l List, sources map[string]string) string {
	sorted := make(List, len(l))
	copy(sorted, l)
	sorted.Sort()

	var b strings.Builder
	for i, d := range sorted {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(Format(d, sources[d.File]))
	}
	return b.String()
}
