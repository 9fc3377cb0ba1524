package errors

import "sort"

// Position mirrors lexer.Position without importing it, keeping this
// package dependency-free: a 1-based line/column plus a 0-based byte
// offset into the source file the diagnostic was raised against.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Diagnostic is one accumulated compiler message. The lexer, binder,
// lowerer, classpath and processing bridge append to a shared slice
// rather than returning early on the first problem, so a single
// invocation can report much of what is wrong with a compilation unit;
// the parser instead stops at its first syntax error.
type Diagnostic struct {
	Kind     Kind
	Message  string
	File     string
	Pos      Position
	Severity Severity
}

// List is a collection of diagnostics with the sorting and filtering
// behavior the CLI and tests need.
type List []Diagnostic

// HasErrors reports whether any diagnostic in the list is Error severity.
func (l List) HasErrors() bool {
	for _, d := range l {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Sort orders diagnostics by file, then line, then column, then the order
// they were appended (a stable sort preserves that last tiebreak).
func (l List) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		a, b := l[i], l[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Pos.Line != b.Pos.Line {
			return a.Pos.Line < b.Pos.Line
		}
		return a.Pos.Column < b.Pos.Column
	})
}
