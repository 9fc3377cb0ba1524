package errors

import (
	"strings"
	"testing"
)

func TestListHasErrors(t *testing.T) {
	clean := List{{Kind: UnexpectedToken, Severity: Warning}, {Kind: CannotResolve, Severity: Note}}
	if clean.HasErrors() {
		t.Error("HasErrors() = true for a list with no Error-severity entries")
	}

	dirty := append(clean, Diagnostic{Kind: CannotResolve, Severity: Error})
	if !dirty.HasErrors() {
		t.Error("HasErrors() = false for a list containing an Error-severity entry")
	}
}

func TestListSortOrdersByFileThenLineThenColumn(t *testing.T) {
	l := List{
		{File: "B.java", Pos: Position{Line: 1, Column: 1}},
		{File: "A.java", Pos: Position{Line: 2, Column: 1}},
		{File: "A.java", Pos: Position{Line: 1, Column: 5}},
		{File: "A.java", Pos: Position{Line: 1, Column: 1}},
	}
	l.Sort()

	want := []struct {
		file string
		line int
		col  int
	}{
		{"A.java", 1, 1},
		{"A.java", 1, 5},
		{"A.java", 2, 1},
		{"B.java", 1, 1},
	}
	for i, w := range want {
		if l[i].File != w.file || l[i].Pos.Line != w.line || l[i].Pos.Column != w.col {
			t.Errorf("l[%d] = %+v, want file=%s line=%d col=%d", i, l[i], w.file, w.line, w.col)
		}
	}
}

func TestFormatWithSourceRendersCaretLine(t *testing.T) {
	d := Diagnostic{
		Kind:     UnexpectedToken,
		Message:  "unexpected token",
		File:     "Foo.java",
		Pos:      Position{Line: 2, Column: 5},
		Severity: Error,
	}
	src := "class Foo {\n  int ;\n}"

	got := Format(d, src)
	lines := strings.Split(got, "\n")
	if !strings.HasPrefix(lines[0], "Foo.java:2:5: error: unexpected token") {
		t.Errorf("header line = %q", lines[0])
	}
	if lines[1] != "  int ;" {
		t.Errorf("source line = %q", lines[1])
	}
	if lines[2] != "    ^" {
		t.Errorf("caret line = %q, want caret at column 5", lines[2])
	}
}

func TestFormatWithEmptySourceIsHeaderOnly(t *testing.T) {
	d := Diagnostic{Kind: ClassFileNotFound, Message: "not found", File: "Foo.java", Pos: Position{Line: 1, Column: 1}, Severity: Error}
	got := Format(d, "")
	if strings.Count(got, "\n") != 1 {
		t.Errorf("Format() with empty src = %q, want exactly one line", got)
	}
}

func TestFormatOutOfRangeLineIsHeaderOnly(t *testing.T) {
	d := Diagnostic{Kind: ClassFileNotFound, Message: "oops", File: "Foo.java", Pos: Position{Line: 99, Column: 1}, Severity: Error}
	got := Format(d, "class Foo {}")
	if strings.Count(got, "\n") != 1 {
		t.Errorf("Format() with out-of-range line = %q, want header only", got)
	}
}

func TestFormatAllSortsAndSeparatesWithBlankLines(t *testing.T) {
	l := List{
		{File: "B.java", Pos: Position{Line: 1, Column: 1}, Severity: Error, Message: "second"},
		{File: "A.java", Pos: Position{Line: 1, Column: 1}, Severity: Error, Message: "first"},
	}
	got := FormatAll(l, map[string]string{"A.java": "class A {}", "B.java": "class B {}"})

	firstIdx := strings.Index(got, "first")
	secondIdx := strings.Index(got, "second")
	if firstIdx < 0 || secondIdx < 0 || firstIdx > secondIdx {
		t.Errorf("FormatAll() = %q, want A.java's diagnostic before B.java's", got)
	}
}

func TestFormatAllDoesNotMutateInput(t *testing.T) {
	l := List{
		{File: "B.java", Pos: Position{Line: 1, Column: 1}},
		{File: "A.java", Pos: Position{Line: 1, Column: 1}},
	}
	_ = FormatAll(l, nil)
	if l[0].File != "B.java" {
		t.Errorf("FormatAll() mutated its input list; l[0].File = %q, want B.java", l[0].File)
	}
}

func TestSeverityString(t *testing.T) {
	cases := map[Severity]string{Note: "note", Warning: "warning", Error: "error"}
	for sev, want := range cases {
		if got := sev.String(); got != want {
			t.Errorf("Severity(%d).String() = %q, want %q", sev, got, want)
		}
	}
}

func TestDefaultSeverity(t *testing.T) {
	if DefaultSeverity(ProcWarning) != Warning {
		t.Error("DefaultSeverity(ProcWarning) should be Warning")
	}
	if DefaultSeverity(ProcError) != Error {
		t.Error("DefaultSeverity(ProcError) should be Error")
	}
	if DefaultSeverity(CannotResolve) != Error {
		t.Error("DefaultSeverity(CannotResolve) should default to Error")
	}
}
