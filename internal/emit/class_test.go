package emit

import (
	"bytes"
	"testing"

	"github.com/arcbound/jhdrc/internal/ast"
	"github.com/arcbound/jhdrc/internal/binder"
	"github.com/arcbound/jhdrc/internal/classfile"
	"github.com/arcbound/jhdrc/internal/lexer"
	"github.com/arcbound/jhdrc/internal/parser"
	"github.com/arcbound/jhdrc/internal/types"
)

func bindSource(t *testing.T, src string) (*types.Interner, binder.BindResult) {
	t.Helper()
	interner := types.NewInterner()
	unit, err := parser.Parse(lexer.New(src))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	b := binder.New(interner, binder.NewIndex(), nil)
	result := b.Bind([]*ast.CompilationUnit{unit})
	if result.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}
	return interner, result
}

func TestEmitClassWritesAndReadsBack(t *testing.T) {
	interner, result := bindSource(t, `public class Box {
		private int count;
		public int get() { return count; }
	}`)

	e := New(interner, result)
	classFiles := e.Classes()
	if len(classFiles) != 1 {
		t.Fatalf("got %d class files, want 1", len(classFiles))
	}
	cf := classFiles[0]

	var buf bytes.Buffer
	if err := classfile.Write(&buf, cf.Pool, cf.Class); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	parsed, err := classfile.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if parsed.ThisClass != "Box" {
		t.Errorf("ThisClass = %q, want Box", parsed.ThisClass)
	}
	if parsed.SuperClass != types.ObjectBinaryName {
		t.Errorf("SuperClass = %q, want %q", parsed.SuperClass, types.ObjectBinaryName)
	}
	if len(parsed.Fields) != 1 || parsed.Fields[0].Name != "count" || parsed.Fields[0].Descriptor != "I" {
		t.Fatalf("Fields = %+v", parsed.Fields)
	}
	if len(parsed.Methods) != 1 || parsed.Methods[0].Name != "get" || parsed.Methods[0].Descriptor != "()I" {
		t.Fatalf("Methods = %+v", parsed.Methods)
	}
}

func TestEmitSkipsUnknownSymbol(t *testing.T) {
	interner, result := bindSource(t, "class Foo {}")
	e := New(interner, result)

	bogus := interner.Intern("not/in/the/result")
	if _, ok := e.EmitSymbol(bogus); ok {
		t.Error("EmitSymbol() should report false for a symbol outside the bind result")
	}
}

func TestEmitPreservesSourceOrder(t *testing.T) {
	interner, result := bindSource(t, "class First {}\nclass Second {}\nclass Third {}")
	e := New(interner, result)
	classFiles := e.Classes()
	if len(classFiles) != 3 {
		t.Fatalf("got %d class files, want 3", len(classFiles))
	}
	want := []string{"First", "Second", "Third"}
	for i, cf := range classFiles {
		if cf.Class.ThisClass != want[i] {
			t.Errorf("classFiles[%d].ThisClass = %q, want %q", i, cf.Class.ThisClass, want[i])
		}
	}
}
