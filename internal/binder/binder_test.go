package binder

import (
	"testing"

	"github.com/arcbound/jhdrc/internal/ast"
	"github.com/arcbound/jhdrc/internal/lexer"
	"github.com/arcbound/jhdrc/internal/parser"
	"github.com/arcbound/jhdrc/internal/types"
)

func mustParse(t *testing.T, filename, src string) *ast.CompilationUnit {
	t.Helper()
	unit, err := parser.Parse(lexer.New(src))
	if err != nil {
		t.Fatalf("parsing %s: %v", filename, err)
	}
	unit.Filename = filename
	return unit
}

func TestBindSimpleClassGetsObjectSupertype(t *testing.T) {
	interner := types.NewInterner()
	index := NewIndex()
	b := New(interner, index, nil)

	unit := mustParse(t, "Foo.java", "public class Foo {}")
	result := b.Bind([]*ast.CompilationUnit{unit})

	if result.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}
	if len(result.Order) != 1 {
		t.Fatalf("Order has %d symbols, want 1", len(result.Order))
	}

	sym := result.Order[0]
	if name := interner.Name(sym); name != "Foo" {
		t.Errorf("symbol name = %q, want Foo", name)
	}

	bc, ok := result.Final.Lookup(sym)
	if !ok {
		t.Fatal("final environment has no bound class for Foo")
	}
	if interner.Name(bc.Supertype.Symbol()) != types.ObjectBinaryName {
		t.Errorf("Supertype = %v, want java/lang/Object", bc.Supertype)
	}
}

func TestBindFieldAndMethodSignatures(t *testing.T) {
	interner := types.NewInterner()
	index := NewIndex()
	b := New(interner, index, nil)

	src := `public class Box {
		private int count;
		public int get() { return count; }
	}`
	unit := mustParse(t, "Box.java", src)
	result := b.Bind([]*ast.CompilationUnit{unit})

	if result.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}

	sym := result.Order[0]
	bc, ok := result.Final.Lookup(sym)
	if !ok {
		t.Fatal("no bound class for Box")
	}
	if len(bc.Fields) != 1 || bc.Fields[0].Symbol.Name != "count" {
		t.Fatalf("Fields = %+v", bc.Fields)
	}
	if len(bc.Methods) != 1 || bc.Methods[0].Symbol.Name != "get" {
		t.Fatalf("Methods = %+v", bc.Methods)
	}
}

func TestBindTwoClassesInOneUnit(t *testing.T) {
	interner := types.NewInterner()
	index := NewIndex()
	b := New(interner, index, nil)

	src := `class A {}
class B extends A {}`
	unit := mustParse(t, "AB.java", src)
	result := b.Bind([]*ast.CompilationUnit{unit})

	if result.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}
	if len(result.Order) != 2 {
		t.Fatalf("Order has %d symbols, want 2", len(result.Order))
	}

	var bSym types.ClassSymbol
	for _, sym := range result.Order {
		if interner.Name(sym) == "B" {
			bSym = sym
		}
	}
	if !bSym.Valid() {
		t.Fatal("B was not bound")
	}
	bc, _ := result.Final.Lookup(bSym)
	if interner.Name(bc.Supertype.Symbol()) != "A" {
		t.Errorf("B's Supertype = %v, want A", bc.Supertype)
	}
}
