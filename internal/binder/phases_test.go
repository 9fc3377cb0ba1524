package binder

import (
	"testing"

	"github.com/arcbound/jhdrc/internal/ast"
	"github.com/arcbound/jhdrc/internal/errors"
	"github.com/arcbound/jhdrc/internal/types"
)

func TestSealedExplicitPermitsValidates(t *testing.T) {
	interner := types.NewInterner()
	src := `sealed class Shape permits Circle {}
final class Circle extends Shape {}`
	unit := mustParse(t, "Shape.java", src)
	b := New(interner, NewIndex(), nil)
	result := b.Bind([]*ast.CompilationUnit{unit})

	if result.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}
}

func TestSealedInferredPermitsFromSameFile(t *testing.T) {
	interner := types.NewInterner()
	src := `sealed class Shape {}
final class Circle extends Shape {}
final class Square extends Shape {}`
	unit := mustParse(t, "Shape.java", src)
	b := New(interner, NewIndex(), nil)
	result := b.Bind([]*ast.CompilationUnit{unit})

	if result.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}

	var shapeSym types.ClassSymbol
	for _, sym := range result.Order {
		if interner.Name(sym) == "Shape" {
			shapeSym = sym
		}
	}
	bc, ok := result.Final.Lookup(shapeSym)
	if !ok {
		t.Fatal("no bound class for Shape")
	}
	if len(bc.Permitted) != 2 {
		t.Fatalf("Permitted = %+v, want 2 inferred subtypes", bc.Permitted)
	}
}

func TestSealedWithNoPermitsReportsError(t *testing.T) {
	interner := types.NewInterner()
	unit := mustParse(t, "Shape.java", `sealed class Shape {}`)
	b := New(interner, NewIndex(), nil)
	result := b.Bind([]*ast.CompilationUnit{unit})

	if !result.Diagnostics.HasErrors() {
		t.Fatal("expected a diagnostic for a sealed type with no permitted subclasses")
	}
	found := false
	for _, d := range result.Diagnostics {
		if d.Kind == errors.BadSealedPermits {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics = %+v, want a BadSealedPermits entry", result.Diagnostics)
	}
}

func TestSealedPermittedSubtypeMustBeConstrained(t *testing.T) {
	interner := types.NewInterner()
	src := `sealed class Shape permits Circle {}
class Circle extends Shape {}`
	unit := mustParse(t, "Shape.java", src)
	b := New(interner, NewIndex(), nil)
	result := b.Bind([]*ast.CompilationUnit{unit})

	if !result.Diagnostics.HasErrors() {
		t.Fatal("expected a diagnostic for an unconstrained permitted subtype")
	}
	found := false
	for _, d := range result.Diagnostics {
		if d.Kind == errors.NonSealedRequiresSealed {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics = %+v, want a NonSealedRequiresSealed entry", result.Diagnostics)
	}
}

func TestRecordSynthesizesCanonicalConstructorAndAccessors(t *testing.T) {
	interner := types.NewInterner()
	unit := mustParse(t, "Point.java", `record Point(int x, int y) {}`)
	b := New(interner, NewIndex(), nil)
	result := b.Bind([]*ast.CompilationUnit{unit})

	if result.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}

	sym := result.Order[0]
	bc, _ := result.Final.Lookup(sym)
	if len(bc.RecordComps) != 2 {
		t.Fatalf("RecordComps = %+v, want 2", bc.RecordComps)
	}

	var hasCtor, hasX, hasY bool
	for _, m := range bc.Methods {
		if m.IsConstructor {
			hasCtor = true
		}
		if m.Symbol.Name == "x" {
			hasX = true
		}
		if m.Symbol.Name == "y" {
			hasY = true
		}
	}
	if !hasCtor {
		t.Error("expected a synthesized canonical constructor")
	}
	if !hasX || !hasY {
		t.Errorf("expected synthesized accessors x() and y(), Methods = %+v", bc.Methods)
	}
}

func TestEnumSynthesizesValuesAndValueOf(t *testing.T) {
	interner := types.NewInterner()
	unit := mustParse(t, "Color.java", `enum Color { RED, GREEN, BLUE }`)
	b := New(interner, NewIndex(), nil)
	result := b.Bind([]*ast.CompilationUnit{unit})

	if result.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}

	sym := result.Order[0]
	bc, _ := result.Final.Lookup(sym)

	var hasValues, hasValueOf bool
	for _, m := range bc.Methods {
		switch m.Symbol.Name {
		case "values":
			hasValues = true
		case "valueOf":
			hasValueOf = true
		}
	}
	if !hasValues || !hasValueOf {
		t.Errorf("expected synthesized values()/valueOf(), Methods = %+v", bc.Methods)
	}

	var hasConstantFields int
	for _, f := range bc.Fields {
		if f.AccessFlags.Has(types.AccEnum) {
			hasConstantFields++
		}
	}
	if hasConstantFields != 3 {
		t.Errorf("got %d enum constant fields, want 3", hasConstantFields)
	}
}

func TestConstantEvalFoldsFieldReference(t *testing.T) {
	interner := types.NewInterner()
	src := `class Constants {
		static final int BASE = 10;
		static final int DOUBLE_BASE = BASE * 2;
	}`
	unit := mustParse(t, "Constants.java", src)
	b := New(interner, NewIndex(), nil)
	result := b.Bind([]*ast.CompilationUnit{unit})

	if result.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}

	sym := result.Order[0]
	bc, _ := result.Final.Lookup(sym)

	var doubleBase *BoundField
	for i := range bc.Fields {
		if bc.Fields[i].Symbol.Name == "DOUBLE_BASE" {
			doubleBase = &bc.Fields[i]
		}
	}
	if doubleBase == nil {
		t.Fatal("DOUBLE_BASE field not found")
	}
	iv, ok := doubleBase.Constant.(types.IntConst)
	if !ok {
		t.Fatalf("Constant = %#v, want types.IntConst", doubleBase.Constant)
	}
	if iv != 20 {
		t.Errorf("folded constant = %d, want 20", iv)
	}
}

func TestConstantEvalDetectsCycle(t *testing.T) {
	interner := types.NewInterner()
	src := `class Constants {
		static final int A = B;
		static final int B = A;
	}`
	unit := mustParse(t, "Constants.java", src)
	b := New(interner, NewIndex(), nil)
	result := b.Bind([]*ast.CompilationUnit{unit})

	found := false
	for _, d := range result.Diagnostics {
		if d.Kind == errors.CyclicConstant {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics = %+v, want a CyclicConstant entry", result.Diagnostics)
	}
}
