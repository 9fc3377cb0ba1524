package parser

import (
	"testing"

	"github.com/arcbound/jhdrc/internal/ast"
	"github.com/arcbound/jhdrc/internal/lexer"
	"github.com/arcbound/jhdrc/internal/types"
)

func TestPackageAndImports(t *testing.T) {
	unit, err := Parse(lexer.New(`package com.example;
import java.util.List;
import static java.util.Collections.emptyList;

class Foo {}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if unit.Package == nil || unit.Package.Name != "com.example" {
		t.Fatalf("Package = %+v", unit.Package)
	}
	if len(unit.Imports) != 2 {
		t.Fatalf("got %d imports, want 2", len(unit.Imports))
	}
}

func TestSimpleClassDecl(t *testing.T) {
	unit, err := Parse(lexer.New("public class Foo {}"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(unit.Types) != 1 {
		t.Fatalf("got %d types, want 1", len(unit.Types))
	}
	td := unit.Types[0]
	if td.Name != "Foo" {
		t.Errorf("Name = %q, want Foo", td.Name)
	}
	if td.Kind != types.KindClass {
		t.Errorf("Kind = %v, want KindClass", td.Kind)
	}
	if !td.Modifiers.Has(types.AccPublic) {
		t.Error("expected AccPublic on Foo")
	}
}

func TestClassExtendsAndImplements(t *testing.T) {
	unit, err := Parse(lexer.New("class Foo extends Bar implements Baz, Qux {}"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	td := unit.Types[0]
	if td.Extends == nil || td.Extends.String() != "Bar" {
		t.Errorf("Extends = %v, want Bar", td.Extends)
	}
	if len(td.Implements) != 2 {
		t.Fatalf("got %d implements, want 2", len(td.Implements))
	}
}

func TestInterfaceDecl(t *testing.T) {
	unit, err := Parse(lexer.New("public interface Shape { int area(); }"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	td := unit.Types[0]
	if td.Kind != types.KindInterface {
		t.Errorf("Kind = %v, want KindInterface", td.Kind)
	}
	if len(td.Methods) != 1 || td.Methods[0].Name != "area" {
		t.Fatalf("Methods = %+v", td.Methods)
	}
	if td.Methods[0].HasBody {
		t.Error("interface method should have HasBody == false")
	}
}

func TestEnumDecl(t *testing.T) {
	unit, err := Parse(lexer.New(`enum Color { RED, GREEN, BLUE }`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	td := unit.Types[0]
	if td.Kind != types.KindEnum {
		t.Errorf("Kind = %v, want KindEnum", td.Kind)
	}
	if len(td.EnumConstants) != 3 {
		t.Fatalf("got %d enum constants, want 3", len(td.EnumConstants))
	}
	if td.EnumConstants[0].Name != "RED" || td.EnumConstants[0].Ordinal != 0 {
		t.Errorf("first constant = %+v", td.EnumConstants[0])
	}
	if td.EnumConstants[2].Ordinal != 2 {
		t.Errorf("third constant ordinal = %d, want 2", td.EnumConstants[2].Ordinal)
	}
}

func TestRecordDecl(t *testing.T) {
	unit, err := Parse(lexer.New(`record Point(int x, int y) {}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	td := unit.Types[0]
	if td.Kind != types.KindRecord {
		t.Errorf("Kind = %v, want KindRecord", td.Kind)
	}
	if len(td.RecordComponents) != 2 {
		t.Fatalf("got %d record components, want 2", len(td.RecordComponents))
	}
	if td.RecordComponents[0].Name != "x" || td.RecordComponents[1].Name != "y" {
		t.Errorf("RecordComponents = %+v", td.RecordComponents)
	}
}

func TestAnnotationTypeDecl(t *testing.T) {
	unit, err := Parse(lexer.New(`@interface Marker { String value() default ""; }`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	td := unit.Types[0]
	if td.Kind != types.KindAnnotation {
		t.Errorf("Kind = %v, want KindAnnotation", td.Kind)
	}
	if len(td.Methods) != 1 || td.Methods[0].AnnotationDefault == nil {
		t.Fatalf("Methods = %+v", td.Methods)
	}
}

func TestGenericClassTypeParams(t *testing.T) {
	unit, err := Parse(lexer.New(`class Box<T extends Comparable<T>> {}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	td := unit.Types[0]
	if len(td.TypeParams) != 1 || td.TypeParams[0].Name != "T" {
		t.Fatalf("TypeParams = %+v", td.TypeParams)
	}
	if len(td.TypeParams[0].Bounds) != 1 {
		t.Fatalf("Bounds = %+v", td.TypeParams[0].Bounds)
	}
}

func TestSealedClassWithPermits(t *testing.T) {
	unit, err := Parse(lexer.New(`sealed class Shape permits Circle, Square {}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	td := unit.Types[0]
	if !td.Sealed {
		t.Error("expected Sealed == true")
	}
	if len(td.Permits) != 2 {
		t.Fatalf("Permits = %+v", td.Permits)
	}
}

func TestFieldWithInitializer(t *testing.T) {
	unit, err := Parse(lexer.New(`class Foo { private static final int MAX = 100; }`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	td := unit.Types[0]
	if len(td.Fields) != 1 {
		t.Fatalf("Fields = %+v", td.Fields)
	}
	f := td.Fields[0]
	if f.Name != "MAX" || f.Initializer == nil {
		t.Fatalf("field = %+v", f)
	}
	if !f.Modifiers.Has(types.AccStatic) || !f.Modifiers.Has(types.AccFinal) {
		t.Errorf("Modifiers = %+v", f.Modifiers)
	}
}

func TestMultiDeclaratorFieldSplitsIntoTwoFields(t *testing.T) {
	unit, err := Parse(lexer.New(`class Foo { int a, b; }`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	td := unit.Types[0]
	if len(td.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(td.Fields))
	}
	if td.Fields[0].Name != "a" || td.Fields[1].Name != "b" {
		t.Errorf("Fields = %+v", td.Fields)
	}
}

func TestMethodWithParamsAndThrows(t *testing.T) {
	unit, err := Parse(lexer.New(`class Foo { public void write(String s, int n) throws java.io.IOException { return; } }`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	td := unit.Types[0]
	m := td.Methods[0]
	if len(m.Params) != 2 || m.Params[0].Name != "s" || m.Params[1].Name != "n" {
		t.Fatalf("Params = %+v", m.Params)
	}
	if len(m.Throws) != 1 {
		t.Fatalf("Throws = %+v", m.Throws)
	}
	if !m.HasBody {
		t.Error("expected HasBody == true")
	}
}

func TestVarargsParam(t *testing.T) {
	unit, err := Parse(lexer.New(`class Foo { void sum(int... nums) {} }`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	m := unit.Types[0].Methods[0]
	if len(m.Params) != 1 || !m.Params[0].Varargs {
		t.Fatalf("Params = %+v", m.Params)
	}
}

func TestArrayTypeField(t *testing.T) {
	unit, err := Parse(lexer.New(`class Foo { int[] values; }`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	f := unit.Types[0].Fields[0]
	if f.Type.String() != "int[]" {
		t.Errorf("Type.String() = %q, want int[]", f.Type.String())
	}
}

func TestArrayTypeFieldWithPerDimensionAnnotations(t *testing.T) {
	unit, err := Parse(lexer.New(`class Foo { @T int @U [] @V [] x; }`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	f := unit.Types[0].Fields[0]
	if f.Type.String() != "int[][]" {
		t.Fatalf("Type.String() = %q, want int[][]", f.Type.String())
	}

	// Per JLS 9.7.4, the leftmost dimension's annotations (@U) apply to the
	// declared (outermost) array type, and each later dimension's (@V)
	// apply one level further toward the element type.
	outer, ok := f.Type.(*ast.ArrayTypeRef)
	if !ok {
		t.Fatalf("Type = %T, want *ast.ArrayTypeRef", f.Type)
	}
	if len(outer.Annotations) != 1 || outer.Annotations[0].Type.String() != "U" {
		t.Fatalf("outer dimension Annotations = %+v, want [@U]", outer.Annotations)
	}

	inner, ok := outer.Element.(*ast.ArrayTypeRef)
	if !ok {
		t.Fatalf("outer.Element = %T, want *ast.ArrayTypeRef", outer.Element)
	}
	if len(inner.Annotations) != 1 || inner.Annotations[0].Type.String() != "V" {
		t.Fatalf("inner dimension Annotations = %+v, want [@V]", inner.Annotations)
	}

	prim, ok := inner.Element.(*ast.PrimitiveTypeRef)
	if !ok {
		t.Fatalf("inner.Element = %T, want *ast.PrimitiveTypeRef", inner.Element)
	}
	// @T precedes the type, so the parser collects it as a modifier-position
	// annotation; the binder's phase 6 later moves it onto the int element.
	if len(f.Modifiers.Annotations) != 1 || f.Modifiers.Annotations[0].Type.String() != "T" {
		t.Fatalf("Modifiers.Annotations = %+v, want [@T]", f.Modifiers.Annotations)
	}
	if len(prim.Annotations) != 0 {
		t.Fatalf("base type Annotations = %+v, want none", prim.Annotations)
	}
}

func TestNestedTypeDecl(t *testing.T) {
	unit, err := Parse(lexer.New(`class Outer { static class Inner {} }`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	td := unit.Types[0]
	if len(td.NestedTypes) != 1 || td.NestedTypes[0].Name != "Inner" {
		t.Fatalf("NestedTypes = %+v", td.NestedTypes)
	}
}

func TestAnnotationOnClass(t *testing.T) {
	unit, err := Parse(lexer.New(`@Deprecated class Foo {}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(unit.Types[0].Modifiers.Annotations) != 1 {
		t.Fatalf("Annotations = %+v", unit.Types[0].Modifiers.Annotations)
	}
}

func TestPseudoKeywordsAsIdentifiersDoNotBreakParsing(t *testing.T) {
	unit, err := Parse(lexer.New(`class Foo { int record; int sealed; }`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(unit.Types[0].Fields) != 2 {
		t.Fatalf("Fields = %+v", unit.Types[0].Fields)
	}
}

func TestSyntaxErrorReportsPosition(t *testing.T) {
	_, err := Parse(lexer.New("class Foo { int ; }"))
	if err == nil {
		t.Fatal("expected a syntax error for a field with no name")
	}
	se, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("error type = %T, want *SyntaxError", err)
	}
	if se.Pos.Line == 0 {
		t.Error("SyntaxError.Pos.Line should be set")
	}
}

func TestModuleInfoDecl(t *testing.T) {
	unit, err := Parse(lexer.New(`module com.example.app {
		requires java.base;
		exports com.example.app.api;
	}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if unit.Module == nil {
		t.Fatal("expected a non-nil Module")
	}
}
