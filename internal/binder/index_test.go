package binder

import (
	"testing"

	"github.com/arcbound/jhdrc/internal/types"
)

func TestIndexRegisterAndLookupTopLevel(t *testing.T) {
	interner := types.NewInterner()
	idx := NewIndex()

	sym := interner.Intern("com/example/Foo")
	idx.Register(types.PackageSymbol{Name: "com/example"}, "Foo", sym)

	got, ok := idx.LookupTopLevel(types.PackageSymbol{Name: "com/example"}, "Foo")
	if !ok {
		t.Fatal("LookupTopLevel() found = false, want true")
	}
	if got != sym {
		t.Errorf("LookupTopLevel() = %v, want %v", got, sym)
	}
}

func TestIndexLookupTopLevelMissingIsFalse(t *testing.T) {
	idx := NewIndex()
	_, ok := idx.LookupTopLevel(types.PackageSymbol{Name: "com/example"}, "Missing")
	if ok {
		t.Error("LookupTopLevel() found = true for a class never registered")
	}
}

func TestIndexClasspathLoaderRunsOncePerPackage(t *testing.T) {
	interner := types.NewInterner()
	idx := NewIndex()

	calls := 0
	bar := interner.Intern("com/example/Bar")
	idx.ClasspathLoader = func(pkg types.PackageSymbol) map[string]types.ClassSymbol {
		calls++
		return map[string]types.ClassSymbol{"Bar": bar}
	}

	got, ok := idx.LookupTopLevel(types.PackageSymbol{Name: "com/example"}, "Bar")
	if !ok || got != bar {
		t.Fatalf("LookupTopLevel() = (%v, %v), want (%v, true)", got, ok, bar)
	}

	if _, ok := idx.LookupTopLevel(types.PackageSymbol{Name: "com/example"}, "Bar"); !ok {
		t.Fatal("second LookupTopLevel() found = false")
	}
	if calls != 1 {
		t.Errorf("ClasspathLoader called %d times, want 1", calls)
	}
}

func TestIndexClasspathLoaderNeverOverridesRegistered(t *testing.T) {
	interner := types.NewInterner()
	idx := NewIndex()

	sourceSym := interner.Intern("com/example/Foo")
	classpathSym := interner.Intern("com/example/FooFromClasspath")
	idx.Register(types.PackageSymbol{Name: "com/example"}, "Foo", sourceSym)
	idx.ClasspathLoader = func(pkg types.PackageSymbol) map[string]types.ClassSymbol {
		return map[string]types.ClassSymbol{"Foo": classpathSym}
	}

	got, ok := idx.LookupTopLevel(types.PackageSymbol{Name: "com/example"}, "Foo")
	if !ok {
		t.Fatal("LookupTopLevel() found = false")
	}
	if got != sourceSym {
		t.Errorf("LookupTopLevel() = %v, want the source-registered symbol %v", got, sourceSym)
	}
}

func TestIndexResolveDottedNameSplitsPackageFromClass(t *testing.T) {
	interner := types.NewInterner()
	idx := NewIndex()

	sym := interner.Intern("com/example/Foo")
	idx.Register(types.PackageSymbol{Name: "com/example"}, "Foo", sym)

	got, rest, ok := idx.ResolveDottedName("com.example.Foo")
	if !ok {
		t.Fatal("ResolveDottedName() found = false")
	}
	if got != sym {
		t.Errorf("ResolveDottedName() symbol = %v, want %v", got, sym)
	}
	if len(rest) != 0 {
		t.Errorf("rest = %v, want empty", rest)
	}
}

func TestIndexResolveDottedNameReturnsNestedSegments(t *testing.T) {
	interner := types.NewInterner()
	idx := NewIndex()

	sym := interner.Intern("com/example/Outer")
	idx.Register(types.PackageSymbol{Name: "com/example"}, "Outer", sym)

	got, rest, ok := idx.ResolveDottedName("com.example.Outer.Inner")
	if !ok {
		t.Fatal("ResolveDottedName() found = false")
	}
	if got != sym {
		t.Errorf("ResolveDottedName() symbol = %v, want %v", got, sym)
	}
	if len(rest) != 1 || rest[0] != "Inner" {
		t.Errorf("rest = %v, want [Inner]", rest)
	}
}

func TestIndexResolveDottedNameUnknownClassIsFalse(t *testing.T) {
	idx := NewIndex()
	idx.Register(types.PackageSymbol{Name: "com/example"}, "Foo", types.ClassSymbol{})

	_, _, ok := idx.ResolveDottedName("com.example.Bar")
	if ok {
		t.Error("ResolveDottedName() found = true for an unregistered class")
	}
}
