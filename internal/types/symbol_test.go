package types

import "testing"

func TestInternerInternIsIdempotent(t *testing.T) {
	in := NewInterner()
	a := in.Intern("java/util/List")
	b := in.Intern("java/util/List")
	if a != b {
		t.Fatalf("Intern called twice on the same name returned different symbols: %v != %v", a, b)
	}
	c := in.Intern("java/util/Map")
	if a == c {
		t.Fatal("Intern returned the same symbol for two different names")
	}
}

func TestInternerLookup(t *testing.T) {
	in := NewInterner()
	sym := in.Intern("java/lang/String")
	got, ok := in.Lookup("java/lang/String")
	if !ok || got != sym {
		t.Fatalf("Lookup() = %v, %v, want %v, true", got, ok, sym)
	}
	if _, ok := in.Lookup("never/interned"); ok {
		t.Fatal("Lookup() found a name that was never interned")
	}
}

func TestInternerName(t *testing.T) {
	in := NewInterner()
	sym := in.Intern("com/example/Foo")
	if got := in.Name(sym); got != "com/example/Foo" {
		t.Errorf("Name() = %q, want com/example/Foo", got)
	}
	if got := in.Name(ClassSymbol{}); got != "" {
		t.Errorf("Name() of the zero symbol = %q, want empty", got)
	}
}

func TestInternerSimpleName(t *testing.T) {
	in := NewInterner()
	tests := []struct {
		binaryName string
		want       string
	}{
		{"com/example/Foo", "Foo"},
		{"com/example/Foo$Inner", "Inner"},
		{"Foo", "Foo"},
	}
	for _, tt := range tests {
		sym := in.Intern(tt.binaryName)
		if got := in.SimpleName(sym); got != tt.want {
			t.Errorf("SimpleName(%q) = %q, want %q", tt.binaryName, got, tt.want)
		}
	}
}

func TestInternerPackageOf(t *testing.T) {
	in := NewInterner()
	tests := []struct {
		binaryName string
		want       string
	}{
		{"com/example/Foo", "com/example"},
		{"com/example/Foo$Inner", "com/example"},
		{"Foo", ""},
	}
	for _, tt := range tests {
		sym := in.Intern(tt.binaryName)
		if got := in.PackageOf(sym).Name; got != tt.want {
			t.Errorf("PackageOf(%q) = %q, want %q", tt.binaryName, got, tt.want)
		}
	}
}

func TestInternerDescendant(t *testing.T) {
	in := NewInterner()
	owner := in.Intern("com/example/Outer")
	if got := in.Descendant(owner, "Inner"); got != "com/example/Outer$Inner" {
		t.Errorf("Descendant() = %q, want com/example/Outer$Inner", got)
	}
}

func TestClassSymbolValid(t *testing.T) {
	var zero ClassSymbol
	if zero.Valid() {
		t.Error("zero ClassSymbol should not be Valid()")
	}
	in := NewInterner()
	sym := in.Intern("Foo")
	if !sym.Valid() {
		t.Error("an interned ClassSymbol should be Valid()")
	}
}

func TestPackageSymbolBinaryName(t *testing.T) {
	unnamed := PackageSymbol{}
	if got := unnamed.BinaryName("Foo"); got != "Foo" {
		t.Errorf("BinaryName() in the unnamed package = %q, want Foo", got)
	}
	pkg := PackageSymbol{Name: "java/util"}
	if got := pkg.BinaryName("List"); got != "java/util/List" {
		t.Errorf("BinaryName() = %q, want java/util/List", got)
	}
}

func TestAccessFlagsBitOps(t *testing.T) {
	f := AccPublic.With(AccFinal)
	if !f.Has(AccPublic) || !f.Has(AccFinal) {
		t.Fatalf("With() did not set both bits: %v", f)
	}
	if f.Has(AccStatic) {
		t.Fatal("Has() reported a bit that was never set")
	}
	cleared := f.Without(AccFinal)
	if cleared.Has(AccFinal) {
		t.Fatal("Without() did not clear AccFinal")
	}
	if !cleared.Has(AccPublic) {
		t.Fatal("Without() cleared more than requested")
	}
}

func TestSourceKindString(t *testing.T) {
	tests := []struct {
		kind SourceKind
		want string
	}{
		{KindClass, "class"},
		{KindInterface, "interface"},
		{KindEnum, "enum"},
		{KindAnnotation, "annotation"},
		{KindRecord, "record"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("SourceKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
