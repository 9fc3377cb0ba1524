package lower

import (
	"testing"

	"github.com/arcbound/jhdrc/internal/types"
)

func TestNeedsSignature(t *testing.T) {
	interner := types.NewInterner()
	raw := types.NewClassType(interner.Intern("java/lang/String"))
	parameterized := raw
	parameterized.Path[0].TypeArgs = []types.Type{types.NewClassType(interner.Intern("java/lang/Object"))}

	cases := []struct {
		name string
		t    types.Type
		want bool
	}{
		{"primitive", types.Primitive{Kind: types.Int}, false},
		{"void", types.VoidType{}, false},
		{"raw class", raw, false},
		{"parameterized class", parameterized, true},
		{"array of raw class", types.Array{Element: raw}, false},
		{"array of parameterized class", types.Array{Element: parameterized}, true},
		{"type variable", types.TypeVariable{Symbol: types.TypeVariableSymbol{Name: "T"}}, true},
		{"wildcard", types.Wildcard{}, true},
	}
	for _, c := range cases {
		if got := NeedsSignature(c.t); got != c.want {
			t.Errorf("NeedsSignature(%s) = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestTypeSignatureRoundTripsThroughParseTypeSignature(t *testing.T) {
	interner := types.NewInterner()
	listSym := interner.Intern("java/lang/Iterable")
	stringType := types.NewClassType(interner.Intern("java/lang/String"))

	parameterized := types.NewClassType(listSym)
	parameterized.Path[0].TypeArgs = []types.Type{stringType}

	sig := TypeSignature(interner, parameterized)
	if sig != "Ljava/lang/Iterable<Ljava/lang/String;>;" {
		t.Fatalf("TypeSignature() = %q", sig)
	}

	parsed, err := ParseTypeSignature(interner, nil, sig)
	if err != nil {
		t.Fatalf("ParseTypeSignature() error = %v", err)
	}
	ct, ok := parsed.(types.ClassType)
	if !ok {
		t.Fatalf("parsed = %#v, want types.ClassType", parsed)
	}
	if ct.Symbol() != listSym {
		t.Errorf("parsed symbol = %v, want %v", ct.Symbol(), listSym)
	}
	if len(ct.Path[0].TypeArgs) != 1 {
		t.Fatalf("parsed TypeArgs = %+v, want 1", ct.Path[0].TypeArgs)
	}
}

func TestTypeSignatureTypeVariableRoundTrips(t *testing.T) {
	interner := types.NewInterner()
	sig := TypeSignature(interner, types.TypeVariable{Symbol: types.TypeVariableSymbol{Name: "T"}})
	if sig != "TT;" {
		t.Fatalf("TypeSignature(type var) = %q, want TT;", sig)
	}

	scope := []ParsedTypeParam{{Symbol: types.TypeVariableSymbol{Name: "T"}}}
	parsed, err := ParseTypeSignature(interner, scope, sig)
	if err != nil {
		t.Fatalf("ParseTypeSignature() error = %v", err)
	}
	tv, ok := parsed.(types.TypeVariable)
	if !ok || tv.Symbol.Name != "T" {
		t.Fatalf("parsed = %#v, want TypeVariable named T", parsed)
	}
}

func TestClassSignatureRoundTripsThroughParseClassSignature(t *testing.T) {
	interner := types.NewInterner()
	self := interner.Intern("com/example/Box")
	objectType := types.ObjectType(interner)
	comparable := interner.Intern("java/lang/Comparable")

	typeParams := []TypeParamInfo{
		{Name: "T", Bound: types.Intersection{Bounds: []types.Type{objectType}}},
	}
	sig := ClassSignature(interner, typeParams, objectType, []types.ClassType{types.NewClassType(comparable)})

	parsed, err := ParseClassSignature(interner, self, nil, sig)
	if err != nil {
		t.Fatalf("ParseClassSignature() error = %v", err)
	}
	if len(parsed.TypeParams) != 1 || parsed.TypeParams[0].Symbol.Name != "T" {
		t.Fatalf("TypeParams = %+v", parsed.TypeParams)
	}
	if parsed.Super.Symbol() != objectType.Symbol() {
		t.Errorf("Super = %v, want java/lang/Object", parsed.Super)
	}
	if len(parsed.Interfaces) != 1 || parsed.Interfaces[0].Symbol() != comparable {
		t.Fatalf("Interfaces = %+v", parsed.Interfaces)
	}
}

func TestMethodSignatureRoundTripsThroughParseMethodSignature(t *testing.T) {
	interner := types.NewInterner()
	owner := types.MethodSymbol{Owner: interner.Intern("com/example/Box"), Name: "get"}
	stringType := types.NewClassType(interner.Intern("java/lang/String"))
	exceptionType := types.NewClassType(interner.Intern("java/io/IOException"))

	sig := MethodSignature(interner, nil, []types.Type{stringType}, stringType, []types.Type{exceptionType})

	parsed, err := ParseMethodSignature(interner, owner, nil, sig)
	if err != nil {
		t.Fatalf("ParseMethodSignature() error = %v", err)
	}
	if len(parsed.Params) != 1 {
		t.Fatalf("Params = %+v", parsed.Params)
	}
	retCT, ok := parsed.Return.(types.ClassType)
	if !ok || retCT.Symbol() != stringType.Symbol() {
		t.Fatalf("Return = %#v", parsed.Return)
	}
	if len(parsed.Throws) != 1 {
		t.Fatalf("Throws = %+v", parsed.Throws)
	}
}

func TestWriteBoundsFirstIsInterfaceOmitsClassBound(t *testing.T) {
	interner := types.NewInterner()
	comparable := interner.Intern("java/lang/Comparable")
	typeParams := []TypeParamInfo{
		{Name: "T", Bound: types.Intersection{
			Bounds:           []types.Type{types.NewClassType(comparable)},
			FirstIsInterface: true,
		}},
	}
	sig := ClassSignature(interner, typeParams, types.ObjectType(interner), nil)
	want := "<T::Ljava/lang/Comparable;>Ljava/lang/Object;"
	if sig != want {
		t.Errorf("ClassSignature() = %q, want %q", sig, want)
	}
}
