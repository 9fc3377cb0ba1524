package lower

import (
	"testing"

	"github.com/arcbound/jhdrc/internal/types"
)

func TestDescriptorPrimitivesAndVoid(t *testing.T) {
	interner := types.NewInterner()
	cases := []struct {
		t    types.Type
		want string
	}{
		{types.Primitive{Kind: types.Int}, "I"},
		{types.Primitive{Kind: types.Boolean}, "Z"},
		{types.Primitive{Kind: types.Long}, "J"},
		{types.VoidType{}, "V"},
	}
	for _, c := range cases {
		if got := Descriptor(interner, nil, c.t); got != c.want {
			t.Errorf("Descriptor(%#v) = %q, want %q", c.t, got, c.want)
		}
	}
}

func TestDescriptorClassAndArray(t *testing.T) {
	interner := types.NewInterner()
	sym := interner.Intern("java/lang/String")

	ct := types.NewClassType(sym)
	if got, want := Descriptor(interner, nil, ct), "Ljava/lang/String;"; got != want {
		t.Errorf("Descriptor(class) = %q, want %q", got, want)
	}

	arr := types.Array{Element: types.Primitive{Kind: types.Int}}
	if got, want := Descriptor(interner, nil, arr), "[I"; got != want {
		t.Errorf("Descriptor(array) = %q, want %q", got, want)
	}
}

func TestDescriptorTypeVariableErasesToBound(t *testing.T) {
	interner := types.NewInterner()
	tv := types.TypeVariableSymbol{Name: "T"}
	comparable := interner.Intern("java/lang/Comparable")

	bounds := func(v types.TypeVariableSymbol) types.Intersection {
		return types.Intersection{Bounds: []types.Type{types.NewClassType(comparable)}}
	}

	got := Descriptor(interner, bounds, types.TypeVariable{Symbol: tv})
	want := "Ljava/lang/Comparable;"
	if got != want {
		t.Errorf("Descriptor(type var) = %q, want %q", got, want)
	}
}

func TestDescriptorTypeVariableWithNoBoundErasesToObject(t *testing.T) {
	interner := types.NewInterner()
	tv := types.TypeVariableSymbol{Name: "T"}

	got := Descriptor(interner, nil, types.TypeVariable{Symbol: tv})
	if got != "Ljava/lang/Object;" {
		t.Errorf("Descriptor(unbounded type var) = %q, want Ljava/lang/Object;", got)
	}
}

func TestMethodDescriptorAssemblesParamsAndReturn(t *testing.T) {
	interner := types.NewInterner()
	params := []types.Type{
		types.Primitive{Kind: types.Int},
		types.NewClassType(interner.Intern("java/lang/String")),
	}
	got := MethodDescriptor(interner, nil, params, types.Primitive{Kind: types.Boolean})
	want := "(ILjava/lang/String;)Z"
	if got != want {
		t.Errorf("MethodDescriptor() = %q, want %q", got, want)
	}
}

func TestDescriptorRoundTripsThroughParseDescriptor(t *testing.T) {
	interner := types.NewInterner()
	interner.Intern("java/lang/String")

	for _, d := range []string{"I", "Z", "J", "[I", "Ljava/lang/String;", "[[Ljava/lang/String;"} {
		parsed, err := ParseDescriptor(interner, d)
		if err != nil {
			t.Fatalf("ParseDescriptor(%q) error = %v", d, err)
		}
		if got := Descriptor(interner, nil, parsed); got != d {
			t.Errorf("round trip of %q produced %q", d, got)
		}
	}
}

func TestMethodDescriptorRoundTripsThroughParseMethodDescriptor(t *testing.T) {
	interner := types.NewInterner()
	interner.Intern("java/lang/String")

	d := "(ILjava/lang/String;)Z"
	params, ret, err := ParseMethodDescriptor(interner, d)
	if err != nil {
		t.Fatalf("ParseMethodDescriptor(%q) error = %v", d, err)
	}
	if got := MethodDescriptor(interner, nil, params, ret); got != d {
		t.Errorf("round trip of %q produced %q", d, got)
	}
}
