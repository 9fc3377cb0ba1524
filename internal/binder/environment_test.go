package binder

import (
	"testing"

	"github.com/arcbound/jhdrc/internal/types"
)

func TestCompoundEnvironmentPrefersTopOverBase(t *testing.T) {
	interner := types.NewInterner()
	sym := interner.Intern("com/example/Foo")

	top := mapEnvironment{sym: &BoundClass{Symbol: sym, AccessFlags: types.AccPublic}}
	base := mapEnvironment{sym: &BoundClass{Symbol: sym, AccessFlags: types.AccFinal}}

	env := CompoundEnvironment{Top: top, Base: base}
	bc, ok := env.Lookup(sym)
	if !ok {
		t.Fatal("Lookup() found = false")
	}
	if bc.AccessFlags != types.AccPublic {
		t.Errorf("AccessFlags = %v, want the Top layer's value", bc.AccessFlags)
	}
}

func TestCompoundEnvironmentFallsThroughToBase(t *testing.T) {
	interner := types.NewInterner()
	sym := interner.Intern("com/example/Foo")

	top := mapEnvironment{}
	base := mapEnvironment{sym: &BoundClass{Symbol: sym}}

	env := CompoundEnvironment{Top: top, Base: base}
	if _, ok := env.Lookup(sym); !ok {
		t.Error("Lookup() found = false, want fallthrough to Base to succeed")
	}
}

func TestCompoundEnvironmentNilBaseIsMiss(t *testing.T) {
	interner := types.NewInterner()
	sym := interner.Intern("com/example/Foo")

	env := CompoundEnvironment{Top: mapEnvironment{}, Base: nil}
	if _, ok := env.Lookup(sym); ok {
		t.Error("Lookup() found = true with an empty Top and nil Base")
	}
}

func TestChainSearchesLeftToRight(t *testing.T) {
	interner := types.NewInterner()
	sym := interner.Intern("com/example/Foo")

	first := mapEnvironment{sym: &BoundClass{Symbol: sym, AccessFlags: types.AccPublic}}
	second := mapEnvironment{sym: &BoundClass{Symbol: sym, AccessFlags: types.AccPrivate}}

	env := Chain(first, second)
	bc, ok := env.Lookup(sym)
	if !ok {
		t.Fatal("Lookup() found = false")
	}
	if bc.AccessFlags != types.AccPublic {
		t.Errorf("AccessFlags = %v, want first layer's value", bc.AccessFlags)
	}
}

func TestChainEmptyIsAlwaysMiss(t *testing.T) {
	interner := types.NewInterner()
	sym := interner.Intern("com/example/Foo")

	env := Chain()
	if _, ok := env.Lookup(sym); ok {
		t.Error("Lookup() on an empty Chain() should always miss")
	}
}
