// Package lower implements the binder → class-file stage (§4.4): erasure,
// descriptor and generic-signature computation, the type-annotation
// target/path algorithm, inner-class table collection, and access-flag
// post-processing for nested classes.
package lower

import (
	"strings"

	"github.com/arcbound/jhdrc/internal/types"
)

// BoundResolver looks up the declared upper bound of a type variable
// (the binder's phase-2 hierarchy output keeps this per type-parameter,
// not on TypeVariable itself, to avoid a self-referential bound like
// `T extends Comparable<T>` requiring TypeVariable to own a cyclic Type).
type BoundResolver func(types.TypeVariableSymbol) types.Intersection

// Descriptor computes the erased field/parameter/return descriptor for t
// (JVMS §4.3.2/§4.3.3), resolving class symbols through interner and
// type-variable bounds through bounds.
//
// Erasure rules (§4.4): a type variable erases to the erasure of its
// upper bound's first component; a parameterized class erases to the
// plain class (no type arguments, but nested segments keep their own
// binary names via '$'); an array erases its element; annotations are
// dropped entirely.
func Descriptor(interner *types.Interner, bounds BoundResolver, t types.Type) string {
	switch v := t.(type) {
	case types.Primitive:
		return v.Kind.Descriptor()
	case types.VoidType:
		return "V"
	case types.Array:
		return "[" + Descriptor(interner, bounds, v.Element)
	case types.ClassType:
		return "L" + binaryNameOf(interner, v) + ";"
	case types.TypeVariable:
		return Descriptor(interner, bounds, eraseTypeVariable(interner, bounds, v))
	case types.Wildcard:
		// A bare wildcard only ever appears as a type argument, which
		// descriptors never carry (erasure drops type arguments
		// entirely); reaching here means a caller asked for the
		// descriptor of a wildcard used as if it were a value type,
		// which only happens when resolving its own bound recursively.
		if v.BoundType != nil {
			return Descriptor(interner, bounds, v.BoundType)
		}
		return "Ljava/lang/Object;"
	}
	return "Ljava/lang/Object;"
}

// binaryNameOf renders a ClassType's erased binary name: for a nested-
// generic chain (Outer<T>.Inner<U>) the binary name is just the
// innermost symbol's own interned name — the interner already encodes
// nesting via '$' at intern time — and type arguments at every level are
// dropped, per §4.4's erasure rule for parameterized classes.
func binaryNameOf(interner *types.Interner, c types.ClassType) string {
	return interner.Name(c.Path[len(c.Path)-1].Symbol)
}

// eraseTypeVariable resolves a type variable to the erasure of its upper
// bound's first component (§4.4). A type variable with no resolvable
// bound (absent from the resolver, e.g. because it is a sentinel for an
// unresolved reference) erases to java.lang.Object, matching the rule for
// an implicit `extends Object` bound.
func eraseTypeVariable(interner *types.Interner, bounds BoundResolver, v types.TypeVariable) types.Type {
	if bounds == nil {
		return types.ObjectType(interner)
	}
	bound := bounds(v.Symbol)
	if len(bound.Bounds) == 0 {
		return types.ObjectType(interner)
	}
	return bound.Bounds[0]
}

// MethodDescriptor builds `(paramDescriptors)returnDescriptor`.
func MethodDescriptor(interner *types.Interner, bounds BoundResolver, params []types.Type, ret types.Type) string {
	var b strings.Builder
	b.WriteByte('(')
	for _, p := range params {
		b.WriteString(Descriptor(interner, bounds, p))
	}
	b.WriteByte(')')
	b.WriteString(Descriptor(interner, bounds, ret))
	return b.String()
}
