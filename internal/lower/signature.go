package lower

import (
	"strings"

	"github.com/arcbound/jhdrc/internal/types"
)

// NeedsSignature reports whether t carries information beyond its erased
// descriptor: a type variable, a parameterized class anywhere in its
// nested chain, or an array/wildcard wrapping one (§4.4: "only emitted
// when it carries information beyond the descriptor").
func NeedsSignature(t types.Type) bool {
	switch v := t.(type) {
	case types.Primitive, types.VoidType:
		return false
	case types.Array:
		return NeedsSignature(v.Element)
	case types.ClassType:
		return !types.IsRaw(v)
	case types.TypeVariable:
		return true
	case types.Wildcard:
		return true
	}
	return false
}

// TypeSignature renders t in class-file signature grammar (JVMS §4.7.9.1):
// type variables as `Tname;`, class types as `Lpkg/Name<args>;` (with
// `.` separating nested segments that themselves carry type arguments),
// wildcards as `*`, `+Tbound;`, `-Tbound;`, arrays as `[...`.
func TypeSignature(interner *types.Interner, t types.Type) string {
	var b strings.Builder
	writeTypeSignature(&b, interner, t)
	return b.String()
}

func writeTypeSignature(b *strings.Builder, interner *types.Interner, t types.Type) {
	switch v := t.(type) {
	case types.Primitive:
		b.WriteString(v.Kind.Descriptor())
	case types.VoidType:
		b.WriteByte('V')
	case types.Array:
		b.WriteByte('[')
		writeTypeSignature(b, interner, v.Element)
	case types.ClassType:
		writeClassTypeSignature(b, interner, v)
	case types.TypeVariable:
		b.WriteByte('T')
		b.WriteString(v.Symbol.Name)
		b.WriteByte(';')
	case types.Wildcard:
		switch v.Bound {
		case types.BoundNone:
			b.WriteByte('*')
		case types.BoundUpper:
			b.WriteByte('+')
			writeTypeSignature(b, interner, v.BoundType)
		case types.BoundLower:
			b.WriteByte('-')
			writeTypeSignature(b, interner, v.BoundType)
		}
	}
}

func writeClassTypeSignature(b *strings.Builder, interner *types.Interner, c types.ClassType) {
	b.WriteByte('L')
	for i, seg := range c.Path {
		if i == 0 {
			b.WriteString(interner.Name(seg.Symbol))
		} else {
			b.WriteByte('.')
			b.WriteString(interner.SimpleName(seg.Symbol))
		}
		if len(seg.TypeArgs) > 0 {
			b.WriteByte('<')
			for _, arg := range seg.TypeArgs {
				writeTypeSignature(b, interner, arg)
			}
			b.WriteByte('>')
		}
	}
	b.WriteByte(';')
}

// ClassSignature renders a ClassSignature attribute body string for a
// class declaration: formal type parameters, then superclass signature,
// then each interface signature (JVMS §4.7.9.1 ClassSignature).
func ClassSignature(interner *types.Interner, typeParams []TypeParamInfo, super types.ClassType, interfaces []types.ClassType) string {
	var b strings.Builder
	writeFormalTypeParams(&b, interner, typeParams)
	writeClassTypeSignature(&b, interner, super)
	for _, i := range interfaces {
		writeClassTypeSignature(&b, interner, i)
	}
	return b.String()
}

// MethodSignature renders a MethodSignature attribute body string: formal
// type parameters, parameter types, return type, then throws clauses
// (JVMS §4.7.9.1 MethodSignature); throws entries only needed when a
// thrown type itself carries signature-worthy information.
func MethodSignature(interner *types.Interner, typeParams []TypeParamInfo, params []types.Type, ret types.Type, throws []types.Type) string {
	var b strings.Builder
	writeFormalTypeParams(&b, interner, typeParams)
	b.WriteByte('(')
	for _, p := range params {
		writeTypeSignature(&b, interner, p)
	}
	b.WriteByte(')')
	writeTypeSignature(&b, interner, ret)
	for _, th := range throws {
		b.WriteByte('^')
		writeTypeSignature(&b, interner, th)
	}
	return b.String()
}

// TypeParamInfo is the minimal shape the signature writer needs per
// type parameter: its declared name and resolved upper-bound intersection.
type TypeParamInfo struct {
	Name  string
	Bound types.Intersection
}

func writeFormalTypeParams(b *strings.Builder, interner *types.Interner, params []TypeParamInfo) {
	if len(params) == 0 {
		return
	}
	b.WriteByte('<')
	for _, p := range params {
		b.WriteString(p.Name)
		writeBounds(b, interner, p.Bound)
	}
	b.WriteByte('>')
}

// writeBounds renders a type parameter's ClassBound/InterfaceBound* per
// JVMS §4.7.9.1: ClassBound is always present, written as `:sig` (empty
// signature, i.e. a lone `:`, when the first bound is itself an
// interface — §4.4's "bound index 0 is reserved for a class bound"
// rule, surfaced here as FirstIsInterface).
func writeBounds(b *strings.Builder, interner *types.Interner, bound types.Intersection) {
	b.WriteByte(':')
	start := 0
	if !bound.FirstIsInterface && len(bound.Bounds) > 0 {
		writeTypeSignature(b, interner, bound.Bounds[0])
		start = 1
	}
	for i := start; i < len(bound.Bounds); i++ {
		b.WriteByte(':')
		writeTypeSignature(b, interner, bound.Bounds[i])
	}
}
