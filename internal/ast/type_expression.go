package ast

import (
	"strings"

	"github.com/arcbound/jhdrc/internal/lexer"
)

// TypeRef is any unresolved type expression as written in source: a
// primitive keyword, a (possibly generic, possibly array) class name, a
// type variable reference, or a wildcard. The binder resolves a TypeRef
// against an environment to produce a types.Type; TypeRef itself carries
// no symbol, only syntax.
type TypeRef interface {
	Node
	typeRefNode()
}

// PrimitiveTypeRef is one of the eight primitive keywords or `void`.
type PrimitiveTypeRef struct {
	Token       lexer.Token
	Name        string // "int", "boolean", "void", ...
	Annotations []*AnnotationExpr
}

func (t *PrimitiveTypeRef) typeRefNode()           {}
func (t *PrimitiveTypeRef) TokenLiteral() string   { return t.Token.Literal }
func (t *PrimitiveTypeRef) Pos() lexer.Position    { return t.Token.Pos }
func (t *PrimitiveTypeRef) String() string         { return t.Name }

// ClassTypeRef is a (possibly qualified, possibly generic, possibly
// nested-generic) class or interface reference, e.g. `Map<K, V>` or
// `Outer<T>.Inner<U>`. Segments holds one entry per `.`-separated part
// that carries its own type arguments; a plain `a.b.C` with no generics
// anywhere collapses to a single segment whose Name is "a.b.C".
type ClassTypeRef struct {
	Token       lexer.Token
	Segments    []ClassTypeRefSegment
	Annotations []*AnnotationExpr
}

// ClassTypeRefSegment is one `Name<Args>` step of a ClassTypeRef chain.
type ClassTypeRefSegment struct {
	Name        string
	TypeArgs    []TypeRef // element is TypeRef or *WildcardTypeRef
	Annotations []*AnnotationExpr
}

func (t *ClassTypeRef) typeRefNode()         {}
func (t *ClassTypeRef) TokenLiteral() string { return t.Token.Literal }
func (t *ClassTypeRef) Pos() lexer.Position  { return t.Token.Pos }
func (t *ClassTypeRef) String() string {
	var parts []string
	for _, seg := range t.Segments {
		s := seg.Name
		if len(seg.TypeArgs) > 0 {
			var args []string
			for _, a := range seg.TypeArgs {
				args = append(args, a.String())
			}
			s += "<" + strings.Join(args, ", ") + ">"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ".")
}

// ArrayTypeRef is `Element[]`, possibly repeated for multi-dimensional
// arrays (each dimension is its own ArrayTypeRef wrapping the next).
type ArrayTypeRef struct {
	Token       lexer.Token // the '[' token
	Element     TypeRef
	Annotations []*AnnotationExpr
}

func (t *ArrayTypeRef) typeRefNode()         {}
func (t *ArrayTypeRef) TokenLiteral() string { return t.Token.Literal }
func (t *ArrayTypeRef) Pos() lexer.Position  { return t.Token.Pos }
func (t *ArrayTypeRef) String() string       { return t.Element.String() + "[]" }

// WildcardTypeRef is `?`, `? extends T`, or `? super T` in a generic
// argument position.
type WildcardTypeRef struct {
	Token       lexer.Token
	Extends     TypeRef // nil unless an upper bound is written
	Super       TypeRef // nil unless a lower bound is written
	Annotations []*AnnotationExpr
}

func (t *WildcardTypeRef) typeRefNode()         {}
func (t *WildcardTypeRef) TokenLiteral() string { return t.Token.Literal }
func (t *WildcardTypeRef) Pos() lexer.Position  { return t.Token.Pos }
func (t *WildcardTypeRef) String() string {
	switch {
	case t.Extends != nil:
		return "? extends " + t.Extends.String()
	case t.Super != nil:
		return "? super " + t.Super.String()
	default:
		return "?"
	}
}
