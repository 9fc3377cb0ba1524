// Package ast defines the declaration-only AST. This file holds TypeDecl,
// the single node shape that represents a class, interface, annotation
// type, enum, or record declaration — the binder distinguishes them by
// Kind rather than by separate Go types, since every phase (header,
// hierarchy, member) needs to treat them uniformly.
package ast

import (
	"strings"

	"github.com/arcbound/jhdrc/internal/lexer"
	"github.com/arcbound/jhdrc/internal/types"
)

// TypeDecl is a class, interface, `@interface` annotation type, enum, or
// record declaration, including one nested inside another (Members may
// itself contain TypeDecls).
type TypeDecl struct {
	Token      lexer.Token
	Modifiers  Modifiers
	Kind       types.SourceKind
	Name       string
	TypeParams []TypeParameter

	Extends    TypeRef   // superclass (class) or superinterfaces (interface, via Implements unused)
	Implements []TypeRef // interfaces a class implements, or an interface's superinterfaces

	Sealed      bool
	NonSealed   bool
	Permits     []TypeRef // explicit `permits` list; empty means same-file inference applies

	RecordComponents []*RecordComponent // non-nil only for Kind == KindRecord

	Fields     []*FieldDecl
	Methods    []*MethodDecl
	NestedTypes []*TypeDecl
	EnumConstants []*EnumConstant // non-nil only for Kind == KindEnum

	Javadoc string
}

func (t *TypeDecl) declNode()           {}
func (t *TypeDecl) TokenLiteral() string { return t.Token.Literal }
func (t *TypeDecl) Pos() lexer.Position  { return t.Token.Pos }
func (t *TypeDecl) String() string {
	var b strings.Builder
	b.WriteString(t.Kind.String())
	b.WriteString(" ")
	b.WriteString(t.Name)
	if t.Extends != nil {
		b.WriteString(" extends ")
		b.WriteString(t.Extends.String())
	}
	if len(t.Implements) > 0 {
		b.WriteString(" implements ")
		for i, iface := range t.Implements {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(iface.String())
		}
	}
	return b.String()
}
