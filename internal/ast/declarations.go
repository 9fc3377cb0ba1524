package ast

import (
	"strings"

	"github.com/arcbound/jhdrc/internal/lexer"
	"github.com/arcbound/jhdrc/internal/types"
)

// Modifiers is the parsed modifier set on a declaration: the access/other
// flags the keyword modifiers map directly onto, plus any annotations
// written alongside them. Pseudo-keyword modifiers (sealed, non-sealed)
// are recorded separately on TypeDecl since they aren't AccessFlags bits.
type Modifiers struct {
	Flags       types.AccessFlags
	Annotations []*AnnotationExpr
}

func (m Modifiers) Has(f types.AccessFlags) bool { return m.Flags.Has(f) }

// TypeParameter is one `<T extends Bound1 & Bound2>` declaration, on a
// class, interface, or method.
type TypeParameter struct {
	Token   lexer.Token
	Name    string
	Bounds  []TypeRef // empty means an implicit Object bound
	TypeArg []TypeParameter
}

func (t *TypeParameter) TokenLiteral() string { return t.Token.Literal }
func (t *TypeParameter) Pos() lexer.Position  { return t.Token.Pos }
func (t *TypeParameter) String() string {
	if len(t.Bounds) == 0 {
		return t.Name
	}
	var bounds []string
	for _, b := range t.Bounds {
		bounds = append(bounds, b.String())
	}
	return t.Name + " extends " + strings.Join(bounds, " & ")
}

// FieldDecl is a single field, one per declarator in a (possibly
// multi-variable) field declaration — the parser splits `int a = 1, b =
// 2;` into two FieldDecls sharing the same Modifiers/base Type, with
// ExtraDims accounting for any C-style `int a[], b;` trailing brackets.
type FieldDecl struct {
	Token       lexer.Token
	Modifiers   Modifiers
	Type        TypeRef
	Name        string
	ExtraDims   int
	Initializer Expression // nil unless a constant initializer was present
	Javadoc     string
}

func (f *FieldDecl) declNode()           {}
func (f *FieldDecl) TokenLiteral() string { return f.Token.Literal }
func (f *FieldDecl) Pos() lexer.Position  { return f.Token.Pos }
func (f *FieldDecl) String() string {
	var b strings.Builder
	b.WriteString(f.Type.String())
	b.WriteString(" ")
	b.WriteString(f.Name)
	if f.Initializer != nil {
		b.WriteString(" = ")
		b.WriteString(f.Initializer.String())
	}
	b.WriteString(";")
	return b.String()
}
