package ast

import (
	"strings"

	"github.com/arcbound/jhdrc/internal/lexer"
)

// Param is one formal parameter; Varargs marks the final `T... name`
// parameter of a method (equivalent to `T[] name` at the descriptor
// level, flagged ACC_VARARGS on the method by the lowerer).
type Param struct {
	Token       lexer.Token
	Modifiers   Modifiers
	Type        TypeRef
	Name        string
	Varargs     bool
	Annotations []*AnnotationExpr // parameter annotations (distinct from Modifiers.Annotations)
}

func (p *Param) TokenLiteral() string { return p.Token.Literal }
func (p *Param) Pos() lexer.Position  { return p.Token.Pos }
func (p *Param) String() string {
	s := p.Type.String()
	if p.Varargs {
		s += "..."
	}
	return s + " " + p.Name
}

// MethodDecl is a method or constructor declaration. A constructor has
// Name equal to the enclosing type's simple name and ReturnType nil;
// AnnotationDefault is non-nil only on an annotation-type element that
// declares a default value.
type MethodDecl struct {
	Token             lexer.Token
	Modifiers         Modifiers
	TypeParams        []TypeParameter
	ReturnType        TypeRef // nil for a constructor
	Name              string
	Params            []*Param
	Throws            []TypeRef
	IsConstructor     bool
	AnnotationDefault Expression // annotation-type element default, if any
	HasBody           bool       // false for interface/annotation abstract methods
	Javadoc           string
}

func (m *MethodDecl) declNode()           {}
func (m *MethodDecl) TokenLiteral() string { return m.Token.Literal }
func (m *MethodDecl) Pos() lexer.Position  { return m.Token.Pos }
func (m *MethodDecl) String() string {
	var b strings.Builder
	if m.ReturnType != nil {
		b.WriteString(m.ReturnType.String())
		b.WriteString(" ")
	}
	b.WriteString(m.Name)
	b.WriteString("(")
	for i, p := range m.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteString(")")
	if len(m.Throws) > 0 {
		b.WriteString(" throws ")
		for i, t := range m.Throws {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(t.String())
		}
	}
	return b.String()
}
