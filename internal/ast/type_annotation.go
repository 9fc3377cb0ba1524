package ast

import (
	"strings"

	"github.com/arcbound/jhdrc/internal/lexer"
)

// AnnotationExpr is a parsed `@T`, `@T(value)`, or `@T(name = value, ...)`
// annotation use. It can appear as a declaration annotation (on a type,
// field, method, parameter, package, or module directive) or as a type
// annotation (embedded inside a TypeRef); the binder tells these apart by
// where the AnnotationExpr is attached, not by any field here.
type AnnotationExpr struct {
	Token    lexer.Token // the '@' token
	Type     *ClassTypeRef
	Elements []AnnotationElementExpr // empty for a marker annotation
}

// AnnotationElementExpr is one `name = value` pair, or the single
// implicit `value = ...` pair written as a bare expression inside
// `@T(expr)`.
type AnnotationElementExpr struct {
	Name  string // "value" for the single-element shorthand
	Value Expression
}

func (a *AnnotationExpr) expressionNode()      {}
func (a *AnnotationExpr) TokenLiteral() string { return a.Token.Literal }
func (a *AnnotationExpr) Pos() lexer.Position  { return a.Token.Pos }
func (a *AnnotationExpr) String() string {
	var b strings.Builder
	b.WriteString("@")
	b.WriteString(a.Type.String())
	if len(a.Elements) > 0 {
		b.WriteString("(")
		for i, e := range a.Elements {
			if i > 0 {
				b.WriteString(", ")
			}
			if e.Name != "value" || len(a.Elements) > 1 {
				b.WriteString(e.Name)
				b.WriteString(" = ")
			}
			b.WriteString(e.Value.String())
		}
		b.WriteString(")")
	}
	return b.String()
}
