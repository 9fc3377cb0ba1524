// Package ast defines the declaration-only AST. This file holds
// RecordComponent, the record-header parameter that doubles as both a
// private final field and a public accessor method once bound.
package ast

import "github.com/arcbound/jhdrc/internal/lexer"

// RecordComponent is one entry in a record's header parameter list, e.g.
// the `int x` in `record Point(int x, int y) {}`. The binder synthesizes
// a private final field and a public accessor method of the same name
// from each component, plus a canonical constructor if none is declared.
type RecordComponent struct {
	Token       lexer.Token
	Type        TypeRef
	Name        string
	Annotations []*AnnotationExpr
}

func (r *RecordComponent) TokenLiteral() string { return r.Token.Literal }
func (r *RecordComponent) Pos() lexer.Position  { return r.Token.Pos }
func (r *RecordComponent) String() string       { return r.Type.String() + " " + r.Name }
