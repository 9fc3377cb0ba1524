// Package ast defines the declaration-only AST. This file holds
// ModuleDecl and its directives, the module-info.java shape from §4.2.
package ast

import (
	"strings"

	"github.com/arcbound/jhdrc/internal/lexer"
)

// ModuleDecl is a `[open] module name { directives }` declaration; a
// compilation unit named module-info.java holds exactly one.
type ModuleDecl struct {
	Token       lexer.Token
	Open        bool
	Name        string // dot-separated module name
	Directives  []ModuleDirective
	Annotations []*AnnotationExpr
	Javadoc     string
}

func (m *ModuleDecl) declNode()           {}
func (m *ModuleDecl) TokenLiteral() string { return m.Token.Literal }
func (m *ModuleDecl) Pos() lexer.Position  { return m.Token.Pos }
func (m *ModuleDecl) String() string {
	var b strings.Builder
	if m.Open {
		b.WriteString("open ")
	}
	b.WriteString("module ")
	b.WriteString(m.Name)
	b.WriteString(" { ")
	for _, d := range m.Directives {
		b.WriteString(d.String())
		b.WriteString(" ")
	}
	b.WriteString("}")
	return b.String()
}

// ModuleDirective is one of requires/exports/opens/uses/provides.
type ModuleDirective interface {
	Node
	moduleDirectiveNode()
}

// RequiresDirective is `requires [transitive] [static] moduleName;`.
type RequiresDirective struct {
	Token      lexer.Token
	ModuleName string
	Transitive bool
	Static     bool
}

func (r *RequiresDirective) moduleDirectiveNode()   {}
func (r *RequiresDirective) TokenLiteral() string   { return r.Token.Literal }
func (r *RequiresDirective) Pos() lexer.Position    { return r.Token.Pos }
func (r *RequiresDirective) String() string {
	var b strings.Builder
	b.WriteString("requires ")
	if r.Transitive {
		b.WriteString("transitive ")
	}
	if r.Static {
		b.WriteString("static ")
	}
	b.WriteString(r.ModuleName)
	b.WriteString(";")
	return b.String()
}

// ExportsDirective is `exports pkg [to module1, module2];`.
type ExportsDirective struct {
	Token   lexer.Token
	Package string
	To      []string // empty means unqualified (exported to everyone)
}

func (e *ExportsDirective) moduleDirectiveNode()   {}
func (e *ExportsDirective) TokenLiteral() string   { return e.Token.Literal }
func (e *ExportsDirective) Pos() lexer.Position    { return e.Token.Pos }
func (e *ExportsDirective) String() string {
	s := "exports " + e.Package
	if len(e.To) > 0 {
		s += " to " + strings.Join(e.To, ", ")
	}
	return s + ";"
}

// OpensDirective is `opens pkg [to module1, module2];`.
type OpensDirective struct {
	Token   lexer.Token
	Package string
	To      []string
}

func (o *OpensDirective) moduleDirectiveNode()   {}
func (o *OpensDirective) TokenLiteral() string   { return o.Token.Literal }
func (o *OpensDirective) Pos() lexer.Position    { return o.Token.Pos }
func (o *OpensDirective) String() string {
	s := "opens " + o.Package
	if len(o.To) > 0 {
		s += " to " + strings.Join(o.To, ", ")
	}
	return s + ";"
}

// UsesDirective is `uses serviceType;`.
type UsesDirective struct {
	Token       lexer.Token
	ServiceType string
}

func (u *UsesDirective) moduleDirectiveNode()   {}
func (u *UsesDirective) TokenLiteral() string   { return u.Token.Literal }
func (u *UsesDirective) Pos() lexer.Position    { return u.Token.Pos }
func (u *UsesDirective) String() string         { return "uses " + u.ServiceType + ";" }

// ProvidesDirective is `provides serviceType with impl1, impl2;`.
type ProvidesDirective struct {
	Token       lexer.Token
	ServiceType string
	With        []string
}

func (p *ProvidesDirective) moduleDirectiveNode()   {}
func (p *ProvidesDirective) TokenLiteral() string   { return p.Token.Literal }
func (p *ProvidesDirective) Pos() lexer.Position    { return p.Token.Pos }
func (p *ProvidesDirective) String() string {
	return "provides " + p.ServiceType + " with " + strings.Join(p.With, ", ") + ";"
}
