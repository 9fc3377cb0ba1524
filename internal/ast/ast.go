// Package ast defines the Abstract Syntax Tree node types produced by the
// parser. Unlike a full-language AST, there are no statement or
// expression-statement nodes for method bodies: a body is never parsed
// into structure, only skipped over (see the parser's skipBalancedBraces). The only
// expressions that do appear are the constant and annotation-argument
// expressions that §4.3/§4.5 require the parser to actually understand.
package ast

import (
	"bytes"
	"strings"

	"github.com/arcbound/jhdrc/internal/lexer"
)

// Node is the base interface for every AST node: its originating token's
// literal text, its source position, and a debug string form.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() lexer.Position
}

// Expression is any node that yields a constant or annotation value.
type Expression interface {
	Node
	expressionNode()
}

// Decl is any node that introduces a named declaration (a type, a field,
// a method, a record component, a module).
type Decl interface {
	Node
	declNode()
}

// CompilationUnit is the root node for one source file: an optional
// package declaration, its imports, and the type declarations (or, for a
// module-info.java-shaped file, a single ModuleDecl) it contains.
type CompilationUnit struct {
	Token    lexer.Token // the first token of the file
	Filename string      // set by the caller after Parse returns; empty for synthetic units (tests)
	Package  *PackageDecl
	Imports  []*ImportDecl
	Types    []*TypeDecl
	Module   *ModuleDecl // non-nil only for module-info compilation units
	Javadoc  string
}

func (c *CompilationUnit) TokenLiteral() string { return c.Token.Literal }
func (c *CompilationUnit) Pos() lexer.Position  { return c.Token.Pos }
func (c *CompilationUnit) String() string {
	var out bytes.Buffer
	if c.Package != nil {
		out.WriteString(c.Package.String())
		out.WriteString("\n")
	}
	for _, imp := range c.Imports {
		out.WriteString(imp.String())
		out.WriteString("\n")
	}
	if c.Module != nil {
		out.WriteString(c.Module.String())
	}
	for _, td := range c.Types {
		out.WriteString(td.String())
		out.WriteString("\n")
	}
	return out.String()
}

// PackageDecl is the `package a.b.c;` declaration, carrying any
// annotations attached to it (package-info.java style).
type PackageDecl struct {
	Token       lexer.Token
	Name        string // dot-separated
	Annotations []*AnnotationExpr
}

func (p *PackageDecl) TokenLiteral() string { return p.Token.Literal }
func (p *PackageDecl) Pos() lexer.Position  { return p.Token.Pos }
func (p *PackageDecl) String() string       { return "package " + p.Name + ";" }

// ImportDecl is a single `import` directive: `import a.b.C;`, `import
// static a.b.C.member;`, or either form with a trailing `.*`.
type ImportDecl struct {
	Token     lexer.Token
	Qualifier string // dot-separated path, without a trailing .* if OnDemand
	Static    bool
	OnDemand  bool
}

func (i *ImportDecl) TokenLiteral() string { return i.Token.Literal }
func (i *ImportDecl) Pos() lexer.Position  { return i.Token.Pos }
func (i *ImportDecl) String() string {
	var out bytes.Buffer
	out.WriteString("import ")
	if i.Static {
		out.WriteString("static ")
	}
	out.WriteString(i.Qualifier)
	if i.OnDemand {
		out.WriteString(".*")
	}
	out.WriteString(";")
	return out.String()
}

// Identifier is a bare name reference (a simple or qualified type name, a
// parameter name, an annotation-element name, and so on).
type Identifier struct {
	Token lexer.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Pos() lexer.Position  { return i.Token.Pos }
func (i *Identifier) String() string       { return i.Value }

// QualifiedName is a dotted sequence of identifiers, used for import
// paths, package names, and annotation type references before binding.
type QualifiedName struct {
	Token lexer.Token
	Parts []string
}

func (q *QualifiedName) TokenLiteral() string { return q.Token.Literal }
func (q *QualifiedName) Pos() lexer.Position  { return q.Token.Pos }
func (q *QualifiedName) String() string       { return strings.Join(q.Parts, ".") }
