package ast

import (
	"strings"

	"github.com/arcbound/jhdrc/internal/lexer"
)

// EnumConstant is one `NAME`, `NAME(args)`, or `NAME(args) { body }` entry
// in an enum's constant list. Body is non-nil only when the constant
// declares a class body (which introduces an anonymous subclass); Args
// are constant expressions passed to the enum's constructor.
type EnumConstant struct {
	Token   lexer.Token
	Name    string
	Args    []Expression
	Body    *TypeDecl // anonymous-subclass body, if present
	Ordinal int
	Javadoc string
}

func (e *EnumConstant) declNode()           {}
func (e *EnumConstant) TokenLiteral() string { return e.Token.Literal }
func (e *EnumConstant) Pos() lexer.Position  { return e.Token.Pos }
func (e *EnumConstant) String() string {
	if len(e.Args) == 0 {
		return e.Name
	}
	var args []string
	for _, a := range e.Args {
		args = append(args, a.String())
	}
	return e.Name + "(" + strings.Join(args, ", ") + ")"
}
