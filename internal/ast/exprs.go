package ast

import (
	"strings"

	"github.com/arcbound/jhdrc/internal/lexer"
)

// literalExpr is embedded by every literal node to supply the Token/Pos
// boilerplate; String() is provided by each concrete type since it needs
// the typed value, not just the raw literal text.
type literalExpr struct {
	Token lexer.Token
}

func (l literalExpr) TokenLiteral() string { return l.Token.Literal }
func (l literalExpr) Pos() lexer.Position  { return l.Token.Pos }

// IntLiteral, LongLiteral, FloatLiteral, DoubleLiteral carry the raw
// source text in Token.Literal; the constant evaluator parses it (the
// lexer has already validated overflow and suffix placement).
type IntLiteral struct{ literalExpr }
type LongLiteral struct{ literalExpr }
type FloatLiteral struct{ literalExpr }
type DoubleLiteral struct{ literalExpr }

func (IntLiteral) expressionNode()    {}
func (LongLiteral) expressionNode()   {}
func (FloatLiteral) expressionNode()  {}
func (DoubleLiteral) expressionNode() {}

func (l IntLiteral) String() string    { return l.Token.Literal }
func (l LongLiteral) String() string   { return l.Token.Literal }
func (l FloatLiteral) String() string  { return l.Token.Literal }
func (l DoubleLiteral) String() string { return l.Token.Literal }

// CharLiteral and StringLiteral carry the decoded value in Value, the
// raw source text (with quotes) still available via Token.Literal.
type CharLiteral struct {
	literalExpr
	Value rune
}
type StringLiteral struct {
	literalExpr
	Value string
}

// TextBlockLiteral is a `"""`-delimited string after indent-stripping and
// escape processing (§4.1); Value holds the final decoded string.
type TextBlockLiteral struct {
	literalExpr
	Value string
}

func (CharLiteral) expressionNode()      {}
func (StringLiteral) expressionNode()    {}
func (TextBlockLiteral) expressionNode() {}

func (l CharLiteral) String() string       { return l.Token.Literal }
func (l StringLiteral) String() string     { return l.Token.Literal }
func (l TextBlockLiteral) String() string  { return l.Token.Literal }

// BoolLiteral and NullLiteral are the `true`/`false`/`null` keywords used
// as expressions.
type BoolLiteral struct {
	literalExpr
	Value bool
}
type NullLiteral struct{ literalExpr }

func (BoolLiteral) expressionNode() {}
func (NullLiteral) expressionNode() {}

func (l BoolLiteral) String() string { return l.Token.Literal }
func (l NullLiteral) String() string { return "null" }

// NameExpr is a (possibly qualified) identifier used as an expression:
// a constant reference, an enum constant, or a static field/class
// reference, resolved by the binder's constant evaluator.
type NameExpr struct {
	Token lexer.Token
	Parts []string
}

func (n *NameExpr) expressionNode()      {}
func (n *NameExpr) TokenLiteral() string { return n.Token.Literal }
func (n *NameExpr) Pos() lexer.Position  { return n.Token.Pos }
func (n *NameExpr) String() string       { return strings.Join(n.Parts, ".") }

// BinaryExpr is any infix arithmetic/bitwise/logical/comparison/shift
// operator application in a constant expression.
type BinaryExpr struct {
	Token    lexer.Token // the operator token
	Operator string
	Left     Expression
	Right    Expression
}

func (b *BinaryExpr) expressionNode()      {}
func (b *BinaryExpr) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryExpr) Pos() lexer.Position  { return b.Token.Pos }
func (b *BinaryExpr) String() string {
	return "(" + b.Left.String() + " " + b.Operator + " " + b.Right.String() + ")"
}

// UnaryExpr is a prefix `+ - ! ~` application.
type UnaryExpr struct {
	Token    lexer.Token
	Operator string
	Operand  Expression
}

func (u *UnaryExpr) expressionNode()      {}
func (u *UnaryExpr) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryExpr) Pos() lexer.Position  { return u.Token.Pos }
func (u *UnaryExpr) String() string       { return "(" + u.Operator + u.Operand.String() + ")" }

// TernaryExpr is `cond ? then : else`.
type TernaryExpr struct {
	Token     lexer.Token // the '?' token
	Condition Expression
	Then      Expression
	Else      Expression
}

func (t *TernaryExpr) expressionNode()      {}
func (t *TernaryExpr) TokenLiteral() string { return t.Token.Literal }
func (t *TernaryExpr) Pos() lexer.Position  { return t.Token.Pos }
func (t *TernaryExpr) String() string {
	return "(" + t.Condition.String() + " ? " + t.Then.String() + " : " + t.Else.String() + ")"
}

// CastExpr is a parenthesised-type cast: `(T) expr`.
type CastExpr struct {
	Token   lexer.Token // the '(' token
	Type    TypeRef
	Operand Expression
}

func (c *CastExpr) expressionNode()      {}
func (c *CastExpr) TokenLiteral() string { return c.Token.Literal }
func (c *CastExpr) Pos() lexer.Position  { return c.Token.Pos }
func (c *CastExpr) String() string       { return "((" + c.Type.String() + ") " + c.Operand.String() + ")" }

// ClassLiteralExpr is `T.class`, including for primitives, arrays, and
// `void.class`.
type ClassLiteralExpr struct {
	Token lexer.Token
	Type  TypeRef
}

func (c *ClassLiteralExpr) expressionNode()      {}
func (c *ClassLiteralExpr) TokenLiteral() string { return c.Token.Literal }
func (c *ClassLiteralExpr) Pos() lexer.Position  { return c.Token.Pos }
func (c *ClassLiteralExpr) String() string       { return c.Type.String() + ".class" }

// ArrayInitExpr is a brace-delimited array initializer: `{e1, e2, ...}`.
// Elements may themselves be ArrayInitExpr for multi-dimensional arrays.
type ArrayInitExpr struct {
	Token    lexer.Token // the '{' token
	Elements []Expression
}

func (a *ArrayInitExpr) expressionNode()      {}
func (a *ArrayInitExpr) TokenLiteral() string { return a.Token.Literal }
func (a *ArrayInitExpr) Pos() lexer.Position  { return a.Token.Pos }
func (a *ArrayInitExpr) String() string {
	var parts []string
	for _, e := range a.Elements {
		parts = append(parts, e.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
