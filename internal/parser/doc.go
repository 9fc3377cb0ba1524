// Package parser turns a token stream into a declaration-only
// CompilationUnit: package/import/module header, then class/interface/
// enum/annotation/record type declarations. Method bodies and non-
// constant field initializers are never parsed into structure — they are
// skipped by brace balancing (see skipBalancedBraces) — but constant field
// initializers and annotation arguments are parsed by the precedence-
// climbing sub-parser in expressions.go, since the binder needs their
// structure to fold them to values.
//
// Unlike a recovery-oriented parser, this one does not attempt error
// recovery: the first syntax error panics with a *SyntaxError carrying a
// source position, which Parse recovers at the top level and returns as
// an error. This matches §4.2's "fatal errors throw with source
// position; the parser does not attempt recovery."
package parser
