// Package ast defines the declaration-only AST: class/interface/enum/
// annotation/record type declarations, their members, module-info
// directives, and the constant/annotation expression trees. There is no
// statement or executable-expression AST — method bodies and non-constant
// initializers are never parsed into structure (see the parser's
// brace-balancing skip), matching the "never emits or runs method bodies"
// design of the compiler this package feeds.
package ast
