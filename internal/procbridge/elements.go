// Package procbridge implements the annotation-processing bridge (§4.3.5,
// §4.3.6): a read-only facade over one round's phase-6 bound classes, the
// type relation oracle processors query against that facade, a filer
// enforcing the once-per-name generated-source invariant, and the round
// loop that re-binds the combined source set whenever a round generates
// new sources.
package procbridge

import (
	"github.com/arcbound/jhdrc/internal/binder"
	"github.com/arcbound/jhdrc/internal/types"
)

// Element is the read-only view processors get of one bound declaration:
// a class, field, or method. It never exposes the mutable binder types
// directly, so a processor cannot observe (or corrupt) binding state
// outside the round that produced it.
type Element interface {
	SimpleName() string
	Modifiers() types.AccessFlags
	Annotations() []types.Annotation
}

// TypeElement is the Element view of a bound class (§3.3): its kind,
// supertype, interfaces, type parameters, and the ordered enclosed
// elements (nested classes, fields, methods) a processor can walk.
type TypeElement struct {
	env  *RoundEnvironment
	bc   *binder.BoundClass
	Name string // binary name, e.g. "com/example/Foo$Bar"
}

func (e TypeElement) SimpleName() string            { return e.env.interner.SimpleName(e.bc.Symbol) }
func (e TypeElement) Modifiers() types.AccessFlags   { return e.bc.AccessFlags }
func (e TypeElement) Annotations() []types.Annotation { return e.bc.DeclAnnotations }
func (e TypeElement) Kind() types.SourceKind          { return e.bc.Kind }
func (e TypeElement) Symbol() types.ClassSymbol       { return e.bc.Symbol }

// Supertype returns the class's declared superclass, or the zero
// ClassType if e is an interface (interfaces have no superclass).
func (e TypeElement) Supertype() types.ClassType { return e.bc.Supertype }

// Interfaces returns the class's declared superinterfaces.
func (e TypeElement) Interfaces() []types.ClassType { return e.bc.Interfaces }

// TypeParameters returns the class's own generic type parameters.
func (e TypeElement) TypeParameters() []binder.BoundTypeParam { return e.bc.TypeParams }

// EnclosedElements returns every field, method, and nested type declared
// directly inside e, in source order (§3.3's member-ordering invariant),
// fields first, then methods, then nested types — the order annotation
// processors conventionally see them enumerated in.
func (e TypeElement) EnclosedElements() []Element {
	out := make([]Element, 0, len(e.bc.Fields)+len(e.bc.Methods)+len(e.bc.NestedClasses))
	for _, f := range e.bc.Fields {
		out = append(out, VariableElement{env: e.env, owner: e.bc.Symbol, bf: f})
	}
	for _, m := range e.bc.Methods {
		out = append(out, ExecutableElement{env: e.env, owner: e.bc.Symbol, bm: m})
	}
	for _, nested := range e.bc.NestedClasses {
		if t, ok := e.env.TypeOf(nested); ok {
			out = append(out, t)
		}
	}
	return out
}

// VariableElement is the Element view of a bound field.
type VariableElement struct {
	env   *RoundEnvironment
	owner types.ClassSymbol
	bf    binder.BoundField
}

func (e VariableElement) SimpleName() string            { return e.bf.Symbol.Name }
func (e VariableElement) Modifiers() types.AccessFlags   { return e.bf.AccessFlags }
func (e VariableElement) Annotations() []types.Annotation { return e.bf.Annotations }
func (e VariableElement) Type() types.Type               { return e.bf.Type }
func (e VariableElement) ConstantValue() types.ConstValue { return e.bf.Constant }

// ExecutableElement is the Element view of a bound method or constructor.
type ExecutableElement struct {
	env   *RoundEnvironment
	owner types.ClassSymbol
	bm    binder.BoundMethod
}

func (e ExecutableElement) SimpleName() string            { return e.bm.Symbol.Name }
func (e ExecutableElement) Modifiers() types.AccessFlags   { return e.bm.AccessFlags }
func (e ExecutableElement) Annotations() []types.Annotation { return e.bm.Annotations }
func (e ExecutableElement) IsConstructor() bool             { return e.bm.IsConstructor }
func (e ExecutableElement) Parameters() []binder.BoundParam  { return e.bm.Params }
func (e ExecutableElement) ReturnType() types.Type           { return e.bm.Return }
func (e ExecutableElement) Throws() []types.Type             { return e.bm.Throws }
func (e ExecutableElement) TypeParameters() []binder.BoundTypeParam {
	return e.bm.TypeParams
}
