package types

// PrimitiveKind enumerates the eight primitive types; a void return is
// VoidType, not a PrimitiveKind.
type PrimitiveKind uint8

const (
	Boolean PrimitiveKind = iota
	Byte
	Short
	Int
	Long
	Char
	Float
	Double
)

// Descriptor returns the single-character erased descriptor for a
// primitive kind, e.g. Int -> "I".
func (k PrimitiveKind) Descriptor() string {
	switch k {
	case Boolean:
		return "Z"
	case Byte:
		return "B"
	case Short:
		return "S"
	case Int:
		return "I"
	case Long:
		return "J"
	case Char:
		return "C"
	case Float:
		return "F"
	case Double:
		return "D"
	}
	return "?"
}

func (k PrimitiveKind) String() string {
	switch k {
	case Boolean:
		return "boolean"
	case Byte:
		return "byte"
	case Short:
		return "short"
	case Int:
		return "int"
	case Long:
		return "long"
	case Char:
		return "char"
	case Float:
		return "float"
	case Double:
		return "double"
	}
	return "<invalid>"
}

// IsWide reports whether values of this kind occupy two stack/local slots
// (and, for constant-pool entries, two pool indices).
func (k PrimitiveKind) IsWide() bool { return k == Long || k == Double }

// WildcardBound tags a Wildcard's bound form.
type WildcardBound uint8

const (
	BoundNone WildcardBound = iota
	BoundUpper
	BoundLower
)

// Annotation is a single resolved declaration or type annotation: the
// annotation-type class symbol plus its element-value pairs. Declared here
// (rather than in a separate package) because Type carries Annotation
// values directly on type nodes.
type Annotation struct {
	Type     ClassSymbol
	Elements []AnnotationElement
}

// AnnotationElement is one `name = value` pair inside an annotation.
type AnnotationElement struct {
	Name  string
	Value ConstValue
}

// Type is the tagged-variant type algebra from the data model: primitive,
// void, array, class-with-type-arguments (a chain for nested generics),
// type-variable, wildcard, or intersection (type-variable bounds only).
//
// Equality of types is structural except that annotations are ignored for
// type-identity purposes (see Equal) but preserved on the node for
// emission (see the lowerer's type-annotation pass).
type Type interface {
	isType()
	// Annotations returns the type annotations attached directly to this
	// type node (not to nested components).
	Annotations() []Annotation
}

// Primitive is a primitive type, optionally carrying its own type
// annotations (e.g. `@NonNull int`).
type Primitive struct {
	Kind  PrimitiveKind
	Annos []Annotation
}

func (Primitive) isType()                  {}
func (p Primitive) Annotations() []Annotation { return p.Annos }

// VoidType represents a method's `void` return; it is never a value type.
type VoidType struct{}

func (VoidType) isType()                  {}
func (VoidType) Annotations() []Annotation { return nil }

// Array is an array type; Annos are the annotations on the array type
// itself (as opposed to Element's annotations, which apply to the
// element).
type Array struct {
	Element Type
	Annos   []Annotation
}

func (Array) isType()                  {}
func (a Array) Annotations() []Annotation { return a.Annos }

// SimpleClass is one segment of a Class type's Outer.Middle.Inner chain:
// a class symbol plus the type arguments bound at that level and any
// annotations attached to that segment.
type SimpleClass struct {
	Symbol    ClassSymbol
	TypeArgs  []Type // element is Type (incl. Wildcard) for each type parameter
	Annos     []Annotation
}

// ClassType is a (possibly parameterized, possibly nested) class or
// interface type: a non-empty ordered chain of SimpleClass segments.
type ClassType struct {
	Path []SimpleClass
}

func (ClassType) isType() {}
func (c ClassType) Annotations() []Annotation {
	if len(c.Path) == 0 {
		return nil
	}
	return c.Path[len(c.Path)-1].Annos
}

// Innermost returns the last (most specific) segment of the chain.
func (c ClassType) Innermost() SimpleClass { return c.Path[len(c.Path)-1] }

// Symbol returns the class symbol of the innermost segment — the usual
// case of interest when the chain has no nested generics.
func (c ClassType) Symbol() ClassSymbol { return c.Innermost().Symbol }

// NewClassType builds a single-segment (non-nested) class type, the common
// case, with no type arguments.
func NewClassType(sym ClassSymbol) ClassType {
	return ClassType{Path: []SimpleClass{{Symbol: sym}}}
}

// TypeVariable references a declared type parameter.
type TypeVariable struct {
	Symbol TypeVariableSymbol
	Annos  []Annotation
}

func (TypeVariable) isType()                  {}
func (t TypeVariable) Annotations() []Annotation { return t.Annos }

// Wildcard is `?`, `? extends T`, or `? super T`.
type Wildcard struct {
	Bound     WildcardBound
	BoundType Type // nil when Bound == BoundNone
	Annos     []Annotation
}

func (Wildcard) isType()                  {}
func (w Wildcard) Annotations() []Annotation { return w.Annos }

// Intersection is only valid as a type-variable's upper bound: `T extends
// A & B & C`. Bounds[0] may be a class or another type-variable; any
// remaining bounds must be interfaces (enforced by the binder, not here).
// FirstIsInterface records whether Bounds[0] is itself an interface type
// (possible when a type variable's only written bound is an interface,
// e.g. `T extends Comparable<T>`), which the lowerer needs to decide
// whether bound index 0 or 1 is "the class bound" for type-annotation
// path purposes (§4.4) without re-resolving the symbol.
type Intersection struct {
	Bounds           []Type
	FirstIsInterface bool
}

func (Intersection) isType()                   {}
func (Intersection) Annotations() []Annotation { return nil }

// ObjectType is the well-known supertype of every interface and of
// java.lang.Object's (absent) supertype.
func ObjectType(interner *Interner) ClassType {
	return NewClassType(interner.Intern(ObjectBinaryName))
}

// Equal reports structural equality of two types, ignoring annotations
// (per §3.2: "Equality of types is structural except that annotations are
// ignored for purposes of language-level type identity").
func Equal(a, b Type) bool {
	switch av := a.(type) {
	case Primitive:
		bv, ok := b.(Primitive)
		return ok && av.Kind == bv.Kind
	case VoidType:
		_, ok := b.(VoidType)
		return ok
	case Array:
		bv, ok := b.(Array)
		return ok && Equal(av.Element, bv.Element)
	case ClassType:
		bv, ok := b.(ClassType)
		if !ok || len(av.Path) != len(bv.Path) {
			return false
		}
		for i := range av.Path {
			if av.Path[i].Symbol != bv.Path[i].Symbol {
				return false
			}
			if len(av.Path[i].TypeArgs) != len(bv.Path[i].TypeArgs) {
				return false
			}
			for j := range av.Path[i].TypeArgs {
				if !Equal(av.Path[i].TypeArgs[j], bv.Path[i].TypeArgs[j]) {
					return false
				}
			}
		}
		return true
	case TypeVariable:
		bv, ok := b.(TypeVariable)
		return ok && av.Symbol == bv.Symbol
	case Wildcard:
		bv, ok := b.(Wildcard)
		if !ok || av.Bound != bv.Bound {
			return false
		}
		if av.BoundType == nil || bv.BoundType == nil {
			return av.BoundType == nil && bv.BoundType == nil
		}
		return Equal(av.BoundType, bv.BoundType)
	case Intersection:
		bv, ok := b.(Intersection)
		if !ok || len(av.Bounds) != len(bv.Bounds) {
			return false
		}
		for i := range av.Bounds {
			if !Equal(av.Bounds[i], bv.Bounds[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// IsRaw reports whether a ClassType chain has no type arguments anywhere
// in the chain — used by the lowerer's minimal-signature rule.
func IsRaw(c ClassType) bool {
	for _, seg := range c.Path {
		if len(seg.TypeArgs) > 0 {
			return false
		}
	}
	return true
}
