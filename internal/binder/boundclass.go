package binder

import "github.com/arcbound/jhdrc/internal/types"

// BoundClass is the binder's per-class record (§3.3). Each phase produces
// a new *BoundClass (symbol identity stable, fields progressively filled
// in); Phase names which fields it is responsible for.
type BoundClass struct {
	Symbol types.ClassSymbol

	AccessFlags types.AccessFlags
	Enclosing   types.ClassSymbol // zero value (Valid() == false) for top-level
	Kind        types.SourceKind

	TypeParams []BoundTypeParam
	Supertype  types.ClassType
	Interfaces []types.ClassType

	Permitted []types.ClassSymbol // sealed hierarchies only

	NestedClasses []types.ClassSymbol // ordered, source order
	Fields        []BoundField        // ordered, source order
	Methods       []BoundMethod       // ordered, source order
	RecordComps   []BoundRecordComponent

	DeclAnnotations []types.Annotation

	AnnotationMeta *AnnotationMeta // non-nil only when Kind == KindAnnotation
}

// BoundTypeParam is a class or method type parameter with its resolved
// upper-bound intersection (bound available from phase 3 onward; phase 2
// only records the Name, with an empty Bound).
type BoundTypeParam struct {
	Symbol types.TypeVariableSymbol
	Name   string
	Bound  types.Intersection
}

// BoundField is a field's bound shape; Type is set in phase 4, Constant
// in phase 5.
type BoundField struct {
	Symbol      types.FieldSymbol
	AccessFlags types.AccessFlags
	Type        types.Type
	Constant    types.ConstValue // nil unless this is a compile-time constant
	Annotations []types.Annotation
}

// BoundMethod is a method's bound shape; all of Params/Return/Throws are
// set in phase 4.
type BoundMethod struct {
	Symbol         types.MethodSymbol
	AccessFlags    types.AccessFlags
	TypeParams     []BoundTypeParam
	Params         []BoundParam
	Return         types.Type
	Throws         []types.Type
	IsConstructor  bool
	AnnotationDefault types.ConstValue // annotation-type elements only
	Annotations    []types.Annotation
}

// BoundParam is a method formal parameter.
type BoundParam struct {
	Name        string
	Type        types.Type
	Varargs     bool
	Synthetic   bool // excluded from RuntimeXParameterAnnotations per §4.4
	Annotations []types.Annotation
}

// BoundRecordComponent is a record header component.
type BoundRecordComponent struct {
	Name        string
	Type        types.Type
	Annotations []types.Annotation
}

// AnnotationMeta holds the retention/target/inherited/repeatable metadata
// recorded for an annotation-type declaration (§3.3), computed in phase 4.
type AnnotationMeta struct {
	Retention  types.RetentionPolicy
	Targets    types.AnnotationTarget
	Inherited  bool
	Repeatable bool
	Container  types.ClassSymbol // valid only if Repeatable
}

// clone returns a shallow copy of bc, used by each phase to produce a new
// record rather than mutating the previous phase's (§3.5: "conceptually
// immutable per-phase").
func (bc *BoundClass) clone() *BoundClass {
	cp := *bc
	return &cp
}
