package types

// ConstValue is a resolved compile-time constant (§3.4): a primitive
// literal, string, class literal, enum constant, nested annotation, or
// array of constants. All variants are immutable once constructed.
type ConstValue interface {
	isConstValue()
}

// BoolConst, IntConst, LongConst, FloatConst, DoubleConst, StringConst are
// the primitive/string literal constant forms. int, short, byte and char
// constants are all carried as IntConst and long constants as LongConst;
// the binder folds arithmetic in float64 and converts the result back to
// the wider operand's kind.
type (
	BoolConst   bool
	IntConst    int32
	LongConst   int64
	FloatConst  float32
	DoubleConst float64
	StringConst string
)

func (BoolConst) isConstValue()   {}
func (IntConst) isConstValue()    {}
func (LongConst) isConstValue()   {}
func (FloatConst) isConstValue()  {}
func (DoubleConst) isConstValue() {}
func (StringConst) isConstValue() {}

// ClassLiteralConst is `T.class`.
type ClassLiteralConst struct {
	Of Type
}

func (ClassLiteralConst) isConstValue() {}

// EnumConst is a reference to an enum constant field.
type EnumConst struct {
	Field FieldSymbol
}

func (EnumConst) isConstValue() {}

// AnnotationConst is a nested `@Other(...)` used as an annotation element
// value.
type AnnotationConst struct {
	Annotation Annotation
}

func (AnnotationConst) isConstValue() {}

// ArrayConst is `{e1, e2, ...}` used as an annotation element value or
// (pre-folding) an array initializer.
type ArrayConst struct {
	Elements []ConstValue
}

func (ArrayConst) isConstValue() {}

// MissingConst marks an annotation element whose value could not be
// resolved (missing required argument, or argument type mismatch); the
// binder reports a diagnostic and continues with this sentinel so that
// lowering can still proceed best-effort for the rest of the annotation,
// per §7's "missing annotation arguments become missing-value markers".
type MissingConst struct{}

func (MissingConst) isConstValue() {}
