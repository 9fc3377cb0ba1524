package types

// AccessFlags is a bitset of class-file access_flags (JVMS-style values;
// the lowerer post-processes nested-class flags per §4.4 before emission).
type AccessFlags uint16

const (
	AccPublic       AccessFlags = 0x0001
	AccPrivate      AccessFlags = 0x0002
	AccProtected    AccessFlags = 0x0004
	AccStatic       AccessFlags = 0x0008
	AccFinal        AccessFlags = 0x0010
	AccSuper        AccessFlags = 0x0020 // also ACC_SYNCHRONIZED on methods
	AccVolatile     AccessFlags = 0x0040 // also ACC_BRIDGE on methods
	AccTransient    AccessFlags = 0x0080 // also ACC_VARARGS on methods
	AccNative       AccessFlags = 0x0100
	AccInterface    AccessFlags = 0x0200
	AccAbstract     AccessFlags = 0x0400
	AccStrict       AccessFlags = 0x0800
	AccSynthetic    AccessFlags = 0x1000
	AccAnnotation   AccessFlags = 0x2000
	AccEnum         AccessFlags = 0x4000
	AccModule       AccessFlags = 0x8000
)

// Has reports whether all bits of mask are set.
func (f AccessFlags) Has(mask AccessFlags) bool { return f&mask == mask }

// With returns f with mask's bits set.
func (f AccessFlags) With(mask AccessFlags) AccessFlags { return f | mask }

// Without returns f with mask's bits cleared.
func (f AccessFlags) Without(mask AccessFlags) AccessFlags { return f &^ mask }

// SourceKind tags what surface-syntax form a class symbol was declared
// with — distinct from AccessFlags because e.g. both annotation types and
// plain interfaces set AccInterface.
type SourceKind uint8

const (
	KindClass SourceKind = iota
	KindInterface
	KindEnum
	KindAnnotation
	KindRecord
)

func (k SourceKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	case KindEnum:
		return "enum"
	case KindAnnotation:
		return "annotation"
	case KindRecord:
		return "record"
	}
	return "unknown"
}

// RetentionPolicy mirrors java.lang.annotation.RetentionPolicy.
type RetentionPolicy uint8

const (
	RetentionClass RetentionPolicy = iota // default when unspecified
	RetentionSource
	RetentionRuntime
)

// AnnotationTarget mirrors java.lang.annotation.ElementType, restricted to
// the subset the binder needs to disambiguate declaration vs. type-use
// annotations (§4.3.3 phase 6).
type AnnotationTarget uint16

// Has reports whether t includes every bit of mask.
func (t AnnotationTarget) Has(mask AnnotationTarget) bool { return t&mask == mask }

const (
	TargetType AnnotationTarget = 1 << iota
	TargetField
	TargetMethod
	TargetParameter
	TargetConstructor
	TargetLocalVariable
	TargetAnnotationType
	TargetPackage
	TargetTypeParameter
	TargetTypeUse
	TargetModule
	TargetRecordComponent
)

// DeclarationSites is every target that marks a *declaration* annotation
// (as opposed to TargetTypeUse, which marks a type annotation).
const DeclarationSites = TargetType | TargetField | TargetMethod | TargetParameter |
	TargetConstructor | TargetLocalVariable | TargetAnnotationType | TargetPackage |
	TargetTypeParameter | TargetModule | TargetRecordComponent
