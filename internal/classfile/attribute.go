package classfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Attribute is a pre-built attribute_info body; Name is the attribute's
// UTF8 name (e.g. "Signature"), Body is everything after the
// attribute_length field.
type Attribute struct {
	Name string
	Body []byte
}

func writeAttributes(w io.Writer, pool *ConstantPool, attrs []Attribute) error {
	if err := writeU2(w, uint16(len(attrs))); err != nil {
		return err
	}
	for _, a := range attrs {
		if err := writeU2(w, pool.UTF8(a.Name)); err != nil {
			return err
		}
		if err := writeU4(w, uint32(len(a.Body))); err != nil {
			return err
		}
		if _, err := w.Write(a.Body); err != nil {
			return fmt.Errorf("writing attribute %s body: %w", a.Name, err)
		}
	}
	return nil
}

func writeU1(w io.Writer, v uint8) error  { return binary.Write(w, binary.BigEndian, v) }
func writeU2(w io.Writer, v uint16) error { return binary.Write(w, binary.BigEndian, v) }
func writeU4(w io.Writer, v uint32) error { return binary.Write(w, binary.BigEndian, v) }

// TypePathStep is one step of a type-path: a compound type's annotation
// location relative to its enclosing type (JVMS §4.7.20.2, and §4.4 of
// the lowering algorithm that produces these).
type TypePathStep struct {
	Kind           TypePathKind
	TypeArgumentIdx uint8 // only meaningful when Kind == TypeArgument
}

type TypePathKind uint8

const (
	PathArray TypePathKind = iota
	PathNested
	PathWildcard
	PathTypeArgument
)

// encodeTypePath writes a type_path structure: a u1 path_length followed
// by path_length (type_path_kind, type_argument_index) pairs.
func encodeTypePath(path []TypePathStep) []byte {
	out := make([]byte, 1, 1+2*len(path))
	out[0] = byte(len(path))
	for _, step := range path {
		out = append(out, byte(step.Kind), step.TypeArgumentIdx)
	}
	return out
}

// TypeAnnotationTargetKind is the target_type discriminant (JVMS
// §4.7.20.1), restricted to the declaration-site subset this compiler
// ever emits (no code-attribute targets, since method bodies aren't
// lowered).
type TypeAnnotationTargetKind uint8

const (
	TargetClassTypeParam        TypeAnnotationTargetKind = 0x00
	TargetMethodTypeParam       TypeAnnotationTargetKind = 0x01
	TargetClassExtends          TypeAnnotationTargetKind = 0x10 // also used for implements, with type_index
	TargetClassTypeParamBound   TypeAnnotationTargetKind = 0x11
	TargetMethodTypeParamBound  TypeAnnotationTargetKind = 0x12
	TargetField                TypeAnnotationTargetKind = 0x13
	TargetMethodReturn          TypeAnnotationTargetKind = 0x14
	TargetMethodReceiver        TypeAnnotationTargetKind = 0x15
	TargetMethodFormalParam     TypeAnnotationTargetKind = 0x16
	TargetThrows                TypeAnnotationTargetKind = 0x17
)

// TypeAnnotationTarget is the target_info union, tagged by its kind; only
// the fields relevant to Kind are meaningful.
type TypeAnnotationTarget struct {
	Kind            TypeAnnotationTargetKind
	Index           uint8 // type-param index or formal-param index
	TypeParamIdx    uint8
	BoundIdx        uint8
	SupertypeIdx    uint16 // supertype target: 0xFFFF = extends clause, else interfaces[i]; throws target: index into the throws list
}

func (t TypeAnnotationTarget) encode() []byte {
	switch t.Kind {
	case TargetClassTypeParam, TargetMethodTypeParam:
		return []byte{byte(t.Kind), t.Index}
	case TargetClassExtends:
		out := make([]byte, 3)
		out[0] = byte(t.Kind)
		binary.BigEndian.PutUint16(out[1:], t.SupertypeIdx)
		return out
	case TargetClassTypeParamBound, TargetMethodTypeParamBound:
		return []byte{byte(t.Kind), t.TypeParamIdx, t.BoundIdx}
	case TargetField, TargetMethodReturn, TargetMethodReceiver:
		return []byte{byte(t.Kind)}
	case TargetMethodFormalParam:
		return []byte{byte(t.Kind), t.Index}
	case TargetThrows:
		out := make([]byte, 3)
		out[0] = byte(t.Kind)
		binary.BigEndian.PutUint16(out[1:], t.SupertypeIdx)
		return out
	}
	return []byte{byte(t.Kind)}
}

// TypeAnnotation is one entry of RuntimeVisible/InvisibleTypeAnnotations:
// target_info + type_path + the annotation payload itself.
type TypeAnnotation struct {
	Target Annotation // annotation payload: type index + element_value_pairs, reused from Annotation below
	TargetInfo TypeAnnotationTarget
	Path   []TypePathStep
}

func (ta TypeAnnotation) encode(pool *ConstantPool) []byte {
	var out []byte
	out = append(out, ta.TargetInfo.encode()...)
	out = append(out, encodeTypePath(ta.Path)...)
	out = append(out, encodeAnnotation(pool, ta.Target)...)
	return out
}

// Annotation is one runtime-(in)visible declaration annotation: a type
// index plus its element_value_pairs.
type Annotation struct {
	TypeDescriptor string
	Elements       []AnnotationElement
}

type AnnotationElement struct {
	Name  string
	Value ElementValue
}

// ElementValue is a tagged element_value (JVMS §4.7.16.1); exactly one of
// the fields is meaningful, selected by Tag.
type ElementValue struct {
	Tag         byte // 'B','C','D','F','I','J','S','Z','s','e','c','@','['
	Const       string // for 's' (UTF8) or the primitive-carrying constant-pool lookup key
	ConstInt    int64
	ConstFloat  float64
	EnumType    string
	EnumConst   string
	ClassName   string
	Annotation  *Annotation
	ArrayValues []ElementValue
}

func encodeAnnotation(pool *ConstantPool, a Annotation) []byte {
	var out []byte
	typeIdx := pool.UTF8(a.TypeDescriptor)
	out = appendU2(out, typeIdx)
	out = appendU2(out, uint16(len(a.Elements)))
	for _, el := range a.Elements {
		out = appendU2(out, pool.UTF8(el.Name))
		out = append(out, encodeElementValue(pool, el.Value)...)
	}
	return out
}

func encodeElementValue(pool *ConstantPool, v ElementValue) []byte {
	out := []byte{v.Tag}
	switch v.Tag {
	case 'B', 'C', 'I', 'S', 'Z':
		out = appendU2(out, pool.Integer(int32(v.ConstInt)))
	case 'J':
		out = appendU2(out, pool.Long(v.ConstInt))
	case 'F':
		out = appendU2(out, pool.Float(float32(v.ConstFloat)))
	case 'D':
		out = appendU2(out, pool.Double(v.ConstFloat))
	case 's':
		out = appendU2(out, pool.UTF8(v.Const))
	case 'e':
		out = appendU2(out, pool.UTF8(v.EnumType))
		out = appendU2(out, pool.UTF8(v.EnumConst))
	case 'c':
		out = appendU2(out, pool.UTF8(v.ClassName))
	case '@':
		out = append(out, encodeAnnotation(pool, *v.Annotation)...)
	case '[':
		out = appendU2(out, uint16(len(v.ArrayValues)))
		for _, ev := range v.ArrayValues {
			out = append(out, encodeElementValue(pool, ev)...)
		}
	default:
		panic(fmt.Sprintf("classfile: unknown element_value tag %q", v.Tag))
	}
	return out
}

func appendU2(b []byte, v uint16) []byte {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	return append(b, tmp[:]...)
}

func appendU4(b []byte, v uint32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	return append(b, tmp[:]...)
}

// AnnotationsAttribute builds a RuntimeVisible/InvisibleAnnotations body.
func AnnotationsAttribute(pool *ConstantPool, annos []Annotation) []byte {
	out := appendU2(nil, uint16(len(annos)))
	for _, a := range annos {
		out = append(out, encodeAnnotation(pool, a)...)
	}
	return out
}

// TypeAnnotationsAttribute builds a RuntimeVisible/InvisibleTypeAnnotations body.
func TypeAnnotationsAttribute(pool *ConstantPool, tas []TypeAnnotation) []byte {
	out := appendU2(nil, uint16(len(tas)))
	for _, ta := range tas {
		out = append(out, ta.encode(pool)...)
	}
	return out
}

// ParameterAnnotationsAttribute builds a RuntimeVisible/InvisibleParameterAnnotations
// body: num_parameters followed by, for each parameter (synthetic ones
// already excluded by the caller per §4.4), its own annotation list —
// empty inner lists are retained, not omitted.
func ParameterAnnotationsAttribute(pool *ConstantPool, perParam [][]Annotation) []byte {
	out := []byte{byte(len(perParam))}
	for _, annos := range perParam {
		out = appendU2(out, uint16(len(annos)))
		for _, a := range annos {
			out = append(out, encodeAnnotation(pool, a)...)
		}
	}
	return out
}

// SignatureAttribute builds a Signature attribute body: a single UTF8
// constant-pool index.
func SignatureAttribute(pool *ConstantPool, signature string) []byte {
	return appendU2(nil, pool.UTF8(signature))
}

// ConstantValueAttribute builds a ConstantValue attribute body: a single
// constant-pool index, already resolved to the right constant kind by the caller.
func ConstantValueAttribute(idx uint16) []byte {
	return appendU2(nil, idx)
}

// ExceptionsAttribute builds an Exceptions attribute body.
func ExceptionsAttribute(pool *ConstantPool, throwsBinaryNames []string) []byte {
	out := appendU2(nil, uint16(len(throwsBinaryNames)))
	for _, name := range throwsBinaryNames {
		out = appendU2(out, pool.Class(name))
	}
	return out
}

// AnnotationDefaultAttribute builds an AnnotationDefault attribute body.
func AnnotationDefaultAttribute(pool *ConstantPool, v ElementValue) []byte {
	return encodeElementValue(pool, v)
}

// InnerClassEntry is one row of the InnerClasses attribute.
type InnerClassEntry struct {
	InnerBinaryName string
	OuterBinaryName string // empty for a local/anonymous class, none here since we never synthesize those
	InnerSimpleName string // empty for an anonymous class
	InnerAccess     uint16 // original, pre-promotion access flags (§4.4)
}

// InnerClassesAttribute builds an InnerClasses attribute body. Caller is
// responsible for outer-before-inner ordering (§4.4, §6.1).
func InnerClassesAttribute(pool *ConstantPool, entries []InnerClassEntry) []byte {
	out := appendU2(nil, uint16(len(entries)))
	for _, e := range entries {
		out = appendU2(out, pool.Class(e.InnerBinaryName))
		if e.OuterBinaryName != "" {
			out = appendU2(out, pool.Class(e.OuterBinaryName))
		} else {
			out = appendU2(out, 0)
		}
		if e.InnerSimpleName != "" {
			out = appendU2(out, pool.UTF8(e.InnerSimpleName))
		} else {
			out = appendU2(out, 0)
		}
		out = appendU2(out, e.InnerAccess)
	}
	return out
}

// MethodParametersAttribute builds a MethodParameters attribute body.
func MethodParametersAttribute(pool *ConstantPool, names []string, access []uint16) []byte {
	out := []byte{byte(len(names))}
	for i, n := range names {
		if n != "" {
			out = appendU2(out, pool.UTF8(n))
		} else {
			out = appendU2(out, 0)
		}
		out = appendU2(out, access[i])
	}
	return out
}

// RequireEntry, ExportEntry, OpenEntry, ProvideEntry are the Module
// attribute's sub-tables (JVMS §4.7.25).
type RequireEntry struct {
	Module  string
	Flags   uint16
	Version string // empty if absent
}

type ExportEntry struct {
	Package string
	Flags   uint16
	To      []string
}

type OpenEntry struct {
	Package string
	Flags   uint16
	To      []string
}

type ProvideEntry struct {
	ServiceType string
	With        []string
}

// ModuleAttribute builds the Module attribute body for a module-info class.
func ModuleAttribute(pool *ConstantPool, moduleName string, moduleFlags uint16, moduleVersion string,
	requires []RequireEntry, exports []ExportEntry, opens []OpenEntry, uses []string, provides []ProvideEntry) []byte {
	var out []byte
	out = appendU2(out, pool.moduleIndex(moduleName))
	out = appendU2(out, moduleFlags)
	if moduleVersion != "" {
		out = appendU2(out, pool.UTF8(moduleVersion))
	} else {
		out = appendU2(out, 0)
	}

	out = appendU2(out, uint16(len(requires)))
	for _, r := range requires {
		out = appendU2(out, pool.moduleIndex(r.Module))
		out = appendU2(out, r.Flags)
		if r.Version != "" {
			out = appendU2(out, pool.UTF8(r.Version))
		} else {
			out = appendU2(out, 0)
		}
	}

	out = appendU2(out, uint16(len(exports)))
	for _, e := range exports {
		out = appendU2(out, pool.packageIndex(e.Package))
		out = appendU2(out, e.Flags)
		out = appendU2(out, uint16(len(e.To)))
		for _, to := range e.To {
			out = appendU2(out, pool.moduleIndex(to))
		}
	}

	out = appendU2(out, uint16(len(opens)))
	for _, o := range opens {
		out = appendU2(out, pool.packageIndex(o.Package))
		out = appendU2(out, o.Flags)
		out = appendU2(out, uint16(len(o.To)))
		for _, to := range o.To {
			out = appendU2(out, pool.moduleIndex(to))
		}
	}

	out = appendU2(out, uint16(len(uses)))
	for _, u := range uses {
		out = appendU2(out, pool.Class(u))
	}

	out = appendU2(out, uint16(len(provides)))
	for _, pr := range provides {
		out = appendU2(out, pool.Class(pr.ServiceType))
		out = appendU2(out, uint16(len(pr.With)))
		for _, w := range pr.With {
			out = appendU2(out, pool.Class(w))
		}
	}
	return out
}

// moduleIndex and packageIndex intern CONSTANT_Module_info/CONSTANT_Package_info,
// both of which are just a UTF8 wrapper like CONSTANT_Class_info.
func (p *ConstantPool) moduleIndex(name string) uint16 {
	nameIdx := p.UTF8(name)
	data := appendU2(nil, nameIdx)
	return p.intern("mod:"+name, tagModule, data, false)
}

func (p *ConstantPool) packageIndex(name string) uint16 {
	nameIdx := p.UTF8(name)
	data := appendU2(nil, nameIdx)
	return p.intern("pkg:"+name, tagPackage, data, false)
}

// RecordComponentEntry is one row of a Record attribute.
type RecordComponentEntry struct {
	Name       string
	Descriptor string
	Attributes []Attribute
}

// RecordAttribute builds a Record attribute body.
func RecordAttribute(pool *ConstantPool, components []RecordComponentEntry) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeU2(&buf, uint16(len(components))); err != nil {
		return nil, err
	}
	for _, c := range components {
		if err := writeU2(&buf, pool.UTF8(c.Name)); err != nil {
			return nil, err
		}
		if err := writeU2(&buf, pool.UTF8(c.Descriptor)); err != nil {
			return nil, err
		}
		if err := writeAttributes(&buf, pool, c.Attributes); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// PermittedSubclassesAttribute builds a PermittedSubclasses attribute body.
func PermittedSubclassesAttribute(pool *ConstantPool, binaryNames []string) []byte {
	out := appendU2(nil, uint16(len(binaryNames)))
	for _, n := range binaryNames {
		out = appendU2(out, pool.Class(n))
	}
	return out
}

// NestHostAttribute builds a NestHost attribute body.
func NestHostAttribute(pool *ConstantPool, hostBinaryName string) []byte {
	return appendU2(nil, pool.Class(hostBinaryName))
}

// NestMembersAttribute builds a NestMembers attribute body.
func NestMembersAttribute(pool *ConstantPool, memberBinaryNames []string) []byte {
	out := appendU2(nil, uint16(len(memberBinaryNames)))
	for _, n := range memberBinaryNames {
		out = appendU2(out, pool.Class(n))
	}
	return out
}

// DeprecatedAttribute builds a (empty-bodied) Deprecated attribute.
func DeprecatedAttribute() []byte { return nil }
