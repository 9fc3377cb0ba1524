package classfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// pooledConstant is one decoded constant-pool entry; data is the raw
// tag-specific payload, exactly as read off the wire (mirrors entry on the
// write side, minus the dedup bookkeeping Reading never needs).
type pooledConstant struct {
	tag  uint8
	data []byte
}

// ReadPool is a parsed constant pool, 1-indexed like the class file format
// itself. Index 0 and the second slot of every Long/Double entry are nil
// placeholders, mirroring the write side's "wide" two-slot accounting.
type ReadPool struct {
	entries []*pooledConstant
}

func (p *ReadPool) get(idx uint16) *pooledConstant {
	if idx == 0 || int(idx) >= len(p.entries) {
		return nil
	}
	return p.entries[idx]
}

// UTF8At resolves a CONSTANT_Utf8_info at idx.
func (p *ReadPool) UTF8At(idx uint16) string {
	e := p.get(idx)
	if e == nil || e.tag != tagUTF8 {
		return ""
	}
	return decodeModifiedUTF8(e.data)
}

// ClassNameAt resolves a CONSTANT_Class_info at idx to its binary name.
func (p *ReadPool) ClassNameAt(idx uint16) string {
	e := p.get(idx)
	if e == nil || e.tag != tagClass {
		return ""
	}
	return p.UTF8At(binary.BigEndian.Uint16(e.data))
}

// NameAndTypeAt resolves a CONSTANT_NameAndType_info at idx.
func (p *ReadPool) NameAndTypeAt(idx uint16) (name, descriptor string) {
	e := p.get(idx)
	if e == nil || e.tag != tagNameAndType {
		return "", ""
	}
	return p.UTF8At(binary.BigEndian.Uint16(e.data[0:2])), p.UTF8At(binary.BigEndian.Uint16(e.data[2:4]))
}

// IntegerAt resolves a CONSTANT_Integer_info at idx.
func (p *ReadPool) IntegerAt(idx uint16) int32 {
	e := p.get(idx)
	if e == nil {
		return 0
	}
	return int32(binary.BigEndian.Uint32(e.data))
}

// FloatAt resolves a CONSTANT_Float_info at idx.
func (p *ReadPool) FloatAt(idx uint16) float32 {
	e := p.get(idx)
	if e == nil {
		return 0
	}
	return math.Float32frombits(binary.BigEndian.Uint32(e.data))
}

// LongAt resolves a CONSTANT_Long_info at idx.
func (p *ReadPool) LongAt(idx uint16) int64 {
	e := p.get(idx)
	if e == nil {
		return 0
	}
	return int64(binary.BigEndian.Uint64(e.data))
}

// DoubleAt resolves a CONSTANT_Double_info at idx.
func (p *ReadPool) DoubleAt(idx uint16) float64 {
	e := p.get(idx)
	if e == nil {
		return 0
	}
	return math.Float64frombits(binary.BigEndian.Uint64(e.data))
}

// StringAt resolves a CONSTANT_String_info at idx to the UTF8 it wraps.
func (p *ReadPool) StringAt(idx uint16) string {
	e := p.get(idx)
	if e == nil || e.tag != tagString {
		return ""
	}
	return p.UTF8At(binary.BigEndian.Uint16(e.data))
}

// byteSource is the minimal sequential-read surface readAttributeList and
// readMember need; ioCursor implements it directly over an io.Reader for
// top-level class/field/method reads, cursor implements it over an
// already-buffered []byte for structures nested inside an attribute body
// (Record's per-component attribute table).
type byteSource interface {
	u1() (uint8, error)
	u2() (uint16, error)
	u4() (uint32, error)
	bytes(n int) ([]byte, error)
}

type ioCursor struct{ r io.Reader }

func (c *ioCursor) u1() (uint8, error) {
	var b [1]byte
	if _, err := io.ReadFull(c.r, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *ioCursor) u2() (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(c.r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

func (c *ioCursor) u4() (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(c.r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

func (c *ioCursor) bytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(c.r, b); err != nil {
		return nil, err
	}
	return b, nil
}

// cursor reads sequentially from an in-memory attribute body, the shape
// every Decode* function below walks once readAttributeList has already
// split the body out of its enclosing table.
type cursor struct {
	data []byte
	pos  int
}

func (c *cursor) u1() (uint8, error) {
	if c.pos+1 > len(c.data) {
		return 0, io.ErrUnexpectedEOF
	}
	v := c.data[c.pos]
	c.pos++
	return v, nil
}

func (c *cursor) u2() (uint16, error) {
	if c.pos+2 > len(c.data) {
		return 0, io.ErrUnexpectedEOF
	}
	v := binary.BigEndian.Uint16(c.data[c.pos:])
	c.pos += 2
	return v, nil
}

func (c *cursor) u4() (uint32, error) {
	if c.pos+4 > len(c.data) {
		return 0, io.ErrUnexpectedEOF
	}
	v := binary.BigEndian.Uint32(c.data[c.pos:])
	c.pos += 4
	return v, nil
}

func (c *cursor) bytes(n int) ([]byte, error) {
	if c.pos+n > len(c.data) {
		return nil, io.ErrUnexpectedEOF
	}
	v := c.data[c.pos : c.pos+n]
	c.pos += n
	return v, nil
}

// ParsedClass is a fully-decoded class file: every header field plus every
// field/method/class attribute body, split out but not yet semantically
// interpreted — Decode* below turns an individual attribute body into its
// structured form once a caller (internal/classpath) knows which ones it
// wants.
type ParsedClass struct {
	MinorVersion uint16
	MajorVersion uint16

	AccessFlags uint16
	ThisClass   string
	SuperClass  string
	Interfaces  []string

	Fields  []ParsedMember
	Methods []ParsedMember

	Attributes []Attribute
	Pool       *ReadPool
}

// ParsedMember is one decoded field_info or method_info.
type ParsedMember struct {
	AccessFlags uint16
	Name        string
	Descriptor  string
	Attributes  []Attribute
}

// AttributeBody returns the body of the first attribute in attrs named
// name. Every attribute kind this compiler reads or writes appears at most
// once per table, so "first" and "only" coincide in practice.
func AttributeBody(attrs []Attribute, name string) ([]byte, bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a.Body, true
		}
	}
	return nil, false
}

// Read parses a standard binary class file (JVMS §4.1). It never reads a
// Code attribute's instruction stream; the bodies of attributes this
// compiler doesn't know about are kept as opaque bytes in Attributes and
// simply never decoded.
func Read(r io.Reader) (*ParsedClass, error) {
	src := &ioCursor{r: r}

	got, err := src.u4()
	if err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}
	if got != magic {
		return nil, fmt.Errorf("classfile: bad magic %#08x", got)
	}

	minor, err := src.u2()
	if err != nil {
		return nil, fmt.Errorf("reading minor_version: %w", err)
	}
	major, err := src.u2()
	if err != nil {
		return nil, fmt.Errorf("reading major_version: %w", err)
	}

	poolCount, err := src.u2()
	if err != nil {
		return nil, fmt.Errorf("reading constant_pool_count: %w", err)
	}
	pool, err := readConstantPool(src, poolCount)
	if err != nil {
		return nil, fmt.Errorf("reading constant pool: %w", err)
	}

	accessFlags, err := src.u2()
	if err != nil {
		return nil, fmt.Errorf("reading access_flags: %w", err)
	}
	thisIdx, err := src.u2()
	if err != nil {
		return nil, fmt.Errorf("reading this_class: %w", err)
	}
	superIdx, err := src.u2()
	if err != nil {
		return nil, fmt.Errorf("reading super_class: %w", err)
	}

	ifaceCount, err := src.u2()
	if err != nil {
		return nil, fmt.Errorf("reading interfaces_count: %w", err)
	}
	interfaces := make([]string, ifaceCount)
	for i := range interfaces {
		idx, err := src.u2()
		if err != nil {
			return nil, fmt.Errorf("reading interface %d: %w", i, err)
		}
		interfaces[i] = pool.ClassNameAt(idx)
	}

	fieldCount, err := src.u2()
	if err != nil {
		return nil, fmt.Errorf("reading fields_count: %w", err)
	}
	fields := make([]ParsedMember, fieldCount)
	for i := range fields {
		m, err := readMember(src, pool)
		if err != nil {
			return nil, fmt.Errorf("reading field %d: %w", i, err)
		}
		fields[i] = m
	}

	methodCount, err := src.u2()
	if err != nil {
		return nil, fmt.Errorf("reading methods_count: %w", err)
	}
	methods := make([]ParsedMember, methodCount)
	for i := range methods {
		m, err := readMember(src, pool)
		if err != nil {
			return nil, fmt.Errorf("reading method %d: %w", i, err)
		}
		methods[i] = m
	}

	classAttrs, err := readAttributeList(src, pool)
	if err != nil {
		return nil, fmt.Errorf("reading class attributes: %w", err)
	}

	var superName string
	if superIdx != 0 {
		superName = pool.ClassNameAt(superIdx)
	}

	return &ParsedClass{
		MinorVersion: minor,
		MajorVersion: major,
		AccessFlags:  accessFlags,
		ThisClass:    pool.ClassNameAt(thisIdx),
		SuperClass:   superName,
		Interfaces:   interfaces,
		Fields:       fields,
		Methods:      methods,
		Attributes:   classAttrs,
		Pool:         pool,
	}, nil
}

func readMember(src byteSource, pool *ReadPool) (ParsedMember, error) {
	access, err := src.u2()
	if err != nil {
		return ParsedMember{}, fmt.Errorf("reading access_flags: %w", err)
	}
	nameIdx, err := src.u2()
	if err != nil {
		return ParsedMember{}, fmt.Errorf("reading name_index: %w", err)
	}
	descIdx, err := src.u2()
	if err != nil {
		return ParsedMember{}, fmt.Errorf("reading descriptor_index: %w", err)
	}
	attrs, err := readAttributeList(src, pool)
	if err != nil {
		return ParsedMember{}, fmt.Errorf("reading attributes: %w", err)
	}
	return ParsedMember{
		AccessFlags: access,
		Name:        pool.UTF8At(nameIdx),
		Descriptor:  pool.UTF8At(descIdx),
		Attributes:  attrs,
	}, nil
}

func readAttributeList(src byteSource, pool *ReadPool) ([]Attribute, error) {
	n, err := src.u2()
	if err != nil {
		return nil, fmt.Errorf("reading attributes_count: %w", err)
	}
	out := make([]Attribute, n)
	for i := range out {
		nameIdx, err := src.u2()
		if err != nil {
			return nil, fmt.Errorf("reading attribute_name_index: %w", err)
		}
		length, err := src.u4()
		if err != nil {
			return nil, fmt.Errorf("reading attribute_length: %w", err)
		}
		body, err := src.bytes(int(length))
		if err != nil {
			return nil, fmt.Errorf("reading attribute body: %w", err)
		}
		out[i] = Attribute{Name: pool.UTF8At(nameIdx), Body: body}
	}
	return out, nil
}

// readConstantPool decodes constant_pool_count-1 entries, skipping the
// bytes of every tag this compiler never itself emits (Fieldref,
// Methodref, InterfaceMethodref, MethodHandle, MethodType, Dynamic,
// InvokeDynamic) so that later indices still line up — a classpath class
// file can legally carry these even though nothing here ever decodes them
// (method bodies, and anything only a Code attribute would reference, are
// never read).
func readConstantPool(src byteSource, count uint16) (*ReadPool, error) {
	entries := make([]*pooledConstant, count)
	for i := uint16(1); i < count; i++ {
		tag, err := src.u1()
		if err != nil {
			return nil, fmt.Errorf("reading tag at index %d: %w", i, err)
		}
		var size int
		wide := false
		switch tag {
		case tagUTF8:
			length, err := src.u2()
			if err != nil {
				return nil, fmt.Errorf("reading utf8 length at index %d: %w", i, err)
			}
			data, err := src.bytes(int(length))
			if err != nil {
				return nil, fmt.Errorf("reading utf8 bytes at index %d: %w", i, err)
			}
			entries[i] = &pooledConstant{tag: tag, data: data}
			continue
		case tagInteger, tagFloat:
			size = 4
		case tagLong, tagDouble:
			size = 8
			wide = true
		case tagClass, tagString, tagMethodType, tagModule, tagPackage:
			size = 2
		case tagFieldref, tagMethodref, tagInterfaceMethodref, tagNameAndType, tagDynamic, tagInvokeDynamic:
			size = 4
		case tagMethodHandle:
			size = 3
		default:
			return nil, fmt.Errorf("classfile: unknown constant pool tag %d at index %d", tag, i)
		}
		data, err := src.bytes(size)
		if err != nil {
			return nil, fmt.Errorf("reading entry at index %d: %w", i, err)
		}
		entries[i] = &pooledConstant{tag: tag, data: data}
		if wide {
			i++
		}
	}
	return &ReadPool{entries: entries}, nil
}

// decodeModifiedUTF8 inverts encodeModifiedUTF8: standard UTF-8 decoding
// except the two-byte overlong 0xC0 0x80 form decodes to NUL, and a
// surrogate pair spread across two three-byte sequences is recombined into
// its single supplementary-plane rune.
func decodeModifiedUTF8(b []byte) string {
	runes := make([]rune, 0, len(b))
	i := 0
	for i < len(b) {
		c := b[i]
		switch {
		case c&0x80 == 0:
			runes = append(runes, rune(c))
			i++
		case c&0xE0 == 0xC0 && i+1 < len(b):
			c2 := b[i+1]
			runes = append(runes, rune(c&0x1F)<<6|rune(c2&0x3F))
			i += 2
		case c&0xF0 == 0xE0 && i+2 < len(b):
			c2, c3 := b[i+1], b[i+2]
			runes = append(runes, rune(c&0x0F)<<12|rune(c2&0x3F)<<6|rune(c3&0x3F))
			i += 3
		default:
			i++
		}
	}

	out := make([]rune, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r >= 0xD800 && r <= 0xDBFF && i+1 < len(runes) {
			lo := runes[i+1]
			if lo >= 0xDC00 && lo <= 0xDFFF {
				out = append(out, ((r-0xD800)<<10|(lo-0xDC00))+0x10000)
				i++
				continue
			}
		}
		out = append(out, r)
	}
	return string(out)
}

// DecodeSignature extracts a Signature attribute's UTF8 string.
func DecodeSignature(pool *ReadPool, body []byte) string {
	if len(body) < 2 {
		return ""
	}
	return pool.UTF8At(binary.BigEndian.Uint16(body))
}

// DecodeConstantValue resolves a ConstantValue attribute to the constant
// kind its referenced pool entry actually has; the five legal kinds
// (Integer, Float, Long, Double, String) each get their own ElementValue
// tag so the caller can switch on it the same way it would for any other
// resolved constant.
func DecodeConstantValue(pool *ReadPool, body []byte) ElementValue {
	if len(body) < 2 {
		return ElementValue{}
	}
	idx := binary.BigEndian.Uint16(body)
	e := pool.get(idx)
	if e == nil {
		return ElementValue{}
	}
	switch e.tag {
	case tagInteger:
		return ElementValue{Tag: 'I', ConstInt: int64(pool.IntegerAt(idx))}
	case tagFloat:
		return ElementValue{Tag: 'F', ConstFloat: float64(pool.FloatAt(idx))}
	case tagLong:
		return ElementValue{Tag: 'J', ConstInt: pool.LongAt(idx)}
	case tagDouble:
		return ElementValue{Tag: 'D', ConstFloat: pool.DoubleAt(idx)}
	case tagString:
		return ElementValue{Tag: 's', Const: pool.StringAt(idx)}
	}
	return ElementValue{}
}

// DecodeExceptions decodes an Exceptions attribute body.
func DecodeExceptions(pool *ReadPool, body []byte) ([]string, error) {
	c := &cursor{data: body}
	n, err := c.u2()
	if err != nil {
		return nil, fmt.Errorf("reading number_of_exceptions: %w", err)
	}
	out := make([]string, n)
	for i := range out {
		idx, err := c.u2()
		if err != nil {
			return nil, fmt.Errorf("reading exception %d: %w", i, err)
		}
		out[i] = pool.ClassNameAt(idx)
	}
	return out, nil
}

// DecodeAnnotationDefault decodes an AnnotationDefault attribute body.
func DecodeAnnotationDefault(pool *ReadPool, body []byte) (ElementValue, error) {
	c := &cursor{data: body}
	return decodeElementValue(pool, c)
}

// DecodeAnnotations decodes a RuntimeVisible/InvisibleAnnotations body.
func DecodeAnnotations(pool *ReadPool, body []byte) ([]Annotation, error) {
	c := &cursor{data: body}
	n, err := c.u2()
	if err != nil {
		return nil, fmt.Errorf("reading num_annotations: %w", err)
	}
	out := make([]Annotation, n)
	for i := range out {
		a, err := decodeAnnotation(pool, c)
		if err != nil {
			return nil, fmt.Errorf("reading annotation %d: %w", i, err)
		}
		out[i] = a
	}
	return out, nil
}

// DecodeParameterAnnotations decodes a RuntimeVisible/InvisibleParameterAnnotations
// body. A parameter this compiler never attached any annotation to still
// gets its own (empty) slot, preserving positional alignment with the
// method's non-synthetic parameters.
func DecodeParameterAnnotations(pool *ReadPool, body []byte) ([][]Annotation, error) {
	c := &cursor{data: body}
	numParams, err := c.u1()
	if err != nil {
		return nil, fmt.Errorf("reading num_parameters: %w", err)
	}
	out := make([][]Annotation, numParams)
	for i := range out {
		n, err := c.u2()
		if err != nil {
			return nil, fmt.Errorf("reading num_annotations for parameter %d: %w", i, err)
		}
		annos := make([]Annotation, n)
		for j := range annos {
			a, err := decodeAnnotation(pool, c)
			if err != nil {
				return nil, fmt.Errorf("reading parameter %d annotation %d: %w", i, j, err)
			}
			annos[j] = a
		}
		out[i] = annos
	}
	return out, nil
}

// DecodeTypeAnnotations decodes a RuntimeVisible/InvisibleTypeAnnotations body.
func DecodeTypeAnnotations(pool *ReadPool, body []byte) ([]TypeAnnotation, error) {
	c := &cursor{data: body}
	n, err := c.u2()
	if err != nil {
		return nil, fmt.Errorf("reading num_annotations: %w", err)
	}
	out := make([]TypeAnnotation, n)
	for i := range out {
		target, err := decodeTypeAnnotationTarget(c)
		if err != nil {
			return nil, fmt.Errorf("reading type annotation %d target: %w", i, err)
		}
		path, err := decodeTypePath(c)
		if err != nil {
			return nil, fmt.Errorf("reading type annotation %d path: %w", i, err)
		}
		anno, err := decodeAnnotation(pool, c)
		if err != nil {
			return nil, fmt.Errorf("reading type annotation %d payload: %w", i, err)
		}
		out[i] = TypeAnnotation{Target: anno, TargetInfo: target, Path: path}
	}
	return out, nil
}

func decodeTypeAnnotationTarget(c *cursor) (TypeAnnotationTarget, error) {
	kindByte, err := c.u1()
	if err != nil {
		return TypeAnnotationTarget{}, err
	}
	kind := TypeAnnotationTargetKind(kindByte)
	switch kind {
	case TargetClassTypeParam, TargetMethodTypeParam:
		idx, err := c.u1()
		if err != nil {
			return TypeAnnotationTarget{}, err
		}
		return TypeAnnotationTarget{Kind: kind, Index: idx}, nil
	case TargetClassExtends:
		sup, err := c.u2()
		if err != nil {
			return TypeAnnotationTarget{}, err
		}
		return TypeAnnotationTarget{Kind: kind, SupertypeIdx: sup}, nil
	case TargetClassTypeParamBound, TargetMethodTypeParamBound:
		tp, err := c.u1()
		if err != nil {
			return TypeAnnotationTarget{}, err
		}
		bd, err := c.u1()
		if err != nil {
			return TypeAnnotationTarget{}, err
		}
		return TypeAnnotationTarget{Kind: kind, TypeParamIdx: tp, BoundIdx: bd}, nil
	case TargetField, TargetMethodReturn, TargetMethodReceiver:
		return TypeAnnotationTarget{Kind: kind}, nil
	case TargetMethodFormalParam:
		idx, err := c.u1()
		if err != nil {
			return TypeAnnotationTarget{}, err
		}
		return TypeAnnotationTarget{Kind: kind, Index: idx}, nil
	case TargetThrows:
		sup, err := c.u2()
		if err != nil {
			return TypeAnnotationTarget{}, err
		}
		return TypeAnnotationTarget{Kind: kind, SupertypeIdx: sup}, nil
	}
	return TypeAnnotationTarget{}, fmt.Errorf("classfile: unknown type annotation target_type 0x%02x", kindByte)
}

func decodeTypePath(c *cursor) ([]TypePathStep, error) {
	n, err := c.u1()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	out := make([]TypePathStep, n)
	for i := range out {
		kind, err := c.u1()
		if err != nil {
			return nil, err
		}
		argIdx, err := c.u1()
		if err != nil {
			return nil, err
		}
		out[i] = TypePathStep{Kind: TypePathKind(kind), TypeArgumentIdx: argIdx}
	}
	return out, nil
}

func decodeAnnotation(pool *ReadPool, c *cursor) (Annotation, error) {
	typeIdx, err := c.u2()
	if err != nil {
		return Annotation{}, err
	}
	numPairs, err := c.u2()
	if err != nil {
		return Annotation{}, err
	}
	elems := make([]AnnotationElement, numPairs)
	for i := range elems {
		nameIdx, err := c.u2()
		if err != nil {
			return Annotation{}, err
		}
		val, err := decodeElementValue(pool, c)
		if err != nil {
			return Annotation{}, err
		}
		elems[i] = AnnotationElement{Name: pool.UTF8At(nameIdx), Value: val}
	}
	return Annotation{TypeDescriptor: pool.UTF8At(typeIdx), Elements: elems}, nil
}

func decodeElementValue(pool *ReadPool, c *cursor) (ElementValue, error) {
	tag, err := c.u1()
	if err != nil {
		return ElementValue{}, err
	}
	switch tag {
	case 'B', 'C', 'I', 'S', 'Z':
		idx, err := c.u2()
		if err != nil {
			return ElementValue{}, err
		}
		return ElementValue{Tag: tag, ConstInt: int64(pool.IntegerAt(idx))}, nil
	case 'J':
		idx, err := c.u2()
		if err != nil {
			return ElementValue{}, err
		}
		return ElementValue{Tag: tag, ConstInt: pool.LongAt(idx)}, nil
	case 'F':
		idx, err := c.u2()
		if err != nil {
			return ElementValue{}, err
		}
		return ElementValue{Tag: tag, ConstFloat: float64(pool.FloatAt(idx))}, nil
	case 'D':
		idx, err := c.u2()
		if err != nil {
			return ElementValue{}, err
		}
		return ElementValue{Tag: tag, ConstFloat: pool.DoubleAt(idx)}, nil
	case 's':
		idx, err := c.u2()
		if err != nil {
			return ElementValue{}, err
		}
		return ElementValue{Tag: tag, Const: pool.UTF8At(idx)}, nil
	case 'e':
		typeIdx, err := c.u2()
		if err != nil {
			return ElementValue{}, err
		}
		constIdx, err := c.u2()
		if err != nil {
			return ElementValue{}, err
		}
		return ElementValue{Tag: tag, EnumType: pool.UTF8At(typeIdx), EnumConst: pool.UTF8At(constIdx)}, nil
	case 'c':
		idx, err := c.u2()
		if err != nil {
			return ElementValue{}, err
		}
		return ElementValue{Tag: tag, ClassName: pool.UTF8At(idx)}, nil
	case '@':
		a, err := decodeAnnotation(pool, c)
		if err != nil {
			return ElementValue{}, err
		}
		return ElementValue{Tag: tag, Annotation: &a}, nil
	case '[':
		n, err := c.u2()
		if err != nil {
			return ElementValue{}, err
		}
		vals := make([]ElementValue, n)
		for i := range vals {
			v, err := decodeElementValue(pool, c)
			if err != nil {
				return ElementValue{}, err
			}
			vals[i] = v
		}
		return ElementValue{Tag: tag, ArrayValues: vals}, nil
	}
	return ElementValue{}, fmt.Errorf("classfile: unknown element_value tag %q", tag)
}

// DecodeInnerClasses decodes an InnerClasses attribute body.
func DecodeInnerClasses(pool *ReadPool, body []byte) ([]InnerClassEntry, error) {
	c := &cursor{data: body}
	n, err := c.u2()
	if err != nil {
		return nil, fmt.Errorf("reading number_of_classes: %w", err)
	}
	out := make([]InnerClassEntry, n)
	for i := range out {
		innerIdx, err := c.u2()
		if err != nil {
			return nil, fmt.Errorf("reading inner_class_info_index: %w", err)
		}
		outerIdx, err := c.u2()
		if err != nil {
			return nil, fmt.Errorf("reading outer_class_info_index: %w", err)
		}
		nameIdx, err := c.u2()
		if err != nil {
			return nil, fmt.Errorf("reading inner_name_index: %w", err)
		}
		access, err := c.u2()
		if err != nil {
			return nil, fmt.Errorf("reading inner_class_access_flags: %w", err)
		}
		e := InnerClassEntry{InnerBinaryName: pool.ClassNameAt(innerIdx), InnerAccess: access}
		if outerIdx != 0 {
			e.OuterBinaryName = pool.ClassNameAt(outerIdx)
		}
		if nameIdx != 0 {
			e.InnerSimpleName = pool.UTF8At(nameIdx)
		}
		out[i] = e
	}
	return out, nil
}

// DecodeRecord decodes a Record attribute body, including each
// component's own nested attribute table.
func DecodeRecord(pool *ReadPool, body []byte) ([]RecordComponentEntry, error) {
	c := &cursor{data: body}
	n, err := c.u2()
	if err != nil {
		return nil, fmt.Errorf("reading components_count: %w", err)
	}
	out := make([]RecordComponentEntry, n)
	for i := range out {
		nameIdx, err := c.u2()
		if err != nil {
			return nil, fmt.Errorf("reading component %d name_index: %w", i, err)
		}
		descIdx, err := c.u2()
		if err != nil {
			return nil, fmt.Errorf("reading component %d descriptor_index: %w", i, err)
		}
		attrs, err := readAttributeList(c, pool)
		if err != nil {
			return nil, fmt.Errorf("reading component %d attributes: %w", i, err)
		}
		out[i] = RecordComponentEntry{Name: pool.UTF8At(nameIdx), Descriptor: pool.UTF8At(descIdx), Attributes: attrs}
	}
	return out, nil
}

// DecodePermittedSubclasses decodes a PermittedSubclasses attribute body.
func DecodePermittedSubclasses(pool *ReadPool, body []byte) ([]string, error) {
	c := &cursor{data: body}
	n, err := c.u2()
	if err != nil {
		return nil, fmt.Errorf("reading number_of_classes: %w", err)
	}
	out := make([]string, n)
	for i := range out {
		idx, err := c.u2()
		if err != nil {
			return nil, fmt.Errorf("reading class %d: %w", i, err)
		}
		out[i] = pool.ClassNameAt(idx)
	}
	return out, nil
}

// MethodParameterEntry is one row of a MethodParameters attribute.
type MethodParameterEntry struct {
	Name        string // empty when name_index is 0 (a formal parameter with no name)
	AccessFlags uint16
}

// DecodeMethodParameters decodes a MethodParameters attribute body.
func DecodeMethodParameters(pool *ReadPool, body []byte) ([]MethodParameterEntry, error) {
	c := &cursor{data: body}
	n, err := c.u1()
	if err != nil {
		return nil, fmt.Errorf("reading parameters_count: %w", err)
	}
	out := make([]MethodParameterEntry, n)
	for i := range out {
		nameIdx, err := c.u2()
		if err != nil {
			return nil, fmt.Errorf("reading name_index %d: %w", i, err)
		}
		access, err := c.u2()
		if err != nil {
			return nil, fmt.Errorf("reading access_flags %d: %w", i, err)
		}
		var name string
		if nameIdx != 0 {
			name = pool.UTF8At(nameIdx)
		}
		out[i] = MethodParameterEntry{Name: name, AccessFlags: access}
	}
	return out, nil
}
