package classfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Constant-pool tag values, JVMS §4.4.
const (
	tagUTF8               = 1
	tagInteger            = 3
	tagFloat              = 4
	tagLong               = 5
	tagDouble             = 6
	tagClass              = 7
	tagString             = 8
	tagFieldref           = 9
	tagMethodref          = 10
	tagInterfaceMethodref = 11
	tagNameAndType        = 12
	tagMethodHandle       = 15
	tagMethodType         = 16
	tagDynamic            = 17
	tagInvokeDynamic      = 18
	tagModule             = 19
	tagPackage            = 20
)

// entry is one constant-pool slot. Long and Double entries occupy two
// indices (the JVMS's "two-slot-wide" quirk); entry itself only ever
// represents one slot's worth of bytes, and ConstantPool.nextIndex tracks
// the width.
type entry struct {
	tag  uint8
	data []byte // pre-encoded tag-specific payload, written verbatim after the tag byte
	wide bool   // true for Long/Double: consumes two constant-pool indices
}

// ConstantPool deduplicates constant-pool entries by value and assigns
// indices in insertion order, 1-indexed as required by the class file
// format. The same logical constant (e.g. the same UTF8 string used by a
// class name and a field descriptor) is only ever stored once.
type ConstantPool struct {
	entries []entry
	index   map[string]uint16 // dedup key -> index of first occurrence
	next    uint16            // next index to assign (1-based)
}

// NewConstantPool returns an empty pool ready for Add* calls.
func NewConstantPool() *ConstantPool {
	return &ConstantPool{index: make(map[string]uint16), next: 1}
}

func (p *ConstantPool) intern(key string, tag uint8, data []byte, wide bool) uint16 {
	if idx, ok := p.index[key]; ok {
		return idx
	}
	idx := p.next
	p.entries = append(p.entries, entry{tag: tag, data: data, wide: wide})
	p.index[key] = idx
	if wide {
		p.next += 2
	} else {
		p.next++
	}
	return idx
}

// UTF8 interns a modified-UTF8 string constant and returns its index.
func (p *ConstantPool) UTF8(s string) uint16 {
	return p.intern("u:"+s, tagUTF8, encodeModifiedUTF8(s), false)
}

// Class interns a CONSTANT_Class_info for the given binary name (slash-
// separated, as produced by types.ClassSymbol) and returns its index.
func (p *ConstantPool) Class(binaryName string) uint16 {
	nameIdx := p.UTF8(binaryName)
	data := make([]byte, 2)
	binary.BigEndian.PutUint16(data, nameIdx)
	return p.intern("c:"+binaryName, tagClass, data, false)
}

// NameAndType interns a CONSTANT_NameAndType_info.
func (p *ConstantPool) NameAndType(name, descriptor string) uint16 {
	nameIdx := p.UTF8(name)
	descIdx := p.UTF8(descriptor)
	data := make([]byte, 4)
	binary.BigEndian.PutUint16(data[0:2], nameIdx)
	binary.BigEndian.PutUint16(data[2:4], descIdx)
	return p.intern("nt:"+name+":"+descriptor, tagNameAndType, data, false)
}

// Fieldref interns a CONSTANT_Fieldref_info.
func (p *ConstantPool) Fieldref(ownerBinaryName, name, descriptor string) uint16 {
	return p.memberref(tagFieldref, "f:", ownerBinaryName, name, descriptor)
}

// Methodref interns a CONSTANT_Methodref_info.
func (p *ConstantPool) Methodref(ownerBinaryName, name, descriptor string) uint16 {
	return p.memberref(tagMethodref, "m:", ownerBinaryName, name, descriptor)
}

// InterfaceMethodref interns a CONSTANT_InterfaceMethodref_info.
func (p *ConstantPool) InterfaceMethodref(ownerBinaryName, name, descriptor string) uint16 {
	return p.memberref(tagInterfaceMethodref, "im:", ownerBinaryName, name, descriptor)
}

func (p *ConstantPool) memberref(tag uint8, keyPrefix, ownerBinaryName, name, descriptor string) uint16 {
	classIdx := p.Class(ownerBinaryName)
	ntIdx := p.NameAndType(name, descriptor)
	data := make([]byte, 4)
	binary.BigEndian.PutUint16(data[0:2], classIdx)
	binary.BigEndian.PutUint16(data[2:4], ntIdx)
	return p.intern(keyPrefix+ownerBinaryName+"."+name+":"+descriptor, tag, data, false)
}

// String interns a CONSTANT_String_info wrapping a UTF8 constant.
func (p *ConstantPool) String(s string) uint16 {
	utf8Idx := p.UTF8(s)
	data := make([]byte, 2)
	binary.BigEndian.PutUint16(data, utf8Idx)
	return p.intern("s:"+s, tagString, data, false)
}

// Integer interns a CONSTANT_Integer_info.
func (p *ConstantPool) Integer(v int32) uint16 {
	data := make([]byte, 4)
	binary.BigEndian.PutUint32(data, uint32(v))
	return p.intern(fmt.Sprintf("i:%d", v), tagInteger, data, false)
}

// Float interns a CONSTANT_Float_info.
func (p *ConstantPool) Float(v float32) uint16 {
	data := make([]byte, 4)
	binary.BigEndian.PutUint32(data, math.Float32bits(v))
	return p.intern(fmt.Sprintf("fl:%d", math.Float32bits(v)), tagFloat, data, false)
}

// Long interns a CONSTANT_Long_info; it occupies two constant-pool indices.
func (p *ConstantPool) Long(v int64) uint16 {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, uint64(v))
	return p.intern(fmt.Sprintf("l:%d", v), tagLong, data, true)
}

// Double interns a CONSTANT_Double_info; it occupies two constant-pool indices.
func (p *ConstantPool) Double(v float64) uint16 {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, math.Float64bits(v))
	return p.intern(fmt.Sprintf("d:%d", math.Float64bits(v)), tagDouble, data, true)
}

// Len returns the constant_pool_count field value: one past the highest
// assigned index.
func (p *ConstantPool) Len() uint16 { return p.next }

// WriteTo emits the constant pool body (not including constant_pool_count,
// which the caller writes first since it's derived from Len()).
func (p *ConstantPool) WriteTo(w io.Writer) error {
	for _, e := range p.entries {
		if _, err := w.Write([]byte{e.tag}); err != nil {
			return fmt.Errorf("writing constant pool tag: %w", err)
		}
		if _, err := w.Write(e.data); err != nil {
			return fmt.Errorf("writing constant pool entry: %w", err)
		}
	}
	return nil
}

// encodeModifiedUTF8 encodes s per JVMS §4.4.7: identical to UTF-8 except
// the NUL code point is encoded as the two-byte overlong form 0xC0 0x80,
// and there is no four-byte form (supplementary characters are encoded as
// a surrogate pair, each encoded as its own three-byte sequence).
func encodeModifiedUTF8(s string) []byte {
	out := make([]byte, 0, len(s)+2)
	for _, r := range s {
		switch {
		case r == 0:
			out = append(out, 0xC0, 0x80)
		case r < 0x80:
			out = append(out, byte(r))
		case r < 0x800:
			out = append(out,
				byte(0xC0|(r>>6)),
				byte(0x80|(r&0x3F)))
		case r < 0x10000:
			out = append(out,
				byte(0xE0|(r>>12)),
				byte(0x80|((r>>6)&0x3F)),
				byte(0x80|(r&0x3F)))
		default:
			// Supplementary plane: encode as a surrogate pair, each
			// surrogate as its own three-byte sequence (JVMS §4.4.7).
			r -= 0x10000
			hi := 0xD800 + (r >> 10)
			lo := 0xDC00 + (r & 0x3FF)
			out = append(out,
				byte(0xE0|(hi>>12)), byte(0x80|((hi>>6)&0x3F)), byte(0x80|(hi&0x3F)),
				byte(0xE0|(lo>>12)), byte(0x80|((lo>>6)&0x3F)), byte(0x80|(lo&0x3F)))
		}
	}
	return out
}
