package classfile

import (
	"fmt"
	"io"
)

const (
	magic = 0xCAFEBABE

	// DefaultMajorVersion targets Java 17 class files; the binder/lowerer
	// never emit bytecode, so only the handful of major versions that
	// changed header-visible attributes (records, sealed classes, the
	// module system) matter here.
	DefaultMajorVersion uint16 = 61
	DefaultMinorVersion uint16 = 0
)

// FieldEntry is one field_info.
type FieldEntry struct {
	AccessFlags uint16
	Name        string
	Descriptor  string
	Attributes  []Attribute
}

// MethodEntry is one method_info.
type MethodEntry struct {
	AccessFlags uint16
	Name        string
	Descriptor  string
	Attributes  []Attribute
}

// Class is the fully-assembled, ready-to-serialize shape of a class file:
// everything the lowerer computes, expressed as already-resolved
// attribute bodies plus the handful of header fields that sit outside the
// attribute table.
type Class struct {
	MinorVersion uint16
	MajorVersion uint16

	AccessFlags uint16
	ThisClass   string // binary name
	SuperClass  string // binary name; empty for java/lang/Object and for module-info
	Interfaces  []string

	Fields  []FieldEntry
	Methods []MethodEntry

	Attributes []Attribute // class-level: Signature, Deprecated, *Annotations, InnerClasses, Module, Record, PermittedSubclasses, NestHost, NestMembers
}

// Write serializes c to w in the standard binary class-file format
// (JVMS §4.1), using pool to resolve every constant referenced by c's
// already-built attribute bodies plus the header fields written here.
//
// pool must be the same ConstantPool instance used while building c's
// Attributes/Fields/Methods bodies (Signature indices, annotation type
// indices, and so on were already interned into it), so that this/super/
// interfaces/field/method name-and-descriptor constants dedup against
// those rather than producing a second copy.
func Write(w io.Writer, pool *ConstantPool, c Class) error {
	if err := writeU4(w, magic); err != nil {
		return fmt.Errorf("writing magic: %w", err)
	}
	if err := writeU2(w, c.MinorVersion); err != nil {
		return err
	}
	if err := writeU2(w, c.MajorVersion); err != nil {
		return err
	}

	// Every constant this class file references must be interned before
	// the constant pool itself is serialized (constant_pool_count and the
	// pool body come before this/super/interfaces/fields/methods in the
	// file, but Go evaluates eagerly, so indices are resolved up front
	// and only the pool's *bytes* are written in file order below).
	// Field/method attribute bodies are pre-built by the caller and
	// already reference indices interned at build time; only their own
	// name/descriptor constants are interned here.
	thisIdx := pool.Class(c.ThisClass)
	var superIdx uint16
	if c.SuperClass != "" {
		superIdx = pool.Class(c.SuperClass)
	}
	interfaceIdxs := make([]uint16, len(c.Interfaces))
	for i, iface := range c.Interfaces {
		interfaceIdxs[i] = pool.Class(iface)
	}

	fieldNameIdxs := make([]uint16, len(c.Fields))
	fieldDescIdxs := make([]uint16, len(c.Fields))
	for i, f := range c.Fields {
		fieldNameIdxs[i] = pool.UTF8(f.Name)
		fieldDescIdxs[i] = pool.UTF8(f.Descriptor)
	}

	methodNameIdxs := make([]uint16, len(c.Methods))
	methodDescIdxs := make([]uint16, len(c.Methods))
	for i, m := range c.Methods {
		methodNameIdxs[i] = pool.UTF8(m.Name)
		methodDescIdxs[i] = pool.UTF8(m.Descriptor)
	}

	// Every attribute name (e.g. "Signature") used anywhere below is
	// interned lazily by writeAttributes itself via pool.UTF8, which
	// would be too late once the pool is written — so attribute names
	// are pre-interned here too.
	preinternAttributeNames(pool, c.Attributes)
	for _, f := range c.Fields {
		preinternAttributeNames(pool, f.Attributes)
	}
	for _, m := range c.Methods {
		preinternAttributeNames(pool, m.Attributes)
	}

	if err := writeU2(w, pool.Len()); err != nil {
		return err
	}
	if err := pool.WriteTo(w); err != nil {
		return err
	}

	if err := writeU2(w, c.AccessFlags); err != nil {
		return err
	}
	if err := writeU2(w, thisIdx); err != nil {
		return err
	}
	if err := writeU2(w, superIdx); err != nil {
		return err
	}

	if err := writeU2(w, uint16(len(interfaceIdxs))); err != nil {
		return err
	}
	for _, idx := range interfaceIdxs {
		if err := writeU2(w, idx); err != nil {
			return err
		}
	}

	if err := writeU2(w, uint16(len(c.Fields))); err != nil {
		return err
	}
	for i, f := range c.Fields {
		if err := writeU2(w, f.AccessFlags); err != nil {
			return err
		}
		if err := writeU2(w, fieldNameIdxs[i]); err != nil {
			return err
		}
		if err := writeU2(w, fieldDescIdxs[i]); err != nil {
			return err
		}
		if err := writeAttributes(w, pool, f.Attributes); err != nil {
			return fmt.Errorf("writing field %s attributes: %w", f.Name, err)
		}
	}

	if err := writeU2(w, uint16(len(c.Methods))); err != nil {
		return err
	}
	for i, m := range c.Methods {
		if err := writeU2(w, m.AccessFlags); err != nil {
			return err
		}
		if err := writeU2(w, methodNameIdxs[i]); err != nil {
			return err
		}
		if err := writeU2(w, methodDescIdxs[i]); err != nil {
			return err
		}
		if err := writeAttributes(w, pool, m.Attributes); err != nil {
			return fmt.Errorf("writing method %s attributes: %w", m.Name, err)
		}
	}

	if err := writeAttributes(w, pool, c.Attributes); err != nil {
		return fmt.Errorf("writing class attributes: %w", err)
	}
	return nil
}

func preinternAttributeNames(pool *ConstantPool, attrs []Attribute) {
	for _, a := range attrs {
		pool.UTF8(a.Name)
	}
}
