package classfile

import "testing"

func TestConstantPoolUTF8Dedups(t *testing.T) {
	p := NewConstantPool()
	a := p.UTF8("hello")
	b := p.UTF8("hello")
	if a != b {
		t.Fatalf("UTF8() returned different indices for the same string: %d != %d", a, b)
	}
	c := p.UTF8("world")
	if a == c {
		t.Fatal("UTF8() returned the same index for two different strings")
	}
}

func TestConstantPoolClassDedups(t *testing.T) {
	p := NewConstantPool()
	a := p.Class("java/lang/Object")
	b := p.Class("java/lang/Object")
	if a != b {
		t.Fatalf("Class() did not dedup: %d != %d", a, b)
	}
}

func TestConstantPoolLongDoubleAreWide(t *testing.T) {
	p := NewConstantPool()
	first := p.Long(42)
	second := p.Integer(1)
	if second != first+2 {
		t.Fatalf("Long entry did not consume two indices: Long=%d, next=%d", first, second)
	}
}

func TestConstantPoolLenTracksAssignedIndices(t *testing.T) {
	p := NewConstantPool()
	if p.Len() != 1 {
		t.Fatalf("Len() of an empty pool = %d, want 1", p.Len())
	}
	p.UTF8("x")
	if p.Len() != 2 {
		t.Fatalf("Len() after one entry = %d, want 2", p.Len())
	}
	p.Double(1.5)
	if p.Len() != 4 {
		t.Fatalf("Len() after a wide entry = %d, want 4", p.Len())
	}
}

func TestConstantPoolMethodrefInternsClassAndNameAndType(t *testing.T) {
	p := NewConstantPool()
	idx := p.Methodref("java/lang/Object", "<init>", "()V")
	if idx == 0 {
		t.Fatal("Methodref() returned index 0")
	}
	again := p.Methodref("java/lang/Object", "<init>", "()V")
	if idx != again {
		t.Fatalf("Methodref() did not dedup: %d != %d", idx, again)
	}
}
