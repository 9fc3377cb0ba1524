package classfile

import (
	"bytes"
	"testing"
)

func TestWriteAndReadRoundTrip(t *testing.T) {
	pool := NewConstantPool()

	fieldDesc := "I"
	methodDesc := "()V"
	signature := "Ljava/lang/Object;"

	class := Class{
		MinorVersion: DefaultMinorVersion,
		MajorVersion: DefaultMajorVersion,
		AccessFlags:  0x0021, // public, super
		ThisClass:    "com/example/Foo",
		SuperClass:   "java/lang/Object",
		Interfaces:   []string{"java/io/Serializable"},
		Fields: []FieldEntry{
			{
				AccessFlags: 0x0001,
				Name:        "count",
				Descriptor:  fieldDesc,
			},
		},
		Methods: []MethodEntry{
			{
				AccessFlags: 0x0001,
				Name:        "<init>",
				Descriptor:  methodDesc,
				Attributes: []Attribute{
					{Name: "Signature", Body: SignatureAttribute(pool, signature)},
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := Write(&buf, pool, class); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	parsed, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if parsed.ThisClass != "com/example/Foo" {
		t.Errorf("ThisClass = %q", parsed.ThisClass)
	}
	if parsed.SuperClass != "java/lang/Object" {
		t.Errorf("SuperClass = %q", parsed.SuperClass)
	}
	if len(parsed.Interfaces) != 1 || parsed.Interfaces[0] != "java/io/Serializable" {
		t.Errorf("Interfaces = %v", parsed.Interfaces)
	}
	if len(parsed.Fields) != 1 || parsed.Fields[0].Name != "count" || parsed.Fields[0].Descriptor != fieldDesc {
		t.Fatalf("Fields = %+v", parsed.Fields)
	}
	if len(parsed.Methods) != 1 || parsed.Methods[0].Name != "<init>" || parsed.Methods[0].Descriptor != methodDesc {
		t.Fatalf("Methods = %+v", parsed.Methods)
	}

	body, ok := AttributeBody(parsed.Methods[0].Attributes, "Signature")
	if !ok {
		t.Fatal("expected a Signature attribute on <init>")
	}
	if len(body) != 2 {
		t.Fatalf("Signature attribute body length = %d, want 2", len(body))
	}
}

func TestWriteSuperClassEmptyForObject(t *testing.T) {
	pool := NewConstantPool()
	class := Class{
		MinorVersion: DefaultMinorVersion,
		MajorVersion: DefaultMajorVersion,
		AccessFlags:  0x0021,
		ThisClass:    "java/lang/Object",
		SuperClass:   "",
	}
	var buf bytes.Buffer
	if err := Write(&buf, pool, class); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	parsed, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if parsed.SuperClass != "" {
		t.Errorf("SuperClass = %q, want empty for java/lang/Object", parsed.SuperClass)
	}
}
