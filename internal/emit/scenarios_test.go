package emit

import (
	"bytes"
	"testing"

	"github.com/arcbound/jhdrc/internal/classfile"
	"github.com/arcbound/jhdrc/internal/types"
	"github.com/gkampitakis/go-snaps/snaps"
)

// emitOne binds src (which must contain exactly one top-level type per
// expectation below) and returns the classfile.ParsedClass for the class
// named name, round-tripped through classfile.Write/classfile.Read.
func emitOne(t *testing.T, src, name string) (*classfile.ReadPool, *classfile.ParsedClass) {
	t.Helper()
	interner, result := bindSource(t, src)
	e := New(interner, result)
	for _, cf := range e.Classes() {
		if cf.Class.ThisClass != name {
			continue
		}
		var buf bytes.Buffer
		if err := classfile.Write(&buf, cf.Pool, cf.Class); err != nil {
			t.Fatalf("Write(%s) error = %v", name, err)
		}
		parsed, err := classfile.Read(&buf)
		if err != nil {
			t.Fatalf("Read(%s) error = %v", name, err)
		}
		return parsed.Pool, parsed
	}
	t.Fatalf("no emitted class named %q in:\n%s", name, src)
	return nil, nil
}

// Scenario 1 (§8): a plain class with a constant field gets ConstantValue
// and no Signature attribute.
func TestScenarioPlainClassConstantField(t *testing.T) {
	_, parsed := emitOne(t, `class A { int x = 1 + 2; }`, "A")

	if _, ok := classfile.AttributeBody(parsed.Attributes, "Signature"); ok {
		t.Error("A should carry no class Signature attribute")
	}
	if len(parsed.Fields) != 1 || parsed.Fields[0].Name != "x" || parsed.Fields[0].Descriptor != "I" {
		t.Fatalf("Fields = %+v", parsed.Fields)
	}
	if _, ok := classfile.AttributeBody(parsed.Fields[0].Attributes, "Signature"); ok {
		t.Error("field x should carry no Signature attribute")
	}
	body, ok := classfile.AttributeBody(parsed.Fields[0].Attributes, "ConstantValue")
	if !ok {
		t.Fatalf("field x should carry a ConstantValue attribute: %+v", parsed.Fields[0].Attributes)
	}
	cv := classfile.DecodeConstantValue(parsed.Pool, body)
	if cv.Tag != 'I' || cv.ConstInt != 3 {
		t.Errorf("ConstantValue = %+v, want I=3", cv)
	}

	snaps.MatchSnapshot(t, "scenario1_field_descriptor", parsed.Fields[0].Descriptor)
}

// Scenario 2 (§8): a generic pair class gets a class Signature and each
// type-variable field gets its own erased descriptor plus Signature.
func TestScenarioGenericPairClass(t *testing.T) {
	_, parsed := emitOne(t, `class P<K, V> { K k; V v; }`, "P")

	body, ok := classfile.AttributeBody(parsed.Attributes, "Signature")
	if !ok {
		t.Fatalf("P should carry a class Signature attribute")
	}
	sig := classfile.DecodeSignature(parsed.Pool, body)
	want := "<K:Ljava/lang/Object;V:Ljava/lang/Object;>Ljava/lang/Object;"
	if sig != want {
		t.Errorf("class Signature = %q, want %q", sig, want)
	}

	if len(parsed.Fields) != 2 {
		t.Fatalf("Fields = %+v", parsed.Fields)
	}
	k := parsed.Fields[0]
	if k.Name != "k" || k.Descriptor != "Ljava/lang/Object;" {
		t.Fatalf("field k = %+v", k)
	}
	kBody, ok := classfile.AttributeBody(k.Attributes, "Signature")
	if !ok {
		t.Fatalf("field k should carry a Signature attribute")
	}
	if got := classfile.DecodeSignature(parsed.Pool, kBody); got != "TK;" {
		t.Errorf("field k Signature = %q, want TK;", got)
	}
}

// Scenario 3 (§8): a three-level nested class gives every one of the
// three classfiles a full, transitively-closed InnerClasses table, and
// the non-static Inner's own entry carries no static bit.
func TestScenarioNestedClassInnerClassesTable(t *testing.T) {
	src := `class Outer { static class Mid { class Inner {} } }`
	interner, result := bindSource(t, src)
	e := New(interner, result)

	classFiles := e.Classes()
	if len(classFiles) != 3 {
		t.Fatalf("got %d class files, want 3", len(classFiles))
	}

	byName := map[string]ClassFile{}
	for _, cf := range classFiles {
		byName[cf.Class.ThisClass] = cf
	}

	for _, name := range []string{"Outer", "Outer$Mid", "Outer$Mid$Inner"} {
		cf, ok := byName[name]
		if !ok {
			t.Fatalf("no emitted class %q, got %+v", name, byName)
		}
		var buf bytes.Buffer
		if err := classfile.Write(&buf, cf.Pool, cf.Class); err != nil {
			t.Fatalf("Write(%s) error = %v", name, err)
		}
		parsed, err := classfile.Read(&buf)
		if err != nil {
			t.Fatalf("Read(%s) error = %v", name, err)
		}
		body, ok := classfile.AttributeBody(parsed.Attributes, "InnerClasses")
		if !ok {
			t.Fatalf("%s should carry an InnerClasses attribute", name)
		}
		entries, err := classfile.DecodeInnerClasses(parsed.Pool, body)
		if err != nil {
			t.Fatalf("DecodeInnerClasses(%s): %v", name, err)
		}
		if len(entries) != 2 {
			t.Fatalf("%s InnerClasses = %+v, want 2 entries (Mid, Inner)", name, entries)
		}
		if entries[0].InnerBinaryName != "Outer$Mid" || entries[0].OuterBinaryName != "Outer" {
			t.Errorf("%s entries[0] = %+v, want Mid nested in Outer", name, entries[0])
		}
		if entries[1].InnerBinaryName != "Outer$Mid$Inner" || entries[1].OuterBinaryName != "Outer$Mid" {
			t.Errorf("%s entries[1] = %+v, want Inner nested in Mid", name, entries[1])
		}
		if name == "Outer$Mid$Inner" {
			if types.AccessFlags(entries[1].InnerAccess).Has(types.AccStatic) {
				t.Errorf("Inner's InnerClasses entry access %x should not carry static (it's non-static)", entries[1].InnerAccess)
			}
		}
	}
}

// Scenario 4 (§8): a sealed interface records its permitted subclasses,
// the final implementor stays final, and the non-sealed implementor
// carries no sealed-related bit of its own.
func TestScenarioSealedHierarchy(t *testing.T) {
	src := `sealed interface I permits A, B {}
final class A implements I {}
non-sealed class B implements I {}`
	interner, result := bindSource(t, src)
	e := New(interner, result)

	byName := map[string]ClassFile{}
	for _, cf := range e.Classes() {
		byName[cf.Class.ThisClass] = cf
	}

	iface := byName["I"]
	var buf bytes.Buffer
	if err := classfile.Write(&buf, iface.Pool, iface.Class); err != nil {
		t.Fatalf("Write(I) error = %v", err)
	}
	parsedI, err := classfile.Read(&buf)
	if err != nil {
		t.Fatalf("Read(I) error = %v", err)
	}
	body, ok := classfile.AttributeBody(parsedI.Attributes, "PermittedSubclasses")
	if !ok {
		t.Fatalf("I should carry a PermittedSubclasses attribute")
	}
	names, err := classfile.DecodePermittedSubclasses(parsedI.Pool, body)
	if err != nil {
		t.Fatalf("DecodePermittedSubclasses: %v", err)
	}
	if len(names) != 2 || names[0] != "A" || names[1] != "B" {
		t.Errorf("PermittedSubclasses = %+v, want [A B]", names)
	}

	a := byName["A"]
	if !types.AccessFlags(a.Class.AccessFlags).Has(types.AccFinal) {
		t.Errorf("A.AccessFlags = %x, want AccFinal set", a.Class.AccessFlags)
	}

	b := byName["B"]
	if types.AccessFlags(b.Class.AccessFlags).Has(types.AccFinal) {
		t.Errorf("B.AccessFlags = %x, non-sealed class should not be final", b.Class.AccessFlags)
	}
}

// Scenario 5 (§8): per-dimension type annotations on a multi-dimensional
// array field produce three RuntimeVisibleTypeAnnotations entries: @U,
// written on the first dimension, lands on the declared (outermost) array
// type, @V one level further in, and @T, written before the element type,
// on the int element.
func TestScenarioArrayTypeAnnotations(t *testing.T) {
	src := `@interface Target { int[] value(); }
@interface Retention { int value(); }
@Target(TYPE_USE) @Retention(RUNTIME) @interface T {}
@Target(TYPE_USE) @Retention(RUNTIME) @interface U {}
@Target(TYPE_USE) @Retention(RUNTIME) @interface V {}
class Holder { @T int @U [] @V [] x; }`
	_, parsed := emitOne(t, src, "Holder")

	if len(parsed.Fields) != 1 {
		t.Fatalf("Fields = %+v", parsed.Fields)
	}
	f := parsed.Fields[0]
	if f.Descriptor != "[[I" {
		t.Fatalf("field x descriptor = %q, want [[I", f.Descriptor)
	}

	body, ok := classfile.AttributeBody(f.Attributes, "RuntimeVisibleTypeAnnotations")
	if !ok {
		t.Fatalf("field x should carry RuntimeVisibleTypeAnnotations")
	}
	tas, err := classfile.DecodeTypeAnnotations(parsed.Pool, body)
	if err != nil {
		t.Fatalf("DecodeTypeAnnotations: %v", err)
	}
	if len(tas) != 3 {
		t.Fatalf("got %d type annotations, want 3: %+v", len(tas), tas)
	}

	byAnnoType := map[string][]classfile.TypePathStep{}
	for _, ta := range tas {
		byAnnoType[ta.Target.TypeDescriptor] = ta.Path
	}

	assertPath := func(descriptor string, want []classfile.TypePathStep) {
		t.Helper()
		got, ok := byAnnoType[descriptor]
		if !ok {
			t.Errorf("no type annotation of type %s found among %+v", descriptor, tas)
			return
		}
		if len(got) != len(want) {
			t.Errorf("%s path = %+v, want %+v", descriptor, got, want)
			return
		}
		for i := range got {
			if got[i].Kind != want[i].Kind {
				t.Errorf("%s path[%d] = %+v, want %+v", descriptor, i, got[i], want[i])
			}
		}
	}

	assertPath("LU;", nil)
	assertPath("LV;", []classfile.TypePathStep{{Kind: classfile.PathArray}})
	assertPath("LT;", []classfile.TypePathStep{{Kind: classfile.PathArray}, {Kind: classfile.PathArray}})
}

// Scenario 6 (§8): three repeated applications of a @Repeatable
// annotation collapse into one container annotation whose "value" array
// holds the three applications in source order.
func TestScenarioRepeatedAnnotationsCollapseIntoContainer(t *testing.T) {
	src := `@interface Retention { int value(); }
@interface Repeatable { int value(); }
@Retention(RUNTIME) @interface RS { R[] value(); }
@Retention(RUNTIME) @Repeatable(RS.class) @interface R { int value(); }
@R(1) @R(2) @R(3) class T {}`
	_, parsed := emitOne(t, src, "T")

	body, ok := classfile.AttributeBody(parsed.Attributes, "RuntimeVisibleAnnotations")
	if !ok {
		t.Fatalf("T should carry RuntimeVisibleAnnotations")
	}
	annos, err := classfile.DecodeAnnotations(parsed.Pool, body)
	if err != nil {
		t.Fatalf("DecodeAnnotations: %v", err)
	}
	if len(annos) != 1 {
		t.Fatalf("got %d class annotations, want 1 (the RS container): %+v", len(annos), annos)
	}
	container := annos[0]
	if container.TypeDescriptor != "LRS;" {
		t.Fatalf("container annotation type = %q, want LRS;", container.TypeDescriptor)
	}
	if len(container.Elements) != 1 || container.Elements[0].Name != "value" {
		t.Fatalf("container Elements = %+v", container.Elements)
	}
	arr := container.Elements[0].Value
	if arr.Tag != '[' || len(arr.ArrayValues) != 3 {
		t.Fatalf("container value = %+v, want a 3-element array", arr)
	}
	for i, want := range []int64{1, 2, 3} {
		ev := arr.ArrayValues[i]
		if ev.Tag != '@' || ev.Annotation == nil {
			t.Fatalf("arr[%d] = %+v, want a nested @R annotation", i, ev)
		}
		if ev.Annotation.TypeDescriptor != "LR;" {
			t.Errorf("arr[%d] annotation type = %q, want LR;", i, ev.Annotation.TypeDescriptor)
		}
		if len(ev.Annotation.Elements) != 1 || ev.Annotation.Elements[0].Value.ConstInt != want {
			t.Errorf("arr[%d] value = %+v, want %d", i, ev.Annotation.Elements, want)
		}
	}

	snaps.MatchSnapshot(t, "scenario6_container_descriptor", container.TypeDescriptor)
}
