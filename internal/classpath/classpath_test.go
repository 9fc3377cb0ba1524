package classpath

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/arcbound/jhdrc/internal/classfile"
	"github.com/arcbound/jhdrc/internal/types"
)

func writeTestClass(t *testing.T, dir, binaryName, superName string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(binaryName)+".class")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	pool := classfile.NewConstantPool()
	class := classfile.Class{
		MinorVersion: classfile.DefaultMinorVersion,
		MajorVersion: classfile.DefaultMajorVersion,
		AccessFlags:  uint16(types.AccPublic),
		ThisClass:    binaryName,
		SuperClass:   superName,
	}
	if err := classfile.Write(f, pool, class); err != nil {
		t.Fatal(err)
	}
}

func TestClasspathDirectoryListAndLookup(t *testing.T) {
	dir := t.TempDir()
	writeTestClass(t, dir, "com/example/Foo", types.ObjectBinaryName)
	writeTestClass(t, dir, "com/example/Bar", types.ObjectBinaryName)

	interner := types.NewInterner()
	cp, err := New(interner, []string{dir})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer cp.Close()

	names := cp.Loader(types.PackageSymbol{Name: "com/example"})
	if len(names) != 2 {
		t.Fatalf("Loader() returned %d names, want 2: %v", len(names), names)
	}
	fooSym, ok := names["Foo"]
	if !ok {
		t.Fatal("Loader() did not return Foo")
	}

	bc, found := cp.Lookup(fooSym)
	if !found {
		t.Fatal("Lookup() did not find Foo")
	}
	if bc.Symbol != fooSym {
		t.Errorf("BoundClass.Symbol = %v, want %v", bc.Symbol, fooSym)
	}
	if !bc.AccessFlags.Has(types.AccPublic) {
		t.Error("BoundClass.AccessFlags missing AccPublic")
	}
}

func TestClasspathLookupMissingIsCachedMiss(t *testing.T) {
	dir := t.TempDir()
	interner := types.NewInterner()
	cp, err := New(interner, []string{dir})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer cp.Close()

	sym := interner.Intern("com/example/Missing")
	if _, found := cp.Lookup(sym); found {
		t.Fatal("Lookup() reported finding a class that was never written")
	}
	if _, found := cp.Lookup(sym); found {
		t.Fatal("second Lookup() of a cached miss should still report not found")
	}
}

func TestClasspathZipArchive(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "lib.jar")
	f, err := os.Create(archivePath)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create("com/example/Zipped.class")
	if err != nil {
		t.Fatal(err)
	}
	pool := classfile.NewConstantPool()
	class := classfile.Class{
		MinorVersion: classfile.DefaultMinorVersion,
		MajorVersion: classfile.DefaultMajorVersion,
		AccessFlags:  uint16(types.AccPublic),
		ThisClass:    "com/example/Zipped",
		SuperClass:   types.ObjectBinaryName,
	}
	if err := classfile.Write(w, pool, class); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	interner := types.NewInterner()
	cp, err := New(interner, []string{archivePath})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer cp.Close()

	names := cp.Loader(types.PackageSymbol{Name: "com/example"})
	sym, ok := names["Zipped"]
	if !ok {
		t.Fatalf("Loader() did not find Zipped in archive: %v", names)
	}
	if _, found := cp.Lookup(sym); !found {
		t.Fatal("Lookup() did not find Zipped in archive")
	}
}

func TestClasspathMissingEntryIsSkipped(t *testing.T) {
	interner := types.NewInterner()
	cp, err := New(interner, []string{filepath.Join(t.TempDir(), "does-not-exist")})
	if err != nil {
		t.Fatalf("New() with a missing entry should not error, got %v", err)
	}
	defer cp.Close()
	if names := cp.Loader(types.PackageSymbol{Name: "anything"}); len(names) != 0 {
		t.Errorf("Loader() on a classpath with no sources returned %v", names)
	}
}

func TestExpandEntryGlob(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "libs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "libs", "a.jar"), []byte("not a real jar"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "libs", "b.jar"), []byte("not a real jar"), 0o644); err != nil {
		t.Fatal(err)
	}

	matches, err := expandEntry(filepath.Join(dir, "libs", "*.jar"))
	if err != nil {
		t.Fatalf("expandEntry() error = %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expandEntry() = %v, want 2 matches", matches)
	}
}
