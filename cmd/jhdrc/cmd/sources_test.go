package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadSources(t *testing.T) {
	dir := t.TempDir()
	fooPath := filepath.Join(dir, "Foo.java")
	barPath := filepath.Join(dir, "Bar.java")
	if err := os.WriteFile(fooPath, []byte("class Foo {}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(barPath, []byte("class Bar {}"), 0o644); err != nil {
		t.Fatal(err)
	}

	sources, text, err := readSources([]string{fooPath, barPath})
	if err != nil {
		t.Fatalf("readSources() error = %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("got %d sources, want 2", len(sources))
	}
	if sources[0].Filename != fooPath || sources[0].Content != "class Foo {}" {
		t.Errorf("sources[0] = %+v", sources[0])
	}
	if text[barPath] != "class Bar {}" {
		t.Errorf("text[barPath] = %q", text[barPath])
	}
}

func TestReadSourcesMissingFile(t *testing.T) {
	if _, _, err := readSources([]string{filepath.Join(t.TempDir(), "Missing.java")}); err == nil {
		t.Fatal("expected an error for a missing source file")
	}
}
