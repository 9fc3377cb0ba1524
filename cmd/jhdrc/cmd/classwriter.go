package cmd

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arcbound/jhdrc/internal/classfile"
	"github.com/arcbound/jhdrc/internal/emit"
	"github.com/arcbound/jhdrc/internal/types"
)

// writeClassFiles writes every lowered class under output. A path ending
// in .jar or .zip is written as a single archive; anything else is
// treated as a directory, created if missing, with one .class file per
// binary name's package path.
func writeClassFiles(interner *types.Interner, classes []emit.ClassFile, output string) error {
	lower := strings.ToLower(output)
	if strings.HasSuffix(lower, ".jar") || strings.HasSuffix(lower, ".zip") {
		return writeClassArchive(interner, classes, output)
	}
	return writeClassDir(interner, classes, output)
}

func writeClassDir(interner *types.Interner, classes []emit.ClassFile, dir string) error {
	for _, cf := range classes {
		binaryName := interner.Name(cf.Symbol)
		path := filepath.Join(dir, filepath.FromSlash(binaryName)+".class")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", binaryName, err)
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		err = classfile.Write(f, cf.Pool, cf.Class)
		closeErr := f.Close()
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		if closeErr != nil {
			return fmt.Errorf("failed to close %s: %w", path, closeErr)
		}
	}
	return nil
}

func writeClassArchive(interner *types.Interner, classes []emit.ClassFile, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, cf := range classes {
		binaryName := interner.Name(cf.Symbol)
		w, err := zw.Create(binaryName + ".class")
		if err != nil {
			return fmt.Errorf("failed to add %s to %s: %w", binaryName, path, err)
		}
		if err := classfile.Write(w, cf.Pool, cf.Class); err != nil {
			return fmt.Errorf("failed to write %s into %s: %w", binaryName, path, err)
		}
	}
	return zw.Close()
}
