// Package classpath implements the lazily-populated external class source
// (§4.5): a sequence of directory trees, glob-expanded roots, and read-only
// zip/jar archives that package listing and class parsing touch on demand,
// never up front.
package classpath

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// classSource abstracts one classpath entry's backing storage, whether a
// directory tree or a zip/jar archive. ListPackage and Open are both cheap
// to call repeatedly; the caller (Classpath) is what adds caching.
type classSource interface {
	// ListPackage returns the simple (unqualified) names of every class
	// file directly inside pkg (slash-separated, "" for the unnamed
	// package). Absence of the package itself is not an error: it simply
	// yields no names.
	ListPackage(pkg string) ([]string, error)

	// Open returns binaryName's raw class file bytes. ok is false (with a
	// nil error) when the source simply doesn't contain binaryName.
	Open(binaryName string) (data []byte, ok bool, err error)
}

// expandEntry resolves one classpath entry string into the concrete
// filesystem paths it denotes: itself, if it names a directory or archive
// directly, or every match of a doublestar glob pattern otherwise.
func expandEntry(entry string) ([]string, error) {
	if !strings.ContainsAny(entry, "*?[{") {
		return []string{entry}, nil
	}

	base, pattern := splitGlobBase(entry)
	if base == "" {
		base = "."
	}
	matches, err := doublestar.Glob(os.DirFS(base), pattern)
	if err != nil {
		return nil, fmt.Errorf("globbing %q under %q: %w", pattern, base, err)
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = filepath.Join(base, filepath.FromSlash(m))
	}
	return out, nil
}

// splitGlobBase splits entry into the longest glob-metacharacter-free
// leading directory (the base doublestar.Glob walks from) and the pattern
// naming the rest.
func splitGlobBase(entry string) (base, pattern string) {
	slashed := filepath.ToSlash(entry)
	segs := strings.Split(slashed, "/")
	i := 0
	for ; i < len(segs); i++ {
		if strings.ContainsAny(segs[i], "*?[{") {
			break
		}
	}
	base = strings.Join(segs[:i], "/")
	pattern = strings.Join(segs[i:], "/")
	return base, pattern
}

// openSource opens path as a classSource: a directory tree, a .jar/.zip
// archive, or — if path doesn't exist — no source at all (a classpath
// entry that doesn't resolve to anything is silently skipped, matching
// how every real JVM classpath tolerates missing entries).
func openSource(path string) (classSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if info.IsDir() {
		return dirSource{root: path}, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jar", ".zip":
		return newZipSource(path)
	}
	return nil, nil
}

// dirSource is a classSource backed by a plain directory tree, one
// subdirectory per package segment.
type dirSource struct {
	root string
}

func (s dirSource) ListPackage(pkg string) ([]string, error) {
	dir := s.root
	if pkg != "" {
		dir = filepath.Join(s.root, filepath.FromSlash(pkg))
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if simple, ok := strings.CutSuffix(e.Name(), ".class"); ok {
			names = append(names, simple)
		}
	}
	return names, nil
}

func (s dirSource) Open(binaryName string) ([]byte, bool, error) {
	path := filepath.Join(s.root, filepath.FromSlash(binaryName)+".class")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// zipSource is a classSource backed by a jar/zip archive. The archive's
// central directory (names only, never entry contents) is indexed once at
// open time — unavoidable since zip offers no cheaper directory listing —
// but class bytes are still only read from the archive when Open is
// actually called.
type zipSource struct {
	rc     *zip.ReadCloser
	byName map[string]*zip.File
	byPkg  map[string][]string
}

func newZipSource(path string) (*zipSource, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive %q: %w", path, err)
	}
	s := &zipSource{
		rc:     rc,
		byName: map[string]*zip.File{},
		byPkg:  map[string][]string{},
	}
	for _, f := range rc.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name, ok := strings.CutSuffix(f.Name, ".class")
		if !ok {
			continue
		}
		s.byName[name] = f
		pkg, simple := splitBinaryName(name)
		s.byPkg[pkg] = append(s.byPkg[pkg], simple)
	}
	return s, nil
}

func (s *zipSource) ListPackage(pkg string) ([]string, error) {
	return s.byPkg[pkg], nil
}

func (s *zipSource) Open(binaryName string) ([]byte, bool, error) {
	f, ok := s.byName[binaryName]
	if !ok {
		return nil, false, nil
	}
	rc, err := f.Open()
	if err != nil {
		return nil, false, fmt.Errorf("opening archive entry %q: %w", binaryName, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, false, fmt.Errorf("reading archive entry %q: %w", binaryName, err)
	}
	return data, true, nil
}

func (s *zipSource) Close() error { return s.rc.Close() }

// splitBinaryName splits a slash-separated binary name (without the
// ".class" suffix) into its package path and simple name.
func splitBinaryName(binaryName string) (pkg, simple string) {
	if i := strings.LastIndexByte(binaryName, '/'); i >= 0 {
		return binaryName[:i], binaryName[i+1:]
	}
	return "", binaryName
}
