package classpath

import (
	"fmt"
	"sync"

	"github.com/arcbound/jhdrc/internal/binder"
	"github.com/arcbound/jhdrc/internal/types"
)

// Classpath is a lazily-populated binder.Environment (§4.5) backed by a
// sequence of classSources. A package's class names are listed only the
// first time binder.Index touches that package; an individual class file
// is parsed only the first time its symbol is looked up. Both caches
// tolerate repeated idempotent calls, since the binder's phases may revisit
// the same classpath symbol more than once.
type Classpath struct {
	interner *types.Interner
	sources  []classSource

	mu    sync.Mutex
	cache map[types.ClassSymbol]*binder.BoundClass
}

// New builds a Classpath over entries — a list of already-split filesystem
// paths, each either a directory tree, a glob pattern (bmatcuk/doublestar
// syntax), or a .jar/.zip archive. Splitting a host path-list string (":"
// or ";" separated) into entries is the caller's job (see cmd/jhdrc), since
// the separator is platform-dependent and outside this package's concern.
func New(interner *types.Interner, entries []string) (*Classpath, error) {
	cp := &Classpath{
		interner: interner,
		cache:    map[types.ClassSymbol]*binder.BoundClass{},
	}
	for _, entry := range entries {
		paths, err := expandEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("classpath: expanding %q: %w", entry, err)
		}
		for _, p := range paths {
			src, err := openSource(p)
			if err != nil {
				return nil, fmt.Errorf("classpath: opening %q: %w", p, err)
			}
			if src != nil {
				cp.sources = append(cp.sources, src)
			}
		}
	}
	return cp, nil
}

// Close releases any archive handles this classpath opened.
func (cp *Classpath) Close() error {
	var firstErr error
	for _, src := range cp.sources {
		if c, ok := src.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Loader matches binder.Index.ClasspathLoader's signature: every simple
// class name found for pkg across all sources, first-source-wins on
// collision, interned against this Classpath's own interner (shared with
// the binder, so symbols compare equal).
func (cp *Classpath) Loader(pkg types.PackageSymbol) map[string]types.ClassSymbol {
	out := map[string]types.ClassSymbol{}
	for _, src := range cp.sources {
		names, err := src.ListPackage(pkg.Name)
		if err != nil {
			continue // one unreadable source must not fail the whole listing
		}
		for _, simple := range names {
			if _, exists := out[simple]; exists {
				continue
			}
			out[simple] = cp.interner.Intern(pkg.BinaryName(simple))
		}
	}
	return out
}

// Lookup implements binder.Environment. The first lookup of sym parses its
// class file (the first source that has it wins); the result — including a
// miss — is cached, so a class this classpath can't resolve at all is only
// searched for once.
func (cp *Classpath) Lookup(sym types.ClassSymbol) (*binder.BoundClass, bool) {
	cp.mu.Lock()
	if bc, ok := cp.cache[sym]; ok {
		cp.mu.Unlock()
		return bc, bc != nil
	}
	cp.mu.Unlock()

	bc, found := cp.load(sym)

	cp.mu.Lock()
	defer cp.mu.Unlock()
	if existing, raced := cp.cache[sym]; raced {
		return existing, existing != nil
	}
	if !found {
		cp.cache[sym] = nil
		return nil, false
	}
	cp.cache[sym] = bc
	return bc, true
}

func (cp *Classpath) load(sym types.ClassSymbol) (*binder.BoundClass, bool) {
	binaryName := cp.interner.Name(sym)
	if binaryName == "" {
		return nil, false
	}
	for _, src := range cp.sources {
		data, ok, err := src.Open(binaryName)
		if err != nil || !ok {
			continue
		}
		bc, err := parseBoundClass(cp.interner, sym, data)
		if err != nil {
			continue // a malformed classpath entry is skipped, not fatal
		}
		return bc, true
	}
	return nil, false
}
