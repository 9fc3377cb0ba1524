package binder

import (
	"strings"

	"github.com/arcbound/jhdrc/internal/types"
)

// PackageNode is one node of the top-level index (§4.3.2): a scope of
// simple-name -> class-symbol for its immediate classes, plus child
// package nodes. Nested classes are not indexed here; they are reached
// through the owning BoundClass's NestedClasses.
type PackageNode struct {
	Name     string // this node's own simple segment, not the full dotted path
	Packages map[string]*PackageNode
	Classes  map[string]types.ClassSymbol

	// Loaded marks whether classpath population has run for this package
	// node yet (§4.3.2: "for classpath packages this is populated lazily
	// on first touch per package"). Register does not set it, so a package
	// holding source classes is still offered to the classpath loader on
	// its first lookup; loaded names never replace a registered source class.
	Loaded bool
}

func newPackageNode(name string) *PackageNode {
	return &PackageNode{Name: name, Packages: map[string]*PackageNode{}, Classes: map[string]types.ClassSymbol{}}
}

// Index is the top-level dotted-name index: a tree keyed by package
// segments, with per-package class scopes. ClasspathLoader is consulted
// the first time a package node is touched and hasn't been Loaded yet;
// it may be nil for a compilation with no classpath entries.
type Index struct {
	root            *PackageNode
	ClasspathLoader func(pkg types.PackageSymbol) map[string]types.ClassSymbol
}

// NewIndex creates an empty top-level index rooted at the unnamed package.
func NewIndex() *Index {
	return &Index{root: newPackageNode("")}
}

// Register installs a top-level or nested class symbol under its binary
// name's package-and-simple-name path, creating package nodes as needed.
// Nested classes are addressed as Outer$Inner in binaryName but are
// registered into the *package* scope keyed by their full simple path
// (Outer, then Outer's own NestedClasses list on the BoundClass carries
// nesting instead) — Register only ever places top-level classes into a
// PackageNode's Classes map; nested-class lookup goes through the owning
// class's BoundClass.NestedClasses, populated separately by the binder.
func (idx *Index) Register(pkg types.PackageSymbol, simpleName string, sym types.ClassSymbol) {
	node := idx.packageNode(pkg, true)
	node.Classes[simpleName] = sym
}

// packageNode walks/creates the chain of PackageNode for pkg.Name's
// dotted segments.
func (idx *Index) packageNode(pkg types.PackageSymbol, create bool) *PackageNode {
	node := idx.root
	if pkg.Name == "" {
		return node
	}
	for _, seg := range strings.Split(pkg.Name, "/") {
		child, ok := node.Packages[seg]
		if !ok {
			if !create {
				return nil
			}
			child = newPackageNode(seg)
			node.Packages[seg] = child
		}
		node = child
	}
	return node
}

// LookupTopLevel resolves a top-level class by package + simple name,
// lazily loading the package's classpath entries on first touch if a
// ClasspathLoader is configured and the package hasn't been loaded yet.
func (idx *Index) LookupTopLevel(pkg types.PackageSymbol, simpleName string) (types.ClassSymbol, bool) {
	node := idx.packageNode(pkg, true)
	if !node.Loaded {
		idx.loadClasspath(pkg, node)
	}
	sym, ok := node.Classes[simpleName]
	return sym, ok
}

func (idx *Index) loadClasspath(pkg types.PackageSymbol, node *PackageNode) {
	node.Loaded = true
	if idx.ClasspathLoader == nil {
		return
	}
	for name, sym := range idx.ClasspathLoader(pkg) {
		if _, exists := node.Classes[name]; !exists {
			node.Classes[name] = sym
		}
	}
}

// ResolveDottedName finds the longest package-name prefix of a dotted
// name, then resolves the remainder as a class qualified-name chain
// (top-level simple name, then nested-class segments resolved by the
// caller through each successive BoundClass's NestedClasses, since the
// index itself only tracks top-level package scopes). Returns the
// top-level symbol and the unconsumed nested-name segments.
func (idx *Index) ResolveDottedName(dotted string) (types.ClassSymbol, []string, bool) {
	segs := strings.Split(dotted, ".")
	node := idx.root
	i := 0
	for i < len(segs) {
		if !idx.isPackageSegment(node, segs[i]) {
			break
		}
		node = node.Packages[segs[i]]
		i++
	}
	if i >= len(segs) {
		return types.ClassSymbol{}, nil, false
	}
	pkgName := strings.Join(segs[:i], "/")
	if !node.Loaded {
		idx.loadClasspath(types.PackageSymbol{Name: pkgName}, node)
	}
	sym, ok := node.Classes[segs[i]]
	if !ok {
		return types.ClassSymbol{}, nil, false
	}
	return sym, segs[i+1:], true
}

func (idx *Index) isPackageSegment(node *PackageNode, seg string) bool {
	_, ok := node.Packages[seg]
	return ok
}
