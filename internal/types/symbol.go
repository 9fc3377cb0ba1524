// Package types implements the symbol and type algebra shared by the
// binder, lowerer, and classpath reader: interned class symbols, field and
// method symbols, type-variable symbols, and the tagged-variant Type model
// used throughout the rest of the compiler.
package types

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ClassSymbol is a handle to a class, interface, enum, annotation, or record
// by binary name. It is comparable and safe to use as a map key; ownership
// of the bound representation it refers to lives in the binder, never here.
type ClassSymbol struct {
	id int
}

// Valid reports whether the symbol was produced by an Interner (the zero
// value is never valid, so an unresolved reference can be stored as a
// ClassSymbol{} sentinel without an extra pointer or boolean).
func (s ClassSymbol) Valid() bool { return s.id != 0 }

// FieldSymbol identifies a field by owner and simple name.
type FieldSymbol struct {
	Owner ClassSymbol
	Name  string
}

// MethodSymbol identifies a method by owner, simple name, and erased
// descriptor — the descriptor disambiguates overloads.
type MethodSymbol struct {
	Owner      ClassSymbol
	Name       string
	Descriptor string
}

// TypeVariableSymbol identifies a type parameter by its declaring class or
// method symbol, simple name, and declaration index (position within the
// enclosing type-parameter list).
type TypeVariableSymbol struct {
	Owner interface{} // ClassSymbol or MethodSymbol
	Name  string
	Index int
}

// PackageSymbol is a slash-separated package name. Packages are lookup
// roots only; they never own classes directly (the top-level index does).
type PackageSymbol struct {
	Name string // e.g. "java/util", "" for the unnamed package
}

// BinaryName returns the binary name obtained by appending simpleName to
// the package, using '/' as separator.
func (p PackageSymbol) BinaryName(simpleName string) string {
	if p.Name == "" {
		return simpleName
	}
	return p.Name + "/" + simpleName
}

// Interner owns the global mapping from binary name to ClassSymbol for one
// compilation. It is the only place new ClassSymbol values are minted, and
// every other component in the compiler refers to classes by the handles it
// hands out — never by pointer — so that cyclic class graphs (A extends B,
// B mentions A in a generic bound) never require cyclic ownership.
type Interner struct {
	byName *orderedmap.OrderedMap[string, ClassSymbol]
	names  []string // id -> binary name, id is 1-based; index 0 unused
}

// NewInterner creates an empty Interner. Symbol id 0 is reserved as the
// invalid/zero ClassSymbol, so the first interned name gets id 1.
func NewInterner() *Interner {
	return &Interner{
		byName: orderedmap.New[string, ClassSymbol](),
		names:  []string{""},
	}
}

// Intern returns the ClassSymbol for binaryName, creating one if this is
// the first time the name has been seen. Interning is idempotent: the same
// binaryName always yields the same ClassSymbol within an Interner.
func (in *Interner) Intern(binaryName string) ClassSymbol {
	if sym, ok := in.byName.Get(binaryName); ok {
		return sym
	}
	sym := ClassSymbol{id: len(in.names)}
	in.names = append(in.names, binaryName)
	in.byName.Set(binaryName, sym)
	return sym
}

// Lookup returns the ClassSymbol already interned for binaryName, if any,
// without creating a new one.
func (in *Interner) Lookup(binaryName string) (ClassSymbol, bool) {
	return in.byName.Get(binaryName)
}

// Name returns the binary name a symbol was interned under.
func (in *Interner) Name(sym ClassSymbol) string {
	if sym.id <= 0 || sym.id >= len(in.names) {
		return ""
	}
	return in.names[sym.id]
}

// SimpleName returns the portion of a class's binary name after the last
// '$' (or '/', if there is no '$'), i.e. the unqualified nested or
// top-level class name.
func (in *Interner) SimpleName(sym ClassSymbol) string {
	n := in.Name(sym)
	if i := strings.LastIndexByte(n, '$'); i >= 0 {
		return n[i+1:]
	}
	if i := strings.LastIndexByte(n, '/'); i >= 0 {
		return n[i+1:]
	}
	return n
}

// PackageOf returns the package portion of a class's binary name (the
// segment before the first top-level '$' or simple name, slash-separated).
func (in *Interner) PackageOf(sym ClassSymbol) PackageSymbol {
	n := in.Name(sym)
	simple := n
	if i := strings.IndexByte(n, '$'); i >= 0 {
		simple = n[:i]
	}
	if i := strings.LastIndexByte(simple, '/'); i >= 0 {
		return PackageSymbol{Name: n[:i]}
	}
	return PackageSymbol{Name: ""}
}

// Descendant returns the binary name of a nested class sym$simpleName.
func (in *Interner) Descendant(owner ClassSymbol, simpleName string) string {
	return in.Name(owner) + "$" + simpleName
}

// ErrorSymbol is the well-known sentinel for "class could not be resolved".
// No bound representation is installed for it, so environment lookups of
// it find nothing, and Interner.Name returns "" for it.
var ErrorSymbol = ClassSymbol{id: -1}

// ObjectBinaryName is the root of every class hierarchy.
const ObjectBinaryName = "java/lang/Object"
