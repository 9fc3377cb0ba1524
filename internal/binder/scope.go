package binder

import "github.com/arcbound/jhdrc/internal/types"

// ImportScope is one compilation unit's import table, split into the
// three kinds §4.3.3's SCOPE(C) cascade distinguishes.
type ImportScope struct {
	SingleType map[string]string // simple name -> fully-qualified dotted name
	OnDemand   []string          // package or type dotted names, searched in import order
	StaticSingle map[string]string // static-imported member simple name -> "owner.member" (members not modeled further here)
	StaticOnDemand []string
}

func newImportScope() *ImportScope {
	return &ImportScope{SingleType: map[string]string{}, StaticSingle: map[string]string{}}
}

// Scope resolves a simple name to a class symbol by walking §4.3.3's
// cascade: type-parameters of C -> nested members of C and its
// supertypes -> single-type imports -> same-package siblings ->
// on-demand imports -> the unnamed/default package.
//
// Implementations of each stage are supplied as closures so Scope itself
// stays phase-agnostic: Header-phase callers pass a restricted
// TypeParam/Member pair (enclosing-scope only, per §4.3.3
// step 2), Hierarchy-phase-and-later callers pass the full cascade.
type Scope struct {
	TypeParam func(simpleName string) (types.TypeVariableSymbol, bool)
	Member    func(simpleName string) (types.ClassSymbol, bool) // nested members of C and its supertypes
	Imports   *ImportScope
	Package   types.PackageSymbol
	Index     *Index
}

// Resolved is the outcome of a name lookup: exactly one of Class or
// TypeParam is valid, distinguished by IsTypeParam (a type parameter and
// a class symbol are different kinds of thing a bare name can denote,
// resolved at different cascade stages).
type Resolved struct {
	Class       types.ClassSymbol
	TypeParam   types.TypeVariableSymbol
	IsTypeParam bool
}

// Resolve runs the full §4.3.3 cascade, trying the type-parameter stage
// before ResolveClass's class-symbol stages.
func (s Scope) Resolve(name string) (Resolved, bool) {
	if s.TypeParam != nil {
		if tv, ok := s.TypeParam(name); ok {
			return Resolved{TypeParam: tv, IsTypeParam: true}, true
		}
	}
	if sym, ok := s.ResolveClass(name); ok {
		return Resolved{Class: sym}, true
	}
	return Resolved{}, false
}

// ResolveClass resolves a simple or partially-qualified name to a class
// symbol using the cascade's class-denoting stages only (nested members
// of C and its supertypes -> single-type imports -> same-package
// siblings -> on-demand imports -> the unnamed/default package), skipping the
// type-parameter stage (see Resolve for the full cascade).
func (s Scope) ResolveClass(name string) (types.ClassSymbol, bool) {
	if sym, ok := s.Member(name); ok {
		return sym, true
	}
	if fq, ok := s.Imports.SingleType[name]; ok {
		if sym, _, ok := s.Index.ResolveDottedName(fq); ok {
			return sym, true
		}
	}
	if sym, ok := s.Index.LookupTopLevel(s.Package, name); ok {
		return sym, true
	}
	for _, pkgOrType := range s.Imports.OnDemand {
		if sym, _, ok := s.Index.ResolveDottedName(pkgOrType + "." + name); ok {
			return sym, true
		}
	}
	if sym, ok := s.Index.LookupTopLevel(types.PackageSymbol{}, name); ok {
		return sym, true
	}
	return types.ClassSymbol{}, false
}
