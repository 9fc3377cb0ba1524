package binder

import (
	"github.com/arcbound/jhdrc/internal/ast"
	"github.com/arcbound/jhdrc/internal/types"
)

// runHierarchy implements phase 3 (§4.3.3 step 3): resolve type-parameter
// bounds and the type arguments of supertype/interface references, now
// that every class's header (nested-type and raw supertype/interface
// symbols) is available from phase 2, making the full SCOPE(C) cascade
// usable for the first time — member resolution can now search C's own
// and its supertypes' nested types, not just the enclosing-scope subset
// phase 2 was restricted to.
func (b *Binder) runHierarchy(prelim *preliminaryResult, headerEnv Environment) Environment {
	lookup := CompoundEnvironment{Top: headerEnv, Base: b.Classpath}

	out := mapEnvironment{}
	for _, sym := range prelim.order {
		decl := prelim.classes[sym]
		header, _ := lookup.Lookup(sym)
		out[sym] = b.hierarchyBind(lookup, decl, header)
	}
	return out
}

func (b *Binder) hierarchyBind(lookup Environment, decl *classDecl, header *BoundClass) *BoundClass {
	bc := header.clone()
	scope := b.fullScope(lookup, decl)

	for i := range bc.TypeParams {
		bc.TypeParams[i].Bound = b.resolveBound(decl.Node.TypeParams[i].Bounds, lookup, scope, decl)
	}

	// Only refine what phase 2 settled on: a supertype cut back to Object
	// by cutInheritanceCycles (or left there unresolved) stays Object, and
	// interfaces dropped by the cut stay dropped.
	if decl.Node.Extends != nil {
		if t := b.resolveTypeRef(decl.Node.Extends, scope, decl); isClassType(t) && t.(types.ClassType).Symbol() == bc.Supertype.Symbol() {
			bc.Supertype = t.(types.ClassType)
		}
	}
	if resolved := b.resolveInterfaceArgs(decl.Node.Implements, scope, decl); len(resolved) > 0 && len(bc.Interfaces) > 0 {
		bc.Interfaces = resolved
	}

	return bc
}

func isClassType(t types.Type) bool {
	_, ok := t.(types.ClassType)
	return ok
}

// resolveBound resolves a type parameter's extends-clause into an
// Intersection. An absent clause is the implicit Object bound (§3.2);
// FirstIsInterface records whether the first written bound is itself an
// interface type, which only matters when the class-bound slot (index 0
// of writeBounds, see internal/lower) is actually occupied by one.
func (b *Binder) resolveBound(refs []ast.TypeRef, lookup Environment, scope Scope, decl *classDecl) types.Intersection {
	if len(refs) == 0 {
		return types.Intersection{Bounds: []types.Type{types.ObjectType(b.Interner)}}
	}

	bounds := make([]types.Type, 0, len(refs))
	for _, r := range refs {
		bounds = append(bounds, b.resolveTypeRef(r, scope, decl))
	}

	firstIsInterface := false
	if ct, ok := bounds[0].(types.ClassType); ok {
		if owner, ok := lookup.Lookup(ct.Symbol()); ok {
			firstIsInterface = owner.Kind == types.KindInterface
		}
	}
	return types.Intersection{Bounds: bounds, FirstIsInterface: firstIsInterface}
}

func (b *Binder) resolveInterfaceArgs(refs []ast.TypeRef, scope Scope, decl *classDecl) []types.ClassType {
	var out []types.ClassType
	for _, r := range refs {
		if t := b.resolveTypeRef(r, scope, decl); isClassType(t) {
			out = append(out, t.(types.ClassType))
		}
	}
	return out
}

// fullScope builds the complete §4.3.3 SCOPE(C) cascade for decl, now
// that header information (nested types, raw supertypes) is available
// for every class: type parameters of C, nested members of C and its
// supertypes (searched recursively, walking outward through enclosing
// classes the same way), imports, same-package siblings, default
// package.
func (b *Binder) fullScope(lookup Environment, decl *classDecl) Scope {
	typeParamNames := map[string]types.TypeVariableSymbol{}
	for i, tp := range decl.Node.TypeParams {
		typeParamNames[tp.Name] = types.TypeVariableSymbol{Owner: decl.Symbol, Name: tp.Name, Index: i}
	}

	return Scope{
		TypeParam: func(name string) (types.TypeVariableSymbol, bool) {
			tv, ok := typeParamNames[name]
			return tv, ok
		},
		Member: func(name string) (types.ClassSymbol, bool) {
			return b.fullMemberLookup(lookup, decl.Symbol, name)
		},
		Imports: decl.CompUnit.imports,
		Package: decl.CompUnit.pkg,
		Index:   b.Index,
	}
}

// fullMemberLookup searches start's own nested types and those inherited
// from its supertype chain, then — if nothing matches — does the same for
// each enclosing class outward, the full "nested members of C and its
// supertypes" stage of SCOPE(C).
func (b *Binder) fullMemberLookup(lookup Environment, start types.ClassSymbol, name string) (types.ClassSymbol, bool) {
	for cur := start; cur.Valid(); {
		if sym, ok := b.inheritedMemberLookup(lookup, cur, name, map[types.ClassSymbol]bool{}); ok {
			return sym, true
		}
		bc, ok := lookup.Lookup(cur)
		if !ok {
			break
		}
		cur = bc.Enclosing
	}
	return types.ClassSymbol{}, false
}

// inheritedMemberLookup searches sym's own nested types, then its
// supertype, then its interfaces, recursively, guarding against cyclic
// hierarchies (already reported elsewhere) with visited.
func (b *Binder) inheritedMemberLookup(lookup Environment, sym types.ClassSymbol, name string, visited map[types.ClassSymbol]bool) (types.ClassSymbol, bool) {
	if visited[sym] {
		return types.ClassSymbol{}, false
	}
	visited[sym] = true

	bc, ok := lookup.Lookup(sym)
	if !ok {
		return types.ClassSymbol{}, false
	}
	for _, n := range bc.NestedClasses {
		if n.Valid() && b.Interner.SimpleName(n) == name {
			return n, true
		}
	}
	if len(bc.Supertype.Path) > 0 && bc.Supertype.Symbol().Valid() {
		if found, ok := b.inheritedMemberLookup(lookup, bc.Supertype.Symbol(), name, visited); ok {
			return found, true
		}
	}
	for _, iface := range bc.Interfaces {
		if len(iface.Path) == 0 {
			continue
		}
		if found, ok := b.inheritedMemberLookup(lookup, iface.Symbol(), name, visited); ok {
			return found, true
		}
	}
	return types.ClassSymbol{}, false
}
