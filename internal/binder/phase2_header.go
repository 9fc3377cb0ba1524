package binder

import (
	"strings"

	"github.com/arcbound/jhdrc/internal/ast"
	"github.com/arcbound/jhdrc/internal/errors"
	"github.com/arcbound/jhdrc/internal/types"
)

// kindAccessFlags returns the implicit access-flag bits a source kind
// contributes (AccInterface for interface/annotation/@interface,
// AccAnnotation additionally for @interface, AccEnum for enum), on top of
// whatever explicit modifier keywords were written.
func kindAccessFlags(kind types.SourceKind) types.AccessFlags {
	switch kind {
	case types.KindInterface:
		return types.AccInterface | types.AccAbstract
	case types.KindAnnotation:
		return types.AccInterface | types.AccAnnotation | types.AccAbstract
	case types.KindEnum:
		return types.AccEnum | types.AccFinal
	case types.KindRecord:
		return types.AccFinal
	}
	return 0
}

// runHeader implements phase 2 (§4.3.3 step 2): resolve extends,
// implements, permits, and type-parameter symbols (without bounds yet),
// and compute access flags, using the restricted header scope (enclosing-
// scope class members and imports only — member types and bounds aren't
// known yet, so a header-scope reference to a sibling nested class is
// the only kind of forward reference this phase supports).
func (b *Binder) runHeader(prelim *preliminaryResult) Environment {
	out := mapEnvironment{}
	for _, sym := range prelim.order {
		decl := prelim.classes[sym]
		out[sym] = b.headerBind(prelim, decl)
	}
	b.cutInheritanceCycles(prelim, out)
	return out
}

// cutInheritanceCycles detects cycles in the source-class extends/
// implements graph (classpath classes are assumed acyclic and aren't
// walked into) and reports CyclicInheritance on every class discovered
// partway around a cycle, cutting its supertype back to Object and
// dropping its interfaces so later phases don't loop.
func (b *Binder) cutInheritanceCycles(prelim *preliminaryResult, out mapEnvironment) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := map[types.ClassSymbol]int{}

	var visit func(sym types.ClassSymbol) bool
	visit = func(sym types.ClassSymbol) bool {
		bc, ok := out[sym]
		if !ok {
			return false
		}
		switch state[sym] {
		case visiting:
			return true
		case done:
			return false
		}
		state[sym] = visiting

		cyclic := false
		edges := append([]types.ClassType{bc.Supertype}, bc.Interfaces...)
		for _, edge := range edges {
			if len(edge.Path) == 0 || !edge.Symbol().Valid() {
				continue
			}
			if visit(edge.Symbol()) {
				cyclic = true
			}
		}
		if cyclic {
			decl := prelim.classes[sym]
			b.report(errors.CyclicInheritance, decl.CompUnit.unit.Filename, decl.Node.Pos(),
				"cyclic inheritance involving %s", b.Interner.Name(sym))
			bc.Supertype = types.ObjectType(b.Interner)
			bc.Interfaces = nil
		}
		state[sym] = done
		return cyclic
	}

	for _, sym := range prelim.order {
		visit(sym)
	}
}

func (b *Binder) headerBind(prelim *preliminaryResult, decl *classDecl) *BoundClass {
	td := decl.Node
	bc := &BoundClass{
		Symbol:      decl.Symbol,
		Enclosing:   decl.Enclosing,
		Kind:        td.Kind,
		AccessFlags: td.Modifiers.Flags | kindAccessFlags(td.Kind),
	}

	scope := b.headerScope(prelim, decl)

	for i, tp := range td.TypeParams {
		bc.TypeParams = append(bc.TypeParams, BoundTypeParam{
			Symbol: types.TypeVariableSymbol{Owner: decl.Symbol, Name: tp.Name, Index: i},
			Name:   tp.Name,
		})
	}

	bc.Supertype, bc.Interfaces = b.resolveSupertypes(decl, scope)
	bc.Permitted = b.resolvePermits(decl, scope)

	for _, nested := range td.NestedTypes {
		nestedSym, _ := prelim.lookupChildSymbol(decl.Symbol, nested.Name)
		bc.NestedClasses = append(bc.NestedClasses, nestedSym)
	}

	return bc
}

// lookupChildSymbol finds the symbol phase 1 allocated for a named
// nested type of owner, by scanning phase 1's class table for a class
// enclosed by owner with that simple name.
func (p *preliminaryResult) lookupChildSymbol(owner types.ClassSymbol, simpleName string) (types.ClassSymbol, bool) {
	for sym, decl := range p.classes {
		if decl.Enclosing == owner {
			if decl.Node.Name == simpleName {
				return sym, true
			}
		}
	}
	return types.ClassSymbol{}, false
}

// headerScope builds the restricted §4.3.3-step-2 scope: type parameters
// declared directly on this class (no bounds resolved yet, so they
// resolve to a symbol only), enclosing classes' own nested-type names
// (walked outward), the compilation unit's imports, and same-package
// top-level classes.
func (b *Binder) headerScope(prelim *preliminaryResult, decl *classDecl) Scope {
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
			return b.lookupEnclosingMember(prelim, decl.Enclosing, name)
		},
		Imports: decl.CompUnit.imports,
		Package: decl.CompUnit.pkg,
		Index:   b.Index,
	}
}

// lookupEnclosingMember walks outward through enclosing classes looking
// for a nested type named name, the header-phase's only source of
// "member" resolution since full inherited-member scope isn't available
// until phase 3.
func (b *Binder) lookupEnclosingMember(prelim *preliminaryResult, enclosing types.ClassSymbol, name string) (types.ClassSymbol, bool) {
	for enclosing.Valid() {
		decl := prelim.classes[enclosing]
		if sym, ok := prelim.lookupChildSymbol(enclosing, name); ok {
			return sym, true
		}
		if decl.Node.Name == name {
			return enclosing, true
		}
		enclosing = decl.Enclosing
	}
	return types.ClassSymbol{}, false
}

// resolveSupertypes resolves the extends/implements clauses according to
// source kind: a class's Extends is its superclass (defaulting to
// java/lang/Object), its Implements are interfaces; an interface's
// Implements (syntactically its own `extends` list, parsed into the same
// field — see ast.TypeDecl's comment) are its superinterfaces with an
// implicit Object supertype; an annotation type and an enum both get a
// fixed, non-source-resolved supertype.
func (b *Binder) resolveSupertypes(decl *classDecl, scope Scope) (types.ClassType, []types.ClassType) {
	td := decl.Node

	switch td.Kind {
	case types.KindAnnotation:
		return types.ObjectType(b.Interner), []types.ClassType{types.NewClassType(b.Interner.Intern("java/lang/annotation/Annotation"))}
	case types.KindEnum:
		return types.NewClassType(b.Interner.Intern("java/lang/Enum")), b.resolveTypeRefs(td.Implements, scope, decl)
	case types.KindRecord:
		return types.NewClassType(b.Interner.Intern("java/lang/Record")), b.resolveTypeRefs(td.Implements, scope, decl)
	}

	if td.Kind == types.KindInterface {
		return types.ObjectType(b.Interner), b.resolveTypeRefs(td.Implements, scope, decl)
	}

	super := types.ObjectType(b.Interner)
	if td.Extends != nil {
		if ct, ok := b.resolveClassTypeRef(td.Extends, scope, decl); ok {
			super = ct
		}
	}
	return super, b.resolveTypeRefs(td.Implements, scope, decl)
}

func (b *Binder) resolveTypeRefs(refs []ast.TypeRef, scope Scope, decl *classDecl) []types.ClassType {
	var out []types.ClassType
	for _, r := range refs {
		if ct, ok := b.resolveClassTypeRef(r, scope, decl); ok {
			out = append(out, ct)
		}
	}
	return out
}

// resolveClassTypeRef resolves an ast.ClassTypeRef to a types.ClassType,
// reporting CannotResolve and returning the sentinel error type if any
// chain segment fails to resolve. The first segment's Name may itself be
// dotted (the parser collapses a non-generic `a.b.C` into one segment —
// see ClassTypeRef's doc comment), so it is resolved name-component by
// name-component: the first component through the scope cascade (or, if
// that fails, the whole dotted name through the index as a fully
// qualified reference), and every further component — from the rest of
// that dotted name, and from any additional explicit segments — as a
// nested-type lookup under the previously resolved symbol.
func (b *Binder) resolveClassTypeRef(ref ast.TypeRef, scope Scope, decl *classDecl) (types.ClassType, bool) {
	ctr, ok := ref.(*ast.ClassTypeRef)
	if !ok || len(ctr.Segments) == 0 {
		return types.ClassType{}, false
	}

	fail := func(name string) (types.ClassType, bool) {
		b.report(errors.CannotResolve, decl.CompUnit.unit.Filename, ref.Pos(), "cannot resolve type %q", name)
		return types.NewClassType(types.ErrorSymbol), false
	}

	var path []types.SimpleClass
	var cur types.ClassSymbol

	head := strings.Split(ctr.Segments[0].Name, ".")
	r, ok := scope.Resolve(head[0])
	switch {
	case ok && !r.IsTypeParam:
		cur = r.Class
		path = append(path, types.SimpleClass{Symbol: cur})
		head = head[1:]
	case len(head) > 1:
		sym, _, ok := b.Index.ResolveDottedName(ctr.Segments[0].Name)
		if !ok {
			return fail(ctr.Segments[0].Name)
		}
		cur = sym
		path = append(path, types.SimpleClass{Symbol: cur})
		head = nil
	default:
		return fail(head[0])
	}

	for _, part := range head {
		sym, ok := b.Interner.Lookup(b.Interner.Descendant(cur, part))
		if !ok {
			return fail(part)
		}
		cur = sym
		path = append(path, types.SimpleClass{Symbol: cur})
	}

	for _, seg := range ctr.Segments[1:] {
		sym, ok := b.Interner.Lookup(b.Interner.Descendant(cur, seg.Name))
		if !ok {
			return fail(seg.Name)
		}
		cur = sym
		path = append(path, types.SimpleClass{Symbol: cur})
	}

	return types.ClassType{Path: path}, true
}

// resolvePermits resolves an explicit `permits` clause; an empty clause
// (same-file inference) is left for the sealed/permits check (§4.3.4) to
// fill in from the compilation unit's other top-level declarations.
func (b *Binder) resolvePermits(decl *classDecl, scope Scope) []types.ClassSymbol {
	var out []types.ClassSymbol
	for _, r := range decl.Node.Permits {
		if ct, ok := b.resolveClassTypeRef(r, scope, decl); ok {
			out = append(out, ct.Symbol())
		}
	}
	return out
}
