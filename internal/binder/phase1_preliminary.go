package binder

import (
	"strings"

	"github.com/arcbound/jhdrc/internal/ast"
	"github.com/arcbound/jhdrc/internal/types"
)

// compUnitInfo is everything phase 1 records about one compilation unit
// for later phases to consult: its import scope and the package it
// declares into.
type compUnitInfo struct {
	unit    *ast.CompilationUnit
	pkg     types.PackageSymbol
	imports *ImportScope
}

// preliminaryResult is phase 1's output: every source class symbol
// allocated, keyed by symbol, plus enough per-class bookkeeping
// (declaring AST node, enclosing symbol, declaring compilation unit) for
// phase 2 onward to consult without re-walking the AST tree shape.
type preliminaryResult struct {
	classes   map[types.ClassSymbol]*classDecl
	compUnits []*compUnitInfo
	order     []types.ClassSymbol // source order, for output ordering (§5)
}

// classDecl pairs a source class symbol with its declaring AST node and
// binding context.
type classDecl struct {
	Symbol    types.ClassSymbol
	Node      *ast.TypeDecl
	Enclosing types.ClassSymbol // zero value for top-level
	CompUnit  *compUnitInfo
}

// runPreliminary implements phase 1 (§4.3.3 step 1): allocate class
// symbols for every top-level and nested type declaration, build import
// scopes, record enclosing-class relations.
func (b *Binder) runPreliminary(units []*ast.CompilationUnit) *preliminaryResult {
	res := &preliminaryResult{classes: map[types.ClassSymbol]*classDecl{}}

	for _, u := range units {
		info := &compUnitInfo{unit: u, imports: newImportScope()}
		if u.Package != nil {
			info.pkg = types.PackageSymbol{Name: strings.ReplaceAll(u.Package.Name, ".", "/")}
		}
		b.buildImportScope(info)
		res.compUnits = append(res.compUnits, info)

		for _, td := range u.Types {
			b.allocateClass(res, info, td, types.ClassSymbol{})
		}
	}
	return res
}

func (b *Binder) buildImportScope(info *compUnitInfo) {
	for _, imp := range info.unit.Imports {
		if imp.OnDemand {
			if imp.Static {
				info.imports.StaticOnDemand = append(info.imports.StaticOnDemand, imp.Qualifier)
			} else {
				info.imports.OnDemand = append(info.imports.OnDemand, imp.Qualifier)
			}
			continue
		}
		simple := imp.Qualifier
		if i := strings.LastIndexByte(simple, '.'); i >= 0 {
			simple = simple[i+1:]
		}
		if imp.Static {
			info.imports.StaticSingle[simple] = imp.Qualifier
		} else {
			info.imports.SingleType[simple] = imp.Qualifier
		}
	}
}

// allocateClass interns td's binary name, registers it in the top-level
// index (top-level classes only; nested classes are discovered through
// their enclosing BoundClass.NestedClasses instead, per Index.Register's
// contract), and recurses into nested type declarations.
func (b *Binder) allocateClass(res *preliminaryResult, info *compUnitInfo, td *ast.TypeDecl, enclosing types.ClassSymbol) types.ClassSymbol {
	var binaryName string
	if enclosing.Valid() {
		binaryName = b.Interner.Descendant(enclosing, td.Name)
	} else {
		binaryName = info.pkg.BinaryName(td.Name)
	}
	sym := b.Interner.Intern(binaryName)

	res.classes[sym] = &classDecl{Symbol: sym, Node: td, Enclosing: enclosing, CompUnit: info}
	res.order = append(res.order, sym)

	if !enclosing.Valid() {
		b.Index.Register(info.pkg, td.Name, sym)
	}

	for _, nested := range td.NestedTypes {
		b.allocateClass(res, info, nested, sym)
	}
	return sym
}
