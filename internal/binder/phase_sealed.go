package binder

import (
	"github.com/arcbound/jhdrc/internal/errors"
	"github.com/arcbound/jhdrc/internal/types"
)

// checkSealedPermits implements §4.3.4: every sealed class or interface
// must have a non-empty permits set (explicit, or inferred from same-
// compilation-unit top-level declarations that directly extend or
// implement it when no explicit `permits` clause was written), every
// permitted subtype must itself directly extend/implement the sealed
// type, and every permitted subtype must be final, sealed, or
// non-sealed — otherwise a later, unconstrained subtype could reopen the
// hierarchy.
func (b *Binder) checkSealedPermits(prelim *preliminaryResult, env Environment) {
	for _, sym := range prelim.order {
		decl := prelim.classes[sym]
		if !decl.Node.Sealed {
			continue
		}
		bc, ok := env.Lookup(sym)
		if !ok {
			continue
		}

		permitted := bc.Permitted
		if len(decl.Node.Permits) == 0 {
			permitted = b.inferPermits(prelim, env, sym, decl)
			bc.Permitted = permitted
		}

		if len(permitted) == 0 {
			b.report(errors.BadSealedPermits, decl.CompUnit.unit.Filename, decl.Node.Pos(),
				"sealed type %s has no permitted subclasses", b.Interner.Name(sym))
			continue
		}

		for _, sub := range permitted {
			b.checkPermittedSubtype(env, prelim, sym, sub, decl)
		}
	}
}

// inferPermits finds every top-level type declared in the same
// compilation unit as the sealed declaration that directly extends or
// implements it — the same-file inference §4.3.4 allows when `permits`
// is omitted.
func (b *Binder) inferPermits(prelim *preliminaryResult, env Environment, sealed types.ClassSymbol, sealedDecl *classDecl) []types.ClassSymbol {
	var out []types.ClassSymbol
	for _, sym := range prelim.order {
		d := prelim.classes[sym]
		if d.CompUnit != sealedDecl.CompUnit || sym == sealed {
			continue
		}
		bc, ok := env.Lookup(sym)
		if !ok {
			continue
		}
		if directlyExtends(bc, sealed) {
			out = append(out, sym)
		}
	}
	return out
}

func directlyExtends(bc *BoundClass, target types.ClassSymbol) bool {
	if len(bc.Supertype.Path) > 0 && bc.Supertype.Symbol() == target {
		return true
	}
	for _, iface := range bc.Interfaces {
		if len(iface.Path) > 0 && iface.Symbol() == target {
			return true
		}
	}
	return false
}

// checkPermittedSubtype validates one entry of a sealed type's permits
// set: it must directly extend/implement the sealed type, and it must
// itself be final, sealed, or non-sealed.
func (b *Binder) checkPermittedSubtype(env Environment, prelim *preliminaryResult, sealed, sub types.ClassSymbol, sealedDecl *classDecl) {
	subBC, ok := env.Lookup(sub)
	if !ok {
		b.report(errors.BadSealedPermits, sealedDecl.CompUnit.unit.Filename, sealedDecl.Node.Pos(),
			"permitted subtype %s could not be resolved", b.Interner.Name(sub))
		return
	}
	if !directlyExtends(subBC, sealed) {
		b.report(errors.BadSealedPermits, sealedDecl.CompUnit.unit.Filename, sealedDecl.Node.Pos(),
			"permitted subtype %s does not directly extend or implement %s", b.Interner.Name(sub), b.Interner.Name(sealed))
	}

	subDecl, ok := prelim.classes[sub]
	if !ok {
		return
	}
	isConstrained := subDecl.Node.Modifiers.Flags.Has(types.AccFinal) || subDecl.Node.Sealed || subDecl.Node.NonSealed
	if !isConstrained {
		b.report(errors.NonSealedRequiresSealed, subDecl.CompUnit.unit.Filename, subDecl.Node.Pos(),
			"permitted subtype %s of sealed type %s must be final, sealed, or non-sealed",
			b.Interner.Name(sub), b.Interner.Name(sealed))
	}
}
