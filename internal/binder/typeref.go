package binder

import (
	"strings"

	"github.com/arcbound/jhdrc/internal/ast"
	"github.com/arcbound/jhdrc/internal/types"
)

var primitiveKinds = map[string]types.PrimitiveKind{
	"boolean": types.Boolean,
	"byte":    types.Byte,
	"short":   types.Short,
	"int":     types.Int,
	"long":    types.Long,
	"char":    types.Char,
	"float":   types.Float,
	"double":  types.Double,
}

// resolveTypeRef converts an unresolved ast.TypeRef into a fully resolved
// types.Type against scope, recursively resolving generic type arguments
// and array element types. A bare name that denotes a type parameter
// resolves to a TypeVariable rather than a ClassType — the one case
// resolveClassTypeRef alone can't distinguish, which is why general type
// references go through this function rather than that one directly.
func (b *Binder) resolveTypeRef(ref ast.TypeRef, scope Scope, decl *classDecl) types.Type {
	switch t := ref.(type) {
	case nil:
		return types.ObjectType(b.Interner)
	case *ast.PrimitiveTypeRef:
		if t.Name == "void" {
			return types.VoidType{}
		}
		return types.Primitive{Kind: primitiveKinds[t.Name], Annos: b.resolveAnnotations(t.Annotations, scope, decl)}
	case *ast.ArrayTypeRef:
		return types.Array{Element: b.resolveTypeRef(t.Element, scope, decl), Annos: b.resolveAnnotations(t.Annotations, scope, decl)}
	case *ast.WildcardTypeRef:
		switch {
		case t.Extends != nil:
			return types.Wildcard{Bound: types.BoundUpper, BoundType: b.resolveTypeRef(t.Extends, scope, decl)}
		case t.Super != nil:
			return types.Wildcard{Bound: types.BoundLower, BoundType: b.resolveTypeRef(t.Super, scope, decl)}
		default:
			return types.Wildcard{Bound: types.BoundNone}
		}
	case *ast.ClassTypeRef:
		return b.resolveClassOrTypeVar(t, scope, decl)
	}
	return types.ObjectType(b.Interner)
}

// resolveClassOrTypeVar handles the one ambiguity resolveClassTypeRef
// can't: a single, argument-less, unqualified segment may denote a type
// parameter rather than a class.
func (b *Binder) resolveClassOrTypeVar(t *ast.ClassTypeRef, scope Scope, decl *classDecl) types.Type {
	if len(t.Segments) == 1 && len(t.Segments[0].TypeArgs) == 0 && !strings.Contains(t.Segments[0].Name, ".") {
		if r, ok := scope.Resolve(t.Segments[0].Name); ok && r.IsTypeParam {
			return types.TypeVariable{Symbol: r.TypeParam, Annos: b.resolveAnnotations(t.Segments[0].Annotations, scope, decl)}
		}
	}

	ct, ok := b.resolveClassTypeRef(t, scope, decl)
	if !ok {
		return ct
	}
	for i, seg := range t.Segments {
		if i >= len(ct.Path) {
			break
		}
		for _, arg := range seg.TypeArgs {
			ct.Path[i].TypeArgs = append(ct.Path[i].TypeArgs, b.resolveTypeRef(arg, scope, decl))
		}
		ct.Path[i].Annos = b.resolveAnnotations(seg.Annotations, scope, decl)
	}
	return ct
}

// resolveAnnotations resolves a list of source annotation expressions to
// their bound form; a type whose annotation-type name doesn't resolve is
// dropped with a diagnostic rather than aborting the surrounding type's
// resolution.
func (b *Binder) resolveAnnotations(exprs []*ast.AnnotationExpr, scope Scope, decl *classDecl) []types.Annotation {
	var out []types.Annotation
	for _, a := range exprs {
		sym, ok := b.resolveAnnotationType(a, scope, decl)
		if !ok {
			continue
		}
		out = append(out, types.Annotation{Type: sym, Elements: b.resolveAnnotationElements(a, scope, decl)})
	}
	return out
}

func (b *Binder) resolveAnnotationType(a *ast.AnnotationExpr, scope Scope, decl *classDecl) (types.ClassSymbol, bool) {
	ct, ok := b.resolveClassTypeRef(a.Type, scope, decl)
	if !ok {
		return types.ErrorSymbol, false
	}
	return ct.Symbol(), true
}

// resolveAnnotationElements resolves an annotation's element-value pairs,
// folding each value via evalConst with a nil cycle guard — no cyclic-
// field tracking is threaded through for a site that's only ever
// evaluated once, so, per evalConst's own doc, an argument that
// references a constant field folds to MissingConst here.
func (b *Binder) resolveAnnotationElements(a *ast.AnnotationExpr, scope Scope, decl *classDecl) []types.AnnotationElement {
	var out []types.AnnotationElement
	for _, e := range a.Elements {
		out = append(out, types.AnnotationElement{Name: e.Name, Value: b.evalConst(e.Value, scope, decl, nil)})
	}
	return out
}
