package binder

import (
	"github.com/arcbound/jhdrc/internal/ast"
	"github.com/arcbound/jhdrc/internal/lower"
	"github.com/arcbound/jhdrc/internal/types"
)

// bindRecord binds a record's header components and synthesizes the
// members the compiler always generates from them (§4.3.3 step 4's
// record supplement): a private final backing field and a public
// accessor per component, and — unless the source already declares one —
// a canonical constructor taking every component in header order.
func (b *Binder) bindRecord(decl *classDecl, scope Scope, classBounds lower.BoundResolver, bc *BoundClass) {
	for _, rc := range decl.Node.RecordComponents {
		t := b.resolveTypeRef(rc.Type, scope, decl)
		bc.RecordComps = append(bc.RecordComps, BoundRecordComponent{
			Name:        rc.Name,
			Type:        t,
			Annotations: b.resolveAnnotations(rc.Annotations, scope, decl),
		})

		bc.Fields = append(bc.Fields, BoundField{
			Symbol:      types.FieldSymbol{Owner: bc.Symbol, Name: rc.Name},
			AccessFlags: types.AccPrivate | types.AccFinal,
			Type:        t,
		})

		retDesc := lower.MethodDescriptor(b.Interner, classBounds, nil, t)
		bc.Methods = append(bc.Methods, BoundMethod{
			Symbol:      types.MethodSymbol{Owner: bc.Symbol, Name: rc.Name, Descriptor: retDesc},
			AccessFlags: types.AccPublic,
			Return:      t,
		})
	}

	if !hasExplicitCanonicalConstructor(decl.Node) {
		var paramTypes []types.Type
		var params []BoundParam
		for _, rc := range bc.RecordComps {
			paramTypes = append(paramTypes, rc.Type)
			params = append(params, BoundParam{Name: rc.Name, Type: rc.Type})
		}
		desc := lower.MethodDescriptor(b.Interner, classBounds, paramTypes, types.VoidType{})
		bc.Methods = append(bc.Methods, BoundMethod{
			Symbol:        types.MethodSymbol{Owner: bc.Symbol, Name: "<init>", Descriptor: desc},
			AccessFlags:   types.AccPublic,
			Params:        params,
			Return:        types.VoidType{},
			IsConstructor: true,
		})
	}
}

// hasExplicitCanonicalConstructor reports whether the record source
// already declares a constructor with one parameter per header
// component — the canonical or a compact form — in which case no
// synthetic constructor is added. Approximated by arity: a record's
// canonical constructor is the only constructor shape the source can
// give the same parameter count as the header, since every other
// constructor must explicitly delegate to it (§3.3's record rules are a
// member-binding concern, not re-verified here).
func hasExplicitCanonicalConstructor(td *ast.TypeDecl) bool {
	for _, m := range td.Methods {
		if m.IsConstructor && len(m.Params) == len(td.RecordComponents) {
			return true
		}
	}
	return false
}

// bindEnumConstants synthesizes the per-constant public static final
// fields, the backing $VALUES array field, and the values()/valueOf(
// String) static methods every enum declaration gets (§3.3).
func (b *Binder) bindEnumConstants(decl *classDecl, bc *BoundClass) {
	selfType := types.NewClassType(bc.Symbol)
	for _, ec := range decl.Node.EnumConstants {
		bc.Fields = append(bc.Fields, BoundField{
			Symbol:      types.FieldSymbol{Owner: bc.Symbol, Name: ec.Name},
			AccessFlags: types.AccPublic | types.AccStatic | types.AccFinal | types.AccEnum,
			Type:        selfType,
		})
	}

	bc.Fields = append(bc.Fields, BoundField{
		Symbol:      types.FieldSymbol{Owner: bc.Symbol, Name: "$VALUES"},
		AccessFlags: types.AccPrivate | types.AccStatic | types.AccFinal | types.AccSynthetic,
		Type:        types.Array{Element: selfType},
	})

	valuesDesc := lower.MethodDescriptor(b.Interner, nil, nil, types.Array{Element: selfType})
	bc.Methods = append(bc.Methods, BoundMethod{
		Symbol:      types.MethodSymbol{Owner: bc.Symbol, Name: "values", Descriptor: valuesDesc},
		AccessFlags: types.AccPublic | types.AccStatic,
		Return:      types.Array{Element: selfType},
	})

	stringType := types.NewClassType(b.Interner.Intern("java/lang/String"))
	valueOfDesc := lower.MethodDescriptor(b.Interner, nil, []types.Type{stringType}, selfType)
	bc.Methods = append(bc.Methods, BoundMethod{
		Symbol:      types.MethodSymbol{Owner: bc.Symbol, Name: "valueOf", Descriptor: valueOfDesc},
		AccessFlags: types.AccPublic | types.AccStatic,
		Params:      []BoundParam{{Name: "name", Type: stringType}},
		Return:      selfType,
	})
}

// bindAnnotationMeta computes an annotation type's retention/target/
// inherited/repeatable metadata by scanning its declaration annotations
// for the known java.lang.annotation meta-annotations, by simple name —
// a literal scan rather than a full constant evaluation, since
// @Retention/@Target arguments are always either a single enum constant
// or an array of them and never arithmetic, so no cross-phase dependency
// on phase 5 (constant evaluation) is needed here.
func (b *Binder) bindAnnotationMeta(decl *classDecl) *AnnotationMeta {
	meta := &AnnotationMeta{Retention: types.RetentionClass, Targets: types.DeclarationSites}
	for _, a := range decl.Node.Modifiers.Annotations {
		simple := lastSegment(a.Type)
		switch simple {
		case "Retention":
			if rp, ok := retentionFromArgs(a.Elements); ok {
				meta.Retention = rp
			}
		case "Target":
			if t, ok := targetsFromArgs(a.Elements); ok {
				meta.Targets = t
			}
		case "Inherited":
			meta.Inherited = true
		case "Repeatable":
			meta.Repeatable = true
			if len(a.Elements) == 1 {
				if ctr, ok := elementValueClassRef(a.Elements[0].Value); ok {
					meta.Container = classSymbolFromRef(b, ctr)
				}
			}
		}
	}
	return meta
}

func lastSegment(ctr *ast.ClassTypeRef) string {
	if ctr == nil || len(ctr.Segments) == 0 {
		return ""
	}
	name := ctr.Segments[len(ctr.Segments)-1].Name
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[i+1:]
		}
	}
	return name
}

// identifierName extracts the last dotted component of a bare name
// expression (e.g. "RUNTIME" from `RetentionPolicy.RUNTIME`, or just
// "FIELD" from a single-name reference), the shape every ElementType/
// RetentionPolicy constant reference in an annotation argument takes.
func identifierName(e ast.Expression) (string, bool) {
	v, ok := e.(*ast.NameExpr)
	if !ok || len(v.Parts) == 0 {
		return "", false
	}
	return v.Parts[len(v.Parts)-1], true
}

func retentionFromArgs(elems []ast.AnnotationElementExpr) (types.RetentionPolicy, bool) {
	for _, e := range elems {
		if e.Name != "value" && e.Name != "" {
			continue
		}
		name, ok := identifierName(e.Value)
		if !ok {
			continue
		}
		switch name {
		case "SOURCE":
			return types.RetentionSource, true
		case "CLASS":
			return types.RetentionClass, true
		case "RUNTIME":
			return types.RetentionRuntime, true
		}
	}
	return 0, false
}

var elementTypeTargets = map[string]types.AnnotationTarget{
	"TYPE":            types.TargetType,
	"FIELD":           types.TargetField,
	"METHOD":          types.TargetMethod,
	"PARAMETER":       types.TargetParameter,
	"CONSTRUCTOR":     types.TargetConstructor,
	"LOCAL_VARIABLE":  types.TargetLocalVariable,
	"ANNOTATION_TYPE": types.TargetAnnotationType,
	"PACKAGE":         types.TargetPackage,
	"TYPE_PARAMETER":  types.TargetTypeParameter,
	"TYPE_USE":        types.TargetTypeUse,
	"MODULE":          types.TargetModule,
	"RECORD_COMPONENT": types.TargetRecordComponent,
}

func targetsFromArgs(elems []ast.AnnotationElementExpr) (types.AnnotationTarget, bool) {
	var out types.AnnotationTarget
	found := false
	for _, e := range elems {
		if e.Name != "value" && e.Name != "" {
			continue
		}
		for _, v := range arrayElements(e.Value) {
			name, ok := identifierName(v)
			if !ok {
				continue
			}
			if t, ok := elementTypeTargets[name]; ok {
				out |= t
				found = true
			}
		}
	}
	return out, found
}

// arrayElements returns expr's elements if it is an array-initializer
// expression, or expr itself as a single-element slice otherwise (the
// `@Target(FIELD)` single-value shorthand).
func arrayElements(expr ast.Expression) []ast.Expression {
	if arr, ok := expr.(*ast.ArrayInitExpr); ok {
		return arr.Elements
	}
	return []ast.Expression{expr}
}

func elementValueClassRef(expr ast.Expression) (*ast.ClassTypeRef, bool) {
	if cl, ok := expr.(*ast.ClassLiteralExpr); ok {
		if ctr, ok := cl.Type.(*ast.ClassTypeRef); ok {
			return ctr, true
		}
	}
	return nil, false
}

func classSymbolFromRef(b *Binder, ctr *ast.ClassTypeRef) types.ClassSymbol {
	name := ctr.Segments[len(ctr.Segments)-1].Name
	if sym, _, ok := b.Index.ResolveDottedName(name); ok {
		return sym
	}
	return types.ErrorSymbol
}
