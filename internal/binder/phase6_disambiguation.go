package binder

import "github.com/arcbound/jhdrc/internal/types"

// runAnnotationDisambiguation implements phase 6 (§4.3.3 step 6): for a
// site where an annotation was written in a position that is both a
// declaration site and a type-use site (a field's or parameter's
// modifier-position annotations, and a method's return-type position),
// split each annotation into the declaration list, the type-use list, or
// both, according to its @Target metadata — now that phase 4/5 have
// bound every annotation type's own @Target — and collapse repeated
// applications of a @Repeatable annotation into their container.
func (b *Binder) runAnnotationDisambiguation(prelim *preliminaryResult, constEnv Environment) Environment {
	lookup := CompoundEnvironment{Top: constEnv, Base: b.Classpath}

	out := mapEnvironment{}
	for _, sym := range prelim.order {
		header, _ := lookup.Lookup(sym)
		bc := header.clone()

		bc.DeclAnnotations = b.groupRepeatables(lookup, bc.DeclAnnotations)

		fields := append([]BoundField(nil), bc.Fields...)
		for i := range fields {
			decl, typ := b.splitAnnotations(lookup, fields[i].Annotations, types.TargetField)
			fields[i].Annotations = b.groupRepeatables(lookup, decl)
			fields[i].Type = withTypeAnnotations(fields[i].Type, typ)
		}
		bc.Fields = fields

		methods := append([]BoundMethod(nil), bc.Methods...)
		for i := range methods {
			target := types.TargetMethod
			if methods[i].IsConstructor {
				target = types.TargetConstructor
			}
			decl, typ := b.splitAnnotations(lookup, methods[i].Annotations, target)
			methods[i].Annotations = b.groupRepeatables(lookup, decl)
			methods[i].Return = withTypeAnnotations(methods[i].Return, typ)

			params := append([]BoundParam(nil), methods[i].Params...)
			for j := range params {
				pdecl, ptyp := b.splitAnnotations(lookup, params[j].Annotations, types.TargetParameter)
				params[j].Annotations = b.groupRepeatables(lookup, pdecl)
				params[j].Type = withTypeAnnotations(params[j].Type, ptyp)
			}
			methods[i].Params = params
		}
		bc.Methods = methods

		out[sym] = bc
	}
	return out
}

// splitAnnotations partitions anns by whether each annotation type's
// bound @Target metadata includes declSite, TargetTypeUse, or both. An
// annotation type whose metadata can't be resolved stays only on the
// declaration list it was already attached to. One whose targets name
// neither site is dropped, or kept on the declaration list when
// Options.ReportUnattachableAnnotations is set; no diagnostic is reported.
func (b *Binder) splitAnnotations(lookup Environment, anns []types.Annotation, declSite types.AnnotationTarget) (decl, typeUse []types.Annotation) {
	for _, a := range anns {
		meta := b.annotationMetaOf(lookup, a.Type)
		if meta == nil {
			decl = append(decl, a)
			continue
		}
		if meta.Targets == 0 || meta.Targets.Has(declSite) {
			decl = append(decl, a)
		}
		if meta.Targets.Has(types.TargetTypeUse) {
			typeUse = append(typeUse, a)
		}
		if meta.Targets != 0 && !meta.Targets.Has(declSite) && !meta.Targets.Has(types.TargetTypeUse) && b.Options.ReportUnattachableAnnotations {
			decl = append(decl, a) // kept instead of dropped; no diagnostic is reported
		}
	}
	return decl, typeUse
}

func (b *Binder) annotationMetaOf(lookup Environment, sym types.ClassSymbol) *AnnotationMeta {
	bc, ok := lookup.Lookup(sym)
	if !ok {
		return nil
	}
	return bc.AnnotationMeta
}

// withTypeAnnotations returns t with extra appended to the annotation list
// of the type written at the annotation's position; t's own variant is
// preserved. For an array that is the element type (recursively), since a
// modifier-position annotation precedes the element type, not the
// brackets.
func withTypeAnnotations(t types.Type, extra []types.Annotation) types.Type {
	if len(extra) == 0 || t == nil {
		return t
	}
	switch v := t.(type) {
	case types.Primitive:
		v.Annos = append(append([]types.Annotation(nil), v.Annos...), extra...)
		return v
	case types.Array:
		v.Element = withTypeAnnotations(v.Element, extra)
		return v
	case types.ClassType:
		if len(v.Path) == 0 {
			return v
		}
		path := append([]types.SimpleClass(nil), v.Path...)
		last := path[len(path)-1]
		last.Annos = append(append([]types.Annotation(nil), last.Annos...), extra...)
		path[len(path)-1] = last
		v.Path = path
		return v
	case types.TypeVariable:
		v.Annos = append(append([]types.Annotation(nil), v.Annos...), extra...)
		return v
	}
	return t
}

// groupRepeatables collapses runs of the same @Repeatable annotation
// type into a single synthesized container annotation holding a `value`
// array of the individual applications, preserving the position of the
// first occurrence and each annotation's own element order.
func (b *Binder) groupRepeatables(lookup Environment, anns []types.Annotation) []types.Annotation {
	counts := map[types.ClassSymbol]int{}
	for _, a := range anns {
		counts[a.Type]++
	}

	var out []types.Annotation
	seen := map[types.ClassSymbol]bool{}
	for _, a := range anns {
		if seen[a.Type] {
			continue
		}
		meta := b.annotationMetaOf(lookup, a.Type)
		if counts[a.Type] < 2 || meta == nil || !meta.Repeatable || !meta.Container.Valid() {
			out = append(out, a)
			continue
		}
		seen[a.Type] = true

		var elems []types.ConstValue
		for _, dup := range anns {
			if dup.Type == a.Type {
				elems = append(elems, types.AnnotationConst{Annotation: dup})
			}
		}
		out = append(out, types.Annotation{
			Type:     meta.Container,
			Elements: []types.AnnotationElement{{Name: "value", Value: types.ArrayConst{Elements: elems}}},
		})
	}
	return out
}
