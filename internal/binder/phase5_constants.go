package binder

// runConstantEval implements phase 5 (§4.3.3 step 5): evaluate every
// field initializer and annotation-type element default into a
// types.ConstValue, with cycle detection across fields that reference
// each other (CyclicConstant).
func (b *Binder) runConstantEval(prelim *preliminaryResult, memberEnv Environment) Environment {
	lookup := CompoundEnvironment{Top: memberEnv, Base: b.Classpath}
	guard := newConstCycleGuard(lookup, prelim)

	out := mapEnvironment{}
	for _, sym := range prelim.order {
		decl := prelim.classes[sym]
		header, _ := lookup.Lookup(sym)
		bc := header.clone()
		scope := b.fullScope(lookup, decl)

		bc.Fields = append([]BoundField(nil), bc.Fields...)
		for i, f := range decl.Node.Fields {
			if i >= len(bc.Fields) || f.Initializer == nil {
				continue
			}
			bc.Fields[i].Constant = b.evalFieldConst(guard, bc.Fields[i].Symbol)
		}

		bc.Methods = append([]BoundMethod(nil), bc.Methods...)
		for i, m := range decl.Node.Methods {
			if i >= len(bc.Methods) || m.AnnotationDefault == nil {
				continue
			}
			bc.Methods[i].AnnotationDefault = b.evalConst(m.AnnotationDefault, scope, decl, guard)
		}

		out[sym] = bc
	}
	return out
}
