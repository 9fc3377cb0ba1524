package binder

import (
	"github.com/arcbound/jhdrc/internal/ast"
	"github.com/arcbound/jhdrc/internal/lower"
	"github.com/arcbound/jhdrc/internal/types"
)

// runMember implements phase 4 (§4.3.3 step 4): bind the declared type of
// every field, method parameter/return/throws/type-parameter, record
// component, and annotation element, plus record and enum member
// synthesis, now that the full type-relation scope (phase 3) is
// available for every class.
func (b *Binder) runMember(prelim *preliminaryResult, hierarchyEnv Environment) Environment {
	lookup := CompoundEnvironment{Top: hierarchyEnv, Base: b.Classpath}

	out := mapEnvironment{}
	for _, sym := range prelim.order {
		decl := prelim.classes[sym]
		header, _ := lookup.Lookup(sym)
		out[sym] = b.memberBind(lookup, decl, header)
	}
	return out
}

// classBoundResolver returns a lower.BoundResolver that answers only for
// bc's own type parameters; callers binding a method compose it with the
// method's own type parameters via composeResolvers.
func classBoundResolver(bc *BoundClass) lower.BoundResolver {
	return func(v types.TypeVariableSymbol) types.Intersection {
		for _, tp := range bc.TypeParams {
			if tp.Symbol == v {
				return tp.Bound
			}
		}
		return types.Intersection{}
	}
}

func composeResolvers(outer lower.BoundResolver, own []BoundTypeParam) lower.BoundResolver {
	return func(v types.TypeVariableSymbol) types.Intersection {
		for _, tp := range own {
			if tp.Symbol == v {
				return tp.Bound
			}
		}
		return outer(v)
	}
}

func (b *Binder) memberBind(lookup Environment, decl *classDecl, header *BoundClass) *BoundClass {
	bc := header.clone()
	scope := b.fullScope(lookup, decl)
	classBounds := classBoundResolver(bc)

	bc.DeclAnnotations = b.resolveAnnotations(decl.Node.Modifiers.Annotations, scope, decl)

	bc.Fields = nil
	for _, f := range decl.Node.Fields {
		bc.Fields = append(bc.Fields, b.bindField(bc.Symbol, f, scope, decl))
	}

	bc.Methods = nil
	for _, m := range decl.Node.Methods {
		bc.Methods = append(bc.Methods, b.bindMethod(bc.Symbol, m, scope, decl, classBounds))
	}

	switch decl.Node.Kind {
	case types.KindRecord:
		b.bindRecord(decl, scope, classBounds, bc)
	case types.KindEnum:
		b.bindEnumConstants(decl, bc)
	case types.KindAnnotation:
		bc.AnnotationMeta = b.bindAnnotationMeta(decl)
	}

	return bc
}

func (b *Binder) bindField(owner types.ClassSymbol, f *ast.FieldDecl, scope Scope, decl *classDecl) BoundField {
	t := b.resolveTypeRef(f.Type, scope, decl)
	for i := 0; i < f.ExtraDims; i++ {
		t = types.Array{Element: t}
	}
	return BoundField{
		Symbol:      types.FieldSymbol{Owner: owner, Name: f.Name},
		AccessFlags: f.Modifiers.Flags,
		Type:        t,
		Annotations: b.resolveAnnotations(f.Modifiers.Annotations, scope, decl),
	}
}

func (b *Binder) bindMethod(owner types.ClassSymbol, m *ast.MethodDecl, scope Scope, decl *classDecl, classBounds lower.BoundResolver) BoundMethod {
	var typeParams []BoundTypeParam
	for i, tp := range m.TypeParams {
		typeParams = append(typeParams, BoundTypeParam{
			Symbol: types.TypeVariableSymbol{Owner: methodSymbolStub(owner, m), Name: tp.Name, Index: i},
			Name:   tp.Name,
		})
	}
	methodScope := scope
	if len(typeParams) > 0 {
		names := map[string]types.TypeVariableSymbol{}
		for _, tp := range typeParams {
			names[tp.Name] = tp.Symbol
		}
		outer := scope.TypeParam
		methodScope.TypeParam = func(name string) (types.TypeVariableSymbol, bool) {
			if tv, ok := names[name]; ok {
				return tv, true
			}
			if outer != nil {
				return outer(name)
			}
			return types.TypeVariableSymbol{}, false
		}
	}

	bounds := classBounds
	for i := range typeParams {
		typeParams[i].Bound = b.resolveBoundExpr(m.TypeParams[i].Bounds, methodScope, decl, bounds)
	}
	bounds = composeResolvers(classBounds, typeParams)

	var params []BoundParam
	var paramTypes []types.Type
	for _, p := range m.Params {
		pt := b.resolveTypeRef(p.Type, methodScope, decl)
		if p.Varargs {
			pt = types.Array{Element: pt}
		}
		params = append(params, BoundParam{
			Name:        p.Name,
			Type:        pt,
			Varargs:     p.Varargs,
			Annotations: b.resolveAnnotations(p.Annotations, methodScope, decl),
		})
		paramTypes = append(paramTypes, pt)
	}

	ret := types.Type(types.VoidType{})
	if m.ReturnType != nil {
		ret = b.resolveTypeRef(m.ReturnType, methodScope, decl)
	}

	var throws []types.Type
	for _, tr := range m.Throws {
		throws = append(throws, b.resolveTypeRef(tr, methodScope, decl))
	}

	name := m.Name
	if m.IsConstructor {
		name = "<init>"
	}
	descriptor := lower.MethodDescriptor(b.Interner, bounds, paramTypes, ret)

	var annotationDefault types.ConstValue
	if m.AnnotationDefault != nil {
		annotationDefault = types.MissingConst{} // resolved in phase 5
	}

	return BoundMethod{
		Symbol:            types.MethodSymbol{Owner: owner, Name: name, Descriptor: descriptor},
		AccessFlags:       m.Modifiers.Flags,
		TypeParams:        typeParams,
		Params:            params,
		Return:            ret,
		Throws:            throws,
		IsConstructor:      m.IsConstructor,
		AnnotationDefault: annotationDefault,
		Annotations:       b.resolveAnnotations(m.Modifiers.Annotations, methodScope, decl),
	}
}

// methodSymbolStub builds a placeholder MethodSymbol good enough to key a
// method type parameter's Owner before the method's real descriptor
// (which depends on its own type parameters' bounds) is known; only
// Owner/Name participate in TypeVariableSymbol equality for lookup
// purposes within a single bindMethod call, so the stub never needs to
// match a later, fully-descriptored MethodSymbol elsewhere.
func methodSymbolStub(owner types.ClassSymbol, m *ast.MethodDecl) types.MethodSymbol {
	name := m.Name
	if m.IsConstructor {
		name = "<init>"
	}
	return types.MethodSymbol{Owner: owner, Name: name}
}

func (b *Binder) resolveBoundExpr(refs []ast.TypeRef, scope Scope, decl *classDecl, outer lower.BoundResolver) types.Intersection {
	if len(refs) == 0 {
		return types.Intersection{Bounds: []types.Type{types.ObjectType(b.Interner)}}
	}
	bounds := make([]types.Type, 0, len(refs))
	for _, r := range refs {
		bounds = append(bounds, b.resolveTypeRef(r, scope, decl))
	}
	return types.Intersection{Bounds: bounds}
}
