// Package emit is the binder → class-file assembly stage: it takes a
// binder.BindResult and, for every source class in registration order
// (§5), drives the lower package's erasure/signature/type-annotation/
// inner-class algorithms plus the classfile package's attribute builders
// into one fully-assembled classfile.Class ready for classfile.Write.
package emit

import (
	"github.com/arcbound/jhdrc/internal/binder"
	"github.com/arcbound/jhdrc/internal/classfile"
	"github.com/arcbound/jhdrc/internal/lower"
	"github.com/arcbound/jhdrc/internal/types"
)

// noBoundResolver is used wherever a descriptor is computed for a type
// that can never itself be a type variable (an annotation type name, a
// class literal's referent) — erasure never needs a real bound lookup
// there.
var noBoundResolver lower.BoundResolver = func(types.TypeVariableSymbol) types.Intersection {
	return types.Intersection{}
}

// Emitter lowers every class bound by a single binder.Bind call.
type Emitter struct {
	Interner *types.Interner
	Result   binder.BindResult
}

// New constructs an Emitter over a completed bind result.
func New(interner *types.Interner, result binder.BindResult) *Emitter {
	return &Emitter{Interner: interner, Result: result}
}

// ClassFile pairs one lowered classfile.Class with the ConstantPool built
// while lowering it — classfile.Write needs both, since attribute bodies
// built along the way already reference indices interned into this pool.
type ClassFile struct {
	Symbol types.ClassSymbol
	Pool   *classfile.ConstantPool
	Class  classfile.Class
}

// Classes lowers every class in Result.Order, skipping any symbol the
// final environment no longer carries (never happens for a source class,
// but guards against a caller handing in a partial BindResult).
func (e *Emitter) Classes() []ClassFile {
	out := make([]ClassFile, 0, len(e.Result.Order))
	for _, sym := range e.Result.Order {
		if cf, ok := e.EmitSymbol(sym); ok {
			out = append(out, cf)
		}
	}
	return out
}

// EmitSymbol lowers the single class sym names, looking it up in the
// final bound environment first. It is the per-class unit of work
// pipeline.LowerAll fans out across goroutines; Classes itself is just
// this called once per symbol in Result.Order.
func (e *Emitter) EmitSymbol(sym types.ClassSymbol) (ClassFile, bool) {
	bc, ok := e.Result.Final.Lookup(sym)
	if !ok {
		return ClassFile{}, false
	}
	return e.emitClass(bc), true
}

func (e *Emitter) emitClass(bc *binder.BoundClass) ClassFile {
	pool := classfile.NewConstantPool()
	classBounds := classBoundResolver(bc)

	thisName := e.Interner.Name(bc.Symbol)
	var superName string
	if len(bc.Supertype.Path) > 0 {
		superName = e.Interner.Name(bc.Supertype.Symbol())
	}
	var interfaceNames []string
	for _, iface := range bc.Interfaces {
		if len(iface.Path) == 0 {
			continue
		}
		interfaceNames = append(interfaceNames, e.Interner.Name(iface.Symbol()))
	}

	flags := bc.AccessFlags
	if bc.Enclosing.Valid() {
		flags = lower.PromoteNestedAccess(flags)
	}

	var classAttrs []classfile.Attribute

	if classNeedsSignature(bc) {
		sig := lower.ClassSignature(e.Interner, typeParamInfos(bc.TypeParams), bc.Supertype, bc.Interfaces)
		classAttrs = append(classAttrs, classfile.Attribute{Name: "Signature", Body: classfile.SignatureAttribute(pool, sig)})
	}

	visible, invisible := e.splitByRetention(bc.DeclAnnotations)
	classAttrs = appendAnnotationAttrs(classAttrs, pool, visible, invisible)

	var taVisible, taInvisible []classfile.TypeAnnotation
	if len(bc.Supertype.Path) > 0 {
		v, iv := e.typeAnnotationsFor(bc.Supertype, classfile.TypeAnnotationTarget{Kind: classfile.TargetClassExtends, SupertypeIdx: 0xFFFF})
		taVisible, taInvisible = append(taVisible, v...), append(taInvisible, iv...)
	}
	for i, iface := range bc.Interfaces {
		v, iv := e.typeAnnotationsFor(iface, classfile.TypeAnnotationTarget{Kind: classfile.TargetClassExtends, SupertypeIdx: uint16(i)})
		taVisible, taInvisible = append(taVisible, v...), append(taInvisible, iv...)
	}
	for i, tp := range bc.TypeParams {
		for j, bound := range tp.Bound.Bounds {
			v, iv := e.typeAnnotationsFor(bound, classfile.TypeAnnotationTarget{Kind: classfile.TargetClassTypeParamBound, TypeParamIdx: uint8(i), BoundIdx: boundIndex(tp.Bound, j)})
			taVisible, taInvisible = append(taVisible, v...), append(taInvisible, iv...)
		}
	}
	classAttrs = appendTypeAnnotationAttrs(classAttrs, pool, taVisible, taInvisible)

	fields := make([]classfile.FieldEntry, len(bc.Fields))
	for i, f := range bc.Fields {
		fields[i] = e.emitField(pool, classBounds, f)
	}

	methods := make([]classfile.MethodEntry, len(bc.Methods))
	for i, m := range bc.Methods {
		methods[i] = e.emitMethod(pool, classBounds, m)
	}

	referenced := e.referencedClasses(bc)
	rows := lower.CollectInnerClasses(classLookupAdapter{e.Result.Final}, bc.Symbol, referenced)
	if len(rows) > 0 {
		entries := make([]classfile.InnerClassEntry, len(rows))
		for i, row := range rows {
			entries[i] = classfile.InnerClassEntry{
				InnerBinaryName: e.Interner.Name(row.Inner),
				InnerSimpleName: e.Interner.SimpleName(row.Inner),
				InnerAccess:     uint16(row.OriginalAccess),
			}
			if row.Outer.Valid() {
				entries[i].OuterBinaryName = e.Interner.Name(row.Outer)
			}
		}
		classAttrs = append(classAttrs, classfile.Attribute{Name: "InnerClasses", Body: classfile.InnerClassesAttribute(pool, entries)})
	}

	if bc.Kind == types.KindRecord {
		comps := make([]classfile.RecordComponentEntry, len(bc.RecordComps))
		for i, rc := range bc.RecordComps {
			var attrs []classfile.Attribute
			if lower.NeedsSignature(rc.Type) {
				attrs = append(attrs, classfile.Attribute{Name: "Signature", Body: classfile.SignatureAttribute(pool, lower.TypeSignature(e.Interner, rc.Type))})
			}
			v, iv := e.splitByRetention(rc.Annotations)
			attrs = appendAnnotationAttrs(attrs, pool, v, iv)
			comps[i] = classfile.RecordComponentEntry{
				Name:       rc.Name,
				Descriptor: lower.Descriptor(e.Interner, classBounds, rc.Type),
				Attributes: attrs,
			}
		}
		body, _ := classfile.RecordAttribute(pool, comps) // bytes.Buffer never errors
		classAttrs = append(classAttrs, classfile.Attribute{Name: "Record", Body: body})
	}

	if len(bc.Permitted) > 0 {
		names := make([]string, len(bc.Permitted))
		for i, p := range bc.Permitted {
			names[i] = e.Interner.Name(p)
		}
		classAttrs = append(classAttrs, classfile.Attribute{Name: "PermittedSubclasses", Body: classfile.PermittedSubclassesAttribute(pool, names)})
	}

	cls := classfile.Class{
		MinorVersion: classfile.DefaultMinorVersion,
		MajorVersion: classfile.DefaultMajorVersion,
		AccessFlags:  uint16(flags),
		ThisClass:    thisName,
		SuperClass:   superName,
		Interfaces:   interfaceNames,
		Fields:       fields,
		Methods:      methods,
		Attributes:   classAttrs,
	}
	return ClassFile{Symbol: bc.Symbol, Pool: pool, Class: cls}
}

func (e *Emitter) emitField(pool *classfile.ConstantPool, classBounds lower.BoundResolver, f binder.BoundField) classfile.FieldEntry {
	descriptor := lower.Descriptor(e.Interner, classBounds, f.Type)

	var attrs []classfile.Attribute
	if lower.NeedsSignature(f.Type) {
		attrs = append(attrs, classfile.Attribute{Name: "Signature", Body: classfile.SignatureAttribute(pool, lower.TypeSignature(e.Interner, f.Type))})
	}
	if f.Constant != nil {
		if idx, ok := e.constantPoolIndex(pool, f.Constant); ok {
			attrs = append(attrs, classfile.Attribute{Name: "ConstantValue", Body: classfile.ConstantValueAttribute(idx)})
		}
	}

	visible, invisible := e.splitByRetention(f.Annotations)
	attrs = appendAnnotationAttrs(attrs, pool, visible, invisible)

	taVisible, taInvisible := e.typeAnnotationsFor(f.Type, classfile.TypeAnnotationTarget{Kind: classfile.TargetField})
	attrs = appendTypeAnnotationAttrs(attrs, pool, taVisible, taInvisible)

	return classfile.FieldEntry{
		AccessFlags: uint16(f.AccessFlags),
		Name:        f.Symbol.Name,
		Descriptor:  descriptor,
		Attributes:  attrs,
	}
}

func (e *Emitter) emitMethod(pool *classfile.ConstantPool, classBounds lower.BoundResolver, m binder.BoundMethod) classfile.MethodEntry {
	// m.Symbol.Descriptor was already computed by the binder against the
	// composed class+method bound resolver; only the signature (built
	// from the unerased types below) needs recomputing here.
	var attrs []classfile.Attribute
	if methodNeedsSignature(m) {
		sig := lower.MethodSignature(e.Interner, typeParamInfos(m.TypeParams), paramTypes(m.Params), m.Return, m.Throws)
		attrs = append(attrs, classfile.Attribute{Name: "Signature", Body: classfile.SignatureAttribute(pool, sig)})
	}

	if len(m.Throws) > 0 {
		var names []string
		for _, th := range m.Throws {
			if ct, ok := th.(types.ClassType); ok && len(ct.Path) > 0 {
				names = append(names, e.Interner.Name(ct.Symbol()))
			}
		}
		attrs = append(attrs, classfile.Attribute{Name: "Exceptions", Body: classfile.ExceptionsAttribute(pool, names)})
	}

	visible, invisible := e.splitByRetention(m.Annotations)
	attrs = appendAnnotationAttrs(attrs, pool, visible, invisible)

	var taVisible, taInvisible []classfile.TypeAnnotation
	rv, riv := e.typeAnnotationsFor(m.Return, classfile.TypeAnnotationTarget{Kind: classfile.TargetMethodReturn})
	taVisible, taInvisible = append(taVisible, rv...), append(taInvisible, riv...)
	for i, p := range m.Params {
		pv, piv := e.typeAnnotationsFor(p.Type, classfile.TypeAnnotationTarget{Kind: classfile.TargetMethodFormalParam, Index: uint8(i)})
		taVisible, taInvisible = append(taVisible, pv...), append(taInvisible, piv...)
	}
	for i, th := range m.Throws {
		tv, tiv := e.typeAnnotationsFor(th, classfile.TypeAnnotationTarget{Kind: classfile.TargetThrows, SupertypeIdx: uint16(i)})
		taVisible, taInvisible = append(taVisible, tv...), append(taInvisible, tiv...)
	}
	for i, tp := range m.TypeParams {
		for j, bound := range tp.Bound.Bounds {
			bv, biv := e.typeAnnotationsFor(bound, classfile.TypeAnnotationTarget{Kind: classfile.TargetMethodTypeParamBound, TypeParamIdx: uint8(i), BoundIdx: boundIndex(tp.Bound, j)})
			taVisible, taInvisible = append(taVisible, bv...), append(taInvisible, biv...)
		}
	}
	attrs = appendTypeAnnotationAttrs(attrs, pool, taVisible, taInvisible)

	if hasNonSyntheticParamAnnotations(m.Params) {
		var perParamVisible, perParamInvisible [][]classfile.Annotation
		for _, p := range m.Params {
			if p.Synthetic {
				continue
			}
			v, iv := e.splitByRetention(p.Annotations)
			perParamVisible = append(perParamVisible, v)
			perParamInvisible = append(perParamInvisible, iv)
		}
		attrs = append(attrs, classfile.Attribute{Name: "RuntimeVisibleParameterAnnotations", Body: classfile.ParameterAnnotationsAttribute(pool, perParamVisible)})
		attrs = append(attrs, classfile.Attribute{Name: "RuntimeInvisibleParameterAnnotations", Body: classfile.ParameterAnnotationsAttribute(pool, perParamInvisible)})
	}

	if m.AnnotationDefault != nil {
		if _, missing := m.AnnotationDefault.(types.MissingConst); !missing {
			attrs = append(attrs, classfile.Attribute{Name: "AnnotationDefault", Body: classfile.AnnotationDefaultAttribute(pool, e.constToElementValue(m.AnnotationDefault))})
		}
	}

	flags := m.AccessFlags
	if len(m.Params) > 0 && m.Params[len(m.Params)-1].Varargs {
		flags = flags.With(types.AccTransient) // ACC_VARARGS shares ACC_TRANSIENT's bit on methods
	}

	return classfile.MethodEntry{
		AccessFlags: uint16(flags),
		Name:        m.Symbol.Name,
		Descriptor:  m.Symbol.Descriptor,
		Attributes:  attrs,
	}
}

func hasNonSyntheticParamAnnotations(params []binder.BoundParam) bool {
	for _, p := range params {
		if !p.Synthetic && len(p.Annotations) > 0 {
			return true
		}
	}
	return false
}

func paramTypes(params []binder.BoundParam) []types.Type {
	out := make([]types.Type, len(params))
	for i, p := range params {
		out[i] = p.Type
	}
	return out
}

func typeParamInfos(tps []binder.BoundTypeParam) []lower.TypeParamInfo {
	out := make([]lower.TypeParamInfo, len(tps))
	for i, tp := range tps {
		out[i] = lower.TypeParamInfo{Name: tp.Name, Bound: tp.Bound}
	}
	return out
}

// boundIndex implements §4.4's type-parameter bound-index rule for type
// annotations: index 0 is reserved for a class superclass bound; if the
// first written bound is itself an interface (Bound.FirstIsInterface),
// there is no class bound to occupy slot 0, so interface bounds start
// numbering at 1 instead.
func boundIndex(bound types.Intersection, j int) uint8 {
	if bound.FirstIsInterface {
		return uint8(j + 1)
	}
	return uint8(j)
}

func classNeedsSignature(bc *binder.BoundClass) bool {
	if len(bc.TypeParams) > 0 {
		return true
	}
	if lower.NeedsSignature(bc.Supertype) {
		return true
	}
	for _, i := range bc.Interfaces {
		if lower.NeedsSignature(i) {
			return true
		}
	}
	return false
}

func methodNeedsSignature(m binder.BoundMethod) bool {
	if len(m.TypeParams) > 0 {
		return true
	}
	for _, p := range m.Params {
		if lower.NeedsSignature(p.Type) {
			return true
		}
	}
	if lower.NeedsSignature(m.Return) {
		return true
	}
	for _, th := range m.Throws {
		if lower.NeedsSignature(th) {
			return true
		}
	}
	return false
}

// classBoundResolver mirrors the binder's own (unexported) helper of the
// same name: field and record-component descriptors are only computed
// here, not in the binder, so the class-level bound composition is
// rebuilt rather than threaded through BoundClass.
func classBoundResolver(bc *binder.BoundClass) lower.BoundResolver {
	return func(v types.TypeVariableSymbol) types.Intersection {
		for _, tp := range bc.TypeParams {
			if tp.Symbol == v {
				return tp.Bound
			}
		}
		return types.Intersection{}
	}
}

// classLookupAdapter satisfies lower.ClassLookup over a binder.Environment.
type classLookupAdapter struct {
	env binder.Environment
}

func (a classLookupAdapter) Enclosing(sym types.ClassSymbol) (types.ClassSymbol, bool) {
	bc, ok := a.env.Lookup(sym)
	if !ok || !bc.Enclosing.Valid() {
		return types.ClassSymbol{}, false
	}
	return bc.Enclosing, true
}

func (a classLookupAdapter) NestedMembers(sym types.ClassSymbol) []types.ClassSymbol {
	bc, ok := a.env.Lookup(sym)
	if !ok {
		return nil
	}
	return bc.NestedClasses
}

func (a classLookupAdapter) AccessFlags(sym types.ClassSymbol) types.AccessFlags {
	bc, ok := a.env.Lookup(sym)
	if !ok {
		return 0
	}
	return bc.AccessFlags
}

// referencedClasses collects every class symbol mentioned anywhere in
// bc's own descriptors/signatures, the seed set lower.CollectInnerClasses
// needs beyond bc itself and its own nested members.
func (e *Emitter) referencedClasses(bc *binder.BoundClass) []types.ClassSymbol {
	var out []types.ClassSymbol
	collectTypeClassSymbols(bc.Supertype, &out)
	for _, iface := range bc.Interfaces {
		collectTypeClassSymbols(iface, &out)
	}
	for _, tp := range bc.TypeParams {
		collectTypeClassSymbols(tp.Bound, &out)
	}
	for _, f := range bc.Fields {
		collectTypeClassSymbols(f.Type, &out)
	}
	for _, m := range bc.Methods {
		for _, p := range m.Params {
			collectTypeClassSymbols(p.Type, &out)
		}
		collectTypeClassSymbols(m.Return, &out)
		for _, th := range m.Throws {
			collectTypeClassSymbols(th, &out)
		}
		for _, tp := range m.TypeParams {
			collectTypeClassSymbols(tp.Bound, &out)
		}
	}
	for _, rc := range bc.RecordComps {
		collectTypeClassSymbols(rc.Type, &out)
	}
	return out
}

func collectTypeClassSymbols(t types.Type, out *[]types.ClassSymbol) {
	switch v := t.(type) {
	case types.ClassType:
		for _, seg := range v.Path {
			*out = append(*out, seg.Symbol)
			for _, arg := range seg.TypeArgs {
				collectTypeClassSymbols(arg, out)
			}
		}
	case types.Array:
		collectTypeClassSymbols(v.Element, out)
	case types.Wildcard:
		if v.BoundType != nil {
			collectTypeClassSymbols(v.BoundType, out)
		}
	case types.Intersection:
		for _, b := range v.Bounds {
			collectTypeClassSymbols(b, out)
		}
	}
}
