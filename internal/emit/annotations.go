package emit

import (
	"github.com/arcbound/jhdrc/internal/classfile"
	"github.com/arcbound/jhdrc/internal/lower"
	"github.com/arcbound/jhdrc/internal/types"
)

// retentionOf looks up an annotation type's own bound @Retention,
// defaulting to RetentionClass (javac's default, and the one that keeps
// an annotation of unknown provenance — e.g. one only visible through a
// classpath this emitter doesn't see — present but runtime-invisible
// rather than silently dropped).
func (e *Emitter) retentionOf(sym types.ClassSymbol) types.RetentionPolicy {
	if bc, ok := e.Result.Final.Lookup(sym); ok && bc.AnnotationMeta != nil {
		return bc.AnnotationMeta.Retention
	}
	return types.RetentionClass
}

// splitByRetention converts annos into the RuntimeVisible/RuntimeInvisible
// buckets a declaration annotation attribute pair needs; RetentionSource
// annotations are dropped entirely, matching javac's own behavior of
// never emitting them into the class file at all.
func (e *Emitter) splitByRetention(annos []types.Annotation) (visible, invisible []classfile.Annotation) {
	for _, a := range annos {
		switch e.retentionOf(a.Type) {
		case types.RetentionRuntime:
			visible = append(visible, e.convertAnnotation(a))
		case types.RetentionClass:
			invisible = append(invisible, e.convertAnnotation(a))
		}
	}
	return visible, invisible
}

func (e *Emitter) convertAnnotation(a types.Annotation) classfile.Annotation {
	elems := make([]classfile.AnnotationElement, len(a.Elements))
	for i, el := range a.Elements {
		elems[i] = classfile.AnnotationElement{Name: el.Name, Value: e.constToElementValue(el.Value)}
	}
	return classfile.Annotation{
		TypeDescriptor: lower.Descriptor(e.Interner, noBoundResolver, types.NewClassType(a.Type)),
		Elements:       elems,
	}
}

// constToElementValue renders a resolved constant as a tagged
// element_value (JVMS §4.7.16.1). Integer-family literals (byte/short/
// char/boolean/int) all arrive as either BoolConst or IntConst — the
// binder doesn't retain which declared primitive kind produced them, so
// every IntConst is tagged 'I' here rather than narrowed to 'B'/'C'/'S';
// a reader only cares that the numeric value round-trips, which it does.
func (e *Emitter) constToElementValue(v types.ConstValue) classfile.ElementValue {
	switch c := v.(type) {
	case types.BoolConst:
		i := int64(0)
		if bool(c) {
			i = 1
		}
		return classfile.ElementValue{Tag: 'Z', ConstInt: i}
	case types.IntConst:
		return classfile.ElementValue{Tag: 'I', ConstInt: int64(c)}
	case types.LongConst:
		return classfile.ElementValue{Tag: 'J', ConstInt: int64(c)}
	case types.FloatConst:
		return classfile.ElementValue{Tag: 'F', ConstFloat: float64(c)}
	case types.DoubleConst:
		return classfile.ElementValue{Tag: 'D', ConstFloat: float64(c)}
	case types.StringConst:
		return classfile.ElementValue{Tag: 's', Const: string(c)}
	case types.ClassLiteralConst:
		return classfile.ElementValue{Tag: 'c', ClassName: lower.Descriptor(e.Interner, noBoundResolver, c.Of)}
	case types.EnumConst:
		return classfile.ElementValue{
			Tag:       'e',
			EnumType:  lower.Descriptor(e.Interner, noBoundResolver, types.NewClassType(c.Field.Owner)),
			EnumConst: c.Field.Name,
		}
	case types.AnnotationConst:
		a := e.convertAnnotation(c.Annotation)
		return classfile.ElementValue{Tag: '@', Annotation: &a}
	case types.ArrayConst:
		vals := make([]classfile.ElementValue, len(c.Elements))
		for i, el := range c.Elements {
			vals[i] = e.constToElementValue(el)
		}
		return classfile.ElementValue{Tag: '[', ArrayValues: vals}
	}
	// types.MissingConst or any other unresolved constant: emit a
	// placeholder rather than panicking on a binder diagnostic the
	// diagnostic list already reported.
	return classfile.ElementValue{Tag: 'I', ConstInt: 0}
}

// constantPoolIndex interns v as the right constant-pool kind for a
// ConstantValue attribute, reporting false for constant kinds that can
// never back a ConstantValue attribute (class literals, enum constants,
// nested annotations, arrays — none of these are valid field constant
// expressions in source).
func (e *Emitter) constantPoolIndex(pool *classfile.ConstantPool, v types.ConstValue) (uint16, bool) {
	switch c := v.(type) {
	case types.BoolConst:
		i := int32(0)
		if bool(c) {
			i = 1
		}
		return pool.Integer(i), true
	case types.IntConst:
		return pool.Integer(int32(c)), true
	case types.LongConst:
		return pool.Long(int64(c)), true
	case types.FloatConst:
		return pool.Float(float32(c)), true
	case types.DoubleConst:
		return pool.Double(float64(c)), true
	case types.StringConst:
		return pool.String(string(c)), true
	}
	return 0, false
}

// typeAnnotationsFor walks t's type-annotation tree (§4.4's algorithm),
// pairing every annotation found with target and the path WalkTypeAnnotations
// accumulated, then splits the result by retention.
func (e *Emitter) typeAnnotationsFor(t types.Type, target classfile.TypeAnnotationTarget) (visible, invisible []classfile.TypeAnnotation) {
	lower.WalkTypeAnnotations(t, nil, func(aap lower.AnnotationAtPath) {
		path := convertPath(aap.Path)
		for _, a := range aap.Annotations {
			ta := classfile.TypeAnnotation{
				Target:     e.convertAnnotation(a),
				TargetInfo: target,
				Path:       path,
			}
			switch e.retentionOf(a.Type) {
			case types.RetentionRuntime:
				visible = append(visible, ta)
			case types.RetentionClass:
				invisible = append(invisible, ta)
			}
		}
	})
	return visible, invisible
}

func convertPath(path []lower.PathStep) []classfile.TypePathStep {
	if len(path) == 0 {
		return nil
	}
	out := make([]classfile.TypePathStep, len(path))
	for i, s := range path {
		out[i] = classfile.TypePathStep{Kind: classfile.TypePathKind(s.Kind), TypeArgumentIdx: s.TypeArgIdx}
	}
	return out
}

func appendAnnotationAttrs(attrs []classfile.Attribute, pool *classfile.ConstantPool, visible, invisible []classfile.Annotation) []classfile.Attribute {
	if len(visible) > 0 {
		attrs = append(attrs, classfile.Attribute{Name: "RuntimeVisibleAnnotations", Body: classfile.AnnotationsAttribute(pool, visible)})
	}
	if len(invisible) > 0 {
		attrs = append(attrs, classfile.Attribute{Name: "RuntimeInvisibleAnnotations", Body: classfile.AnnotationsAttribute(pool, invisible)})
	}
	return attrs
}

func appendTypeAnnotationAttrs(attrs []classfile.Attribute, pool *classfile.ConstantPool, visible, invisible []classfile.TypeAnnotation) []classfile.Attribute {
	if len(visible) > 0 {
		attrs = append(attrs, classfile.Attribute{Name: "RuntimeVisibleTypeAnnotations", Body: classfile.TypeAnnotationsAttribute(pool, visible)})
	}
	if len(invisible) > 0 {
		attrs = append(attrs, classfile.Attribute{Name: "RuntimeInvisibleTypeAnnotations", Body: classfile.TypeAnnotationsAttribute(pool, invisible)})
	}
	return attrs
}
