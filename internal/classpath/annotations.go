package classpath

import (
	"fmt"

	"github.com/arcbound/jhdrc/internal/binder"
	"github.com/arcbound/jhdrc/internal/classfile"
	"github.com/arcbound/jhdrc/internal/lower"
	"github.com/arcbound/jhdrc/internal/types"
)

// convertAnnotations converts a decoded classfile.Annotation list (the
// class-file's own on-disk shape) into the bound types.Annotation shape
// the binder produces for source annotations.
func convertAnnotations(interner *types.Interner, annos []classfile.Annotation) ([]types.Annotation, error) {
	if len(annos) == 0 {
		return nil, nil
	}
	out := make([]types.Annotation, len(annos))
	for i, a := range annos {
		converted, err := convertAnnotation(interner, a)
		if err != nil {
			return nil, err
		}
		out[i] = converted
	}
	return out, nil
}

func convertAnnotation(interner *types.Interner, a classfile.Annotation) (types.Annotation, error) {
	sym := classSymbolFromDescriptor(interner, a.TypeDescriptor)
	elements := make([]types.AnnotationElement, len(a.Elements))
	for i, el := range a.Elements {
		v, err := convertElementValue(interner, el.Value)
		if err != nil {
			return types.Annotation{}, fmt.Errorf("element %s: %w", el.Name, err)
		}
		elements[i] = types.AnnotationElement{Name: el.Name, Value: v}
	}
	return types.Annotation{Type: sym, Elements: elements}, nil
}

// convertElementValue converts one element_value (annotation argument,
// default value, or array element) into its bound constant-value form.
func convertElementValue(interner *types.Interner, v classfile.ElementValue) (types.ConstValue, error) {
	switch v.Tag {
	case 'Z':
		return types.BoolConst(v.ConstInt != 0), nil
	case 'B', 'C', 'I', 'S':
		return types.IntConst(int32(v.ConstInt)), nil
	case 'J':
		return types.LongConst(v.ConstInt), nil
	case 'F':
		return types.FloatConst(float32(v.ConstFloat)), nil
	case 'D':
		return types.DoubleConst(v.ConstFloat), nil
	case 's':
		return types.StringConst(v.Const), nil
	case 'e':
		return types.EnumConst{Field: types.FieldSymbol{
			Owner: classSymbolFromDescriptor(interner, v.EnumType),
			Name:  v.EnumConst,
		}}, nil
	case 'c':
		t, err := lower.ParseDescriptor(interner, v.ClassName)
		if err != nil {
			return nil, fmt.Errorf("parsing class literal descriptor %q: %w", v.ClassName, err)
		}
		return types.ClassLiteralConst{Of: t}, nil
	case '@':
		if v.Annotation == nil {
			return types.MissingConst{}, nil
		}
		nested, err := convertAnnotation(interner, *v.Annotation)
		if err != nil {
			return nil, err
		}
		return types.AnnotationConst{Annotation: nested}, nil
	case '[':
		elems := make([]types.ConstValue, len(v.ArrayValues))
		for i, ev := range v.ArrayValues {
			cv, err := convertElementValue(interner, ev)
			if err != nil {
				return nil, err
			}
			elems[i] = cv
		}
		return types.ArrayConst{Elements: elems}, nil
	}
	return types.MissingConst{}, nil
}

// constValueFromFieldConstant narrows a decoded ConstantValue attribute
// (tagged only by its constant-pool entry's own kind) to the field's
// declared type — the inverse of the emitter's constantPoolIndex, which
// widens a BoolConst to a plain Integer pool entry before writing.
func constValueFromFieldConstant(ev classfile.ElementValue, fieldType types.Type) types.ConstValue {
	switch ev.Tag {
	case 'I':
		if p, ok := fieldType.(types.Primitive); ok && p.Kind == types.Boolean {
			return types.BoolConst(ev.ConstInt != 0)
		}
		return types.IntConst(int32(ev.ConstInt))
	case 'J':
		return types.LongConst(ev.ConstInt)
	case 'F':
		return types.FloatConst(float32(ev.ConstFloat))
	case 'D':
		return types.DoubleConst(ev.ConstFloat)
	case 's':
		return types.StringConst(ev.Const)
	}
	return nil
}

// classSymbolFromDescriptor interns the class symbol named by a field
// descriptor (e.g. "Ljava/lang/String;"); a malformed or non-class
// descriptor resolves to types.ErrorSymbol rather than failing the whole
// class parse, matching how the binder degrades gracefully for
// unresolvable references (§3.1).
func classSymbolFromDescriptor(interner *types.Interner, descriptor string) types.ClassSymbol {
	t, err := lower.ParseDescriptor(interner, descriptor)
	if err != nil {
		return types.ErrorSymbol
	}
	ct, ok := t.(types.ClassType)
	if !ok {
		return types.ErrorSymbol
	}
	return ct.Symbol()
}

// retentionPolicyNames and elementTypeBits mirror the well-known
// java.lang.annotation enums, needed to interpret @Retention/@Target
// meta-annotations found on a classpath annotation-type declaration
// (§3.3's AnnotationMeta, which the binder computes for source annotation
// types in phase 4 and which a classpath annotation type needs populated
// the same way).
var retentionPolicyNames = map[string]types.RetentionPolicy{
	"SOURCE":  types.RetentionSource,
	"CLASS":   types.RetentionClass,
	"RUNTIME": types.RetentionRuntime,
}

var elementTypeBits = map[string]types.AnnotationTarget{
	"TYPE":             types.TargetType,
	"FIELD":            types.TargetField,
	"METHOD":           types.TargetMethod,
	"PARAMETER":        types.TargetParameter,
	"CONSTRUCTOR":      types.TargetConstructor,
	"LOCAL_VARIABLE":   types.TargetLocalVariable,
	"ANNOTATION_TYPE":  types.TargetAnnotationType,
	"PACKAGE":          types.TargetPackage,
	"TYPE_PARAMETER":   types.TargetTypeParameter,
	"TYPE_USE":         types.TargetTypeUse,
	"MODULE":           types.TargetModule,
	"RECORD_COMPONENT": types.TargetRecordComponent,
}

const (
	retentionDescriptor  = "java/lang/annotation/Retention"
	targetDescriptor     = "java/lang/annotation/Target"
	inheritedDescriptor  = "java/lang/annotation/Inherited"
	repeatableDescriptor = "java/lang/annotation/Repeatable"
)

// extractAnnotationMeta scans an annotation type's own declaration
// annotations for the four meta-annotations that populate AnnotationMeta.
func extractAnnotationMeta(interner *types.Interner, declAnnotations []types.Annotation) *binder.AnnotationMeta {
	meta := &binder.AnnotationMeta{}
	for _, a := range declAnnotations {
		name := interner.Name(a.Type)
		switch name {
		case retentionDescriptor:
			if v, ok := findElement(a.Elements, "value"); ok {
				if ec, ok := v.(types.EnumConst); ok {
					if rp, ok := retentionPolicyNames[ec.Field.Name]; ok {
						meta.Retention = rp
					}
				}
			}
		case targetDescriptor:
			if v, ok := findElement(a.Elements, "value"); ok {
				if arr, ok := v.(types.ArrayConst); ok {
					for _, el := range arr.Elements {
						if ec, ok := el.(types.EnumConst); ok {
							if bit, ok := elementTypeBits[ec.Field.Name]; ok {
								meta.Targets |= bit
							}
						}
					}
				}
			}
		case inheritedDescriptor:
			meta.Inherited = true
		case repeatableDescriptor:
			if v, ok := findElement(a.Elements, "value"); ok {
				if cl, ok := v.(types.ClassLiteralConst); ok {
					if ct, ok := cl.Of.(types.ClassType); ok {
						meta.Repeatable = true
						meta.Container = ct.Symbol()
					}
				}
			}
		}
	}
	return meta
}

func findElement(elements []types.AnnotationElement, name string) (types.ConstValue, bool) {
	for _, el := range elements {
		if el.Name == name {
			return el.Value, true
		}
	}
	return nil, false
}
