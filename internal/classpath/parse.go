package classpath

import (
	"bytes"
	"fmt"

	"github.com/arcbound/jhdrc/internal/binder"
	"github.com/arcbound/jhdrc/internal/classfile"
	"github.com/arcbound/jhdrc/internal/lower"
	"github.com/arcbound/jhdrc/internal/types"
)

// parseBoundClass decodes a binary class file's bytes into the same
// bound-class shape the binder's phase 6 produces for a source class
// (§4.5). Generic information comes from the Signature attribute when
// present; a member with no Signature attribute is erasure-only, so its
// type comes from its plain descriptor instead (§4.4: Signature is only
// emitted when a member carries more than its descriptor already says).
func parseBoundClass(interner *types.Interner, sym types.ClassSymbol, data []byte) (*binder.BoundClass, error) {
	pc, err := classfile.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("reading class file: %w", err)
	}

	bc := &binder.BoundClass{
		Symbol:      sym,
		AccessFlags: types.AccessFlags(pc.AccessFlags),
	}

	var classTypeParams []lower.ParsedTypeParam
	if sigBody, ok := classfile.AttributeBody(pc.Attributes, "Signature"); ok {
		sig := classfile.DecodeSignature(pc.Pool, sigBody)
		parsed, err := lower.ParseClassSignature(interner, sym, nil, sig)
		if err != nil {
			return nil, fmt.Errorf("parsing class signature: %w", err)
		}
		classTypeParams = parsed.TypeParams
		bc.Supertype = parsed.Super
		bc.Interfaces = parsed.Interfaces
	} else {
		if pc.SuperClass != "" {
			bc.Supertype = types.NewClassType(interner.Intern(pc.SuperClass))
		}
		for _, iface := range pc.Interfaces {
			bc.Interfaces = append(bc.Interfaces, types.NewClassType(interner.Intern(iface)))
		}
	}
	bc.TypeParams = convertTypeParams(classTypeParams)
	bc.Kind = classifyKind(pc)

	var recordBody []byte
	hasRecord := false

	for _, attr := range pc.Attributes {
		switch attr.Name {
		case "InnerClasses":
			entries, err := classfile.DecodeInnerClasses(pc.Pool, attr.Body)
			if err != nil {
				return nil, fmt.Errorf("decoding InnerClasses: %w", err)
			}
			for _, e := range entries {
				if e.OuterBinaryName == pc.ThisClass {
					bc.NestedClasses = append(bc.NestedClasses, interner.Intern(e.InnerBinaryName))
				}
				if e.InnerBinaryName == pc.ThisClass && e.OuterBinaryName != "" {
					bc.Enclosing = interner.Intern(e.OuterBinaryName)
				}
			}
		case "PermittedSubclasses":
			names, err := classfile.DecodePermittedSubclasses(pc.Pool, attr.Body)
			if err != nil {
				return nil, fmt.Errorf("decoding PermittedSubclasses: %w", err)
			}
			for _, n := range names {
				bc.Permitted = append(bc.Permitted, interner.Intern(n))
			}
		case "Record":
			recordBody = attr.Body
			hasRecord = true
		case "RuntimeVisibleAnnotations", "RuntimeInvisibleAnnotations":
			annos, err := classfile.DecodeAnnotations(pc.Pool, attr.Body)
			if err != nil {
				return nil, fmt.Errorf("decoding %s: %w", attr.Name, err)
			}
			converted, err := convertAnnotations(interner, annos)
			if err != nil {
				return nil, fmt.Errorf("converting %s: %w", attr.Name, err)
			}
			bc.DeclAnnotations = append(bc.DeclAnnotations, converted...)
		}
	}

	if hasRecord {
		comps, err := classfile.DecodeRecord(pc.Pool, recordBody)
		if err != nil {
			return nil, fmt.Errorf("decoding Record: %w", err)
		}
		bc.RecordComps, err = convertRecordComponents(interner, pc.Pool, classTypeParams, comps)
		if err != nil {
			return nil, fmt.Errorf("converting record components: %w", err)
		}
	}

	for _, f := range pc.Fields {
		bf, err := convertField(interner, pc.Pool, sym, classTypeParams, f)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		bc.Fields = append(bc.Fields, bf)
	}

	for _, m := range pc.Methods {
		bm, err := convertMethod(interner, pc.Pool, sym, classTypeParams, m)
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", m.Name, err)
		}
		bc.Methods = append(bc.Methods, bm)
	}

	if bc.Kind == types.KindAnnotation {
		bc.AnnotationMeta = extractAnnotationMeta(interner, bc.DeclAnnotations)
	}

	return bc, nil
}

func classifyKind(pc *classfile.ParsedClass) types.SourceKind {
	flags := types.AccessFlags(pc.AccessFlags)
	switch {
	case flags.Has(types.AccAnnotation):
		return types.KindAnnotation
	case flags.Has(types.AccEnum):
		return types.KindEnum
	case hasAttribute(pc.Attributes, "Record"):
		return types.KindRecord
	case flags.Has(types.AccInterface):
		return types.KindInterface
	}
	return types.KindClass
}

func hasAttribute(attrs []classfile.Attribute, name string) bool {
	_, ok := classfile.AttributeBody(attrs, name)
	return ok
}

func convertTypeParams(ps []lower.ParsedTypeParam) []binder.BoundTypeParam {
	if len(ps) == 0 {
		return nil
	}
	out := make([]binder.BoundTypeParam, len(ps))
	for i, p := range ps {
		out[i] = binder.BoundTypeParam{Symbol: p.Symbol, Name: p.Symbol.Name, Bound: p.Bound}
	}
	return out
}

// fieldOrComponentType resolves a field or record component's type: the
// Signature attribute's parsed type if present, otherwise the plain
// descriptor, erasure-only.
func fieldOrComponentType(interner *types.Interner, pool *classfile.ReadPool, scope []lower.ParsedTypeParam, attrs []classfile.Attribute, descriptor string) (types.Type, error) {
	if sigBody, ok := classfile.AttributeBody(attrs, "Signature"); ok {
		sig := classfile.DecodeSignature(pool, sigBody)
		return lower.ParseTypeSignature(interner, scope, sig)
	}
	return lower.ParseDescriptor(interner, descriptor)
}

func convertField(interner *types.Interner, pool *classfile.ReadPool, owner types.ClassSymbol, classTypeParams []lower.ParsedTypeParam, f classfile.ParsedMember) (binder.BoundField, error) {
	typ, err := fieldOrComponentType(interner, pool, classTypeParams, f.Attributes, f.Descriptor)
	if err != nil {
		return binder.BoundField{}, err
	}

	bf := binder.BoundField{
		Symbol:      types.FieldSymbol{Owner: owner, Name: f.Name},
		AccessFlags: types.AccessFlags(f.AccessFlags),
		Type:        typ,
	}

	if cvBody, ok := classfile.AttributeBody(f.Attributes, "ConstantValue"); ok {
		ev := classfile.DecodeConstantValue(pool, cvBody)
		bf.Constant = constValueFromFieldConstant(ev, typ)
	}

	for _, attr := range f.Attributes {
		switch attr.Name {
		case "RuntimeVisibleAnnotations", "RuntimeInvisibleAnnotations":
			annos, err := classfile.DecodeAnnotations(pool, attr.Body)
			if err != nil {
				return binder.BoundField{}, fmt.Errorf("decoding %s: %w", attr.Name, err)
			}
			converted, err := convertAnnotations(interner, annos)
			if err != nil {
				return binder.BoundField{}, err
			}
			bf.Annotations = append(bf.Annotations, converted...)
		}
	}

	return bf, nil
}

func convertMethod(interner *types.Interner, pool *classfile.ReadPool, owner types.ClassSymbol, classTypeParams []lower.ParsedTypeParam, m classfile.ParsedMember) (binder.BoundMethod, error) {
	var methodTypeParams []lower.ParsedTypeParam
	var params []types.Type
	var ret types.Type
	var throws []types.Type

	if sigBody, ok := classfile.AttributeBody(m.Attributes, "Signature"); ok {
		sig := classfile.DecodeSignature(pool, sigBody)
		parsed, err := lower.ParseMethodSignature(interner, types.MethodSymbol{Owner: owner, Name: m.Name, Descriptor: m.Descriptor}, classTypeParams, sig)
		if err != nil {
			return binder.BoundMethod{}, fmt.Errorf("parsing method signature: %w", err)
		}
		methodTypeParams = parsed.TypeParams
		params = parsed.Params
		ret = parsed.Return
		throws = parsed.Throws
	} else {
		var err error
		params, ret, err = lower.ParseMethodDescriptor(interner, m.Descriptor)
		if err != nil {
			return binder.BoundMethod{}, fmt.Errorf("parsing method descriptor: %w", err)
		}
	}

	if len(throws) == 0 {
		if exBody, ok := classfile.AttributeBody(m.Attributes, "Exceptions"); ok {
			names, err := classfile.DecodeExceptions(pool, exBody)
			if err != nil {
				return binder.BoundMethod{}, fmt.Errorf("decoding Exceptions: %w", err)
			}
			for _, n := range names {
				throws = append(throws, types.NewClassType(interner.Intern(n)))
			}
		}
	}

	bm := binder.BoundMethod{
		Symbol:        types.MethodSymbol{Owner: owner, Name: m.Name, Descriptor: m.Descriptor},
		AccessFlags:   types.AccessFlags(m.AccessFlags),
		TypeParams:    convertTypeParams(methodTypeParams),
		Return:        ret,
		Throws:        throws,
		IsConstructor: m.Name == "<init>",
	}

	bm.Params = buildParams(pool, m, params)

	for _, attr := range m.Attributes {
		switch attr.Name {
		case "AnnotationDefault":
			v, err := classfile.DecodeAnnotationDefault(pool, attr.Body)
			if err != nil {
				return binder.BoundMethod{}, fmt.Errorf("decoding AnnotationDefault: %w", err)
			}
			cv, err := convertElementValue(interner, v)
			if err != nil {
				return binder.BoundMethod{}, err
			}
			bm.AnnotationDefault = cv
		case "RuntimeVisibleAnnotations", "RuntimeInvisibleAnnotations":
			annos, err := classfile.DecodeAnnotations(pool, attr.Body)
			if err != nil {
				return binder.BoundMethod{}, fmt.Errorf("decoding %s: %w", attr.Name, err)
			}
			converted, err := convertAnnotations(interner, annos)
			if err != nil {
				return binder.BoundMethod{}, err
			}
			bm.Annotations = append(bm.Annotations, converted...)
		case "RuntimeVisibleParameterAnnotations", "RuntimeInvisibleParameterAnnotations":
			perParam, err := classfile.DecodeParameterAnnotations(pool, attr.Body)
			if err != nil {
				return binder.BoundMethod{}, fmt.Errorf("decoding %s: %w", attr.Name, err)
			}
			if err := attachParamAnnotations(interner, bm.Params, perParam); err != nil {
				return binder.BoundMethod{}, err
			}
		}
	}

	return bm, nil
}

// buildParams pairs each erased/parsed parameter type with its name (from
// MethodParameters, when present) and marks the final parameter varargs
// when the method's own ACC_VARARGS bit (encoded as AccTransient, per
// JVMS's method-context reuse of that bit) is set.
func buildParams(pool *classfile.ReadPool, m classfile.ParsedMember, paramTypes []types.Type) []binder.BoundParam {
	params := make([]binder.BoundParam, len(paramTypes))
	var names []classfile.MethodParameterEntry
	if mpBody, ok := classfile.AttributeBody(m.Attributes, "MethodParameters"); ok {
		if decoded, err := classfile.DecodeMethodParameters(pool, mpBody); err == nil {
			names = decoded
		}
	}
	varargs := types.AccessFlags(m.AccessFlags).Has(types.AccTransient)
	for i, t := range paramTypes {
		p := binder.BoundParam{Type: t}
		if i < len(names) {
			p.Name = names[i].Name
			p.Synthetic = types.AccessFlags(names[i].AccessFlags).Has(types.AccSynthetic)
		}
		if varargs && i == len(paramTypes)-1 {
			p.Varargs = true
		}
		params[i] = p
	}
	return params
}

// attachParamAnnotations assigns each positional annotation list from a
// RuntimeVisible/InvisibleParameterAnnotations attribute onto the matching
// non-synthetic parameter, in order (§4.4: synthetic parameters are
// excluded from these tables, so perParam is shorter than params whenever
// any parameter is synthetic).
func attachParamAnnotations(interner *types.Interner, params []binder.BoundParam, perParam [][]classfile.Annotation) error {
	pi := 0
	for _, annos := range perParam {
		for pi < len(params) && params[pi].Synthetic {
			pi++
		}
		if pi >= len(params) {
			return nil
		}
		converted, err := convertAnnotations(interner, annos)
		if err != nil {
			return err
		}
		params[pi].Annotations = append(params[pi].Annotations, converted...)
		pi++
	}
	return nil
}

func convertRecordComponents(interner *types.Interner, pool *classfile.ReadPool, classTypeParams []lower.ParsedTypeParam, comps []classfile.RecordComponentEntry) ([]binder.BoundRecordComponent, error) {
	out := make([]binder.BoundRecordComponent, len(comps))
	for i, c := range comps {
		typ, err := fieldOrComponentType(interner, pool, classTypeParams, c.Attributes, c.Descriptor)
		if err != nil {
			return nil, fmt.Errorf("component %s: %w", c.Name, err)
		}
		rc := binder.BoundRecordComponent{Name: c.Name, Type: typ}
		for _, attr := range c.Attributes {
			switch attr.Name {
			case "RuntimeVisibleAnnotations", "RuntimeInvisibleAnnotations":
				annos, err := classfile.DecodeAnnotations(pool, attr.Body)
				if err != nil {
					return nil, fmt.Errorf("decoding %s on component %s: %w", attr.Name, c.Name, err)
				}
				converted, err := convertAnnotations(interner, annos)
				if err != nil {
					return nil, err
				}
				rc.Annotations = append(rc.Annotations, converted...)
			}
		}
		out[i] = rc
	}
	return out, nil
}
