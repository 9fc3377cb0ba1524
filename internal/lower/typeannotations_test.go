package lower

import (
	"testing"

	"github.com/arcbound/jhdrc/internal/types"
)

func TestWalkTypeAnnotationsSkipsUnannotatedNodes(t *testing.T) {
	interner := types.NewInterner()
	plain := types.NewClassType(interner.Intern("java/lang/String"))

	var got []AnnotationAtPath
	WalkTypeAnnotations(plain, nil, func(a AnnotationAtPath) {
		got = append(got, a)
	})
	if len(got) != 0 {
		t.Errorf("got %d annotations, want 0 for an unannotated type", len(got))
	}
}

func TestWalkTypeAnnotationsArrayEmitsThenRecursesWithArrayStep(t *testing.T) {
	interner := types.NewInterner()
	anno := types.Annotation{Type: interner.Intern("NonNull")}
	elem := types.Primitive{Kind: types.Int, Annos: []types.Annotation{anno}}
	arr := types.Array{Element: elem}

	var got []AnnotationAtPath
	WalkTypeAnnotations(arr, nil, func(a AnnotationAtPath) {
		got = append(got, a)
	})
	if len(got) != 1 {
		t.Fatalf("got %d annotations, want 1", len(got))
	}
	if len(got[0].Path) != 1 || got[0].Path[0].Kind != StepArray {
		t.Errorf("Path = %+v, want one StepArray entry", got[0].Path)
	}
}

func TestWalkTypeAnnotationsClassSegmentsEmitAndAppendNestedStep(t *testing.T) {
	interner := types.NewInterner()
	outerAnno := types.Annotation{Type: interner.Intern("Outer")}
	innerAnno := types.Annotation{Type: interner.Intern("Inner")}

	ct := types.ClassType{Path: []types.SimpleClass{
		{Symbol: interner.Intern("com/example/Outer"), Annos: []types.Annotation{outerAnno}},
		{Symbol: interner.Intern("com/example/Outer$Inner"), Annos: []types.Annotation{innerAnno}},
	}}

	var got []AnnotationAtPath
	WalkTypeAnnotations(ct, nil, func(a AnnotationAtPath) {
		got = append(got, a)
	})
	if len(got) != 2 {
		t.Fatalf("got %d annotations, want 2", len(got))
	}
	if len(got[0].Path) != 0 {
		t.Errorf("outer segment path = %+v, want empty", got[0].Path)
	}
	if len(got[1].Path) != 1 || got[1].Path[0].Kind != StepNested {
		t.Errorf("inner segment path = %+v, want one StepNested entry", got[1].Path)
	}
}

func TestWalkTypeAnnotationsTypeArgumentRecordsIndex(t *testing.T) {
	interner := types.NewInterner()
	argAnno := types.Annotation{Type: interner.Intern("NonNull")}
	argType := types.Primitive{Kind: types.Int, Annos: []types.Annotation{argAnno}}

	ct := types.NewClassType(interner.Intern("java/lang/Iterable"))
	ct.Path[0].TypeArgs = []types.Type{types.Primitive{Kind: types.Boolean}, argType}

	var got []AnnotationAtPath
	WalkTypeAnnotations(ct, nil, func(a AnnotationAtPath) {
		got = append(got, a)
	})
	if len(got) != 1 {
		t.Fatalf("got %d annotations, want 1", len(got))
	}
	if len(got[0].Path) != 1 || got[0].Path[0].Kind != StepTypeArgument || got[0].Path[0].TypeArgIdx != 1 {
		t.Errorf("Path = %+v, want one StepTypeArgument entry at index 1", got[0].Path)
	}
}

func TestWalkTypeAnnotationsWildcardBoundAppendsWildcardStep(t *testing.T) {
	interner := types.NewInterner()
	boundAnno := types.Annotation{Type: interner.Intern("NonNull")}
	bound := types.NewClassType(interner.Intern("java/lang/Number"))
	bound.Path[0].Annos = []types.Annotation{boundAnno}

	wc := types.Wildcard{Bound: types.BoundUpper, BoundType: bound}

	var got []AnnotationAtPath
	WalkTypeAnnotations(wc, nil, func(a AnnotationAtPath) {
		got = append(got, a)
	})
	if len(got) != 1 {
		t.Fatalf("got %d annotations, want 1", len(got))
	}
	if len(got[0].Path) != 1 || got[0].Path[0].Kind != StepWildcard {
		t.Errorf("Path = %+v, want one StepWildcard entry", got[0].Path)
	}
}
