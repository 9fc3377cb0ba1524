package lower

import "github.com/arcbound/jhdrc/internal/types"

// PathStep mirrors classfile.TypePathStep without importing the classfile
// package here, keeping lowering's type-walk independent of the binary
// encoding; the lowerer's emission stage converts these 1:1.
type PathStep struct {
	Kind     PathKind
	TypeArgIdx uint8
}

type PathKind uint8

const (
	StepArray PathKind = iota
	StepNested
	StepWildcard
	StepTypeArgument
)

// AnnotationAtPath is one type annotation located at a particular path
// within a compound type, ready for the caller to attach a target and
// hand to classfile.TypeAnnotation.
type AnnotationAtPath struct {
	Path        []PathStep
	Annotations []types.Annotation
}

// WalkTypeAnnotations implements §4.4's recursive-descent algorithm,
// accumulating a path and emitting one AnnotationAtPath per type node
// that carries its own annotations (nodes without annotations are walked
// through but produce no entry, since emitting an empty list would be
// wasted output rather than incorrect — callers should skip zero-length
// Annotations slices).
//
// - Array: emit at the current path, then recurse into the element with
//   ARRAY appended. Multi-dimensional c-style declarator dimensions are
//   assumed already flattened into a single nested Array chain by the
//   binder, so the outermost array here is the shallowest path, matching
//   the written declaration.
// - Class: for each segment in the chain, emit the segment's own
//   annotations at the current path, then recurse into each type
//   argument with TYPE_ARGUMENT(i) appended, then append NESTED before
//   moving to the next segment.
// - Wildcard: emit the wildcard's own annotations, then (if bounded)
//   recurse into the bound with WILDCARD appended.
// - TypeVariable / Primitive: emit at the current path; no further
//   recursion (both are leaves of the type algebra).
func WalkTypeAnnotations(t types.Type, path []PathStep, emit func(AnnotationAtPath)) {
	switch v := t.(type) {
	case types.Array:
		if len(v.Annos) > 0 {
			emit(AnnotationAtPath{Path: clonePath(path), Annotations: v.Annos})
		}
		WalkTypeAnnotations(v.Element, append(path, PathStep{Kind: StepArray}), emit)

	case types.ClassType:
		for i, seg := range v.Path {
			if len(seg.Annos) > 0 {
				emit(AnnotationAtPath{Path: clonePath(path), Annotations: seg.Annos})
			}
			for argIdx, arg := range seg.TypeArgs {
				WalkTypeAnnotations(arg, append(path, PathStep{Kind: StepTypeArgument, TypeArgIdx: uint8(argIdx)}), emit)
			}
			if i < len(v.Path)-1 {
				path = append(path, PathStep{Kind: StepNested})
			}
		}

	case types.Wildcard:
		if len(v.Annos) > 0 {
			emit(AnnotationAtPath{Path: clonePath(path), Annotations: v.Annos})
		}
		if v.BoundType != nil {
			WalkTypeAnnotations(v.BoundType, append(path, PathStep{Kind: StepWildcard}), emit)
		}

	case types.TypeVariable:
		if len(v.Annos) > 0 {
			emit(AnnotationAtPath{Path: clonePath(path), Annotations: v.Annos})
		}

	case types.Primitive:
		if len(v.Annos) > 0 {
			emit(AnnotationAtPath{Path: clonePath(path), Annotations: v.Annos})
		}
	}
}

// clonePath copies path since the caller's slice may be reused/appended-to
// by sibling recursive calls (append can share backing arrays across
// branches of the walk).
func clonePath(path []PathStep) []PathStep {
	if len(path) == 0 {
		return nil
	}
	out := make([]PathStep, len(path))
	copy(out, path)
	return out
}
