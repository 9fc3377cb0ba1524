package binder

import (
	"fmt"

	"github.com/arcbound/jhdrc/internal/ast"
	"github.com/arcbound/jhdrc/internal/errors"
	"github.com/arcbound/jhdrc/internal/lexer"
	"github.com/arcbound/jhdrc/internal/types"
)

// Options tunes binder behavior for cases the spec leaves as an
// implementation decision (see DESIGN.md's Open Questions section for
// the rationale behind each default).
type Options struct {
	// ReportUnattachableAnnotations controls what phase 6 does with a
	// declaration-position annotation whose @Target names neither that
	// declaration site nor TYPE_USE: dropped silently when false, kept on
	// the declaration's annotation list when true. No diagnostic is
	// reported in either case.
	ReportUnattachableAnnotations bool
}

// Binder runs the phase-ordered binding pipeline (§4.3) over a set of
// parsed compilation units, producing a final Environment (phase 6
// output) plus an accumulated diagnostic list. Diagnostics never abort a
// phase early (§7: accumulated, never thrown) except where a phase's own
// output would otherwise be meaningless (e.g. a class with no resolvable
// supertype at all still gets the sentinel object supertype, so later
// phases keep working over it).
type Binder struct {
	Interner  *types.Interner
	Index     *Index
	Classpath Environment // nil for a classpath-less compilation
	Options   Options

	diags errors.List
}

// New constructs a Binder ready for Bind. classpath may be nil.
func New(interner *types.Interner, index *Index, classpath Environment) *Binder {
	return &Binder{Interner: interner, Index: index, Classpath: classpath}
}

// BindResult is the complete output of a compilation's binding pass: the
// final (phase-6) environment over every source class, source order for
// output ordering (§5), and the accumulated diagnostics.
type BindResult struct {
	Final        Environment
	Order        []types.ClassSymbol
	Declarations map[types.ClassSymbol]*classDecl
	Diagnostics  errors.List
}

// Bind runs phases 1 through 6 in order over units, each phase's output
// becoming the next phase's input environment, composed over the
// classpath via CompoundEnvironment per §4.3.1.
func (b *Binder) Bind(units []*ast.CompilationUnit) BindResult {
	prelim := b.runPreliminary(units)

	headerEnv := b.runHeader(prelim)
	hierarchyEnv := b.runHierarchy(prelim, headerEnv)
	b.checkSealedPermits(prelim, hierarchyEnv)
	memberEnv := b.runMember(prelim, hierarchyEnv)
	constEnv := b.runConstantEval(prelim, memberEnv)
	finalEnv := b.runAnnotationDisambiguation(prelim, constEnv)

	b.diags.Sort()
	return BindResult{
		Final:        finalEnv,
		Order:        prelim.order,
		Declarations: prelim.classes,
		Diagnostics:  b.diags,
	}
}

func (b *Binder) report(kind errors.Kind, file string, pos lexer.Position, format string, args ...interface{}) {
	b.diags = append(b.diags, errors.Diagnostic{
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		File:     file,
		Pos:      errors.Position{Line: pos.Line, Column: pos.Column, Offset: pos.Offset},
		Severity: errors.DefaultSeverity(kind),
	})
}
