package procbridge

import (
	"github.com/arcbound/jhdrc/internal/ast"
	"github.com/arcbound/jhdrc/internal/binder"
	"github.com/arcbound/jhdrc/internal/errors"
	"github.com/arcbound/jhdrc/internal/types"
)

// RoundEnvironment is the coherent, read-only snapshot of one round's
// phase-6 bind result a processor sees (§4.3.5 invariant: "all queries
// over symbols and types observe the same phase-6 output"). It never
// changes after construction; a new round gets a new RoundEnvironment.
type RoundEnvironment struct {
	interner *types.Interner
	final    binder.Environment
	order    []types.ClassSymbol

	// processingOver is true only on the final round (§4.3.5 step 5): no
	// new sources will be generated regardless of what processors do.
	processingOver bool
}

func newRoundEnvironment(interner *types.Interner, result binder.BindResult, processingOver bool) *RoundEnvironment {
	return &RoundEnvironment{interner: interner, final: result.Final, order: result.Order, processingOver: processingOver}
}

// ProcessingOver reports whether this is the final round.
func (env *RoundEnvironment) ProcessingOver() bool { return env.processingOver }

// RootElements returns the TypeElement view of every source class bound
// this round, in registration order.
func (env *RoundEnvironment) RootElements() []TypeElement {
	out := make([]TypeElement, 0, len(env.order))
	for _, sym := range env.order {
		if t, ok := env.TypeOf(sym); ok {
			out = append(out, t)
		}
	}
	return out
}

// TypeOf looks up sym's TypeElement view, including classpath classes
// (read-only, same as a source class from a processor's perspective).
func (env *RoundEnvironment) TypeOf(sym types.ClassSymbol) (TypeElement, bool) {
	bc, ok := env.lookup(sym)
	if !ok {
		return TypeElement{}, false
	}
	return TypeElement{env: env, bc: bc, Name: env.interner.Name(sym)}, true
}

func (env *RoundEnvironment) lookup(sym types.ClassSymbol) (*binder.BoundClass, bool) {
	return env.final.Lookup(sym)
}

// boundOf finds the declared upper-bound intersection for a type
// variable, searching its declaring method's own type parameters first
// (if the owner is a method) and then its declaring class's, since a
// method type parameter can only be declared by the method itself.
func (env *RoundEnvironment) boundOf(sym types.TypeVariableSymbol) types.Intersection {
	switch owner := sym.Owner.(type) {
	case types.ClassSymbol:
		if bc, ok := env.lookup(owner); ok {
			for _, tp := range bc.TypeParams {
				if tp.Symbol == sym {
					return tp.Bound
				}
			}
		}
	case types.MethodSymbol:
		if bc, ok := env.lookup(owner.Owner); ok {
			for _, m := range bc.Methods {
				if m.Symbol != owner {
					continue
				}
				for _, tp := range m.TypeParams {
					if tp.Symbol == sym {
						return tp.Bound
					}
				}
			}
		}
	}
	return types.Intersection{}
}

// Relations returns the type relation oracle bound to this round.
func (env *RoundEnvironment) Relations() *Relations { return newRelations(env) }

// Processor generates sources/resources from one round's RoundEnvironment
// and reports any diagnostics it raised. A processor that wants to report
// an ERROR-severity diagnostic without aborting the round loop (§4.3.5:
// "do not prevent the next round; rather, they accumulate") returns it in
// the List rather than an error.
type Processor interface {
	Process(env *RoundEnvironment, filer *Filer) errors.List
}

// RoundLoop drives the annotation-processing round loop (§4.3.5): bind,
// expose, collect generated sources, and either re-bind the combined set
// or run one final processing-over round.
type RoundLoop struct {
	Interner  *types.Interner
	Index     *binder.Index
	Classpath binder.Environment

	Processors []Processor

	// Parse re-parses a generated source's text into a compilation unit.
	// Supplied by the caller (cmd/jhdrc) so this package stays independent
	// of the lexer/parser packages' concrete entry points.
	Parse func(filename, content string) (*ast.CompilationUnit, error)
}

// RoundResult is the terminal state of the round loop: the last round's
// bind result (used for emission) and every diagnostic accumulated across
// every round.
type RoundResult struct {
	Final       binder.BindResult
	Diagnostics errors.List
	Rounds      int
}

// Run executes rounds until a round generates no new sources, then one
// final processing-over round over the same (unchanged) element set,
// accumulating diagnostics throughout. With no processors registered, the
// loop runs exactly one round, already processing-over.
func (rl *RoundLoop) Run(initial []*ast.CompilationUnit) (RoundResult, error) {
	units := initial
	filer := newFiler()
	var allDiags errors.List
	var last binder.BindResult
	round := 0
	processingOver := len(rl.Processors) == 0

	for {
		round++
		b := binder.New(rl.Interner, rl.Index, rl.Classpath)
		last = b.Bind(units)
		allDiags = append(allDiags, last.Diagnostics...)

		env := newRoundEnvironment(rl.Interner, last, processingOver)
		for _, p := range rl.Processors {
			allDiags = append(allDiags, p.Process(env, filer)...)
		}
		generated := filer.drainSources()

		if processingOver {
			break
		}
		if len(generated) == 0 {
			// One more round runs with the flag set, even though the
			// element set won't change, so processors can tell this was
			// their last chance to generate anything (§4.3.5 step 5).
			processingOver = true
			continue
		}

		for _, g := range generated {
			unit, err := rl.Parse(g.Filename, g.Content)
			if err != nil {
				allDiags = append(allDiags, errors.Diagnostic{
					Kind:     errors.ProcError,
					Message:  "generated source " + g.Filename + " failed to parse: " + err.Error(),
					File:     g.Filename,
					Severity: errors.Error,
				})
				continue
			}
			units = append(units, unit)
		}
	}

	allDiags.Sort()
	return RoundResult{Final: last, Diagnostics: allDiags, Rounds: round}, nil
}
