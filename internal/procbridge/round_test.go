package procbridge

import (
	"testing"

	"github.com/arcbound/jhdrc/internal/ast"
	"github.com/arcbound/jhdrc/internal/binder"
	"github.com/arcbound/jhdrc/internal/errors"
	"github.com/arcbound/jhdrc/internal/lexer"
	"github.com/arcbound/jhdrc/internal/parser"
	"github.com/arcbound/jhdrc/internal/types"
)

func parseUnit(t *testing.T, filename, src string) *ast.CompilationUnit {
	t.Helper()
	unit, err := parser.Parse(lexer.New(src))
	if err != nil {
		t.Fatalf("parsing %s: %v", filename, err)
	}
	unit.Filename = filename
	return unit
}

func TestRunWithNoProcessorsRunsOneRound(t *testing.T) {
	interner := types.NewInterner()
	loop := &RoundLoop{
		Interner: interner,
		Index:    binder.NewIndex(),
		Parse: func(filename, content string) (*ast.CompilationUnit, error) {
			return parser.Parse(lexer.New(content))
		},
	}

	unit := parseUnit(t, "Foo.java", "class Foo {}")
	result, err := loop.Run([]*ast.CompilationUnit{unit})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Rounds != 1 {
		t.Errorf("Rounds = %d, want 1", result.Rounds)
	}
	if result.Diagnostics.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", result.Diagnostics)
	}
	if len(result.Final.Order) != 1 {
		t.Errorf("Final.Order has %d symbols, want 1", len(result.Final.Order))
	}
}

// generatingProcessor emits one extra source file on its first invocation
// only, exercising the round loop's generate-then-rebind path.
type generatingProcessor struct {
	emitted bool
}

func (g *generatingProcessor) Process(env *RoundEnvironment, filer *Filer) errors.List {
	if !g.emitted {
		g.emitted = true
		if err := filer.CreateSourceFile("Generated.java", "class Generated {}"); err != nil {
			return errors.List{{Kind: errors.ProcError, Message: err.Error(), Severity: errors.Error}}
		}
	}
	return nil
}

func TestRunProcessesGeneratedSourceInNextRound(t *testing.T) {
	interner := types.NewInterner()
	proc := &generatingProcessor{}
	loop := &RoundLoop{
		Interner:   interner,
		Index:      binder.NewIndex(),
		Processors: []Processor{proc},
		Parse: func(filename, content string) (*ast.CompilationUnit, error) {
			return parser.Parse(lexer.New(content))
		},
	}

	unit := parseUnit(t, "Foo.java", "class Foo {}")
	result, err := loop.Run([]*ast.CompilationUnit{unit})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	// One round to generate Generated.java, one round to bind it alongside
	// Foo, one final processing-over round: three rounds total.
	if result.Rounds != 3 {
		t.Errorf("Rounds = %d, want 3", result.Rounds)
	}
	if len(result.Final.Order) != 2 {
		t.Fatalf("Final.Order has %d symbols, want 2", len(result.Final.Order))
	}
}

func TestFilerRejectsDuplicateFilename(t *testing.T) {
	f := newFiler()
	if err := f.CreateSourceFile("A.java", "class A {}"); err != nil {
		t.Fatalf("first CreateSourceFile() error = %v", err)
	}
	if err := f.CreateSourceFile("A.java", "class A {}"); err == nil {
		t.Error("expected an error generating the same filename twice")
	}
}
