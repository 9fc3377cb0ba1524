package pipeline

import (
	"testing"

	"github.com/arcbound/jhdrc/internal/binder"
	"github.com/arcbound/jhdrc/internal/emit"
	"github.com/arcbound/jhdrc/internal/types"
)

func TestParseAllSequentialPreservesOrder(t *testing.T) {
	sources := []Source{
		{Filename: "Foo.java", Content: "class Foo {}"},
		{Filename: "Bar.java", Content: "class Bar {}"},
		{Filename: "Baz.java", Content: "class Baz {}"},
	}
	results := ParseAll(sources)
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, want := range []string{"Foo.java", "Bar.java", "Baz.java"} {
		if results[i].Source.Filename != want {
			t.Errorf("results[%d].Source.Filename = %q, want %q", i, results[i].Source.Filename, want)
		}
		if results[i].Err != nil {
			t.Errorf("results[%d].Err = %v, want nil", i, results[i].Err)
		}
		if results[i].Unit == nil {
			t.Errorf("results[%d].Unit = nil, want a parsed unit", i)
		}
	}
}

func TestParseAllConcurrentPreservesOrder(t *testing.T) {
	sources := []Source{
		{Filename: "A.java", Content: "class A {}"},
		{Filename: "B.java", Content: "class B {}"},
		{Filename: "C.java", Content: "class C {}"},
		{Filename: "D.java", Content: "class D {}"},
	}
	results := ParseAll(sources, WithConcurrency(2))
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}
	for i, want := range []string{"A.java", "B.java", "C.java", "D.java"} {
		if results[i].Source.Filename != want {
			t.Errorf("results[%d].Source.Filename = %q, want %q", i, results[i].Source.Filename, want)
		}
	}
}

func TestParseAllIndependentFailures(t *testing.T) {
	sources := []Source{
		{Filename: "Good.java", Content: "class Good {}"},
		{Filename: "Bad.java", Content: "class ` {"},
	}
	results := ParseAll(sources)
	if results[0].Err != nil {
		t.Errorf("Good.java failed to parse: %v", results[0].Err)
	}
	if results[1].Err == nil {
		t.Error("Bad.java should have produced a parse error")
	}
}

func TestLowerAllSequentialAndConcurrentAgreeOnEmptyResult(t *testing.T) {
	interner := types.NewInterner()
	e := emit.New(interner, binder.BindResult{Order: nil})
	seq := LowerAll(e)
	conc := LowerAll(e, WithConcurrency(4))
	if len(seq) != 0 || len(conc) != 0 {
		t.Fatalf("expected no classes for an empty bind result, got seq=%d conc=%d", len(seq), len(conc))
	}
}
