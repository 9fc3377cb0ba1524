// Package pipeline implements the opt-in fork-join concurrency the
// binding pipeline permits but never requires (§5): lexing/parsing and
// lowering are each independent per compilation unit or per class, so
// both can run across a worker pool when a caller asks for it. The
// sequential path (Concurrency <= 1, the default) is what every other
// package assumes, including the annotation-processing bridge, which
// needs one round's worth of work to complete before the next begins.
package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/arcbound/jhdrc/internal/ast"
	"github.com/arcbound/jhdrc/internal/emit"
	"github.com/arcbound/jhdrc/internal/lexer"
	"github.com/arcbound/jhdrc/internal/parser"
)

// Options tunes a pipeline run. The zero value is fully sequential.
type Options struct {
	Concurrency int
}

// Option mutates Options; see WithConcurrency.
type Option func(*Options)

// WithConcurrency bounds the number of compilation units or classes
// processed at once. n <= 1 runs sequentially in the caller's goroutine.
func WithConcurrency(n int) Option {
	return func(o *Options) { o.Concurrency = n }
}

func resolve(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Source is one compilation unit's filename and raw text, the unit
// ParseAll lexes and parses.
type Source struct {
	Filename string
	Content  string
}

// ParseResult pairs one Source with its parsed unit, or the syntax error
// that aborted it (§4.2: the first syntax error, an expected-token
// mismatch included, ends the parse; the parser makes no recovery).
type ParseResult struct {
	Source Source
	Unit   *ast.CompilationUnit
	Err    error
}

// ParseAll lexes and parses every source, in order, returning a
// parallel, order-preserving result slice. With WithConcurrency(n > 1) it
// fans out across up to n goroutines; a syntax error in one source never
// cancels the others, since each source's outcome is independent.
func ParseAll(sources []Source, opts ...Option) []ParseResult {
	o := resolve(opts)
	results := make([]ParseResult, len(sources))

	if o.Concurrency <= 1 {
		for i, src := range sources {
			results[i] = parseOne(src)
		}
		return results
	}

	g := new(errgroup.Group)
	g.SetLimit(o.Concurrency)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			results[i] = parseOne(src)
			return nil
		})
	}
	_ = g.Wait() // parseOne never returns an error to the group; failures live in ParseResult.Err
	return results
}

func parseOne(src Source) ParseResult {
	unit, err := parser.Parse(lexer.New(src.Content))
	return ParseResult{Source: src, Unit: unit, Err: err}
}

// LowerAll lowers every bound class in e's registration order (§5),
// returning them in that same order regardless of how many goroutines
// ran concurrently. Each class lowers independently: emit.Emitter only
// reads from the shared bind result and classpath environment, and
// writes into its own per-class ConstantPool, so concurrent lowering
// needs no further synchronization.
func LowerAll(e *emit.Emitter, opts ...Option) []emit.ClassFile {
	o := resolve(opts)
	order := e.Result.Order

	if o.Concurrency <= 1 {
		return e.Classes()
	}

	out := make([]emit.ClassFile, 0, len(order))
	slots := make([]*emit.ClassFile, len(order))

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(o.Concurrency)
	for i, sym := range order {
		i, sym := i, sym
		g.Go(func() error {
			cf, ok := e.EmitSymbol(sym)
			if ok {
				slots[i] = &cf
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, cf := range slots {
		if cf != nil {
			out = append(out, *cf)
		}
	}
	return out
}
