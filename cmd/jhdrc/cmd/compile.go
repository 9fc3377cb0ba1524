package cmd

import (
	"fmt"
	"os"

	"path/filepath"
	"strings"

	"github.com/arcbound/jhdrc/internal/ast"
	"github.com/arcbound/jhdrc/internal/binder"
	"github.com/arcbound/jhdrc/internal/classpath"
	"github.com/arcbound/jhdrc/internal/emit"
	"github.com/arcbound/jhdrc/internal/errors"
	"github.com/arcbound/jhdrc/internal/lexer"
	"github.com/arcbound/jhdrc/internal/parser"
	"github.com/arcbound/jhdrc/internal/pipeline"
	"github.com/arcbound/jhdrc/internal/procbridge"
	"github.com/arcbound/jhdrc/internal/types"
	"github.com/spf13/cobra"
)

var (
	compileClasspath     []string
	compileBootclasspath []string
	compileOutput        string
	compileProcessorPath []string
	compileProcessors    []string
	compileOptions       []string
	compileConfig        string
	compileConcurrency   int
)

var compileCmd = &cobra.Command{
	Use:   "compile [sources...]",
	Short: "Compile sources to declaration-only class file headers",
	Long: `compile lexes, parses, binds, and lowers the given sources into class
file headers: constant pool, supertype and interface references, field and
method signatures, and their attributes. No method body is ever compiled to
bytecode.

Output is written under -d/--output, either as a directory of .class files
mirroring the package structure or, if the path ends in .jar or .zip, as a
single archive.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringSliceVar(&compileClasspath, "classpath", nil, "classpath entries (directories, glob patterns, or jar/zip archives)")
	compileCmd.Flags().StringSliceVar(&compileClasspath, "cp", nil, "alias for --classpath")
	compileCmd.Flags().StringSliceVar(&compileBootclasspath, "bootclasspath", nil, "bootclasspath entries, searched before --classpath")
	compileCmd.Flags().StringVarP(&compileOutput, "output", "d", ".", "output directory or .jar/.zip archive path")
	compileCmd.Flags().StringSliceVar(&compileProcessorPath, "processorpath", nil, "processor lookup path; accepted and stored, not consulted by any processor")
	compileCmd.Flags().StringArrayVar(&compileProcessors, "processor", nil, "name of an in-process annotation processor to run (repeatable)")
	compileCmd.Flags().StringArrayVarP(&compileOptions, "A", "A", nil, "processor option, key=value or bare key (repeatable)")
	compileCmd.Flags().StringVar(&compileConfig, "config", "", "YAML file of default flag values, overridden by any flag set explicitly")
	compileCmd.Flags().IntVar(&compileConcurrency, "concurrency", 0, "worker count for parsing and lowering; 0 or 1 runs sequentially")
}

// splitHostPathLists further splits each --classpath/--bootclasspath
// entry on the platform path-list separator (":" on Unix, ";" on
// Windows), so a single traditional javac-style "-cp a:b:c" argument
// works the same as repeating the flag. internal/classpath.New takes
// already-split entries by design; this is that split, done here since
// the separator is platform-dependent (filepath.ListSeparator).
func splitHostPathLists(raw []string) []string {
	sep := string(filepath.ListSeparator)
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		for _, part := range strings.Split(entry, sep) {
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func runCompile(cmd *cobra.Command, args []string) error {
	if err := applyFileConfig(cmd); err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")

	sources, sourceText, err := readSources(args)
	if err != nil {
		return err
	}

	cpEntries := splitHostPathLists(append(append([]string{}, compileBootclasspath...), compileClasspath...))
	interner := types.NewInterner()
	cp, err := classpath.New(interner, cpEntries)
	if err != nil {
		return fmt.Errorf("failed to open classpath: %w", err)
	}
	defer cp.Close()

	index := binder.NewIndex()
	index.ClasspathLoader = cp.Loader

	procOpts := procbridge.NewOptions(compileOptions)
	procs, err := resolveProcessors(compileProcessors, procOpts)
	if err != nil {
		return err
	}

	opts := []pipeline.Option{pipeline.WithConcurrency(compileConcurrency)}
	parseResults := pipeline.ParseAll(sources, opts...)

	var units []*ast.CompilationUnit
	var diags errors.List
	for _, pr := range parseResults {
		if pr.Err != nil {
			diags = append(diags, errors.Diagnostic{
				Kind:     errors.UnexpectedInput,
				Message:  pr.Err.Error(),
				File:     pr.Source.Filename,
				Severity: errors.Error,
			})
			continue
		}
		pr.Unit.Filename = pr.Source.Filename
		units = append(units, pr.Unit)
	}
	if diags.HasErrors() {
		fmt.Fprint(os.Stderr, errors.FormatAll(diags, sourceText))
		return fmt.Errorf("parsing failed")
	}

	loop := &procbridge.RoundLoop{
		Interner:   interner,
		Index:      index,
		Classpath:  cp,
		Processors: procs,
		Parse: func(filename, content string) (*ast.CompilationUnit, error) {
			unit, err := parser.Parse(lexer.New(content))
			if err != nil {
				return nil, err
			}
			unit.Filename = filename
			sourceText[filename] = content
			return unit, nil
		},
	}

	result, err := loop.Run(units)
	if err != nil {
		return fmt.Errorf("round loop failed: %w", err)
	}
	diags = append(diags, result.Diagnostics...)
	diags.Sort()
	if diags.HasErrors() {
		fmt.Fprint(os.Stderr, errors.FormatAll(diags, sourceText))
		return fmt.Errorf("compilation failed")
	}
	if len(diags) > 0 {
		fmt.Fprint(os.Stderr, errors.FormatAll(diags, sourceText))
	}

	emitter := emit.New(interner, result.Final)
	classFiles := pipeline.LowerAll(emitter, opts...)

	if verbose {
		fmt.Printf("compiled %d class file(s) in %d round(s)\n", len(classFiles), result.Rounds)
	}

	return writeClassFiles(interner, classFiles, compileOutput)
}
