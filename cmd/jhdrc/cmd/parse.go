package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arcbound/jhdrc/internal/ast"
	"github.com/arcbound/jhdrc/internal/lexer"
	"github.com/arcbound/jhdrc/internal/parser"
	"github.com/spf13/cobra"
)

var parseDumpAST bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a source file and display its compilation unit",
	Long: `Parse a Java-family source file into a CompilationUnit and print it.

If no file is provided, reads from stdin. Use --dump-ast to show the
declaration tree (package, imports, and every type's members) instead of
the unit's reconstructed source form.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParseCmd,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the declaration tree instead of reconstructed source")
}

func runParseCmd(cmd *cobra.Command, args []string) error {
	var input, filename string
	switch {
	case len(args) > 0:
		filename = args[0]
		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("error reading file: %w", err)
		}
		input = string(data)
	default:
		filename = "<stdin>"
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("error reading stdin: %w", err)
		}
		input = string(data)
	}

	cu, err := parser.Parse(lexer.New(input))
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	cu.Filename = filename

	if parseDumpAST {
		dumpUnit(cu)
	} else {
		fmt.Println(cu.String())
	}
	return nil
}

func dumpUnit(cu *ast.CompilationUnit) {
	if cu.Package != nil {
		fmt.Println(cu.Package.String())
	}
	for _, imp := range cu.Imports {
		fmt.Println(imp.String())
	}
	for _, td := range cu.Types {
		dumpType(td, 0)
	}
}

func dumpType(td *ast.TypeDecl, indent int) {
	pad := strings.Repeat("  ", indent)
	fmt.Printf("%s%s %s\n", pad, td.Kind, td.Name)
	for _, f := range td.Fields {
		fmt.Printf("%s  field %s %s\n", pad, f.Type.String(), f.Name)
	}
	for _, m := range td.Methods {
		kind := "method"
		if m.IsConstructor {
			kind = "constructor"
		}
		fmt.Printf("%s  %s %s(%d params)\n", pad, kind, m.Name, len(m.Params))
	}
	for _, nested := range td.NestedTypes {
		dumpType(nested, indent+1)
	}
}
