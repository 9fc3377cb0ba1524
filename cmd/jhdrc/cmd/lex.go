package cmd

import (
	"fmt"
	"os"

	"github.com/arcbound/jhdrc/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	lexEval     string
	lexShowPos  bool
	lexOnlyErrs bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a source file or expression",
	Long: `Tokenize a Java-family source file and print the resulting tokens.

This command is useful for debugging the lexer and understanding how
source text is tokenized, including the unicode-escape preprocessing pass.

Examples:
  jhdrc lex Foo.java
  jhdrc lex -e "class Foo {}"
  jhdrc lex --show-pos Foo.java
  jhdrc lex --only-errors Foo.java`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline source instead of reading from a file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&lexOnlyErrs, "only-errors", false, "show only ILLEGAL tokens and lexer diagnostics")
}

func runLex(cmd *cobra.Command, args []string) error {
	var input, filename string
	switch {
	case lexEval != "":
		input, filename = lexEval, "<eval>"
	case len(args) == 1:
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		input = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e for inline source")
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Printf("Tokenizing: %s (%d bytes)\n---\n", filename, len(input))
	}

	l := lexer.New(input)
	tokenCount := 0
	for {
		tok := l.NextToken()
		if tok.Type == lexer.EOF {
			if !lexOnlyErrs {
				printLexToken(tok)
			}
			break
		}
		if lexOnlyErrs && tok.Type != lexer.ILLEGAL {
			continue
		}
		tokenCount++
		printLexToken(tok)
	}

	diags := l.Errors()
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "%s:%d:%d: %s: %s\n", filename, d.Pos.Line, d.Pos.Column, d.Severity, d.Message)
	}

	if verbose {
		fmt.Printf("---\nTotal tokens: %d\n", tokenCount)
	}
	if len(diags) > 0 {
		return fmt.Errorf("found %d lexer diagnostic(s)", len(diags))
	}
	return nil
}

func printLexToken(tok lexer.Token) {
	out := fmt.Sprintf("[%d]", int(tok.Type))
	if tok.Type == lexer.EOF {
		out += " EOF"
	} else {
		out += fmt.Sprintf(" %q", tok.Literal)
	}
	if lexShowPos {
		out += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	fmt.Println(out)
}
