package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "jhdrc",
	Short: "A header compiler for Java-family sources",
	Long: `jhdrc compiles Java-family source files straight to class-file
headers: constant pool, supertype and interface references, field and
method signatures, and their attributes. It never compiles a method body
to bytecode, which is what lets it skip most of a full compiler's work and
run fast enough to sit in front of a real build.

jhdrc is meant to produce headers for javac (or another header compiler)
to compile a second time against, not to replace a full compiler.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
