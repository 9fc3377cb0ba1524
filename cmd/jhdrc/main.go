// Command jhdrc is the header compiler's CLI entry point: it lexes,
// parses, binds, and lowers Java-family source into declaration-only
// class files (no method bodies), per the compile subcommand, plus a
// handful of debug subcommands (lex, parse, dump-class) useful while
// working on the compiler itself.
package main

import (
	"fmt"
	"os"

	"github.com/arcbound/jhdrc/cmd/jhdrc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
