package cmd

import (
	"fmt"
	"os"

	"github.com/arcbound/jhdrc/internal/pipeline"
)

// readSources reads every source file named on the command line into
// pipeline.Source values, plus a filename -> content map for diagnostic
// formatting (errors.FormatAll needs the original text to print the
// offending source line and caret).
func readSources(paths []string) ([]pipeline.Source, map[string]string, error) {
	sources := make([]pipeline.Source, 0, len(paths))
	text := make(map[string]string, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		content := string(data)
		sources = append(sources, pipeline.Source{Filename: p, Content: content})
		text[p] = content
	}
	return sources, text, nil
}
