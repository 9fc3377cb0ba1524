package cmd

import (
	"fmt"

	"github.com/arcbound/jhdrc/internal/procbridge"
)

// processorFactory builds a Processor from the -A options parsed for this
// run. Registering one here is how an in-process annotation processor
// becomes selectable by name from --processor, since this binary has no
// way to load a compiled Java processor class the way javac does.
type processorFactory func(opts *procbridge.Options) procbridge.Processor

// processorRegistry holds every processor name --processor can select.
// Empty for now: nothing in this tree ships a concrete processor yet, but
// the round loop (internal/procbridge.RoundLoop) and its Processor
// interface are fully wired and ready for one to be registered here.
var processorRegistry = map[string]processorFactory{}

// resolveProcessors looks up each requested processor name in the
// registry, in the order given, which is also the order they run within
// a round.
func resolveProcessors(names []string, opts *procbridge.Options) ([]procbridge.Processor, error) {
	procs := make([]procbridge.Processor, 0, len(names))
	for _, name := range names {
		factory, ok := processorRegistry[name]
		if !ok {
			return nil, fmt.Errorf("unknown processor %q (no in-process processor registered under that name)", name)
		}
		procs = append(procs, factory(opts))
	}
	return procs, nil
}
