package cmd

import (
	"testing"

	"github.com/arcbound/jhdrc/internal/procbridge"
)

func TestResolveProcessorsEmpty(t *testing.T) {
	procs, err := resolveProcessors(nil, procbridge.NewOptions(nil))
	if err != nil {
		t.Fatalf("resolveProcessors(nil) error = %v", err)
	}
	if len(procs) != 0 {
		t.Fatalf("resolveProcessors(nil) = %v, want empty", procs)
	}
}

func TestResolveProcessorsUnknownName(t *testing.T) {
	_, err := resolveProcessors([]string{"does-not-exist"}, procbridge.NewOptions(nil))
	if err == nil {
		t.Fatal("expected an error for an unregistered processor name")
	}
}
