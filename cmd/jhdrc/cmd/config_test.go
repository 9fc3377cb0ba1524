package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMergeStringSlice(t *testing.T) {
	tests := []struct {
		name    string
		flagVal []string
		fileVal []string
		changed bool
		want    []string
	}{
		{"flag explicit wins", []string{"a"}, []string{"b"}, true, []string{"a"}},
		{"falls back to file value", nil, []string{"b"}, false, []string{"b"}},
		{"empty file value keeps flag default", []string{"a"}, nil, false, []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeStringSlice(tt.flagVal, tt.fileVal, tt.changed)
			if len(got) != len(tt.want) {
				t.Fatalf("mergeStringSlice() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("mergeStringSlice() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestMergeString(t *testing.T) {
	if got := mergeString("explicit", "fromfile", true); got != "explicit" {
		t.Errorf("mergeString() = %q, want explicit", got)
	}
	if got := mergeString("", "fromfile", false); got != "fromfile" {
		t.Errorf("mergeString() = %q, want fromfile", got)
	}
}

func TestMergeInt(t *testing.T) {
	if got := mergeInt(4, 8, true); got != 4 {
		t.Errorf("mergeInt() = %d, want 4", got)
	}
	if got := mergeInt(0, 8, false); got != 8 {
		t.Errorf("mergeInt() = %d, want 8", got)
	}
}

func TestLoadFileConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jhdrc.yaml")
	content := `
classpath:
  - lib/a.jar
  - lib/b.jar
output: build/classes
processor:
  - demo
options:
  debug: "true"
concurrency: 4
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config fixture: %v", err)
	}

	cfg, err := loadFileConfig(path)
	if err != nil {
		t.Fatalf("loadFileConfig() error = %v", err)
	}
	if len(cfg.Classpath) != 2 || cfg.Classpath[0] != "lib/a.jar" {
		t.Errorf("Classpath = %v", cfg.Classpath)
	}
	if cfg.Output != "build/classes" {
		t.Errorf("Output = %q, want build/classes", cfg.Output)
	}
	if len(cfg.Processors) != 1 || cfg.Processors[0] != "demo" {
		t.Errorf("Processors = %v", cfg.Processors)
	}
	if cfg.ProcessorOpts["debug"] != "true" {
		t.Errorf("ProcessorOpts[debug] = %q, want true", cfg.ProcessorOpts["debug"])
	}
	if cfg.Concurrency != 4 {
		t.Errorf("Concurrency = %d, want 4", cfg.Concurrency)
	}
}

func TestLoadFileConfigMissingFile(t *testing.T) {
	if _, err := loadFileConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error reading a nonexistent config file")
	}
}
