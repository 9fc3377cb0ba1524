package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

// fileConfig is the shape of a --config YAML options file: every field
// mirrors a compile flag by name, letting a project check a default build
// configuration into source control instead of repeating flags on every
// invocation.
type fileConfig struct {
	Classpath     []string          `yaml:"classpath"`
	Bootclasspath []string          `yaml:"bootclasspath"`
	Output        string            `yaml:"output"`
	ProcessorPath []string          `yaml:"processorpath"`
	Processors    []string          `yaml:"processor"`
	ProcessorOpts map[string]string `yaml:"options"`
	Concurrency   int               `yaml:"concurrency"`
}

func loadFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeStringSlice returns flagVal unchanged if the flag was set explicitly
// on the command line (changed), otherwise falls back to the config file's
// value — explicit flags always win over the config file (§6.3).
func mergeStringSlice(flagVal, fileVal []string, changed bool) []string {
	if changed || len(fileVal) == 0 {
		return flagVal
	}
	return fileVal
}

func mergeString(flagVal, fileVal string, changed bool) string {
	if changed || fileVal == "" {
		return flagVal
	}
	return fileVal
}

func mergeInt(flagVal, fileVal int, changed bool) int {
	if changed || fileVal == 0 {
		return flagVal
	}
	return fileVal
}

// applyFileConfig merges --config's YAML values into the compile flag
// variables wherever the matching flag wasn't set explicitly on the
// command line (cmd.Flags().Changed). Explicit flags always win.
func applyFileConfig(cmd *cobra.Command) error {
	if compileConfig == "" {
		return nil
	}
	cfg, err := loadFileConfig(compileConfig)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", compileConfig, err)
	}
	flags := cmd.Flags()
	compileClasspath = mergeStringSlice(compileClasspath, cfg.Classpath, flags.Changed("classpath") || flags.Changed("cp"))
	compileBootclasspath = mergeStringSlice(compileBootclasspath, cfg.Bootclasspath, flags.Changed("bootclasspath"))
	compileOutput = mergeString(compileOutput, cfg.Output, flags.Changed("output"))
	compileProcessorPath = mergeStringSlice(compileProcessorPath, cfg.ProcessorPath, flags.Changed("processorpath"))
	compileProcessors = mergeStringSlice(compileProcessors, cfg.Processors, flags.Changed("processor"))
	compileConcurrency = mergeInt(compileConcurrency, cfg.Concurrency, flags.Changed("concurrency"))
	for k, v := range cfg.ProcessorOpts {
		compileOptions = append(compileOptions, k+"="+v)
	}
	return nil
}
