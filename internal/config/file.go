package config

import (
	"fmt"
	"os"

	"velvetstat/internal/flags"

	"gopkg.in/yaml.v3"
)

// File is the on-disk YAML form of the configuration (see --config).
//
//	dirs:
//	  - runs/k21
//	  - runs/k31
//	out: report.csv
//	format: csv
//	extractors: roadmap,contigs,coverage
//	concurrency: 4
//	log_level: info
//	log_format: text
type File struct {
	Dirs        []string `yaml:"dirs"`
	Out         string   `yaml:"out"`
	Format      string   `yaml:"format"`
	Extractors  string   `yaml:"extractors"`
	Emit        []string `yaml:"emit"`
	NoConsole   *bool    `yaml:"no_console"`
	Concurrency int      `yaml:"concurrency"`
	LogLevel    string   `yaml:"log_level"`
	LogFormat   string   `yaml:"log_format"`
}

// LoadFile reads and decodes a YAML config file. Unknown keys are rejected.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var fc File
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &fc, nil
}

// Apply copies file values into c for every setting the user did not set
// explicitly on the command line. changed reports whether a flag was set;
// flags.FlagDirs stands for the positional directory arguments.
func (fc *File) Apply(c *Config, changed func(name string) bool) {
	if fc == nil {
		return
	}
	if changed == nil {
		changed = func(string) bool { return false }
	}

	if !changed(flags.FlagDirs) && len(fc.Dirs) > 0 {
		c.Inputs.Dirs = append([]string(nil), fc.Dirs...)
	}
	if !changed(flags.FlagOut) && fc.Out != "" {
		c.Output.Out = fc.Out
	}
	if !changed(flags.FlagFormat) && fc.Format != "" {
		c.Output.Format = fc.Format
	}
	if !changed(flags.FlagExtractors) && fc.Extractors != "" {
		c.Inputs.Extractors = fc.Extractors
	}
	if !changed(flags.FlagEmit) && len(fc.Emit) > 0 {
		c.Output.Emit = append([]string(nil), fc.Emit...)
	}
	if !changed(flags.FlagNoConsole) && fc.NoConsole != nil {
		c.Output.NoConsole = *fc.NoConsole
	}
	if !changed(flags.FlagConcurrency) && fc.Concurrency != 0 {
		c.Runtime.Concurrency = fc.Concurrency
	}
	if fc.LogLevel != "" {
		c.Runtime.LogLevel = fc.LogLevel
	}
	if fc.LogFormat != "" {
		c.Runtime.LogFormat = fc.LogFormat
	}
}
