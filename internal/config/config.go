package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Config struct {
	// MAINTAINER NOTE: If you add/change/remove config fields, keep these in sync:
	// - CLI flags in internal/cli/report.go
	// - YAML keys in internal/config/file.go
	Inputs  Inputs
	Output  Output
	Runtime Runtime
}

type Inputs struct {
	// Dirs are the candidate assembly output directories (positional args).
	Dirs []string

	// Extractors selects which extractors run, as a comma-separated list of
	// IDs (see --extractors). Empty means all.
	Extractors string
}

type Output struct {
	// Out is the report file path (see --out). Required.
	Out string

	// Format selects the report format (see --format).
	// Allowed values: csv, tsv, json, markdown. If empty it is inferred from
	// the --out extension, falling back to csv.
	Format string

	// Emit writes an additional structured event stream to stdout (see --emit).
	// Allowed values: ndjson.
	Emit []string

	// NoConsole suppresses per-directory status lines (see --no-console).
	NoConsole bool
}

type Runtime struct {
	// Concurrency is the number of directories extracted in parallel
	// (see --concurrency). Must be >= 1.
	Concurrency int

	// Verbose enables debug logging and full error details (see --verbose).
	Verbose bool

	// LogLevel is the minimum log level when Verbose is off
	// (VELVETSTAT_LOG_LEVEL). Allowed values: debug, info, warn, error.
	LogLevel string

	// LogFormat selects the log handler (VELVETSTAT_LOG_FORMAT).
	// Allowed values: text, json.
	LogFormat string
}

var (
	ErrNoOutput = errors.New("an output file is required (--out)")
	ErrNoInputs = errors.New("at least one assembly directory must be provided")
)

func New() *Config {
	return &Config{
		Runtime: Runtime{
			Concurrency: 1,
			LogLevel:    "info",
			LogFormat:   "text",
		},
	}
}

// EffectiveLogLevel returns the level the logger should use.
func (c *Config) EffectiveLogLevel() string {
	if c.Runtime.Verbose {
		return "debug"
	}
	return c.Runtime.LogLevel
}

func (c *Config) Validate() error {
	c.Inputs.Dirs = trimNonEmpty(c.Inputs.Dirs)
	c.Output.Emit = splitCommaList(c.Output.Emit)
	c.Output.Out = strings.TrimSpace(c.Output.Out)

	if c.Output.Out == "" {
		return ErrNoOutput
	}
	if len(c.Inputs.Dirs) == 0 {
		return ErrNoInputs
	}

	c.Output.Format = normalizeEnumValue(c.Output.Format)
	if c.Output.Format == "" {
		c.Output.Format = InferFormat(c.Output.Out)
	}
	switch c.Output.Format {
	case "csv", "tsv", "json", "markdown":
	default:
		return fmt.Errorf("unsupported --format: %s (must be one of: csv, tsv, json, markdown)", c.Output.Format)
	}

	for _, emit := range c.Output.Emit {
		if v := normalizeEnumValue(emit); v != "ndjson" {
			return fmt.Errorf("unsupported --emit value: %s (must be: ndjson)", emit)
		}
	}

	if c.Runtime.Concurrency <= 0 {
		return errors.New("--concurrency must be >= 1")
	}

	c.Runtime.LogLevel = normalizeEnumValue(c.Runtime.LogLevel)
	switch c.Runtime.LogLevel {
	case "":
		c.Runtime.LogLevel = "info"
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unsupported log level: %s (must be one of: debug, info, warn, error)", c.Runtime.LogLevel)
	}

	c.Runtime.LogFormat = normalizeEnumValue(c.Runtime.LogFormat)
	switch c.Runtime.LogFormat {
	case "":
		c.Runtime.LogFormat = "text"
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format: %s (must be one of: text, json)", c.Runtime.LogFormat)
	}

	return nil
}

// InferFormat picks a report format from the output file extension.
func InferFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".tab":
		return "tsv"
	case ".json":
		return "json"
	case ".md", ".markdown":
		return "markdown"
	default:
		return "csv"
	}
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func trimNonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func splitCommaList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			p := strings.TrimSpace(part)
			if p == "" {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}
