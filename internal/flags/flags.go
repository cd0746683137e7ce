package flags

// Package flags defines canonical CLI flag names shared across the CLI and the
// config file layer. The YAML file loader uses the same names to decide
// whether a flag was set explicitly and must win over the file.
// IMPORTANT: These are flag *names* without leading dashes.
// Example usage:
//
//	cmd.Flags().StringVarP(&cfg.Output.Out, flags.FlagOut, "o", "", "...")
//	cmd.Flags().Changed(flags.FlagOut)
const (
	// Inputs
	FlagDirs       = "dirs" // positional arguments; never registered as a flag
	FlagExtractors = "extractors"
	FlagConfig     = "config"

	// Output
	FlagOut       = "out"
	FlagFormat    = "format"
	FlagEmit      = "emit"
	FlagNoConsole = "no-console"

	// Runtime
	FlagConcurrency = "concurrency"
	FlagVerbose     = "verbose"
)
