package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"velvetstat/internal/config"
	"velvetstat/internal/engine"
	"velvetstat/internal/flags"
	"velvetstat/internal/logging"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var cfg = config.New()

var reportConfigPath string

// envFile is read from the working directory before VELVETSTAT_* variables.
const envFile = ".env"

var reportCmd = &cobra.Command{
	Use:   "report -o OUT [flags] DIR...",
	Short: "Aggregate metrics from assembly directories into one report",
	Long: `Aggregate metrics from Velvet assembly output directories into one report.

Each directory must contain Roadmaps, contigs.fa and stats.txt, all non-empty.
Directories that fail this check, or whose files cannot be parsed, are skipped
with a warning; the remaining directories still make it into the report.

Columns:
	One column per metric in the order metrics were first produced, then
	"outdir" with the absolute directory path. A metric a directory does not
	have is left blank.

Config:
	--config reads a YAML file with the keys dirs, out, format, extractors,
	emit, no_console, concurrency, log_level and log_format. Flags and
	positional directories override file values. VELVETSTAT_LOG_LEVEL and
	VELVETSTAT_LOG_FORMAT are read from the environment or a .env file.

Exit codes:
	0 = report written (some directories may have been skipped)
	1 = fatal error (bad configuration or no valid directories)

Examples:
	velvetstat report -o summary.csv runs/k21 runs/k31

	# Parallel extraction, JSON report
	velvetstat report -o summary.json --concurrency 4 runs/*

	# Machine-readable progress on stdout
	velvetstat report -o summary.tsv --no-console --emit ndjson runs/*
`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		code := runReport(ctx, cmd, cfg, args)
		stop()
		os.Exit(code)
	},
}

// prepareConfig layers the config file, environment and positional
// directories onto c and validates the result.
func prepareConfig(cmd *cobra.Command, c *config.Config, configPath string, args []string) error {
	if len(args) > 0 {
		c.Inputs.Dirs = append([]string(nil), args...)
	}

	if configPath != "" {
		fc, err := config.LoadFile(configPath)
		if err != nil {
			return err
		}
		fc.Apply(c, func(name string) bool {
			if name == flags.FlagDirs {
				return len(args) > 0
			}
			f := cmd.Flags().Lookup(name)
			return f != nil && f.Changed
		})
	}

	if err := config.LoadEnv(c, envFile); err != nil {
		return fmt.Errorf("load %s: %w", envFile, err)
	}
	return c.Validate()
}

func runReport(ctx context.Context, cmd *cobra.Command, c *config.Config, args []string) int {
	if err := prepareConfig(cmd, c, reportConfigPath, args); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		if len(args) == 0 && cmd.Flags().NFlag() == 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "Run '%s --help' for usage.\n", cmd.CommandPath())
		}
		return engine.ExitFatal
	}

	runID := uuid.NewString()
	logger := logging.New(logging.Config{
		Level:  c.EffectiveLogLevel(),
		Format: c.Runtime.LogFormat,
		Output: cmd.ErrOrStderr(),
		RunID:  runID,
	})
	logger.Debug("starting report",
		slog.Any("dirs", c.Inputs.Dirs),
		slog.String("out", c.Output.Out),
		slog.String("format", c.Output.Format),
		slog.Int("concurrency", c.Runtime.Concurrency),
	)

	eng := engine.NewEngine(logger, runID)
	eng.Stdout = cmd.OutOrStdout()
	return eng.Run(ctx, c)
}

func bindReportFlags(cmd *cobra.Command, c *config.Config, configPath *string) {
	// MAINTAINER NOTE: If you add/change/remove flags here, keep the YAML keys in
	// internal/config/file.go in sync.

	// Inputs
	cmd.Flags().StringVar(configPath, flags.FlagConfig, "", "Read settings from a YAML file (flags override file values)")
	cmd.Flags().StringVar(&c.Inputs.Extractors, flags.FlagExtractors, "", "Comma-separated extractor IDs to run (empty = all; see 'velvetstat extractors list')")

	// Output
	cmd.Flags().StringVarP(&c.Output.Out, flags.FlagOut, "o", "", "Write the report to this path (required)")
	cmd.Flags().StringVarP(&c.Output.Format, flags.FlagFormat, "f", "", "Report format: csv|tsv|json|markdown (default: inferred from --out extension, else csv)")
	cmd.Flags().StringSliceVar(&c.Output.Emit, flags.FlagEmit, nil, "Emit lifecycle events to stdout: ndjson")
	cmd.Flags().BoolVar(&c.Output.NoConsole, flags.FlagNoConsole, false, "Suppress per-directory status lines")

	// Runtime
	cmd.Flags().IntVar(&c.Runtime.Concurrency, flags.FlagConcurrency, c.Runtime.Concurrency, "Directories processed in parallel (default: 1)")
}

func init() {
	rootCmd.AddCommand(reportCmd)
	bindReportFlags(reportCmd, cfg, &reportConfigPath)
}
