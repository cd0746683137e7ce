package cli

import (
	"fmt"
	"os"

	"velvetstat/internal/flags"

	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "velvetstat",
	Short: "Summarise Velvet assembly runs into one comparison report",
	Long: `velvetstat reads Velvet de-novo assembly output directories and writes one
table comparing them: k-mer length, contig counts and lengths, N50 and the
expected k-mer coverage.

Examples:
	# Show available commands and global flags
	velvetstat --help

	# Compare three runs
	velvetstat report -o summary.csv runs/k21 runs/k31 runs/k41

	# List metric extractors
	velvetstat extractors list

	# Print build info
	velvetstat version

Output:
	Reports are written to the --out file. Per-directory status lines go to
	stdout; warnings and errors go to stderr.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&cfg.Runtime.Verbose, flags.FlagVerbose, "v", false, "Enable debug logging and full error details")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
