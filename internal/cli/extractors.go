package cli

import (
	"fmt"
	"io"

	"velvetstat/internal/data"
	"velvetstat/internal/extract"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var extractorsListQuiet bool
var extractorsCmd = &cobra.Command{
	Use:   "extractors",
	Short: "List metric extractors",
	Long: `List the metric extractors built into velvetstat.

Each extractor reads one artifact of an assembly directory and produces a fixed
set of metrics. Extractors run in stage order; an extractor may only read
metrics that an earlier stage provides.

Examples:
  # List all extractors
  velvetstat extractors list
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var extractorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available extractors",
	Long: `List all extractors registered in this build.

Extractors are sorted by stage, then ID.

Examples:
  velvetstat extractors list
  velvetstat extractors list -q
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, ex := range extract.List() {
			if extractorsListQuiet {
				fmt.Fprintln(cmd.OutOrStdout(), ex.ID())
			} else {
				printExtractor(cmd.OutOrStdout(), ex)
			}
		}
		return nil
	},
}

var extractorsShowCmd = &cobra.Command{
	Use:   "show [extractor-id]",
	Short: "Show details of a specific extractor",
	Long: `Show details of a specific extractor by its ID.

Examples:
  velvetstat extractors show coverage
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := extract.Resolve(args[0])
		if err != nil {
			return err
		}
		if len(list) == 0 {
			return fmt.Errorf("extractor not found: %s", args[0])
		}
		printExtractor(cmd.OutOrStdout(), list[0])
		return nil
	},
}

func joinKeys(keys []data.Key) string {
	if len(keys) == 0 {
		return "-"
	}
	return data.JoinKeys(keys)
}

func printExtractor(w io.Writer, ex extract.Extractor) {
	bold := color.New(color.Bold)
	fmt.Fprintln(w, "----------------------------------------")
	bold.Fprintf(w, "EXTRACTOR: %s\n", ex.ID())
	fmt.Fprintln(w, "----------------------------------------")
	fmt.Fprintln(w, ex.Title())
	fmt.Fprintln(w, ex.Description())
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Artifact: %s\n", ex.Artifact())
	fmt.Fprintf(w, "  Stage:    %d\n", ex.Stage())
	fmt.Fprintf(w, "  Requires: %s\n", joinKeys(ex.Requires()))
	fmt.Fprintf(w, "  Provides: %s\n", joinKeys(ex.Provides()))
	fmt.Fprintln(w)
}

func init() {
	rootCmd.AddCommand(extractorsCmd)
	extractorsCmd.AddCommand(extractorsListCmd)
	extractorsListCmd.Flags().BoolVarP(&extractorsListQuiet, "quiet", "q", false, "Only print extractor IDs")
	extractorsCmd.AddCommand(extractorsShowCmd)
}
