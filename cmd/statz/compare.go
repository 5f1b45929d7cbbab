package main

import (
	"github.com/spf13/cobra"

	"github.com/statz-dev/statz/pkg/statz/compare"
)

var compareCmd = &cobra.Command{
	Use:   "compare <current> <baseline>",
	Short: "Compare two exported snapshots",
	Long: `Compare a current snapshot against a baseline and report what was
added, removed, and changed. The diff walks the nested structure:
matching keys recurse, everything else is reported wholesale. Both
JSON and CSV exports are accepted, in any combination: a structured
CSV export loads into the same component/property shape as the JSON
export it came from, so the two compare as equal. Flat Key,Value CSVs
load as single-level maps and only compare cleanly against other flat
files.

A file that cannot be loaded does not abort the comparison; each
report category carries a single error entry describing the failure.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

// runCompare diffs the two snapshot files and renders the report.
func runCompare(cmd *cobra.Command, args []string) error {
	report := compare.Compare(args[0], args[1])
	return renderDoc("Snapshot Comparison", report.Node())
}
