package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/statz-dev/statz/pkg/statz/collect"
	"github.com/statz-dev/statz/pkg/statz/export"
	"github.com/statz-dev/statz/pkg/statz/snapshot"
)

var exportCmd = &cobra.Command{
	Use:   "export {specs|usage}",
	Short: "Write a snapshot to a timestamped file",
	Long: `Collect a snapshot and write it to a timestamped file in the export
directory. JSON exports hold the snapshot tree; CSV exports flatten
each component into rows. Both forms can be fed back to 'statz compare'.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"specs", "usage"},
	RunE:      runExport,
}

func init() {
	exportCmd.Flags().StringP("dir", "d", "", "directory to write the export into")
	_ = viper.BindPFlag("export_dir", exportCmd.Flags().Lookup("dir"))

	rootCmd.AddCommand(exportCmd)
}

// runExport collects the requested snapshot and writes it to disk.
func runExport(cmd *cobra.Command, args []string) error {
	sel, err := selectionFromFlags()
	if err != nil {
		return err
	}

	var kind export.Kind
	var data *snapshot.Map
	switch args[0] {
	case "specs":
		kind = export.KindSpecs
		data = collect.Specs(sel)
	case "usage":
		interval, err := sampleInterval()
		if err != nil {
			return err
		}
		kind = export.KindUsage
		data = collect.Usage(sel, collect.UsageOptions{Interval: interval})
	default:
		return fmt.Errorf("unknown export target: %s (expected specs or usage)", args[0])
	}

	format := viper.GetString("format")
	switch format {
	case "", "pretty", "plain":
		// Human-readable formats don't round-trip; default to JSON.
		format = export.FormatJSON
	}

	dir := viper.GetString("export_dir")
	if dir == "" {
		dir = "."
	}

	path, err := export.Write(dir, kind, format, data)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
	return nil
}
