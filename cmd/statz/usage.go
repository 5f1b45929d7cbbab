package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/statz-dev/statz/pkg/statz/collect"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show live utilization",
	Long: `Sample live utilization: per-core cpu busy percentages, memory,
disk throughput, network throughput, and battery state. Rate-based
readings are sampled over the configured interval.`,
	RunE: runUsage,
}

func init() {
	rootCmd.AddCommand(usageCmd)
}

// runUsage samples and renders live usage, recording it in history
// when enabled.
func runUsage(cmd *cobra.Command, args []string) error {
	sel, err := selectionFromFlags()
	if err != nil {
		return err
	}
	interval, err := sampleInterval()
	if err != nil {
		return err
	}

	data := collect.Usage(sel, collect.UsageOptions{Interval: interval})

	if viper.GetBool("history.enabled") {
		if err := recordHistory("usage", data); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: recording history: %v\n", err)
		}
	}

	return renderDoc("System Usage", data)
}
