package main

import (
	"github.com/spf13/cobra"

	"github.com/statz-dev/statz/pkg/statz/collect"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show a weighted system health score",
	Long: `Rate the system's condition on a 0-100 scale from live cpu, memory,
disk, temperature, and battery readings. Higher is healthier.`,
	RunE: runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	interval, err := sampleInterval()
	if err != nil {
		return err
	}

	score := collect.Health(collect.UsageOptions{Interval: interval})
	return renderDoc("System Health", score.Node())
}
