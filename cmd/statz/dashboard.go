package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/statz-dev/statz/cmd/statz/tui"
)

var dashboardRefresh time.Duration

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Live-updating terminal dashboard",
	Long: `Open a full-screen dashboard that refreshes live utilization,
temperatures, and battery state. Press q to exit.`,
	RunE: runDashboard,
}

func init() {
	dashboardCmd.Flags().DurationVar(&dashboardRefresh, "refresh", 2*time.Second, "delay between samples")
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	sel, err := selectionFromFlags()
	if err != nil {
		return err
	}
	window, err := sampleInterval()
	if err != nil {
		return err
	}

	return tui.Run(tui.Options{
		Selection:    sel,
		Refresh:      dashboardRefresh,
		SampleWindow: window,
	})
}
