package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/statz-dev/statz/pkg/statz/collect"
	"github.com/statz-dev/statz/pkg/statz/config"
)

var processesCmd = &cobra.Command{
	Use:   "processes",
	Short: "Show the busiest processes",
	Long: `List the top processes by cpu or memory usage. CPU usage is sampled
over the configured interval; memory usage is a point-in-time resident
set share.`,
	RunE: runProcesses,
}

func init() {
	processesCmd.Flags().IntP("count", "n", 0, "number of processes to show")
	processesCmd.Flags().String("sort", "", "sort metric (cpu or mem)")

	_ = viper.BindPFlag("processes.count", processesCmd.Flags().Lookup("count"))
	_ = viper.BindPFlag("processes.sort", processesCmd.Flags().Lookup("sort"))

	rootCmd.AddCommand(processesCmd)
}

// runProcesses collects and renders a top-N process listing.
func runProcesses(cmd *cobra.Command, args []string) error {
	sort := viper.GetString("processes.sort")
	if sort == "" {
		sort = config.DefaultProcessSort
	}
	sortBy, err := collect.ParseProcessSort(sort)
	if err != nil {
		return err
	}
	interval, err := sampleInterval()
	if err != nil {
		return err
	}

	count := viper.GetInt("processes.count")
	if count <= 0 {
		count = config.DefaultProcessCount
	}

	data := collect.TopProcesses(count, sortBy, interval)
	return renderDoc("Top Processes", data)
}
