package main

import (
	"github.com/spf13/cobra"

	"github.com/statz-dev/statz/pkg/statz/collect"
)

var tempsCmd = &cobra.Command{
	Use:   "temps",
	Short: "Show sensor temperatures",
	Long:  `Read temperature sensors, keyed by sensor name, in degrees Celsius.`,
	RunE:  runTemps,
}

func init() {
	rootCmd.AddCommand(tempsCmd)
}

func runTemps(cmd *cobra.Command, args []string) error {
	return renderDoc("Temperatures", collect.Temps())
}
