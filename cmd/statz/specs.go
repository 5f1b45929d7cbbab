package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/statz-dev/statz/pkg/statz/collect"
)

var specsCmd = &cobra.Command{
	Use:   "specs",
	Short: "Show hardware and OS specs",
	Long: `Collect static system specifications: operating system, cpu, gpu,
memory, disk, network, and battery. Components that cannot be read on
this platform are reported with an error entry instead of failing the
whole command.`,
	RunE: runSpecs,
}

func init() {
	rootCmd.AddCommand(specsCmd)
}

// runSpecs collects and renders specs, recording them in history when
// enabled.
func runSpecs(cmd *cobra.Command, args []string) error {
	sel, err := selectionFromFlags()
	if err != nil {
		return err
	}

	data := collect.Specs(sel)

	if viper.GetBool("history.enabled") {
		if err := recordHistory("specs", data); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: recording history: %v\n", err)
		}
	}

	return renderDoc("System Specs", data)
}
