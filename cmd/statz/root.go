package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/statz-dev/statz/pkg/statz/collect"
	"github.com/statz-dev/statz/pkg/statz/config"
	"github.com/statz-dev/statz/pkg/statz/logging"
	"github.com/statz-dev/statz/pkg/statz/output"
	"github.com/statz-dev/statz/pkg/statz/snapshot"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "statz",
		Short: "Inspect system specs, live usage, and snapshot diffs",
		Long: `Statz reports hardware and software information about the current
machine: static specs, live utilization, temperatures, and the busiest
processes. Snapshots can be exported and compared across machines or
across time.

Examples:
  statz specs                          # Show hardware and OS specs
  statz usage -c cpu,ram               # Live cpu and memory usage
  statz processes --sort mem           # Busiest processes by memory
  statz compare new.json old.json      # Diff two exported snapshots
  statz export usage -f csv            # Write a timestamped usage export
  statz dashboard                      # Live-updating terminal dashboard`,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/statz/config.yaml)")
	rootCmd.PersistentFlags().StringP("format", "f", "", "output format (pretty, plain, json, csv)")
	rootCmd.PersistentFlags().StringP("components", "c", "", "comma-separated components (os,cpu,gpu,ram,disk,network,battery)")
	rootCmd.PersistentFlags().String("interval", "", "sampling window for rate-based readings (e.g. 500ms, 2s)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug output")

	// Bind flags to viper
	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("components", rootCmd.PersistentFlags().Lookup("components"))
	_ = viper.BindPFlag("sample_interval", rootCmd.PersistentFlags().Lookup("interval"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and environment variables.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		// Add config paths in order of precedence
		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			viper.AddConfigPath(filepath.Join(xdgConfigHome, "statz"))
		}

		homeDir, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(homeDir, ".config", "statz"))
		}
	}

	viper.SetEnvPrefix("STATZ")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// Set defaults from config package
	viper.SetDefault("format", config.DefaultFormat)
	viper.SetDefault("sample_interval", config.DefaultSampleInterval)
	viper.SetDefault("processes.count", config.DefaultProcessCount)
	viper.SetDefault("processes.sort", config.DefaultProcessSort)
	viper.SetDefault("export_dir", config.DefaultExportDir)
	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.keep", config.DefaultHistoryKeep)

	// Read config file (ignore if not found)
	_ = viper.ReadInConfig()
}

// setupLogging initializes the file logger before any command runs.
func setupLogging(cmd *cobra.Command, args []string) error {
	cfg := logging.Config{
		Level:      viper.GetString("logging.level"),
		Path:       viper.GetString("logging.path"),
		Components: viper.GetStringMapString("logging.components"),
	}
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.Path == "" {
		cfg.Path = config.DefaultLogPath()
	}
	if viper.GetBool("verbose") {
		cfg.ConsoleLevel = "debug"
	}
	return logging.Init(cfg)
}

// Execute runs the root command.
func Execute() error {
	defer logging.Close()
	return rootCmd.Execute()
}

// selectionFromFlags parses the --components flag. An empty flag
// selects everything.
func selectionFromFlags() (collect.Selection, error) {
	raw := viper.GetString("components")
	if raw == "" {
		return collect.AllComponents(), nil
	}

	var sel collect.Selection
	for _, name := range strings.Split(raw, ",") {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "os":
			sel.OS = true
		case "cpu":
			sel.CPU = true
		case "gpu":
			sel.GPU = true
		case "ram":
			sel.RAM = true
		case "disk":
			sel.Disk = true
		case "network":
			sel.Network = true
		case "battery":
			sel.Battery = true
		case "":
		default:
			return sel, fmt.Errorf("unknown component: %s", name)
		}
	}
	if !sel.Any() {
		return sel, fmt.Errorf("no components selected")
	}
	return sel, nil
}

// sampleInterval parses the configured sampling window.
func sampleInterval() (time.Duration, error) {
	raw := viper.GetString("sample_interval")
	if raw == "" {
		return collect.DefaultInterval, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid sample interval %q: %w", raw, err)
	}
	return d, nil
}

// renderDoc formats a document with the configured formatter and
// writes it to stdout.
func renderDoc(title string, data snapshot.Node) error {
	format := viper.GetString("format")
	if format == "" {
		format = config.DefaultFormat
	}
	formatter, err := output.Get(format)
	if err != nil {
		return fmt.Errorf("%w (available: %s)", err, strings.Join(output.Available(), ", "))
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, &output.Document{Title: title, Data: data}); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	fmt.Print(buf.String())
	return nil
}
