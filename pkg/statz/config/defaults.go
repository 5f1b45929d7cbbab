// Package config provides configuration management for statz.
package config

// Default configuration values for statz.
const (
	// DefaultFormat is the output format used when none is specified.
	DefaultFormat = "pretty"

	// DefaultSampleInterval is the sampling window for rate-based
	// usage readings.
	DefaultSampleInterval = "500ms"

	// DefaultProcessCount is how many processes a top-N listing shows.
	DefaultProcessCount = 5

	// DefaultProcessSort is the metric process listings sort by.
	DefaultProcessSort = "cpu"

	// DefaultExportDir is where export files are written when no
	// directory is specified.
	DefaultExportDir = "."

	// DefaultHistoryKeep is how many records Prune retains per kind.
	DefaultHistoryKeep = 100
)
