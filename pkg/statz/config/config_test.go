package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	// Use a temp directory that doesn't have a config file
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Format != DefaultFormat {
		t.Errorf("Format = %q, want %q", cfg.Format, DefaultFormat)
	}

	if cfg.SampleInterval != DefaultSampleInterval {
		t.Errorf("SampleInterval = %q, want %q", cfg.SampleInterval, DefaultSampleInterval)
	}

	if cfg.Processes.Count != DefaultProcessCount {
		t.Errorf("Processes.Count = %d, want %d", cfg.Processes.Count, DefaultProcessCount)
	}

	if cfg.Processes.Sort != DefaultProcessSort {
		t.Errorf("Processes.Sort = %q, want %q", cfg.Processes.Sort, DefaultProcessSort)
	}

	if !cfg.History.Enabled {
		t.Error("History.Enabled = false, want true")
	}

	if cfg.History.Keep != DefaultHistoryKeep {
		t.Errorf("History.Keep = %d, want %d", cfg.History.Keep, DefaultHistoryKeep)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestLoad_FromFile(t *testing.T) {
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, ".config", "statz")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	configContent := `
format: json
sample_interval: 1s
processes:
  count: 10
  sort: mem
export_dir: /tmp/exports
history:
  enabled: false
  keep: 20
logging:
  level: debug
`
	configPath := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Format != "json" {
		t.Errorf("Format = %q, want %q", cfg.Format, "json")
	}

	if cfg.SampleInterval != "1s" {
		t.Errorf("SampleInterval = %q, want %q", cfg.SampleInterval, "1s")
	}

	if cfg.Processes.Count != 10 {
		t.Errorf("Processes.Count = %d, want 10", cfg.Processes.Count)
	}

	if cfg.Processes.Sort != "mem" {
		t.Errorf("Processes.Sort = %q, want %q", cfg.Processes.Sort, "mem")
	}

	if cfg.History.Enabled {
		t.Error("History.Enabled = true, want false")
	}

	if cfg.History.Keep != 20 {
		t.Errorf("History.Keep = %d, want 20", cfg.History.Keep)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_TildeExpansion(t *testing.T) {
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, ".config", "statz")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	configContent := "export_dir: ~/exports\nhistory:\n  path: ~/statz-history\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := filepath.Join(tempDir, "exports")
	if cfg.ExportDir != want {
		t.Errorf("ExportDir = %q, want %q", cfg.ExportDir, want)
	}

	want = filepath.Join(tempDir, "statz-history")
	if cfg.History.Path != want {
		t.Errorf("History.Path = %q, want %q", cfg.History.Path, want)
	}
}

func TestConfigDir_XDGOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}

	if dir != filepath.Join("/custom/config", "statz") {
		t.Errorf("ConfigDir() = %q", dir)
	}
}
