// Package export writes collected snapshots to timestamped files on
// disk, in JSON or CSV form.
//
// JSON exports are the snapshot itself, indented, with map keys in
// insertion order. CSV exports flatten each top-level component into
// rows; usage exports additionally carry a unit column derived from
// the metric name.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/statz-dev/statz/pkg/statz/flatten"
	"github.com/statz-dev/statz/pkg/statz/logging"
	"github.com/statz-dev/statz/pkg/statz/snapshot"
)

// logger is the package-level logger for export operations.
var logger = logging.Get("export")

// Kind selects the CSV column layout for an export.
type Kind string

// Supported export kinds.
const (
	// KindSpecs exports static spec data as Component,Property,Value.
	KindSpecs Kind = "specs"

	// KindUsage exports live usage data as Component,Metric,Value,Unit.
	KindUsage Kind = "usage"
)

// Supported export formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// now is swapped out by tests to pin the export timestamp.
var now = time.Now

// Write exports a snapshot to a timestamped file in dir and returns
// the path written. The directory must already exist.
func Write(dir string, kind Kind, format string, data *snapshot.Map) (string, error) {
	var (
		content []byte
		err     error
	)
	switch format {
	case FormatJSON:
		content, err = renderJSON(data)
	case FormatCSV:
		content, err = renderCSV(kind, data)
	default:
		return "", fmt.Errorf("unknown export format: %s", format)
	}
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, fileName(format))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}

	logger.Info("export written", "path", path, "kind", string(kind), "format", format)
	return path, nil
}

// fileName builds the timestamped export file name, such as
// statz_export_2026-08-25_14-30-05.json.
func fileName(format string) string {
	t := now()
	return fmt.Sprintf("statz_export_%s_%s.%s",
		t.Format("2006-01-02"), t.Format("15-04-05"), format)
}

func renderJSON(data *snapshot.Map) ([]byte, error) {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding export: %w", err)
	}
	return append(content, '\n'), nil
}

// renderCSV flattens each top-level component into rows. Specs rows
// are Component,Property,Value; usage rows add a unit column.
func renderCSV(kind Kind, data *snapshot.Map) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Component", "Property", "Value"}
	if kind == KindUsage {
		header = []string{"Component", "Metric", "Value", "Unit"}
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, component := range data.Keys() {
		section, _ := data.Get(component)
		for _, entry := range flatten.Flatten(section) {
			row := []string{component, entry.Path, entry.Value}
			if kind == KindUsage {
				row = append(row, unitFor(entry.Path))
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unitFor derives a display unit from a usage metric name.
func unitFor(metric string) string {
	base := metric
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		base = base[i+1:]
	}

	switch {
	case strings.HasSuffix(base, "MBps"):
		return "MB/s"
	case base == "timeLeftMins":
		return "minutes"
	case strings.EqualFold(base, "percent") || strings.HasPrefix(base, "cpu") || base == "average":
		return "%"
	case base == "total" || base == "used" || base == "free" || base == "available":
		return "MB"
	default:
		return ""
	}
}
