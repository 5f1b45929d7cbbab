// Package compare loads exported snapshots from disk and computes
// structural diffs between them. Both the JSON tree format and the CSV
// tabular format load into the same nested-map shape, so any two
// exports can be compared regardless of how they were serialized.
package compare

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/statz-dev/statz/pkg/statz/snapshot"
)

// LoadFile reads a snapshot file, selecting the loader by extension.
// .json files load with native scalar types preserved; .csv files load
// with every value as a string. Any other extension fails with
// ErrUnsupportedFormat naming the extension.
func LoadFile(path string) (*snapshot.Map, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json", ".csv":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileAccess, path, err)
	}
	defer f.Close()

	var snap *snapshot.Map
	if ext == ".json" {
		snap, err = LoadJSON(f)
	} else {
		snap, err = LoadCSV(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

// LoadJSON parses a nested JSON document into the snapshot shape. The
// top-level value must be an object; scalar types are preserved as-is.
func LoadJSON(r io.Reader) (*snapshot.Map, error) {
	n, err := snapshot.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	m, ok := n.(*snapshot.Map)
	if !ok {
		return nil, fmt.Errorf("%w: top-level JSON value is not an object", ErrMalformedInput)
	}
	return m, nil
}

// LoadCSV parses a tabular snapshot export into the nested-map shape.
// Two tiers are tried in order:
//
//  1. Structured: a header with Component, Property (or Metric) and
//     Value columns, one row per leaf. Rows group by component into
//     {component: {property: value}}. Extra columns such as Unit are
//     ignored.
//  2. Fallback: a flat Key,Value header, loaded as a single-level map
//     keyed by the flattened path.
//
// All values import as strings; the tabular format has no type system.
// Anything else fails with ErrMalformedInput naming the header.
func LoadCSV(r io.Reader) (*snapshot.Map, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty CSV document", ErrMalformedInput)
	}

	header := trimFields(records[0])
	rows := records[1:]

	if cols, ok := structuredColumns(header); ok {
		return loadStructured(cols, rows)
	}
	if ok := isFlatHeader(header); ok {
		return loadFlat(rows)
	}
	return nil, fmt.Errorf("%w: unrecognized CSV header %v", ErrMalformedInput, header)
}

// tabularColumns holds the column indexes of the structured tier.
type tabularColumns struct {
	component int
	property  int
	value     int
}

// structuredColumns reports whether the header matches the structured
// tier and where its required columns sit.
func structuredColumns(header []string) (tabularColumns, bool) {
	cols := tabularColumns{component: -1, property: -1, value: -1}
	for i, name := range header {
		switch name {
		case "Component":
			cols.component = i
		case "Property", "Metric", "Sensor":
			if cols.property == -1 {
				cols.property = i
			}
		case "Value":
			cols.value = i
		}
	}
	ok := cols.component >= 0 && cols.property >= 0 && cols.value >= 0
	return cols, ok
}

// isFlatHeader reports whether the header matches the fallback tier.
func isFlatHeader(header []string) bool {
	return len(header) >= 2 && header[0] == "Key" && header[1] == "Value"
}

// loadStructured groups Component/Property/Value rows by component.
func loadStructured(cols tabularColumns, rows [][]string) (*snapshot.Map, error) {
	snap := snapshot.NewMap()
	for i, row := range rows {
		component := field(row, cols.component)
		property := field(row, cols.property)
		if component == "" || property == "" {
			return nil, fmt.Errorf("%w: row %d is missing its component or property field", ErrMalformedInput, i+2)
		}

		entry := componentMap(snap, component)
		entry.Set(property, snapshot.String(field(row, cols.value)))
	}
	return snap, nil
}

// loadFlat loads Key,Value rows as a single-level map.
func loadFlat(rows [][]string) (*snapshot.Map, error) {
	snap := snapshot.NewMap()
	for i, row := range rows {
		key := field(row, 0)
		if key == "" {
			return nil, fmt.Errorf("%w: row %d has an empty key", ErrMalformedInput, i+2)
		}
		snap.Set(key, snapshot.String(field(row, 1)))
	}
	return snap, nil
}

// componentMap returns the nested map for a component, creating it on
// first use.
func componentMap(snap *snapshot.Map, component string) *snapshot.Map {
	if existing, ok := snap.Get(component); ok {
		if m, ok := existing.(*snapshot.Map); ok {
			return m
		}
	}
	m := snapshot.NewMap()
	snap.Set(component, m)
	return m
}

// field returns the trimmed cell at index i, or "" when the row is too
// short.
func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func trimFields(row []string) []string {
	out := make([]string, len(row))
	for i, f := range row {
		out[i] = strings.TrimSpace(f)
	}
	return out
}
