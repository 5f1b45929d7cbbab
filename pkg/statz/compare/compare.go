package compare

import (
	"encoding/json"
	"sort"

	"github.com/statz-dev/statz/pkg/statz/logging"
	"github.com/statz-dev/statz/pkg/statz/snapshot"
)

// logger is the package-level logger for comparison operations.
var logger = logging.Get("compare")

// Summary aggregates a diff's category counts and records which files
// were compared.
type Summary struct {
	TotalAdded   int    `json:"total_added"`
	TotalRemoved int    `json:"total_removed"`
	TotalChanged int    `json:"total_changed"`
	CurrentFile  string `json:"current_file"`
	BaselineFile string `json:"baseline_file"`
}

// Report is the full output of a comparison: the three diff categories
// plus a summary. It serializes back into the tree format with
// top-level keys added, removed, changed, and summary.
type Report struct {
	Added   map[string]snapshot.Node `json:"added"`
	Removed map[string]snapshot.Node `json:"removed"`
	Changed map[string]Change        `json:"changed"`
	Summary Summary                  `json:"summary"`

	// loadErr is set when either input failed to load. Changed holds
	// typed from/to pairs, so the synthetic error entry for that
	// category is injected at serialization time instead.
	loadErr string
}

// Failed reports whether this report carries synthetic error entries
// instead of real diff entries.
func (r *Report) Failed() bool {
	return r.loadErr != ""
}

// MarshalJSON keeps the four-key shape in both outcomes. On a failed
// report every category, changed included, serializes as a single
// {"error": message} entry.
func (r *Report) MarshalJSON() ([]byte, error) {
	if r.loadErr == "" {
		type plain Report
		return json.Marshal((*plain)(r))
	}
	return json.Marshal(struct {
		Added   map[string]snapshot.Node `json:"added"`
		Removed map[string]snapshot.Node `json:"removed"`
		Changed map[string]snapshot.Node `json:"changed"`
		Summary Summary                  `json:"summary"`
	}{
		Added:   r.Added,
		Removed: r.Removed,
		Changed: map[string]snapshot.Node{"error": snapshot.String(r.loadErr)},
		Summary: r.Summary,
	})
}

// Compare loads both snapshot files and diffs the baseline against the
// current one. Removed entries are those present only in the baseline;
// added entries are those present only in the current snapshot.
//
// Compare never returns an error: when either file cannot be loaded,
// the report keeps the same four-key shape but each category holds a
// single synthetic "error" entry describing the failure, and the
// summary counts stay at zero. Callers render failures through the
// same code path as real diffs.
func Compare(currentPath, baselinePath string) *Report {
	current, err := LoadFile(currentPath)
	if err != nil {
		logger.Warn("failed to load current snapshot", "path", currentPath, "error", err)
		return errorReport(currentPath, baselinePath, err)
	}

	baseline, err := LoadFile(baselinePath)
	if err != nil {
		logger.Warn("failed to load baseline snapshot", "path", baselinePath, "error", err)
		return errorReport(currentPath, baselinePath, err)
	}

	diff := Diff(baseline, current)
	logger.Debug("comparison complete",
		"current", currentPath,
		"baseline", baselinePath,
		"added", len(diff.Added),
		"removed", len(diff.Removed),
		"changed", len(diff.Changed))

	return &Report{
		Added:   diff.Added,
		Removed: diff.Removed,
		Changed: diff.Changed,
		Summary: Summary{
			TotalAdded:   len(diff.Added),
			TotalRemoved: len(diff.Removed),
			TotalChanged: len(diff.Changed),
			CurrentFile:  currentPath,
			BaselineFile: baselinePath,
		},
	}
}

// errorReport builds the uniform failure shape: every category carries
// one "error" entry with the failure message.
func errorReport(currentPath, baselinePath string, err error) *Report {
	msg := snapshot.String(err.Error())
	return &Report{
		Added:   map[string]snapshot.Node{"error": msg},
		Removed: map[string]snapshot.Node{"error": msg},
		Changed: map[string]Change{},
		Summary: Summary{
			CurrentFile:  currentPath,
			BaselineFile: baselinePath,
		},
		loadErr: err.Error(),
	}
}

// Node converts the report into the snapshot shape, with category
// paths sorted for stable rendering. This lets report output flow
// through the same formatters used for snapshots.
func (r *Report) Node() *snapshot.Map {
	root := snapshot.NewMap()
	root.Set("added", nodeCategory(r.Added))
	root.Set("removed", nodeCategory(r.Removed))
	if r.loadErr != "" {
		failed := snapshot.NewMap()
		failed.Set("error", snapshot.String(r.loadErr))
		root.Set("changed", failed)
	} else {
		root.Set("changed", changeCategory(r.Changed))
	}

	summary := snapshot.NewMap()
	summary.Set("total_added", snapshot.Int(int64(r.Summary.TotalAdded)))
	summary.Set("total_removed", snapshot.Int(int64(r.Summary.TotalRemoved)))
	summary.Set("total_changed", snapshot.Int(int64(r.Summary.TotalChanged)))
	summary.Set("current_file", snapshot.String(r.Summary.CurrentFile))
	summary.Set("baseline_file", snapshot.String(r.Summary.BaselineFile))
	root.Set("summary", summary)

	return root
}

func nodeCategory(entries map[string]snapshot.Node) *snapshot.Map {
	m := snapshot.NewMap()
	for _, path := range sortedPaths(entries) {
		m.Set(path, entries[path])
	}
	return m
}

func changeCategory(entries map[string]Change) *snapshot.Map {
	m := snapshot.NewMap()
	paths := make([]string, 0, len(entries))
	for path := range entries {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		change := snapshot.NewMap()
		change.Set("from", entries[path].From)
		change.Set("to", entries[path].To)
		m.Set(path, change)
	}
	return m
}

func sortedPaths(entries map[string]snapshot.Node) []string {
	paths := make([]string, 0, len(entries))
	for path := range entries {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
