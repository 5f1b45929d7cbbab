package compare

import (
	"github.com/statz-dev/statz/pkg/statz/snapshot"
)

// Change records a value that is present in both snapshots with
// different contents.
type Change struct {
	From snapshot.Node `json:"from"`
	To   snapshot.Node `json:"to"`
}

// DiffResult holds the three diff categories keyed by path. A path
// appears in at most one category: Added for paths only in the newer
// snapshot, Removed for paths only in the older one, Changed for paths
// in both with unequal values.
type DiffResult struct {
	Added   map[string]snapshot.Node `json:"added"`
	Removed map[string]snapshot.Node `json:"removed"`
	Changed map[string]Change        `json:"changed"`
}

// NewDiffResult returns an empty result with all three categories
// allocated.
func NewDiffResult() *DiffResult {
	return &DiffResult{
		Added:   make(map[string]snapshot.Node),
		Removed: make(map[string]snapshot.Node),
		Changed: make(map[string]Change),
	}
}

// Empty reports whether the diff found no differences.
func (d *DiffResult) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Diff recursively compares two snapshots and returns every added,
// removed, and changed entry with its full path. Only map pairs are
// recursed into; any other kind pairing at a path is compared as a
// whole, so a reordered sequence reports as one wholesale change at
// the sequence's own path. Explicit nulls count as present. Diff is a
// pure function and never fails on loader output.
func Diff(older, newer *snapshot.Map) *DiffResult {
	result := NewDiffResult()
	diffMaps(result, "", older, newer)
	return result
}

// diffMaps walks one level of both maps, recursing where both sides
// hold maps. Paths are unique per recursion branch, so accumulating
// into the shared result cannot collide.
func diffMaps(result *DiffResult, prefix string, older, newer *snapshot.Map) {
	for _, key := range older.Keys() {
		path := joinPath(prefix, key)
		oldVal, _ := older.Get(key)

		newVal, present := newer.Get(key)
		if !present {
			result.Removed[path] = oldVal
			continue
		}

		oldMap, oldIsMap := oldVal.(*snapshot.Map)
		newMap, newIsMap := newVal.(*snapshot.Map)
		if oldIsMap && newIsMap {
			diffMaps(result, path, oldMap, newMap)
			continue
		}

		if !snapshot.Equal(oldVal, newVal) {
			result.Changed[path] = Change{From: oldVal, To: newVal}
		}
	}

	for _, key := range newer.Keys() {
		if older.Has(key) {
			continue
		}
		newVal, _ := newer.Get(key)
		result.Added[joinPath(prefix, key)] = newVal
	}
}

// joinPath joins a path prefix and a key with a dot.
func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
