// Package flatten converts an arbitrarily nested snapshot into a flat
// list of (path, string value) entries. The same normalization rule
// backs both the tabular export and cross-format comparison, so a
// snapshot flattened from JSON lines up with its CSV export.
package flatten

import (
	"fmt"

	"github.com/statz-dev/statz/pkg/statz/snapshot"
)

// Entry is one flattened leaf: a dotted, index-annotated path (e.g.
// "CPU.cores", "Disk[1].size") and the canonical string form of the
// value found there.
type Entry struct {
	Path  string
	Value string
}

// Flatten walks a node depth-first and returns one entry per leaf.
// Map keys are visited in insertion order and sequence elements in
// positional order, so the result is deterministic for structurally
// identical inputs. Flatten never fails; an empty map or sequence
// simply yields no entries.
func Flatten(n snapshot.Node) []Entry {
	return appendEntries(nil, "", n)
}

func appendEntries(out []Entry, prefix string, n snapshot.Node) []Entry {
	switch v := n.(type) {
	case *snapshot.Map:
		for _, key := range v.Keys() {
			child, _ := v.Get(key)
			out = appendEntries(out, joinKey(prefix, key), child)
		}
		return out
	case snapshot.Seq:
		for i, child := range v {
			out = appendEntries(out, joinIndex(prefix, i), child)
		}
		return out
	default:
		text, _ := snapshot.Text(n)
		path := prefix
		if path == "" {
			// A bare scalar at the root still needs an addressable path.
			path = "value"
		}
		return append(out, Entry{Path: path, Value: text})
	}
}

// joinKey appends a map key to a path prefix.
func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// joinIndex appends a sequence index to a path prefix. A sequence at
// the root has no prefix to annotate, so its elements are addressed as
// item_0, item_1, ...
func joinIndex(prefix string, i int) string {
	if prefix == "" {
		return fmt.Sprintf("item_%d", i)
	}
	return fmt.Sprintf("%s[%d]", prefix, i)
}
