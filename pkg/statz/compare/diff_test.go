package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statz-dev/statz/pkg/statz/snapshot"
)

// mustSnapshot parses a JSON object literal into the snapshot shape.
func mustSnapshot(t *testing.T, src string) *snapshot.Map {
	t.Helper()
	n, err := snapshot.Unmarshal([]byte(src))
	require.NoError(t, err)
	m, ok := n.(*snapshot.Map)
	require.True(t, ok)
	return m
}

func TestDiff_IdenticalSnapshots(t *testing.T) {
	a := mustSnapshot(t, `{"CPU": {"cores": 4}}`)
	b := mustSnapshot(t, `{"CPU": {"cores": 4}}`)

	result := Diff(a, b)

	assert.True(t, result.Empty())
	assert.Empty(t, result.Added)
	assert.Empty(t, result.Removed)
	assert.Empty(t, result.Changed)
}

func TestDiff_ChangedLeaf(t *testing.T) {
	older := mustSnapshot(t, `{"CPU": {"cores": 4}}`)
	newer := mustSnapshot(t, `{"CPU": {"cores": 8}}`)

	result := Diff(older, newer)

	require.Len(t, result.Changed, 1)
	change := result.Changed["CPU.cores"]
	assert.Equal(t, snapshot.Number("4"), change.From)
	assert.Equal(t, snapshot.Number("8"), change.To)
	assert.Empty(t, result.Added)
	assert.Empty(t, result.Removed)
}

func TestDiff_AddedComponent(t *testing.T) {
	older := mustSnapshot(t, `{"CPU": {"cores": 4}}`)
	newer := mustSnapshot(t, `{"CPU": {"cores": 4}, "GPU": {"name": "X"}}`)

	result := Diff(older, newer)

	require.Len(t, result.Added, 1)
	added, ok := result.Added["GPU"].(*snapshot.Map)
	require.True(t, ok)
	name, _ := added.Get("name")
	assert.Equal(t, snapshot.String("X"), name)
}

func TestDiff_RemovedComponent(t *testing.T) {
	older := mustSnapshot(t, `{"Disk": {"size": 500}}`)
	newer := mustSnapshot(t, `{}`)

	result := Diff(older, newer)

	require.Len(t, result.Removed, 1)
	removed, ok := result.Removed["Disk"].(*snapshot.Map)
	require.True(t, ok)
	size, _ := removed.Get("size")
	assert.Equal(t, snapshot.Number("500"), size)
}

func TestDiff_NestedPaths(t *testing.T) {
	older := mustSnapshot(t, `{"OS": {"kernel": {"version": "6.1", "arch": "x86_64"}}}`)
	newer := mustSnapshot(t, `{"OS": {"kernel": {"version": "6.8", "arch": "x86_64"}}}`)

	result := Diff(older, newer)

	require.Len(t, result.Changed, 1)
	assert.Contains(t, result.Changed, "OS.kernel.version")
}

func TestDiff_KindMismatchIsChangedNotRecursed(t *testing.T) {
	older := mustSnapshot(t, `{"GPU": {"name": "X"}}`)
	newer := mustSnapshot(t, `{"GPU": "none"}`)

	result := Diff(older, newer)

	require.Len(t, result.Changed, 1)
	change := result.Changed["GPU"]
	assert.IsType(t, &snapshot.Map{}, change.From)
	assert.Equal(t, snapshot.String("none"), change.To)
}

func TestDiff_ReorderedSequenceIsWholesaleChange(t *testing.T) {
	older := mustSnapshot(t, `{"Disk": [{"size": 500}, {"size": 250}]}`)
	newer := mustSnapshot(t, `{"Disk": [{"size": 250}, {"size": 500}]}`)

	result := Diff(older, newer)

	require.Len(t, result.Changed, 1)
	assert.Contains(t, result.Changed, "Disk")
	assert.Empty(t, result.Added)
	assert.Empty(t, result.Removed)
}

func TestDiff_EqualSequencesAreUnchanged(t *testing.T) {
	older := mustSnapshot(t, `{"Disk": [{"size": 500}, {"size": 250}]}`)
	newer := mustSnapshot(t, `{"Disk": [{"size": 500}, {"size": 250}]}`)

	assert.True(t, Diff(older, newer).Empty())
}

func TestDiff_ExplicitNullIsPresent(t *testing.T) {
	older := mustSnapshot(t, `{"Battery": {"status": null}}`)
	newer := mustSnapshot(t, `{"Battery": {}}`)

	result := Diff(older, newer)

	// The key vanished, so it is removed; the null value itself never
	// counted as absence.
	require.Len(t, result.Removed, 1)
	assert.Equal(t, snapshot.Null{}, result.Removed["Battery.status"])

	unchanged := Diff(
		mustSnapshot(t, `{"Battery": {"status": null}}`),
		mustSnapshot(t, `{"Battery": {"status": null}}`),
	)
	assert.True(t, unchanged.Empty())
}

func TestDiff_EmptyMapsCompareEqual(t *testing.T) {
	older := mustSnapshot(t, `{"GPU": {}}`)
	newer := mustSnapshot(t, `{"GPU": {}}`)

	assert.True(t, Diff(older, newer).Empty())
}

func TestDiff_SymmetryOfAbsence(t *testing.T) {
	a := mustSnapshot(t, `{"CPU": {"cores": 4}, "GPU": {"name": "X"}}`)
	b := mustSnapshot(t, `{"CPU": {"cores": 8}, "RAM": {"total": 16}}`)

	forward := Diff(a, b)
	backward := Diff(b, a)

	assert.Equal(t, forward.Added, backward.Removed)
	assert.Equal(t, forward.Removed, backward.Added)
}

func TestDiff_IdentityLaw(t *testing.T) {
	snap := mustSnapshot(t, `{"CPU": {"cores": 4, "features": ["sse", "avx"]}, "RAM": {"total": 16}}`)

	assert.True(t, Diff(snap, snap).Empty())
}

func TestDiff_PartitionLaw(t *testing.T) {
	older := mustSnapshot(t, `{"CPU": {"cores": 4, "model": "A"}, "Disk": {"size": 500}}`)
	newer := mustSnapshot(t, `{"CPU": {"cores": 8, "model": "A"}, "GPU": {"name": "X"}}`)

	result := Diff(older, newer)

	seen := make(map[string]int)
	for path := range result.Added {
		seen[path]++
	}
	for path := range result.Removed {
		seen[path]++
	}
	for path := range result.Changed {
		seen[path]++
	}
	for path, count := range seen {
		assert.Equal(t, 1, count, "path %s appears in more than one category", path)
	}

	assert.Contains(t, result.Changed, "CPU.cores")
	assert.Contains(t, result.Removed, "Disk")
	assert.Contains(t, result.Added, "GPU")
	assert.NotContains(t, result.Changed, "CPU.model")
}

func TestDiff_InputsNotMutated(t *testing.T) {
	older := mustSnapshot(t, `{"CPU": {"cores": 4}}`)
	newer := mustSnapshot(t, `{"CPU": {"cores": 8}, "GPU": {"name": "X"}}`)

	Diff(older, newer)

	assert.Equal(t, []string{"CPU"}, older.Keys())
	assert.Equal(t, []string{"CPU", "GPU"}, newer.Keys())
}
