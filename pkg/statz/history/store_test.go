package history

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statz-dev/statz/pkg/statz/snapshot"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func specsNode(t *testing.T, cores string) snapshot.Node {
	t.Helper()
	node, err := snapshot.Unmarshal([]byte(`{"cpu": {"cores": ` + cores + `}}`))
	require.NoError(t, err)
	return node
}

func TestStore_PutAndLatest(t *testing.T) {
	store := openStore(t)

	record, err := store.Put("specs", specsNode(t, "8"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, record.ID)
	assert.Equal(t, "specs", record.Kind)

	latest, err := store.Latest("specs")
	require.NoError(t, err)
	assert.Equal(t, record.ID, latest.ID)

	node, err := latest.Snapshot()
	require.NoError(t, err)
	cpu, _ := node.(*snapshot.Map).Get("cpu")
	cores, ok := cpu.(*snapshot.Map).Get("cores")
	require.True(t, ok)
	assert.Equal(t, snapshot.Number("8"), cores)
}

func TestStore_ListNewestFirst(t *testing.T) {
	store := openStore(t)

	first, err := store.Put("usage", specsNode(t, "1"))
	require.NoError(t, err)
	second, err := store.Put("usage", specsNode(t, "2"))
	require.NoError(t, err)

	records, err := store.List("usage", 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, second.ID, records[0].ID)
	assert.Equal(t, first.ID, records[1].ID)
}

func TestStore_ListRespectsLimitAndKind(t *testing.T) {
	store := openStore(t)

	for i := 0; i < 3; i++ {
		_, err := store.Put("specs", specsNode(t, "4"))
		require.NoError(t, err)
	}
	_, err := store.Put("usage", specsNode(t, "4"))
	require.NoError(t, err)

	records, err := store.List("specs", 2)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = store.List("usage", 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestStore_LatestEmpty(t *testing.T) {
	store := openStore(t)

	_, err := store.Latest("specs")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_GetByID(t *testing.T) {
	store := openStore(t)

	record, err := store.Put("specs", specsNode(t, "8"))
	require.NoError(t, err)

	found, err := store.Get(record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, found.ID)

	_, err = store.Get(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_PruneKeepsNewest(t *testing.T) {
	store := openStore(t)

	var last *Record
	for i := 0; i < 5; i++ {
		record, err := store.Put("usage", specsNode(t, "4"))
		require.NoError(t, err)
		last = record
	}

	pruned, err := store.Prune("usage", 2)
	require.NoError(t, err)
	assert.Equal(t, 3, pruned)

	records, err := store.List("usage", 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, last.ID, records[0].ID)
}

func TestStore_PruneNoExcess(t *testing.T) {
	store := openStore(t)

	_, err := store.Put("usage", specsNode(t, "4"))
	require.NoError(t, err)

	pruned, err := store.Prune("usage", 5)
	require.NoError(t, err)
	assert.Zero(t, pruned)
}
