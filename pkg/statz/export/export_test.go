package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statz-dev/statz/pkg/statz/snapshot"
)

func pinClock(t *testing.T) {
	t.Helper()
	orig := now
	now = func() time.Time {
		return time.Date(2026, 8, 25, 14, 30, 5, 0, time.UTC)
	}
	t.Cleanup(func() { now = orig })
}

func specsData(t *testing.T) *snapshot.Map {
	t.Helper()
	data, err := snapshot.Unmarshal([]byte(`{"cpu": {"model": "X", "cores": 8}, "ram": {"totalMB": 16384.0}}`))
	require.NoError(t, err)
	return data.(*snapshot.Map)
}

func TestWrite_JSON(t *testing.T) {
	pinClock(t)
	dir := t.TempDir()

	path, err := Write(dir, KindSpecs, FormatJSON, specsData(t))

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "statz_export_2026-08-25_14-30-05.json"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"model": "X"`)
	assert.True(t, strings.HasSuffix(string(content), "\n"))
}

func TestWrite_SpecsCSV(t *testing.T) {
	pinClock(t)
	dir := t.TempDir()

	path, err := Write(dir, KindSpecs, FormatCSV, specsData(t))

	require.NoError(t, err)
	assert.Equal(t, "statz_export_2026-08-25_14-30-05.csv", filepath.Base(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	assert.Equal(t, "Component,Property,Value", lines[0])
	assert.Contains(t, lines, "cpu,model,X")
	assert.Contains(t, lines, "ram,totalMB,16384.0")
}

func TestWrite_UsageCSVCarriesUnits(t *testing.T) {
	pinClock(t)
	dir := t.TempDir()
	data, err := snapshot.Unmarshal([]byte(`{
		"ram": {"total": 16384.0, "percent": 50.0},
		"network": {"sentMBps": 0.25},
		"battery": {"timeLeftMins": 90}
	}`))
	require.NoError(t, err)

	path, err := Write(dir, KindUsage, FormatCSV, data.(*snapshot.Map))

	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	assert.Equal(t, "Component,Metric,Value,Unit", lines[0])
	assert.Contains(t, lines, "ram,total,16384.0,MB")
	assert.Contains(t, lines, "ram,percent,50.0,%")
	assert.Contains(t, lines, "network,sentMBps,0.25,MB/s")
	assert.Contains(t, lines, "battery,timeLeftMins,90,minutes")
}

func TestWrite_UnknownFormat(t *testing.T) {
	_, err := Write(t.TempDir(), KindSpecs, "xml", specsData(t))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown export format")
}

func TestUnitFor(t *testing.T) {
	tests := []struct {
		metric string
		want   string
	}{
		{"readSpeedMBps", "MB/s"},
		{"disk[0].writeSpeedMBps", "MB/s"},
		{"cpu0", "%"},
		{"average", "%"},
		{"percent", "%"},
		{"used", "MB"},
		{"timeLeftMins", "minutes"},
		{"pluggedIn", ""},
		{"device", ""},
	}
	for _, tt := range tests {
		t.Run(tt.metric, func(t *testing.T) {
			assert.Equal(t, tt.want, unitFor(tt.metric))
		})
	}
}
