package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statz-dev/statz/pkg/statz/snapshot"
)

func sampleDoc(t *testing.T) *Document {
	t.Helper()
	data, err := snapshot.Unmarshal([]byte(`{"cpu": {"model": "X", "cores": 8}, "ram": {"totalMB": 16384.0}}`))
	require.NoError(t, err)
	return &Document{Title: "System Specs", Data: data}
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get("nope")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown formatter")
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register("json", func() Formatter { return &JSONFormatter{} })

	formatter, err := r.Get("json")

	require.NoError(t, err)
	assert.IsType(t, &JSONFormatter{}, formatter)
}

func TestDefaultRegistry_BuiltinsRegistered(t *testing.T) {
	names := Available()

	for _, want := range []string{"csv", "json", "plain", "pretty"} {
		assert.Contains(t, names, want)
	}
}

func TestJSONFormatter_PreservesKeyOrder(t *testing.T) {
	var buf bytes.Buffer

	err := (&JSONFormatter{}).Format(&buf, sampleDoc(t))

	require.NoError(t, err)
	out := buf.String()
	assert.Less(t, bytes.Index(buf.Bytes(), []byte(`"model"`)), bytes.Index(buf.Bytes(), []byte(`"cores"`)))
	assert.Contains(t, out, `"totalMB": 16384.0`)
}

func TestPlainFormatter_FlattensPaths(t *testing.T) {
	var buf bytes.Buffer

	err := (&PlainFormatter{}).Format(&buf, sampleDoc(t))

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "cpu.model")
	assert.Contains(t, out, "ram.totalMB")
}

func TestCSVFormatter_RoundTrippableRows(t *testing.T) {
	var buf bytes.Buffer

	err := (&CSVFormatter{}).Format(&buf, sampleDoc(t))

	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 4)
	assert.Equal(t, "Key,Value", string(lines[0]))
	assert.Equal(t, "cpu.model,X", string(lines[1]))
}

func TestPrettyFormatter_SectionsAndErrors(t *testing.T) {
	data, err := snapshot.Unmarshal([]byte(`{"cpu": {"cores": 8}, "gpu": {"error": "GPU information not available on this system"}}`))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, (&PrettyFormatter{}).Format(&buf, &Document{Title: "Specs", Data: data}))

	out := buf.String()
	assert.Contains(t, out, "CPU")
	assert.Contains(t, out, "GPU")
	assert.Contains(t, out, "not available on this system")
	assert.Contains(t, out, "cores")
}

func TestPrettyFormatter_ScalarRoot(t *testing.T) {
	var buf bytes.Buffer

	err := (&PrettyFormatter{}).Format(&buf, &Document{Data: snapshot.String("ok")})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "value")
	assert.Contains(t, buf.String(), "ok")
}
