package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, false)

	l.LogInfo("saved %s", "000001")
	l.LogDebug("hidden")
	l.LogError("boom: %v", assert.AnError)

	out := buf.String()
	assert.Contains(t, out, "[INFO] saved 000001")
	assert.Contains(t, out, "[ERROR] boom")
	assert.NotContains(t, out, "hidden")
}

func TestLoggerFile(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLogger("Blog Import", dir, true)
	require.NoError(t, err)

	l.LogDebug("visible")
	require.NoError(t, l.Close())

	matches, err := filepath.Glob(filepath.Join(dir, "blog_import", "blog_import_*.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DEBUG] visible")
}
