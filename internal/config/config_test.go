package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcouto/sarwrangler/internal/export"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	assert.Equal(t, "__output__", cfg.OutputDir)
	assert.Equal(t, export.Formats{CSV: true}, cfg.Formats)
}

func TestLoadWithFileOverrides(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	contents := `{
  "DIR": "out",
  "CSV": true,
  "JSON": false,
  "SQLITE3": true,
  "PICKLE": false
}`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, export.Formats{CSV: true, SQLite: true}, cfg.Formats)
}

func TestLoadPartialFileKeepsDefaultsForMissingKeys(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"JSON": true}`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "__output__", cfg.OutputDir)
	assert.True(t, cfg.Formats.CSV, "CSV default should survive a partial file")
	assert.True(t, cfg.Formats.JSON)
	assert.False(t, cfg.Formats.SQLite)
	assert.False(t, cfg.Formats.Gob)
}

func TestLoadMalformedFileFails(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"DIR": `), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoadRejectsEmptyOutputDir(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"DIR": "  "}`), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DIR")
}
