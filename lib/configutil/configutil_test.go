package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	DataDir     string `json:"dataDir"`
	Concurrency int    `json:"concurrency"`
	Overwrite   bool   `json:"overwrite"`
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json5")
	err := os.WriteFile(path, []byte(`{
		// comments are fine in json5
		dataDir: "data",
		concurrency: 4,
	}`), 0o644)
	require.NoError(t, err)

	cfg, err := ReadConfig[testConfig](path)
	require.NoError(t, err)
	require.Equal(t, "data", cfg.DataDir)
	require.Equal(t, 4, cfg.Concurrency)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{dataDir: "data", concurrency: 4}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.local.json5"), []byte(`{concurrency: 16, overwrite: true}`), 0o644))

	cfg, err := ReadConfig[testConfig](path)
	require.NoError(t, err)
	// base values survive, overridden values win
	require.Equal(t, "data", cfg.DataDir)
	require.Equal(t, 16, cfg.Concurrency)
	require.True(t, cfg.Overwrite)
}

func TestReadConfigLocalOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.local.json5"), []byte(`{dataDir: "elsewhere"}`), 0o644))

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, "elsewhere", cfg.DataDir)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
