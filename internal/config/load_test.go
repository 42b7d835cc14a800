package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cephlink.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile_Defaults(t *testing.T) {
	// Empty path and no cephlink.yaml in the working directory.
	t.Chdir(t.TempDir())

	cfg, err := LoadFile("")

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile_OverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
poolName: demo-rbd
autoCreatePool: false
namespace: storage
chartVersion: v1.13.7
`)

	cfg, err := LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, "demo-rbd", cfg.PoolName)
	assert.False(t, cfg.AutoCreatePool)
	assert.Equal(t, "storage", cfg.Namespace)
	assert.Equal(t, "v1.13.7", cfg.ChartVersion)
	// Absent keys keep their defaults.
	assert.Equal(t, DefaultChartRepo, cfg.ChartRepo)
	assert.Equal(t, DefaultScriptsDir, cfg.ScriptsDir)
}

func TestLoadFile_DefaultFilePickedUp(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte("poolName: from-default-file\n"), 0o600))
	t.Chdir(dir)

	cfg, err := LoadFile("")

	require.NoError(t, err)
	assert.Equal(t, "from-default-file", cfg.PoolName)
}

func TestLoadFile_MissingExplicitFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "poolName: [unclosed\n")

	_, err := LoadFile(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}
