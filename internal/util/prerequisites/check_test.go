package prerequisites

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// installFakeTool drops an executable stub named name into dir.
func installFakeTool(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))
}

func TestCheck_AllFound(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("PATH stubbing is unix-only")
	}

	dir := t.TempDir()
	installFakeTool(t, dir, "python3")
	installFakeTool(t, dir, "bash")
	installFakeTool(t, dir, "kubectl")
	t.Setenv("PATH", dir)

	results := CheckDefault()

	require.NoError(t, results.Error())
	assert.Empty(t, results.Missing)
	assert.Len(t, results.Results, 3)
	for _, r := range results.Results {
		assert.True(t, r.Found, r.Tool.Name)
		assert.Equal(t, filepath.Join(dir, r.Tool.Name), r.Path)
	}
}

func TestCheck_MissingRequiredTool(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("PATH stubbing is unix-only")
	}

	dir := t.TempDir()
	installFakeTool(t, dir, "bash")
	installFakeTool(t, dir, "kubectl")
	t.Setenv("PATH", dir)

	results := CheckDefault()

	err := results.Error()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required tools")
	assert.Contains(t, err.Error(), "python3")
	assert.NotContains(t, err.Error(), "kubectl (", "found tools are not reported missing")
}

func TestCheck_OptionalToolDoesNotFail(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("PATH stubbing is unix-only")
	}

	t.Setenv("PATH", t.TempDir())

	results := Check([]Tool{{Name: "definitely-not-installed", Required: false}})

	assert.Len(t, results.Missing, 1)
	assert.NoError(t, results.Error(), "optional tools never fail the check")
}
