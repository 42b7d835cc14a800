package creds

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeImportScript(t *testing.T) {
	bundle := Bundle("export ROOK_EXTERNAL_FSID=abc\nexport ROOK_EXTERNAL_ADMIN_SECRET=xyz")

	script := composeImportScript(bundle, "rook-ceph-external", "/snap/bin/kubectl", "/opt/scripts/import-external-cluster.sh")

	lines := strings.Split(strings.TrimSuffix(script, "\n"), "\n")
	require.Len(t, lines, 5)
	// Bundle first, verbatim.
	assert.Equal(t, "export ROOK_EXTERNAL_FSID=abc", lines[0])
	assert.Equal(t, "export ROOK_EXTERNAL_ADMIN_SECRET=xyz", lines[1])
	// Then the two generated assignments.
	assert.Equal(t, `NAMESPACE="rook-ceph-external"`, lines[2])
	assert.Equal(t, `KUBECTL="/snap/bin/kubectl"`, lines[3])
	// Then the import routine is sourced.
	assert.Equal(t, `. "/opt/scripts/import-external-cluster.sh"`, lines[4])
}

func TestComposeImportScript_BundleWithTrailingNewline(t *testing.T) {
	script := composeImportScript(Bundle("export A=1\n"), "ns", "kubectl", "/s/import.sh")

	assert.NotContains(t, script, "\n\n", "no blank line between bundle and assignments")
}

func TestImport_SingleShellEvaluation(t *testing.T) {
	runner := &fakeRunner{}
	importer := NewImporter(runner, "/opt/scripts")

	err := importer.Import(context.Background(), Bundle("export A=1"), "rook-ceph-external", "/usr/bin/kubectl")

	require.NoError(t, err)
	require.Len(t, runner.calls, 1)
	call := runner.calls[0]
	assert.Equal(t, "bash", call[0])
	assert.Equal(t, "-e", call[1])
	assert.Equal(t, "-c", call[2])
	assert.Contains(t, call[3], "export A=1")
	assert.Contains(t, call[3], ImporterScript)
}

func TestImport_FailureHidesScript(t *testing.T) {
	runner := &fakeRunner{
		stderr: "secret creation forbidden",
		err:    errors.New("exit status 1"),
	}
	importer := NewImporter(runner, "/opt/scripts")

	err := importer.Import(context.Background(), Bundle("export SECRET_KEY=topsecret"), "ns", "kubectl")

	require.Error(t, err)
	var perr *ProcessError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, ImporterScript, perr.Command)
	assert.Contains(t, err.Error(), "secret creation forbidden")
	// The composed script embeds credentials and must never appear in
	// the failure report.
	assert.NotContains(t, err.Error(), "topsecret")
}
