package creds

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cephlink/cephlink/internal/ceph"
)

// fakeRunner records invocations and replays canned results.
type fakeRunner struct {
	calls  [][]string
	stdout string
	stderr string
	err    error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (string, string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.stdout, f.stderr, f.err
}

func TestExport_CapturesBundle(t *testing.T) {
	runner := &fakeRunner{stdout: "export ROOK_EXTERNAL_FSID=abc\nexport ROOK_EXTERNAL_ADMIN_SECRET=xyz\n"}
	exporter := NewExporter(runner, "/opt/scripts")

	bundle, err := exporter.Export(context.Background(), ceph.Connection{}, "demo-rbd")

	require.NoError(t, err)
	assert.Equal(t, Bundle(runner.stdout), bundle, "bundle is the exporter stdout verbatim")

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{
		"python3",
		"/opt/scripts/" + ExporterScript,
		"--format", "bash",
		"--rbd-data-pool-name", "demo-rbd",
	}, runner.calls[0])
}

func TestExport_PassesConnectionFlags(t *testing.T) {
	tests := []struct {
		name     string
		conn     ceph.Connection
		expected []string
	}{
		{
			name: "conf and keyring",
			conn: ceph.Connection{ConfigPath: "/c/ceph.conf", KeyringPath: "/c/keyring"},
			expected: []string{
				"--ceph-conf", "/c/ceph.conf",
				"--keyring", "/c/keyring",
			},
		},
		{
			name:     "keyring only",
			conn:     ceph.Connection{KeyringPath: "/c/keyring"},
			expected: []string{"--keyring", "/c/keyring"},
		},
		{
			name: "ambient defaults pass nothing",
			conn: ceph.Connection{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{}
			exporter := NewExporter(runner, "/opt/scripts")

			_, err := exporter.Export(context.Background(), tt.conn, "demo-rbd")

			require.NoError(t, err)
			require.Len(t, runner.calls, 1)
			call := runner.calls[0]
			base := []string{
				"python3",
				"/opt/scripts/" + ExporterScript,
				"--format", "bash",
				"--rbd-data-pool-name", "demo-rbd",
			}
			assert.Equal(t, append(base, tt.expected...), call)
		})
	}
}

func TestExport_FailureSurfacesBothStreams(t *testing.T) {
	runner := &fakeRunner{
		stdout: "partial output",
		stderr: "auth failed",
		err:    errors.New("exit status 1"),
	}
	exporter := NewExporter(runner, "/opt/scripts")

	_, err := exporter.Export(context.Background(), ceph.Connection{}, "demo-rbd")

	require.Error(t, err)
	var perr *ProcessError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, ExporterScript, perr.Command)
	assert.Equal(t, "partial output", perr.Stdout)
	assert.Equal(t, "auth failed", perr.Stderr)
	// The failure report carries both streams verbatim.
	assert.Contains(t, err.Error(), "auth failed")
	assert.Contains(t, err.Error(), "partial output")
}

func TestExport_CustomInterpreter(t *testing.T) {
	runner := &fakeRunner{}
	exporter := NewExporter(runner, "/opt/scripts")
	exporter.Python = "/usr/bin/python3.12"

	_, err := exporter.Export(context.Background(), ceph.Connection{}, "demo-rbd")

	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/python3.12", runner.calls[0][0])
}
