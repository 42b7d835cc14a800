package creds

import (
	"context"
	"path/filepath"

	"github.com/cephlink/cephlink/internal/ceph"
)

// ExporterScript is the external credential-generation routine shipped
// with Rook. It is invoked, never reimplemented.
const ExporterScript = "create-external-cluster-resources.py"

// Bundle is the opaque credential material emitted by the exporter: a
// block of shell-style variable assignments. It is consumed verbatim by
// the importer, must never be logged, and is passed between processes
// rather than written to disk.
type Bundle string

// Exporter runs the credential-generation routine against the external
// cluster.
type Exporter struct {
	runner     Runner
	scriptsDir string

	// Python overrides the interpreter, default python3.
	Python string
}

// NewExporter returns an Exporter using the given runner and the
// directory holding the external scripts.
func NewExporter(runner Runner, scriptsDir string) *Exporter {
	return &Exporter{runner: runner, scriptsDir: scriptsDir}
}

// Export invokes the generation routine for the given pool and captures
// its standard output as the credential bundle. A non-zero exit is
// fatal and not retried; the resulting ProcessError carries both output
// streams verbatim.
func (e *Exporter) Export(ctx context.Context, conn ceph.Connection, poolName string) (Bundle, error) {
	args := []string{
		filepath.Join(e.scriptsDir, ExporterScript),
		"--format", "bash",
		"--rbd-data-pool-name", poolName,
	}
	if conn.ConfigPath != "" {
		args = append(args, "--ceph-conf", conn.ConfigPath)
	}
	if conn.KeyringPath != "" {
		args = append(args, "--keyring", conn.KeyringPath)
	}

	stdout, stderr, err := e.runner.Run(ctx, e.python(), args...)
	if err != nil {
		return "", &ProcessError{
			Command: ExporterScript,
			Stdout:  stdout,
			Stderr:  stderr,
			Err:     err,
		}
	}

	return Bundle(stdout), nil
}

func (e *Exporter) python() string {
	if e.Python != "" {
		return e.Python
	}
	return "python3"
}
