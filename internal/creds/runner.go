// Package creds drives the two external credential routines: the
// exporter that generates Ceph access credentials and the importer that
// materializes them as Kubernetes secrets.
//
// Both routines are black-box subordinate processes. This package only
// invokes them and captures their outcome; their internal logic lives
// outside this repository.
package creds

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Runner executes a subordinate process and captures both output
// streams separately.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)
}

// NewRunner returns the os/exec backed Runner.
func NewRunner() Runner { return execRunner{} }

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer

	// #nosec G204 - name and args come from internal config, not user-controlled templates
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// ProcessError reports a subordinate process that exited non-zero. Both
// captured streams are carried verbatim: credential-generation failures
// are the most likely failure in the whole pipeline and are
// undiagnosable without them. Command is a display label, never the
// full argument list, so no credential material leaks through errors.
type ProcessError struct {
	Command string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("%s failed: %v\nstdout:\n%s\nstderr:\n%s",
		e.Command, e.Err, e.Stdout, e.Stderr)
}

func (e *ProcessError) Unwrap() error { return e.Err }
