package creds

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// ImporterScript is the external secret-import routine shipped with
// Rook. It reads the exported credential variables from its execution
// environment and creates the Kubernetes secret objects.
const ImporterScript = "import-external-cluster.sh"

// Importer feeds an exported credential bundle into the import routine.
type Importer struct {
	runner     Runner
	scriptsDir string

	// Shell overrides the evaluating shell, default bash.
	Shell string
}

// NewImporter returns an Importer using the given runner and the
// directory holding the external scripts.
func NewImporter(runner Runner, scriptsDir string) *Importer {
	return &Importer{runner: runner, scriptsDir: scriptsDir}
}

// Import composes the credential bundle, the target namespace and the
// control-interface binary location into a single script and evaluates
// it with `bash -e`, so the import routine sees the credentials as
// plain shell variables. A non-zero exit is fatal; the error carries
// the evaluation's output but never the composed script, which embeds
// the credentials.
func (i *Importer) Import(ctx context.Context, bundle Bundle, namespace, kubectlPath string) error {
	script := composeImportScript(bundle, namespace, kubectlPath, filepath.Join(i.scriptsDir, ImporterScript))

	stdout, stderr, err := i.runner.Run(ctx, i.shell(), "-e", "-c", script)
	if err != nil {
		return &ProcessError{
			Command: ImporterScript,
			Stdout:  stdout,
			Stderr:  stderr,
			Err:     err,
		}
	}

	return nil
}

func (i *Importer) shell() string {
	if i.Shell != "" {
		return i.Shell
	}
	return "bash"
}

// composeImportScript builds the shell evaluation: the bundle verbatim,
// the two generated assignments, then sourcing the import routine.
func composeImportScript(bundle Bundle, namespace, kubectlPath, scriptPath string) string {
	var b strings.Builder

	b.WriteString(string(bundle))
	if len(bundle) > 0 && !strings.HasSuffix(string(bundle), "\n") {
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "NAMESPACE=%q\n", namespace)
	fmt.Fprintf(&b, "KUBECTL=%q\n", kubectlPath)
	fmt.Fprintf(&b, ". %q\n", scriptPath)

	return b.String()
}
