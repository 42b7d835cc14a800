// Package pipeline sequences the external-cluster connection stages.
//
// The pipeline is strictly sequential: a later stage never runs if an
// earlier one failed, and no stage is retried. Completed side effects
// (pool creation, tagging, imported secrets) are deliberately left in
// place on later failure — the stages are idempotent, so the operator
// fixes the root cause and re-runs.
package pipeline

import (
	"context"
	"fmt"

	"github.com/cephlink/cephlink/internal/ceph"
	"github.com/cephlink/cephlink/internal/config"
	"github.com/cephlink/cephlink/internal/creds"
)

// Stage names, reported on progress and on failure.
type Stage string

const (
	StageResolvingConnection  Stage = "resolving connection"
	StageProvisioningPool     Stage = "provisioning pool"
	StageExportingCredentials Stage = "exporting credentials"
	StageImportingSecrets     Stage = "importing secrets"
	StageTriggeringDeployment Stage = "triggering deployment"
)

// monSecret is the secret the import routine always creates for the
// external cluster's monitors; its absence after import is suspicious.
const monSecret = "rook-ceph-mon"

// StageError wraps a stage failure with the stage it happened in.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %q failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Reporter receives stage progress. The ui package provides the
// terminal implementation.
type Reporter interface {
	Stage(name string)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// Exporter generates the credential bundle for a pool.
type Exporter interface {
	Export(ctx context.Context, conn ceph.Connection, poolName string) (creds.Bundle, error)
}

// Importer materializes a credential bundle as cluster secrets.
type Importer interface {
	Import(ctx context.Context, bundle creds.Bundle, namespace, kubectlPath string) error
}

// Kube covers the Kubernetes operations around secret import.
type Kube interface {
	EnsureNamespace(ctx context.Context, name string) error
	HasSecret(ctx context.Context, namespace, name string) (bool, error)
}

// Pipeline wires the stages together. All collaborators are interfaces
// or function values so tests can substitute fakes.
type Pipeline struct {
	Config   *config.Config
	Resolve  func(confPath, keyringPath string) ceph.Connection
	Connect  ceph.Connector
	Exporter Exporter
	Importer Importer
	Kube     Kube
	Deploy   func(ctx context.Context) error
	Reporter Reporter
}

// Run executes the pipeline. Configuration is validated before the
// first stage so invalid input never causes a network side effect. Any
// stage failure halts the pipeline immediately; nothing already applied
// is rolled back.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := p.Config.Validate(); err != nil {
		return err
	}
	r := p.reporter()

	r.Stage(string(StageResolvingConnection))
	conn := p.Resolve(p.Config.CephConfPath, p.Config.KeyringPath)
	if conn.Ambient() {
		r.Infof("no local ceph installation detected, relying on default client configuration")
	} else {
		r.Infof("using ceph config %q and keyring %q", conn.ConfigPath, conn.KeyringPath)
	}

	if p.Config.AutoCreatePool {
		r.Stage(string(StageProvisioningPool))
		status, err := ceph.ProvisionPool(p.Connect, conn, p.Config.PoolName)
		if err != nil {
			return &StageError{Stage: StageProvisioningPool, Err: err}
		}
		switch {
		case status.Created:
			r.Infof("created pool %q", status.Name)
		default:
			r.Warnf("pool %q already exists, leaving it untouched", status.Name)
		}
		if status.TagAdded {
			r.Infof("enabled %q application on pool %q", ceph.RBDApplication, status.Name)
		}
	}

	r.Stage(string(StageExportingCredentials))
	bundle, err := p.Exporter.Export(ctx, conn, p.Config.PoolName)
	if err != nil {
		return &StageError{Stage: StageExportingCredentials, Err: err}
	}

	r.Stage(string(StageImportingSecrets))
	if err := p.Kube.EnsureNamespace(ctx, p.Config.Namespace); err != nil {
		return &StageError{Stage: StageImportingSecrets, Err: fmt.Errorf("ensure namespace %q: %w", p.Config.Namespace, err)}
	}
	if err := p.Importer.Import(ctx, bundle, p.Config.Namespace, p.Config.KubectlPath); err != nil {
		return &StageError{Stage: StageImportingSecrets, Err: err}
	}
	p.verifyImport(ctx, r)

	r.Stage(string(StageTriggeringDeployment))
	if err := p.Deploy(ctx); err != nil {
		return &StageError{Stage: StageTriggeringDeployment, Err: err}
	}

	r.Infof("external ceph cluster connected, release %q installed in namespace %q", p.Config.ReleaseName, p.Config.Namespace)
	return nil
}

// verifyImport checks that the import routine produced the monitor
// secret. The routine's inventory varies with exporter flags, so a miss
// is only a warning.
func (p *Pipeline) verifyImport(ctx context.Context, r Reporter) {
	ok, err := p.Kube.HasSecret(ctx, p.Config.Namespace, monSecret)
	if err != nil {
		r.Warnf("could not verify imported secrets: %v", err)
		return
	}
	if !ok {
		r.Warnf("secret %q not found in namespace %q after import", monSecret, p.Config.Namespace)
	}
}

func (p *Pipeline) reporter() Reporter {
	if p.Reporter != nil {
		return p.Reporter
	}
	return noopReporter{}
}

type noopReporter struct{}

func (noopReporter) Stage(string)         {}
func (noopReporter) Infof(string, ...any) {}
func (noopReporter) Warnf(string, ...any) {}
