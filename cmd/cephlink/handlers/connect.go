// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic
// and can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/cephlink/cephlink/internal/ceph"
	"github.com/cephlink/cephlink/internal/config"
	"github.com/cephlink/cephlink/internal/creds"
	"github.com/cephlink/cephlink/internal/helm"
	"github.com/cephlink/cephlink/internal/k8s"
	"github.com/cephlink/cephlink/internal/pipeline"
	"github.com/cephlink/cephlink/internal/rook"
	"github.com/cephlink/cephlink/internal/ui"
	"github.com/cephlink/cephlink/internal/util/prerequisites"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile loads the optional config file.
	loadConfigFile = config.LoadFile

	// checkDefaultPrereqs runs prerequisite checks.
	checkDefaultPrereqs = prerequisites.CheckDefault

	// lookupPath resolves a binary from PATH.
	lookupPath = exec.LookPath

	// readFile reads the optional values override file.
	readFile = os.ReadFile

	// connectCluster opens the Ceph cluster session.
	connectCluster ceph.Connector = ceph.ConnectRados

	// newRunner creates the subordinate-process runner.
	newRunner = creds.NewRunner

	// newKubeClient creates the Kubernetes client.
	newKubeClient = func(kubeconfig string) (pipeline.Kube, error) {
		return k8s.NewClient(kubeconfig)
	}

	// newInstaller creates the Helm client for the target namespace.
	newInstaller = func(namespace, kubeconfig string) (rook.Installer, error) {
		return helm.NewClient(namespace, kubeconfig)
	}
)

// ConnectFlags carries the CLI flag values overlaid on the config file.
// Zero values mean "not set on the command line".
type ConnectFlags struct {
	ConfigFile        string
	PoolName          string
	NoAutoCreate      bool
	CephConf          string
	Keyring           string
	Namespace         string
	OperatorNamespace string
	ScriptsDir        string
	Kubectl           string
	Kubeconfig        string
	ChartVersion      string
	ValuesFile        string
}

// Connect runs the external-cluster connection pipeline:
//  1. Resolves how to reach the Ceph cluster (explicit paths, local
//     auto-detection, or ambient defaults)
//  2. Ensures the RBD data pool exists and is tagged for block storage
//  3. Exports access credentials via the external generation routine
//  4. Imports them as Kubernetes secrets via the external import routine
//  5. Installs the Rook external-cluster integration chart
//
// The pipeline halts at the first failing stage; completed side effects
// are left in place and the command is safe to re-run.
func Connect(ctx context.Context, flags ConnectFlags) error {
	cfg, err := buildConfig(flags)
	if err != nil {
		return err
	}

	// Configuration problems must surface before anything talks to the
	// outside world.
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := checkDefaultPrereqs().Error(); err != nil {
		return err
	}

	if cfg.KubectlPath == "" {
		path, err := lookupPath("kubectl")
		if err != nil {
			return fmt.Errorf("kubectl not found in PATH: %w", err)
		}
		cfg.KubectlPath = path
	}

	overrides, err := loadOverrides(cfg.ValuesFile)
	if err != nil {
		return err
	}

	kube, err := newKubeClient(cfg.Kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	installer, err := newInstaller(cfg.Namespace, cfg.Kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to create helm client: %w", err)
	}

	runner := newRunner()
	deployment := rook.Deployment{
		Namespace:         cfg.Namespace,
		ReleaseName:       cfg.ReleaseName,
		ChartRepo:         cfg.ChartRepo,
		ChartName:         cfg.ChartName,
		Version:           cfg.ChartVersion,
		OperatorNamespace: cfg.OperatorNamespace,
		Overrides:         overrides,
	}

	p := &pipeline.Pipeline{
		Config:   cfg,
		Resolve:  ceph.ResolveConnection,
		Connect:  connectCluster,
		Exporter: creds.NewExporter(runner, cfg.ScriptsDir),
		Importer: creds.NewImporter(runner, cfg.ScriptsDir),
		Kube:     kube,
		Deploy: func(ctx context.Context) error {
			return deployment.Run(ctx, installer)
		},
		Reporter: ui.NewReporter(os.Stdout),
	}

	return p.Run(ctx)
}

// buildConfig loads the optional config file and overlays the flags on
// top. Flags win over file values; file values win over defaults.
func buildConfig(flags ConnectFlags) (*config.Config, error) {
	cfg, err := loadConfigFile(flags.ConfigFile)
	if err != nil {
		return nil, err
	}

	if flags.PoolName != "" {
		cfg.PoolName = flags.PoolName
	}
	if flags.NoAutoCreate {
		cfg.AutoCreatePool = false
	}
	if flags.CephConf != "" {
		cfg.CephConfPath = flags.CephConf
	}
	if flags.Keyring != "" {
		cfg.KeyringPath = flags.Keyring
	}
	if flags.Namespace != "" {
		cfg.Namespace = flags.Namespace
	}
	if flags.OperatorNamespace != "" {
		cfg.OperatorNamespace = flags.OperatorNamespace
	}
	if flags.ScriptsDir != "" {
		cfg.ScriptsDir = flags.ScriptsDir
	}
	if flags.Kubectl != "" {
		cfg.KubectlPath = flags.Kubectl
	}
	if flags.Kubeconfig != "" {
		cfg.Kubeconfig = flags.Kubeconfig
	}
	if flags.ChartVersion != "" {
		cfg.ChartVersion = flags.ChartVersion
	}
	if flags.ValuesFile != "" {
		cfg.ValuesFile = flags.ValuesFile
	}

	cfg.Normalize()
	return cfg, nil
}

// loadOverrides reads the user values override file, if any.
func loadOverrides(path string) (helm.Values, error) {
	if path == "" {
		return nil, nil
	}
	data, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read values file: %w", err)
	}
	values, err := helm.FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse values file %s: %w", path, err)
	}
	return values, nil
}
