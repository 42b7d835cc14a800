// Package rook triggers the declarative deployment of the Rook
// external-cluster integration layer.
package rook

import (
	"context"
	_ "embed"
	"fmt"
	"log"

	"sigs.k8s.io/yaml"

	"github.com/cephlink/cephlink/internal/helm"
)

// Baseline configuration document for the integration release: upgrade
// preflight skipped, cluster marked external, crash collector disabled
// (meaningless for a cluster this tool does not operate), and periodic
// external-cluster health polling at a 45 second interval.
//
//go:embed values.yaml
var baseValues []byte

// Installer is the declarative package-installation interface the
// trigger drives. *helm.Client implements it.
type Installer interface {
	InstallOrUpgrade(ctx context.Context, releaseName, repoURL, chartName, version string, values map[string]interface{}) error
}

// Deployment describes one integration-layer release.
type Deployment struct {
	Namespace   string
	ReleaseName string
	ChartRepo   string
	ChartName   string
	// Version pins the chart; empty means latest.
	Version string
	// OperatorNamespace points the integration at the Rook operator.
	OperatorNamespace string
	// Overrides are explicit user-supplied values merged over the
	// baseline document.
	Overrides helm.Values
}

// Values returns the effective values document: the embedded baseline
// with the operator namespace and user overrides merged on top.
func (d Deployment) Values() (helm.Values, error) {
	var base map[string]any
	if err := yaml.Unmarshal(baseValues, &base); err != nil {
		return nil, fmt.Errorf("parse embedded values document: %w", err)
	}

	values := helm.Values(base)
	if d.OperatorNamespace != "" {
		values = helm.Merge(values, helm.Values{"operatorNamespace": d.OperatorNamespace})
	}
	if len(d.Overrides) > 0 {
		values = helm.Merge(values, d.Overrides)
	}
	return values, nil
}

// Run installs the integration release. This is the terminal pipeline
// stage: a failure here leaves secrets imported but the integration
// layer not deployed, which is surfaced rather than retried.
func (d Deployment) Run(ctx context.Context, installer Installer) error {
	values, err := d.Values()
	if err != nil {
		return err
	}

	log.Printf("Installing release %q (chart %s) into namespace %q", d.ReleaseName, d.ChartName, d.Namespace)
	if err := installer.InstallOrUpgrade(ctx, d.ReleaseName, d.ChartRepo, d.ChartName, d.Version, values); err != nil {
		return fmt.Errorf("install integration chart: %w", err)
	}

	return nil
}
