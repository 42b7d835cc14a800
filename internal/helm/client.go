// Package helm wraps the Helm v3 SDK for declarative chart
// installation into the target cluster.
package helm

import (
	"context"
	"fmt"
	"os"
	"time"

	"helm.sh/helm/v3/pkg/action"
	"helm.sh/helm/v3/pkg/chart"
	"helm.sh/helm/v3/pkg/chart/loader"
	"helm.sh/helm/v3/pkg/cli"
	"helm.sh/helm/v3/pkg/getter"
	"helm.sh/helm/v3/pkg/repo"
)

// Client provides Helm operations against one namespace.
type Client struct {
	namespace    string
	settings     *cli.EnvSettings
	actionConfig *action.Configuration
}

// NewClient creates a Helm client for the given namespace. An empty
// kubeconfig path means the standard loading rules.
func NewClient(namespace, kubeconfig string) (*Client, error) {
	settings := cli.New()
	if kubeconfig != "" {
		settings.KubeConfig = kubeconfig
	}

	actionConfig := new(action.Configuration)

	// Initialize with a no-op logger (suppress debug output)
	if err := actionConfig.Init(settings.RESTClientGetter(), namespace, "secret", func(format string, v ...interface{}) {}); err != nil {
		return nil, fmt.Errorf("failed to initialize helm action config: %w", err)
	}

	return &Client{
		namespace:    namespace,
		settings:     settings,
		actionConfig: actionConfig,
	}, nil
}

// InstallOrUpgrade installs a chart or upgrades if already installed,
// so re-running after a failed pipeline converges instead of erroring
// on the existing release.
func (c *Client) InstallOrUpgrade(ctx context.Context, releaseName, repoURL, chartName, version string, values map[string]interface{}) error {
	histClient := action.NewHistory(c.actionConfig)
	histClient.Max = 1
	_, err := histClient.Run(releaseName)

	if err != nil {
		// Release doesn't exist, install
		return c.install(ctx, releaseName, repoURL, chartName, version, values)
	}
	// Release exists, upgrade
	return c.upgrade(ctx, releaseName, repoURL, chartName, version, values)
}

func (c *Client) install(ctx context.Context, releaseName, repoURL, chartName, version string, values map[string]interface{}) error {
	installClient := action.NewInstall(c.actionConfig)
	installClient.ReleaseName = releaseName
	installClient.Namespace = c.namespace
	installClient.CreateNamespace = true
	installClient.Version = version
	// The release only declares the integration layer; it converges
	// asynchronously once the operator reconciles it, so there is
	// nothing to wait for here.
	installClient.Wait = false

	chart, err := c.loadChart(repoURL, chartName, version)
	if err != nil {
		return fmt.Errorf("failed to load chart: %w", err)
	}

	if _, err := installClient.RunWithContext(ctx, chart, values); err != nil {
		return fmt.Errorf("failed to install release %s: %w", releaseName, err)
	}
	return nil
}

func (c *Client) upgrade(ctx context.Context, releaseName, repoURL, chartName, version string, values map[string]interface{}) error {
	upgradeClient := action.NewUpgrade(c.actionConfig)
	upgradeClient.Namespace = c.namespace
	upgradeClient.Version = version
	upgradeClient.Wait = false
	upgradeClient.ReuseValues = false // Use new values

	chart, err := c.loadChart(repoURL, chartName, version)
	if err != nil {
		return fmt.Errorf("failed to load chart: %w", err)
	}

	if _, err := upgradeClient.RunWithContext(ctx, releaseName, chart, values); err != nil {
		return fmt.Errorf("failed to upgrade release %s: %w", releaseName, err)
	}
	return nil
}

func (c *Client) loadChart(repoURL, chartName, version string) (*chart.Chart, error) {
	// Find the chart in the repository
	chartPath, err := repo.FindChartInRepoURL(
		repoURL,
		chartName,
		version,
		"", "", "",
		getter.All(c.settings),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find chart %s in repo %s: %w", chartName, repoURL, err)
	}

	// Clean up the downloaded chart after loading
	defer func() {
		_ = os.Remove(chartPath)
	}()

	return loader.Load(chartPath)
}

// Uninstall removes a Helm release.
func (c *Client) Uninstall(releaseName string) error {
	uninstallClient := action.NewUninstall(c.actionConfig)
	uninstallClient.Wait = true
	uninstallClient.Timeout = 5 * time.Minute

	_, err := uninstallClient.Run(releaseName)
	return err
}

// ReleaseExists checks if a release exists.
func (c *Client) ReleaseExists(releaseName string) (bool, error) {
	histClient := action.NewHistory(c.actionConfig)
	histClient.Max = 1
	_, err := histClient.Run(releaseName)
	if err != nil {
		return false, nil
	}
	return true, nil
}
