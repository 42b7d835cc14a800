package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/cephlink/cephlink/internal/helm"
)

// releaseManager is the subset of the Helm client used for teardown.
type releaseManager interface {
	ReleaseExists(releaseName string) (bool, error)
	Uninstall(releaseName string) error
}

// newReleaseManager creates the Helm client for teardown (replaced in tests).
var newReleaseManager = func(namespace, kubeconfig string) (releaseManager, error) {
	return helm.NewClient(namespace, kubeconfig)
}

// DisconnectFlags carries the CLI flag values for disconnect.
type DisconnectFlags struct {
	ConfigFile string
	Namespace  string
	Release    string
	Kubeconfig string
}

// Disconnect uninstalls the integration release. The imported secrets
// and the pool on the external cluster are deliberately left in place:
// this tool never deletes data it did not create exclusively for the
// release itself.
func Disconnect(ctx context.Context, flags DisconnectFlags) error {
	cfg, err := loadConfigFile(flags.ConfigFile)
	if err != nil {
		return err
	}
	if flags.Namespace != "" {
		cfg.Namespace = flags.Namespace
	}
	if flags.Release != "" {
		cfg.ReleaseName = flags.Release
	}
	if flags.Kubeconfig != "" {
		cfg.Kubeconfig = flags.Kubeconfig
	}

	manager, err := newReleaseManager(cfg.Namespace, cfg.Kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to create helm client: %w", err)
	}

	exists, err := manager.ReleaseExists(cfg.ReleaseName)
	if err != nil {
		return fmt.Errorf("failed to check release %s: %w", cfg.ReleaseName, err)
	}
	if !exists {
		log.Printf("Release %q not installed in namespace %q, nothing to do", cfg.ReleaseName, cfg.Namespace)
		return nil
	}

	if err := manager.Uninstall(cfg.ReleaseName); err != nil {
		return fmt.Errorf("failed to uninstall release %s: %w", cfg.ReleaseName, err)
	}

	log.Printf("Release %q uninstalled from namespace %q", cfg.ReleaseName, cfg.Namespace)
	return nil
}
