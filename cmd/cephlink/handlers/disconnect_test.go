package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cephlink/cephlink/internal/config"
)

type stubReleaseManager struct {
	exists     bool
	existsErr  error
	uninstalls []string
	err        error

	namespace  string
	kubeconfig string
}

func (s *stubReleaseManager) ReleaseExists(string) (bool, error) {
	return s.exists, s.existsErr
}

func (s *stubReleaseManager) Uninstall(releaseName string) error {
	s.uninstalls = append(s.uninstalls, releaseName)
	return s.err
}

func stubManager(manager *stubReleaseManager) {
	newReleaseManager = func(namespace, kubeconfig string) (releaseManager, error) {
		manager.namespace = namespace
		manager.kubeconfig = kubeconfig
		return manager, nil
	}
}

func TestDisconnect_UninstallsExistingRelease(t *testing.T) {
	saveAndRestoreFactories(t)

	manager := &stubReleaseManager{exists: true}
	stubManager(manager)
	loadConfigFile = func(string) (*config.Config, error) { return config.Default(), nil }

	err := Disconnect(context.Background(), DisconnectFlags{})

	require.NoError(t, err)
	assert.Equal(t, []string{config.DefaultReleaseName}, manager.uninstalls)
	assert.Equal(t, config.DefaultNamespace, manager.namespace)
}

func TestDisconnect_MissingReleaseIsNoop(t *testing.T) {
	saveAndRestoreFactories(t)

	manager := &stubReleaseManager{exists: false}
	stubManager(manager)
	loadConfigFile = func(string) (*config.Config, error) { return config.Default(), nil }

	err := Disconnect(context.Background(), DisconnectFlags{})

	require.NoError(t, err)
	assert.Empty(t, manager.uninstalls)
}

func TestDisconnect_FlagsOverride(t *testing.T) {
	saveAndRestoreFactories(t)

	manager := &stubReleaseManager{exists: true}
	stubManager(manager)
	loadConfigFile = func(string) (*config.Config, error) { return config.Default(), nil }

	err := Disconnect(context.Background(), DisconnectFlags{
		Namespace: "other-ns",
		Release:   "other-release",
	})

	require.NoError(t, err)
	assert.Equal(t, "other-ns", manager.namespace)
	assert.Equal(t, []string{"other-release"}, manager.uninstalls)
}

func TestDisconnect_UninstallFailure(t *testing.T) {
	saveAndRestoreFactories(t)

	manager := &stubReleaseManager{exists: true, err: errors.New("release stuck")}
	stubManager(manager)
	loadConfigFile = func(string) (*config.Config, error) { return config.Default(), nil }

	err := Disconnect(context.Background(), DisconnectFlags{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to uninstall release")
	assert.Contains(t, err.Error(), "release stuck")
}
