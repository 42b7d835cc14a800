// Package config defines the connection pipeline options and their
// validation rules.
//
// Options can come from an optional YAML file (cephlink.yaml), with CLI
// flags overlaid on top. Defaults are applied at load time so every
// consumer sees a fully populated Config.
package config

import "fmt"

// Defaults for options that are almost never overridden.
const (
	DefaultNamespace         = "rook-ceph-external"
	DefaultOperatorNamespace = "rook-ceph"
	DefaultPoolName          = "cephlink-rbd"
	DefaultScriptsDir        = "/usr/share/cephlink/scripts"
	DefaultChartRepo         = "https://charts.rook.io/release"
	DefaultChartName         = "rook-ceph-cluster"
	DefaultReleaseName       = "rook-ceph-external"
)

// Config holds every knob of the connection pipeline.
type Config struct {
	// PoolName is the RBD data pool on the external cluster. Empty is
	// allowed only while AutoCreatePool is true; Normalize fills in
	// DefaultPoolName in that case.
	PoolName string `yaml:"poolName"`

	// AutoCreatePool creates the pool when it does not exist yet.
	// When disabled, PoolName must name a pool that already exists.
	AutoCreatePool bool `yaml:"autoCreatePool"`

	// CephConfPath and KeyringPath explicitly locate the cluster
	// connection material. Both empty means auto-detection followed by
	// ambient client defaults.
	CephConfPath string `yaml:"cephConf"`
	KeyringPath  string `yaml:"keyring"`

	// Namespace is where secrets are imported and the integration
	// release is installed. OperatorNamespace is where the Rook
	// operator runs.
	Namespace         string `yaml:"namespace"`
	OperatorNamespace string `yaml:"operatorNamespace"`

	// Chart coordinates for the integration release.
	ChartRepo    string `yaml:"chartRepo"`
	ChartName    string `yaml:"chartName"`
	ChartVersion string `yaml:"chartVersion"`
	ReleaseName  string `yaml:"releaseName"`

	// ScriptsDir holds the external credential-export and
	// secret-import routines.
	ScriptsDir string `yaml:"scriptsDir"`

	// KubectlPath is the control-interface binary handed to the import
	// routine. Empty means resolve kubectl from PATH.
	KubectlPath string `yaml:"kubectl"`

	// Kubeconfig is passed to client-go and the Helm SDK. Empty means
	// the standard loading rules.
	Kubeconfig string `yaml:"kubeconfig"`

	// ValuesFile optionally overrides fields of the embedded chart
	// values document.
	ValuesFile string `yaml:"valuesFile"`
}

// ValidationError reports invalid or missing pipeline options. It is
// always produced before any network call is attempted.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// Default returns a Config populated with all defaults.
func Default() *Config {
	return &Config{
		AutoCreatePool:    true,
		Namespace:         DefaultNamespace,
		OperatorNamespace: DefaultOperatorNamespace,
		ChartRepo:         DefaultChartRepo,
		ChartName:         DefaultChartName,
		ReleaseName:       DefaultReleaseName,
		ScriptsDir:        DefaultScriptsDir,
	}
}

// Normalize fills in values that depend on other options. The pool name
// is only defaulted under auto-create; without auto-create an explicit
// name is a hard requirement checked by Validate.
func (c *Config) Normalize() {
	if c.PoolName == "" && c.AutoCreatePool {
		c.PoolName = DefaultPoolName
	}
}

// Validate checks the configuration before the pipeline starts.
func (c *Config) Validate() error {
	if !c.AutoCreatePool && c.PoolName == "" {
		return validationErrorf("a pool name is required when pool auto-creation is disabled (--pool)")
	}
	if c.Namespace == "" {
		return validationErrorf("namespace must not be empty")
	}
	if c.ScriptsDir == "" {
		return validationErrorf("scripts directory must not be empty")
	}
	if c.ChartRepo == "" || c.ChartName == "" || c.ReleaseName == "" {
		return validationErrorf("chart repo, chart name and release name must not be empty")
	}
	return nil
}
