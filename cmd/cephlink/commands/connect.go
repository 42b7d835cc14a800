package commands

import (
	"github.com/spf13/cobra"

	"github.com/cephlink/cephlink/cmd/cephlink/handlers"
)

// Connect returns the command that connects an external Ceph cluster.
//
// The command provisions an RBD pool on the external cluster, exports
// access credentials, imports them as Kubernetes secrets, and installs
// the Rook external-cluster integration chart. Every step is idempotent
// or converging, so the command is safe to re-run after a failure.
//
// Optional flags:
//
//	--pool: RBD data pool name (default: cephlink-rbd under auto-create)
//	--no-auto-create: require the pool to already exist
//	--ceph-conf, --keyring: explicit cluster connection material
//	--namespace, -n: target namespace (default: rook-ceph-external)
func Connect() *cobra.Command {
	var flags handlers.ConnectFlags

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect an external Ceph cluster",
		Long: `Connect an existing external Ceph cluster to this Kubernetes cluster.

The command provisions an RBD data pool on the external cluster (unless
disabled), generates access credentials for it, imports them as
Kubernetes secrets, and installs the Rook external-cluster integration
chart so workloads can consume block storage from the external cluster.

When no --ceph-conf/--keyring is given, well-known local installations
(MicroCeph, /etc/ceph) are probed; if none is found, the Ceph client's
default configuration resolution applies.

Examples:
  # Connect using a locally detected MicroCeph installation
  cephlink connect

  # Connect to a remote cluster with explicit connection material
  cephlink connect --ceph-conf /etc/ceph/ceph.conf --keyring /etc/ceph/ceph.keyring

  # Use a pool that already exists
  cephlink connect --no-auto-create --pool existing-rbd-pool`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Connect(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVarP(&flags.ConfigFile, "config", "c", "", "Path to configuration file (default: cephlink.yaml)")
	cmd.Flags().StringVar(&flags.PoolName, "pool", "", "RBD data pool on the external cluster")
	cmd.Flags().BoolVar(&flags.NoAutoCreate, "no-auto-create", false, "Do not create the pool; it must already exist")
	cmd.Flags().StringVar(&flags.CephConf, "ceph-conf", "", "Path to the ceph.conf of the external cluster")
	cmd.Flags().StringVar(&flags.Keyring, "keyring", "", "Path to the keyring of the external cluster")
	cmd.Flags().StringVarP(&flags.Namespace, "namespace", "n", "", "Namespace for secrets and the integration release")
	cmd.Flags().StringVar(&flags.OperatorNamespace, "operator-namespace", "", "Namespace where the Rook operator runs")
	cmd.Flags().StringVar(&flags.ScriptsDir, "scripts-dir", "", "Directory holding the external credential scripts")
	cmd.Flags().StringVar(&flags.Kubectl, "kubectl", "", "Path to the kubectl binary used by the import routine")
	cmd.Flags().StringVar(&flags.Kubeconfig, "kubeconfig", "", "Path to the kubeconfig file")
	cmd.Flags().StringVar(&flags.ChartVersion, "chart-version", "", "Pin the integration chart version")
	cmd.Flags().StringVarP(&flags.ValuesFile, "values", "f", "", "YAML file with overrides for the chart values")

	return cmd
}
