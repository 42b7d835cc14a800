package commands

import (
	"github.com/spf13/cobra"

	"github.com/cephlink/cephlink/cmd/cephlink/handlers"
)

// Disconnect returns the command that removes the integration release.
// Imported secrets and the pool on the external cluster stay in place.
func Disconnect() *cobra.Command {
	var flags handlers.DisconnectFlags

	cmd := &cobra.Command{
		Use:   "disconnect",
		Short: "Uninstall the integration release",
		Long: `Uninstall the Rook external-cluster integration release.

Only the Helm release is removed. The imported credential secrets and
the pool on the external Ceph cluster are left untouched.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Disconnect(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVarP(&flags.ConfigFile, "config", "c", "", "Path to configuration file (default: cephlink.yaml)")
	cmd.Flags().StringVarP(&flags.Namespace, "namespace", "n", "", "Namespace of the integration release")
	cmd.Flags().StringVar(&flags.Release, "release", "", "Name of the integration release")
	cmd.Flags().StringVar(&flags.Kubeconfig, "kubeconfig", "", "Path to the kubeconfig file")

	return cmd
}
