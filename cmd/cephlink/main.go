// Package main is the entry point for the cephlink CLI.
//
// cephlink connects an existing external Ceph cluster to a running
// Kubernetes cluster: it provisions an RBD pool on the Ceph side,
// exports access credentials, imports them as Kubernetes secrets, and
// installs the Rook external-cluster integration chart.
//
// For detailed usage information, run:
//
//	cephlink --help
package main

import (
	"fmt"
	"os"

	"github.com/cephlink/cephlink/cmd/cephlink/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
