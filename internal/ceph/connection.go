// Package ceph talks to the external Ceph cluster: it resolves how to
// reach it and provisions the RBD data pool on it.
package ceph

import "os"

// Connection describes how the Ceph client reaches the external
// cluster. Both paths empty means "ambient defaults": the client
// library's own configuration resolution applies. A keyring without a
// config is valid and relies on the client's default config lookup with
// the keyring overridden; this combination is passed through untouched.
type Connection struct {
	ConfigPath  string
	KeyringPath string
}

// Ambient reports whether the connection carries no explicit paths.
func (c Connection) Ambient() bool {
	return c.ConfigPath == "" && c.KeyringPath == ""
}

// candidate is one well-known local installation to probe for a paired
// config and keyring.
type candidate struct {
	conf    string
	keyring string
}

// Probe order: MicroCeph snap first, then a host package install.
var defaultCandidates = []candidate{
	{
		conf:    "/var/snap/microceph/current/conf/ceph.conf",
		keyring: "/var/snap/microceph/current/conf/ceph.keyring",
	},
	{
		conf:    "/etc/ceph/ceph.conf",
		keyring: "/etc/ceph/ceph.keyring",
	},
}

// ResolveConnection determines the connection descriptor. Explicit
// paths win; otherwise the first candidate location where both files
// exist is used; otherwise the ambient-defaults descriptor is returned.
// Never fails and has no side effects: failing to detect a local
// installation is a weaker descriptor, not an error.
func ResolveConnection(confPath, keyringPath string) Connection {
	return resolveConnection(confPath, keyringPath, defaultCandidates)
}

func resolveConnection(confPath, keyringPath string, candidates []candidate) Connection {
	if confPath != "" || keyringPath != "" {
		return Connection{ConfigPath: confPath, KeyringPath: keyringPath}
	}
	for _, c := range candidates {
		if fileExists(c.conf) && fileExists(c.keyring) {
			return Connection{ConfigPath: c.conf, KeyringPath: c.keyring}
		}
	}
	return Connection{}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
