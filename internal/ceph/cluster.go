package ceph

import (
	"fmt"

	"github.com/ceph/go-ceph/rados"
)

// Cluster is an open client session against the external Ceph cluster.
// The production implementation wraps a librados connection; tests use
// a fake. Shutdown must be called on every exit path.
type Cluster interface {
	ListPools() ([]string, error)
	MakePool(name string) error
	OpenPool(name string) (Pool, error)
	Shutdown()
}

// Pool is an open IO context scoped to one pool. Close releases it.
type Pool interface {
	Applications() ([]string, error)
	EnableApplication(app string) error
	Close()
}

// Connector opens a cluster session from a connection descriptor.
type Connector func(conn Connection) (Cluster, error)

// TransportError reports that the external cluster could not be reached
// or authenticated against. It always aborts the pipeline.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("cannot reach ceph cluster: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ConnectRados opens a librados session using the descriptor. An
// explicit config path replaces the default config lookup; an explicit
// keyring only overrides the keyring option, leaving config resolution
// to the library.
func ConnectRados(conn Connection) (Cluster, error) {
	c, err := rados.NewConn()
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("create rados connection: %w", err)}
	}

	if conn.ConfigPath != "" {
		err = c.ReadConfigFile(conn.ConfigPath)
	} else {
		err = c.ReadDefaultConfigFile()
	}
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("read ceph config: %w", err)}
	}

	if conn.KeyringPath != "" {
		if err := c.SetConfigOption("keyring", conn.KeyringPath); err != nil {
			return nil, &TransportError{Err: fmt.Errorf("set keyring option: %w", err)}
		}
	}

	if err := c.Connect(); err != nil {
		return nil, &TransportError{Err: fmt.Errorf("connect: %w", err)}
	}

	return &radosCluster{conn: c}, nil
}

type radosCluster struct {
	conn *rados.Conn
}

func (r *radosCluster) ListPools() ([]string, error) {
	return r.conn.ListPools()
}

func (r *radosCluster) MakePool(name string) error {
	return r.conn.MakePool(name)
}

func (r *radosCluster) OpenPool(name string) (Pool, error) {
	ioctx, err := r.conn.OpenIOContext(name)
	if err != nil {
		return nil, fmt.Errorf("open pool %q: %w", name, err)
	}
	return &radosPool{ioctx: ioctx}, nil
}

func (r *radosCluster) Shutdown() {
	r.conn.Shutdown()
}

type radosPool struct {
	ioctx *rados.IOContext
}

func (p *radosPool) Applications() ([]string, error) {
	return p.ioctx.ApplicationList()
}

func (p *radosPool) EnableApplication(app string) error {
	return p.ioctx.ApplicationEnable(app, false)
}

func (p *radosPool) Close() {
	p.ioctx.Destroy()
}
