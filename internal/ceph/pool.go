package ceph

import (
	"fmt"
	"log"
	"slices"
)

// RBDApplication is the pool application tag consumed by RBD clients.
const RBDApplication = "rbd"

// PoolStatus reports what the provisioner actually did.
type PoolStatus struct {
	Name string

	// Created is true when the pool was created by this run. An
	// existing pool is never reconfigured or recreated.
	Created bool

	// TagAdded is true when the rbd application tag was enabled by
	// this run. False means it was already present.
	TagAdded bool
}

// ProvisionPool ensures the named pool exists on the external cluster
// and carries the rbd application tag. Both steps are idempotent:
// existing pools are left untouched and the tag is only enabled when
// absent, so re-running against an already provisioned cluster performs
// no capacity-affecting operations.
//
// The cluster session is owned by this call and released on every exit
// path. A failed connect is a TransportError.
func ProvisionPool(connect Connector, conn Connection, name string) (PoolStatus, error) {
	status := PoolStatus{Name: name}

	cluster, err := connect(conn)
	if err != nil {
		return status, err
	}
	defer cluster.Shutdown()

	pools, err := cluster.ListPools()
	if err != nil {
		return status, fmt.Errorf("list pools: %w", err)
	}

	if slices.Contains(pools, name) {
		log.Printf("Pool %q already exists, leaving it untouched", name)
	} else {
		log.Printf("Creating pool %q in ceph cluster", name)
		if err := cluster.MakePool(name); err != nil {
			return status, fmt.Errorf("create pool %q: %w", name, err)
		}
		status.Created = true
	}

	pool, err := cluster.OpenPool(name)
	if err != nil {
		return status, err
	}
	defer pool.Close()

	apps, err := pool.Applications()
	if err != nil {
		return status, fmt.Errorf("list applications of pool %q: %w", name, err)
	}

	if !slices.Contains(apps, RBDApplication) {
		log.Printf("Enabling %q application on pool %q", RBDApplication, name)
		if err := pool.EnableApplication(RBDApplication); err != nil {
			return status, fmt.Errorf("enable %q application on pool %q: %w", RBDApplication, name, err)
		}
		status.TagAdded = true
	}

	return status, nil
}
