package policybundle

import (
	"context"
	"sync"

	benteng "github.com/ib823/benteng-sdk"
)

// Distributor holds the active policy bundle and stages the next one, so
// bundle rollover is a single atomic swap. It implements
// benteng.PolicyStore over the active bundle.
type Distributor struct {
	mu      sync.RWMutex
	current *Bundle
	next    *Bundle
}

// NewDistributor creates an empty distributor. Lookups against an empty
// distributor report policy-not-found.
func NewDistributor() *Distributor {
	return &Distributor{}
}

// Update stages a bundle as next if its version is newer than both the
// active bundle and anything already staged. Older or equal versions are
// ignored.
func (d *Distributor) Update(b *Bundle) {
	d.mu.Lock()
	defer d.mu.Unlock()

	newest := d.currentVersionLocked()
	if d.next != nil && d.next.Version > newest {
		newest = d.next.Version
	}
	if b.Version > newest {
		d.next = b
	}
}

// Activate promotes the staged bundle, if any, to active.
func (d *Distributor) Activate() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.next != nil {
		d.current = d.next
		d.next = nil
	}
}

// Lookup implements benteng.PolicyStore over the active bundle.
func (d *Distributor) Lookup(_ context.Context, tenantID, policyID []byte) (*benteng.Policy, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.current == nil {
		return nil, benteng.ErrPolicyNotFound
	}

	for i := range d.current.Policies {
		p := &d.current.Policies[i]
		if string(p.TenantID) == string(tenantID) && string(p.PolicyID) == string(policyID) {
			return p, nil
		}
	}
	return nil, benteng.ErrPolicyNotFound
}

// Version returns the active bundle version, zero when empty.
func (d *Distributor) Version() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.currentVersionLocked()
}

func (d *Distributor) currentVersionLocked() uint64 {
	if d.current == nil {
		return 0
	}
	return d.current.Version
}
