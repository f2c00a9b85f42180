package benteng

import (
	"context"
	"sync"
)

// PolicyStore resolves the policy an envelope claims. Implementations must
// return ErrPolicyNotFound when no policy exists for the pair; any other
// error is treated as a transient store failure (the indeterminate
// outcome), never as Accept.
type PolicyStore interface {
	Lookup(ctx context.Context, tenantID, policyID []byte) (*Policy, error)
}

// MemoryPolicyStore is a concurrency-safe in-memory PolicyStore, useful
// for tests and single-process deployments.
type MemoryPolicyStore struct {
	mu       sync.RWMutex
	policies map[string]map[string]*Policy // tenant id -> policy id
}

// NewMemoryPolicyStore creates an empty store.
func NewMemoryPolicyStore() *MemoryPolicyStore {
	return &MemoryPolicyStore{policies: make(map[string]map[string]*Policy)}
}

// Put inserts or replaces a policy.
func (s *MemoryPolicyStore) Put(p *Policy) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tenant := string(p.TenantID)
	if s.policies[tenant] == nil {
		s.policies[tenant] = make(map[string]*Policy)
	}
	s.policies[tenant][string(p.PolicyID)] = p
}

// Lookup implements PolicyStore.
func (s *MemoryPolicyStore) Lookup(_ context.Context, tenantID, policyID []byte) (*Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.policies[string(tenantID)][string(policyID)]
	if !ok {
		return nil, ErrPolicyNotFound
	}
	return p, nil
}
