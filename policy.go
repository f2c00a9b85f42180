package benteng

import "github.com/ib823/benteng-sdk/internal/crypto"

// Policy is a verifier-side record pinning the context an envelope must
// match. Policies are owned and mutated by the policy store; the core
// only reads them.
type Policy struct {
	// TenantID is the tenant namespace the policy applies to.
	TenantID []byte `json:"tenant_id"`
	// PolicyID identifies this policy within the tenant.
	PolicyID []byte `json:"policy_id"`
	// Path is the resource path envelopes must be bound to.
	Path []byte `json:"path"`
	// RequiredAlgs is the canonical algorithm suite string envelopes must
	// claim, compared by exact byte equality.
	RequiredAlgs []byte `json:"required_algs"`
	// MaxAgeMS is the maximum accepted envelope age in milliseconds.
	// An age exactly equal to MaxAgeMS is within bounds.
	MaxAgeMS uint64 `json:"max_age_ms"`
}

// Evaluate is the pure, total decision predicate. It accepts iff tenant,
// policy, path, and required_algs all match by exact byte equality and the
// envelope is fresh: not from the future, and no older than MaxAgeMS
// (inclusive).
//
// Every comparison runs regardless of earlier mismatches, and each one is
// constant-time in the compared bytes.
func (p *Policy) Evaluate(tenantID, policyID, path, requiredAlgs []byte, tsEpochMS, nowMS uint64) Decision {
	ok := crypto.ConstantTimeEqual(tenantID, p.TenantID)
	ok = crypto.ConstantTimeEqual(policyID, p.PolicyID) && ok
	ok = crypto.ConstantTimeEqual(path, p.Path) && ok
	ok = crypto.ConstantTimeEqual(requiredAlgs, p.RequiredAlgs) && ok

	// A timestamp in the future would underflow the age computation;
	// reject instead of wrapping.
	if nowMS < tsEpochMS {
		ok = false
	} else if nowMS-tsEpochMS > p.MaxAgeMS {
		ok = false
	}

	if !ok {
		return DecisionReject
	}
	return DecisionAccept
}
