// Package benteng implements the Benteng envelope protocol: a
// tenant-scoped, policy-bound, hybrid-encrypted message format with a
// fail-closed verification pipeline.
//
// An envelope binds its context (tenant, policy, resource path, creation
// timestamp, required algorithm suite, hybrid flag, optional device
// attestation) into the AEAD associated data, protects the payload with
// ML-KEM-768 (optionally hybridized with X25519) plus an AEAD, and signs
// the whole construction with ML-DSA-65.
//
// Basic usage:
//
//	store := benteng.NewMemoryPolicyStore()
//	store.Put(&benteng.Policy{
//	    TenantID:     []byte("t1"),
//	    PolicyID:     []byte("p1"),
//	    Path:         []byte("/payments/transfer"),
//	    RequiredAlgs: benteng.DefaultSuite().RequiredAlgs(),
//	    MaxAgeMS:     30_000,
//	})
//
//	verifier, err := benteng.NewVerifier(benteng.DefaultSuite(), store, kemKeys, senderSigPk)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	decision, err := verifier.Verify(ctx, rawEnvelope)
//	if err != nil {
//	    // indeterminate: policy store failure, retry at the orchestration layer
//	}
//	if decision == benteng.DecisionAccept {
//	    // envelope authenticated end to end
//	}
//
// The verification outcome is the binary Decision. Which gate rejected an
// envelope is deliberately not observable from the decision; diagnostic
// detail goes to the configured logger and must never be echoed to a
// remote peer.
package benteng
