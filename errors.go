package benteng

import (
	"errors"
)

// Sentinel errors for errors.Is() checks. These name the internal error
// taxonomy of the verification pipeline. They appear in logs and in
// sender-side (Seal) failures; the pipeline itself collapses all of them
// to DecisionReject so a remote peer cannot tell which gate failed.
var (
	// ErrMalformedEnvelope is returned for framing, length, version, or
	// nonce-length violations during decode.
	ErrMalformedEnvelope = errors.New("malformed envelope")

	// ErrPolicyMismatch is returned when the envelope's bound context or
	// freshness fails policy verification.
	ErrPolicyMismatch = errors.New("policy mismatch")

	// ErrPolicyNotFound is returned when no policy exists for the
	// envelope's tenant and policy id.
	ErrPolicyNotFound = errors.New("policy not found")

	// ErrSignatureInvalid is returned when signature verification over the
	// signing transcript fails.
	ErrSignatureInvalid = errors.New("signature verification failed")

	// ErrKeyEstablishmentFailed is returned when KEM decapsulation or key
	// derivation fails.
	ErrKeyEstablishmentFailed = errors.New("key establishment failed")

	// ErrPayloadAuthenticationFailed is returned when AEAD open fails,
	// including any authentication-tag mismatch.
	ErrPayloadAuthenticationFailed = errors.New("payload authentication failed")

	// ErrPolicyStoreUnavailable marks the one indeterminate outcome: the
	// policy store failed transiently. The pipeline still rejects, and the
	// orchestration layer may retry. It is never treated as Accept.
	ErrPolicyStoreUnavailable = errors.New("policy store unavailable")

	// ErrInvalidSuite is returned when an algorithm suite names an
	// algorithm outside the protocol's closed enumeration, or its hybrid
	// flag is inconsistent with its KEM.
	ErrInvalidSuite = errors.New("invalid algorithm suite")

	// ErrInvalidKey is returned when key material has the wrong size or
	// shape for its scheme.
	ErrInvalidKey = errors.New("invalid key material")
)

// PolicyStoreError wraps a transient policy store failure so callers can
// both match ErrPolicyStoreUnavailable and unwrap the cause.
type PolicyStoreError struct {
	Err error
}

func (e *PolicyStoreError) Error() string {
	return "policy store unavailable: " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *PolicyStoreError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *PolicyStoreError) Is(target error) bool {
	return target == ErrPolicyStoreUnavailable
}
