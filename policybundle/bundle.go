// Package policybundle distributes verifier-side policies as signed,
// versioned bundles. A bundle carries a validity window and an ML-DSA-65
// signature from the policy signer, so verifiers only load policy sets
// whose provenance and freshness they can check.
package policybundle

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	benteng "github.com/ib823/benteng-sdk"
	"github.com/ib823/benteng-sdk/internal/crypto"
)

var (
	// ErrSignatureInvalid is returned when the bundle signature does not
	// verify under the given signer key.
	ErrSignatureInvalid = errors.New("bundle signature verification failed")

	// ErrExpired is returned when a bundle is used outside its validity
	// window.
	ErrExpired = errors.New("bundle outside validity window")
)

// Bundle is a signed set of policies. The signature covers the canonical
// JSON encoding of the bundle with the signature field cleared.
type Bundle struct {
	// Policies is the policy set this bundle distributes.
	Policies []benteng.Policy `json:"policies"`
	// Version orders bundles; a distributor only accepts newer versions.
	Version uint64 `json:"version"`
	// CreatedAt is the creation time in seconds since epoch.
	CreatedAt uint64 `json:"created_at"`
	// NotAfter is the end of the validity window in seconds since epoch.
	NotAfter uint64 `json:"not_after"`
	// SignerKID identifies the signing key.
	SignerKID string `json:"signer_kid"`
	// Signature is the ML-DSA-65 signature over the bundle.
	Signature []byte `json:"signature"`
}

// Create signs a policy set into a bundle valid for ttl from now.
func Create(policies []benteng.Policy, version uint64, ttl time.Duration, signerKID string, signingSecretKey []byte) (*Bundle, error) {
	now := uint64(time.Now().Unix())

	b := &Bundle{
		Policies:  policies,
		Version:   version,
		CreatedAt: now,
		NotAfter:  now + uint64(ttl/time.Second),
		SignerKID: signerKID,
	}

	msg, err := b.signingBytes()
	if err != nil {
		return nil, err
	}

	sig, err := crypto.Sign(signingSecretKey, msg)
	if err != nil {
		return nil, fmt.Errorf("sign bundle: %w", err)
	}

	b.Signature = sig
	return b, nil
}

// Verify checks the bundle signature under the signer's public key.
func (b *Bundle) Verify(signerPublicKey []byte) error {
	msg, err := b.signingBytes()
	if err != nil {
		return err
	}

	if err := crypto.Verify(signerPublicKey, msg, b.Signature); err != nil {
		return ErrSignatureInvalid
	}
	return nil
}

// ValidAt reports whether t falls inside the bundle's validity window.
func (b *Bundle) ValidAt(t time.Time) bool {
	now := uint64(t.Unix())
	return now >= b.CreatedAt && now < b.NotAfter
}

// signingBytes serializes the bundle for signing with the signature field
// cleared, so signing and verification see identical bytes.
func (b *Bundle) signingBytes() ([]byte, error) {
	unsigned := *b
	unsigned.Signature = nil

	msg, err := json.Marshal(&unsigned)
	if err != nil {
		return nil, fmt.Errorf("serialize bundle: %w", err)
	}
	return msg, nil
}
