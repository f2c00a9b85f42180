// Package crypto wraps the cryptographic primitives the envelope protocol
// consumes as black boxes: post-quantum key encapsulation, digital
// signatures, authenticated encryption, and key derivation.
//
// # Algorithm Suite
//
// The protocol's algorithm names form a closed enumeration:
//
//   - ML-KEM-768 (NIST FIPS 203): post-quantum key encapsulation mechanism.
//
//   - X25519-ML-KEM-768: hybrid KEM combining a classical X25519 exchange
//     with ML-KEM-768 for defense in depth. Either scheme alone breaking
//     does not expose the shared secret.
//
//   - ML-DSA-65 (NIST FIPS 204): post-quantum signature algorithm used
//     over the signing transcript.
//
//   - AES-256-GCM and ChaCha20-Poly1305: interchangeable AEADs protecting
//     the payload and authenticating the canonical AAD bytes.
//
//   - HKDF-SHA-256 (RFC 5869): extract-then-expand key derivation from KEM
//     shared secrets.
//
// # Domain Separation
//
// Every key purpose has its own HKDF info label (LabelPayloadKey,
// LabelSigningContext, LabelHybridCombiner). Labels are versioned protocol
// constants and never attacker-controlled, so deriving one key gives no
// advantage in predicting another.
//
// # Critical Security Notes
//
// Signature verification MUST be performed before decryption. Decrypting
// unauthenticated ciphertext may expose the system to chosen-ciphertext
// attacks. AEAD nonces MUST be unique per key; nonce reuse breaks both
// supported AEADs completely.
package crypto
