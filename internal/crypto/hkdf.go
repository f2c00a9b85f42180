package crypto

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Extract runs the HKDF-SHA-256 extract stage and returns a 32-byte
// pseudorandom key. Every (salt, ikm) pair is valid input; an empty salt
// is replaced by a zero-filled block per RFC 5869.
func Extract(salt, ikm []byte) []byte {
	return hkdf.Extract(sha256.New, ikm, salt)
}

// Expand runs the HKDF-SHA-256 expand stage over a 32-byte PRK.
//
// The info label must come from the protocol's closed label enumeration
// (LabelPayloadKey and friends); it is never attacker-controlled. Requests
// beyond MaxExpandLen are rejected rather than truncated.
func Expand(prk, info []byte, length int) ([]byte, error) {
	if len(prk) != PRKSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidPRKSize, len(prk), PRKSize)
	}
	if length < 0 || length > MaxExpandLen {
		return nil, fmt.Errorf("%w: got %d, max %d", ErrExpandTooLong, length, MaxExpandLen)
	}

	out := make([]byte, length)
	if _, err := io.ReadFull(hkdf.Expand(sha256.New, prk, info), out); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	return out, nil
}

// DeriveKey is extract-then-expand in one call.
func DeriveKey(ikm, salt, info []byte, length int) ([]byte, error) {
	return Expand(Extract(salt, ikm), info, length)
}
