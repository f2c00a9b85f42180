package benteng

import (
	"crypto/sha256"

	"github.com/ib823/benteng-sdk/internal/crypto"
	"github.com/ib823/benteng-sdk/internal/wire"
)

// signingTranscript is the one canonical signed-message construction,
// shared by Seal and Verify. The signature covers the canonical AAD bytes
// plus the KEM ciphertext, nonce, and payload ciphertext, so signed
// context cannot be re-paired with substituted cryptographic material.
// Variable-length components carry length prefixes to keep the transcript
// unambiguous under concatenation.
func signingTranscript(aadBytes, kemCiphertext, nonce, ciphertext []byte) []byte {
	size := len(crypto.LabelSigningContext) +
		4 + len(aadBytes) +
		4 + len(kemCiphertext) +
		len(nonce) +
		4 + len(ciphertext)

	out := make([]byte, 0, size)
	out = append(out, crypto.LabelSigningContext...)
	out = wire.AppendLenPrefixed(out, aadBytes)
	out = wire.AppendLenPrefixed(out, kemCiphertext)
	out = append(out, nonce...)
	out = wire.AppendLenPrefixed(out, ciphertext)
	return out
}

// derivePayloadKey turns a KEM shared secret into the AEAD key.
//
// Salt is the SHA-256 hash of the KEM ciphertext, binding the key to this
// encapsulation; info is the payload-key label from the closed derivation
// enumeration, keeping payload keys cryptographically independent of keys
// derived for any other purpose.
func derivePayloadKey(sharedSecret, kemCiphertext []byte) ([]byte, error) {
	salt := sha256.Sum256(kemCiphertext)
	prk := crypto.Extract(salt[:], sharedSecret)
	return crypto.Expand(prk, []byte(crypto.LabelPayloadKey), crypto.AEADKeySize)
}
