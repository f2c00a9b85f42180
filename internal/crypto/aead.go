package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// newAEAD constructs the AEAD named by alg. The name must come from the
// protocol's closed algorithm enumeration.
func newAEAD(alg string, key []byte) (cipher.AEAD, error) {
	if len(key) != AEADKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), AEADKeySize)
	}

	switch alg {
	case AEADAES256GCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		return cipher.NewGCM(block)
	case AEADChaCha20Poly1305:
		return chacha20poly1305.New(key)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, alg)
	}
}

// Seal encrypts plaintext with the named AEAD, binding aad into the
// authentication tag. Returns ciphertext || tag.
func Seal(alg string, key, nonce, aad, plaintext []byte) ([]byte, error) {
	aead, err := newAEAD(alg, key)
	if err != nil {
		return nil, err
	}

	if len(nonce) != AEADNonceSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidNonceSize, len(nonce), AEADNonceSize)
	}

	return aead.Seal(nil, nonce, plaintext, aad), nil
}

// Open decrypts ciphertext || tag with the named AEAD, authenticating aad.
// Tag mismatch collapses to ErrDecryptionFailed without detail.
func Open(alg string, key, nonce, aad, ciphertext []byte) ([]byte, error) {
	aead, err := newAEAD(alg, key)
	if err != nil {
		return nil, err
	}

	if len(nonce) != AEADNonceSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidNonceSize, len(nonce), AEADNonceSize)
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	return plaintext, nil
}
