package crypto

import "errors"

var (
	// ErrInvalidPRKSize is returned when an HKDF expand is given a
	// pseudorandom key that is not exactly PRKSize bytes.
	ErrInvalidPRKSize = errors.New("invalid PRK size")

	// ErrExpandTooLong is returned when an HKDF expand requests more than
	// MaxExpandLen bytes of output.
	ErrExpandTooLong = errors.New("HKDF expand length exceeds maximum")

	// ErrInvalidKeySize is returned when an AEAD key size is invalid.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize is returned when an AEAD nonce size is invalid.
	ErrInvalidNonceSize = errors.New("invalid nonce size")

	// ErrUnknownAlgorithm is returned when an algorithm name is not part
	// of the protocol's closed enumeration.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// ErrDecryptionFailed is returned when AEAD open fails, including tag
	// mismatch.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrSignatureVerificationFailed is returned when ML-DSA-65 signature
	// verification fails.
	ErrSignatureVerificationFailed = errors.New("signature verification failed")

	// ErrInvalidPublicKeySize is returned when a public key has the wrong
	// size for its scheme.
	ErrInvalidPublicKeySize = errors.New("invalid public key size")

	// ErrInvalidSecretKeySize is returned when a secret key has the wrong
	// size for its scheme.
	ErrInvalidSecretKeySize = errors.New("invalid secret key size")

	// ErrInvalidCiphertextSize is returned when a KEM ciphertext has the
	// wrong size for its scheme.
	ErrInvalidCiphertextSize = errors.New("invalid ciphertext size")
)
