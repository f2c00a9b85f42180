package crypto

import (
	"fmt"

	"github.com/cloudflare/circl/sign/mldsa/mldsa65"
)

// SigningKeypair holds raw ML-DSA-65 key material.
type SigningKeypair struct {
	// PublicKey is the raw ML-DSA-65 public key bytes.
	PublicKey []byte
	// SecretKey is the raw ML-DSA-65 secret key bytes.
	SecretKey []byte
}

// GenerateSigningKeypair creates a new ML-DSA-65 keypair.
func GenerateSigningKeypair() (*SigningKeypair, error) {
	pub, priv, err := mldsa65.GenerateKey(randReader)
	if err != nil {
		return nil, err
	}

	// MarshalBinary never fails for freshly generated keys
	pubBytes, _ := pub.MarshalBinary()
	privBytes, _ := priv.MarshalBinary()

	return &SigningKeypair{
		PublicKey: pubBytes,
		SecretKey: privBytes,
	}, nil
}

// Sign produces a deterministic ML-DSA-65 signature over message.
func Sign(secretKey, message []byte) ([]byte, error) {
	priv := &mldsa65.PrivateKey{}
	if err := priv.UnmarshalBinary(secretKey); err != nil {
		return nil, fmt.Errorf("failed to parse secret key: %w", err)
	}

	sig := make([]byte, mldsa65.SignatureSize)
	if err := mldsa65.SignTo(priv, message, nil, false, sig); err != nil {
		return nil, fmt.Errorf("sign: %w", err)
	}

	return sig, nil
}

// Verify verifies an ML-DSA-65 signature.
func Verify(publicKey, message, signature []byte) error {
	pk := &mldsa65.PublicKey{}
	if err := pk.UnmarshalBinary(publicKey); err != nil {
		return fmt.Errorf("failed to parse public key: %w", err)
	}

	if !mldsa65.Verify(pk, message, nil, signature) {
		return ErrSignatureVerificationFailed
	}

	return nil
}

// ValidateSigningPublicKey reports whether a public key has the correct
// size for ML-DSA-65.
func ValidateSigningPublicKey(publicKey []byte) bool {
	return len(publicKey) == MLDSAPublicKeySize
}
