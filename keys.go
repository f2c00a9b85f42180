package benteng

import (
	"fmt"

	"github.com/ib823/benteng-sdk/internal/crypto"
)

// KEMKeypair holds raw KEM key material for a named scheme.
type KEMKeypair struct {
	// Scheme is the KEM name, e.g. "ML-KEM-768" or "X25519-ML-KEM-768".
	Scheme string
	// PublicKey is the raw encapsulation key bytes.
	PublicKey []byte
	// SecretKey is the raw decapsulation key bytes.
	SecretKey []byte
}

// GenerateKEMKeypair creates a fresh keypair for the suite's KEM.
func GenerateKEMKeypair(suite Suite) (*KEMKeypair, error) {
	if err := suite.validate(); err != nil {
		return nil, err
	}

	kp, err := crypto.GenerateKeypair(suite.KEM)
	if err != nil {
		return nil, err
	}

	return &KEMKeypair{Scheme: kp.Scheme, PublicKey: kp.PublicKey, SecretKey: kp.SecretKey}, nil
}

// NewKEMKeypair validates raw key material against the named scheme.
func NewKEMKeypair(scheme string, publicKey, secretKey []byte) (*KEMKeypair, error) {
	kp, err := crypto.NewKeypairFromBytes(scheme, publicKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return &KEMKeypair{Scheme: kp.Scheme, PublicKey: kp.PublicKey, SecretKey: kp.SecretKey}, nil
}

// SigningKeypair holds raw ML-DSA-65 key material.
type SigningKeypair struct {
	// PublicKey is the raw public key bytes.
	PublicKey []byte
	// SecretKey is the raw secret key bytes.
	SecretKey []byte
}

// GenerateSigningKeypair creates a fresh ML-DSA-65 keypair.
func GenerateSigningKeypair() (*SigningKeypair, error) {
	kp, err := crypto.GenerateSigningKeypair()
	if err != nil {
		return nil, err
	}
	return &SigningKeypair{PublicKey: kp.PublicKey, SecretKey: kp.SecretKey}, nil
}
