package crypto

import (
	"fmt"
	"io"

	"github.com/cloudflare/circl/kem"
	"github.com/cloudflare/circl/kem/hybrid"
	"github.com/cloudflare/circl/kem/mlkem/mlkem768"
)

// randReader is the random source used for key generation.
// It defaults to nil (which uses crypto/rand) but can be overridden for testing.
var randReader io.Reader

// SchemeByName resolves a KEM name from the protocol's closed algorithm
// enumeration to its circl scheme. The hybrid scheme combines X25519 with
// ML-KEM-768 for classical/post-quantum defense in depth.
func SchemeByName(name string) (kem.Scheme, error) {
	switch name {
	case KEMMLKEM768:
		return mlkem768.Scheme(), nil
	case KEMX25519MLKEM768:
		return hybrid.X25519MLKEM768(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// Keypair holds raw key material for a named KEM scheme.
type Keypair struct {
	// Scheme is the KEM name from the closed algorithm enumeration.
	Scheme string
	// PublicKey is the raw encapsulation key bytes.
	PublicKey []byte
	// SecretKey is the raw decapsulation key bytes.
	SecretKey []byte
}

// GenerateKeypair creates a new keypair for the named KEM scheme.
func GenerateKeypair(scheme string) (*Keypair, error) {
	s, err := SchemeByName(scheme)
	if err != nil {
		return nil, err
	}

	var pub kem.PublicKey
	var priv kem.PrivateKey
	if randReader != nil {
		seed := make([]byte, s.SeedSize())
		if _, err := io.ReadFull(randReader, seed); err != nil {
			return nil, err
		}
		pub, priv = s.DeriveKeyPair(seed)
	} else {
		pub, priv, err = s.GenerateKeyPair()
		if err != nil {
			return nil, err
		}
	}

	// MarshalBinary never fails for freshly generated keys
	pubBytes, _ := pub.MarshalBinary()
	privBytes, _ := priv.MarshalBinary()

	return &Keypair{
		Scheme:    scheme,
		PublicKey: pubBytes,
		SecretKey: privBytes,
	}, nil
}

// NewKeypairFromBytes validates raw key material against the named scheme
// and wraps it in a Keypair.
func NewKeypairFromBytes(scheme string, publicKey, secretKey []byte) (*Keypair, error) {
	s, err := SchemeByName(scheme)
	if err != nil {
		return nil, err
	}

	if len(publicKey) != s.PublicKeySize() {
		return nil, ErrInvalidPublicKeySize
	}
	if len(secretKey) != s.PrivateKeySize() {
		return nil, ErrInvalidSecretKeySize
	}

	return &Keypair{
		Scheme:    scheme,
		PublicKey: publicKey,
		SecretKey: secretKey,
	}, nil
}

// Encapsulate generates a fresh shared secret for the recipient's public
// key and returns the KEM ciphertext alongside it.
func Encapsulate(scheme string, publicKey []byte) (ct, sharedSecret []byte, err error) {
	s, err := SchemeByName(scheme)
	if err != nil {
		return nil, nil, err
	}

	if len(publicKey) != s.PublicKeySize() {
		return nil, nil, ErrInvalidPublicKeySize
	}

	pk, err := s.UnmarshalBinaryPublicKey(publicKey)
	if err != nil {
		return nil, nil, err
	}

	return s.Encapsulate(pk)
}

// Decapsulate recovers the shared secret from a KEM ciphertext.
func (k *Keypair) Decapsulate(ciphertext []byte) ([]byte, error) {
	s, err := SchemeByName(k.Scheme)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) != s.CiphertextSize() {
		return nil, ErrInvalidCiphertextSize
	}

	sk, err := s.UnmarshalBinaryPrivateKey(k.SecretKey)
	if err != nil {
		return nil, err
	}

	return s.Decapsulate(sk, ciphertext)
}
