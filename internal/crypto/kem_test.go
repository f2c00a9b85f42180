package crypto

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
)

// Deliberately not parallel: it swaps the package random source and
// restores it before any parallel test body runs.
func TestGenerateKeypair_DeterministicSource(t *testing.T) {
	defer func() { randReader = nil }()

	generate := func(scheme string, seed int64) *Keypair {
		randReader = rand.New(rand.NewSource(seed))
		kp, err := GenerateKeypair(scheme)
		if err != nil {
			t.Fatalf("GenerateKeypair() error = %v", err)
		}
		return kp
	}

	for _, scheme := range []string{KEMMLKEM768, KEMX25519MLKEM768} {
		a, b := generate(scheme, 1), generate(scheme, 1)
		if !bytes.Equal(a.PublicKey, b.PublicKey) || !bytes.Equal(a.SecretKey, b.SecretKey) {
			t.Errorf("%s: same seed produced different keypairs", scheme)
		}

		c := generate(scheme, 2)
		if bytes.Equal(a.PublicKey, c.PublicKey) {
			t.Errorf("%s: different seeds produced the same public key", scheme)
		}
	}
}

func TestGenerateSigningKeypair_DeterministicSource(t *testing.T) {
	defer func() { randReader = nil }()

	generate := func(seed int64) *SigningKeypair {
		randReader = rand.New(rand.NewSource(seed))
		kp, err := GenerateSigningKeypair()
		if err != nil {
			t.Fatalf("GenerateSigningKeypair() error = %v", err)
		}
		return kp
	}

	a, b := generate(1), generate(1)
	if !bytes.Equal(a.PublicKey, b.PublicKey) || !bytes.Equal(a.SecretKey, b.SecretKey) {
		t.Error("same seed produced different signing keypairs")
	}
	if c := generate(2); bytes.Equal(a.PublicKey, c.PublicKey) {
		t.Error("different seeds produced the same signing public key")
	}
}

func TestKEM_RoundTrip(t *testing.T) {
	t.Parallel()
	for _, scheme := range []string{KEMMLKEM768, KEMX25519MLKEM768} {
		t.Run(scheme, func(t *testing.T) {
			kp, err := GenerateKeypair(scheme)
			if err != nil {
				t.Fatalf("GenerateKeypair() error = %v", err)
			}

			ct, ss1, err := Encapsulate(scheme, kp.PublicKey)
			if err != nil {
				t.Fatalf("Encapsulate() error = %v", err)
			}

			ss2, err := kp.Decapsulate(ct)
			if err != nil {
				t.Fatalf("Decapsulate() error = %v", err)
			}

			if !bytes.Equal(ss1, ss2) {
				t.Error("encapsulated and decapsulated shared secrets differ")
			}
			if len(ss1) == 0 {
				t.Error("empty shared secret")
			}
		})
	}
}

func TestKEM_KeySizes(t *testing.T) {
	t.Parallel()
	s, err := SchemeByName(KEMMLKEM768)
	if err != nil {
		t.Fatal(err)
	}

	kp, err := GenerateKeypair(KEMMLKEM768)
	if err != nil {
		t.Fatal(err)
	}

	if len(kp.PublicKey) != s.PublicKeySize() {
		t.Errorf("public key size = %d, want %d", len(kp.PublicKey), s.PublicKeySize())
	}
	if len(kp.SecretKey) != s.PrivateKeySize() {
		t.Errorf("secret key size = %d, want %d", len(kp.SecretKey), s.PrivateKeySize())
	}
}

func TestKEM_UnknownScheme(t *testing.T) {
	t.Parallel()
	if _, err := SchemeByName("RSA-KEM"); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("SchemeByName error = %v, want ErrUnknownAlgorithm", err)
	}
	if _, err := GenerateKeypair("RSA-KEM"); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("GenerateKeypair error = %v, want ErrUnknownAlgorithm", err)
	}
}

func TestKEM_InvalidSizes(t *testing.T) {
	t.Parallel()
	kp, err := GenerateKeypair(KEMMLKEM768)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("bad ciphertext size", func(t *testing.T) {
		if _, err := kp.Decapsulate(make([]byte, 10)); !errors.Is(err, ErrInvalidCiphertextSize) {
			t.Errorf("error = %v, want ErrInvalidCiphertextSize", err)
		}
	})

	t.Run("bad public key size", func(t *testing.T) {
		if _, _, err := Encapsulate(KEMMLKEM768, make([]byte, 10)); !errors.Is(err, ErrInvalidPublicKeySize) {
			t.Errorf("error = %v, want ErrInvalidPublicKeySize", err)
		}
	})

	t.Run("NewKeypairFromBytes validation", func(t *testing.T) {
		if _, err := NewKeypairFromBytes(KEMMLKEM768, kp.PublicKey, make([]byte, 10)); !errors.Is(err, ErrInvalidSecretKeySize) {
			t.Errorf("error = %v, want ErrInvalidSecretKeySize", err)
		}
		if _, err := NewKeypairFromBytes(KEMMLKEM768, make([]byte, 10), kp.SecretKey); !errors.Is(err, ErrInvalidPublicKeySize) {
			t.Errorf("error = %v, want ErrInvalidPublicKeySize", err)
		}
		if _, err := NewKeypairFromBytes(KEMMLKEM768, kp.PublicKey, kp.SecretKey); err != nil {
			t.Errorf("valid keypair rejected: %v", err)
		}
	})
}

func TestKEM_FreshSecretsPerEncapsulation(t *testing.T) {
	t.Parallel()
	kp, err := GenerateKeypair(KEMMLKEM768)
	if err != nil {
		t.Fatal(err)
	}

	_, ss1, err := Encapsulate(KEMMLKEM768, kp.PublicKey)
	if err != nil {
		t.Fatal(err)
	}
	_, ss2, err := Encapsulate(KEMMLKEM768, kp.PublicKey)
	if err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(ss1, ss2) {
		t.Error("two encapsulations produced the same shared secret")
	}
}
