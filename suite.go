package benteng

import (
	"fmt"

	"github.com/ib823/benteng-sdk/internal/crypto"
)

// Suite names the algorithm set an envelope is bound to. The canonical
// string form of a suite is what senders claim in the AAD's required_algs
// field and what policies pin.
type Suite struct {
	// KEM is the key encapsulation mechanism name.
	KEM string
	// Sig is the signature algorithm name.
	Sig string
	// AEAD is the authenticated encryption algorithm name.
	AEAD string
	// KDF is the key derivation function name.
	KDF string
	// Hybrid reports whether classical/post-quantum hybrid mode is in
	// effect. It must be consistent with the KEM choice.
	Hybrid bool
}

// DefaultSuite is the pure post-quantum suite.
func DefaultSuite() Suite {
	return Suite{
		KEM:    crypto.KEMMLKEM768,
		Sig:    crypto.SigMLDSA65,
		AEAD:   crypto.AEADAES256GCM,
		KDF:    crypto.KDFHKDFSHA256,
		Hybrid: false,
	}
}

// HybridSuite combines X25519 with ML-KEM-768 for defense in depth.
func HybridSuite() Suite {
	s := DefaultSuite()
	s.KEM = crypto.KEMX25519MLKEM768
	s.Hybrid = true
	return s
}

// RequiredAlgs returns the canonical byte encoding of the suite,
// "KEM:SIG:AEAD:KDF". Policies compare it by exact byte equality, with no
// normalization.
func (s Suite) RequiredAlgs() []byte {
	return []byte(fmt.Sprintf("%s:%s:%s:%s", s.KEM, s.Sig, s.AEAD, s.KDF))
}

// validate checks every name against the protocol's closed enumeration
// and the hybrid flag against the KEM.
func (s Suite) validate() error {
	switch s.KEM {
	case crypto.KEMMLKEM768:
		if s.Hybrid {
			return fmt.Errorf("%w: hybrid flag set with non-hybrid KEM %s", ErrInvalidSuite, s.KEM)
		}
	case crypto.KEMX25519MLKEM768:
		if !s.Hybrid {
			return fmt.Errorf("%w: hybrid KEM %s requires hybrid flag", ErrInvalidSuite, s.KEM)
		}
	default:
		return fmt.Errorf("%w: unknown KEM %q", ErrInvalidSuite, s.KEM)
	}

	if s.Sig != crypto.SigMLDSA65 {
		return fmt.Errorf("%w: unknown signature algorithm %q", ErrInvalidSuite, s.Sig)
	}

	switch s.AEAD {
	case crypto.AEADAES256GCM, crypto.AEADChaCha20Poly1305:
	default:
		return fmt.Errorf("%w: unknown AEAD %q", ErrInvalidSuite, s.AEAD)
	}

	if s.KDF != crypto.KDFHKDFSHA256 {
		return fmt.Errorf("%w: unknown KDF %q", ErrInvalidSuite, s.KDF)
	}

	return nil
}
