package crypto

const (
	// LabelPayloadKey is the HKDF info label for deriving the AEAD
	// payload-encryption key.
	LabelPayloadKey = "benteng/aead/v1"

	// LabelSigningContext is the domain-separation prefix of the
	// signature transcript.
	LabelSigningContext = "benteng/sig/v1"

	// LabelHybridCombiner is the HKDF info label reserved for combining
	// classical and post-quantum shared secrets.
	LabelHybridCombiner = "benteng/hybrid/v1"

	// PRKSize is the size of an HKDF-SHA-256 pseudorandom key in bytes.
	PRKSize = 32

	// MaxExpandLen is the maximum output length of a single HKDF-SHA-256
	// expand, per RFC 5869 (255 blocks of hash length).
	MaxExpandLen = 255 * 32

	// AEADKeySize is the key size shared by AES-256-GCM and
	// ChaCha20-Poly1305 in bytes.
	AEADKeySize = 32
	// AEADNonceSize is the nonce size shared by both AEADs in bytes.
	AEADNonceSize = 12
	// AEADTagSize is the authentication tag size in bytes.
	AEADTagSize = 16

	// MLDSAPublicKeySize is the size of an ML-DSA-65 public key in bytes.
	MLDSAPublicKeySize = 1952
	// MLDSASignatureSize is the size of an ML-DSA-65 signature in bytes.
	MLDSASignatureSize = 3309
)

// KEM scheme names accepted by SchemeByName.
const (
	KEMMLKEM768       = "ML-KEM-768"
	KEMX25519MLKEM768 = "X25519-ML-KEM-768"
)

// AEAD algorithm names accepted by Seal and Open.
const (
	AEADAES256GCM        = "AES-256-GCM"
	AEADChaCha20Poly1305 = "ChaCha20-Poly1305"
)

// SigMLDSA65 is the only signature algorithm the protocol currently names.
const SigMLDSA65 = "ML-DSA-65"

// KDFHKDFSHA256 is the only key derivation function the protocol
// currently names.
const KDFHKDFSHA256 = "HKDF-SHA-256"
