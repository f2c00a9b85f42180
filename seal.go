package benteng

import (
	"crypto/rand"
	"fmt"

	"github.com/ib823/benteng-sdk/internal/crypto"
	"github.com/ib823/benteng-sdk/internal/wire"
)

// Sealer is the sender side of the protocol: it encrypts a payload, binds
// the verification context into the AAD, and signs the construction.
type Sealer struct {
	suite            Suite
	requiredAlgs     []byte
	recipientKEMPk   []byte
	signingSk        []byte
	deviceAttestHash []byte
	clock            Clock
}

// NewSealer builds a sealer for one suite, recipient KEM public key, and
// sender signing secret key.
func NewSealer(suite Suite, recipientKEMPublicKey, signingSecretKey []byte, opts ...SealerOption) (*Sealer, error) {
	if err := suite.validate(); err != nil {
		return nil, err
	}

	cfg := sealerConfig{clock: systemClock{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Sealer{
		suite:            suite,
		requiredAlgs:     suite.RequiredAlgs(),
		recipientKEMPk:   recipientKEMPublicKey,
		signingSk:        signingSecretKey,
		deviceAttestHash: cfg.deviceAttestHash,
		clock:            cfg.clock,
	}, nil
}

// Seal encrypts payload into one encoded envelope frame bound to the given
// tenant, policy, and path.
func (s *Sealer) Seal(payload, tenantID, policyID, path []byte) ([]byte, error) {
	nonce := make([]byte, wire.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	tsEpochMS := s.clock.NowMS()

	kemCiphertext, sharedSecret, err := crypto.Encapsulate(s.suite.KEM, s.recipientKEMPk)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyEstablishmentFailed, err)
	}

	key, err := derivePayloadKey(sharedSecret, kemCiphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyEstablishmentFailed, err)
	}

	aadBytes := wire.BuildAAD(
		wire.Version, tenantID, policyID, path,
		tsEpochMS, s.requiredAlgs, s.suite.Hybrid, s.deviceAttestHash,
	).Bytes()

	ciphertext, err := crypto.Seal(s.suite.AEAD, key, nonce, aadBytes, payload)
	if err != nil {
		return nil, fmt.Errorf("seal payload: %w", err)
	}

	signature, err := crypto.Sign(s.signingSk, signingTranscript(aadBytes, kemCiphertext, nonce, ciphertext))
	if err != nil {
		return nil, fmt.Errorf("sign transcript: %w", err)
	}

	env, err := wire.NewEnvelope(tenantID, policyID, path, tsEpochMS, nonce, kemCiphertext, signature, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}

	return env.Encode(), nil
}
