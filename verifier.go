package benteng

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/ib823/benteng-sdk/internal/crypto"
	"github.com/ib823/benteng-sdk/internal/wire"
)

// Verifier runs the fail-closed verification pipeline over raw envelope
// frames. It holds no per-envelope state: verifications are independent
// transactions and may run concurrently without coordination.
type Verifier struct {
	suite            Suite
	requiredAlgs     []byte
	store            PolicyStore
	kem              *crypto.Keypair
	senderSigPk      []byte
	deviceAttestHash []byte
	clock            Clock
	log              logrus.FieldLogger
}

// NewVerifier builds a verifier for one algorithm suite, policy store,
// recipient KEM keypair, and sender signing public key.
func NewVerifier(suite Suite, store PolicyStore, kemKeys *KEMKeypair, senderSigPublicKey []byte, opts ...VerifierOption) (*Verifier, error) {
	if err := suite.validate(); err != nil {
		return nil, err
	}
	if kemKeys == nil || kemKeys.Scheme != suite.KEM {
		return nil, errors.New("KEM keypair missing or scheme does not match suite")
	}
	kp, err := crypto.NewKeypairFromBytes(kemKeys.Scheme, kemKeys.PublicKey, kemKeys.SecretKey)
	if err != nil {
		return nil, err
	}
	if !crypto.ValidateSigningPublicKey(senderSigPublicKey) {
		return nil, ErrInvalidKey
	}

	cfg := verifierConfig{
		clock:  systemClock{},
		logger: nopLogger(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Verifier{
		suite:            suite,
		requiredAlgs:     suite.RequiredAlgs(),
		store:            store,
		kem:              kp,
		senderSigPk:      senderSigPublicKey,
		deviceAttestHash: cfg.deviceAttestHash,
		clock:            cfg.clock,
		log:              cfg.logger,
	}, nil
}

// Verify runs the pipeline over one raw envelope frame and returns the
// binary decision.
//
// Every internal failure collapses to DecisionReject; which gate failed is
// logged out-of-band but never observable from the return values. The one
// exception is a transient policy-store failure, surfaced as
// (DecisionReject, err) so the orchestration layer can retry — it is never
// silently treated as Accept.
func (v *Verifier) Verify(ctx context.Context, raw []byte) (Decision, error) {
	_, decision, err := v.run(ctx, raw)
	return decision, err
}

// Open runs the same pipeline and additionally returns the decrypted
// payload on acceptance. The plaintext is nil unless the decision is
// DecisionAccept.
func (v *Verifier) Open(ctx context.Context, raw []byte) ([]byte, Decision, error) {
	return v.run(ctx, raw)
}

// run is the single-pass gate sequence. No gate is retried, and each gate
// only proceeds on success.
func (v *Verifier) run(ctx context.Context, raw []byte) ([]byte, Decision, error) {
	// Gate 1: decode.
	env, err := wire.Decode(raw)
	if err != nil {
		v.reject(ErrMalformedEnvelope, err)
		return nil, DecisionReject, nil
	}

	// Gate 2: context check. The AAD is derived from the decoded
	// envelope, not transmitted, so re-encoding must reproduce the input
	// byte for byte. A mismatch means a codec bug; fail closed.
	aadBytes := wire.BuildAAD(
		env.Version, env.TenantID, env.PolicyID, env.Path,
		env.TSEpochMS, v.requiredAlgs, v.suite.Hybrid, v.deviceAttestHash,
	).Bytes()
	if !crypto.ConstantTimeEqual(env.Encode(), raw) {
		v.reject(ErrMalformedEnvelope, errors.New("decode/encode round-trip mismatch"))
		return nil, DecisionReject, nil
	}

	// Gate 3: policy check.
	policy, err := v.store.Lookup(ctx, env.TenantID, env.PolicyID)
	if err != nil {
		if errors.Is(err, ErrPolicyNotFound) {
			v.reject(ErrPolicyNotFound, err)
			return nil, DecisionReject, nil
		}
		v.reject(ErrPolicyStoreUnavailable, err)
		return nil, DecisionReject, &PolicyStoreError{Err: err}
	}
	if policy.Evaluate(env.TenantID, env.PolicyID, env.Path, v.requiredAlgs, env.TSEpochMS, v.clock.NowMS()) != DecisionAccept {
		v.reject(ErrPolicyMismatch, nil)
		return nil, DecisionReject, nil
	}

	// Gate 4: signature verification over the canonical transcript.
	transcript := signingTranscript(aadBytes, env.KEMCiphertext, env.Nonce, env.Ciphertext)
	if err := crypto.Verify(v.senderSigPk, transcript, env.Signature); err != nil {
		v.reject(ErrSignatureInvalid, err)
		return nil, DecisionReject, nil
	}

	// Gate 5: key establishment.
	sharedSecret, err := v.kem.Decapsulate(env.KEMCiphertext)
	if err != nil {
		v.reject(ErrKeyEstablishmentFailed, err)
		return nil, DecisionReject, nil
	}
	key, err := derivePayloadKey(sharedSecret, env.KEMCiphertext)
	if err != nil {
		v.reject(ErrKeyEstablishmentFailed, err)
		return nil, DecisionReject, nil
	}

	// Gate 6: payload decryption.
	plaintext, err := crypto.Open(v.suite.AEAD, key, env.Nonce, aadBytes, env.Ciphertext)
	if err != nil {
		v.reject(ErrPayloadAuthenticationFailed, err)
		return nil, DecisionReject, nil
	}

	return plaintext, DecisionAccept, nil
}

// reject logs the internal rejection reason out-of-band. The reason never
// reaches the decision or any response a remote peer could observe.
func (v *Verifier) reject(reason error, cause error) {
	entry := v.log.WithField("reason", reason.Error())
	if cause != nil {
		entry = entry.WithError(cause)
	}
	entry.Debug("envelope rejected")
}
