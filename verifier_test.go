package benteng

import (
	"context"
	"errors"
	"math/rand"
	"testing"
)

// fixedClock returns a constant time for deterministic freshness checks.
type fixedClock uint64

func (c fixedClock) NowMS() uint64 { return uint64(c) }

// failingStore simulates a transient policy-store outage.
type failingStore struct{ err error }

func (s failingStore) Lookup(_ context.Context, _, _ []byte) (*Policy, error) {
	return nil, s.err
}

// testFixture wires a sealer/verifier pair sharing freshly generated key
// material and a single in-memory policy.
type testFixture struct {
	suite    Suite
	kemKeys  *KEMKeypair
	sigKeys  *SigningKeypair
	store    *MemoryPolicyStore
	sealer   *Sealer
	tenantID []byte
	policyID []byte
	path     []byte
}

func newFixture(t *testing.T, suite Suite) *testFixture {
	t.Helper()

	kemKeys, err := GenerateKEMKeypair(suite)
	if err != nil {
		t.Fatalf("GenerateKEMKeypair() error = %v", err)
	}
	sigKeys, err := GenerateSigningKeypair()
	if err != nil {
		t.Fatalf("GenerateSigningKeypair() error = %v", err)
	}

	f := &testFixture{
		suite:    suite,
		kemKeys:  kemKeys,
		sigKeys:  sigKeys,
		store:    NewMemoryPolicyStore(),
		tenantID: []byte("t1"),
		policyID: []byte("p1"),
		path:     []byte("/a"),
	}
	f.store.Put(&Policy{
		TenantID:     f.tenantID,
		PolicyID:     f.policyID,
		Path:         f.path,
		RequiredAlgs: suite.RequiredAlgs(),
		MaxAgeMS:     5000,
	})

	f.sealer, err = NewSealer(suite, kemKeys.PublicKey, sigKeys.SecretKey, WithSealerClock(fixedClock(1000)))
	if err != nil {
		t.Fatalf("NewSealer() error = %v", err)
	}
	return f
}

func (f *testFixture) verifier(t *testing.T, opts ...VerifierOption) *Verifier {
	t.Helper()
	v, err := NewVerifier(f.suite, f.store, f.kemKeys, f.sigKeys.PublicKey, opts...)
	if err != nil {
		t.Fatalf("NewVerifier() error = %v", err)
	}
	return v
}

func (f *testFixture) seal(t *testing.T, payload []byte) []byte {
	t.Helper()
	frame, err := f.sealer.Seal(payload, f.tenantID, f.policyID, f.path)
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
	return frame
}

func TestVerifier_AcceptsValidEnvelope(t *testing.T) {
	t.Parallel()
	f := newFixture(t, DefaultSuite())
	frame := f.seal(t, []byte("hello"))

	v := f.verifier(t, WithClock(fixedClock(3000)))
	decision, err := v.Verify(context.Background(), frame)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if decision != DecisionAccept {
		t.Errorf("decision = %v, want accept", decision)
	}

	payload, decision, err := v.Open(context.Background(), frame)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if decision != DecisionAccept || string(payload) != "hello" {
		t.Errorf("Open() = (%q, %v), want (\"hello\", accept)", payload, decision)
	}
}

func TestVerifier_RejectsStaleEnvelope(t *testing.T) {
	t.Parallel()
	f := newFixture(t, DefaultSuite())
	frame := f.seal(t, []byte("hello"))

	// ts=1000, max_age=5000: now=6000 is the last acceptable instant.
	tests := []struct {
		name string
		now  uint64
		want Decision
	}{
		{"at freshness boundary", 6000, DecisionAccept},
		{"one past boundary", 6001, DecisionReject},
		{"far past boundary", 100_000, DecisionReject},
		{"before creation", 999, DecisionReject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := f.verifier(t, WithClock(fixedClock(tt.now)))
			decision, err := v.Verify(context.Background(), frame)
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if decision != tt.want {
				t.Errorf("decision at now=%d is %v, want %v", tt.now, decision, tt.want)
			}
		})
	}
}

func TestVerifier_RejectsTamperedEnvelope(t *testing.T) {
	t.Parallel()
	f := newFixture(t, DefaultSuite())
	frame := f.seal(t, []byte("payload under protection"))
	v := f.verifier(t, WithClock(fixedClock(3000)))

	// Flip one bit at every position. Any mutation must either fail to
	// decode or fail one of the downstream gates; none may accept.
	for i := range frame {
		mutated := append([]byte(nil), frame...)
		mutated[i] ^= 0x01

		decision, err := v.Verify(context.Background(), mutated)
		if decision != DecisionReject {
			t.Fatalf("bit flip at offset %d accepted", i)
		}
		if err != nil {
			t.Fatalf("bit flip at offset %d: unexpected error %v", i, err)
		}
	}
}

func TestVerifier_RejectsGarbage(t *testing.T) {
	t.Parallel()
	f := newFixture(t, DefaultSuite())
	v := f.verifier(t, WithClock(fixedClock(3000)))
	rng := rand.New(rand.NewSource(9))

	for i := 0; i < 200; i++ {
		buf := make([]byte, rng.Intn(1024))
		rng.Read(buf)
		decision, err := v.Verify(context.Background(), buf)
		if decision != DecisionReject || err != nil {
			t.Fatalf("iteration %d: garbage input returned (%v, %v)", i, decision, err)
		}
	}
}

func TestVerifier_RejectsUnknownPolicy(t *testing.T) {
	t.Parallel()
	f := newFixture(t, DefaultSuite())
	frame, err := f.sealer.Seal([]byte("hello"), f.tenantID, []byte("no-such-policy"), f.path)
	if err != nil {
		t.Fatal(err)
	}

	v := f.verifier(t, WithClock(fixedClock(3000)))
	decision, err := v.Verify(context.Background(), frame)
	if decision != DecisionReject || err != nil {
		t.Errorf("unknown policy returned (%v, %v), want (reject, nil)", decision, err)
	}
}

func TestVerifier_RejectsPathMismatch(t *testing.T) {
	t.Parallel()
	f := newFixture(t, DefaultSuite())
	frame, err := f.sealer.Seal([]byte("hello"), f.tenantID, f.policyID, []byte("/b"))
	if err != nil {
		t.Fatal(err)
	}

	v := f.verifier(t, WithClock(fixedClock(3000)))
	decision, err := v.Verify(context.Background(), frame)
	if decision != DecisionReject || err != nil {
		t.Errorf("path mismatch returned (%v, %v), want (reject, nil)", decision, err)
	}
}

func TestVerifier_PolicyStoreFailureIsIndeterminate(t *testing.T) {
	t.Parallel()
	f := newFixture(t, DefaultSuite())
	frame := f.seal(t, []byte("hello"))

	cause := errors.New("connection refused")
	v, err := NewVerifier(f.suite, failingStore{err: cause}, f.kemKeys, f.sigKeys.PublicKey, WithClock(fixedClock(3000)))
	if err != nil {
		t.Fatal(err)
	}

	decision, err := v.Verify(context.Background(), frame)
	if decision != DecisionReject {
		t.Errorf("decision = %v, want reject", decision)
	}
	if !errors.Is(err, ErrPolicyStoreUnavailable) {
		t.Errorf("error = %v, want ErrPolicyStoreUnavailable", err)
	}
	var storeErr *PolicyStoreError
	if !errors.As(err, &storeErr) || !errors.Is(storeErr.Err, cause) {
		t.Errorf("error does not carry the store cause: %v", err)
	}
}

func TestVerifier_RejectsWrongSignerKey(t *testing.T) {
	t.Parallel()
	f := newFixture(t, DefaultSuite())
	frame := f.seal(t, []byte("hello"))

	other, err := GenerateSigningKeypair()
	if err != nil {
		t.Fatal(err)
	}
	v, err := NewVerifier(f.suite, f.store, f.kemKeys, other.PublicKey, WithClock(fixedClock(3000)))
	if err != nil {
		t.Fatal(err)
	}

	decision, err := v.Verify(context.Background(), frame)
	if decision != DecisionReject || err != nil {
		t.Errorf("wrong signer key returned (%v, %v), want (reject, nil)", decision, err)
	}
}

func TestVerifier_RejectsWrongRecipientKey(t *testing.T) {
	t.Parallel()
	f := newFixture(t, DefaultSuite())
	frame := f.seal(t, []byte("hello"))

	otherKEM, err := GenerateKEMKeypair(f.suite)
	if err != nil {
		t.Fatal(err)
	}
	v, err := NewVerifier(f.suite, f.store, otherKEM, f.sigKeys.PublicKey, WithClock(fixedClock(3000)))
	if err != nil {
		t.Fatal(err)
	}

	// ML-KEM decapsulation with the wrong key yields an implicit-rejection
	// shared secret, so the failure surfaces at payload decryption.
	decision, err := v.Verify(context.Background(), frame)
	if decision != DecisionReject || err != nil {
		t.Errorf("wrong recipient key returned (%v, %v), want (reject, nil)", decision, err)
	}
}

func TestVerifier_DeviceAttestationBinding(t *testing.T) {
	t.Parallel()
	suite := DefaultSuite()
	f := newFixture(t, suite)

	attest := []byte("attestation-hash-32-bytes-long!!")
	sealer, err := NewSealer(suite, f.kemKeys.PublicKey, f.sigKeys.SecretKey,
		WithSealerClock(fixedClock(1000)), WithSealerDeviceAttestation(attest))
	if err != nil {
		t.Fatal(err)
	}
	frame, err := sealer.Seal([]byte("hello"), f.tenantID, f.policyID, f.path)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("matching attestation accepts", func(t *testing.T) {
		v := f.verifier(t, WithClock(fixedClock(3000)), WithDeviceAttestation(attest))
		if decision, _ := v.Verify(context.Background(), frame); decision != DecisionAccept {
			t.Errorf("decision = %v, want accept", decision)
		}
	})

	t.Run("missing attestation rejects", func(t *testing.T) {
		v := f.verifier(t, WithClock(fixedClock(3000)))
		if decision, _ := v.Verify(context.Background(), frame); decision != DecisionReject {
			t.Errorf("decision = %v, want reject", decision)
		}
	})

	t.Run("different attestation rejects", func(t *testing.T) {
		v := f.verifier(t, WithClock(fixedClock(3000)), WithDeviceAttestation([]byte("other")))
		if decision, _ := v.Verify(context.Background(), frame); decision != DecisionReject {
			t.Errorf("decision = %v, want reject", decision)
		}
	})
}

func TestVerifier_HybridSuite(t *testing.T) {
	t.Parallel()
	f := newFixture(t, HybridSuite())
	frame := f.seal(t, []byte("hybrid payload"))

	v := f.verifier(t, WithClock(fixedClock(3000)))
	payload, decision, err := v.Open(context.Background(), frame)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if decision != DecisionAccept || string(payload) != "hybrid payload" {
		t.Errorf("Open() = (%q, %v)", payload, decision)
	}

	t.Run("classical verifier rejects hybrid envelope", func(t *testing.T) {
		classicalKEM, err := GenerateKEMKeypair(DefaultSuite())
		if err != nil {
			t.Fatal(err)
		}
		cv, err := NewVerifier(DefaultSuite(), f.store, classicalKEM, f.sigKeys.PublicKey, WithClock(fixedClock(3000)))
		if err != nil {
			t.Fatal(err)
		}
		if decision, _ := cv.Verify(context.Background(), frame); decision != DecisionReject {
			t.Errorf("decision = %v, want reject", decision)
		}
	})
}

func TestVerifier_ChaCha20Suite(t *testing.T) {
	t.Parallel()
	suite := DefaultSuite()
	suite.AEAD = "ChaCha20-Poly1305"
	f := newFixture(t, suite)
	frame := f.seal(t, []byte("chacha payload"))

	v := f.verifier(t, WithClock(fixedClock(3000)))
	payload, decision, err := v.Open(context.Background(), frame)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if decision != DecisionAccept || string(payload) != "chacha payload" {
		t.Errorf("Open() = (%q, %v)", payload, decision)
	}
}

func TestNewVerifier_Validation(t *testing.T) {
	t.Parallel()
	f := newFixture(t, DefaultSuite())

	t.Run("nil KEM keypair", func(t *testing.T) {
		if _, err := NewVerifier(DefaultSuite(), f.store, nil, f.sigKeys.PublicKey); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("KEM scheme mismatch", func(t *testing.T) {
		if _, err := NewVerifier(HybridSuite(), f.store, f.kemKeys, f.sigKeys.PublicKey); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("bad signing public key", func(t *testing.T) {
		if _, err := NewVerifier(DefaultSuite(), f.store, f.kemKeys, []byte("short")); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("error = %v, want ErrInvalidKey", err)
		}
	})

	t.Run("invalid suite", func(t *testing.T) {
		bad := DefaultSuite()
		bad.KDF = "scrypt"
		if _, err := NewVerifier(bad, f.store, f.kemKeys, f.sigKeys.PublicKey); !errors.Is(err, ErrInvalidSuite) {
			t.Errorf("error = %v, want ErrInvalidSuite", err)
		}
	})
}

func BenchmarkVerify(b *testing.B) {
	suite := DefaultSuite()
	kemKeys, err := GenerateKEMKeypair(suite)
	if err != nil {
		b.Fatal(err)
	}
	sigKeys, err := GenerateSigningKeypair()
	if err != nil {
		b.Fatal(err)
	}
	store := NewMemoryPolicyStore()
	store.Put(&Policy{
		TenantID:     []byte("t1"),
		PolicyID:     []byte("p1"),
		Path:         []byte("/a"),
		RequiredAlgs: suite.RequiredAlgs(),
		MaxAgeMS:     1 << 40,
	})
	sealer, err := NewSealer(suite, kemKeys.PublicKey, sigKeys.SecretKey)
	if err != nil {
		b.Fatal(err)
	}
	frame, err := sealer.Seal(make([]byte, 1024), []byte("t1"), []byte("p1"), []byte("/a"))
	if err != nil {
		b.Fatal(err)
	}
	v, err := NewVerifier(suite, store, kemKeys, sigKeys.PublicKey)
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if decision, err := v.Verify(ctx, frame); decision != DecisionAccept || err != nil {
			b.Fatalf("Verify() = (%v, %v)", decision, err)
		}
	}
}
