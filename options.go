package benteng

import (
	"io"

	"github.com/sirupsen/logrus"
)

// verifierConfig holds configuration for the verifier.
type verifierConfig struct {
	clock            Clock
	logger           logrus.FieldLogger
	deviceAttestHash []byte
}

// VerifierOption configures a Verifier.
type VerifierOption func(*verifierConfig)

// WithClock replaces the wall-clock source used for freshness checks.
func WithClock(c Clock) VerifierOption {
	return func(cfg *verifierConfig) {
		cfg.clock = c
	}
}

// WithLogger installs an out-of-band diagnostic logger. Rejection reasons
// are logged here and only here; they are never observable from the
// Decision. The default logger discards everything.
func WithLogger(l logrus.FieldLogger) VerifierOption {
	return func(cfg *verifierConfig) {
		cfg.logger = l
	}
}

// WithDeviceAttestation pins the device attestation hash the protocol
// binds into the AAD. nil (the default) means the attestation field is
// absent; presence is itself part of the binding, so sealer and verifier
// must agree.
func WithDeviceAttestation(hash []byte) VerifierOption {
	return func(cfg *verifierConfig) {
		cfg.deviceAttestHash = hash
	}
}

// sealerConfig holds configuration for the sealer.
type sealerConfig struct {
	clock            Clock
	deviceAttestHash []byte
}

// SealerOption configures a Sealer.
type SealerOption func(*sealerConfig)

// WithSealerClock replaces the clock stamping envelope creation time.
func WithSealerClock(c Clock) SealerOption {
	return func(cfg *sealerConfig) {
		cfg.clock = c
	}
}

// WithSealerDeviceAttestation binds a device attestation hash into every
// sealed envelope's AAD.
func WithSealerDeviceAttestation(hash []byte) SealerOption {
	return func(cfg *sealerConfig) {
		cfg.deviceAttestHash = hash
	}
}

// nopLogger builds the default discard-everything logger.
func nopLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
