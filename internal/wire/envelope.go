// Package wire implements the canonical binary framing of the envelope
// protocol: the envelope codec and the associated-data (AAD) encoding.
//
// Both encodings use the same discipline: fixed-width integers, a 4-byte
// big-endian length prefix before every variable-length field, and explicit
// one-byte discriminants for flags and optional fields. Every field
// boundary is self-describing, which is what makes the AAD encoding
// injective and the decoder total.
package wire

import (
	"encoding/binary"
	"fmt"
)

const (
	// Version is the only envelope version the protocol currently defines.
	Version = 1

	// NonceSize is the exact AEAD nonce length carried by an envelope.
	NonceSize = 12

	// MaxEnvelopeSize is the hard cap on an encoded envelope frame.
	// Length prefixes are bounded against it before any allocation.
	MaxEnvelopeSize = 1 << 20

	lenPrefixSize = 4
)

// Envelope is one decoded protocol frame. Instances built through
// NewEnvelope or Decode always satisfy the version and nonce invariants,
// so downstream code never re-checks them.
type Envelope struct {
	// Version is the protocol version discriminant, always 1.
	Version uint8
	// TenantID scopes the envelope to a tenant namespace.
	TenantID []byte
	// PolicyID names the policy the sender claims applies.
	PolicyID []byte
	// Path is the resource path the envelope is bound to.
	Path []byte
	// TSEpochMS is the envelope creation time in milliseconds since epoch.
	TSEpochMS uint64
	// Nonce is the 96-bit AEAD nonce.
	Nonce []byte
	// KEMCiphertext is the opaque KEM encapsulation output.
	KEMCiphertext []byte
	// Signature is the opaque signature over the signing transcript.
	Signature []byte
	// Ciphertext is the AEAD-protected payload.
	Ciphertext []byte
}

// NewEnvelope validates the envelope invariants at construction time.
func NewEnvelope(tenantID, policyID, path []byte, tsEpochMS uint64, nonce, kemCiphertext, signature, ciphertext []byte) (*Envelope, error) {
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: nonce length %d, want %d", ErrMalformed, len(nonce), NonceSize)
	}

	e := &Envelope{
		Version:       Version,
		TenantID:      tenantID,
		PolicyID:      policyID,
		Path:          path,
		TSEpochMS:     tsEpochMS,
		Nonce:         nonce,
		KEMCiphertext: kemCiphertext,
		Signature:     signature,
		Ciphertext:    ciphertext,
	}

	if e.EncodedSize() > MaxEnvelopeSize {
		return nil, fmt.Errorf("%w: encoded size exceeds %d bytes", ErrMalformed, MaxEnvelopeSize)
	}

	return e, nil
}

// EncodedSize returns the exact length of the encoded frame.
func (e *Envelope) EncodedSize() int {
	return 1 + // version
		lenPrefixSize + len(e.TenantID) +
		lenPrefixSize + len(e.PolicyID) +
		lenPrefixSize + len(e.Path) +
		8 + // ts_epoch_ms
		NonceSize +
		lenPrefixSize + len(e.KEMCiphertext) +
		lenPrefixSize + len(e.Signature) +
		lenPrefixSize + len(e.Ciphertext)
}

// Encode serializes the envelope to its canonical binary frame. Encoding
// is total for envelopes built through NewEnvelope or Decode.
func (e *Envelope) Encode() []byte {
	out := make([]byte, 0, e.EncodedSize())
	out = append(out, e.Version)
	out = AppendLenPrefixed(out, e.TenantID)
	out = AppendLenPrefixed(out, e.PolicyID)
	out = AppendLenPrefixed(out, e.Path)
	out = binary.BigEndian.AppendUint64(out, e.TSEpochMS)
	out = append(out, e.Nonce...)
	out = AppendLenPrefixed(out, e.KEMCiphertext)
	out = AppendLenPrefixed(out, e.Signature)
	out = AppendLenPrefixed(out, e.Ciphertext)
	return out
}

// AppendLenPrefixed appends a 4-byte big-endian length prefix followed by
// the field bytes.
func AppendLenPrefixed(out, field []byte) []byte {
	out = binary.BigEndian.AppendUint32(out, uint32(len(field)))
	return append(out, field...)
}
