package wire

import (
	"errors"
	"fmt"
)

// ErrMalformed is the sentinel every decode failure wraps. Callers match
// it with errors.Is; the wrapped detail exists for out-of-band diagnostics
// only and must never reach a remote peer.
var ErrMalformed = errors.New("malformed envelope")

// Decode parses a canonical envelope frame. It is total over arbitrary
// input: every byte sequence yields either a fully-populated envelope that
// re-encodes to exactly the input, or an error wrapping ErrMalformed.
// Field bytes are copied out of buf; the caller's buffer is never aliased
// or mutated.
func Decode(buf []byte) (*Envelope, error) {
	if len(buf) > MaxEnvelopeSize {
		return nil, fmt.Errorf("%w: frame of %d bytes exceeds maximum %d", ErrMalformed, len(buf), MaxEnvelopeSize)
	}

	r := reader{buf: buf}

	version, err := r.u8()
	if err != nil {
		return nil, err
	}
	if version != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformed, version)
	}

	tenantID, err := r.lenPrefixed()
	if err != nil {
		return nil, err
	}
	policyID, err := r.lenPrefixed()
	if err != nil {
		return nil, err
	}
	path, err := r.lenPrefixed()
	if err != nil {
		return nil, err
	}
	tsEpochMS, err := r.u64()
	if err != nil {
		return nil, err
	}
	nonce, err := r.bytes(NonceSize)
	if err != nil {
		return nil, err
	}
	kemCiphertext, err := r.lenPrefixed()
	if err != nil {
		return nil, err
	}
	signature, err := r.lenPrefixed()
	if err != nil {
		return nil, err
	}
	ciphertext, err := r.lenPrefixed()
	if err != nil {
		return nil, err
	}

	if r.remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrMalformed, r.remaining())
	}

	return &Envelope{
		Version:       version,
		TenantID:      tenantID,
		PolicyID:      policyID,
		Path:          path,
		TSEpochMS:     tsEpochMS,
		Nonce:         nonce,
		KEMCiphertext: kemCiphertext,
		Signature:     signature,
		Ciphertext:    ciphertext,
	}, nil
}

// reader walks a frame without ever reading past the buffer. Length
// prefixes are bounded against the remaining bytes before allocation, so
// an adversarial length field cannot drive memory use beyond the input
// size.
type reader struct {
	buf []byte
	off int
}

func (r *reader) remaining() int {
	return len(r.buf) - r.off
}

func (r *reader) u8() (uint8, error) {
	if r.remaining() < 1 {
		return 0, fmt.Errorf("%w: truncated at offset %d", ErrMalformed, r.off)
	}
	b := r.buf[r.off]
	r.off++
	return b, nil
}

func (r *reader) u32() (uint32, error) {
	if r.remaining() < 4 {
		return 0, fmt.Errorf("%w: truncated at offset %d", ErrMalformed, r.off)
	}
	v := uint32(r.buf[r.off])<<24 | uint32(r.buf[r.off+1])<<16 | uint32(r.buf[r.off+2])<<8 | uint32(r.buf[r.off+3])
	r.off += 4
	return v, nil
}

func (r *reader) u64() (uint64, error) {
	if r.remaining() < 8 {
		return 0, fmt.Errorf("%w: truncated at offset %d", ErrMalformed, r.off)
	}
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(r.buf[r.off+i])
	}
	r.off += 8
	return v, nil
}

func (r *reader) bytes(n int) ([]byte, error) {
	if r.remaining() < n {
		return nil, fmt.Errorf("%w: truncated at offset %d", ErrMalformed, r.off)
	}
	out := make([]byte, n)
	copy(out, r.buf[r.off:r.off+n])
	r.off += n
	return out, nil
}

func (r *reader) lenPrefixed() ([]byte, error) {
	n, err := r.u32()
	if err != nil {
		return nil, err
	}
	// Compare in the prefix's own width: on 32-bit platforms int(n) can go
	// negative for n >= 2^31 and slip past the bound.
	if uint64(n) > uint64(r.remaining()) {
		return nil, fmt.Errorf("%w: length %d exceeds %d remaining bytes", ErrMalformed, n, r.remaining())
	}
	return r.bytes(int(n))
}
