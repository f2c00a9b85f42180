package wire

import "encoding/binary"

// AAD is the authenticated verification context. It is derived from the
// decoded envelope's fields plus the protocol-level flags that are not
// carried in the envelope body (required algorithm suite, hybrid mode,
// optional device attestation hash); it is never parsed from untrusted
// free-form input.
//
// A nil DeviceAttestHash means the attestation field is absent. A non-nil
// empty slice means present-and-empty; the two encode differently, and
// presence is itself part of the binding.
type AAD struct {
	Ver              uint8
	TenantID         []byte
	PolicyID         []byte
	Path             []byte
	TSEpochMS        uint64
	RequiredAlgs     []byte
	Hybrid           bool
	DeviceAttestHash []byte
}

// BuildAAD assembles the verification context. All field combinations are
// representable; there is no error path.
func BuildAAD(ver uint8, tenantID, policyID, path []byte, tsEpochMS uint64, requiredAlgs []byte, hybrid bool, deviceAttestHash []byte) AAD {
	return AAD{
		Ver:              ver,
		TenantID:         tenantID,
		PolicyID:         policyID,
		Path:             path,
		TSEpochMS:        tsEpochMS,
		RequiredAlgs:     requiredAlgs,
		Hybrid:           hybrid,
		DeviceAttestHash: deviceAttestHash,
	}
}

// Bytes produces the canonical AAD encoding. The encoding is injective:
// fixed-width integers, a 4-byte length prefix on every variable field, a
// one-byte hybrid tag, and a one-byte presence discriminant before the
// optional attestation hash mean no two distinct AAD values share an
// encoding.
func (a AAD) Bytes() []byte {
	size := 1 + // ver
		lenPrefixSize + len(a.TenantID) +
		lenPrefixSize + len(a.PolicyID) +
		lenPrefixSize + len(a.Path) +
		8 + // ts_epoch_ms
		lenPrefixSize + len(a.RequiredAlgs) +
		1 + // hybrid tag
		1 // attestation presence discriminant
	if a.DeviceAttestHash != nil {
		size += lenPrefixSize + len(a.DeviceAttestHash)
	}

	out := make([]byte, 0, size)
	out = append(out, a.Ver)
	out = AppendLenPrefixed(out, a.TenantID)
	out = AppendLenPrefixed(out, a.PolicyID)
	out = AppendLenPrefixed(out, a.Path)
	out = binary.BigEndian.AppendUint64(out, a.TSEpochMS)
	out = AppendLenPrefixed(out, a.RequiredAlgs)
	if a.Hybrid {
		out = append(out, 1)
	} else {
		out = append(out, 0)
	}
	if a.DeviceAttestHash != nil {
		out = append(out, 1)
		out = AppendLenPrefixed(out, a.DeviceAttestHash)
	} else {
		out = append(out, 0)
	}
	return out
}
