package crypto

import "crypto/subtle"

// ConstantTimeEqual compares two byte sequences in constant time with
// respect to their contents. The compared fields are not secrets, but a
// data-independent comparison costs nothing and removes a timing channel.
func ConstantTimeEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
