package password

import "crypto/subtle"

// ConstantTimeEqual compares two byte slices in time independent of where the
// first mismatch occurs. When the lengths differ it still burns a full
// comparison of a against itself before failing, so the length check does not
// open an early-exit timing path relative to a same-length mismatch.
func ConstantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		subtle.ConstantTimeCompare(a, a)
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
