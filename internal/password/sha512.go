package password

import (
	"crypto/hmac"
	"crypto/sha512"
	"fmt"
)

// hashSHA512 computes HMAC-SHA512 keyed with the salt and encodes it as
// $sha512$<hex>. This is the cheapest supported algorithm, kept for
// compatibility with credentials migrated from older deployments.
func hashSHA512(raw []byte, salt string) string {
	mac := hmac.New(sha512.New, []byte(salt))
	mac.Write(raw)
	return Encode(EncodedHash{
		Algorithm: AlgorithmSHA512,
		Digest:    mac.Sum(nil),
	})
}

// verifySHA512 recomputes the HMAC and compares in constant time.
func verifySHA512(stored, salt string, raw []byte) (bool, error) {
	h, err := Decode(stored)
	if err != nil {
		return false, err
	}
	if h.Algorithm != AlgorithmSHA512 {
		return false, fmt.Errorf("%w: algorithm tag mismatch", ErrMalformedHash)
	}

	mac := hmac.New(sha512.New, []byte(salt))
	mac.Write(raw)
	return ConstantTimeEqual(h.Digest, mac.Sum(nil)), nil
}
