package password

import (
	"crypto/sha512"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2-HMAC-SHA512 parameters for newly created credentials. Verification
// never reads these: it uses the iteration count and key length embedded in
// the stored hash.
const (
	pbkdf2Iterations = 50_000
	pbkdf2KeyLen     = 64
)

// hashPBKDF2 derives a key with PBKDF2-HMAC-SHA512 and encodes it as
// $pbkdf2$<iterations>$<keylen>$<hex>.
func hashPBKDF2(raw []byte, salt string) string {
	key := pbkdf2.Key(raw, []byte(salt), pbkdf2Iterations, pbkdf2KeyLen, sha512.New)
	return Encode(EncodedHash{
		Algorithm: AlgorithmPBKDF2,
		Params:    []int{pbkdf2Iterations, pbkdf2KeyLen},
		Digest:    key,
	})
}

// verifyPBKDF2 re-derives the key with the stored parameters and compares in
// constant time.
func verifyPBKDF2(stored, salt string, raw []byte) (bool, error) {
	h, err := Decode(stored)
	if err != nil {
		return false, err
	}
	if h.Algorithm != AlgorithmPBKDF2 {
		return false, fmt.Errorf("%w: algorithm tag mismatch", ErrMalformedHash)
	}

	iterations, keyLen := h.Params[0], h.Params[1]
	if keyLen != len(h.Digest) {
		return false, fmt.Errorf("%w: key length does not match digest", ErrMalformedHash)
	}

	key := pbkdf2.Key(raw, []byte(salt), iterations, keyLen, sha512.New)
	return ConstantTimeEqual(h.Digest, key), nil
}
