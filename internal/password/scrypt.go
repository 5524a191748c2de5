package password

import (
	"fmt"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters for newly created credentials. N must be a power of two;
// the library rejects anything else at derivation time.
const (
	scryptN      = 16_384
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64
)

// hashScrypt derives a key with scrypt and encodes it as
// $scrypt$<N>$<r>$<p>$<keylen>$<hex>.
func hashScrypt(raw []byte, salt string) (string, error) {
	key, err := scrypt.Key(raw, []byte(salt), scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", fmt.Errorf("hashing with scrypt: %w", err)
	}
	return Encode(EncodedHash{
		Algorithm: AlgorithmScrypt,
		Params:    []int{scryptN, scryptR, scryptP, scryptKeyLen},
		Digest:    key,
	}), nil
}

// verifyScrypt re-derives the key with the stored parameters and compares in
// constant time. Parameters the library rejects (for example a non-power-of-
// two N smuggled into a record) surface as a malformed record, not a panic.
func verifyScrypt(stored, salt string, raw []byte) (bool, error) {
	h, err := Decode(stored)
	if err != nil {
		return false, err
	}
	if h.Algorithm != AlgorithmScrypt {
		return false, fmt.Errorf("%w: algorithm tag mismatch", ErrMalformedHash)
	}

	n, r, p, keyLen := h.Params[0], h.Params[1], h.Params[2], h.Params[3]
	if keyLen != len(h.Digest) {
		return false, fmt.Errorf("%w: key length does not match digest", ErrMalformedHash)
	}

	key, err := scrypt.Key(raw, []byte(salt), n, r, p, keyLen)
	if err != nil {
		return false, fmt.Errorf("%w: unusable scrypt parameters", ErrMalformedHash)
	}
	return ConstantTimeEqual(h.Digest, key), nil
}
