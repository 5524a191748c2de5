// Package password implements credential hashing and verification for
// Gatehouse. Five algorithms are supported side by side: bcrypt and argon2id
// carry their own self-describing encodings, while pbkdf2, scrypt, and
// HMAC-SHA512 use the tag-delimited encoding defined in codec.go together
// with an externally stored salt.
//
// Verification always dispatches on the algorithm tag embedded in the stored
// hash, never on the configured default. Hashes created under an old default
// keep verifying after the default changes -- only newly created credentials
// pick up the new algorithm.
package password

import "fmt"

// Algorithm identifies a supported password hashing algorithm. Using a named
// string type prevents accidental confusion with plain strings in config.
type Algorithm string

const (
	// AlgorithmBcrypt is bcrypt with its native self-salting encoding.
	AlgorithmBcrypt Algorithm = "bcrypt"

	// AlgorithmArgon2id is argon2id in the PHC string format. The salt is
	// embedded in the encoding, so no external salt is needed.
	AlgorithmArgon2id Algorithm = "argon2id"

	// AlgorithmPBKDF2 is PBKDF2-HMAC-SHA512 with an external salt.
	AlgorithmPBKDF2 Algorithm = "pbkdf2"

	// AlgorithmScrypt is scrypt with an external salt.
	AlgorithmScrypt Algorithm = "scrypt"

	// AlgorithmSHA512 is HMAC-SHA512 keyed with the external salt.
	AlgorithmSHA512 Algorithm = "sha512"
)

// ParseAlgorithm converts a config string into an Algorithm. Unknown values
// are rejected so a typo in PASSWORD_ALGORITHM fails at startup instead of
// silently falling back to a default.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case AlgorithmBcrypt, AlgorithmArgon2id, AlgorithmPBKDF2, AlgorithmScrypt, AlgorithmSHA512:
		return Algorithm(s), nil
	default:
		return "", fmt.Errorf("unsupported password algorithm %q", s)
	}
}

// SelfSalting reports whether the algorithm manages its own salt inside the
// hash encoding. Externally salted algorithms require a caller-supplied salt
// stored alongside the hash.
func (a Algorithm) SelfSalting() bool {
	switch a {
	case AlgorithmBcrypt, AlgorithmArgon2id:
		return true
	default:
		return false
	}
}
