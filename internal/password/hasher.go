package password

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// Hasher hashes new passwords under a configured default algorithm and
// verifies attempts against stored hashes of any supported algorithm.
// All parameters are fixed at construction time; nothing reads global state.
type Hasher struct {
	defaultAlg Algorithm

	// bcryptCost is injectable so tests can use bcrypt.MinCost. Hashing at
	// the production cost of 14 takes around a second per call.
	bcryptCost int
}

// Option configures a Hasher.
type Option func(*Hasher)

// WithBcryptCost overrides the bcrypt work factor.
func WithBcryptCost(cost int) Option {
	return func(h *Hasher) { h.bcryptCost = cost }
}

// NewHasher creates a Hasher that hashes new credentials with defaultAlg.
func NewHasher(defaultAlg Algorithm, opts ...Option) *Hasher {
	h := &Hasher{
		defaultAlg: defaultAlg,
		bcryptCost: bcryptCost,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// DefaultAlgorithm returns the algorithm used for newly created credentials.
func (h *Hasher) DefaultAlgorithm() Algorithm {
	return h.defaultAlg
}

// NeedsSalt reports whether the configured default algorithm requires a
// caller-managed salt stored alongside the hash.
func (h *Hasher) NeedsSalt() bool {
	return !h.defaultAlg.SelfSalting()
}

// Hash derives a stored hash for a new password under the default algorithm.
// Externally salted algorithms require a non-empty salt; self-salting ones
// ignore it. The password is NFC-normalized first so visually identical
// inputs with different Unicode compositions hash identically.
func (h *Hasher) Hash(password, salt string) (string, error) {
	raw := normalize(password)

	if h.NeedsSalt() && salt == "" {
		return "", fmt.Errorf("algorithm %s requires a salt", h.defaultAlg)
	}

	switch h.defaultAlg {
	case AlgorithmBcrypt:
		return hashBcrypt(raw, h.bcryptCost)
	case AlgorithmArgon2id:
		return hashArgon2id(raw)
	case AlgorithmPBKDF2:
		return hashPBKDF2(raw, salt), nil
	case AlgorithmScrypt:
		return hashScrypt(raw, salt)
	case AlgorithmSHA512:
		return hashSHA512(raw, salt), nil
	default:
		return "", fmt.Errorf("unsupported password algorithm %q", h.defaultAlg)
	}
}

// Verify checks an attempted password against a stored hash. Dispatch is
// driven by the algorithm tag embedded in the stored hash, and re-derivation
// uses the parameters decoded from it -- never the Hasher's current config --
// so historical credentials keep verifying after defaults change.
//
// A decode failure surfaces as ErrMalformedHash; a wrong password is
// (false, nil). An unknown algorithm tag fails closed.
func (h *Hasher) Verify(storedHash, salt, attempt string) (bool, error) {
	alg, err := DetectAlgorithm(storedHash)
	if err != nil {
		return false, err
	}

	raw := normalize(attempt)

	switch alg {
	case AlgorithmBcrypt:
		return verifyBcrypt(storedHash, raw), nil
	case AlgorithmArgon2id:
		return verifyArgon2id(storedHash, raw)
	case AlgorithmPBKDF2:
		return verifyPBKDF2(storedHash, salt, raw)
	case AlgorithmScrypt:
		return verifyScrypt(storedHash, salt, raw)
	case AlgorithmSHA512:
		return verifySHA512(storedHash, salt, raw)
	default:
		return false, fmt.Errorf("%w: unknown algorithm tag", ErrMalformedHash)
	}
}

// normalize applies Unicode NFC normalization and returns the password bytes.
// Two compositions of the same visual string must produce the same hash.
func normalize(password string) []byte {
	return []byte(norm.NFC.String(password))
}
