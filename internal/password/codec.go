package password

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedHash indicates that a stored hash could not be decoded. Login
// for the affected user is impossible until the record is remediated, so
// callers should log it as a data-integrity problem rather than treat it as
// a wrong password. The error text never contains digest material.
var ErrMalformedHash = errors.New("malformed password hash record")

// EncodedHash is the decoded form of a stored hash for the externally salted
// algorithms: the algorithm tag, its numeric parameters in encode order, and
// the raw digest bytes.
//
// Wire format: $<tag>$<param>...$<hex-digest>
//
//	pbkdf2: $pbkdf2$<iterations>$<keylen>$<hex>
//	scrypt: $scrypt$<N>$<r>$<p>$<keylen>$<hex>
//	sha512: $sha512$<hex>
//
// bcrypt and argon2id never pass through this codec; their native encodings
// are handled opaquely by their adapters.
type EncodedHash struct {
	Algorithm Algorithm
	Params    []int
	Digest    []byte
}

// paramCount is the exact number of numeric parameters each externally
// salted algorithm encodes. Decoding is strict: no segment may be missing
// and none may be extra.
var paramCount = map[Algorithm]int{
	AlgorithmPBKDF2: 2, // iterations, key length
	AlgorithmScrypt: 4, // N, r, p, key length
	AlgorithmSHA512: 0,
}

// Encode serializes an EncodedHash into its string form.
func Encode(h EncodedHash) string {
	var b strings.Builder
	b.WriteByte('$')
	b.WriteString(string(h.Algorithm))
	for _, p := range h.Params {
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(p))
	}
	b.WriteByte('$')
	b.WriteString(hex.EncodeToString(h.Digest))
	return b.String()
}

// Decode parses a stored hash string produced by Encode. Decoding is total:
// any malformed, truncated, or out-of-range input yields ErrMalformedHash,
// never a partial digest that could end up in a comparison.
func Decode(s string) (EncodedHash, error) {
	if !strings.HasPrefix(s, "$") {
		return EncodedHash{}, fmt.Errorf("%w: missing leading delimiter", ErrMalformedHash)
	}

	parts := strings.Split(s[1:], "$")
	if len(parts) < 2 {
		return EncodedHash{}, fmt.Errorf("%w: too few segments", ErrMalformedHash)
	}

	alg := Algorithm(parts[0])
	want, ok := paramCount[alg]
	if !ok {
		return EncodedHash{}, fmt.Errorf("%w: unknown algorithm tag %q", ErrMalformedHash, parts[0])
	}
	if len(parts) != want+2 {
		return EncodedHash{}, fmt.Errorf("%w: expected %d segments for %s, got %d",
			ErrMalformedHash, want+2, alg, len(parts))
	}

	params := make([]int, 0, want)
	for _, raw := range parts[1 : 1+want] {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return EncodedHash{}, fmt.Errorf("%w: non-numeric parameter", ErrMalformedHash)
		}
		// A zero or negative cost parameter would silently produce a free-to-
		// crack hash. Reject it at decode time rather than accept a zero cost.
		if n <= 0 {
			return EncodedHash{}, fmt.Errorf("%w: parameter out of range", ErrMalformedHash)
		}
		params = append(params, n)
	}

	digest, err := hex.DecodeString(parts[len(parts)-1])
	if err != nil {
		return EncodedHash{}, fmt.Errorf("%w: invalid digest encoding", ErrMalformedHash)
	}
	if len(digest) == 0 {
		return EncodedHash{}, fmt.Errorf("%w: empty digest", ErrMalformedHash)
	}

	return EncodedHash{Algorithm: alg, Params: params, Digest: digest}, nil
}

// DetectAlgorithm inspects a stored hash string and returns the algorithm it
// was created under. Self-salting algorithms are recognized by their native
// prefixes; everything else goes through the codec.
func DetectAlgorithm(stored string) (Algorithm, error) {
	switch {
	case strings.HasPrefix(stored, "$argon2id$"):
		return AlgorithmArgon2id, nil
	case strings.HasPrefix(stored, "$2a$"),
		strings.HasPrefix(stored, "$2b$"),
		strings.HasPrefix(stored, "$2y$"):
		return AlgorithmBcrypt, nil
	}

	h, err := Decode(stored)
	if err != nil {
		return "", err
	}
	return h.Algorithm, nil
}
