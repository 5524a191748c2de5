package password

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters following OWASP recommendations for a service running
// on modest hardware: memory=64MB, iterations=3, parallelism=4.
const (
	argonTime    = 3
	argonMemory  = 64 * 1024 // 64 MB in KiB
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// hashArgon2id creates an argon2id hash in the standard PHC string format:
// $argon2id$v=19$m=65536,t=3,p=4$<salt>$<hash>
// The salt is embedded, so verification is self-contained.
func hashArgon2id(raw []byte) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	hash := argon2.IDKey(raw, salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads, b64Salt, b64Hash), nil
}

// verifyArgon2id checks an attempt against a PHC-format argon2id hash.
// Re-derivation uses the parameters embedded in the stored string, not the
// constants above, so old hashes survive parameter changes.
func verifyArgon2id(stored string, raw []byte) (bool, error) {
	parts := strings.Split(stored, "$")
	if len(parts) != 6 {
		return false, fmt.Errorf("%w: bad argon2id segment count", ErrMalformedHash)
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, fmt.Errorf("%w: bad argon2id version segment", ErrMalformedHash)
	}
	if version != argon2.Version {
		return false, fmt.Errorf("%w: unsupported argon2 version", ErrMalformedHash)
	}

	var memory, iterations uint32
	var parallelism uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		return false, fmt.Errorf("%w: bad argon2id parameter segment", ErrMalformedHash)
	}
	if memory == 0 || iterations == 0 || parallelism == 0 {
		return false, fmt.Errorf("%w: argon2id parameter out of range", ErrMalformedHash)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("%w: bad argon2id salt encoding", ErrMalformedHash)
	}

	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(expected) == 0 {
		return false, fmt.Errorf("%w: bad argon2id digest encoding", ErrMalformedHash)
	}

	computed := argon2.IDKey(raw, salt, iterations, memory, parallelism, uint32(len(expected)))
	return ConstantTimeEqual(expected, computed), nil
}
